package remote

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/kballard/go-shellquote"
)

// Localhost is the host name that bypasses ssh.
const Localhost = "localhost"

var sshOptions = []string{"-o", "BatchMode=yes", "-o", "StrictHostKeyChecking=no", "-o", "ConnectTimeout=10"}

// Output is the result of a finished command.
type Output struct {
	RawOut   []byte
	ExitCode int
}

// String returns the trimmed combined output.
func (o Output) String() string {
	return strings.TrimSpace(string(o.RawOut))
}

// Succeeded ...
func (o Output) Succeeded() bool {
	return o.ExitCode == 0
}

// Gateway runs shell command lines on a named host.
// A non-zero exit code is reported through Output, the error is reserved
// for commands that could not be run at all.
type Gateway interface {
	Run(host, cmdline string) (Output, error)
	CopyIn(host, remotePath, localPath string) error
}

type gateway struct {
	logger         log.Logger
	commandFactory command.Factory
	forceLocal     bool
}

// NewGateway ...
func NewGateway(logger log.Logger, commandFactory command.Factory, forceLocal bool) Gateway {
	return &gateway{
		logger:         logger,
		commandFactory: commandFactory,
		forceLocal:     forceLocal,
	}
}

// IsLocal reports whether host refers to the machine running the step.
func IsLocal(host string) bool {
	return host == "" || host == Localhost || host == "127.0.0.1"
}

func (g *gateway) local(host string) bool {
	return g.forceLocal || IsLocal(host)
}

func (g *gateway) Run(host, cmdline string) (Output, error) {
	var name string
	var args []string
	if g.local(host) {
		name, args = "bash", []string{"-c", cmdline}
	} else {
		name = "ssh"
		args = append(append([]string{}, sshOptions...), host, "--", shellquote.Join("bash", "-c", cmdline))
	}

	var outBuffer bytes.Buffer
	cmd := g.commandFactory.Create(name, args, &command.Opts{
		Stdout: &outBuffer,
		Stderr: &outBuffer,
	})

	g.logger.Debugf("[%s] $ %s", hostLabel(host), cmdline)

	exitCode, err := cmd.RunAndReturnExitCode()
	out := Output{RawOut: outBuffer.Bytes(), ExitCode: exitCode}
	if err != nil {
		if exitCode > 0 || errorutil.IsExitStatusError(err) {
			return out, nil
		}
		return out, fmt.Errorf("failed to run command on %s: %w", hostLabel(host), err)
	}

	return out, nil
}

func (g *gateway) CopyIn(host, remotePath, localPath string) error {
	var name string
	var args []string
	if g.local(host) {
		name, args = "cp", []string{remotePath, localPath}
	} else {
		name = "scp"
		args = append(append([]string{}, sshOptions...), fmt.Sprintf("%s:%s", host, remotePath), localPath)
	}

	cmd := g.commandFactory.Create(name, args, nil)
	g.logger.Debugf("$ %s", cmd.PrintableCommandArgs())

	if out, err := cmd.RunAndReturnTrimmedCombinedOutput(); err != nil {
		return fmt.Errorf("failed to copy %s from %s: %w, output: %s", remotePath, hostLabel(host), err, out)
	}

	return nil
}

func hostLabel(host string) string {
	if host == "" {
		return Localhost
	}
	return host
}
