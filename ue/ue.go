package ue

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/archive"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/kballard/go-shellquote"
)

var (
	ipPattern  = regexp.MustCompile(`inet (\d+\.\d+\.\d+\.\d+)`)
	mtuPattern = regexp.MustCompile(`mtu (\d+)`)
)

// ErrNoIP is returned while a UE has no address on its interface.
var ErrNoIP = errors.New("UE has no IP address")

// Config holds the attach timings.
type Config struct {
	AttachAttempts uint
	IPPollAttempts uint
	IPPollInterval time.Duration
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		AttachAttempts: 3,
		IPPollAttempts: 10,
		IPPollInterval: 2 * time.Second,
	}
}

// Controller drives UE modules through their scripts.
type Controller interface {
	Initialize(m Module) error
	Terminate(ctx testcase.RunContext, m Module) ([]string, error)
	Attach(m Module) (string, error)
	Detach(m Module) error
	CheckStatus(m Module) (string, error)
	DataEnable(m Module) error
	DataDisable(m Module) error
	IP(m Module) (string, error)
	CheckMTU(m Module) error
}

type controller struct {
	logger   log.Logger
	gateway  remote.Gateway
	archiver archive.Archiver
	cfg      Config
}

// NewController ...
func NewController(logger log.Logger, gateway remote.Gateway, archiver archive.Archiver, cfg Config) Controller {
	return &controller{
		logger:   logger,
		gateway:  gateway,
		archiver: archiver,
		cfg:      cfg,
	}
}

// runScript runs an optional script, an empty script is a no-op.
func (c controller) runScript(m Module, kind, script string) (string, error) {
	if script == "" {
		c.logger.Debugf("%s: no %s script", m.Name, kind)
		return "", nil
	}

	out, err := c.gateway.Run(m.Host, script)
	if err != nil {
		return "", err
	}
	if !out.Succeeded() {
		return out.String(), fmt.Errorf("%s: %s script failed with exit code %d: %s", m.Name, kind, out.ExitCode, out.String())
	}
	return out.String(), nil
}

func (c controller) Initialize(m Module) error {
	c.logger.Infof("Initializing UE %s on %s", m.Name, m.Host)

	if m.Definition.Tracing != nil {
		if _, err := c.runScript(m, "tracing start", m.Definition.Tracing.Start); err != nil {
			return err
		}
	}

	_, err := c.runScript(m, "init", m.Definition.InitScript)
	return err
}

// Terminate runs the termination script and collects traces, returning the archived trace files.
func (c controller) Terminate(ctx testcase.RunContext, m Module) ([]string, error) {
	c.logger.Infof("Terminating UE %s on %s", m.Name, m.Host)

	if _, err := c.runScript(m, "term", m.Definition.TermScript); err != nil {
		return nil, err
	}

	tracing := m.Definition.Tracing
	if tracing == nil {
		return nil, nil
	}

	if _, err := c.runScript(m, "tracing stop", tracing.Stop); err != nil {
		return nil, err
	}
	if tracing.Collect == "" {
		return nil, nil
	}

	collectDir := fmt.Sprintf("/tmp/ue-trace-%s-%06d", m.Name, ctx.TestID)
	collect := fmt.Sprintf("mkdir -p %s && %s", shellquote.Join(collectDir), strings.ReplaceAll(tracing.Collect, LogDirPlaceholder, collectDir))
	if _, err := c.runScript(m, "tracing collect", collect); err != nil {
		return nil, err
	}

	listing, err := c.runScript(m, "trace listing", fmt.Sprintf("ls -1 %s", shellquote.Join(collectDir)))
	if err != nil {
		return nil, err
	}

	var archived []string
	for _, name := range strings.Fields(listing) {
		pth, err := c.archiver.Archive(ctx, m.Host, path.Join(collectDir, name))
		if err != nil {
			c.logger.Warnf("%s", err)
			continue
		}
		archived = append(archived, pth)
	}
	return archived, nil
}

func (c controller) Attach(m Module) (string, error) {
	attempts := c.cfg.AttachAttempts
	if attempts == 0 {
		attempts = 1
	}

	var ip string
	err := retry.Times(attempts - 1).Try(func(attempt uint) error {
		c.logger.Infof("Attaching UE %s (attempt %d/%d)", m.Name, attempt+1, attempts)
		if _, err := c.runScript(m, "attach", m.Definition.AttachScript); err != nil {
			return err
		}

		var err error
		ip, err = c.waitForIP(m, c.cfg.IPPollAttempts*(attempt+1))
		if err == nil {
			return nil
		}

		c.logger.Warnf("UE %s did not get an IP address, detaching", m.Name)
		if detachErr := c.Detach(m); detachErr != nil {
			c.logger.Warnf("%s", detachErr)
		}
		return err
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach UE %s: %w", m.Name, err)
	}

	c.logger.Donef("UE %s attached with IP %s", m.Name, ip)
	return ip, nil
}

func (c controller) waitForIP(m Module, attempts uint) (string, error) {
	if attempts == 0 {
		attempts = 1
	}

	var ip string
	err := retry.Times(attempts - 1).Wait(c.cfg.IPPollInterval).Try(func(attempt uint) error {
		var err error
		ip, err = c.IP(m)
		return err
	})
	return ip, err
}

func (c controller) Detach(m Module) error {
	c.logger.Infof("Detaching UE %s", m.Name)
	_, err := c.runScript(m, "detach", m.Definition.DetachScript)
	return err
}

func (c controller) CheckStatus(m Module) (string, error) {
	return c.runScript(m, "check status", m.Definition.CheckStatusScript)
}

func (c controller) DataEnable(m Module) error {
	_, err := c.runScript(m, "data enable", m.Definition.DataEnableScript)
	return err
}

func (c controller) DataDisable(m Module) error {
	_, err := c.runScript(m, "data disable", m.Definition.DataDisableScript)
	return err
}

func (c controller) networkCommand(m Module) (string, error) {
	if m.Definition.NetworkScript != "" {
		return m.Definition.NetworkScript, nil
	}
	if m.Definition.Interface != "" {
		return fmt.Sprintf("ip address show dev %s", shellquote.Join(m.Definition.Interface)), nil
	}
	return "", fmt.Errorf("UE %s defines neither NetworkScript nor IF", m.Name)
}

// IP returns the first IPv4 address reported for the module.
func (c controller) IP(m Module) (string, error) {
	cmd, err := c.networkCommand(m)
	if err != nil {
		return "", err
	}

	out, err := c.gateway.Run(m.Host, cmd)
	if err != nil {
		return "", err
	}

	match := ipPattern.FindStringSubmatch(out.String())
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrNoIP, m.Name)
	}
	return match[1], nil
}

func (c controller) CheckMTU(m Module) error {
	if m.Definition.MTU == 0 {
		return nil
	}

	cmd, err := c.networkCommand(m)
	if err != nil {
		return err
	}
	out, err := c.gateway.Run(m.Host, cmd)
	if err != nil {
		return err
	}

	match := mtuPattern.FindStringSubmatch(out.String())
	if match == nil {
		return fmt.Errorf("UE %s: no MTU reported", m.Name)
	}
	mtu, err := strconv.Atoi(match[1])
	if err != nil {
		return fmt.Errorf("UE %s: invalid MTU (%s): %w", m.Name, match[1], err)
	}
	if mtu != m.Definition.MTU {
		return fmt.Errorf("UE %s: MTU is %d, expected %d", m.Name, mtu, m.Definition.MTU)
	}
	return nil
}
