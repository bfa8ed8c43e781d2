package traffic

import (
	"fmt"
	"strings"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	version "github.com/hashicorp/go-version"
)

// Endpoint is one side of a traffic run.
type Endpoint struct {
	Name      string
	Host      string
	CmdPrefix string
	IP        string
}

func (e Endpoint) command(cmdline string) string {
	if e.CmdPrefix == "" {
		return cmdline
	}
	return e.CmdPrefix + " " + cmdline
}

// Runner generates traffic between UEs and a server and checks the measurements.
type Runner interface {
	Ping(ctx testcase.RunContext, client Endpoint, serverIP string, params PingParams) (testcase.ActionResult, error)
	Iperf(ctx testcase.RunContext, clients []Endpoint, server Endpoint, params IperfParams) (testcase.ActionResult, error)
	CheckInstall(host string, tool Tool) (*version.Version, error)
}

type runner struct {
	logger      log.Logger
	gateway     remote.Gateway
	fileManager fileutil.FileManager
}

// NewRunner ...
func NewRunner(logger log.Logger, gateway remote.Gateway, fileManager fileutil.FileManager) Runner {
	return &runner{
		logger:      logger,
		gateway:     gateway,
		fileManager: fileManager,
	}
}

// saveOutput keeps the raw tool output next to the other artifacts of the case.
func (r runner) saveOutput(ctx testcase.RunContext, name string, out remote.Output) {
	pth := ctx.ArtifactName(name)
	if err := r.fileManager.Write(pth, string(out.RawOut), 0644); err != nil {
		r.logger.Warnf("Failed to save %s: %s", pth, err)
	}
}

func fileSafe(s string) string {
	return strings.NewReplacer("/", "_", " ", "_", ":", "_").Replace(s)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
