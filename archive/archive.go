package archive

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/kballard/go-shellquote"
)

// Archiver moves artifacts produced on a host into the log directory of the run.
type Archiver interface {
	Archive(ctx testcase.RunContext, host, remotePath string) (string, error)
}

type archiver struct {
	logger  log.Logger
	gateway remote.Gateway
}

// NewArchiver ...
func NewArchiver(logger log.Logger, gateway remote.Gateway) Archiver {
	return &archiver{
		logger:  logger,
		gateway: gateway,
	}
}

// Archive copies remotePath into <logPath>/<id>-<basename> and removes the
// source on success. The returned path is the archived copy.
func (a archiver) Archive(ctx testcase.RunContext, host, remotePath string) (string, error) {
	localPath := ctx.ArtifactName(filepath.Base(remotePath))

	if err := a.gateway.CopyIn(host, remotePath, localPath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", remotePath, err)
	}

	out, err := a.gateway.Run(host, shellquote.Join("rm", "-f", remotePath))
	if err != nil {
		a.logger.Warnf("Failed to remove %s after archiving: %s", remotePath, err)
	} else if !out.Succeeded() {
		a.logger.Warnf("Failed to remove %s after archiving (exit code %d): %s", remotePath, out.ExitCode, out.String())
	}

	a.logger.Debugf("Archived %s to %s", remotePath, localPath)

	return localPath, nil
}
