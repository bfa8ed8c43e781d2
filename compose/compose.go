package compose

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/analyzer"
	"github.com/bitrise-steplib/steps-ran-test/archive"
	"github.com/bitrise-steplib/steps-ran-test/ran"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/kballard/go-shellquote"
)

const failureLogLines = 20

// DeployParams ...
type DeployParams struct {
	Host     string
	YAMLPath string
	Services []string
	Attempts uint
}

// UndeployParams ...
type UndeployParams struct {
	Host       string
	YAMLPath   string
	Services   []string
	Thresholds analyzer.Thresholds
	RTStats    *analyzer.RTStatsConfig
}

// Deployer brings a docker compose service set up and down.
type Deployer interface {
	Deploy(ctx testcase.RunContext, params DeployParams) (testcase.ActionResult, error)
	Undeploy(ctx testcase.RunContext, params UndeployParams) (testcase.ActionResult, error)
}

type deployer struct {
	logger    log.Logger
	gateway   remote.Gateway
	archiver  archive.Archiver
	analyzer  analyzer.Analyzer
	retryWait time.Duration
}

// NewDeployer ...
func NewDeployer(logger log.Logger, gateway remote.Gateway, archiver archive.Archiver, logAnalyzer analyzer.Analyzer, retryWait time.Duration) Deployer {
	return &deployer{
		logger:    logger,
		gateway:   gateway,
		archiver:  archiver,
		analyzer:  logAnalyzer,
		retryWait: retryWait,
	}
}

// composeFile finds docker-compose.yml or docker-compose.yaml in dir.
func (d deployer) composeFile(host, dir string) (string, error) {
	out, err := d.gateway.Run(host, fmt.Sprintf("ls -1 %s/docker-compose.y*ml", shellquote.Join(dir)))
	if err != nil {
		return "", err
	}
	if !out.Succeeded() || out.String() == "" {
		return "", fmt.Errorf("no docker-compose.yml in %s on %s", dir, host)
	}
	return strings.Split(out.String(), "\n")[0], nil
}

func composeCommand(file string, args ...string) string {
	return shellquote.Join(append([]string{"docker", "compose", "-f", file}, args...)...)
}

func (d deployer) Deploy(ctx testcase.RunContext, params DeployParams) (testcase.ActionResult, error) {
	file, err := d.composeFile(params.Host, params.YAMLPath)
	if err != nil {
		return testcase.Failed("Could not deploy", err.Error()), nil
	}

	attempts := params.Attempts
	if attempts == 0 {
		attempts = 1
	}

	up := composeCommand(file, append([]string{"up", "-d", "--wait"}, params.Services...)...)
	var lastOutput string
	err = retry.Times(attempts - 1).Wait(d.retryWait).Try(func(attempt uint) error {
		d.logger.Infof("Deploying %s on %s (attempt %d/%d)", strings.Join(params.Services, ", "), params.Host, attempt+1, attempts)

		out, err := d.gateway.Run(params.Host, up)
		if err != nil {
			return err
		}
		if !out.Succeeded() {
			lastOutput = out.String()
			d.logger.Warnf("Deployment failed with exit code %d", out.ExitCode)
			return errors.New("deployment failed")
		}
		return nil
	})
	if err != nil {
		details := []string{fmt.Sprintf("Gave up after %d attempts", attempts)}
		if lastOutput != "" {
			details = append(details, strings.Split(stringutil.LastNLines(lastOutput, failureLogLines), "\n")...)
		}
		return testcase.Failed(fmt.Sprintf("Could not deploy %s", strings.Join(params.Services, ", ")), details...), nil
	}

	d.logger.Donef("Deployed %s", strings.Join(params.Services, ", "))
	return testcase.Passed(fmt.Sprintf("Deployed %s", strings.Join(params.Services, ", "))), nil
}

func (d deployer) services(host, file string, requested []string) ([]string, error) {
	if len(requested) > 0 {
		return requested, nil
	}

	out, err := d.gateway.Run(host, composeCommand(file, "config", "--services"))
	if err != nil {
		return nil, err
	}
	if !out.Succeeded() {
		return nil, fmt.Errorf("failed to list compose services: %s", out.String())
	}
	return strings.Fields(out.String()), nil
}

// airInterfaceOf guesses which services run a base station.
func airInterfaceOf(service string) (string, bool) {
	name := strings.ToLower(service)
	switch {
	case strings.Contains(name, "gnb"):
		return "nr", true
	case strings.Contains(name, "enb"):
		return "lte", true
	default:
		return "", false
	}
}

func (d deployer) Undeploy(ctx testcase.RunContext, params UndeployParams) (testcase.ActionResult, error) {
	file, err := d.composeFile(params.Host, params.YAMLPath)
	if err != nil {
		return testcase.Failed("Could not undeploy", err.Error()), nil
	}

	services, err := d.services(params.Host, file, params.Services)
	if err != nil {
		return testcase.Failed("Could not undeploy", err.Error()), nil
	}

	result := testcase.Passed(fmt.Sprintf("Undeployed %s", strings.Join(services, ", ")))
	for _, service := range services {
		logFile := path.Join("/tmp", fmt.Sprintf("%s-enb.log", service))
		collect := fmt.Sprintf("%s > %s 2>&1", composeCommand(file, "logs", "--no-color", "--no-log-prefix", service), shellquote.Join(logFile))
		if out, err := d.gateway.Run(params.Host, collect); err != nil || !out.Succeeded() {
			d.logger.Warnf("Failed to collect logs of %s", service)
			result.Details = append(result.Details, fmt.Sprintf("%s: no logs", service))
			continue
		}

		archived, err := d.archiver.Archive(ctx, params.Host, logFile)
		if err != nil {
			d.logger.Warnf("%s", err)
			result.Details = append(result.Details, fmt.Sprintf("%s: logs not archived", service))
			continue
		}

		airInterface, ok := airInterfaceOf(service)
		if !ok {
			continue
		}

		verdict, err := d.analyzer.Analyze(archived, analyzer.Options{
			AirInterface: airInterface,
			Thresholds:   params.Thresholds,
			RTStats:      params.RTStats,
		})
		if err != nil {
			result.Passed = false
			result.Details = append(result.Details, fmt.Sprintf("%s: %s", service, err))
			continue
		}

		analysis := ran.VerdictResult(verdict)
		result.Passed = result.Passed && analysis.Passed
		result.Details = append(result.Details, fmt.Sprintf("%s: %s", service, analysis.Message))
		result.Details = append(result.Details, analysis.Details...)
		result.Tables = append(result.Tables, analysis.Tables...)
	}

	down, err := d.gateway.Run(params.Host, composeCommand(file, "down", "-v"))
	if err != nil {
		return testcase.ActionResult{}, err
	}
	if !down.Succeeded() {
		result.Passed = false
		result.Details = append(result.Details, fmt.Sprintf("docker compose down failed: %s", down.String()))
	}

	if !result.Passed {
		result.Message = fmt.Sprintf("Undeployment of %s found issues", strings.Join(services, ", "))
	}
	return result, nil
}
