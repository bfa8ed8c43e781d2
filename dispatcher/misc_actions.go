package dispatcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/progress"
	"github.com/bitrise-steplib/steps-ran-test/compose"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/kballard/go-shellquote"
)

const defaultIdleSleep = 5

func (d *dispatcher) idleSleep(_ testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	seconds, err := tc.Params.Int("idle_sleep_time_in_sec", defaultIdleSleep)
	if err != nil {
		return testcase.ActionResult{}, configurationError(tc, "%s", err)
	}
	duration := time.Duration(seconds) * time.Second

	d.logger.Infof("Sleeping for %s", duration)
	progress.SimpleProgress(".", 10*time.Second, func() {
		d.sleep(duration)
	})
	d.logger.Println()

	return testcase.Passed(fmt.Sprintf("Slept %s", duration)), nil
}

func (d *dispatcher) runCommand(tc testcase.TestCase, cmdline string) (testcase.ActionResult, error) {
	host := d.host(tc.Params.StringOr("node", ""))

	out, err := d.subsystems.Gateway.Run(host, cmdline)
	if err != nil {
		return testcase.ActionResult{}, err
	}

	var details []string
	if out.String() != "" {
		details = strings.Split(out.String(), "\n")
	}
	if !out.Succeeded() {
		return testcase.Failed(fmt.Sprintf("Exited with %d", out.ExitCode), details...), nil
	}
	return testcase.Passed("Exited with 0", details...), nil
}

func (d *dispatcher) customCommand(_ testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	command, err := required(tc, "command")
	if err != nil {
		return testcase.ActionResult{}, err
	}
	return d.runCommand(tc, command)
}

func (d *dispatcher) customScript(_ testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	script, err := required(tc, "script")
	if err != nil {
		return testcase.ActionResult{}, err
	}
	fields, err := shellquote.Split(script)
	if err != nil || len(fields) == 0 {
		return testcase.ActionResult{}, configurationError(tc, "invalid script (%s)", script)
	}
	fields[0] = d.sourcePath(fields[0])

	return d.runCommand(tc, shellquote.Join(append([]string{"bash"}, fields...)...))
}

func (d *dispatcher) deployObject(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	yamlPath, err := required(tc, "yaml_path")
	if err != nil {
		return testcase.ActionResult{}, err
	}
	attempts, err := tc.Params.Int("num_attempts", 1)
	if err != nil || attempts < 1 {
		return testcase.ActionResult{}, configurationError(tc, "invalid num_attempts")
	}

	return d.subsystems.Deployer.Deploy(ctx, compose.DeployParams{
		Host:     d.host(tc.Params.StringOr("node", "")),
		YAMLPath: d.sourcePath(yamlPath),
		Services: tc.Params.Fields("services"),
		Attempts: uint(attempts),
	})
}

func (d *dispatcher) undeployObject(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	yamlPath, err := required(tc, "yaml_path")
	if err != nil {
		return testcase.ActionResult{}, err
	}
	thresholds, err := retxThresholds(tc)
	if err != nil {
		return testcase.ActionResult{}, err
	}
	rtStats, err := d.rtStatsConfig(tc, tc.Params.StringOr("rt_stats_cfg", ""))
	if err != nil {
		return testcase.ActionResult{}, err
	}

	return d.subsystems.Deployer.Undeploy(ctx, compose.UndeployParams{
		Host:       d.host(tc.Params.StringOr("node", "")),
		YAMLPath:   d.sourcePath(yamlPath),
		Services:   tc.Params.Fields("services"),
		Thresholds: thresholds,
		RTStats:    rtStats,
	})
}
