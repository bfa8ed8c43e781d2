package dispatcher

import (
	"errors"
	"path/filepath"

	"github.com/bitrise-steplib/steps-ran-test/analyzer"
	"github.com/bitrise-steplib/steps-ran-test/ran"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
)

func (d *dispatcher) initializeENB(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	args, err := required(tc, "Initialize_eNB_args")
	if err != nil {
		return testcase.ActionResult{}, err
	}

	host := d.host(tc.Params.StringOr("node", ""))
	airInterface := tc.Params.StringOr("air_interface", "lte")

	result, err := d.subsystems.RAN.Initialize(ctx, ran.InitializeParams{
		Host:         host,
		SourcePath:   d.cfg.SourcePath,
		AirInterface: airInterface,
		CmdPrefix:    tc.Params.StringOr("cmd_prefix", ""),
		Args:         args,
	})
	if errors.Is(err, ran.ErrMissingConfigFile) {
		return testcase.ActionResult{}, configurationError(tc, "%s", err)
	}
	if err != nil {
		return testcase.ActionResult{}, err
	}

	if result.Passed {
		d.nodeSetup[host] = nodeSetup{
			airInterface: airInterface,
			rtStatsFile:  tc.Params.StringOr("rt_stats_cfg", ""),
		}
	}
	return result, nil
}

func retxThresholds(tc testcase.TestCase) (analyzer.Thresholds, error) {
	dl, err := tc.Params.Floats("d_retx_th")
	if err != nil {
		return analyzer.Thresholds{}, configurationError(tc, "%s", err)
	}
	ul, err := tc.Params.Floats("u_retx_th")
	if err != nil {
		return analyzer.Thresholds{}, configurationError(tc, "%s", err)
	}
	return analyzer.Thresholds{DLRetx: dl, ULRetx: ul}, nil
}

// rtStatsConfig loads the real-time thresholds of a node, nil when no
// threshold directory is configured and the case names no file.
func (d *dispatcher) rtStatsConfig(tc testcase.TestCase, file string) (*analyzer.RTStatsConfig, error) {
	if d.cfg.RTStatsConfigDir == "" {
		if file != "" {
			return nil, configurationError(tc, "real-time thresholds %s requested but no threshold directory is configured", file)
		}
		return nil, nil
	}
	if file == "" {
		file = analyzer.DefaultRTStatsConfigFile
	}

	pth := filepath.Join(d.cfg.RTStatsConfigDir, file)
	exists, err := d.pathChecker.IsPathExists(pth)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, configurationError(tc, "real-time thresholds %s not found", pth)
	}

	cfg, err := analyzer.LoadRTStatsConfig(pth)
	if err != nil {
		return nil, configurationError(tc, "%s", err)
	}
	return cfg, nil
}

func (d *dispatcher) terminateENB(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	host := d.host(tc.Params.StringOr("node", ""))
	setup := d.nodeSetup[host]
	delete(d.nodeSetup, host)

	thresholds, err := retxThresholds(tc)
	if err != nil {
		return testcase.ActionResult{}, err
	}
	rtStats, err := d.rtStatsConfig(tc, setup.rtStatsFile)
	if err != nil {
		return testcase.ActionResult{}, err
	}

	airInterface := tc.Params.StringOr("air_interface", setup.airInterface)

	return d.subsystems.RAN.Terminate(ctx, ran.TerminateParams{
		Host:         host,
		SourcePath:   d.cfg.SourcePath,
		AirInterface: airInterface,
		Thresholds:   thresholds,
		RTStats:      rtStats,
	})
}
