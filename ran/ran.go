package ran

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/analyzer"
	"github.com/bitrise-steplib/steps-ran-test/archive"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/kballard/go-shellquote"
)

const (
	logFileName      = "enb.log"
	l1StatsFileName  = "nrL1_stats.log"
	macStatsFileName = "nrMAC_stats.log"

	readinessPattern = "got sync|Starting F1AP at CU"
)

// ErrMissingConfigFile is returned when the launch arguments name no .conf file.
var ErrMissingConfigFile = errors.New("no configuration file (-O <file>.conf) in launch arguments")

// Config holds the timings of process control.
type Config struct {
	ReadinessAttempts uint
	ReadinessInterval time.Duration
	StopGracePeriod   time.Duration
	KillWait          time.Duration
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		ReadinessAttempts: 10,
		ReadinessInterval: 5 * time.Second,
		StopGracePeriod:   6 * time.Second,
		KillWait:          5 * time.Second,
	}
}

// InitializeParams ...
type InitializeParams struct {
	Host         string
	SourcePath   string
	AirInterface string
	CmdPrefix    string
	Args         string
}

// TerminateParams ...
type TerminateParams struct {
	Host         string
	SourcePath   string
	AirInterface string
	Thresholds   analyzer.Thresholds
	RTStats      *analyzer.RTStatsConfig
}

// Manager starts and stops the base station softmodem and judges its log.
type Manager interface {
	Initialize(ctx testcase.RunContext, params InitializeParams) (testcase.ActionResult, error)
	Terminate(ctx testcase.RunContext, params TerminateParams) (testcase.ActionResult, error)
}

type manager struct {
	logger   log.Logger
	gateway  remote.Gateway
	archiver archive.Archiver
	analyzer analyzer.Analyzer
	cfg      Config

	// launchOptions remembers the options each host was started with.
	launchOptions map[string]string
}

// NewManager ...
func NewManager(logger log.Logger, gateway remote.Gateway, archiver archive.Archiver, logAnalyzer analyzer.Analyzer, cfg Config) Manager {
	return &manager{
		logger:        logger,
		gateway:       gateway,
		archiver:      archiver,
		analyzer:      logAnalyzer,
		cfg:           cfg,
		launchOptions: map[string]string{},
	}
}

// Executable returns the softmodem binary name for an air interface.
func Executable(airInterface string) string {
	switch strings.ToLower(airInterface) {
	case "lte", "lte-softmodem":
		return "lte-softmodem"
	default:
		return "nr-softmodem"
	}
}

func splitLaunchArgs(args string) (string, []string, error) {
	fields, err := shellquote.Split(args)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse launch arguments (%s): %w", args, err)
	}

	var configFile string
	var extra []string
	for i := 0; i < len(fields); i++ {
		if fields[i] == "-O" && i+1 < len(fields) && strings.HasSuffix(fields[i+1], ".conf") && configFile == "" {
			configFile = fields[i+1]
			i++
			continue
		}
		extra = append(extra, fields[i])
	}

	if configFile == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrMissingConfigFile, args)
	}
	return configFile, extra, nil
}

func (m *manager) Initialize(ctx testcase.RunContext, params InitializeParams) (testcase.ActionResult, error) {
	configFile, extra, err := splitLaunchArgs(params.Args)
	if err != nil {
		return testcase.ActionResult{}, err
	}
	if !filepath.IsAbs(configFile) {
		configFile = filepath.Join(params.SourcePath, configFile)
	}

	executable := Executable(params.AirInterface)
	buildDir := filepath.Join(params.SourcePath, "cmake_targets")
	logFile := filepath.Join(buildDir, logFileName)

	launch := fmt.Sprintf("cd %s && rm -f %s && sudo -E stdbuf -o0 %s %s -O %s %s > %s 2>&1 &",
		shellquote.Join(buildDir),
		shellquote.Join(logFileName),
		params.CmdPrefix,
		shellquote.Join(filepath.Join(buildDir, "ran_build", "build", executable)),
		shellquote.Join(configFile),
		shellquote.Join(extra...),
		shellquote.Join(logFile),
	)

	m.logger.Infof("Starting %s on %s", executable, params.Host)
	out, err := m.gateway.Run(params.Host, launch)
	if err != nil {
		return testcase.ActionResult{}, err
	}
	if !out.Succeeded() {
		return testcase.Failed(fmt.Sprintf("Could not launch %s", executable), out.String()), nil
	}

	if m.waitForReadiness(params.Host, logFile) {
		m.launchOptions[params.Host] = params.Args
		m.logger.Donef("%s started on %s", executable, params.Host)
		return testcase.Passed(fmt.Sprintf("%s started", executable), fmt.Sprintf("Configuration: %s", configFile)), nil
	}

	m.logger.Errorf("%s did not reach readiness on %s, killing it", executable, params.Host)
	m.runIgnoringFailure(params.Host, fmt.Sprintf("sudo killall -9 %s", executable))

	details := []string{fmt.Sprintf("No readiness message (%s) after %d checks", readinessPattern, m.cfg.ReadinessAttempts)}
	if archived, err := m.archiver.Archive(ctx, params.Host, logFile); err != nil {
		m.logger.Warnf("%s", err)
	} else {
		details = append(details, fmt.Sprintf("Log archived to %s", archived))
	}

	return testcase.Failed(fmt.Sprintf("%s did not start", executable), details...), nil
}

func (m *manager) waitForReadiness(host, logFile string) bool {
	attempts := m.cfg.ReadinessAttempts
	if attempts == 0 {
		attempts = 1
	}

	check := fmt.Sprintf("grep -E --text --color=never %s %s", shellquote.Join(readinessPattern), shellquote.Join(logFile))

	time.Sleep(m.cfg.ReadinessInterval)
	err := retry.Times(attempts - 1).Wait(m.cfg.ReadinessInterval).Try(func(attempt uint) error {
		out, err := m.gateway.Run(host, check)
		if err != nil {
			return err
		}
		if !out.Succeeded() {
			m.logger.Debugf("Readiness check %d/%d: not ready yet", attempt+1, attempts)
			return errors.New("softmodem not ready")
		}
		return nil
	})

	return err == nil
}

func (m *manager) runIgnoringFailure(host, cmdline string) {
	out, err := m.gateway.Run(host, cmdline)
	if err != nil {
		m.logger.Warnf("%s", err)
	} else if !out.Succeeded() {
		m.logger.Debugf("%s exited with %d: %s", cmdline, out.ExitCode, out.String())
	}
}

func (m *manager) isRunning(host string) bool {
	out, err := m.gateway.Run(host, "ps -aux | grep --color=never -e softmodem | grep -v grep")
	return err == nil && out.Succeeded() && out.String() != ""
}

// stop sends SIGINT first and SIGKILL after the grace period.
func (m *manager) stop(host string) {
	if !m.isRunning(host) {
		m.logger.Printf("No softmodem running on %s", host)
		return
	}

	m.runIgnoringFailure(host, "sudo -S killall --signal SIGINT -r .*-softmodem")
	time.Sleep(m.cfg.StopGracePeriod)

	if m.isRunning(host) {
		m.logger.Warnf("Softmodem still running on %s after SIGINT, sending SIGKILL", host)
		m.runIgnoringFailure(host, "sudo -S killall --signal SIGKILL -r .*-softmodem")
		time.Sleep(m.cfg.KillWait)
	}
}

func (m *manager) Terminate(ctx testcase.RunContext, params TerminateParams) (testcase.ActionResult, error) {
	m.logger.Infof("Stopping softmodem on %s", params.Host)
	m.stop(params.Host)

	buildDir := filepath.Join(params.SourcePath, "cmake_targets")
	logPath, err := m.archiver.Archive(ctx, params.Host, filepath.Join(buildDir, logFileName))
	if err != nil {
		m.logger.Errorf("%s", err)
		return testcase.Failed("Could not copy xNB logfile to analyze it!"), nil
	}

	opts := analyzer.Options{
		AirInterface:       params.AirInterface,
		CommandLineOptions: m.launchOptions[params.Host],
		Thresholds:         params.Thresholds,
		RTStats:            params.RTStats,
	}
	for _, name := range []string{l1StatsFileName, macStatsFileName} {
		if _, err := m.archiver.Archive(ctx, params.Host, filepath.Join(buildDir, name)); err != nil {
			m.logger.Debugf("No %s to archive: %s", name, err)
		}
	}
	delete(m.launchOptions, params.Host)

	verdict, err := m.analyzer.Analyze(logPath, opts)
	if err != nil {
		m.logger.Errorf("%s", err)
		return testcase.Failed("Could not analyze xNB logfile", err.Error()), nil
	}

	return VerdictResult(verdict), nil
}

// VerdictResult converts an analysis verdict into an action result.
func VerdictResult(verdict analyzer.Verdict) testcase.ActionResult {
	message := fmt.Sprintf("%s log analysis: %s", verdictNode(verdict), verdict.Code)

	result := testcase.ActionResult{
		Passed:  verdict.Passed(),
		Message: message,
		Details: verdict.Report,
	}
	if len(verdict.RealTime) > 0 {
		result.Tables = append(result.Tables, realTimeTable(verdict.RealTime))
	}
	return result
}

func verdictNode(verdict analyzer.Verdict) string {
	if verdict.NodeKind == analyzer.NodeUnknown {
		return "xNB"
	}
	return string(verdict.NodeKind)
}

func realTimeTable(metrics []analyzer.RealTimeMetric) testcase.Table {
	table := testcase.Table{
		Title:  "Real-time statistics",
		Header: []string{"Metric", "Average (us)", "Max (us)", "Count", "Normalized", "Allowed", "Status"},
	}
	for _, m := range metrics {
		status := "OK"
		if m.Flagged {
			status = "DEVIATION"
		}
		table.Rows = append(table.Rows, []string{
			m.Name,
			fmt.Sprintf("%.0f", m.Average),
			fmt.Sprintf("%.0f", m.Max),
			fmt.Sprintf("%d", m.Count),
			fmt.Sprintf("%.2f", m.Normalized),
			fmt.Sprintf("%.2f..%.2f", 1-m.Deviation, 1+m.Deviation),
			status,
		})
	}
	return table
}
