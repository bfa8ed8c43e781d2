package step

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/dispatcher"
	"github.com/bitrise-steplib/steps-ran-test/output"
	"github.com/bitrise-steplib/steps-ran-test/ran"
	"github.com/bitrise-steplib/steps-ran-test/report"
	"github.com/bitrise-steplib/steps-ran-test/sequencer"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/bitrise-steplib/steps-ran-test/ue"
)

// ErrSequenceFailed is returned by Run when the selected sequence did not pass.
var ErrSequenceFailed = errors.New("test sequence failed")

// Input ...
type Input struct {
	// Test list
	TestListPath      string `env:"test_list_path,required"`
	ActionCatalogPath string `env:"action_catalog_path"`
	RequestedTests    string `env:"requested_tests"`
	ExcludedTests     string `env:"excluded_tests"`

	// Environment
	RANSourcePath    string `env:"ran_source_path,required"`
	InfraFile        string `env:"infra_file"`
	RTStatsConfigDir string `env:"rt_stats_config_dir"`
	ForceLocal       bool   `env:"force_local,opt[yes,no]"`

	// Process control
	ReadinessPollAttempts        int `env:"readiness_poll_attempts"`
	ReadinessPollIntervalSeconds int `env:"readiness_poll_interval_seconds"`

	// Debug
	VerboseLog bool `env:"verbose_log,opt[yes,no]"`

	// Output export
	LogDir    string `env:"log_dir,required"`
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	Header   report.Header
	Catalog  testcase.ActionCatalog
	Selected []testcase.TestCase

	SourcePath       string
	Infrastructure   ue.Infrastructure
	RTStatsConfigDir string
	ForceLocal       bool
	RAN              ran.Config

	LogDir    string
	DeployDir string
}

// RANTestConfigParser ...
type RANTestConfigParser struct {
	inputParser stepconf.InputParser
	logger      log.Logger
}

// NewRANTestConfigParser ...
func NewRANTestConfigParser(inputParser stepconf.InputParser, logger log.Logger) RANTestConfigParser {
	return RANTestConfigParser{
		inputParser: inputParser,
		logger:      logger,
	}
}

// ProcessConfig ...
func (p RANTestConfigParser) ProcessConfig() (Config, error) {
	var input Input
	if err := p.inputParser.Parse(&input); err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	p.logger.Println()

	p.logger.EnableDebugLog(input.VerboseLog)

	list, err := testcase.LoadTestList(input.TestListPath)
	if err != nil {
		return Config{}, err
	}

	catalog := testcase.NewActionCatalog(dispatcher.KnownActions()...)
	if input.ActionCatalogPath != "" {
		catalog, err = testcase.LoadActionCatalog(input.ActionCatalogPath)
		if err != nil {
			return Config{}, err
		}
	}

	requested := strings.Fields(input.RequestedTests)
	if len(requested) == 0 {
		requested = list.RequestedIDs()
	}
	excluded := strings.Fields(input.ExcludedTests)
	if len(excluded) == 0 {
		excluded = list.ExcludedIDs()
	}
	if len(requested) == 0 {
		return Config{}, errors.New("no test requested: set requested_tests or the requested field of the test list")
	}

	selected, err := testcase.Select(list.TestCases, requested, excluded)
	if err != nil {
		return Config{}, err
	}
	if len(selected) == 0 {
		return Config{}, fmt.Errorf("no test case of %s matches the requested (%s) and excluded (%s) tests", input.TestListPath, strings.Join(requested, " "), strings.Join(excluded, " "))
	}

	var infra ue.Infrastructure
	if input.InfraFile != "" {
		infra, err = ue.LoadInfrastructure(input.InfraFile)
		if err != nil {
			return Config{}, err
		}
	}

	ranConfig := ran.DefaultConfig()
	if input.ReadinessPollAttempts > 0 {
		ranConfig.ReadinessAttempts = uint(input.ReadinessPollAttempts)
	}
	if input.ReadinessPollIntervalSeconds > 0 {
		ranConfig.ReadinessInterval = time.Duration(input.ReadinessPollIntervalSeconds) * time.Second
	}

	p.logger.Infof("Selected test cases")
	for _, tc := range selected {
		p.logger.Printf("- %s %s: %s", tc.ID, tc.Action, tc.Description)
	}
	p.logger.Println()

	return Config{
		Header: report.Header{
			Name:    list.Name,
			TabRef:  list.TabRef,
			TabName: list.TabName,
		},
		Catalog:  catalog,
		Selected: selected,

		SourcePath:       input.RANSourcePath,
		Infrastructure:   infra,
		RTStatsConfigDir: input.RTStatsConfigDir,
		ForceLocal:       input.ForceLocal,
		RAN:              ranConfig,

		LogDir:    input.LogDir,
		DeployDir: input.DeployDir,
	}, nil
}

// EngineFactory builds the sequence engine for a processed config.
type EngineFactory func(cfg Config) sequencer.Engine

// RANTestRunner ...
type RANTestRunner struct {
	logger         log.Logger
	newEngine      EngineFactory
	reportWriter   report.Writer
	outputExporter output.Exporter
}

// NewRANTestRunner ...
func NewRANTestRunner(logger log.Logger, newEngine EngineFactory, reportWriter report.Writer, outputExporter output.Exporter) RANTestRunner {
	return RANTestRunner{
		logger:         logger,
		newEngine:      newEngine,
		reportWriter:   reportWriter,
		outputExporter: outputExporter,
	}
}

// Result ...
type Result struct {
	Name           string
	Passed         bool
	LogDir         string
	DeployDir      string
	TextReportPath string
	HTMLReportPath string
}

// Run executes the selected sequence and writes its report into the log dir.
func (s RANTestRunner) Run(cfg Config) (Result, error) {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return Result{}, fmt.Errorf("failed to create log dir (%s): %w", cfg.LogDir, err)
	}

	result := Result{
		Name:      cfg.Header.Name,
		LogDir:    cfg.LogDir,
		DeployDir: cfg.DeployDir,
	}

	engine := s.newEngine(cfg)

	start := time.Now()
	summary := engine.Run(cfg.Selected)
	rep := report.New(cfg.Header, summary, time.Since(start))
	result.Passed = summary.Passed

	s.reportWriter.Print(rep)

	textPath, htmlPath, err := s.reportWriter.Write(rep, cfg.LogDir)
	if err != nil {
		s.logger.Warnf("Failed to write the report: %s", err)
	} else {
		result.TextReportPath = textPath
		result.HTMLReportPath = htmlPath
	}

	if !summary.Passed {
		printFailedCases(s.logger, summary)
		return result, ErrSequenceFailed
	}

	s.logger.Println()
	s.logger.Donef("Test sequence passed (run %s)", rep.RunID)

	return result, nil
}

// Export ...
func (s RANTestRunner) Export(result Result, failed bool) error {
	s.outputExporter.ExportTestRunResult(failed)

	if result.DeployDir == "" {
		return nil
	}

	if result.TextReportPath != "" || result.HTMLReportPath != "" {
		if err := s.outputExporter.ExportReport(result.DeployDir, result.TextReportPath, result.HTMLReportPath); err != nil {
			return err
		}
	}

	if result.LogDir != "" {
		if err := s.outputExporter.ExportLogs(result.DeployDir, result.LogDir); err != nil {
			return err
		}

		name := result.Name
		if name == "" {
			name = "ran-test"
		}
		s.outputExporter.ExportTestResults(result.LogDir, name)
	}

	return nil
}
