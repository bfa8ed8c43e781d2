package output

import (
	"fmt"
	"path/filepath"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/archive"
)

const (
	testResultEnvKey     = "BITRISE_RAN_TEST_RESULT"
	reportPathEnvKey     = "BITRISE_RAN_TEST_REPORT_PATH"
	htmlReportPathEnvKey = "BITRISE_RAN_TEST_HTML_REPORT_PATH"
	logsZipPathEnvKey    = "BITRISE_RAN_TEST_LOGS_ZIP_PATH"

	logsZipName = "ran_test_logs.zip"
)

// OutputExporter is the part of the step output exporter used here.
type OutputExporter interface {
	ExportOutputFilesZip(key string, sourcePaths []string, zipPath string) error
}

// Exporter ...
type Exporter interface {
	ExportTestRunResult(failed bool)
	ExportReport(deployDir, textReportPath, htmlReportPath string) error
	ExportLogs(deployDir, logDir string) error
	ExportTestResults(logDir, name string)
}

type exporter struct {
	envRepository  env.Repository
	logger         log.Logger
	outputExporter OutputExporter
	resultExporter archive.ResultExporter
}

// NewExporter ...
func NewExporter(envRepository env.Repository, logger log.Logger, outputExporter OutputExporter, resultExporter archive.ResultExporter) Exporter {
	return &exporter{
		envRepository:  envRepository,
		logger:         logger,
		outputExporter: outputExporter,
		resultExporter: resultExporter,
	}
}

func (e exporter) ExportTestRunResult(failed bool) {
	status := "succeeded"
	if failed {
		status = "failed"
	}
	if err := e.envRepository.Set(testResultEnvKey, status); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", testResultEnvKey, err)
	}
}

// ExportReport copies the rendered reports into the deploy dir.
func (e exporter) ExportReport(deployDir, textReportPath, htmlReportPath string) error {
	reports := []struct {
		key  string
		path string
	}{
		{key: reportPathEnvKey, path: textReportPath},
		{key: htmlReportPathEnvKey, path: htmlReportPath},
	}

	for _, r := range reports {
		if r.path == "" {
			continue
		}

		deployPth := filepath.Join(deployDir, filepath.Base(r.path))
		if deployPth != r.path {
			if err := command.CopyFile(r.path, deployPth); err != nil {
				return fmt.Errorf("failed to copy report from (%s) to (%s): %w", r.path, deployPth, err)
			}
		}

		if err := e.envRepository.Set(r.key, deployPth); err != nil {
			e.logger.Warnf("Failed to export: %s: %s", r.key, err)
		}
	}

	return nil
}

// ExportLogs zips the log directory of the run into the deploy dir.
func (e exporter) ExportLogs(deployDir, logDir string) error {
	zipPath := filepath.Join(deployDir, logsZipName)
	if err := e.outputExporter.ExportOutputFilesZip(logsZipPathEnvKey, []string{logDir}, zipPath); err != nil {
		return fmt.Errorf("failed to export %s: %w", logsZipPathEnvKey, err)
	}

	return nil
}

// ExportTestResults copies the log directory to the per step test results
// location when the build provides one.
func (e exporter) ExportTestResults(logDir, name string) {
	resultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if resultPath == "" {
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.resultExporter.CopyAndSaveMetadata(archive.ResultCopy{
		SourceDir:        logDir,
		TargetResultPath: resultPath,
		TargetBundleName: name,
	}); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}
