package output

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-ran-test/archive"
	archivemocks "github.com/bitrise-steplib/steps-ran-test/archive/mocks"
	"github.com/bitrise-steplib/steps-ran-test/output/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testingMocks struct {
	envRepository  *mocks.Repository
	outputExporter *mocks.OutputExporter
	resultExporter *archivemocks.ResultExporter
}

func Test_GivenSuccessfulSequence_WhenExportingTestRunResults_ThenSetsEnvVariableToSuccess(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks("")

	// When
	exporter.ExportTestRunResult(false)

	// Then
	mocks.envRepository.AssertCalled(t, "Set", testResultEnvKey, "succeeded")
}

func Test_GivenFailedSequence_WhenExportingTestRunResults_ThenSetsEnvVariableToFailure(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks("")

	// When
	exporter.ExportTestRunResult(true)

	// Then
	mocks.envRepository.AssertCalled(t, "Set", testResultEnvKey, "failed")
}

func Test_GivenReports_WhenExporting_ThenCopiesThemAndSetsEnvVariables(t *testing.T) {
	// Given
	logDir := t.TempDir()
	deployDir := t.TempDir()
	textPath := filepath.Join(logDir, "ran_test_report.txt")
	htmlPath := filepath.Join(logDir, "ran_test_report.html")
	require.NoError(t, fileutil.NewFileManager().Write(textPath, "report", 0644))
	require.NoError(t, fileutil.NewFileManager().Write(htmlPath, "<html></html>", 0644))

	exporter, mocks := createSutAndMocks("")

	// When
	err := exporter.ExportReport(deployDir, textPath, htmlPath)

	// Then
	require.NoError(t, err)
	mocks.envRepository.AssertCalled(t, "Set", reportPathEnvKey, filepath.Join(deployDir, "ran_test_report.txt"))
	mocks.envRepository.AssertCalled(t, "Set", htmlReportPathEnvKey, filepath.Join(deployDir, "ran_test_report.html"))
	assert.True(t, isPathExists(filepath.Join(deployDir, "ran_test_report.txt")))
	assert.True(t, isPathExists(filepath.Join(deployDir, "ran_test_report.html")))
}

func Test_GivenMissingReport_WhenExporting_ThenFails(t *testing.T) {
	// Given
	deployDir := t.TempDir()
	exporter, mocks := createSutAndMocks("")

	// When
	err := exporter.ExportReport(deployDir, filepath.Join(t.TempDir(), "ran_test_report.txt"), "")

	// Then
	assert.Error(t, err)
	mocks.envRepository.AssertNotCalled(t, "Set", reportPathEnvKey, mock.Anything)
}

func Test_GivenLogDir_WhenExportingLogs_ThenZipsItIntoDeployDir(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks("")

	// When
	err := exporter.ExportLogs("/deploy", "/logs")

	// Then
	require.NoError(t, err)
	mocks.outputExporter.AssertCalled(t, "ExportOutputFilesZip", logsZipPathEnvKey, []string{"/logs"}, "/deploy/ran_test_logs.zip")
}

func Test_GivenZipFailure_WhenExportingLogs_ThenReturnsError(t *testing.T) {
	// Given
	envRepository := new(mocks.Repository)
	outputExporter := new(mocks.OutputExporter)
	outputExporter.On("ExportOutputFilesZip", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("disk full"))
	exporter := NewExporter(envRepository, log.NewLogger(), outputExporter, new(archivemocks.ResultExporter))

	// When
	err := exporter.ExportLogs("/deploy", "/logs")

	// Then
	assert.EqualError(t, err, "failed to export BITRISE_RAN_TEST_LOGS_ZIP_PATH: disk full")
}

func Test_GivenTestResultDir_WhenExportingTestResults_ThenCopiesLogDir(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks("/results")

	// When
	exporter.ExportTestResults("/logs", "RFSIM SA")

	// Then
	mocks.resultExporter.AssertCalled(t, "CopyAndSaveMetadata", archive.ResultCopy{
		SourceDir:        "/logs",
		TargetResultPath: "/results",
		TargetBundleName: "RFSIM SA",
	})
}

func Test_GivenNoTestResultDir_WhenExportingTestResults_ThenNothingIsCopied(t *testing.T) {
	// Given
	exporter, mocks := createSutAndMocks("")

	// When
	exporter.ExportTestResults("/logs", "RFSIM SA")

	// Then
	mocks.resultExporter.AssertNotCalled(t, "CopyAndSaveMetadata", mock.Anything)
}

// Helpers

func createSutAndMocks(testResultDir string) (Exporter, testingMocks) {
	envRepository := new(mocks.Repository)
	envRepository.On("Set", mock.Anything, mock.Anything).Return(nil)
	envRepository.On("Get", configs.BitrisePerStepTestResultDirEnvKey).Return(testResultDir)

	outputExporter := new(mocks.OutputExporter)
	outputExporter.On("ExportOutputFilesZip", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	resultExporter := new(archivemocks.ResultExporter)
	resultExporter.On("CopyAndSaveMetadata", mock.Anything).Return(nil)

	exporter := NewExporter(envRepository, log.NewLogger(), outputExporter, resultExporter)

	return exporter, testingMocks{
		envRepository:  envRepository,
		outputExporter: outputExporter,
		resultExporter: resultExporter,
	}
}

func isPathExists(path string) bool {
	isExist, _ := pathutil.NewPathChecker().IsPathExists(path)
	return isExist
}
