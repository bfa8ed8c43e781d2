package compose

import (
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/analyzer"
	analyzermocks "github.com/bitrise-steplib/steps-ran-test/analyzer/mocks"
	archivemocks "github.com/bitrise-steplib/steps-ran-test/archive/mocks"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/remote/mocks"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	host        = "cn-host"
	yamlPath    = "/opt/ran/ci-scripts/yaml_files/5g_rfsimulator"
	composeFile = yamlPath + "/docker-compose.yaml"
)

var runCtx = testcase.RunContext{Count: 2, TestID: 50, LogPath: "/logs"}

type testingMocks struct {
	gateway  *mocks.Gateway
	archiver *archivemocks.Archiver
	analyzer *analyzermocks.Analyzer
}

func createSutAndMocks(t *testing.T) (Deployer, testingMocks) {
	gateway := mocks.NewGateway(t)
	archiver := archivemocks.NewArchiver(t)
	logAnalyzer := analyzermocks.NewAnalyzer(t)

	gateway.On("Run", host, "ls -1 "+yamlPath+"/docker-compose.y*ml").Return(remote.Output{RawOut: []byte(composeFile + "\n")}, nil).Once()

	return NewDeployer(log.NewLogger(), gateway, archiver, logAnalyzer, 0), testingMocks{
		gateway:  gateway,
		archiver: archiver,
		analyzer: logAnalyzer,
	}
}

func containing(parts ...string) interface{} {
	return mock.MatchedBy(func(cmdline string) bool {
		for _, part := range parts {
			if !strings.Contains(cmdline, part) {
				return false
			}
		}
		return true
	})
}

func Test_GivenFlakyDeployment_WhenDeploying_ThenRetriesUntilServicesAreUp(t *testing.T) {
	// Given
	deployer, mocks := createSutAndMocks(t)
	up := "docker compose -f " + composeFile + " up -d --wait oai-nr-ue oai-gnb"
	mocks.gateway.On("Run", host, up).Return(remote.Output{ExitCode: 1, RawOut: []byte("container unhealthy")}, nil).Once()
	mocks.gateway.On("Run", host, up).Return(remote.Output{}, nil).Once()

	// When
	result, err := deployer.Deploy(runCtx, DeployParams{Host: host, YAMLPath: yamlPath, Services: []string{"oai-nr-ue", "oai-gnb"}, Attempts: 3})

	// Then
	require.NoError(t, err)
	assert.True(t, result.Passed)
	mocks.gateway.AssertNumberOfCalls(t, "Run", 3)
}

func Test_GivenBrokenDeployment_WhenAttemptsRunOut_ThenFailsWithOutputTail(t *testing.T) {
	// Given
	deployer, mocks := createSutAndMocks(t)
	mocks.gateway.On("Run", host, containing("up -d --wait")).Return(remote.Output{ExitCode: 1, RawOut: []byte("container oai-gnb is unhealthy")}, nil).Twice()

	// When
	result, err := deployer.Deploy(runCtx, DeployParams{Host: host, YAMLPath: yamlPath, Services: []string{"oai-gnb"}, Attempts: 2})

	// Then
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, []string{"Gave up after 2 attempts", "container oai-gnb is unhealthy"}, result.Details)
}

func Test_GivenMissingComposeFile_WhenDeploying_ThenFails(t *testing.T) {
	// Given
	gateway := mocks.NewGateway(t)
	gateway.On("Run", host, containing("ls -1")).Return(remote.Output{ExitCode: 2}, nil).Once()
	deployer := NewDeployer(log.NewLogger(), gateway, archivemocks.NewArchiver(t), analyzermocks.NewAnalyzer(t), 0)

	// When
	result, err := deployer.Deploy(runCtx, DeployParams{Host: host, YAMLPath: yamlPath})

	// Then
	require.NoError(t, err)
	assert.False(t, result.Passed)
}

func Test_GivenDeployedServices_WhenUndeploying_ThenCollectsLogsAnalyzesBaseStationAndTearsDown(t *testing.T) {
	// Given
	deployer, mocks := createSutAndMocks(t)
	thresholds := analyzer.Thresholds{DLRetx: []float64{10, 100, 100, 100}}

	mocks.gateway.On("Run", host, "docker compose -f "+composeFile+" config --services").Return(remote.Output{RawOut: []byte("oai-gnb\nmysql\n")}, nil).Once()
	mocks.gateway.On("Run", host, containing("logs --no-color --no-log-prefix oai-gnb", "/tmp/oai-gnb-enb.log")).Return(remote.Output{}, nil).Once()
	mocks.gateway.On("Run", host, containing("logs --no-color --no-log-prefix mysql", "/tmp/mysql-enb.log")).Return(remote.Output{}, nil).Once()
	mocks.archiver.On("Archive", runCtx, host, "/tmp/oai-gnb-enb.log").Return("/logs/000050-oai-gnb-enb.log", nil).Once()
	mocks.archiver.On("Archive", runCtx, host, "/tmp/mysql-enb.log").Return("/logs/000050-mysql-enb.log", nil).Once()
	mocks.analyzer.On("Analyze", "/logs/000050-oai-gnb-enb.log", analyzer.Options{AirInterface: "nr", Thresholds: thresholds}).
		Return(analyzer.Verdict{Code: analyzer.RetxIssue, NodeKind: analyzer.NodeGNB, Report: []string{"retransmissions too high"}}, nil).Once()
	mocks.gateway.On("Run", host, "docker compose -f "+composeFile+" down -v").Return(remote.Output{}, nil).Once()

	// When
	result, err := deployer.Undeploy(runCtx, UndeployParams{Host: host, YAMLPath: yamlPath, Thresholds: thresholds})

	// Then
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "Undeployment of oai-gnb, mysql found issues", result.Message)
	assert.Contains(t, result.Details, "retransmissions too high")
}
