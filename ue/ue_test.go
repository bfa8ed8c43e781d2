package ue

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	archivemocks "github.com/bitrise-steplib/steps-ran-test/archive/mocks"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/remote/mocks"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const infraContent = `oai_ue:
  Host: "%%current_host%%"
  InitScript: sudo ip netns add ue1
  TermScript: sudo killall nr-uesoftmodem
  AttachScript: sudo ./start-ue.sh
  DetachScript: sudo ./stop-ue.sh
  IF: oaitun_ue1
  MTU: 1500
  CmdPrefix: sudo ip netns exec ue1
  Tracing:
    Start: ./trace.sh start
    Stop: ./trace.sh stop
    Collect: ./trace.sh collect %%log_dir%%
quectel:
  Host: ue-host-2
  AttachScript: ./at-attach.sh
  NetworkScript: ip a show dev wwan0
`

const ipAddressOutput = `5: oaitun_ue1: <POINTOPOINT,MULTICAST,NOARP,UP,LOWER_UP> mtu 1500 qdisc fq_codel state UNKNOWN
    inet 12.1.1.2/24 brd 12.1.1.255 scope global oaitun_ue1`

func loadInfra(t *testing.T) Infrastructure {
	pth := filepath.Join(t.TempDir(), "infra.yaml")
	require.NoError(t, fileutil.NewFileManager().Write(pth, infraContent, 0600))

	infra, err := LoadInfrastructure(pth)
	require.NoError(t, err)
	return infra
}

func Test_GivenInfrastructureFile_WhenResolvingModules_ThenBindsHosts(t *testing.T) {
	// Given
	infra := loadInfra(t)

	// When
	oai, err := infra.Resolve("oai_ue", "ran-node-1")
	require.NoError(t, err)
	quectel, err := infra.Resolve("quectel", "ran-node-1")
	require.NoError(t, err)
	_, unknownErr := infra.Resolve("missing", "ran-node-1")

	// Then
	assert.Equal(t, "ran-node-1", oai.Host)
	assert.Equal(t, "oaitun_ue1", oai.Definition.Interface)
	assert.Equal(t, 1500, oai.Definition.MTU)
	assert.Equal(t, "ue-host-2", quectel.Host)
	assert.Error(t, unknownErr)
	assert.Equal(t, []string{"oai_ue", "quectel"}, infra.Names())
}

func Test_GivenCollectWithoutLogDir_WhenLoadingInfrastructure_ThenFails(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "infra.yaml")
	require.NoError(t, fileutil.NewFileManager().Write(pth, "ue:\n  Tracing:\n    Collect: ./collect.sh\n", 0600))

	// When
	_, err := LoadInfrastructure(pth)

	// Then
	assert.Error(t, err)
}

func Test_GivenUEGettingAnAddress_WhenAttaching_ThenReturnsIP(t *testing.T) {
	// Given
	infra := loadInfra(t)
	m, err := infra.Resolve("oai_ue", "ran-node-1")
	require.NoError(t, err)

	gateway := mocks.NewGateway(t)
	gateway.On("Run", "ran-node-1", "sudo ./start-ue.sh").Return(remote.Output{}, nil).Once()
	gateway.On("Run", "ran-node-1", "ip address show dev oaitun_ue1").Return(remote.Output{RawOut: []byte("no address yet")}, nil).Once()
	gateway.On("Run", "ran-node-1", "ip address show dev oaitun_ue1").Return(remote.Output{RawOut: []byte(ipAddressOutput)}, nil).Once()

	controller := NewController(log.NewLogger(), gateway, archivemocks.NewArchiver(t), Config{AttachAttempts: 3, IPPollAttempts: 2})

	// When
	ip, err := controller.Attach(m)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "12.1.1.2", ip)
}

func Test_GivenUENeverGettingAnAddress_WhenAttaching_ThenDetachesBetweenAttempts(t *testing.T) {
	// Given
	infra := loadInfra(t)
	m, err := infra.Resolve("oai_ue", "ran-node-1")
	require.NoError(t, err)

	gateway := mocks.NewGateway(t)
	gateway.On("Run", "ran-node-1", "sudo ./start-ue.sh").Return(remote.Output{}, nil).Twice()
	gateway.On("Run", "ran-node-1", "ip address show dev oaitun_ue1").Return(remote.Output{}, nil)
	gateway.On("Run", "ran-node-1", "sudo ./stop-ue.sh").Return(remote.Output{}, nil).Twice()

	controller := NewController(log.NewLogger(), gateway, archivemocks.NewArchiver(t), Config{AttachAttempts: 2, IPPollAttempts: 1})

	// When
	_, err = controller.Attach(m)

	// Then
	assert.ErrorIs(t, err, ErrNoIP)
	gateway.AssertNumberOfCalls(t, "Run", 2+3+2)
}

func Test_GivenInterfaceMTU_WhenChecked_ThenComparesToDefinition(t *testing.T) {
	// Given
	infra := loadInfra(t)
	m, err := infra.Resolve("oai_ue", "ran-node-1")
	require.NoError(t, err)

	gateway := mocks.NewGateway(t)
	gateway.On("Run", "ran-node-1", "ip address show dev oaitun_ue1").Return(remote.Output{RawOut: []byte(ipAddressOutput)}, nil)

	controller := NewController(log.NewLogger(), gateway, archivemocks.NewArchiver(t), DefaultConfig())

	// When
	okErr := controller.CheckMTU(m)
	m.Definition.MTU = 9000
	mismatchErr := controller.CheckMTU(m)

	// Then
	assert.NoError(t, okErr)
	assert.Error(t, mismatchErr)
}

func Test_GivenTracingModule_WhenTerminating_ThenCollectsAndArchivesTraces(t *testing.T) {
	// Given
	infra := loadInfra(t)
	m, err := infra.Resolve("oai_ue", "ran-node-1")
	require.NoError(t, err)
	ctx := testcase.RunContext{TestID: 90, LogPath: "/logs"}
	collectDir := "/tmp/ue-trace-oai_ue-000090"

	gateway := mocks.NewGateway(t)
	gateway.On("Run", "ran-node-1", "sudo killall nr-uesoftmodem").Return(remote.Output{}, nil).Once()
	gateway.On("Run", "ran-node-1", "./trace.sh stop").Return(remote.Output{}, nil).Once()
	gateway.On("Run", "ran-node-1", "mkdir -p "+collectDir+" && ./trace.sh collect "+collectDir).Return(remote.Output{}, nil).Once()
	gateway.On("Run", "ran-node-1", "ls -1 "+collectDir).Return(remote.Output{RawOut: []byte("ue.pcap\nue_stats.log\n")}, nil).Once()

	archiver := archivemocks.NewArchiver(t)
	archiver.On("Archive", ctx, "ran-node-1", collectDir+"/ue.pcap").Return("/logs/000090-ue.pcap", nil).Once()
	archiver.On("Archive", ctx, "ran-node-1", collectDir+"/ue_stats.log").Return("/logs/000090-ue_stats.log", nil).Once()

	controller := NewController(log.NewLogger(), gateway, archiver, DefaultConfig())

	// When
	archived, err := controller.Terminate(ctx, m)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"/logs/000090-ue.pcap", "/logs/000090-ue_stats.log"}, archived)
}

func Test_GivenFailingScript_WhenCheckingStatus_ThenReturnsError(t *testing.T) {
	// Given
	m := Module{Name: "quectel", Host: "ue-host-2", Definition: Definition{CheckStatusScript: "./status.sh"}}

	gateway := mocks.NewGateway(t)
	gateway.On("Run", "ue-host-2", "./status.sh").Return(remote.Output{ExitCode: 2, RawOut: []byte("modem not found")}, nil).Once()

	controller := NewController(log.NewLogger(), gateway, archivemocks.NewArchiver(t), DefaultConfig())

	// When
	_, err := controller.CheckStatus(m)

	// Then
	assert.ErrorContains(t, err, "modem not found")
}
