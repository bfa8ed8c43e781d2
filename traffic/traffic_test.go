package traffic

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/remote/mocks"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pingOutput = `PING 12.1.1.1 (12.1.1.1) 56(84) bytes of data.
64 bytes from 12.1.1.1: icmp_seq=1 ttl=64 time=21.3 ms

--- 12.1.1.1 ping statistics ---
20 packets transmitted, 19 received, 5% packet loss, time 19027ms
rtt min/avg/max/mdev = 12.512/24.750/40.100/6.210 ms`

const iperf3Output = `Connecting to host 12.1.1.1, port 5201
[  5]   0.00-10.00  sec  5.96 MBytes  5.00 Mbits/sec  0.000 ms  0/4316 (0%)  sender
[  5]   0.00-10.01  sec  5.90 MBytes  4.95 Mbits/sec  0.123 ms  43/4316 (1%)  receiver

iperf Done.`

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

func createRunnerAndGateway(t *testing.T) (Runner, *mocks.Gateway, testcase.RunContext) {
	gateway := mocks.NewGateway(t)
	ctx := testcase.RunContext{Count: 1, TestID: 40, LogPath: t.TempDir()}
	return NewRunner(log.NewLogger(), gateway, fileutil.NewFileManager()), gateway, ctx
}

func Test_GivenPingSummary_WhenParsed_ThenReadsLossAndRTT(t *testing.T) {
	// When
	stats, err := ParsePingOutput(pingOutput)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 5.0, stats.PacketLoss)
	assert.Equal(t, 24.75, stats.RTTAvg)
	assert.Equal(t, 40.1, stats.RTTMax)
}

func Test_GivenTotalPacketLoss_WhenParsed_ThenRTTIsMissing(t *testing.T) {
	// When
	stats, err := ParsePingOutput("5 packets transmitted, 0 received, 100% packet loss, time 4100ms")

	// Then
	require.NoError(t, err)
	assert.Equal(t, 100.0, stats.PacketLoss)
	assert.Zero(t, stats.RTTAvg)
}

func Test_GivenPingWithinThresholds_WhenRun_ThenPassesAndSavesOutput(t *testing.T) {
	// Given
	runner, gateway, ctx := createRunnerAndGateway(t)
	client := Endpoint{Name: "oai_ue", Host: "ue-host", CmdPrefix: "sudo ip netns exec ue1"}
	gateway.On("Run", "ue-host", "sudo ip netns exec ue1 ping -c 20 12.1.1.1").Return(remote.Output{RawOut: []byte(pingOutput)}, nil).Once()

	// When
	result, err := runner.Ping(ctx, client, "12.1.1.1", PingParams{Args: "-c 20", PacketLossThreshold: 10, RTTAvgThreshold: 50})

	// Then
	require.NoError(t, err)
	assert.True(t, result.Passed)
	saved, err := os.ReadFile(filepath.Join(ctx.LogPath, "000040-ping_oai_ue.log"))
	require.NoError(t, err)
	assert.Equal(t, pingOutput, string(saved))
}

func Test_GivenPingAboveThresholds_WhenRun_ThenFails(t *testing.T) {
	// Given
	runner, gateway, ctx := createRunnerAndGateway(t)
	client := Endpoint{Name: "oai_ue", Host: "ue-host"}
	gateway.On("Run", "ue-host", mock.Anything).Return(remote.Output{RawOut: []byte(pingOutput), ExitCode: 1}, nil)

	// When
	lossResult, err := runner.Ping(ctx, client, "12.1.1.1", PingParams{Args: "-c 20", PacketLossThreshold: 2})
	require.NoError(t, err)
	rttResult, err := runner.Ping(ctx, client, "12.1.1.1", PingParams{Args: "-c 20", PacketLossThreshold: 10, RTTAvgThreshold: 20})
	require.NoError(t, err)

	// Then
	assert.False(t, lossResult.Passed)
	assert.Equal(t, "oai_ue: packet loss too high", lossResult.Message)
	assert.False(t, rttResult.Passed)
	assert.Equal(t, "oai_ue: RTT average too high", rttResult.Message)
}

func Test_GivenBitrateValues_WhenParsed_ThenAppliesUnits(t *testing.T) {
	for value, expected := range map[string]float64{"10M": 10e6, "500K": 500e3, "1G": 1e9, "2.5m": 2.5e6, "64000": 64000} {
		parsed, err := ParseBitrate(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, parsed, value)
	}

	_, err := ParseBitrate("fast")
	assert.Error(t, err)
}

func Test_GivenIperfOutput_WhenParsed_ThenReceiverSummaryWins(t *testing.T) {
	// When
	stats, err := ParseIperfOutput(iperf3Output)

	// Then
	require.NoError(t, err)
	assert.InDelta(t, 4.95e6, stats.Bitrate, 1)
	assert.Equal(t, 43, stats.Lost)
	assert.Equal(t, 4316, stats.Total)
	assert.Equal(t, 1.0, stats.PacketLoss)
}

func Test_GivenProfiles_WhenSharingTarget_ThenSplitsPerUE(t *testing.T) {
	assert.Equal(t, []float64{5e6, 5e6}, TargetBitrates(10e6, ProfileBalanced, 2))
	assert.Equal(t, []float64{10e6, 0, 0}, TargetBitrates(10e6, ProfileSingleUE, 3))
	assert.InDeltaSlice(t, []float64{9.6e6, 0.2e6, 0.2e6}, TargetBitrates(10e6, ProfileUnbalanced, 3), 1)
}

func Test_GivenIperf3Run_WhenReceiverMeetsThresholds_ThenPasses(t *testing.T) {
	// Given
	runner, gateway, ctx := createRunnerAndGateway(t)
	server := Endpoint{Name: "server", Host: "srv", IP: "12.1.1.1"}
	client := Endpoint{Name: "oai_ue", Host: "ue-host"}

	gateway.On("Run", "srv", "iperf3 --version").Return(remote.Output{RawOut: []byte("iperf 3.9 (cJSON 1.7.13)")}, nil).Once()
	gateway.On("Run", "srv", "iperf3 -s -D -1").Return(remote.Output{}, nil).Once()
	gateway.On("Run", "ue-host", "iperf3 -c 12.1.1.1 -u -b 5000000 -t 10").Return(remote.Output{RawOut: []byte(iperf3Output)}, nil).Once()
	gateway.On("Run", "srv", containing("pkill -f")).Return(remote.Output{}, nil).Once()

	// When
	result, err := runner.Iperf(ctx, []Endpoint{client}, server, IperfParams{Args: "-b 5M -t 10", PacketLossThreshold: 5, BitrateThreshold: 90})

	// Then
	require.NoError(t, err)
	assert.True(t, result.Passed, result.Details)
}

func Test_GivenIperf3Run_WhenBitrateBelowThreshold_ThenFails(t *testing.T) {
	// Given
	runner, gateway, ctx := createRunnerAndGateway(t)
	server := Endpoint{Name: "server", Host: "srv", IP: "12.1.1.1"}
	client := Endpoint{Name: "oai_ue", Host: "ue-host"}

	gateway.On("Run", "srv", "iperf3 --version").Return(remote.Output{RawOut: []byte("iperf 3.9 (cJSON 1.7.13)")}, nil).Once()
	gateway.On("Run", "srv", "iperf3 -s -D -1").Return(remote.Output{}, nil).Once()
	gateway.On("Run", "ue-host", containing("iperf3 -c 12.1.1.1")).Return(remote.Output{RawOut: []byte(iperf3Output)}, nil).Once()
	gateway.On("Run", "srv", containing("pkill -f")).Return(remote.Output{}, nil).Once()

	// When
	result, err := runner.Iperf(ctx, []Endpoint{client}, server, IperfParams{Args: "-b 10M", PacketLossThreshold: 5, BitrateThreshold: 90})

	// Then
	require.NoError(t, err)
	assert.False(t, result.Passed)
	assert.Equal(t, "iperf failed", result.Message)
	assert.Contains(t, result.Details, "oai_ue: bitrate too low")
}

func Test_GivenOldIperf3_WhenRun_ThenFailsBeforeTraffic(t *testing.T) {
	// Given
	runner, gateway, ctx := createRunnerAndGateway(t)
	gateway.On("Run", "srv", "iperf3 --version").Return(remote.Output{RawOut: []byte("iperf 3.0.11")}, nil).Once()

	// When
	result, err := runner.Iperf(ctx, []Endpoint{{Name: "ue", Host: "ue-host"}}, Endpoint{Host: "srv", IP: "12.1.1.1"}, IperfParams{Args: "-b 1M"})

	// Then
	require.NoError(t, err)
	assert.False(t, result.Passed)
	gateway.AssertNumberOfCalls(t, "Run", 1)
}

func Test_GivenArgumentsWithoutTarget_WhenRunningIperf_ThenReturnsError(t *testing.T) {
	// Given
	runner, _, ctx := createRunnerAndGateway(t)

	// When
	_, err := runner.Iperf(ctx, nil, Endpoint{Host: "srv"}, IperfParams{Args: "-t 10"})

	// Then
	assert.Error(t, err)
}
