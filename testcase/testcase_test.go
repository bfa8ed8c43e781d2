package testcase

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testListContent = `name: nsa-b200
tab_ref: test-nsa-b200
tab_name: NSA B200
requested: "000010 000020 000100 0003+"
excluded: "000310"
test_cases:
  - id: "000010"
    class: Initialize_eNB
    desc: Initialize eNB
    always_exec: yes
    Initialize_eNB_args: -O ci-scripts/conf_files/enb.band7.conf --sa
    rt_stats_cfg: datalog_rt_stats.2x2.yaml
  - id: "000020"
    class: Ping
    desc: Ping from UE
    may_fail: true
    id_list: [oai_ue, quectel]
    ping_packetloss_threshold: 5
  - id: "000100"
    class: Terminate_eNB
    d_retx_th: "10,100,100,100"
    u_retx_th: [5, 50]
  - id: "000300"
    class: IdleSleep
  - id: "000310"
    class: IdleSleep
`

func Test_GivenTestListFile_WhenLoaded_ThenDecodesCasesAndParameters(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, fileutil.NewFileManager().Write(pth, testListContent, 0600))

	// When
	list, err := LoadTestList(pth)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "nsa-b200", list.Name)
	assert.Equal(t, []string{"000010", "000020", "000100", "0003+"}, list.RequestedIDs())
	assert.Equal(t, []string{"000310"}, list.ExcludedIDs())
	require.Len(t, list.TestCases, 5)

	initialize := list.TestCases[0]
	assert.Equal(t, "Initialize_eNB", initialize.Action)
	assert.True(t, initialize.AlwaysExec)
	assert.False(t, initialize.MayFail)
	assert.Equal(t, "-O ci-scripts/conf_files/enb.band7.conf --sa", initialize.Params.StringOr("Initialize_eNB_args", ""))
	assert.Equal(t, 10, initialize.NumericID())

	ping := list.TestCases[1]
	assert.True(t, ping.MayFail)
	assert.Equal(t, []string{"oai_ue", "quectel"}, ping.Params.Fields("id_list"))
	threshold, err := ping.Params.Int("ping_packetloss_threshold", 0)
	require.NoError(t, err)
	assert.Equal(t, 5, threshold)

	terminate := list.TestCases[2]
	dl, err := terminate.Params.Floats("d_retx_th")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 100, 100, 100}, dl)
	ul, err := terminate.Params.Floats("u_retx_th")
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 50}, ul)
}

func Test_GivenInvalidTestCaseID_WhenParsed_ThenFails(t *testing.T) {
	// Given
	content := `test_cases:
  - id: "12345"
    class: IdleSleep
`

	// When
	_, err := ParseTestList([]byte(content))

	// Then
	assert.Error(t, err)
}

func Test_GivenDuplicatedTestCaseID_WhenParsed_ThenFails(t *testing.T) {
	// Given
	content := `test_cases:
  - id: "000010"
    class: IdleSleep
  - id: "000010"
    class: IdleSleep
`

	// When
	_, err := ParseTestList([]byte(content))

	// Then
	assert.Error(t, err)
}

func Test_GivenMissingParameter_WhenRead_ThenDefaultsApply(t *testing.T) {
	// Given
	params := Params{"idle_sleep_time_in_sec": ""}

	// When
	sleep, err := params.Int("idle_sleep_time_in_sec", 5)
	floats, floatsErr := params.Floats("d_retx_th")

	// Then
	require.NoError(t, err)
	require.NoError(t, floatsErr)
	assert.Equal(t, 5, sleep)
	assert.Nil(t, floats)
	assert.Equal(t, "fallback", params.StringOr("missing", "fallback"))
	assert.False(t, params.Bool("missing"))
}

func Test_GivenInvalidNumber_WhenReadAsFloats_ThenFails(t *testing.T) {
	// Given
	params := Params{"d_retx_th": "10,abc"}

	// When
	_, err := params.Floats("d_retx_th")

	// Then
	assert.Error(t, err)
}

func Test_GivenActionCatalogFile_WhenLoaded_ThenContainsListedActions(t *testing.T) {
	// Given
	pth := filepath.Join(t.TempDir(), "actions.yaml")
	require.NoError(t, fileutil.NewFileManager().Write(pth, "- Initialize_eNB\n- Terminate_eNB\n- Ping\n", 0600))

	// When
	catalog, err := LoadActionCatalog(pth)

	// Then
	require.NoError(t, err)
	assert.True(t, catalog.Contains("Ping"))
	assert.False(t, catalog.Contains("Build_eNB"))
}

func Test_GivenRunContext_WhenNamingArtifacts_ThenUsesZeroPaddedTestID(t *testing.T) {
	// Given
	ctx := RunContext{Count: 3, TestID: 30, LogPath: "/tmp/logs"}

	// When
	name := ctx.ArtifactName("enb.log")

	// Then
	assert.Equal(t, "/tmp/logs/000030", ctx.BaseFilename())
	assert.Equal(t, "/tmp/logs/000030-enb.log", name)
}
