package report

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/sequencer"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() sequencer.Summary {
	return sequencer.Summary{
		Passed: false,
		Rows: []sequencer.Row{
			{TestCase: testcase.TestCase{ID: "010101", Action: "Initialize_eNB", Description: "Start gNB"}, Status: sequencer.StatusPassed, Result: testcase.Passed("nr-softmodem started")},
			{TestCase: testcase.TestCase{ID: "010102", Action: "Ping", Description: "Ping UE"}, Status: sequencer.StatusFailed, Result: testcase.Failed("ping failed", "Packet loss: 40.00%")},
			{
				TestCase: testcase.TestCase{ID: "010103", Action: "Terminate_eNB", Description: "Stop gNB"},
				Status:   sequencer.StatusPassed,
				Result: testcase.ActionResult{
					Passed:  true,
					Message: "gNB log analysis: all processes ok",
					Tables: []testcase.Table{{
						Title:  "Real-time statistics",
						Header: []string{"Metric", "Normalized"},
						Rows:   [][]string{{"feprx", "1.05"}},
					}},
				},
			},
		},
	}
}

func Test_GivenSummary_WhenRenderedAsText_ThenRowsKeepDeclarationOrder(t *testing.T) {
	// Given
	rep := New(Header{Name: "RFSIM SA", TabRef: "rfsim-5g", TabName: "5G RFSIM"}, sampleSummary(), 90*time.Second)

	// When
	content := rep.Text()

	// Then
	assert.Contains(t, content, "Run ID: "+rep.RunID)
	assert.Contains(t, content, "RFSIM SA (5G RFSIM): FAILED in 1m30s")
	first := strings.Index(content, "010101")
	second := strings.Index(content, "010102")
	third := strings.Index(content, "010103")
	assert.True(t, first >= 0 && first < second && second < third)
	assert.Contains(t, content, "Packet loss: 40.00%")
	assert.Contains(t, content, "010103 Real-time statistics")
	assert.Contains(t, content, "feprx")
}

func Test_GivenTwoReports_WhenCreated_ThenRunIDsDiffer(t *testing.T) {
	assert.NotEqual(t, New(Header{}, sequencer.Summary{}, 0).RunID, New(Header{}, sequencer.Summary{}, 0).RunID)
}

func Test_GivenReport_WhenWritten_ThenTextAndHTMLFilesAreCreated(t *testing.T) {
	// Given
	dir := t.TempDir()
	rep := New(Header{Name: "<RFSIM>"}, sampleSummary(), time.Minute)
	writer := NewWriter(log.NewLogger(), fileutil.NewFileManager())

	// When
	textPath, htmlPath, err := writer.Write(rep, dir)

	// Then
	require.NoError(t, err)
	textContent, err := os.ReadFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, rep.Text(), string(textContent))

	htmlContent, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(htmlContent), "<h1>&lt;RFSIM&gt;: FAILED in 1m0s</h1>")
	assert.Contains(t, string(htmlContent), "<table")
}
