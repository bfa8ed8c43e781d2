package step

import (
	"strings"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/stringutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/sequencer"
)

func printFailedCases(logger log.Logger, summary sequencer.Summary) {
	logger.Println()
	logger.Errorf("Failed test cases:")

	for _, row := range summary.Rows {
		if row.Status != sequencer.StatusFailed && row.Status != sequencer.StatusInvalid {
			continue
		}

		logger.Printf("- %s %s: %s", row.TestCase.ID, row.TestCase.Action, row.Result.Message)
		if len(row.Result.Details) > 0 {
			logger.Printf("%s", stringutil.LastNLines(strings.Join(row.Result.Details, "\n"), 20))
		}
	}

	if summary.HardStopped {
		logger.Warnf("The sequence stopped early, %d test case(s) were skipped.", summary.Count(sequencer.StatusSkipped))
	}

	logger.Infof("%s", colorstring.Magenta(`
The report and the logs of every test case are stored in $BITRISE_DEPLOY_DIR,
the report path is available in the $BITRISE_RAN_TEST_REPORT_PATH environment variable
and the zipped logs in $BITRISE_RAN_TEST_LOGS_ZIP_PATH.`))
}
