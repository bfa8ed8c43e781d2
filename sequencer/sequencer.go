package sequencer

import (
	"fmt"
	"time"

	"github.com/bitrise-io/go-utils/colorstring"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-ran-test/dispatcher"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
)

// Status is the recorded outcome of one test case.
type Status string

const (
	StatusPassed    Status = "PASSED"
	StatusFailed    Status = "FAILED"
	StatusTolerated Status = "FAILED (tolerated)"
	StatusSkipped   Status = "SKIPPED"
	StatusInvalid   Status = "INVALID"
)

// Row is the report line of one selected test case.
type Row struct {
	TestCase testcase.TestCase
	Status   Status
	Result   testcase.ActionResult
	Duration time.Duration
}

// Summary is the outcome of a whole sequence.
type Summary struct {
	Rows        []Row
	Passed      bool
	HardStopped bool
}

// Count returns the number of rows with the given status.
func (s Summary) Count(status Status) int {
	count := 0
	for _, row := range s.Rows {
		if row.Status == status {
			count++
		}
	}
	return count
}

// Engine runs a selected test sequence.
type Engine interface {
	Run(cases []testcase.TestCase) Summary
}

type engine struct {
	logger     log.Logger
	dispatcher dispatcher.Dispatcher
	catalog    testcase.ActionCatalog
	logPath    string
}

// NewEngine ...
func NewEngine(logger log.Logger, dispatcher dispatcher.Dispatcher, catalog testcase.ActionCatalog, logPath string) Engine {
	return &engine{
		logger:     logger,
		dispatcher: dispatcher,
		catalog:    catalog,
		logPath:    logPath,
	}
}

func (e engine) Run(cases []testcase.TestCase) Summary {
	var summary Summary
	sequencePassed := true

	for i, tc := range cases {
		if summary.HardStopped {
			summary.Rows = append(summary.Rows, Row{TestCase: tc, Status: StatusSkipped, Result: testcase.Failed("Sequence stopped")})
			continue
		}

		e.logger.Println()
		e.logger.Infof("Test case %s (%d/%d): %s", tc.ID, i+1, len(cases), tc.Description)

		if !e.catalog.Contains(tc.Action) {
			e.logger.Errorf("Unknown action %s, sequence failed", tc.Action)
			sequencePassed = false
			summary.Rows = append(summary.Rows, Row{TestCase: tc, Status: StatusInvalid, Result: testcase.Failed(fmt.Sprintf("Unknown action %s", tc.Action))})
			continue
		}

		if !sequencePassed && !tc.AlwaysExec {
			e.logger.Warnf("Skipping %s and the rest of the sequence after a failure", tc.ID)
			summary.Rows = append(summary.Rows, Row{TestCase: tc, Status: StatusSkipped, Result: testcase.Failed("Skipped after a failure")})
			summary.HardStopped = true
			continue
		}

		ctx := testcase.RunContext{Count: i + 1, TestID: tc.NumericID(), LogPath: e.logPath}
		start := time.Now()
		result, err := e.dispatch(ctx, tc)
		row := Row{TestCase: tc, Result: result, Duration: time.Since(start)}

		switch {
		case err != nil:
			e.logger.Errorf("Test case %s aborted the sequence: %s", tc.ID, err)
			row.Status = StatusFailed
			row.Result = testcase.Failed(err.Error(), result.Details...)
			sequencePassed = false
			summary.HardStopped = true
		case result.Passed:
			e.logger.Donef("%s %s", colorstring.Green(string(StatusPassed)), result.Message)
			row.Status = StatusPassed
		case tc.MayFail:
			e.logger.Warnf("%s %s", StatusTolerated, result.Message)
			row.Status = StatusTolerated
		default:
			e.logger.Errorf("%s %s", StatusFailed, result.Message)
			row.Status = StatusFailed
			sequencePassed = false
		}

		summary.Rows = append(summary.Rows, row)
	}

	summary.Passed = sequencePassed && summary.Count(StatusFailed) == 0
	return summary
}

// dispatch runs one action, turning a panic into an error.
func (e engine) dispatch(ctx testcase.RunContext, tc testcase.TestCase) (result testcase.ActionResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s (%s) panicked: %v", tc.ID, tc.Action, r)
		}
	}()

	return e.dispatcher.Dispatch(ctx, tc)
}
