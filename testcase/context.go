package testcase

import "fmt"

// RunContext carries the per-case execution context handed to actions.
type RunContext struct {
	Count   int
	TestID  int
	LogPath string
}

// BaseFilename namespaces the artifacts of the running case.
func (c RunContext) BaseFilename() string {
	return fmt.Sprintf("%s/%06d", c.LogPath, c.TestID)
}

// ArtifactName returns the archived name of a file produced by the running case.
func (c RunContext) ArtifactName(basename string) string {
	return fmt.Sprintf("%s-%s", c.BaseFilename(), basename)
}

// ActionResult is the outcome of one dispatched action.
type ActionResult struct {
	Passed  bool
	Message string
	Details []string
	Tables  []Table
}

// Table is extra tabular data attached to an action result.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Passed ...
func Passed(message string, details ...string) ActionResult {
	return ActionResult{Passed: true, Message: message, Details: details}
}

// Failed ...
func Failed(message string, details ...string) ActionResult {
	return ActionResult{Passed: false, Message: message, Details: details}
}

// Merge folds several results into one, failed as soon as any of them failed.
func Merge(passMessage, failMessage string, results ...ActionResult) ActionResult {
	merged := ActionResult{Passed: true, Message: passMessage}
	for _, result := range results {
		if !result.Passed {
			merged.Passed = false
			merged.Message = failMessage
		}
		merged.Details = append(merged.Details, result.Message)
		for _, detail := range result.Details {
			merged.Details = append(merged.Details, "  "+detail)
		}
		merged.Tables = append(merged.Tables, result.Tables...)
	}
	return merged
}
