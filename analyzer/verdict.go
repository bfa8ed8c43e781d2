package analyzer

import (
	"fmt"
	"strings"
)

// Code is the outcome of a log analysis. Negative codes are failures.
type Code int

// Analysis outcomes ...
const (
	AllProcessesOK          Code = 0
	ProcessSegFault         Code = -11
	ProcessAssertion        Code = -12
	ProcessRealtimeIssue    Code = -13
	ProcessNoLogFile        Code = -14
	SlaveRRUNotSynced       Code = -15
	RealTimeProcessingIssue Code = -16
	RetxIssue               Code = -17
	ShutdownNoBye           Code = -18
)

func (c Code) String() string {
	switch c {
	case AllProcessesOK:
		return "all processes ok"
	case ProcessSegFault:
		return "segmentation fault"
	case ProcessAssertion:
		return "assertion"
	case ProcessRealtimeIssue:
		return "real-time issue"
	case ProcessNoLogFile:
		return "no log file"
	case SlaveRRUNotSynced:
		return "slave RRU not synchronized"
	case RealTimeProcessingIssue:
		return "real-time processing deviation"
	case RetxIssue:
		return "retransmission issue"
	case ShutdownNoBye:
		return "shutdown incomplete"
	default:
		return fmt.Sprintf("unknown (%d)", int(c))
	}
}

// IsCrash reports whether the code stands for a process fault.
func (c Code) IsCrash() bool {
	return c == ProcessSegFault || c == ProcessAssertion
}

// NodeKind is the base station flavour that produced the log.
type NodeKind string

// Node kinds ...
const (
	NodeUnknown NodeKind = ""
	NodeENB     NodeKind = "eNB"
	NodeGNB     NodeKind = "gNB"
)

func (k NodeKind) label() string {
	if k == NodeUnknown {
		return "xNB"
	}
	return string(k)
}

// HandoverCounts ...
type HandoverCounts struct {
	Inbound  int
	Outbound int
}

// LineMarker is the first occurrence of a tracked signature.
type LineMarker struct {
	Name      string
	FirstLine int
	Count     int
}

// Verdict is the result of analyzing one base station log.
type Verdict struct {
	Code     Code
	NodeKind NodeKind
	Lines    int

	// Report holds every observation, grouped by category.
	Report []string

	Counters         map[string]int
	Handover         HandoverCounts
	Markers          []LineMarker
	Retx             []RetxResult
	RealTime         []RealTimeMetric
	RuntimeStats     []string
	AssertionMessage []string
}

// Passed ...
func (v Verdict) Passed() bool {
	return v.Code >= 0
}

func (v Verdict) String() string {
	return strings.Join(v.Report, "\n")
}
