package analyzer

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/acarl005/stripansi"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
)

const (
	mainLogSuffix  = "-enb.log"
	l1StatsSuffix  = "-nrL1_stats.log"
	macStatsSuffix = "-nrMAC_stats.log"

	maxLineSize = 16 * 1024 * 1024
)

// ErrLogFileNotFound is returned when the log to analyze does not exist.
var ErrLogFileNotFound = errors.New("log file not found")

// Options tune a single analysis.
type Options struct {
	// AirInterface ("lte" or "nr") names the node when the log does not.
	AirInterface string
	// CommandLineOptions are the options the softmodem was started with.
	CommandLineOptions string

	Thresholds Thresholds
	RTStats    *RTStatsConfig

	// L1StatsPath and MACStatsPath default to the siblings of the main log.
	L1StatsPath  string
	MACStatsPath string
}

// Analyzer turns a base station log into a verdict.
type Analyzer interface {
	Analyze(logPath string, opts Options) (Verdict, error)
}

type analyzer struct {
	logger      log.Logger
	pathChecker pathutil.PathChecker
}

// NewAnalyzer ...
func NewAnalyzer(logger log.Logger, pathChecker pathutil.PathChecker) Analyzer {
	return &analyzer{
		logger:      logger,
		pathChecker: pathChecker,
	}
}

func (a analyzer) Analyze(logPath string, opts Options) (Verdict, error) {
	exists, err := a.pathChecker.IsPathExists(logPath)
	if err != nil {
		return Verdict{Code: ProcessNoLogFile}, fmt.Errorf("failed to check log file (%s): %w", logPath, err)
	}
	if !exists {
		return Verdict{Code: ProcessNoLogFile, Report: []string{"No log file to analyze"}}, fmt.Errorf("%w: %s", ErrLogFileNotFound, logPath)
	}

	state, err := scanFile(logPath)
	if err != nil {
		return Verdict{Code: ProcessNoLogFile}, err
	}

	if state.nodeKind == NodeUnknown {
		state.nodeKind = nodeKindFromAirInterface(opts.AirInterface)
	}

	var realTime []RealTimeMetric
	l1Path, macPath := auxiliaryStatsPaths(logPath, opts)
	if opts.RTStats != nil && l1Path != "" && macPath != "" && a.bothExist(l1Path, macPath) {
		lines, err := collectRTStatsLines(*opts.RTStats, l1Path, macPath)
		if err != nil {
			return Verdict{Code: ProcessNoLogFile}, err
		}
		realTime = evaluateRTStats(*opts.RTStats, lines)
	} else {
		a.logger.Debugf("Real-time stats files not available next to %s, skipping real-time checks", logPath)
	}

	verdict := buildVerdict(state, opts, realTime)
	a.logger.Debugf("Analyzed %s: %d lines, %s", logPath, verdict.Lines, verdict.Code)

	return verdict, nil
}

func (a analyzer) bothExist(paths ...string) bool {
	for _, pth := range paths {
		exists, err := a.pathChecker.IsPathExists(pth)
		if err != nil || !exists {
			return false
		}
	}
	return true
}

func scanFile(pth string) (*scanState, error) {
	f, err := os.Open(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file (%s): %w", pth, err)
	}
	defer func() {
		_ = f.Close()
	}()

	state := newScanState()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		state.scanLine(stripansi.Strip(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file (%s): %w", pth, err)
	}

	return state, nil
}

func nodeKindFromAirInterface(airInterface string) NodeKind {
	switch strings.ToLower(airInterface) {
	case "nr":
		return NodeGNB
	case "lte":
		return NodeENB
	default:
		return NodeUnknown
	}
}

func auxiliaryStatsPaths(logPath string, opts Options) (string, string) {
	l1Path, macPath := opts.L1StatsPath, opts.MACStatsPath
	if strings.HasSuffix(logPath, mainLogSuffix) {
		base := strings.TrimSuffix(logPath, mainLogSuffix)
		if l1Path == "" {
			l1Path = base + l1StatsSuffix
		}
		if macPath == "" {
			macPath = base + macStatsSuffix
		}
	}
	return l1Path, macPath
}

// buildVerdict appends every observation in detection order and picks the
// outcome by priority: shutdown, retransmissions, real-time deviation, crash,
// real-time issues, RRU synchronization.
func buildVerdict(state *scanState, opts Options, realTime []RealTimeMetric) Verdict {
	node := state.nodeKind.label()
	v := Verdict{
		NodeKind:         state.nodeKind,
		Lines:            state.lines,
		Counters:         map[string]int{},
		RealTime:         realTime,
		RuntimeStats:     state.runtimeStats,
		AssertionMessage: state.assertionMessage,
		Handover: HandoverCounts{
			Inbound:  state.targetHandover.completed,
			Outbound: state.sourceHandover.completed,
		},
	}
	observe := func(format string, args ...interface{}) {
		v.Report = append(v.Report, fmt.Sprintf(format, args...))
	}

	if requested, ok := requestedOption(maxRxGainPattern, opts.CommandLineOptions); ok {
		switch {
		case state.appliedMaxRxGain == "":
			observe("Command line option max_rxgain %s was not confirmed in the log", requested)
		case state.appliedMaxRxGain == requested:
			observe("Command line option(s) correctly applied")
		default:
			observe("Command line option(s) incorrectly applied: max_rxgain requested %s, applied %s", requested, state.appliedMaxRxGain)
		}
	}

	for _, c := range counterNames {
		count := state.counters[c.event]
		if count == 0 {
			continue
		}
		v.Counters[c.name] = count
		if c.event != evRealTimeLLL && c.event != evRLCDiscardBuffer {
			observe("%s: %d occurrence(s) of %s", node, count, c.name)
		}
	}

	if strings.Contains(opts.CommandLineOptions, "drx_Config_present prSetup") && state.counters[evCDRXActivation] == 0 {
		observe("%s: CDRX was requested but never activated", node)
	}

	if v.Handover.Inbound > 0 || v.Handover.Outbound > 0 {
		observe("%s: %d inbound and %d outbound X2 handover(s) completed", node, v.Handover.Inbound, v.Handover.Outbound)
	}

	for _, m := range markerNames {
		if found, ok := state.markers[m.event]; ok {
			v.Markers = append(v.Markers, LineMarker{Name: m.name, FirstLine: found.firstLine, Count: found.count})
			observe("%s: %s found %d time(s), first at line %d", node, m.name, found.count, found.firstLine)
		}
	}

	retxFailed := false
	for _, rnti := range state.retxOrder {
		stats := state.retx[rnti]
		for _, r := range []struct {
			direction Direction
			rounds    []int
			ceilings  []float64
		}{
			{Downlink, stats.dl, opts.Thresholds.DLRetx},
			{Uplink, stats.ul, opts.Thresholds.ULRetx},
		} {
			result, ok := evaluateRetx(rnti, r.direction, r.rounds, r.ceilings)
			if !ok {
				continue
			}
			v.Retx = append(v.Retx, result)
			observe("%s", result)
			if result.Failed() {
				retxFailed = true
			}
		}
	}

	rtDeviation := false
	for _, metric := range realTime {
		observe("Real-time %s", metric)
		if metric.Flagged {
			rtDeviation = true
		}
	}

	if state.assertion {
		observe("%s ended with an assertion!", node)
		for _, line := range state.assertionMessage {
			observe("  %s", line)
		}
	}
	if state.segFault {
		observe("%s ended with a Segmentation Fault!", node)
	}
	if state.coreDump {
		observe("%s ended with a core dump!", node)
	}

	lll := state.counters[evRealTimeLLL]
	if lll > 0 {
		observe("%s showed %d \"LLL\" real-time issue(s)", node, lll)
	}
	rlcDiscard := state.counters[evRLCDiscardBuffer]
	if rlcDiscard > 0 {
		observe("%s RLC discarded %d buffer(s)", node, rlcDiscard)
	}

	slaveNotSynced := state.slaveRRU && !state.rruResynced
	if slaveNotSynced {
		observe("%s: slave RRU never received a frame resynchronization", node)
	}

	if len(state.runtimeStats) > 0 {
		observe("%s runtime statistics:", node)
		for _, line := range state.runtimeStats {
			observe("  %s", line)
		}
	}

	if state.byeSeen {
		observe("%s: shutdown completed (Bye. found)", node)
	} else {
		observe("%s: shutdown incomplete, no \"Bye.\" message found", node)
	}

	switch {
	case !state.byeSeen:
		v.Code = ShutdownNoBye
	case retxFailed:
		v.Code = RetxIssue
	case rtDeviation:
		v.Code = RealTimeProcessingIssue
	case state.assertion:
		v.Code = ProcessAssertion
	case state.segFault || state.coreDump:
		v.Code = ProcessSegFault
	case rlcDiscard > 0:
		v.Code = ProcessRealtimeIssue
	case slaveNotSynced:
		v.Code = SlaveRRUNotSynced
	default:
		v.Code = AllProcessesOK
	}

	return v
}
