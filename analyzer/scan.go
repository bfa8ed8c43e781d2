package analyzer

import (
	"regexp"
	"strings"
)

type shutdownState int

const (
	shutdownRunning shutdownState = iota
	shutdownExitSignaled
)

const assertionMessageLines = 3

type marker struct {
	firstLine int
	count     int
}

// scanState accumulates everything observed in one pass over a log.
type scanState struct {
	lines    int
	nodeKind NodeKind

	shutdown shutdownState
	byeSeen  bool

	segFault  bool
	coreDump  bool
	assertion bool

	assertionMessage   []string
	assertionRemaining int

	counters map[event]int
	markers  map[event]*marker

	targetHandover *handoverMachine
	sourceHandover *handoverMachine

	retx      map[string]*ueRetx
	retxOrder []string

	runtimeStats []string
	inRuntime    bool

	appliedMaxRxGain string
	rruDetected      bool
	slaveRRU         bool
	rruResynced      bool
}

func newScanState() *scanState {
	return &scanState{
		counters:       map[event]int{},
		markers:        map[event]*marker{},
		targetHandover: newHandoverMachine(targetHandoverTransitions),
		sourceHandover: newHandoverMachine(sourceHandoverTransitions),
		retx:           map[string]*ueRetx{},
	}
}

func (s *scanState) scanLine(line string) {
	s.lines++

	if s.assertionRemaining > 0 {
		s.assertionMessage = append(s.assertionMessage, line)
		s.assertionRemaining--
	}

	if s.inRuntime && runtimeStatsPattern.MatchString(line) {
		s.runtimeStats = append(s.runtimeStats, strings.TrimSpace(line))
	}

	for _, sig := range signatures {
		if sig.pattern.MatchString(line) {
			s.handle(sig.event, line)
		}
	}
}

func (s *scanState) handle(e event, line string) {
	s.targetHandover.handle(e)
	s.sourceHandover.handle(e)

	switch e {
	case evENBStart:
		s.nodeKind = NodeENB
	case evGNBStart:
		s.nodeKind = NodeGNB
	case evExitSignal:
		s.shutdown = shutdownExitSignaled
	case evBye:
		s.byeSeen = true
		s.shutdown = shutdownExitSignaled
	case evSegFault:
		if s.shutdown == shutdownRunning {
			s.segFault = true
		}
	case evCoreDump:
		if s.shutdown == shutdownRunning {
			s.coreDump = true
		}
	case evAssertion:
		if s.shutdown == shutdownRunning && !s.assertion {
			s.assertion = true
			s.assertionMessage = []string{line}
			s.assertionRemaining = assertionMessageLines - 1
		}
	case evRealTimeLLL:
		if s.shutdown == shutdownRunning {
			s.counters[e]++
		}
	case evRRUSetup:
		s.rruDetected = true
	case evSlaveRRU:
		if s.rruDetected {
			s.slaveRRU = true
		}
	case evRRUFrameResync:
		if s.slaveRRU {
			s.rruResynced = true
		}
	case evDLSCHRounds:
		s.recordRounds(line, Downlink)
	case evULSCHRounds:
		s.recordRounds(line, Uplink)
	case evRunTime:
		s.runtimeStats = append(s.runtimeStats, strings.TrimSpace(line))
		s.inRuntime = true
	case evMaxRxGain:
		if match := maxRxGainPattern.FindStringSubmatch(line); match != nil {
			s.appliedMaxRxGain = match[1]
		}
	default:
		if isMarker(e) {
			m, ok := s.markers[e]
			if !ok {
				m = &marker{firstLine: s.lines}
				s.markers[e] = m
			}
			m.count++
			return
		}
		s.counters[e]++
	}
}

func isMarker(e event) bool {
	for _, m := range markerNames {
		if m.event == e {
			return true
		}
	}
	return false
}

func (s *scanState) recordRounds(line string, direction Direction) {
	match := rntiPattern.FindStringSubmatch(line)
	if match == nil {
		return
	}
	rnti := match[1]

	pattern := dlschRoundsPattern
	if direction == Uplink {
		pattern = ulschRoundsPattern
	}
	rounds := parseRounds(pattern, line)
	if rounds == nil {
		return
	}

	stats, ok := s.retx[rnti]
	if !ok {
		stats = &ueRetx{}
		s.retx[rnti] = stats
		s.retxOrder = append(s.retxOrder, rnti)
	}

	if direction == Downlink {
		stats.dl = rounds
	} else {
		stats.ul = rounds
	}
}

func requestedOption(pattern *regexp.Regexp, options string) (string, bool) {
	match := pattern.FindStringSubmatch(options)
	if match == nil {
		return "", false
	}
	return match[1], true
}
