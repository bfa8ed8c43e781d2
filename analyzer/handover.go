package analyzer

type handoverState int

const (
	handoverIdle handoverState = iota
	handoverTargetReceivedRequest
	handoverTargetReconfigComplete
	handoverTargetSentPathSwitch
	handoverSourceReceivedAck
)

type handoverTransition struct {
	from      handoverState
	on        event
	to        handoverState
	completes bool
}

// X2 handover as seen by the cell receiving the UE.
var targetHandoverTransitions = []handoverTransition{
	{from: handoverIdle, on: evX2HandoverRequest, to: handoverTargetReceivedRequest},
	{from: handoverTargetReceivedRequest, on: evHandoverReconfigComplete, to: handoverTargetReconfigComplete},
	{from: handoverTargetReconfigComplete, on: evPathSwitchRequest, to: handoverTargetSentPathSwitch},
	{from: handoverTargetSentPathSwitch, on: evPathSwitchAck, to: handoverIdle, completes: true},
}

// X2 handover as seen by the cell releasing the UE.
var sourceHandoverTransitions = []handoverTransition{
	{from: handoverIdle, on: evX2HandoverRequestAck, to: handoverSourceReceivedAck},
	{from: handoverSourceReceivedAck, on: evX2UEContextRelease, to: handoverIdle, completes: true},
}

type handoverMachine struct {
	state       handoverState
	transitions []handoverTransition
	completed   int
}

func newHandoverMachine(transitions []handoverTransition) *handoverMachine {
	return &handoverMachine{state: handoverIdle, transitions: transitions}
}

// handle applies e, events with no transition from the current state are ignored.
func (m *handoverMachine) handle(e event) {
	for _, t := range m.transitions {
		if t.from != m.state || t.on != e {
			continue
		}

		m.state = t.to
		if t.completes {
			m.completed++
		}
		return
	}
}
