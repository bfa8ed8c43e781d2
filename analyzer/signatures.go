package analyzer

import "regexp"

type event int

const (
	evENBStart event = iota
	evGNBStart
	evExitSignal
	evBye
	evSegFault
	evCoreDump
	evAssertion
	evRealTimeLLL
	evRRUSetup
	evSlaveRRU
	evRRUFrameResync

	evRRCSetupComplete
	evRRCRelease
	evRRCReconfigRequest
	evRRCReconfigComplete
	evRRCReestablishRequest
	evRRCReestablishComplete
	evRRCReestablishReject
	evNRRRCReconfigComplete
	evCDRXActivation
	evUCIStat
	evPDCPOutOfResources
	evGNBRxTxWakeupFailure
	evTxWriteThreadReady
	evULSCHInError
	evCCEAllocationError
	evULSegmentAborted
	evULSCHReceivedOK
	evRLCDiscardBuffer
	evRACanceled
	evDropNotEnoughRBs
	evRAProcPUSCHReceived
	evHARQFeedbackInPast
	evPHYProblemReceivingSamples
	evMACRemovingUE
	evX2APPDU

	evX2HandoverRequest
	evHandoverReconfigComplete
	evPathSwitchRequest
	evPathSwitchAck
	evX2HandoverRequestAck
	evX2UEContextRelease

	evSgNBReleaseRequestAcknowledge
	evFailure
	evSCGFailureInformation
	evSgNBReleaseRequest
	evULFailureOnPUSCH

	evDLSCHRounds
	evULSCHRounds
	evRunTime
	evMaxRxGain
)

type signature struct {
	event   event
	pattern *regexp.Regexp
}

// signatures is tested in order against every line, a line may raise several events.
var signatures = []signature{
	{evENBStart, regexp.MustCompile(`Starting eNB soft modem`)},
	{evGNBStart, regexp.MustCompile(`Starting gNB soft modem`)},
	{evExitSignal, regexp.MustCompile(`Exiting OAI softmodem|Caught SIGTERM, shutting down`)},
	{evBye, regexp.MustCompile(`^Bye.`)},
	{evSegFault, regexp.MustCompile(`[Ss]egmentation [Ff]ault`)},
	{evCoreDump, regexp.MustCompile(`[Cc]ore [dD]ump`)},
	{evAssertion, regexp.MustCompile(`[Aa]ssertion`)},
	{evRealTimeLLL, regexp.MustCompile(`LLL`)},
	{evRRUSetup, regexp.MustCompile(`Setting function for RU`)},
	{evSlaveRRU, regexp.MustCompile(`RU 0 is_slave=yes`)},
	{evRRUFrameResync, regexp.MustCompile(`Received RRU_frame_resynch`)},

	{evRRCSetupComplete, regexp.MustCompile(`LTE_RRCConnectionSetupComplete from UE`)},
	{evRRCRelease, regexp.MustCompile(`Generate (LTE_)?RRCConnectionRelease`)},
	{evRRCReconfigRequest, regexp.MustCompile(`Generate LTE_RRCConnectionReconfiguration`)},
	{evRRCReconfigComplete, regexp.MustCompile(`LTE_RRCConnectionReconfigurationComplete from UE`)},
	{evRRCReestablishRequest, regexp.MustCompile(`LTE_RRCConnectionReestablishmentRequest`)},
	{evRRCReestablishComplete, regexp.MustCompile(`LTE_RRCConnectionReestablishmentComplete`)},
	{evRRCReestablishReject, regexp.MustCompile(`LTE_RRCConnectionReestablishmentReject`)},
	{evNRRRCReconfigComplete, regexp.MustCompile(`NR_RRCReconfigurationComplete`)},
	{evCDRXActivation, regexp.MustCompile(`CDRX configuration activated after RRC Connection`)},
	{evUCIStat, regexp.MustCompile(`uci->stat`)},
	{evPDCPOutOfResources, regexp.MustCompile(`PDCP.*Out of Resources.*reason`)},
	{evGNBRxTxWakeupFailure, regexp.MustCompile(`could not wakeup gNB rxtx process`)},
	{evTxWriteThreadReady, regexp.MustCompile(`tx write thread ready`)},
	{evULSCHInError, regexp.MustCompile(`ULSCH in error in round|ULSCH 0 in error`)},
	{evCCEAllocationError, regexp.MustCompile(`ERROR ALLOCATING CCEs`)},
	{evULSegmentAborted, regexp.MustCompile(`segment error.*aborted [1-9][0-9]* segments`)},
	{evULSCHReceivedOK, regexp.MustCompile(`ULSCH received ok`)},
	{evRLCDiscardBuffer, regexp.MustCompile(`BAD all_segments_received`)},
	{evRACanceled, regexp.MustCompile(`Canceled RA procedure for UE rnti`)},
	{evDropNotEnoughRBs, regexp.MustCompile(`dropping, not enough RBs`)},
	{evRAProcPUSCHReceived, regexp.MustCompile(`\[RAPROC\] PUSCH with TC_RNTI 0x[0-9a-fA-F]+ received correctly`)},
	{evHARQFeedbackInPast, regexp.MustCompile(`HARQ feedback is in the past`)},
	{evPHYProblemReceivingSamples, regexp.MustCompile(`\[PHY\].*problem receiving samples`)},
	{evMACRemovingUE, regexp.MustCompile(`\[MAC\].*Removing UE`)},
	{evX2APPDU, regexp.MustCompile(`X2AP-PDU`)},

	{evX2HandoverRequest, regexp.MustCompile(`target eNB Receives X2 HO Req X2AP_HANDOVER_REQ`)},
	{evHandoverReconfigComplete, regexp.MustCompile(`Received LTE_RRCConnectionReconfigurationComplete from UE`)},
	{evPathSwitchRequest, regexp.MustCompile(`issue rrc_eNB_send_PATH_SWITCH_REQ`)},
	{evPathSwitchAck, regexp.MustCompile(`received path switch ack S1AP_PATH_SWITCH_REQ_ACK`)},
	{evX2HandoverRequestAck, regexp.MustCompile(`source eNB receives the X2 HO ACK X2AP_HANDOVER_REQ_ACK`)},
	{evX2UEContextRelease, regexp.MustCompile(`source eNB receives the X2 UE CONTEXT RELEASE X2AP_UE_CONTEXT_RELEASE`)},

	{evSgNBReleaseRequestAcknowledge, regexp.MustCompile(`SgNBReleaseRequestAcknowledge`)},
	{evFailure, regexp.MustCompile(`FAILURE`)},
	{evSCGFailureInformation, regexp.MustCompile(`scgFailureInformationNR-r15`)},
	{evSgNBReleaseRequest, regexp.MustCompile(`SgNBReleaseRequest\b`)},
	{evULFailureOnPUSCH, regexp.MustCompile(`Detected UL Failure on PUSCH`)},

	{evDLSCHRounds, regexp.MustCompile(`dlsch_rounds`)},
	{evULSCHRounds, regexp.MustCompile(`ulsch_rounds`)},
	{evRunTime, regexp.MustCompile(`Run time:`)},
	{evMaxRxGain, regexp.MustCompile(`max_rxgain [0-9]+`)},
}

// counterNames labels the events reported as plain occurrence counts, in report order.
var counterNames = []struct {
	event event
	name  string
}{
	{evRRCSetupComplete, "RRC Connection Setup Complete"},
	{evRRCRelease, "RRC Connection Release"},
	{evRRCReconfigRequest, "RRC Connection Reconfiguration Request"},
	{evRRCReconfigComplete, "RRC Connection Reconfiguration Complete"},
	{evRRCReestablishRequest, "RRC Connection Reestablishment Request"},
	{evRRCReestablishComplete, "RRC Connection Reestablishment Complete"},
	{evRRCReestablishReject, "RRC Connection Reestablishment Reject"},
	{evNRRRCReconfigComplete, "NR RRC Reconfiguration Complete"},
	{evCDRXActivation, "CDRX activation"},
	{evUCIStat, "uci->stat"},
	{evPDCPOutOfResources, "PDCP Out of Resources"},
	{evGNBRxTxWakeupFailure, "could not wake up gNB rxtx process"},
	{evTxWriteThreadReady, "tx write thread ready"},
	{evULSCHInError, "ULSCH in error"},
	{evCCEAllocationError, "ERROR ALLOCATING CCEs"},
	{evULSegmentAborted, "uplink segments aborted"},
	{evULSCHReceivedOK, "ULSCH received ok"},
	{evRLCDiscardBuffer, "RLC discarded buffer"},
	{evRACanceled, "canceled RA procedure"},
	{evDropNotEnoughRBs, "dropped, not enough RBs"},
	{evRAProcPUSCHReceived, "RAPROC PUSCH received"},
	{evHARQFeedbackInPast, "HARQ feedback in the past"},
	{evPHYProblemReceivingSamples, "PHY problem receiving samples"},
	{evMACRemovingUE, "MAC removing UE"},
	{evX2APPDU, "X2AP-PDU"},
	{evRealTimeLLL, "LLL real-time issue"},
}

// markerNames lists the events tracked by first line number.
var markerNames = []struct {
	event event
	name  string
}{
	{evSgNBReleaseRequestAcknowledge, "SgNBReleaseRequestAcknowledge"},
	{evFailure, "FAILURE"},
	{evSCGFailureInformation, "scgFailureInformationNR-r15"},
	{evSgNBReleaseRequest, "SgNBReleaseRequest"},
	{evULFailureOnPUSCH, "Detected UL Failure on PUSCH"},
}

var (
	rntiPattern         = regexp.MustCompile(`UE (?:RNTI )?([0-9a-f]{4})`)
	dlschRoundsPattern  = regexp.MustCompile(`^.*dlsch_rounds\s+(\d+)\/(\d+)\/(\d+)\/(\d+),\s+dlsch_errors\s+(\d+)`)
	ulschRoundsPattern  = regexp.MustCompile(`^.*ulsch_rounds\s+(\d+)\/(\d+)\/(\d+)\/(\d+),\s+ulsch_errors\s+(\d+)`)
	runtimeStatsPattern = regexp.MustCompile(`Time executing user inst|Time executing system inst|Max\. Phy\. memory usage|Number of context switch`)
	maxRxGainPattern    = regexp.MustCompile(`max_rxgain ([0-9]+)`)
)
