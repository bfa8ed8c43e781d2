package analyzer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Direction of a retransmission histogram.
type Direction string

// Directions ...
const (
	Downlink Direction = "DL"
	Uplink   Direction = "UL"
)

// Thresholds are the retransmission ceilings, in percent, per round.
type Thresholds struct {
	DLRetx []float64
	ULRetx []float64
}

// RetxResult is the evaluation of one UE histogram against its ceilings.
type RetxResult struct {
	RNTI          string
	Direction     Direction
	Rounds        []int
	Percentages   []float64
	Ceilings      []float64
	FailedBuckets []int
}

// Failed ...
func (r RetxResult) Failed() bool {
	return len(r.FailedBuckets) > 0
}

func (r RetxResult) String() string {
	var buckets []string
	for i, perc := range r.Percentages {
		buckets = append(buckets, fmt.Sprintf("%.2f%%/%.0f%%", perc, r.Ceilings[i]))
	}

	status := "ok"
	if r.Failed() {
		status = "above threshold"
	}
	return fmt.Sprintf("UE %s %s retransmissions %v: %s (%s)", r.RNTI, r.Direction, r.Rounds, strings.Join(buckets, ", "), status)
}

// ueRetx keeps the last statistics line seen per direction for one UE.
type ueRetx struct {
	dl []int
	ul []int
}

func parseRounds(pattern *regexp.Regexp, line string) []int {
	match := pattern.FindStringSubmatch(line)
	if match == nil {
		return nil
	}

	var rounds []int
	for _, group := range match[1:] {
		value, err := strconv.Atoi(group)
		if err != nil {
			return nil
		}
		rounds = append(rounds, value)
	}
	return rounds
}

// retxPercentages computes bucket i as the share of round i transmissions that
// needed round i+1, zero when round i saw no transmission.
func retxPercentages(rounds []int, buckets int) []float64 {
	if buckets > len(rounds)-1 {
		buckets = len(rounds) - 1
	}

	var percentages []float64
	for i := 0; i < buckets; i++ {
		if rounds[i] == 0 {
			percentages = append(percentages, 0)
			continue
		}
		percentages = append(percentages, 100*float64(rounds[i+1])/float64(rounds[i]))
	}
	return percentages
}

// evaluateRetx returns false when there is no histogram or no ceiling to check.
func evaluateRetx(rnti string, direction Direction, rounds []int, ceilings []float64) (RetxResult, bool) {
	if len(rounds) == 0 || len(ceilings) == 0 {
		return RetxResult{}, false
	}

	percentages := retxPercentages(rounds, len(ceilings))
	result := RetxResult{
		RNTI:        rnti,
		Direction:   direction,
		Rounds:      rounds,
		Percentages: percentages,
		Ceilings:    ceilings[:len(percentages)],
	}

	for i, perc := range percentages {
		if perc > 100 || perc > ceilings[i] {
			result.FailedBuckets = append(result.FailedBuckets, i)
		}
	}

	return result, true
}
