package traffic

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/kballard/go-shellquote"
)

var (
	packetLossPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)% packet loss`)
	rttPattern        = regexp.MustCompile(`rtt min/avg/max/mdev = ([\d.]+)/([\d.]+)/([\d.]+)/([\d.]+) ms`)
)

// PingParams ...
type PingParams struct {
	Args string
	// PacketLossThreshold is the highest accepted loss in percent.
	PacketLossThreshold float64
	// RTTAvgThreshold is the highest accepted average round trip in ms, zero disables the check.
	RTTAvgThreshold float64
}

// PingStats is the summary printed by ping.
type PingStats struct {
	PacketLoss float64
	RTTMin     float64
	RTTAvg     float64
	RTTMax     float64
}

// ParsePingOutput reads the packet loss and round trip summary of ping.
func ParsePingOutput(output string) (PingStats, error) {
	lossMatch := packetLossPattern.FindStringSubmatch(output)
	if lossMatch == nil {
		return PingStats{}, errors.New("no packet loss summary in ping output")
	}

	var stats PingStats
	var err error
	if stats.PacketLoss, err = strconv.ParseFloat(lossMatch[1], 64); err != nil {
		return PingStats{}, fmt.Errorf("invalid packet loss (%s): %w", lossMatch[1], err)
	}

	// 100% loss prints no rtt line
	rttMatch := rttPattern.FindStringSubmatch(output)
	if rttMatch == nil {
		return stats, nil
	}
	values := make([]float64, 3)
	for i := range values {
		if values[i], err = strconv.ParseFloat(rttMatch[i+1], 64); err != nil {
			return PingStats{}, fmt.Errorf("invalid rtt value (%s): %w", rttMatch[i+1], err)
		}
	}
	stats.RTTMin, stats.RTTAvg, stats.RTTMax = values[0], values[1], values[2]

	return stats, nil
}

func (r runner) Ping(ctx testcase.RunContext, client Endpoint, serverIP string, params PingParams) (testcase.ActionResult, error) {
	args, err := shellquote.Split(params.Args)
	if err != nil {
		return testcase.ActionResult{}, fmt.Errorf("failed to parse ping arguments (%s): %w", params.Args, err)
	}

	cmdline := client.command(shellquote.Join(append(append([]string{"ping"}, args...), serverIP)...))
	r.logger.Infof("Ping from %s to %s", client.Name, serverIP)

	out, err := r.gateway.Run(client.Host, cmdline)
	if err != nil {
		return testcase.ActionResult{}, err
	}
	r.saveOutput(ctx, fmt.Sprintf("ping_%s.log", fileSafe(client.Name)), out)

	stats, err := ParsePingOutput(out.String())
	if err != nil {
		return testcase.Failed(fmt.Sprintf("%s: ping failed", client.Name), err.Error()), nil
	}

	details := []string{
		fmt.Sprintf("Packet loss: %s (threshold %s)", formatPercent(stats.PacketLoss), formatPercent(params.PacketLossThreshold)),
		fmt.Sprintf("RTT min/avg/max: %.3f/%.3f/%.3f ms", stats.RTTMin, stats.RTTAvg, stats.RTTMax),
	}

	if stats.PacketLoss > params.PacketLossThreshold {
		return testcase.Failed(fmt.Sprintf("%s: packet loss too high", client.Name), details...), nil
	}
	if params.RTTAvgThreshold > 0 && stats.RTTAvg > params.RTTAvgThreshold {
		details = append(details, fmt.Sprintf("RTT average threshold: %.3f ms", params.RTTAvgThreshold))
		return testcase.Failed(fmt.Sprintf("%s: RTT average too high", client.Name), details...), nil
	}

	if !out.Succeeded() {
		r.logger.Warnf("ping exited with %d within the accepted loss", out.ExitCode)
	}

	return testcase.Passed(fmt.Sprintf("%s: ping ok", client.Name), details...), nil
}
