package traffic

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bitrise-io/go-utils/errorutil"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	version "github.com/hashicorp/go-version"
	"github.com/kballard/go-shellquote"
)

// Tool selects the iperf generation.
type Tool string

const (
	Iperf3 Tool = "iperf3"
	Iperf2 Tool = "iperf"
)

// Profile distributes the requested bitrate over several UEs.
type Profile string

const (
	ProfileBalanced   Profile = "balanced"
	ProfileSingleUE   Profile = "single-ue"
	ProfileUnbalanced Profile = "unbalanced"
)

// unbalancedShare is the fraction of the target given to every UE but the first one.
const unbalancedShare = 0.02

var (
	minimumIperf3Version = version.Must(version.NewVersion("3.1"))

	iperfVersionPattern = regexp.MustCompile(`iperf (?:version )?(\d+\.\d+(?:\.\d+)?)`)
	udpSummaryPattern   = regexp.MustCompile(`([\d.]+) ([KMG]?)bits/sec\s+[\d.]+ ms\s+(\d+)/\s*(\d+) \(([\d.e+-]+)%\)`)
	bitratePattern      = regexp.MustCompile(`^([\d.]+)([KMGkmg]?)$`)
)

// IperfParams ...
type IperfParams struct {
	Tool Tool
	Args string
	// PacketLossThreshold is the highest accepted loss in percent.
	PacketLossThreshold float64
	// BitrateThreshold is the lowest accepted share of the target bitrate in percent.
	BitrateThreshold float64
	Profile          Profile
	// SinkOnly skips the threshold checks.
	SinkOnly bool
}

// IperfStats is the UDP receiver summary.
type IperfStats struct {
	Bitrate    float64
	Lost       int
	Total      int
	PacketLoss float64
}

// ParseBitrate converts an iperf bandwidth value (10M, 500K, 1G or bits) to bits/sec.
func ParseBitrate(value string) (float64, error) {
	match := bitratePattern.FindStringSubmatch(value)
	if match == nil {
		return 0, fmt.Errorf("invalid bitrate: %s", value)
	}
	number, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid bitrate (%s): %w", value, err)
	}
	return number * unitMultiplier(strings.ToUpper(match[2])), nil
}

func unitMultiplier(unit string) float64 {
	switch unit {
	case "K":
		return 1e3
	case "M":
		return 1e6
	case "G":
		return 1e9
	default:
		return 1
	}
}

// ParseIperfOutput returns the last UDP summary, which is the receiver side one.
func ParseIperfOutput(output string) (IperfStats, error) {
	matches := udpSummaryPattern.FindAllStringSubmatch(output, -1)
	if len(matches) == 0 {
		return IperfStats{}, errors.New("no UDP summary in iperf output")
	}
	match := matches[len(matches)-1]

	var stats IperfStats
	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return IperfStats{}, fmt.Errorf("invalid bitrate (%s): %w", match[1], err)
	}
	stats.Bitrate = value * unitMultiplier(match[2])
	if stats.Lost, err = strconv.Atoi(match[3]); err != nil {
		return IperfStats{}, err
	}
	if stats.Total, err = strconv.Atoi(match[4]); err != nil {
		return IperfStats{}, err
	}
	if stats.PacketLoss, err = strconv.ParseFloat(match[5], 64); err != nil {
		return IperfStats{}, fmt.Errorf("invalid packet loss (%s): %w", match[5], err)
	}
	return stats, nil
}

// splitTarget removes the -b value from the client arguments.
func splitTarget(args []string) (float64, []string, error) {
	var rest []string
	target := 0.0
	for i := 0; i < len(args); i++ {
		if args[i] == "-b" && i+1 < len(args) {
			var err error
			if target, err = ParseBitrate(args[i+1]); err != nil {
				return 0, nil, err
			}
			i++
			continue
		}
		rest = append(rest, args[i])
	}
	if target == 0 {
		return 0, nil, errors.New("no target bitrate (-b) in iperf arguments")
	}
	return target, rest, nil
}

// TargetBitrates shares the requested bitrate among n UEs.
func TargetBitrates(target float64, profile Profile, n int) []float64 {
	if n <= 0 {
		return nil
	}

	targets := make([]float64, n)
	switch profile {
	case ProfileSingleUE:
		targets[0] = target
	case ProfileUnbalanced:
		for i := 1; i < n; i++ {
			targets[i] = target * unbalancedShare
		}
		targets[0] = target - float64(n-1)*target*unbalancedShare
	default:
		for i := range targets {
			targets[i] = target / float64(n)
		}
	}
	return targets
}

func (r runner) CheckInstall(host string, tool Tool) (*version.Version, error) {
	r.logger.Println()
	r.logger.Infof("Checking %s version on %s", tool, host)

	out, err := r.gateway.Run(host, fmt.Sprintf("%s --version", tool))
	if err != nil {
		if errorutil.IsExitStatusError(err) {
			return nil, fmt.Errorf("%s version command failed: %w", tool, err)
		}
		return nil, fmt.Errorf("failed to run %s command: %w", tool, err)
	}

	match := iperfVersionPattern.FindStringSubmatch(out.String())
	if match == nil {
		return nil, fmt.Errorf("%s is not installed on %s: %s", tool, host, out.String())
	}
	return version.NewVersion(match[1])
}

func (r runner) Iperf(ctx testcase.RunContext, clients []Endpoint, server Endpoint, params IperfParams) (testcase.ActionResult, error) {
	tool := params.Tool
	if tool == "" {
		tool = Iperf3
	}

	args, err := shellquote.Split(params.Args)
	if err != nil {
		return testcase.ActionResult{}, fmt.Errorf("failed to parse iperf arguments (%s): %w", params.Args, err)
	}
	target, args, err := splitTarget(args)
	if err != nil {
		return testcase.ActionResult{}, err
	}

	ver, err := r.CheckInstall(server.Host, tool)
	if err != nil {
		return testcase.Failed(fmt.Sprintf("%s not available on server", tool), err.Error()), nil
	}
	if tool == Iperf3 && ver.LessThan(minimumIperf3Version) {
		return testcase.Failed(fmt.Sprintf("%s %s is older than %s", tool, ver, minimumIperf3Version)), nil
	}
	r.logger.Printf("%s version: %s", tool, ver)

	targets := TargetBitrates(target, params.Profile, len(clients))

	var results []testcase.ActionResult
	for i, client := range clients {
		if targets[i] == 0 {
			r.logger.Printf("Skipping %s, no bitrate for profile %s", client.Name, params.Profile)
			continue
		}

		result, err := r.iperfClient(ctx, tool, client, server, args, targets[i], params)
		if err != nil {
			return testcase.ActionResult{}, err
		}
		results = append(results, result)
	}

	return testcase.Merge("iperf ok", "iperf failed", results...), nil
}

func (r runner) iperfClient(ctx testcase.RunContext, tool Tool, client, server Endpoint, args []string, target float64, params IperfParams) (testcase.ActionResult, error) {
	startServer := server.command(fmt.Sprintf("nohup %s -s -u > /dev/null 2>&1 &", tool))
	if tool == Iperf3 {
		startServer = server.command(fmt.Sprintf("%s -s -D -1", tool))
	}
	if out, err := r.gateway.Run(server.Host, startServer); err != nil {
		return testcase.ActionResult{}, err
	} else if !out.Succeeded() {
		return testcase.Failed(fmt.Sprintf("%s: could not start %s server", client.Name, tool), out.String()), nil
	}
	defer func() {
		if _, err := r.gateway.Run(server.Host, fmt.Sprintf("pkill -f %s || true", shellquote.Join(string(tool)+" -s"))); err != nil {
			r.logger.Warnf("%s", err)
		}
	}()

	clientArgs := append([]string{string(tool), "-c", server.IP, "-u", "-b", fmt.Sprintf("%.0f", target)}, args...)
	r.logger.Infof("%s from %s to %s at %.0f bits/sec", tool, client.Name, server.IP, target)

	out, err := r.gateway.Run(client.Host, client.command(shellquote.Join(clientArgs...)))
	if err != nil {
		return testcase.ActionResult{}, err
	}
	r.saveOutput(ctx, fmt.Sprintf("%s_%s.log", tool, fileSafe(client.Name)), out)

	if !out.Succeeded() {
		return testcase.Failed(fmt.Sprintf("%s: %s exited with %d", client.Name, tool, out.ExitCode), out.String()), nil
	}

	stats, err := ParseIperfOutput(out.String())
	if err != nil {
		return testcase.Failed(fmt.Sprintf("%s: %s", client.Name, err)), nil
	}

	achieved := 100 * stats.Bitrate / target
	details := []string{
		fmt.Sprintf("Bitrate: %.0f bits/sec of %.0f (%s, threshold %s)", stats.Bitrate, target, formatPercent(achieved), formatPercent(params.BitrateThreshold)),
		fmt.Sprintf("Packet loss: %d/%d %s (threshold %s)", stats.Lost, stats.Total, formatPercent(stats.PacketLoss), formatPercent(params.PacketLossThreshold)),
	}

	if params.SinkOnly {
		return testcase.Passed(fmt.Sprintf("%s: traffic sent, no check", client.Name), details...), nil
	}
	if achieved < params.BitrateThreshold {
		return testcase.Failed(fmt.Sprintf("%s: bitrate too low", client.Name), details...), nil
	}
	if stats.PacketLoss > params.PacketLossThreshold {
		return testcase.Failed(fmt.Sprintf("%s: packet loss too high", client.Name), details...), nil
	}
	return testcase.Passed(fmt.Sprintf("%s: %s ok", client.Name, tool), details...), nil
}
