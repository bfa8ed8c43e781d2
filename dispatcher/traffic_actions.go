package dispatcher

import (
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/bitrise-steplib/steps-ran-test/traffic"
	"github.com/bitrise-steplib/steps-ran-test/ue"
)

const (
	defaultIperfPacketLossThreshold = 50
	defaultIperfBitrateThreshold    = 90
)

func endpoint(m ue.Module) traffic.Endpoint {
	return traffic.Endpoint{Name: m.Name, Host: m.Host, CmdPrefix: m.Definition.CmdPrefix}
}

// server resolves the traffic server of a case together with its address.
func (d *dispatcher) server(tc testcase.TestCase) (traffic.Endpoint, error) {
	modules, err := d.modules(tc, "svr_id", "svr_node")
	if err != nil {
		return traffic.Endpoint{}, err
	}
	if len(modules) != 1 {
		return traffic.Endpoint{}, configurationError(tc, "exactly one svr_id is expected")
	}

	server := endpoint(modules[0])
	ip, err := d.subsystems.UE.IP(modules[0])
	if err != nil {
		return traffic.Endpoint{}, fmt.Errorf("failed to get the address of %s: %w", server.Name, err)
	}
	server.IP = ip
	return server, nil
}

func (d *dispatcher) ping(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	clients, err := d.modules(tc, "id", "nodes")
	if err != nil {
		return testcase.ActionResult{}, err
	}
	args, err := required(tc, "ping_args")
	if err != nil {
		return testcase.ActionResult{}, err
	}

	params := traffic.PingParams{Args: args}
	if params.PacketLossThreshold, err = float(tc, "ping_packetloss_threshold", 0); err != nil {
		return testcase.ActionResult{}, err
	}
	if params.RTTAvgThreshold, err = float(tc, "ping_rttavg_threshold", 0); err != nil {
		return testcase.ActionResult{}, err
	}

	server, err := d.server(tc)
	if err != nil {
		return testcase.Failed("Ping server unreachable", err.Error()), nil
	}

	var results []testcase.ActionResult
	for _, client := range clients {
		result, err := d.subsystems.Traffic.Ping(ctx, endpoint(client), server.IP, params)
		if err != nil {
			return testcase.ActionResult{}, err
		}
		results = append(results, result)
	}
	return testcase.Merge("ping ok", "ping failed", results...), nil
}

func (d *dispatcher) iperf(tool traffic.Tool) handler {
	return func(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
		clients, err := d.modules(tc, "id", "nodes")
		if err != nil {
			return testcase.ActionResult{}, err
		}
		args, err := required(tc, "iperf_args")
		if err != nil {
			return testcase.ActionResult{}, err
		}

		params := traffic.IperfParams{
			Tool:     tool,
			Args:     args,
			Profile:  traffic.Profile(strings.ToLower(tc.Params.StringOr("iperf_profile", string(traffic.ProfileBalanced)))),
			SinkOnly: strings.EqualFold(tc.Params.StringOr("iperf_options", "check"), "sink"),
		}
		if params.PacketLossThreshold, err = float(tc, "iperf_packetloss_threshold", defaultIperfPacketLossThreshold); err != nil {
			return testcase.ActionResult{}, err
		}
		if params.BitrateThreshold, err = float(tc, "iperf_bitrate_threshold", defaultIperfBitrateThreshold); err != nil {
			return testcase.ActionResult{}, err
		}

		switch params.Profile {
		case traffic.ProfileBalanced, traffic.ProfileSingleUE, traffic.ProfileUnbalanced:
		default:
			return testcase.ActionResult{}, configurationError(tc, "unknown iperf_profile %s", params.Profile)
		}

		server, err := d.server(tc)
		if err != nil {
			return testcase.Failed("Iperf server unreachable", err.Error()), nil
		}

		var endpoints []traffic.Endpoint
		for _, client := range clients {
			endpoints = append(endpoints, endpoint(client))
		}

		return d.subsystems.Traffic.Iperf(ctx, endpoints, server, params)
	}
}
