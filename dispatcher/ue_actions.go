package dispatcher

import (
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/bitrise-steplib/steps-ran-test/ue"
)

type ueOperation func(d *dispatcher, ctx testcase.RunContext, m ue.Module) testcase.ActionResult

// modules resolves the id and nodes lists of a case against the infrastructure file.
func (d *dispatcher) modules(tc testcase.TestCase, idKey, nodesKey string) ([]ue.Module, error) {
	ids := tc.Params.Fields(idKey)
	if len(ids) == 0 {
		return nil, configurationError(tc, "missing parameter %s", idKey)
	}
	nodes := tc.Params.Fields(nodesKey)
	if len(nodes) != len(ids) {
		return nil, configurationError(tc, "%s (%d) and %s (%d) differ in length", idKey, len(ids), nodesKey, len(nodes))
	}
	if d.cfg.Infrastructure == nil {
		return nil, configurationError(tc, "no infrastructure file")
	}

	var modules []ue.Module
	for i, id := range ids {
		m, err := d.cfg.Infrastructure.Resolve(id, d.host(nodes[i]))
		if err != nil {
			return nil, configurationError(tc, "%s", err)
		}
		if d.cfg.ForceLocal {
			m.Host = d.host(m.Host)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

func (d *dispatcher) ueAction(op ueOperation) handler {
	return func(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
		modules, err := d.modules(tc, "id", "nodes")
		if err != nil {
			return testcase.ActionResult{}, err
		}

		var results []testcase.ActionResult
		for _, m := range modules {
			results = append(results, op(d, ctx, m))
		}
		return testcase.Merge(fmt.Sprintf("%s ok", tc.Action), fmt.Sprintf("%s failed", tc.Action), results...), nil
	}
}

func moduleResult(m ue.Module, action string, err error, details ...string) testcase.ActionResult {
	if err != nil {
		return testcase.Failed(fmt.Sprintf("%s: %s failed", m.Name, action), append(details, err.Error())...)
	}
	return testcase.Passed(fmt.Sprintf("%s: %s", m.Name, action), details...)
}

func initializeUE(d *dispatcher, _ testcase.RunContext, m ue.Module) testcase.ActionResult {
	return moduleResult(m, "initialized", d.subsystems.UE.Initialize(m))
}

func attachUE(d *dispatcher, _ testcase.RunContext, m ue.Module) testcase.ActionResult {
	ip, err := d.subsystems.UE.Attach(m)
	if err != nil {
		return moduleResult(m, "attach", err)
	}
	if err := d.subsystems.UE.CheckMTU(m); err != nil {
		return moduleResult(m, "MTU check", err, fmt.Sprintf("IP address: %s", ip))
	}
	return moduleResult(m, "attached", nil, fmt.Sprintf("IP address: %s", ip))
}

func detachUE(d *dispatcher, _ testcase.RunContext, m ue.Module) testcase.ActionResult {
	return moduleResult(m, "detached", d.subsystems.UE.Detach(m))
}

func terminateUE(d *dispatcher, ctx testcase.RunContext, m ue.Module) testcase.ActionResult {
	archived, err := d.subsystems.UE.Terminate(ctx, m)
	var details []string
	for _, pth := range archived {
		details = append(details, fmt.Sprintf("Trace: %s", pth))
	}
	return moduleResult(m, "terminated", err, details...)
}

func checkStatusUE(d *dispatcher, _ testcase.RunContext, m ue.Module) testcase.ActionResult {
	status, err := d.subsystems.UE.CheckStatus(m)
	var details []string
	if status != "" {
		details = strings.Split(status, "\n")
	}
	return moduleResult(m, "status checked", err, details...)
}

func dataEnableUE(d *dispatcher, _ testcase.RunContext, m ue.Module) testcase.ActionResult {
	return moduleResult(m, "data enabled", d.subsystems.UE.DataEnable(m))
}

func dataDisableUE(d *dispatcher, _ testcase.RunContext, m ue.Module) testcase.ActionResult {
	return moduleResult(m, "data disabled", d.subsystems.UE.DataDisable(m))
}
