package dispatcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-ran-test/compose"
	"github.com/bitrise-steplib/steps-ran-test/ran"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/testcase"
	"github.com/bitrise-steplib/steps-ran-test/traffic"
	"github.com/bitrise-steplib/steps-ran-test/ue"
)

// ErrConfiguration marks a test case that cannot be run as declared.
var ErrConfiguration = errors.New("invalid test case configuration")

// Config is the run wide configuration shared by every action.
type Config struct {
	SourcePath       string
	Infrastructure   ue.Infrastructure
	ForceLocal       bool
	RTStatsConfigDir string
}

// Dispatcher runs the action a test case names.
type Dispatcher interface {
	Dispatch(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error)
}

// Subsystems are the collaborators actions are delegated to.
type Subsystems struct {
	Gateway  remote.Gateway
	RAN      ran.Manager
	UE       ue.Controller
	Traffic  traffic.Runner
	Deployer compose.Deployer
}

type handler func(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error)

type dispatcher struct {
	logger      log.Logger
	cfg         Config
	subsystems  Subsystems
	pathChecker pathutil.PathChecker
	sleep       func(time.Duration)

	handlers map[string]handler

	// nodeSetup remembers what each base station node was started with.
	nodeSetup map[string]nodeSetup
}

type nodeSetup struct {
	airInterface string
	rtStatsFile  string
}

// NewDispatcher ...
func NewDispatcher(logger log.Logger, cfg Config, subsystems Subsystems, pathChecker pathutil.PathChecker) Dispatcher {
	d := &dispatcher{
		logger:      logger,
		cfg:         cfg,
		subsystems:  subsystems,
		pathChecker: pathChecker,
		sleep:       time.Sleep,
		nodeSetup:   map[string]nodeSetup{},
	}
	d.registerHandlers()

	return d
}

// KnownActions returns the sorted names of the actions with a handler.
func KnownActions() []string {
	d := &dispatcher{}
	d.registerHandlers()

	actions := make([]string, 0, len(d.handlers))
	for action := range d.handlers {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	return actions
}

func (d *dispatcher) registerHandlers() {
	d.handlers = map[string]handler{
		"Initialize_eNB":  d.initializeENB,
		"Terminate_eNB":   d.terminateENB,
		"Initialize_UE":   d.ueAction(initializeUE),
		"Attach_UE":       d.ueAction(attachUE),
		"Detach_UE":       d.ueAction(detachUE),
		"Terminate_UE":    d.ueAction(terminateUE),
		"CheckStatusUE":   d.ueAction(checkStatusUE),
		"DataEnable_UE":   d.ueAction(dataEnableUE),
		"DataDisable_UE":  d.ueAction(dataDisableUE),
		"Ping":            d.ping,
		"Iperf":           d.iperf(traffic.Iperf3),
		"Iperf2_Unidir":   d.iperf(traffic.Iperf2),
		"IdleSleep":       d.idleSleep,
		"Custom_Command":  d.customCommand,
		"Custom_Script":   d.customScript,
		"Deploy_Object":   d.deployObject,
		"Undeploy_Object": d.undeployObject,
	}
}

func (d *dispatcher) Dispatch(ctx testcase.RunContext, tc testcase.TestCase) (testcase.ActionResult, error) {
	h, ok := d.handlers[tc.Action]
	if !ok {
		d.logger.Warnf("No handler for action %s, nothing to do", tc.Action)
		return testcase.Passed(fmt.Sprintf("%s: not run by this executor", tc.Action)), nil
	}

	return h(ctx, tc)
}

func configurationError(tc testcase.TestCase, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s (%s): %s", ErrConfiguration, tc.ID, tc.Action, fmt.Sprintf(format, args...))
}

func required(tc testcase.TestCase, key string) (string, error) {
	value, ok := tc.Params.String(key)
	if !ok || value == "" {
		return "", configurationError(tc, "missing parameter %s", key)
	}
	return value, nil
}

// host maps a test case node to the host commands run on.
func (d *dispatcher) host(node string) string {
	if d.cfg.ForceLocal || node == "" {
		return remote.Localhost
	}
	return node
}

func (d *dispatcher) sourcePath(pth string) string {
	if filepath.IsAbs(pth) {
		return pth
	}
	return filepath.Join(d.cfg.SourcePath, pth)
}

func float(tc testcase.TestCase, key string, def float64) (float64, error) {
	values, err := tc.Params.Floats(key)
	if err != nil {
		return 0, configurationError(tc, "%s", err)
	}
	if len(values) == 0 {
		return def, nil
	}
	return values[0], nil
}
