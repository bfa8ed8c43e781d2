package step

import (
	"time"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-ran-test/analyzer"
	"github.com/bitrise-steplib/steps-ran-test/archive"
	"github.com/bitrise-steplib/steps-ran-test/compose"
	"github.com/bitrise-steplib/steps-ran-test/dispatcher"
	"github.com/bitrise-steplib/steps-ran-test/ran"
	"github.com/bitrise-steplib/steps-ran-test/remote"
	"github.com/bitrise-steplib/steps-ran-test/sequencer"
	"github.com/bitrise-steplib/steps-ran-test/traffic"
	"github.com/bitrise-steplib/steps-ran-test/ue"
)

const deployRetryWait = 10 * time.Second

// NewEngineFactory wires the subsystems of a run around one remote gateway.
func NewEngineFactory(logger log.Logger, commandFactory command.Factory, fileManager fileutil.FileManager, pathChecker pathutil.PathChecker) EngineFactory {
	return func(cfg Config) sequencer.Engine {
		gateway := remote.NewGateway(logger, commandFactory, cfg.ForceLocal)
		archiver := archive.NewArchiver(logger, gateway)
		logAnalyzer := analyzer.NewAnalyzer(logger, pathChecker)

		subsystems := dispatcher.Subsystems{
			Gateway:  gateway,
			RAN:      ran.NewManager(logger, gateway, archiver, logAnalyzer, cfg.RAN),
			UE:       ue.NewController(logger, gateway, archiver, ue.DefaultConfig()),
			Traffic:  traffic.NewRunner(logger, gateway, fileManager),
			Deployer: compose.NewDeployer(logger, gateway, archiver, logAnalyzer, deployRetryWait),
		}

		d := dispatcher.NewDispatcher(logger, dispatcher.Config{
			SourcePath:       cfg.SourcePath,
			Infrastructure:   cfg.Infrastructure,
			ForceLocal:       cfg.ForceLocal,
			RTStatsConfigDir: cfg.RTStatsConfigDir,
		}, subsystems, pathChecker)

		return sequencer.NewEngine(logger, d, cfg.Catalog, cfg.LogDir)
	}
}
