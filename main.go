package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bitrise-io/go-steputils/v2/export"
	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-steputils/v2/stepenv"
	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-ran-test/archive"
	"github.com/bitrise-steplib/steps-ran-test/output"
	"github.com/bitrise-steplib/steps-ran-test/report"
	"github.com/bitrise-steplib/steps-ran-test/step"
)

func main() {
	os.Exit(run())
}

func run() int {
	logger := log.NewLogger()
	exitOnSignal(logger)

	envRepository := stepenv.NewRepository(env.NewRepository())
	configParser, runner := createStep(logger, envRepository)

	config, err := configParser.ProcessConfig()
	if err != nil {
		logger.Errorf("%s", formattedError(fmt.Errorf("Failed to process Step inputs: %w", err)))
		return 1
	}

	result, runErr := runner.Run(config)
	if exportErr := runner.Export(result, runErr != nil); exportErr != nil {
		logger.Warnf("Failed to export outputs: %s", exportErr)
	}

	if runErr != nil {
		if !errors.Is(runErr, step.ErrSequenceFailed) {
			logger.Errorf("%s", formattedError(fmt.Errorf("Failed to run the test sequence: %w", runErr)))
		}
		return 1
	}

	return 0
}

func createStep(logger log.Logger, envRepository env.Repository) (step.RANTestConfigParser, step.RANTestRunner) {
	commandFactory := command.NewFactory(envRepository)
	fileManager := fileutil.NewFileManager()
	pathChecker := pathutil.NewPathChecker()
	outputExporter := export.NewExporter(commandFactory)

	configParser := step.NewRANTestConfigParser(stepconf.NewInputParser(envRepository), logger)
	runner := step.NewRANTestRunner(
		logger,
		step.NewEngineFactory(logger, commandFactory, fileManager, pathChecker),
		report.NewWriter(logger, fileManager),
		output.NewExporter(envRepository, logger, &outputExporter, archive.NewResultExporter(logger, commandFactory, fileManager)),
	)

	return configParser, runner
}

// exitOnSignal ends the process with a failure as soon as SIGUSR1 arrives.
func exitOnSignal(logger log.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1)

	go func() {
		<-signals
		logger.Errorf("Received SIGUSR1, aborting the test sequence")
		os.Exit(1)
	}()
}

func formattedError(err error) string {
	var formatted string

	for i := 0; err != nil; i++ {
		if i > 0 {
			formatted += "\n"
		}
		formatted += strings.Repeat("  ", i) + errorMessage(err)
		err = errors.Unwrap(err)
	}

	return formatted
}

// errorMessage is the message of err without the messages of the errors it wraps.
func errorMessage(err error) string {
	msg := err.Error()
	if wrapped := errors.Unwrap(err); wrapped != nil {
		if trimmed, ok := strings.CutSuffix(msg, ": "+wrapped.Error()); ok {
			return trimmed
		}
	}
	return msg
}
