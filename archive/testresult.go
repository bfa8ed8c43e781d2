package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
)

// ResultCopy describes a log directory exported as a per-step test result.
type ResultCopy struct {
	SourceDir        string
	TargetResultPath string
	TargetBundleName string
}

// ResultExporter copies a log directory into the test results location.
type ResultExporter interface {
	CopyAndSaveMetadata(info ResultCopy) error
}

type resultExporter struct {
	logger         log.Logger
	commandFactory command.Factory
	fileManager    fileutil.FileManager
}

// NewResultExporter ...
func NewResultExporter(logger log.Logger, commandFactory command.Factory, fileManager fileutil.FileManager) ResultExporter {
	return &resultExporter{
		logger:         logger,
		commandFactory: commandFactory,
		fileManager:    fileManager,
	}
}

func (e resultExporter) CopyAndSaveMetadata(info ResultCopy) error {
	bundleName := replaceUnsupportedFilenameCharacters(info.TargetBundleName)
	outputDir := filepath.Join(info.TargetResultPath, bundleName)

	if err := e.copyDirectory(info.SourceDir, outputDir); err != nil {
		return err
	}
	return e.saveBundleMetadata(outputDir, bundleName)
}

// replaceUnsupportedFilenameCharacters replaces '/' and ':' which can not appear in a bundle directory name.
func replaceUnsupportedFilenameCharacters(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

func (e resultExporter) copyDirectory(sourceDir string, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0700); err != nil {
		return fmt.Errorf("failed to create directory (%s): %w", targetDir, err)
	}

	// the trailing `/.` copies the content, not the directory itself
	cmd := e.commandFactory.Create("cp", []string{"-a", sourceDir + "/.", targetDir + "/"}, nil)
	e.logger.Donef("$ %s", cmd.PrintableCommandArgs())
	if out, err := cmd.RunAndReturnTrimmedCombinedOutput(); err != nil {
		return fmt.Errorf("copy failed: %w, output: %s", err, out)
	}

	return nil
}

func (e resultExporter) saveBundleMetadata(outputDir string, bundleName string) error {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}
	bytes, err := json.Marshal(testBundle{
		BundleName: bundleName,
	})
	if err != nil {
		return fmt.Errorf("could not encode metadata: %w", err)
	}
	if err := e.fileManager.Write(filepath.Join(outputDir, "test-info.json"), string(bytes), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
