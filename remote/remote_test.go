package remote

import (
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/command"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createGateway(forceLocal bool) Gateway {
	return NewGateway(log.NewLogger(), command.NewFactory(env.NewRepository()), forceLocal)
}

func Test_GivenLocalHost_WhenCommandSucceeds_ThenReturnsOutputAndZeroExitCode(t *testing.T) {
	// Given
	gateway := createGateway(false)

	// When
	out, err := gateway.Run(Localhost, "echo got sync")

	// Then
	require.NoError(t, err)
	assert.True(t, out.Succeeded())
	assert.Equal(t, "got sync", out.String())
}

func Test_GivenLocalHost_WhenCommandExitsWithNonZero_ThenReportsExitCodeWithoutError(t *testing.T) {
	// Given
	gateway := createGateway(false)

	// When
	out, err := gateway.Run("", "echo failing >&2; exit 3")

	// Then
	require.NoError(t, err)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "failing", out.String())
}

func Test_GivenForceLocal_WhenRemoteHostIsNamed_ThenRunsLocally(t *testing.T) {
	// Given
	gateway := createGateway(true)

	// When
	out, err := gateway.Run("ran-host-1", "echo local")

	// Then
	require.NoError(t, err)
	assert.Equal(t, "local", out.String())
}

func Test_GivenLocalFile_WhenCopiedIn_ThenDestinationHasContent(t *testing.T) {
	// Given
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "enb.log")
	dst := filepath.Join(tempDir, "000010-enb.log")
	require.NoError(t, fileutil.NewFileManager().Write(src, "Bye.", 0600))

	gateway := createGateway(false)

	// When
	err := gateway.CopyIn(Localhost, src, dst)

	// Then
	require.NoError(t, err)
	assert.FileExists(t, dst)
}

func Test_GivenMissingFile_WhenCopiedIn_ThenFails(t *testing.T) {
	// Given
	tempDir := t.TempDir()
	gateway := createGateway(false)

	// When
	err := gateway.CopyIn(Localhost, filepath.Join(tempDir, "missing.log"), filepath.Join(tempDir, "out.log"))

	// Then
	assert.Error(t, err)
}
