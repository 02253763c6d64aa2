package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Someblueman/commentgen/internal/commentgen"
)

func TestInitCmd_WritesConfigFile(t *testing.T) {
	resetConfig(t)
	tempDir := t.TempDir()
	t.Chdir(tempDir)

	out, _, err := executeCommand("init")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	contents, err := os.ReadFile(filepath.Join(tempDir, configFileName))
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, yaml.Unmarshal(contents, &cfg))
	assert.Equal(t, defaultPath, cfg[pathKey])
	assert.Equal(t, currentConfigVersion, cfg[configVersionKey])
	assert.Equal(t, string(commentgen.PlacementStatement), cfg[arrowPlacementKey])
	assert.Contains(t, cfg, "log")
}

func TestInitCmd_ErrorsWhenFileExists(t *testing.T) {
	resetConfig(t)
	tempDir := t.TempDir()
	t.Chdir(tempDir)

	targetPath := filepath.Join(tempDir, configFileName)
	require.NoError(t, os.WriteFile(targetPath, []byte("path: src\n"), 0o644))

	_, _, err := executeCommand("init")
	require.Error(t, err)

	contents, err := os.ReadFile(targetPath)
	require.NoError(t, err)
	assert.Equal(t, "path: src\n", string(contents))
}
