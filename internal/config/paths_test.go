package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(paths.HomeDir, "config.yaml"), paths.ConfigFile)
	assert.Equal(t, ".omod", filepath.Base(paths.HomeDir))
}

func TestGetConfigFile(t *testing.T) {
	t.Run("defaults to home config file", func(t *testing.T) {
		t.Setenv("OMOD_CONFIG", "")

		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "config.yaml", filepath.Base(path))
	})

	t.Run("OMOD_CONFIG takes precedence", func(t *testing.T) {
		t.Setenv("OMOD_CONFIG", "/custom/omod.yaml")

		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/custom/omod.yaml", path)
	})
}
