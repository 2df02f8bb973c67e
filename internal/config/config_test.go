package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	workingDir := t.TempDir()
	t.Setenv("PARLEY_CONFIG_HOME", t.TempDir())
	t.Setenv("PARLEY_DATA_HOME", t.TempDir())
	t.Setenv("PARLEY_DATA_DIR", "")
	t.Setenv("PARLEY_DEBUG", "")

	cfg, err := Load(workingDir, "", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(workingDir, defaultDataDir), cfg.DataDir())
	assert.Equal(t, workingDir, cfg.WorkingDir())
	assert.False(t, cfg.Options.Debug)
}

func TestLoadMergesLocalOverGlobal(t *testing.T) {
	workingDir := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("PARLEY_CONFIG_HOME", configHome)
	t.Setenv("PARLEY_DATA_HOME", t.TempDir())
	t.Setenv("PARLEY_DATA_DIR", "")

	global := `{"options":{"data_directory":"/global","debug":true}}`
	require.NoError(t, os.WriteFile(filepath.Join(configHome, "parley.json"), []byte(global), 0o644))

	local := `{"options":{"data_directory":"/local"}}`
	require.NoError(t, os.WriteFile(filepath.Join(workingDir, ".parley.json"), []byte(local), 0o644))

	cfg, err := Load(workingDir, "", false)
	require.NoError(t, err)
	assert.Equal(t, "/local", cfg.DataDir())
	// Keys the local file does not set survive from the global one.
	assert.True(t, cfg.Options.Debug)
}

func TestLoadFlagOverrides(t *testing.T) {
	workingDir := t.TempDir()
	t.Setenv("PARLEY_CONFIG_HOME", t.TempDir())
	t.Setenv("PARLEY_DATA_HOME", t.TempDir())
	t.Setenv("PARLEY_DATA_DIR", "/from-env")

	cfg, err := Load(workingDir, "", false)
	require.NoError(t, err)
	assert.Equal(t, "/from-env", cfg.DataDir())

	cfg, err = Load(workingDir, "/from-flag", true)
	require.NoError(t, err)
	assert.Equal(t, "/from-flag", cfg.DataDir())
	assert.True(t, cfg.Options.Debug)
}

func TestLogFile(t *testing.T) {
	cfg := &Config{Options: Options{DataDirectory: "/data"}}
	assert.Equal(t, filepath.Join("/data", "logs", "parley.log"), cfg.LogFile())
}

func TestInitFlag(t *testing.T) {
	cfg := &Config{Options: Options{DataDirectory: t.TempDir()}}

	needs, err := NeedsInitialization(cfg)
	require.NoError(t, err)
	assert.True(t, needs)

	require.NoError(t, MarkInitialized(cfg))

	needs, err = NeedsInitialization(cfg)
	require.NoError(t, err)
	assert.False(t, needs)
}

func TestSchema(t *testing.T) {
	schema := Schema()
	require.NotNil(t, schema)
	_, ok := schema.Properties.Get("options")
	assert.True(t, ok)
}
