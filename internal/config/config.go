// Package config loads the application configuration by merging, in order,
// the global config file, the per-user data config, and project-local
// overrides. Later sources win per-key.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	"github.com/qjebbs/go-jsons"
)

const (
	appName        = "parley"
	defaultDataDir = ".parley"
)

type Config struct {
	Options Options `json:"options,omitempty"`

	workingDir string
}

type Options struct {
	// DataDirectory holds the SQLite database, logs and the init flag.
	DataDirectory string `json:"data_directory,omitempty" jsonschema:"description=Directory for the database and logs,default=.parley"`
	Debug         bool   `json:"debug,omitempty" jsonschema:"description=Enable debug logging"`
	DisableEvents bool   `json:"disable_events,omitempty" jsonschema:"description=Do not publish entity change events"`
}

func (c *Config) WorkingDir() string { return c.workingDir }

func (c *Config) DataDir() string { return c.Options.DataDirectory }

func (c *Config) LogFile() string {
	return filepath.Join(c.Options.DataDirectory, "logs", appName+".log")
}

// GlobalConfig is the per-user config file path.
func GlobalConfig() string {
	if dir := os.Getenv("PARLEY_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName+".json")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = defaultDataDir
	}
	return filepath.Join(dir, appName, appName+".json")
}

// GlobalConfigData is the config file kept inside the user's data directory,
// written by the app itself rather than by hand.
func GlobalConfigData() string {
	if dir := os.Getenv("PARLEY_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName+".json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(defaultDataDir, appName+".json")
	}
	return filepath.Join(home, ".local", "share", appName, appName+".json")
}

// Load merges all config sources and applies flag and environment overrides.
// The dataDir and debug arguments come from the command line and take
// precedence over everything in the files.
func Load(workingDir, dataDir string, debug bool) (*Config, error) {
	// Optional per-project environment file.
	_ = godotenv.Load(filepath.Join(workingDir, ".env"))

	sources := [][]byte{[]byte("{}")}
	for _, path := range []string{
		GlobalConfig(),
		GlobalConfigData(),
		filepath.Join(workingDir, "."+appName+".json"),
		filepath.Join(workingDir, appName+".json"),
	} {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		sources = append(sources, data)
	}

	values := make([]any, len(sources))
	for i, s := range sources {
		values[i] = s
	}
	merged, err := jsons.Merge(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to merge configs: %w", err)
	}

	cfg := &Config{workingDir: workingDir}
	if err := json.Unmarshal(merged, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse merged config: %w", err)
	}

	if env := os.Getenv("PARLEY_DATA_DIR"); env != "" && dataDir == "" {
		dataDir = env
	}
	if dataDir != "" {
		cfg.Options.DataDirectory = dataDir
	}
	if cfg.Options.DataDirectory == "" {
		cfg.Options.DataDirectory = filepath.Join(workingDir, defaultDataDir)
	}
	if debug || os.Getenv("PARLEY_DEBUG") == "1" {
		cfg.Options.Debug = true
	}

	return cfg, nil
}

// Schema reflects the JSON schema of the config file, for editor completion.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{ExpandedStruct: true}
	return reflector.Reflect(&Config{})
}
