// Package config loads the application configuration from a JSON file
// under the user config directory, writing defaults on first run.
// Environment variables prefixed STUDYPLAN_ override the file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"studyplan/internal/store"
)

// Config holds the process-level settings that live outside the planner
// database.
type Config struct {
	Database  string `json:"database" envconfig:"DATABASE"`
	LogFile   string `json:"log_file" envconfig:"LOG_FILE"`
	Verbose   bool   `json:"verbose" envconfig:"VERBOSE"`
	ExportDir string `json:"export_dir" envconfig:"EXPORT_DIR"`
}

func defaultConfig() (Config, error) {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Database:  dbPath,
		ExportDir: home,
	}, nil
}

// Dir returns the directory holding the config file.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "studyplan"), nil
}

// Load reads the config at path, creating it with defaults when it does
// not exist. An empty path means the default location. Environment
// overrides are applied last.
func Load(path string) (Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, "config.json")
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
	case err != nil:
		return cfg, err
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process("studyplan", &cfg); err != nil {
		return cfg, fmt.Errorf("env overrides: %w", err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
