package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database == "" {
		t.Error("default database path empty")
	}
	if cfg.ExportDir == "" {
		t.Error("default export dir empty")
	}
	if cfg.Verbose {
		t.Error("verbose should default to off")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var onDisk Config
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("written config not valid json: %v", err)
	}
	if onDisk.Database != cfg.Database {
		t.Errorf("on-disk database = %q, want %q", onDisk.Database, cfg.Database)
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{"database": "/tmp/custom.db", "log_file": "/tmp/app.log", "verbose": true, "export_dir": "/tmp/exports"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != "/tmp/custom.db" || cfg.LogFile != "/tmp/app.log" || !cfg.Verbose || cfg.ExportDir != "/tmp/exports" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"database": "/tmp/file.db"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("STUDYPLAN_DATABASE", "/tmp/env.db")
	t.Setenv("STUDYPLAN_VERBOSE", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database != "/tmp/env.db" {
		t.Errorf("database = %q, want env override", cfg.Database)
	}
	if !cfg.Verbose {
		t.Error("verbose env override not applied")
	}
}
