// # internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	content := `
target_python_version = "3.9"
fail_on = "warning"
format = "json"
allowed_codes = ["no-sleeps"]

[manifest]
validate = false
publisher = ""

[exclude]
dirs = [".git", "build"]
files = ["*_test.py"]

[watch]
debounce = "1s"
max_relints_per_sec = 5.0

[history]
enabled = true
path = "lint.db"
baseline_filter = true

[metrics]
listen = "127.0.0.1:9180"
`
	tmpfile, err := os.CreateTemp("", "config*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetPythonVersion != "3.9" {
		t.Errorf("Expected target 3.9, got %s", cfg.TargetPythonVersion)
	}
	if cfg.FailOn != "warning" {
		t.Errorf("Expected fail_on warning, got %s", cfg.FailOn)
	}
	if cfg.Format != "json" {
		t.Errorf("Expected format json, got %s", cfg.Format)
	}
	if len(cfg.AllowedCodes) != 1 || cfg.AllowedCodes[0] != "no-sleeps" {
		t.Errorf("Expected allowed_codes [no-sleeps], got %v", cfg.AllowedCodes)
	}
	if cfg.Manifest.Validate {
		t.Error("Expected manifest validation disabled")
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("Expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Watch.MaxRelintsPerSec != 5.0 {
		t.Errorf("Expected 5 re-lints per second, got %v", cfg.Watch.MaxRelintsPerSec)
	}
	if !cfg.History.Enabled || cfg.History.Path != "lint.db" || !cfg.History.BaselineFilter {
		t.Errorf("Unexpected history config: %+v", cfg.History)
	}
	if cfg.Metrics.Listen != "127.0.0.1:9180" {
		t.Errorf("Expected metrics listen address, got %s", cfg.Metrics.Listen)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.TargetPythonVersion != "3.13" {
		t.Errorf("Expected default target 3.13, got %s", cfg.TargetPythonVersion)
	}
	if cfg.FailOn != "error" {
		t.Errorf("Expected default fail_on error, got %s", cfg.FailOn)
	}
	if cfg.Format != "text" {
		t.Errorf("Expected default format text, got %s", cfg.Format)
	}
	if !cfg.Manifest.Validate || cfg.Manifest.Publisher != "Splunk" {
		t.Errorf("Unexpected default manifest config: %+v", cfg.Manifest)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("Expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
}

func TestValidateRejectsUnknownFormat(t *testing.T) {
	cfg := Default()
	cfg.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected unknown format to be rejected")
	}
}

func TestValidateRejectsUnknownSeverity(t *testing.T) {
	cfg := Default()
	cfg.FailOn = "fatal"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected unknown fail_on to be rejected")
	}
}
