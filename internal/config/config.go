// # internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// Python runtime version the analysis targets. Gates the
	// version-specific checkers.
	TargetPythonVersion string `toml:"target_python_version"`

	// Minimum severity that fails the run: info, warning, or error.
	FailOn string `toml:"fail_on"`

	// Output format: text, json, or sarif.
	Format string `toml:"format"`

	// Diagnostic codes excluded from reporting and from the exit status.
	AllowedCodes []string `toml:"allowed_codes"`

	Manifest Manifest `toml:"manifest"`
	Exclude  Exclude  `toml:"exclude"`
	Watch    Watch    `toml:"watch"`
	History  History  `toml:"history"`
	Metrics  Metrics  `toml:"metrics"`
}

type Manifest struct {
	// Validate the app's JSON descriptor before linting.
	Validate bool `toml:"validate"`
	// Only lint apps whose descriptor names this publisher. Empty means
	// lint everything.
	Publisher string `toml:"publisher"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// Upper bound on re-lint passes per second during watch churn.
	MaxRelintsPerSec float64 `toml:"max_relints_per_sec"`
}

type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	// When set, diagnostics already recorded in the baseline run are
	// filtered from the report.
	BaselineFilter bool `toml:"baseline_filter"`
}

type Metrics struct {
	// Address for the Prometheus endpoint in watch mode, e.g.
	// "127.0.0.1:9180". Empty disables it.
	Listen string `toml:"listen"`
}

func Default() *Config {
	return &Config{
		TargetPythonVersion: "3.13",
		FailOn:              "error",
		Format:              "text",
		Manifest: Manifest{
			Validate:  true,
			Publisher: "Splunk",
		},
		Exclude: Exclude{
			Dirs:  []string{".git", "__pycache__", ".venv", "venv"},
			Files: []string{"*_test.py", "test_*.py"},
		},
		Watch: Watch{
			Debounce:         500 * time.Millisecond,
			MaxRelintsPerSec: 2,
		},
		History: History{
			Path: ".soarlint/history.db",
		},
	}
}

// Load reads a TOML config file, filling unset fields with defaults. A
// missing file yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MaxRelintsPerSec <= 0 {
		cfg.Watch.MaxRelintsPerSec = 2
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case "text", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	switch c.FailOn {
	case "info", "warning", "error":
	default:
		return fmt.Errorf("unknown fail_on severity %q", c.FailOn)
	}
	return nil
}
