// # internal/test/integration/lint_integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phantomcyber/soar-app-linter/internal/config"
	"github.com/phantomcyber/soar-app-linter/internal/runner"
)

const appDescriptor = `{
  "appid": "b2c1d3e4-0000-0000-0000-000000000001",
  "name": "Example App",
  "description": "Example",
  "publisher": "Splunk",
  "package_name": "phantom_example",
  "type": "information",
  "main_module": "example_connector.py",
  "app_version": "1.0.0",
  "product_vendor": "Example",
  "product_name": "Example",
  "product_version_regex": ".*",
  "min_phantom_version": "6.0.0",
  "logo": "logo.svg",
  "configuration": {},
  "actions": [],
  "python_version": "3.13"
}`

const connectorSource = `import time
import requests

CACHE = {}

def remember(key, value):
    CACHE[key] = value

def wait():
    time.sleep(10)
`

func createTestApp(t *testing.T, root, name string) string {
	appDir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "app.json"), []byte(appDescriptor), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "example_connector.py"), []byte(connectorSource), 0o644))
	return appDir
}

type jsonFinding struct {
	Type      string `json:"type"`
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Symbol    string `json:"symbol"`
	MessageID string `json:"message-id"`
}

func newRunner(t *testing.T, cfg *config.Config, out *bytes.Buffer) *runner.Runner {
	t.Helper()
	r, err := runner.New(cfg, out)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSingleAppPipeline(t *testing.T) {
	appDir := createTestApp(t, t.TempDir(), "example_app")

	cfg := config.Default()
	cfg.Format = "json"
	cfg.FailOn = "warning"

	var out bytes.Buffer
	r := newRunner(t, cfg, &out)

	code, err := r.Run(appDir, true)
	require.NoError(t, err)
	assert.Equal(t, 1, code, "warnings must fail at the warning threshold")

	var findings []jsonFinding
	require.NoError(t, json.Unmarshal(out.Bytes(), &findings))

	symbols := make([]string, len(findings))
	for i, f := range findings {
		symbols[i] = f.Symbol
	}
	assert.Contains(t, symbols, "no-sleeps")
	assert.Contains(t, symbols, "not-recommended-libraries-requests")
	assert.Contains(t, symbols, "no-global-updates")
}

func TestMultiAppDirectory(t *testing.T) {
	root := t.TempDir()
	createTestApp(t, root, "app_one")
	createTestApp(t, root, "app_two")

	cfg := config.Default()
	cfg.Format = "json"
	cfg.FailOn = "error"

	var out bytes.Buffer
	r := newRunner(t, cfg, &out)

	code, err := r.Run(root, false)
	require.NoError(t, err)
	assert.Equal(t, 1, code, "the global update is an error and must fail the run")

	var findings []jsonFinding
	require.NoError(t, json.Unmarshal(out.Bytes(), &findings))

	paths := make(map[string]bool)
	for _, f := range findings {
		paths[filepath.Base(filepath.Dir(f.Path))] = true
	}
	assert.True(t, paths["app_one"], "expected findings from app_one")
	assert.True(t, paths["app_two"], "expected findings from app_two")
}

func TestPublisherGateSkipsForeignApps(t *testing.T) {
	root := t.TempDir()
	appDir := createTestApp(t, root, "foreign_app")
	foreign := strings.Replace(appDescriptor, `"Splunk"`, `"Acme"`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "app.json"), []byte(foreign), 0o644))

	cfg := config.Default()
	cfg.Format = "json"

	var out bytes.Buffer
	r := newRunner(t, cfg, &out)

	code, err := r.Run(appDir, true)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	var findings []jsonFinding
	require.NoError(t, json.Unmarshal(out.Bytes(), &findings))
	assert.Empty(t, findings, "a skipped app must produce no findings")
}

func TestAllowedCodesSuppressFindings(t *testing.T) {
	appDir := createTestApp(t, t.TempDir(), "example_app")

	cfg := config.Default()
	cfg.Format = "json"
	cfg.FailOn = "warning"
	cfg.AllowedCodes = []string{
		"no-sleeps",
		"not-recommended-libraries-requests",
		"no-global-updates",
	}

	var out bytes.Buffer
	r := newRunner(t, cfg, &out)

	code, err := r.Run(appDir, true)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestBaselineFilterHidesKnownFindings(t *testing.T) {
	tmp := t.TempDir()
	appDir := createTestApp(t, tmp, "example_app")

	cfg := config.Default()
	cfg.Format = "json"
	cfg.FailOn = "error"
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(tmp, "history.db")

	// First pass records the baseline.
	var first bytes.Buffer
	r := newRunner(t, cfg, &first)
	_, err := r.Run(appDir, true)
	require.NoError(t, err)

	var firstFindings []jsonFinding
	require.NoError(t, json.Unmarshal(first.Bytes(), &firstFindings))
	require.NotEmpty(t, firstFindings)

	// Second pass with the filter on sees nothing new.
	cfg.History.BaselineFilter = true
	var second bytes.Buffer
	r2 := newRunner(t, cfg, &second)
	_, err = r2.Run(appDir, true)
	require.NoError(t, err)

	var secondFindings []jsonFinding
	require.NoError(t, json.Unmarshal(second.Bytes(), &secondFindings))
	assert.Empty(t, secondFindings)
}
