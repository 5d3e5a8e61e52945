// # internal/history/store_test.go
package history

import (
	"path/filepath"
	"testing"

	"github.com/phantomcyber/soar-app-linter/internal/lint"
	"github.com/phantomcyber/soar-app-linter/internal/pyast"
	"github.com/phantomcyber/soar-app-linter/internal/report"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func diag(file, code string, line int, args ...string) lint.Diagnostic {
	return lint.Diagnostic{
		Code:     code,
		Location: pyast.Location{File: file, Line: line, Column: 1},
		Args:     args,
	}
}

func TestRecordAndLatestRun(t *testing.T) {
	s := openStore(t)

	results := []report.FileResult{
		{Path: "app/a.py", Diagnostics: []lint.Diagnostic{
			diag("app/a.py", "no-sleeps", 3),
			diag("app/a.py", "no-global-updates", 9, "CACHE"),
		}},
		{Path: "app/b.py"},
	}

	runID, err := s.RecordRun("app", "3.13", results)
	if err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	if runID == "" {
		t.Fatal("Expected a run ID")
	}

	run, ok, err := s.LatestRun("app")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Expected a recorded run")
	}
	if run.ID != runID {
		t.Errorf("Expected run %s, got %s", runID, run.ID)
	}
	if run.FileCount != 2 || run.DiagnosticCount != 2 {
		t.Errorf("Unexpected counts: %+v", run)
	}
	if run.TargetVersion != "3.13" {
		t.Errorf("Expected target 3.13, got %s", run.TargetVersion)
	}
}

func TestLatestRunWithoutHistory(t *testing.T) {
	s := openStore(t)

	_, ok, err := s.LatestRun("app")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Expected no run for an empty store")
	}
}

func TestBaselineFiltering(t *testing.T) {
	s := openStore(t)

	baselineResults := []report.FileResult{
		{Path: "app/a.py", Diagnostics: []lint.Diagnostic{
			diag("app/a.py", "no-sleeps", 3),
		}},
	}
	runID, err := s.RecordRun("app", "3.13", baselineResults)
	if err != nil {
		t.Fatal(err)
	}

	baseline, err := s.BaselineKeys(runID)
	if err != nil {
		t.Fatal(err)
	}

	// The old finding moved to another line; a new one appeared.
	current := []report.FileResult{
		{Path: "app/a.py", Diagnostics: []lint.Diagnostic{
			diag("app/a.py", "no-sleeps", 17),
			diag("app/a.py", "no-shell-access", 20),
		}},
	}
	filtered := FilterKnown(current, baseline)

	if len(filtered) != 1 {
		t.Fatalf("Expected 1 file result, got %d", len(filtered))
	}
	diags := filtered[0].Diagnostics
	if len(diags) != 1 || diags[0].Code != "no-shell-access" {
		t.Errorf("Expected only the new finding, got %v", diags)
	}
}

func TestBaselineKeyIncludesArgs(t *testing.T) {
	s := openStore(t)

	runID, err := s.RecordRun("app", "3.13", []report.FileResult{
		{Path: "app/a.py", Diagnostics: []lint.Diagnostic{
			diag("app/a.py", "no-global-updates", 5, "CACHE"),
		}},
	})
	if err != nil {
		t.Fatal(err)
	}

	baseline, err := s.BaselineKeys(runID)
	if err != nil {
		t.Fatal(err)
	}

	current := []report.FileResult{
		{Path: "app/a.py", Diagnostics: []lint.Diagnostic{
			diag("app/a.py", "no-global-updates", 5, "REGISTRY"),
		}},
	}
	filtered := FilterKnown(current, baseline)
	if len(filtered[0].Diagnostics) != 1 {
		t.Error("Expected a finding with different arguments to survive the baseline")
	}
}

func TestOpenRejectsDirectoryPath(t *testing.T) {
	if _, err := Open(t.TempDir()); err == nil {
		t.Error("Expected opening a directory path to fail")
	}
}
