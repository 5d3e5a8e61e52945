// Package history persists lint runs to sqlite so later passes can be
// compared against a recorded baseline.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/phantomcyber/soar-app-linter/internal/lint"
	"github.com/phantomcyber/soar-app-linter/internal/report"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

// Run is one recorded lint pass.
type Run struct {
	ID              string
	Root            string
	TargetVersion   string
	Timestamp       time.Time
	FileCount       int
	DiagnosticCount int
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun stores one lint pass and its diagnostics, returning the run ID.
func (s *Store) RecordRun(root, targetVersion string, results []report.FileResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()
	total := 0
	for _, res := range results {
		total += len(res.Diagnostics)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO runs (id, root, target_version, ts_utc, file_count, diagnostic_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, root, targetVersion,
		time.Now().UTC().Format(time.RFC3339Nano),
		len(results), total,
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}

	for _, res := range results {
		for _, d := range res.Diagnostics {
			_, err = tx.Exec(
				`INSERT INTO diagnostics (run_id, path, line, col, code, args)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				runID, d.Location.File, d.Location.Line, d.Location.Column,
				d.Code, strings.Join(d.Args, "\x1f"),
			)
			if err != nil {
				return "", fmt.Errorf("record diagnostic: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// LatestRun returns the most recent run for a root, or false when none
// has been recorded yet.
func (s *Store) LatestRun(root string) (Run, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		`SELECT id, root, target_version, ts_utc, file_count, diagnostic_count
		 FROM runs WHERE root = ? ORDER BY ts_utc DESC LIMIT 1`, root)

	var run Run
	var ts string
	err := row.Scan(&run.ID, &run.Root, &run.TargetVersion, &ts, &run.FileCount, &run.DiagnosticCount)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	run.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	return run, true, nil
}

// BaselineKeys returns the identity keys of every diagnostic in a run.
// Keys deliberately exclude line and column so edits that only shift code
// do not surface old findings as new.
func (s *Store) BaselineKeys(runID string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT path, code, args FROM diagnostics WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var path, code, args string
		if err := rows.Scan(&path, &code, &args); err != nil {
			return nil, err
		}
		keys[path+"\x1e"+code+"\x1e"+args] = struct{}{}
	}
	return keys, rows.Err()
}

// FilterKnown removes diagnostics whose identity key appears in the
// baseline, keeping only new findings.
func FilterKnown(results []report.FileResult, baseline map[string]struct{}) []report.FileResult {
	if len(baseline) == 0 {
		return results
	}
	out := make([]report.FileResult, 0, len(results))
	for _, res := range results {
		kept := make([]lint.Diagnostic, 0, len(res.Diagnostics))
		for _, d := range res.Diagnostics {
			key := d.Location.File + "\x1e" + d.Code + "\x1e" + strings.Join(d.Args, "\x1f")
			if _, ok := baseline[key]; ok {
				continue
			}
			kept = append(kept, d)
		}
		out = append(out, report.FileResult{Path: res.Path, Diagnostics: kept})
	}
	return out
}
