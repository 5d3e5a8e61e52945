package history

import (
	"database/sql"
	"fmt"
)

const SchemaVersion = 1

var schema = []string{
	`
CREATE TABLE IF NOT EXISTS runs (
  id TEXT NOT NULL PRIMARY KEY,
  root TEXT NOT NULL,
  target_version TEXT NOT NULL,
  ts_utc TEXT NOT NULL,
  file_count INTEGER NOT NULL,
  diagnostic_count INTEGER NOT NULL,
  created_at_utc TEXT NOT NULL DEFAULT (CURRENT_TIMESTAMP)
);
CREATE INDEX IF NOT EXISTS idx_runs_root_ts ON runs(root, ts_utc);
`,
	`
CREATE TABLE IF NOT EXISTS diagnostics (
  run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
  path TEXT NOT NULL,
  line INTEGER NOT NULL,
  col INTEGER NOT NULL,
  code TEXT NOT NULL,
  args TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_diagnostics_run ON diagnostics(run_id);
CREATE INDEX IF NOT EXISTS idx_diagnostics_key ON diagnostics(path, code);
`,
}

func EnsureSchema(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema step %d: %w", i+1, err)
		}
	}
	return nil
}
