// # internal/runner/runner.go
package runner

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/phantomcyber/soar-app-linter/internal/config"
	"github.com/phantomcyber/soar-app-linter/internal/history"
	"github.com/phantomcyber/soar-app-linter/internal/lint"
	"github.com/phantomcyber/soar-app-linter/internal/manifest"
	"github.com/phantomcyber/soar-app-linter/internal/observability"
	"github.com/phantomcyber/soar-app-linter/internal/pyast"
	"github.com/phantomcyber/soar-app-linter/internal/report"
	"github.com/phantomcyber/soar-app-linter/internal/scan"
	"github.com/phantomcyber/soar-app-linter/internal/watch"
)

// Runner wires the collaborators around the engine: scanning, manifest
// gating, per-file analysis, baseline filtering, and reporting. The engine
// itself is constructed fresh for every file.
type Runner struct {
	cfg      *config.Config
	target   lint.Version
	scanner  *scan.Scanner
	reporter *report.Reporter
	store    *history.Store
	out      io.Writer
}

func New(cfg *config.Config, out io.Writer) (*Runner, error) {
	target, err := lint.ParseVersion(cfg.TargetPythonVersion)
	if err != nil {
		return nil, err
	}

	scanner, err := scan.NewScanner(cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	failOn, err := lint.ParseSeverity(cfg.FailOn)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:     cfg,
		target:  target,
		scanner: scanner,
		reporter: report.New(report.Options{
			Format:       cfg.Format,
			FailOn:       failOn,
			AllowedCodes: cfg.AllowedCodes,
			Color:        cfg.Format == "text",
		}),
		out: out,
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, err
		}
		r.store = store
	}

	return r, nil
}

func (r *Runner) Close() error {
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}

// LintFile analyzes one Python source with a fresh engine instance.
func (r *Runner) LintFile(path string) (report.FileResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return report.FileResult{}, err
	}

	start := time.Now()
	tree, err := pyast.Parse(path, content)
	observability.ParsingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		observability.ParseFailures.Inc()
		return report.FileResult{}, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	engine := lint.NewEngine(tree, lint.Options{Target: r.target})
	diags := engine.Run()

	observability.FilesLinted.Inc()
	for _, d := range diags {
		observability.DiagnosticsTotal.WithLabelValues(d.Code).Inc()
	}

	return report.FileResult{Path: path, Diagnostics: diags}, nil
}

// LintPaths analyzes a list of files, skipping files that fail to read or
// parse with a warning. One broken file never aborts the rest.
func (r *Runner) LintPaths(paths []string) []report.FileResult {
	results := make([]report.FileResult, 0, len(paths))
	for _, path := range paths {
		res, err := r.LintFile(path)
		if err != nil {
			slog.Warn("failed to lint file", "path", path, "error", err)
			continue
		}
		results = append(results, res)
	}
	return results
}

// LintApp lints one app directory: manifest gate first, then every Python
// source under it. A skipped app returns no results and no error.
func (r *Runner) LintApp(appDir string) ([]report.FileResult, error) {
	if r.cfg.Manifest.Validate {
		if !manifest.ShouldProcess(appDir, r.cfg.Manifest.Publisher) {
			slog.Info("skipping app, publisher not accepted", "app", filepath.Base(appDir))
			return nil, nil
		}
		if _, err := manifest.Find(appDir); err != nil {
			return nil, err
		}
	}

	files, err := r.scanner.PythonFiles([]string{appDir})
	if err != nil {
		return nil, err
	}
	return r.LintPaths(files), nil
}

// Run lints a target path and reports. With singleApp, the target is one
// app (or one file); otherwise a directory of subdirectories is treated as
// a multi-app scan. Returns the process exit code.
func (r *Runner) Run(target string, singleApp bool) (int, error) {
	start := time.Now()
	defer func() {
		observability.LintDuration.Observe(time.Since(start).Seconds())
	}()

	info, err := os.Stat(target)
	if err != nil {
		return 1, err
	}

	var results []report.FileResult
	switch {
	case !info.IsDir():
		results = r.LintPaths([]string{target})
	case singleApp:
		results, err = r.LintApp(target)
		if err != nil {
			return 1, err
		}
	default:
		apps, err := scan.AppDirs(target)
		if err != nil {
			return 1, err
		}
		if len(apps) == 0 {
			results, err = r.LintApp(target)
			if err != nil {
				return 1, err
			}
			break
		}
		for _, app := range apps {
			appResults, err := r.LintApp(app)
			if err != nil {
				slog.Warn("failed to lint app", "app", filepath.Base(app), "error", err)
				continue
			}
			results = append(results, appResults...)
		}
	}

	return r.report(target, results)
}

// report applies the allow-list and baseline filters, renders, records the
// run, and derives the exit status.
func (r *Runner) report(root string, results []report.FileResult) (int, error) {
	for i, res := range results {
		results[i].Diagnostics = r.reporter.Filter(res.Diagnostics)
	}

	reported := results
	if r.store != nil && r.cfg.History.BaselineFilter {
		run, ok, err := r.store.LatestRun(root)
		if err != nil {
			return 1, err
		}
		if ok {
			baseline, err := r.store.BaselineKeys(run.ID)
			if err != nil {
				return 1, err
			}
			reported = history.FilterKnown(results, baseline)
		}
	}

	if r.store != nil {
		// Record the unfiltered results so the baseline stays complete.
		if _, err := r.store.RecordRun(root, r.target.String(), results); err != nil {
			slog.Warn("failed to record lint run", "error", err)
		}
	}

	if err := r.reporter.Render(r.out, reported); err != nil {
		return 1, err
	}
	return r.reporter.ExitCode(reported), nil
}

// Watch lints the target, then re-lints on source changes until the stop
// channel closes. Re-lint frequency is capped so pathological churn cannot
// peg a core.
func (r *Runner) Watch(target string, stop <-chan struct{}) error {
	if r.cfg.Metrics.Listen != "" {
		observability.Serve(r.cfg.Metrics.Listen)
	}

	if _, err := r.Run(target, true); err != nil {
		return err
	}

	limiter := rate.NewLimiter(rate.Limit(r.cfg.Watch.MaxRelintsPerSec), 1)

	w, err := watch.NewWatcher(r.cfg.Watch.Debounce, r.cfg.Exclude.Dirs, r.cfg.Exclude.Files, func(paths []string) {
		if !limiter.Allow() {
			slog.Debug("re-lint suppressed by rate limit", "changed", len(paths))
			return
		}
		slog.Info("sources changed, re-linting", "changed", len(paths))
		if _, err := r.Run(target, true); err != nil {
			slog.Warn("re-lint failed", "error", err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Watch([]string{target}); err != nil {
		return err
	}

	<-stop
	return nil
}
