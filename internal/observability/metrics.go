package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "soarlint_parsing_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	})

	FilesLinted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soarlint_files_linted_total",
		Help: "Total number of files analyzed.",
	})

	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soarlint_parse_failures_total",
		Help: "Total number of files that failed to parse.",
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "soarlint_diagnostics_total",
		Help: "Total number of diagnostics emitted, by code.",
	}, []string{"code"})

	LintDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "soarlint_lint_seconds",
		Help:    "Time spent on a whole lint pass.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "soarlint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
