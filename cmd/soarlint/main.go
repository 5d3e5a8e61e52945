// # cmd/soarlint/main.go
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phantomcyber/soar-app-linter/internal/config"
	"github.com/phantomcyber/soar-app-linter/internal/runner"
)

var (
	configPath = flag.String("config", "./soarlint.toml", "Path to config file")
	format     = flag.String("format", "", "Output format: text, json, or sarif (overrides config)")
	level      = flag.String("level", "", "Minimum severity that fails the run: info, warning, or error (overrides config)")
	pyVersion  = flag.String("python-version", "", "Target Python version, e.g. 3.13 (overrides config)")
	singleApp  = flag.Bool("single-app", false, "Treat the target directory as one app instead of a directory of apps")
	noManifest = flag.Bool("no-manifest", false, "Skip app manifest validation")
	baseline   = flag.Bool("baseline", false, "Report only findings not present in the previous recorded run")
	watchMode  = flag.Bool("watch", false, "Watch the target and re-lint on changes")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	version    = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("soarlint v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *format != "" {
		cfg.Format = *format
	}
	if *level != "" {
		cfg.FailOn = *level
	}
	if *pyVersion != "" {
		cfg.TargetPythonVersion = *pyVersion
	}
	if *noManifest {
		cfg.Manifest.Validate = false
	}
	if *baseline {
		cfg.History.Enabled = true
		cfg.History.BaselineFilter = true
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: soarlint [flags] <app-or-apps-directory>")
		os.Exit(2)
	}
	target := flag.Arg(0)

	r, err := runner.New(cfg, os.Stdout)
	if err != nil {
		slog.Error("failed to initialize linter", "error", err)
		os.Exit(1)
	}
	if *watchMode {
		stop := make(chan struct{})
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigs
			close(stop)
		}()

		err := r.Watch(target, stop)
		r.Close()
		if err != nil {
			slog.Error("watch failed", "error", err)
			os.Exit(1)
		}
		return
	}

	code, err := r.Run(target, *singleApp)
	r.Close()
	if err != nil {
		slog.Error("lint run failed", "error", err)
		os.Exit(1)
	}
	os.Exit(code)
}
