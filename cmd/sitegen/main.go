package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegen/internal/config"
	"git.home.luguber.info/inful/sitegen/internal/metrics"
	"git.home.luguber.info/inful/sitegen/internal/site"
	"git.home.luguber.info/inful/sitegen/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"config.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct{} `cmd:"" help:"Build the static site once"`

	Watch struct {
		Every       time.Duration `help:"Also rebuild on a fixed interval (0 disables)"`
		MetricsAddr string        `help:"Expose Prometheus build metrics on this address (e.g. :9090)"`
	} `cmd:"" help:"Rebuild the site whenever source files change"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runBuild(cfg); err != nil {
			slog.Error("Build failed", "error", err)
			os.Exit(1)
		}
	case "watch":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runWatch(cfg); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Configuration file written", "path", CLI.Config)
	}
}

func runBuild(cfg *config.Config) error {
	gen := site.NewGenerator(cfg)
	_, err := gen.Build(context.Background())
	return err
}

func runWatch(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gen := site.NewGenerator(cfg)
	if CLI.Watch.MetricsAddr != "" {
		recorder := metrics.NewPrometheusRecorder(nil)
		gen.WithRecorder(recorder)
		go serveMetrics(ctx, CLI.Watch.MetricsAddr, recorder)
	}

	// Rebuilds are serialized: a watcher event and a scheduled rebuild must
	// never run the pipeline concurrently against the same output tree.
	var mu sync.Mutex
	rebuild := func() {
		mu.Lock()
		defer mu.Unlock()
		if _, err := gen.Build(ctx); err != nil {
			slog.Error("Build failed", "error", err)
		}
	}

	rebuild()

	watcher, err := watch.New(rebuild)
	if err != nil {
		return err
	}
	if err := watcher.Add(
		cfg.IO.InputDir,
		filepath.Join(cfg.IO.InputDir, "blog"),
		filepath.Join(cfg.IO.StaticDir, "js"),
		filepath.Join(cfg.IO.StaticDir, "img"),
		filepath.Join(cfg.IO.StaticDir, "scss"),
		cfg.IO.TemplatesDir,
	); err != nil {
		return err
	}

	if CLI.Watch.Every > 0 {
		scheduler, err := watch.NewScheduler(CLI.Watch.Every, rebuild)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				slog.Warn("Failed to stop scheduler", "error", err)
			}
		}()
	}

	slog.Info("Watching for changes", "input", cfg.IO.InputDir)
	return watcher.Run(ctx)
}

func serveMetrics(ctx context.Context, addr string, recorder *metrics.PrometheusRecorder) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Metrics server shutdown failed", "error", err)
		}
	}()

	slog.Info("Serving metrics", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Metrics server failed", "error", err)
	}
}
