// Command langresd runs the translation resolution engine as a local daemon:
// it keeps the merged table for the active locale warm, refreshes it when
// source files change (and once a day to honor the baseline freshness
// window), and serves lookups to editor-side collaborators over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/packsmith/langres"
	"github.com/packsmith/langres/internal/api"
	"github.com/packsmith/langres/pkg/baseline"
	"github.com/packsmith/langres/pkg/config"
	"github.com/packsmith/langres/pkg/logger"
	"github.com/packsmith/langres/pkg/watcher"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "langresd:", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "langres.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log)

	client, err := baseline.New(
		baseline.WithBaseURL(cfg.Baseline.BaseURL),
		baseline.WithCacheDir(cfg.Baseline.CacheDir),
		baseline.WithTTL(cfg.Baseline.TTL.Std()),
		baseline.WithTimeout(cfg.Baseline.Timeout.Std()),
		baseline.WithLogger(log),
	)
	if err != nil {
		return err
	}

	engine, err := langres.New(
		langres.WithBaseline(client),
		langres.WithLogger(log),
		langres.WithLocale(cfg.Locale),
		langres.WithCandidateRoots(cfg.CandidateRoots...),
		langres.WithConfiguredRoots(cfg.ConfiguredRoots...),
		langres.WithBaselineEnabled(cfg.Baseline.Enabled),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engine.Refresh(ctx); err != nil {
		return err
	}

	// Watch discovered sources and re-resolve on change. The subscription
	// re-registers watches after every refresh so newly discovered packs are
	// picked up too.
	w, err := watcher.New(func() {
		if err := engine.Refresh(context.Background()); err != nil {
			log.Warn("refresh after source change failed", slog.String("error", err.Error()))
		}
	}, watcher.WithLogger(log))
	if err != nil {
		return err
	}
	defer w.Close()

	watchSources := func() {
		for _, src := range engine.Sources() {
			w.Watch(filepath.Join(src.RootPath, "manifest.json"))
			if src.HasOverrideData {
				w.Watch(src.DataPath)
			}
		}
	}
	watchSources()
	engine.Subscribe(watchSources)

	// A daily refresh keeps cached baselines inside the freshness window
	// even when no source file ever changes.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if err := engine.Refresh(context.Background()); err != nil {
			log.Warn("scheduled refresh failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              cfg.Listen,
		Handler:           api.New(engine, log),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", cfg.Listen))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info("shutdown completed")
	return nil
}
