package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/briefgest/internal/api"
	"github.com/dgallion1/briefgest/internal/config"
	"github.com/dgallion1/briefgest/internal/metrics"
	"github.com/dgallion1/briefgest/internal/pipeline"
	"github.com/dgallion1/briefgest/internal/schema"
	"github.com/dgallion1/briefgest/internal/source"
	"github.com/dgallion1/briefgest/internal/stats"
	"github.com/dgallion1/briefgest/internal/store"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage.
	st, err := store.Open(ctx, cfg.DatabasePath, log)
	if err != nil {
		log.Error("failed to open store", "error", err, "path", cfg.DatabasePath)
		os.Exit(1)
	}

	validator, err := schema.New()
	if err != nil {
		log.Error("failed to compile brief schema", "error", err)
		os.Exit(1)
	}

	// Metrics are built before the orchestrator they report on.
	var orch *pipeline.Orchestrator
	m := metrics.NewMetrics(cfg.MetricsNamespace, func() int { return orch.QueueDepth() })
	ps := stats.NewParseStats(cfg.StatsWindow)

	// Initialize pipeline.
	parser := pipeline.NewParser(pipeline.ParserConfig{
		Validator: validator,
		Source:    source.Options{PDFFallback: cfg.PDFFallbackPdftotext},
		MaxPages:  cfg.MaxPages,
		Metrics:   m,
		Stats:     ps,
	})
	orch = pipeline.NewOrchestrator(cfg, parser, st, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(api.Deps{Orchestrator: orch, Store: st, Metrics: m, Stats: ps}, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		orch.Stop()
		if err := st.Close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	log.Info("starting briefgest",
		"port", cfg.Port,
		"workers", cfg.WorkerCount,
		"max_pages", cfg.MaxPages,
		"database", cfg.DatabasePath,
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
