package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/saiganesh-d/doccompare/internal/api"
	"github.com/saiganesh-d/doccompare/internal/compare"
	"github.com/saiganesh-d/doccompare/internal/config"
	"github.com/saiganesh-d/doccompare/internal/match"
	"github.com/saiganesh-d/doccompare/internal/pipeline"
	"github.com/saiganesh-d/doccompare/internal/structure"
)

func main() {
	// Load .env if present; real env always wins.
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the comparison engine.
	comparator := compare.New(compare.Config{
		Match: match.Config{
			Threshold:        cfg.MatchThreshold,
			ReorderTolerance: cfg.ReorderTolerance,
			Workers:          cfg.MatrixWorkers,
			PrefixLen:        cfg.ContentPrefixLen,
		},
		Collate: structure.CollateConfig{
			Window:   cfg.CollateWindow,
			Ratio:    cfg.CollateRatio,
			MinPages: 2,
		},
		MaxRefineLen: cfg.MaxRefineLen,
	}, log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, comparator, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

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

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting doccompare", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
