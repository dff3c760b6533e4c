package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/BinkeXu/covid-world-map/internal/adapter/http"
	"github.com/BinkeXu/covid-world-map/internal/adapter/ws"
	"github.com/BinkeXu/covid-world-map/internal/config"
	"github.com/BinkeXu/covid-world-map/internal/dataset"
	"github.com/BinkeXu/covid-world-map/internal/observability"
	"github.com/BinkeXu/covid-world-map/internal/pipeline"
	"github.com/BinkeXu/covid-world-map/internal/selection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	logger.Info("starting covid world map",
		"addr", cfg.HTTPAddr, "dataset_url", cfg.DatasetURL, "hover_delay", cfg.HoverDelay)

	client := dataset.NewClient(cfg.DatasetURL, cfg.FetchTimeout, logger)
	loader := pipeline.New(client, dataset.FallbackRecords, nil, logger, metrics)

	hub := ws.NewHub(loader, logger, metrics)
	state := selection.NewState(loader, hub, logger, metrics)
	hover := selection.NewDebouncer(cfg.HoverDelay, loader, hub, metrics, nil)

	srv := httpadapter.NewServer(cfg.HTTPAddr, loader, loader, state, hover, hub, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Load the dataset, then fan the snapshot out to clients that connected
	// before the load finished. Later connections get it on upgrade.
	go func() {
		snap := loader.Load(ctx)
		hub.NotifySnapshot(snap)
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	hover.Clear()

	logger.Info("shutdown complete")
}
