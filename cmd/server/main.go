// Command server is the entry point for the Pulseboard dashboard server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pulseboard/internal/cache"
	"pulseboard/internal/catalog"
	"pulseboard/internal/config"
	"pulseboard/internal/featureflags"
	"pulseboard/internal/observability"
	"pulseboard/internal/seed"
	"pulseboard/internal/server"
	"pulseboard/internal/service"
)

// @title Pulseboard API
// @version 1.0
// @description Social media content performance dashboard over a synthetic dataset.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8501
// @BasePath /api
// @schemes http https

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		observability.Logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := observability.Setup(os.Stdout, cfg.Env, cfg.LogFormat, cfg.LogLevel)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    observability.ServiceName,
		ServiceVersion: server.Version,
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   cfg.TracingSamplerRatio,
	})
	if err != nil {
		logger.Error("failed to initialise tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cat := catalog.Default()
	if cfg.CatalogFile != "" {
		if cat, err = catalog.Load(cfg.CatalogFile); err != nil {
			logger.Error("failed to load catalog", slog.String("file", cfg.CatalogFile), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	gen := seed.NewGenerator(seed.Options{Catalog: cat, LookbackDays: cfg.LookbackDays})
	svc := service.NewDashboardService(cat, service.NewDatasetCache(gen), featureflags.NewManager(cfg.FeatureFlags), service.DashboardOptions{
		DatasetSize:       cfg.DatasetSize,
		Seed:              cfg.DatasetSeed,
		LookbackDays:      cfg.LookbackDays,
		DefaultWindowDays: cfg.DefaultWindowDays,
		RowLimit:          cfg.TableRowLimit,
	})

	// Generate the dataset up front so a bad catalog fails at boot.
	if _, err := svc.Enriched(context.Background()); err != nil {
		logger.Error("failed to build dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient := cache.ConnectRedis(context.Background(), cfg.RedisURL)
	srv := server.NewServer(cfg, svc, redisClient)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("server shutdown error", slog.String("error", err.Error()))
		}
		if err := shutdownTracing(ctx); err != nil {
			logger.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
