// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

// Package main is the entry point for the recommendation server.
//
// The server exposes POST /recommend under a suture supervisor tree:
//
//	revets (root)
//	├── maintenance-layer
//	│   └── cache-janitor (sweeps expired response cache entries)
//	└── api-layer
//	    └── http-server
//
// # Configuration
//
// Loaded via koanf (highest priority wins): environment variables, .env,
// config.yaml, built-in defaults. The most useful variables:
//
//	HTTP_HOST, HTTP_PORT          listen address (default 0.0.0.0:5000)
//	CACHE_TTL, CACHE_MAX_ENTRIES  response cache (default 300s, 500 entries)
//	SERVICE_LOG_PATH              request log (default service.log)
//	RECOMMEND_PRODUCT_IDS         recommended IDs (default 1,2,3)
//	LOG_LEVEL, LOG_FORMAT         operational logging
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the tree; in-flight requests get
// SHUTDOWN_TIMEOUT to finish.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/revets/internal/api"
	"github.com/tomtom215/revets/internal/cache"
	"github.com/tomtom215/revets/internal/config"
	"github.com/tomtom215/revets/internal/logging"
	"github.com/tomtom215/revets/internal/recommend"
	"github.com/tomtom215/revets/internal/supervisor"
	"github.com/tomtom215/revets/internal/supervisor/services"
)

// janitorInterval is how often expired cache entries are swept.
const janitorInterval = time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Dur("cache_ttl", cfg.Cache.TTL).
		Str("service_log", cfg.Recommend.LogPath).
		Msg("Starting recommendation server")

	engine, err := recommend.NewEngine(cfg.Recommend.ProductIDs)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	sink, err := logging.NewFileSink(cfg.Recommend.LogPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open request log")
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing request log")
		}
	}()

	respCache := cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)

	handler := api.NewHandler(engine, sink)
	router := api.NewRouter(handler, respCache, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddMaintenanceService(cache.NewJanitor(respCache, janitorInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	stats := respCache.GetStats()
	logging.Info().
		Int64("cache_hits", stats.Hits).
		Int64("cache_misses", stats.Misses).
		Msg("Server stopped")
}
