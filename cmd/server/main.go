// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cineduel/internal/api"
	"github.com/tomtom215/cineduel/internal/auth"
	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/database"
	"github.com/tomtom215/cineduel/internal/exclusion"
	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/maintenance"
	"github.com/tomtom215/cineduel/internal/pairing"
	"github.com/tomtom215/cineduel/internal/recommend"
	"github.com/tomtom215/cineduel/internal/supervisor"
	"github.com/tomtom215/cineduel/internal/supervisor/services"
	ws "github.com/tomtom215/cineduel/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", api.Version).Msg("Starting CineDuel with supervisor tree")

	logging.Info().
		Str("store_path", cfg.Database.Path).
		Bool("in_memory", cfg.Database.InMemory).
		Bool("admin_enabled", cfg.AdminEnabled()).
		Bool("websocket_enabled", cfg.WebSocket.Enabled).
		Bool("maintenance_enabled", cfg.Maintenance.Enabled).
		Msg("Configuration loaded")

	// Open the Badger store holding the catalog, interactions, votes, and
	// pushed recommendations
	store, err := database.Open(&cfg.Database, cfg.Pairing.CatalogCacheTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened successfully")

	// Seed the catalog from a JSON file if configured
	if cfg.Database.SeedPath != "" {
		count, err := store.LoadCatalogFile(context.Background(), cfg.Database.SeedPath)
		if err != nil {
			// Close store before fatal exit since Fatal skips defers
			if closeErr := store.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing store")
			}
			logging.Fatal().Err(err).Str("path", cfg.Database.SeedPath).Msg("Failed to load catalog seed file")
		}
		logging.Info().Int("items", count).Str("path", cfg.Database.SeedPath).Msg("Catalog seed file loaded")
	}

	// Seed the built-in demo catalog if enabled (for development and CI)
	if cfg.Database.SeedMockData {
		logging.Info().Msg("Mock data seeding enabled (SEED_MOCK_DATA=true)")
		if err := store.SeedMockData(context.Background()); err != nil {
			if closeErr := store.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing store")
			}
			logging.Fatal().Err(err).Msg("Failed to seed mock data")
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Create WebSocket hub for live vote/interaction events. A nil hub keeps
	// /api/live returning 503 without touching the rest of the API surface.
	var wsHub *ws.Hub
	if cfg.WebSocket.Enabled {
		wsHub = ws.NewHub(&cfg.WebSocket)
	} else {
		logging.Info().Msg("WebSocket live feed disabled (WEBSOCKET_ENABLED=false)")
	}

	// Identity: bearer tokens minted by an external provider, verified here.
	// Anonymous callers use session identifiers instead.
	tokens := auth.NewManager(&cfg.Security)
	if cfg.Security.JWTSecret == "" {
		logging.Warn().Msg("JWT_SECRET not set - bearer tokens will be rejected, anonymous sessions only")
	} else {
		logging.Info().Msg("Bearer token verification enabled")
	}

	// Domain services: the exclusion resolver backs both pair selection and
	// recommendation serving so the two surfaces can never disagree about
	// what an identity has already seen
	resolver := exclusion.New(store, store, store)
	selector := pairing.New(store, resolver, &cfg.Pairing)
	recSvc := recommend.New(store, store, store, resolver, &cfg.Recommend)

	sweeper, err := maintenance.NewSweeper(store, cfg.Maintenance)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create maintenance sweeper")
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
		logging.Warn().Msg("This should only be used for development and CI!")
	}

	// Warn about wildcard CORS when bearer verification is enabled
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: CORS is configured with wildcard origin (CORS_ORIGINS=*)")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  This allows ANY website to make cross-origin requests to your API.")
		logging.Warn().Msg("  With bearer authentication enabled this creates a security risk.")
		logging.Warn().Msg("  ")
		logging.Warn().Msg("  RECOMMENDED: Set specific origins in production:")
		logging.Warn().Msg("    CORS_ORIGINS=https://yourdomain.com,https://app.yourdomain.com")
		logging.Warn().Msg("============================================================")
	}

	if !cfg.AdminEnabled() {
		logging.Info().Msg("Admin API disabled (ADMIN_TOKEN not set)")
	}

	handler := api.NewHandler(store, selector, recSvc, sweeper, tokens, wsHub, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	// Store layer services
	tree.AddStoreService(services.NewStoreGCService(store, cfg.Database.GCInterval))
	if cfg.Maintenance.Enabled {
		tree.AddStoreService(services.NewMaintenanceService(sweeper))
		logging.Info().Dur("interval", cfg.Maintenance.Interval).Msg("Maintenance sweeper added to supervisor tree")
	}

	// Messaging layer services
	if wsHub != nil {
		tree.AddMessagingService(services.NewWebSocketHubService(wsHub))
		logging.Info().Msg("WebSocket hub added to supervisor tree")
	}

	// API layer services
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
