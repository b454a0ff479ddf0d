// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package config

import (
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables
// and config files. Provides centralized configuration management for the HTTP
// server, Badger storage, identity and rate limiting, pair selection, the
// recommendation gate, background maintenance, the live event feed, and logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	API         APIConfig         `koanf:"api"`
	Security    SecurityConfig    `koanf:"security"`
	Pairing     PairingConfig     `koanf:"pairing"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Maintenance MaintenanceConfig `koanf:"maintenance"`
	WebSocket   WebSocketConfig   `koanf:"websocket"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8317)
//   - HTTP_HOST: Listen host (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: Environment mode: "development", "staging", "production"
//     (default: "development")
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
}

// DatabaseConfig holds Badger storage settings.
//
// The store keeps the content catalog, interactions, votes, and pushed
// recommendations in a single Badger instance under Path. Value-log garbage
// collection runs as a supervised background service.
//
// Environment Variables:
//   - BADGER_PATH: Storage directory (default: /data/cineduel)
//   - BADGER_IN_MEMORY: Run fully in memory, no files (default: false)
//   - BADGER_GC_INTERVAL: Value-log GC interval (default: 10m)
//   - BADGER_GC_DISCARD_RATIO: Value-log GC discard ratio (default: 0.5)
//   - CATALOG_SEED_PATH: Optional JSON catalog file loaded at startup
//   - SEED_MOCK_DATA: Seed the built-in demo catalog at startup (default: false)
type DatabaseConfig struct {
	Path           string        `koanf:"path"`
	InMemory       bool          `koanf:"in_memory"` // Used by tests and ephemeral deployments
	GCInterval     time.Duration `koanf:"gc_interval"`
	GCDiscardRatio float64       `koanf:"gc_discard_ratio"`
	SeedPath       string        `koanf:"seed_path"`
	SeedMockData   bool          `koanf:"seed_mock_data"`
}

// APIConfig holds API pagination and response settings.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE: Default page size for list endpoints (default: 20)
//   - API_MAX_PAGE_SIZE: Maximum allowed page size (default: 100)
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds identity, admin, rate limiting, and CORS settings.
//
// CineDuel has no login flow of its own: requests either carry a bearer token
// minted by an external identity provider (verified with JWTSecret) or an
// anonymous session_id chosen by the client. Admin endpoints are enabled only
// when AdminToken is set.
//
// Environment Variables:
//   - JWT_SECRET: HMAC secret for verifying bearer tokens (32+ characters;
//     empty disables token verification and all bearer tokens are rejected)
//   - ADMIN_TOKEN: Static token guarding /api/admin endpoints (16+ characters;
//     empty disables the admin surface entirely)
//   - RATE_LIMIT_REQUESTS: Requests allowed per window (default: 100)
//   - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
//   - DISABLE_RATE_LIMIT: Disable rate limiting (default: false)
//   - CORS_ORIGINS: Comma-separated allowed origins (default: *)
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	AdminToken        string        `koanf:"admin_token"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// PairingConfig holds pair selection settings.
//
// Pair selection draws random eligible pairs and retries up to MaxAttempts
// times to find one the identity has not voted on before falling back to any
// eligible pair. CatalogCacheTTL bounds how long resolved catalog entries are
// cached; content metadata is immutable so positive entries never go stale.
//
// Environment Variables:
//   - PAIR_MAX_ATTEMPTS: Random draws before falling back (default: 50)
//   - CATALOG_CACHE_TTL: Catalog lookup cache TTL (default: 5m, 0 disables)
type PairingConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	CatalogCacheTTL time.Duration `koanf:"catalog_cache_ttl"`
}

// RecommendConfig holds recommendation serving settings.
//
// Recommendations are computed by an external pipeline and pushed through the
// admin API; this service only gates and serves them. VoteThreshold is the
// number of votes an identity needs before stored recommendations unlock.
//
// Environment Variables:
//   - RECOMMEND_VOTE_THRESHOLD: Votes required to unlock (default: 10)
type RecommendConfig struct {
	VoteThreshold int `koanf:"vote_threshold"`
}

// MaintenanceConfig holds background maintenance settings.
//
// The maintenance sweeper removes Shorts-genre entries from the catalog and
// deduplicates stored recommendations. Sweeps iterate the full store, so
// writes are throttled to OpsPerSecond to avoid starving foreground traffic.
//
// Environment Variables:
//   - MAINTENANCE_ENABLED: Enable the periodic sweeper (default: false)
//   - MAINTENANCE_INTERVAL: Time between sweeps (default: 24h)
//   - MAINTENANCE_OPS_PER_SECOND: Store write throttle (default: 200)
//   - MAINTENANCE_SHORTS_SWEEP: Remove Shorts-genre content (default: true)
//   - MAINTENANCE_SHORTS_PATTERN: Genre regexp for the shorts sweep
//     (default: `\bShorts?\b`)
//   - MAINTENANCE_DEDUPE: Deduplicate stored recommendations (default: true)
type MaintenanceConfig struct {
	Enabled               bool          `koanf:"enabled"`
	Interval              time.Duration `koanf:"interval"`
	OpsPerSecond          float64       `koanf:"ops_per_second"`
	ShortsSweep           bool          `koanf:"shorts_sweep"`
	ShortsPattern         string        `koanf:"shorts_pattern"`
	DedupeRecommendations bool          `koanf:"dedupe_recommendations"`
}

// WebSocketConfig holds live event feed settings.
//
// Environment Variables:
//   - WEBSOCKET_ENABLED: Enable the /api/live endpoint (default: true)
//   - WEBSOCKET_PING_INTERVAL: Ping period for idle connections (default: 30s)
//   - WEBSOCKET_WRITE_TIMEOUT: Per-message write deadline (default: 10s)
//   - WEBSOCKET_MAX_MESSAGE_SIZE: Max inbound message bytes (default: 512)
type WebSocketConfig struct {
	Enabled        bool          `koanf:"enabled"`
	PingInterval   time.Duration `koanf:"ping_interval"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	MaxMessageSize int64         `koanf:"max_message_size"`
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// AdminEnabled reports whether the admin API surface is active.
// Admin endpoints return 403 when no admin token is configured.
func (c *Config) AdminEnabled() bool {
	return c.Security.AdminToken != ""
}

// IsProduction returns true if the application is running in production mode.
// Production mode is determined by the ENVIRONMENT environment variable.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// Load loads configuration using Koanf with layered sources.
// This is the standard entry point used by main().
func Load() (*Config, error) {
	return LoadWithKoanf()
}
