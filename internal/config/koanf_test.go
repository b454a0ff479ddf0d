// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	// Server defaults
	if cfg.Server.Port != 8317 {
		t.Errorf("Server.Port = %d, want 8317", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}

	// Database defaults
	if cfg.Database.Path != "/data/cineduel" {
		t.Errorf("Database.Path = %q, want /data/cineduel", cfg.Database.Path)
	}
	if cfg.Database.InMemory {
		t.Error("Database.InMemory should be false by default")
	}
	if cfg.Database.GCInterval != 10*time.Minute {
		t.Errorf("Database.GCInterval = %v, want 10m", cfg.Database.GCInterval)
	}
	if cfg.Database.GCDiscardRatio != 0.5 {
		t.Errorf("Database.GCDiscardRatio = %v, want 0.5", cfg.Database.GCDiscardRatio)
	}

	// API defaults
	if cfg.API.DefaultPageSize != 20 {
		t.Errorf("API.DefaultPageSize = %d, want 20", cfg.API.DefaultPageSize)
	}
	if cfg.API.MaxPageSize != 100 {
		t.Errorf("API.MaxPageSize = %d, want 100", cfg.API.MaxPageSize)
	}

	// Security defaults
	if cfg.Security.JWTSecret != "" {
		t.Errorf("Security.JWTSecret should be empty by default, got %q", cfg.Security.JWTSecret)
	}
	if cfg.Security.AdminToken != "" {
		t.Errorf("Security.AdminToken should be empty by default, got %q", cfg.Security.AdminToken)
	}
	if cfg.Security.RateLimitReqs != 100 {
		t.Errorf("Security.RateLimitReqs = %d, want 100", cfg.Security.RateLimitReqs)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}

	// Pairing defaults
	if cfg.Pairing.MaxAttempts != 50 {
		t.Errorf("Pairing.MaxAttempts = %d, want 50", cfg.Pairing.MaxAttempts)
	}
	if cfg.Pairing.CatalogCacheTTL != 5*time.Minute {
		t.Errorf("Pairing.CatalogCacheTTL = %v, want 5m", cfg.Pairing.CatalogCacheTTL)
	}

	// Recommendation defaults
	if cfg.Recommend.VoteThreshold != 10 {
		t.Errorf("Recommend.VoteThreshold = %d, want 10", cfg.Recommend.VoteThreshold)
	}

	// Maintenance defaults (disabled, opt-in)
	if cfg.Maintenance.Enabled {
		t.Error("Maintenance.Enabled should be false by default")
	}
	if cfg.Maintenance.Interval != 24*time.Hour {
		t.Errorf("Maintenance.Interval = %v, want 24h", cfg.Maintenance.Interval)
	}
	if !cfg.Maintenance.ShortsSweep {
		t.Error("Maintenance.ShortsSweep should be true by default")
	}
	if cfg.Maintenance.ShortsPattern != `\bShorts?\b` {
		t.Errorf("Maintenance.ShortsPattern = %q, want \\bShorts?\\b", cfg.Maintenance.ShortsPattern)
	}
	if !cfg.Maintenance.DedupeRecommendations {
		t.Error("Maintenance.DedupeRecommendations should be true by default")
	}

	// WebSocket defaults
	if !cfg.WebSocket.Enabled {
		t.Error("WebSocket.Enabled should be true by default")
	}
	if cfg.WebSocket.PingInterval != 30*time.Second {
		t.Errorf("WebSocket.PingInterval = %v, want 30s", cfg.WebSocket.PingInterval)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

// TestEnvTransformFunc verifies environment variable name transformations
func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Server
		{"HTTP_PORT", "server.port"},
		{"HTTP_HOST", "server.host"},
		{"HTTP_TIMEOUT", "server.timeout"},
		{"ENVIRONMENT", "server.environment"},

		// Database
		{"BADGER_PATH", "database.path"},
		{"BADGER_IN_MEMORY", "database.in_memory"},
		{"BADGER_GC_INTERVAL", "database.gc_interval"},
		{"BADGER_GC_DISCARD_RATIO", "database.gc_discard_ratio"},
		{"CATALOG_SEED_PATH", "database.seed_path"},

		// API
		{"API_DEFAULT_PAGE_SIZE", "api.default_page_size"},
		{"API_MAX_PAGE_SIZE", "api.max_page_size"},

		// Security
		{"JWT_SECRET", "security.jwt_secret"},
		{"ADMIN_TOKEN", "security.admin_token"},
		{"RATE_LIMIT_REQUESTS", "security.rate_limit_reqs"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"CORS_ORIGINS", "security.cors_origins"},

		// Pairing
		{"PAIR_MAX_ATTEMPTS", "pairing.max_attempts"},
		{"CATALOG_CACHE_TTL", "pairing.catalog_cache_ttl"},

		// Recommendations
		{"RECOMMEND_VOTE_THRESHOLD", "recommend.vote_threshold"},

		// Maintenance
		{"MAINTENANCE_ENABLED", "maintenance.enabled"},
		{"MAINTENANCE_OPS_PER_SECOND", "maintenance.ops_per_second"},
		{"MAINTENANCE_SHORTS_PATTERN", "maintenance.shorts_pattern"},
		{"MAINTENANCE_DEDUPE", "maintenance.dedupe_recommendations"},

		// WebSocket
		{"WEBSOCKET_ENABLED", "websocket.enabled"},
		{"WEBSOCKET_PING_INTERVAL", "websocket.ping_interval"},

		// Logging
		{"LOG_LEVEL", "logging.level"},
		{"LOG_FORMAT", "logging.format"},

		// Unknown (should return empty)
		{"RANDOM_VAR", ""},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := envTransformFunc(tt.input)
			if result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	defer func() {
		if err := os.Chdir(origDir); err != nil {
			t.Errorf("Failed to restore working directory: %v", err)
		}
	}()

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	t.Run("no config file exists", func(t *testing.T) {
		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		configPath := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("test: true"), 0644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(configPath)

		os.Unsetenv(ConfigPathEnvVar)
		result := findConfigFile()
		if result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom_config.yaml")
		if err := os.WriteFile(customPath, []byte("test: true"), 0644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		defer os.Remove(customPath)

		os.Setenv(ConfigPathEnvVar, customPath)
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		if result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH env var with non-existent file", func(t *testing.T) {
		os.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		defer os.Unsetenv(ConfigPathEnvVar)

		result := findConfigFile()
		// Should fall back to default paths (which don't exist in temp dir)
		if result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	os.Clearenv()

	// Set some custom values to override defaults
	os.Setenv("HTTP_PORT", "9000")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("RECOMMEND_VOTE_THRESHOLD", "5")
	os.Setenv("PAIR_MAX_ATTEMPTS", "25")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// Verify custom overrides
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Recommend.VoteThreshold != 5 {
		t.Errorf("Recommend.VoteThreshold = %d, want 5", cfg.Recommend.VoteThreshold)
	}
	if cfg.Pairing.MaxAttempts != 25 {
		t.Errorf("Pairing.MaxAttempts = %d, want 25", cfg.Pairing.MaxAttempts)
	}

	// Verify defaults are still applied for unset values
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
	if cfg.Database.Path != "/data/cineduel" {
		t.Errorf("Database.Path = %q, want /data/cineduel (default)", cfg.Database.Path)
	}
}

// TestLoadWithKoanfConfigFile tests loading configuration from a YAML file
func TestLoadWithKoanfConfigFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
server:
  port: 8888
  host: "127.0.0.1"

recommend:
  vote_threshold: 20

logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	os.Clearenv()
	os.Setenv(ConfigPathEnvVar, configPath)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// Verify values from config file
	if cfg.Server.Port != 8888 {
		t.Errorf("Server.Port = %d, want 8888", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want 127.0.0.1", cfg.Server.Host)
	}
	if cfg.Recommend.VoteThreshold != 20 {
		t.Errorf("Recommend.VoteThreshold = %d, want 20", cfg.Recommend.VoteThreshold)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}

	// Verify defaults are still applied for unset values
	if cfg.Database.Path != "/data/cineduel" {
		t.Errorf("Database.Path = %q, want /data/cineduel (default)", cfg.Database.Path)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	configContent := `
server:
  port: 8888

logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	os.Clearenv()
	os.Setenv(ConfigPathEnvVar, configPath)
	os.Setenv("HTTP_PORT", "7777")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// Env var wins over config file
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want 7777 (env override)", cfg.Server.Port)
	}
	// File value survives where no env var is set
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn (from file)", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfCORSOrigins tests comma-separated slice parsing from env
func TestLoadWithKoanfCORSOrigins(t *testing.T) {
	os.Clearenv()
	os.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if len(cfg.Security.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.Security.CORSOrigins)
	}
	if cfg.Security.CORSOrigins[0] != "https://a.example.com" {
		t.Errorf("CORSOrigins[0] = %q, want https://a.example.com", cfg.Security.CORSOrigins[0])
	}
	if cfg.Security.CORSOrigins[1] != "https://b.example.com" {
		t.Errorf("CORSOrigins[1] = %q, want https://b.example.com", cfg.Security.CORSOrigins[1])
	}
}
