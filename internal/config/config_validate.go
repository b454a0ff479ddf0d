// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validatePairing(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateMaintenance(); err != nil {
		return err
	}

	if err := c.validateWebSocket(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("HTTP_TIMEOUT must be at least 1s")
	}
	return nil
}

// validateDatabase validates Badger storage configuration
func (c *Config) validateDatabase() error {
	if !c.Database.InMemory && c.Database.Path == "" {
		return fmt.Errorf("BADGER_PATH is required unless BADGER_IN_MEMORY=true")
	}
	if c.Database.GCInterval < time.Minute {
		return fmt.Errorf("BADGER_GC_INTERVAL must be at least 1m")
	}
	if c.Database.GCDiscardRatio <= 0 || c.Database.GCDiscardRatio >= 1 {
		return fmt.Errorf("BADGER_GC_DISCARD_RATIO must be between 0 and 1 exclusive")
	}
	return nil
}

// validateAPI validates pagination configuration
func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE")
	}
	if c.API.MaxPageSize > 1000 {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be at most 1000")
	}
	return nil
}

// Secret length constants
const (
	minJWTSecretLength  = 32
	minAdminTokenLength = 16
)

// validateSecurity validates identity, admin, rate limit, and CORS configuration
func (c *Config) validateSecurity() error {
	if err := c.validateJWTSecret(); err != nil {
		return err
	}

	if err := c.validateAdminToken(); err != nil {
		return err
	}

	if err := c.validateCORS(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

// validateJWTSecret validates the bearer token verification secret.
// An empty secret is allowed: token verification is then disabled and
// every bearer token is rejected as invalid.
func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return nil
	}
	if len(c.Security.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET appears to contain a placeholder value - set a real secret")
	}
	return nil
}

// validateAdminToken validates the admin API token.
// An empty token is allowed: the admin surface is then disabled.
func (c *Config) validateAdminToken() error {
	if c.Security.AdminToken == "" {
		return nil
	}
	if len(c.Security.AdminToken) < minAdminTokenLength {
		return fmt.Errorf("ADMIN_TOKEN must be at least %d characters", minAdminTokenLength)
	}
	if containsPlaceholder(c.Security.AdminToken) {
		return fmt.Errorf("ADMIN_TOKEN appears to contain a placeholder value - set a real token")
	}
	return nil
}

// validateCORS validates CORS configuration for security best practices.
// In production mode with bearer token verification enabled, wildcard CORS
// is rejected: any origin could otherwise replay stolen credentials against
// protected resources.
func (c *Config) validateCORS() error {
	if c.Security.JWTSecret != "" && c.hasWildcardCORS() && c.IsProduction() {
		return fmt.Errorf("CORS_ORIGINS=* (wildcard) is not allowed in production with JWT_SECRET set. " +
			"Either set specific origins: CORS_ORIGINS=https://yourdomain.com " +
			"or use ENVIRONMENT=development for testing purposes")
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if CORS configuration has security concerns
// that should be logged at startup
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.Security.JWTSecret != "" && c.hasWildcardCORS()
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateRateLimits validates rate limiting configuration bounds.
// Ensures rate limit values are within sensible ranges to prevent
// misconfiguration that could lead to DoS or ineffective protection.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validatePairing validates pair selection configuration
func (c *Config) validatePairing() error {
	if c.Pairing.MaxAttempts < 1 || c.Pairing.MaxAttempts > 1000 {
		return fmt.Errorf("PAIR_MAX_ATTEMPTS must be between 1 and 1000")
	}
	if c.Pairing.CatalogCacheTTL < 0 {
		return fmt.Errorf("CATALOG_CACHE_TTL must not be negative")
	}
	return nil
}

// validateRecommend validates recommendation gate configuration
func (c *Config) validateRecommend() error {
	if c.Recommend.VoteThreshold < 1 {
		return fmt.Errorf("RECOMMEND_VOTE_THRESHOLD must be at least 1")
	}
	return nil
}

// validateMaintenance validates background maintenance configuration
func (c *Config) validateMaintenance() error {
	if !c.Maintenance.Enabled {
		return nil
	}

	if c.Maintenance.Interval < time.Minute {
		return fmt.Errorf("MAINTENANCE_INTERVAL must be at least 1m")
	}
	if c.Maintenance.OpsPerSecond <= 0 {
		return fmt.Errorf("MAINTENANCE_OPS_PER_SECOND must be positive")
	}
	if c.Maintenance.ShortsSweep {
		if c.Maintenance.ShortsPattern == "" {
			return fmt.Errorf("MAINTENANCE_SHORTS_PATTERN is required when MAINTENANCE_SHORTS_SWEEP=true")
		}
		if _, err := regexp.Compile(c.Maintenance.ShortsPattern); err != nil {
			return fmt.Errorf("MAINTENANCE_SHORTS_PATTERN is not a valid regexp: %w", err)
		}
	}
	return nil
}

// validateWebSocket validates live event feed configuration
func (c *Config) validateWebSocket() error {
	if !c.WebSocket.Enabled {
		return nil
	}

	if c.WebSocket.PingInterval < time.Second {
		return fmt.Errorf("WEBSOCKET_PING_INTERVAL must be at least 1s")
	}
	if c.WebSocket.WriteTimeout < time.Second {
		return fmt.Errorf("WEBSOCKET_WRITE_TIMEOUT must be at least 1s")
	}
	if c.WebSocket.MaxMessageSize < 64 {
		return fmt.Errorf("WEBSOCKET_MAX_MESSAGE_SIZE must be at least 64 bytes")
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value. This prevents accidental deployment
// with insecure default credentials.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"YOUR_TOKEN",
	"PLACEHOLDER",
	"EXAMPLE",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
