// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package config provides layered configuration management for CineDuel.
//
// Configuration is loaded with Koanf v2 from three sources in order of
// increasing precedence:
//
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// # Quick Start
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
//
// # Config File Locations
//
// The loader searches for a config file in order:
//
//	./config.yaml
//	./config.yml
//	/etc/cineduel/config.yaml
//	/etc/cineduel/config.yml
//
// The CONFIG_PATH environment variable overrides the search entirely.
//
// # Environment Variables
//
// Every setting maps to a flat environment variable, for example:
//
//	HTTP_PORT=8317
//	BADGER_PATH=/data/cineduel
//	JWT_SECRET=<32+ character secret>
//	ADMIN_TOKEN=<16+ character token>
//	RECOMMEND_VOTE_THRESHOLD=10
//	LOG_LEVEL=debug
//
// See the individual config struct documentation for the full list.
//
// # Validation
//
// Load() validates the merged configuration and refuses to start on
// malformed values (out-of-range port, short JWT secret, placeholder
// credentials, wildcard CORS with authentication in production).
//
// # Thread Safety
//
// Config is immutable after Load() and safe for concurrent read access.
package config
