// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package logging provides centralized zerolog-based structured logging for CineDuel.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development. All other packages log through this layer
// rather than holding their own logger instances.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Global logger configuration via environment variables
//   - Context-aware logging with request ID propagation
//   - slog adapter for Suture v4 integration
//   - Sanitization helpers for tokens and session identifiers
//
// # Quick Start
//
//	import "github.com/tomtom215/cineduel/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Str("content_id", id).Msg("Vote recorded")
//	logging.Error().Err(err).Int("code", 500).Msg("Request failed")
//
//	// Context-aware logging
//	logging.Ctx(ctx).Info().Msg("Processing request")
//
// # Configuration
//
// Environment Variables:
//
//	LOG_LEVEL   - Minimum log level: trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - Output format: json, console (default: json)
//	LOG_CALLER  - Include caller file:line: true, false (default: false)
//
// Programmatic Configuration:
//
//	logging.Init(logging.Config{
//	    Level:     "debug",    // trace, debug, info, warn, error, fatal
//	    Format:    "console",  // json or console
//	    Caller:    true,       // Include caller info
//	    Timestamp: true,       // Include timestamps
//	    Output:    os.Stderr,  // Output writer
//	})
//
// # Log Levels
//
// Supported log levels (from most to least verbose):
//
//	trace  - Very detailed diagnostic information
//	debug  - Detailed diagnostic information
//	info   - General operational information (default)
//	warn   - Warning conditions that should be addressed
//	error  - Error conditions requiring attention
//	fatal  - Fatal errors that terminate the program
//	panic  - Panic conditions that crash the program
//
// # Structured Logging Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	// Good - structured, searchable, efficient
//	logging.Info().
//	    Str("winner_id", winnerID).
//	    Str("loser_id", loserID).
//	    Int("total_votes", total).
//	    Msg("Vote recorded")
//
//	// Avoid - unstructured, harder to parse
//	logging.Info().Msgf("vote %s over %s (total %d)", winnerID, loserID, total)
//
// # Component Loggers
//
// Create component-specific loggers with default fields:
//
//	// Create a logger for the pairing component
//	pairLogger := logging.With().Str("component", "pairing").Logger()
//	pairLogger.Info().Msg("Candidate pool refreshed")
//	pairLogger.Error().Err(err).Msg("Pair selection failed")
//
// # Context-Aware Logging
//
// Propagate request context through logging:
//
//	// Request and correlation IDs are attached automatically
//	logger := logging.Ctx(ctx)
//	logger.Info().Msg("Processing request")
//
// # slog Adapter
//
// The package provides an slog adapter for libraries that require slog.Logger:
//
//	slogLogger := logging.NewSlogLogger()
//	// Use slogLogger with Suture or other slog-compatible libraries
//
// # Sensitive Data
//
// Never log raw bearer tokens or full session identifiers. Use the
// sanitization helpers when identity material must appear in logs:
//
//	logging.Warn().
//	    Str("event", "token.invalid").
//	    Str("token", logging.SanitizeToken(raw)).
//	    Msg("Rejected bearer token")
//
// # Output Formats
//
// JSON Format (Production):
//
//	{"level":"info","time":"2026-01-03T10:30:00Z","message":"Server starting","port":8317}
//
// Console Format (Development):
//
//	10:30:00 INF Server starting port=8317
//
// # Thread Safety
//
// All exported functions are safe for concurrent use. The global logger
// is protected by sync.RWMutex for configuration changes.
//
// # Testing
//
// Create test loggers that capture output:
//
//	var buf bytes.Buffer
//	logger := logging.NewTestLogger(&buf)
//	logger.Info().Msg("test message")
//	output := buf.String()
//
// # See Also
//
//   - github.com/rs/zerolog: Underlying logging library
//   - internal/middleware: Request ID middleware for correlation
//   - internal/supervisor: Service tree logging via the slog adapter
package logging
