// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cineduel/internal/auth"
	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/database"
	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/maintenance"
	"github.com/tomtom215/cineduel/internal/pairing"
	"github.com/tomtom215/cineduel/internal/recommend"
	ws "github.com/tomtom215/cineduel/internal/websocket"
)

// Version is the reported service version, set at build time via
// -ldflags "-X github.com/tomtom215/cineduel/internal/api.Version=...".
var Version = "dev"

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by concern:
//   - handlers.go: Handler struct, constructor (this file)
//   - handlers_helpers.go: response and parsing helpers
//   - identity.go: Bearer/session identity extraction
//   - handlers_pair.go: pair serving endpoints
//   - handlers_vote.go: vote / pass / interact recording
//   - handlers_content.go: content lookup, user status, watchlist
//   - handlers_stats.go: stats and recommendation serving
//   - handlers_admin.go: admin push and maintenance triggers
//   - handlers_health.go: liveness and readiness
//   - handlers_websocket.go: live event feed upgrade
type Handler struct {
	store     *database.Store
	selector  *pairing.Selector
	recommend *recommend.Service
	sweeper   *maintenance.Sweeper // nil disables the maintenance admin endpoints
	tokens    *auth.Manager
	wsHub     *ws.Hub // nil disables /api/v1/live
	config    *config.Config
	startTime time.Time
}

// NewHandler creates the API handler with all serving dependencies.
//
// sweeper and wsHub may be nil: the corresponding endpoints then answer
// 503 rather than panicking, so partial deployments (no maintenance, no
// live feed) stay serviceable.
func NewHandler(store *database.Store, selector *pairing.Selector, recSvc *recommend.Service, sweeper *maintenance.Sweeper, tokens *auth.Manager, wsHub *ws.Hub, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		selector:  selector,
		recommend: recSvc,
		sweeper:   sweeper,
		tokens:    tokens,
		wsHub:     wsHub,
		config:    cfg,
		startTime: time.Now(),
	}
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout against slow-client attacks.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins against the
// configured CORS origins.
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Legitimate browser WebSockets always send Origin; an empty Origin
	// bypasses CORS entirely, so reject it.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// Fail open when no config is wired (tests, development harnesses).
	if h.config == nil {
		return true
	}

	for _, allowed := range h.config.Security.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
