// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"

	"github.com/tomtom215/cineduel/internal/logging"
	ws "github.com/tomtom215/cineduel/internal/websocket"
)

// Live handles GET /api/v1/live: upgrades the connection and streams
// vote_recorded / interaction_recorded events until the client disconnects.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable,
			"Live feed unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own HTTP error response.
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}
