// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/cineduel/internal/models"
)

// Health handles liveness checks: 200 whenever the process is alive,
// regardless of store state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, http.StatusOK, &models.HealthStatus{
		Status:  "healthy",
		Version: Version,
	})
}

// Ready handles readiness checks: 200 only when the store can serve reads,
// 503 otherwise so load balancers stop routing traffic here.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	storeReady := h.store != nil && h.store.Healthy()

	statusCode := http.StatusOK
	status := "ready"
	if !storeReady {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, r, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"store_connected": storeReady,
			"ready_to_serve":  storeReady,
			"uptime":          time.Since(h.startTime).Seconds(),
		},
	})
}
