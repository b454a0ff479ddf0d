// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/tomtom215/cineduel/internal/models"
)

// requireAdmin gates the admin endpoints behind the X-Admin-Key header.
// Without a configured admin key the endpoints are disabled outright; with
// one, the presented key is compared in constant time.
func (h *Handler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.config == nil || !h.config.AdminEnabled() {
			respondError(w, r, http.StatusForbidden, CodeAdminDisabled,
				"Admin API is not configured", nil)
			return
		}

		presented := r.Header.Get("X-Admin-Key")
		expected := h.config.Security.AdminToken
		if subtle.ConstantTimeCompare([]byte(presented), []byte(expected)) != 1 {
			respondError(w, r, http.StatusForbidden, CodeForbidden,
				"Invalid admin key", nil)
			return
		}

		next(w, r)
	}
}

// AdminPushRecommendations handles POST /api/v1/admin/recommendations: the
// external scoring pipeline replacing one identity's stored recommendation
// set. Exactly one of user_id/session_id selects the target identity.
func (h *Handler) AdminPushRecommendations(w http.ResponseWriter, r *http.Request) {
	var req models.PushRecommendationsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondJSON(w, r, http.StatusBadRequest, &models.APIResponse{
			Status: "error",
			Error:  apiErr,
		})
		return
	}
	if (req.UserID == "") == (req.SessionID == "") {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"Exactly one of user_id or session_id is required", nil)
		return
	}

	identity := models.Identity{UserID: req.UserID, SessionID: req.SessionID}
	if err := h.recommend.Push(r.Context(), identity, req.Entries); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to replace recommendations", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, map[string]interface{}{
		"replaced": len(req.Entries),
	})
}

// AdminShortsSweep handles POST /api/v1/admin/maintenance/shorts-sweep:
// runs the Shorts-genre catalog sweep immediately instead of waiting for
// the next scheduled pass.
func (h *Handler) AdminShortsSweep(w http.ResponseWriter, r *http.Request) {
	if h.sweeper == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable,
			"Maintenance is disabled", nil)
		return
	}

	removed, err := h.sweeper.SweepShorts(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Shorts sweep failed", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &models.SweepResult{Removed: removed})
}

// AdminDedupeRecommendations handles
// POST /api/v1/admin/maintenance/dedupe-recommendations: compacts every
// identity's stored recommendation set to one entry per content id.
func (h *Handler) AdminDedupeRecommendations(w http.ResponseWriter, r *http.Request) {
	if h.sweeper == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeServiceUnavailable,
			"Maintenance is disabled", nil)
		return
	}

	identities, removed, err := h.sweeper.DedupeRecommendations(r.Context())
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Recommendation dedupe failed", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &models.DedupeResult{
		Identities: identities,
		Removed:    removed,
	})
}
