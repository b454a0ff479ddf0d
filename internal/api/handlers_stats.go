// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/cineduel/internal/recommend"
)

// Stats handles GET /api/v1/stats: the identity's vote counts and its
// distance from the recommendation threshold. An identity-less call gets the
// cold-start zeros rather than an error.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.identity(r, "")
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}

	stats, err := h.recommend.Stats(r.Context(), identity)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to load stats", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, stats)
}

// Recommendations handles GET /api/v1/recommendations: one page of the
// identity's stored recommendation set, deduplicated and exclusion-filtered.
// Identities below the vote threshold get 409 so clients can show the
// countdown instead of an empty list.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.identity(r, "")
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}
	offset, limit := h.pageParams(r)

	page, err := h.recommend.Recommendations(r.Context(), identity, offset, limit)
	if err != nil {
		if errors.Is(err, recommend.ErrNotEnoughVotes) {
			respondError(w, r, http.StatusConflict, CodeNotEnoughVotes,
				"Not enough votes for recommendations", nil)
			return
		}
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to load recommendations", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, page)
}
