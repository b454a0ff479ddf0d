// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cineduel/internal/models"
	"github.com/tomtom215/cineduel/internal/pairing"
)

// Pair handles GET /api/v1/pair: a fresh head-to-head matchup filtered
// through the identity's exclusion state. The optional type parameter pins
// the content type; without it the selector picks one at random.
func (h *Handler) Pair(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.identity(r, "")
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}

	contentType := models.ContentType(r.URL.Query().Get("type"))
	if contentType != "" && !contentType.Valid() {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"type must be 'movie' or 'series'", nil)
		return
	}

	pair, err := h.selector.FreshPair(r.Context(), identity, contentType)
	if err != nil {
		h.respondPairError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &models.PairResponse{
		Item1:       &pair.Item1,
		Item2:       &pair.Item2,
		ContentType: pair.ContentType,
	})
}

// PairReplacement handles GET /api/v1/pair/replacement/{id}: keeps the
// referenced item as item1 and draws a new opponent of the same type. The id
// may be either identifier of the kept item.
func (h *Handler) PairReplacement(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.identity(r, "")
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}

	keepRef := chi.URLParam(r, "id")
	if keepRef == "" {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"Content id is required", nil)
		return
	}

	pair, err := h.selector.Replacement(r.Context(), identity, keepRef)
	if err != nil {
		h.respondPairError(w, r, err)
		return
	}

	respondSuccess(w, r, http.StatusOK, &models.PairResponse{
		Item1:       &pair.Item1,
		Item2:       &pair.Item2,
		ContentType: pair.ContentType,
	})
}

// respondPairError maps selector errors to API responses. Anything that is
// not a known sentinel is a store failure: the request fails rather than
// falling back to an unfiltered pair.
func (h *Handler) respondPairError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, pairing.ErrNotEnoughContent):
		respondError(w, r, http.StatusNotFound, CodeNotEnoughContent,
			"Not enough eligible content to form a pair", nil)
	case errors.Is(err, pairing.ErrUnknownContent):
		respondError(w, r, http.StatusNotFound, CodeNotFound,
			"Content not found", nil)
	default:
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to select a pair", err)
	}
}
