// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cineduel/internal/models"
)

// ContentByID handles GET /api/v1/content/{id}: looks up a catalog item by
// either identifier.
func (h *Handler) ContentByID(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "id")

	content, err := h.store.ContentByAnyID(r.Context(), ref)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to look up content", err)
		return
	}
	if content == nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound,
			"Content not found", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, content)
}

// UserContentStatus handles GET /api/v1/content/{id}/user-status: reports
// which interactions the identity has recorded for one item. Flags match
// interactions stored under either of the item's identifiers, the same
// closure the exclusion resolver applies.
func (h *Handler) UserContentStatus(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.identity(r, "")
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}

	ref := chi.URLParam(r, "id")
	content, err := h.store.ContentByAnyID(r.Context(), ref)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to look up content", err)
		return
	}
	if content == nil {
		respondError(w, r, http.StatusNotFound, CodeNotFound,
			"Content not found", nil)
		return
	}

	interactions, err := h.store.ListInteractions(r.Context(), identity)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to load interactions", err)
		return
	}

	refs := make(map[string]struct{}, 2)
	for _, id := range content.Identifiers() {
		refs[id] = struct{}{}
	}

	status := &models.UserContentStatus{ContentID: content.ID}
	for _, interaction := range interactions {
		if _, ok := refs[interaction.ContentRef]; !ok {
			continue
		}
		switch interaction.Kind {
		case models.InteractionWatched:
			status.Watched = true
		case models.InteractionNotInterested:
			status.NotInterested = true
		case models.InteractionPassed:
			status.Passed = true
		case models.InteractionWantToWatch:
			status.WantToWatch = true
		}
	}
	status.Excluded = status.Watched || status.NotInterested || status.Passed

	respondSuccess(w, r, http.StatusOK, status)
}

// Watchlist handles GET /api/v1/watchlist: the identity's want_to_watch
// interactions joined with the catalog, most recent first. Items that have
// left the catalog are dropped; marking the same item twice keeps only the
// latest entry, even when the two writes used different identifiers.
func (h *Handler) Watchlist(w http.ResponseWriter, r *http.Request) {
	identity, authErr := h.identity(r, "")
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}
	offset, limit := h.pageParams(r)

	interactions, err := h.store.ListInteractions(r.Context(), identity)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to load interactions", err)
		return
	}

	// Keyed by internal id so duplicate writes under different identifiers
	// collapse to one row. ListInteractions is chronological, so later
	// entries overwrite earlier ones.
	byContent := make(map[string]models.WatchlistEntry)
	for i := range interactions {
		interaction := &interactions[i]
		if interaction.Kind != models.InteractionWantToWatch {
			continue
		}
		content, err := h.store.ContentByAnyID(r.Context(), interaction.ContentRef)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, CodeStoreError,
				"Failed to resolve watchlist content", err)
			return
		}
		if content == nil {
			continue
		}
		byContent[content.ID] = models.WatchlistEntry{
			Content:  content,
			AddedAt:  interaction.CreatedAt,
			Priority: interaction.Priority,
		}
	}

	entries := make([]models.WatchlistEntry, 0, len(byContent))
	for _, entry := range byContent {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AddedAt.Equal(entries[j].AddedAt) {
			return entries[i].Content.ID < entries[j].Content.ID
		}
		return entries[i].AddedAt.After(entries[j].AddedAt)
	})

	page := &models.WatchlistPage{
		Items:      []models.WatchlistEntry{},
		TotalCount: len(entries),
		Offset:     offset,
		Limit:      limit,
	}
	if offset < len(entries) {
		end := len(entries)
		if limit > 0 && offset+limit < end {
			end = offset + limit
		}
		page.Items = entries[offset:end]
	}

	respondSuccess(w, r, http.StatusOK, page)
}
