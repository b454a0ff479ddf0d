// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"

	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// Vote handles POST /api/v1/vote: records one head-to-head result for the
// identity and reports its updated vote total. Winner and loser are internal
// content ids as handed out by the pairing endpoints.
func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
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
	if req.WinnerID == req.LoserID {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"winner_id and loser_id must differ", nil)
		return
	}

	identity, authErr := h.identity(r, req.SessionID)
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}
	if identity.IsZero() {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"A session_id or bearer token is required", nil)
		return
	}

	vote := &models.Vote{
		UserID:      identity.UserID,
		SessionID:   identity.SessionID,
		WinnerID:    req.WinnerID,
		LoserID:     req.LoserID,
		ContentType: models.ContentType(req.ContentType),
	}

	if err := h.store.AddVote(r.Context(), vote); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to record vote", err)
		return
	}
	metrics.RecordVote(string(vote.ContentType))

	total, err := h.store.CountVotes(r.Context(), identity)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to count votes", err)
		return
	}

	if h.wsHub != nil {
		h.wsHub.BroadcastVoteRecorded(vote, total)
	}

	respondSuccess(w, r, http.StatusOK, &models.VoteResult{
		VoteRecorded:             true,
		TotalVotes:               total,
		RecommendationsAvailable: total >= h.recommend.Threshold(),
	})
}

// Pass handles POST /api/v1/pass: records a passed interaction, which
// excludes the content from the identity's future pairs under both of its
// identifiers.
func (h *Handler) Pass(w http.ResponseWriter, r *http.Request) {
	var req models.PassRequest
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

	identity, authErr := h.identity(r, req.SessionID)
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}
	if identity.IsZero() {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"A session_id or bearer token is required", nil)
		return
	}

	interaction := &models.Interaction{
		UserID:     identity.UserID,
		SessionID:  identity.SessionID,
		ContentRef: req.ContentID,
		Kind:       models.InteractionPassed,
	}

	if err := h.store.AddInteraction(r.Context(), interaction); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to record pass", err)
		return
	}
	metrics.RecordInteraction(string(interaction.Kind))

	if h.wsHub != nil {
		h.wsHub.BroadcastInteractionRecorded(interaction)
	}

	respondSuccess(w, r, http.StatusOK, &models.PassResult{
		ContentPassed: true,
		ContentID:     req.ContentID,
	})
}

// Interact handles POST /api/v1/content/interact: records any of the
// accepted interaction kinds. Priority only applies to want_to_watch.
func (h *Handler) Interact(w http.ResponseWriter, r *http.Request) {
	var req models.InteractionRequest
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

	identity, authErr := h.identity(r, req.SessionID)
	if authErr != nil {
		respondError(w, r, http.StatusUnauthorized, authErr.Code, authErr.Message, nil)
		return
	}
	if identity.IsZero() {
		respondError(w, r, http.StatusBadRequest, CodeValidationError,
			"A session_id or bearer token is required", nil)
		return
	}

	kind := models.InteractionKind(req.InteractionType)
	interaction := &models.Interaction{
		UserID:     identity.UserID,
		SessionID:  identity.SessionID,
		ContentRef: req.ContentID,
		Kind:       kind,
	}
	if kind == models.InteractionWantToWatch {
		interaction.Priority = req.Priority
	}

	if err := h.store.AddInteraction(r.Context(), interaction); err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeStoreError,
			"Failed to record interaction", err)
		return
	}
	metrics.RecordInteraction(string(interaction.Kind))

	if h.wsHub != nil {
		h.wsHub.BroadcastInteractionRecorded(interaction)
	}

	respondSuccess(w, r, http.StatusOK, &models.InteractionResult{
		Success:       true,
		InteractionID: interaction.ID,
	})
}
