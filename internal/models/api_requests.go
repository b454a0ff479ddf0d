// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

// VoteRequest is the body of POST /api/v1/vote. SessionID identifies guest
// callers; authenticated callers send a Bearer token instead and may omit it.
// Winner and loser are internal content ids as handed out by the pairing
// endpoints.
type VoteRequest struct {
	WinnerID    string `json:"winner_id" validate:"required"`
	LoserID     string `json:"loser_id" validate:"required"`
	ContentType string `json:"content_type" validate:"required,oneof=movie series"`
	SessionID   string `json:"session_id,omitempty"`
}

// PassRequest is the body of POST /api/v1/pass. ContentID accepts either
// identifier scheme, matching what interaction write paths have historically
// done.
type PassRequest struct {
	ContentID string `json:"content_id" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// InteractionRequest is the body of POST /api/v1/content/interact.
// Priority is only meaningful with want_to_watch.
type InteractionRequest struct {
	ContentID       string `json:"content_id" validate:"required"`
	InteractionType string `json:"interaction_type" validate:"required,oneof=watched not_interested passed want_to_watch"`
	SessionID       string `json:"session_id,omitempty"`
	Priority        int    `json:"priority,omitempty" validate:"omitempty,min=1,max=5"`
}

// RecommendationEntry is one scored content id inside a recommendation push.
type RecommendationEntry struct {
	ContentID string  `json:"content_id" validate:"required"`
	Score     float64 `json:"score"`
}

// PushRecommendationsRequest is the body of POST /api/v1/admin/recommendations:
// the external pipeline replacing one identity's stored recommendation set.
// Exactly one of UserID/SessionID must be set.
type PushRecommendationsRequest struct {
	UserID    string                `json:"user_id,omitempty"`
	SessionID string                `json:"session_id,omitempty"`
	Entries   []RecommendationEntry `json:"entries" validate:"required,min=1,dive"`
}
