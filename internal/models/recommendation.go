// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

import "time"

// Recommendation is a scored content entry for one identity, produced by the
// external recommendation pipeline and pushed through the admin API. CineDuel
// never computes scores itself; it stores, deduplicates, exclusion-filters,
// and serves them.
//
// Exactly one of UserID/SessionID is set. ContentID is an internal content
// id. A push replaces the identity's whole set.
type Recommendation struct {
	UserID      string    `json:"user_id,omitempty"`
	SessionID   string    `json:"session_id,omitempty"`
	ContentID   string    `json:"content_id"`
	Score       float64   `json:"score"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RecommendedItem joins a recommendation score with the resolved catalog
// entry for serving.
type RecommendedItem struct {
	Content *Content `json:"content"`
	Score   float64  `json:"score"`
}
