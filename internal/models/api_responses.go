// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"vote_recorded": true, "total_votes": 7},
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z"}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "winner_id is required"
//	  },
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability. RequestID echoes the
// X-Request-ID header so log lines and responses can be correlated.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError is the structured error payload.
//
// Stable error codes:
//   - VALIDATION_ERROR: invalid request input
//   - AUTHENTICATION_ERROR: malformed or invalid Bearer token
//   - ADMIN_DISABLED: admin API key not configured
//   - FORBIDDEN: wrong admin API key
//   - NOT_FOUND: resource or route does not exist
//   - NOT_ENOUGH_CONTENT: too few eligible catalog items to form a pair
//   - NOT_ENOUGH_VOTES: recommendation threshold not reached
//   - STORE_ERROR: persistence failure (retryable)
//   - RATE_LIMIT_EXCEEDED: too many requests
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// PairResponse is the payload of both pairing endpoints: a fresh pair from
// GET /api/v1/pair, or a kept-item1 / replacement-item2 pair from
// GET /api/v1/pair/replacement/{id}. Both items share ContentType and both
// have passed the identity's exclusion filter.
type PairResponse struct {
	Item1       *Content    `json:"item1"`
	Item2       *Content    `json:"item2"`
	ContentType ContentType `json:"content_type"`
}

// VoteResult confirms a recorded vote.
type VoteResult struct {
	VoteRecorded             bool `json:"vote_recorded"`
	TotalVotes               int  `json:"total_votes"`
	RecommendationsAvailable bool `json:"recommendations_available"`
}

// PassResult confirms a recorded pass.
type PassResult struct {
	ContentPassed bool   `json:"content_passed"`
	ContentID     string `json:"content_id"`
}

// InteractionResult confirms a recorded interaction.
type InteractionResult struct {
	Success       bool   `json:"success"`
	InteractionID string `json:"interaction_id"`
}

// UserStats summarizes an identity's voting history and its distance from
// the recommendation threshold.
//
// VotesUntilRecommendations is max(0, threshold - TotalVotes);
// RecommendationsAvailable is TotalVotes >= threshold. An identity-less call
// returns zeros with UserAuthenticated false - never an error, because
// cold-start clients poll stats before creating any history.
type UserStats struct {
	TotalVotes                int  `json:"total_votes"`
	MovieVotes                int  `json:"movie_votes"`
	SeriesVotes               int  `json:"series_votes"`
	VotesUntilRecommendations int  `json:"votes_until_recommendations"`
	RecommendationsAvailable  bool `json:"recommendations_available"`
	UserAuthenticated         bool `json:"user_authenticated"`
}

// UserContentStatus reports which interactions an identity has recorded for
// one content item. The flags cover interactions recorded under EITHER of the
// item's identifiers. Excluded folds the exclusion kinds into one bit for
// clients that only care whether the item can still be served.
type UserContentStatus struct {
	ContentID     string `json:"content_id"`
	Watched       bool   `json:"watched"`
	NotInterested bool   `json:"not_interested"`
	Passed        bool   `json:"passed"`
	WantToWatch   bool   `json:"want_to_watch"`
	Excluded      bool   `json:"excluded"`
}

// RecommendationsPage is one page of served recommendations, highest score
// first, deduplicated and exclusion-filtered. TotalCount counts the servable
// set after filtering, not the stored set.
type RecommendationsPage struct {
	Items      []RecommendedItem `json:"items"`
	TotalCount int               `json:"total_count"`
	Offset     int               `json:"offset"`
	Limit      int               `json:"limit"`
}

// WatchlistEntry is one watchlist row: the resolved content plus the
// want_to_watch interaction's metadata.
type WatchlistEntry struct {
	Content  *Content  `json:"content"`
	AddedAt  time.Time `json:"added_at"`
	Priority int       `json:"priority,omitempty"`
}

// WatchlistPage is one page of the identity's watchlist, most recent first.
type WatchlistPage struct {
	Items      []WatchlistEntry `json:"items"`
	TotalCount int              `json:"total_count"`
	Offset     int              `json:"offset"`
	Limit      int              `json:"limit"`
}

// SweepResult reports a maintenance sweep outcome.
type SweepResult struct {
	Removed int `json:"removed"`
}

// DedupeResult reports a recommendation-deduplication outcome.
type DedupeResult struct {
	Identities int `json:"identities"`
	Removed    int `json:"removed"`
}

// HealthStatus is the payload of /health and /ready.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
