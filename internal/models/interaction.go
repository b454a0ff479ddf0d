// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

import "time"

// InteractionKind names a user action on a content item.
//
// The set is open-ended by design: the store tolerates kinds this version
// does not know about (written by newer versions), and consumers filter to
// the kinds they understand. The API boundary only accepts the kinds below.
type InteractionKind string

const (
	// InteractionWatched marks content the user has already seen.
	InteractionWatched InteractionKind = "watched"

	// InteractionNotInterested marks content the user explicitly rejected.
	InteractionNotInterested InteractionKind = "not_interested"

	// InteractionPassed marks content the user skipped during voting.
	// Exclusion semantics are identical to not_interested; the kinds stay
	// distinct in storage and status payloads.
	InteractionPassed InteractionKind = "passed"

	// InteractionWantToWatch adds content to the user's watchlist. It never
	// contributes to exclusion.
	InteractionWantToWatch InteractionKind = "want_to_watch"
)

// Valid reports whether k is a kind accepted at the API boundary.
func (k InteractionKind) Valid() bool {
	switch k {
	case InteractionWatched, InteractionNotInterested, InteractionPassed, InteractionWantToWatch:
		return true
	}
	return false
}

// Interaction records a user action on a content item.
//
// Exactly one of UserID/SessionID is set, matching the identity that
// performed the action. ContentRef holds whichever identifier the write path
// used - internal id OR catalog id - which is the historical inconsistency
// the exclusion resolver compensates for. New writes are not normalized
// either: normalization at write time would not repair the existing records,
// so the read side owns reconciliation.
//
// Priority is only meaningful for want_to_watch (watchlist ordering, 1-5).
//
// Interactions are append-only; there is no update or delete path.
type Interaction struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id,omitempty"`
	SessionID  string          `json:"session_id,omitempty"`
	ContentRef string          `json:"content_ref"`
	Kind       InteractionKind `json:"kind"`
	Priority   int             `json:"priority,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
