// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

import "time"

// Vote records a completed pairwise comparison.
//
// Exactly one of UserID/SessionID is set. WinnerID and LoserID are internal
// content ids: the pairing endpoints hand out internal ids and the vote
// endpoint stores what it receives. A vote removes the unordered pair
// {WinnerID, LoserID} from future pairings for this identity; it does NOT
// exclude either item individually (each may still be offered against other
// opponents).
//
// Votes are append-only.
type Vote struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id,omitempty"`
	SessionID   string      `json:"session_id,omitempty"`
	WinnerID    string      `json:"winner_id"`
	LoserID     string      `json:"loser_id"`
	ContentType ContentType `json:"content_type"`
	CreatedAt   time.Time   `json:"created_at"`
}
