// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

// Identity is the acting subject of a request: an authenticated user
// (UserID, from a verified bearer token) or a guest session (SessionID,
// self-assigned by the client). The zero Identity is anonymous and valid -
// read endpoints serve empty results for it rather than failing.
//
// UserID wins when both are somehow present, so a client that keeps sending
// its old session_id after logging in does not split its history across two
// keyspaces mid-request.
type Identity struct {
	UserID    string
	SessionID string
}

// IsZero reports whether no identity was presented.
func (id Identity) IsZero() bool {
	return id.UserID == "" && id.SessionID == ""
}

// Authenticated reports whether the identity came from a verified token.
func (id Identity) Authenticated() bool {
	return id.UserID != ""
}

// Key returns the storage keyspace for this identity: "u:<user_id>" for
// authenticated users, "s:<session_id>" for guests, "" for anonymous. The
// two prefixes keep user and guest histories disjoint; there is no merge on
// login.
func (id Identity) Key() string {
	if id.UserID != "" {
		return "u:" + id.UserID
	}
	if id.SessionID != "" {
		return "s:" + id.SessionID
	}
	return ""
}
