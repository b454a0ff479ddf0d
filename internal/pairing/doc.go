// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package pairing selects head-to-head content pairs for an identity.
//
// Both entry points - a fresh pair and a replacement keeping one on-screen
// item - filter through the same eligibility path: an item is eligible only
// when neither of its identifiers is excluded, and a pair is eligible only
// when both items are eligible, differ, and have not been voted on by this
// identity. Selection retries random draws to avoid serving a pair the
// identity has already voted, then falls back to a random eligible pair.
// The fallback relaxes ONLY the voted-pair constraint; exclusion filtering
// is never relaxed, including on store failure, where selection fails the
// request instead of serving an unfiltered pool.
package pairing
