// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package recommend serves vote statistics and stored recommendations.
//
// CineDuel does not score content itself. An external pipeline computes
// per-identity recommendation sets offline and pushes them through the admin
// API; this package owns the serving side. A vote-count threshold gates the
// read path: below it callers get ErrNotEnoughVotes and the stats countdown
// tells clients how many votes remain. Above it, stored entries are
// deduplicated (highest score per content id wins), resolved against the
// catalog, filtered through the same exclusion contract as pairing, and
// served sorted by score descending.
//
// Entries are not validated against the catalog at push time. The pipeline
// may reference items that have since been removed; the read path drops
// those instead of failing the request.
package recommend
