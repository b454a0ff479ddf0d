// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package maintenance runs the background catalog sweeps.
//
// Two sweeps exist. The shorts sweep removes catalog entries whose genre
// matches a configurable pattern (default matches "Short" and "Shorts");
// seeded catalogs carry short films that make poor head-to-head matchups.
// Deletes remove both the catalog record and its content_ref index entry,
// while vote and interaction history referencing the id is deliberately
// kept: an identity that voted a short away should not see it resurface if
// it is ever re-imported. The dedupe sweep compacts stored recommendation
// sets to one entry per content id, keeping the best score, which bounds
// keyspace growth from repeated pipeline pushes.
//
// Sweeps iterate the whole store, so every write waits on a shared rate
// limiter (MAINTENANCE_OPS_PER_SECOND). The periodic loop is opt-in via
// MAINTENANCE_ENABLED; the admin API can trigger either sweep on demand
// regardless.
package maintenance
