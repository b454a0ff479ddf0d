// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package exclusion computes the set of content an identity must never be
// shown again.
//
// # Why this package exists
//
// Interaction history stores content references under whichever identifier
// the writing code had in hand: sometimes the internal catalog id, sometimes
// the external id. A filter that checks only one identifier scheme lets
// already-rejected items slip back into served pairs through the other
// scheme. That reappearing-content bug is the single most reported defect
// class in this system's history, so the resolver here is the one authority
// for the mapping: every raw reference is resolved against the catalog by
// either identifier, and when it resolves, BOTH identifiers of the item
// join the exclusion set. Downstream filters then need only ask "is either
// identifier of this item excluded".
//
// # Contract
//
//	resolver := exclusion.New(store, store, store)
//	result, err := resolver.Resolve(ctx, identity)
//	if err != nil {
//	    // Store failure. Callers MUST fail their request rather than
//	    // serve an unfiltered pool.
//	}
//	if result.ItemExcluded(content) { /* never serve this item */ }
//	if result.PairVoted(a.ID, b.ID) { /* never re-serve this pair */ }
//
// A zero identity (no user, no session) resolves to an empty history, not
// an error: cold-start traffic must always be servable.
//
// Resolution is a pure read recomputed per request. A write that lands
// while a resolution is in flight may not be reflected in that resolution;
// the item can appear at most once more. This window is accepted and
// intentionally not papered over with cross-request locking.
package exclusion
