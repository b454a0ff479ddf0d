// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package exclusion

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// exclusionKinds are the interaction kinds that remove content from future
// pairs. want_to_watch deliberately does not exclude; unknown kinds written
// by newer versions are ignored rather than rejected.
var exclusionKinds = map[models.InteractionKind]bool{
	models.InteractionWatched:       true,
	models.InteractionNotInterested: true,
	models.InteractionPassed:        true,
}

// Pair is an unordered pair of content identifiers in canonical order.
// Build one with NormalizePair so (a, b) and (b, a) compare equal.
type Pair struct {
	A string
	B string
}

// NormalizePair returns the canonical form of an unordered identifier pair.
func NormalizePair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// InteractionStore provides an identity's interaction history.
type InteractionStore interface {
	ListInteractions(ctx context.Context, identity models.Identity) ([]models.Interaction, error)
}

// VoteStore provides an identity's vote history.
type VoteStore interface {
	ListVotes(ctx context.Context, identity models.Identity) ([]models.Vote, error)
}

// CatalogStore resolves a content reference by either identifier scheme.
// Unresolved references must be reported as (nil, nil), not an error.
type CatalogStore interface {
	ContentByAnyID(ctx context.Context, ref string) (*models.Content, error)
}

// Result is one identity's exclusion state at resolution time.
type Result struct {
	// VoteCount is the identity's total completed votes.
	VoteCount int

	// VotedPairs holds every unordered pair the identity has voted on.
	VotedPairs map[Pair]struct{}

	// Excluded holds every identifier the identity must not be shown,
	// mixing both identifier schemes plus orphaned literals.
	Excluded map[string]struct{}
}

func newResult() *Result {
	return &Result{
		VotedPairs: make(map[Pair]struct{}),
		Excluded:   make(map[string]struct{}),
	}
}

// IsExcluded reports whether a single identifier is excluded.
func (r *Result) IsExcluded(id string) bool {
	_, ok := r.Excluded[id]
	return ok
}

// ItemExcluded reports whether a catalog item is excluded. An item is
// excluded when ANY of its identifiers is in the set; eligibility requires
// that neither one is.
func (r *Result) ItemExcluded(content *models.Content) bool {
	if content == nil {
		return false
	}
	for _, id := range content.Identifiers() {
		if r.IsExcluded(id) {
			return true
		}
	}
	return false
}

// PairVoted reports whether the identity has already voted on the unordered
// pair (a, b).
func (r *Result) PairVoted(a, b string) bool {
	_, ok := r.VotedPairs[NormalizePair(a, b)]
	return ok
}

// Resolver computes exclusion state from the interaction, vote, and catalog
// stores. Stateless; safe for concurrent use.
type Resolver struct {
	interactions InteractionStore
	votes        VoteStore
	catalog      CatalogStore
}

// New returns a Resolver over the given stores. A *database.Store satisfies
// all three parameters.
func New(interactions InteractionStore, votes VoteStore, catalog CatalogStore) *Resolver {
	return &Resolver{
		interactions: interactions,
		votes:        votes,
		catalog:      catalog,
	}
}

// Resolve computes the identity's exclusion set, vote count, and voted-pair
// set from current store state.
//
// A zero identity yields the empty result with no store reads. Any store
// failure is returned as-is with a nil result; callers must treat that as
// "do not serve" rather than falling back to an unfiltered pool.
func (r *Resolver) Resolve(ctx context.Context, identity models.Identity) (*Result, error) {
	result := newResult()
	if identity.IsZero() {
		return result, nil
	}

	start := time.Now()

	interactions, err := r.interactions.ListInteractions(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}

	// The raw reference always joins the set, whichever scheme it uses.
	// Distinct references are resolved once each.
	refs := make(map[string]struct{})
	for _, interaction := range interactions {
		if !exclusionKinds[interaction.Kind] {
			continue
		}
		if interaction.ContentRef == "" {
			continue
		}
		result.Excluded[interaction.ContentRef] = struct{}{}
		refs[interaction.ContentRef] = struct{}{}
	}

	orphans := 0
	for ref := range refs {
		content, err := r.catalog.ContentByAnyID(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("resolve content ref: %w", err)
		}
		if content == nil {
			// Deleted or never-ingested item. The literal stays excluded;
			// there is no second identifier to expand to.
			orphans++
			continue
		}
		for _, id := range content.Identifiers() {
			result.Excluded[id] = struct{}{}
		}
	}

	votes, err := r.votes.ListVotes(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	result.VoteCount = len(votes)
	for _, vote := range votes {
		result.VotedPairs[NormalizePair(vote.WinnerID, vote.LoserID)] = struct{}{}
	}

	metrics.RecordExclusionResolve(time.Since(start), len(result.Excluded), orphans)
	return result, nil
}
