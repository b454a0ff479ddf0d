// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package pairing

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/exclusion"
	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// Errors
var (
	// ErrNotEnoughContent is returned when fewer than two eligible items
	// remain for the identity.
	ErrNotEnoughContent = errors.New("not enough eligible content")

	// ErrUnknownContent is returned when a replacement request references
	// a content item that does not exist under either identifier.
	ErrUnknownContent = errors.New("unknown content")
)

// CatalogSource lists catalog items and resolves references by either
// identifier. Implemented by *database.Store.
type CatalogSource interface {
	ListContentByType(ctx context.Context, contentType models.ContentType) ([]models.Content, error)
	ContentByAnyID(ctx context.Context, ref string) (*models.Content, error)
}

// Resolver computes an identity's exclusion state.
type Resolver interface {
	Resolve(ctx context.Context, identity models.Identity) (*exclusion.Result, error)
}

// Pair is a served head-to-head matchup.
type Pair struct {
	Item1       models.Content
	Item2       models.Content
	ContentType models.ContentType

	// Fallback is true when every draw collided with an already-voted
	// pair and the voted-pair constraint was relaxed.
	Fallback bool
}

// EligibleItem reports whether an item may be served to the identity behind
// result: neither of its identifiers may be excluded.
func EligibleItem(result *exclusion.Result, content *models.Content) bool {
	return !result.ItemExcluded(content)
}

// EligiblePair reports whether two items may be served together: both
// eligible, distinct, and not previously voted as a pair.
func EligiblePair(result *exclusion.Result, a, b *models.Content) bool {
	if !EligibleItem(result, a) || !EligibleItem(result, b) {
		return false
	}
	if a.ID == b.ID {
		return false
	}
	return !result.PairVoted(a.ID, b.ID)
}

// Selector draws pairs from the catalog for an identity.
type Selector struct {
	catalog     CatalogSource
	resolver    Resolver
	maxAttempts int

	// intN is rand.IntN, replaced in tests for deterministic draws.
	intN func(n int) int
}

// New returns a Selector using cfg.MaxAttempts random draws before the
// voted-pair fallback.
func New(catalog CatalogSource, resolver Resolver, cfg *config.PairingConfig) *Selector {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 50
	}
	return &Selector{
		catalog:     catalog,
		resolver:    resolver,
		maxAttempts: attempts,
		intN:        rand.IntN,
	}
}

// FreshPair serves a new pair of the given content type, or of a random
// type when contentType is empty.
func (s *Selector) FreshPair(ctx context.Context, identity models.Identity, contentType models.ContentType) (*Pair, error) {
	start := time.Now()

	result, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("resolve exclusions: %w", err)
	}

	if contentType == "" {
		contentType = s.randomType()
	}
	items, err := s.catalog.ListContentByType(ctx, contentType)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	pool := s.eligible(items, result, "")
	if len(pool) < 2 {
		metrics.RecordPairExhausted()
		return nil, ErrNotEnoughContent
	}

	var first, second models.Content
	fallback := true
	attempts := 0
	for attempts < s.maxAttempts {
		attempts++
		i := s.intN(len(pool))
		j := s.intN(len(pool) - 1)
		if j >= i {
			j++
		}
		first, second = pool[i], pool[j]
		if !result.PairVoted(first.ID, second.ID) {
			fallback = false
			break
		}
	}

	metrics.RecordPairSelection(time.Since(start), attempts, fallback)
	metrics.RecordPairServed("fresh")
	return &Pair{Item1: first, Item2: second, ContentType: contentType, Fallback: fallback}, nil
}

// Replacement serves a pair that keeps the referenced on-screen item as
// Item1 and draws a new opponent. keepRef may be either identifier.
func (s *Selector) Replacement(ctx context.Context, identity models.Identity, keepRef string) (*Pair, error) {
	start := time.Now()

	kept, err := s.catalog.ContentByAnyID(ctx, keepRef)
	if err != nil {
		return nil, fmt.Errorf("resolve kept item: %w", err)
	}
	if kept == nil {
		return nil, ErrUnknownContent
	}

	result, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("resolve exclusions: %w", err)
	}

	// The kept item is re-presented, so it is held to the same exclusion
	// contract as a drawn one.
	if !EligibleItem(result, kept) {
		metrics.RecordPairExhausted()
		return nil, ErrNotEnoughContent
	}

	items, err := s.catalog.ListContentByType(ctx, kept.ContentType)
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}

	pool := s.eligible(items, result, kept.ID)
	if len(pool) < 1 {
		metrics.RecordPairExhausted()
		return nil, ErrNotEnoughContent
	}

	var opponent models.Content
	fallback := true
	attempts := 0
	for attempts < s.maxAttempts {
		attempts++
		opponent = pool[s.intN(len(pool))]
		if !result.PairVoted(kept.ID, opponent.ID) {
			fallback = false
			break
		}
	}

	metrics.RecordPairSelection(time.Since(start), attempts, fallback)
	metrics.RecordPairServed("replacement")
	return &Pair{Item1: *kept, Item2: opponent, ContentType: kept.ContentType, Fallback: fallback}, nil
}

// eligible filters items to those servable for this resolution, skipping
// excludeID when set.
func (s *Selector) eligible(items []models.Content, result *exclusion.Result, excludeID string) []models.Content {
	pool := make([]models.Content, 0, len(items))
	for i := range items {
		if excludeID != "" && items[i].ID == excludeID {
			continue
		}
		if EligibleItem(result, &items[i]) {
			pool = append(pool, items[i])
		}
	}
	return pool
}

func (s *Selector) randomType() models.ContentType {
	if s.intN(2) == 0 {
		return models.ContentTypeMovie
	}
	return models.ContentTypeSeries
}
