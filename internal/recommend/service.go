// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/exclusion"
	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// ErrNotEnoughVotes is returned when an identity has not voted enough times
// to unlock recommendations.
var ErrNotEnoughVotes = errors.New("not enough votes for recommendations")

const defaultVoteThreshold = 10

// VoteSource provides the vote history backing stats and the threshold gate.
type VoteSource interface {
	ListVotes(ctx context.Context, identity models.Identity) ([]models.Vote, error)
	CountVotes(ctx context.Context, identity models.Identity) (int, error)
}

// RecommendationStore holds the per-identity sets pushed by the pipeline.
type RecommendationStore interface {
	ListRecommendations(ctx context.Context, identity models.Identity) ([]models.Recommendation, error)
	ReplaceRecommendations(ctx context.Context, identity models.Identity, recs []models.Recommendation) error
}

// CatalogSource resolves stored content ids for serving.
type CatalogSource interface {
	ContentByAnyID(ctx context.Context, ref string) (*models.Content, error)
}

// Resolver computes the identity's exclusion state.
type Resolver interface {
	Resolve(ctx context.Context, identity models.Identity) (*exclusion.Result, error)
}

// Service answers stats and recommendation requests for one identity at a
// time. It is stateless and safe for concurrent use.
type Service struct {
	votes     VoteSource
	recs      RecommendationStore
	catalog   CatalogSource
	resolver  Resolver
	threshold int
}

// New builds a Service. A nil or non-positive threshold config falls back to
// the default of 10 votes.
func New(votes VoteSource, recs RecommendationStore, catalog CatalogSource, resolver Resolver, cfg *config.RecommendConfig) *Service {
	threshold := defaultVoteThreshold
	if cfg != nil && cfg.VoteThreshold > 0 {
		threshold = cfg.VoteThreshold
	}
	return &Service{
		votes:     votes,
		recs:      recs,
		catalog:   catalog,
		resolver:  resolver,
		threshold: threshold,
	}
}

// Threshold returns the vote count that unlocks recommendations.
func (s *Service) Threshold() int {
	return s.threshold
}

// Stats reports the identity's vote counts and recommendation availability.
// A zero identity gets the cold-start view: zero votes, full countdown.
func (s *Service) Stats(ctx context.Context, identity models.Identity) (*models.UserStats, error) {
	votes, err := s.votes.ListVotes(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}

	stats := &models.UserStats{
		TotalVotes:        len(votes),
		UserAuthenticated: identity.Authenticated(),
	}
	for _, vote := range votes {
		switch vote.ContentType {
		case models.ContentTypeMovie:
			stats.MovieVotes++
		case models.ContentTypeSeries:
			stats.SeriesVotes++
		}
	}
	stats.VotesUntilRecommendations = max(0, s.threshold-stats.TotalVotes)
	stats.RecommendationsAvailable = stats.TotalVotes >= s.threshold
	return stats, nil
}

// Recommendations serves one page of the identity's stored recommendation
// set. Identities under the vote threshold get ErrNotEnoughVotes. Entries
// whose content is gone from the catalog are dropped; entries whose content
// is excluded for this identity are dropped under the same contract pairing
// follows. Any store failure fails the request.
func (s *Service) Recommendations(ctx context.Context, identity models.Identity, offset, limit int) (*models.RecommendationsPage, error) {
	count, err := s.votes.CountVotes(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("count votes: %w", err)
	}
	if count < s.threshold {
		metrics.RecordThresholdBlock()
		return nil, ErrNotEnoughVotes
	}

	stored, err := s.recs.ListRecommendations(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	deduped := dedupeHighestScore(stored)

	result, err := s.resolver.Resolve(ctx, identity)
	if err != nil {
		// An unknown exclusion state must fail the request rather than
		// surface content the identity already dismissed.
		return nil, fmt.Errorf("resolve exclusions: %w", err)
	}

	items := make([]models.RecommendedItem, 0, len(deduped))
	for _, rec := range deduped {
		content, err := s.catalog.ContentByAnyID(ctx, rec.ContentID)
		if err != nil {
			return nil, fmt.Errorf("resolve content %s: %w", rec.ContentID, err)
		}
		if content == nil {
			// Pushed before the item left the catalog.
			continue
		}
		if result.ItemExcluded(content) {
			continue
		}
		items = append(items, models.RecommendedItem{Content: content, Score: rec.Score})
	}

	// Stable so equal scores keep their stored order and pagination stays
	// consistent across requests.
	sort.SliceStable(items, func(i, j int) bool { return items[i].Score > items[j].Score })

	page := paginate(items, offset, limit)
	metrics.RecordRecommendationsServed(len(page.Items))
	logging.CtxDebug(ctx).
		Int("stored", len(stored)).
		Int("eligible", page.TotalCount).
		Int("served", len(page.Items)).
		Msg("Recommendations served")
	return page, nil
}

// Push replaces the identity's stored recommendation set with the given
// entries. Content ids are not resolved here; unknown ids are dropped at
// serve time instead.
func (s *Service) Push(ctx context.Context, identity models.Identity, entries []models.RecommendationEntry) error {
	if identity.IsZero() {
		return fmt.Errorf("recommendation push requires a user or session identity")
	}

	now := time.Now().UTC()
	recs := make([]models.Recommendation, 0, len(entries))
	for i, entry := range entries {
		if entry.ContentID == "" {
			return fmt.Errorf("recommendation entry %d missing content id", i)
		}
		// Per-entry offsets keep stored order aligned with push order.
		recs = append(recs, models.Recommendation{
			ContentID:   entry.ContentID,
			Score:       entry.Score,
			GeneratedAt: now.Add(time.Duration(i)),
		})
	}

	if err := s.recs.ReplaceRecommendations(ctx, identity, recs); err != nil {
		return fmt.Errorf("replace recommendations: %w", err)
	}
	metrics.RecordRecommendationPush(len(recs))
	logging.CtxInfo(ctx).Int("entries", len(recs)).Msg("Recommendation set replaced")
	return nil
}

// dedupeHighestScore collapses duplicate content ids, keeping the highest
// score. First-seen order is preserved so ties stay in stored order.
func dedupeHighestScore(stored []models.Recommendation) []models.Recommendation {
	index := make(map[string]int, len(stored))
	deduped := make([]models.Recommendation, 0, len(stored))
	for _, rec := range stored {
		if rec.ContentID == "" {
			continue
		}
		if i, ok := index[rec.ContentID]; ok {
			if rec.Score > deduped[i].Score {
				deduped[i] = rec
			}
			continue
		}
		index[rec.ContentID] = len(deduped)
		deduped = append(deduped, rec)
	}
	return deduped
}

// paginate slices one page out of the filtered set. An offset past the end
// yields an empty page; a non-positive limit serves the whole remainder.
func paginate(items []models.RecommendedItem, offset, limit int) *models.RecommendationsPage {
	if offset < 0 {
		offset = 0
	}
	page := &models.RecommendationsPage{
		Items:      []models.RecommendedItem{},
		TotalCount: len(items),
		Offset:     offset,
		Limit:      limit,
	}
	if offset >= len(items) {
		return page
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page.Items = items[offset:end]
	return page
}
