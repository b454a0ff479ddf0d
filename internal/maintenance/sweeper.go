// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package maintenance

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

const (
	defaultShortsPattern = `\bShorts?\b`
	defaultOpsPerSecond  = 200
	defaultInterval      = 24 * time.Hour
)

// Store is the storage surface the sweeps operate on.
// Implemented by *database.Store.
type Store interface {
	AllContent(ctx context.Context) ([]models.Content, error)
	DeleteContent(ctx context.Context, id string) error
	RecommendationIdentities(ctx context.Context) ([]models.Identity, error)
	DedupeRecommendations(ctx context.Context, identity models.Identity) (int, error)
}

// Sweeper runs the catalog maintenance sweeps: removing Shorts-genre entries
// and compacting stored recommendation sets. Store writes are paced by a
// rate limiter so a sweep never starves foreground traffic.
//
// Sweeps run on a timer via Start or on demand through the admin API via
// SweepShorts and DedupeRecommendations. Both paths share the same limiter.
type Sweeper struct {
	store    Store
	cfg      config.MaintenanceConfig
	limiter  *rate.Limiter
	shortsRe *regexp.Regexp

	// Control
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// State
	mu      sync.Mutex
	running bool

	// Stats
	lastRun     time.Time
	lastRemoved int
}

// NewSweeper builds a Sweeper. Zero throttle, interval, and pattern fields
// fall back to defaults so on-demand sweeps work even when the periodic loop
// is disabled. A non-empty pattern that does not compile is an error.
func NewSweeper(store Store, cfg config.MaintenanceConfig) (*Sweeper, error) {
	if cfg.ShortsPattern == "" {
		cfg.ShortsPattern = defaultShortsPattern
	}
	re, err := regexp.Compile(cfg.ShortsPattern)
	if err != nil {
		return nil, fmt.Errorf("compile shorts pattern %q: %w", cfg.ShortsPattern, err)
	}

	if cfg.OpsPerSecond <= 0 {
		cfg.OpsPerSecond = defaultOpsPerSecond
	}
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	// Burst of one second's allowance lets a sweep absorb scheduling jitter
	// without exceeding the sustained rate.
	burst := int(cfg.OpsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Sweeper{
		store:    store,
		cfg:      cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.OpsPerSecond), burst),
		shortsRe: re,
	}, nil
}

// Start begins the background sweep loop.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()

	logging.Info().
		Dur("interval", s.cfg.Interval).
		Bool("shorts_sweep", s.cfg.ShortsSweep).
		Bool("dedupe", s.cfg.DedupeRecommendations).
		Msg("Maintenance sweeper started")
	return nil
}

// Stop gracefully stops the sweep loop.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	logging.Info().Msg("Maintenance sweeper stopped")
}

// IsRunning returns whether the periodic loop is active.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// run is the main sweep loop goroutine.
func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep runs one full maintenance cycle honoring the per-sweep config gates.
// Individual sweep failures are logged and do not abort the cycle.
func (s *Sweeper) sweep() {
	start := time.Now()
	removed := 0

	if s.cfg.ShortsSweep {
		n, err := s.SweepShorts(s.ctx)
		if err != nil {
			logging.Error().Err(err).Msg("Shorts sweep failed")
		}
		removed += n
	}

	if s.cfg.DedupeRecommendations {
		_, n, err := s.DedupeRecommendations(s.ctx)
		if err != nil {
			logging.Error().Err(err).Msg("Recommendation dedupe failed")
		}
		removed += n
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastRemoved = removed
	s.mu.Unlock()

	if removed > 0 {
		logging.Info().
			Int("removed", removed).
			Dur("duration", time.Since(start)).
			Msg("Maintenance cycle removed entries")
	}
}

// SweepShorts deletes catalog entries whose genre matches the shorts
// pattern. Each delete also drops the entry's content_ref index key. Vote
// and interaction history referring to a deleted id is left in place; the
// orphaned references stop resolving but still count toward exclusion.
// Returns the number of entries removed.
func (s *Sweeper) SweepShorts(ctx context.Context) (int, error) {
	start := time.Now()

	items, err := s.store.AllContent(ctx)
	if err != nil {
		metrics.RecordMaintenanceSweep("shorts", time.Since(start), 0, err)
		return 0, fmt.Errorf("scan catalog: %w", err)
	}

	removed := 0
	for i := range items {
		item := &items[i]
		if !s.shortsRe.MatchString(item.Genre) {
			continue
		}
		if err := s.limiter.Wait(ctx); err != nil {
			metrics.RecordMaintenanceSweep("shorts", time.Since(start), removed, err)
			return removed, err
		}
		if err := s.store.DeleteContent(ctx, item.ID); err != nil {
			metrics.RecordMaintenanceSweep("shorts", time.Since(start), removed, err)
			return removed, fmt.Errorf("delete content %s: %w", item.ID, err)
		}
		logging.Debug().
			Str("content_id", item.ID).
			Str("title", item.Title).
			Str("genre", item.Genre).
			Msg("Shorts sweep removed entry")
		removed++
	}

	metrics.RecordMaintenanceSweep("shorts", time.Since(start), removed, nil)
	logging.Info().
		Int("removed", removed).
		Int("scanned", len(items)).
		Dur("duration", time.Since(start)).
		Msg("Shorts sweep completed")
	return removed, nil
}

// DedupeRecommendations compacts every identity's stored recommendation set
// to one entry per content id, keeping the best score. Returns the number of
// identities walked and the total number of entries removed.
func (s *Sweeper) DedupeRecommendations(ctx context.Context) (int, int, error) {
	start := time.Now()

	identities, err := s.store.RecommendationIdentities(ctx)
	if err != nil {
		metrics.RecordMaintenanceSweep("dedupe", time.Since(start), 0, err)
		return 0, 0, fmt.Errorf("scan recommendation identities: %w", err)
	}

	removed := 0
	for _, identity := range identities {
		if err := s.limiter.Wait(ctx); err != nil {
			metrics.RecordMaintenanceSweep("dedupe", time.Since(start), removed, err)
			return len(identities), removed, err
		}
		n, err := s.store.DedupeRecommendations(ctx, identity)
		if err != nil {
			metrics.RecordMaintenanceSweep("dedupe", time.Since(start), removed, err)
			return len(identities), removed, fmt.Errorf("dedupe recommendations: %w", err)
		}
		removed += n
	}

	metrics.RecordMaintenanceSweep("dedupe", time.Since(start), removed, nil)
	logging.Info().
		Int("identities", len(identities)).
		Int("removed", removed).
		Dur("duration", time.Since(start)).
		Msg("Recommendation dedupe completed")
	return len(identities), removed, nil
}

// GetStats returns statistics about the last completed cycle.
func (s *Sweeper) GetStats() SweeperStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SweeperStats{
		LastRun:     s.lastRun,
		LastRemoved: s.lastRemoved,
	}
}

// SweeperStats contains statistics about periodic sweep cycles.
type SweeperStats struct {
	LastRun     time.Time
	LastRemoved int
}
