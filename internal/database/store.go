// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package database

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/cineduel/internal/cache"
	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/metrics"
)

// Errors
var (
	// ErrContentNotFound is returned when a content id resolves to nothing.
	ErrContentNotFound = errors.New("content not found")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Store is the BadgerDB-backed persistence layer. All methods are safe for
// concurrent use; Badger provides snapshot isolation per transaction.
type Store struct {
	db           *badger.DB
	catalogCache *cache.Cache // nil when caching is disabled
	gcRatio      float64
}

// Open opens (or creates) the Badger database described by cfg. A positive
// catalogCacheTTL enables the in-process catalog lookup cache; zero disables
// it.
func Open(cfg *config.DatabaseConfig, catalogCacheTTL time.Duration) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(cfg.Path)
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	store := &Store{
		db:      db,
		gcRatio: cfg.GCDiscardRatio,
	}
	if catalogCacheTTL > 0 {
		store.catalogCache = cache.New(catalogCacheTTL)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Bool("catalog_cache", store.catalogCache != nil).
		Msg("Store opened")

	return store, nil
}

// Close flushes and closes the underlying database.
func (s *Store) Close() error {
	if s.catalogCache != nil {
		s.catalogCache.Clear()
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger db: %w", err)
	}
	logging.Info().Msg("Store closed")
	return nil
}

// RunGC runs value-log garbage collection until Badger reports nothing left
// to rewrite. Safe to call while the store is serving traffic.
func (s *Store) RunGC() error {
	reclaimed := false
	for {
		err := s.db.RunValueLogGC(s.gcRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			break
		}
		if errors.Is(err, badger.ErrGCInMemoryMode) {
			// Nothing to reclaim without a value log
			break
		}
		if err != nil {
			metrics.RecordStoreGC(false, err)
			return fmt.Errorf("run value log gc: %w", err)
		}
		reclaimed = true
	}
	metrics.RecordStoreGC(reclaimed, nil)
	return nil
}

// Size returns the LSM tree and value log sizes in bytes.
func (s *Store) Size() (lsm, vlog int64) {
	return s.db.Size()
}

// Healthy reports whether the store can serve reads.
func (s *Store) Healthy() bool {
	return !s.db.IsClosed()
}

// CacheStats returns catalog cache counters, or zero stats when the cache
// is disabled.
func (s *Store) CacheStats() cache.Stats {
	if s.catalogCache == nil {
		return cache.Stats{}
	}
	return s.catalogCache.GetStats()
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this for cleanup in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
