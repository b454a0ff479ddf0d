// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package services

import (
	"context"
	"time"

	"github.com/tomtom215/cineduel/internal/logging"
)

// GCStore interface matches the store methods the GC loop needs.
//
// This interface allows the StoreGCService to work with the store without
// importing the database package, avoiding circular dependencies.
//
// Satisfied by *database.Store from internal/database/store.go:
//   - RunGC() error
//   - Size() (lsm, vlog int64)
type GCStore interface {
	RunGC() error
	Size() (lsm, vlog int64)
}

// StoreGCService runs BadgerDB value-log garbage collection on a schedule.
//
// Badger never reclaims value-log space on its own; the application is
// expected to call RunValueLogGC periodically. This service owns that loop
// so a panic in a GC cycle is restarted by the supervisor instead of
// silently killing space reclamation for the life of the process.
//
// Example usage:
//
//	svc := services.NewStoreGCService(store, cfg.Database.GCInterval)
//	tree.AddStoreService(svc)
type StoreGCService struct {
	store    GCStore
	interval time.Duration
	name     string
}

// NewStoreGCService creates a new store GC service.
//
// A non-positive interval falls back to 10 minutes, matching the
// BADGER_GC_INTERVAL default.
func NewStoreGCService(store GCStore, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
//
// It runs one GC cycle per tick until the context is canceled. A failed
// cycle is logged and retried on the next tick rather than returned, since
// a transient GC error (compaction in progress, no rewritable segments)
// should not restart the service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	logging.Info().
		Dur("interval", s.interval).
		Msg("Store GC service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info().Msg("Store GC service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.collect()
		}
	}
}

// collect performs one GC cycle and logs the size delta.
func (s *StoreGCService) collect() {
	start := time.Now()
	lsmBefore, vlogBefore := s.store.Size()

	if err := s.store.RunGC(); err != nil {
		logging.Warn().Err(err).Msg("Value log GC cycle failed")
		return
	}

	lsmAfter, vlogAfter := s.store.Size()
	logging.Debug().
		Dur("duration", time.Since(start)).
		Int64("lsm_before", lsmBefore).
		Int64("lsm_after", lsmAfter).
		Int64("vlog_before", vlogBefore).
		Int64("vlog_after", vlogAfter).
		Msg("Value log GC cycle complete")
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (s *StoreGCService) String() string {
	return s.name
}
