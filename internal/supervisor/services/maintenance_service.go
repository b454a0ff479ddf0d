// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package services

import (
	"context"
	"fmt"
)

// SweepRunner interface matches the maintenance.Sweeper lifecycle.
//
// This interface abstracts the sweeper's Start/Stop pattern, allowing the
// MaintenanceService wrapper to adapt it to suture's Serve pattern without
// modifying the existing sweeper code.
//
// Satisfied by *maintenance.Sweeper from internal/maintenance/sweeper.go:
//   - Start(ctx context.Context) error
//   - Stop()
type SweepRunner interface {
	Start(ctx context.Context) error
	Stop()
}

// MaintenanceService wraps the maintenance sweeper as a supervised service.
//
// It adapts the Start/Stop lifecycle pattern to suture's Serve pattern:
//  1. Calls Start(ctx) to begin the periodic sweep loop
//  2. Waits for context cancellation
//  3. Calls Stop() for graceful shutdown
//
// The sweeper handles its own goroutine internally via WaitGroup, so this
// wrapper simply orchestrates the lifecycle transitions.
type MaintenanceService struct {
	sweeper SweepRunner
	name    string
}

// NewMaintenanceService creates a new maintenance service wrapper.
//
// Example usage:
//
//	sweeper, _ := maintenance.NewSweeper(store, cfg.Maintenance)
//	svc := services.NewMaintenanceService(sweeper)
//	tree.AddStoreService(svc)
func NewMaintenanceService(sweeper SweepRunner) *MaintenanceService {
	return &MaintenanceService{
		sweeper: sweeper,
		name:    "maintenance-sweeper",
	}
}

// Serve implements suture.Service.
//
// This method:
//  1. Starts the sweeper (which spawns its sweep goroutine)
//  2. Blocks until the context is canceled
//  3. Stops the sweeper (which waits for the goroutine to complete)
//
// If Start() fails, the error is returned immediately, causing suture to
// restart the service according to its backoff policy.
func (m *MaintenanceService) Serve(ctx context.Context) error {
	// Start the sweeper - this spawns the sweep goroutine but returns immediately
	if err := m.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("maintenance sweeper start failed: %w", err)
	}

	// Wait for shutdown signal
	<-ctx.Done()

	// Stop the sweeper - this blocks until the sweep goroutine completes
	m.sweeper.Stop()

	return ctx.Err()
}

// String implements fmt.Stringer for logging.
// Suture uses this to identify the service in log messages.
func (m *MaintenanceService) String() string {
	return m.name
}
