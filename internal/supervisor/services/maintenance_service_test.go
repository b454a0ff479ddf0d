// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thejerf/suture/v4"
)

// mockSweeper is a test double for SweepRunner interface.
type mockSweeper struct {
	started  atomic.Bool
	stopped  atomic.Bool
	startErr error
}

func (m *mockSweeper) Start(ctx context.Context) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.started.Store(true)
	return nil
}

func (m *mockSweeper) Stop() {
	m.stopped.Store(true)
}

func TestMaintenanceService_Interface(t *testing.T) {
	// Verify MaintenanceService implements suture.Service
	var _ suture.Service = (*MaintenanceService)(nil)
}

func TestMaintenanceService(t *testing.T) {
	t.Run("starts underlying sweeper", func(t *testing.T) {
		sweeper := &mockSweeper{}
		svc := NewMaintenanceService(sweeper)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- svc.Serve(ctx)
		}()

		// Wait for service to start with polling (more reliable in CI under load)
		var started bool
		for i := 0; i < 10; i++ {
			time.Sleep(20 * time.Millisecond)
			if sweeper.started.Load() {
				started = true
				break
			}
		}
		if !started {
			t.Error("sweeper was not started")
		}

		// Let context expire
		<-done
	})

	t.Run("stops sweeper on context cancellation", func(t *testing.T) {
		sweeper := &mockSweeper{}
		svc := NewMaintenanceService(sweeper)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() {
			done <- svc.Serve(ctx)
		}()

		// Wait for start with polling (more reliable in CI under load)
		for i := 0; i < 10; i++ {
			time.Sleep(20 * time.Millisecond)
			if sweeper.started.Load() {
				break
			}
		}
		cancel()

		select {
		case err := <-done:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("service did not stop in time")
		}

		if !sweeper.stopped.Load() {
			t.Error("sweeper was not stopped")
		}
	})

	t.Run("propagates start error for restart", func(t *testing.T) {
		expectedErr := errors.New("invalid shorts pattern")
		sweeper := &mockSweeper{startErr: expectedErr}
		svc := NewMaintenanceService(sweeper)

		err := svc.Serve(context.Background())
		if err == nil {
			t.Error("expected error to be propagated")
		}
		if !errors.Is(err, expectedErr) {
			t.Errorf("expected wrapped start error, got %v", err)
		}

		// Sweeper should not be marked as started
		if sweeper.started.Load() {
			t.Error("sweeper should not be started on error")
		}
	})

	t.Run("String returns service name", func(t *testing.T) {
		svc := NewMaintenanceService(&mockSweeper{})
		if svc.String() != "maintenance-sweeper" {
			t.Errorf("expected 'maintenance-sweeper', got %q", svc.String())
		}
	})
}

func TestMaintenanceServiceWithSupervisor(t *testing.T) {
	t.Run("supervisor restarts on start failure", func(t *testing.T) {
		startCount := atomic.Int32{}

		sweeper := &restartableMockSweeper{
			startCount: &startCount,
			failUntil:  2, // Fail first 2 starts
		}
		svc := NewMaintenanceService(sweeper)

		sup := suture.New("maintenance-test", suture.Spec{
			FailureThreshold: 10,
			FailureBackoff:   10 * time.Millisecond,
			Timeout:          100 * time.Millisecond,
		})
		sup.Add(svc)

		ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
		defer cancel()

		go func() {
			if err := sup.Serve(ctx); err != nil && err != context.DeadlineExceeded && err != context.Canceled {
				t.Logf("Supervisor serve error (expected during test): %v", err)
			}
		}()
		time.Sleep(200 * time.Millisecond)

		// Should have been started at least 3 times (2 failures + 1 success)
		if startCount.Load() < 3 {
			t.Errorf("expected at least 3 start attempts, got %d", startCount.Load())
		}
	})
}

// restartableMockSweeper fails the first N starts, then succeeds
type restartableMockSweeper struct {
	startCount *atomic.Int32
	stopCount  atomic.Int32
	failUntil  int32
}

func (m *restartableMockSweeper) Start(ctx context.Context) error {
	count := m.startCount.Add(1)
	if count <= m.failUntil {
		return errors.New("simulated start failure")
	}
	return nil
}

func (m *restartableMockSweeper) Stop() {
	m.stopCount.Add(1)
}
