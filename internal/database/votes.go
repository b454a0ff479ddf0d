// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// AddVote appends one head-to-head result to the identity's vote history.
// The record's ID and CreatedAt are assigned when unset.
func (s *Store) AddVote(ctx context.Context, vote *models.Vote) error {
	identity := models.Identity{UserID: vote.UserID, SessionID: vote.SessionID}
	if identity.IsZero() {
		return errors.New("vote requires a user or session identity")
	}
	if vote.WinnerID == "" || vote.LoserID == "" {
		return errors.New("vote requires a winner and a loser")
	}
	if vote.WinnerID == vote.LoserID {
		return errors.New("vote winner and loser must differ")
	}

	if vote.ID == "" {
		vote.ID = uuid.New().String()
	}
	if vote.CreatedAt.IsZero() {
		vote.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("marshal vote: %w", err)
	}

	start := time.Now()
	key := timestampedKey(voteKeyPrefix, identity.Key(), vote.CreatedAt)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	metrics.RecordStoreOperation("set", "vote", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("set vote: %w", err)
	}
	return nil
}

// ListVotes returns the identity's full vote history in chronological
// order. A zero identity has no history.
func (s *Store) ListVotes(ctx context.Context, identity models.Identity) ([]models.Vote, error) {
	if identity.IsZero() {
		return nil, nil
	}

	start := time.Now()
	var votes []models.Vote
	scanned := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := identityPrefix(voteKeyPrefix, identity.Key())
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			scanned++
			var vote models.Vote
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &vote)
			})
			if err != nil {
				return fmt.Errorf("unmarshal vote: %w", err)
			}
			votes = append(votes, vote)
		}
		return nil
	})
	metrics.RecordStoreOperation("scan", "vote", time.Since(start), err)
	metrics.StoreKeysScanned.WithLabelValues("vote").Add(float64(scanned))
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// CountVotes returns the identity's vote total without loading the records.
// Cheaper than ListVotes for threshold checks.
func (s *Store) CountVotes(ctx context.Context, identity models.Identity) (int, error) {
	if identity.IsZero() {
		return 0, nil
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := identityPrefix(voteKeyPrefix, identity.Key())
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}
