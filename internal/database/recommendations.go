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

	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// ReplaceRecommendations swaps an identity's stored recommendation entries
// for the given set in one transaction. Entries keep whatever duplicates the
// pusher sent; the read path and the dedupe sweep apply the
// highest-score-wins rule.
func (s *Store) ReplaceRecommendations(ctx context.Context, identity models.Identity, recs []models.Recommendation) error {
	if identity.IsZero() {
		return errors.New("recommendations require a user or session identity")
	}

	now := time.Now().UTC()
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		// Collect existing keys first; deleting mid-iteration is not safe.
		var stale [][]byte
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		prefix := identityPrefix(recKeyPrefix, identity.Key())
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			stale = append(stale, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range stale {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("delete recommendation: %w", err)
			}
		}

		for i := range recs {
			rec := recs[i]
			rec.UserID = identity.UserID
			rec.SessionID = identity.SessionID
			if rec.GeneratedAt.IsZero() {
				rec.GeneratedAt = now
			}
			data, err := json.Marshal(&rec)
			if err != nil {
				return fmt.Errorf("marshal recommendation: %w", err)
			}
			key := timestampedKey(recKeyPrefix, identity.Key(), rec.GeneratedAt)
			if err := txn.Set(key, data); err != nil {
				return fmt.Errorf("set recommendation: %w", err)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("replace", "recommendation", time.Since(start), err)
	if err != nil {
		return err
	}
	return nil
}

// ListRecommendations returns an identity's stored recommendation entries
// as pushed, duplicates included.
func (s *Store) ListRecommendations(ctx context.Context, identity models.Identity) ([]models.Recommendation, error) {
	if identity.IsZero() {
		return nil, nil
	}

	start := time.Now()
	var recs []models.Recommendation
	scanned := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := identityPrefix(recKeyPrefix, identity.Key())
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			scanned++
			var rec models.Recommendation
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal recommendation: %w", err)
			}
			recs = append(recs, rec)
		}
		return nil
	})
	metrics.RecordStoreOperation("scan", "recommendation", time.Since(start), err)
	metrics.StoreKeysScanned.WithLabelValues("recommendation").Add(float64(scanned))
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// RecommendationIdentities returns every identity that has stored
// recommendation entries, in key order. Used by the dedupe sweep to walk
// the keyspace without exposing key layout.
func (s *Store) RecommendationIdentities(ctx context.Context) ([]models.Identity, error) {
	var identities []models.Identity
	seen := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(recKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec models.Recommendation
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("unmarshal recommendation: %w", err)
			}
			identity := models.Identity{UserID: rec.UserID, SessionID: rec.SessionID}
			if _, ok := seen[identity.Key()]; ok {
				continue
			}
			seen[identity.Key()] = struct{}{}
			identities = append(identities, identity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return identities, nil
}

// DedupeRecommendations compacts one identity's stored entries to a single
// record per content id, keeping the highest score. Ties keep the earliest
// entry. Returns the number of records removed.
func (s *Store) DedupeRecommendations(ctx context.Context, identity models.Identity) (int, error) {
	if identity.IsZero() {
		return 0, nil
	}

	removed := 0
	start := time.Now()

	err := s.db.Update(func(txn *badger.Txn) error {
		type stored struct {
			key []byte
			rec models.Recommendation
		}
		var entries []stored

		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		prefix := identityPrefix(recKeyPrefix, identity.Key())
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec models.Recommendation
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				it.Close()
				return fmt.Errorf("unmarshal recommendation: %w", err)
			}
			entries = append(entries, stored{key: it.Item().KeyCopy(nil), rec: rec})
		}
		it.Close()

		// First entry wins a tie because iteration is chronological.
		keeper := make(map[string]int)
		for i, e := range entries {
			best, ok := keeper[e.rec.ContentID]
			if !ok || e.rec.Score > entries[best].rec.Score {
				keeper[e.rec.ContentID] = i
			}
		}

		for i, e := range entries {
			if keeper[e.rec.ContentID] == i {
				continue
			}
			if err := txn.Delete(e.key); err != nil {
				return fmt.Errorf("delete recommendation: %w", err)
			}
			removed++
		}
		return nil
	})
	metrics.RecordStoreOperation("dedupe", "recommendation", time.Since(start), err)
	if err != nil {
		return 0, err
	}
	return removed, nil
}
