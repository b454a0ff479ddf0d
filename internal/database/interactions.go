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

// AddInteraction appends one interaction to the identity's history. The
// record's ID and CreatedAt are assigned when unset. History is append-only;
// marking the same content twice stores two records.
func (s *Store) AddInteraction(ctx context.Context, interaction *models.Interaction) error {
	identity := models.Identity{UserID: interaction.UserID, SessionID: interaction.SessionID}
	if identity.IsZero() {
		return errors.New("interaction requires a user or session identity")
	}
	if !interaction.Kind.Valid() {
		return fmt.Errorf("invalid interaction kind: %q", interaction.Kind)
	}

	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(interaction)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	start := time.Now()
	key := timestampedKey(interactionKeyPrefix, identity.Key(), interaction.CreatedAt)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	metrics.RecordStoreOperation("set", "interaction", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("set interaction: %w", err)
	}
	return nil
}

// ListInteractions returns the identity's full interaction history in
// chronological order. A zero identity has no history.
func (s *Store) ListInteractions(ctx context.Context, identity models.Identity) ([]models.Interaction, error) {
	if identity.IsZero() {
		return nil, nil
	}

	start := time.Now()
	var interactions []models.Interaction
	scanned := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := identityPrefix(interactionKeyPrefix, identity.Key())
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			scanned++
			var interaction models.Interaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &interaction)
			})
			if err != nil {
				return fmt.Errorf("unmarshal interaction: %w", err)
			}
			interactions = append(interactions, interaction)
		}
		return nil
	})
	metrics.RecordStoreOperation("scan", "interaction", time.Since(start), err)
	metrics.StoreKeysScanned.WithLabelValues("interaction").Add(float64(scanned))
	if err != nil {
		return nil, err
	}
	return interactions, nil
}
