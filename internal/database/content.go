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

// PutContent stores a catalog entry and, when the entry carries a catalog
// id, the content_ref index pointing back at it. ID must be set; callers
// ingesting external data assign ids before storing (see LoadCatalogFile).
func (s *Store) PutContent(ctx context.Context, content *models.Content) error {
	start := time.Now()

	if content.ID == "" {
		return errors.New("content id is required")
	}

	data, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(contentKey(content.ID), data); err != nil {
			return fmt.Errorf("set content: %w", err)
		}
		if content.IMDBID != "" {
			if err := txn.Set(contentRefKey(content.IMDBID), []byte(content.ID)); err != nil {
				return fmt.Errorf("set content ref: %w", err)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("set", "content", time.Since(start), err)
	if err != nil {
		return err
	}

	s.cacheStore(content)
	return nil
}

// GetContent resolves an internal content id. Returns ErrContentNotFound
// when the id is unknown.
func (s *Store) GetContent(ctx context.Context, id string) (*models.Content, error) {
	if content, ok := s.cacheLookup(id); ok {
		return content, nil
	}

	start := time.Now()
	var content models.Content

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(contentKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrContentNotFound
		}
		if err != nil {
			return fmt.Errorf("get content: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &content)
		})
	})
	if errors.Is(err, ErrContentNotFound) {
		// Not-found is an answer, not a store failure
		metrics.RecordStoreOperation("get", "content", time.Since(start), nil)
		return nil, err
	}
	metrics.RecordStoreOperation("get", "content", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	s.cacheStore(&content)
	return &content, nil
}

// ContentByAnyID resolves a content reference by either identifier scheme:
// the internal id first, then the catalog-id index. Absence is reported as
// (nil, nil), not an error - interaction references routinely point at
// items that never made it into this catalog, and callers keep those
// references as literals rather than failing.
func (s *Store) ContentByAnyID(ctx context.Context, ref string) (*models.Content, error) {
	if ref == "" {
		return nil, nil
	}

	if content, ok := s.cacheLookup(ref); ok {
		return content, nil
	}

	start := time.Now()
	var content *models.Content

	err := s.db.View(func(txn *badger.Txn) error {
		// Internal id first
		item, err := txn.Get(contentKey(ref))
		if err == nil {
			content = &models.Content{}
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, content)
			})
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("get content: %w", err)
		}

		// Then the catalog-id index
		refItem, err := txn.Get(contentRefKey(ref))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil // unresolved reference
		}
		if err != nil {
			return fmt.Errorf("get content ref: %w", err)
		}

		var internalID string
		if err := refItem.Value(func(val []byte) error {
			internalID = string(val)
			return nil
		}); err != nil {
			return err
		}

		item, err = txn.Get(contentKey(internalID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Dangling index entry; treat as unresolved
			return nil
		}
		if err != nil {
			return fmt.Errorf("get content: %w", err)
		}
		content = &models.Content{}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, content)
		})
	})
	metrics.RecordStoreOperation("get", "content", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	s.cacheStore(content)
	return content, nil
}

// ListContentByType returns all catalog entries of one content type.
func (s *Store) ListContentByType(ctx context.Context, contentType models.ContentType) ([]models.Content, error) {
	start := time.Now()
	var items []models.Content
	scanned := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(contentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			scanned++
			var content models.Content
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &content)
			})
			if err != nil {
				return fmt.Errorf("unmarshal content: %w", err)
			}
			if content.ContentType == contentType {
				items = append(items, content)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("scan", "content", time.Since(start), err)
	metrics.StoreKeysScanned.WithLabelValues("content").Add(float64(scanned))
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AllContent returns every catalog entry. Used by maintenance sweeps.
func (s *Store) AllContent(ctx context.Context) ([]models.Content, error) {
	start := time.Now()
	var items []models.Content

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(contentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var content models.Content
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &content)
			})
			if err != nil {
				return fmt.Errorf("unmarshal content: %w", err)
			}
			items = append(items, content)
		}
		return nil
	})
	metrics.RecordStoreOperation("scan", "content", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteContent removes a catalog entry and its content_ref index entry.
// Deleting an unknown id is a no-op. Interaction and vote history referring
// to the id is left in place; the references simply stop resolving.
func (s *Store) DeleteContent(ctx context.Context, id string) error {
	// Fetch first to learn the catalog id for index cleanup
	content, err := s.GetContent(ctx, id)
	if errors.Is(err, ErrContentNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	start := time.Now()
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(contentKey(id)); err != nil {
			return fmt.Errorf("delete content: %w", err)
		}
		if content.IMDBID != "" {
			if err := txn.Delete(contentRefKey(content.IMDBID)); err != nil {
				return fmt.Errorf("delete content ref: %w", err)
			}
		}
		return nil
	})
	metrics.RecordStoreOperation("delete", "content", time.Since(start), err)
	if err != nil {
		return err
	}

	s.cacheInvalidate(content)
	return nil
}

// CountContent returns the number of catalog entries.
func (s *Store) CountContent(ctx context.Context) (int, error) {
	count := 0

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(contentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// cacheLookup checks the catalog cache under either identifier.
func (s *Store) cacheLookup(ref string) (*models.Content, bool) {
	if s.catalogCache == nil {
		return nil, false
	}
	entry, ok := s.catalogCache.Get(contentKeyPrefix + ref)
	if !ok {
		metrics.CacheMisses.WithLabelValues("catalog").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("catalog").Inc()
	content, ok := entry.(models.Content)
	if !ok {
		return nil, false
	}
	// Copy per call so callers never share cache memory
	return &content, true
}

// cacheStore caches a resolved entry under both identifiers.
func (s *Store) cacheStore(content *models.Content) {
	if s.catalogCache == nil || content == nil {
		return
	}
	for _, ref := range content.Identifiers() {
		s.catalogCache.Set(contentKeyPrefix+ref, *content)
	}
	metrics.CacheSize.WithLabelValues("catalog").Set(float64(s.catalogCache.GetStats().TotalKeys))
}

// cacheInvalidate drops an entry from the cache under both identifiers.
func (s *Store) cacheInvalidate(content *models.Content) {
	if s.catalogCache == nil || content == nil {
		return
	}
	for _, ref := range content.Identifiers() {
		s.catalogCache.Delete(contentKeyPrefix + ref)
	}
}
