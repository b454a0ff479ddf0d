// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package cache provides thread-safe in-memory caching with TTL support.

This package implements a simple caching layer in front of the Badger
catalog: pair selection and exclusion resolution hit the same small set
of content records on every request, and content metadata is immutable
once ingested, so short-TTL positive caching removes most store reads
without a staleness risk.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex)
  - Time-to-live (TTL) expiration for automatic cleanup
  - Simple key-value storage with any value type (interface{})
  - Lazy expiration checking (on Get operations)
  - Hit/miss/eviction statistics for monitoring

# Use Cases

Primary use cases:
  - Catalog lookups by internal ID or IMDb ID (5-minute TTL)
  - Candidate pools for pair selection (per content type)

Negative lookups are never cached. An identifier that misses the catalog
today may be ingested tomorrow, and exclusion resolution depends on the
distinction between a resolved item and an orphan reference.

# Usage Example

Basic caching:

	import "github.com/tomtom215/cineduel/internal/cache"

	// Create cache with 5-minute default TTL
	c := cache.New(5 * time.Minute)

	// Store value
	c.Set("content:"+id, item)

	// Retrieve value
	if value, ok := c.Get("content:" + id); ok {
	    item := value.(*models.Content)
	    // Use cached item
	}

	// Delete specific key
	c.Delete("content:" + id)

# Thread Safety

All operations are safe for concurrent use. A background goroutine
removes expired entries every 5 minutes; expired entries are also
removed lazily on access.
*/
package cache
