// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package database provides the BadgerDB-backed persistence layer.

All application state lives in a single Badger instance: the content
catalog, per-identity interaction and vote history, and pushed
recommendation sets. Values are JSON documents (goccy/go-json); keys are
colon-separated strings grouped into keyspaces by prefix.

# Keyspaces

	content:<id>                                  catalog entry (JSON)
	content_ref:<catalog_id>                      catalog id -> internal id
	interaction:<identity>:<ts>:<suffix>          interaction (JSON)
	vote:<identity>:<ts>:<suffix>                 vote (JSON)
	rec:<identity>:<content_id>                   recommendation (JSON)

<identity> is "u:<user_id>" for authenticated users or "s:<session_id>"
for guests (see models.Identity.Key). <ts> is the creation time in
nanoseconds, zero-padded to 20 digits so prefix iteration yields
chronological order. <suffix> is 8 random hex characters to keep
same-nanosecond writes from colliding.

# Lookup semantics

Content is addressable by either identifier. GetContent resolves an
internal id and returns ErrContentNotFound on absence; ContentByAnyID
tries the internal id first, then the content_ref index, and reports
absence as (nil, nil) - callers that treat unresolved references as data
rather than failure (the exclusion resolver) need absence to be
non-exceptional.

# Catalog cache

ContentByAnyID and GetContent consult an optional TTL cache for resolved
entries. Only successful lookups are cached: a negative result would hide
newly seeded content for up to a TTL. Writes and deletes invalidate both
of the entry's identifiers.

# Usage

	store, err := database.Open(&cfg.Database, cfg.Pairing.CatalogCacheTTL)
	if err != nil {
	    return err
	}
	defer store.Close()

	content, err := store.ContentByAnyID(ctx, "tt0775367")

Run RunGC periodically (the supervisor owns the schedule); Badger only
reclaims value-log space when asked.
*/
package database
