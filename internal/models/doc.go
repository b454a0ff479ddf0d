// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package models defines data structures for the CineDuel application.

This package contains all data models used throughout the application:
store documents, API request/response structures, and internal data
transfer objects. It is the single source of truth for data structure
definitions and has no dependencies on other internal packages.

Key Components:

  - Content: Catalog entry carrying BOTH identifier schemes (internal id
    and IMDB catalog id) plus descriptive metadata
  - Interaction: A user action on a content item (watched, not_interested,
    passed, want_to_watch), recorded under whichever identifier the write
    path used
  - Vote: A completed pairwise comparison (winner/loser by internal id)
  - Recommendation: A scored content entry pushed by the external
    recommendation pipeline
  - APIResponse: Standardized API response wrapper

Model Categories:

1. Store Documents:
  - Content, Interaction, Vote, Recommendation
  - Serialized as JSON values under prefixed BadgerDB keys

2. API Request Models:
  - VoteRequest, PassRequest, InteractionRequest, PushRecommendationsRequest
  - Validated with go-playground/validator struct tags at the handler
    boundary

3. API Response Models:
  - APIResponse: Standard response wrapper (status/data/metadata/error)
  - PairResponse, VoteResult, UserStats, UserContentStatus,
    RecommendationsPage, WatchlistPage

Identifier Semantics:

Content items carry two independent identifiers: an internally generated
UUID (ID) and an externally sourced catalog id (IMDBID). Both are unique
keys into the catalog. Interactions reference content by EITHER identifier
(ContentRef); votes reference content by internal id only, because the
pairing endpoints hand out internal ids. The exclusion package reconciles
the two schemes; models only carry them.

Usage Example - Store Document:

	item := &models.Content{
	    ID:          uuid.New().String(),
	    IMDBID:      "tt1375666",
	    Title:       "Inception",
	    Year:        "2010",
	    ContentType: models.ContentTypeMovie,
	    Genre:       "Action, Sci-Fi, Thriller",
	    CreatedAt:   time.Now().UTC(),
	}

Usage Example - API Response:

	response := models.APIResponse{
	    Status: "success",
	    Data:   models.VoteResult{VoteRecorded: true, TotalVotes: 7},
	    Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}

Thread Safety:

All models are plain data structures: immutable after creation by
convention, safe for concurrent reads, no internal locking.

JSON Marshaling:

All models serialize with goccy/go-json using snake_case struct tags;
time.Time fields use RFC3339. The same representation is used on the wire
and in the store.

See Also:

  - internal/database: BadgerDB stores persisting these models
  - internal/exclusion: identity reconciliation over Interaction/Vote/Content
  - internal/api: HTTP handlers returning these models
*/
package models
