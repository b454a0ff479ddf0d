// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package api provides the HTTP REST API layer for CineDuel.

This package implements the voting surface: pair serving, vote and
interaction recording, per-identity stats, recommendation serving, watchlist,
and the admin/maintenance operations. It is the only layer that talks HTTP;
everything below it works in terms of identities and content.

Key Components:

  - Router: Chi route configuration and middleware stack integration
  - Handler: Request handlers for all endpoints
  - Response formatting: Standardized JSON envelope with metadata
  - Error handling: Stable error codes mapped from package sentinels
  - Identity extraction: Bearer JWT (authenticated) or session_id (guest)

API Categories:

 1. Pairing (/api/v1/pair): fresh head-to-head pairs and single-item
    replacement, both filtered through the identity's exclusion set.

 2. Voting (/api/v1/vote, /api/v1/pass, /api/v1/content/interact): append
    vote and interaction records and broadcast live events.

 3. Content (/api/v1/content): catalog lookup by either identifier and
    per-identity content status.

 4. Stats and Recommendations (/api/v1/stats, /api/v1/recommendations,
    /api/v1/watchlist): vote countdown, the gated recommendation list, and
    the want_to_watch list.

 5. Admin (/api/v1/admin): recommendation set push from the external
    pipeline and on-demand maintenance sweeps. Guarded by X-Admin-Key.

 6. Live feed (/api/v1/live): WebSocket stream of vote/interaction events.

Exclusion contract:

Every serving endpoint (pair, replacement, recommendations) resolves the
identity's exclusion state per request and filters against it. A store
failure during resolution fails the request with STORE_ERROR; no endpoint
ever falls back to serving unfiltered content.

Thread Safety:

All handlers are safe for concurrent request handling. Shared resources
(store, WebSocket hub, selector) are protected by their own synchronization.
*/
package api
