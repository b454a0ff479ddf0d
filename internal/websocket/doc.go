// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package websocket provides the real-time event feed behind /api/v1/live.

This package broadcasts voting activity to connected frontend clients so
open duel screens can update their tickers without polling. It uses the
gorilla/websocket library with a hub-client architecture for efficient
message broadcasting.

Key Components:

  - Hub: Central message broker that manages client connections and broadcasts
  - Client: Represents a single WebSocket connection with read/write goroutines
  - Message: Typed message structure for different event types

Architecture:

The package implements a hub-and-spoke pattern:

	┌──────────┐
	│   Hub    │ ← Broadcasts to all clients
	└────┬─────┘
	     │
	┌────┴─────┬─────────┬─────────┐
	│          │         │         │
	│ Client1  │ Client2 │ Client3 │ Client4
	│          │         │         │
	└──────────┴─────────┴─────────┘

Each client has two goroutines:
  - readPump: Reads from WebSocket, handles pings
  - writePump: Writes to WebSocket, sends pongs

Message Types:

The following message types are supported:

  - vote_recorded: A duel vote was recorded (winner_id, loser_id, total_votes)
  - interaction_recorded: A content interaction was recorded (content_id, kind)
  - ping/pong: Application-level keepalive

Every connected client receives every event, so broadcast payloads carry
content identifiers only, never the user or session that produced them.

Usage Example - Server:

	import (
	    "github.com/tomtom215/cineduel/internal/websocket"
	    "net/http"
	)

	// Create hub from config and run it under supervision
	hub := websocket.NewHub(&cfg.WebSocket)
	go hub.RunWithContext(ctx)

	// Broadcast a recorded vote
	hub.BroadcastVoteRecorded(vote, totalVotes)

Usage Example - Client (JavaScript):

	const ws = new WebSocket('ws://localhost:8317/api/v1/live');

	ws.onmessage = (event) => {
	    const msg = JSON.parse(event.data);

	    if (msg.type === 'vote_recorded') {
	        updateTicker(msg.data.winner_id, msg.data.total_votes);
	    }

	    if (msg.type === 'interaction_recorded') {
	        refreshUserStatus(msg.data.content_id);
	    }
	};

Configuration:

Timing comes from config.WebSocketConfig:
  - PingInterval: ping period for idle connections (default 30s)
  - WriteTimeout: per-message write deadline (default 10s)
  - MaxMessageSize: max inbound message bytes (default 512)

The pong wait is always twice the ping interval, so a client survives one
missed pong before being declared dead. Inbound messages from clients are
limited to application-level pings, which is why the inbound size limit is
small.

Connection Lifecycle:

1. Client connects via HTTP upgrade on /api/v1/live
2. Hub registers client
3. Client starts read/write goroutines
4. Hub broadcasts messages to all clients
5. Client disconnects (network error or explicit close)
6. Hub unregisters client and cleans up

Thread Safety:

The package is fully thread-safe:
  - Hub uses mutex for client map access
  - Channels coordinate goroutine communication
  - Each client has separate read/write goroutines
  - No shared mutable state between clients

Error Handling:

The package handles:
  - Read errors: Closes connection gracefully
  - Write errors: Removes client from hub
  - Slow clients: Evicted when their send buffer fills
  - Ping/pong timeout: Detects dead connections

See Also:

  - github.com/gorilla/websocket: Underlying WebSocket library
  - internal/api: WebSocket endpoint handler
*/
package websocket
