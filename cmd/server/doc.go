// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package main is the entry point for the CineDuel server application.

CineDuel is a self-hosted pairwise voting service for movie and series
catalogs. It serves random head-to-head pairs, records votes and watch-state
interactions, and gates externally computed recommendations behind a vote
threshold. Exclusion filtering guarantees an identity is never shown content
it has already watched, passed on, or started watching.

# Application Architecture

The server implements a layered architecture with Suture v4 process supervision:

	RootSupervisor ("cineduel")
	├── StoreSupervisor ("store-layer")
	│   ├── Store GC (BadgerDB value-log garbage collection)
	│   └── Maintenance sweeper (optional, MAINTENANCE_ENABLED)
	├── MessagingSupervisor ("messaging-layer")
	│   └── WebSocket Hub (live vote/interaction events)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API)

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Store: BadgerDB document store (catalog, interactions, votes, recommendations)
 4. Catalog seeding: optional JSON file and/or built-in demo catalog
 5. Identity: JWT bearer verification plus anonymous session identifiers
 6. Domain services: exclusion resolver, pair selector, recommendation gate,
    maintenance sweeper
 7. WebSocket Hub: real-time vote and interaction broadcasts
 8. Supervisor Tree: Suture v4 process supervision
 9. HTTP Server: Chi router with middleware stack

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
  - Environment variables (HTTP_PORT, BADGER_PATH, JWT_SECRET, ...)
  - Config file (config.yaml)
  - Built-in defaults

Identity is optional per request: authenticated callers send a bearer token
verified against JWT_SECRET, anonymous callers send a session_id. Admin
endpoints are enabled only when ADMIN_TOKEN is set.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Cancels the supervisor tree context
  - HTTP server drains in-flight requests (10s timeout)
  - WebSocket hub closes connected clients
  - Maintenance sweeper and GC loop stop, then the store is closed

# Example Usage

Development with the demo catalog:

	export SEED_MOCK_DATA=true
	export LOG_FORMAT=console
	./cineduel

Production:

	export BADGER_PATH=/data/cineduel
	export CATALOG_SEED_PATH=/data/catalog.json
	export JWT_SECRET=$(openssl rand -base64 32)
	export ADMIN_TOKEN=$(openssl rand -hex 16)
	export CORS_ORIGINS=https://cineduel.example.com
	export ENVIRONMENT=production
	./cineduel

Docker:

	docker run -d \
	  -v cineduel-data:/data/cineduel \
	  -e JWT_SECRET=your-secret \
	  -p 8317:8317 \
	  ghcr.io/tomtom215/cineduel
*/
package main
