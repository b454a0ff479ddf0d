// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package implements application instrumentation using the Prometheus client
library, exposing metrics for monitoring performance, errors, and system health.

# Overview

The package provides metrics for:
  - HTTP request latency and throughput
  - Badger store operation performance
  - Pair selection and exclusion resolution
  - Vote and interaction throughput
  - Recommendation serving
  - Cache hit/miss rates
  - WebSocket connection counts
  - Maintenance sweeps

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8317/metrics

# Available Metrics

API Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Store Metrics:
  - badger_operation_duration_seconds: Store operation time (histogram)
    Labels: operation (get, set, scan, delete), keyspace
  - badger_operation_errors_total: Failed operations (counter)
    Labels: operation, keyspace, error_type
  - badger_gc_runs_total: Value-log GC runs (counter)
    Labels: result (reclaimed, nothing, error)
  - badger_keys_scanned_total: Keys visited by prefix scans (counter)
    Labels: keyspace

Pairing Metrics:
  - pair_selection_duration_seconds: Selection latency (histogram)
  - pair_selection_attempts: Random draws per selection (histogram)
    Buckets: 1, 2, 5, 10, 20, 30, 40, 50
  - pair_selection_fallbacks_total: Selections that fell back to a voted pair (counter)
  - pair_selection_exhausted_total: Selections with no eligible pair (counter)
  - pairs_served_total: Pairs handed to clients (counter)
    Labels: kind (fresh, replacement)

Exclusion Metrics:
  - exclusion_resolve_duration_seconds: Resolution latency (histogram)
  - exclusion_set_size: Identifiers per resolved set (histogram)
  - exclusion_orphan_refs_total: References with no catalog entry (counter)

Vote Metrics:
  - votes_recorded_total: Votes recorded (counter)
    Labels: content_type (movie, series)
  - interactions_recorded_total: Interactions recorded (counter)
    Labels: kind (watched, not_interested, passed, want_to_watch)

Identity Metrics:
  - identity_resolutions_total: Identity resolutions (counter)
    Labels: source (jwt, session, anonymous)
  - jwt_validation_failures_total: Rejected bearer tokens (counter)
    Labels: reason (expired, signature, malformed, no_subject)

Cache Metrics:
  - cache_hits_total / cache_misses_total / cache_evictions_total (counters)
    Labels: cache_type
  - cache_entries: Current cached entries (gauge)
    Labels: cache_type

Maintenance Metrics:
  - maintenance_sweep_duration_seconds: Sweep duration (histogram)
    Labels: sweep (shorts, dedupe)
  - maintenance_items_removed_total: Removed entries (counter)
    Labels: sweep
  - maintenance_last_success_timestamp: Unix timestamp of last cycle (gauge)

# Usage Example

Recording store metrics around a Badger transaction:

	start := time.Now()
	err := db.View(func(txn *badger.Txn) error { ... })
	metrics.RecordStoreOperation("get", "content", time.Since(start), err)

Recording API metrics from middleware:

	duration := time.Since(start)
	metrics.RecordAPIRequest(r.Method, routePattern, strconv.Itoa(status), duration)

# Prometheus Configuration

Example prometheus.yml configuration:

	scrape_configs:
	  - job_name: 'cineduel'
	    static_configs:
	      - targets: ['localhost:8317']
	    metrics_path: '/metrics'
	    scrape_interval: 15s

Example PromQL queries:

	# API request rate
	rate(api_requests_total[5m])

	# API p95 latency
	histogram_quantile(0.95, rate(api_request_duration_seconds_bucket[5m]))

	# Pair fallback ratio
	rate(pair_selection_fallbacks_total[5m]) / rate(pair_selection_duration_seconds_count[5m])

	# Catalog cache hit rate
	sum(rate(cache_hits_total[5m])) / (sum(rate(cache_hits_total[5m])) + sum(rate(cache_misses_total[5m])))

# Thread Safety

All metric recording functions are thread-safe and designed for concurrent use
from multiple goroutines. The Prometheus client library handles synchronization
internally.

# Cardinality Management

To prevent high cardinality issues:

  - Endpoint labels use chi route patterns, never raw URLs
  - Store error types are truncated to 50 characters
  - User and session identifiers never appear as label values

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/database: Store metrics recording
  - internal/maintenance: Sweep metrics recording
  - https://prometheus.io/docs/practices/naming/: Metric naming conventions
*/
package metrics
