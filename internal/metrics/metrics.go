// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus Metrics Integration for Production Observability
// This package provides instrumentation for:
// - Badger key-value store performance
// - API endpoint latency and throughput
// - Pair selection and exclusion resolution
// - Vote and interaction throughput
// - Cache efficiency
// - WebSocket connections
// - Maintenance sweeps

var (
	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "badger_operation_duration_seconds",
			Help:    "Duration of Badger store operations in seconds",
			Buckets: prometheus.DefBuckets, // 0.005s, 0.01s, 0.025s, 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s
		},
		[]string{"operation", "keyspace"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badger_operation_errors_total",
			Help: "Total number of Badger store operation errors",
		},
		[]string{"operation", "keyspace", "error_type"},
	)

	StoreGCRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badger_gc_runs_total",
			Help: "Total number of value-log garbage collection runs",
		},
		[]string{"result"}, // "reclaimed", "nothing", "error"
	)

	StoreKeysScanned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badger_keys_scanned_total",
			Help: "Total number of keys visited by prefix scans",
		},
		[]string{"keyspace"}, // "interaction", "vote", "rec", "content"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Pair Selection Metrics
	PairSelectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pair_selection_duration_seconds",
			Help:    "Duration of pair selection in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	PairSelectionAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pair_selection_attempts",
			Help:    "Number of random draws needed to find an unvoted pair",
			Buckets: []float64{1, 2, 5, 10, 20, 30, 40, 50},
		},
	)

	PairFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pair_selection_fallbacks_total",
			Help: "Total number of selections that exhausted random probing and fell back to an already-voted pair",
		},
	)

	PairExhausted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pair_selection_exhausted_total",
			Help: "Total number of selections that found no eligible pair at all",
		},
	)

	PairsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pairs_served_total",
			Help: "Total number of pairs served",
		},
		[]string{"kind"}, // "fresh", "replacement"
	)

	// Exclusion Resolution Metrics
	ExclusionResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exclusion_resolve_duration_seconds",
			Help:    "Duration of exclusion set resolution in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	ExclusionSetSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exclusion_set_size",
			Help:    "Number of identifiers in resolved exclusion sets",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	ExclusionOrphanRefs = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exclusion_orphan_refs_total",
			Help: "Total number of interaction references with no catalog entry",
		},
	)

	// Vote and Interaction Metrics
	VotesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "votes_recorded_total",
			Help: "Total number of votes recorded",
		},
		[]string{"content_type"}, // "movie", "series"
	)

	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_recorded_total",
			Help: "Total number of content interactions recorded",
		},
		[]string{"kind"}, // "watched", "not_interested", "passed", "want_to_watch"
	)

	// Identity Metrics
	IdentityResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "identity_resolutions_total",
			Help: "Total number of request identity resolutions",
		},
		[]string{"source"}, // "jwt", "session", "anonymous"
	)

	JWTValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jwt_validation_failures_total",
			Help: "Total number of rejected bearer tokens",
		},
		[]string{"reason"}, // "expired", "signature", "malformed", "no_subject"
	)

	// Recommendation Metrics
	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation documents served",
		},
	)

	RecommendationDocsPushed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_docs_pushed_total",
			Help: "Total number of recommendation documents pushed by the admin surface",
		},
	)

	RecommendationThresholdBlocks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_threshold_blocks_total",
			Help: "Total number of recommendation requests rejected below the vote threshold",
		},
	)

	// Cache Metrics (General)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "catalog"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions (TTL expiry)",
		},
		[]string{"cache_type"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSMessagesDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_dropped_total",
			Help: "Total number of WebSocket messages dropped on slow clients",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// Maintenance Metrics
	MaintenanceSweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maintenance_sweep_duration_seconds",
			Help:    "Duration of maintenance sweeps in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600}, // Sweeps iterate the whole store
		},
		[]string{"sweep"}, // "shorts", "dedupe"
	)

	MaintenanceItemsRemoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_items_removed_total",
			Help: "Total number of entries removed by maintenance sweeps",
		},
		[]string{"sweep"},
	)

	MaintenanceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintenance_errors_total",
			Help: "Total number of maintenance sweep errors",
		},
		[]string{"sweep"},
	)

	MaintenanceLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "maintenance_last_success_timestamp",
			Help: "Unix timestamp of last successful maintenance cycle",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordStoreOperation records a Badger store operation metric
func RecordStoreOperation(operation, keyspace string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation, keyspace).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages to keep label cardinality bounded
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		StoreOperationErrors.WithLabelValues(operation, keyspace, errorType).Inc()
	}
}

// RecordStoreGC records a value-log garbage collection run
func RecordStoreGC(reclaimed bool, err error) {
	switch {
	case err != nil:
		StoreGCRuns.WithLabelValues("error").Inc()
	case reclaimed:
		StoreGCRuns.WithLabelValues("reclaimed").Inc()
	default:
		StoreGCRuns.WithLabelValues("nothing").Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPairSelection records a completed pair selection. attempts is the
// number of random draws consumed; fallback reports whether probing
// exhausted and an already-voted pair was served instead.
func RecordPairSelection(duration time.Duration, attempts int, fallback bool) {
	PairSelectionDuration.Observe(duration.Seconds())
	PairSelectionAttempts.Observe(float64(attempts))
	if fallback {
		PairFallbacks.Inc()
	}
}

// RecordPairExhausted records a selection that found no eligible pair
func RecordPairExhausted() {
	PairExhausted.Inc()
}

// RecordPairServed records a pair handed to a client
func RecordPairServed(kind string) {
	PairsServed.WithLabelValues(kind).Inc()
}

// RecordExclusionResolve records an exclusion set resolution
func RecordExclusionResolve(duration time.Duration, setSize, orphanRefs int) {
	ExclusionResolveDuration.Observe(duration.Seconds())
	ExclusionSetSize.Observe(float64(setSize))
	if orphanRefs > 0 {
		ExclusionOrphanRefs.Add(float64(orphanRefs))
	}
}

// RecordVote records a recorded vote by content type
func RecordVote(contentType string) {
	VotesRecorded.WithLabelValues(contentType).Inc()
}

// RecordInteraction records a content interaction by kind
func RecordInteraction(kind string) {
	InteractionsRecorded.WithLabelValues(kind).Inc()
}

// RecordIdentity records how a request identity was resolved
func RecordIdentity(source string) {
	IdentityResolutions.WithLabelValues(source).Inc()
}

// RecordJWTFailure records a rejected bearer token, classifying the reason
// from the validation error message
func RecordJWTFailure(err error) {
	reason := "malformed"
	if err != nil {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "expired"):
			reason = "expired"
		case strings.Contains(msg, "signature"):
			reason = "signature"
		case strings.Contains(msg, "subject"):
			reason = "no_subject"
		}
	}
	JWTValidationFailures.WithLabelValues(reason).Inc()
}

// RecordRecommendationsServed records documents returned to a client
func RecordRecommendationsServed(count int) {
	RecommendationsServed.Add(float64(count))
}

// RecordRecommendationPush records documents accepted from the admin surface
func RecordRecommendationPush(docs int) {
	RecommendationDocsPushed.Add(float64(docs))
}

// RecordThresholdBlock records a recommendation request rejected below the
// vote threshold
func RecordThresholdBlock() {
	RecommendationThresholdBlocks.Inc()
}

// RecordMaintenanceSweep records a maintenance sweep and its outcome
func RecordMaintenanceSweep(sweep string, duration time.Duration, itemsRemoved int, err error) {
	MaintenanceSweepDuration.WithLabelValues(sweep).Observe(duration.Seconds())
	if err != nil {
		MaintenanceErrors.WithLabelValues(sweep).Inc()
		return
	}
	MaintenanceItemsRemoved.WithLabelValues(sweep).Add(float64(itemsRemoved))
	MaintenanceLastSuccess.Set(float64(time.Now().Unix()))
}
