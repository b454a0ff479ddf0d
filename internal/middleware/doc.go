// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

/*
Package middleware provides HTTP middleware for the CineDuel API.

The components here are router-agnostic, shaped as
func(http.HandlerFunc) http.HandlerFunc; the api package adapts them into
chi's func(http.Handler) http.Handler form where needed.

Components:

  - RequestID: X-Request-ID propagation (honors upstream proxy IDs) plus
    request/correlation ids in the logging context
  - PrometheusMetrics: request counts, latency histograms, active-request
    gauge, and a slow-request warning log
  - Compression: pooled gzip for clients that accept it; WebSocket
    upgrades pass through untouched
  - Recovery: panic recovery with a structured log (stack included) and a
    sanitized JSON 500

CORS and rate limiting are not implemented here: the api package wires
go-chi/cors and go-chi/httprate directly, which are the production-hardened
versions of those concerns.
*/
package middleware
