// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/metrics"
)

// slowRequestThreshold is the latency above which a request gets a warning
// log in addition to its histogram sample. Pair selection and resolution
// are expected to finish well under this.
const slowRequestThreshold = time.Second

// PrometheusMetrics instruments a handler: active-request gauge, request
// counter and latency histogram by method/path/status, and a warning log
// for requests slower than slowRequestThreshold.
func PrometheusMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		wrapper := &statusResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next(wrapper, r)

		duration := time.Since(start)
		metrics.RecordAPIRequest(r.Method, r.URL.Path, strconv.Itoa(wrapper.statusCode), duration)

		if duration > slowRequestThreshold {
			logging.CtxWarn(r.Context()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", wrapper.statusCode).
				Dur("duration", duration).
				Msg("Slow request")
		}
	}
}

// statusResponseWriter captures the status code for metrics and logging.
// Handlers that never call WriteHeader implicitly report 200.
type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
