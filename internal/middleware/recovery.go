// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/tomtom215/cineduel/internal/logging"
)

// panicResponse is the sanitized body a recovered request gets. The panic
// value itself never reaches the client.
const panicResponse = `{"status":"error","error":{"code":"INTERNAL_ERROR","message":"internal server error"}}`

// Recovery turns a handler panic into a structured error log (panic value,
// stack, method, path) and a generic JSON 500. Without it one bad request
// would take the whole serving process down.
func Recovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			// http.ErrAbortHandler is the sanctioned way to abort a
			// response; re-panic so the server handles it normally.
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logging.CtxError(r.Context()).
				Interface("panic", rec).
				Bytes("stack", debug.Stack()).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("Handler panic recovered")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			//nolint:errcheck // nothing left to do if the write fails
			w.Write([]byte(panicResponse))
		}()

		next(w, r)
	}
}
