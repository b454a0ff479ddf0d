// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/cineduel/internal/config"
	"github.com/tomtom215/cineduel/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so the internal/middleware stack works
// with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router wires the handler set into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router for the given handler set.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	var secCfg *config.SecurityConfig
	if cfg != nil {
		secCfg = &cfg.Security
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddlewareFromConfig(secCfg),
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order. CORS must be
	// global so OPTIONS preflights resolve before routing.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chiMiddleware(middleware.Recovery))
	r.Use(router.chiMiddleware.CORS())

	// Unknown routes and wrong methods answer in the standard envelope so
	// clients never have to parse a plain-text chi default.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusNotFound, CodeNotFound, "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		respondError(w, req, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed", nil)
	})

	// Probes stay outside the API budget so monitoring never trips the
	// default limiter.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom(RateLimitHealth))
		r.Get("/health", router.handler.Health)
		r.Get("/ready", router.handler.Ready)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))

		// Pairing
		r.Get("/pair", router.handler.Pair)
		r.Get("/pair/replacement/{id}", router.handler.PairReplacement)

		// History writes
		r.Post("/vote", router.handler.Vote)
		r.Post("/pass", router.handler.Pass)
		r.Post("/content/interact", router.handler.Interact)

		// Catalog reads
		r.Get("/content/{id}", router.handler.ContentByID)
		r.Get("/content/{id}/user-status", router.handler.UserContentStatus)

		// Per-identity reads
		r.Get("/stats", router.handler.Stats)
		r.Get("/recommendations", router.handler.Recommendations)
		r.Get("/watchlist", router.handler.Watchlist)

		// Live event feed
		r.Get("/live", router.handler.Live)

		// Admin surface, key-gated per request
		r.Route("/admin", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitCustom(RateLimitAdmin))
			r.Post("/recommendations",
				router.handler.requireAdmin(router.handler.AdminPushRecommendations))
			r.Post("/maintenance/shorts-sweep",
				router.handler.requireAdmin(router.handler.AdminShortsSweep))
			r.Post("/maintenance/dedupe-recommendations",
				router.handler.requireAdmin(router.handler.AdminDedupeRecommendations))
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
