// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"net/http"
	"strings"

	"github.com/tomtom215/cineduel/internal/metrics"
	"github.com/tomtom215/cineduel/internal/models"
)

// identity resolves the acting identity for a request.
//
// A bearer token always wins: when the Authorization header is present it
// must verify, and a malformed or invalid token fails the request with 401
// rather than silently downgrading to a guest or anonymous identity. Without
// a token the session id is taken from the session_id query parameter, or
// from bodySessionID for endpoints that carry it in the request body. Neither
// being present is not an error; the zero identity is a valid anonymous
// caller.
func (h *Handler) identity(r *http.Request, bodySessionID string) (models.Identity, *models.APIError) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			metrics.RecordJWTFailure(nil)
			return models.Identity{}, &models.APIError{
				Code:    CodeAuthenticationError,
				Message: "Invalid authorization header format",
			}
		}

		userID, err := h.tokens.ValidateToken(parts[1])
		if err != nil {
			metrics.RecordJWTFailure(err)
			return models.Identity{}, &models.APIError{
				Code:    CodeAuthenticationError,
				Message: "Invalid or expired token",
			}
		}

		metrics.RecordIdentity("jwt")
		return models.Identity{UserID: userID}, nil
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = bodySessionID
	}

	if sessionID != "" {
		metrics.RecordIdentity("session")
	} else {
		metrics.RecordIdentity("anonymous")
	}

	return models.Identity{SessionID: sessionID}, nil
}
