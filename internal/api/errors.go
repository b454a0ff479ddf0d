// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package api provides HTTP handlers for the CineDuel application.
//
// errors.go - Stable API error codes
//
// Clients branch on these codes, never on messages. Adding a code is fine;
// renaming one is a breaking change.
package api

// API error codes returned in the error envelope.
const (
	// CodeValidationError indicates invalid request input.
	CodeValidationError = "VALIDATION_ERROR"

	// CodeInvalidRequest indicates a malformed request body.
	CodeInvalidRequest = "INVALID_REQUEST"

	// CodeAuthenticationError indicates a malformed or invalid Bearer token.
	// An absent token is never an error; requests degrade to guest identity.
	CodeAuthenticationError = "AUTHENTICATION_ERROR"

	// CodeAdminDisabled indicates the admin surface is not configured.
	CodeAdminDisabled = "ADMIN_DISABLED"

	// CodeForbidden indicates a wrong admin API key.
	CodeForbidden = "FORBIDDEN"

	// CodeNotFound indicates an unknown resource or route.
	CodeNotFound = "NOT_FOUND"

	// CodeNotEnoughContent indicates too few eligible catalog items remain
	// to form a pair for this identity.
	CodeNotEnoughContent = "NOT_ENOUGH_CONTENT"

	// CodeNotEnoughVotes indicates the recommendation threshold is not
	// reached.
	CodeNotEnoughVotes = "NOT_ENOUGH_VOTES"

	// CodeStoreError indicates a persistence failure. Retryable; the
	// request was refused rather than served unfiltered.
	CodeStoreError = "STORE_ERROR"

	// CodeMethodNotAllowed indicates a wrong HTTP method.
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

	// CodeServiceUnavailable indicates a disabled or unready subsystem.
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// CodeRateLimited indicates the per-IP request budget is exhausted.
	CodeRateLimited = "RATE_LIMIT_EXCEEDED"
)
