// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package auth verifies bearer tokens for authenticated users.
//
// CineDuel does not issue credentials or run a login flow. An external
// identity provider mints HS256 tokens whose subject claim is the user id;
// this package checks them against the shared secret. Requests without a
// token are not an auth failure - they proceed as guest sessions or
// anonymous identities, which the api package resolves.
//
// With no JWT secret configured, verification is disabled and every
// presented token is rejected while tokenless requests continue to work.
package auth
