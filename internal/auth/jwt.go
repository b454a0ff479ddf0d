// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/cineduel/internal/config"
)

// Claims represents the bearer token claims. The registered Subject claim
// carries the user id; no other claims are read.
type Claims struct {
	jwt.RegisteredClaims
}

// Manager verifies bearer tokens minted by the external identity provider.
// There is no login flow here: tokens arrive pre-issued and are checked
// against the shared HMAC secret. Uses HS256 signing.
type Manager struct {
	secret []byte
}

// NewManager creates a token manager from the security config.
//
// An empty JWT secret is a supported configuration: verification is disabled
// and every presented bearer token is rejected. Requests without a token are
// unaffected; they proceed as guest or anonymous identities.
func NewManager(cfg *config.SecurityConfig) *Manager {
	var secret []byte
	if cfg != nil && cfg.JWTSecret != "" {
		// Stored as []byte to avoid string interning of the secret.
		secret = []byte(cfg.JWTSecret)
	}
	return &Manager{secret: secret}
}

// Enabled reports whether a verification secret is configured.
func (m *Manager) Enabled() bool {
	return len(m.secret) > 0
}

// GenerateToken creates a signed token for a user id, valid for ttl.
// The identity provider normally mints tokens; this exists for operational
// tooling and tests.
func (m *Manager) GenerateToken(userID string, ttl time.Duration) (string, error) {
	if !m.Enabled() {
		return "", fmt.Errorf("token generation requires a JWT secret")
	}
	if userID == "" {
		return "", fmt.Errorf("token subject is required")
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken validates a bearer token and returns the user id from its
// subject claim.
//
// Validation checks the HMAC-SHA256 signature, the signing algorithm (HS256
// only, rejecting algorithm confusion), and the time claims. A token with an
// empty subject is rejected: it verified, but identifies nobody.
func (m *Manager) ValidateToken(tokenString string) (string, error) {
	if !m.Enabled() {
		return "", fmt.Errorf("token verification is disabled: no JWT secret configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, nil
}
