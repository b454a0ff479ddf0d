// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/middleware"
	"github.com/tomtom215/cineduel/internal/models"
	"github.com/tomtom215/cineduel/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log
// injection attacks: newlines, carriage returns, and other control bytes
// could otherwise forge log entries.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers. The request id
// from the middleware context is echoed into the response metadata so log
// lines and payloads correlate. Responses are identity-scoped, so shared
// caches must never hold them.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	if response.Metadata.Timestamp.IsZero() {
		response.Metadata.Timestamp = time.Now().UTC()
	}
	if r != nil && response.Metadata.RequestID == "" {
		response.Metadata.RequestID = middleware.GetRequestID(r.Context())
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Vary", "Accept-Encoding")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("ETag", generateETag(data))

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash.
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondSuccess wraps data in the standard success envelope.
func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, r, status, &models.APIResponse{
		Status: "success",
		Data:   data,
	})
}

// respondError sends an error response. The message is what the client
// sees; err is only logged, never leaked into the payload.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	if err != nil {
		logging.CtxError(r.Context()).
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}

	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// decodeJSON decodes a request body into dst, answering 400 on malformed
// input. Returns false when the response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body", err)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator. Returns
// nil when validation passes, or the API error to send back.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// pageParams reads offset/limit query parameters clamped to the configured
// page size bounds.
func (h *Handler) pageParams(r *http.Request) (offset, limit int) {
	defaultSize, maxSize := 20, 100
	if h.config != nil {
		if h.config.API.DefaultPageSize > 0 {
			defaultSize = h.config.API.DefaultPageSize
		}
		if h.config.API.MaxPageSize > 0 {
			maxSize = h.config.API.MaxPageSize
		}
	}

	offset = getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	limit = getIntParam(r, "limit", defaultSize)
	if limit <= 0 {
		limit = defaultSize
	}
	if limit > maxSize {
		limit = maxSize
	}
	return offset, limit
}
