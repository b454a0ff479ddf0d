// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

// Package validation provides struct validation using go-playground/validator v10.
//
// This package wraps the go-playground/validator library to provide a thread-safe
// singleton validator instance with user-friendly error messages. It integrates
// with the application's API error format for consistent error responses.
//
// # Overview
//
// The package provides:
//   - Thread-safe singleton validator (initialized once, cached struct info)
//   - Error translation to human-readable messages
//   - APIError conversion matching the application's error format
//   - Future v11 compatibility with WithRequiredStructEnabled
//
// # Quick Start
//
//	type VoteRequest struct {
//	    WinnerID    string `validate:"required"`
//	    LoserID     string `validate:"required"`
//	    ContentType string `validate:"required,oneof=movie series"`
//	}
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    var req VoteRequest
//	    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
//	        // handle decode error
//	    }
//
//	    if verr := validation.ValidateStruct(&req); verr != nil {
//	        apiErr := verr.ToAPIError()
//	        respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	        return
//	    }
//
//	    // proceed with valid request
//	}
//
// # Common Validation Tags
//
// String validations:
//   - required: Field must not be empty
//   - min=n: Minimum length n characters
//   - max=n: Maximum length n characters
//
// Numeric validations:
//   - gte=n: Greater than or equal to n
//   - lte=n: Less than or equal to n
//   - min=n: Minimum value n
//   - max=n: Maximum value n
//
// Enum validations:
//   - oneof=a b c: Must be one of the specified values
//
// Collection validations:
//   - dive: Apply field tags to each slice element
//
// # API Error Integration
//
// The ToAPIError method produces errors matching the application format:
//
//	// Single field error
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "ContentType must be one of: movie series",
//	    "details": {"field": "ContentType", "tag": "oneof", "value": "podcast"}
//	}
//
//	// Multiple field errors
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "WinnerID: WinnerID is required; LoserID: LoserID is required",
//	    "details": {
//	        "fields": [
//	            {"field": "WinnerID", "tag": "required", "message": "..."},
//	            {"field": "LoserID", "tag": "required", "message": "..."}
//	        ]
//	    }
//	}
//
// # Error Message Translation
//
// Human-readable messages are generated for common validation tags:
//
//	required   -> "WinnerID is required"
//	min=1      -> "Priority must be at least 1"
//	max=5      -> "Priority must be at most 5"
//	gte=0      -> "Offset must be greater than or equal to 0"
//	lte=100    -> "Limit must be less than or equal to 100"
//	oneof=a b  -> "ContentType must be one of: a b"
//
// # Thread Safety
//
// The singleton validator is initialized once and safe for concurrent use:
//
//	validate := validation.GetValidator()  // Thread-safe
//	err := validation.ValidateStruct(&req) // Thread-safe
//
// # Performance
//
// The validator caches struct reflection information:
//   - First validation of a struct type: ~1ms (reflection + caching)
//   - Subsequent validations: ~10us (cached)
//   - Memory: ~500 bytes per cached struct type
//
// # See Also
//
//   - internal/api: Request handlers using validation
//   - internal/models: Request structs carrying validate tags
//   - github.com/go-playground/validator/v10: Underlying library
package validation
