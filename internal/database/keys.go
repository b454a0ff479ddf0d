// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Key prefixes for BadgerDB storage
const (
	contentKeyPrefix     = "content:"
	contentRefKeyPrefix  = "content_ref:"
	interactionKeyPrefix = "interaction:"
	voteKeyPrefix        = "vote:"
	recKeyPrefix         = "rec:"
)

// contentKey addresses a catalog entry by internal id.
func contentKey(id string) []byte {
	return []byte(contentKeyPrefix + id)
}

// contentRefKey addresses the catalog-id index entry whose value is the
// internal id.
func contentRefKey(catalogID string) []byte {
	return []byte(contentRefKeyPrefix + catalogID)
}

// timestampedKey builds "<prefix><identity>:<ts20>:<suffix>". The timestamp
// is zero-padded to 20 digits so prefix iteration yields chronological
// order; the random suffix keeps same-nanosecond writes distinct.
func timestampedKey(prefix, identityKey string, at time.Time) []byte {
	suffix := uuid.New().String()[:8]
	return []byte(fmt.Sprintf("%s%s:%020d:%s", prefix, identityKey, at.UnixNano(), suffix))
}

// identityPrefix builds "<prefix><identity>:". The trailing colon keeps
// identity keyspaces exact: "u:4" never matches entries under "u:42".
func identityPrefix(prefix, identityKey string) []byte {
	return []byte(prefix + identityKey + ":")
}
