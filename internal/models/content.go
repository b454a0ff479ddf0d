// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package models

import "time"

// ContentType classifies a catalog entry. Pairs are always drawn from a
// single content type: movies are compared against movies, series against
// series.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
)

// Valid reports whether t is a known content type.
func (t ContentType) Valid() bool {
	return t == ContentTypeMovie || t == ContentTypeSeries
}

// Content is a catalog entry.
//
// Every item carries two independent identifiers:
//
//   - ID: internally generated UUID, assigned at ingestion time
//   - IMDBID: externally sourced catalog id (e.g. "tt1375666")
//
// Both are unique keys into the catalog and both may appear as the content
// reference of an Interaction, because historical write paths recorded
// whichever identifier they had at hand. IMDBID may be empty for items whose
// metadata source did not supply one; ID is never empty.
//
// The descriptive fields (Title, Year, Genre, ...) follow the shape of the
// metadata provider the catalog was seeded from and are irrelevant to
// exclusion logic. Year is a string because series carry ranges ("2008-2013").
type Content struct {
	ID          string      `json:"id"`
	IMDBID      string      `json:"imdb_id,omitempty"`
	Title       string      `json:"title"`
	Year        string      `json:"year,omitempty"`
	ContentType ContentType `json:"content_type"`
	Genre       string      `json:"genre,omitempty"`
	Rating      float64     `json:"rating,omitempty"`
	Poster      string      `json:"poster,omitempty"`
	Plot        string      `json:"plot,omitempty"`
	Director    string      `json:"director,omitempty"`
	Actors      string      `json:"actors,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// Identifiers returns the item's non-empty identifiers. The result has one
// element when IMDBID is absent, two otherwise.
func (c *Content) Identifiers() []string {
	ids := make([]string, 0, 2)
	if c.ID != "" {
		ids = append(ids, c.ID)
	}
	if c.IMDBID != "" {
		ids = append(ids, c.IMDBID)
	}
	return ids
}
