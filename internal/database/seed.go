// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/cineduel/internal/logging"
	"github.com/tomtom215/cineduel/internal/models"
)

// LoadCatalogFile loads a JSON array of content entries from path into the
// catalog. Entries without an id are assigned one. An empty path is a no-op
// so deployments without a seed file need no special casing.
func (s *Store) LoadCatalogFile(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open catalog file: %w", err)
	}
	defer closeQuietly(f)

	var items []models.Content
	if err := json.NewDecoder(f).Decode(&items); err != nil {
		return 0, fmt.Errorf("decode catalog file: %w", err)
	}

	logging.Info().Str("path", path).Int("count", len(items)).Msg("Loading catalog file...")

	now := time.Now().UTC()
	for i := range items {
		item := &items[i]
		if item.Title == "" {
			return 0, fmt.Errorf("catalog entry %d has no title", i)
		}
		if item.ContentType != models.ContentTypeMovie && item.ContentType != models.ContentTypeSeries {
			return 0, fmt.Errorf("catalog entry %d (%s) has invalid content type %q", i, item.Title, item.ContentType)
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		if err := s.PutContent(ctx, item); err != nil {
			return 0, fmt.Errorf("failed to seed catalog entry %s: %w", item.Title, err)
		}
	}

	logging.Info().Int("count", len(items)).Msg("Catalog file loaded")
	return len(items), nil
}

// SeedMockData seeds the catalog with a small fixed demo set. Intended for
// local development and screenshot capture only. Ids are fixed so demo
// clients can reference them across restarts.
func (s *Store) SeedMockData(ctx context.Context) error {
	count, err := s.CountContent(ctx)
	if err != nil {
		return fmt.Errorf("count content: %w", err)
	}
	if count > 0 {
		logging.Info().Int("existing", count).Msg("Catalog already seeded, skipping mock data")
		return nil
	}

	logging.Info().Msg("Seeding catalog with mock data...")

	items := []models.Content{
		{
			ID:          "466d1b4f-e1a5-4bfe-8321-4b73abc00a28",
			IMDBID:      "tt0775367",
			Title:       "HBO World Championship Boxing",
			Year:        "1973",
			ContentType: models.ContentTypeSeries,
			Genre:       "Sport",
			Rating:      8.1,
			Plot:        "Live professional boxing broadcasts.",
		},
		{
			ID:          "9f2c1a60-7b3e-4d18-9c4a-1f0e8b2d5c77",
			IMDBID:      "tt0111161",
			Title:       "The Shawshank Redemption",
			Year:        "1994",
			ContentType: models.ContentTypeMovie,
			Genre:       "Drama",
			Rating:      9.3,
			Director:    "Frank Darabont",
			Actors:      "Tim Robbins, Morgan Freeman",
		},
		{
			ID:          "2e8b4c91-3d5f-4a26-b7e1-8c9d0f3a6b42",
			IMDBID:      "tt0068646",
			Title:       "The Godfather",
			Year:        "1972",
			ContentType: models.ContentTypeMovie,
			Genre:       "Crime, Drama",
			Rating:      9.2,
			Director:    "Francis Ford Coppola",
			Actors:      "Marlon Brando, Al Pacino",
		},
		{
			ID:          "c4d7e2f8-1a9b-4c35-8d6e-2f4a7b9c1d53",
			IMDBID:      "tt0468569",
			Title:       "The Dark Knight",
			Year:        "2008",
			ContentType: models.ContentTypeMovie,
			Genre:       "Action, Crime, Drama",
			Rating:      9.0,
			Director:    "Christopher Nolan",
			Actors:      "Christian Bale, Heath Ledger",
		},
		{
			ID:          "7a1f9d24-6e8c-4b57-a3d9-5c2e8f1b4a68",
			IMDBID:      "tt0110912",
			Title:       "Pulp Fiction",
			Year:        "1994",
			ContentType: models.ContentTypeMovie,
			Genre:       "Crime, Drama",
			Rating:      8.9,
			Director:    "Quentin Tarantino",
			Actors:      "John Travolta, Uma Thurman, Samuel L. Jackson",
		},
		{
			ID:          "e5b8c3a7-2d4f-4e19-b6c8-9a1d5e7f2c84",
			IMDBID:      "tt1375666",
			Title:       "Inception",
			Year:        "2010",
			ContentType: models.ContentTypeMovie,
			Genre:       "Action, Adventure, Sci-Fi",
			Rating:      8.8,
			Director:    "Christopher Nolan",
			Actors:      "Leonardo DiCaprio, Joseph Gordon-Levitt",
		},
		{
			ID:          "b3e6f1c9-8a2d-4f47-9e5b-3c7a1d8e4f29",
			IMDBID:      "tt0133093",
			Title:       "The Matrix",
			Year:        "1999",
			ContentType: models.ContentTypeMovie,
			Genre:       "Action, Sci-Fi",
			Rating:      8.7,
			Director:    "Lana Wachowski, Lilly Wachowski",
			Actors:      "Keanu Reeves, Laurence Fishburne",
		},
		{
			ID:          "d8a4b7e2-5c1f-4d38-8b9a-6e3f2c5d7a91",
			IMDBID:      "tt0099685",
			Title:       "Goodfellas",
			Year:        "1990",
			ContentType: models.ContentTypeMovie,
			Genre:       "Biography, Crime, Drama",
			Rating:      8.7,
			Director:    "Martin Scorsese",
			Actors:      "Robert De Niro, Ray Liotta, Joe Pesci",
		},
		{
			ID:          "f2c9e5a1-4b7d-4a63-9c2e-8d5f1a3b6c47",
			IMDBID:      "tt0816692",
			Title:       "Interstellar",
			Year:        "2014",
			ContentType: models.ContentTypeMovie,
			Genre:       "Adventure, Drama, Sci-Fi",
			Rating:      8.7,
			Director:    "Christopher Nolan",
			Actors:      "Matthew McConaughey, Anne Hathaway",
		},
		{
			ID:          "a6d3f8b5-9e2c-4c74-b1d6-4f8a2e5c9b13",
			IMDBID:      "tt6751668",
			Title:       "Parasite",
			Year:        "2019",
			ContentType: models.ContentTypeMovie,
			Genre:       "Drama, Thriller",
			Rating:      8.5,
			Director:    "Bong Joon Ho",
			Actors:      "Song Kang-ho, Lee Sun-kyun",
		},
		{
			ID:          "3b9e7c42-6f1a-4e85-a7c3-1d9b5f2e8a64",
			IMDBID:      "tt1392190",
			Title:       "Mad Max: Fury Road",
			Year:        "2015",
			ContentType: models.ContentTypeMovie,
			Genre:       "Action, Adventure, Sci-Fi",
			Rating:      8.1,
			Director:    "George Miller",
			Actors:      "Tom Hardy, Charlize Theron",
		},
		{
			ID:          "c7f2a9d6-3e8b-4b52-9f1c-5a4d7e2b8c39",
			IMDBID:      "tt1856101",
			Title:       "Blade Runner 2049",
			Year:        "2017",
			ContentType: models.ContentTypeMovie,
			Genre:       "Action, Drama, Mystery",
			Rating:      8.0,
			Director:    "Denis Villeneuve",
			Actors:      "Ryan Gosling, Harrison Ford",
		},
		{
			ID:          "8e5c1f74-2a9d-4d96-b3e7-9c6f4a1d5e82",
			IMDBID:      "tt0903747",
			Title:       "Breaking Bad",
			Year:        "2008",
			ContentType: models.ContentTypeSeries,
			Genre:       "Crime, Drama, Thriller",
			Rating:      9.5,
			Actors:      "Bryan Cranston, Aaron Paul",
		},
		{
			ID:          "5a8d2e96-7c3f-4f21-8a5d-2b9e6c4f7a18",
			IMDBID:      "tt0944947",
			Title:       "Game of Thrones",
			Year:        "2011",
			ContentType: models.ContentTypeSeries,
			Genre:       "Action, Adventure, Drama",
			Rating:      9.2,
			Actors:      "Emilia Clarke, Peter Dinklage, Kit Harington",
		},
		{
			ID:          "1d6b9f38-4e7a-4a59-b8f2-6c3e9a5d1b74",
			IMDBID:      "tt0306414",
			Title:       "The Wire",
			Year:        "2002",
			ContentType: models.ContentTypeSeries,
			Genre:       "Crime, Drama, Thriller",
			Rating:      9.3,
			Actors:      "Dominic West, Lance Reddick",
		},
		{
			ID:          "4f7e3a85-9b2c-4c18-9d6f-8a5b2e7c4f91",
			IMDBID:      "tt4574334",
			Title:       "Stranger Things",
			Year:        "2016",
			ContentType: models.ContentTypeSeries,
			Genre:       "Drama, Fantasy, Horror",
			Rating:      8.6,
			Actors:      "Millie Bobby Brown, Finn Wolfhard",
		},
		{
			ID:          "b9c5e2f7-1d8a-4b36-a4c9-3f7d5b8e2a61",
			IMDBID:      "tt0386676",
			Title:       "The Office",
			Year:        "2005",
			ContentType: models.ContentTypeSeries,
			Genre:       "Comedy",
			Rating:      9.0,
			Actors:      "Steve Carell, Jenna Fischer, John Krasinski",
		},
		{
			ID:          "6e2a8c53-5f9b-4e71-b2a8-7d4c9f3e6b25",
			IMDBID:      "tt7366338",
			Title:       "Chernobyl",
			Year:        "2019",
			ContentType: models.ContentTypeSeries,
			Genre:       "Drama, History, Thriller",
			Rating:      9.3,
			Actors:      "Jared Harris, Stellan Skarsgård",
		},
		{
			// Exercises the Shorts maintenance sweep in demo deployments
			ID:          "2c8f5b19-6a3e-4d84-9b7c-1e5a8d2f4c63",
			IMDBID:      "tt5613056",
			Title:       "Piper",
			Year:        "2016",
			ContentType: models.ContentTypeMovie,
			Genre:       "Animation, Short, Family",
			Rating:      8.3,
			Director:    "Alan Barillaro",
		},
	}

	now := time.Now().UTC()
	for i := range items {
		items[i].CreatedAt = now
		if err := s.PutContent(ctx, &items[i]); err != nil {
			return fmt.Errorf("failed to seed %s: %w", items[i].Title, err)
		}
	}

	logging.Info().Int("count", len(items)).Msg("Mock data seeded successfully")
	return nil
}
