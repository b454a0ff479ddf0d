// CineDuel - Pairwise Content Voting and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cineduel

package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/cineduel/internal/models"
)

func interact(t *testing.T, env *testEnv, req models.InteractionRequest) {
	t.Helper()
	rec := env.do(request(t, http.MethodPost, "/api/v1/content/interact", req))
	if rec.Code != http.StatusOK {
		t.Fatalf("interact failed: %d %s", rec.Code, rec.Body.String())
	}
}

func TestContentByID_EitherIdentifier(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1), sampleMovie(2))

	tests := []struct {
		name string
		ref  string
	}{
		{"internal id", "m1"},
		{"catalog id", sampleMovie(1).IMDBID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(request(t, http.MethodGet, "/api/v1/content/"+tt.ref, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			var content models.Content
			decodeData(t, rec, &content)
			if content.ID != "m1" {
				t.Errorf("resolved id: expected m1, got %s", content.ID)
			}
			if content.Title != "Movie 1" {
				t.Errorf("title: expected Movie 1, got %s", content.Title)
			}
		})
	}
}

func TestContentByID_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	rec := env.do(request(t, http.MethodGet, "/api/v1/content/tt9999999", nil))
	checkAPIError(t, rec, http.StatusNotFound, CodeNotFound)
}

func TestContentByID_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))
	_ = env.store.Close()

	rec := env.do(request(t, http.MethodGet, "/api/v1/content/m1", nil))
	checkAPIError(t, rec, http.StatusInternalServerError, CodeStoreError)
}

func TestUserContentStatus_FlagsAcrossIdentifiers(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	// Watched recorded under the catalog id, watchlisted under the internal
	// id. Status queried by internal id must see both.
	interact(t, env, models.InteractionRequest{
		ContentID:       sampleMovie(1).IMDBID,
		InteractionType: string(models.InteractionWatched),
		SessionID:       "s1",
	})
	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
	})

	rec := env.do(request(t, http.MethodGet, "/api/v1/content/m1/user-status?session_id=s1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var status models.UserContentStatus
	decodeData(t, rec, &status)
	if status.ContentID != "m1" {
		t.Errorf("content_id: expected m1, got %s", status.ContentID)
	}
	if !status.Watched {
		t.Error("watched flag should be set via catalog-id interaction")
	}
	if !status.WantToWatch {
		t.Error("want_to_watch flag should be set via internal-id interaction")
	}
	if status.NotInterested || status.Passed {
		t.Error("unset flags should stay false")
	}
	if !status.Excluded {
		t.Error("watched content should report excluded")
	}
}

func TestUserContentStatus_QueryByCatalogID(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionPassed),
		SessionID:       "s1",
	})

	path := fmt.Sprintf("/api/v1/content/%s/user-status?session_id=s1", sampleMovie(1).IMDBID)
	rec := env.do(request(t, http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var status models.UserContentStatus
	decodeData(t, rec, &status)
	if !status.Passed {
		t.Error("passed flag should be visible when queried by catalog id")
	}
	if !status.Excluded {
		t.Error("passed content should report excluded")
	}
	if status.Watched {
		t.Error("watched should stay false")
	}
}

func TestUserContentStatus_WatchlistDoesNotExclude(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
	})

	rec := env.do(request(t, http.MethodGet, "/api/v1/content/m1/user-status?session_id=s1", nil))
	var status models.UserContentStatus
	decodeData(t, rec, &status)
	if !status.WantToWatch {
		t.Error("want_to_watch flag should be set")
	}
	if status.Excluded {
		t.Error("want_to_watch alone must not exclude")
	}
}

func TestUserContentStatus_AnonymousAllFalse(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWatched),
		SessionID:       "s1",
	})

	// No identity: the item exists but no history applies.
	rec := env.do(request(t, http.MethodGet, "/api/v1/content/m1/user-status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for anonymous status, got %d", rec.Code)
	}
	var status models.UserContentStatus
	decodeData(t, rec, &status)
	if status.Watched || status.Excluded {
		t.Error("anonymous status must not see other identities' history")
	}
}

func TestUserContentStatus_UnknownContent(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(request(t, http.MethodGet, "/api/v1/content/nope/user-status?session_id=s1", nil))
	checkAPIError(t, rec, http.StatusNotFound, CodeNotFound)
}

func fetchWatchlist(t *testing.T, env *testEnv, path string) *models.WatchlistPage {
	t.Helper()
	rec := env.do(request(t, http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("watchlist failed: %d %s", rec.Code, rec.Body.String())
	}
	var page models.WatchlistPage
	decodeData(t, rec, &page)
	return &page
}

func TestWatchlist_Empty(t *testing.T) {
	env := newTestEnv(t)

	page := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1")
	if page.TotalCount != 0 {
		t.Errorf("total_count: expected 0, got %d", page.TotalCount)
	}
	if page.Items == nil {
		t.Error("items should be an empty array, not null")
	}
}

func TestWatchlist_EntriesResolved(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1), sampleMovie(2))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
		Priority:        2,
	})

	page := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1")
	if page.TotalCount != 1 {
		t.Fatalf("total_count: expected 1, got %d", page.TotalCount)
	}
	entry := page.Items[0]
	if entry.Content == nil || entry.Content.ID != "m1" {
		t.Fatalf("entry content: expected m1, got %+v", entry.Content)
	}
	if entry.Priority != 2 {
		t.Errorf("priority: expected 2, got %d", entry.Priority)
	}
	if entry.AddedAt.IsZero() {
		t.Error("added_at should be set")
	}
}

func TestWatchlist_DedupeAcrossIdentifiers(t *testing.T) {
	// The same item watchlisted under both identifier schemes is one row,
	// carrying the later write's metadata.
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
		Priority:        1,
	})
	interact(t, env, models.InteractionRequest{
		ContentID:       sampleMovie(1).IMDBID,
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
		Priority:        5,
	})

	page := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1")
	if page.TotalCount != 1 {
		t.Fatalf("total_count: expected 1 after dedupe, got %d", page.TotalCount)
	}
	if page.Items[0].Priority != 5 {
		t.Errorf("latest write should win: expected priority 5, got %d", page.Items[0].Priority)
	}
}

func TestWatchlist_DropsVanishedContent(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1), sampleMovie(2))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
	})
	interact(t, env, models.InteractionRequest{
		ContentID:       "m2",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
	})

	if err := env.store.DeleteContent(context.Background(), "m2"); err != nil {
		t.Fatalf("delete content: %v", err)
	}

	page := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1")
	if page.TotalCount != 1 {
		t.Fatalf("total_count: expected 1 after removal, got %d", page.TotalCount)
	}
	if page.Items[0].Content.ID != "m1" {
		t.Errorf("surviving entry: expected m1, got %s", page.Items[0].Content.ID)
	}
}

func TestWatchlist_Pagination(t *testing.T) {
	env := newTestEnv(t)
	items := make([]models.Content, 5)
	for i := range items {
		items[i] = sampleMovie(i + 1)
	}
	env.seed(t, items...)

	for i := 1; i <= 5; i++ {
		interact(t, env, models.InteractionRequest{
			ContentID:       fmt.Sprintf("m%d", i),
			InteractionType: string(models.InteractionWantToWatch),
			SessionID:       "s1",
		})
	}

	page := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1&offset=0&limit=2")
	if page.TotalCount != 5 {
		t.Errorf("total_count: expected 5, got %d", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Fatalf("page size: expected 2, got %d", len(page.Items))
	}

	page2 := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1&offset=4&limit=2")
	if len(page2.Items) != 1 {
		t.Errorf("last page: expected 1 item, got %d", len(page2.Items))
	}

	page3 := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s1&offset=10&limit=2")
	if len(page3.Items) != 0 {
		t.Errorf("past-the-end page: expected 0 items, got %d", len(page3.Items))
	}
	if page3.Items == nil {
		t.Error("past-the-end items should be an empty array, not null")
	}
}

func TestWatchlist_IsolatedPerIdentity(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))

	interact(t, env, models.InteractionRequest{
		ContentID:       "m1",
		InteractionType: string(models.InteractionWantToWatch),
		SessionID:       "s1",
	})

	page := fetchWatchlist(t, env, "/api/v1/watchlist?session_id=s2")
	if page.TotalCount != 0 {
		t.Errorf("s2 watchlist should be empty, got %d entries", page.TotalCount)
	}
}
