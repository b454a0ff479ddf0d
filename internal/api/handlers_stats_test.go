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

// addVotes writes n votes for the identity straight into the store.
func (e *testEnv) addVotes(t *testing.T, identity models.Identity, contentType models.ContentType, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		vote := &models.Vote{
			UserID:      identity.UserID,
			SessionID:   identity.SessionID,
			WinnerID:    fmt.Sprintf("w-%s-%d", contentType, i),
			LoserID:     fmt.Sprintf("l-%s-%d", contentType, i),
			ContentType: contentType,
		}
		if err := e.store.AddVote(ctx, vote); err != nil {
			t.Fatalf("Failed to add vote: %v", err)
		}
	}
}

// pushRecommendations replaces the identity's stored set directly.
func (e *testEnv) pushRecommendations(t *testing.T, identity models.Identity, recs []models.Recommendation) {
	t.Helper()
	if err := e.store.ReplaceRecommendations(context.Background(), identity, recs); err != nil {
		t.Fatalf("Failed to push recommendations: %v", err)
	}
}

func fetchStats(t *testing.T, env *testEnv, path string, headers map[string]string) *models.UserStats {
	t.Helper()
	req := request(t, http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := env.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats failed: %d %s", rec.Code, rec.Body.String())
	}
	var stats models.UserStats
	decodeData(t, rec, &stats)
	return &stats
}

func TestStats_ColdStart(t *testing.T) {
	// Anonymous and never-seen identities both get the zero view, never an
	// error: clients poll stats before any history exists.
	env := newTestEnv(t)

	tests := []struct {
		name string
		path string
	}{
		{"anonymous", "/api/v1/stats"},
		{"unknown session", "/api/v1/stats?session_id=never-seen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := fetchStats(t, env, tt.path, nil)
			if stats.TotalVotes != 0 || stats.MovieVotes != 0 || stats.SeriesVotes != 0 {
				t.Errorf("expected zero counts, got %+v", stats)
			}
			if stats.VotesUntilRecommendations != env.cfg.Recommend.VoteThreshold {
				t.Errorf("votes_until_recommendations: expected %d, got %d",
					env.cfg.Recommend.VoteThreshold, stats.VotesUntilRecommendations)
			}
			if stats.RecommendationsAvailable {
				t.Error("recommendations should not be available at zero votes")
			}
			if stats.UserAuthenticated {
				t.Error("user_authenticated should be false")
			}
		})
	}
}

func TestStats_CountsByType(t *testing.T) {
	env := newTestEnv(t)
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 2)
	env.addVotes(t, identity, models.ContentTypeSeries, 1)

	stats := fetchStats(t, env, "/api/v1/stats?session_id=s1", nil)
	if stats.TotalVotes != 3 {
		t.Errorf("total_votes: expected 3, got %d", stats.TotalVotes)
	}
	if stats.MovieVotes != 2 {
		t.Errorf("movie_votes: expected 2, got %d", stats.MovieVotes)
	}
	if stats.SeriesVotes != 1 {
		t.Errorf("series_votes: expected 1, got %d", stats.SeriesVotes)
	}
	if stats.VotesUntilRecommendations != 0 {
		t.Errorf("votes_until_recommendations: expected 0, got %d", stats.VotesUntilRecommendations)
	}
	if !stats.RecommendationsAvailable {
		t.Error("threshold of 3 should be crossed")
	}
}

func TestStats_Authenticated(t *testing.T) {
	env := newTestEnv(t)
	env.addVotes(t, models.Identity{UserID: "alice"}, models.ContentTypeMovie, 1)

	stats := fetchStats(t, env, "/api/v1/stats", map[string]string{
		"Authorization": env.bearer(t, "alice"),
	})
	if !stats.UserAuthenticated {
		t.Error("user_authenticated should be true with a valid token")
	}
	if stats.TotalVotes != 1 {
		t.Errorf("total_votes: expected 1, got %d", stats.TotalVotes)
	}
}

func TestStats_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	_ = env.store.Close()

	rec := env.do(request(t, http.MethodGet, "/api/v1/stats?session_id=s1", nil))
	checkAPIError(t, rec, http.StatusInternalServerError, CodeStoreError)
}

func fetchRecommendations(t *testing.T, env *testEnv, path string) *models.RecommendationsPage {
	t.Helper()
	rec := env.do(request(t, http.MethodGet, path, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("recommendations failed: %d %s", rec.Code, rec.Body.String())
	}
	var page models.RecommendationsPage
	decodeData(t, rec, &page)
	return &page
}

func TestRecommendations_BelowThreshold(t *testing.T) {
	env := newTestEnv(t)
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 2)

	rec := env.do(request(t, http.MethodGet, "/api/v1/recommendations?session_id=s1", nil))
	checkAPIError(t, rec, http.StatusConflict, CodeNotEnoughVotes)
}

func TestRecommendations_AnonymousBelowThreshold(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(request(t, http.MethodGet, "/api/v1/recommendations", nil))
	checkAPIError(t, rec, http.StatusConflict, CodeNotEnoughVotes)
}

func TestRecommendations_SortedAndFiltered(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1), sampleMovie(2), sampleMovie(3))
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 3)
	env.pushRecommendations(t, identity, []models.Recommendation{
		{ContentID: "m1", Score: 0.5},
		{ContentID: "m2", Score: 0.9},
		{ContentID: "m3", Score: 0.7},
	})

	// m3 becomes excluded after the push; serving must drop it.
	interact(t, env, models.InteractionRequest{
		ContentID:       "m3",
		InteractionType: string(models.InteractionWatched),
		SessionID:       "s1",
	})

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1")
	if page.TotalCount != 2 {
		t.Fatalf("total_count: expected 2 after exclusion, got %d", page.TotalCount)
	}
	if page.Items[0].Content.ID != "m2" || page.Items[1].Content.ID != "m1" {
		t.Errorf("expected order [m2, m1], got [%s, %s]",
			page.Items[0].Content.ID, page.Items[1].Content.ID)
	}
	if page.Items[0].Score != 0.9 {
		t.Errorf("top score: expected 0.9, got %v", page.Items[0].Score)
	}
}

func TestRecommendations_ExclusionByEitherIdentifier(t *testing.T) {
	// The stored recommendation references the internal id, the exclusion
	// was written under the catalog id. The item must still be dropped.
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1), sampleMovie(2))
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 3)
	env.pushRecommendations(t, identity, []models.Recommendation{
		{ContentID: "m1", Score: 0.8},
		{ContentID: "m2", Score: 0.6},
	})

	interact(t, env, models.InteractionRequest{
		ContentID:       sampleMovie(1).IMDBID,
		InteractionType: string(models.InteractionNotInterested),
		SessionID:       "s1",
	})

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1")
	if page.TotalCount != 1 {
		t.Fatalf("total_count: expected 1, got %d", page.TotalCount)
	}
	if page.Items[0].Content.ID != "m2" {
		t.Errorf("expected m2 to survive, got %s", page.Items[0].Content.ID)
	}
}

func TestRecommendations_DuplicatesCollapse(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 3)
	env.pushRecommendations(t, identity, []models.Recommendation{
		{ContentID: "m1", Score: 0.4},
		{ContentID: "m1", Score: 0.8},
		{ContentID: "m1", Score: 0.2},
	})

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1")
	if page.TotalCount != 1 {
		t.Fatalf("total_count: expected 1 after dedupe, got %d", page.TotalCount)
	}
	if page.Items[0].Score != 0.8 {
		t.Errorf("expected highest duplicate score 0.8, got %v", page.Items[0].Score)
	}
}

func TestRecommendations_VanishedContentDropped(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 3)
	env.pushRecommendations(t, identity, []models.Recommendation{
		{ContentID: "m1", Score: 0.9},
		{ContentID: "gone", Score: 0.7},
	})

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1")
	if page.TotalCount != 1 {
		t.Fatalf("total_count: expected 1, got %d", page.TotalCount)
	}
	if page.Items[0].Content.ID != "m1" {
		t.Errorf("expected m1, got %s", page.Items[0].Content.ID)
	}
}

func TestRecommendations_EmptySetIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 3)

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1")
	if page.TotalCount != 0 {
		t.Errorf("total_count: expected 0, got %d", page.TotalCount)
	}
	if page.Items == nil {
		t.Error("items should be an empty array, not null")
	}
}

func TestRecommendations_Pagination(t *testing.T) {
	env := newTestEnv(t)
	items := make([]models.Content, 5)
	recs := make([]models.Recommendation, 5)
	for i := range items {
		items[i] = sampleMovie(i + 1)
		recs[i] = models.Recommendation{
			ContentID: items[i].ID,
			Score:     float64(10 - i),
		}
	}
	env.seed(t, items...)
	identity := models.Identity{SessionID: "s1"}
	env.addVotes(t, identity, models.ContentTypeMovie, 3)
	env.pushRecommendations(t, identity, recs)

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1&offset=2&limit=2")
	if page.TotalCount != 5 {
		t.Errorf("total_count: expected 5, got %d", page.TotalCount)
	}
	if len(page.Items) != 2 {
		t.Fatalf("page size: expected 2, got %d", len(page.Items))
	}
	if page.Items[0].Content.ID != "m3" || page.Items[1].Content.ID != "m4" {
		t.Errorf("expected [m3, m4], got [%s, %s]",
			page.Items[0].Content.ID, page.Items[1].Content.ID)
	}

	past := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s1&offset=9&limit=2")
	if len(past.Items) != 0 {
		t.Errorf("past-the-end: expected 0 items, got %d", len(past.Items))
	}
}

func TestRecommendations_IsolatedPerIdentity(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, sampleMovie(1))
	s1 := models.Identity{SessionID: "s1"}
	s2 := models.Identity{SessionID: "s2"}
	env.addVotes(t, s1, models.ContentTypeMovie, 3)
	env.addVotes(t, s2, models.ContentTypeMovie, 3)
	env.pushRecommendations(t, s1, []models.Recommendation{{ContentID: "m1", Score: 0.9}})

	page := fetchRecommendations(t, env, "/api/v1/recommendations?session_id=s2")
	if page.TotalCount != 0 {
		t.Errorf("s2 should have no recommendations, got %d", page.TotalCount)
	}
}

func TestRecommendations_StoreFailure(t *testing.T) {
	env := newTestEnv(t)
	_ = env.store.Close()

	rec := env.do(request(t, http.MethodGet, "/api/v1/recommendations?session_id=s1", nil))
	checkAPIError(t, rec, http.StatusInternalServerError, CodeStoreError)
}
