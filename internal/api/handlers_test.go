// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/discograph/discograph/internal/analytics"
	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/collab"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/logging"
	"github.com/discograph/discograph/internal/models"
	"github.com/discograph/discograph/internal/recommend"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:        "127.0.0.1",
			Port:        8337,
			CORSOrigins: []string{"*"},
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
		Recommend: config.RecommendConfig{
			CacheTTL:              24 * time.Hour,
			SimilarArtistLimit:    8,
			LabelAlbumLimit:       8,
			RecentAlbumLimit:      8,
			GenreTrackLimit:       10,
			TrendingTrackLimit:    10,
			PopularArtistLimit:    8,
			TopLabelCount:         3,
			RecentWindow:          2 * 365 * 24 * time.Hour,
			TrendingMinPopularity: 70,
			FallbackMinPopularity: 50,
			GenreArtistScanLimit:  100,
			MinSections:           3,
		},
		Collab: config.CollabConfig{
			TargetGenres:   []string{"rap", "trap"},
			CandidateLimit: 300,
			MaxMinCount:    1000,
		},
		Analytics: config.AnalyticsConfig{
			DefaultLabelLimit: 20,
			MaxLabelLimit:     100,
		},
	}
}

// newTestServer builds the full router over a seeded in-memory catalog.
func newTestServer(t *testing.T, store *catalog.MemoryStore) *httptest.Server {
	t.Helper()

	cfg := testConfig()
	logger := logging.NewTestLogger(io.Discard)
	router := NewRouter(
		cfg,
		store,
		recommend.NewEngine(store, cfg.Recommend, logger),
		collab.NewBuilder(store, cfg.Collab, logger),
		analytics.NewService(store, cfg.Analytics, logger),
	)

	server := httptest.NewServer(router.Setup())
	t.Cleanup(server.Close)
	return server
}

func seededStore() *catalog.MemoryStore {
	store := catalog.NewMemoryStore()
	store.AddArtists(
		models.Artist{ID: "a1", Name: "Headliner", Popularity: 95, Genres: []string{"rap"}},
		models.Artist{ID: "a2", Name: "Feature King", Popularity: 88, Genres: []string{"rap"}},
		models.Artist{ID: "a3", Name: "Newcomer", Popularity: 60, Genres: []string{"trap"}},
	)
	store.AddAlbums(
		models.Album{ID: "al1", Name: "Debut", Label: "Good Records", Genres: []string{"rap"}, ReleaseDate: "2024-01-15", Popularity: 80, ArtistIDs: []string{"a1"}, AlbumType: models.AlbumTypeAlbum},
		models.Album{ID: "al2", Name: "Follow Up", Label: "Good Records", Genres: []string{"rap"}, ReleaseDate: "2026-03-01", Popularity: 70, ArtistIDs: []string{"a2"}, AlbumType: models.AlbumTypeAlbum},
	)
	store.AddTracks(
		models.Track{ID: "t1", Name: "Opener", ArtistIDs: []string{"a1"}, Popularity: 90},
		models.Track{ID: "t2", Name: "Duet", ArtistIDs: []string{"a1", "a2"}, Popularity: 85},
		models.Track{ID: "t3", Name: "Remix", ArtistIDs: []string{"a2", "a1"}, Popularity: 75},
	)
	store.AddUsers(models.UserProfile{
		ID:                "u1",
		FavoriteArtistIDs: []string{"a1"},
		LikedAlbumIDs:     []string{"al1"},
		LikedTrackIDs:     []string{"t1"},
	})
	return store
}

// getJSON fetches path and decodes the standard response envelope.
func getJSON(t *testing.T, server *httptest.Server, path string) (int, *models.APIResponse) {
	t.Helper()

	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var envelope models.APIResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal %s: %v\nbody: %s", path, err, body)
	}
	return resp.StatusCode, &envelope
}

func TestRecommendationsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	status, envelope := getJSON(t, server, "/api/v1/recommendations/u1")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if envelope.Status != "success" {
		t.Errorf("envelope status = %q, want success", envelope.Status)
	}

	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", envelope.Data)
	}
	sections, ok := data["sections"].([]interface{})
	if !ok {
		t.Fatalf("sections is %T, want array", data["sections"])
	}
	if len(sections) == 0 {
		t.Error("no sections returned for user with preferences")
	}
}

func TestRecommendationsUserNotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	status, envelope := getJSON(t, server, "/api/v1/recommendations/ghost")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("error = %+v, want NOT_FOUND", envelope.Error)
	}
}

func TestRecommendationsCachedMetadata(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	// First request computes and persists; second must be a cache hit.
	if status, _ := getJSON(t, server, "/api/v1/recommendations/u1"); status != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", status)
	}
	status, envelope := getJSON(t, server, "/api/v1/recommendations/u1")
	if status != http.StatusOK {
		t.Fatalf("second request status = %d, want 200", status)
	}
	if !envelope.Metadata.Cached {
		t.Error("second request not marked cached")
	}
}

func TestCollaborationsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	status, envelope := getJSON(t, server, "/api/v1/collaborations?minCount=2")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", envelope.Data)
	}
	edges, ok := data["edges"].([]interface{})
	if !ok {
		t.Fatalf("edges is %T, want array", data["edges"])
	}
	if len(edges) != 1 {
		t.Errorf("edges = %d, want 1 (a1-a2 collaborate twice)", len(edges))
	}

	stats, ok := data["stats"].(map[string]interface{})
	if !ok {
		t.Fatalf("stats is %T, want object", data["stats"])
	}
	if got := stats["collaborative_tracks"].(float64); got != 2 {
		t.Errorf("collaborative_tracks = %v, want 2", got)
	}
}

func TestCollaborationsValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	tests := []struct {
		name string
		path string
		want int
	}{
		{"default min count", "/api/v1/collaborations", http.StatusOK},
		{"explicit min count", "/api/v1/collaborations?minCount=3", http.StatusOK},
		{"zero min count", "/api/v1/collaborations?minCount=0", http.StatusBadRequest},
		{"negative min count", "/api/v1/collaborations?minCount=-1", http.StatusBadRequest},
		{"above configured max", "/api/v1/collaborations?minCount=1001", http.StatusBadRequest},
		{"non-numeric falls back to default", "/api/v1/collaborations?minCount=abc", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, envelope := getJSON(t, server, tt.path)
			if status != tt.want {
				t.Errorf("GET %s status = %d, want %d", tt.path, status, tt.want)
			}
			if tt.want == http.StatusBadRequest && (envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR") {
				t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
			}
		})
	}
}

func TestAnalyticsLabelsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	status, envelope := getJSON(t, server, "/api/v1/analytics/labels?limit=5")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	data := envelope.Data.(map[string]interface{})
	labels, ok := data["labels"].([]interface{})
	if !ok {
		t.Fatalf("labels is %T, want array", data["labels"])
	}
	if len(labels) != 1 {
		t.Fatalf("labels = %d, want 1", len(labels))
	}
	top := labels[0].(map[string]interface{})
	if top["label"] != "Good Records" || top["album_count"].(float64) != 2 {
		t.Errorf("top label = %v, want Good Records with 2 albums", top)
	}
}

func TestAnalyticsReleaseCohortsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	status, envelope := getJSON(t, server, "/api/v1/analytics/release-cohorts?granularity=decade")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	data := envelope.Data.(map[string]interface{})
	if _, ok := data["cohorts"].([]interface{}); !ok {
		t.Fatalf("cohorts is %T, want array", data["cohorts"])
	}

	status, envelope = getJSON(t, server, "/api/v1/analytics/release-cohorts?granularity=century")
	if status != http.StatusBadRequest {
		t.Fatalf("invalid granularity status = %d, want 400", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", envelope.Error)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		status, _ := getJSON(t, server, path)
		if status != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, status)
		}
	}
}

func TestHealthReadyStoreDown(t *testing.T) {
	t.Parallel()

	store := seededStore()
	store.FailPing = errTest
	server := newTestServer(t, store)

	status, envelope := getJSON(t, server, "/api/v1/health/ready")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", status)
	}
	if envelope.Status != "not_ready" {
		t.Errorf("envelope status = %q, want not_ready", envelope.Status)
	}

	// Liveness ignores dependencies.
	if status, _ := getJSON(t, server, "/api/v1/health/live"); status != http.StatusOK {
		t.Errorf("liveness status = %d, want 200 with store down", status)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, seededStore())

	req, _ := http.NewRequest(http.MethodGet, server.URL+"/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "test-req-42")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "test-req-42" {
		t.Errorf("X-Request-ID = %q, want echoed test-req-42", got)
	}
}
