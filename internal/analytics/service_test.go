// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package analytics

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/logging"
	"github.com/discograph/discograph/internal/models"
)

func testService(store catalog.Store) *Service {
	cfg := config.AnalyticsConfig{DefaultLabelLimit: 2, MaxLabelLimit: 3}
	return NewService(store, cfg, logging.NewTestLogger(io.Discard))
}

func seededStore() *catalog.MemoryStore {
	store := catalog.NewMemoryStore()
	store.AddAlbums(
		models.Album{ID: "al1", Label: "Big Label", Popularity: 80, ArtistIDs: []string{"a1"}, ReleaseDate: "1998-03-01", AlbumType: models.AlbumTypeAlbum},
		models.Album{ID: "al2", Label: "Big Label", Popularity: 60, ArtistIDs: []string{"a2"}, ReleaseDate: "1999-07-01", AlbumType: models.AlbumTypeSingle},
		models.Album{ID: "al3", Label: "Big Label", Popularity: 70, ArtistIDs: []string{"a1"}, ReleaseDate: "2004-01-01", AlbumType: models.AlbumTypeAlbum},
		models.Album{ID: "al4", Label: "Mid Label", Popularity: 50, ArtistIDs: []string{"a3"}, ReleaseDate: "2004-06-01", AlbumType: models.AlbumTypeAlbum},
		models.Album{ID: "al5", Label: "Mid Label", Popularity: 40, ArtistIDs: []string{"a3"}, ReleaseDate: "2005-01-01", AlbumType: models.AlbumTypeAlbum},
		models.Album{ID: "al6", Label: "Small Label", Popularity: 30, ArtistIDs: []string{"a4"}, ReleaseDate: "2011-02-01", AlbumType: models.AlbumTypeAlbum},
		models.Album{ID: "al7", Popularity: 90, ReleaseDate: "2012-01-01", AlbumType: models.AlbumTypeAlbum},
	)
	return store
}

func TestLabelStats(t *testing.T) {
	t.Parallel()

	svc := testService(seededStore())

	stats, err := svc.LabelStats(context.Background(), 3)
	if err != nil {
		t.Fatalf("LabelStats() error = %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d labels, want 3", len(stats))
	}

	top := stats[0]
	if top.Label != "Big Label" {
		t.Errorf("top label = %q, want Big Label", top.Label)
	}
	if top.AlbumCount != 3 {
		t.Errorf("Big Label album count = %d, want 3", top.AlbumCount)
	}
	if top.AvgPopularity != 70 {
		t.Errorf("Big Label avg popularity = %v, want 70", top.AvgPopularity)
	}
	if top.ArtistCount != 2 {
		t.Errorf("Big Label artist count = %d, want 2", top.ArtistCount)
	}

	// The unlabeled album must not surface as a pseudo-label.
	for _, s := range stats {
		if s.Label == "" {
			t.Error("empty label surfaced in stats")
		}
	}
}

func TestLabelStatsLimitPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 1, 1},
		{"zero uses default", 0, 2},
		{"negative uses default", -5, 2},
		{"above max is capped", 50, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := testService(seededStore())
			stats, err := svc.LabelStats(context.Background(), tt.limit)
			if err != nil {
				t.Fatalf("LabelStats(%d) error = %v", tt.limit, err)
			}
			if len(stats) != tt.want {
				t.Errorf("LabelStats(%d) returned %d labels, want %d", tt.limit, len(stats), tt.want)
			}
		})
	}
}

func TestReleaseCohortsByYear(t *testing.T) {
	t.Parallel()

	svc := testService(seededStore())

	cohorts, err := svc.ReleaseCohorts(context.Background(), "year")
	if err != nil {
		t.Fatalf("ReleaseCohorts() error = %v", err)
	}

	wantPeriods := []string{"1998", "1999", "2004", "2005", "2011", "2012"}
	if len(cohorts) != len(wantPeriods) {
		t.Fatalf("got %d cohorts, want %d", len(cohorts), len(wantPeriods))
	}
	for i, p := range wantPeriods {
		if cohorts[i].Period != p {
			t.Errorf("cohort[%d].Period = %q, want %q (chronological)", i, cohorts[i].Period, p)
		}
	}

	y2004 := cohorts[2]
	if y2004.AlbumCount != 2 || y2004.SingleCount != 0 || y2004.TotalReleases != 2 {
		t.Errorf("2004 cohort = %+v, want 2 albums", y2004)
	}

	y1999 := cohorts[1]
	if y1999.SingleCount != 1 || y1999.AlbumCount != 0 || y1999.TotalReleases != 1 {
		t.Errorf("1999 cohort = %+v, want 1 single", y1999)
	}
}

func TestReleaseCohortsByDecade(t *testing.T) {
	t.Parallel()

	svc := testService(seededStore())

	cohorts, err := svc.ReleaseCohorts(context.Background(), "decade")
	if err != nil {
		t.Fatalf("ReleaseCohorts() error = %v", err)
	}

	wantPeriods := []string{"1990", "2000", "2010"}
	if len(cohorts) != len(wantPeriods) {
		t.Fatalf("got %d cohorts, want %d", len(cohorts), len(wantPeriods))
	}
	for i, p := range wantPeriods {
		if cohorts[i].Period != p {
			t.Errorf("cohort[%d].Period = %q, want %q", i, cohorts[i].Period, p)
		}
	}
	if cohorts[1].TotalReleases != 3 {
		t.Errorf("2000s total releases = %d, want 3", cohorts[1].TotalReleases)
	}
}

func TestReleaseCohortsGranularityValidation(t *testing.T) {
	t.Parallel()

	svc := testService(seededStore())

	if _, err := svc.ReleaseCohorts(context.Background(), "century"); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("ReleaseCohorts(century) error = %v, want ErrInvalidGranularity", err)
	}

	cohorts, err := svc.ReleaseCohorts(context.Background(), "")
	if err != nil {
		t.Fatalf("ReleaseCohorts(\"\") error = %v", err)
	}
	if len(cohorts) == 0 || cohorts[0].Period != "1998" {
		t.Error("empty granularity did not default to yearly cohorts")
	}
}

func TestAnalyticsEmptyCatalog(t *testing.T) {
	t.Parallel()

	svc := testService(catalog.NewMemoryStore())

	stats, err := svc.LabelStats(context.Background(), 0)
	if err != nil {
		t.Fatalf("LabelStats() error = %v", err)
	}
	if stats == nil || len(stats) != 0 {
		t.Errorf("stats = %v, want empty non-nil slice", stats)
	}

	cohorts, err := svc.ReleaseCohorts(context.Background(), "year")
	if err != nil {
		t.Fatalf("ReleaseCohorts() error = %v", err)
	}
	if cohorts == nil || len(cohorts) != 0 {
		t.Errorf("cohorts = %v, want empty non-nil slice", cohorts)
	}
}
