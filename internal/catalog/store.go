// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package catalog provides read access to the music catalog collections
// (artists, albums, tracks, users) populated by the Spotify ingestion
// pipeline.
//
// The Store interface is the only seam between the analytics components
// and MongoDB. All reference resolution happens through explicit id-set
// lookups here, never through implicit joins, so exclusion and ordering
// policy stays in the calling component where it is testable.
//
// The catalog is written by the ingestion pipeline and treated as
// eventually consistent; the single write this service performs is the
// per-user recommendation cache sub-record.
package catalog

import (
	"context"
	"errors"

	"github.com/discograph/discograph/internal/models"
)

// ErrNotFound is returned when a referenced document does not exist.
var ErrNotFound = errors.New("document not found")

// CohortGranularity selects the release-cohort bucket size.
type CohortGranularity string

const (
	CohortByYear   CohortGranularity = "year"
	CohortByDecade CohortGranularity = "decade"
)

// RecentAlbumsQuery bounds the recent-releases lookup. When Genres is
// empty the query is genre-agnostic and MinPopularity applies instead.
type RecentAlbumsQuery struct {
	// Since is an ISO-8601 date prefix; albums released on or after it
	// qualify. Release dates compare bytewise.
	Since string

	Genres        []string
	ExcludeIDs    []string
	MinPopularity int
	Limit         int
}

// Store is the catalog read surface plus the single cache write.
//
// Every method propagates store errors unchanged; callers perform no
// retries and no partial-result degradation.
type Store interface {
	// Ping verifies store connectivity, for readiness checks.
	Ping(ctx context.Context) error

	// User returns a user profile, or ErrNotFound.
	User(ctx context.Context, id string) (*models.UserProfile, error)

	// SaveRecommendationCache persists the compact recommendation result
	// on the user document.
	SaveRecommendationCache(ctx context.Context, userID string, cache *models.RecommendationCache) error

	// Id-set lookups used for late resolution of entity references.
	// Result order is unspecified; callers re-order by their own id lists.
	ArtistsByIDs(ctx context.Context, ids []string) ([]models.Artist, error)
	AlbumsByIDs(ctx context.Context, ids []string) ([]models.Album, error)
	TracksByIDs(ctx context.Context, ids []string) ([]models.Track, error)

	// ArtistsByGenres returns artists whose genre tags intersect genres,
	// excluding excludeIDs, sorted by popularity descending.
	ArtistsByGenres(ctx context.Context, genres, excludeIDs []string, limit int) ([]models.Artist, error)

	// PopularArtists returns artists sorted by popularity descending,
	// excluding excludeIDs.
	PopularArtists(ctx context.Context, excludeIDs []string, limit int) ([]models.Artist, error)

	// AlbumsByLabels returns albums from the given labels, excluding
	// excludeIDs, sorted by popularity descending.
	AlbumsByLabels(ctx context.Context, labels, excludeIDs []string, limit int) ([]models.Album, error)

	// RecentAlbums returns albums matching q, sorted by release date
	// descending.
	RecentAlbums(ctx context.Context, q RecentAlbumsQuery) ([]models.Album, error)

	// TracksByArtists returns tracks credited to any of artistIDs,
	// excluding excludeIDs, sorted by popularity descending.
	TracksByArtists(ctx context.Context, artistIDs, excludeIDs []string, limit int) ([]models.Track, error)

	// TrendingTracks returns tracks with popularity >= minPopularity,
	// excluding excludeIDs, sorted by popularity descending.
	TrendingTracks(ctx context.Context, minPopularity int, excludeIDs []string, limit int) ([]models.Track, error)

	// CollaborativeTracks returns tracks crediting more than one artist
	// where at least one credited artist is in artistIDs (any-match
	// pre-filter; callers intersect precisely).
	CollaborativeTracks(ctx context.Context, artistIDs []string) ([]models.Track, error)

	// LabelStats aggregates albums per label, sorted by album count
	// descending.
	LabelStats(ctx context.Context, limit int) ([]models.LabelStat, error)

	// ReleaseCohorts buckets albums by release period in chronological
	// order.
	ReleaseCohorts(ctx context.Context, granularity CohortGranularity) ([]models.ReleaseCohort, error)
}
