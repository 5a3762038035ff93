// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package recommend

import (
	"context"
	"fmt"

	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/models"
)

// exclusions carries the user's existing library IDs so no section ever
// recommends something the user already has. Each entity kind excludes
// only its own kind.
type exclusions struct {
	artistIDs []string
	albumIDs  []string
	trackIDs  []string
}

func newExclusions(user *models.UserProfile) *exclusions {
	return &exclusions{
		artistIDs: user.FavoriteArtistIDs,
		albumIDs:  user.LikedAlbumIDs,
		trackIDs:  user.LikedTrackIDs,
	}
}

// similarArtistsSection recommends artists sharing genres with the user's
// taste. Skipped when the profile has no genres.
func (e *Engine) similarArtistsSection(ctx context.Context, profile *preferenceProfile, excl *exclusions) (*Section, error) {
	genres := profile.genreKeys()
	if len(genres) == 0 {
		return nil, nil
	}

	artists, err := e.store.ArtistsByGenres(ctx, genres, excl.artistIDs, e.cfg.SimilarArtistLimit)
	if err != nil {
		return nil, fmt.Errorf("similar artists: %w", err)
	}

	items := make([]SectionItem, 0, len(artists))
	for _, a := range artists {
		items = append(items, artistItem(a))
	}
	return &Section{
		Title:       "Similar Artists",
		Description: "Artists who sound like the ones you love",
		Icon:        "users",
		Type:        ItemTypeArtist,
		Items:       items,
	}, nil
}

// labelAlbumsSection recommends albums from the user's most-liked record
// labels. Skipped when no label signal exists.
func (e *Engine) labelAlbumsSection(ctx context.Context, profile *preferenceProfile, excl *exclusions) (*Section, error) {
	labels := profile.topLabels(e.cfg.TopLabelCount)
	if len(labels) == 0 {
		return nil, nil
	}

	albums, err := e.store.AlbumsByLabels(ctx, labels, excl.albumIDs, e.cfg.LabelAlbumLimit)
	if err != nil {
		return nil, fmt.Errorf("label albums: %w", err)
	}

	items := make([]SectionItem, 0, len(albums))
	for _, a := range albums {
		items = append(items, albumItem(a))
	}
	return &Section{
		Title:       "From Your Favorite Labels",
		Description: "New and notable albums from labels you follow",
		Icon:        "disc",
		Type:        ItemTypeAlbum,
		Items:       items,
	}, nil
}

// recentAlbumsSection recommends recent releases, scoped to the user's
// genres when known and to a popularity floor otherwise.
func (e *Engine) recentAlbumsSection(ctx context.Context, profile *preferenceProfile, excl *exclusions) (*Section, error) {
	q := catalog.RecentAlbumsQuery{
		Since:      e.now().Add(-e.cfg.RecentWindow).Format("2006-01-02"),
		ExcludeIDs: excl.albumIDs,
		Limit:      e.cfg.RecentAlbumLimit,
	}
	if genres := profile.genreKeys(); len(genres) > 0 {
		q.Genres = genres
	} else {
		q.MinPopularity = e.cfg.FallbackMinPopularity
	}

	albums, err := e.store.RecentAlbums(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("recent albums: %w", err)
	}

	items := make([]SectionItem, 0, len(albums))
	for _, a := range albums {
		items = append(items, albumItem(a))
	}
	return &Section{
		Title:       "New Releases For You",
		Description: "Fresh albums picked for your taste",
		Icon:        "sparkles",
		Type:        ItemTypeAlbum,
		Items:       items,
	}, nil
}

// genreTracksSection recommends popular tracks by artists in the user's
// genres. Skipped when the profile has no genres.
func (e *Engine) genreTracksSection(ctx context.Context, profile *preferenceProfile, excl *exclusions) (*Section, error) {
	genres := profile.genreKeys()
	if len(genres) == 0 {
		return nil, nil
	}

	artists, err := e.store.ArtistsByGenres(ctx, genres, nil, e.cfg.GenreArtistScanLimit)
	if err != nil {
		return nil, fmt.Errorf("genre tracks: %w", err)
	}
	if len(artists) == 0 {
		return nil, nil
	}

	artistIDs := make([]string, len(artists))
	for i, a := range artists {
		artistIDs[i] = a.ID
	}

	tracks, err := e.store.TracksByArtists(ctx, artistIDs, excl.trackIDs, e.cfg.GenreTrackLimit)
	if err != nil {
		return nil, fmt.Errorf("genre tracks: %w", err)
	}

	items := make([]SectionItem, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, trackItem(t))
	}
	return &Section{
		Title:       "Popular In Your Genres",
		Description: "Top tracks from your favorite genres",
		Icon:        "music",
		Type:        ItemTypeTrack,
		Items:       items,
	}, nil
}

// trendingTracksSection recommends the most popular tracks catalog-wide,
// independent of the user's profile.
func (e *Engine) trendingTracksSection(ctx context.Context, _ *preferenceProfile, excl *exclusions) (*Section, error) {
	tracks, err := e.store.TrendingTracks(ctx, e.cfg.TrendingMinPopularity, excl.trackIDs, e.cfg.TrendingTrackLimit)
	if err != nil {
		return nil, fmt.Errorf("trending tracks: %w", err)
	}

	items := make([]SectionItem, 0, len(tracks))
	for _, t := range tracks {
		items = append(items, trackItem(t))
	}
	return &Section{
		Title:       "Trending Now",
		Description: "What everyone is listening to right now",
		Icon:        "flame",
		Type:        ItemTypeTrack,
		Items:       items,
	}, nil
}

// popularArtistsSection is the cold-start fallback, appended when the
// profile is empty or too few sections materialized.
func (e *Engine) popularArtistsSection(ctx context.Context, excl *exclusions) (*Section, error) {
	artists, err := e.store.PopularArtists(ctx, excl.artistIDs, e.cfg.PopularArtistLimit)
	if err != nil {
		return nil, fmt.Errorf("popular artists: %w", err)
	}

	items := make([]SectionItem, 0, len(artists))
	for _, a := range artists {
		items = append(items, artistItem(a))
	}
	return &Section{
		Title:       "Popular Artists",
		Description: "The biggest names in the catalog",
		Icon:        "star",
		Type:        ItemTypeArtist,
		Items:       items,
	}, nil
}
