// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package recommend

import (
	"context"
	"sort"
	"sync"

	"github.com/discograph/discograph/internal/models"
)

// preferenceProfile is the user's derived taste: plain frequency maps of
// genre and label occurrences across their library. Not a statistical
// model. Built per request and discarded; nothing is shared across
// requests.
type preferenceProfile struct {
	genres map[string]int
	labels map[string]int
}

func newPreferenceProfile() *preferenceProfile {
	return &preferenceProfile{
		genres: make(map[string]int),
		labels: make(map[string]int),
	}
}

// hasPreferences reports whether any signal was found in the library.
func (p *preferenceProfile) hasPreferences() bool {
	return len(p.genres) > 0 || len(p.labels) > 0
}

// genreKeys returns the preferred genres, sorted for deterministic
// queries.
func (p *preferenceProfile) genreKeys() []string {
	keys := make([]string, 0, len(p.genres))
	for g := range p.genres {
		keys = append(keys, g)
	}
	sort.Strings(keys)
	return keys
}

// topLabels returns the n most frequent labels, ties broken by name.
func (p *preferenceProfile) topLabels(n int) []string {
	labels := make([]string, 0, len(p.labels))
	for l := range p.labels {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool {
		if p.labels[labels[i]] != p.labels[labels[j]] {
			return p.labels[labels[i]] > p.labels[labels[j]]
		}
		return labels[i] < labels[j]
	})
	if len(labels) > n {
		labels = labels[:n]
	}
	return labels
}

// merge adds the counts of other into p. Counter addition commutes, so
// the order the fan-out goroutines complete in does not affect the
// result.
func (p *preferenceProfile) merge(other *preferenceProfile) {
	for g, n := range other.genres {
		p.genres[g] += n
	}
	for l, n := range other.labels {
		p.labels[l] += n
	}
}

// buildProfile derives the preference profile from the user's library.
// The three independent reads (favorite artists, liked albums, artists
// behind liked tracks) fan out concurrently into disjoint accumulators.
// Any read failure fails the whole build.
func (e *Engine) buildProfile(ctx context.Context, user *models.UserProfile) (*preferenceProfile, error) {
	parts := make([]*preferenceProfile, 3)
	errs := make([]error, 3)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		parts[0], errs[0] = e.favoriteArtistGenres(ctx, user.FavoriteArtistIDs)
	}()
	go func() {
		defer wg.Done()
		parts[1], errs[1] = e.likedAlbumPreferences(ctx, user.LikedAlbumIDs)
	}()
	go func() {
		defer wg.Done()
		parts[2], errs[2] = e.likedTrackArtistGenres(ctx, user.LikedTrackIDs)
	}()

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	profile := newPreferenceProfile()
	for _, part := range parts {
		profile.merge(part)
	}
	return profile, nil
}

// favoriteArtistGenres counts genre tags across the user's favorite
// artists.
func (e *Engine) favoriteArtistGenres(ctx context.Context, artistIDs []string) (*preferenceProfile, error) {
	p := newPreferenceProfile()
	if len(artistIDs) == 0 {
		return p, nil
	}

	artists, err := e.store.ArtistsByIDs(ctx, artistIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range artists {
		for _, g := range a.Genres {
			p.genres[g]++
		}
	}
	return p, nil
}

// likedAlbumPreferences counts genre tags and label names across the
// user's liked albums.
func (e *Engine) likedAlbumPreferences(ctx context.Context, albumIDs []string) (*preferenceProfile, error) {
	p := newPreferenceProfile()
	if len(albumIDs) == 0 {
		return p, nil
	}

	albums, err := e.store.AlbumsByIDs(ctx, albumIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range albums {
		for _, g := range a.Genres {
			p.genres[g]++
		}
		if a.Label != "" {
			p.labels[a.Label]++
		}
	}
	return p, nil
}

// likedTrackArtistGenres counts genre tags of the artists credited on
// the user's liked tracks, de-duplicating artist IDs first.
func (e *Engine) likedTrackArtistGenres(ctx context.Context, trackIDs []string) (*preferenceProfile, error) {
	p := newPreferenceProfile()
	if len(trackIDs) == 0 {
		return p, nil
	}

	tracks, err := e.store.TracksByIDs(ctx, trackIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var artistIDs []string
	for _, t := range tracks {
		for _, id := range t.ArtistIDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			artistIDs = append(artistIDs, id)
		}
	}
	if len(artistIDs) == 0 {
		return p, nil
	}

	artists, err := e.store.ArtistsByIDs(ctx, artistIDs)
	if err != nil {
		return nil, err
	}
	for _, a := range artists {
		for _, g := range a.Genres {
			p.genres[g]++
		}
	}
	return p, nil
}
