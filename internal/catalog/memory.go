// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/discograph/discograph/internal/models"
)

// MemoryStore is an in-memory Store used by unit tests across packages.
// It applies the same filter, exclusion, sort, and limit semantics as the
// Mongo implementation, with deterministic ID tie-breaking.
type MemoryStore struct {
	mu      sync.RWMutex
	artists map[string]models.Artist
	albums  map[string]models.Album
	tracks  map[string]models.Track
	users   map[string]models.UserProfile

	// CacheWrites counts SaveRecommendationCache calls, letting tests
	// assert whether the compute path ran.
	CacheWrites int

	// FailPing makes Ping return an error.
	FailPing error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		artists: make(map[string]models.Artist),
		albums:  make(map[string]models.Album),
		tracks:  make(map[string]models.Track),
		users:   make(map[string]models.UserProfile),
	}
}

// AddArtists seeds artist documents.
func (m *MemoryStore) AddArtists(artists ...models.Artist) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range artists {
		m.artists[a.ID] = a
	}
}

// AddAlbums seeds album documents.
func (m *MemoryStore) AddAlbums(albums ...models.Album) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range albums {
		m.albums[a.ID] = a
	}
}

// AddTracks seeds track documents.
func (m *MemoryStore) AddTracks(tracks ...models.Track) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tracks {
		m.tracks[t.ID] = t
	}
}

// AddUsers seeds user profiles.
func (m *MemoryStore) AddUsers(users ...models.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range users {
		m.users[u.ID] = u
	}
}

// Ping implements Store.
func (m *MemoryStore) Ping(context.Context) error {
	return m.FailPing
}

// User implements Store.
func (m *MemoryStore) User(_ context.Context, id string) (*models.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := u
	return &copied, nil
}

// SaveRecommendationCache implements Store.
func (m *MemoryStore) SaveRecommendationCache(_ context.Context, userID string, cache *models.RecommendationCache) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CacheWrites++
	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.Recommendations = cache
	m.users[userID] = u
	return nil
}

// ArtistsByIDs implements Store.
func (m *MemoryStore) ArtistsByIDs(_ context.Context, ids []string) ([]models.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Artist
	for _, id := range ids {
		if a, ok := m.artists[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// AlbumsByIDs implements Store.
func (m *MemoryStore) AlbumsByIDs(_ context.Context, ids []string) ([]models.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Album
	for _, id := range ids {
		if a, ok := m.albums[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

// TracksByIDs implements Store.
func (m *MemoryStore) TracksByIDs(_ context.Context, ids []string) ([]models.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.Track
	for _, id := range ids {
		if t, ok := m.tracks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

// ArtistsByGenres implements Store.
func (m *MemoryStore) ArtistsByGenres(_ context.Context, genres, excludeIDs []string, limit int) ([]models.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(genres) == 0 {
		return nil, nil
	}
	excluded := idSet(excludeIDs)

	var out []models.Artist
	for _, a := range m.artists {
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		if intersects(a.Genres, genres) {
			out = append(out, a)
		}
	}
	sortArtistsByPopularity(out)
	return capArtists(out, limit), nil
}

// PopularArtists implements Store.
func (m *MemoryStore) PopularArtists(_ context.Context, excludeIDs []string, limit int) ([]models.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	excluded := idSet(excludeIDs)
	var out []models.Artist
	for _, a := range m.artists {
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		out = append(out, a)
	}
	sortArtistsByPopularity(out)
	return capArtists(out, limit), nil
}

// AlbumsByLabels implements Store.
func (m *MemoryStore) AlbumsByLabels(_ context.Context, labels, excludeIDs []string, limit int) ([]models.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(labels) == 0 {
		return nil, nil
	}
	excluded := idSet(excludeIDs)
	wanted := idSet(labels)

	var out []models.Album
	for _, a := range m.albums {
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		if _, ok := wanted[a.Label]; ok {
			out = append(out, a)
		}
	}
	sortAlbumsByPopularity(out)
	return capAlbums(out, limit), nil
}

// RecentAlbums implements Store.
func (m *MemoryStore) RecentAlbums(_ context.Context, q RecentAlbumsQuery) ([]models.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	excluded := idSet(q.ExcludeIDs)

	var out []models.Album
	for _, a := range m.albums {
		if _, skip := excluded[a.ID]; skip {
			continue
		}
		if a.ReleaseDate < q.Since {
			continue
		}
		if len(q.Genres) > 0 {
			if !intersects(a.Genres, q.Genres) {
				continue
			}
		} else if q.MinPopularity > 0 && a.Popularity < q.MinPopularity {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ReleaseDate != out[j].ReleaseDate {
			return out[i].ReleaseDate > out[j].ReleaseDate
		}
		return out[i].ID < out[j].ID
	})
	return capAlbums(out, q.Limit), nil
}

// TracksByArtists implements Store.
func (m *MemoryStore) TracksByArtists(_ context.Context, artistIDs, excludeIDs []string, limit int) ([]models.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(artistIDs) == 0 {
		return nil, nil
	}
	excluded := idSet(excludeIDs)

	var out []models.Track
	for _, t := range m.tracks {
		if _, skip := excluded[t.ID]; skip {
			continue
		}
		if intersects(t.ArtistIDs, artistIDs) {
			out = append(out, t)
		}
	}
	sortTracksByPopularity(out)
	return capTracks(out, limit), nil
}

// TrendingTracks implements Store.
func (m *MemoryStore) TrendingTracks(_ context.Context, minPopularity int, excludeIDs []string, limit int) ([]models.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	excluded := idSet(excludeIDs)

	var out []models.Track
	for _, t := range m.tracks {
		if _, skip := excluded[t.ID]; skip {
			continue
		}
		if t.Popularity >= minPopularity {
			out = append(out, t)
		}
	}
	sortTracksByPopularity(out)
	return capTracks(out, limit), nil
}

// CollaborativeTracks implements Store.
func (m *MemoryStore) CollaborativeTracks(_ context.Context, artistIDs []string) ([]models.Track, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(artistIDs) == 0 {
		return nil, nil
	}

	var out []models.Track
	for _, t := range m.tracks {
		if len(t.ArtistIDs) > 1 && intersects(t.ArtistIDs, artistIDs) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LabelStats implements Store.
func (m *MemoryStore) LabelStats(_ context.Context, limit int) ([]models.LabelStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type acc struct {
		count   int
		popSum  int
		artists map[string]struct{}
	}
	byLabel := make(map[string]*acc)
	for _, a := range m.albums {
		if a.Label == "" {
			continue
		}
		st, ok := byLabel[a.Label]
		if !ok {
			st = &acc{artists: make(map[string]struct{})}
			byLabel[a.Label] = st
		}
		st.count++
		st.popSum += a.Popularity
		for _, id := range a.ArtistIDs {
			st.artists[id] = struct{}{}
		}
	}

	out := make([]models.LabelStat, 0, len(byLabel))
	for label, st := range byLabel {
		out = append(out, models.LabelStat{
			Label:         label,
			AlbumCount:    st.count,
			AvgPopularity: float64(st.popSum) / float64(st.count),
			ArtistCount:   len(st.artists),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AlbumCount != out[j].AlbumCount {
			return out[i].AlbumCount > out[j].AlbumCount
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ReleaseCohorts implements Store.
func (m *MemoryStore) ReleaseCohorts(_ context.Context, granularity CohortGranularity) ([]models.ReleaseCohort, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byPeriod := make(map[string]*models.ReleaseCohort)
	popSums := make(map[string]int)
	for _, a := range m.albums {
		if len(a.ReleaseDate) < 4 {
			continue
		}
		period := a.ReleaseDate[:4]
		if granularity == CohortByDecade {
			period = period[:3] + "0"
		}

		c, ok := byPeriod[period]
		if !ok {
			c = &models.ReleaseCohort{Period: period}
			byPeriod[period] = c
		}
		switch a.AlbumType {
		case models.AlbumTypeAlbum:
			c.AlbumCount++
		case models.AlbumTypeSingle:
			c.SingleCount++
		}
		c.TotalReleases++
		popSums[period] += a.Popularity
	}

	out := make([]models.ReleaseCohort, 0, len(byPeriod))
	for period, c := range byPeriod {
		c.AvgPopularity = float64(popSums[period]) / float64(c.TotalReleases)
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out, nil
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// intersects matches exactly, mirroring Mongo's $in semantics.
func intersects(a, b []string) bool {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

func sortArtistsByPopularity(artists []models.Artist) {
	sort.Slice(artists, func(i, j int) bool {
		if artists[i].Popularity != artists[j].Popularity {
			return artists[i].Popularity > artists[j].Popularity
		}
		return artists[i].ID < artists[j].ID
	})
}

func sortAlbumsByPopularity(albums []models.Album) {
	sort.Slice(albums, func(i, j int) bool {
		if albums[i].Popularity != albums[j].Popularity {
			return albums[i].Popularity > albums[j].Popularity
		}
		return albums[i].ID < albums[j].ID
	})
}

func sortTracksByPopularity(tracks []models.Track) {
	sort.Slice(tracks, func(i, j int) bool {
		if tracks[i].Popularity != tracks[j].Popularity {
			return tracks[i].Popularity > tracks[j].Popularity
		}
		return tracks[i].ID < tracks[j].ID
	})
}

func capArtists(a []models.Artist, limit int) []models.Artist {
	if limit > 0 && len(a) > limit {
		return a[:limit]
	}
	return a
}

func capAlbums(a []models.Album, limit int) []models.Album {
	if limit > 0 && len(a) > limit {
		return a[:limit]
	}
	return a
}

func capTracks(t []models.Track, limit int) []models.Track {
	if limit > 0 && len(t) > limit {
		return t[:limit]
	}
	return t
}

// compile-time interface check
var _ Store = (*MemoryStore)(nil)
