// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package models

import "time"

// Album types as stored by the ingestion pipeline.
const (
	AlbumTypeAlbum       = "album"
	AlbumTypeSingle      = "single"
	AlbumTypeCompilation = "compilation"
)

// Artist is a catalog artist document. Immutable from this service's
// perspective; the ingestion pipeline owns all writes.
type Artist struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	Popularity  int      `bson:"popularity" json:"popularity"` // 0-100
	Followers   int      `bson:"followers" json:"followers"`
	Genres      []string `bson:"genres" json:"genres"`
	Images      []string `bson:"images" json:"images"`
	ExternalURL string   `bson:"external_url" json:"external_url"`
}

// Image returns the first display image, or empty string when none exists.
func (a *Artist) Image() string {
	if len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// Album is a catalog album document. ReleaseDate is an ISO-8601 prefix
// string ("2006", "2006-01" or "2006-01-02") and is byte-comparable.
type Album struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"`
	AlbumType   string   `bson:"album_type" json:"album_type"`
	ReleaseDate string   `bson:"release_date" json:"release_date"`
	Popularity  int      `bson:"popularity" json:"popularity"`
	Label       string   `bson:"label" json:"label"`
	ArtistIDs   []string `bson:"artist_ids" json:"artist_ids"`
	TrackIDs    []string `bson:"track_ids" json:"track_ids"`
	Genres      []string `bson:"genres" json:"genres"`
	Images      []string `bson:"images" json:"images"`
}

// Track is a catalog track document. More than one artist ID marks the
// track as a collaboration.
type Track struct {
	ID         string   `bson:"_id" json:"id"`
	Name       string   `bson:"name" json:"name"`
	Popularity int      `bson:"popularity" json:"popularity"`
	DurationMS int      `bson:"duration_ms" json:"duration_ms"`
	Explicit   bool     `bson:"explicit" json:"explicit"`
	ArtistIDs  []string `bson:"artist_ids" json:"artist_ids"`
	AlbumID    string   `bson:"album_id" json:"album_id"`
}

// IsCollaboration reports whether the track credits multiple artists.
func (t *Track) IsCollaboration() bool {
	return len(t.ArtistIDs) > 1
}

// UserProfile holds a user's library references and the persisted
// recommendation cache sub-record.
type UserProfile struct {
	ID                string               `bson:"_id" json:"id"`
	LikedTrackIDs     []string             `bson:"liked_track_ids" json:"liked_track_ids"`
	LikedAlbumIDs     []string             `bson:"liked_album_ids" json:"liked_album_ids"`
	FavoriteArtistIDs []string             `bson:"favorite_artist_ids" json:"favorite_artist_ids"`
	Recommendations   *RecommendationCache `bson:"recommendation_cache,omitempty" json:"recommendation_cache,omitempty"`
}

// RecommendationCache is the compact per-user result cache written back to
// the user document. Only item IDs are persisted; full entities are
// re-resolved against the live catalog on every cache hit.
type RecommendationCache struct {
	Sections    []CachedSection `bson:"sections" json:"sections"`
	LastUpdated time.Time       `bson:"last_updated" json:"last_updated"`
}

// CachedSection is the persisted form of a recommendation section, with
// resolved entities stripped down to their IDs.
type CachedSection struct {
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Icon        string   `bson:"icon" json:"icon"`
	Type        string   `bson:"type" json:"type"`
	ItemIDs     []string `bson:"item_ids" json:"item_ids"`
}

// Fresh reports whether the cache was updated within the given window.
func (c *RecommendationCache) Fresh(now time.Time, ttl time.Duration) bool {
	if c == nil {
		return false
	}
	return now.Sub(c.LastUpdated) < ttl
}
