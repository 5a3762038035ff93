// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package recommend

import "github.com/discograph/discograph/internal/models"

// ItemType discriminates the entity kind a section recommends.
type ItemType string

const (
	ItemTypeArtist ItemType = "artist"
	ItemTypeAlbum  ItemType = "album"
	ItemTypeTrack  ItemType = "track"
)

// SectionItem is a tagged union of the three catalog entity kinds.
// Exactly one of Artist, Album, Track is set, matching Type, so consumers
// can branch exhaustively without runtime shape checks.
type SectionItem struct {
	Type   ItemType       `json:"type"`
	Artist *models.Artist `json:"artist,omitempty"`
	Album  *models.Album  `json:"album,omitempty"`
	Track  *models.Track  `json:"track,omitempty"`
}

// ID returns the wrapped entity's ID.
func (si SectionItem) ID() string {
	switch si.Type {
	case ItemTypeArtist:
		return si.Artist.ID
	case ItemTypeAlbum:
		return si.Album.ID
	case ItemTypeTrack:
		return si.Track.ID
	}
	return ""
}

func artistItem(a models.Artist) SectionItem {
	return SectionItem{Type: ItemTypeArtist, Artist: &a}
}

func albumItem(a models.Album) SectionItem {
	return SectionItem{Type: ItemTypeAlbum, Album: &a}
}

func trackItem(t models.Track) SectionItem {
	return SectionItem{Type: ItemTypeTrack, Track: &t}
}

// Section is one ranked recommendation block. Sections with zero items
// are never returned.
type Section struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Type        ItemType      `json:"type"`
	Items       []SectionItem `json:"items"`
}

// cached converts the section to its persisted form, stripping resolved
// entities down to their IDs.
func (s Section) cached() models.CachedSection {
	ids := make([]string, len(s.Items))
	for i, item := range s.Items {
		ids[i] = item.ID()
	}
	return models.CachedSection{
		Title:       s.Title,
		Description: s.Description,
		Icon:        s.Icon,
		Type:        string(s.Type),
		ItemIDs:     ids,
	}
}

// Response is the full recommendation result for one user.
type Response struct {
	Sections []Section `json:"sections"`

	// Cached reports whether the response was served from the persisted
	// per-user cache (selection stale, entities live).
	Cached bool `json:"-"`
}
