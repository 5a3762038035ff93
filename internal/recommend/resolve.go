// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package recommend

import (
	"context"
	"fmt"

	"github.com/discograph/discograph/internal/models"
)

// resolveCached rebuilds a feed from the persisted ID lists, fetching the
// current entity documents so metadata stays live. IDs that no longer
// resolve are dropped; sections left empty after resolution are omitted.
func (e *Engine) resolveCached(ctx context.Context, cache *models.RecommendationCache) (*Response, error) {
	sections := make([]Section, 0, len(cache.Sections))
	for _, cs := range cache.Sections {
		items, err := e.resolveItems(ctx, ItemType(cs.Type), cs.ItemIDs)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			continue
		}
		sections = append(sections, Section{
			Title:       cs.Title,
			Description: cs.Description,
			Icon:        cs.Icon,
			Type:        ItemType(cs.Type),
			Items:       items,
		})
	}
	return &Response{Sections: sections, Cached: true}, nil
}

// resolveItems fetches the documents behind ids and reorders them to the
// cached ranking. The store returns id-set results in unspecified order.
func (e *Engine) resolveItems(ctx context.Context, typ ItemType, ids []string) ([]SectionItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	byID := make(map[string]SectionItem, len(ids))
	switch typ {
	case ItemTypeArtist:
		artists, err := e.store.ArtistsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve artists: %w", err)
		}
		for _, a := range artists {
			byID[a.ID] = artistItem(a)
		}
	case ItemTypeAlbum:
		albums, err := e.store.AlbumsByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve albums: %w", err)
		}
		for _, a := range albums {
			byID[a.ID] = albumItem(a)
		}
	case ItemTypeTrack:
		tracks, err := e.store.TracksByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("resolve tracks: %w", err)
		}
		for _, t := range tracks {
			byID[t.ID] = trackItem(t)
		}
	default:
		return nil, fmt.Errorf("resolve items: unknown item type %q", typ)
	}

	items := make([]SectionItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}
