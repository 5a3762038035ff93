// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package models

// LabelStat is one row of the label aggregation: how many albums a label
// has released, their average popularity, and how many distinct artists
// appear on them.
type LabelStat struct {
	Label         string  `bson:"_id" json:"label"`
	AlbumCount    int     `bson:"album_count" json:"album_count"`
	AvgPopularity float64 `bson:"avg_popularity" json:"avg_popularity"`
	ArtistCount   int     `bson:"artist_count" json:"artist_count"`
}

// ReleaseCohort buckets albums by release period (a year like "1998" or a
// decade like "1990") with per-type counts.
type ReleaseCohort struct {
	Period        string  `bson:"_id" json:"period"`
	AlbumCount    int     `bson:"album_count" json:"album_count"`
	SingleCount   int     `bson:"single_count" json:"single_count"`
	TotalReleases int     `bson:"total_releases" json:"total_releases"`
	AvgPopularity float64 `bson:"avg_popularity" json:"avg_popularity"`
}
