// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package models

// Collaboration is one undirected artist pair with its co-occurrence count.
// Artist1 < Artist2 lexicographically so that (A,B) and (B,A) collapse to
// the same pair.
type Collaboration struct {
	Artist1 string `json:"artist1"`
	Artist2 string `json:"artist2"`
	Count   int    `json:"count"`
}

// GraphNode is an artist node in the collaboration graph, carrying just
// enough metadata for presentation.
type GraphNode struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Image      string   `json:"image"`
	Popularity int      `json:"popularity"`
	Followers  int      `json:"followers"`
	Genres     []string `json:"genres"`
}

// GraphEdge is a weighted undirected edge between two artist nodes.
type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight"`
}

// GraphStats summarizes a collaboration graph build.
//
// CollaborativeTracks counts multi-artist tracks fetched before the
// minimum-weight threshold was applied; TotalEdges and NodeCount are
// post-threshold.
type GraphStats struct {
	TotalEdges          int `json:"total_edges"`
	CollaborativeTracks int `json:"collaborative_tracks"`
	NodeCount           int `json:"node_count"`
}

// CollaborationGraph is the full point-in-time result of a graph build.
// It is never persisted; every request recomputes it.
type CollaborationGraph struct {
	Collaborations []Collaboration `json:"collaborations"`
	Nodes          []GraphNode     `json:"nodes"`
	Edges          []GraphEdge     `json:"edges"`
	Stats          GraphStats      `json:"stats"`
}
