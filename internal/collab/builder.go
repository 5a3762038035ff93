// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package collab builds the artist collaboration graph: the most popular
// artists in a configured set of target genres become candidate nodes,
// multi-artist tracks crediting at least one candidate become evidence,
// and every unordered candidate pair co-credited on a track becomes a
// weighted edge. The graph is recomputed on every request from the live
// catalog.
package collab

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/metrics"
	"github.com/discograph/discograph/internal/models"
)

// pairKey is a canonical unordered artist pair, A < B lexicographically.
type pairKey struct {
	a, b string
}

func newPairKey(x, y string) pairKey {
	if x < y {
		return pairKey{a: x, b: y}
	}
	return pairKey{a: y, b: x}
}

// Builder computes collaboration graphs. Safe for concurrent use.
type Builder struct {
	store  catalog.Store
	cfg    config.CollabConfig
	logger zerolog.Logger
}

// NewBuilder constructs a Builder over the given catalog store.
func NewBuilder(store catalog.Store, cfg config.CollabConfig, logger zerolog.Logger) *Builder {
	return &Builder{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "collab").Logger(),
	}
}

// Build computes the collaboration graph, keeping only pairs that
// co-occur on at least minCount tracks. Raising minCount can only shrink
// the result. A minCount below 1 is treated as 1.
func (b *Builder) Build(ctx context.Context, minCount int) (*models.CollaborationGraph, error) {
	start := time.Now()
	if minCount < 1 {
		minCount = 1
	}

	candidates, err := b.store.ArtistsByGenres(ctx, b.cfg.TargetGenres, nil, b.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("collab candidates: %w", err)
	}

	candidateByID := make(map[string]*models.Artist, len(candidates))
	candidateIDs := make([]string, len(candidates))
	for i := range candidates {
		candidateByID[candidates[i].ID] = &candidates[i]
		candidateIDs[i] = candidates[i].ID
	}

	graph := &models.CollaborationGraph{
		Collaborations: []models.Collaboration{},
		Nodes:          []models.GraphNode{},
		Edges:          []models.GraphEdge{},
	}
	if len(candidates) == 0 {
		metrics.RecordCollabBuild(0, time.Since(start))
		return graph, nil
	}

	tracks, err := b.store.CollaborativeTracks(ctx, candidateIDs)
	if err != nil {
		return nil, fmt.Errorf("collab tracks: %w", err)
	}
	graph.Stats.CollaborativeTracks = len(tracks)

	counts := b.countPairs(tracks, candidateByID)

	pairs := make([]pairKey, 0, len(counts))
	for pk, n := range counts {
		if n >= minCount {
			pairs = append(pairs, pk)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if counts[pairs[i]] != counts[pairs[j]] {
			return counts[pairs[i]] > counts[pairs[j]]
		}
		if pairs[i].a != pairs[j].a {
			return pairs[i].a < pairs[j].a
		}
		return pairs[i].b < pairs[j].b
	})

	connected := make(map[string]struct{})
	for _, pk := range pairs {
		graph.Collaborations = append(graph.Collaborations, models.Collaboration{
			Artist1: pk.a,
			Artist2: pk.b,
			Count:   counts[pk],
		})
		graph.Edges = append(graph.Edges, models.GraphEdge{
			Source: pk.a,
			Target: pk.b,
			Weight: counts[pk],
		})
		connected[pk.a] = struct{}{}
		connected[pk.b] = struct{}{}
	}

	// Nodes cover only artists with at least one surviving edge, in
	// candidate (popularity) order.
	for i := range candidates {
		a := &candidates[i]
		if _, ok := connected[a.ID]; !ok {
			continue
		}
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:         a.ID,
			Name:       a.Name,
			Image:      a.Image(),
			Popularity: a.Popularity,
			Followers:  a.Followers,
			Genres:     a.Genres,
		})
	}

	graph.Stats.TotalEdges = len(graph.Edges)
	graph.Stats.NodeCount = len(graph.Nodes)

	metrics.RecordCollabBuild(len(graph.Edges), time.Since(start))
	b.logger.Info().
		Int("min_count", minCount).
		Int("candidates", len(candidates)).
		Int("collaborative_tracks", graph.Stats.CollaborativeTracks).
		Int("edges", graph.Stats.TotalEdges).
		Int("nodes", graph.Stats.NodeCount).
		Msg("built collaboration graph")
	return graph, nil
}

// countPairs tallies unordered candidate pairs across tracks. Artists on
// a track who are not candidates are ignored; a track contributes one
// count to every pair among its candidate artists.
func (b *Builder) countPairs(tracks []models.Track, candidateByID map[string]*models.Artist) map[pairKey]int {
	counts := make(map[pairKey]int)
	for _, t := range tracks {
		var onTrack []string
		seen := make(map[string]struct{}, len(t.ArtistIDs))
		for _, id := range t.ArtistIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			if _, ok := candidateByID[id]; ok {
				onTrack = append(onTrack, id)
			}
		}
		for i := 0; i < len(onTrack); i++ {
			for j := i + 1; j < len(onTrack); j++ {
				counts[newPairKey(onTrack[i], onTrack[j])]++
			}
		}
	}
	return counts
}
