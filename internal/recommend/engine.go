// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package recommend builds per-user recommendation feeds from the music
// catalog. A feed is an ordered list of themed sections (similar artists,
// label picks, recent releases, genre tracks, trending, popular fallback),
// each capped and resolved to live catalog entities.
//
// Results are cached per user as compact ID lists on the user document.
// A warm hit re-resolves those IDs against the live catalog, so entity
// metadata is always current even when the selection is up to a day old.
package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/metrics"
	"github.com/discograph/discograph/internal/models"
)

// ErrUserNotFound is returned when the requested user does not exist.
var ErrUserNotFound = errors.New("user not found")

// Engine computes recommendation feeds. Safe for concurrent use; all
// per-request state lives on the stack.
type Engine struct {
	store  catalog.Store
	cfg    config.RecommendConfig
	logger zerolog.Logger

	// now is swappable for freshness-boundary tests.
	now func() time.Time
}

// NewEngine constructs an Engine over the given catalog store.
func NewEngine(store catalog.Store, cfg config.RecommendConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}
}

// Recommend returns the recommendation feed for userID, serving the
// persisted cache when it is still within the TTL and computing a fresh
// feed otherwise. A failed cache write is logged and the computed feed is
// returned anyway.
func (e *Engine) Recommend(ctx context.Context, userID string) (*Response, error) {
	start := e.now()

	user, err := e.store.User(ctx, userID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if user.Recommendations != nil && user.Recommendations.Fresh(e.now(), e.cfg.CacheTTL) {
		resp, err := e.resolveCached(ctx, user.Recommendations)
		if err != nil {
			return nil, err
		}
		metrics.RecordRecommendation(true, len(resp.Sections), e.now().Sub(start))
		e.logger.Debug().
			Str("user_id", userID).
			Int("sections", len(resp.Sections)).
			Msg("served cached recommendations")
		return resp, nil
	}

	resp, err := e.compute(ctx, user)
	if err != nil {
		return nil, err
	}

	cache := &models.RecommendationCache{
		Sections:    make([]models.CachedSection, len(resp.Sections)),
		LastUpdated: e.now(),
	}
	for i, s := range resp.Sections {
		cache.Sections[i] = s.cached()
	}
	if err := e.store.SaveRecommendationCache(ctx, userID, cache); err != nil {
		e.logger.Warn().Err(err).
			Str("user_id", userID).
			Msg("failed to persist recommendation cache")
	}

	metrics.RecordRecommendation(false, len(resp.Sections), e.now().Sub(start))
	e.logger.Info().
		Str("user_id", userID).
		Int("sections", len(resp.Sections)).
		Msg("computed recommendations")
	return resp, nil
}

// compute builds the feed from scratch: derive the preference profile,
// build each themed section in fixed order, then fall back to popular
// artists when the profile is empty or too few sections materialized.
func (e *Engine) compute(ctx context.Context, user *models.UserProfile) (*Response, error) {
	profile, err := e.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	excl := newExclusions(user)

	var sections []Section
	builders := []func(context.Context, *preferenceProfile, *exclusions) (*Section, error){
		e.similarArtistsSection,
		e.labelAlbumsSection,
		e.recentAlbumsSection,
		e.genreTracksSection,
		e.trendingTracksSection,
	}
	for _, build := range builders {
		s, err := build(ctx, profile, excl)
		if err != nil {
			return nil, err
		}
		if s != nil && len(s.Items) > 0 {
			sections = append(sections, *s)
		}
	}

	if !profile.hasPreferences() || len(sections) < e.cfg.MinSections {
		s, err := e.popularArtistsSection(ctx, excl)
		if err != nil {
			return nil, err
		}
		if s != nil && len(s.Items) > 0 {
			sections = append(sections, *s)
		}
	}

	if sections == nil {
		sections = []Section{}
	}
	return &Response{Sections: sections}, nil
}
