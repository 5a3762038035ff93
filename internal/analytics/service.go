// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package analytics serves catalog-wide aggregate views: per-label album
// statistics and release cohorts over time. Aggregation runs in the
// store; this layer supplies input policy (limit clamping, granularity
// validation).
package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/models"
)

// ErrInvalidGranularity is returned for an unrecognized cohort bucket
// size.
var ErrInvalidGranularity = fmt.Errorf("granularity must be %q or %q", catalog.CohortByYear, catalog.CohortByDecade)

// Service answers catalog analytics queries.
type Service struct {
	store  catalog.Store
	cfg    config.AnalyticsConfig
	logger zerolog.Logger
}

// NewService constructs a Service over the given catalog store.
func NewService(store catalog.Store, cfg config.AnalyticsConfig, logger zerolog.Logger) *Service {
	return &Service{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "analytics").Logger(),
	}
}

// LabelStats returns the top labels by album count. A non-positive limit
// falls back to the configured default; the configured maximum is a hard
// cap.
func (s *Service) LabelStats(ctx context.Context, limit int) ([]models.LabelStat, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultLabelLimit
	}
	if limit > s.cfg.MaxLabelLimit {
		limit = s.cfg.MaxLabelLimit
	}

	stats, err := s.store.LabelStats(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("label stats: %w", err)
	}
	if stats == nil {
		stats = []models.LabelStat{}
	}
	return stats, nil
}

// ReleaseCohorts buckets the catalog's albums by release year or decade.
// An empty granularity defaults to year.
func (s *Service) ReleaseCohorts(ctx context.Context, granularity string) ([]models.ReleaseCohort, error) {
	g := catalog.CohortGranularity(granularity)
	switch g {
	case "":
		g = catalog.CohortByYear
	case catalog.CohortByYear, catalog.CohortByDecade:
	default:
		return nil, ErrInvalidGranularity
	}

	cohorts, err := s.store.ReleaseCohorts(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("release cohorts: %w", err)
	}
	if cohorts == nil {
		cohorts = []models.ReleaseCohort{}
	}
	return cohorts, nil
}
