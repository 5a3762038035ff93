// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package api exposes the Discograph HTTP surface: recommendation feeds,
// the artist collaboration graph, catalog analytics, and health probes,
// all wrapped in the standard APIResponse envelope.
package api

import (
	"net/http"
	"time"

	"github.com/discograph/discograph/internal/analytics"
	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/collab"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/recommend"
)

// Handler carries the request handlers and their dependencies.
type Handler struct {
	store     catalog.Store
	engine    *recommend.Engine
	collab    *collab.Builder
	analytics *analytics.Service
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates the API handler set.
func NewHandler(store catalog.Store, engine *recommend.Engine, builder *collab.Builder, svc *analytics.Service, cfg *config.Config) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		collab:    builder,
		analytics: svc,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// requireGet rejects non-GET methods. Chi already routes by method; this
// guards handlers used outside the router, mainly in tests.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed", nil)
		return false
	}
	return true
}
