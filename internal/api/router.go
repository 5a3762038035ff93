// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/discograph/discograph/internal/analytics"
	"github.com/discograph/discograph/internal/catalog"
	"github.com/discograph/discograph/internal/collab"
	"github.com/discograph/discograph/internal/config"
	"github.com/discograph/discograph/internal/middleware"
	"github.com/discograph/discograph/internal/recommend"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter builds the router from configuration and the catalog-backed
// services.
func NewRouter(cfg *config.Config, store catalog.Store, engine *recommend.Engine, builder *collab.Builder, svc *analytics.Service) *Router {
	mwConfig := &ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		CORSMaxAge:         86400,

		RateLimitRequests: cfg.RateLimit.RequestsPerMinute,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: !cfg.RateLimit.Enabled,
	}

	return &Router{
		handler:       NewHandler(store, engine, builder, svc, cfg),
		chiMiddleware: NewChiMiddleware(mwConfig),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/recommendations/{userID}", router.handler.Recommendations)
		r.Get("/collaborations", router.handler.Collaborations)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/labels", router.handler.LabelStats)
			r.Get("/release-cohorts", router.handler.ReleaseCohorts)
		})
	})

	// Prometheus scrape endpoint, outside the API envelope.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
