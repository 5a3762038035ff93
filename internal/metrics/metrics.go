// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package metrics provides Prometheus instrumentation for:
//   - API endpoint latency and throughput
//   - MongoDB query performance
//   - Recommendation cache efficiency
//   - Collaboration graph build cost
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Catalog Store Metrics
	MongoQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongo_query_duration_seconds",
			Help:    "Duration of MongoDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	MongoQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_query_errors_total",
			Help: "Total number of MongoDB query errors",
		},
		[]string{"operation", "collection"},
	)

	// Recommendation Engine Metrics
	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Recommendation requests served from the persisted per-user cache",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Recommendation requests that triggered a full recomputation",
		},
	)

	RecommendComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_compute_duration_seconds",
			Help:    "Duration of cold-path recommendation computation in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	RecommendSectionsProduced = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_sections_produced",
			Help:    "Number of non-empty sections per computed recommendation",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		},
	)

	// Collaboration Graph Metrics
	CollabBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collab_build_duration_seconds",
			Help:    "Duration of collaboration graph builds in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	CollabEdgesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "collab_edges_returned",
			Help:    "Number of edges surviving the threshold filter per build",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)
)

// RecordAPIRequest records metrics for a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active request gauge.
func TrackActiveRequest(active bool) {
	if active {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordMongoQuery records the duration of a store query, and the error
// counter when it failed.
func RecordMongoQuery(operation, collection string, duration time.Duration, err error) {
	MongoQueryDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		MongoQueryErrors.WithLabelValues(operation, collection).Inc()
	}
}

// RecordRecommendation records one recommendation request outcome.
func RecordRecommendation(cached bool, sections int, duration time.Duration) {
	if cached {
		RecommendCacheHits.Inc()
		return
	}
	RecommendCacheMisses.Inc()
	RecommendComputeDuration.Observe(duration.Seconds())
	RecommendSectionsProduced.Observe(float64(sections))
}

// RecordCollabBuild records one collaboration graph build.
func RecordCollabBuild(edges int, duration time.Duration) {
	CollabBuildDuration.Observe(duration.Seconds())
	CollabEdgesReturned.Observe(float64(edges))
}
