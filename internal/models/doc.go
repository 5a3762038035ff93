// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

// Package models defines the shared data structures for Discograph.
//
// The catalog entities (Artist, Album, Track) mirror the documents the
// Spotify ingestion pipeline writes into MongoDB. They are read-only from
// this service's perspective: the only field this service ever writes is
// the recommendation cache sub-record on UserProfile.
//
// Derived analytics types (RecommendationCache, CollaborationGraph, label
// and cohort stats) and the standard API response envelope also live here
// so that the api, recommend, collab, and catalog packages share one
// vocabulary without import cycles.
package models
