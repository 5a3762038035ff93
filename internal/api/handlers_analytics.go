// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/discograph/discograph/internal/analytics"
	"github.com/discograph/discograph/internal/logging"
	"github.com/discograph/discograph/internal/models"
)

// LabelStats serves GET /api/v1/analytics/labels?limit=N.
func (h *Handler) LabelStats(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	limit := getIntParam(r, "limit", 0)

	start := time.Now()
	stats, err := h.analytics.LabelStats(r.Context(), limit)
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).Msg("label stats query failed")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to compute label statistics", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"labels": stats,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// ReleaseCohorts serves GET /api/v1/analytics/release-cohorts?granularity=year|decade.
func (h *Handler) ReleaseCohorts(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	granularity := r.URL.Query().Get("granularity")

	start := time.Now()
	cohorts, err := h.analytics.ReleaseCohorts(r.Context(), granularity)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidGranularity) {
			respondError(w, http.StatusBadRequest, codeValidation, err.Error(), nil)
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).
			Str("granularity", sanitizeLogValue(granularity)).
			Msg("release cohorts query failed")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to compute release cohorts", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"cohorts": cohorts,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
