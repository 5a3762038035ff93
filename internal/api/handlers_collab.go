// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/discograph/discograph/internal/logging"
	"github.com/discograph/discograph/internal/models"
)

// collaborationsRequest carries the validated query input. The upper
// bound on MinCount is configured, so it is checked in the handler rather
// than by tag.
type collaborationsRequest struct {
	MinCount int `validate:"min=1"`
}

// Collaborations serves GET /api/v1/collaborations?minCount=N.
//
// The graph is recomputed from the live catalog on every request; an
// empty graph is a valid 200.
func (h *Handler) Collaborations(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	req := collaborationsRequest{MinCount: getIntParam(r, "minCount", 1)}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if max := h.cfg.Collab.MaxMinCount; req.MinCount > max {
		respondError(w, http.StatusBadRequest, codeValidation,
			fmt.Sprintf("minCount must be at most %d", max), nil)
		return
	}

	start := time.Now()
	graph, err := h.collab.Build(r.Context(), req.MinCount)
	if err != nil {
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).
			Int("min_count", req.MinCount).
			Msg("collaboration graph build failed")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to build collaboration graph", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   graph,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
