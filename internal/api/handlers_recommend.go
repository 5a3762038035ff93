// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/discograph/discograph/internal/logging"
	"github.com/discograph/discograph/internal/models"
	"github.com/discograph/discograph/internal/recommend"
)

// recommendationsRequest carries the validated path input.
type recommendationsRequest struct {
	UserID string `validate:"required,max=128"`
}

// Recommendations serves GET /api/v1/recommendations/{userID}.
//
// A feed with zero sections is a valid 200; an unknown user is a 404.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	req := recommendationsRequest{UserID: chi.URLParam(r, "userID")}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	start := time.Now()
	resp, err := h.engine.Recommend(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, recommend.ErrUserNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "user not found", nil)
			return
		}
		logger := logging.Ctx(r.Context())
		logger.Error().Err(err).
			Str("user_id", sanitizeLogValue(req.UserID)).
			Msg("recommendation request failed")
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to build recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      resp.Cached,
		},
	})
}
