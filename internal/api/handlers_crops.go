// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/logging"
	"github.com/tomtom215/agrirank/internal/models"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// CatalogResponse is the data payload of GET /crops/catalog.
type CatalogResponse struct {
	Groups []string        `json:"groups"`
	Crops  []agronomy.Crop `json:"crops"`
}

// RankCrops ranks every known crop for a state and optional district by
// predicted yield.
//
// Query parameters: state (required), district, top_n.
func (h *Handler) RankCrops(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	topN, ok := getIntParam(r, "top_n", 0)
	if !ok {
		respondBadParam(w, "top_n", "integer")
		return
	}
	q := models.RankQuery{
		State:    strings.TrimSpace(r.URL.Query().Get("state")),
		District: strings.TrimSpace(r.URL.Query().Get("district")),
		TopN:     topN,
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	resp, err := h.engine.RankCrops(ctx, recommend.RankRequest{
		State:    q.State,
		District: q.District,
		TopN:     q.TopN,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("state", resp.State).
		Str("district", resp.District).
		Bool("cached", resp.Cached).
		Int("returned", len(resp.Crops)).
		Msg("Crop ranking served")

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

// States lists the states of the historical table.
func (h *Handler) States(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	states, err := h.store.States(ctx)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondCacheable(w, states, start)
}

// Districts lists the districts of the {state} path parameter.
func (h *Handler) Districts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q := models.RankQuery{State: strings.TrimSpace(chi.URLParam(r, "state"))}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	districts, err := h.store.Districts(ctx, recommend.NormalizeName(q.State))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondCacheable(w, districts, start)
}

// Catalog returns the agronomy crop catalog, optionally filtered by group.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	crops, err := h.catalog.Crops(strings.TrimSpace(r.URL.Query().Get("group")))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondCacheable(w, CatalogResponse{Groups: h.catalog.Groups(), Crops: crops}, start)
}
