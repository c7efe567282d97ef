// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package api

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/models"
)

// parseNutrients reads n, p and k (kg/ha), falling back to the default soil
// test. It writes the error response and returns ok=false on bad input.
func parseNutrients(w http.ResponseWriter, r *http.Request) (q models.NutrientQuery, ok bool) {
	params := []struct {
		key  string
		dflt float64
		dst  *float64
	}{
		{"n", models.DefaultNitrogen, &q.Nitrogen},
		{"p", models.DefaultPhosphorous, &q.Phosphorous},
		{"k", models.DefaultPotassium, &q.Potassium},
	}
	for _, p := range params {
		v, valid := getFloatParam(r, p.key, p.dflt)
		if !valid {
			respondBadParam(w, p.key, "number")
			return q, false
		}
		*p.dst = v
	}
	if apiErr := validateRequest(&q); apiErr != nil {
		respondValidation(w, apiErr)
		return q, false
	}
	return q, true
}

// pathParam returns a decoded chi URL parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		raw = v
	}
	return strings.TrimSpace(raw)
}

// Guidance returns fertilizer, pH, pest and irrigation advice for one crop
// given a soil test.
//
// Query parameters: crop (required), n, p, k.
func (h *Handler) Guidance(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	crop := strings.TrimSpace(r.URL.Query().Get("crop"))
	if crop == "" {
		respondErrorWithDetails(w, http.StatusBadRequest, ErrCodeValidation, "crop is required",
			map[string]interface{}{"field": "crop", "tag": "required"}, nil)
		return
	}
	q, ok := parseNutrients(w, r)
	if !ok {
		return
	}

	g, err := h.catalog.Guidance(crop, q.Nitrogen, q.Phosphorous, q.Potassium)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, g, start)
}

// Regions lists the regions with their climate and soil figures.
func (h *Handler) Regions(w http.ResponseWriter, _ *http.Request) {
	respondCacheable(w, h.catalog.Regions(), time.Now())
}

// RegionRankings returns the yield and soil health leaderboards.
func (h *Handler) RegionRankings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := getIntParam(r, "limit", agronomy.DefaultRegionRankingLimit)
	if !ok || limit < 1 || limit > 100 {
		respondBadParam(w, "limit", "integer between 1 and 100")
		return
	}
	respondCacheable(w, h.catalog.RegionRankings(limit), start)
}

// Suitability scores every catalog crop against the {region} climate and
// the given soil test.
//
// Query parameters: n, p, k, top_n.
func (h *Handler) Suitability(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	q, ok := parseNutrients(w, r)
	if !ok {
		return
	}
	topN, ok := getIntParam(r, "top_n", agronomy.DefaultSuitabilityTopN)
	if !ok || topN < 1 || topN > 100 {
		respondBadParam(w, "top_n", "integer between 1 and 100")
		return
	}

	report, err := h.catalog.SuitabilityRanking(pathParam(r, "region"), q.Nitrogen, q.Phosphorous, q.Potassium, topN)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondSuccess(w, report, start)
}

// MapLayer returns the points of a map layer: "scatter" for soil health or
// "column" for yield.
func (h *Handler) MapLayer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	layer, err := h.catalog.MapLayer(pathParam(r, "kind"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondCacheable(w, layer, start)
}
