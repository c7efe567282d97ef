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

	"github.com/tomtom215/agrirank/internal/logging"
	"github.com/tomtom215/agrirank/internal/models"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// RecommendFertilizer classifies the soil and crop conditions in the JSON body.
//
// With "npk_scale": "ui" (the default) nitrogen, potassium and phosphorous
// are dashboard slider values and are multiplied by fertilizer.npk_scale
// before classification. With "model" they are passed through unchanged.
func (h *Handler) RecommendFertilizer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.FertilizerRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid JSON request body", nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	in := h.fertilizerInput(&req)

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout())
	defer cancel()

	name, err := h.engine.RecommendFertilizer(ctx, in)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	logging.Ctx(r.Context()).Debug().
		Str("soil_type", in.SoilType).
		Str("crop_type", in.CropType).
		Str("fertilizer", name).
		Msg("Fertilizer recommended")

	respondSuccess(w, models.FertilizerResponse{
		Fertilizer: name,
		ScaledInput: map[string]float64{
			"temperature": in.Temperature,
			"humidity":    in.Humidity,
			"moisture":    in.Moisture,
			"nitrogen":    in.Nitrogen,
			"potassium":   in.Potassium,
			"phosphorous": in.Phosphorous,
		},
	}, start)
}

func (h *Handler) fertilizerInput(req *models.FertilizerRequest) recommend.FertilizerInput {
	in := recommend.FertilizerInput{
		Temperature: req.Temperature,
		Humidity:    req.Humidity,
		Moisture:    req.Moisture,
		SoilType:    strings.TrimSpace(req.SoilType),
		CropType:    strings.TrimSpace(req.CropType),
		Nitrogen:    req.Nitrogen,
		Potassium:   req.Potassium,
		Phosphorous: req.Phosphorous,
	}
	if req.NPKScale != models.NPKScaleModel {
		in = in.ScaleNPK(h.npkScale())
	}
	return in
}

// FertilizerVocabulary lists the accepted soil and crop types and every
// fertilizer the classifier can return.
func (h *Handler) FertilizerVocabulary(w http.ResponseWriter, _ *http.Request) {
	respondCacheable(w, h.engine.FertilizerVocabulary(), time.Now())
}
