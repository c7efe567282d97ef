// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package models defines the HTTP wire types shared by the API handlers:
// the response envelope and validated request payloads.
package models

import "time"

// APIResponse is the standard envelope for every API response.
//
//	{
//	  "status": "success",
//	  "data": {...},
//	  "metadata": {"timestamp": "2026-01-02T10:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata. Cached responses report Cached=true.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error body.
//
// Codes used by the API:
//   - VALIDATION_ERROR: malformed or out-of-range input
//   - NOT_FOUND: unknown state, district, crop or region
//   - INVALID_CATEGORY: soil or crop type outside the classifier vocabulary
//   - SCHEMA_MISMATCH: feature matrix does not fit the model
//   - TIMEOUT: the pipeline exceeded the request deadline
//   - SERVICE_UNAVAILABLE: the reference store circuit is open
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is returned by the readiness probe.
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	Uptime     float64           `json:"uptime_seconds"`
	Components map[string]string `json:"components"`
	Timestamp  time.Time         `json:"timestamp"`
}

// RankQuery holds the query parameters of GET /api/v1/crops/rank.
type RankQuery struct {
	State    string `json:"state" validate:"required,region,max=64"`
	District string `json:"district" validate:"omitempty,region,max=64"`
	TopN     int    `json:"top_n" validate:"omitempty,min=1,max=100"`
}

// NPKScaleUI marks nitrogen, potassium and phosphorous as dashboard slider
// values that still need rescaling.
const NPKScaleUI = "ui"

// NPKScaleModel marks values already in the classifier's training range.
const NPKScaleModel = "model"

// FertilizerRequest is the body of POST /api/v1/fertilizer/recommend.
type FertilizerRequest struct {
	Temperature float64 `json:"temperature" validate:"min=-10,max=60"`
	Humidity    float64 `json:"humidity" validate:"min=0,max=100"`
	Moisture    float64 `json:"moisture" validate:"min=0,max=100"`
	SoilType    string  `json:"soil_type" validate:"required,max=32"`
	CropType    string  `json:"crop_type" validate:"required,max=32"`
	Nitrogen    float64 `json:"nitrogen" validate:"min=0,max=150"`
	Potassium   float64 `json:"potassium" validate:"min=0,max=150"`
	Phosphorous float64 `json:"phosphorous" validate:"min=0,max=150"`
	NPKScale    string  `json:"npk_scale" validate:"omitempty,oneof=ui model"`
}

// FertilizerResponse is the data payload of a fertilizer recommendation.
type FertilizerResponse struct {
	Fertilizer  string             `json:"fertilizer"`
	ScaledInput map[string]float64 `json:"model_input"`
}

// NutrientQuery holds N/P/K query parameters (kg/ha) shared by guidance and
// suitability.
type NutrientQuery struct {
	Nitrogen    float64 `json:"n" validate:"min=0,max=300"`
	Phosphorous float64 `json:"p" validate:"min=0,max=200"`
	Potassium   float64 `json:"k" validate:"min=0,max=300"`
}

// Default soil test values used when a nutrient query omits a parameter.
const (
	DefaultNitrogen    = 90
	DefaultPhosphorous = 42
	DefaultPotassium   = 43
)
