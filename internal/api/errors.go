// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/database"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// respondServiceError maps an error returned by the engine, the reference
// store or the agronomy catalog onto a status and error code.
//
//	NotFound          404 NOT_FOUND
//	InvalidCategory   422 INVALID_CATEGORY (details: valid_soils, valid_crops)
//	SchemaMismatch    500 SCHEMA_MISMATCH
//	deadline exceeded 504 TIMEOUT
//	breaker open      503 SERVICE_UNAVAILABLE
func respondServiceError(w http.ResponseWriter, err error) {
	var invalid *recommend.InvalidCategoryError

	switch {
	case errors.Is(err, recommend.ErrNotFound), errors.Is(err, agronomy.ErrNotFound):
		// The message is user-facing; the error itself is not logged.
		respondError(w, http.StatusNotFound, ErrCodeNotFound, err.Error(), nil)

	case errors.As(err, &invalid):
		respondErrorWithDetails(w, http.StatusUnprocessableEntity, ErrCodeInvalidCategory, invalid.Error(),
			map[string]interface{}{
				"field":       invalid.Field,
				"value":       invalid.Value,
				"valid_soils": invalid.ValidSoils,
				"valid_crops": invalid.ValidCrops,
			}, nil)

	case errors.Is(err, recommend.ErrSchemaMismatch):
		respondError(w, http.StatusInternalServerError, ErrCodeSchemaMismatch,
			"Model input does not match the expected schema", err)

	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, ErrCodeTimeout, "Request timed out", err)

	case errors.Is(err, database.ErrUnavailable), errors.Is(err, database.ErrNotLoaded):
		respondError(w, http.StatusServiceUnavailable, ErrCodeServiceUnavailable,
			"Reference data is temporarily unavailable", err)

	default:
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
	}
}
