// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below matches exactly one of these with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrAssetMissing    = errors.New("asset missing")
)

// NotFoundError reports a state or district absent from the historical table.
type NotFoundError struct {
	State    string
	District string
}

func (e *NotFoundError) Error() string {
	if e.District != "" {
		return fmt.Sprintf("District '%s' in '%s' not found.", e.District, e.State)
	}
	return fmt.Sprintf("State '%s' not found.", e.State)
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// InvalidCategoryError reports a soil or crop type outside the classifier vocabulary.
// ValidSoils and ValidCrops list the accepted values for re-prompting.
type InvalidCategoryError struct {
	Field      string
	Value      string
	ValidSoils []string
	ValidCrops []string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid %s %q. Known Soils: [%s] | Known Crops: [%s]",
		strings.ToLower(e.Field), e.Value,
		strings.Join(e.ValidSoils, ", "), strings.Join(e.ValidCrops, ", "))
}

// Is matches ErrInvalidCategory.
func (e *InvalidCategoryError) Is(target error) bool { return target == ErrInvalidCategory }

// SchemaMismatchError reports a feature matrix whose width does not match a model.
type SchemaMismatchError struct {
	Model    string
	Expected int
	Actual   int
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s expects %d feature columns, got %d", e.Model, e.Expected, e.Actual)
}

// Is matches ErrSchemaMismatch.
func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// AssetMissingError lists every artifact that could not be found at startup.
type AssetMissingError struct {
	Missing []string
}

func (e *AssetMissingError) Error() string {
	return fmt.Sprintf("required model assets missing: %s", strings.Join(e.Missing, ", "))
}

// Is matches ErrAssetMissing.
func (e *AssetMissingError) Is(target error) bool { return target == ErrAssetMissing }

// ErrorKind returns a short label for metrics and logs.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, ErrSchemaMismatch):
		return "schema_mismatch"
	case errors.Is(err, ErrAssetMissing):
		return "asset_missing"
	default:
		return "other"
	}
}
