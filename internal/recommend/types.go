// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"context"
	"strings"
	"unicode"
)

// Column names shared with the training pipeline.
const (
	ColState              = "State"
	ColDistrict           = "District"
	ColCrop               = "Crop"
	ColSeason             = "season"
	ColCropSeason         = "crop_Season"
	ColCropSoilTexture    = "crop_Soil_Texture"
	ColCropIrrigationType = "crop_Irrigation_Type"
	ColUnits              = "Units"
)

// ContextColumns are the historical columns averaged per region and copied
// into every synthetic crop row.
var ContextColumns = []string{"Area", "Production", "Annual_Rainfall", "Fertilizer", "Pesticide"}

// OneHotColumns are expanded into <column>_<value> indicator features.
var OneHotColumns = []string{ColSeason, ColCropSeason, ColCropSoilTexture, ColCropIrrigationType}

// TargetEncodedColumns are replaced by the training target mean of their category.
var TargetEncodedColumns = []string{ColState, ColDistrict, ColCrop}

// Region identifies a row group in the historical table. District may be empty.
type Region struct {
	State    string `json:"state"`
	District string `json:"district,omitempty"`
}

// CropRequirement is one row of the crop requirement table.
type CropRequirement struct {
	Crop           string `json:"crop"`
	Season         string `json:"season"`
	SoilTexture    string `json:"soil_texture"`
	IrrigationType string `json:"irrigation_type"`
	Unit           string `json:"unit"`

	// Attributes holds any additional numeric requirement columns. They are
	// passed to the model under their column names.
	Attributes map[string]float64 `json:"attributes,omitempty"`
}

// RegionContext is the averaged historical context for a region.
type RegionContext struct {
	State    string
	District string

	// DistrictInferred is true when District was chosen as the state's modal district.
	DistrictInferred bool

	// Averages maps each ContextColumns entry present in the table to its mean.
	Averages map[string]float64

	// Rows is the number of historical rows averaged.
	Rows int
}

// HistoricalSource resolves a region to its averaged historical context.
// Implementations return a *NotFoundError for unknown regions. The state and
// district passed in are already normalized with NormalizeName.
type HistoricalSource interface {
	RegionContext(ctx context.Context, state, district string) (RegionContext, error)
}

// RankRequest asks for the top crops of a region.
type RankRequest struct {
	State    string
	District string
	TopN     int
}

// RankedCrop is one entry of a ranking.
type RankedCrop struct {
	Crop           string  `json:"crop"`
	PredictedYield string  `json:"predicted_yield"`
	Yield          float64 `json:"yield_value"`
	Unit           string  `json:"unit"`
}

// RankResponse is the result of RankCrops.
type RankResponse struct {
	State            string               `json:"state"`
	District         string               `json:"district"`
	DistrictInferred bool                 `json:"district_inferred"`
	Crops            []RankedCrop         `json:"crops"`
	Candidates       int                  `json:"candidates"`
	Reconciliation   ReconciliationReport `json:"reconciliation"`
	Cached           bool                 `json:"-"`
}

// FertilizerInput are the classifier inputs, already in the model's value ranges.
type FertilizerInput struct {
	Temperature float64
	Humidity    float64
	Moisture    float64
	SoilType    string
	CropType    string
	Nitrogen    float64
	Potassium   float64
	Phosphorous float64
}

// ScaleNPK multiplies nitrogen, potassium and phosphorous by scale. The
// dashboard sliders run 0-150 while the classifier was trained on 0-42.
func (in FertilizerInput) ScaleNPK(scale float64) FertilizerInput {
	in.Nitrogen *= scale
	in.Potassium *= scale
	in.Phosphorous *= scale
	return in
}

// Vocabulary lists the label spaces of the fertilizer classifier.
type Vocabulary struct {
	Soils       []string `json:"soil_types"`
	Crops       []string `json:"crop_types"`
	Fertilizers []string `json:"fertilizers"`
}

// NormalizeName trims s and title-cases each word the way the training data
// was cleaned: " andhra pradesh" becomes "Andhra Pradesh" and
// "JAMMU & KASHMIR" becomes "Jammu & Kashmir". A letter is upper-cased when
// the preceding rune is not a letter. Used for states, districts and crops.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
