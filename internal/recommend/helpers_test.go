// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// testRegressor scores the Crop target mean with one tree and adds 0.5 for
// Kharif crops with a second. It also expects a column nothing produces.
//
//	crop mean < 5        -> 1.0
//	5 <= crop mean < 7   -> 2.0
//	crop mean >= 7       -> 3.0
func testRegressor() *TreeEnsembleRegressor {
	return &TreeEnsembleRegressor{
		FeatureNames: []string{ColCrop, "Area", "season_Kharif", "Missing_Col"},
		BaseScore:    0,
		SplitRule:    SplitLess,
		Trees: []Tree{
			{Nodes: []TreeNode{
				{Feature: 0, Threshold: 5, Left: 1, Right: 2},
				{IsLeaf: true, Leaf: 1.0},
				{Feature: 0, Threshold: 7, Left: 3, Right: 4},
				{IsLeaf: true, Leaf: 2.0},
				{IsLeaf: true, Leaf: 3.0},
			}},
			{Nodes: []TreeNode{
				{Feature: 2, Threshold: 0.5, Left: 1, Right: 2},
				{IsLeaf: true, Leaf: 0},
				{IsLeaf: true, Leaf: 0.5},
			}},
		},
	}
}

// testClassifier predicts Urea when Nitrogen > 20 and DAP otherwise.
func testClassifier() *RandomForestClassifier {
	return &RandomForestClassifier{
		FeatureNames: append([]string(nil), FertilizerColumns...),
		Classes:      3,
		SplitRule:    SplitLessEqual,
		Trees: []Tree{
			{Nodes: []TreeNode{
				{Feature: 5, Threshold: 20, Left: 1, Right: 2},
				{IsLeaf: true, Value: []float64{0, 0, 3}},
				{IsLeaf: true, Value: []float64{0, 5, 0}},
			}},
		},
	}
}

func testEncodingMaps() EncodingMaps {
	return EncodingMaps{
		Maps: map[string]map[string]float64{
			ColState:    {"Punjab": 2.0},
			ColDistrict: {"Ludhiana": 2.5},
			ColCrop:     {"Rice": 8, "Wheat": 3, "Maize": 6},
		},
	}
}

func testEncoders() FertilizerEncoders {
	return FertilizerEncoders{
		LabelSoilType:       {"Black", "Clayey", "Loamy", "Red", "Sandy"},
		LabelCropType:       {"Barley", "Cotton", "Maize", "Paddy", "Wheat"},
		LabelFertilizerName: {"10-26-26", "Urea", "DAP"},
	}
}

func testRequirements() []CropRequirement {
	return []CropRequirement{
		{Crop: "Rice", Season: "Kharif", SoilTexture: "Clay", IrrigationType: "Flood"},
		{Crop: "maize ", Season: "Kharif", SoilTexture: "Loam", IrrigationType: "Drip", Unit: "Tons/Ha"},
		{Crop: "Wheat", Season: "Rabi", SoilTexture: "Loam", IrrigationType: "Canal", Unit: "Quintal/Ha"},
		{Crop: "mystery crop", Season: "Zaid", Attributes: map[string]float64{"Min_Rainfall": 300}},
	}
}

func newTestAssets(t *testing.T) *Assets {
	t.Helper()
	a, err := NewAssets(testRegressor(), testEncodingMaps(), testRequirements(), testClassifier(), testEncoders())
	if err != nil {
		t.Fatalf("NewAssets() error = %v", err)
	}
	return a
}

// fakeSource serves fixed region contexts and counts lookups.
type fakeSource struct {
	regions map[string]RegionContext // keyed by state
	calls   atomic.Int32
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		regions: map[string]RegionContext{
			"Punjab": {
				State:    "Punjab",
				District: "Ludhiana",
				Averages: map[string]float64{"Area": 1200, "Annual_Rainfall": 650},
				Rows:     4,
			},
			"Kerala": {
				State:    "Kerala",
				District: "Wayanad",
				Averages: map[string]float64{"Area": 300},
				Rows:     2,
			},
		},
	}
}

func (s *fakeSource) RegionContext(_ context.Context, state, district string) (RegionContext, error) {
	s.calls.Add(1)
	rc, ok := s.regions[state]
	if !ok {
		return RegionContext{}, &NotFoundError{State: state}
	}
	if district == "" {
		rc.DistrictInferred = true
		return rc, nil
	}
	if district != rc.District {
		return RegionContext{}, &NotFoundError{State: state, District: district}
	}
	return rc, nil
}

func newTestEngine(t *testing.T, cfg Config) (*Engine, *fakeSource) {
	t.Helper()
	src := newFakeSource()
	e, err := NewEngine(cfg, newTestAssets(t), src, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e, src
}
