// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
)

func writeJSON(t *testing.T, dir, name string, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeTestAssetFiles(t *testing.T) AssetFiles {
	t.Helper()
	dir := t.TempDir()
	gm := 1.5
	maps := testEncodingMaps()
	maps.GlobalMean = &gm
	return AssetFiles{
		CropModel:          writeJSON(t, dir, "crop_model.json", testRegressor()),
		EncodingMaps:       writeJSON(t, dir, "encoding_maps.json", maps),
		CropRequirements:   writeJSON(t, dir, "crop_requirements.csv", "unused"),
		Historical:         writeJSON(t, dir, "crop_yield.csv", "unused"),
		FertilizerModel:    writeJSON(t, dir, "fertilizer_model.json", testClassifier()),
		FertilizerEncoders: writeJSON(t, dir, "fertilizer_encoders.json", testEncoders()),
	}
}

func TestLoadAssets(t *testing.T) {
	t.Parallel()

	a, err := LoadAssets(writeTestAssetFiles(t), testRequirements())
	if err != nil {
		t.Fatalf("LoadAssets() error = %v", err)
	}

	if a.GlobalMean() != 1.5 {
		t.Errorf("GlobalMean() = %v, want 1.5 from the artifact", a.GlobalMean())
	}
	if diff := cmp.Diff(testRegressor().FeatureNames, a.ExpectedColumns()); diff != "" {
		t.Errorf("ExpectedColumns() mismatch (-want +got):\n%s", diff)
	}

	var crops []string
	for _, r := range a.Requirements() {
		crops = append(crops, r.Crop)
	}
	if diff := cmp.Diff([]string{"Rice", "Maize", "Wheat", "Mystery Crop"}, crops); diff != "" {
		t.Errorf("normalized crops mismatch (-want +got):\n%s", diff)
	}

	vocab := a.Vocabulary()
	if diff := cmp.Diff(testEncoders()[LabelFertilizerName], vocab.Fertilizers); diff != "" {
		t.Errorf("Vocabulary().Fertilizers mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadAssets_Missing(t *testing.T) {
	t.Parallel()

	files := writeTestAssetFiles(t)
	files.CropModel = filepath.Join(t.TempDir(), "nope.json")
	files.FertilizerEncoders = ""

	_, err := LoadAssets(files, testRequirements())
	if !errors.Is(err, ErrAssetMissing) {
		t.Fatalf("LoadAssets() error = %v, want ErrAssetMissing", err)
	}

	var missing *AssetMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("error is not *AssetMissingError: %T", err)
	}
	if len(missing.Missing) != 2 {
		t.Errorf("Missing = %v, want both absent files", missing.Missing)
	}
	if !strings.Contains(err.Error(), "nope.json") {
		t.Errorf("Error() = %q, want the missing path", err.Error())
	}
}

func TestLoadAssets_CorruptModel(t *testing.T) {
	t.Parallel()

	files := writeTestAssetFiles(t)
	if err := os.WriteFile(files.CropModel, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAssets(files, testRequirements()); err == nil {
		t.Error("LoadAssets() expected decode error")
	}
}

func TestNewAssets_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		build  func() (*Assets, error)
		wantIs error
	}{
		{
			name: "no requirements",
			build: func() (*Assets, error) {
				return NewAssets(testRegressor(), testEncodingMaps(), nil, testClassifier(), testEncoders())
			},
		},
		{
			name: "encoding maps missing District",
			build: func() (*Assets, error) {
				maps := testEncodingMaps()
				delete(maps.Maps, ColDistrict)
				return NewAssets(testRegressor(), maps, testRequirements(), testClassifier(), testEncoders())
			},
		},
		{
			name: "classifier columns out of order",
			build: func() (*Assets, error) {
				c := testClassifier()
				c.FeatureNames[0], c.FeatureNames[1] = c.FeatureNames[1], c.FeatureNames[0]
				return NewAssets(testRegressor(), testEncodingMaps(), testRequirements(), c, testEncoders())
			},
			wantIs: ErrSchemaMismatch,
		},
		{
			name: "class count differs from label encoder",
			build: func() (*Assets, error) {
				enc := testEncoders()
				enc[LabelFertilizerName] = []string{"Urea", "DAP"}
				return NewAssets(testRegressor(), testEncodingMaps(), testRequirements(), testClassifier(), enc)
			},
		},
		{
			name: "soil encoder missing",
			build: func() (*Assets, error) {
				enc := testEncoders()
				delete(enc, LabelSoilType)
				return NewAssets(testRegressor(), testEncodingMaps(), testRequirements(), testClassifier(), enc)
			},
		},
		{
			name: "blank crop name",
			build: func() (*Assets, error) {
				reqs := append(testRequirements(), CropRequirement{Crop: "  "})
				return NewAssets(testRegressor(), testEncodingMaps(), reqs, testClassifier(), testEncoders())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.build()
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestAssets_RequirementsIsolated(t *testing.T) {
	t.Parallel()

	reqs := testRequirements()
	a, err := NewAssets(testRegressor(), testEncodingMaps(), reqs, testClassifier(), testEncoders())
	if err != nil {
		t.Fatal(err)
	}

	reqs[3].Attributes["Min_Rainfall"] = -1
	got := a.Requirements()
	got[3].Attributes["Min_Rainfall"] = -2

	if v := a.Requirements()[3].Attributes["Min_Rainfall"]; v != 300 {
		t.Errorf("Attributes leaked mutation: %v", v)
	}
}
