// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// testDBSemaphore serializes DuckDB use across tests; concurrent CGO
// connections from many parallel tests can stall under CI load.
var testDBSemaphore = make(chan struct{}, 1)

const testHistoricalCSV = `State,District,Crop,Crop_Year,Season,Area,Production,Annual_Rainfall,Fertilizer,Pesticide,Yield
punjab,ludhiana,Wheat,2018,Rabi,100,400,600,10,1,4
Punjab,Ludhiana,Rice,2018,Kharif,300,900,600,30,3,3
Punjab,Amritsar,Wheat,2018,Rabi,200,700,500,20,2,3.5
Punjab,Amritsar,Rice,2019,Kharif,400,1000,500,40,4,2.5
Punjab,Bathinda,Cotton,2019,Kharif,50,100,400,5,,2
kerala ,wayanad,Coffee,2019,Whole Year,10,5,3000,1,0.5,0.5
`

const testRequirementsCSV = `Crop,crop_Season,crop_Soil_Texture,crop_Irrigation_Type,Units,Min_Rainfall,Notes
rice,Kharif,Clay,Flood,Tons/Ha,1000,paddy
Wheat ,Rabi,Loam,Canal,,400,
Cotton,"Kharif   ",Black,Drip,Bales/Ha,,fibre
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// setupTestDB opens an in-memory database loaded with the test CSVs.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	dir := t.TempDir()
	hist := writeFile(t, dir, "crop_yield.csv", testHistoricalCSV)
	reqs := writeFile(t, dir, "crop_requirements.csv", testRequirementsCSV)
	if err := db.LoadReferenceData(context.Background(), hist, reqs); err != nil {
		t.Fatalf("LoadReferenceData() error = %v", err)
	}
	return db
}

func TestRegionContext_Explicit(t *testing.T) {
	db := setupTestDB(t)

	rc, err := db.RegionContext(context.Background(), "Punjab", "Ludhiana")
	if err != nil {
		t.Fatalf("RegionContext() error = %v", err)
	}
	if rc.DistrictInferred {
		t.Error("DistrictInferred = true for an explicit district")
	}
	if rc.Rows != 2 {
		t.Errorf("Rows = %d, want 2", rc.Rows)
	}
	want := map[string]float64{
		"Area":            200,
		"Production":      650,
		"Annual_Rainfall": 600,
		"Fertilizer":      20,
		"Pesticide":       2,
	}
	if diff := cmp.Diff(want, rc.Averages); diff != "" {
		t.Errorf("Averages mismatch (-want +got):\n%s", diff)
	}
}

func TestRegionContext_ModalDistrict(t *testing.T) {
	db := setupTestDB(t)

	// Ludhiana and Amritsar both have two rows; the alphabetical first wins.
	rc, err := db.RegionContext(context.Background(), "Punjab", "")
	if err != nil {
		t.Fatalf("RegionContext() error = %v", err)
	}
	if rc.District != "Amritsar" || !rc.DistrictInferred {
		t.Errorf("District = %q inferred=%v, want Amritsar inferred", rc.District, rc.DistrictInferred)
	}
	if rc.Rows != 5 {
		t.Errorf("Rows = %d, want the whole state (5)", rc.Rows)
	}
	// Pesticide is NULL in one row; avg skips it.
	if got := rc.Averages["Pesticide"]; got != 2.5 {
		t.Errorf("Pesticide average = %v, want 2.5", got)
	}
}

func TestRegionContext_NormalizedNames(t *testing.T) {
	db := setupTestDB(t)

	rc, err := db.RegionContext(context.Background(), "Kerala", "Wayanad")
	if err != nil {
		t.Fatalf("RegionContext() error = %v", err)
	}
	if rc.Rows != 1 {
		t.Errorf("Rows = %d, want 1", rc.Rows)
	}
}

func TestRegionContext_NotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.RegionContext(context.Background(), "Atlantis", "")
	if !errors.Is(err, recommend.ErrNotFound) || err.Error() != "State 'Atlantis' not found." {
		t.Errorf("unknown state error = %v", err)
	}

	_, err = db.RegionContext(context.Background(), "Punjab", "Gotham")
	if !errors.Is(err, recommend.ErrNotFound) || err.Error() != "District 'Gotham' in 'Punjab' not found." {
		t.Errorf("unknown district error = %v", err)
	}
}

func TestCropRequirements(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.CropRequirements(context.Background())
	if err != nil {
		t.Fatalf("CropRequirements() error = %v", err)
	}
	want := []recommend.CropRequirement{
		{Crop: "Rice", Season: "Kharif", SoilTexture: "Clay", IrrigationType: "Flood", Unit: "Tons/Ha",
			Attributes: map[string]float64{"Min_Rainfall": 1000}},
		{Crop: "Wheat", Season: "Rabi", SoilTexture: "Loam", IrrigationType: "Canal",
			Attributes: map[string]float64{"Min_Rainfall": 400}},
		{Crop: "Cotton", Season: "Kharif   ", SoilTexture: "Black", IrrigationType: "Drip", Unit: "Bales/Ha",
			Attributes: map[string]float64{}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("CropRequirements() mismatch (-want +got):\n%s", diff)
	}
}

func TestCropRequirements_PaddedCategoriesReachModel(t *testing.T) {
	db := setupTestDB(t)

	reqs, err := db.CropRequirements(context.Background())
	if err != nil {
		t.Fatalf("CropRequirements() error = %v", err)
	}

	padded := recommend.ColCropSeason + "_Kharif   "
	regressor := &recommend.TreeEnsembleRegressor{
		FeatureNames: []string{recommend.ColCrop, padded, recommend.ColCropSeason + "_Kharif"},
		SplitRule:    recommend.SplitLess,
		Trees: []recommend.Tree{{Nodes: []recommend.TreeNode{
			{Feature: 1, Threshold: 0.5, Left: 1, Right: 2},
			{IsLeaf: true, Leaf: 0},
			{IsLeaf: true, Leaf: 1},
		}}},
	}
	classifier := &recommend.RandomForestClassifier{
		FeatureNames: append([]string(nil), recommend.FertilizerColumns...),
		Classes:      1,
		SplitRule:    recommend.SplitLessEqual,
		Trees:        []recommend.Tree{{Nodes: []recommend.TreeNode{{IsLeaf: true, Value: []float64{1}}}}},
	}
	maps := recommend.EncodingMaps{Maps: map[string]map[string]float64{
		recommend.ColState:    {},
		recommend.ColDistrict: {},
		recommend.ColCrop:     {},
	}}
	encoders := recommend.FertilizerEncoders{
		recommend.LabelSoilType:       {"Loamy"},
		recommend.LabelCropType:       {"Maize"},
		recommend.LabelFertilizerName: {"Urea"},
	}
	assets, err := recommend.NewAssets(regressor, maps, reqs, classifier, encoders)
	if err != nil {
		t.Fatalf("NewAssets() error = %v", err)
	}
	engine, err := recommend.NewEngine(recommend.DefaultConfig(), assets, db, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	resp, err := engine.RankCrops(context.Background(), recommend.RankRequest{State: "Punjab"})
	if err != nil {
		t.Fatalf("RankCrops() error = %v", err)
	}
	if len(resp.Reconciliation.Synthesized) != 0 {
		t.Errorf("Synthesized = %v, want none", resp.Reconciliation.Synthesized)
	}
	if len(resp.Crops) == 0 || resp.Crops[0].Crop != "Cotton" || resp.Crops[0].PredictedYield != "1.72" {
		t.Errorf("Crops = %+v, want Cotton first at 1.72", resp.Crops)
	}
}

func TestStatesAndDistricts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	states, err := db.States(ctx)
	if err != nil {
		t.Fatalf("States() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Kerala", "Punjab"}, states); diff != "" {
		t.Errorf("States() mismatch (-want +got):\n%s", diff)
	}

	districts, err := db.Districts(ctx, "Punjab")
	if err != nil {
		t.Fatalf("Districts() error = %v", err)
	}
	if diff := cmp.Diff([]string{"Amritsar", "Bathinda", "Ludhiana"}, districts); diff != "" {
		t.Errorf("Districts() mismatch (-want +got):\n%s", diff)
	}

	if _, err := db.Districts(ctx, "Atlantis"); !errors.Is(err, recommend.ErrNotFound) {
		t.Errorf("Districts(Atlantis) error = %v, want ErrNotFound", err)
	}
}

func TestRowCounts(t *testing.T) {
	db := setupTestDB(t)

	hist, reqs, err := db.RowCounts(context.Background())
	if err != nil {
		t.Fatalf("RowCounts() error = %v", err)
	}
	if hist != 6 || reqs != 3 {
		t.Errorf("RowCounts() = (%d, %d), want (6, 3)", hist, reqs)
	}
}

func TestQueriesBeforeLoad(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if db.Loaded() {
		t.Error("Loaded() = true before LoadReferenceData")
	}
	if _, err := db.RegionContext(context.Background(), "Punjab", ""); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("RegionContext() error = %v, want ErrNotLoaded", err)
	}
	if _, err := db.States(context.Background()); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("States() error = %v, want ErrNotLoaded", err)
	}
}

func TestLoadReferenceData_MissingColumns(t *testing.T) {
	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	db, err := New(&config.DatabaseConfig{Path: ":memory:", MaxMemory: "256MB", Threads: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	dir := t.TempDir()
	hist := writeFile(t, dir, "h.csv", "Region,Yield\nPunjab,3\n")
	reqs := writeFile(t, dir, "r.csv", testRequirementsCSV)
	if err := db.LoadReferenceData(context.Background(), hist, reqs); err == nil {
		t.Error("LoadReferenceData() expected missing column error")
	}
}

func TestQuoting(t *testing.T) {
	t.Parallel()

	if got := quoteIdent(`a"b`); got != `"a""b"` {
		t.Errorf("quoteIdent() = %s", got)
	}
	if got := quoteLiteral("it's"); got != "'it''s'" {
		t.Errorf("quoteLiteral() = %s", got)
	}
	for typ, want := range map[string]bool{
		"BIGINT":        true,
		"DOUBLE":        true,
		"DECIMAL(18,3)": true,
		"VARCHAR":       false,
		"DATE":          false,
	} {
		if got := isNumericType(typ); got != want {
			t.Errorf("isNumericType(%q) = %v, want %v", typ, got, want)
		}
	}
}
