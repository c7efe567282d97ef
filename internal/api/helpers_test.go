// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// testRegressor scores the Crop target mean and adds 0.5 for Kharif crops.
//
//	crop mean < 5        -> 1.0
//	5 <= crop mean < 7   -> 2.0
//	crop mean >= 7       -> 3.0
func testRegressor() *recommend.TreeEnsembleRegressor {
	return &recommend.TreeEnsembleRegressor{
		FeatureNames: []string{recommend.ColCrop, "Area", "season_Kharif"},
		SplitRule:    recommend.SplitLess,
		Trees: []recommend.Tree{
			{Nodes: []recommend.TreeNode{
				{Feature: 0, Threshold: 5, Left: 1, Right: 2},
				{IsLeaf: true, Leaf: 1.0},
				{Feature: 0, Threshold: 7, Left: 3, Right: 4},
				{IsLeaf: true, Leaf: 2.0},
				{IsLeaf: true, Leaf: 3.0},
			}},
			{Nodes: []recommend.TreeNode{
				{Feature: 2, Threshold: 0.5, Left: 1, Right: 2},
				{IsLeaf: true, Leaf: 0},
				{IsLeaf: true, Leaf: 0.5},
			}},
		},
	}
}

// testClassifier predicts Urea when Nitrogen > 20 and DAP otherwise.
func testClassifier() *recommend.RandomForestClassifier {
	return &recommend.RandomForestClassifier{
		FeatureNames: append([]string(nil), recommend.FertilizerColumns...),
		Classes:      3,
		SplitRule:    recommend.SplitLessEqual,
		Trees: []recommend.Tree{
			{Nodes: []recommend.TreeNode{
				{Feature: 5, Threshold: 20, Left: 1, Right: 2},
				{IsLeaf: true, Value: []float64{0, 0, 3}},
				{IsLeaf: true, Value: []float64{0, 5, 0}},
			}},
		},
	}
}

func testAssets(t *testing.T) *recommend.Assets {
	t.Helper()
	maps := recommend.EncodingMaps{
		Maps: map[string]map[string]float64{
			recommend.ColState:    {"Punjab": 2.0},
			recommend.ColDistrict: {"Ludhiana": 2.5},
			recommend.ColCrop:     {"Rice": 8, "Wheat": 3, "Maize": 6},
		},
	}
	reqs := []recommend.CropRequirement{
		{Crop: "Rice", Season: "Kharif", SoilTexture: "Clay", IrrigationType: "Flood"},
		{Crop: "Maize", Season: "Kharif", SoilTexture: "Loam", IrrigationType: "Drip", Unit: "Tons/Ha"},
		{Crop: "Wheat", Season: "Rabi", SoilTexture: "Loam", IrrigationType: "Canal", Unit: "Quintal/Ha"},
	}
	encoders := recommend.FertilizerEncoders{
		recommend.LabelSoilType:       {"Black", "Clayey", "Loamy", "Red", "Sandy"},
		recommend.LabelCropType:       {"Barley", "Cotton", "Maize", "Paddy", "Wheat"},
		recommend.LabelFertilizerName: {"10-26-26", "Urea", "DAP"},
	}
	a, err := recommend.NewAssets(testRegressor(), maps, reqs, testClassifier(), encoders)
	if err != nil {
		t.Fatalf("NewAssets() error = %v", err)
	}
	return a
}

// fakeStore serves Punjab/Ludhiana and blocks on "Slow" until the context ends.
type fakeStore struct {
	err error // returned by every call when set
}

func (s *fakeStore) RegionContext(ctx context.Context, state, district string) (recommend.RegionContext, error) {
	if s.err != nil {
		return recommend.RegionContext{}, s.err
	}
	switch {
	case state == "Slow":
		<-ctx.Done()
		return recommend.RegionContext{}, ctx.Err()
	case state != "Punjab":
		return recommend.RegionContext{}, &recommend.NotFoundError{State: state}
	case district != "" && district != "Ludhiana":
		return recommend.RegionContext{}, &recommend.NotFoundError{State: state, District: district}
	}
	return recommend.RegionContext{
		State:            "Punjab",
		District:         "Ludhiana",
		DistrictInferred: district == "",
		Averages:         map[string]float64{"Area": 1200},
		Rows:             4,
	}, nil
}

func (s *fakeStore) States(context.Context) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []string{"Punjab"}, nil
}

func (s *fakeStore) Districts(_ context.Context, state string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	if state != "Punjab" {
		return nil, &recommend.NotFoundError{State: state}
	}
	return []string{"Amritsar", "Ludhiana"}, nil
}

func (s *fakeStore) Ping(context.Context) error { return s.err }

func (s *fakeStore) State() string {
	if errors.Is(s.err, errBreakerOpen) {
		return "open"
	}
	return "closed"
}

var errBreakerOpen = errors.New("breaker open")

func testConfig() *config.Config {
	return &config.Config{
		Ranking: config.RankingConfig{
			DefaultTopN:    10,
			DefaultUnit:    "Tons/Ha",
			RequestTimeout: 2 * time.Second,
			CacheCapacity:  16,
			CacheTTL:       time.Minute,
		},
		Fertilizer: config.FertilizerConfig{NPKScale: 0.28},
		Security:   config.SecurityConfig{RateLimitDisabled: true},
	}
}

// newTestHandler builds a handler over the test models and store.
func newTestHandler(t *testing.T, cfg *config.Config, store *fakeStore) *Handler {
	t.Helper()
	rc := cfg.Ranking
	engine, err := recommend.NewEngine(recommend.Config{
		DefaultTopN:   rc.DefaultTopN,
		DefaultUnit:   rc.DefaultUnit,
		CacheCapacity: rc.CacheCapacity,
		CacheTTL:      rc.CacheTTL,
	}, testAssets(t), store, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return NewHandler(engine, store, agronomy.DefaultCatalog(), cfg)
}

// newTestServer returns the full router over a fresh handler.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := testConfig()
	h := newTestHandler(t, cfg, &fakeStore{})
	return NewRouter(h, NewChiMiddlewareFromConfig(&cfg.Security)).SetupChi()
}

// envelope mirrors models.APIResponse with a raw data field.
type envelope struct {
	Status   string          `json:"status"`
	Data     json.RawMessage `json:"data"`
	Metadata struct {
		Cached bool `json:"cached"`
	} `json:"metadata"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

// do sends a request through h and decodes the envelope.
func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response: %v\n%s", err, w.Body.String())
		}
	}
	return w, env
}
