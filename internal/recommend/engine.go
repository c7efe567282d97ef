// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/agrirank/internal/cache"
	"github.com/tomtom215/agrirank/internal/metrics"
)

// Pipeline labels used in metrics.
const (
	PipelineCropRank   = "crop_rank"
	PipelineFertilizer = "fertilizer"
)

// Engine runs the ranking and classification pipelines against immutable Assets.
// It is safe for concurrent use.
type Engine struct {
	config Config
	assets *Assets
	source HistoricalSource
	logger zerolog.Logger

	// cache is nil when caching is disabled.
	cache *cache.LRU[string, *RankResponse]
}

// NewEngine creates an engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, assets *Assets, source HistoricalSource, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if assets == nil {
		return nil, fmt.Errorf("assets are required")
	}
	if source == nil {
		return nil, fmt.Errorf("historical source is required")
	}

	e := &Engine{
		config: cfg,
		assets: assets,
		source: source,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.CacheCapacity > 0 {
		e.cache = cache.NewLRU[string, *RankResponse](cfg.CacheCapacity, cfg.CacheTTL)
	}
	return e, nil
}

// Assets returns the engine's inference context.
func (e *Engine) Assets() *Assets { return e.assets }

// RankCrops predicts the yield of every known crop for a region and returns
// the top N, highest first.
func (e *Engine) RankCrops(ctx context.Context, req RankRequest) (*RankResponse, error) {
	start := time.Now()
	resp, err := e.rankCrops(ctx, req)
	metrics.RecordInference(PipelineCropRank, time.Since(start), ErrorKind(err))
	if err != nil {
		return nil, err
	}
	metrics.RankedCrops.Observe(float64(len(resp.Crops)))
	return resp, nil
}

func (e *Engine) rankCrops(ctx context.Context, req RankRequest) (*RankResponse, error) {
	state := NormalizeName(req.State)
	district := NormalizeName(req.District)
	if state == "" {
		return nil, &NotFoundError{State: state}
	}
	topN := e.resolveTopN(req.TopN)

	key := cacheKey(state, district, topN)
	if cached, ok := e.cacheGet(key); ok {
		return cached, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	region, err := e.source.RegionContext(ctx, state, district)
	if err != nil {
		return nil, err
	}

	candidates, err := e.assets.buildCandidates(region, e.config.DefaultUnit)
	if err != nil {
		return nil, err
	}
	for col, n := range candidates.fallbacks {
		metrics.RecordEncodingFallbacks(col, n)
		e.logger.Debug().Str("column", col).Int("rows", n).Msg("Unseen category encoded with global mean")
	}

	x, report, err := Align(candidates.rows, e.assets.regressor.ExpectedColumns())
	if err != nil {
		return nil, err
	}
	metrics.RecordReconciliation(len(report.Synthesized), len(report.Dropped))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := e.predict(x)
	if err != nil {
		return nil, err
	}
	if len(raw) != len(candidates.crops) {
		return nil, &SchemaMismatchError{Model: "crop yield regressor", Expected: len(candidates.crops), Actual: len(raw)}
	}

	resp := &RankResponse{
		State:            region.State,
		District:         region.District,
		DistrictInferred: region.DistrictInferred,
		Crops:            Rank(candidates.crops, InverseYield(raw), candidates.units, topN),
		Candidates:       len(candidates.crops),
		Reconciliation:   report,
	}

	e.logger.Debug().
		Str("state", region.State).
		Str("district", region.District).
		Int("candidates", resp.Candidates).
		Int("returned", len(resp.Crops)).
		Int("synthesized_columns", len(report.Synthesized)).
		Int("dropped_columns", len(report.Dropped)).
		Msg("Ranked crops")

	e.cachePut(key, resp)
	return resp, nil
}

func (e *Engine) predict(x mat.Matrix) ([]float64, error) {
	return e.assets.regressor.Predict(x)
}

// RecommendFertilizer classifies one set of soil and crop conditions.
// Unknown soil or crop types fail with *InvalidCategoryError.
func (e *Engine) RecommendFertilizer(ctx context.Context, in FertilizerInput) (string, error) {
	start := time.Now()
	name, err := e.recommendFertilizer(ctx, in)
	metrics.RecordInference(PipelineFertilizer, time.Since(start), ErrorKind(err))
	return name, err
}

func (e *Engine) recommendFertilizer(ctx context.Context, in FertilizerInput) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	row, err := e.assets.fertilizerRow(in)
	if err != nil {
		return "", err
	}

	classes, err := e.assets.classifier.Classify(mat.NewDense(1, len(row), row))
	if err != nil {
		return "", err
	}
	if len(classes) != 1 {
		return "", fmt.Errorf("classifier returned %d predictions for 1 row", len(classes))
	}
	return e.assets.fertilizer.Decode(classes[0])
}

// FertilizerVocabulary lists the accepted soil and crop types and the possible fertilizers.
func (e *Engine) FertilizerVocabulary() Vocabulary {
	return e.assets.Vocabulary()
}

// PurgeExpired drops expired cache entries and returns how many were removed.
func (e *Engine) PurgeExpired() int {
	if e.cache == nil {
		return 0
	}
	removed := e.cache.CleanupExpired()
	if removed > 0 {
		metrics.RankingCacheEvictions.Add(float64(removed))
	}
	metrics.RankingCacheEntries.Set(float64(e.cache.Len()))
	return removed
}

// CacheStats returns ranking cache counters. The zero value is returned when caching is off.
func (e *Engine) CacheStats() cache.Stats {
	if e.cache == nil {
		return cache.Stats{}
	}
	return e.cache.Stats()
}

// resolveTopN applies the default. Rank clamps to the candidate count.
func (e *Engine) resolveTopN(n int) int {
	if n <= 0 {
		return e.config.DefaultTopN
	}
	return n
}

func (e *Engine) cacheGet(key string) (*RankResponse, bool) {
	if e.cache == nil {
		return nil, false
	}
	resp, ok := e.cache.Get(key)
	metrics.RecordCacheLookup(ok)
	if !ok {
		return nil, false
	}
	out := *resp
	out.Crops = slices.Clone(resp.Crops)
	out.Cached = true
	return &out, true
}

func (e *Engine) cachePut(key string, resp *RankResponse) {
	if e.cache == nil {
		return
	}
	stored := *resp
	stored.Crops = slices.Clone(resp.Crops)
	e.cache.Add(key, &stored)
	metrics.RankingCacheEntries.Set(float64(e.cache.Len()))
}

func cacheKey(state, district string, topN int) string {
	return state + "\x00" + district + "\x00" + strconv.Itoa(topN)
}
