// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package bootstrap builds the inference runtime shared by the HTTP server
// and the command line tool: the DuckDB reference store, its circuit
// breaker, and the recommendation engine.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/database"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// Runtime holds the components built at startup. Close releases them.
type Runtime struct {
	DB     *database.DB
	Store  *database.BreakerStore
	Engine *recommend.Engine
}

// AssetFiles maps the configured artifact paths onto recommend.AssetFiles.
func AssetFiles(cfg *config.Config) recommend.AssetFiles {
	paths := cfg.Assets.Paths()
	return recommend.AssetFiles{
		CropModel:          paths.CropModel,
		EncodingMaps:       paths.EncodingMaps,
		CropRequirements:   paths.CropRequirements,
		Historical:         paths.Historical,
		FertilizerModel:    paths.FertilizerModel,
		FertilizerEncoders: paths.FertilizerEncoders,
	}
}

// EngineConfig maps the ranking settings onto recommend.Config.
func EngineConfig(cfg *config.Config) recommend.Config {
	return recommend.Config{
		DefaultTopN:   cfg.Ranking.DefaultTopN,
		DefaultUnit:   cfg.Ranking.DefaultUnit,
		CacheCapacity: cfg.Ranking.CacheCapacity,
		CacheTTL:      cfg.Ranking.CacheTTL,
	}
}

// Start checks every artifact, loads the reference tables and the models,
// and returns a ready Runtime. A missing artifact fails with
// *recommend.AssetMissingError before the database is opened.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func Start(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Runtime, error) {
	start := time.Now()
	files := AssetFiles(cfg)

	if err := recommend.CheckAssetFiles(files); err != nil {
		return nil, err
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rt, err := build(ctx, cfg, db, files, logger)
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
		return nil, err
	}

	logger.Info().
		Dur("elapsed", time.Since(start)).
		Int("crops", len(rt.Engine.Assets().Requirements())).
		Int("features", len(rt.Engine.Assets().ExpectedColumns())).
		Msg("inference runtime ready")
	return rt, nil
}

//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func build(ctx context.Context, cfg *config.Config, db *database.DB, files recommend.AssetFiles, logger zerolog.Logger) (*Runtime, error) {
	if err := db.LoadReferenceData(ctx, files.Historical, files.CropRequirements); err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	historical, requirements, err := db.RowCounts(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Int64("historical_rows", historical).
		Int64("requirement_rows", requirements).
		Msg("reference data loaded")

	reqs, err := db.CropRequirements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read crop requirements: %w", err)
	}

	assets, err := recommend.LoadAssets(files, reqs)
	if err != nil {
		return nil, err
	}

	store := database.NewBreakerStore(db, cfg.Breaker)

	engine, err := recommend.NewEngine(EngineConfig(cfg), assets, store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return &Runtime{DB: db, Store: store, Engine: engine}, nil
}

// Close closes the database.
func (r *Runtime) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}
