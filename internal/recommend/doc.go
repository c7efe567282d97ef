// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package recommend implements the model-backed crop ranking and fertilizer
// classification pipelines.
//
// # Crop ranking
//
// For a state (and optional district) the engine:
//
//  1. Looks up averaged historical context for the region through a
//     HistoricalSource. Without a district the state's most frequent
//     district is used.
//  2. Builds one synthetic row per crop from the crop requirement table.
//  3. Encodes State, District and Crop with target means and one-hot encodes
//     season, crop_Season, crop_Soil_Texture and crop_Irrigation_Type.
//  4. Aligns the rows to the model's expected columns with Reconcile,
//     zero-filling missing columns and dropping unexpected ones.
//  5. Predicts log-yield, applies expm1, clamps at zero, sorts descending and
//     keeps the top N.
//
// # Fertilizer classification
//
// Soil and crop type are label encoded, an 8-column row is assembled in the
// training column order and the classifier's class index is decoded back to a
// fertilizer name. Unknown soil or crop types fail with InvalidCategoryError.
//
// # Assets
//
// All artifacts are loaded once into an immutable Assets value. Nothing in
// this package mutates Assets after LoadAssets returns, so an Engine is safe
// for concurrent use. The only shared mutable state is the ranking cache,
// which is internally synchronized.
//
// # Usage
//
//	assets, err := recommend.LoadAssets(files, requirements)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), assets, store, logger)
//	resp, err := engine.RankCrops(ctx, recommend.RankRequest{State: "Andhra Pradesh", District: "Anantapur"})
//
// This package does not import config or database. Reference rows arrive
// through the HistoricalSource interface and plain slices.
package recommend
