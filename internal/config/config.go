// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package config loads AgriRank configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: built-in values for every setting
//  2. Config File: optional YAML file (config.yaml or CONFIG_PATH)
//  3. Environment Variables: explicit mappings such as HTTP_PORT or ASSETS_DIR
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	assets, err := recommend.LoadAssets(cfg.Assets.Paths())
package config

import (
	"path/filepath"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Assets     AssetsConfig     `koanf:"assets"`
	Database   DatabaseConfig   `koanf:"database"`
	Ranking    RankingConfig    `koanf:"ranking"`
	Fertilizer FertilizerConfig `koanf:"fertilizer"`
	Breaker    BreakerConfig    `koanf:"breaker"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"` // development, staging, production
}

// AssetsConfig names the model artifacts and reference tables loaded at startup.
// File names are resolved relative to Dir unless absolute.
type AssetsConfig struct {
	Dir                string `koanf:"dir"`
	CropModel          string `koanf:"crop_model"`
	EncodingMaps       string `koanf:"encoding_maps"`
	CropRequirements   string `koanf:"crop_requirements"`
	Historical         string `koanf:"historical"`
	FertilizerModel    string `koanf:"fertilizer_model"`
	FertilizerEncoders string `koanf:"fertilizer_encoders"`
}

// AssetPaths is the resolved set of artifact locations.
type AssetPaths struct {
	CropModel          string
	EncodingMaps       string
	CropRequirements   string
	Historical         string
	FertilizerModel    string
	FertilizerEncoders string
}

// Paths resolves each artifact against Dir.
func (a AssetsConfig) Paths() AssetPaths {
	return AssetPaths{
		CropModel:          a.resolve(a.CropModel),
		EncodingMaps:       a.resolve(a.EncodingMaps),
		CropRequirements:   a.resolve(a.CropRequirements),
		Historical:         a.resolve(a.Historical),
		FertilizerModel:    a.resolve(a.FertilizerModel),
		FertilizerEncoders: a.resolve(a.FertilizerEncoders),
	}
}

func (a AssetsConfig) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.Dir, name)
}

// DatabaseConfig holds DuckDB settings for the reference table store.
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`
}

// RankingConfig controls the crop ranking pipeline.
type RankingConfig struct {
	DefaultTopN     int           `koanf:"default_top_n"`
	DefaultUnit     string        `koanf:"default_unit"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	CacheCapacity   int           `koanf:"cache_capacity"`
	CacheTTL        time.Duration `koanf:"cache_ttl"`
	JanitorInterval time.Duration `koanf:"janitor_interval"`
}

// FertilizerConfig controls the fertilizer classifier path.
type FertilizerConfig struct {
	// NPKScale converts dashboard slider values (0-150) into the range the
	// classifier was trained on (0-42).
	NPKScale float64 `koanf:"npk_scale"`
}

// BreakerConfig tunes the circuit breaker around the historical store.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

// SecurityConfig holds request-level protections. There is no authentication.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
