// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package config

import (
	"fmt"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true, "fatal": true, "panic": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

var validEnvironments = map[string]bool{
	"development": true, "staging": true, "production": true,
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if err := c.validateFertilizer(); err != nil {
		return err
	}
	if err := c.validateBreaker(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if !validEnvironments[strings.ToLower(c.Server.Environment)] {
		return fmt.Errorf("ENVIRONMENT must be one of: development, staging, production")
	}
	return nil
}

func (c *Config) validateAssets() error {
	required := map[string]string{
		"ASSETS_CROP_MODEL":          c.Assets.CropModel,
		"ASSETS_ENCODING_MAPS":       c.Assets.EncodingMaps,
		"ASSETS_CROP_REQUIREMENTS":   c.Assets.CropRequirements,
		"ASSETS_HISTORICAL":          c.Assets.Historical,
		"ASSETS_FERTILIZER_MODEL":    c.Assets.FertilizerModel,
		"ASSETS_FERTILIZER_ENCODERS": c.Assets.FertilizerEncoders,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", name)
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 1 {
		return fmt.Errorf("DUCKDB_THREADS must be at least 1")
	}
	return nil
}

func (c *Config) validateRanking() error {
	r := c.Ranking
	if r.DefaultTopN < 1 {
		return fmt.Errorf("RANKING_TOP_N must be at least 1")
	}
	if strings.TrimSpace(r.DefaultUnit) == "" {
		return fmt.Errorf("RANKING_DEFAULT_UNIT is required")
	}
	if r.RequestTimeout <= 0 {
		return fmt.Errorf("RANKING_REQUEST_TIMEOUT must be positive")
	}
	if r.CacheCapacity < 0 {
		return fmt.Errorf("RANKING_CACHE_CAPACITY must not be negative")
	}
	if r.CacheCapacity > 0 && r.CacheTTL <= 0 {
		return fmt.Errorf("RANKING_CACHE_TTL must be positive when the cache is enabled")
	}
	if r.JanitorInterval <= 0 {
		return fmt.Errorf("RANKING_JANITOR_INTERVAL must be positive")
	}
	return nil
}

func (c *Config) validateFertilizer() error {
	if c.Fertilizer.NPKScale <= 0 || c.Fertilizer.NPKScale > 1 {
		return fmt.Errorf("FERTILIZER_NPK_SCALE must be in (0, 1], got %g", c.Fertilizer.NPKScale)
	}
	return nil
}

func (c *Config) validateBreaker() error {
	if c.Breaker.FailureRatio <= 0 || c.Breaker.FailureRatio > 1 {
		return fmt.Errorf("BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	if c.Breaker.Timeout <= 0 {
		return fmt.Errorf("BREAKER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error, fatal, panic")
	}
	if !validLogFormats[strings.ToLower(c.Logging.Format)] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
