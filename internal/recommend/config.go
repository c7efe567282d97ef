// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package recommend

import (
	"fmt"
	"time"
)

// Config controls the engine.
type Config struct {
	// DefaultTopN is used when a request does not specify TopN.
	DefaultTopN int

	// DefaultUnit labels crops whose requirement row has no unit.
	DefaultUnit string

	// CacheCapacity is the number of cached rankings. Zero disables the cache.
	CacheCapacity int

	// CacheTTL bounds how long a cached ranking is served.
	CacheTTL time.Duration
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		DefaultTopN:   10,
		DefaultUnit:   "Tons/Ha",
		CacheCapacity: 1024,
		CacheTTL:      15 * time.Minute,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default top N must be at least 1, got %d", c.DefaultTopN)
	}
	if c.DefaultUnit == "" {
		return fmt.Errorf("default unit is required")
	}
	if c.CacheCapacity < 0 {
		return fmt.Errorf("cache capacity must not be negative")
	}
	if c.CacheCapacity > 0 && c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive when caching is enabled")
	}
	return nil
}
