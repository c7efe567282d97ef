// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package api

import (
	"context"
	"time"

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// Version is reported by the readiness probe. Set at build time.
var Version = "dev"

// ReferenceStore is the part of the reference store the handlers read directly.
// database.BreakerStore satisfies it.
type ReferenceStore interface {
	States(ctx context.Context) ([]string, error)
	Districts(ctx context.Context, state string) ([]string, error)
	Ping(ctx context.Context) error
}

// breakerState is implemented by stores that expose a circuit breaker.
type breakerState interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness probes
//   - handlers_crops.go: ML crop ranking and reference lookups
//   - handlers_fertilizer.go: fertilizer classification
//   - handlers_agronomy.go: rule-based guidance, regions and map layers
type Handler struct {
	engine    *recommend.Engine
	store     ReferenceStore
	catalog   *agronomy.Catalog
	config    *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// Example:
//
//	handler := api.NewHandler(engine, breakerStore, agronomy.DefaultCatalog(), cfg)
//	router := api.NewRouter(handler, api.NewChiMiddlewareFromConfig(&cfg.Security))
//	http.ListenAndServe(":8080", router.SetupChi())
func NewHandler(engine *recommend.Engine, store ReferenceStore, catalog *agronomy.Catalog, cfg *config.Config) *Handler {
	if catalog == nil {
		catalog = agronomy.DefaultCatalog()
	}
	return &Handler{
		engine:    engine,
		store:     store,
		catalog:   catalog,
		config:    cfg,
		startTime: time.Now(),
	}
}

// requestTimeout bounds one pipeline call.
func (h *Handler) requestTimeout() time.Duration {
	if h.config != nil && h.config.Ranking.RequestTimeout > 0 {
		return h.config.Ranking.RequestTimeout
	}
	return 10 * time.Second
}

// npkScale converts dashboard N/P/K values into the classifier's range.
func (h *Handler) npkScale() float64 {
	if h.config != nil && h.config.Fertilizer.NPKScale > 0 {
		return h.config.Fertilizer.NPKScale
	}
	return 42.0 / 150.0
}
