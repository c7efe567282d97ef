// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

// Package metrics declares the Prometheus instruments for AgriRank and small
// helpers to record them. All instruments are registered with the default
// registry and exposed through promhttp at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Inference Metrics
	InferenceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agrirank_inference_duration_seconds",
			Help:    "Duration of model inference pipelines in seconds",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"pipeline"}, // "crop_rank", "fertilizer"
	)

	InferenceErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrirank_inference_errors_total",
			Help: "Total number of failed inference requests by error kind",
		},
		[]string{"pipeline", "kind"}, // kind: not_found, invalid_category, schema_mismatch, other
	)

	// Feature reconciliation: columns zero-filled or dropped while aligning
	// a feature matrix to the model schema.
	ReconciledColumns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrirank_reconciled_columns_total",
			Help: "Feature columns synthesized or dropped during schema reconciliation",
		},
		[]string{"action"}, // "synthesized", "dropped"
	)

	EncodingFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agrirank_encoding_fallbacks_total",
			Help: "Target-mean lookups that fell back to the global mean",
		},
		[]string{"column"},
	)

	RankedCrops = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "agrirank_ranked_crops",
			Help:    "Number of crops returned per ranking request",
			Buckets: []float64{1, 3, 5, 10, 20, 50},
		},
	)

	// Ranking cache
	RankingCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agrirank_ranking_cache_hits_total",
			Help: "Total number of ranking cache hits",
		},
	)

	RankingCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agrirank_ranking_cache_misses_total",
			Help: "Total number of ranking cache misses",
		},
	)

	RankingCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "agrirank_ranking_cache_entries",
			Help: "Current number of cached ranking results",
		},
	)

	RankingCacheEvictions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "agrirank_ranking_cache_evictions_total",
			Help: "Ranking cache entries removed by capacity or expiry",
		},
	)

	// Reference store (DuckDB)
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Startup
	AssetLoadDuration = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "agrirank_asset_load_seconds",
			Help: "Time taken to load each startup artifact",
		},
		[]string{"asset"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordInference records the duration of one pipeline run and, on failure, its error kind.
func RecordInference(pipeline string, duration time.Duration, errKind string) {
	InferenceDuration.WithLabelValues(pipeline).Observe(duration.Seconds())
	if errKind != "" {
		InferenceErrors.WithLabelValues(pipeline, errKind).Inc()
	}
}

// RecordReconciliation adds the synthesized and dropped column counts of one alignment.
func RecordReconciliation(synthesized, dropped int) {
	if synthesized > 0 {
		ReconciledColumns.WithLabelValues("synthesized").Add(float64(synthesized))
	}
	if dropped > 0 {
		ReconciledColumns.WithLabelValues("dropped").Add(float64(dropped))
	}
}

// RecordEncodingFallbacks counts n global-mean substitutions for column.
func RecordEncodingFallbacks(column string, n int) {
	if n > 0 {
		EncodingFallbacks.WithLabelValues(column).Add(float64(n))
	}
}

// RecordCacheLookup counts a ranking cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RankingCacheHits.Inc()
	} else {
		RankingCacheMisses.Inc()
	}
}

// RecordDBQuery records a reference store query.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordBreakerTransition records a circuit breaker state change.
// state is 0 closed, 1 half-open, 2 open.
func RecordBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordAssetLoad records how long an artifact took to load.
func RecordAssetLoad(asset string, duration time.Duration) {
	AssetLoadDuration.WithLabelValues(asset).Set(duration.Seconds())
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks in-flight API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
