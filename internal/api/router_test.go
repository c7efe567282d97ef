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

	"github.com/tomtom215/agrirank/internal/agronomy"
	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/database"
	"github.com/tomtom215/agrirank/internal/models"
	"github.com/tomtom215/agrirank/internal/recommend"
)

func TestHealthLive(t *testing.T) {
	t.Parallel()

	handler := &Handler{startTime: time.Now().Add(-time.Hour)}
	w := httptest.NewRecorder()
	handler.HealthLive(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["alive"] != true {
		t.Errorf("alive = %v", data["alive"])
	}
	if uptime, _ := data["uptime"].(float64); uptime < 3600 {
		t.Errorf("uptime = %v, want >= 3600", data["uptime"])
	}
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler := &Handler{startTime: time.Now()}
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.HealthLive(w, httptest.NewRequest(method, "/api/v1/health/live", nil))
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("live: status = %d, want 405", w.Code)
			}
			w = httptest.NewRecorder()
			handler.HealthReady(w, httptest.NewRequest(method, "/api/v1/health/ready", nil))
			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("ready: status = %d, want 405", w.Code)
			}
		})
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		store          *fakeStore
		wantStatus     int
		wantComponents map[string]string
	}{
		{
			name:       "ready",
			store:      &fakeStore{},
			wantStatus: http.StatusOK,
			wantComponents: map[string]string{
				"models": "ok", "reference_store": "ok", "circuit_breaker": "closed",
			},
		},
		{
			name:       "breaker open",
			store:      &fakeStore{err: errBreakerOpen},
			wantStatus: http.StatusServiceUnavailable,
			wantComponents: map[string]string{
				"models": "ok", "reference_store": "unreachable", "circuit_breaker": "open",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newTestHandler(t, testConfig(), tt.store)
			w := httptest.NewRecorder()
			h.HealthReady(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var env envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			var hs models.HealthStatus
			if err := json.Unmarshal(env.Data, &hs); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			for k, want := range tt.wantComponents {
				if hs.Components[k] != want {
					t.Errorf("component %s = %q, want %q", k, hs.Components[k], want)
				}
			}
		})
	}
}

func TestHealthReady_NoEngine(t *testing.T) {
	t.Parallel()

	h := NewHandler(nil, nil, nil, nil)
	w := httptest.NewRecorder()
	h.HealthReady(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestRouter_CommonHeaders(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	w, _ := do(t, srv, http.MethodGet, "/api/v1/regions", "")
	for _, header := range []string{"X-Request-ID", "ETag", "X-Content-Type-Options", "X-Frame-Options"} {
		if w.Header().Get(header) == "" {
			t.Errorf("missing %s header", header)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
	req.Header.Set("X-Request-ID", "req-abc-1")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-ID"); got != "req-abc-1" {
		t.Errorf("X-Request-ID = %q, want the upstream id", got)
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	w, env := do(t, srv, http.MethodGet, "/api/v1/nowhere", "")
	if w.Code != http.StatusNotFound || env.Error == nil || env.Error.Code != ErrCodeNotFound {
		t.Errorf("unknown route = %d %+v", w.Code, env.Error)
	}

	w, env = do(t, srv, http.MethodDelete, "/api/v1/crops/rank", "")
	if w.Code != http.StatusMethodNotAllowed || env.Error == nil || env.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("wrong method = %d %+v", w.Code, env.Error)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	// Generate at least one instrumented request first.
	do(t, srv, http.MethodGet, "/api/v1/regions", "")

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "api_requests_total") {
		t.Error("metrics output lacks api_requests_total")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security = config.SecurityConfig{RateLimitReqs: 2, RateLimitWindow: time.Minute}
	h := newTestHandler(t, cfg, &fakeStore{})
	srv := NewRouter(h, NewChiMiddlewareFromConfig(&cfg.Security)).SetupChi()

	for i := 0; i < 2; i++ {
		if w, _ := do(t, srv, http.MethodGet, "/api/v1/regions", ""); w.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, w.Code)
		}
	}
	w, env := do(t, srv, http.MethodGet, "/api/v1/regions", "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	// Health probes have their own budget.
	if w, _ := do(t, srv, http.MethodGet, "/api/v1/health/live", ""); w.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", w.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Security.CORSOrigins = []string{"https://dash.example.org"}
	h := newTestHandler(t, cfg, &fakeStore{})
	srv := NewRouter(h, NewChiMiddlewareFromConfig(&cfg.Security)).SetupChi()

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/fertilizer/recommend", nil)
	req.Header.Set("Origin", "https://dash.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example.org" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRespondServiceError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"recommend not found", &recommend.NotFoundError{State: "X"}, http.StatusNotFound, ErrCodeNotFound},
		{"agronomy not found", &agronomy.NotFoundError{Kind: "crop", Name: "X"}, http.StatusNotFound, ErrCodeNotFound},
		{"invalid category", &recommend.InvalidCategoryError{Field: "Soil Type", Value: "Lava"}, http.StatusUnprocessableEntity, ErrCodeInvalidCategory},
		{"schema mismatch", &recommend.SchemaMismatchError{Model: "m", Expected: 3, Actual: 2}, http.StatusInternalServerError, ErrCodeSchemaMismatch},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, ErrCodeTimeout},
		{"breaker open", errors.Join(database.ErrUnavailable, errors.New("circuit breaker is open")), http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"not loaded", database.ErrNotLoaded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			respondServiceError(w, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var env envelope
			if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Error == nil || env.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want %s", env.Error, tt.wantCode)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag is not deterministic")
	}
	if a == generateETag([]byte(`{"a":2}`)) {
		t.Error("different bodies share an ETag")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag %s is not quoted", a)
	}
}
