// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package database

import (
	"context"
	"errors"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/agrirank/internal/config"
	"github.com/tomtom215/agrirank/internal/logging"
	"github.com/tomtom215/agrirank/internal/metrics"
	"github.com/tomtom215/agrirank/internal/recommend"
)

// ReferenceStore is the read surface of the reference tables.
type ReferenceStore interface {
	RegionContext(ctx context.Context, state, district string) (recommend.RegionContext, error)
	States(ctx context.Context) ([]string, error)
	Districts(ctx context.Context, state string) ([]string, error)
	Ping(ctx context.Context) error
}

var _ ReferenceStore = (*DB)(nil)

// ErrUnavailable is returned while the breaker is open or saturated.
var ErrUnavailable = errors.New("reference store unavailable")

// BreakerStore guards a ReferenceStore with a circuit breaker. Lookups that
// end in NotFound or a caller's canceled context do not count as failures.
//
// The breaker uses real time for its interval and timeout; tests drive it
// through the wrapped store rather than the clock.
type BreakerStore struct {
	store ReferenceStore
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

var _ ReferenceStore = (*BreakerStore)(nil)

// NewBreakerStore wraps store. The breaker opens when at least MinRequests
// were seen in the interval and the failure ratio reaches FailureRatio.
func NewBreakerStore(store ReferenceStore, cfg config.BreakerConfig) *BreakerStore {
	name := "reference-store"
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			trip := ratio >= cfg.FailureRatio
			if trip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", ratio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return trip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.RecordBreakerTransition(name, fromStr, toStr, stateToFloat(to))
		},

		// Caller cancellations and per-request timeouts say nothing about
		// the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, recommend.ErrNotFound) ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded)
		},
	})

	return &BreakerStore{store: store, cb: cb, name: name}
}

// State returns the breaker state as "closed", "half-open" or "open".
func (b *BreakerStore) State() string {
	return stateToString(b.cb.State())
}

func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		logging.Warn().Err(err).Str("breaker", b.name).Msg("[CIRCUIT BREAKER] Request rejected")
		return nil, errors.Join(ErrUnavailable, err)
	}
	return result, err
}

// RegionContext implements recommend.HistoricalSource.
func (b *BreakerStore) RegionContext(ctx context.Context, state, district string) (recommend.RegionContext, error) {
	result, err := b.execute(func() (any, error) {
		return b.store.RegionContext(ctx, state, district)
	})
	if err != nil {
		return recommend.RegionContext{}, err
	}
	return result.(recommend.RegionContext), nil
}

// States lists the known states.
func (b *BreakerStore) States(ctx context.Context) ([]string, error) {
	result, err := b.execute(func() (any, error) {
		return b.store.States(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Districts lists the districts of a state.
func (b *BreakerStore) Districts(ctx context.Context, state string) ([]string, error) {
	result, err := b.execute(func() (any, error) {
		return b.store.Districts(ctx, state)
	})
	if err != nil {
		return nil, err
	}
	return result.([]string), nil
}

// Ping checks the wrapped store.
func (b *BreakerStore) Ping(ctx context.Context) error {
	_, err := b.execute(func() (any, error) {
		return nil, b.store.Ping(ctx)
	})
	return err
}

// stateToFloat converts a breaker state for the state gauge.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
