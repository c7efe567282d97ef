// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type countingPurger struct {
	calls   atomic.Int32
	removed int
}

func (p *countingPurger) PurgeExpired() int {
	p.calls.Add(1)
	return p.removed
}

// syncBuffer guards a bytes.Buffer shared with the service goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCacheJanitorService_PurgesOnTick(t *testing.T) {
	t.Parallel()

	purger := &countingPurger{removed: 3}
	out := &syncBuffer{}
	logger := zerolog.New(out).Level(zerolog.DebugLevel)
	svc := NewCacheJanitorService(purger, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for purger.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if got := purger.calls.Load(); got < 2 {
		t.Errorf("PurgeExpired called %d times, want at least 2", got)
	}

	logs := out.String()
	for _, want := range []string{`"service":"cache-janitor"`, `"removed":3`, "cache janitor shutting down"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %s:\n%s", want, logs)
		}
	}
}

func TestNewCacheJanitorService_DefaultInterval(t *testing.T) {
	t.Parallel()

	svc := NewCacheJanitorService(&countingPurger{}, 0, zerolog.Nop())
	if svc.interval != DefaultJanitorInterval {
		t.Errorf("interval = %v, want %v", svc.interval, DefaultJanitorInterval)
	}
	if svc.String() != "cache-janitor" {
		t.Errorf("String() = %q, want cache-janitor", svc.String())
	}
}
