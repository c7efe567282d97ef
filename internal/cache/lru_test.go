// AgriRank - Crop Ranking and Soil Health Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/agrirank

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestLRU(capacity int, ttl time.Duration) (*LRU[string, int], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRU[string, int](capacity, ttl)
	c.now = clock.now
	return c, clock
}

func TestNewLRUDefaults(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](0, 0)
	if c.capacity != DefaultCapacity {
		t.Errorf("capacity = %d, want %d", c.capacity, DefaultCapacity)
	}
	if c.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want %v", c.ttl, DefaultTTL)
	}
}

func TestLRUGetAdd(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(2, time.Minute)
	c.Add("kerala", 1)
	c.Add("goa", 2)

	if v, ok := c.Get("kerala"); !ok || v != 1 {
		t.Fatalf("Get(kerala) = %d, %v", v, ok)
	}

	// kerala is now most recent, goa gets evicted.
	c.Add("punjab", 3)
	if _, ok := c.Get("goa"); ok {
		t.Error("goa should have been evicted")
	}
	if _, ok := c.Get("kerala"); !ok {
		t.Error("kerala should still be cached")
	}

	s := c.Stats()
	if s.Size != 2 || s.Evictions != 1 {
		t.Errorf("Stats = %+v, want Size 2 Evictions 1", s)
	}
	if s.Hits != 2 || s.Misses != 1 {
		t.Errorf("Stats = %+v, want Hits 2 Misses 1", s)
	}
}

func TestLRUUpdateResetsTTL(t *testing.T) {
	t.Parallel()

	c, clock := newTestLRU(4, time.Minute)
	c.Add("a", 1)
	clock.t = clock.t.Add(50 * time.Second)
	c.Add("a", 2)
	clock.t = clock.t.Add(50 * time.Second)

	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %d, %v; want 2, true", v, ok)
	}
}

func TestLRUExpiry(t *testing.T) {
	t.Parallel()

	c, clock := newTestLRU(4, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)
	clock.t = clock.t.Add(30 * time.Second)
	c.Add("c", 3)
	clock.t = clock.t.Add(45 * time.Second)

	if _, ok := c.Get("a"); ok {
		t.Error("a should be expired")
	}
	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1 (b)", removed)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRURemoveAndClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestLRU(4, time.Minute)
	c.Add("a", 1)
	if !c.Remove("a") {
		t.Error("Remove(a) = false")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true")
	}
	c.Add("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
}

func TestLRUConcurrentAccess(t *testing.T) {
	t.Parallel()

	c := NewLRU[string, int](64, time.Minute)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (g*31+i)%100)
				c.Add(key, i)
				c.Get(key)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Errorf("Len() = %d exceeds capacity", c.Len())
	}
}
