// Package cache provides the small time-boxed read cache owned by the
// dataset service. Entries expire after their TTL; a manual refresh
// invalidates explicitly. The cache is the only mutable shared state
// in the pipeline, so the discipline stays simple: get, put,
// invalidate, nothing else.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value    any
	deadline time.Time
}

// TTL is a concurrency-safe cache with per-entry expiry.
type TTL struct {
	mu      sync.Mutex
	entries map[string]entry
	// now is swappable for tests.
	now func() time.Time
}

// New returns an empty cache.
func New() *TTL {
	return &TTL{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns the live value for key, or false if absent or expired.
// Expired entries are removed on access.
func (c *TTL) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.deadline) {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Put stores value under key for ttl. Non-positive ttl stores nothing.
func (c *TTL) Put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, deadline: c.now().Add(ttl)}
}

// Invalidate removes key if present.
func (c *TTL) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// SetClock overrides the time source. Tests only.
func (c *TTL) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
