// Package cache provides a bounded in-memory TTL cache for computed
// orbits, so repeated requests for the same subject do not re-hit the
// rate-limited upstream API. Process-local only; nothing is persisted.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores computed values under string keys until they expire.
type Cache interface {
	// Get returns the cached value for key, or false when the key is
	// missing or expired.
	Get(ctx context.Context, key string) (any, bool)

	// Set stores value under key, replacing any previous entry.
	Set(ctx context.Context, key string, value any)

	// Len returns the number of live entries.
	Len() int
}

type entry struct {
	value   any
	expires time.Time
	addedAt time.Time
}

// inMemoryCache implements Cache with a mutex-guarded map. Expired
// entries are dropped lazily on read and when the cache is full.
type inMemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// New creates an in-memory cache with configuration options.
func New(opts ...Option) Cache {
	c := &inMemoryCache{
		entries:    make(map[string]entry),
		ttl:        5 * time.Minute,
		maxEntries: 1024,
		now:        time.Now,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		c.mu.Lock()
		// Re-check under the write lock; another Set may have refreshed it.
		if cur, still := c.entries[key]; still && c.now().After(cur.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, value any) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evict(now)
	}
	c.entries[key] = entry{
		value:   value,
		expires: now.Add(c.ttl),
		addedAt: now,
	}
}

// evict drops expired entries, and when none are expired, the oldest
// entry. Must be called with c.mu held.
func (c *inMemoryCache) evict(now time.Time) {
	var oldestKey string
	var oldestAt time.Time
	dropped := false
	for key, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, key)
			dropped = true
			continue
		}
		if oldestKey == "" || e.addedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = e.addedAt
		}
	}
	if !dropped && oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *inMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
