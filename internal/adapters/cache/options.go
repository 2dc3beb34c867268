package cache

import "time"

// Option applies a configuration option to the in-memory cache.
type Option func(*inMemoryCache)

// WithTTL sets how long entries stay fresh.
func WithTTL(ttl time.Duration) Option {
	return func(c *inMemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithMaxEntries bounds the cache size.
func WithMaxEntries(max int) Option {
	return func(c *inMemoryCache) {
		if max > 0 {
			c.maxEntries = max
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *inMemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}
