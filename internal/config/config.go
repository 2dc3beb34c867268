// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load() layers defaults, optional YAML file, and environment.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// APIBaseURL is the upstream X API v2 base URL.
	APIBaseURL string `koanf:"api_base_url"`

	// BearerToken authenticates upstream requests.
	BearerToken string `koanf:"bearer_token"`

	// FetchLimit bounds the number of items requested per collection
	// (mentions, timeline, likes).
	FetchLimit int `koanf:"fetch_limit"`

	// FollowerLimit bounds the follower and friend id lookups.
	FollowerLimit int `koanf:"follower_limit"`

	// RequestsPerSecond and Burst shape the outbound rate limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	// MaxAttempts caps upstream request retries.
	MaxAttempts int `koanf:"max_attempts"`

	// DefaultLayers is the layer request used when a caller supplies none.
	DefaultLayers []int `koanf:"default_layers"`

	// CacheEnabled toggles the in-memory orbit cache.
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTLSeconds sets how long a computed orbit stays fresh.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CacheMaxEntries bounds the orbit cache.
	CacheMaxEntries int `koanf:"cache_max_entries"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		APIBaseURL:        "https://api.twitter.com/2",
		FetchLimit:        200,
		FollowerLimit:     1000,
		RequestsPerSecond: 2.0,
		Burst:             10,
		MaxAttempts:       5,
		DefaultLayers:     []int{8, 15, 26},
		CacheEnabled:      true,
		CacheTTLSeconds:   300,
		CacheMaxEntries:   1024,
	}
}
