package xapi

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit shapes the outbound request rate.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithMaxAttempts caps retries per request.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithFetchLimit bounds items requested per collection fetch.
func WithFetchLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.fetchLimit = limit
		}
	}
}

// WithFollowerLimit bounds follower and friend id lookups.
func WithFollowerLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.followerLimit = limit
		}
	}
}
