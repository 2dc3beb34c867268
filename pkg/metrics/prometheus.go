// Package metrics provides Prometheus metrics for the ORBIT service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the ORBIT service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline Metrics - What really matters for orbit computation
	orbitsComputed       prometheus.Counter
	orbitDuration        prometheus.Histogram
	interactionsRecorded *prometheus.CounterVec
	accountsRanked       prometheus.Histogram
	avatarBatchSize      prometheus.Histogram

	// Upstream Fetch Metrics - X API health
	fetchDuration *prometheus.HistogramVec
	fetchErrors   *prometheus.CounterVec
	fetchRetries  *prometheus.CounterVec

	// Cache Metrics
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	cacheEntries prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "orbit",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.orbitsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "orbits_computed_total",
		Help:      "Total number of orbit computations completed",
	})

	m.orbitDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "orbit_duration_milliseconds",
		Help:      "Histogram of end-to-end orbit computation time in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.interactionsRecorded = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "interactions_recorded_total",
			Help:      "Total number of interactions recorded, by kind",
		},
		[]string{"kind"},
	)

	m.accountsRanked = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "accounts_ranked",
		Help:      "Distribution of eligible accounts per orbit computation",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
	})

	m.avatarBatchSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "avatar_batch_size",
		Help:      "Distribution of id counts sent to the avatar batch lookup",
		Buckets:   []float64{1, 5, 10, 25, 50, 75, 100},
	})

	m.fetchDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "upstream",
			Name:      "fetch_duration_milliseconds",
			Help:      "Upstream API fetch duration in milliseconds, by endpoint",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint"},
	)

	m.fetchErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "upstream",
			Name:      "fetch_errors_total",
			Help:      "Total number of upstream fetch failures, by endpoint",
		},
		[]string{"endpoint"},
	)

	m.fetchRetries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "upstream",
			Name:      "fetch_retries_total",
			Help:      "Total number of upstream request retries, by endpoint",
		},
		[]string{"endpoint"},
	)

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total number of orbit cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total number of orbit cache misses",
	})

	m.cacheEntries = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "entries",
		Help:      "Current number of entries in the orbit cache",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "http",
			Name:      "request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom Prometheus registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers on the global manager.

// RecordOrbitComputed increments the computed-orbit counter and observes duration.
func RecordOrbitComputed(durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.orbitsComputed.Inc()
	globalManager.orbitDuration.Observe(durationMs)
}

// RecordInteraction counts one recorded interaction of the given kind.
func RecordInteraction(kind string) {
	if !globalManager.enabled {
		return
	}
	globalManager.interactionsRecorded.WithLabelValues(kind).Inc()
}

// RecordInteractions counts a batch of recorded interactions of one kind.
func RecordInteractions(kind string, count int) {
	if !globalManager.enabled || count <= 0 {
		return
	}
	globalManager.interactionsRecorded.WithLabelValues(kind).Add(float64(count))
}

// RecordAccountsRanked observes how many accounts entered the ranking step.
func RecordAccountsRanked(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.accountsRanked.Observe(float64(count))
}

// RecordAvatarBatch observes the id count of one avatar batch lookup.
func RecordAvatarBatch(size int) {
	if !globalManager.enabled {
		return
	}
	globalManager.avatarBatchSize.Observe(float64(size))
}

// RecordFetchDuration observes an upstream fetch duration for an endpoint.
func RecordFetchDuration(endpoint string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchDuration.WithLabelValues(endpoint).Observe(durationMs)
}

// RecordFetchError counts an upstream fetch failure for an endpoint.
func RecordFetchError(endpoint string) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchErrors.WithLabelValues(endpoint).Inc()
}

// RecordFetchRetry counts one upstream retry for an endpoint.
func RecordFetchRetry(endpoint string) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchRetries.WithLabelValues(endpoint).Inc()
}

// RecordCacheHit counts an orbit cache hit.
func RecordCacheHit() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss counts an orbit cache miss.
func RecordCacheMiss() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheMisses.Inc()
}

// UpdateCacheEntries sets the current orbit cache size.
func UpdateCacheEntries(count int) {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheEntries.Set(float64(count))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}
