// Package observability exposes Prometheus metrics for the HTTP
// surface, the Supabase repositories, and the cache stores.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds all Prometheus metrics for the application. It
// registers against its own registry so tests can create collectors
// without tripping duplicate-registration panics.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Repository metrics
	DBOperations *prometheus.CounterVec
	DBDuration   *prometheus.HistogramVec

	// Cache metrics, labelled by store name
	CacheHits          *prometheus.CounterVec
	CacheMisses        *prometheus.CounterVec
	CacheEvictions     *prometheus.CounterVec
	CacheInvalidations *prometheus.CounterVec
}

// NewCollector creates a metrics collector under the given namespace.
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		DBOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_operations_total",
				Help:      "Total number of database operations",
			},
			[]string{"operation", "status"},
		),
		DBDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_operation_duration_seconds",
				Help:      "Database operation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"store"},
		),
		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"store"},
		),
		CacheEvictions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_evictions_total",
				Help:      "Total number of cache entries evicted by the size bound",
			},
			[]string{"store"},
		),
		CacheInvalidations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_invalidations_total",
				Help:      "Total number of cache entries removed by invalidation",
			},
			[]string{"store"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.DBOperations,
		c.DBDuration,
		c.CacheHits,
		c.CacheMisses,
		c.CacheEvictions,
		c.CacheInvalidations,
	)

	return c
}

// Registry returns the Prometheus registry for this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveHTTP records one completed HTTP request.
func (c *Collector) ObserveHTTP(method, route, status string, duration time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, status).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDB records one completed database operation.
func (c *Collector) ObserveDB(operation, status string, duration time.Duration) {
	c.DBOperations.WithLabelValues(operation, status).Inc()
	c.DBDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// CacheMetrics adapts the collector to the cache layer's Metrics
// interface.
type CacheMetrics struct {
	c *Collector
}

// NewCacheMetrics wraps collector for use by cache stores.
func NewCacheMetrics(collector *Collector) *CacheMetrics {
	return &CacheMetrics{c: collector}
}

func (m *CacheMetrics) Hit(store string)  { m.c.CacheHits.WithLabelValues(store).Inc() }
func (m *CacheMetrics) Miss(store string) { m.c.CacheMisses.WithLabelValues(store).Inc() }

func (m *CacheMetrics) Eviction(store string) {
	m.c.CacheEvictions.WithLabelValues(store).Inc()
}

func (m *CacheMetrics) Invalidation(store string, removed int) {
	m.c.CacheInvalidations.WithLabelValues(store).Add(float64(removed))
}
