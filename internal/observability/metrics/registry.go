// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)
)

// Ingestion metrics. The source label is always a registered source id.
var (
	FeedFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_duration_seconds",
			Help:    "Time taken to download a source feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"source"},
	)

	FeedFetchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_fetch_size_bytes",
			Help:    "Size of downloaded feed documents",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
		},
		[]string{"source"},
	)

	FeedFetchErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_fetch_errors_total",
			Help: "Total number of failed feed downloads",
		},
		[]string{"source", "error_type"},
	)

	// IngestItemsTotal counts feed items by outcome: parsed, inserted, failed.
	IngestItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_items_total",
			Help: "Feed items processed by the ingestion pipeline",
		},
		[]string{"source", "result"},
	)

	IngestRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_runs_total",
			Help: "Ingestion invocations per source by status",
		},
		[]string{"source", "status"},
	)

	ArticleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "article_views_total",
			Help: "Total number of recorded article views",
		},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current state of each circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Database metrics track the connection pool
var (
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
