package metrics

import (
	"strconv"
	"time"
)

// RecordHTTPRequest records an HTTP request with its metadata.
// path must be a normalized route, not the raw URL, to bound cardinality.
func RecordHTTPRequest(method, path string, status int, duration time.Duration, responseSize int) {
	code := strconv.Itoa(status)
	HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordFeedFetch records a successful feed download.
func RecordFeedFetch(source string, duration time.Duration, size int) {
	FeedFetchDuration.WithLabelValues(source).Observe(duration.Seconds())
	FeedFetchSize.WithLabelValues(source).Observe(float64(size))
}

// RecordFeedFetchError records a failed download; errorType is a short
// classification such as "status", "timeout", "circuit_open" or "network".
func RecordFeedFetchError(source, errorType string) {
	FeedFetchErrors.WithLabelValues(source, errorType).Inc()
}

// RecordIngestItems adds the per-item outcome of one ingestion run.
func RecordIngestItems(source string, parsed, inserted, failed int) {
	IngestItemsTotal.WithLabelValues(source, "parsed").Add(float64(parsed))
	IngestItemsTotal.WithLabelValues(source, "inserted").Add(float64(inserted))
	IngestItemsTotal.WithLabelValues(source, "failed").Add(float64(failed))
}

func RecordIngestRun(source string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	IngestRunsTotal.WithLabelValues(source, status).Inc()
}

func RecordArticleView() {
	ArticleViewsTotal.Inc()
}

// SetCircuitBreakerState publishes a breaker state by its string form
// ("closed", "half-open", "open"). Unknown values are ignored.
func SetCircuitBreakerState(name, state string) {
	var v float64
	switch state {
	case "closed":
		v = 0
	case "half-open":
		v = 1
	case "open":
		v = 2
	default:
		return
	}
	CircuitBreakerState.WithLabelValues(name).Set(v)
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
