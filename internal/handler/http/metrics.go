package http

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/observability/metrics"
)

var normalizePath = pathutil.NormalizePath

// MetricsMiddleware records request count, latency and response size per
// route. It must wrap the mux directly so that the routed pattern is
// visible once the handler returns.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newRecorder(w)
		next.ServeHTTP(rw, r)
		metrics.RecordHTTPRequest(r.Method, routeLabel(r), rw.status, time.Since(start), rw.bytes)
	})
}

// MetricsHandler serves the Prometheus exposition format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
