// Package http wires the API's HTTP surface: middleware, operational
// endpoints and the router that mounts the feature handlers.
package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/resilience/circuitbreaker"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // RFC 3339
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the result of one health check.
type CheckStatus struct {
	Status  string         `json:"status"` // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports database connectivity and the state of the feed
// circuit breakers. Only the database decides the overall status; open
// breakers are reported as degraded.
type HealthHandler struct {
	DB       *sql.DB
	Version  string
	Breakers *circuitbreaker.Registry
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	if h.DB != nil {
		dbCheck := h.checkDatabase(ctx)
		checks["database"] = dbCheck
		if dbCheck.Status == "unhealthy" {
			allHealthy = false
		}
	} else {
		checks["database"] = CheckStatus{Status: "unhealthy", Message: "not configured"}
		allHealthy = false
	}

	if h.Breakers != nil {
		checks["feed_breakers"] = h.checkBreakers()
	}

	status, code := "healthy", http.StatusOK
	if !allHealthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}); err != nil {
		slog.Warn("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckStatus {
	if err := h.DB.PingContext(ctx); err != nil {
		return CheckStatus{Status: "unhealthy", Message: err.Error()}
	}

	stats := h.DB.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections が 0 (無制限) のときはゼロ除算を避ける
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{Status: "degraded", Message: "connection pool max connections not configured", Details: details}
	}
	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= 80.0 {
		return CheckStatus{Status: "degraded", Message: "connection pool utilization above 80%", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkBreakers() CheckStatus {
	snapshot := h.Breakers.Snapshot()
	var open []string
	for _, s := range snapshot {
		if s.State != "closed" {
			open = append(open, s.Key)
		}
	}
	details := map[string]any{"breakers": snapshot}
	if len(open) > 0 {
		details["not_closed"] = open
		return CheckStatus{Status: "degraded", Message: "feed host circuit breaker not closed", Details: details}
	}
	return CheckStatus{Status: "healthy", Details: details}
}

// ReadyHandler answers readiness probes; ready means the database responds.
type ReadyHandler struct {
	DB *sql.DB
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes.
type LiveHandler struct{}

func (LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
