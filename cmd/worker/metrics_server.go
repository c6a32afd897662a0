package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsdesk/internal/resilience/circuitbreaker"
)

// BreakerHealthResponse is the body of GET /health/breakers.
type BreakerHealthResponse struct {
	Healthy  bool                    `json:"healthy"`
	Breakers []circuitbreaker.Status `json:"breakers"`
}

// newMetricsMux exposes:
//   - GET /metrics: Prometheus metrics
//   - GET /health/breakers: feed host circuit breakers, 503 when any is open
func newMetricsMux(breakers *circuitbreaker.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /health/breakers", breakerHealthHandler(breakers))
	return mux
}

// startMetricsServer serves newMetricsMux on port until ctx is cancelled.
func startMetricsServer(ctx context.Context, logger *slog.Logger, port int, breakers *circuitbreaker.Registry) *http.Server {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      newMetricsMux(breakers),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("metrics server starting", slog.Int("port", port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", slog.Any("error", err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("metrics server shutdown error", slog.Any("error", err))
		} else {
			logger.Info("metrics server stopped")
		}
	}()

	return server
}

func breakerHealthHandler(breakers *circuitbreaker.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		statuses := breakers.Snapshot()
		healthy := true
		for _, s := range statuses {
			if s.State == "open" {
				healthy = false
			}
		}

		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(BreakerHealthResponse{Healthy: healthy, Breakers: statuses})
	}
}
