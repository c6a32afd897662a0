package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// result: success | failure
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Total authentication requests by required role and result",
		},
		[]string{"role", "result"},
	)

	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Authenticated requests rejected for lack of the admin role",
		},
		[]string{"method"},
	)
)

func recordAuth(role string, ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	authRequestsTotal.WithLabelValues(role, result).Inc()
}
