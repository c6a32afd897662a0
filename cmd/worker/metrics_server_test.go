package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/resilience/circuitbreaker"
)

func TestBreakerHealth(t *testing.T) {
	reg := circuitbreaker.NewRegistry(nil)
	mux := newMetricsMux(reg)

	// an untouched host is closed
	reg.Get("feeds.bbci.co.uk")

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/breakers", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body BreakerHealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Healthy)
	require.Len(t, body.Breakers, 1)
	assert.Equal(t, "closed", body.Breakers[0].State)

	cb := reg.Get("www.reutersagency.com")
	for range 3 {
		_, _ = cb.Execute(func() (any, error) { return nil, errors.New("boom") })
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/breakers", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Healthy)
}

func TestMetricsEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	newMetricsMux(circuitbreaker.NewRegistry(nil)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
