package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimit(t *testing.T) {
	// 補充がほぼ無いバケットで burst 分だけ通す
	h := RateLimit("test", PerMinute(1, 2))(okHandler())
	before := testutil.ToFloat64(rateLimitRejections.WithLabelValues("test"))

	codes := make([]int, 0, 4)
	for range 4 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/functions/v1/fetch-news", nil))
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
			assert.JSONEq(t, `{"error":"rate limit exceeded"}`, rec.Body.String())
		}
	}

	assert.Equal(t, []int{200, 200, 429, 429}, codes)
	assert.Equal(t, before+2, testutil.ToFloat64(rateLimitRejections.WithLabelValues("test")))
}

func TestRateLimit_OptionsIsFree(t *testing.T) {
	h := RateLimit("options", rate.NewLimiter(0, 0))(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestPerMinute(t *testing.T) {
	l := PerMinute(6, 3)
	assert.Equal(t, 3, l.Burst())
	assert.InDelta(t, 0.1, float64(l.Limit()), 1e-9)

	// 0 や負の値でも動く
	l = PerMinute(0, 0)
	assert.Equal(t, 1, l.Burst())
}
