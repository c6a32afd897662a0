package middleware

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/time/rate"

	"newsdesk/internal/handler/http/respond"
)

var rateLimitRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "rate_limit_rejections_total",
		Help: "Requests rejected by a rate limiter",
	},
	[]string{"limiter"},
)

var errRateLimited = errors.New("rate limit exceeded")

// PerMinute builds a token bucket that refills n tokens per minute.
func PerMinute(n, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(max(n, 1))), max(burst, 1))
}

// RateLimit rejects requests with 429 when limiter has no token left.
// The limiter is shared by every caller of the wrapped handler.
func RateLimit(name string, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// プリフライトはトークンを消費しない
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Reserve()
			if !res.OK() {
				reject(w, name, time.Minute)
				return
			}
			if delay := res.Delay(); delay > 0 {
				res.Cancel()
				reject(w, name, delay)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func reject(w http.ResponseWriter, name string, retryAfter time.Duration) {
	rateLimitRejections.WithLabelValues(name).Inc()
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
	respond.SafeError(w, http.StatusTooManyRequests, errRateLimited)
}
