// Package middleware holds cross-cutting HTTP policies: CORS for the
// reader and admin API, token-bucket rate limiting and security headers.
package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig is the CORS policy of the reader and admin API.
type CORSConfig struct {
	// AllowedOrigins may contain "*" to allow every origin. With a wildcard
	// no credentials header is sent.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
	Logger *slog.Logger
}

// DefaultCORSConfig returns the policy used when only origins are configured.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

func (c CORSConfig) wildcard() bool {
	return slices.Contains(c.AllowedOrigins, "*")
}

func (c CORSConfig) allowed(origin string) bool {
	return c.wildcard() || slices.Contains(c.AllowedOrigins, origin)
}

// CORS sets CORS headers for allowed origins and answers preflight requests
// with 204. Requests from other origins pass through without CORS headers,
// so the browser blocks the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !config.allowed(origin) {
				if config.Logger != nil {
					config.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
				}
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			if config.wildcard() {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				h.Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
