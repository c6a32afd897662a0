package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_String(t *testing.T) {
	p := Policy{
		{"default-src", []string{"'self'"}},
		{"script-src", nil},
		{"img-src", []string{"'self'", "data:"}},
	}
	assert.Equal(t, "default-src 'self'; img-src 'self' data:", p.String())
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(DefaultSecurityConfig(false))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path string
		want string
	}{
		{"/articles", StrictPolicy().String()},
		{"/swagger/index.html", SwaggerUIPolicy().String()},
		{"/swaggerish", StrictPolicy().String()},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.want, rec.Header().Get("Content-Security-Policy"))
			assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
			assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		})
	}
}

func TestSecurityHeaders_ReportOnly(t *testing.T) {
	h := SecurityHeaders(DefaultSecurityConfig(true))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
	assert.Equal(t, StrictPolicy().String(), rec.Header().Get("Content-Security-Policy-Report-Only"))
}
