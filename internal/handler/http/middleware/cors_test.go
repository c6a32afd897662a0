package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		preflight   bool
		wantCode    int
		wantOrigin  string
		wantCreds   string
		wantMethods bool
	}{
		{name: "same origin", origins: []string{"https://app.example"}, method: "GET", wantCode: 200},
		{name: "allowed origin", origins: []string{"https://app.example"}, method: "GET", origin: "https://app.example",
			wantCode: 200, wantOrigin: "https://app.example", wantCreds: "true"},
		{name: "disallowed origin", origins: []string{"https://app.example"}, method: "GET", origin: "https://evil.example",
			wantCode: 200},
		{name: "wildcard", origins: []string{"*"}, method: "GET", origin: "https://any.example",
			wantCode: 200, wantOrigin: "*"},
		{name: "preflight", origins: []string{"https://app.example"}, method: "OPTIONS", origin: "https://app.example",
			preflight: true, wantCode: 204, wantOrigin: "https://app.example", wantCreds: "true", wantMethods: true},
		{name: "preflight from disallowed origin reaches handler", origins: []string{"https://app.example"}, method: "OPTIONS",
			origin: "https://evil.example", preflight: true, wantCode: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORS(DefaultCORSConfig(tt.origins))(okHandler())
			req := httptest.NewRequest(tt.method, "/articles", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", "PUT")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCreds, rec.Header().Get("Access-Control-Allow-Credentials"))
			if tt.wantMethods {
				assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}
