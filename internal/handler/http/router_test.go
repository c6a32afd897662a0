package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/middleware"
	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/observability/logging"
	artUC "newsdesk/internal/usecase/article"
	ingestUC "newsdesk/internal/usecase/ingest"
)

type nopIngester struct{}

func (nopIngester) Ingest(context.Context, string) (ingestUC.Result, error) {
	return ingestUC.Result{}, nil
}

func (nopIngester) IngestAll(context.Context, []string) []ingestUC.SourceOutcome {
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(RouterDeps{
		Version:  "test",
		Logger:   logging.NewLoggerTo(&testWriter{t}, 0),
		Articles: artUC.NewService(nil),
		Ingest:   nopIngester{},
		Auth:     auth.NewAuthenticator("0123456789abcdef0123456789abcdef", nil),
		CORS:     middleware.DefaultCORSConfig([]string{"https://app.example.com"}),
	})
}

type testWriter struct{ t *testing.T }

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{"/live", http.StatusOK},
		{"/sources", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/health", http.StatusServiceUnavailable}, // no database configured
		{"/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(requestid.RequestIDHeader))
		})
	}
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	h := newTestRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/admin/articles", nil),
		httptest.NewRequest(http.MethodPost, "/admin/ingest", nil),
		httptest.NewRequest(http.MethodGet, "/me/feed", nil),
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, req.URL.Path)
	}
}

func TestRouter_FunctionPreflightBypassesAPICORS(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/functions/v1/fetch-news", nil)
	req.Header.Set("Origin", "https://elsewhere.example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_FunctionWithoutTokenKeepsCORSHeaders(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/functions/v1/fetch-news", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_APIPreflight(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/articles", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
