package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/handler/http/requestid"
	"newsdesk/internal/observability/logging"
)

func TestLogging_IncludesRequestIDAndRoute(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggerTo(&buf, 0)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /articles/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("tea"))
	})
	h := Chain(mux, requestid.Middleware, Logging(logger))

	req := httptest.NewRequest(http.MethodGet, "/articles/abc", nil)
	req.Header.Set(requestid.RequestIDHeader, "req-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request completed", line["msg"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "/articles/{id}", line["route"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, float64(3), line["bytes"])
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	h := Recover(logging.NewLoggerTo(&buf, 0))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestLimitRequestBody(t *testing.T) {
	h := LimitRequestBody(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("short")))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this is far too long")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	// ContentLength 不明でも MaxBytesReader が止める
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("this is far too long")))
	req.ContentLength = -1
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { order = append(order, "handler") }),
		mw("outer"), mw("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRouteLabel(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/nope/123", nil)
	assert.Equal(t, "other", routeLabel(r))

	r.Pattern = "GET /articles/{id}"
	assert.Equal(t, "/articles/{id}", routeLabel(r))

	r.Pattern = "/metrics"
	assert.Equal(t, "/metrics", routeLabel(r))
}
