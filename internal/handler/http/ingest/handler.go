// Package ingest exposes feed ingestion over HTTP: the fetch-news function
// endpoint and the admin "ingest everything" trigger.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"newsdesk/internal/handler/http/respond"
	ingestUC "newsdesk/internal/usecase/ingest"
)

// Ingester is the slice of the ingestion service the handlers need.
type Ingester interface {
	Ingest(ctx context.Context, sourceID string) (ingestUC.Result, error)
	IngestAll(ctx context.Context, sourceIDs []string) []ingestUC.SourceOutcome
}

const (
	allowOrigin  = "*"
	allowHeaders = "authorization, x-client-info, apikey, content-type"
)

var errInvalidBody = errors.New("invalid request body")

type fetchNewsRequest struct {
	Source string `json:"source" example:"bbc"`
}

// FetchNewsHandler ingests one source per request.
type FetchNewsHandler struct {
	Svc Ingester
	// Timeout bounds the fetch; zero means no extra deadline.
	Timeout time.Duration
}

// ServeHTTP 記事取り込み
// @Summary      Ingest one news source
// @Description  Fetches the RSS feed of the given source and stores up to 10 entries as draft articles.
// @Tags         ingest
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body fetchNewsRequest true "source id: aljazeera, bbc or reuters"
// @Success      200 {object} ingestUC.Result
// @Failure      400 {object} map[string]string "invalid source, fetch failure or malformed body"
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      429 {object} map[string]string
// @Router       /functions/v1/fetch-news [post]
func (h FetchNewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req fetchNewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errInvalidBody)
		return
	}

	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	// エラーは種類を問わず 400 でメッセージをそのまま返す
	res, err := h.Svc.Ingest(ctx, req.Source)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// WithFunctionCORS answers preflight requests with 200 "ok" and puts the
// endpoint's fixed CORS headers on every response, including the ones
// written by guards such as auth and rate limiting.
func WithFunctionCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Headers", allowHeaders)

		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Type", "text/plain")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IngestAllHandler runs ingestion for every configured source.
type IngestAllHandler struct {
	Svc     Ingester
	Sources []string
}

type ingestAllResponse struct {
	Results   []ingestUC.SourceOutcome `json:"results"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
}

// ServeHTTP 全ソース取り込み
// @Summary      Ingest all sources
// @Description  Runs the same ingestion as the scheduled worker job and reports one outcome per source.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} ingestAllResponse
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /admin/ingest [post]
func (h IngestAllHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	outcomes := h.Svc.IngestAll(r.Context(), h.Sources)

	resp := ingestAllResponse{Results: outcomes}
	for _, o := range outcomes {
		if o.Err != nil {
			resp.Failed++
		} else {
			resp.Succeeded++
		}
	}
	respond.JSON(w, http.StatusOK, resp)
}
