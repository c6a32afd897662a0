package ingest

import (
	"net/http"
	"time"
)

// Guard wraps a handler with a policy such as authentication or rate limiting.
type Guard func(http.Handler) http.Handler

// Register mounts the ingestion endpoints. fetchGuards run inside the CORS
// wrapper of the function endpoint; adminGuard protects /admin/ingest.
func Register(mux *http.ServeMux, svc Ingester, sources []string, timeout time.Duration, adminGuard Guard, fetchGuards ...Guard) {
	var fetch http.Handler = FetchNewsHandler{Svc: svc, Timeout: timeout}
	for i := len(fetchGuards) - 1; i >= 0; i-- {
		fetch = fetchGuards[i](fetch)
	}
	mux.Handle("/functions/v1/fetch-news", WithFunctionCORS(fetch))

	mux.Handle("POST /admin/ingest", adminGuard(IngestAllHandler{Svc: svc, Sources: sources}))
}
