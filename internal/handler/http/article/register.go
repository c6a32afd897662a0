package article

import (
	"net/http"

	artUC "newsdesk/internal/usecase/article"
)

// Register mounts the public reader routes and the admin routes; admin
// wraps every /admin handler.
func Register(mux *http.ServeMux, svc *artUC.Service, admin func(http.Handler) http.Handler) {
	mux.Handle("GET /articles", ListLiveHandler{svc})
	mux.Handle("GET /articles/{id}", GetLiveHandler{svc})
	mux.Handle("POST /articles/{id}/view", ViewHandler{svc})

	mux.Handle("GET /admin/articles", admin(AdminListHandler{svc}))
	mux.Handle("POST /admin/articles", admin(CreateHandler{svc}))
	mux.Handle("GET /admin/articles/{id}", admin(GetHandler{svc}))
	mux.Handle("PUT /admin/articles/{id}", admin(UpdateHandler{svc}))
	mux.Handle("POST /admin/articles/{id}/toggle-live", admin(ToggleLiveHandler{svc}))
	mux.Handle("DELETE /admin/articles/{id}", admin(DeleteHandler{svc}))
}
