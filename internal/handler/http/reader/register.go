package reader

import (
	"net/http"

	readerUC "newsdesk/internal/usecase/reader"
)

// Register mounts the /me routes behind requireUser.
func Register(mux *http.ServeMux, svc *readerUC.Service, requireUser func(http.Handler) http.Handler) {
	mux.Handle("GET /me/feed", requireUser(FeedHandler{svc}))
	mux.Handle("GET /me/bookmarks", requireUser(ListBookmarksHandler{svc}))
	mux.Handle("PUT /me/bookmarks/{id}", requireUser(AddBookmarkHandler{svc}))
	mux.Handle("DELETE /me/bookmarks/{id}", requireUser(RemoveBookmarkHandler{svc}))
	mux.Handle("GET /me/interests", requireUser(GetInterestsHandler{svc}))
	mux.Handle("PUT /me/interests", requireUser(PutInterestsHandler{svc}))
}
