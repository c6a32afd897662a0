// Package reader serves the signed-in reader's endpoints under /me.
package reader

import (
	"encoding/json"
	"errors"
	"net/http"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/handler/http/article"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
	readerUC "newsdesk/internal/usecase/reader"
)

var (
	errNoUser      = errors.New("unauthorized: no user in context")
	errInvalidBody = errors.New("invalid request body")
)

// FeedItem is an article as listed in a reader's feed.
type FeedItem struct {
	article.DTO
	IsBookmarked bool `json:"is_bookmarked"`
}

type FeedResponse struct {
	Articles []FeedItem `json:"articles"`
}

type BookmarksResponse struct {
	Articles []article.DTO `json:"articles"`
}

type InterestsBody struct {
	Interests []string `json:"interests" example:"business,sports"`
}

func writeError(w http.ResponseWriter, err error) {
	code := respond.StatusFor(err)
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound), errors.Is(err, readerUC.ErrBookmarkNotFound):
		code = http.StatusNotFound
	case errors.Is(err, pathutil.ErrInvalidID):
		code = http.StatusBadRequest
	case errors.Is(err, readerUC.ErrInvalidUser):
		code = http.StatusUnauthorized
	}
	respond.SafeError(w, code, err)
}

// user returns the caller or writes 401.
func user(w http.ResponseWriter, r *http.Request) (auth.User, bool) {
	u, ok := auth.UserFromContext(r.Context())
	if !ok {
		respond.SafeError(w, http.StatusUnauthorized, errNoUser)
	}
	return u, ok
}

type FeedHandler struct{ Svc *readerUC.Service }

// ServeHTTP パーソナライズドフィード
// @Summary      Personalized feed
// @Description  Live articles; those whose category matches one of the reader's interests come first.
// @Tags         me
// @Security     BearerAuth
// @Produce      json
// @Param        filter query string false "all, trending or latest" Enums(all, trending, latest)
// @Param        limit  query int    false "page size" default(50) minimum(1) maximum(100)
// @Success      200 {object} FeedResponse
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Router       /me/feed [get]
func (h FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, ok := user(w, r)
	if !ok {
		return
	}
	params, err := pagination.ParseQueryParams(r, pagination.FeedConfig())
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	filter, err := readerUC.ParseFeedFilter(r.URL.Query().Get("filter"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	items, err := h.Svc.Feed(r.Context(), u.ID, filter, params.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]FeedItem, 0, len(items))
	for _, it := range items {
		out = append(out, FeedItem{DTO: article.ToDTO(&it.Article), IsBookmarked: it.IsBookmarked})
	}
	respond.JSON(w, http.StatusOK, FeedResponse{Articles: out})
}

type ListBookmarksHandler struct{ Svc *readerUC.Service }

// ServeHTTP ブックマーク一覧
// @Summary      List bookmarks
// @Tags         me
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} BookmarksResponse
// @Router       /me/bookmarks [get]
func (h ListBookmarksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, ok := user(w, r)
	if !ok {
		return
	}
	articles, err := h.Svc.Bookmarks(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]article.DTO, 0, len(articles))
	for _, a := range articles {
		out = append(out, article.ToDTO(a))
	}
	respond.JSON(w, http.StatusOK, BookmarksResponse{Articles: out})
}

type AddBookmarkHandler struct{ Svc *readerUC.Service }

// ServeHTTP ブックマーク追加
// @Summary      Bookmark an article
// @Description  Idempotent; only live articles can be bookmarked.
// @Tags         me
// @Security     BearerAuth
// @Param        id path string true "article id (uuid)"
// @Success      204 "No Content"
// @Failure      404 {object} map[string]string
// @Router       /me/bookmarks/{id} [put]
func (h AddBookmarkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, ok := user(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Svc.AddBookmark(r.Context(), u.ID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type RemoveBookmarkHandler struct{ Svc *readerUC.Service }

// ServeHTTP ブックマーク削除
// @Summary      Remove a bookmark
// @Tags         me
// @Security     BearerAuth
// @Param        id path string true "article id (uuid)"
// @Success      204 "No Content"
// @Failure      404 {object} map[string]string
// @Router       /me/bookmarks/{id} [delete]
func (h RemoveBookmarkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, ok := user(w, r)
	if !ok {
		return
	}
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Svc.RemoveBookmark(r.Context(), u.ID, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type GetInterestsHandler struct{ Svc *readerUC.Service }

// ServeHTTP 興味カテゴリ取得
// @Summary      List interests
// @Tags         me
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} InterestsBody
// @Router       /me/interests [get]
func (h GetInterestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, ok := user(w, r)
	if !ok {
		return
	}
	interests, err := h.Svc.Interests(r.Context(), u.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, InterestsBody{Interests: interests})
}

type PutInterestsHandler struct{ Svc *readerUC.Service }

// ServeHTTP 興味カテゴリ更新
// @Summary      Replace interests
// @Description  Replaces the whole set; 1 to 16 non-empty labels, duplicates are dropped case-insensitively.
// @Tags         me
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body body InterestsBody true "interests"
// @Success      200 {object} InterestsBody
// @Failure      400 {object} map[string]string
// @Router       /me/interests [put]
func (h PutInterestsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u, ok := user(w, r)
	if !ok {
		return
	}
	var body InterestsBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	interests, err := h.Svc.SetInterests(r.Context(), u.ID, body.Interests)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, InterestsBody{Interests: interests})
}
