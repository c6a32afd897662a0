package article

import (
	"net/http"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type ListLiveHandler struct{ Svc *artUC.Service }

// ServeHTTP 公開記事一覧
// @Summary      List published articles
// @Description  Live articles ordered by publication time, newest first.
// @Tags         articles
// @Produce      json
// @Param        limit query int false "page size" default(20) minimum(1) maximum(100)
// @Success      200 {object} ListResponse
// @Failure      400 {object} map[string]string
// @Router       /articles [get]
func (h ListLiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, pagination.DefaultConfig())
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	articles, err := h.Svc.ListLive(r.Context(), params.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ListResponse{Articles: toDTOs(articles)})
}

type GetLiveHandler struct{ Svc *artUC.Service }

// ServeHTTP 公開記事詳細
// @Summary      Get a published article
// @Tags         articles
// @Produce      json
// @Param        id path string true "article id (uuid)"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string "not found or not published"
// @Router       /articles/{id} [get]
func (h GetLiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.Svc.GetLive(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(a))
}

type ViewHandler struct{ Svc *artUC.Service }

// ServeHTTP 閲覧数カウント
// @Summary      Record a view
// @Tags         articles
// @Produce      json
// @Param        id path string true "article id (uuid)"
// @Success      200 {object} ViewResponse
// @Failure      404 {object} map[string]string
// @Router       /articles/{id}/view [post]
func (h ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	n, err := h.Svc.RecordView(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ViewResponse{ViewCount: n})
}
