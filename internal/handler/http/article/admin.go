package article

import (
	"encoding/json"
	"net/http"

	"newsdesk/internal/common/pagination"
	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

type AdminListHandler struct{ Svc *artUC.Service }

// ServeHTTP 管理用記事一覧
// @Summary      List all articles
// @Description  Drafts and live articles ordered by creation time, newest first.
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        status query string false "live, draft or all" Enums(live, draft, all)
// @Param        source query string false "case-insensitive substring of the source name"
// @Param        limit  query int    false "page size" default(20) minimum(1) maximum(100)
// @Param        offset query int    false "rows to skip" default(0) minimum(0)
// @Success      200 {object} pagination.Response[DTO]
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /admin/articles [get]
func (h AdminListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseQueryParams(r, pagination.DefaultConfig())
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	status, err := entity.ParseArticleStatus(r.URL.Query().Get("status"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := h.Svc.List(r.Context(), entity.ArticleFilter{
		Status: status,
		Source: r.URL.Query().Get("source"),
		Limit:  params.Limit,
		Offset: params.Offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(toDTOs(res.Articles), pagination.NewMetadata(params, res.Total)))
}

type CreateHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事作成
// @Summary      Create an article
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        article body CreateRequest true "article"
// @Success      201 {object} DTO
// @Failure      400 {object} map[string]string
// @Router       /admin/articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	a, err := h.Svc.Create(r.Context(), artUC.CreateInput{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Content:    req.Content,
		Summary:    req.Summary,
		Category:   req.Category,
		AITags:     req.AITags,
		Source:     req.Source,
		SourceURL:  req.SourceURL,
		IsLive:     req.IsLive,
		IsTrending: req.IsTrending,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, ToDTO(a))
}

type GetHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事詳細 (下書き含む)
// @Summary      Get any article
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "article id (uuid)"
// @Success      200 {object} DTO
// @Failure      404 {object} map[string]string
// @Router       /admin/articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(a))
}

type UpdateHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事更新
// @Summary      Edit an article
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id      path string        true "article id (uuid)"
// @Param        article body UpdateRequest true "fields to change"
// @Success      200 {object} DTO
// @Failure      400 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /admin/articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, errInvalidBody)
		return
	}
	a, err := h.Svc.Update(r.Context(), id, entity.ArticleUpdate{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  req.Content,
		Summary:  req.Summary,
		Category: req.Category,
		AITags:   req.AITags,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(a))
}

type ToggleLiveHandler struct{ Svc *artUC.Service }

// ServeHTTP 公開状態の切り替え
// @Summary      Publish or unpublish
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Param        id path string true "article id (uuid)"
// @Success      200 {object} DTO
// @Failure      404 {object} map[string]string
// @Router       /admin/articles/{id}/toggle-live [post]
func (h ToggleLiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := h.Svc.ToggleLive(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, ToDTO(a))
}

type DeleteHandler struct{ Svc *artUC.Service }

// ServeHTTP 記事削除
// @Summary      Delete an article
// @Tags         admin
// @Security     BearerAuth
// @Param        id path string true "article id (uuid)"
// @Success      204 "No Content"
// @Failure      404 {object} map[string]string
// @Router       /admin/articles/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.PathUUID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
