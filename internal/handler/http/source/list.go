// Package source lists the news sources the ingestion endpoint accepts.
package source

import (
	"net/http"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/handler/http/respond"
)

// DTO describes one registered feed.
type DTO struct {
	ID      string `json:"id" example:"bbc"`
	Name    string `json:"name" example:"Bbc"`
	FeedURL string `json:"feed_url" example:"https://feeds.bbci.co.uk/news/world/rss.xml"`
}

type ListHandler struct{}

// ServeHTTP ソース一覧
// @Summary      List news sources
// @Description  The fixed set of source ids accepted by /functions/v1/fetch-news, sorted by id.
// @Tags         sources
// @Produce      json
// @Success      200 {array} DTO
// @Router       /sources [get]
func (ListHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	ids := entity.SourceIDs()
	out := make([]DTO, 0, len(ids))
	for _, id := range ids {
		src, err := entity.LookupSource(id)
		if err != nil {
			continue
		}
		out = append(out, DTO{ID: src.ID, Name: src.Label(), FeedURL: src.FeedURL})
	}
	respond.JSON(w, http.StatusOK, out)
}

func Register(mux *http.ServeMux) {
	mux.Handle("GET /sources", ListHandler{})
}
