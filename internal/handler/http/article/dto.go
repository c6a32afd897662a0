// Package article provides the HTTP handlers for articles: the public
// reader endpoints and the admin management endpoints.
package article

import (
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
)

// DTO is the JSON form of an article.
type DTO struct {
	ID          uuid.UUID `json:"id" example:"3b241101-e2bb-4255-8caf-4136c566a962"`
	Title       string    `json:"title" example:"Markets rally after rate decision"`
	Subtitle    *string   `json:"subtitle,omitempty"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	AISummary   string    `json:"ai_summary"`
	AITags      []string  `json:"ai_tags" example:"Finance,Markets"`
	Source      string    `json:"source" example:"BBC News"`
	SourceURL   string    `json:"source_url" example:"https://www.bbc.co.uk/news/articles/1"`
	Category    string    `json:"category" example:"business"`
	IsLive      bool      `json:"is_live"`
	IsTrending  bool      `json:"is_trending"`
	ReadingTime int       `json:"reading_time" example:"3"`
	ViewCount   int       `json:"view_count"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToDTO converts an entity for output. Nil tags become an empty array.
func ToDTO(a *entity.Article) DTO {
	tags := a.AITags
	if tags == nil {
		tags = []string{}
	}
	return DTO{
		ID:          a.ID,
		Title:       a.Title,
		Subtitle:    a.Subtitle,
		Content:     a.Content,
		Summary:     a.Summary,
		AISummary:   a.AISummary,
		AITags:      tags,
		Source:      a.Source,
		SourceURL:   a.SourceURL,
		Category:    a.Category,
		IsLive:      a.IsLive,
		IsTrending:  a.IsTrending,
		ReadingTime: a.ReadingTime,
		ViewCount:   a.ViewCount,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}

func toDTOs(in []*entity.Article) []DTO {
	out := make([]DTO, 0, len(in))
	for _, a := range in {
		out = append(out, ToDTO(a))
	}
	return out
}

// CreateRequest is the body of POST /admin/articles.
type CreateRequest struct {
	Title      string   `json:"title" example:"Editor's pick"`
	Subtitle   *string  `json:"subtitle"`
	Content    string   `json:"content"`
	Summary    string   `json:"summary"`
	Category   string   `json:"category" example:"world"`
	AITags     []string `json:"ai_tags"`
	Source     string   `json:"source" example:"Newsdesk"`
	SourceURL  string   `json:"source_url"`
	IsLive     bool     `json:"is_live"`
	IsTrending bool     `json:"is_trending"`
}

// UpdateRequest is the body of PUT /admin/articles/{id}; omitted fields are kept.
type UpdateRequest struct {
	Title    *string  `json:"title"`
	Subtitle *string  `json:"subtitle"`
	Content  *string  `json:"content"`
	Summary  *string  `json:"summary"`
	Category *string  `json:"category"`
	AITags   []string `json:"ai_tags"`
}

// ListResponse is the body of GET /articles.
type ListResponse struct {
	Articles []DTO `json:"articles"`
}

// ViewResponse is the body of POST /articles/{id}/view.
type ViewResponse struct {
	ViewCount int `json:"view_count"`
}
