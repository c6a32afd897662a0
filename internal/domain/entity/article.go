// Package entity defines the core domain entities of the news desk: articles,
// feed sources, transient feed entries and reader profiles, together with their
// validation rules and domain-specific errors.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Article represents a persisted news article.
//
// Articles created by the ingestion pipeline always start as drafts
// (IsLive=false) and become visible to readers only after an admin publishes
// them. ReadingTime is expressed in whole minutes and is never below 1.
type Article struct {
	ID          uuid.UUID
	Title       string
	Subtitle    *string
	Content     string
	Summary     string
	AISummary   string
	AITags      []string
	Source      string
	SourceURL   string
	Category    string
	IsLive      bool
	IsTrending  bool
	ReadingTime int
	ViewCount   int
	PublishedAt time.Time
	CreatedAt   time.Time
}

// ArticleStatus filters articles by their publication state.
type ArticleStatus string

const (
	// StatusAny matches both live and draft articles.
	StatusAny ArticleStatus = ""
	// StatusLive matches published articles.
	StatusLive ArticleStatus = "live"
	// StatusDraft matches unpublished articles.
	StatusDraft ArticleStatus = "draft"
)

// ParseArticleStatus converts a query parameter into an ArticleStatus.
// "all" and the empty string both mean StatusAny.
func ParseArticleStatus(s string) (ArticleStatus, error) {
	switch s {
	case "", "all":
		return StatusAny, nil
	case string(StatusLive):
		return StatusLive, nil
	case string(StatusDraft):
		return StatusDraft, nil
	default:
		return StatusAny, &ValidationError{Field: "status", Message: "must be one of live, draft, all"}
	}
}

// ArticleFilter narrows admin listings.
// Source is matched as a case-insensitive substring of Article.Source.
type ArticleFilter struct {
	Status ArticleStatus
	Source string
	Limit  int
	Offset int
}

// ArticleUpdate carries the editable fields of an article.
// Nil pointers leave the stored value untouched.
type ArticleUpdate struct {
	Title    *string
	Subtitle *string
	Content  *string
	Summary  *string
	Category *string
	AITags   []string
}

// IsEmpty reports whether the update changes nothing.
func (u ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Subtitle == nil && u.Content == nil &&
		u.Summary == nil && u.Category == nil && u.AITags == nil
}

// PersonalizedArticle is a live article as seen by a signed-in reader.
type PersonalizedArticle struct {
	Article
	IsBookmarked bool
}

// FeedQuery selects the live articles of a personalized feed.
// Articles whose category matches one of Interests rank first.
type FeedQuery struct {
	Interests    []string
	TrendingOnly bool
	Limit        int
}
