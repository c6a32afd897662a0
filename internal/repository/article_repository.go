//go:generate mockgen -source=article_repository.go -destination=mock/mock_article_repository.go -package=mock
//go:generate mockgen -source=profile_repository.go -destination=mock/mock_profile_repository.go -package=mock

// Package repository declares the persistence ports used by the use cases.
package repository

import (
	"context"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
)

// ArticleRepository persists articles.
//
// Get and GetLive return (nil, nil) when no row matches; mutating methods
// return entity.ErrNotFound instead.
type ArticleRepository interface {
	// Create inserts a new article. The store assigns ID, CreatedAt and, when
	// zero, PublishedAt; the passed article is updated with those values.
	Create(ctx context.Context, article *entity.Article) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	// GetLive returns the article only if it is published.
	GetLive(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	// ListAdmin lists articles ordered by created_at DESC.
	ListAdmin(ctx context.Context, filter entity.ArticleFilter) ([]*entity.Article, error)
	// CountAdmin counts the rows ListAdmin would return without paging.
	CountAdmin(ctx context.Context, filter entity.ArticleFilter) (int64, error)
	// ListLive lists published articles ordered by published_at DESC.
	ListLive(ctx context.Context, limit int) ([]*entity.Article, error)
	Update(ctx context.Context, id uuid.UUID, upd entity.ArticleUpdate) (*entity.Article, error)
	// ToggleLive flips is_live atomically and returns the updated row.
	ToggleLive(ctx context.Context, id uuid.UUID) (*entity.Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementViewCount adds one view to a published article and returns the new count.
	IncrementViewCount(ctx context.Context, id uuid.UUID) (int, error)
}
