package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/ingest"
)

const defaultCategory = "general"

// CreateInput is a manually written article. Unlike ingested articles it may
// be published immediately.
type CreateInput struct {
	Title      string
	Subtitle   *string
	Content    string
	Summary    string
	Category   string
	AITags     []string
	Source     string
	SourceURL  string
	IsLive     bool
	IsTrending bool
}

// ListResult is one page of the admin listing plus the unpaged total.
type ListResult struct {
	Articles []*entity.Article
	Total    int64
}

// Service provides article management use cases.
type Service struct {
	Repo repository.ArticleRepository
}

func NewService(repo repository.ArticleRepository) *Service {
	return &Service{Repo: repo}
}

/* ───────── admin ───────── */

// List returns drafts and live articles, newest first.
func (s *Service) List(ctx context.Context, filter entity.ArticleFilter) (*ListResult, error) {
	total, err := s.Repo.CountAdmin(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}
	articles, err := s.Repo.ListAdmin(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return &ListResult{Articles: articles, Total: total}, nil
}

// Get returns any article, draft or live.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArticleID
	}
	article, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// Create validates and stores a manual article. Content falls back to the
// summary and then to the title; reading time is derived from the content.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Article, error) {
	content := in.Content
	if strings.TrimSpace(content) == "" {
		content = in.Summary
	}
	if strings.TrimSpace(content) == "" {
		content = in.Title
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}
	tags := in.AITags
	if tags == nil {
		tags = []string{}
	}

	art := &entity.Article{
		Title:       strings.TrimSpace(in.Title),
		Subtitle:    in.Subtitle,
		Content:     content,
		Summary:     in.Summary,
		AISummary:   in.Summary,
		AITags:      tags,
		Source:      strings.TrimSpace(in.Source),
		SourceURL:   strings.TrimSpace(in.SourceURL),
		Category:    category,
		IsLive:      in.IsLive,
		IsTrending:  in.IsTrending,
		ReadingTime: ingest.ReadingTime(content),
	}
	if err := entity.ValidateArticle(art); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return art, nil
}

// Update applies an admin edit. Only non-nil fields change.
func (s *Service) Update(ctx context.Context, id uuid.UUID, upd entity.ArticleUpdate) (*entity.Article, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArticleID
	}
	if err := entity.ValidateArticleUpdate(upd); err != nil {
		return nil, err
	}
	article, err := s.Repo.Update(ctx, id, upd)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	return article, nil
}

// ToggleLive publishes a draft or unpublishes a live article.
func (s *Service) ToggleLive(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArticleID
	}
	article, err := s.Repo.ToggleLive(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("toggle live: %w", err)
	}
	return article, nil
}

// Delete removes the article; bookmarks pointing at it go with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidArticleID
	}
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return ErrArticleNotFound
	}
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	return nil
}

/* ───────── reader ───────── */

// ListLive returns published articles, newest first.
func (s *Service) ListLive(ctx context.Context, limit int) ([]*entity.Article, error) {
	articles, err := s.Repo.ListLive(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list live articles: %w", err)
	}
	return articles, nil
}

// GetLive returns a published article; drafts are reported as not found.
func (s *Service) GetLive(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidArticleID
	}
	article, err := s.Repo.GetLive(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get live article: %w", err)
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	return article, nil
}

// RecordView increments the view counter of a published article and
// returns the new count.
func (s *Service) RecordView(ctx context.Context, id uuid.UUID) (int, error) {
	if id == uuid.Nil {
		return 0, ErrInvalidArticleID
	}
	count, err := s.Repo.IncrementViewCount(ctx, id)
	if errors.Is(err, entity.ErrNotFound) {
		return 0, ErrArticleNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("record view: %w", err)
	}
	metrics.RecordArticleView()
	return count, nil
}
