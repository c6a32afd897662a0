package reader

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
	"newsdesk/internal/usecase/article"
)

// FeedFilter selects a variant of the personalized feed.
type FeedFilter string

const (
	FeedAll      FeedFilter = "all"
	FeedTrending FeedFilter = "trending"
	FeedLatest   FeedFilter = "latest"
)

// DefaultFeedLimit is used when the caller passes no positive limit.
const DefaultFeedLimit = 50

// ParseFeedFilter maps a query value to a FeedFilter; empty means FeedAll.
func ParseFeedFilter(s string) (FeedFilter, error) {
	switch FeedFilter(s) {
	case "", FeedAll:
		return FeedAll, nil
	case FeedTrending, FeedLatest:
		return FeedFilter(s), nil
	default:
		return FeedAll, &entity.ValidationError{Field: "filter", Message: "must be one of all, trending, latest"}
	}
}

// Service provides reader personalization use cases.
type Service struct {
	Readers  repository.ReaderRepository
	Articles repository.ArticleRepository
}

func NewService(readers repository.ReaderRepository, articles repository.ArticleRepository) *Service {
	return &Service{Readers: readers, Articles: articles}
}

/* ───────── interests ───────── */

func (s *Service) Interests(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	interests, err := s.Readers.ListInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	return interests, nil
}

// SetInterests replaces the whole interest set and returns the normalized labels.
func (s *Service) SetInterests(ctx context.Context, userID uuid.UUID, interests []string) ([]string, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	normalized, err := entity.NormalizeInterests(interests)
	if err != nil {
		return nil, err
	}
	if err := s.Readers.ReplaceInterests(ctx, userID, normalized); err != nil {
		return nil, fmt.Errorf("replace interests: %w", err)
	}
	return normalized, nil
}

/* ───────── bookmarks ───────── */

func (s *Service) Bookmarks(ctx context.Context, userID uuid.UUID) ([]*entity.Article, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	articles, err := s.Readers.ListBookmarks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return articles, nil
}

// AddBookmark bookmarks a live article. Adding twice is not an error.
func (s *Service) AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrInvalidUser
	}
	a, err := s.Articles.GetLive(ctx, articleID)
	if err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	if a == nil {
		return article.ErrArticleNotFound
	}
	if err := s.Readers.AddBookmark(ctx, userID, articleID); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

func (s *Service) RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	if userID == uuid.Nil {
		return ErrInvalidUser
	}
	err := s.Readers.RemoveBookmark(ctx, userID, articleID)
	if errors.Is(err, entity.ErrNotFound) {
		return ErrBookmarkNotFound
	}
	if err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

/* ───────── feed ───────── */

// Feed returns the reader's personalized feed. FeedLatest ignores interests
// and orders purely by publication time.
func (s *Service) Feed(ctx context.Context, userID uuid.UUID, filter FeedFilter, limit int) ([]*entity.PersonalizedArticle, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidUser
	}
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	q := entity.FeedQuery{Limit: limit, TrendingOnly: filter == FeedTrending}
	if filter != FeedLatest {
		interests, err := s.Readers.ListInterests(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("feed: %w", err)
		}
		q.Interests = interests
	}

	articles, err := s.Readers.ListPersonalized(ctx, userID, q)
	if err != nil {
		return nil, fmt.Errorf("feed: %w", err)
	}
	return articles, nil
}
