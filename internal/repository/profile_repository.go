package repository

import (
	"context"

	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
)

// ProfileRepository reads user records owned by the identity service.
type ProfileRepository interface {
	// Get returns (nil, nil) when the profile does not exist.
	Get(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
}

// ReaderRepository stores per-reader state: bookmarks and interests.
type ReaderRepository interface {
	AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error
	// RemoveBookmark returns entity.ErrNotFound if there was no bookmark.
	RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error
	ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*entity.Article, error)
	CountBookmarks(ctx context.Context, userID uuid.UUID) (int64, error)

	ListInterests(ctx context.Context, userID uuid.UUID) ([]string, error)
	// ReplaceInterests swaps the whole interest set in one transaction.
	ReplaceInterests(ctx context.Context, userID uuid.UUID, interests []string) error

	// ListPersonalized returns live articles, those whose category matches an
	// interest first, each flagged with the reader's bookmark state.
	ListPersonalized(ctx context.Context, userID uuid.UUID, q entity.FeedQuery) ([]*entity.PersonalizedArticle, error)
}
