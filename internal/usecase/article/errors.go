// Package article implements the admin and reader use cases around stored
// articles: listing, editing, publishing and view counting.
package article

import "errors"

var (
	// ErrArticleNotFound is returned when no article matches, or when a
	// reader asks for an article that is still a draft.
	ErrArticleNotFound = errors.New("article not found")

	// ErrInvalidArticleID is returned for the zero UUID.
	ErrInvalidArticleID = errors.New("invalid article ID")
)
