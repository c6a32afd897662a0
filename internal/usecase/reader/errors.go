// Package reader implements the signed-in reader's use cases: interests,
// bookmarks and the personalized feed.
package reader

import "errors"

var (
	// ErrBookmarkNotFound is returned when removing a bookmark that does not exist.
	ErrBookmarkNotFound = errors.New("bookmark not found")

	// ErrInvalidUser is returned for the zero user id.
	ErrInvalidUser = errors.New("invalid user ID")
)
