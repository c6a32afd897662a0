package feed

import "errors"

var (
	// ErrUnexpectedStatus is returned for any non-2xx response.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
	// ErrBodyTooLarge is returned when the feed exceeds MaxBodySize.
	ErrBodyTooLarge = errors.New("feed body exceeds size limit")
	// ErrInvalidURL is returned for URLs that are not absolute http(s).
	ErrInvalidURL = errors.New("invalid feed URL")
)
