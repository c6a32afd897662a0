// Package ingest runs the fetch, parse, enrich and insert pipeline for the
// registered news sources.
package ingest

import "errors"

// ErrFeedFetchFailed wraps every transport failure of a source feed.
var ErrFeedFetchFailed = errors.New("failed to fetch feed")
