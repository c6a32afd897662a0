// Package pagination parses limit/offset query parameters and builds the
// paging metadata returned by list endpoints.
package pagination

// Config holds the paging limits of one endpoint.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig is used by the article lists: 20 per page, at most 100.
func DefaultConfig() Config {
	return Config{DefaultLimit: 20, MaxLimit: 100}
}

// FeedConfig is used by the personalized reader feed.
func FeedConfig() Config {
	return Config{DefaultLimit: 50, MaxLimit: 100}
}
