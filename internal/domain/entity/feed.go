package entity

// FeedEntry is a single item extracted from a raw feed document.
// It has no identity beyond its position in the parsed sequence and is never
// persisted directly.
type FeedEntry struct {
	Title       string
	Description string
	Link        string
	SourceName  string
}

// Enrichment holds the metadata derived from an entry's text at ingestion time.
type Enrichment struct {
	Category   string
	Tags       []string
	Summary    string
	IsTrending bool
}
