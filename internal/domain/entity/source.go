package entity

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Source identifies an upstream news feed.
type Source struct {
	ID      string
	FeedURL string
}

// Label returns the display name stored on ingested articles: the id with its
// first character upper-cased ("bbc" -> "Bbc").
func (s Source) Label() string {
	return SourceLabel(s.ID)
}

// SourceLabel upper-cases the first character of id.
func SourceLabel(id string) string {
	if id == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(id)
	return string(unicode.ToUpper(r)) + id[size:]
}

// 固定のソース表。起動時に一度だけ構築し、以後は読み取り専用。
var sources = map[string]Source{
	"aljazeera": {ID: "aljazeera", FeedURL: "https://www.aljazeera.com/xml/rss/all.xml"},
	"bbc":       {ID: "bbc", FeedURL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
	"reuters":   {ID: "reuters", FeedURL: "https://www.reutersagency.com/feed/?best-top-news"},
}

// LookupSource resolves a source id to its feed. Unknown ids yield
// ErrInvalidSource; the lookup is exact and case-sensitive.
func LookupSource(id string) (Source, error) {
	src, ok := sources[id]
	if !ok {
		return Source{}, ErrInvalidSource
	}
	return src, nil
}

// SourceIDs returns every registered source id in lexical order.
func SourceIDs() []string {
	ids := make([]string, 0, len(sources))
	for id := range sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ParseSourceList splits a comma separated list of source ids and validates
// each entry. Blank entries are ignored; an empty list yields every source.
func ParseSourceList(raw string) ([]string, error) {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		if _, err := LookupSource(id); err != nil {
			return nil, &ValidationError{Field: "sources", Message: "unknown source " + id}
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return SourceIDs(), nil
	}
	return ids, nil
}
