package feedparser

import (
	"regexp"

	"newsdesk/internal/domain/entity"
)

// MaxItems is the per-run ingestion cap. Items beyond it are dropped silently.
const MaxItems = 10

var itemPattern = regexp.MustCompile(`<item[^>]*>([\s\S]*?)</item>`)

// Parser turns raw feed text into entries.
type Parser struct {
	Extractor TextExtractor
	Limit     int
}

// New returns a Parser backed by a RegexExtractor with the default cap.
func New() *Parser {
	return &Parser{Extractor: NewRegexExtractor(), Limit: MaxItems}
}

// Parse scans raw for <item> blocks in document order and returns at most
// Limit entries. An item without a <title> element (or with an empty one)
// is skipped. Parse never fails: empty or malformed input yields nil.
func (p *Parser) Parse(raw, sourceID string) []entity.FeedEntry {
	limit := p.Limit
	if limit <= 0 {
		limit = MaxItems
	}
	label := entity.SourceLabel(sourceID)

	var entries []entity.FeedEntry
	for _, m := range itemPattern.FindAllStringSubmatch(raw, -1) {
		if len(entries) == limit {
			break
		}
		block := m[1]

		title, ok := p.Extractor.Extract(block, "title")
		if !ok || title == "" {
			continue
		}
		description, _ := p.Extractor.Extract(block, "description")
		link, _ := p.Extractor.Extract(block, "link")

		entries = append(entries, entity.FeedEntry{
			Title:       CleanText(title),
			Description: CleanText(description),
			Link:        link,
			SourceName:  label,
		})
	}
	return entries
}
