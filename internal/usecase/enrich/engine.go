// Package enrich derives category, tags, summary and trending flag from an
// article's text by keyword matching.
//
// The engine is a pure function of its input and the embedded lookup tables:
// no I/O, no randomness, no external calls. All matching is substring
// matching on the lower-cased concatenation of title and description.
package enrich

import (
	"strings"

	"newsdesk/internal/domain/entity"
)

// Engine applies a fixed set of Tables.
type Engine struct {
	tables Tables
}

// New returns an Engine over the embedded default tables.
func New() *Engine {
	return &Engine{tables: defaultTables}
}

// NewWithTables returns an Engine over custom tables.
func NewWithTables(t Tables) *Engine {
	return &Engine{tables: t.clone()}
}

// Enrich derives all metadata for one entry.
func (e *Engine) Enrich(title, description string) entity.Enrichment {
	text := strings.ToLower(title + " " + description)
	return entity.Enrichment{
		Category:   e.category(text),
		Tags:       e.tags(text),
		Summary:    e.Summarize(description),
		IsTrending: e.trending(text),
	}
}

// Category returns the first category whose keywords occur in the text.
func (e *Engine) Category(title, description string) string {
	return e.category(strings.ToLower(title + " " + description))
}

func (e *Engine) category(text string) string {
	for _, rule := range e.tables.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Name
			}
		}
	}
	return e.tables.DefaultCategory
}

func (e *Engine) tags(text string) []string {
	tags := make([]string, 0, e.tables.MaxTags)
	for _, tag := range e.tables.Tags {
		if len(tags) == e.tables.MaxTags {
			break
		}
		if strings.Contains(text, strings.ToLower(tag)) {
			tags = append(tags, tag)
		}
	}
	return tags
}

func (e *Engine) trending(text string) bool {
	for _, kw := range e.tables.Trending {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Summarize shortens long descriptions to their first sentence.
//
// Descriptions up to the configured length are returned verbatim. Longer
// ones are cut at the first delimiter, and the ellipsis is appended only if
// the delimiter occurred at all. A long description without a delimiter is
// therefore returned whole.
func (e *Engine) Summarize(description string) string {
	s := e.tables.Summary
	if entity.TextLength(description) <= s.MaxLength {
		return description
	}
	first, _, found := strings.Cut(description, s.Delimiter)
	if !found {
		return description
	}
	return first + s.Ellipsis
}
