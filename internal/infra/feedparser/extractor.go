package feedparser

import (
	"regexp"
	"sync"
)

// TextExtractor returns the inner text of the first <tag>…</tag> element in
// document. The boolean is false when no such element exists.
type TextExtractor interface {
	Extract(document, tag string) (string, bool)
}

// RegexExtractor matches tags case-insensitively, tolerating attributes on
// the opening tag. Compiled patterns are cached per tag name.
// The zero value is ready to use and safe for concurrent use.
type RegexExtractor struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// NewRegexExtractor returns an extractor with an empty pattern cache.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{patterns: make(map[string]*regexp.Regexp)}
}

// Extract implements TextExtractor.
func (e *RegexExtractor) Extract(document, tag string) (string, bool) {
	m := e.pattern(tag).FindStringSubmatch(document)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func (e *RegexExtractor) pattern(tag string) *regexp.Regexp {
	e.mu.RLock()
	re, ok := e.patterns[tag]
	e.mu.RUnlock()
	if ok {
		return re
	}

	quoted := regexp.QuoteMeta(tag)
	re = regexp.MustCompile(`(?i)<` + quoted + `[^>]*>([\s\S]*?)</` + quoted + `>`)

	e.mu.Lock()
	if e.patterns == nil {
		e.patterns = make(map[string]*regexp.Regexp)
	}
	e.patterns[tag] = re
	e.mu.Unlock()
	return re
}
