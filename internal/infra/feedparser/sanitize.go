package feedparser

import (
	"regexp"
	"strings"
)

var (
	cdataPattern = regexp.MustCompile(`<!\[CDATA\[([\s\S]*?)\]\]>`)
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
)

// 順序が重要: &quot; → &amp; → &lt; → &gt;
var entityDecoder = []struct{ from, to string }{
	{"&quot;", `"`},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
}

// CleanText unwraps CDATA sections, strips markup, decodes the four basic
// entities and trims surrounding whitespace.
//
// Each entity is decoded in its own pass, in a fixed order, so a
// double-encoded "&amp;quot;" becomes "&quot;" and not a bare quote.
func CleanText(s string) string {
	s = cdataPattern.ReplaceAllString(s, "$1")
	s = tagPattern.ReplaceAllString(s, "")
	for _, e := range entityDecoder {
		s = strings.ReplaceAll(s, e.from, e.to)
	}
	return strings.TrimSpace(s)
}
