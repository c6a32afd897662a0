package pathutil

import (
	"regexp"
	"strings"
)

type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

const uuidRe = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// 具体的なパターンから順に評価する
var pathPatterns = []pathPattern{
	{regexp.MustCompile(`^/articles/` + uuidRe + `$`), "/articles/{id}"},
	{regexp.MustCompile(`^/articles/` + uuidRe + `/view$`), "/articles/{id}/view"},
	{regexp.MustCompile(`^/admin/articles/` + uuidRe + `$`), "/admin/articles/{id}"},
	{regexp.MustCompile(`^/admin/articles/` + uuidRe + `/toggle-live$`), "/admin/articles/{id}/toggle-live"},
	{regexp.MustCompile(`^/me/bookmarks/` + uuidRe + `$`), "/me/bookmarks/{id}"},
}

// NormalizePath maps paths containing ids onto their route template so that
// metric labels stay bounded. It is the fallback for requests the mux did not
// route (404s); routed requests use http.Request.Pattern.
//
//	NormalizePath("/articles/6f1c...e2")   // "/articles/{id}"
//	NormalizePath("/articles/?limit=5")    // "/articles"
//	NormalizePath("/health")               // "/health"
//
// Anything else that does not match a known route collapses to "other".
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}
	if _, ok := staticPaths[path]; ok {
		return path
	}
	return "other"
}

var staticPaths = map[string]struct{}{
	"/":                        {},
	"/health":                  {},
	"/ready":                   {},
	"/live":                    {},
	"/metrics":                 {},
	"/articles":                {},
	"/admin/articles":          {},
	"/admin/ingest":            {},
	"/functions/v1/fetch-news": {},
	"/me/feed":                 {},
	"/me/bookmarks":            {},
	"/me/interests":            {},
}
