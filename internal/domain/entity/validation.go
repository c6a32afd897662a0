package entity

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

const (
	// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
	maxURLLength = 2048
	// MaxTitleLength bounds article titles in runes.
	MaxTitleLength = 500
	// MaxTags bounds the number of tags an admin may attach to an article.
	MaxTags = 10
	// MaxInterests is the size of the interest catalogue offered to readers.
	MaxInterests = 16
	// MaxInterestLength bounds a single interest label in runes.
	MaxInterestLength = 64
)

// ValidateURL checks that rawURL is an absolute http(s) URL.
// An empty string is accepted because source links are optional.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "source_url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "source_url", Message: "malformed url"}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "source_url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "source_url", Message: "URL must have a valid host"}
	}
	return nil
}

// ValidateArticle checks the fields an admin supplies when creating an article.
func ValidateArticle(a *Article) error {
	if strings.TrimSpace(a.Title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(a.Title) > MaxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
		}
	}
	if strings.TrimSpace(a.Source) == "" {
		return &ValidationError{Field: "source", Message: "source is required"}
	}
	if a.ReadingTime < 1 {
		return &ValidationError{Field: "reading_time", Message: "reading time must be at least 1 minute"}
	}
	if len(a.AITags) > MaxTags {
		return &ValidationError{
			Field:   "ai_tags",
			Message: fmt.Sprintf("at most %d tags are allowed", MaxTags),
		}
	}
	return ValidateURL(a.SourceURL)
}

// ValidateArticleUpdate checks the fields present in an admin edit.
func ValidateArticleUpdate(u ArticleUpdate) error {
	if u.IsEmpty() {
		return &ValidationError{Field: "body", Message: "no fields to update"}
	}
	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			return &ValidationError{Field: "title", Message: "title must not be empty"}
		}
		if utf8.RuneCountInString(*u.Title) > MaxTitleLength {
			return &ValidationError{
				Field:   "title",
				Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			}
		}
	}
	if u.Category != nil && strings.TrimSpace(*u.Category) == "" {
		return &ValidationError{Field: "category", Message: "category must not be empty"}
	}
	if len(u.AITags) > MaxTags {
		return &ValidationError{
			Field:   "ai_tags",
			Message: fmt.Sprintf("at most %d tags are allowed", MaxTags),
		}
	}
	return nil
}

// NormalizeInterests trims the labels, drops duplicates (keeping the first
// spelling) and validates the resulting set.
func NormalizeInterests(in []string) ([]string, error) {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		label := strings.TrimSpace(raw)
		if label == "" {
			return nil, &ValidationError{Field: "interests", Message: "interest must not be empty"}
		}
		if utf8.RuneCountInString(label) > MaxInterestLength {
			return nil, &ValidationError{
				Field:   "interests",
				Message: fmt.Sprintf("interest must not exceed %d characters", MaxInterestLength),
			}
		}
		key := strings.ToLower(label)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, label)
	}
	if len(out) == 0 {
		return nil, &ValidationError{Field: "interests", Message: "select at least one interest"}
	}
	if len(out) > MaxInterests {
		return nil, &ValidationError{
			Field:   "interests",
			Message: fmt.Sprintf("at most %d interests are allowed", MaxInterests),
		}
	}
	return out, nil
}
