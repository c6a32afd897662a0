package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"newsdesk/internal/domain/entity"
)

// psql builds PostgreSQL-style ($1, $2, ...) statements.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// articleColumns is the select list every article query uses, in scan order.
var articleColumns = []string{
	"id", "title", "subtitle", "content", "summary", "ai_summary", "ai_tags",
	"source", "source_url", "category", "is_live", "is_trending",
	"reading_time", "view_count", "published_at", "created_at",
}

// prefixed returns articleColumns qualified with alias.
func prefixed(alias string) []string {
	cols := make([]string, len(articleColumns))
	for i, c := range articleColumns {
		cols[i] = alias + "." + c
	}
	return cols
}

var articleSelectList = strings.Join(articleColumns, ", ")

type rowScanner interface {
	Scan(dest ...any) error
}

// scanArticle reads one row in articleColumns order, plus any extra
// destinations appended after the article columns.
func scanArticle(row rowScanner, extra ...any) (*entity.Article, error) {
	var (
		a        entity.Article
		subtitle sql.NullString
		tags     []byte
	)
	dest := []any{
		&a.ID, &a.Title, &subtitle, &a.Content, &a.Summary, &a.AISummary, &tags,
		&a.Source, &a.SourceURL, &a.Category, &a.IsLive, &a.IsTrending,
		&a.ReadingTime, &a.ViewCount, &a.PublishedAt, &a.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if subtitle.Valid {
		s := subtitle.String
		a.Subtitle = &s
	}
	var err error
	if a.AITags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	return &a, nil
}

func decodeTags(raw []byte) ([]string, error) {
	tags := []string{}
	if len(raw) == 0 {
		return tags, nil
	}
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil, fmt.Errorf("decode ai_tags: %w", err)
	}
	return tags, nil
}

// encodeTags renders tags as a JSON array; nil becomes [].
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode ai_tags: %w", err)
	}
	return string(b), nil
}

// likeEscaper neutralises LIKE wildcards in user input.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
