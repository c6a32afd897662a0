// Package postgres implements the repository ports on PostgreSQL through
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type ArticleRepo struct {
	db *sql.DB
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db}
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	tags, err := encodeTags(article.AITags)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	var publishedAt sql.NullTime
	if !article.PublishedAt.IsZero() {
		publishedAt = sql.NullTime{Time: article.PublishedAt, Valid: true}
	}

	const query = `
INSERT INTO articles
  (title, subtitle, content, summary, ai_summary, ai_tags, source, source_url,
   category, is_live, is_trending, reading_time, published_at)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11, $12, COALESCE($13, now()))
RETURNING id, published_at, created_at`
	err = repo.db.QueryRowContext(ctx, query,
		article.Title, nullString(article.Subtitle), article.Content, article.Summary,
		article.AISummary, tags, article.Source, article.SourceURL, article.Category,
		article.IsLive, article.IsTrending, article.ReadingTime, publishedAt,
	).Scan(&article.ID, &article.PublishedAt, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	query := `SELECT ` + articleSelectList + ` FROM articles WHERE id = $1 LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) GetLive(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	query := `SELECT ` + articleSelectList + ` FROM articles WHERE id = $1 AND is_live LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetLive: %w", err)
	}
	return article, nil
}

// adminWhere applies the status and source filters shared by ListAdmin and CountAdmin.
func adminWhere(b sq.SelectBuilder, f entity.ArticleFilter) sq.SelectBuilder {
	switch f.Status {
	case entity.StatusLive:
		b = b.Where(sq.Eq{"is_live": true})
	case entity.StatusDraft:
		b = b.Where(sq.Eq{"is_live": false})
	}
	if s := strings.TrimSpace(f.Source); s != "" {
		b = b.Where(sq.ILike{"source": containsPattern(s)})
	}
	return b
}

func (repo *ArticleRepo) ListAdmin(ctx context.Context, f entity.ArticleFilter) ([]*entity.Article, error) {
	b := adminWhere(psql.Select(articleColumns...).From("articles"), f).
		OrderBy("created_at DESC")
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		b = b.Offset(uint64(f.Offset))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListAdmin: build: %w", err)
	}
	return repo.queryArticles(ctx, "ListAdmin", query, args...)
}

func (repo *ArticleRepo) CountAdmin(ctx context.Context, f entity.ArticleFilter) (int64, error) {
	query, args, err := adminWhere(psql.Select("COUNT(*)").From("articles"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("CountAdmin: build: %w", err)
	}
	var n int64
	if err := repo.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("CountAdmin: %w", err)
	}
	return n, nil
}

func (repo *ArticleRepo) ListLive(ctx context.Context, limit int) ([]*entity.Article, error) {
	query := `SELECT ` + articleSelectList + `
FROM articles
WHERE is_live
ORDER BY published_at DESC
LIMIT $1`
	return repo.queryArticles(ctx, "ListLive", query, limit)
}

func (repo *ArticleRepo) Update(ctx context.Context, id uuid.UUID, upd entity.ArticleUpdate) (*entity.Article, error) {
	set := map[string]any{}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Subtitle != nil {
		set["subtitle"] = nullString(upd.Subtitle)
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Summary != nil {
		set["summary"] = *upd.Summary
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.AITags != nil {
		tags, err := encodeTags(upd.AITags)
		if err != nil {
			return nil, fmt.Errorf("Update: %w", err)
		}
		set["ai_tags"] = sq.Expr("?::jsonb", tags)
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("Update: %w", entity.ErrInvalidInput)
	}

	query, args, err := psql.Update("articles").
		SetMap(set).
		Where("id = ?", id).
		Suffix("RETURNING " + articleSelectList).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("Update: build: %w", err)
	}
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) ToggleLive(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	query := `UPDATE articles SET is_live = NOT is_live WHERE id = $1 RETURNING ` + articleSelectList
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ToggleLive: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *ArticleRepo) IncrementViewCount(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `
UPDATE articles SET view_count = view_count + 1
WHERE id = $1 AND is_live
RETURNING view_count`
	var count int
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("IncrementViewCount: %w", err)
	}
	return count, nil
}

func (repo *ArticleRepo) queryArticles(ctx context.Context, op, query string, args ...any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return articles, nil
}
