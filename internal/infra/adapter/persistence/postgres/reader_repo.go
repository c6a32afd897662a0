package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/repository"
)

type ReaderRepo struct {
	db *sql.DB
}

func NewReaderRepo(db *sql.DB) repository.ReaderRepository {
	return &ReaderRepo{db: db}
}

func (repo *ReaderRepo) AddBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	const query = `
INSERT INTO bookmarks (user_id, article_id) VALUES ($1, $2)
ON CONFLICT (user_id, article_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, userID, articleID); err != nil {
		return fmt.Errorf("AddBookmark: %w", err)
	}
	return nil
}

func (repo *ReaderRepo) RemoveBookmark(ctx context.Context, userID, articleID uuid.UUID) error {
	res, err := repo.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND article_id = $2`, userID, articleID)
	if err != nil {
		return fmt.Errorf("RemoveBookmark: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("RemoveBookmark: %w", err)
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (repo *ReaderRepo) ListBookmarks(ctx context.Context, userID uuid.UUID) ([]*entity.Article, error) {
	query := `SELECT ` + strings.Join(prefixed("a"), ", ") + `
FROM bookmarks b
INNER JOIN articles a ON a.id = b.article_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListBookmarks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, 20)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("ListBookmarks: Scan: %w", err)
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

func (repo *ReaderRepo) CountBookmarks(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountBookmarks: %w", err)
	}
	return n, nil
}

func (repo *ReaderRepo) ListInterests(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT interest FROM user_interests WHERE user_id = $1 ORDER BY interest`, userID)
	if err != nil {
		return nil, fmt.Errorf("ListInterests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	interests := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("ListInterests: Scan: %w", err)
		}
		interests = append(interests, s)
	}
	return interests, rows.Err()
}

func (repo *ReaderRepo) ReplaceInterests(ctx context.Context, userID uuid.UUID, interests []string) (err error) {
	tx, err := repo.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReplaceInterests: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("ReplaceInterests: delete: %w", err)
	}
	if len(interests) > 0 {
		ins := psql.Insert("user_interests").Columns("user_id", "interest")
		for _, interest := range interests {
			ins = ins.Values(userID, interest)
		}
		query, args, buildErr := ins.ToSql()
		if buildErr != nil {
			err = buildErr
			return fmt.Errorf("ReplaceInterests: build: %w", err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("ReplaceInterests: insert: %w", err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ReplaceInterests: commit: %w", err)
	}
	return nil
}

func (repo *ReaderRepo) ListPersonalized(ctx context.Context, userID uuid.UUID, q entity.FeedQuery) ([]*entity.PersonalizedArticle, error) {
	b := psql.Select(prefixed("a")...).
		Column(sq.Expr("EXISTS (SELECT 1 FROM bookmarks b WHERE b.article_id = a.id AND b.user_id = ?) AS is_bookmarked", userID)).
		From("articles a").
		Where("a.is_live")
	if q.TrendingOnly {
		b = b.Where("a.is_trending")
	}

	// 興味カテゴリに一致する記事を先頭に並べる
	if len(q.Interests) > 0 {
		placeholders := make([]string, len(q.Interests))
		args := make([]any, len(q.Interests))
		for i, interest := range q.Interests {
			placeholders[i] = "?"
			args[i] = strings.ToLower(interest)
		}
		b = b.OrderByClause("CASE WHEN lower(a.category) IN ("+strings.Join(placeholders, ", ")+") THEN 0 ELSE 1 END", args...)
	}
	b = b.OrderBy("a.published_at DESC")
	if q.Limit > 0 {
		b = b.Limit(uint64(q.Limit))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListPersonalized: build: %w", err)
	}
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListPersonalized: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]*entity.PersonalizedArticle, 0, max(q.Limit, 0))
	for rows.Next() {
		var bookmarked bool
		a, err := scanArticle(rows, &bookmarked)
		if err != nil {
			return nil, fmt.Errorf("ListPersonalized: Scan: %w", err)
		}
		out = append(out, &entity.PersonalizedArticle{Article: *a, IsBookmarked: bookmarked})
	}
	return out, rows.Err()
}
