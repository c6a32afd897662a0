package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"newsdesk/internal/domain/entity"
	pg "newsdesk/internal/infra/adapter/persistence/postgres"
)

/* ─────────────────────────── 1. Bookmarks ─────────────────────────── */

func TestReaderRepo_AddBookmark_Idempotent(t *testing.T) {
	db, mock := newMock(t)
	user, article := uuid.New(), uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, article_id) DO NOTHING")).
		WithArgs(user, article).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := pg.NewReaderRepo(db).AddBookmark(context.Background(), user, article); err != nil {
		t.Fatalf("AddBookmark err=%v", err)
	}
}

func TestReaderRepo_RemoveBookmark(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"removed", 1, nil},
		{"missing", 0, entity.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			user, article := uuid.New(), uuid.New()

			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookmarks WHERE user_id = $1 AND article_id = $2")).
				WithArgs(user, article).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := pg.NewReaderRepo(db).RemoveBookmark(context.Background(), user, article)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReaderRepo_ListBookmarks(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()
	want := sampleArticle()

	mock.ExpectQuery(`FROM bookmarks b\s+INNER JOIN articles a ON a.id = b.article_id\s+WHERE b.user_id = \$1\s+ORDER BY b.created_at DESC`).
		WithArgs(user).
		WillReturnRows(articleRows(want))

	got, err := pg.NewReaderRepo(db).ListBookmarks(context.Background(), user)
	if err != nil {
		t.Fatalf("ListBookmarks err=%v", err)
	}
	if diff := cmp.Diff([]*entity.Article{want}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderRepo_CountBookmarks(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookmarks WHERE user_id = $1")).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := pg.NewReaderRepo(db).CountBookmarks(context.Background(), user)
	if err != nil || n != 4 {
		t.Fatalf("CountBookmarks n=%d err=%v", n, err)
	}
}

/* ─────────────────────────── 2. Interests ─────────────────────────── */

func TestReaderRepo_ListInterests(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT interest FROM user_interests WHERE user_id = $1 ORDER BY interest")).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"interest"}).AddRow("Sports").AddRow("Technology"))

	got, err := pg.NewReaderRepo(db).ListInterests(context.Background(), user)
	if err != nil {
		t.Fatalf("ListInterests err=%v", err)
	}
	if diff := cmp.Diff([]string{"Sports", "Technology"}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderRepo_ReplaceInterests(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_interests WHERE user_id = $1")).
		WithArgs(user).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_interests (user_id,interest) VALUES ($1,$2),($3,$4)")).
		WithArgs(user, "Politics", user, "Science").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := pg.NewReaderRepo(db).ReplaceInterests(context.Background(), user, []string{"Politics", "Science"})
	if err != nil {
		t.Fatalf("ReplaceInterests err=%v", err)
	}
}

func TestReaderRepo_ReplaceInterests_Empty(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_interests").
		WithArgs(user).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := pg.NewReaderRepo(db).ReplaceInterests(context.Background(), user, nil); err != nil {
		t.Fatalf("ReplaceInterests err=%v", err)
	}
}

func TestReaderRepo_ReplaceInterests_RollbackOnInsertError(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM user_interests").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO user_interests").
		WillReturnError(errors.New("unique violation"))
	mock.ExpectRollback()

	if err := pg.NewReaderRepo(db).ReplaceInterests(context.Background(), user, []string{"World"}); err == nil {
		t.Fatal("want error")
	}
}

/* ─────────────────────────── 3. Personalized feed ─────────────────────────── */

func TestReaderRepo_ListPersonalized(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()
	a := sampleArticle()
	a.IsLive = true

	rows := sqlmock.NewRows(append(append([]string{}, articleCols...), "is_bookmarked"))
	addArticleRow(rows, a, true)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM articles a WHERE a.is_live ORDER BY CASE WHEN lower(a.category) IN ($2, $3) THEN 0 ELSE 1 END, a.published_at DESC LIMIT 50")).
		WithArgs(user, "business", "sports").
		WillReturnRows(rows)

	got, err := pg.NewReaderRepo(db).ListPersonalized(context.Background(), user,
		entity.FeedQuery{Interests: []string{"Business", "Sports"}, Limit: 50})
	if err != nil {
		t.Fatalf("ListPersonalized err=%v", err)
	}
	want := []*entity.PersonalizedArticle{{Article: *a, IsBookmarked: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReaderRepo_ListPersonalized_NoInterests(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.is_live ORDER BY a.published_at DESC LIMIT 10")).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, articleCols...), "is_bookmarked")))

	got, err := pg.NewReaderRepo(db).ListPersonalized(context.Background(), user, entity.FeedQuery{Limit: 10})
	if err != nil || len(got) != 0 {
		t.Fatalf("ListPersonalized got=%v err=%v", got, err)
	}
}

func TestReaderRepo_ListPersonalized_TrendingOnly(t *testing.T) {
	db, mock := newMock(t)
	user := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM articles a WHERE a.is_live AND a.is_trending ORDER BY CASE WHEN lower(a.category) IN ($2) THEN 0 ELSE 1 END, a.published_at DESC LIMIT 5")).
		WithArgs(user, "world").
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, articleCols...), "is_bookmarked")))

	_, err := pg.NewReaderRepo(db).ListPersonalized(context.Background(), user,
		entity.FeedQuery{Interests: []string{"World"}, TrendingOnly: true, Limit: 5})
	if err != nil {
		t.Fatalf("ListPersonalized err=%v", err)
	}
}
