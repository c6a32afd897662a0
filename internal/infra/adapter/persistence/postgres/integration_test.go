package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"newsdesk/internal/config"
	"newsdesk/internal/domain/entity"
	pg "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
)

// openTestDB starts a disposable PostgreSQL and applies the schema.
// Docker is required, so the test only runs with GO_TEST_INTEGRATION=1.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") != "1" {
		t.Skip("set GO_TEST_INTEGRATION=1 to run against a real PostgreSQL")
	}
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx,
		"postgres:17.5",
		tcpostgres.WithDatabase("newsdesk_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := db.Open(ctx, config.DBConfig{URL: dsn, MaxOpenConns: 5, MaxIdleConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, db.MigrateUp(ctx, conn))
	return conn
}

func TestIntegration_ArticleLifecycle(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()
	articles := pg.NewArticleRepo(conn)
	readers := pg.NewReaderRepo(conn)

	a := &entity.Article{
		Title: "Storm hits coast", Content: "Heavy rain.", Summary: "Heavy rain.",
		AISummary: "Heavy rain.", AITags: []string{"Weather"}, Source: "Bbc",
		SourceURL: "https://bbc/1", Category: "environment", IsTrending: true, ReadingTime: 1,
	}
	require.NoError(t, articles.Create(ctx, a))
	require.NotEqual(t, uuid.Nil, a.ID)
	assert.False(t, a.CreatedAt.IsZero())

	// 下書きは読者から見えない
	live, err := articles.GetLive(ctx, a.ID)
	require.NoError(t, err)
	assert.Nil(t, live)
	_, err = articles.IncrementViewCount(ctx, a.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	toggled, err := articles.ToggleLive(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsLive)
	assert.Equal(t, []string{"Weather"}, toggled.AITags)

	n, err := articles.IncrementViewCount(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	drafts, err := articles.ListAdmin(ctx, entity.ArticleFilter{Status: entity.StatusDraft})
	require.NoError(t, err)
	assert.Empty(t, drafts)
	count, err := articles.CountAdmin(ctx, entity.ArticleFilter{Source: "bb"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	user := uuid.New()
	require.NoError(t, readers.AddBookmark(ctx, user, a.ID))
	require.NoError(t, readers.AddBookmark(ctx, user, a.ID))
	bookmarks, err := readers.CountBookmarks(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 1, bookmarks)

	require.NoError(t, readers.ReplaceInterests(ctx, user, []string{"Environment", "Sports"}))
	feed, err := readers.ListPersonalized(ctx, user, entity.FeedQuery{Interests: []string{"Environment"}, Limit: 10})
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].IsBookmarked)

	// 記事削除でブックマークも消える
	require.NoError(t, articles.Delete(ctx, a.ID))
	bookmarks, err = readers.CountBookmarks(ctx, user)
	require.NoError(t, err)
	assert.EqualValues(t, 0, bookmarks)
}

func TestIntegration_ReadingTimeConstraint(t *testing.T) {
	conn := openTestDB(t)

	err := pg.NewArticleRepo(conn).Create(context.Background(), &entity.Article{
		Title: "Zero", Content: "x", Source: "Bbc", ReadingTime: 0,
	})
	assert.Error(t, err)
}
