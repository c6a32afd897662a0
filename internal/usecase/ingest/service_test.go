package ingest_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/feedparser"
	"newsdesk/internal/repository/mock"
	"newsdesk/internal/usecase/enrich"
	"newsdesk/internal/usecase/ingest"
)

/* ───────── test doubles ───────── */

type stubFetcher struct {
	body  string
	err   error
	calls atomic.Int32
	urls  sync.Map
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (string, error) {
	f.calls.Add(1)
	f.urls.Store(url, true)
	return f.body, f.err
}

func feedWith(titles ...string) string {
	var b strings.Builder
	b.WriteString("<rss><channel>")
	for i, t := range titles {
		fmt.Fprintf(&b, "<item><title>%s</title><description>Story %d body.</description><link>https://example.com/%d</link></item>", t, i+1, i+1)
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func newService(t *testing.T, fetcher ingest.FeedFetcher) (*ingest.Service, *mock.MockArticleRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockArticleRepository(ctrl)
	return ingest.NewService(fetcher, feedparser.New(), enrich.New(), repo), repo
}

/* ───────── 1. Happy path ───────── */

func TestIngest_InsertsDrafts(t *testing.T) {
	fetcher := &stubFetcher{body: feedWith("Breaking: election results", "Tech giant unveils AI chip")}
	svc, repo := newService(t, fetcher)

	var (
		mu   sync.Mutex
		seen []*entity.Article
	)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, a *entity.Article) error {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, a)
			return nil
		})

	res, err := svc.Ingest(context.Background(), "bbc")

	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "Successfully fetched 2 articles from bbc", res.Message)
	_, ok := fetcher.urls.Load("https://feeds.bbci.co.uk/news/world/rss.xml")
	assert.True(t, ok, "fixed feed URL must be used")

	require.Len(t, seen, 2)
	for _, a := range seen {
		assert.False(t, a.IsLive, "ingested articles are drafts")
		assert.Equal(t, "Bbc", a.Source)
		assert.GreaterOrEqual(t, a.ReadingTime, 1)
		assert.Equal(t, a.Summary, a.Content)
	}
}

/* ───────── 2. Partial-batch resilience ───────── */

func TestIngest_OneFailedInsertDoesNotFailBatch(t *testing.T) {
	fetcher := &stubFetcher{body: feedWith("one", "two", "three", "four", "five")}
	svc, repo := newService(t, fetcher)

	var (
		mu     sync.Mutex
		stored []string
	)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(5).
		DoAndReturn(func(_ context.Context, a *entity.Article) error {
			if a.Title == "three" {
				return errors.New("violates check constraint")
			}
			mu.Lock()
			defer mu.Unlock()
			stored = append(stored, a.Title)
			return nil
		})

	res, err := svc.Ingest(context.Background(), "aljazeera")

	require.NoError(t, err)
	assert.Equal(t, 4, res.Count)
	assert.ElementsMatch(t, []string{"one", "two", "four", "five"}, stored)
	assert.Equal(t, "Successfully fetched 4 articles from aljazeera", res.Message)
}

func TestIngest_InsertsSurviveCallerCancellation(t *testing.T) {
	fetcher := &stubFetcher{body: feedWith("only")}
	svc, repo := newService(t, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *entity.Article) error {
			cancel()
			return ctx.Err()
		})

	res, err := svc.Ingest(ctx, "reuters")

	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

/* ───────── 3. Whole-call failures ───────── */

func TestIngest_InvalidSourceNeverFetches(t *testing.T) {
	fetcher := &stubFetcher{body: feedWith("x")}
	svc, repo := newService(t, fetcher)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Ingest(context.Background(), "cnn")

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrInvalidSource)
	assert.Equal(t, "invalid news source", err.Error())
	assert.Zero(t, fetcher.calls.Load())
}

func TestIngest_FetchFailure(t *testing.T) {
	netErr := errors.New("dial tcp: connection refused")
	fetcher := &stubFetcher{err: netErr}
	svc, repo := newService(t, fetcher)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Ingest(context.Background(), "bbc")

	require.Error(t, err)
	assert.ErrorIs(t, err, ingest.ErrFeedFetchFailed)
	assert.ErrorIs(t, err, netErr)
	assert.Equal(t, int32(1), fetcher.calls.Load(), "no retry")
}

func TestIngest_EmptyFeed(t *testing.T) {
	svc, repo := newService(t, &stubFetcher{body: "<html>not a feed</html>"})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	res, err := svc.Ingest(context.Background(), "bbc")

	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	assert.Equal(t, "Successfully fetched 0 articles from bbc", res.Message)
}

func TestIngest_CapsAtTenItems(t *testing.T) {
	titles := make([]string, 15)
	for i := range titles {
		titles[i] = fmt.Sprintf("story %d", i)
	}
	svc, repo := newService(t, &stubFetcher{body: feedWith(titles...)})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(10).Return(nil)

	res, err := svc.Ingest(context.Background(), "bbc")

	require.NoError(t, err)
	assert.Equal(t, 10, res.Count)
}

/* ───────── 4. IngestAll ───────── */

type routingFetcher struct {
	fail string
	body string
}

func (f routingFetcher) Fetch(_ context.Context, url string) (string, error) {
	if strings.Contains(url, f.fail) {
		return "", errors.New("503 Service Unavailable")
	}
	return f.body, nil
}

func TestIngestAll_IsolatesFailures(t *testing.T) {
	svc, repo := newService(t, routingFetcher{fail: "bbci", body: feedWith("a", "b")})
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(4).Return(nil)

	outcomes := svc.IngestAll(context.Background(), []string{"aljazeera", "bbc", "reuters", "cnn"})

	require.Len(t, outcomes, 4)
	assert.Equal(t, "aljazeera", outcomes[0].Source)
	require.NotNil(t, outcomes[0].Result)
	assert.Equal(t, 2, outcomes[0].Result.Count)

	assert.ErrorIs(t, outcomes[1].Err, ingest.ErrFeedFetchFailed)
	assert.NotEmpty(t, outcomes[1].Error)
	assert.Nil(t, outcomes[1].Result)

	require.NotNil(t, outcomes[2].Result)
	assert.Equal(t, 2, outcomes[2].Result.Count)

	assert.ErrorIs(t, outcomes[3].Err, entity.ErrInvalidSource)
}

/* ───────── 5. Mapping ───────── */

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"empty", 0, 1},
		{"below one minute", 249, 1},
		{"exactly one", 250, 1},
		{"500 chars", 500, 2},
		{"floor", 749, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ingest.ReadingTime(strings.Repeat("a", tt.n)))
		})
	}
}

func TestReadingTime_CountsUTF16Units(t *testing.T) {
	// 250 emoji are 500 UTF-16 units.
	assert.Equal(t, 2, ingest.ReadingTime(strings.Repeat("😀", 250)))
	assert.Equal(t, 1, ingest.ReadingTime(strings.Repeat("日", 499)))
}

func TestNewDraft_ContentFallsBackToTitle(t *testing.T) {
	e := entity.FeedEntry{Title: "Headline only", SourceName: "Reuters"}
	a := ingest.NewDraft(e, entity.Enrichment{Category: "general", Tags: []string{}})

	assert.Equal(t, "Headline only", a.Content)
	assert.Equal(t, "", a.Summary)
	assert.Equal(t, "", a.SourceURL)
	assert.Equal(t, 1, a.ReadingTime)
	assert.False(t, a.IsLive)
}

func TestNewDraft_CopiesEnrichment(t *testing.T) {
	e := entity.FeedEntry{Title: "T", Description: "D", Link: "https://l", SourceName: "Bbc"}
	enr := entity.Enrichment{Category: "health", Tags: []string{"Health"}, Summary: "S", IsTrending: true}

	a := ingest.NewDraft(e, enr)

	assert.Equal(t, "health", a.Category)
	assert.Equal(t, []string{"Health"}, a.AITags)
	assert.Equal(t, "S", a.AISummary)
	assert.True(t, a.IsTrending)
	assert.Equal(t, "https://l", a.SourceURL)
}
