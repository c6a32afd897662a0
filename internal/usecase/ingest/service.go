package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/repository"
)

// charsPerMinute is the reading speed behind reading_time.
const charsPerMinute = 250

// FeedFetcher downloads one feed document.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// FeedParser turns a raw feed into at most a handful of entries.
type FeedParser interface {
	Parse(raw, sourceID string) []entity.FeedEntry
}

// Enricher derives category, tags, summary and trending flag from text.
type Enricher interface {
	Enrich(title, description string) entity.Enrichment
}

// errorClassifier is implemented by fetchers that can label their errors
// for metrics.
type errorClassifier interface {
	ClassifyError(err error) string
}

// Result is the outcome of one successful invocation.
type Result struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// SourceOutcome is the per-source entry returned by IngestAll.
type SourceOutcome struct {
	Source string  `json:"source"`
	Result *Result `json:"result,omitempty"`
	Err    error   `json:"-"`
	Error  string  `json:"error,omitempty"`
}

type Service struct {
	Fetcher  FeedFetcher
	Parser   FeedParser
	Enricher Enricher
	Articles repository.ArticleRepository
}

func NewService(fetcher FeedFetcher, parser FeedParser, enricher Enricher, articles repository.ArticleRepository) *Service {
	return &Service{
		Fetcher:  fetcher,
		Parser:   parser,
		Enricher: enricher,
		Articles: articles,
	}
}

// Ingest fetches the feed of sourceID, parses it and stores every entry as
// a draft article. Unknown sources fail before any network call. Fetch
// failures fail the whole call; a failed insert only drops that entry.
//
// Inserts are detached from ctx cancellation: once the feed has been
// parsed the batch runs to completion.
func (s *Service) Ingest(ctx context.Context, sourceID string) (Result, error) {
	src, err := entity.LookupSource(sourceID)
	if err != nil {
		return Result{}, err
	}

	ctx, span := tracing.StartSpan(ctx, "ingest.source", attribute.String("source", src.ID))
	defer span.End()

	logger := slog.Default().With(slog.String("source", src.ID))
	logger.Info("fetching feed", slog.String("feed_url", src.FeedURL))

	start := time.Now()
	body, err := s.Fetcher.Fetch(ctx, src.FeedURL)
	if err != nil {
		metrics.RecordFeedFetchError(src.ID, s.classify(err))
		metrics.RecordIngestRun(src.ID, false)
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		logger.Warn("feed fetch failed", slog.Any("error", err))
		return Result{}, fmt.Errorf("%w from %s: %w", ErrFeedFetchFailed, src.ID, err)
	}
	metrics.RecordFeedFetch(src.ID, time.Since(start), len(body))

	entries := s.Parser.Parse(body, src.ID)
	inserted := s.store(context.WithoutCancel(ctx), logger, entries)

	count := 0
	for _, a := range inserted {
		if a != nil {
			count++
		}
	}

	metrics.RecordIngestItems(src.ID, len(entries), count, len(entries)-count)
	metrics.RecordIngestRun(src.ID, true)
	span.SetAttributes(attribute.Int("ingest.parsed", len(entries)), attribute.Int("ingest.inserted", count))
	logger.Info("ingestion completed",
		slog.Int("parsed", len(entries)),
		slog.Int("inserted", count),
		slog.Duration("duration", time.Since(start)))

	return Result{
		Message: fmt.Sprintf("Successfully fetched %d articles from %s", count, src.ID),
		Count:   count,
	}, nil
}

// store enriches and inserts every entry concurrently. The returned slice is
// index-aligned with entries; a nil element marks a failed insert.
func (s *Service) store(ctx context.Context, logger *slog.Logger, entries []entity.FeedEntry) []*entity.Article {
	results := make([]*entity.Article, len(entries))

	// 1件の失敗でバッチ全体を止めないため、goroutine は常に nil を返す
	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() error {
			article := NewDraft(e, s.Enricher.Enrich(e.Title, e.Description))
			if err := s.Articles.Create(ctx, article); err != nil {
				logger.Error("failed to insert article",
					slog.String("title", e.Title),
					slog.String("link", e.Link),
					slog.Any("error", err))
				return nil
			}
			results[i] = article
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// IngestAll runs Ingest for every id concurrently. Each source gets its own
// outcome; one failing source never prevents the others.
func (s *Service) IngestAll(ctx context.Context, sourceIDs []string) []SourceOutcome {
	outcomes := make([]SourceOutcome, len(sourceIDs))

	var g errgroup.Group
	for i, id := range sourceIDs {
		g.Go(func() error {
			res, err := s.Ingest(ctx, id)
			outcomes[i] = SourceOutcome{Source: id}
			if err != nil {
				outcomes[i].Err = err
				outcomes[i].Error = err.Error()
				return nil
			}
			outcomes[i].Result = &res
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (s *Service) classify(err error) string {
	if c, ok := s.Fetcher.(errorClassifier); ok {
		if label := c.ClassifyError(err); label != "" {
			return label
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "fetch"
}

// NewDraft maps a parsed entry and its enrichment onto an unpublished article.
func NewDraft(e entity.FeedEntry, enr entity.Enrichment) *entity.Article {
	content := e.Description
	if content == "" {
		content = e.Title
	}
	return &entity.Article{
		Title:       e.Title,
		Content:     content,
		Summary:     e.Description,
		AISummary:   enr.Summary,
		AITags:      enr.Tags,
		Source:      e.SourceName,
		SourceURL:   e.Link,
		Category:    enr.Category,
		IsLive:      false,
		IsTrending:  enr.IsTrending,
		ReadingTime: ReadingTime(e.Description),
	}
}

// ReadingTime is max(1, characters/250) minutes.
func ReadingTime(description string) int {
	return max(1, entity.TextLength(description)/charsPerMinute)
}
