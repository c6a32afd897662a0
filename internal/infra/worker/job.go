package worker

import (
	"context"
	"log/slog"
	"time"

	"newsdesk/internal/handler/http/respond"
	ingestUC "newsdesk/internal/usecase/ingest"
)

// BatchIngester is implemented by ingest.Service.
type BatchIngester interface {
	IngestAll(ctx context.Context, sourceIDs []string) []ingestUC.SourceOutcome
}

// Job is one scheduled ingestion of every configured source.
type Job struct {
	Svc     BatchIngester
	Sources []string
	Timeout time.Duration
	Metrics *WorkerMetrics
	Logger  *slog.Logger
}

// Summary is what one Run did.
type Summary struct {
	Succeeded int
	Failed    int
	Inserted  int
	Duration  time.Duration
}

// Status is "success" when every source succeeded, "failure" when none did
// and "partial" otherwise.
func (s Summary) Status() string {
	switch {
	case s.Failed == 0:
		return "success"
	case s.Succeeded == 0:
		return "failure"
	default:
		return "partial"
	}
}

// Run ingests all sources under the job timeout. Source failures are logged
// one by one and never abort the run.
func (j *Job) Run(ctx context.Context) Summary {
	start := time.Now()
	j.Logger.Info("ingest started", slog.Any("sources", j.Sources))

	// クロール処理のタイムアウト（設定から取得）
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	var sum Summary
	for _, o := range j.Svc.IngestAll(ctx, j.Sources) {
		if o.Err != nil {
			sum.Failed++
			// 機密情報をマスクしてログ出力
			j.Logger.Error("source ingest failed",
				slog.String("source", o.Source),
				slog.String("error", respond.SanitizeError(o.Err)))
			continue
		}
		sum.Succeeded++
		if o.Result != nil {
			sum.Inserted += o.Result.Count
		}
	}
	sum.Duration = time.Since(start)

	if j.Metrics != nil {
		j.Metrics.RecordRun(sum.Status(), sum.Duration.Seconds())
		j.Metrics.RecordSources(sum.Succeeded, sum.Failed, sum.Inserted)
		if sum.Failed == 0 {
			j.Metrics.RecordLastSuccess()
		}
	}

	j.Logger.Info("ingest completed",
		slog.String("status", sum.Status()),
		slog.Int("succeeded", sum.Succeeded),
		slog.Int("failed", sum.Failed),
		slog.Int("inserted", sum.Inserted),
		slog.Duration("duration", sum.Duration))
	return sum
}
