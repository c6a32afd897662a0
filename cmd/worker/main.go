package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sony/gobreaker"

	"newsdesk/internal/config"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/feed"
	"newsdesk/internal/infra/feedparser"
	workerPkg "newsdesk/internal/infra/worker"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/resilience/circuitbreaker"
	"newsdesk/internal/resilience/retry"
	"newsdesk/internal/usecase/enrich"
	ingestUC "newsdesk/internal/usecase/ingest"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg.SlogLevel())
	slog.SetDefault(logger)

	shutdownTracing := tracing.Init("newsdesk-worker", cfg.Version)
	defer func() { _ = shutdownTracing(context.Background()) }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database := initDatabase(ctx, logger, cfg.DB)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	// 設定値が不正でもデフォルトで起動する（fail-open）
	workerMetrics := workerPkg.NewWorkerMetrics(nil)
	workerConfig, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("ingest_timeout", workerConfig.IngestTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Int("metrics_port", workerConfig.MetricsPort),
		slog.Any("sources", workerConfig.Sources))

	breakers := circuitbreaker.NewRegistry(func(host string) circuitbreaker.Config {
		c := circuitbreaker.FeedFetchConfig(host)
		c.OnStateChange = func(name string, _, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, to.String())
		}
		return c
	})
	fetcher := feed.NewHTTPFetcher(feed.Config{
		Timeout:     cfg.Ingest.FetchTimeout,
		MaxBodySize: cfg.Ingest.MaxFeedBytes,
		UserAgent:   cfg.Ingest.UserAgent,
	}, breakers)
	svc := ingestUC.NewService(fetcher, feedparser.New(), enrich.New(), pgRepo.NewArticleRepo(database))

	startMetricsServer(ctx, logger, workerConfig.MetricsPort, breakers)

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()

	job := &workerPkg.Job{
		Svc:     svc,
		Sources: workerConfig.Sources,
		Timeout: workerConfig.IngestTimeout,
		Metrics: workerMetrics,
		Logger:  logger,
	}
	runCron(ctx, logger, job, workerConfig, healthServer)
}

// initDatabase connects with retries and waits for the API to apply the
// schema; the worker never migrates.
func initDatabase(ctx context.Context, logger *slog.Logger, cfg config.DBConfig) *sql.DB {
	var database *sql.DB
	err := retry.WithBackoff(ctx, retry.DBConfig(), func() error {
		var err error
		database, err = db.Open(ctx, cfg)
		return err
	})
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}

	err = db.WaitForSchema(ctx, database, 10, func(attempt int) {
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", attempt))
		time.Sleep(3 * time.Second)
	})
	if err != nil {
		logger.Error("migrations did not complete in time", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// runCron schedules the job and blocks until ctx is cancelled. A run still
// in progress at shutdown is allowed to finish.
func runCron(ctx context.Context, logger *slog.Logger, job *workerPkg.Job, cfg *workerPkg.WorkerConfig, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	// 前回の取り込みが終わっていなければ次の実行はスキップする
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	_, err = c.AddFunc(cfg.CronSchedule, func() {
		job.Run(context.WithoutCancel(ctx))
	})
	if err != nil {
		logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()

	healthServer.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", cfg.Timezone))

	<-ctx.Done()
	logger.Info("shutting down worker...")
	healthServer.SetReady(false)

	<-c.Stop().Done()
	logger.Info("worker stopped")
}
