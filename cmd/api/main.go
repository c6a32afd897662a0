package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sony/gobreaker"

	"newsdesk/internal/config"
	"newsdesk/internal/domain/entity"
	hhttp "newsdesk/internal/handler/http"
	"newsdesk/internal/handler/http/auth"
	"newsdesk/internal/handler/http/middleware"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/infra/feed"
	"newsdesk/internal/infra/feedparser"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/resilience/circuitbreaker"
	"newsdesk/internal/resilience/retry"
	artUC "newsdesk/internal/usecase/article"
	"newsdesk/internal/usecase/enrich"
	ingestUC "newsdesk/internal/usecase/ingest"
	readerUC "newsdesk/internal/usecase/reader"

	_ "newsdesk/docs" // swagger docs
)

// @title           Newsdesk API
// @version         1.0
// @description     RSS ニュース取り込みと記事配信の REST API
// @description     ニュースソースの取り込み、記事の管理、読者向けフィード・ブックマーク機能を提供します。

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 認証サービスが発行した JWT。ヘッダーに "Bearer {token}" 形式で指定してください。

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger := initLogger(cfg)

	shutdownTracing := tracing.Init("newsdesk-api", cfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	database := initDatabase(logger, cfg.DB)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	handler := setupServer(logger, cfg, database)
	runServer(logger, cfg, handler)
}

// initLogger installs the JSON logger as the process default.
func initLogger(cfg *config.AppConfig) *slog.Logger {
	logger := logging.NewLogger(cfg.SlogLevel())
	slog.SetDefault(logger)
	return logger
}

// initDatabase opens the pool, retrying while PostgreSQL starts, and applies
// the schema.
func initDatabase(logger *slog.Logger, cfg config.DBConfig) *sql.DB {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

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
	if err := db.MigrateUp(ctx, database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// newBreakerRegistry publishes every breaker transition as a gauge.
func newBreakerRegistry() *circuitbreaker.Registry {
	return circuitbreaker.NewRegistry(func(host string) circuitbreaker.Config {
		c := circuitbreaker.FeedFetchConfig(host)
		c.OnStateChange = func(name string, _, to gobreaker.State) {
			metrics.SetCircuitBreakerState(name, to.String())
		}
		return c
	})
}

// setupServer wires repositories, services and the router.
func setupServer(logger *slog.Logger, cfg *config.AppConfig, database *sql.DB) http.Handler {
	articleRepo := pgRepo.NewArticleRepo(database)
	readerRepo := pgRepo.NewReaderRepo(database)
	profileRepo := pgRepo.NewProfileRepo(database)

	breakers := newBreakerRegistry()
	fetcher := feed.NewHTTPFetcher(feed.Config{
		Timeout:     cfg.Ingest.FetchTimeout,
		MaxBodySize: cfg.Ingest.MaxFeedBytes,
		UserAgent:   cfg.Ingest.UserAgent,
	}, breakers)
	ingestSvc := ingestUC.NewService(fetcher, feedparser.New(), enrich.New(), articleRepo)

	corsConfig := middleware.DefaultCORSConfig(cfg.CORS.AllowedOrigins)
	corsConfig.Logger = logger
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods),
		slog.Int("max_age", corsConfig.MaxAge))

	logger.Info("ingest rate limiting enabled",
		slog.Int("per_minute", cfg.Ingest.RatePerMinute),
		slog.Int("burst", cfg.Ingest.RateBurst))

	return hhttp.NewRouter(hhttp.RouterDeps{
		DB:            database,
		Version:       cfg.Version,
		Logger:        logger,
		Articles:      artUC.NewService(articleRepo),
		Readers:       readerUC.NewService(readerRepo, articleRepo),
		Ingest:        ingestSvc,
		IngestSources: entity.SourceIDs(),
		IngestTimeout: cfg.Ingest.RequestTimeout,
		IngestLimiter: middleware.PerMinute(cfg.Ingest.RatePerMinute, cfg.Ingest.RateBurst),
		Auth:          auth.NewAuthenticator(cfg.Auth.JWTSecret, profileRepo),
		Breakers:      breakers,
		CORS:          corsConfig,
		CSPReportOnly: cfg.HTTP.CSPReportOnly,
		MaxBodyBytes:  cfg.HTTP.MaxBodyBytes,
	})
}

// runServer starts the HTTP server and handles graceful shutdown.
func runServer(logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout, // Slowloris 対策
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.HTTP.Addr),
			slog.String("version", cfg.Version),
			slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	// in-flight requests are done; cancel whatever they started in the background
	cancel()
	logger.Info("server stopped")
}
