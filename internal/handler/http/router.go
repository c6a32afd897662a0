package http

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	harticle "newsdesk/internal/handler/http/article"
	"newsdesk/internal/handler/http/auth"
	hingest "newsdesk/internal/handler/http/ingest"
	"newsdesk/internal/handler/http/middleware"
	hreader "newsdesk/internal/handler/http/reader"
	"newsdesk/internal/handler/http/requestid"
	hsource "newsdesk/internal/handler/http/source"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/resilience/circuitbreaker"
	artUC "newsdesk/internal/usecase/article"
	readerUC "newsdesk/internal/usecase/reader"
)

// functionsPrefix is served without the API CORS policy; the ingestion
// function sets its own wildcard headers.
const functionsPrefix = "/functions/v1/"

// RouterDeps is everything NewRouter mounts.
type RouterDeps struct {
	DB      *sql.DB
	Version string
	Logger  *slog.Logger

	Articles      *artUC.Service
	Readers       *readerUC.Service
	Ingest        hingest.Ingester
	IngestSources []string
	IngestTimeout time.Duration
	IngestLimiter *rate.Limiter

	Auth     *auth.Authenticator
	Breakers *circuitbreaker.Registry
	CORS     middleware.CORSConfig
	// CSPReportOnly sends the content security policy in report-only mode.
	CSPReportOnly bool

	MaxBodyBytes int64
}

// NewRouter builds the API handler.
//
// Middleware order (outermost first): request ID, tracing, logging, panic
// recovery, metrics, security headers, body limit, then CORS for everything
// except the ingestion function. Nothing between tracing and the mux may
// clone the request, otherwise the matched pattern is lost for logs and
// metrics.
func NewRouter(d RouterDeps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := http.NewServeMux()

	// 運用エンドポイント（認証不要）
	api.Handle("GET /health", &HealthHandler{DB: d.DB, Version: d.Version, Breakers: d.Breakers})
	api.Handle("GET /ready", &ReadyHandler{DB: d.DB})
	api.Handle("GET /live", LiveHandler{})
	api.Handle("GET /metrics", MetricsHandler())
	api.Handle("GET /swagger/", httpSwagger.WrapHandler)

	hsource.Register(api)
	harticle.Register(api, d.Articles, d.Auth.RequireAdmin)
	hreader.Register(api, d.Readers, d.Auth.RequireUser)

	limiter := d.IngestLimiter
	if limiter == nil {
		limiter = middleware.PerMinute(6, 3)
	}
	hingest.Register(api, d.Ingest, d.IngestSources, d.IngestTimeout,
		d.Auth.RequireAdmin,
		d.Auth.RequireAdmin,
		middleware.RateLimit("ingest", limiter),
	)

	cors := d.CORS
	if cors.Logger == nil {
		cors.Logger = logger
	}
	root := http.NewServeMux()
	root.Handle(functionsPrefix, api)
	root.Handle("/", middleware.CORS(cors)(api))

	maxBody := d.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	return Chain(root,
		requestid.Middleware,
		tracing.Middleware,
		Logging(logger),
		Recover(logger),
		MetricsMiddleware,
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig(d.CSPReportOnly)),
		LimitRequestBody(maxBody),
	)
}
