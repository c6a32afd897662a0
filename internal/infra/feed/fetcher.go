// Package feed downloads RSS documents over HTTP.
//
// One call issues exactly one GET. There is no retry; a circuit breaker per
// host turns a run of failures into immediate errors instead.
package feed

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/observability/tracing"
	"newsdesk/internal/resilience/circuitbreaker"
)

const (
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 10 << 20
	DefaultUserAgent   = "NewsdeskBot/1.0 (+https://github.com/newsdesk)"
	maxRedirects       = 5
)

// Config controls the HTTP behaviour of HTTPFetcher. Zero values fall back
// to the defaults above.
type Config struct {
	Timeout     time.Duration
	MaxBodySize int64
	UserAgent   string
}

// Response is the raw outcome of one download.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Duration    time.Duration
}

// HTTPFetcher is safe for concurrent use.
type HTTPFetcher struct {
	client   *http.Client
	cfg      Config
	breakers *circuitbreaker.Registry
}

// NewHTTPFetcher builds a fetcher. A nil registry gets a fresh one with
// circuitbreaker.FeedFetchConfig per host.
func NewHTTPFetcher(cfg Config, breakers *circuitbreaker.Registry) *HTTPFetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = DefaultMaxBodySize
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if breakers == nil {
		breakers = circuitbreaker.NewRegistry(nil)
	}
	client := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			return nil
		},
	}
	return &HTTPFetcher{client: client, cfg: cfg, breakers: breakers}
}

// Breakers exposes the per-host registry for health reporting.
func (f *HTTPFetcher) Breakers() *circuitbreaker.Registry {
	return f.breakers
}

// Fetch downloads feedURL and returns the body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, feedURL string) (string, error) {
	resp, err := f.Do(ctx, feedURL)
	if err != nil {
		return "", err
	}
	return string(resp.Body), nil
}

// Do performs the download and returns status and timing alongside the body.
func (f *HTTPFetcher) Do(ctx context.Context, feedURL string) (*Response, error) {
	u, err := url.Parse(feedURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, feedURL)
	}

	ctx, span := tracing.StartSpan(ctx, "feed.fetch",
		attribute.String("feed.url", feedURL),
		attribute.String("feed.host", u.Host),
	)
	defer span.End()

	cb := f.breakers.Get(u.Host)
	result, err := cb.Execute(func() (any, error) {
		return f.do(ctx, feedURL)
	})
	metrics.SetCircuitBreakerState(cb.Name(), cb.State().String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("feed host %s unavailable: %w", u.Host, err)
		}
		return nil, err
	}

	resp := result.(*Response)
	span.SetAttributes(
		attribute.Int("http.status_code", resp.StatusCode),
		attribute.Int("feed.bytes", len(resp.Body)),
	)
	return resp, nil
}

func (f *HTTPFetcher) do(ctx context.Context, feedURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5")

	start := time.Now()
	httpResp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", feedURL, err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		// 本文は捨てて接続を再利用できるようにする
		_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 4<<10))
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, httpResp.StatusCode, http.StatusText(httpResp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, f.cfg.MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.cfg.MaxBodySize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.cfg.MaxBodySize)
	}

	return &Response{
		URL:         feedURL,
		StatusCode:  httpResp.StatusCode,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        body,
		Duration:    time.Since(start),
	}, nil
}

// Classify maps a fetch error to the short label used by metrics.
func Classify(err error) string {
	var urlErr *url.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, ErrUnexpectedStatus):
		return "status"
	case errors.Is(err, ErrBodyTooLarge):
		return "too_large"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &urlErr) && urlErr.Timeout():
		return "timeout"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	default:
		return "network"
	}
}

// ClassifyError lets callers label fetch failures without importing this package.
func (f *HTTPFetcher) ClassifyError(err error) string {
	return Classify(err)
}
