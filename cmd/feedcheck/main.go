// Package main checks the registered news feeds from the command line.
// Usage: feedcheck [-source id] [-json] [-timeout 30s]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"newsdesk/internal/domain/entity"
	"newsdesk/internal/infra/feed"
	"newsdesk/internal/observability/logging"
)

func main() {
	var (
		sourceID string
		asJSON   bool
		timeout  time.Duration
	)
	flag.StringVar(&sourceID, "source", "", "Check only this source id (default: all)")
	flag.BoolVar(&asJSON, "json", false, "Print reports as JSON")
	flag.DurationVar(&timeout, "timeout", feed.DefaultTimeout, "Per-feed download timeout")
	flag.Parse()

	// 診断結果は stdout、ログは stderr
	slog.SetDefault(logging.NewLoggerTo(os.Stderr, slog.LevelWarn))

	sources, err := selectSources(sourceID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	checker := NewChecker(feed.NewHTTPFetcher(feed.Config{Timeout: timeout}, nil))
	reports := make([]Report, 0, len(sources))
	for _, src := range sources {
		ctx, cancel := context.WithTimeout(context.Background(), timeout+5*time.Second)
		reports = append(reports, checker.Check(ctx, src))
		cancel()
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(reports)
	} else {
		err = writeTable(os.Stdout, reports)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, r := range reports {
		if !r.OK {
			os.Exit(1)
		}
	}
}

func selectSources(id string) ([]entity.Source, error) {
	ids := entity.SourceIDs()
	if id != "" {
		ids = []string{id}
	}
	out := make([]entity.Source, 0, len(ids))
	for _, id := range ids {
		src, err := entity.LookupSource(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", err, id)
		}
		out = append(out, src)
	}
	return out, nil
}
