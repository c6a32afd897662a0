// Package metrics registers the Prometheus collectors of the service on the
// default registry and offers small Record* helpers around them.
//
// Collectors cover HTTP traffic, feed downloads, per-item ingestion outcomes,
// article views, circuit breaker state and the database pool. They are
// exposed by the /metrics endpoint of each binary.
//
//	start := time.Now()
//	body, err := fetcher.Fetch(ctx, url)
//	if err == nil {
//	    metrics.RecordFeedFetch("bbc", time.Since(start), len(body))
//	}
package metrics
