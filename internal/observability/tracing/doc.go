// Package tracing wires OpenTelemetry: Init installs the SDK provider,
// Middleware opens a server span per HTTP request, and StartSpan is used
// around feed fetches and ingestion runs.
package tracing
