// Package observability groups the logging, metrics and tracing helpers
// shared by the API server, the worker and the feedcheck tool.
//
// Subpackages:
//   - logging: slog JSON logger and context propagation
//   - metrics: Prometheus collectors and recorders
//   - tracing: OpenTelemetry provider setup and HTTP middleware
package observability
