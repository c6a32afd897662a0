// Package logging builds the slog JSON logger used by both binaries and
// carries request-scoped loggers through context.
//
//	logger := logging.NewLogger(slog.LevelInfo)
//	slog.SetDefault(logger)
//
//	// in a handler
//	log := logging.WithRequestID(r.Context(), logging.FromContext(r.Context()))
//	log.Info("ingest requested", slog.String("source", src))
package logging
