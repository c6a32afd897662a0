package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"newsdesk/internal/handler/http/requestid"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

/* ───────── NewLogger ───────── */

func TestNewLoggerTo_Levels(t *testing.T) {
	tests := []struct {
		name      string
		level     slog.Level
		logDebug  bool
		wantDebug bool
	}{
		{name: "info filters debug", level: slog.LevelInfo, wantDebug: false},
		{name: "debug keeps debug", level: slog.LevelDebug, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerTo(&buf, tt.level)

			logger.Debug("debug message")

			assert.Equal(t, tt.wantDebug, buf.Len() > 0)
		})
	}
}

func TestNewLoggerTo_JSONStructure(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelInfo)

	logger.Info("feed fetched", slog.String("source", "bbc"), slog.Int("count", 10))

	entry := decodeLine(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "feed fetched", entry["msg"])
	assert.Equal(t, "bbc", entry["source"])
	assert.Equal(t, float64(10), entry["count"])
	assert.NotContains(t, entry, "source_location")
}

func TestNewLogger_NotNil(t *testing.T) {
	assert.NotNil(t, NewLogger(slog.LevelWarn))
}

/* ───────── Context helpers ───────── */

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewLoggerTo(&buf, slog.LevelInfo)
	ctx := requestid.WithRequestID(context.Background(), "req-123")

	WithRequestID(ctx, base).Info("hello")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.NotContains(t, entry, "trace_id")
}

func TestWithRequestID_Empty(t *testing.T) {
	base := NewLoggerTo(&bytes.Buffer{}, slog.LevelInfo)
	assert.Same(t, base, WithRequestID(context.Background(), base))
}

func TestWithRequestID_TraceID(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	var buf bytes.Buffer
	WithRequestID(ctx, NewLoggerTo(&buf, slog.LevelInfo)).Info("traced")

	entry := decodeLine(t, &buf)
	assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	custom := NewLoggerTo(&bytes.Buffer{}, slog.LevelError)
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}
