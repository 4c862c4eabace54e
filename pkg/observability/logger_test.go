package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	t.Run("debug not logged at info level", func(t *testing.T) {
		buf.Reset()
		logger.Debug("debug message")
		assert.Zero(t, buf.Len())
	})

	t.Run("info logged as json", func(t *testing.T) {
		buf.Reset()
		logger.WithField("component", "finder").Info("info message")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "info", entry["level"])
		assert.Equal(t, "info message", entry["msg"])
		assert.Equal(t, "finder", entry["component"])
	})
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := NewLogger("verbose", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger = NewLogger("debug", &bytes.Buffer{})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", &buf)

	t.Run("without logger falls back to standard logger", func(t *testing.T) {
		assert.Equal(t, logrus.StandardLogger(), GetLogger(context.Background()))
	})

	t.Run("adds request id", func(t *testing.T) {
		buf.Reset()
		ctx := WithLogger(WithRequestID(context.Background(), "req-1"), logger)
		FromContext(ctx).Info("hello")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, "req-1", entry["request_id"])
		assert.NotContains(t, entry, "trace_id")
	})

	t.Run("adds trace context of recording span", func(t *testing.T) {
		buf.Reset()
		tp := sdktrace.NewTracerProvider()
		defer func() { _ = tp.Shutdown(context.Background()) }()

		ctx, span := tp.Tracer("test").Start(WithLogger(context.Background(), logger), "op")
		defer span.End()

		FromContext(ctx).Info("traced")

		entry := decodeEntry(t, &buf)
		assert.Equal(t, span.SpanContext().TraceID().String(), entry["trace_id"])
		assert.Equal(t, span.SpanContext().SpanID().String(), entry["span_id"])
	})
}
