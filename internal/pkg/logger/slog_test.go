//go:build unit

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackTraceHandler(t *testing.T) {
	var buf bytes.Buffer
	InitStructuredLoggerTo(&buf, slog.LevelInfo)
	t.Cleanup(func() { InitStructuredLoggerTo(&bytes.Buffer{}, slog.LevelInfo) })

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = WithOperation(ctx, "book")

	t.Run("context attributes", func(t *testing.T) {
		buf.Reset()
		slog.WarnContext(ctx, "booking request failed")

		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "req-1", record["request_id"])
		assert.Equal(t, "book", record["operation"])
		assert.NotContains(t, record, "stack_trace")
	})

	t.Run("errors carry a stack trace", func(t *testing.T) {
		buf.Reset()
		slog.ErrorContext(ctx, "boom")

		var record map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Contains(t, record, "stack_trace")
	})

	t.Run("debug is filtered", func(t *testing.T) {
		buf.Reset()
		slog.DebugContext(ctx, "hidden")

		assert.Empty(t, buf.String())
	})
}

func TestRequestID(t *testing.T) {
	assert.Equal(t, "", RequestID(context.Background()))
	assert.Equal(t, "r", RequestID(context.WithValue(context.Background(), RequestIDKey, "r")))
}
