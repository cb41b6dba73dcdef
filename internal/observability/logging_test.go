package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONAddsContextAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "production", "", "debug")
	t.Cleanup(func() { Setup(nil, "test", "text", "info") })

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, TraceIDKey, "trace-1")
	ctx = WithCorrelationID(ctx, "corr-1")

	logger.With(slog.String("component", "test")).InfoContext(ctx, "hello", slog.Int("n", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "req-1", rec["request_id"])
	assert.Equal(t, "trace-1", rec["trace_id"])
	assert.Equal(t, "corr-1", rec["correlation_id"])
	assert.Equal(t, "test", rec["component"])
	assert.EqualValues(t, 3, rec["n"])
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "development", "text", "warn")
	t.Cleanup(func() { Setup(nil, "test", "text", "info") })

	logger.Info("dropped")
	assert.Empty(t, buf.String())
	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestCorrelationID(t *testing.T) {
	id := GenerateCorrelationID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)

	assert.Empty(t, ExtractCorrelationID(context.Background()))
	assert.Equal(t, id, ExtractCorrelationID(WithCorrelationID(context.Background(), id)))
	assert.Empty(t, ExtractRequestID(context.Background()))
}
