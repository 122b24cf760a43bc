package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"warn":    LevelWarn,
		"error":   LevelError,
		"fatal":   LevelInfo,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLogger_FieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).With("service", "lineups")

	logger.Debug("hidden")
	logger.Info("saved", "lineup_id", "l-1", "error", errors.New("boom"), zap.Int("open", 2), "dangling")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"service":"lineups"`)
	assert.Contains(t, out, `"lineup_id":"l-1"`)
	assert.Contains(t, out, `"error":"boom"`)
	assert.Contains(t, out, `"open":2`)
	assert.Contains(t, out, `"dangling":null`)
	assert.True(t, logger.Enabled(LevelWarn))
	assert.False(t, logger.Enabled(LevelDebug))
}

func TestLogger_TraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "traced")
	logger.InfoContext(context.Background(), "untraced")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"trace_id":"0102030405060708090a0b0c0d0e0f10"`)
	assert.Contains(t, lines[0], `"span_id":"0102030405060708"`)
	assert.NotContains(t, lines[1], "trace_id")
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(New(Options{Level: LevelInfo, Output: &buf}))
	t.Cleanup(func() { SetDefault(prev) })

	var logger *Logger
	logger.Warn("from nil")
	assert.Contains(t, buf.String(), "from nil")
	assert.NoError(t, logger.Named("child").Sync())
}
