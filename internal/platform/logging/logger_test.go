package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_StampsServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "match-analyzer-api", Env: "dev", Output: &buf})

	logger.Info("analysis finished", "record_id", int64(7))
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "analysis finished", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "match-analyzer-api", entry["service"])
	assert.Equal(t, "dev", entry["env"])
	assert.Equal(t, float64(7), entry["record_id"])
	assert.NotContains(t, entry, "version")
	assert.True(t, strings.HasPrefix(entry["caller"].(string), "logging/logger_test.go"), entry["caller"])
}

func TestLogger_ContextAddsTraceAndAttachedFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))
	ctx = WithFields(ctx, "request_id", "req-1")
	ctx = WithFields(ctx, "record_id", int64(3))

	logger.WarnContext(ctx, "news feed failed", "feed", "ESPN", "error", errors.New("timeout"))
	logger.Warn("without context", "feed", "BBC")

	entries := logs.All()
	require.Len(t, entries, 2)

	fields := entries[0].ContextMap()
	assert.Equal(t, "ESPN", fields["feed"])
	assert.Equal(t, "timeout", fields["error"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, int64(3), fields["record_id"])
	assert.Equal(t, traceID.String(), fields["trace_id"])
	assert.Equal(t, spanID.String(), fields["span_id"])

	assert.NotContains(t, entries[1].ContextMap(), "request_id")
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	parent := WithFields(context.Background(), "a", 1)
	child := WithFields(parent, "b", 2)

	assert.Equal(t, []any{"a", 1}, fieldsFrom(parent))
	assert.Equal(t, []any{"a", 1, "b", 2}, fieldsFrom(child))
	assert.Equal(t, parent, WithFields(parent))
}

func TestSetMirror_ReceivesEnabledEntries(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	logger := FromZap(zap.New(core))

	type mirrored struct {
		msg  string
		args []any
	}
	var (
		mu  sync.Mutex
		got []mirrored
	)
	SetMirror(func(_ context.Context, _ Level, msg string, args ...any) {
		mu.Lock()
		got = append(got, mirrored{msg: msg, args: args})
		mu.Unlock()
	})
	t.Cleanup(func() { SetMirror(nil) })

	ctx := WithFields(context.Background(), "request_id", "req-9")
	logger.InfoContext(ctx, "mirrored", "k", "v")
	logger.DebugContext(ctx, "below level")
	logger.Info("no context")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Equal(t, "mirrored", got[0].msg)
	assert.Equal(t, []any{"request_id", "req-9", "k", "v"}, got[0].args)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: LevelDebug},
		{in: " WARN ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "", want: LevelInfo},
		{in: "loud", want: LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.in, LevelInfo))
		})
	}
}

func TestFields_OddArgs(t *testing.T) {
	got := fields([]any{"a", 1, 2, "b", "dangling"})
	require.Len(t, got, 3)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "arg", got[1].Key)
	assert.Equal(t, "dangling", got[2].Key)
}

func TestLogger_NilReceiverUsesDefault(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Info("from nil")
	logger.Named("worker").Log(context.Background(), LevelError, "named")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "from nil", entries[0].Message)
	assert.Equal(t, "worker", entries[1].LoggerName)
	assert.NoError(t, logger.Sync())
}
