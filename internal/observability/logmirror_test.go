package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestAttributesOf(t *testing.T) {
	attrs := attributesOf([]any{"record_id", int64(42), "feed", "BBC Sport", 3, "x", "dangling"})
	require.Len(t, attrs, 4)

	assert.Equal(t, "record_id", attrs[0].Key)
	assert.Equal(t, int64(42), attrs[0].Value.AsInt64())
	assert.Equal(t, "BBC Sport", attrs[1].Value.AsString())
	assert.Equal(t, "arg_2", attrs[2].Key)
	assert.Equal(t, "dangling", attrs[3].Key)
	assert.Equal(t, otellog.KindEmpty, attrs[3].Value.Kind())

	assert.Empty(t, attributesOf(nil))
}

func TestToValue(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		check func(t *testing.T, v otellog.Value)
	}{
		{"decimal", decimal.RequireFromString("1.85"), func(t *testing.T, v otellog.Value) { assert.Equal(t, "1.85", v.AsString()) }},
		{"error", errors.New("boom"), func(t *testing.T, v otellog.Value) { assert.Equal(t, "boom", v.AsString()) }},
		{"duration", 1500 * time.Millisecond, func(t *testing.T, v otellog.Value) { assert.Equal(t, "1.5s", v.AsString()) }},
		{"small uint", uint8(7), func(t *testing.T, v otellog.Value) { assert.Equal(t, int64(7), v.AsInt64()) }},
		{"huge uint", uint64(1 << 63), func(t *testing.T, v otellog.Value) { assert.Equal(t, "9223372036854775808", v.AsString()) }},
		{"float32", float32(0.5), func(t *testing.T, v otellog.Value) { assert.Equal(t, 0.5, v.AsFloat64()) }},
		{"slice", []int{1, 2}, func(t *testing.T, v otellog.Value) { assert.Len(t, v.AsSlice(), 2) }},
		{"nil pointer", (*int)(nil), func(t *testing.T, v otellog.Value) { assert.Equal(t, otellog.KindEmpty, v.Kind()) }},
		{"map sorted", map[string]any{"won": true, "shots": 11}, func(t *testing.T, v otellog.Value) {
			kvs := v.AsMap()
			require.Len(t, kvs, 2)
			assert.Equal(t, "shots", kvs[0].Key)
			assert.Equal(t, "won", kvs[1].Key)
		}},
		{"int keyed map", map[int]string{1: "a"}, func(t *testing.T, v otellog.Value) { assert.Equal(t, "map[1:a]", v.AsString()) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, toValue(tc.in, 0))
		})
	}
}

func TestToValue_DepthLimit(t *testing.T) {
	nested := []any{[]any{[]any{[]any{"deep"}}}}
	v := toValue(nested, 0)
	inner := v.AsSlice()[0].AsSlice()[0].AsSlice()[0]
	assert.Equal(t, otellog.KindString, inner.Kind())
}

func TestSeverityFor(t *testing.T) {
	assert.Equal(t, otellog.SeverityDebug, severityFor(logging.LevelDebug))
	assert.Equal(t, otellog.SeverityInfo, severityFor(logging.LevelInfo))
	assert.Equal(t, otellog.SeverityWarn, severityFor(logging.LevelWarn))
	assert.Equal(t, otellog.SeverityError, severityFor(logging.LevelError))
	assert.Equal(t, otellog.SeverityFatal, severityFor(zapcore.FatalLevel))
}

func TestBuildRecord(t *testing.T) {
	at := time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)
	rec := buildRecord(at, logging.LevelWarn, "news feed failed", []any{"feed", "ESPN"})

	assert.Equal(t, at, rec.Timestamp())
	assert.Equal(t, "WARN", rec.SeverityText())
	assert.Equal(t, "news feed failed", rec.EventName())
	assert.Equal(t, 1, rec.AttributesLen())
}
