package tracing

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingScope(t *testing.T, keep func(string) bool) (Scope, *tracetest.SpanRecorder, context.Context) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	ctx, parent := provider.Tracer("test").Start(context.Background(), "parent")
	t.Cleanup(func() { parent.End() })

	scope := Scope{tracer: provider.Tracer("scope"), prefix: "pkg.", keep: keep}
	return scope, recorder, ctx
}

func TestScope_StartNeedsParent(t *testing.T) {
	scope, recorder, _ := newRecordingScope(t, nil)

	ctx, span := scope.Start(context.Background(), "Orphan")
	span.End()

	assert.Equal(t, context.Background(), ctx)
	assert.Empty(t, recorder.Ended())
}

func TestScope_StartChild(t *testing.T) {
	scope, recorder, ctx := newRecordingScope(t, nil)

	_, span := scope.Start(ctx, "Service.Do", attribute.Int64("record.id", 7))
	Fail(span, errors.New("boom"))
	Fail(span, nil)
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "pkg.Service.Do", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("record.id", 7))
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestScope_KeepFilter(t *testing.T) {
	scope, recorder, ctx := newRecordingScope(t, func(name string) bool {
		return strings.HasPrefix(name, "Handler.")
	})

	_, kept := scope.Start(ctx, "Handler.GetAnalysis")
	kept.End()
	_, dropped := scope.Start(ctx, "writeJSON")
	dropped.End()
	_, blank := scope.Start(ctx, "  ")
	blank.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "pkg.Handler.GetAnalysis", ended[0].Name())
}

func TestCompactQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
		want  string
	}{
		{name: "blank", query: " \n\t ", limit: 10, want: ""},
		{name: "collapses whitespace", query: "SELECT id\n\tFROM  t\n", limit: 100, want: "SELECT id FROM t"},
		{name: "no limit", query: "SELECT 1", limit: 0, want: "SELECT 1"},
		{name: "truncates", query: "SELECT id FROM team_details_cache", limit: 9, want: "SELECT id..."},
		{name: "keeps runes whole", query: "SELECT 'é'", limit: 9, want: "SELECT '..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CompactQuery(tc.query, tc.limit))
		})
	}
}
