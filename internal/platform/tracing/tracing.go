// Package tracing starts child spans for in-process layers. Requests that
// arrive without a sampled parent (health probes, tests) stay span-free.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var noop = trace.SpanFromContext(context.Background())

// Scope names spans for one package. Keep, when set, filters span names so
// hot helpers can be left out of traces.
type Scope struct {
	tracer trace.Tracer
	prefix string
	keep   func(name string) bool
}

func NewScope(instrumentation, prefix string, keep func(name string) bool) Scope {
	return Scope{
		tracer: otel.Tracer(instrumentation),
		prefix: prefix,
		keep:   keep,
	}
}

// Start opens prefix+name under the span already in ctx. It never creates a
// root span.
func (s Scope) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	name = strings.TrimSpace(name)
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noop
	}
	if s.keep != nil && !s.keep(name) {
		return ctx, noop
	}
	return s.tracer.Start(ctx, s.prefix+name, trace.WithAttributes(attrs...))
}

// Fail marks span as failed. A nil err is ignored.
func Fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// CompactQuery collapses whitespace in SQL and caps it at limit bytes without
// splitting a UTF-8 sequence.
func CompactQuery(query string, limit int) string {
	compact := strings.Join(strings.Fields(query), " ")
	if limit <= 0 || len(compact) <= limit {
		return compact
	}
	cut := limit
	for cut > 0 && !isRuneStart(compact[cut]) {
		cut--
	}
	return compact[:cut] + "..."
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }
