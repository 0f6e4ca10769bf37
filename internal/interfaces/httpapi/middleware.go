package httpapi

import (
	"net/http"
	"strings"
	"time"

	idgen "github.com/riskibarqy/match-analyzer/internal/platform/id"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const requestIDHeader = "X-Request-ID"

type middleware func(http.Handler) http.Handler

// chain wraps h so that the first middleware sees the request first.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// responseMeter remembers the status and body size written through it.
type responseMeter struct {
	http.ResponseWriter
	status int
	size   int
}

func (m *responseMeter) WriteHeader(status int) {
	if m.status == 0 {
		m.status = status
	}
	m.ResponseWriter.WriteHeader(status)
}

func (m *responseMeter) Write(b []byte) (int, error) {
	if m.status == 0 {
		m.status = http.StatusOK
	}
	n, err := m.ResponseWriter.Write(b)
	m.size += n
	return n, err
}

func (m *responseMeter) Unwrap() http.ResponseWriter { return m.ResponseWriter }

func (m *responseMeter) code() int {
	if m.status == 0 {
		return http.StatusOK
	}
	return m.status
}

// probePaths are polled by orchestrators and are neither traced nor logged.
var probePaths = map[string]bool{"/healthz": true, "/health": true, "/livez": true, "/readyz": true}

func isProbe(path string) bool {
	return probePaths[strings.ToLower(strings.TrimSpace(path))]
}

func withTracing() middleware {
	return func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "match-analyzer-http",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
			otelhttp.WithFilter(func(r *http.Request) bool { return !isProbe(r.URL.Path) }),
		)
	}
}

// withRequestID keeps a well-formed X-Request-ID or issues one, echoes it on
// the response and attaches it to the span and log context.
func withRequestID(ids idgen.Generator) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if !idgen.Valid(id) {
				id, _ = ids.NewID()
			}
			if id == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(requestIDHeader, id)
			r.Header.Set(requestIDHeader, id)
			trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("http.request_id", id))
			next.ServeHTTP(w, r.WithContext(logging.WithFields(r.Context(), "request_id", id)))
		})
	}
}

// withAccessLog writes one entry per request. Server errors log at error
// level and client errors at warn.
func withAccessLog(logger *logging.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbe(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			started := time.Now()
			meter := &responseMeter{ResponseWriter: w}
			next.ServeHTTP(meter, r)

			status := meter.code()
			level := logging.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = logging.LevelError
			case status >= http.StatusBadRequest:
				level = logging.LevelWarn
			}
			logger.Log(r.Context(), level, "http_request",
				"http_method", r.Method,
				"http_path", r.URL.Path,
				"http_status", status,
				"response_bytes", meter.size,
				"client_ip", resolveClientIP(r),
				"duration_ms", time.Since(started).Milliseconds(),
			)
		})
	}
}

type corsPolicy struct {
	any     bool
	origins map[string]bool
}

func newCORSPolicy(allowed []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]bool, len(allowed))}
	for _, origin := range allowed {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[origin] = true
		}
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or ""
// when the origin is not allowed.
func (p corsPolicy) allowOrigin(origin string) string {
	switch {
	case p.any:
		return "*"
	case p.origins[origin]:
		return origin
	default:
		return ""
	}
}

// withCORS answers preflights with 204 whether or not the origin is allowed;
// disallowed origins simply get no CORS headers.
func withCORS(allowed []string) middleware {
	policy := newCORSPolicy(allowed)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if allow := policy.allowOrigin(origin); allow != "" {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", allow)
				if allow != "*" {
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Accept,X-Request-ID")
				h.Set("Access-Control-Expose-Headers", "Content-Disposition,X-Request-ID")
				h.Set("Access-Control-Max-Age", "600")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withRecovery(logger *logging.Logger) middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				switch rec {
				case nil:
					return
				case http.ErrAbortHandler:
					panic(rec)
				}
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "http_path", r.URL.Path)
				respondInternal(r.Context(), w)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
