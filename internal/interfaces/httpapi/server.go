package httpapi

import (
	"net/http"

	idgen "github.com/riskibarqy/match-analyzer/internal/platform/id"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
)

type RouterConfig struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	// RequestIDs defaults to UUIDv4.
	RequestIDs idgen.Generator
}

// NewRouter mounts the API routes behind tracing, request ids, access
// logging, CORS and panic recovery, in that order.
func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	ids := cfg.RequestIDs
	if ids == nil {
		ids = idgen.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, cfg.SwaggerEnabled)
	registerMatchRoutes(mux, handler)

	return chain(mux,
		withTracing(),
		withRequestID(ids),
		withAccessLog(logger.Named("http")),
		withCORS(cfg.CORSAllowedOrigins),
		withRecovery(logger),
	)
}
