package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{recordID}/analysis", handler.GetAnalysis)
	mux.HandleFunc("GET /v1/matches/{recordID}/news", handler.ListMatchNews)
	mux.HandleFunc("POST /v1/matches/{recordID}/narrative", handler.GenerateNarrative)
	mux.HandleFunc("GET /v1/matches/{recordID}/report", handler.ExportReport)
	mux.HandleFunc("POST /v1/analysis/batch", handler.AnalyzeBatch)
	mux.HandleFunc("POST /v1/poisson", handler.ComputePoisson)
}
