package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/match-analyzer/internal/usecase"
)

type analyzeBatchRequest struct {
	RecordIDs   []int64 `json:"record_ids" validate:"required,min=1,max=50,dive,gt=0"`
	Competition string  `json:"competition" validate:"omitempty,max=100"`
}

type poissonRequest struct {
	HomeExpectedGoals *float64 `json:"home_expected_goals" validate:"required,gte=0,lte=10"`
	AwayExpectedGoals *float64 `json:"away_expected_goals" validate:"required,gte=0,lte=10"`
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.ListMatches")
	defer span.End()

	limit, err := optionalPositiveInt(r, "limit")
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	items, err := h.analysisService.ListMatches(ctx, usecase.ListMatchesInput{Query: query, Limit: limit})
	if err != nil {
		h.fail(ctx, w, err, "list matches failed", "query", query)
		return
	}

	out := make([]matchSummaryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchSummaryToDTO(item))
	}
	respond(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.GetAnalysis")
	defer span.End()

	recordID, err := recordIDFromPath(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	competition := strings.TrimSpace(r.URL.Query().Get("competition"))

	analysis, err := h.analysisService.Analyze(ctx, recordID, competition)
	if err != nil {
		h.fail(ctx, w, err, "analyze match failed", "record_id", recordID)
		return
	}

	respond(ctx, w, http.StatusOK, analysisToDTO(analysis))
}

func (h *Handler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.AnalyzeBatch")
	defer span.End()

	var req analyzeBatchRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	results, err := h.analysisService.AnalyzeBatch(ctx, usecase.BatchInput{
		RecordIDs:   req.RecordIDs,
		Competition: strings.TrimSpace(req.Competition),
	})
	if err != nil {
		h.fail(ctx, w, err, "batch analysis failed", "records", len(req.RecordIDs))
		return
	}

	out := make([]batchResultDTO, 0, len(results))
	for _, result := range results {
		out = append(out, batchResultToDTO(result))
	}
	respond(ctx, w, http.StatusOK, out)
}

func (h *Handler) ComputePoisson(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.ComputePoisson")
	defer span.End()

	var req poissonRequest
	if err := h.decodeBody(ctx, w, r, &req); err != nil {
		respondError(ctx, w, err)
		return
	}

	dist, err := h.analysisService.Poisson(ctx, usecase.PoissonInput{
		HomeExpectedGoals: *req.HomeExpectedGoals,
		AwayExpectedGoals: *req.AwayExpectedGoals,
	})
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	respond(ctx, w, http.StatusOK, dist)
}
