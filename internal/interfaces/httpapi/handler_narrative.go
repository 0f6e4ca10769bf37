package httpapi

import (
	"mime"
	"net/http"
	"time"
)

func (h *Handler) ListMatchNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.ListMatchNews")
	defer span.End()

	recordID, err := recordIDFromPath(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	limit, err := optionalPositiveInt(r, "limit")
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	result, err := h.newsService.ForMatch(ctx, recordID, limit)
	if err != nil {
		h.fail(ctx, w, err, "list match news failed", "record_id", recordID)
		return
	}

	respond(ctx, w, http.StatusOK, matchNewsDTO{
		RecordID: result.RecordID,
		HomeTeam: result.HomeTeam,
		AwayTeam: result.AwayTeam,
		Items:    result.Items,
	})
}

func (h *Handler) GenerateNarrative(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.GenerateNarrative")
	defer span.End()

	recordID, err := recordIDFromPath(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	narrative, err := h.narrativeService.Generate(ctx, recordID)
	if err != nil {
		h.fail(ctx, w, err, "generate narrative failed", "record_id", recordID)
		return
	}

	respond(ctx, w, http.StatusOK, narrativeDTO{
		RecordID:    narrative.RecordID,
		HomeTeam:    narrative.HomeTeam,
		AwayTeam:    narrative.AwayTeam,
		Analysis:    narrative.Text,
		Headlines:   narrative.Headlines,
		GeneratedAt: narrative.GeneratedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := spans.Start(r.Context(), "Handler.ExportReport")
	defer span.End()

	recordID, err := recordIDFromPath(r)
	if err != nil {
		respondError(ctx, w, err)
		return
	}
	withNarrative, err := optionalBool(r, "narrative")
	if err != nil {
		respondError(ctx, w, err)
		return
	}

	report, err := h.reportService.Export(ctx, recordID, withNarrative)
	if err != nil {
		h.fail(ctx, w, err, "export report failed", "record_id", recordID, "narrative", withNarrative)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": report.FileName}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(report.Body))
}
