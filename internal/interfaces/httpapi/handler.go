package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-analyzer/internal/platform/logging"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	analysisService  *usecase.AnalysisService
	newsService      *usecase.NewsService
	narrativeService *usecase.NarrativeService
	reportService    *usecase.ReportService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	analysisService *usecase.AnalysisService,
	newsService *usecase.NewsService,
	narrativeService *usecase.NarrativeService,
	reportService *usecase.ReportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	return &Handler{
		analysisService:  analysisService,
		newsService:      newsService,
		narrativeService: narrativeService,
		reportService:    reportService,
		logger:           logger,
		validator:        v,
	}
}

// Healthz is a liveness probe; it does not touch storage or upstreams.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respond(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// validateRequest reports the first failing field by its JSON name.
func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	err := h.validator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %q validation", usecase.ErrInvalidInput, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
}

func recordIDFromPath(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("recordID"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: record id must be a positive integer", usecase.ErrInvalidInput)
	}
	return id, nil
}

// optionalPositiveInt returns 0 when the query parameter is absent.
func optionalPositiveInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func optionalBool(r *http.Request, name string) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

// fail logs a service error and writes it. Server-side failures log at error
// level; everything the caller can fix logs at warn.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error, msg string, args ...any) {
	level := logging.LevelWarn
	if classify(err).status >= http.StatusInternalServerError {
		level = logging.LevelError
	}
	h.logger.Log(ctx, level, msg, append(args, "error", err)...)
	respondError(ctx, w, err)
}

// decodeBody reads one JSON object, rejecting unknown fields, and validates it.
func (h *Handler) decodeBody(ctx context.Context, w http.ResponseWriter, r *http.Request, dst any) error {
	dec := sonic.ConfigDefault.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}
