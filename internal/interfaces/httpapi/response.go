package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-analyzer/internal/platform/tracing"
	"github.com/riskibarqy/match-analyzer/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	apiVersion  = "2.0"
	errorDomain = "match-analyzer"

	internalMessage = "internal server error"
)

// envelope follows the Google JSON style guide: exactly one of data or
// error is set.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Status  string        `json:"status"`
	Errors  []errorDetail `json:"errors,omitempty"`
}

type errorDetail struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorKind maps a usecase sentinel to its HTTP status, the camelCase reason
// and the canonical gRPC-style status name.
type errorKind struct {
	target error
	status int
	reason string
	code   string
}

var errorKinds = []errorKind{
	{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"},
	{usecase.ErrNotFound, http.StatusNotFound, "notFound", "NOT_FOUND"},
	{usecase.ErrUnprocessable, http.StatusUnprocessableEntity, "unprocessableRecord", "FAILED_PRECONDITION"},
	{usecase.ErrRateLimited, http.StatusTooManyRequests, "rateLimitExceeded", "RESOURCE_EXHAUSTED"},
	{usecase.ErrQuotaExhausted, http.StatusPaymentRequired, "quotaExceeded", "RESOURCE_EXHAUSTED"},
	{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "deadlineExceeded", "DEADLINE_EXCEEDED"},
}

var internalKind = errorKind{status: http.StatusInternalServerError, reason: "internalError", code: "INTERNAL"}

func classify(err error) errorKind {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			return kind
		}
	}
	return internalKind
}

func respond(ctx context.Context, w http.ResponseWriter, status int, data any) {
	encode(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// respondError hides the message of unclassified errors; the caller is
// expected to have logged them.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := classify(err)
	msg := err.Error()
	if kind.status >= http.StatusInternalServerError {
		tracing.Fail(trace.SpanFromContext(ctx), err)
		if kind.target == nil {
			msg = internalMessage
		}
	}
	writeErrorBody(ctx, w, kind, msg)
}

func respondInternal(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalKind, internalMessage)
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, kind errorKind, msg string) {
	encode(ctx, w, kind.status, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    kind.status,
			Message: msg,
			Status:  kind.code,
			Errors:  []errorDetail{{Domain: errorDomain, Reason: kind.reason, Message: msg}},
		},
	})
}

func encode(ctx context.Context, w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := sonic.ConfigDefault.NewEncoder(w).Encode(body); err != nil {
		tracing.Fail(trace.SpanFromContext(ctx), err)
	}
}
