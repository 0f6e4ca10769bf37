package usecase

import "errors"

// Sentinels returned by the services, wrapped with detail via %w. The HTTP
// layer maps each one to a status code.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("resource not found")
	ErrUnprocessable = errors.New("unprocessable record")

	// Upstream failures from news feeds or the text generator.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrRateLimited           = errors.New("upstream rate limited")
	ErrQuotaExhausted        = errors.New("upstream quota exhausted")
)
