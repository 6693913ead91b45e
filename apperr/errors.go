// Package apperr defines the error taxonomy shared by all domain flows.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound covers records that are absent or not owned by the caller.
	// Cross-owner lookups answer ErrNotFound so existence is never leaked.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed input: bad selection tokens, out-of-range
	// shelf indexes, empty names.
	ErrValidation = errors.New("validation failed")

	// ErrPermissionDenied covers missing or invalid credentials.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConflict covers uniqueness violations from concurrent writes. Callers
	// should re-read and reuse the winning record.
	ErrConflict = errors.New("conflict")

	// ErrRemoteUnavailable marks Perenual transport failures. It is recovered
	// locally by every flow and must never reach an HTTP response.
	ErrRemoteUnavailable = errors.New("remote catalog unavailable")
)

// NotFoundf wraps ErrNotFound with a caller-facing message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// Validationf wraps ErrValidation with a caller-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrValidation)...)
}

// Conflictf wraps ErrConflict with a caller-facing message.
func Conflictf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrConflict)...)
}

// Status maps an error to the HTTP status code its taxonomy class answers with.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
