package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors surfaced at component boundaries. Callers branch on these
// with errors.Is.
var (
	// ErrScenarioNotFound is returned by scenario get/update/delete/clone
	// for an unknown id.
	ErrScenarioNotFound = errors.New("scenario not found")
	// ErrUnsupportedFormat is returned for an unrecognized export format
	// name; exports never silently substitute a default.
	ErrUnsupportedFormat = errors.New("unsupported export format")
	// ErrUnsupportedMethod is returned for an unrecognized trajectory
	// interpolation method name.
	ErrUnsupportedMethod = errors.New("unsupported interpolation method")
	// ErrUnknownPreset is returned when a coefficient preset cannot be
	// resolved by name.
	ErrUnknownPreset = errors.New("unknown coefficient preset")
	// ErrValidation wraps structural input problems.
	ErrValidation = errors.New("invalid input")
)

// API error codes carried on HTTP responses.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeUnsupportedMethod = "UNSUPPORTED_METHOD"
	CodeUnknownPreset     = "UNKNOWN_PRESET"
	CodeInternal          = "INTERNAL_ERROR"
	CodeRateLimited       = "RATE_LIMIT_EXCEEDED"
)

// APIError is the standardized error payload returned by the HTTP surface.
type APIError struct {
	Code          string    `json:"code"`
	Message       string    `json:"message"`
	Details       string    `json:"details,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	CorrelationID string    `json:"correlation_id,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAPIError creates a timestamped API error.
func NewAPIError(code, message, details, correlationID string) *APIError {
	return &APIError{
		Code:          code,
		Message:       message,
		Details:       details,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
	}
}

// CodeForError maps a sentinel error onto its API code.
func CodeForError(err error) string {
	switch {
	case errors.Is(err, ErrScenarioNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnsupportedFormat):
		return CodeUnsupportedFormat
	case errors.Is(err, ErrUnsupportedMethod):
		return CodeUnsupportedMethod
	case errors.Is(err, ErrUnknownPreset):
		return CodeUnknownPreset
	case errors.Is(err, ErrValidation):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}
