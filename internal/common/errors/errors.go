// Package errors provides the structured error taxonomy of the scoring
// pipeline. Data-quality problems never become errors here: the feature
// codec absorbs them by defaulting. Only structural violations (unknown
// profile variant, artifact/schema mismatch, scoring function failure)
// surface as ScoringError values.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnknownProfileVariant ErrorCode = "UNKNOWN_PROFILE_VARIANT"
	ErrCodeInvalidRequest        ErrorCode = "INVALID_REQUEST"
	ErrCodeSchemaMismatch        ErrorCode = "SCHEMA_MISMATCH"
	ErrCodeArtifactLoadFailed    ErrorCode = "ARTIFACT_LOAD_FAILED"
	ErrCodeScoringUnavailable    ErrorCode = "SCORING_UNAVAILABLE"
	ErrCodeHistoryWriteFailed    ErrorCode = "HISTORY_WRITE_FAILED"
	ErrCodeHistoryQueryFailed    ErrorCode = "HISTORY_QUERY_FAILED"
)

// ScoringError represents a structured application error.
type ScoringError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("ScoringError[%s]: %s", e.Code, e.Message)
}

// NewUnknownProfileVariantError creates a non-retryable client error for a
// userType outside {working, student}. Rejected before the codec runs.
func NewUnknownProfileVariantError(userType string) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeUnknownProfileVariant,
		Message:   "Unknown applicant profile variant",
		Details:   fmt.Sprintf("userType: %q", userType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidRequestError creates a non-retryable client error for a payload
// that fails transport-level validation.
func NewInvalidRequestError(details string) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Request payload validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSchemaMismatchError creates a fatal startup error: the loaded artifact
// bundle disagrees with the codec's compiled feature schema.
func NewSchemaMismatchError(details string) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeSchemaMismatch,
		Message:   "Artifact schema does not match compiled feature schema",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewArtifactLoadFailedError creates a fatal startup error for missing or
// unreadable artifacts.
func NewArtifactLoadFailedError(err error) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeArtifactLoadFailed,
		Message:   "Failed to load scoring artifacts",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringUnavailableError creates a server error for a scoring function
// that cannot be invoked. The pipeline does not retry; retry policy, if any,
// belongs to the serving layer.
func NewScoringUnavailableError(err error) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeScoringUnavailable,
		Message:   "Scoring function unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryWriteFailedError creates a retryable storage error. History
// writes are best effort: the caller logs and counts this, never returns it
// to the client.
func NewHistoryWriteFailedError(err error) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeHistoryWriteFailed,
		Message:   "Failed to record score history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewHistoryQueryFailedError creates a retryable storage error.
func NewHistoryQueryFailedError(err error) *ScoringError {
	return &ScoringError{
		Code:      ErrCodeHistoryQueryFailed,
		Message:   "Failed to query score history",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the response status served for it.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeUnknownProfileVariant, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeScoringUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// AsScoringError unwraps err into a *ScoringError when possible.
func AsScoringError(err error) (*ScoringError, bool) {
	var se *ScoringError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
