// internal/common/errors/errors.go
// Package errors provides standardized error handling for the import
// pipeline. Only batch-level failures live here: format rejections and
// row-level validation failures are categorized by the pipeline and never
// surface as errors.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeFileUnreadable   ErrorCode = "FILE_UNREADABLE"
	ErrCodeEmptyFile        ErrorCode = "EMPTY_FILE"
	ErrCodeInvalidMapping   ErrorCode = "INVALID_MAPPING"
	ErrCodeInvalidPayload   ErrorCode = "INVALID_PAYLOAD"
	ErrCodeStreamClosed     ErrorCode = "STREAM_CLOSED"
	ErrCodeImportCancelled  ErrorCode = "IMPORT_CANCELLED"
	ErrCodeDatabaseQuery    ErrorCode = "DATABASE_QUERY_FAILED"
	ErrCodeDatabaseInsert   ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeRecordNotFound   ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeSearchDisabled   ErrorCode = "SEARCH_DISABLED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// NewFileUnreadableError creates a non-retryable file parse error.
func NewFileUnreadableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeFileUnreadable,
		Message:   "Uploaded file could not be read or parsed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyFileError creates a non-retryable empty-file error.
func NewEmptyFileError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyFile,
		Message:   "Uploaded file contains no data rows",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidMappingError creates a non-retryable column-mapping error.
func NewInvalidMappingError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidMapping,
		Message:   "Column mapping is invalid",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidPayloadError creates a non-retryable request payload error.
func NewInvalidPayloadError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidPayload,
		Message:   "Request payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStreamClosedError creates a non-retryable error for a consumer that
// went away mid-stream.
func NewStreamClosedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStreamClosed,
		Message:   "Output stream closed before batch completion",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewImportCancelledError creates a non-retryable cancellation error.
func NewImportCancelledError() *StandardError {
	return &StandardError{
		Code:      ErrCodeImportCancelled,
		Message:   "Import cancelled before completion",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseQueryError creates a retryable query error.
func NewDatabaseQueryError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseQuery,
		Message:   "Database query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertError creates a retryable insert error.
func NewDatabaseInsertError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsert,
		Message:   "Database write failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError creates a non-retryable lookup error.
func NewRecordNotFoundError(id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("id: %s", id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchDisabledError creates an error for deployments without a search
// backend.
func NewSearchDisabledError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchDisabled,
		Message:   "Candidate search backend is not configured",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HTTPStatus maps an error code to the response status the API should use.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeFileUnreadable, ErrCodeEmptyFile, ErrCodeInvalidMapping, ErrCodeInvalidPayload:
		return http.StatusBadRequest
	case ErrCodeRecordNotFound:
		return http.StatusNotFound
	case ErrCodeImportCancelled, ErrCodeStreamClosed:
		return http.StatusRequestTimeout
	case ErrCodeSearchDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
