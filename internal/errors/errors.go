package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeMissingField = "MISSING_FIELD"
	ErrCodeInvalidField = "INVALID_FIELD"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeStorageFailure = "STORAGE_FAILURE"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewAPIErrorWithDetails creates a new APIError with details
func NewAPIErrorWithDetails(code, message string, details interface{}) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Error is a domain failure raised by validation, services or storage.
// Two Errors match under errors.Is when their codes are equal.
type Error struct {
	Code    string
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks
var (
	ErrMissingField   = &Error{Code: ErrCodeMissingField, Message: "missing field"}
	ErrInvalidField   = &Error{Code: ErrCodeInvalidField, Message: "invalid field"}
	ErrNotFound       = &Error{Code: ErrCodeNotFound, Message: "resource not found"}
	ErrConflict       = &Error{Code: ErrCodeConflict, Message: "resource conflict"}
	ErrStorageFailure = &Error{Code: ErrCodeStorageFailure, Message: "storage failure"}
)

// NewMissingField reports a required field that was absent or empty.
func NewMissingField(field, message string) *Error {
	return &Error{Code: ErrCodeMissingField, Field: field, Message: message}
}

// NewInvalidField reports a field with a wrong type, value or reference.
func NewInvalidField(field, message string) *Error {
	return &Error{Code: ErrCodeInvalidField, Field: field, Message: message}
}

// NewNotFound reports an unknown id.
func NewNotFound(message string) *Error {
	return &Error{Code: ErrCodeNotFound, Message: message}
}

// NewConflict reports a uniqueness violation.
func NewConflict(field, message string) *Error {
	return &Error{Code: ErrCodeConflict, Field: field, Message: message}
}

// NewStorageFailure wraps an I/O or persistence error.
func NewStorageFailure(message string, err error) *Error {
	return &Error{Code: ErrCodeStorageFailure, Message: message, Err: err}
}

// StatusCode maps an error code to its HTTP status.
func StatusCode(code string) int {
	switch code {
	case ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidField:
		return http.StatusBadRequest
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond translates any error into a JSON error response.
// Storage failures are reported without their underlying cause.
func Respond(c *gin.Context, err error) {
	var domainErr *Error
	if !stderrors.As(err, &domainErr) {
		InternalError(c, "")
		return
	}

	message := domainErr.Message
	if domainErr.Code == ErrCodeStorageFailure {
		message = "Storage failure"
	}

	apiErr := NewAPIError(domainErr.Code, message)
	if domainErr.Field != "" {
		apiErr = NewAPIErrorWithDetails(domainErr.Code, message, gin.H{"field": domainErr.Field})
	}
	RespondWithError(c, StatusCode(domainErr.Code), apiErr)
}

// Helper functions for common error responses

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
