package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified error type returned by adapters.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the closest HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Invoke error constructors ---

// ConnectionFailed creates an error for a server that could not be reached.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s. Please verify the server is running.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// ServiceUnavailable creates an error for a server that answered with a server-side failure.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: fmt.Sprintf("The %s server is temporarily unavailable.", service),
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// RateLimited creates an error for a throttled request.
func RateLimited(service string) *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: fmt.Sprintf("The %s server is rate limiting requests.", service),
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// Unauthorized creates an error for rejected credentials.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "The server rejected the supplied credentials."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// BadRequest creates an error for a malformed or unsupported request.
func BadRequest(reason string) *AppError {
	if reason == "" {
		reason = "The server rejected the request."
	}
	return &AppError{
		Code: ErrCodeBadRequest, Message: reason,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// --- Other constructors ---

// CredentialsValidationFailed wraps the cause of a failed local credential check.
// The message is the stringified cause.
func CredentialsValidationFailed(cause error) *AppError {
	msg := "credentials validation failed"
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeCredentialsInvalid, Message: msg,
		HTTPStatus: http.StatusBadRequest, Retryable: false, Cause: cause,
	}
}

// InvokeFailed creates an error for an invoke failure that no mapping covers.
func InvokeFailed(message string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInvokeFailed, Message: message,
		HTTPStatus: http.StatusBadGateway, Retryable: false, Cause: cause,
	}
}

// Validation creates an error for failed input validation.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Internal creates an error for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
