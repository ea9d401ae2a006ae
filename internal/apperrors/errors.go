// Package apperrors carries the service's error taxonomy: a machine-readable
// code, the HTTP status a handler should answer with, and the wrapped cause.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode is a machine-readable error code.
type ErrorCode string

const (
	ErrCodeInvalidInput       ErrorCode = "INVALID_INPUT"
	ErrCodePayloadTooLarge    ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
	ErrCodeExternalService    ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// AppError is the unified application error type.
type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	// Service names the upstream dependency for external-service errors.
	Service string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Body is the JSON body handlers answer with. Causes are only exposed for
// server-side failures, as "details".
func (e *AppError) Body() map[string]any {
	body := map[string]any{"error": e.Message}
	if e.Cause != nil && e.HTTPStatus >= http.StatusInternalServerError {
		body["details"] = e.Cause.Error()
	}
	return body
}

// New creates an AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func InvalidInput(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

func PayloadTooLarge(limit int64) *AppError {
	return New(ErrCodePayloadTooLarge,
		fmt.Sprintf("Audio file exceeds the %d byte limit", limit), http.StatusRequestEntityTooLarge)
}

func RateLimited() *AppError {
	return New(ErrCodeRateLimited, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
}

func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource), http.StatusNotFound)
}

func ServiceUnavailable(service string) *AppError {
	e := New(ErrCodeServiceUnavailable,
		fmt.Sprintf("The %s is not available.", service), http.StatusServiceUnavailable)
	e.Service = service
	return e
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message, http.StatusInternalServerError)
}

// ExternalService wraps a failure talking to a third-party API.
func ExternalService(service string, cause error) *AppError {
	e := New(ErrCodeExternalService, fmt.Sprintf("The %s request failed.", service), http.StatusBadGateway)
	e.Service = service
	e.Cause = cause
	return e
}

// As extracts an *AppError from an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether any AppError in the chain carries code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// FromError maps an arbitrary error to an AppError, defaulting to an
// internal error with the given message.
func FromError(err error, message string) *AppError {
	if appErr, ok := As(err); ok {
		return appErr
	}
	return Internal(message).WithCause(err)
}
