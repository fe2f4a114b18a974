package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrConfiguration = New("CONFIG_ERROR", http.StatusInternalServerError, "missing required configuration")
	ErrUpstream      = New("UPSTREAM_ERROR", http.StatusBadGateway, "upstream LMS request failed")
	ErrCompletion    = New("COMPLETION_ERROR", http.StatusBadGateway, "completion service request failed")
	ErrValidation    = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrNotFound      = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal      = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// Upstream builds an UPSTREAM_ERROR carrying the LMS response status and body.
func Upstream(status int, body string) *Error {
	const maxBody = 512
	if len(body) > maxBody {
		body = body[:maxBody]
	}
	return New(ErrUpstream.Code, ErrUpstream.Status, fmt.Sprintf("canvas api returned %d: %s", status, body))
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
