package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrUpstream       = errors.New("upstream error")
	ErrResponseParse  = errors.New("response parse error")
	ErrResponseShape  = errors.New("response shape error")
	ErrAudit          = errors.New("audit error")
	ErrNotFound       = errors.New("not found")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidRequest }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// UpstreamError reports a completion provider failure. Message carries the
// provider's own error text when it supplied one.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// Is reports ErrUpstream so callers can match on the sentinel.
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewInvalidShapeError is returned when the provider answered successfully
// but the body carried no completion text.
func NewInvalidShapeError(provider string) *UpstreamError {
	return &UpstreamError{Provider: provider, Message: "invalid response shape"}
}
