package domain

import "fmt"

// ValidationError reports a malformed or missing request parameter.
// It is always fatal to a dispatch: retrying cannot fix bad input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid params: %s (%s)", e.Message, e.Field)
	}
	return fmt.Sprintf("invalid params: %s", e.Message)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// MissingParam is the common case: a required parameter was not supplied.
func MissingParam(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// AuthError reports a failed or expired LinkedIn session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Message
}

// RateLimitError reports a 429 from LinkedIn. RetryAfter is in seconds
// (0 when the server sent no hint).
type RateLimitError struct {
	Message    string
	RetryAfter int
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded: " + e.Message
}

// UnavailableError reports a temporarily unreachable upstream (5xx, network).
type UnavailableError struct {
	Message string
}

func (e *UnavailableError) Error() string {
	return "service unavailable: " + e.Message
}

// NotFoundError reports a missing resource (profile, job, application).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
