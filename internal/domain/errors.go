package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates the requested entity was not found.
var ErrNotFound = errors.New("not found")

// AuthError reports a failed client-credentials grant.
type AuthError struct {
	Status int
	Err    error
}

func (e *AuthError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("auth token request failed (%d): %v", e.Status, e.Err)
	}
	return fmt.Sprintf("auth token request failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx response from the commerce platform.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s failed (%d): %s", e.Method, e.Path, e.Status, e.Body)
}

// IsConflict reports whether the platform rejected a stale resource version.
func (e *APIError) IsConflict() bool {
	return e.Status == 409
}

// NotFoundError is returned when no lookup resolved the requested resource.
type NotFoundError struct {
	Resource string
	Key      string
	Tried    []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s %q not found", e.Resource, e.Key)
	if len(e.Tried) > 0 {
		msg += " (tried " + strings.Join(e.Tried, ", ") + ")"
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError is malformed input or an ineligible selection.
type ValidationError struct {
	Field   string
	Reason  string
	Details interface{}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError without details.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// CartUpdateExhaustedError is returned once every version-conflict retry was used.
type CartUpdateExhaustedError struct {
	CartID   string
	Attempts int
	Err      error
}

func (e *CartUpdateExhaustedError) Error() string {
	return fmt.Sprintf("cart %s: update failed after %d attempts: %v", e.CartID, e.Attempts, e.Err)
}

func (e *CartUpdateExhaustedError) Unwrap() error {
	return e.Err
}
