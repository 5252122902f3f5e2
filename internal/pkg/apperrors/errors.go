package apperrors

import (
	"errors"
	"sort"
	"strings"
)

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	ErrPermissionDenied = errors.New("permission denied")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token expired")

	ErrValidationFailed = errors.New("validation failed")

	ErrCascadeFailed = errors.New("cascade failed")
)

// Field failure reasons reported to clients
const (
	ReasonRequired = "required"
	ReasonInvalid  = "invalid"
)

// ValidationError carries one reason per offending field. It is rendered
// verbatim as the body of a 400 response.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError ready for Add calls.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Required is shorthand for a ValidationError naming missing fields.
func Required(fields ...string) *ValidationError {
	v := NewValidationError()
	for _, f := range fields {
		v.Add(f, ReasonRequired)
	}
	return v
}

// Add records a failure; the first reason recorded for a field wins.
func (e *ValidationError) Add(field, reason string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = reason
	}
}

// Merge copies failures from other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for f, r := range other.Fields {
		e.Add(f, r)
	}
}

// Empty reports whether no failures were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Fields) == 0
}

// OrNil returns nil when nothing was recorded, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f, r := range e.Fields {
		names = append(names, f+" "+r)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// AsValidation extracts a ValidationError from an error chain.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
