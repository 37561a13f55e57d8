// Package apperror defines the application's error taxonomy.
//
// Every layer returns one of these wrapped sentinels instead of raw strings,
// so the HTTP layer can map errors to status codes with errors.Is without
// knowing where in the stack they came from:
//
//	ErrNotFound   → 404  user/show id did not resolve, no retry
//	ErrInvalid    → 400  missing or malformed request data, no retry
//	ErrConflict   → 409  write collided with existing state
//	ErrForbidden  → 403  authenticated but not allowed
//
// Anything else (a store or network failure) surfaces as 500 — logged and
// reported, never retried automatically. The one exception is the cross-list
// membership move, whose second half is safe to retry because the set
// operations are idempotent.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalid   = errors.New("invalid request")
	ErrConflict  = errors.New("conflict")
	ErrForbidden = errors.New("forbidden")
)

// AppError pairs a sentinel with a human-readable message and, optionally,
// the offending field. It implements Unwrap so errors.Is/As see through it.
type AppError struct {
	Err     error  // one of the sentinels above
	Message string // safe to show to the client
	Field   string // optional: which input field caused it
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a record with the given id does not exist.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// Invalid reports a bad input value on a named field.
func Invalid(field, message string) *AppError {
	return &AppError{
		Err:     ErrInvalid,
		Message: message,
		Field:   field,
	}
}

// MissingID reports a request that omitted a required identifier.
func MissingID(field string) *AppError {
	return &AppError{
		Err:     ErrInvalid,
		Message: fmt.Sprintf("%s is required", field),
		Field:   field,
	}
}

// Conflict reports a write that collided with existing state.
func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict with id %s", resource, id),
	}
}

// Forbidden reports that the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
