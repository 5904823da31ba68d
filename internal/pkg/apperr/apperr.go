// Package apperr holds the error kinds shared by every module. Modules declare
// their own errors on top of a kind and the HTTP layer maps kinds to statuses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingField    = errors.New("missing field")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream failure")
)

// Error is a module error tagged with one of the kinds above.
type Error struct {
	kind  error
	msg   string
	cause error
}

func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func Newf(kind error, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and a message to a lower level error.
func Wrap(kind error, msg string, cause error) *Error {
	return &Error{kind: kind, msg: msg, cause: cause}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// Kind returns the kind of err, or nil for errors outside the taxonomy.
func Kind(err error) error {
	for _, k := range []error{
		ErrMissingField,
		ErrInvalidInput,
		ErrNotFound,
		ErrUnauthenticated,
		ErrForbidden,
		ErrConflict,
		ErrUpstream,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Status maps err to an HTTP status and a stable error code.
func Status(err error) (int, string) {
	switch Kind(err) {
	case ErrMissingField:
		return http.StatusBadRequest, "MISSING_FIELD"
	case ErrInvalidInput:
		return http.StatusBadRequest, "INVALID_INPUT"
	case ErrNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case ErrUnauthenticated:
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case ErrForbidden:
		return http.StatusForbidden, "FORBIDDEN"
	case ErrConflict:
		return http.StatusConflict, "CONFLICT"
	case ErrUpstream:
		return http.StatusInternalServerError, "UPSTREAM_FAILURE"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
