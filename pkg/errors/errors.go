package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Fields  map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
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
	ErrInvalidCredentials = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden          = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized       = New("UNAUTHORIZED", http.StatusUnauthorized, "Unauthenticated.")
	ErrBadRequest         = New("BAD_REQUEST", http.StatusBadRequest, "malformed request body")
	ErrValidation         = New("VALIDATION_ERROR", http.StatusUnprocessableEntity, "The given data was invalid.")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "Server Error")
	ErrCacheMiss          = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// Validation builds a 422 error carrying per-field messages. The message
// mirrors the first failing field, followed by a count of the remaining ones.
func Validation(fields map[string][]string) *Error {
	e := Clone(ErrValidation, "")
	e.Fields = fields

	keys := make([]string, 0, len(fields))
	total := 0
	for k, msgs := range fields {
		keys = append(keys, k)
		total += len(msgs)
	}
	if total == 0 {
		return e
	}
	sort.Strings(keys)

	first := ""
	for _, k := range keys {
		if len(fields[k]) > 0 {
			first = fields[k][0]
			break
		}
	}

	switch remaining := total - 1; {
	case remaining == 1:
		e.Message = fmt.Sprintf("%s (and 1 more error)", first)
	case remaining > 1:
		e.Message = fmt.Sprintf("%s (and %d more errors)", first, remaining)
	default:
		e.Message = first
	}
	return e
}

// FieldError is shorthand for a single-field validation failure.
func FieldError(field, message string) *Error {
	return Validation(map[string][]string{field: {message}})
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
	if err.Fields != nil {
		clone.Fields = make(map[string][]string, len(err.Fields))
		for k, v := range err.Fields {
			clone.Fields[k] = append([]string(nil), v...)
		}
	}
	return &clone
}

// Merge folds the field messages of b into a. Either side may be nil.
func Merge(a, b map[string][]string) map[string][]string {
	if len(b) == 0 {
		return a
	}
	if a == nil {
		a = make(map[string][]string, len(b))
	}
	for k, v := range b {
		a[k] = append(a[k], v...)
	}
	return a
}
