// Package apperr defines the error taxonomy surfaced by the API. Stores
// and handlers return (or wrap) these sentinels; the HTTP layer maps each
// one to a status code in exactly one place.
package apperr

import "errors"

var (
	// ErrUnauthorized means the request carried no valid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the actor is authenticated but the rule denies
	// the operation. No detail about which rule failed is attached.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the target is missing or soft-deleted. The two
	// cases are indistinguishable to callers.
	ErrNotFound = errors.New("not found")

	// ErrValidation means the request payload is malformed or fails a
	// required-field or referential check.
	ErrValidation = errors.New("validation failed")
)

// Validation wraps ErrValidation with a caller-facing message.
func Validation(msg string) error {
	return &messageError{sentinel: ErrValidation, msg: msg}
}

// NotFound wraps ErrNotFound with a caller-facing message.
func NotFound(msg string) error {
	return &messageError{sentinel: ErrNotFound, msg: msg}
}

type messageError struct {
	sentinel error
	msg      string
}

func (e *messageError) Error() string { return e.msg }
func (e *messageError) Unwrap() error { return e.sentinel }
