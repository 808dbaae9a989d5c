package services

import (
	"errors"
	"fmt"

	"lanari/internal/repositories"
)

// Error kinds. Every error returned by a service wraps at most one of them.
var (
	ErrNotFound     = repositories.ErrNotFound
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error carries a client-facing message and the kind it belongs to.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func notFound(format string, args ...interface{}) error {
	return newError(ErrNotFound, format, args...)
}

func invalid(format string, args ...interface{}) error {
	return newError(ErrValidation, format, args...)
}

func conflict(format string, args ...interface{}) error {
	return newError(ErrConflict, format, args...)
}

// translateNotFound replaces a repository not-found error with msg and passes anything else through.
func translateNotFound(err error, msg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound("%s", msg)
	}
	return err
}
