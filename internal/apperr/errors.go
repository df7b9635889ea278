// Package apperr defines the error kinds shared across rolodex.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	ErrParse           = errors.New("parse error")
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidIndex    = errors.New("invalid index")
	ErrDuplicatePerson = errors.New("duplicate person")
	ErrInvalidPerson   = errors.New("invalid person")
	ErrNotImplemented  = errors.New("not implemented")
)

// Error is a user-facing failure. Error returns Msg verbatim; the Kind is
// reachable through errors.Is.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an *Error of the given kind with a formatted message.
func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}

var kindNames = map[error]string{
	ErrNotFound:        "not_found",
	ErrConflict:        "conflict",
	ErrAlreadyExists:   "already_exists",
	ErrParse:           "parse",
	ErrUnknownCommand:  "unknown_command",
	ErrInvalidIndex:    "invalid_index",
	ErrDuplicatePerson: "duplicate_person",
	ErrInvalidPerson:   "invalid_person",
	ErrNotImplemented:  "not_implemented",
}

// KindName returns a stable machine-readable name for the kind of err, or
// "internal" when err carries none of the known kinds.
func KindName(err error) string {
	for kind, name := range kindNames {
		if errors.Is(err, kind) {
			return name
		}
	}
	return "internal"
}
