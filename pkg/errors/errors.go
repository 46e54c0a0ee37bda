// Package errors holds the domain error taxonomy shared by services and handlers.
//
// Every domain error carries one of the kind sentinels below. Callers match a
// concrete error with errors.Is(err, service.ErrStudentNotFound) and a whole
// class with errors.Is(err, pkgerrors.ErrNotFound).
package errors

import (
	"errors"
	"fmt"
)

// Kinds
var (
	// ErrNotFound referenced entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrReferentialViolation grade/track/group mismatch or a broken foreign key
	ErrReferentialViolation = errors.New("referential violation")
	// ErrConfigMissing required configuration (e.g. pricing) is absent
	ErrConfigMissing = errors.New("configuration missing")
	// ErrScopeViolation actor acted outside their permitted scope
	ErrScopeViolation = errors.New("scope violation")
	// ErrStoreUnavailable the backing store could not be reached
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Error is a domain error of a given kind.
type Error struct {
	kind error
	msg  string
}

// New creates a domain error of kind with a human-readable message.
func New(kind error, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Unwrap exposes the kind so errors.Is can match it.
func (e *Error) Unwrap() error { return e.kind }

// Kind returns the kind sentinel.
func (e *Error) Kind() error { return e.kind }

// Unavailable wraps a store failure as ErrStoreUnavailable, keeping the cause.
func Unavailable(op string, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, cause)
}

// KindOf reports the kind of err, or nil when err is not a domain error.
func KindOf(err error) error {
	for _, k := range []error{
		ErrNotFound, ErrReferentialViolation, ErrConfigMissing, ErrScopeViolation, ErrStoreUnavailable,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
