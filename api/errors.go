// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error classification for the netsock library.

package api

import (
	"errors"
	"fmt"
)

// Sentinel errors used across the library. Callers match them with errors.Is;
// structured *Error values compare equal to the sentinel of their kind.
var (
	ErrClosed       = errors.New("socket is closed")
	ErrInvalidInput = errors.New("invalid input")
	ErrTimeout      = errors.New("operation timed out")
	ErrResolver     = errors.New("name resolution failed")
	ErrNotSupported = errors.New("operation not supported")
)

// Kind categorizes a failure independently of the OS error code behind it.
type Kind int

const (
	KindIO Kind = iota
	KindInvalidInput
	KindTimeout
	KindResolver
	KindClosed
	KindNotSupported
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindInvalidInput:
		return "invalid input"
	case KindTimeout:
		return "timeout"
	case KindResolver:
		return "resolver"
	case KindClosed:
		return "closed"
	case KindNotSupported:
		return "not supported"
	default:
		return "unknown"
	}
}

// Error is a structured error carrying the failed operation name, a category,
// and the underlying OS error (usually an errno).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying OS error for errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel corresponding to the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrClosed:
		return e.Kind == KindClosed
	case ErrInvalidInput:
		return e.Kind == KindInvalidInput
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrResolver:
		return e.Kind == KindResolver
	case ErrNotSupported:
		return e.Kind == KindNotSupported
	}
	return false
}

// Timeout reports whether the error is a timeout, mirroring net.Error.
func (e *Error) Timeout() bool { return e.Kind == KindTimeout }

// NewError creates a structured error around an underlying OS error.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf creates a structured error from a format string.
func Errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsTimeout reports whether err is categorized as a timeout.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }

// IsInvalidInput reports whether err is categorized as invalid input.
func IsInvalidInput(err error) bool { return errors.Is(err, ErrInvalidInput) }
