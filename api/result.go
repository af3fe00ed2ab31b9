// Package api
// Author: momentics@gmail.com
//
// Generic result carrier for asynchronous delivery of values or errors.

package api

// Result wraps any payload or error. Used where a value and its failure
// travel through the same channel, e.g. the facade accept loop.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result carries a usable value.
func (r Result[T]) Ok() bool { return r.Err == nil }
