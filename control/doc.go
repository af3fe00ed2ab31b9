// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime counters and debug introspection for socket activity. Concurrency
// safe; registration and snapshots may happen from any goroutine.
package control
