// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"fmt"

	"github.com/go-waypost/waypost/fail"
)

// HTTPError is the error type a handler, an HTTP-error handler, or
// Abort(code) raises to answer a request with a specific HTTP status
// (spec.md §7, §4.4). It is the dispatcher's view of fail.Fail: anything
// compared with errors.As against *HTTPError sees Status/Message/Details.
type HTTPError = fail.Fail

// NewHTTPError builds an HTTPError for the given status and message, with
// optional detail strings. It is the bridge Abort(code) and the dispatcher's
// 404/405 paths use to reach into the fail package's error taxonomy without
// every caller importing it directly.
func NewHTTPError(status int, message string, details ...string) *HTTPError {
	return fail.New(status, message, details...)
}

// PatternCompilationError is raised when a route's pattern, or the regex
// assembled from it, fails to compile (spec.md §4.1, §7). It carries
// the offending pattern and the underlying error so callers can report both.
type PatternCompilationError struct {
	Pattern string
	Err     error
}

func (e *PatternCompilationError) Error() string {
	return fmt.Sprintf("waypost: pattern compilation failed for %q: %v", e.Pattern, e.Err)
}

func (e *PatternCompilationError) Unwrap() error { return e.Err }

// InvalidArgumentError is raised at route registration time when a handler
// is not invocable or a method name is not one of the canonical HTTP
// methods (spec.md §3, §7).
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return "waypost: invalid argument: " + e.Reason
}

// routeNotFoundError is returned by Router.PathFor when no route carries the
// requested name (spec.md §6.4).
type routeNotFoundError struct {
	Name string
}

func (e *routeNotFoundError) Error() string {
	return fmt.Sprintf("waypost: no route named %q", e.Name)
}

// UnhandledError wraps an error that escaped a handler or an after-dispatch
// callback with no registered error chain (or a chain that declined to
// handle it) left to catch it (spec.md §7 "UnhandledError"). An error raised
// by an HTTP-error handler itself does not surface as an UnhandledError.
// The dispatcher sets the response to 500 and panics with this value so it
// reaches whatever recovers panics above net/http's Handler boundary, rather
// than being silently swallowed.
type UnhandledError struct {
	Cause error
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("waypost: unhandled error: %v", e.Cause)
}

func (e *UnhandledError) Unwrap() error { return e.Cause }
