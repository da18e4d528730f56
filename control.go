// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import "fmt"

// HandlerFunc is the signature every route handler, HTTP-error handler hook,
// and after-dispatch callback is built from. It plays the role of the
// teacher's HandlerFunc (func(*Context)), generalized to return a value
// (spec.md §4.3 step 5) and an error, which lets the flow-control signals of
// spec.md §4.4 be ordinary Go control-flow values instead of exceptions —
// the target-language translation spec.md §9's Design Notes calls for.
type HandlerFunc func(ctx *Context) (interface{}, error)

// controlSignal is implemented by the flow-control errors a handler can
// return: skipThis, skipNext, skipRemaining and the code-less form of
// abort. They are never routed to an HTTP-error or unknown-error handler;
// the dispatcher interprets them internally (spec.md §4.3 step 5, §7).
type controlSignal interface {
	error
	isControlSignal()
}

type skipThisSignal struct{}

func (skipThisSignal) Error() string   { return "waypost: skip this route" }
func (skipThisSignal) isControlSignal() {}

type skipRemainingSignal struct{}

func (skipRemainingSignal) Error() string   { return "waypost: skip remaining routes" }
func (skipRemainingSignal) isControlSignal() {}

type skipNextSignal struct{ N int }

func (s skipNextSignal) Error() string   { return fmt.Sprintf("waypost: skip next %d route(s)", s.N) }
func (skipNextSignal) isControlSignal() {}

type dispatchHaltSignal struct{}

func (dispatchHaltSignal) Error() string   { return "waypost: dispatch halted" }
func (dispatchHaltSignal) isControlSignal() {}

var (
	errSkipThis      controlSignal = skipThisSignal{}
	errSkipRemaining controlSignal = skipRemainingSignal{}
	errDispatchHalt  controlSignal = dispatchHaltSignal{}
)

// SkipThis abandons the current route's contribution to the response and
// continues the dispatch loop at the next candidate route.
func SkipThis() error { return errSkipThis }

// SkipNext skips the next n candidate routes after the current one. n
// defaults to 1, matching spec.md §4.4.
func SkipNext(n ...int) error {
	count := 1
	if len(n) > 0 {
		count = n[0]
	}
	return skipNextSignal{N: count}
}

// SkipRemaining stops the dispatch loop entirely; no further routes are
// tested for this request.
func SkipRemaining() error { return errSkipRemaining }

// Abort halts dispatch from within a handler. With a code it raises an
// HTTPError of that status; without one it raises a generic dispatch halt,
// a control signal that ends the dispatch loop like SkipRemaining and is
// never routed to an error handler (spec.md §4.4).
func Abort(code ...int) error {
	if len(code) > 0 {
		return NewHTTPError(code[0], "")
	}
	return errDispatchHalt
}
