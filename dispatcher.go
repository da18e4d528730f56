// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"net/http"
	"strings"

	strarr "github.com/codehack/go-strarr"
)

// dispatch is the match-execute loop of spec.md §4.3 (C5): it owns the
// per-request state the spec calls for (skipRemaining, matched, matchedMethods),
// walks the candidate routes in registration order, and funnels whatever
// escapes a handler into the HTTP-error, unknown-error or after-dispatch
// paths.
func (rt *Router) dispatch(ctx *Context) {
	req := ctx.Request
	method := strings.ToUpper(req.Method)
	pathname := req.Pathname

	candidates := rt.index.findPossibleRoutes(pathname)
	for hash, r := range rt.index.catchAllRoutes() {
		candidates[hash] = r
	}

	skipRemaining := 0
	matched := make([]*Route, 0)
	matchedMethods := make(map[string]bool)

dispatchLoop:
	for _, r := range rt.routes.all() {
		if _, isCandidate := candidates[r.hash]; !isCandidate {
			continue
		}

		if skipRemaining > 0 {
			skipRemaining--
			continue
		}

		rt.logger.Printf(LogDebug, "[%s] testing route %q against %s", req.ID, r.originalPath, pathname)

		pathOK, params := r.matchPath(pathname)
		effectiveMatch := pathOK
		if !r.compiled.negationBaked {
			effectiveMatch = pathOK != r.isNegated
		}

		if effectiveMatch && r.countMatch {
			for m := range r.methods {
				matchedMethods[m] = true
			}
		}

		if !effectiveMatch || !r.matchesMethod(method) {
			continue
		}

		if params != nil {
			mergeDecodedParams(req.Params, params)
		}

		rt.logger.Printf(LogNotice, "[%s] matched %q", req.ID, r.originalPath)

		ctx.Matched = matched
		ctx.MethodsMatched = methodSetToSlice(matchedMethods)

		rv, err := r.callback(ctx)
		if err != nil {
			if sig, ok := err.(controlSignal); ok {
				// R.countMatch governs whether R joins matched regardless of
				// how the route's invocation ends (spec.md §4.3 step 5:
				// this is a sibling bullet to invoking the callback and to
				// flow control, not nested under the error-free path) --
				// except skipThis, which is documented as abandoning R's
				// contribution to the request entirely.
				if _, isSkipThis := sig.(skipThisSignal); !isSkipThis && r.countMatch {
					matched = append(matched, r)
				}
				switch s := sig.(type) {
				case skipThisSignal:
					continue dispatchLoop
				case skipNextSignal:
					skipRemaining = s.N
					continue dispatchLoop
				case skipRemainingSignal:
					break dispatchLoop
				case dispatchHaltSignal:
					break dispatchLoop
				}
				break dispatchLoop
			}

			if herr, ok := err.(*HTTPError); ok {
				rt.httpErrorPath(ctx, herr.Status, herr)
				rt.runAfterDispatch(ctx)
				return
			}

			rt.unknownErrorPath(ctx, err)
			rt.runAfterDispatch(ctx)
			return
		}

		if resp, ok := rv.(*Response); ok {
			ctx.Response = resp
		} else {
			ctx.Response.Append(rv)
		}

		if r.countMatch {
			matched = append(matched, r)
		}
	}

	ctx.Matched = matched
	ctx.MethodsMatched = methodSetToSlice(matchedMethods)

	switch {
	case len(matched) == 0 && len(matchedMethods) > 0:
		allow := strings.Join(methodSetToSlice(matchedMethods), ", ")
		ctx.Response.Header().Set("Allow", allow)
		if method != http.MethodOptions {
			rt.logger.Printf(LogWarn, "[%s] 405 %s %s (allow: %s)", req.ID, method, pathname, allow)
			herr := NewHTTPError(http.StatusMethodNotAllowed, "method not allowed")
			herr.Allow = allow
			rt.httpErrorPath(ctx, http.StatusMethodNotAllowed, herr)
		}
	case len(matched) == 0:
		rt.logger.Printf(LogWarn, "[%s] 404 %s %s", req.ID, method, pathname)
		rt.httpErrorPath(ctx, http.StatusNotFound, NewHTTPError(http.StatusNotFound, "not found"))
	}

	rt.runAfterDispatch(ctx)
}

// mergeDecodedParams folds captured, percent-decodes each value per spec.md
// §6.5, then merges into dst.
func mergeDecodedParams(dst, captured *Params) {
	for _, name := range captured.order {
		dst.Set(name, percentDecode(captured.names[name]))
	}
	for _, v := range captured.values {
		dst.Append(percentDecode(v))
	}
}

// methodSetToSlice materializes a method set into a slice in the
// canonical-method ordering (GET, POST, ...) rather than map iteration
// order, which Go randomizes; strarr.Contains picks out any method outside
// that list.
func methodSetToSlice(set map[string]bool) []string {
	ordered := []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS", "PATCH", "TRACE", "CONNECT"}
	out := make([]string, 0, len(set))
	for _, m := range ordered {
		if set[m] {
			out = append(out, m)
		}
	}
	// Defensive: a method present in set but outside the canonical list
	// (shouldn't happen, canonicalizeMethods rejects it at registration)
	// is still surfaced rather than silently dropped.
	for m := range set {
		if !strarr.Contains(ordered, m) {
			out = append(out, m)
		}
	}
	return out
}

// runErrorHandlers tries each registered HTTP-error handler in order until
// one handles the error (returns a nil error), appending its return value to
// the response. A handler that returns an error or panics is treated as not
// handling it and the chain moves on. When no handler handles the error it
// reports false; the errors the handlers raised are discarded, not wrapped
// in an UnhandledError or re-raised.
func (rt *Router) runErrorHandlers(ctx *Context, code int, cause error) bool {
	for _, eh := range rt.errorHandlers {
		handled, rv, herr := rt.invokeErrorHandler(eh, ctx, code, cause)
		if herr != nil {
			continue
		}
		if handled {
			ctx.Response.Append(rv)
			return true
		}
	}
	return false
}

func (rt *Router) invokeErrorHandler(eh ErrorHandlerFunc, ctx *Context, code int, cause error) (handled bool, rv interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			handled, err = false, &UnhandledError{Cause: cause}
		}
	}()
	rv, err = eh(ctx, code, cause)
	return err == nil, rv, err
}

// httpErrorPath implements spec.md §4.3's "HTTP-error path": the response
// code is pinned up front (WriteHeader is a no-op past the first call, so a
// handler that already wrote one keeps it), the pre-error lock state is
// captured, the error-handler chain runs, that lock state is restored, and
// finally the response is locked so nothing downstream can mutate it.
func (rt *Router) httpErrorPath(ctx *Context, code int, cause error) {
	wasLocked := ctx.Response.Locked()
	ctx.Response.WriteHeader(code)

	handled := rt.runErrorHandlers(ctx, code, cause)

	if !handled {
		if f, ok := cause.(*HTTPError); ok && f.Message != "" {
			ctx.Response.Write([]byte(f.Message))
		}
	}

	if !wasLocked {
		ctx.Response.Unlock()
	}
	ctx.Response.Lock()
}

// unknownErrorPath implements spec.md §4.3's "Unknown-error path": the error
// chain gets a shot at it (tagged with status 500, the UnhandledError code),
// and if nothing in the chain handles it, the response is set to 500 and the
// error is re-raised to the caller of dispatch via panic, matching
// UnhandledError's propagation policy in spec.md §7.
func (rt *Router) unknownErrorPath(ctx *Context, cause error) {
	rt.logger.Printf(LogErr, "[%s] unhandled error: %v", ctx.Request.ID, cause)
	ctx.Response.WriteHeader(http.StatusInternalServerError)

	if len(rt.errorHandlers) > 0 {
		if rt.runErrorHandlers(ctx, http.StatusInternalServerError, cause) {
			ctx.Response.Lock()
			return
		}
	}

	ctx.Response.Lock()
	panic(&UnhandledError{Cause: cause})
}

// runAfterDispatch drains the FIFO after-dispatch chain (spec.md §4.3
// "After-dispatch chain"). A callback that raises feeds back into the
// unknown-error path, same as any other escaped handler error.
func (rt *Router) runAfterDispatch(ctx *Context) {
	for _, fn := range rt.afterDispatch {
		rv, err := fn(ctx)
		if err != nil {
			if herr, ok := err.(*HTTPError); ok {
				rt.httpErrorPath(ctx, herr.Status, herr)
				continue
			}
			if _, ok := err.(controlSignal); ok {
				continue
			}
			rt.unknownErrorPath(ctx, err)
			continue
		}
		ctx.Response.Append(rv)
	}
}
