// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"context"
	"net/http"
	"strings"
	"sync"
)

// ErrorHandlerFunc is the HTTP-error handler contract of spec.md §6.3:
// (code, router, matched, methodsMatched, exception), generalized to a
// Context the way HandlerFunc is (spec.md §9).
type ErrorHandlerFunc func(ctx *Context, code int, cause error) (interface{}, error)

// Router is the facade a program builds routes against and hands to
// net/http as an http.Handler. It owns the Route Collection and Route
// Index (spec.md §3) and drives the Dispatcher (C5) on every request.
type Router struct {
	mu sync.RWMutex

	routes *routeCollection
	index  *routeIndex
	cache  PatternCache
	logger Logger

	service interface{}
	app     interface{}

	errorHandlers []ErrorHandlerFunc
	afterDispatch []HandlerFunc

	dispatched bool // true once the first request has been served
}

// NewRouter returns a ready to use Router, applying any Options given.
func NewRouter(opts ...Option) *Router {
	rt := &Router{
		routes: newRouteCollection(),
		index:  newRouteIndex(),
		logger: Log,
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Handle registers pattern under the root namespace for the given methods
// (nil/empty methods matches every method) and returns the new Route for
// further configuration (e.g. SetName).
func (rt *Router) Handle(methods []string, pattern string, h HandlerFunc) (*Route, error) {
	return rt.addRoute("", methods, pattern, h)
}

// addRoute is the single choke point every registration path (Router,
// Group) funnels through: it enforces the freeze-after-first-dispatch
// concurrency rule (spec.md §5) and keeps the Route Collection and Route
// Index in sync.
func (rt *Router) addRoute(namespace string, methods []string, pattern string, h HandlerFunc) (*Route, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.dispatched {
		return nil, &InvalidArgumentError{Reason: "cannot register routes after the router has started dispatching"}
	}

	r, err := newRoute(namespace, pattern, methods, h, rt.cache)
	if err != nil {
		return nil, err
	}
	rt.routes.add(r)
	rt.index.add(r)
	return r, nil
}

// GET registers a GET route. It panics on a malformed pattern or method,
// matching the precedent that route registration happens at startup, not
// on a live request path.
func (rt *Router) GET(pattern string, h HandlerFunc) *Route { return rt.must("GET", pattern, h) }

// POST registers a POST route.
func (rt *Router) POST(pattern string, h HandlerFunc) *Route { return rt.must("POST", pattern, h) }

// PUT registers a PUT route.
func (rt *Router) PUT(pattern string, h HandlerFunc) *Route { return rt.must("PUT", pattern, h) }

// DELETE registers a DELETE route.
func (rt *Router) DELETE(pattern string, h HandlerFunc) *Route { return rt.must("DELETE", pattern, h) }

// PATCH registers a PATCH route.
func (rt *Router) PATCH(pattern string, h HandlerFunc) *Route { return rt.must("PATCH", pattern, h) }

// HEAD registers a HEAD route.
func (rt *Router) HEAD(pattern string, h HandlerFunc) *Route { return rt.must("HEAD", pattern, h) }

// OPTIONS registers an OPTIONS route.
func (rt *Router) OPTIONS(pattern string, h HandlerFunc) *Route {
	return rt.must("OPTIONS", pattern, h)
}

// Any registers pattern with no method constraint: it matches every
// request method (spec.md §3, "unset (matches all)").
func (rt *Router) Any(pattern string, h HandlerFunc) *Route {
	r, err := rt.Handle(nil, pattern, h)
	if err != nil {
		panic(err)
	}
	return r
}

func (rt *Router) must(method, pattern string, h HandlerFunc) *Route {
	r, err := rt.Handle([]string{method}, pattern, h)
	if err != nil {
		panic(err)
	}
	return r
}

// Group returns a namespace-scoped route group rooted at prefix (spec.md
// §4.1 "Namespace composition").
func (rt *Router) Group(prefix string) *Group {
	return &Group{router: rt, namespace: prefix}
}

// OnError appends an HTTP-error handler to the chain invoked when the
// dispatcher raises an HttpError (spec.md §4.3 "HTTP-error path").
// Handlers run in registration order until one returns a nil error.
func (rt *Router) OnError(h ErrorHandlerFunc) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.errorHandlers = append(rt.errorHandlers, h)
}

// After appends a callback to the FIFO after-dispatch chain, run once the
// main loop completes and before the response is considered final (spec.md
// §4.3 "After-dispatch chain").
func (rt *Router) After(h HandlerFunc) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.afterDispatch = append(rt.afterDispatch, h)
}

// PathFor implements reverse routing (spec.md §6.4).
func (rt *Router) PathFor(name string, params map[string]string, flattenRegex ...bool) (string, error) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	r, ok := rt.routes.byNameLookup(name)
	if !ok {
		return "", &routeNotFoundError{Name: name}
	}

	flatten := true
	if len(flattenRegex) > 0 {
		flatten = flattenRegex[0]
	}
	return pathFor(r, params, flatten)
}

// ServeHTTP implements http.Handler, driving the Dispatcher for a single
// request (spec.md §4.3). The first call freezes route registration
// (spec.md §5, "the core MUST NOT mutate either after the first dispatch").
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.mu.Lock()
	if !rt.dispatched {
		rt.dispatched = true
		rt.routes.prepareNamed()
	}
	rt.mu.Unlock()

	req := newRequest(r)
	resp := newResponse(w, strings.ToUpper(r.Method))
	ctx := newContext(context.Background(), rt, req, resp)

	defer func() {
		ctx.free()
		resp.free()
		req.free()
	}()

	rt.dispatch(ctx)
}
