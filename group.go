// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

// Group is a namespace-scoped view onto a Router: every pattern registered
// through it is prefixed with the group's namespace (spec.md §4.1
// "Namespace composition"). It plays the role the teacher's Resource plays
// for a collection, generalized to any namespace rather than one reflected
// from a Go type.
type Group struct {
	router    *Router
	namespace string
}

// Group returns a nested group, further scoped under prefix.
func (g *Group) Group(prefix string) *Group {
	return &Group{router: g.router, namespace: g.namespace + prefix}
}

// Handle registers pattern (prefixed with the group's namespace) for the
// given methods and returns the new Route.
func (g *Group) Handle(methods []string, pattern string, h HandlerFunc) (*Route, error) {
	return g.router.addRoute(g.namespace, methods, pattern, h)
}

// GET registers a GET route under this group's namespace. Panics on a
// malformed pattern, matching registration-time-only usage.
func (g *Group) GET(pattern string, h HandlerFunc) *Group { return g.must("GET", pattern, h) }

// POST registers a POST route under this group's namespace.
func (g *Group) POST(pattern string, h HandlerFunc) *Group { return g.must("POST", pattern, h) }

// PUT registers a PUT route under this group's namespace.
func (g *Group) PUT(pattern string, h HandlerFunc) *Group { return g.must("PUT", pattern, h) }

// DELETE registers a DELETE route under this group's namespace.
func (g *Group) DELETE(pattern string, h HandlerFunc) *Group { return g.must("DELETE", pattern, h) }

// PATCH registers a PATCH route under this group's namespace.
func (g *Group) PATCH(pattern string, h HandlerFunc) *Group { return g.must("PATCH", pattern, h) }

// Any registers pattern under this group's namespace with no method
// constraint.
func (g *Group) Any(pattern string, h HandlerFunc) *Group {
	if _, err := g.Handle(nil, pattern, h); err != nil {
		panic(err)
	}
	return g
}

func (g *Group) must(method, pattern string, h HandlerFunc) *Group {
	if _, err := g.Handle([]string{method}, pattern, h); err != nil {
		panic(err)
	}
	return g
}
