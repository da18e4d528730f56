// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

// routeCollection is the ordered, named collection of every registered
// route (spec.md §3, C4). Iteration always yields registration order; a
// one-shot prepareNamed pass re-keys named entries for lookup by name
// without disturbing that order.
type routeCollection struct {
	ordered  []*Route
	byName   map[string]*Route
	prepared bool
}

func newRouteCollection() *routeCollection {
	return &routeCollection{}
}

// add appends route to the collection and invalidates the prepared flag.
func (c *routeCollection) add(r *Route) {
	c.ordered = append(c.ordered, r)
	c.prepared = false
}

// prepareNamed re-keys every route that carries a non-empty name, without
// changing iteration order (spec.md §3).
func (c *routeCollection) prepareNamed() {
	c.byName = make(map[string]*Route)
	for _, r := range c.ordered {
		if r.name != "" {
			c.byName[r.name] = r
		}
	}
	c.prepared = true
}

// byNameLookup returns the route registered under name, preparing the
// collection first if a mutation has happened since the last prepare.
func (c *routeCollection) byNameLookup(name string) (*Route, bool) {
	if !c.prepared {
		c.prepareNamed()
	}
	r, ok := c.byName[name]
	return r, ok
}

// all returns the routes in registration order. Callers must not mutate
// the returned slice.
func (c *routeCollection) all() []*Route {
	return c.ordered
}
