// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import "strings"

// routeBucket is one compartment of the index: the routes inserted directly
// at this prefix, plus references to descendant buckets reachable from it.
// Ancestor buckets never copy a descendant's routes; they hold a pointer to
// the descendant bucket instead (spec.md §4.2, §9 "reference-aliased radix").
type routeBucket struct {
	own  map[uint64]*Route
	refs []*routeBucket
}

func newRouteBucket() *routeBucket {
	return &routeBucket{own: make(map[uint64]*Route)}
}

// linksTo reports whether b already has a direct reference to target,
// i.e. whether add's ancestor walk can stop here.
func (b *routeBucket) linksTo(target *routeBucket) bool {
	for _, r := range b.refs {
		if r == target {
			return true
		}
	}
	return false
}

// routeIndex is the radix-style literal-prefix multimap of spec.md §3/§4.2
// (C3): a mapping literalPrefix -> { route.hash -> Route }, with ancestor
// buckets aliasing into descendant buckets, plus a catch-all bucket for
// routes with no usable literal prefix.
type routeIndex struct {
	buckets  map[string]*routeBucket
	catchAll *routeBucket
}

func newRouteIndex() *routeIndex {
	return &routeIndex{
		buckets:  make(map[string]*routeBucket),
		catchAll: newRouteBucket(),
	}
}

func (idx *routeIndex) bucketFor(prefix string) *routeBucket {
	b, ok := idx.buckets[prefix]
	if !ok {
		b = newRouteBucket()
		idx.buckets[prefix] = b
	}
	return b
}

// add implements spec.md §4.2 add(route). The bucket key is taken from the
// route's compiled, namespace-qualified literal prefix (not its raw
// originalPath) so a route registered under a Group indexes by its full
// matchable path rather than the bare pattern the caller wrote.
func (idx *routeIndex) add(route *Route) {
	prefix := route.compiled.literalPrefix
	if prefix == "" || route.isCustomRegex {
		idx.catchAll.own[route.hash] = route
		return
	}

	// Bucket keys are normalized to drop any trailing "/" (except the root
	// bucket itself) so that a route's own bucket key always matches one of
	// the path-segment prefixes findPossibleRoutes constructs while walking
	// a request URI -- that walk never produces a prefix with a trailing
	// slash. Without this, a route whose literal prefix ends right after a
	// "/" (the common case, e.g. "/posts/[i:id]") would only ever be
	// reachable through ancestor aliasing, and a more specific sibling
	// route could cause the walk to stop one level too early and miss it.
	if len(prefix) > 1 && prefix[len(prefix)-1] == '/' {
		prefix = prefix[:len(prefix)-1]
	}

	leaf := idx.bucketFor(prefix)
	leaf.own[route.hash] = route

	current := prefix
	for current != "/" {
		parent := parentPrefix(current)
		parentBucket := idx.bucketFor(parent)
		if parentBucket.linksTo(leaf) {
			break
		}
		parentBucket.refs = append(parentBucket.refs, leaf)
		current = parent
	}
}

// parentPrefix drops the trailing "/"-delimited segment of p, mapping the
// all-dropped case to "/" (spec.md §4.2 step 5). p is always already
// normalized (no trailing slash, except "/" itself, which this is never
// called with).
func parentPrefix(p string) string {
	i := strings.LastIndex(p, "/")
	if i <= 0 {
		return "/"
	}
	return p[:i]
}

// findPossibleRoutes implements spec.md §4.2 findPossibleRoutes(uri):
// walk candidate prefixes of uri from longest to "/", returning the routes
// reachable from the first bucket that yields any.
func (idx *routeIndex) findPossibleRoutes(uri string) map[uint64]*Route {
	if !strings.HasPrefix(uri, "/") {
		uri = "/" + uri
	}

	trimmed := strings.Trim(uri, "/")
	var segments []string
	if trimmed != "" {
		segments = strings.Split(trimmed, "/")
	}

	for i := len(segments); i >= 0; i-- {
		prefix := "/" + strings.Join(segments[:i], "/")
		b, ok := idx.buckets[prefix]
		if !ok {
			continue
		}
		collected := make(map[uint64]*Route)
		deepWalk(b, collected, make(map[*routeBucket]bool))
		if len(collected) > 0 {
			return collected
		}
	}
	return map[uint64]*Route{}
}

// catchAllRoutes returns every route stored in the catch-all bucket
// (custom regex, empty literal prefix, or the wildcard sentinel).
func (idx *routeIndex) catchAllRoutes() map[uint64]*Route {
	return idx.catchAll.own
}

func deepWalk(b *routeBucket, out map[uint64]*Route, visited map[*routeBucket]bool) {
	if b == nil || visited[b] {
		return
	}
	visited[b] = true
	for hash, r := range b.own {
		out[hash] = r
	}
	for _, ref := range b.refs {
		deepWalk(ref, out, visited)
	}
}
