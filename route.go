// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"strings"
	"sync/atomic"
)

// canonicalMethods is the set of HTTP methods a Route may be constructed
// with (spec.md §3). Anything else fails registration with InvalidArgument.
var canonicalMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true, "HEAD": true,
	"OPTIONS": true, "PATCH": true, "TRACE": true, "CONNECT": true,
}

// nextHash hands out the per-process unique Route identities (spec.md §3,
// "hash is unique within the process").
var nextHash uint64

// Route is an immutable record bundling a compiled pattern, its method
// filter, handler, and metadata (spec.md §3, C2). Construct one with
// newRoute; once built, only SetName mutates it. A name set after the
// owning Router's first dispatch is not seen by PathFor, since the named
// lookup is prepared at that point.
type Route struct {
	callback     HandlerFunc
	originalPath string
	path         string
	methods      map[string]bool // nil means unset: matches every method

	isCustomRegex        bool
	isNegated            bool
	isNegatedCustomRegex bool
	isDynamic            bool
	countMatch           bool

	compiled *compiledPattern

	name string
	hash uint64
}

// newRoute builds and validates a Route per spec.md §4.1 and §3. namespace
// is the enclosing group's prefix (possibly empty); rawPath is exactly as
// the caller wrote it, sentinel markers included; methods is the caller's
// requested method filter (nil/empty means unset, matching every method).
func newRoute(namespace, rawPath string, methods []string, handler HandlerFunc, cache PatternCache) (*Route, error) {
	if handler == nil {
		return nil, &InvalidArgumentError{Reason: "handler must not be nil"}
	}

	methodSet, err := canonicalizeMethods(methods)
	if err != nil {
		return nil, err
	}

	isNegated, isCustomRegex := false, false
	switch {
	case strings.HasPrefix(rawPath, "!@"):
		isNegated, isCustomRegex = true, true
	case strings.HasPrefix(rawPath, "@"):
		isCustomRegex = true
	case strings.HasPrefix(rawPath, "!"):
		isNegated = true
	}
	isNegatedCustomRegex := isNegated && isCustomRegex

	compiled, err := compilePattern(namespace, rawPath, isNegated, isCustomRegex, cache)
	if err != nil {
		return nil, err
	}

	isDynamic := !isCustomRegex && (strings.Contains(rawPath, "[") || strings.Contains(rawPath, "?"))
	countMatch := rawPath != wildcardSentinel && rawPath != ""

	r := &Route{
		callback:             handler,
		originalPath:         rawPath,
		path:                 compiled.normalizedPath,
		methods:              methodSet,
		isCustomRegex:        isCustomRegex,
		isNegated:            isNegated,
		isNegatedCustomRegex: isNegatedCustomRegex,
		isDynamic:            isDynamic,
		countMatch:           countMatch,
		compiled:             compiled,
		hash:                 atomic.AddUint64(&nextHash, 1),
	}
	return r, nil
}

// canonicalizeMethods upper-cases and validates a caller-supplied method
// list, returning nil for "unset" (matches all methods).
func canonicalizeMethods(methods []string) (map[string]bool, error) {
	if len(methods) == 0 {
		return nil, nil
	}
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if !canonicalMethods[m] {
			return nil, &InvalidArgumentError{Reason: "not a canonical HTTP method: " + m}
		}
		set[m] = true
	}
	return set, nil
}

// matchesMethod implements spec.md §4.3 step 2: unset matches everything, a
// set matches on exact membership, and HEAD additionally matches a route
// filtered to GET (or HEAD).
func (r *Route) matchesMethod(method string) bool {
	if r.methods == nil {
		return true
	}
	if r.methods[method] {
		return true
	}
	if method == "HEAD" && r.methods["GET"] {
		return true
	}
	return false
}

// matchPath implements spec.md §4.3 step 3: the fast paths for the wildcard
// sentinel and for purely literal non-regex routes, a literal-prefix
// pre-filter, and otherwise the compiled matcher.
func (r *Route) matchPath(uri string) (bool, *Params) {
	if r.originalPath == wildcardSentinel {
		return true, nil
	}

	if !r.isDynamic && !r.isCustomRegex {
		// A trailing slash never changes route identity for a literal
		// pattern (spec.md §8 boundary scenario 2: "GET /u" and "GET /u/"
		// against a bare "/" registered under namespace "/u" must hit the
		// same route). Mirrors the teacher's own
		// strings.TrimRight(path, "/") before segment comparison.
		uriTrimmed := strings.TrimRight(stripLeadingSlash(uri), "/")
		pathTrimmed := strings.TrimRight(stripLeadingSlash(r.path), "/")
		if uriTrimmed == pathTrimmed {
			return true, nil
		}
		return false, nil
	}

	if prefix := r.compiled.literalPrefix; prefix != "" {
		if !strings.HasPrefix(stripLeadingSlash(uri), stripLeadingSlash(prefix)) {
			return false, nil
		}
	}

	ok, caps, positional := r.compiled.matcher.match(uri)
	if !ok {
		return false, nil
	}
	if len(caps) == 0 && len(positional) == 0 {
		return true, nil
	}
	params := NewParams()
	for name, value := range caps {
		params.Set(name, value)
	}
	for _, value := range positional {
		params.Append(value)
	}
	return true, params
}

func stripLeadingSlash(s string) string {
	return strings.TrimPrefix(s, "/")
}

// Name returns the route's reverse-routing identifier, or "" if unnamed.
func (r *Route) Name() string { return r.name }

// SetName assigns a reverse-routing identifier to the route. It is the only
// mutation allowed on a Route after construction (spec.md §3).
func (r *Route) SetName(name string) { r.name = name }

// Hash returns the route's stable per-process identity.
func (r *Route) Hash() uint64 { return r.hash }

// OriginalPath returns the pattern exactly as the caller supplied it.
func (r *Route) OriginalPath() string { return r.originalPath }

// Path returns the normalized, namespace-prefixed pattern with sentinel
// markers stripped.
func (r *Route) Path() string { return r.path }

// Methods returns the canonical method names this route is filtered to, or
// nil if it matches every method.
func (r *Route) Methods() []string {
	if r.methods == nil {
		return nil
	}
	out := make([]string, 0, len(r.methods))
	for m := range r.methods {
		out = append(out, m)
	}
	return out
}

// IsDynamic reports whether the route's pattern contains placeholders or an
// optional marker.
func (r *Route) IsDynamic() bool { return r.isDynamic }

// IsCustomRegex reports whether the route was declared with a `@` (or
// `!@`) raw-regex pattern.
func (r *Route) IsCustomRegex() bool { return r.isCustomRegex }

// CountsTowardMatch reports whether a path-wise match by this route counts
// toward suppressing a 404 (false for the wildcard sentinel).
func (r *Route) CountsTowardMatch() bool { return r.countMatch }
