// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"fmt"
	"testing"
)

func mustRoute(t *testing.T, path string) *Route {
	t.Helper()
	r, err := newRoute("", path, nil, noopHandler, nil)
	if err != nil {
		t.Fatalf("newRoute(%q): %v", path, err)
	}
	return r
}

func TestIndexFindsRouteAtExactPrefix(t *testing.T) {
	idx := newRouteIndex()
	r := mustRoute(t, "/posts/[i:id]")
	idx.add(r)

	found := idx.findPossibleRoutes("/posts/42")
	if _, ok := found[r.hash]; !ok {
		t.Fatalf("expected route to be a candidate for /posts/42, got %v", found)
	}
}

func TestIndexAncestorAliasingReachesDescendant(t *testing.T) {
	idx := newRouteIndex()
	r := mustRoute(t, "/posts/comments/[i:id]")
	idx.add(r)

	// /posts and / are both proper ancestors of /posts/comments; either
	// should reach the route via the aliasing walk (spec.md §4.2 edge
	// cases: "Root route / is the degenerate ancestor").
	for _, uri := range []string{"/posts", "/"} {
		found := idx.findPossibleRoutes(uri)
		if _, ok := found[r.hash]; !ok {
			t.Errorf("expected ancestor lookup at %q to reach the route, got %v", uri, found)
		}
	}
}

func TestIndexCatchAllForCustomRegexAndEmptyPrefix(t *testing.T) {
	idx := newRouteIndex()
	custom := mustRoute(t, "@^/anywhere$")
	wildcard := mustRoute(t, "*")
	idx.add(custom)
	idx.add(wildcard)

	all := idx.catchAllRoutes()
	if _, ok := all[custom.hash]; !ok {
		t.Error("custom-regex route should live in the catch-all bucket")
	}
	if _, ok := all[wildcard.hash]; !ok {
		t.Error("wildcard sentinel route should live in the catch-all bucket")
	}

	// findPossibleRoutes never returns catch-all routes on its own; the
	// dispatcher unions them in separately (spec.md §4.3 "Loop").
	found := idx.findPossibleRoutes("/anywhere")
	if _, ok := found[custom.hash]; ok {
		t.Error("findPossibleRoutes should not surface catch-all routes directly")
	}
}

func TestIndexTwoRoutesShareBucket(t *testing.T) {
	idx := newRouteIndex()
	r1 := mustRoute(t, "/posts/[i:id]")
	r2 := mustRoute(t, "/posts/[s:slug]")
	idx.add(r1)
	idx.add(r2)

	found := idx.findPossibleRoutes("/posts/hello")
	if _, ok := found[r1.hash]; !ok {
		t.Error("expected r1 in the candidate set")
	}
	if _, ok := found[r2.hash]; !ok {
		t.Error("expected r2 in the candidate set")
	}
}

func TestIndexLongestPrefixWinsAndNarrowsCandidates(t *testing.T) {
	idx := newRouteIndex()
	broad := mustRoute(t, "/posts/[i:id]")
	narrow := mustRoute(t, "/posts/comments/[i:id]")
	idx.add(broad)
	idx.add(narrow)

	found := idx.findPossibleRoutes("/posts/comments/7")
	// The longest matching bucket ("/posts/comments") is visited first and
	// is non-empty, so the walk stops there. References only run from an
	// ancestor bucket to its descendants ("/posts" links into
	// "/posts/comments", not the other way), so the broader "/posts" route
	// is not in this result set. The key invariant under test is
	// selectivity: unrelated prefixes are excluded.
	if _, ok := found[narrow.hash]; !ok {
		t.Error("expected the exact-prefix route to be a candidate")
	}

	unrelated := mustRoute(t, "/users/[i:id]")
	idx.add(unrelated)
	found2 := idx.findPossibleRoutes("/posts/comments/7")
	if _, ok := found2[unrelated.hash]; ok {
		t.Error("unrelated literal prefix must not appear as a candidate")
	}
}

func TestIndexRadixSelectivityAtScale(t *testing.T) {
	idx := newRouteIndex()
	routes := make(map[string]*Route)
	n := 0
	for a := 0; a < 10; a++ {
		for b := 0; b < 10; b++ {
			for c := 0; c < 15; c++ {
				path := fmt.Sprintf("/seg%d/seg%d/leaf%d", a, b, c)
				r := mustRoute(t, path)
				idx.add(r)
				routes[path] = r
				n++
				if n >= 1500 {
					goto done
				}
			}
		}
	}
done:
	if n < 1500 {
		t.Fatalf("test setup produced only %d routes, want 1500", n)
	}

	for path, r := range routes {
		found := idx.findPossibleRoutes(path)
		if _, ok := found[r.hash]; !ok {
			t.Fatalf("findPossibleRoutes(%q) did not return the registered route", path)
		}
		if len(found) > n {
			t.Fatalf("candidate set for %q (%d) exceeds total route count (%d)", path, len(found), n)
		}
	}
}
