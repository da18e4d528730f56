// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

/*
Package waypost is an HTTP request router: given a stream of requests, it
selects and executes the handler of every route that matches, in
registration order, extracting typed path parameters along the way.

Routes are registered with literal paths, typed placeholders, optional
segments, custom regular expressions, and negation:

	rt := waypost.NewRouter()
	rt.GET("/users/[i:id]", showUser)
	rt.GET("/users/[i:id]/posts/[s:slug]?", showUserPost)
	rt.Any("!/admin", denyAdmin)

A Route Index narrows the candidate set for a given URI using a radix-style
literal-prefix structure before any pattern is tested; the Dispatcher then
walks registration order, applying method filtering, pattern matching,
percent-decoding, flow control (SkipThis, SkipNext, SkipRemaining, Abort),
and HTTP error semantics (404, 405 with Allow, OPTIONS).

waypost is meant to be used along "net/http.ServeMux", but works as a
replacement since *Router implements http.Handler.
*/
package waypost

// Version is the version of this package.
const Version = "1.0.0"
