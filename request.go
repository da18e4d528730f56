// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"net/http"
	"sync"
)

// Request is an enhanced view of http.Request carrying the path parameters
// captured by the dispatcher and the per-request shared-data bag (spec.md
// §3 "Parameter capture", §9 "dynamic magic accessors on the shared-data
// bag").
type Request struct {
	// Request points to the http.Request information for this request.
	*http.Request

	// Pathname is the request's URL path, with no query string, as tested
	// against route patterns (spec.md §4.3 "Inputs from collaborators").
	// It is the escaped form (r.URL.EscapedPath()), not net/http's decoded
	// r.URL.Path: decoding early would fold a literal "%2F" into a path
	// separator before placeholder captures ever see it, which §4.3 step 5
	// and the percent-decoding scenario in §8 both require to survive intact
	// until a matched capture is decoded on its own.
	Pathname string

	// Params holds the named and positional captures from the route that
	// matched this request.
	Params *Params

	// Shared is the string-keyed bag external collaborators may use to pass
	// data down the handler chain.
	Shared *SharedData

	// ID is this request's trace identifier.
	ID string
}

// requestPool allows us to reuse Request objects to conserve resources.
var requestPool = sync.Pool{
	New: func() interface{} { return new(Request) },
}

// newRequest returns a new Request object wrapping r.
func newRequest(r *http.Request) *Request {
	req := requestPool.Get().(*Request)
	req.Request = r
	req.Pathname = r.URL.EscapedPath()
	req.Params = NewParams()
	req.Shared = newSharedData()
	req.ID = NewRequestID(r.Header.Get("X-Request-Id"))

	// this little hack to make net/url work with full URLs.
	// net/http doesn't fill these for server requests, but we need them.
	if req.URL.Scheme == "" {
		req.URL.Scheme = "http"
		if req.TLS != nil {
			req.URL.Scheme += "s"
		}
	}
	if req.URL.Host == "" {
		req.URL.Host = req.Host
	}

	return req
}

// free frees a Request object back to requestPool for later (re-)use.
func (req *Request) free() {
	req.Request = nil
	req.Pathname = ""
	req.Params = nil
	req.Shared.free()
	req.Shared = nil
	req.ID = ""
	requestPool.Put(req)
}

// BaseURI returns the absolute base URI of this request.
func (req *Request) BaseURI() string {
	u := req.URL.ResolveReference(req.URL)
	return u.String()
}
