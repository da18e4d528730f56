// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"fmt"
	"net/http"
	"sync"
)

// Response wraps http.ResponseWriter with the status/byte-count tracking
// and the lock/append semantics the dispatcher needs (spec.md §4.3 step 5,
// §6.6): a handler's non-error return value is appended to the body unless
// the response is locked, and the body is suppressed entirely for HEAD
// requests since no body is ever sent for them.
type Response struct {
	http.ResponseWriter

	wroteHeader bool
	status      int
	bytes       int
	locked      bool
	suppressed  bool // true for HEAD requests: body writes are silently dropped
}

var responsePool = sync.Pool{
	New: func() interface{} { return new(Response) },
}

func newResponse(w http.ResponseWriter, method string) *Response {
	resp := responsePool.Get().(*Response)
	resp.ResponseWriter = w
	resp.suppressed = method == http.MethodHead
	return resp
}

func (r *Response) free() {
	r.ResponseWriter = nil
	r.wroteHeader = false
	r.status = 0
	r.bytes = 0
	r.locked = false
	r.suppressed = false
	responsePool.Put(r)
}

// WriteHeader sends the status code exactly once; later calls are ignored,
// matching net/http's own WriteHeader contract.
func (r *Response) WriteHeader(code int) {
	if r.wroteHeader {
		return
	}
	r.wroteHeader = true
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Write implements io.Writer, tracking bytes written.
func (r *Response) Write(b []byte) (int, error) {
	if r.suppressed {
		return len(b), nil
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// Status returns the known HTTP status, or http.StatusOK if none has been
// written yet.
func (r *Response) Status() int {
	if !r.wroteHeader {
		return http.StatusOK
	}
	return r.status
}

// Bytes returns the number of body bytes written so far.
func (r *Response) Bytes() int { return r.bytes }

// Locked reports whether the response currently rejects Append calls.
func (r *Response) Locked() bool { return r.locked }

// Lock prevents further Append calls from writing to the body, used around
// HTTP-error handling (spec.md §4.3 "HTTP-error path").
func (r *Response) Lock() { r.locked = true }

// Unlock re-enables Append. Used to restore the pre-error lock state after
// an HTTP-error handler chain runs.
func (r *Response) Unlock() { r.locked = false }

// Append writes the string form of v to the response body, unless the
// response is locked or v stringifies to the empty string (spec.md §4.3
// step 5: "the string form (if non-empty) is appended to the current
// response body. Appending to a locked response is a silent no-op.").
func (r *Response) Append(v interface{}) {
	if r.locked || v == nil {
		return
	}
	s := stringify(v)
	if s == "" {
		return
	}
	r.Write([]byte(s))
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
