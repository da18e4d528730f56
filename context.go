// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Context bundles the canonical handler argument tuple of spec.md §6.2 --
// (request, response, service, app, router, matched, methodsMatched) -- into
// a single value, per §9's Design Notes ("pass ignored arguments as typed
// context values"). Service and App are opaque, user-supplied references;
// the core never inspects them.
type Context struct {
	context.Context

	Request  *Request
	Response *Response
	Router   *Router

	// Service and App are opaque references passed through as user-supplied
	// context; the core never reads or writes them.
	Service interface{}
	App     interface{}

	// Matched is the set of routes that have already contributed to this
	// request's response (spec.md §3 "matched" per-request state).
	Matched []*Route

	// MethodsMatched is the union of method names from routes that matched
	// path-wise during this request's dispatch.
	MethodsMatched []string

	startTime time.Time
}

var contextPool = sync.Pool{
	New: func() interface{} { return new(Context) },
}

func newContext(parent context.Context, router *Router, req *Request, resp *Response) *Context {
	ctx := contextPool.Get().(*Context)
	ctx.Context = parent
	ctx.Router = router
	ctx.Request = req
	ctx.Response = resp
	ctx.Service = router.service
	ctx.App = router.app
	ctx.startTime = time.Now()
	return ctx
}

func (ctx *Context) free() {
	ctx.Context = nil
	ctx.Request = nil
	ctx.Response = nil
	ctx.Router = nil
	ctx.Service = nil
	ctx.App = nil
	ctx.Matched = nil
	ctx.MethodsMatched = nil
	contextPool.Put(ctx)
}

// Set stores the value of key in the context's k/v tree, shadowing any
// value of the same key inherited from the parent context.Context.
func (ctx *Context) Set(key string, value interface{}) {
	ctx.Context = context.WithValue(ctx.Context, key, value)
}

// Get retrieves the value of key, or nil if it was never Set (and the
// parent context.Context doesn't carry it either).
func (ctx *Context) Get(key string) interface{} {
	return ctx.Context.Value(key)
}

/*
Format implements fmt.Formatter, based on Apache HTTP's CustomLog directive.
This lets a Context have Sprintf verbs for request/response fields. See:
https://httpd.apache.org/docs/2.4/mod/mod_log_config.html#formats

	Verb	Description
	----	---------------------------------------------------

	%%  	Percent sign
	%a  	Client remote address
	%#a 	Proxied client address, or "unknown".
	%b  	Size of response in bytes, excluding headers. Or '-' if zero.
	%h  	Remote hostname (no DNS lookup is performed).
	%m  	Request method
	%q  	Request query string.
	%r  	Request line.
	%#r 	Request line without protocol.
	%s  	Response status code.
	%#s 	Response status code and text.
	%D  	Time elapsed serving the request, in seconds.
	%H  	Request protocol.
	%I  	Bytes received.
	%L  	Request ID.
	%U  	Request path.
*/
func (ctx *Context) Format(f fmt.State, c rune) {
	var str string

	p, pok := f.Precision()
	if !pok {
		p = -1
	}

	req := ctx.Request

	switch c {
	case 'a':
		if f.Flag('#') {
			str = GetRealIP(req.Request)
			break
		}
		str = req.RemoteAddr
	case 'b':
		if ctx.Response.Bytes() == 0 {
			f.Write([]byte{'-'})
			return
		}
		str = strconv.Itoa(ctx.Response.Bytes())
	case 'h':
		str = strings.Split(req.RemoteAddr, ":")[0]
	case 'm':
		str = req.Method
	case 'q':
		str = req.URL.RawQuery
	case 'r':
		str = req.Method + " " + req.URL.RequestURI()
		if f.Flag('#') {
			break
		}
		str += " " + req.Proto
	case 's':
		str = strconv.Itoa(ctx.Response.Status())
		if f.Flag('#') {
			str += " " + http.StatusText(ctx.Response.Status())
		}
	case 'D':
		str = strconv.FormatFloat(time.Since(ctx.startTime).Seconds(), 'f', p, 64)
		pok = false
	case 'H':
		str = req.Proto
	case 'I':
		str = strconv.FormatInt(req.ContentLength, 10)
	case 'L':
		str = req.ID
	case 'U':
		str = req.Pathname
	}
	if pok {
		str = str[:p]
	}
	f.Write([]byte(str))
}
