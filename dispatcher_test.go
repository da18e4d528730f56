// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func doRequest(t *testing.T, rt *Router, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func TestDispatchTypedPlaceholderAgesMatch(t *testing.T) {
	rt := NewRouter()
	rt.GET("/[i:age]", func(ctx *Context) (interface{}, error) {
		return "age=" + ctx.Request.Params.Get("age"), nil
	})

	rec := doRequest(t, rt, "GET", "/42")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /42 status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "age=42" {
		t.Errorf("GET /42 body = %q, want %q", rec.Body.String(), "age=42")
	}

	rec = doRequest(t, rt, "GET", "/notanumber")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /notanumber status = %d, want 404", rec.Code)
	}
}

// TestDispatchUnnamedPlaceholderCapturesPositionally guards spec.md §3's
// "numeric-indexed captures (unnamed groups) are appended positionally":
// a typed but unnamed placeholder like [i] compiles to an unnamed capturing
// group, and its value must still reach the handler, just by index rather
// than by name.
func TestDispatchUnnamedPlaceholderCapturesPositionally(t *testing.T) {
	rt := NewRouter()
	rt.GET("/[i]", func(ctx *Context) (interface{}, error) {
		return "idx0=" + ctx.Request.Params.Index(0), nil
	})

	rec := doRequest(t, rt, "GET", "/7")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /7 status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "idx0=7" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "idx0=7")
	}
}

func TestDispatchNamespaceAndHeadFallsBackToGet(t *testing.T) {
	rt := NewRouter()
	g := rt.Group("/admin")
	g.GET("/dashboard", func(ctx *Context) (interface{}, error) {
		return "dashboard", nil
	})

	rec := doRequest(t, rt, "HEAD", "/admin/dashboard")
	if rec.Code != http.StatusOK {
		t.Fatalf("HEAD /admin/dashboard status = %d, want 200", rec.Code)
	}
	// HEAD never carries a body, even though the handler appended one.
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD response body = %q, want empty", rec.Body.String())
	}
}

// TestDispatchNamespacedPlaceholderMatches guards against a regression where
// a Group-prefixed dynamic route's literal-prefix pre-filter was computed
// from the bare, un-namespaced pattern and tested against the full
// (namespaced) request path, so it could never match.
func TestDispatchNamespacedPlaceholderMatches(t *testing.T) {
	rt := NewRouter()
	g := rt.Group("/admin")
	g.GET("/users/[i:id]", func(ctx *Context) (interface{}, error) {
		return "user=" + ctx.Request.Params.Get("id"), nil
	})

	rec := doRequest(t, rt, "GET", "/admin/users/7")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /admin/users/7 status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "user=7" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "user=7")
	}

	rec = doRequest(t, rt, "GET", "/users/7")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /users/7 (without namespace) status = %d, want 404", rec.Code)
	}
}

// TestDispatchNamespaceRootToleratesTrailingSlash encodes spec.md §8
// boundary scenario 2: a bare "/" registered under a namespace must answer
// both the namespace path with and without a trailing slash.
func TestDispatchNamespaceRootToleratesTrailingSlash(t *testing.T) {
	rt := NewRouter()
	g := rt.Group("/u")
	g.GET("/", func(ctx *Context) (interface{}, error) {
		return "root", nil
	})

	rec := doRequest(t, rt, "HEAD", "/u")
	if rec.Code != http.StatusOK {
		t.Fatalf("HEAD /u status = %d, want 200", rec.Code)
	}

	rec = doRequest(t, rt, "GET", "/u/")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /u/ status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "root" {
		t.Errorf("GET /u/ body = %q, want %q", rec.Body.String(), "root")
	}
}

// TestDispatchSkipSignalStillCountsAsMatched guards against a regression
// where a route whose handler legitimately matched but raised SkipNext or
// SkipRemaining (after writing its own response via ctx.Response.Append)
// was never added to matched, so a sole-candidate route serving a request
// this way would wrongly 405 after the loop ended.
func TestDispatchSkipSignalStillCountsAsMatched(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"skipNext", SkipNext()},
		{"skipRemaining", SkipRemaining()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rt := NewRouter()
			rt.GET("/only", func(ctx *Context) (interface{}, error) {
				ctx.Response.Append("ok")
				return nil, c.err
			})

			rec := doRequest(t, rt, "GET", "/only")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (got a 405 means the route wasn't counted as matched)", rec.Code)
			}
			if rec.Body.String() != "ok" {
				t.Errorf("body = %q, want %q", rec.Body.String(), "ok")
			}
		})
	}
}

func TestDispatch405CarriesAllowHeaderAndOptionsSucceeds(t *testing.T) {
	rt := NewRouter()
	rt.GET("/widgets", func(ctx *Context) (interface{}, error) { return "get", nil })
	rt.POST("/widgets", func(ctx *Context) (interface{}, error) { return "post", nil })

	rec := doRequest(t, rt, "DELETE", "/widgets")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("DELETE /widgets status = %d, want 405", rec.Code)
	}
	allow := rec.Header().Get("Allow")
	if !containsAll(allow, "GET", "POST") {
		t.Errorf("Allow header = %q, want it to list GET and POST", allow)
	}

	rec = doRequest(t, rt, "OPTIONS", "/widgets")
	if rec.Code == http.StatusMethodNotAllowed {
		t.Fatal("OPTIONS against a path with matching methods must not 405")
	}
	allow = rec.Header().Get("Allow")
	if !containsAll(allow, "GET", "POST") {
		t.Errorf("OPTIONS Allow header = %q, want it to list GET and POST", allow)
	}
}

func TestDispatchPercentDecodingSurvivesUntilCapture(t *testing.T) {
	rt := NewRouter()
	rt.GET("/[:test]", func(ctx *Context) (interface{}, error) {
		return ctx.Request.Params.Get("test"), nil
	})

	rec := doRequest(t, rt, "GET", "/and%2For")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "and/or" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "and/or")
	}
}

func TestDispatchPlusIsNotFoldedToSpace(t *testing.T) {
	rt := NewRouter()
	rt.GET("/[:test]", func(ctx *Context) (interface{}, error) {
		return ctx.Request.Params.Get("test"), nil
	})

	rec := doRequest(t, rt, "GET", "/Knife+Party")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "Knife+Party" {
		t.Errorf("body = %q, want %q (literal plus, not folded to space)", rec.Body.String(), "Knife+Party")
	}
}

// TestDispatchFlowControlSkipSequence encodes spec.md §8 scenario 5 exactly:
// ten handlers A..J each echo their own letter; A calls skipThis (abandoning
// its own contribution instead of echoing), B calls skipNext(1), D calls
// skipNext(2), H calls skipRemaining. A handler that both echoes and raises
// a control signal must append to the response directly -- the dispatcher
// only appends a handler's return value along its error-free path, so any
// handler returning a control signal has its return value ignored.
func TestDispatchFlowControlSkipSequence(t *testing.T) {
	rt := NewRouter()
	var invoked []string

	echo := func(letter string) HandlerFunc {
		return func(ctx *Context) (interface{}, error) {
			invoked = append(invoked, letter)
			return letter, nil
		}
	}

	rt.Any("/x", func(ctx *Context) (interface{}, error) {
		invoked = append(invoked, "A")
		return nil, SkipThis()
	})
	rt.Any("/x", func(ctx *Context) (interface{}, error) {
		invoked = append(invoked, "B")
		ctx.Response.Append("B")
		return nil, SkipNext(1)
	})
	rt.Any("/x", echo("C"))
	rt.Any("/x", func(ctx *Context) (interface{}, error) {
		invoked = append(invoked, "D")
		ctx.Response.Append("D")
		return nil, SkipNext(2)
	})
	rt.Any("/x", echo("E"))
	rt.Any("/x", echo("F"))
	rt.Any("/x", echo("G"))
	rt.Any("/x", func(ctx *Context) (interface{}, error) {
		invoked = append(invoked, "H")
		ctx.Response.Append("H")
		return nil, SkipRemaining()
	})
	rt.Any("/x", echo("I"))
	rt.Any("/x", echo("J"))

	rec := doRequest(t, rt, "GET", "/x")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	wantInvoked := "A,B,D,G,H"
	gotInvoked := joinComma(invoked)
	if gotInvoked != wantInvoked {
		t.Fatalf("handler invocation order = %q, want %q", gotInvoked, wantInvoked)
	}
	if rec.Body.String() != "BDGH" {
		t.Errorf("response body = %q, want %q", rec.Body.String(), "BDGH")
	}
}

func containsAll(haystack string, needles ...string) bool {
	for _, n := range needles {
		if !strings.Contains(haystack, n) {
			return false
		}
	}
	return true
}

func joinComma(ss []string) string {
	return strings.Join(ss, ",")
}
