// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"net/http"
	"testing"
)

func TestRouterRejectsRegistrationAfterFirstDispatch(t *testing.T) {
	rt := NewRouter()
	rt.GET("/a", func(ctx *Context) (interface{}, error) { return "a", nil })

	doRequest(t, rt, "GET", "/a")

	if _, err := rt.Handle([]string{"GET"}, "/b", func(ctx *Context) (interface{}, error) {
		return "b", nil
	}); err == nil {
		t.Fatal("Handle after first dispatch should have failed")
	}
}

func TestRouterGETPanicsOnMalformedPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("GET with an unterminated placeholder should panic")
		}
	}()
	rt := NewRouter()
	rt.GET("/[i:id", func(ctx *Context) (interface{}, error) { return nil, nil })
}

func TestRouterOnErrorChainRunsInOrderUntilHandled(t *testing.T) {
	rt := NewRouter()
	rt.GET("/boom", func(ctx *Context) (interface{}, error) {
		return nil, NewHTTPError(http.StatusTeapot, "teapot")
	})

	var tried []string
	rt.OnError(func(ctx *Context, code int, cause error) (interface{}, error) {
		tried = append(tried, "first")
		return nil, cause
	})
	rt.OnError(func(ctx *Context, code int, cause error) (interface{}, error) {
		tried = append(tried, "second")
		return "handled", nil
	})
	rt.OnError(func(ctx *Context, code int, cause error) (interface{}, error) {
		tried = append(tried, "third")
		return "unreached", nil
	})

	rec := doRequest(t, rt, "GET", "/boom")
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if rec.Body.String() != "handled" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "handled")
	}
	if joinComma(tried) != "first,second" {
		t.Errorf("handler chain ran %q, want it to stop once a handler declines to re-raise", joinComma(tried))
	}
}

func TestRouterAfterDispatchChainRunsInFIFOOrder(t *testing.T) {
	rt := NewRouter()
	rt.GET("/x", func(ctx *Context) (interface{}, error) { return "x", nil })

	rt.After(func(ctx *Context) (interface{}, error) {
		ctx.Response.Append("-first")
		return nil, nil
	})
	rt.After(func(ctx *Context) (interface{}, error) {
		ctx.Response.Append("-second")
		return nil, nil
	})

	rec := doRequest(t, rt, "GET", "/x")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "x-first-second" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "x-first-second")
	}
}

func TestRouterPathForUnknownNameReturnsError(t *testing.T) {
	rt := NewRouter()
	rt.GET("/named", func(ctx *Context) (interface{}, error) { return nil, nil })

	if _, err := rt.PathFor("does-not-exist", nil); err == nil {
		t.Fatal("PathFor with an unregistered name should return an error")
	}
}

func TestRouterPathForRoundTripsThroughNamedRoute(t *testing.T) {
	rt := NewRouter()
	r, err := rt.Handle([]string{"GET"}, "/posts/[i:id]", func(ctx *Context) (interface{}, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	r.SetName("post-detail")

	got, err := rt.PathFor("post-detail", map[string]string{"id": "9"})
	if err != nil {
		t.Fatal(err)
	}
	if got != "/posts/9" {
		t.Fatalf("PathFor = %q, want %q", got, "/posts/9")
	}
}
