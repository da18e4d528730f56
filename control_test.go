// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import "testing"

func TestSkipThisIsAControlSignal(t *testing.T) {
	err := SkipThis()
	sig, ok := err.(controlSignal)
	if !ok {
		t.Fatal("SkipThis() must satisfy controlSignal")
	}
	if _, ok := sig.(skipThisSignal); !ok {
		t.Errorf("expected a skipThisSignal, got %T", sig)
	}
}

func TestSkipNextDefaultsToOne(t *testing.T) {
	err := SkipNext()
	sig, ok := err.(skipNextSignal)
	if !ok {
		t.Fatalf("expected skipNextSignal, got %T", err)
	}
	if sig.N != 1 {
		t.Errorf("SkipNext() with no argument should default to 1, got %d", sig.N)
	}
}

func TestSkipNextHonorsExplicitCount(t *testing.T) {
	err := SkipNext(3)
	sig, ok := err.(skipNextSignal)
	if !ok {
		t.Fatalf("expected skipNextSignal, got %T", err)
	}
	if sig.N != 3 {
		t.Errorf("expected N=3, got %d", sig.N)
	}
}

func TestSkipRemainingIsASingletonSignal(t *testing.T) {
	err := SkipRemaining()
	if _, ok := err.(controlSignal); !ok {
		t.Fatal("SkipRemaining() must satisfy controlSignal")
	}
	if _, ok := err.(skipRemainingSignal); !ok {
		t.Errorf("expected a skipRemainingSignal, got %T", err)
	}
}

func TestAbortWithoutCodeIsADispatchHalt(t *testing.T) {
	err := Abort()
	if _, ok := err.(controlSignal); !ok {
		t.Fatal("Abort() with no code must satisfy controlSignal")
	}
	if _, ok := err.(dispatchHaltSignal); !ok {
		t.Errorf("expected a dispatchHaltSignal, got %T", err)
	}
}

func TestAbortWithCodeRaisesAnHTTPError(t *testing.T) {
	err := Abort(404)
	// Abort(code) must NOT satisfy controlSignal: it is a real HTTP error,
	// routed to the HTTP-error path rather than handled as flow control
	// (spec.md §4.4).
	if _, ok := err.(controlSignal); ok {
		t.Fatal("Abort(code) must not be treated as a control signal")
	}
	he, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("expected *HTTPError, got %T", err)
	}
	if he.Status != 404 {
		t.Errorf("expected status 404, got %d", he.Status)
	}
}
