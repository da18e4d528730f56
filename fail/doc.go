// Copyright 2017 Codehack. All rights reserved.
// For mobile and web development visit http://codehack.com
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

/*
Package fail turns Go errors into HTTP-status-carrying errors for a router's
dispatch loop. The goal is to let handlers and the dispatcher itself raise a
single error type that already knows how it should be answered.

To use fail, wrap a Go error with ``fail.Cause``. This returns a ``Fail`` that
implements the ``error`` interface, and records the call site for later
inspection via ``Fail.Format``.

A ``Fail`` can be further shaped with methods matching HTTP responses, such as
``fail.NotFound`` and ``fail.NotAllowed``, or built directly for an arbitrary
status with ``fail.New``.

Finally, ``fail.Say`` returns the HTTP status and message to send for any
error, handled or not.
*/
package fail

// Version is the version of this package.
const Version = "0.0.1"
