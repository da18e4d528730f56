// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"net/http"
	"strings"
)

// IsRequestSSL returns true if the request 'r' is done via SSL/TLS.
// SSL status is guessed from the value of Request.TLS, falling back to the
// X-Forwarded-Proto header in case the request is proxied.
func IsRequestSSL(r *http.Request) bool {
	return r.TLS != nil || r.URL.Scheme == "https" || r.Header.Get("X-Forwarded-Proto") == "https"
}

// GetRealIP returns the client address if the request is proxied. This is a
// best-guess based on headers: Forwarded, X-Forwarded-For and X-Real-IP, in
// that order. Returns "unknown" if none are present.
func GetRealIP(r *http.Request) string {
	// See http://tools.ietf.org/html/rfc7239
	if v := r.Header.Get("Forwarded"); v != "" {
		values := strings.Split(v, ",")
		if strings.HasPrefix(values[0], "for=") {
			value := strings.Trim(values[0][4:], `"][`)
			if value != "" && value[0] != '_' {
				return value
			}
		}
	}

	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		values := strings.Split(v, ", ")
		if values[0] != "unknown" {
			return values[0]
		}
	}

	if v := r.Header.Get("X-Real-IP"); v != "" {
		return v
	}

	return "unknown"
}
