// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import uuid "github.com/satori/go.uuid"

// NewRequestID returns a new request ID based on a v4 UUID, or validates an
// id the caller already has in hand for reuse as a request ID. A valid id
// must be 20-200 chars of URL-safe characters; anything else is replaced
// with a freshly generated UUID.
func NewRequestID(id string) string {
	if len(id) < 20 || len(id) > 200 {
		return uuid.NewV4().String()
	}

	for _, c := range id {
		switch {
		case 'A' <= c && c <= 'Z':
		case 'a' <= c && c <= 'z':
		case '0' <= c && c <= '9':
		case c == '-', c == '_', c == '.', c == '~', c == '%', c == '+':
		default:
			return uuid.NewV4().String()
		}
	}
	return id
}
