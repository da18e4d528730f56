// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import "strings"

// pathFor implements spec.md §6.4's reverse-routing substitution: walk the
// route's pathParts, replacing each placeholder block with its pre-encoded
// param value (preserving the block's prefix character), erasing optional
// blocks with no value, and leaving required blocks with no value as their
// original literal placeholder syntax.
func pathFor(r *Route, params map[string]string, flatten bool) (string, error) {
	if r.isCustomRegex {
		if flatten {
			return "/", nil
		}
		return r.originalPath, nil
	}

	if r.compiled.parts == nil {
		return ensureLeadingSlash(r.path), nil
	}

	var sb strings.Builder
	for _, p := range r.compiled.parts {
		if !p.IsPlace {
			sb.WriteString(p.Literal)
			continue
		}

		if p.Name != "" {
			if value, ok := params[p.Name]; ok {
				sb.WriteString(p.Prefix)
				sb.WriteString(value)
				continue
			}
		}

		if p.Optional {
			continue
		}
		sb.WriteString(p.Prefix)
		sb.WriteString(p.Original)
	}

	return ensureLeadingSlash(sb.String()), nil
}

func ensureLeadingSlash(s string) string {
	if s == "" || s == wildcardSentinel || strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}
