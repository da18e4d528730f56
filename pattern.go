// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import (
	"fmt"
	"regexp"
	"strings"
)

// wildcardSentinel is the special pattern that matches any path.
const wildcardSentinel = "*"

// metaStarters is the set of characters that end a literal prefix, per
// spec.md §4.2 step 2 and §4.3 step 3 ("same rule as C3").
const metaStarters = "[(.?+*{}"

// placeholderTypes expands a placeholder's type token to a regex fragment.
// "" (empty type, as in "[:name]") and unrecognized tokens ("anything
// else", used verbatim as a raw sub-regex) are handled by the caller.
var placeholderTypes = map[string]string{
	"i":  `[0-9]+`,
	"a":  `[0-9A-Za-z]+`,
	"h":  `[0-9A-Fa-f]+`,
	"s":  `[0-9A-Za-z_-]+`,
	"*":  `.+?`,
	"**": `.+`,
}

// pathPart describes one piece of a compiled, non-custom-regex pattern, in
// source order. Literal parts have Literal set; placeholder parts describe
// enough to drive reverse routing (pathFor).
type pathPart struct {
	Literal  string
	IsPlace  bool
	Prefix   string // the "/" or "." swallowed ahead of the placeholder, if any
	Name     string // capture name, "" if unnamed
	Optional bool
	Original string // "[type:name]" or "[type:name]?" exactly as written, placeholders only
}

// matcher abstracts over a compiled pattern. Most routes are a single
// anchored *regexp.Regexp; namespaced negated-custom-regex routes need a
// prefix+negative-lookahead shape that Go's RE2 engine cannot express
// directly (no lookahead support), so they get a small composite matcher
// instead. See DESIGN.md for the rationale.
type matcher interface {
	// match reports whether s matches, its named captures, and its unnamed
	// (positional) captures in left-to-right group order, if so.
	match(s string) (bool, map[string]string, []string)
	// String returns a human-readable form of the matcher, for diagnostics.
	String() string
}

// regexMatcher is the common case: a single anchored regular expression.
type regexMatcher struct{ re *regexp.Regexp }

func (m *regexMatcher) match(s string) (bool, map[string]string, []string) {
	sub := m.re.FindStringSubmatch(s)
	if sub == nil {
		return false, nil, nil
	}
	names := m.re.SubexpNames()
	caps := make(map[string]string)
	var positional []string
	for i, name := range names {
		if i == 0 {
			continue
		}
		if name == "" {
			positional = append(positional, sub[i])
			continue
		}
		caps[name] = sub[i]
	}
	return true, caps, positional
}

func (m *regexMatcher) String() string { return m.re.String() }

// negativeLookaheadMatcher implements "^<ns>(?!<body>)" without relying on
// lookahead: the string must start with ns, and the remainder must NOT be
// matched by body (anchored at the start of the remainder).
type negativeLookaheadMatcher struct {
	ns   string
	body *regexp.Regexp
}

func (m *negativeLookaheadMatcher) match(s string) (bool, map[string]string, []string) {
	if !strings.HasPrefix(s, m.ns) {
		return false, nil, nil
	}
	rest := s[len(m.ns):]
	if m.body.MatchString(rest) {
		return false, nil, nil
	}
	return true, nil, nil
}

func (m *negativeLookaheadMatcher) String() string {
	return fmt.Sprintf("^%s(?!%s)", m.ns, m.body.String())
}

// compiledPattern is the output of the Pattern Compiler (C1): everything a
// Route needs to test and reverse-route a pattern.
type compiledPattern struct {
	normalizedPath string
	literalPrefix  string
	matcher        matcher
	parts          []pathPart // nil for custom-regex patterns
	negationBaked  bool       // true if the matcher already accounts for isNegated
}

// PatternCache lets a Router short-circuit regex compilation for patterns it
// has already seen, keyed by the assembled regex source (spec.md §4.1
// "Caching contract": advisory only, correctness must never depend on it).
// cache.MemCache and cache.RedisCache both satisfy it.
type PatternCache interface {
	Get(source string) (*regexp.Regexp, bool)
	Put(source string, re *regexp.Regexp)
}

// cachedCompile compiles source, consulting cache first when one is given.
func cachedCompile(cache PatternCache, source string) (*regexp.Regexp, error) {
	if cache != nil {
		if re, ok := cache.Get(source); ok {
			return re, nil
		}
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		cache.Put(source, re)
	}
	return re, nil
}

// compilePattern implements spec.md §4.1: turning a namespace + user path +
// derived flags into a normalized path and compiled matcher. cache may be
// nil, in which case every call compiles directly.
func compilePattern(namespace, rawPath string, isNegated, isCustomRegex bool, cache PatternCache) (*compiledPattern, error) {
	body := stripMarkers(rawPath, isNegated, isCustomRegex)

	if rawPath == wildcardSentinel {
		return compileWildcard(namespace, cache)
	}

	if isCustomRegex {
		return compileCustomRegex(namespace, body, isNegated, cache)
	}

	return compilePlaceholders(namespace, body, cache)
}

// stripMarkers removes the leading "!", "@" or "!@" sentinel characters,
// already reflected in isNegated/isCustomRegex, from rawPath.
func stripMarkers(rawPath string, isNegated, isCustomRegex bool) string {
	switch {
	case isNegated && isCustomRegex:
		return rawPath[2:] // "!@"
	case isCustomRegex:
		return rawPath[1:] // "@"
	case isNegated:
		return rawPath[1:] // "!"
	}
	return rawPath
}

func compileWildcard(namespace string, cache PatternCache) (*compiledPattern, error) {
	if namespace == "" {
		re, err := cachedCompile(cache, `^.*$`)
		if err != nil {
			return nil, err
		}
		return &compiledPattern{normalizedPath: wildcardSentinel, literalPrefix: "", matcher: &regexMatcher{re}}, nil
	}
	re, err := cachedCompile(cache, "^"+regexp.QuoteMeta(namespace)+"(/|$)")
	if err != nil {
		return nil, err
	}
	return &compiledPattern{normalizedPath: namespace + wildcardSentinel, literalPrefix: "", matcher: &regexMatcher{re}}, nil
}

func compileCustomRegex(namespace, body string, isNegated bool, cache PatternCache) (*compiledPattern, error) {
	if namespace == "" {
		re, err := cachedCompile(cache, body)
		if err != nil {
			return nil, &PatternCompilationError{Pattern: body, Err: err}
		}
		return &compiledPattern{normalizedPath: body, literalPrefix: "", matcher: &regexMatcher{re}, negationBaked: false}, nil
	}

	body2 := body
	if strings.HasPrefix(body, "^") {
		body2 = body[1:]
	} else {
		body2 = ".*" + body
	}

	nsQuoted := regexp.QuoteMeta(namespace)

	if !isNegated {
		re, err := cachedCompile(cache, "^"+nsQuoted+body2)
		if err != nil {
			return nil, &PatternCompilationError{Pattern: body, Err: err}
		}
		return &compiledPattern{normalizedPath: namespace + body, literalPrefix: "", matcher: &regexMatcher{re}, negationBaked: false}, nil
	}

	bodyRe, err := cachedCompile(cache, "^(?:"+body2+")")
	if err != nil {
		return nil, &PatternCompilationError{Pattern: body, Err: err}
	}
	return &compiledPattern{
		normalizedPath: namespace + body,
		literalPrefix:  "",
		matcher:        &negativeLookaheadMatcher{ns: namespace, body: bodyRe},
		negationBaked:  true,
	}, nil
}

// compilePlaceholders handles the plain concatenation case: "<ns><path>",
// expanding [<type>:<name>] style placeholder blocks along the way.
//
// Parsing happens in two passes: first the raw path is split into literal
// and placeholder pathParts (swallowing a trailing "/" or "." literal byte
// into the following placeholder's prefix, unescaped); then the regex
// source is assembled from those parts. Keeping the passes separate avoids
// having to reason about escaped byte lengths (regexp.QuoteMeta turns "."
// into the two bytes "\.") when un-appending a prefix character.
func compilePlaceholders(namespace, body string, cache PatternCache) (*compiledPattern, error) {
	normalized := namespace + body

	var parts []pathPart
	if namespace != "" {
		parts = append(parts, pathPart{Literal: namespace})
	}

	i := 0
	for i < len(body) {
		if body[i] == '[' {
			end := strings.IndexByte(body[i:], ']')
			if end < 0 {
				return nil, &PatternCompilationError{Pattern: normalized, Err: fmt.Errorf("unterminated placeholder starting at %d", i)}
			}
			end += i
			content := body[i+1 : end]
			k := end + 1
			optional := false
			if k < len(body) && body[k] == '?' {
				optional = true
				k++
			}

			prefix := ""
			if n := len(parts); n > 0 && parts[n-1].Literal != "" {
				lit := parts[n-1].Literal
				last := lit[len(lit)-1:]
				if last == "/" || last == "." {
					prefix = last
					parts[n-1].Literal = lit[:len(lit)-1]
				}
			}

			name, frag := expandPlaceholder(content)
			original := body[i:k]
			parts = append(parts, pathPart{IsPlace: true, Prefix: prefix, Name: name, Optional: optional, Literal: frag, Original: original})

			i = k
			continue
		}

		j := strings.IndexByte(body[i:], '[')
		var lit string
		if j < 0 {
			lit = body[i:]
			i = len(body)
		} else {
			lit = body[i : i+j]
			i += j
		}
		parts = append(parts, pathPart{Literal: lit})
	}

	var sb strings.Builder
	for _, p := range parts {
		if !p.IsPlace {
			sb.WriteString(regexp.QuoteMeta(p.Literal))
			continue
		}
		group := fmt.Sprintf("(%s)", p.Literal)
		if p.Name != "" {
			group = fmt.Sprintf("(?P<%s>%s)", p.Name, p.Literal)
		}
		wrapped := fmt.Sprintf("(?:%s%s)", regexp.QuoteMeta(p.Prefix), group)
		if p.Optional {
			wrapped += "?"
		}
		sb.WriteString(wrapped)
	}

	re, err := cachedCompile(cache, "^"+sb.String()+"$")
	if err != nil {
		return nil, &PatternCompilationError{Pattern: normalized, Err: err}
	}

	return &compiledPattern{
		normalizedPath: normalized,
		literalPrefix:  literalPrefix(normalized),
		matcher:        &regexMatcher{re},
		parts:          parts,
	}, nil
}

// expandPlaceholder parses one "[...]" block's inner content (without the
// brackets) into a capture name (possibly empty) and a regex fragment, per
// the type-alias table in spec.md §4.1.
func expandPlaceholder(content string) (name, frag string) {
	if idx := strings.IndexByte(content, ':'); idx >= 0 {
		typeTok := content[:idx]
		name = content[idx+1:]
		frag = expandType(typeTok)
		return name, frag
	}
	// No colon: the whole token is a type (possibly unrecognized, in which
	// case it's used verbatim as a raw sub-regex); there is no capture name.
	return "", expandType(content)
}

func expandType(tok string) string {
	if tok == "" {
		return `[^/]+?`
	}
	if frag, ok := placeholderTypes[tok]; ok {
		return frag
	}
	return tok
}

// literalPrefix implements the shared rule used by both the Route Index
// (spec.md §4.2 step 2) and the Dispatcher's path-test pre-filter
// (spec.md §4.3 step 3): split on the first occurrence of any regex-meta
// starter character, keep the part before it.
func literalPrefix(path string) string {
	if idx := strings.IndexAny(path, metaStarters); idx >= 0 {
		return path[:idx]
	}
	return path
}
