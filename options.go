// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

// Option configures a Router at construction time.
type Option func(*Router)

// WithLogger replaces the Router's default logger.
func WithLogger(l Logger) Option {
	return func(rt *Router) { rt.logger = l }
}

// WithPatternCache enables advisory regex-compile caching (spec.md §4.1
// "Caching contract"). Use cache.NewMemCache for a single process, or
// cache.NewRedisCache to share a known-good-pattern registry across a
// fleet of Router processes.
func WithPatternCache(c PatternCache) Option {
	return func(rt *Router) { rt.cache = c }
}

// WithService attaches the opaque "service" reference passed through to
// every handler via Context.Service (spec.md §6.2).
func WithService(service interface{}) Option {
	return func(rt *Router) { rt.service = service }
}

// WithApp attaches the opaque "app" reference passed through to every
// handler via Context.App (spec.md §6.2).
func WithApp(app interface{}) Option {
	return func(rt *Router) { rt.app = app }
}
