// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

// Package cache provides pattern-compilation caches for waypost's Router,
// keyed by the assembled regex source of a compiled route pattern. A cache
// is advisory: a Router with no cache configured simply compiles every
// pattern directly.
package cache

import (
	"regexp"
	"sync"

	"camlistore.org/pkg/lru"
)

// MemCache is an in-process, goroutine-safe pattern cache backed by an LRU
// of compiled *regexp.Regexp values. It's the right choice for a
// single-host Router: lookups never leave the process, so the compiled
// regex itself can be cached, not just its source.
type MemCache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewMemCache returns a MemCache holding at most maxKeys compiled patterns.
func NewMemCache(maxKeys int) *MemCache {
	return &MemCache{cache: lru.New(maxKeys)}
}

// Get returns the cached regex for source, if present.
func (m *MemCache) Get(source string) (*regexp.Regexp, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.cache.Get(source)
	if !ok {
		return nil, false
	}
	return v.(*regexp.Regexp), true
}

// Put stores re under source, evicting the least-recently-used entry if
// the cache is at capacity.
func (m *MemCache) Put(source string, re *regexp.Regexp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Add(source, re)
}
