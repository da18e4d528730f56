// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package waypost

import "github.com/codehack/go-environ"

// SharedData is the per-request, string-keyed key/value bag external
// collaborators may use to pass information down the handler chain (spec.md
// §9, "Dynamic 'magic' accessors on the shared-data bag ... treat as a
// string-keyed mapping with explicit get/set/exists/remove"). It is backed
// by the same environ.Env the teacher's Request.Info field used to stash
// per-request data gathered by its filter chain.
type SharedData struct {
	env *environ.Env

	// keys tracks which names have been explicitly Set, so Exists/Remove
	// don't have to guess at environ.Env methods beyond the Get/Set/Free
	// the teacher's own call sites (ctx.Info.Get/.Set/.Free) confirm exist.
	keys map[string]bool
}

func newSharedData() *SharedData {
	return &SharedData{env: environ.NewEnv(), keys: make(map[string]bool)}
}

// free releases the underlying environ.Env back to its pool, mirroring
// Request.free's call to Info.Free in the teacher.
func (d *SharedData) free() {
	d.env.Free()
	d.env = nil
	d.keys = nil
}

// Set stores value under key.
func (d *SharedData) Set(key, value string) {
	d.env.Set(key, value)
	d.keys[key] = true
}

// Get returns the value stored under key, or "" if absent.
func (d *SharedData) Get(key string) string {
	return d.env.Get(key)
}

// Exists reports whether key has a stored value.
func (d *SharedData) Exists(key string) bool {
	return d.keys[key]
}

// Remove deletes key from the bag.
func (d *SharedData) Remove(key string) {
	d.env.Set(key, "")
	delete(d.keys, key)
}
