// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package diskcache memoizes archive resource lookups in front of
// jimage.Archive.ByName. A real module image's path-verification pass
// (jimage's verifyPath) is cheap in isolation but repeated lookups of the
// same hot class path (a JVM classloader resolving the same few hundred
// platform classes over and over) add up; this package trades a small
// amount of memory for skipping both the hash and the verification on a
// repeat query. It never substitutes for jimage's own FNV-based index
// hash — that algorithm is part of the archive's on-disk contract and
// lives in jimage/hash.go unchanged. This package's hash is purely an
// in-memory map key and could be swapped for any other digest without
// affecting a single decoded byte.
package diskcache

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/saferwall/javaclass/jimage"
)

type entry struct {
	resource jimage.Resource
	hit      bool
}

// Cache wraps an *jimage.Archive, memoizing ByName results keyed by the
// xxHash64 of the query path. Safe for concurrent use: the archive is
// immutable once parsed, and the cache adds only a read-mostly mutex over
// its own map.
type Cache struct {
	archive *jimage.Archive
	mu      sync.RWMutex
	entries map[uint64]entry
}

// New wraps archive with a lookup cache.
func New(archive *jimage.Archive) *Cache {
	return &Cache{archive: archive, entries: make(map[uint64]entry)}
}

// ByName returns archive.ByName(path), memoized.
func (c *Cache) ByName(path string) (jimage.Resource, bool) {
	key := xxhash.Sum64String(path)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return e.resource, e.hit
	}

	r, hit := c.archive.ByName(path)

	c.mu.Lock()
	c.entries[key] = entry{resource: r, hit: hit}
	c.mu.Unlock()

	return r, hit
}

// Len reports the number of distinct paths memoized so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
