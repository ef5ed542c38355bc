/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cache keeps encoded query results keyed by cache key bytes.
package cache

import (
	"bytes"
	"sync/atomic"

	"github.com/dchest/siphash"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	k0 = 0x9f17c3fd5efd3ce4
	k1 = 0xdbf1ba5f07eee2c0
)

type digest [2]uint64

func hashKey(key []byte) digest {
	lo, hi := siphash.Hash128(k0, k1, key)
	return digest{lo, hi}
}

type entry struct {
	key   []byte
	value []byte
}

// Stats counts lookups since the cache was created.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Entries   int
}

// Cache is a least recently used map from cache keys to encoded values.
// It is safe for concurrent use.
type Cache struct {
	lru       *lru.Cache[digest, *entry]
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most maxEntries values.
func New(maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	c := &Cache{}
	// only fails for a non-positive size
	c.lru, _ = lru.NewWithEvict[digest, *entry](maxEntries, func(digest, *entry) {
		c.evictions.Add(1)
	})
	return c
}

// Get returns a copy of the value stored under key.
func (c *Cache) Get(key []byte) ([]byte, bool) {
	e, ok := c.lru.Get(hashKey(key))
	if !ok || !bytes.Equal(e.key, key) {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return bytes.Clone(e.value), true
}

// Put stores value under key, evicting the least recently used entry when
// the cache is full. Both slices are copied.
func (c *Cache) Put(key, value []byte) {
	c.lru.Add(hashKey(key), &entry{key: bytes.Clone(key), value: bytes.Clone(value)})
}

// Len is the number of stored entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.lru.Len(),
	}
}
