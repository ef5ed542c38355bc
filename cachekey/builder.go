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

// Package cachekey builds deterministic byte keys for result caching.
//
// A key starts with a one byte type id chosen by the caller, followed by the
// appended items in call order. Every item is prefixed with a tag byte and
// variable length items carry their length, so two different sequences of
// appends can never produce the same bytes.
package cachekey

import (
	"encoding/binary"
	"math"
)

// Item tags. nullTag is reserved for absent strings so that an absent
// field and an empty one encode differently.
const (
	stringTag    byte = 0x01
	nullTag      byte = 0x02
	byteTag      byte = 0x03
	intTag       byte = 0x04
	doubleTag    byte = 0x05
	boolTag      byte = 0x06
	listTag      byte = 0x07
	cacheableTag byte = 0x08
)

// Cacheable is implemented by anything that contributes its own key, such
// as aggregator factories.
type Cacheable interface {
	CacheKey() []byte
}

// Builder accumulates key items. The zero value is not usable; call New.
type Builder struct {
	buf []byte
}

// New starts a key with the given type id.
func New(typeID byte) *Builder {
	b := &Builder{buf: make([]byte, 0, 64)}
	b.buf = append(b.buf, typeID)
	return b
}

func (b *Builder) appendBytes(tag byte, p []byte) *Builder {
	b.buf = append(b.buf, tag)
	b.buf = binary.AppendUvarint(b.buf, uint64(len(p)))
	b.buf = append(b.buf, p...)
	return b
}

// AppendString appends s. The empty string is a value, not null.
func (b *Builder) AppendString(s string) *Builder {
	return b.appendBytes(stringTag, []byte(s))
}

// AppendNull appends the reserved null marker.
func (b *Builder) AppendNull() *Builder {
	b.buf = append(b.buf, nullTag)
	return b
}

// AppendOptionalString appends s, or the null marker when s is empty.
// Use it for optional spec fields where "" means "not given".
func (b *Builder) AppendOptionalString(s string) *Builder {
	if s == "" {
		return b.AppendNull()
	}
	return b.AppendString(s)
}

// AppendStrings appends an ordered list of strings.
func (b *Builder) AppendStrings(list []string) *Builder {
	b.buf = append(b.buf, listTag)
	b.buf = binary.AppendUvarint(b.buf, uint64(len(list)))
	for _, s := range list {
		b.AppendString(s)
	}
	return b
}

func (b *Builder) AppendByte(v byte) *Builder {
	b.buf = append(b.buf, byteTag, v)
	return b
}

func (b *Builder) AppendInt(v int64) *Builder {
	b.buf = append(b.buf, intTag)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, uint64(v))
	return b
}

func (b *Builder) AppendDouble(v float64) *Builder {
	b.buf = append(b.buf, doubleTag)
	b.buf = binary.LittleEndian.AppendUint64(b.buf, math.Float64bits(v))
	return b
}

func (b *Builder) AppendBool(v bool) *Builder {
	var x byte
	if v {
		x = 1
	}
	b.buf = append(b.buf, boolTag, x)
	return b
}

// AppendCacheable appends the key of c. A nil c appends the null marker.
func (b *Builder) AppendCacheable(c Cacheable) *Builder {
	if c == nil {
		return b.AppendNull()
	}
	return b.appendBytes(cacheableTag, c.CacheKey())
}

// AppendCacheables appends the keys of list in order.
func AppendCacheables[T Cacheable](b *Builder, list []T) *Builder {
	b.buf = append(b.buf, listTag)
	b.buf = binary.AppendUvarint(b.buf, uint64(len(list)))
	for _, c := range list {
		b.AppendCacheable(c)
	}
	return b
}

// Build returns a copy of the accumulated key; the builder stays usable.
func (b *Builder) Build() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}
