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

package aggregator

import (
	"github.com/mars-lan/druid/selector"
)

// ValueType is the stable tag serializers use to interpret aggregate values.
type ValueType string

const (
	Long   ValueType = "LONG"
	Double ValueType = "DOUBLE"
)

// Cache type ids. Each family owns one; they are part of every cache key the
// family produces and must never be reused.
const (
	CountCacheTypeID     byte = 0x00
	LongSumCacheTypeID   byte = 0x01
	DoubleSumCacheTypeID byte = 0x02
	DoubleMaxCacheTypeID byte = 0x03
	DoubleMinCacheTypeID byte = 0x04
	LongMaxCacheTypeID   byte = 0x0A
	LongMinCacheTypeID   byte = 0x0B
	DoubleAnyCacheTypeID byte = 0x45
	LongAnyCacheTypeID   byte = 0x46
)

// Aggregator accumulates one group's value in ordinary memory.
type Aggregator interface {
	// Aggregate reads the bound selector's current row.
	Aggregate()
	// Get returns the current value: an Optional for nullable families.
	// Calling it repeatedly without Aggregate returns the same value.
	Get() any
	IsNull() bool
	GetLong() int64
	GetDouble() float64
}

// BufferAggregator accumulates many groups' values inside a region owned
// by the caller. Each call names the slot by its offset. Implementations
// hold no per-group state and never retain buf.
//
// The caller guarantees pos+MaxIntermediateSize() <= len(buf); nothing here
// checks it. Concurrent calls are safe only for disjoint slots.
type BufferAggregator interface {
	Init(buf []byte, pos int)
	Aggregate(buf []byte, pos int)
	Get(buf []byte, pos int) any
	IsNull(buf []byte, pos int) bool
	GetLong(buf []byte, pos int) int64
	GetDouble(buf []byte, pos int) float64
	// Relocate moves a slot, for example when the caller grows its region.
	Relocate(oldPos, newPos int, oldBuf, newBuf []byte)
}

// Factory is the specification of one aggregate.
type Factory interface {
	// Name is the output name.
	Name() string
	Factorize(cs selector.Factory) (Aggregator, error)
	FactorizeBuffered(cs selector.Factory) (BufferAggregator, error)
	// Combine merges two finalized partial values. nil is an absent value.
	Combine(lhs, rhs any) any
	// CombiningFactory reads this factory's output column and combines it.
	CombiningFactory() Factory
	// MergingFactory returns the factory that merges this factory's and
	// other's partials, or ErrNotMergeable.
	MergingFactory(other Factory) (Factory, error)
	// RequiredColumns describes the raw input under its own name.
	RequiredColumns() []Factory
	// RequiredFields lists the input columns read.
	RequiredFields() []string
	// CacheKey never depends on the output name.
	CacheKey() []byte
	// MaxIntermediateSize is the exact slot size a BufferAggregator uses.
	MaxIntermediateSize() int
	IntermediateType() ValueType
	FinalizedType() ValueType
	// Compare orders partial values, nulls first.
	Compare(a, b any) int
	// Deserialize converts a stored or decoded value back to the partial form.
	Deserialize(object any) (any, error)
	Finalize(object any) any
	String() string
}
