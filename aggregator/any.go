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
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/utils/cast"
)

// LongAny picks one observed non-null value of a long input. Which value is
// picked is not specified beyond "the first one the aggregator saw"; merges
// keep the left partial when it has a value.
type LongAny struct {
	simpleSpec
}

// NewLongAny builds a longAny factory. macros may be nil.
func NewLongAny(name, fieldName, expression string, macros *macro.Table) (*LongAny, error) {
	s, err := newSimpleSpec("longAny", name, fieldName, expression, macros)
	if err != nil {
		return nil, err
	}
	return &LongAny{simpleSpec: s}, nil
}

func (f *LongAny) Name() string { return f.name }

// NullValue is what GetLong reports for an absent value. IsNull, not this
// sentinel, decides nullness.
func (f *LongAny) NullValue() int64 { return 0 }

// BuildAggregator returns an on-heap aggregator reading s.
func (f *LongAny) BuildAggregator(s selector.Long) Aggregator {
	return newFoldAggregator[int64](longReader(s), nil)
}

// BuildBufferAggregator returns a slot aggregator reading s.
func (f *LongAny) BuildBufferAggregator(s selector.Long) BufferAggregator {
	return newFoldBufferAggregator[int64](longReader(s), nil)
}

func (f *LongAny) Factorize(cs selector.Factory) (Aggregator, error) {
	return f.BuildAggregator(f.longSelector(cs)), nil
}

func (f *LongAny) FactorizeBuffered(cs selector.Factory) (BufferAggregator, error) {
	return f.BuildBufferAggregator(f.longSelector(cs)), nil
}

// Combine returns lhs when it holds a value and rhs otherwise.
func (f *LongAny) Combine(lhs, rhs any) any {
	if !cast.IsNull(lhs) {
		return lhs
	}
	return rhs
}

func (f *LongAny) CombiningFactory() Factory {
	return &LongAny{simpleSpec: f.combining()}
}

func (f *LongAny) MergingFactory(other Factory) (Factory, error) {
	if o, ok := other.(*LongAny); ok && o.name == f.name {
		return f.CombiningFactory(), nil
	}
	return nil, notMergeable(f, other)
}

func (f *LongAny) RequiredColumns() []Factory {
	return []Factory{&LongAny{simpleSpec: f.raw()}}
}

func (f *LongAny) RequiredFields() []string    { return f.requiredFields() }
func (f *LongAny) CacheKey() []byte            { return f.cacheKey(LongAnyCacheTypeID) }
func (f *LongAny) MaxIntermediateSize() int    { return NullableSlotSize }
func (f *LongAny) IntermediateType() ValueType { return Long }
func (f *LongAny) FinalizedType() ValueType    { return Long }
func (f *LongAny) Compare(a, b any) int        { return compareOptional[int64](a, b) }
func (f *LongAny) Finalize(object any) any     { return object }

func (f *LongAny) Deserialize(object any) (any, error) {
	return toOptional[int64](object)
}

func (f *LongAny) String() string { return f.format("LongAnyAggregatorFactory") }

// DoubleAny is LongAny over double inputs.
type DoubleAny struct {
	simpleSpec
}

// NewDoubleAny builds a doubleAny factory. macros may be nil.
func NewDoubleAny(name, fieldName, expression string, macros *macro.Table) (*DoubleAny, error) {
	s, err := newSimpleSpec("doubleAny", name, fieldName, expression, macros)
	if err != nil {
		return nil, err
	}
	return &DoubleAny{simpleSpec: s}, nil
}

func (f *DoubleAny) Name() string       { return f.name }
func (f *DoubleAny) NullValue() float64 { return 0 }

func (f *DoubleAny) BuildAggregator(s selector.Double) Aggregator {
	return newFoldAggregator[float64](doubleReader(s), nil)
}

func (f *DoubleAny) BuildBufferAggregator(s selector.Double) BufferAggregator {
	return newFoldBufferAggregator[float64](doubleReader(s), nil)
}

func (f *DoubleAny) Factorize(cs selector.Factory) (Aggregator, error) {
	return f.BuildAggregator(f.doubleSelector(cs)), nil
}

func (f *DoubleAny) FactorizeBuffered(cs selector.Factory) (BufferAggregator, error) {
	return f.BuildBufferAggregator(f.doubleSelector(cs)), nil
}

func (f *DoubleAny) Combine(lhs, rhs any) any {
	if !cast.IsNull(lhs) {
		return lhs
	}
	return rhs
}

func (f *DoubleAny) CombiningFactory() Factory {
	return &DoubleAny{simpleSpec: f.combining()}
}

func (f *DoubleAny) MergingFactory(other Factory) (Factory, error) {
	if o, ok := other.(*DoubleAny); ok && o.name == f.name {
		return f.CombiningFactory(), nil
	}
	return nil, notMergeable(f, other)
}

func (f *DoubleAny) RequiredColumns() []Factory {
	return []Factory{&DoubleAny{simpleSpec: f.raw()}}
}

func (f *DoubleAny) RequiredFields() []string    { return f.requiredFields() }
func (f *DoubleAny) CacheKey() []byte            { return f.cacheKey(DoubleAnyCacheTypeID) }
func (f *DoubleAny) MaxIntermediateSize() int    { return NullableSlotSize }
func (f *DoubleAny) IntermediateType() ValueType { return Double }
func (f *DoubleAny) FinalizedType() ValueType    { return Double }
func (f *DoubleAny) Compare(a, b any) int        { return compareOptional[float64](a, b) }
func (f *DoubleAny) Finalize(object any) any     { return object }

func (f *DoubleAny) Deserialize(object any) (any, error) {
	return toOptional[float64](object)
}

func (f *DoubleAny) String() string { return f.format("DoubleAnyAggregatorFactory") }
