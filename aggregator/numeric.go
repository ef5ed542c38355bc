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
)

// family describes one sum, min or max variant over T.
type family[T Number] struct {
	kind      string
	display   string
	typeID    byte
	valueType ValueType
	fold      foldFunc[T]
	read      func(s simpleSpec, cs selector.Factory) reader[T]
}

var (
	longSum   = longFamily("longSum", "LongSumAggregatorFactory", LongSumCacheTypeID, addFold[int64])
	longMin   = longFamily("longMin", "LongMinAggregatorFactory", LongMinCacheTypeID, minFold[int64])
	longMax   = longFamily("longMax", "LongMaxAggregatorFactory", LongMaxCacheTypeID, maxFold[int64])
	doubleSum = doubleFamily("doubleSum", "DoubleSumAggregatorFactory", DoubleSumCacheTypeID, addFold[float64])
	doubleMin = doubleFamily("doubleMin", "DoubleMinAggregatorFactory", DoubleMinCacheTypeID, minFold[float64])
	doubleMax = doubleFamily("doubleMax", "DoubleMaxAggregatorFactory", DoubleMaxCacheTypeID, maxFold[float64])
)

func longFamily(kind, display string, typeID byte, fold foldFunc[int64]) *family[int64] {
	return &family[int64]{
		kind: kind, display: display, typeID: typeID, valueType: Long, fold: fold,
		read: func(s simpleSpec, cs selector.Factory) reader[int64] { return longReader(s.longSelector(cs)) },
	}
}

func doubleFamily(kind, display string, typeID byte, fold foldFunc[float64]) *family[float64] {
	return &family[float64]{
		kind: kind, display: display, typeID: typeID, valueType: Double, fold: fold,
		read: func(s simpleSpec, cs selector.Factory) reader[float64] { return doubleReader(s.doubleSelector(cs)) },
	}
}

// Numeric is a sum, min or max over a long or double input. Null rows are
// skipped and a group with no values is absent.
type Numeric[T Number] struct {
	simpleSpec
	family *family[T]
}

func newNumeric[T Number](fam *family[T], name, fieldName, expression string, macros *macro.Table) (*Numeric[T], error) {
	s, err := newSimpleSpec(fam.kind, name, fieldName, expression, macros)
	if err != nil {
		return nil, err
	}
	return &Numeric[T]{simpleSpec: s, family: fam}, nil
}

func NewLongSum(name, fieldName, expression string, macros *macro.Table) (*Numeric[int64], error) {
	return newNumeric(longSum, name, fieldName, expression, macros)
}

func NewLongMin(name, fieldName, expression string, macros *macro.Table) (*Numeric[int64], error) {
	return newNumeric(longMin, name, fieldName, expression, macros)
}

func NewLongMax(name, fieldName, expression string, macros *macro.Table) (*Numeric[int64], error) {
	return newNumeric(longMax, name, fieldName, expression, macros)
}

func NewDoubleSum(name, fieldName, expression string, macros *macro.Table) (*Numeric[float64], error) {
	return newNumeric(doubleSum, name, fieldName, expression, macros)
}

func NewDoubleMin(name, fieldName, expression string, macros *macro.Table) (*Numeric[float64], error) {
	return newNumeric(doubleMin, name, fieldName, expression, macros)
}

func NewDoubleMax(name, fieldName, expression string, macros *macro.Table) (*Numeric[float64], error) {
	return newNumeric(doubleMax, name, fieldName, expression, macros)
}

func (f *Numeric[T]) Name() string { return f.name }

// Kind is the registry type name, for example "longSum".
func (f *Numeric[T]) Kind() string { return f.family.kind }

func (f *Numeric[T]) Factorize(cs selector.Factory) (Aggregator, error) {
	return newFoldAggregator(f.family.read(f.simpleSpec, cs), f.family.fold), nil
}

func (f *Numeric[T]) FactorizeBuffered(cs selector.Factory) (BufferAggregator, error) {
	return newFoldBufferAggregator(f.family.read(f.simpleSpec, cs), f.family.fold), nil
}

func (f *Numeric[T]) Combine(lhs, rhs any) any {
	return combineOptional(lhs, rhs, f.family.fold)
}

func (f *Numeric[T]) CombiningFactory() Factory {
	return &Numeric[T]{simpleSpec: f.combining(), family: f.family}
}

func (f *Numeric[T]) MergingFactory(other Factory) (Factory, error) {
	if o, ok := other.(*Numeric[T]); ok && o.family == f.family && o.name == f.name {
		return f.CombiningFactory(), nil
	}
	return nil, notMergeable(f, other)
}

func (f *Numeric[T]) RequiredColumns() []Factory {
	return []Factory{&Numeric[T]{simpleSpec: f.raw(), family: f.family}}
}

func (f *Numeric[T]) RequiredFields() []string    { return f.requiredFields() }
func (f *Numeric[T]) CacheKey() []byte            { return f.cacheKey(f.family.typeID) }
func (f *Numeric[T]) MaxIntermediateSize() int    { return NullableSlotSize }
func (f *Numeric[T]) IntermediateType() ValueType { return f.family.valueType }
func (f *Numeric[T]) FinalizedType() ValueType    { return f.family.valueType }
func (f *Numeric[T]) Compare(a, b any) int        { return compareOptional[T](a, b) }
func (f *Numeric[T]) Finalize(object any) any     { return object }

func (f *Numeric[T]) Deserialize(object any) (any, error) {
	return toOptional[T](object)
}

func (f *Numeric[T]) String() string { return f.format(f.family.display) }
