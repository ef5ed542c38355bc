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
	"encoding/binary"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mars-lan/druid/cachekey"
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/utils/cast"
)

const countSize = 8

// Count counts rows. It reads no column and is never null.
type Count struct {
	name string
}

func NewCount(name string) (*Count, error) {
	if name == "" {
		return nil, errors.Mark(errors.New("count: name is required"), ErrInvalidSpec)
	}
	return &Count{name: name}, nil
}

func (f *Count) Name() string { return f.name }

func (f *Count) Factorize(selector.Factory) (Aggregator, error) {
	return &countAggregator{}, nil
}

func (f *Count) FactorizeBuffered(selector.Factory) (BufferAggregator, error) {
	return countBufferAggregator{}, nil
}

// Combine adds two partial counts. A nil side counts as zero.
func (f *Count) Combine(lhs, rhs any) any {
	return mustCount(lhs) + mustCount(rhs)
}

// CombiningFactory sums the counts already computed.
func (f *Count) CombiningFactory() Factory {
	return &Numeric[int64]{simpleSpec: simpleSpec{name: f.name, fieldName: f.name}, family: longSum}
}

func (f *Count) MergingFactory(other Factory) (Factory, error) {
	if o, ok := other.(*Count); ok && o.name == f.name {
		return f.CombiningFactory(), nil
	}
	return nil, notMergeable(f, other)
}

func (f *Count) RequiredColumns() []Factory  { return []Factory{&Count{name: f.name}} }
func (f *Count) RequiredFields() []string    { return nil }
func (f *Count) CacheKey() []byte            { return cachekey.New(CountCacheTypeID).Build() }
func (f *Count) MaxIntermediateSize() int    { return countSize }
func (f *Count) IntermediateType() ValueType { return Long }
func (f *Count) FinalizedType() ValueType    { return Long }
func (f *Count) Finalize(object any) any     { return object }

func (f *Count) Compare(a, b any) int {
	x, y := mustCount(a), mustCount(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func (f *Count) Deserialize(object any) (any, error) {
	n, _, err := cast.ToInt64E(object)
	return n, err
}

func (f *Count) String() string {
	return fmt.Sprintf("CountAggregatorFactory{name='%s'}", f.name)
}

func mustCount(v any) int64 {
	n, _, err := cast.ToInt64E(v)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "count combine on %T", v))
	}
	return n
}

type countAggregator struct {
	count int64
}

func (a *countAggregator) Aggregate()         { a.count++ }
func (a *countAggregator) Get() any           { return a.count }
func (a *countAggregator) IsNull() bool       { return false }
func (a *countAggregator) GetLong() int64     { return a.count }
func (a *countAggregator) GetDouble() float64 { return float64(a.count) }

type countBufferAggregator struct{}

func (countBufferAggregator) Init(buf []byte, pos int) {
	binary.LittleEndian.PutUint64(buf[pos:pos+countSize], 0)
}

func (countBufferAggregator) Aggregate(buf []byte, pos int) {
	b := buf[pos : pos+countSize]
	binary.LittleEndian.PutUint64(b, binary.LittleEndian.Uint64(b)+1)
}

func (a countBufferAggregator) Get(buf []byte, pos int) any {
	return a.GetLong(buf, pos)
}

func (countBufferAggregator) IsNull([]byte, int) bool { return false }

func (countBufferAggregator) GetLong(buf []byte, pos int) int64 {
	return int64(binary.LittleEndian.Uint64(buf[pos : pos+countSize]))
}

func (a countBufferAggregator) GetDouble(buf []byte, pos int) float64 {
	return float64(a.GetLong(buf, pos))
}

func (countBufferAggregator) Relocate(oldPos, newPos int, oldBuf, newBuf []byte) {
	copy(newBuf[newPos:newPos+countSize], oldBuf[oldPos:oldPos+countSize])
}
