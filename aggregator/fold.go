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

// reader returns the current row's value and false when the row is null.
type reader[T Number] func() (T, bool)

// foldFunc merges an incoming value into the accumulated one. A nil
// foldFunc keeps the first value, which is what the any family does.
type foldFunc[T Number] func(acc, v T) T

func longReader(s selector.Long) reader[int64] {
	return func() (int64, bool) {
		if s.IsNull() {
			return 0, false
		}
		return s.Long(), true
	}
}

func doubleReader(s selector.Double) reader[float64] {
	return func() (float64, bool) {
		if s.IsNull() {
			return 0, false
		}
		return s.Double(), true
	}
}

// foldAggregator skips null rows; it stays absent until a non-null row
// arrives.
type foldAggregator[T Number] struct {
	read    reader[T]
	fold    foldFunc[T]
	value   T
	present bool
}

func newFoldAggregator[T Number](read reader[T], fold foldFunc[T]) *foldAggregator[T] {
	return &foldAggregator[T]{read: read, fold: fold}
}

func (a *foldAggregator[T]) Aggregate() {
	if a.present && a.fold == nil {
		return
	}
	v, ok := a.read()
	if !ok {
		return
	}
	if !a.present {
		a.value, a.present = v, true
		return
	}
	a.value = a.fold(a.value, v)
}

func (a *foldAggregator[T]) Get() any {
	if !a.present {
		return Absent[T]()
	}
	return Present(a.value)
}

func (a *foldAggregator[T]) IsNull() bool {
	return !a.present
}

func (a *foldAggregator[T]) GetLong() int64 {
	return int64(a.value)
}

func (a *foldAggregator[T]) GetDouble() float64 {
	return float64(a.value)
}

// foldBufferAggregator is foldAggregator over a NullableSlotSize slot.
type foldBufferAggregator[T Number] struct {
	read  reader[T]
	fold  foldFunc[T]
	codec slotCodec[T]
}

func newFoldBufferAggregator[T Number](read reader[T], fold foldFunc[T]) *foldBufferAggregator[T] {
	return &foldBufferAggregator[T]{read: read, fold: fold, codec: codecFor[T]()}
}

func (a *foldBufferAggregator[T]) Init(buf []byte, pos int) {
	buf[pos] = nullFlag
}

func (a *foldBufferAggregator[T]) Aggregate(buf []byte, pos int) {
	isNull := slotIsNull(buf, pos)
	if !isNull && a.fold == nil {
		return
	}
	v, ok := a.read()
	if !ok {
		return
	}
	if isNull {
		writeSlot(a.codec, buf, pos, v)
		return
	}
	writeSlot(a.codec, buf, pos, a.fold(a.codec.get(buf[pos+1:]), v))
}

func (a *foldBufferAggregator[T]) Get(buf []byte, pos int) any {
	return readSlot(a.codec, buf, pos)
}

func (a *foldBufferAggregator[T]) IsNull(buf []byte, pos int) bool {
	return slotIsNull(buf, pos)
}

func (a *foldBufferAggregator[T]) GetLong(buf []byte, pos int) int64 {
	if slotIsNull(buf, pos) {
		return 0
	}
	return int64(a.codec.get(buf[pos+1:]))
}

func (a *foldBufferAggregator[T]) GetDouble(buf []byte, pos int) float64 {
	if slotIsNull(buf, pos) {
		return 0
	}
	return float64(a.codec.get(buf[pos+1:]))
}

func (a *foldBufferAggregator[T]) Relocate(oldPos, newPos int, oldBuf, newBuf []byte) {
	copy(newBuf[newPos:newPos+NullableSlotSize], oldBuf[oldPos:oldPos+NullableSlotSize])
}

// combineOptional merges two partials of a fold family. Either side may be
// nil or absent.
func combineOptional[T Number](lhs, rhs any, fold foldFunc[T]) any {
	l := mustOptional[T](lhs)
	r := mustOptional[T](rhs)
	lv, lok := l.Get()
	rv, rok := r.Get()
	switch {
	case lok && rok:
		return Present(fold(lv, rv))
	case lok:
		return l
	default:
		return r
	}
}

func compareOptional[T Number](a, b any) int {
	av, aok := mustOptional[T](a).Get()
	bv, bok := mustOptional[T](b).Get()
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return 0
}

func addFold[T Number](acc, v T) T { return acc + v }

func minFold[T Number](acc, v T) T {
	if v < acc {
		return v
	}
	return acc
}

func maxFold[T Number](acc, v T) T {
	if v > acc {
		return v
	}
	return acc
}
