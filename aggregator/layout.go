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
	"math"
)

// Nullable slot layout:
//
//	+------+---------------------------+
//	| flag | value (8 bytes, LE)       |
//	+------+---------------------------+
//	 pos    pos+1 .. pos+8
//
// flag is nullFlag until the first value lands. Value bytes are undefined
// while the flag says null and are never read in that state.
const (
	nullFlag    byte = 1
	presentFlag byte = 0

	valueSize        = 8
	NullableSlotSize = 1 + valueSize
)

// slotCodec reads and writes one T at the start of a byte slice.
type slotCodec[T Number] struct {
	put func(b []byte, v T)
	get func(b []byte) T
}

var longCodec = slotCodec[int64]{
	put: func(b []byte, v int64) { binary.LittleEndian.PutUint64(b, uint64(v)) },
	get: func(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) },
}

var doubleCodec = slotCodec[float64]{
	put: func(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) },
	get: func(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) },
}

func slotIsNull(buf []byte, pos int) bool {
	return buf[pos] == nullFlag
}

// writeSlot stores v then flips the flag, so a reader that sees the present
// flag also sees the value.
func writeSlot[T Number](c slotCodec[T], buf []byte, pos int, v T) {
	c.put(buf[pos+1:pos+1+valueSize], v)
	buf[pos] = presentFlag
}

func readSlot[T Number](c slotCodec[T], buf []byte, pos int) Optional[T] {
	if slotIsNull(buf, pos) {
		return Absent[T]()
	}
	return Present(c.get(buf[pos+1 : pos+1+valueSize]))
}

// EncodeOptional appends the nullable slot form of v to dst. Absent values
// write the null flag followed by eight zero bytes.
func EncodeOptional[T Number](dst []byte, v Optional[T]) []byte {
	var slot [NullableSlotSize]byte
	slot[0] = nullFlag
	if x, ok := v.Get(); ok {
		writeSlot(codecFor[T](), slot[:], 0, x)
	}
	return append(dst, slot[:]...)
}

// DecodeOptional reads one nullable slot from the start of src.
func DecodeOptional[T Number](src []byte) Optional[T] {
	return readSlot(codecFor[T](), src, 0)
}

func codecFor[T Number]() slotCodec[T] {
	var zero T
	switch any(zero).(type) {
	case int64:
		return any(longCodec).(slotCodec[T])
	default:
		return any(doubleCodec).(slotCodec[T])
	}
}
