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

package cache

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/groupby"
	"github.com/mars-lan/druid/types"
	"github.com/mars-lan/druid/utils/compress"
)

// ErrCorrupt is returned for cached bytes that do not decode.
var ErrCorrupt = errors.New("corrupt cache entry")

// value tags
const (
	tagCount  byte = 1
	tagLong   byte = 2
	tagDouble byte = 3
)

// EncodeRows serializes result rows. Nullable values are stored in their
// nine byte slot form, so absent and present zero stay distinct.
func EncodeRows(rows []groupby.Row) ([]byte, error) {
	var out []byte
	out = binary.AppendUvarint(out, uint64(len(rows)))
	if len(rows) > 0 {
		if len(rows[0].Dims)+len(rows[0].Values) == 0 {
			return nil, errors.New("cannot cache rows without columns")
		}
		out = binary.AppendUvarint(out, uint64(len(rows[0].Dims)))
		out = binary.AppendUvarint(out, uint64(len(rows[0].Values)))
	}
	for _, r := range rows {
		for _, d := range r.Dims {
			out = binary.AppendUvarint(out, uint64(len(d)))
			out = append(out, d...)
		}
		for _, v := range r.Values {
			switch x := v.(type) {
			case int64:
				out = append(out, tagCount)
				out = binary.LittleEndian.AppendUint64(out, uint64(x))
			case aggregator.OptionalLong:
				out = append(out, tagLong)
				out = aggregator.EncodeOptional(out, x)
			case aggregator.OptionalDouble:
				out = append(out, tagDouble)
				out = aggregator.EncodeOptional(out, x)
			default:
				return nil, errors.Newf("cannot cache value of type %T", v)
			}
		}
	}
	return compress.Encode(out), nil
}

// DecodeRows reverses EncodeRows.
func DecodeRows(data []byte) ([]groupby.Row, error) {
	raw, err := compress.Decode(data)
	if err != nil {
		return nil, errors.Mark(err, ErrCorrupt)
	}
	d := decoder{buf: raw}
	n := d.uvarint()
	if d.err != nil || n == 0 {
		return nil, d.err
	}
	nDims, nValues := d.uvarint(), d.uvarint()
	if d.err != nil {
		return nil, d.err
	}
	// every dimension costs at least its length byte and every value its tag
	width := nDims + nValues
	if nDims > uint64(len(d.buf)) || nValues > uint64(len(d.buf)) || width == 0 ||
		n > uint64(len(d.buf))/width {
		return nil, errors.Mark(errors.Newf("%d rows of %d columns exceed %d bytes", n, width, len(d.buf)), ErrCorrupt)
	}
	rows := make([]groupby.Row, 0, n)
	for i := uint64(0); i < n && d.err == nil; i++ {
		var r groupby.Row
		if nDims > 0 {
			r.Dims = make([]string, nDims)
			for j := range r.Dims {
				r.Dims[j] = string(d.bytes(int(d.uvarint())))
			}
		}
		r.Key = types.NewGroupKey(r.Dims...)
		r.Values = make([]any, nValues)
		for j := range r.Values {
			r.Values[j] = d.value()
		}
		rows = append(rows, r)
	}
	if d.err != nil {
		return nil, d.err
	}
	if len(d.buf) != 0 {
		return nil, errors.Mark(errors.Newf("%d trailing bytes", len(d.buf)), ErrCorrupt)
	}
	return rows, nil
}

type decoder struct {
	buf []byte
	err error
}

func (d *decoder) fail(format string, args ...interface{}) {
	if d.err == nil {
		d.err = errors.Mark(errors.Newf(format, args...), ErrCorrupt)
	}
	d.buf = nil
}

func (d *decoder) uvarint() uint64 {
	v, n := binary.Uvarint(d.buf)
	if n <= 0 {
		d.fail("bad varint")
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *decoder) bytes(n int) []byte {
	if n < 0 || n > len(d.buf) {
		d.fail("short buffer: need %d bytes, have %d", n, len(d.buf))
		return nil
	}
	b := d.buf[:n]
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) value() any {
	tag := d.bytes(1)
	if tag == nil {
		return nil
	}
	switch tag[0] {
	case tagCount:
		if b := d.bytes(8); b != nil {
			return int64(binary.LittleEndian.Uint64(b))
		}
	case tagLong:
		if b := d.bytes(aggregator.NullableSlotSize); b != nil {
			return aggregator.DecodeOptional[int64](b)
		}
	case tagDouble:
		if b := d.bytes(aggregator.NullableSlotSize); b != nil {
			return aggregator.DecodeOptional[float64](b)
		}
	default:
		d.fail("unknown value tag %d", tag[0])
	}
	return nil
}
