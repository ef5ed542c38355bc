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

package groupby

import (
	"github.com/cockroachdb/errors"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/types"
)

// Buffer packs every group into fixed size records of one byte region:
//
//	record = slot(factory 0) | slot(factory 1) | ...
//
// Slot sizes come from MaxIntermediateSize. When the region runs out it is
// doubled, up to MaxBytes, and existing slots are moved with Relocate.
type Buffer struct {
	dims       dimensionReader
	aggs       []aggregator.BufferAggregator
	offsets    []int
	recordSize int
	buf        []byte
	used       int
	maxBytes   int
	groups     map[types.GroupKey]int
	order      []types.GroupKey
	dimValues  [][]string
	log        logger.Logger
}

// NewBuffer creates a buffer grouper bound to cs.
func NewBuffer(cs selector.Factory, dims []string, factories []aggregator.Factory, opts Options) (*Buffer, error) {
	b := &Buffer{
		dims:     newDimensionReader(cs, dims),
		aggs:     make([]aggregator.BufferAggregator, len(factories)),
		offsets:  make([]int, len(factories)),
		maxBytes: opts.MaxBytes,
		groups:   make(map[types.GroupKey]int),
		log:      opts.log().With("groupby"),
	}
	for i, f := range factories {
		agg, err := f.FactorizeBuffered(cs)
		if err != nil {
			return nil, errors.Wrapf(err, "factorize %s", f.Name())
		}
		b.aggs[i] = agg
		b.offsets[i] = b.recordSize
		b.recordSize += f.MaxIntermediateSize()
	}
	initial := opts.InitialBytes
	if initial <= 0 {
		initial = defaultInitialBytes
	}
	if b.maxBytes > 0 && initial > b.maxBytes {
		initial = b.maxBytes
	}
	b.buf = make([]byte, initial)
	return b, nil
}

func (b *Buffer) Aggregate() error {
	key, values := b.dims.key()
	pos, exists := b.groups[key]
	if !exists {
		var err error
		if pos, err = b.allocate(); err != nil {
			return err
		}
		for i, agg := range b.aggs {
			agg.Init(b.buf, pos+b.offsets[i])
		}
		b.groups[key] = pos
		b.order = append(b.order, key)
		b.dimValues = append(b.dimValues, values)
	}
	for i, agg := range b.aggs {
		agg.Aggregate(b.buf, pos+b.offsets[i])
	}
	return nil
}

// allocate reserves one record and returns its position.
func (b *Buffer) allocate() (int, error) {
	need := b.used + b.recordSize
	if need > len(b.buf) {
		if err := b.grow(need); err != nil {
			return 0, err
		}
	}
	pos := b.used
	b.used = need
	return pos, nil
}

func (b *Buffer) grow(need int) error {
	size := len(b.buf) * 2
	if size < need {
		size = need
	}
	if b.maxBytes > 0 && size > b.maxBytes {
		size = b.maxBytes
	}
	if size < need {
		return errors.Mark(
			errors.Newf("%d groups of %d bytes need %d bytes, limit is %d", len(b.order)+1, b.recordSize, need, b.maxBytes),
			ErrBufferFull)
	}
	b.log.Debug("growing group buffer from %d to %d bytes for %d groups", len(b.buf), size, len(b.order))
	grown := make([]byte, size)
	for _, pos := range b.groups {
		for i, agg := range b.aggs {
			at := pos + b.offsets[i]
			agg.Relocate(at, at, b.buf, grown)
		}
	}
	b.buf = grown
	return nil
}

func (b *Buffer) Results() []Row {
	rows := make([]Row, 0, len(b.order))
	for n, key := range b.order {
		pos := b.groups[key]
		values := make([]any, len(b.aggs))
		for i, agg := range b.aggs {
			values[i] = agg.Get(b.buf, pos+b.offsets[i])
		}
		rows = append(rows, Row{Key: key, Dims: b.dimValues[n], Values: values})
	}
	return rows
}

func (b *Buffer) Len() int {
	return len(b.order)
}

// Cap is the current region size in bytes.
func (b *Buffer) Cap() int {
	return len(b.buf)
}
