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

// Package groupby accumulates aggregate state per group while a segment is
// scanned. Two strategies are provided: Heap keeps aggregator objects per
// group, Buffer keeps all groups in one growable byte region shared by a
// single set of slot aggregators.
package groupby

import (
	"github.com/cockroachdb/errors"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/types"
	"github.com/mars-lan/druid/utils/cast"
)

// ErrBufferFull is returned when a new group does not fit in the largest
// region the grouper is allowed to allocate.
var ErrBufferFull = errors.New("group buffer is full")

// Row is one group's dimension values and aggregate values, in factory
// order.
type Row struct {
	Key    types.GroupKey
	Dims   []string
	Values []any
}

// Grouper is bound to one cursor. It is not safe for concurrent use.
type Grouper interface {
	// Aggregate adds the cursor's current row to its group.
	Aggregate() error
	// Results returns the groups in the order they were first seen.
	Results() []Row
	// Len is the number of groups seen so far.
	Len() int
}

// Options tune a Grouper. Zero values pick defaults.
type Options struct {
	// InitialBytes is the first region size of a Buffer grouper.
	InitialBytes int
	// MaxBytes caps region growth. 0 means unlimited.
	MaxBytes int
	Logger   logger.Logger
}

const defaultInitialBytes = 4096

// New builds the grouper for the given strategy. An empty strategy means
// buffer.
func New(g types.Grouping, cs selector.Factory, dims []string, factories []aggregator.Factory, opts Options) (Grouper, error) {
	switch g {
	case types.GroupingHeap:
		return NewHeap(cs, dims, factories, opts)
	case types.GroupingBuffer, "":
		b, err := NewBuffer(cs, dims, factories, opts)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, errors.Newf("unknown grouping %q", g)
}

// dimensionReader renders the cursor's current dimension values.
type dimensionReader []selector.Object

func newDimensionReader(cs selector.Factory, dims []string) dimensionReader {
	r := make(dimensionReader, len(dims))
	for i, d := range dims {
		r[i] = cs.MakeObject(d)
	}
	return r
}

func (r dimensionReader) key() (types.GroupKey, []string) {
	if len(r) == 0 {
		return types.EmptyGroupKey, nil
	}
	values := make([]string, len(r))
	for i, s := range r {
		values[i] = cast.ToString(s.Object())
	}
	return types.NewGroupKey(values...), values
}

func (o Options) log() logger.Logger {
	if o.Logger == nil {
		return logger.GetDefault()
	}
	return o.Logger
}
