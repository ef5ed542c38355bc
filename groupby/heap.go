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
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/types"
)

type heapGroup struct {
	dims []string
	aggs []aggregator.Aggregator
}

// Heap keeps one aggregator per factory per group.
type Heap struct {
	cs        selector.Factory
	dims      dimensionReader
	factories []aggregator.Factory
	groups    map[types.GroupKey]*heapGroup
	order     []types.GroupKey
}

// NewHeap creates a heap grouper bound to cs.
func NewHeap(cs selector.Factory, dims []string, factories []aggregator.Factory, _ Options) (*Heap, error) {
	return &Heap{
		cs:        cs,
		dims:      newDimensionReader(cs, dims),
		factories: factories,
		groups:    make(map[types.GroupKey]*heapGroup),
	}, nil
}

func (h *Heap) Aggregate() error {
	key, values := h.dims.key()
	g, exists := h.groups[key]
	if !exists {
		g = &heapGroup{dims: values, aggs: make([]aggregator.Aggregator, len(h.factories))}
		for i, f := range h.factories {
			agg, err := f.Factorize(h.cs)
			if err != nil {
				return errors.Wrapf(err, "factorize %s", f.Name())
			}
			g.aggs[i] = agg
		}
		h.groups[key] = g
		h.order = append(h.order, key)
	}
	for _, agg := range g.aggs {
		agg.Aggregate()
	}
	return nil
}

func (h *Heap) Results() []Row {
	rows := make([]Row, 0, len(h.order))
	for _, key := range h.order {
		g := h.groups[key]
		values := make([]any, len(g.aggs))
		for i, agg := range g.aggs {
			values[i] = agg.Get()
		}
		rows = append(rows, Row{Key: key, Dims: g.dims, Values: values})
	}
	return rows
}

func (h *Heap) Len() int {
	return len(h.order)
}
