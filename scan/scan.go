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

// Package scan runs a grouped aggregation over a set of segments: each
// segment is scanned on its own into partial groups, then the partials are
// merged in segment order.
package scan

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/groupby"
	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/segment"
	"github.com/mars-lan/druid/types"
)

// rows scanned between cancellation checks
const checkEvery = 1024

// Spec is one grouped aggregation.
type Spec struct {
	Dimensions []string
	Factories  []aggregator.Factory
	Grouping   types.Grouping
	MergeMode  types.MergeMode
}

// Runner scans segments concurrently.
type Runner struct {
	parallelism int
	options     groupby.Options
	log         logger.Logger
}

// NewRunner creates a runner from the scan configuration. log may be nil.
func NewRunner(cfg types.ScanConfig, log logger.Logger) *Runner {
	if log == nil {
		log = logger.GetDefault()
	}
	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	return &Runner{
		parallelism: parallelism,
		options: groupby.Options{
			InitialBytes: cfg.InitialBufferBytes,
			MaxBytes:     cfg.MaxBufferBytes,
			Logger:       log,
		},
		log: log.With("scan"),
	}
}

// Run scans every segment and merges the partial groups. Groups appear in
// the order they are first seen, walking segments in slice order.
func (r *Runner) Run(ctx context.Context, spec Spec, segments []*segment.Segment) (*Result, error) {
	partials := make([][]groupby.Row, len(segments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.parallelism)
	for i, seg := range segments {
		i, seg := i, seg
		g.Go(func() error {
			rows, err := r.scanSegment(gctx, spec, spec.Factories, seg)
			if err != nil {
				return errors.Wrapf(err, "segment %s", seg.ID)
			}
			partials[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var merged []groupby.Row
	var err error
	switch spec.MergeMode {
	case types.MergeReaggregate:
		merged, err = r.reaggregate(ctx, spec, partials)
	case types.MergeCombine, "":
		merged = combine(spec.Factories, partials)
	default:
		err = errors.Newf("unknown merge mode %q", spec.MergeMode)
	}
	if err != nil {
		return nil, err
	}
	r.log.Debug("merged %d segments into %d groups (%s)", len(segments), len(merged), spec.MergeMode)
	return NewResult(spec, merged), nil
}

func (r *Runner) scanSegment(ctx context.Context, spec Spec, factories []aggregator.Factory, seg *segment.Segment) ([]groupby.Row, error) {
	c := seg.NewCursor()
	gr, err := groupby.New(spec.Grouping, c, spec.Dimensions, factories, r.options)
	if err != nil {
		return nil, err
	}
	for n := 0; !c.Done(); c.Advance() {
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		n++
		if err := gr.Aggregate(); err != nil {
			return nil, err
		}
	}
	r.log.Debug("segment %s: %d rows into %d groups", seg.ID, seg.Len(), gr.Len())
	return gr.Results(), nil
}

// combine folds partials group by group with Factory.Combine, left to
// right in segment order.
func combine(factories []aggregator.Factory, partials [][]groupby.Row) []groupby.Row {
	index := make(map[types.GroupKey]int)
	var merged []groupby.Row
	for _, rows := range partials {
		for _, row := range rows {
			at, exists := index[row.Key]
			if !exists {
				index[row.Key] = len(merged)
				merged = append(merged, groupby.Row{
					Key:    row.Key,
					Dims:   row.Dims,
					Values: append([]any(nil), row.Values...),
				})
				continue
			}
			values := merged[at].Values
			for i, f := range factories {
				values[i] = f.Combine(values[i], row.Values[i])
			}
		}
	}
	return merged
}

// reaggregate writes partials out as rows and scans them again with the
// combining factories.
func (r *Runner) reaggregate(ctx context.Context, spec Spec, partials [][]groupby.Row) ([]groupby.Row, error) {
	var rows []map[string]any
	for _, part := range partials {
		for _, p := range part {
			row := make(map[string]any, len(spec.Dimensions)+len(spec.Factories))
			for i, d := range spec.Dimensions {
				row[d] = p.Dims[i]
			}
			for i, f := range spec.Factories {
				row[f.Name()] = p.Values[i]
			}
			rows = append(rows, row)
		}
	}
	combining := make([]aggregator.Factory, len(spec.Factories))
	for i, f := range spec.Factories {
		combining[i] = f.CombiningFactory()
	}
	merged, err := r.scanSegment(ctx, spec, combining, segment.New("merge", rows))
	if err != nil {
		return nil, errors.Wrap(err, "reaggregate partials")
	}
	for _, row := range merged {
		for i, f := range spec.Factories {
			v, err := f.Deserialize(row.Values[i])
			if err != nil {
				return nil, errors.Wrapf(err, "deserialize %s", f.Name())
			}
			row.Values[i] = v
		}
	}
	return merged, nil
}
