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

package scan

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/groupby"
	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/segment"
	"github.com/mars-lan/druid/types"
)

func newRunner(parallelism int) *Runner {
	cfg := types.NewConfig().ScanConfig
	cfg.Parallelism = parallelism
	return NewRunner(cfg, logger.NewDiscardLogger())
}

func specFor(t *testing.T, dims []string, aggs ...types.AggregatorSpec) Spec {
	t.Helper()
	fs, err := aggregator.FromSpecs(aggs, macro.Default())
	require.NoError(t, err)
	return Spec{Dimensions: dims, Factories: fs}
}

func TestAnyFollowsSegmentOrder(t *testing.T) {
	spec := specFor(t, nil, types.AggregatorSpec{Type: aggregator.LongAnyStr, Name: "a", FieldName: "x"})
	s1 := segment.New("s1", []map[string]any{{"x": 3}})
	s2 := segment.New("s2", []map[string]any{{"x": 9}})
	empty := segment.New("s0", []map[string]any{{"x": nil}})

	for _, mode := range []types.MergeMode{types.MergeCombine, types.MergeReaggregate} {
		t.Run(string(mode), func(t *testing.T) {
			spec.MergeMode = mode
			res, err := newRunner(4).Run(context.Background(), spec, []*segment.Segment{s1, s2})
			require.NoError(t, err)
			assert.Equal(t, aggregator.Present[int64](3), res.Rows[0].Values[0])

			res, err = newRunner(4).Run(context.Background(), spec, []*segment.Segment{s2, s1})
			require.NoError(t, err)
			assert.Equal(t, aggregator.Present[int64](9), res.Rows[0].Values[0])

			res, err = newRunner(4).Run(context.Background(), spec, []*segment.Segment{empty, s2, s1})
			require.NoError(t, err)
			assert.Equal(t, aggregator.Present[int64](9), res.Rows[0].Values[0])
		})
	}
}

func salesSegments() []*segment.Segment {
	var segs []*segment.Segment
	for s := 0; s < 6; s++ {
		var rows []map[string]any
		for i := 0; i < 50; i++ {
			row := map[string]any{
				"region": []string{"eu", "us", "apac"}[(s+i)%3],
				"price":  float64(i%7) * 1.5,
				"qty":    i % 4,
			}
			if i%5 == 0 {
				row["qty"] = nil
			}
			rows = append(rows, row)
		}
		segs = append(segs, segment.New(fmt.Sprintf("seg-%d", s), rows))
	}
	return segs
}

func TestMergeModesAndGroupingsAgree(t *testing.T) {
	base := specFor(t, []string{"region"},
		types.AggregatorSpec{Type: aggregator.LongAnyStr, Name: "some_qty", FieldName: "qty"},
		types.AggregatorSpec{Type: aggregator.LongSumStr, Name: "qty", FieldName: "qty"},
		types.AggregatorSpec{Type: aggregator.DoubleMaxStr, Name: "max_price", FieldName: "price"},
		types.AggregatorSpec{Type: aggregator.DoubleSumStr, Name: "revenue", Expression: "price * coalesce(qty, 0)"},
		types.AggregatorSpec{Type: aggregator.CountStr, Name: "rows"},
	)
	var want *Result
	for _, g := range []types.Grouping{types.GroupingHeap, types.GroupingBuffer} {
		for _, m := range []types.MergeMode{types.MergeCombine, types.MergeReaggregate} {
			spec := base
			spec.Grouping, spec.MergeMode = g, m
			res, err := newRunner(3).Run(context.Background(), spec, salesSegments())
			require.NoError(t, err, "%s/%s", g, m)
			if want == nil {
				want = res
				continue
			}
			assert.Equal(t, want.Rows, res.Rows, "%s/%s", g, m)
		}
	}
	require.Len(t, want.Rows, 3)
	assert.Equal(t, []string{"some_qty", "qty", "max_price", "revenue", "rows"}, want.Metrics)
	assert.Equal(t, []aggregator.ValueType{aggregator.Long, aggregator.Long, aggregator.Double, aggregator.Double, aggregator.Long}, want.Types)

	var total int64
	for _, row := range want.Rows {
		total += row.Values[4].(int64)
	}
	assert.Equal(t, int64(300), total)
}

func TestParallelismDoesNotChangeResults(t *testing.T) {
	spec := specFor(t, []string{"region"},
		types.AggregatorSpec{Type: aggregator.DoubleAnyStr, Name: "p", FieldName: "price"},
		types.AggregatorSpec{Type: aggregator.LongMinStr, Name: "q", FieldName: "qty"},
	)
	serial, err := newRunner(1).Run(context.Background(), spec, salesSegments())
	require.NoError(t, err)
	parallel, err := newRunner(8).Run(context.Background(), spec, salesSegments())
	require.NoError(t, err)
	assert.Equal(t, serial.Rows, parallel.Rows)
}

func TestRecords(t *testing.T) {
	spec := specFor(t, []string{"k"},
		types.AggregatorSpec{Type: aggregator.LongAnyStr, Name: "a", FieldName: "x"},
		types.AggregatorSpec{Type: aggregator.CountStr, Name: "n"},
	)
	seg := segment.New("s", []map[string]any{{"k": "a", "x": nil}, {"k": "b", "x": 2}})
	res, err := newRunner(1).Run(context.Background(), spec, []*segment.Segment{seg})
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"k": "a", "a": nil, "n": int64(1)},
		{"k": "b", "a": int64(2), "n": int64(1)},
	}, res.Records())
}

func TestRunCancelled(t *testing.T) {
	spec := specFor(t, nil, types.AggregatorSpec{Type: aggregator.CountStr, Name: "n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(2).Run(ctx, spec, salesSegments())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunBufferFull(t *testing.T) {
	spec := specFor(t, []string{"region"}, types.AggregatorSpec{Type: aggregator.LongAnyStr, Name: "a", FieldName: "qty"})
	spec.Grouping = types.GroupingBuffer
	cfg := types.NewConfig().ScanConfig
	cfg.InitialBufferBytes = aggregator.NullableSlotSize
	cfg.MaxBufferBytes = aggregator.NullableSlotSize
	_, err := NewRunner(cfg, logger.NewDiscardLogger()).Run(context.Background(), spec, salesSegments())
	assert.True(t, errors.Is(err, groupby.ErrBufferFull))
}

func TestRunNoSegments(t *testing.T) {
	spec := specFor(t, nil, types.AggregatorSpec{Type: aggregator.CountStr, Name: "n"})
	res, err := newRunner(2).Run(context.Background(), spec, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
	assert.Equal(t, []string{"n"}, res.Metrics)
}
