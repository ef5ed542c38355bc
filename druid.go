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

package druid

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/mars-lan/druid/aggregator"
	"github.com/mars-lan/druid/cache"
	"github.com/mars-lan/druid/cachekey"
	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/scan"
	"github.com/mars-lan/druid/segment"
	"github.com/mars-lan/druid/types"
)

// queryCacheTypeID prefixes result cache keys. It shares no space with the
// aggregator ids, which only appear nested inside it.
const queryCacheTypeID byte = 0x7F

// Engine runs grouped aggregation queries over in-memory segments.
//
// Usage:
//
//	engine, err := druid.New(druid.WithParallelism(8))
//	res, err := engine.RunSpec(ctx, queryJSON, segments)
//	res.WriteTable(os.Stdout)
//
// An Engine is safe for concurrent use.
type Engine struct {
	config types.Config
	macros *macro.Table
	log    logger.Logger
	runner *scan.Runner
	cache  *cache.Cache
}

// New creates an engine from the default configuration and options.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		config: types.NewConfig(),
		macros: macro.Default(),
	}
	for _, option := range options {
		option(e)
	}
	if err := e.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "engine config")
	}
	if e.log == nil {
		level, err := logger.ParseLevel(e.config.LogLevel)
		if err != nil {
			return nil, errors.Wrap(err, "engine config")
		}
		e.log = logger.NewLogger(level, os.Stdout)
	}
	e.log = e.log.With("engine")
	e.runner = scan.NewRunner(e.config.ScanConfig, e.log)
	if e.config.CacheConfig.Enabled {
		e.cache = cache.New(e.config.CacheConfig.MaxEntries)
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() types.Config {
	return e.config
}

// RunSpec parses a YAML or JSON query document and runs it.
func (e *Engine) RunSpec(ctx context.Context, data []byte, segments []*segment.Segment) (*scan.Result, error) {
	q, err := types.ParseQuery(data)
	if err != nil {
		return nil, err
	}
	return e.Run(ctx, q, segments)
}

// Run executes q over segments. Segment order is significant for the any
// families and is part of the result cache key.
func (e *Engine) Run(ctx context.Context, q *types.Query, segments []*segment.Segment) (*scan.Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	factories, err := aggregator.FromSpecs(q.Aggregations, e.macros)
	if err != nil {
		return nil, err
	}
	spec := scan.Spec{
		Dimensions: q.Dimensions,
		Factories:  factories,
		Grouping:   q.Context.Grouping,
		MergeMode:  q.Context.MergeMode,
	}
	if spec.Grouping == "" {
		spec.Grouping = e.config.ScanConfig.Grouping
	}
	if spec.MergeMode == "" {
		spec.MergeMode = e.config.ScanConfig.MergeMode
	}

	var key []byte
	if e.cache != nil && (q.Context.UseCache || q.Context.PopulateCache) {
		key = resultCacheKey(q, factories, segments)
	}
	if key != nil && q.Context.UseCache {
		if data, ok := e.cache.Get(key); ok {
			rows, err := cache.DecodeRows(data)
			if err == nil {
				e.log.Debug("query %s: cache hit on %s", q.ID, q.DataSource)
				return scan.NewResult(spec, rows), nil
			}
			e.log.Warn("query %s: dropping unreadable cache entry: %v", q.ID, err)
		}
	}

	res, err := e.runner.Run(ctx, spec, segments)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s on %s", q.ID, q.DataSource)
	}
	e.log.Info("query %s on %s: %d segments, %d groups", q.ID, q.DataSource, len(segments), len(res.Rows))

	if key != nil && q.Context.PopulateCache {
		data, err := cache.EncodeRows(res.Rows)
		if err != nil {
			e.log.Warn("query %s: result not cached: %v", q.ID, err)
		} else {
			e.cache.Put(key, data)
		}
	}
	return res, nil
}

// CacheStats reports result cache counters. ok is false when the cache is
// disabled.
func (e *Engine) CacheStats() (stats cache.Stats, ok bool) {
	if e.cache == nil {
		return cache.Stats{}, false
	}
	return e.cache.Stats(), true
}

// resultCacheKey identifies what a query computes. Aggregator output names
// are not part of it; they are reapplied from the query on every hit.
func resultCacheKey(q *types.Query, factories []aggregator.Factory, segments []*segment.Segment) []byte {
	b := cachekey.New(queryCacheTypeID).
		AppendString(q.DataSource).
		AppendStrings(q.Dimensions)
	b = cachekey.AppendCacheables(b, factories)
	ids := make([]string, len(segments))
	for i, s := range segments {
		ids[i] = s.ID
	}
	return b.AppendStrings(ids).Build()
}
