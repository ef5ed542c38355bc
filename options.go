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
	"github.com/mars-lan/druid/logger"
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/types"
)

// Option changes the engine's default behaviour.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and everything it runs.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithLogLevel sets the level of the engine's configuration.
//
//	engine, err := druid.New(druid.WithLogLevel(logger.DEBUG))
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		e.config.LogLevel = level.String()
	}
}

// WithDiscardLog disables logging.
func WithDiscardLog() Option {
	return func(e *Engine) {
		e.log = logger.NewDiscardLogger()
	}
}

// WithConfig replaces the whole configuration. Options applied after it
// still take effect.
func WithConfig(config types.Config) Option {
	return func(e *Engine) {
		e.config = config
	}
}

// WithMacros sets the macro table available to aggregator expressions.
func WithMacros(table *macro.Table) Option {
	return func(e *Engine) {
		e.macros = table
	}
}

// WithParallelism sets how many segments are scanned at once.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.config.ScanConfig.Parallelism = n
	}
}

// WithGrouping sets the default grouping strategy.
func WithGrouping(g types.Grouping) Option {
	return func(e *Engine) {
		e.config.ScanConfig.Grouping = g
	}
}

// WithMergeMode sets the default merge mode.
func WithMergeMode(m types.MergeMode) Option {
	return func(e *Engine) {
		e.config.ScanConfig.MergeMode = m
	}
}

// WithBufferLimits sets the initial and maximum region size of buffer
// groupers. A limit of 0 means unlimited.
func WithBufferLimits(initial, limit int) Option {
	return func(e *Engine) {
		e.config.ScanConfig.InitialBufferBytes = initial
		e.config.ScanConfig.MaxBufferBytes = limit
	}
}

// WithCache enables the result cache with room for maxEntries results.
func WithCache(maxEntries int) Option {
	return func(e *Engine) {
		e.config.CacheConfig.Enabled = true
		e.config.CacheConfig.MaxEntries = maxEntries
	}
}

// WithoutCache disables the result cache.
func WithoutCache() Option {
	return func(e *Engine) {
		e.config.CacheConfig.Enabled = false
	}
}
