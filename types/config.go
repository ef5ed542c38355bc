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

package types

import (
	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"
)

// Config engine configuration
type Config struct {
	LogLevel    string      `json:"logLevel"`
	ScanConfig  ScanConfig  `json:"scanConfig"`
	CacheConfig CacheConfig `json:"cacheConfig"`
}

// ScanConfig controls per-segment work
type ScanConfig struct {
	Parallelism        int       `json:"parallelism"`        // segments scanned at once
	Grouping           Grouping  `json:"grouping"`           // default grouping strategy
	MergeMode          MergeMode `json:"mergeMode"`          // default partial merge strategy
	InitialBufferBytes int       `json:"initialBufferBytes"` // first region size for buffer grouping
	MaxBufferBytes     int       `json:"maxBufferBytes"`     // region growth limit, 0 means unlimited
}

// CacheConfig result cache settings
type CacheConfig struct {
	Enabled    bool `json:"enabled"`
	MaxEntries int  `json:"maxEntries"`
}

// NewConfig creates the default configuration
func NewConfig() Config {
	return Config{
		LogLevel: "info",
		ScanConfig: ScanConfig{
			Parallelism:        4,
			Grouping:           GroupingBuffer,
			MergeMode:          MergeCombine,
			InitialBufferBytes: 64 * 1024,
			MaxBufferBytes:     256 * 1024 * 1024,
		},
		CacheConfig: CacheConfig{
			Enabled:    true,
			MaxEntries: 1024,
		},
	}
}

// ParseConfig reads a YAML or JSON document over the defaults.
func ParseConfig(data []byte) (Config, error) {
	config := NewConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, errors.Wrap(err, "parse config")
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	s := c.ScanConfig
	if s.Parallelism < 1 {
		return errors.Newf("scanConfig.parallelism must be at least 1, got %d", s.Parallelism)
	}
	if !s.Grouping.valid() {
		return errors.Newf("scanConfig.grouping: unknown strategy %q", s.Grouping)
	}
	if !s.MergeMode.valid() {
		return errors.Newf("scanConfig.mergeMode: unknown mode %q", s.MergeMode)
	}
	if s.InitialBufferBytes < 1 {
		return errors.Newf("scanConfig.initialBufferBytes must be positive, got %d", s.InitialBufferBytes)
	}
	if s.MaxBufferBytes != 0 && s.MaxBufferBytes < s.InitialBufferBytes {
		return errors.Newf("scanConfig.maxBufferBytes %d is below initialBufferBytes %d",
			s.MaxBufferBytes, s.InitialBufferBytes)
	}
	if c.CacheConfig.Enabled && c.CacheConfig.MaxEntries < 1 {
		return errors.Newf("cacheConfig.maxEntries must be positive when the cache is enabled")
	}
	return nil
}
