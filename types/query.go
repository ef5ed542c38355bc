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

// ErrInvalidQuery marks structural problems in a query document.
var ErrInvalidQuery = errors.New("invalid query")

// Grouping selects where per-group aggregation state lives.
type Grouping string

const (
	// GroupingHeap keeps one aggregator object per group
	GroupingHeap Grouping = "heap"
	// GroupingBuffer keeps every group in one shared byte region
	GroupingBuffer Grouping = "buffer"
)

func (g Grouping) valid() bool {
	return g == "" || g == GroupingHeap || g == GroupingBuffer
}

// MergeMode selects how per-segment partials become the final result.
type MergeMode string

const (
	// MergeCombine folds partials with the factory's Combine
	MergeCombine MergeMode = "combine"
	// MergeReaggregate feeds partials through combining factories
	MergeReaggregate MergeMode = "reaggregate"
)

func (m MergeMode) valid() bool {
	return m == "" || m == MergeCombine || m == MergeReaggregate
}

// AggregatorSpec is the declarative form of one aggregate. At least one of
// FieldName and Expression must be set; Expression wins when both are.
type AggregatorSpec struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	FieldName  string `json:"fieldName,omitempty"`
	Expression string `json:"expression,omitempty"`
}

// QueryContext per-query switches. Empty values fall back to the engine
// configuration.
type QueryContext struct {
	UseCache      bool      `json:"useCache"`
	PopulateCache bool      `json:"populateCache"`
	Grouping      Grouping  `json:"grouping,omitempty"`
	MergeMode     MergeMode `json:"mergeMode,omitempty"`
}

// Query groups rows of a data source by dimensions and computes
// aggregations per group.
type Query struct {
	ID           string           `json:"queryId,omitempty"`
	DataSource   string           `json:"dataSource"`
	Dimensions   []string         `json:"dimensions,omitempty"`
	Aggregations []AggregatorSpec `json:"aggregations"`
	Context      QueryContext     `json:"context"`
}

// DefaultQueryContext caching on, strategies from the engine.
func DefaultQueryContext() QueryContext {
	return QueryContext{UseCache: true, PopulateCache: true}
}

// ParseQuery reads a YAML or JSON query document.
func ParseQuery(data []byte) (*Query, error) {
	q := &Query{Context: DefaultQueryContext()}
	if err := yaml.Unmarshal(data, q); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse query"), ErrInvalidQuery)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the query shape. Aggregator level rules are enforced
// when factories are built.
func (q *Query) Validate() error {
	if q.DataSource == "" {
		return errors.Mark(errors.New("dataSource is required"), ErrInvalidQuery)
	}
	if len(q.Aggregations) == 0 {
		return errors.Mark(errors.New("at least one aggregation is required"), ErrInvalidQuery)
	}
	if !q.Context.Grouping.valid() {
		return errors.Mark(errors.Newf("unknown grouping %q", q.Context.Grouping), ErrInvalidQuery)
	}
	if !q.Context.MergeMode.valid() {
		return errors.Mark(errors.Newf("unknown merge mode %q", q.Context.MergeMode), ErrInvalidQuery)
	}
	seen := make(map[string]struct{}, len(q.Dimensions)+len(q.Aggregations))
	for _, d := range q.Dimensions {
		if d == "" {
			return errors.Mark(errors.New("empty dimension name"), ErrInvalidQuery)
		}
		if _, dup := seen[d]; dup {
			return errors.Mark(errors.Newf("duplicate output name %q", d), ErrInvalidQuery)
		}
		seen[d] = struct{}{}
	}
	for _, a := range q.Aggregations {
		if _, dup := seen[a.Name]; dup && a.Name != "" {
			return errors.Mark(errors.Newf("duplicate output name %q", a.Name), ErrInvalidQuery)
		}
		seen[a.Name] = struct{}{}
	}
	return nil
}
