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

package aggregator

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidSpec marks configuration errors found while building a
	// factory. No rows are read before they are reported.
	ErrInvalidSpec = errors.New("invalid aggregator spec")
	// ErrUnknownType is returned for spec types with no registered family.
	ErrUnknownType = errors.New("unknown aggregator type")
	// ErrNotMergeable is returned by MergingFactory for factories of a
	// different family or output name.
	ErrNotMergeable = errors.New("aggregator factories are not mergeable")
)

func notMergeable(f, other Factory) error {
	return errors.Mark(errors.Newf("cannot merge %s with %s", f, other), ErrNotMergeable)
}
