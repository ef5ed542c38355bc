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

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/types"
)

// Constructor builds a factory from a parsed aggregator spec.
type Constructor func(spec types.AggregatorSpec, macros *macro.Table) (Factory, error)

// Registry type names.
const (
	CountStr     = "count"
	LongSumStr   = "longSum"
	LongMinStr   = "longMin"
	LongMaxStr   = "longMax"
	LongAnyStr   = "longAny"
	DoubleSumStr = "doubleSum"
	DoubleMinStr = "doubleMin"
	DoubleMaxStr = "doubleMax"
	DoubleAnyStr = "doubleAny"
)

var (
	aggregatorRegistry = make(map[string]Constructor)
	registryMutex      sync.RWMutex
)

func init() {
	Register(CountStr, func(s types.AggregatorSpec, _ *macro.Table) (Factory, error) {
		f, err := NewCount(s.Name)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
	Register(LongSumStr, simple(NewLongSum))
	Register(LongMinStr, simple(NewLongMin))
	Register(LongMaxStr, simple(NewLongMax))
	Register(LongAnyStr, simple(NewLongAny))
	Register(DoubleSumStr, simple(NewDoubleSum))
	Register(DoubleMinStr, simple(NewDoubleMin))
	Register(DoubleMaxStr, simple(NewDoubleMax))
	Register(DoubleAnyStr, simple(NewDoubleAny))
}

func simple[F Factory](newFn func(name, fieldName, expression string, macros *macro.Table) (F, error)) Constructor {
	return func(s types.AggregatorSpec, macros *macro.Table) (Factory, error) {
		f, err := newFn(s.Name, s.FieldName, s.Expression, macros)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
}

// Register adds or replaces the constructor for a type name.
func Register(typeName string, c Constructor) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	aggregatorRegistry[typeName] = c
}

// Types lists the registered type names in sorted order.
func Types() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	names := make([]string, 0, len(aggregatorRegistry))
	for name := range aggregatorRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromSpec builds the factory a spec names.
func FromSpec(spec types.AggregatorSpec, macros *macro.Table) (Factory, error) {
	registryMutex.RLock()
	c, ok := aggregatorRegistry[spec.Type]
	registryMutex.RUnlock()
	if !ok {
		return nil, errors.Mark(errors.Newf("aggregator %q: type %q", spec.Name, spec.Type), ErrUnknownType)
	}
	return c(spec, macros)
}

// FromSpecs builds factories in spec order and stops at the first error.
func FromSpecs(specs []types.AggregatorSpec, macros *macro.Table) ([]Factory, error) {
	factories := make([]Factory, 0, len(specs))
	for _, spec := range specs {
		f, err := FromSpec(spec, macros)
		if err != nil {
			return nil, err
		}
		factories = append(factories, f)
	}
	return factories, nil
}
