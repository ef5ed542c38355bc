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
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/mars-lan/druid/cachekey"
	"github.com/mars-lan/druid/macro"
	"github.com/mars-lan/druid/selector"
	"github.com/mars-lan/druid/utils/cast"
)

// simpleSpec is the immutable input description shared by the single
// column families: an output name and a column, an expression, or both.
// When both are given the expression supplies the value. The macro table
// is borrowed.
type simpleSpec struct {
	name       string
	fieldName  string
	expression string
	macros     *macro.Table
	compiled   *macro.Expression
}

func newSimpleSpec(kind, name, fieldName, expression string, macros *macro.Table) (simpleSpec, error) {
	if name == "" {
		return simpleSpec{}, errors.Mark(errors.Newf("%s: name is required", kind), ErrInvalidSpec)
	}
	if fieldName == "" && expression == "" {
		return simpleSpec{}, errors.Mark(
			errors.Newf("%s %q: fieldName or expression is required", kind, name),
			ErrInvalidSpec)
	}
	if macros == nil {
		macros = macro.Nil()
	}
	s := simpleSpec{name: name, fieldName: fieldName, expression: expression, macros: macros}
	if expression != "" {
		compiled, err := macros.Compile(expression)
		if err != nil {
			return simpleSpec{}, errors.Mark(errors.Wrapf(err, "%s %q", kind, name), ErrInvalidSpec)
		}
		s.compiled = compiled
	}
	return s, nil
}

// combining reads the output column of s.
func (s simpleSpec) combining() simpleSpec {
	return simpleSpec{name: s.name, fieldName: s.name, macros: s.macros}
}

// raw names the input by its field name, falling back to the output name
// for expression inputs.
func (s simpleSpec) raw() simpleSpec {
	r := s
	if s.fieldName != "" {
		r.name = s.fieldName
	}
	return r
}

func (s simpleSpec) requiredFields() []string {
	if s.compiled != nil {
		return s.compiled.Fields()
	}
	return []string{s.fieldName}
}

func (s simpleSpec) cacheKey(typeID byte) []byte {
	return cachekey.New(typeID).
		AppendOptionalString(s.fieldName).
		AppendOptionalString(s.expression).
		Build()
}

func (s simpleSpec) longSelector(cs selector.Factory) selector.Long {
	return selector.MakeLong(cs, s.fieldName, s.compiled)
}

func (s simpleSpec) doubleSelector(cs selector.Factory) selector.Double {
	return selector.MakeDouble(cs, s.fieldName, s.compiled)
}

func (s simpleSpec) format(kind string) string {
	return fmt.Sprintf("%s{fieldName='%s', expression='%s', name='%s'}", kind, s.fieldName, s.expression, s.name)
}

// mustOptional converts a partial value. Values that are not numbers are a
// programming error in the caller.
func mustOptional[T Number](v any) Optional[T] {
	o, err := toOptional[T](v)
	if err != nil {
		panic(errors.NewAssertionErrorWithWrappedErrf(err, "combine on incompatible value %T", v))
	}
	return o
}

func toOptional[T Number](v any) (Optional[T], error) {
	switch x := v.(type) {
	case nil:
		return Absent[T](), nil
	case Optional[T]:
		return x, nil
	}
	var zero T
	if _, isLong := any(zero).(int64); isLong {
		i, ok, err := cast.ToInt64E(v)
		if err != nil || !ok {
			return Absent[T](), err
		}
		return Present(T(i)), nil
	}
	f, ok, err := cast.ToFloat64E(v)
	if err != nil || !ok {
		return Absent[T](), err
	}
	return Present(T(f)), nil
}
