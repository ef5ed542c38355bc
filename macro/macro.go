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

// Package macro holds the table of functions available to aggregator input
// expressions and compiles those expressions with expr-lang/expr.
//
// A Table is read-only once built and is shared by every aggregator factory
// constructed against it.
package macro

import (
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/expr-lang/expr/vm"
	"github.com/mars-lan/druid/utils/cast"
)

// Func is the calling convention of a macro.
type Func func(params ...any) (any, error)

// Macro names a function exposed to expressions.
type Macro struct {
	Name string
	Fn   Func
}

// Table is an immutable set of macros.
type Table struct {
	macros map[string]Func
	names  []string
}

var nilTable = &Table{}

// Nil returns the empty table.
func Nil() *Table {
	return nilTable
}

// NewTable builds a table from macros. Names must be unique and non-empty.
func NewTable(macros ...Macro) (*Table, error) {
	t := &Table{macros: make(map[string]Func, len(macros))}
	for _, m := range macros {
		if m.Name == "" || m.Fn == nil {
			return nil, errors.Newf("macro %q: name and function are required", m.Name)
		}
		if _, dup := t.macros[m.Name]; dup {
			return nil, errors.Newf("macro %q registered twice", m.Name)
		}
		t.macros[m.Name] = m.Fn
		t.names = append(t.names, m.Name)
	}
	sort.Strings(t.names)
	return t, nil
}

// Default returns a table with the built-in macros.
func Default() *Table {
	t, err := NewTable(
		Macro{Name: "coalesce", Fn: coalesce},
		Macro{Name: "bucket", Fn: bucket},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Names returns the sorted macro names.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.names...)
}

func (t *Table) options() []expr.Option {
	opts := []expr.Option{expr.AllowUndefinedVariables()}
	if t == nil {
		return opts
	}
	for _, name := range t.names {
		fn := t.macros[name]
		opts = append(opts, expr.Function(name, func(params ...any) (any, error) {
			return fn(params...)
		}))
	}
	return opts
}

// Compile parses and compiles expression against the table.
func (t *Table) Compile(expression string) (*Expression, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, errors.Wrapf(err, "parse expression %q", expression)
	}
	program, err := expr.Compile(expression, t.options()...)
	if err != nil {
		return nil, errors.Wrapf(err, "compile expression %q", expression)
	}
	return &Expression{
		source:  expression,
		program: program,
		fields:  referencedFields(&tree.Node),
	}, nil
}

// Expression is a compiled, reusable input expression.
type Expression struct {
	source  string
	program *vm.Program
	fields  []string
}

// Eval runs the expression against one row.
func (e *Expression) Eval(row map[string]any) (any, error) {
	return expr.Run(e.program, row)
}

// Fields returns the sorted column names the expression reads.
func (e *Expression) Fields() []string {
	return append([]string(nil), e.fields...)
}

func (e *Expression) String() string {
	return e.source
}

type calleeCollector struct {
	callees map[*ast.IdentifierNode]struct{}
}

func (c *calleeCollector) Visit(node *ast.Node) {
	if call, ok := (*node).(*ast.CallNode); ok {
		if ident, ok := call.Callee.(*ast.IdentifierNode); ok {
			c.callees[ident] = struct{}{}
		}
	}
}

type identCollector struct {
	skip   map[*ast.IdentifierNode]struct{}
	fields map[string]struct{}
}

func (c *identCollector) Visit(node *ast.Node) {
	ident, ok := (*node).(*ast.IdentifierNode)
	if !ok {
		return
	}
	if _, callee := c.skip[ident]; callee {
		return
	}
	c.fields[ident.Value] = struct{}{}
}

func referencedFields(root *ast.Node) []string {
	callees := &calleeCollector{callees: make(map[*ast.IdentifierNode]struct{})}
	ast.Walk(root, callees)
	idents := &identCollector{skip: callees.callees, fields: make(map[string]struct{})}
	ast.Walk(root, idents)

	fields := make([]string, 0, len(idents.fields))
	for f := range idents.fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func coalesce(params ...any) (any, error) {
	for _, p := range params {
		if v, ok := cast.Unbox(p); ok {
			return v, nil
		}
	}
	return nil, nil
}

// bucket floors x to a multiple of size.
func bucket(params ...any) (any, error) {
	if len(params) != 2 {
		return nil, errors.Newf("bucket requires 2 parameters, got %d", len(params))
	}
	x, ok, err := cast.ToFloat64E(params[0])
	if err != nil || !ok {
		return nil, err
	}
	size, ok, err := cast.ToFloat64E(params[1])
	if err != nil || !ok {
		return nil, err
	}
	if size <= 0 {
		return nil, errors.Newf("bucket size must be positive, got %v", size)
	}
	return math.Floor(x/size) * size, nil
}
