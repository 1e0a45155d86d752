/*
 * Copyright 2024 The Tax Graph Authors.
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

// Package scripting gives domain node definitions two data-driven ways
// to express Compute/IsApplicable without a Go closure: expr-lang/expr
// arithmetic expressions and goja JavaScript snippets. Grounded on the
// teacher's components/transform/expr_*.go (expr.Compile + vm.Run
// against a message) and utils/js/js_engine.go (goja VM per node).
// The engine treats either adapter as the same opaque ComputeFunc
// (Design Notes §9).
package scripting

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/taxgraph/engine/types"
)

// bindings is the read-only object an expr program or goja script sees
// in place of a raw EvalContext, so scripts cannot call back into engine
// internals beyond the five EvalContext operations (spec §4.4).
type bindings struct {
	ctx types.EvalContext
}

func newBindings(ctx types.EvalContext) map[string]any {
	b := bindings{ctx: ctx}
	return map[string]any{
		"get":          func(id string) float64 { return types.SafeNum(b.ctx.Get(types.InstanceID(id))) },
		"status":       func(id string) string { return string(b.ctx.Status(types.InstanceID(id))) },
		"taxYear":      b.ctx.TaxYear(),
		"filingStatus": string(b.ctx.FilingStatus()),
		"hasSpouse":    b.ctx.HasSpouse(),
	}
}

// ExprProgram is a precompiled expr-lang/expr program bound to a
// NodeDefinition's Compute field, compiled once at registration time the
// way the teacher's ExprAssignNode.Init compiles its script in Init
// rather than per message.
type ExprProgram struct {
	program *vm.Program
}

// CompileExprCompute compiles src once and returns a ComputeFunc that
// evaluates it against the five EvalContext bindings, expecting src to
// return a float64 (returned as a number Value).
func CompileExprCompute(src string) (types.ComputeFunc, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("taxgraph/scripting: compile expr: %w", err)
	}
	return func(ctx types.EvalContext) (types.Value, error) {
		out, err := vm.Run(program, newBindings(ctx))
		if err != nil {
			return types.Value{}, err
		}
		f, ok := out.(float64)
		if !ok {
			return types.Value{}, fmt.Errorf("taxgraph/scripting: expr returned %T, want float64", out)
		}
		return types.Number(f), nil
	}, nil
}

// CompileExprApplicability compiles src once and returns an
// ApplicabilityFunc, expecting src to return a bool.
func CompileExprApplicability(src string) (types.ApplicabilityFunc, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("taxgraph/scripting: compile expr: %w", err)
	}
	return func(ctx types.EvalContext) bool {
		out, err := vm.Run(program, newBindings(ctx))
		if err != nil {
			return false
		}
		b, _ := out.(bool)
		return b
	}, nil
}
