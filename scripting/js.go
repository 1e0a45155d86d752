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

package scripting

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dop251/goja"
	"github.com/taxgraph/engine/types"
)

// jsFuncName is the entry point every compiled script must define,
// mirroring the teacher's GojaJsEngine.Execute funcName convention
// (utils/js/js_engine.go).
const jsFuncName = "evaluate"

// JSEngine wraps one goja VM per compiled script, grounded on the
// teacher's GojaJsEngine: a VM is created once, the script source is run
// once to define `evaluate`, and Execute is invoked per tick. A mutex
// protects the VM since goja.Runtime is not safe for concurrent use.
type JSEngine struct {
	mu sync.Mutex
	vm *goja.Runtime
}

// NewJSEngine compiles src, which must define a top-level function named
// "evaluate(ctx)" returning either a number or a boolean.
func NewJSEngine(src string) (*JSEngine, error) {
	vm := goja.New()
	if _, err := vm.RunString(src); err != nil {
		return nil, fmt.Errorf("taxgraph/scripting: run script: %w", err)
	}
	if _, ok := goja.AssertFunction(vm.Get(jsFuncName)); !ok {
		return nil, errors.New("taxgraph/scripting: script does not define evaluate(ctx)")
	}
	return &JSEngine{vm: vm}, nil
}

func (e *JSEngine) run(ctx types.EvalContext) (goja.Value, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	fn, _ := goja.AssertFunction(e.vm.Get(jsFuncName))
	arg := e.vm.ToValue(newBindings(ctx))
	return fn(goja.Undefined(), arg)
}

// Compute adapts the engine to types.ComputeFunc, expecting "evaluate"
// to return a number.
func (e *JSEngine) Compute(ctx types.EvalContext) (types.Value, error) {
	out, err := e.run(ctx)
	if err != nil {
		return types.Value{}, err
	}
	f := out.ToFloat()
	return types.Number(f), nil
}

// Applicable adapts the engine to types.ApplicabilityFunc, expecting
// "evaluate" to return a boolean.
func (e *JSEngine) Applicable(ctx types.EvalContext) bool {
	out, err := e.run(ctx)
	if err != nil {
		return false
	}
	return out.ToBoolean()
}

// CompileJSCompute is sugar for NewJSEngine(src).Compute as a
// types.ComputeFunc.
func CompileJSCompute(src string) (types.ComputeFunc, error) {
	eng, err := NewJSEngine(src)
	if err != nil {
		return nil, err
	}
	return eng.Compute, nil
}

// CompileJSApplicability is sugar for NewJSEngine(src).Applicable as a
// types.ApplicabilityFunc.
func CompileJSApplicability(src string) (types.ApplicabilityFunc, error) {
	eng, err := NewJSEngine(src)
	if err != nil {
		return nil, err
	}
	return eng.Applicable, nil
}
