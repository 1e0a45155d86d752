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

// Package aspect provides AOP-style hooks applied around registry
// construction and evaluation, mirroring the teacher's types.Aspect /
// NodeBeforeAspect / NodeAfterAspect family (types/aspect.go) but scoped
// to the two places this engine actually needs cross-cutting behavior:
// registry build and per-node evaluation.
package aspect

import (
	"github.com/taxgraph/engine/types"
)

// BuildAspect runs once before registry.Builder.Build performs its
// cycle/closure walk, mirroring OnChainBeforeInit/OnNodeBeforeInit.
type BuildAspect interface {
	BeforeBuild(defs map[types.InstanceID]types.NodeDefinition) error
}

// EvalAspect wraps a single node's evaluation during the topological
// walk, mirroring the teacher's Before/After node aspects in
// engine/chain.go's onBefore/onAfter.
type EvalAspect interface {
	// Before runs before the gates in spec §4.3.3 are evaluated.
	Before(def types.NodeDefinition)
	// After runs once the node's terminal status/value is known.
	After(def types.NodeDefinition, status types.Status, value types.Value, err error)
}

// List is an ordered collection of EvalAspects applied around every node
// evaluated during a walk.
type List []EvalAspect

func (l List) before(def types.NodeDefinition) {
	for _, a := range l {
		a.Before(def)
	}
}

func (l List) after(def types.NodeDefinition, status types.Status, value types.Value, err error) {
	for _, a := range l {
		a.After(def, status, value, err)
	}
}

// Around calls fn between Before/After for every aspect in l, the shape
// the evaluator uses to wrap each node's gate-and-compute sequence.
func (l List) Around(def types.NodeDefinition, fn func() (types.Status, types.Value, error)) (types.Status, types.Value, error) {
	l.before(def)
	status, value, err := fn()
	l.after(def, status, value, err)
	return status, value, err
}
