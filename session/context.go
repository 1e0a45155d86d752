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

// Package session owns the per-session snapshot, the reactive evaluator,
// and the initialize/reinitialize lifecycle (spec §4.3, §4.6). This is
// the ~30% core of the engine: a single event arrives, the evaluator
// walks affected COMPUTED nodes in topological order, and a new
// immutable snapshot is returned.
package session

import (
	"github.com/taxgraph/engine/registry"
	"github.com/taxgraph/engine/types"
)

// evalContext implements types.EvalContext against a working map of
// entries being built up during one evaluation walk (spec §4.4). Reads
// of still-dirty nodes see the already-updated value because the walk
// processes strictly increasing Order (spec §4.3.3, §8 "Topological
// soundness").
type evalContext struct {
	sessionCtx types.SessionContext
	working    map[types.InstanceID]types.Entry
	reg        *registry.Registry
}

var _ types.EvalContext = (*evalContext)(nil)

func (e *evalContext) Get(id types.InstanceID) types.Value {
	entry, ok := e.working[id]
	if !ok {
		return types.Null
	}
	switch entry.Status {
	case types.StatusSkipped, types.StatusUnsupported, types.StatusPendingInput:
		return types.Null
	default:
		return entry.Value
	}
}

func (e *evalContext) Status(id types.InstanceID) types.Status {
	entry, ok := e.working[id]
	if !ok {
		return types.StatusPendingInput
	}
	return entry.Status
}

func (e *evalContext) TaxYear() string             { return e.sessionCtx.TaxYear }
func (e *evalContext) FilingStatus() types.FilingStatus { return e.sessionCtx.FilingStatus }
func (e *evalContext) HasSpouse() bool              { return e.sessionCtx.HasSpouse }
