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

package aspect

import (
	"sync"

	"github.com/taxgraph/engine/types"
)

var _ EvalAspect = (*Debug)(nil)

// Debug records every node transition observed during an evaluation walk,
// grounded on the teacher's NodeDebugAspect
// (builtin/aspect/node_debug_aspect.go), which collects before/after
// trace entries for a rule chain's node execution.
type Debug struct {
	mu      sync.Mutex
	entries []Trace
}

// Trace is one recorded node transition.
type Trace struct {
	ID     types.InstanceID
	Status types.Status
	Value  types.Value
	Err    error
}

// Before implements EvalAspect; debug tracing only records terminal
// state, so Before is a no-op here.
func (d *Debug) Before(def types.NodeDefinition) {}

// After implements EvalAspect.
func (d *Debug) After(def types.NodeDefinition, status types.Status, value types.Value, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = append(d.entries, Trace{ID: def.ID, Status: status, Value: value, Err: err})
}

// Entries returns a snapshot copy of every trace recorded so far.
func (d *Debug) Entries() []Trace {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Trace, len(d.entries))
	copy(out, d.entries)
	return out
}

// Reset clears recorded traces, typically called between Process calls
// in a test harness that wants per-event isolation.
func (d *Debug) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries = nil
}
