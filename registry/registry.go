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

// Package registry holds node definitions, assigns topological order, and
// detects cycles and unknown dependencies at registration time (spec
// §4.1); a repeated ID replaces the earlier definition. It is
// the Go re-expression of the source's global mutable registry as an
// explicit builder producing an immutable Registry (Design Notes §9).
package registry

import (
	"sort"

	"github.com/taxgraph/engine/types"
)

// Registry is the immutable, post-Build catalog of node definitions.
// Sessions hold a read-only reference and may share one Registry safely
// across goroutines (spec §5 "Concurrent sessions").
type Registry struct {
	defs  map[types.InstanceID]types.NodeDefinition
	order map[types.InstanceID]types.Order
	// ordered is defs' IDs pre-sorted by (Order, ID) for the evaluator's
	// topological walk.
	ordered []types.InstanceID
	// dependents is the inverse of NodeDefinition.Dependencies, computed
	// once at Build time and reused by the evaluator's dirtying walk.
	dependents map[types.InstanceID][]types.InstanceID
}

// Definitions returns every registered definition, keyed by ID. The
// returned map is a defensive copy.
func (r *Registry) Definitions() map[types.InstanceID]types.NodeDefinition {
	out := make(map[types.InstanceID]types.NodeDefinition, len(r.defs))
	for k, v := range r.defs {
		out[k] = v
	}
	return out
}

// Get returns a single definition by ID.
func (r *Registry) Get(id types.InstanceID) (types.NodeDefinition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Order returns the Kahn-level assigned to id at Build time.
func (r *Registry) Order(id types.InstanceID) (types.Order, bool) {
	o, ok := r.order[id]
	return o, ok
}

// OrderedIDs returns every instance ID in ascending topological order,
// ties broken lexicographically (spec §4.1 "Order assignment").
func (r *Registry) OrderedIDs() []types.InstanceID {
	out := make([]types.InstanceID, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Dependents returns the direct dependents of id -- the inverse of
// NodeDefinition.Dependencies -- computed once at Build time and reused
// by the evaluator's dirtying walk.
func (r *Registry) Dependents(id types.InstanceID) []types.InstanceID {
	return r.dependents[id]
}

// Len reports how many definitions are registered.
func (r *Registry) Len() int { return len(r.defs) }

// sortedIDs returns ids sorted by (assigned order, id) ascending.
func sortedIDs(ids []types.InstanceID, order map[types.InstanceID]types.Order) []types.InstanceID {
	out := make([]types.InstanceID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		oi, oj := order[out[i]], order[out[j]]
		if oi != oj {
			return oi < oj
		}
		return out[i] < out[j]
	})
	return out
}
