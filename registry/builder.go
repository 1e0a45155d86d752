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

package registry

import (
	"sort"

	"github.com/taxgraph/engine/aspect"
	"github.com/taxgraph/engine/types"
)

// Builder accrues NodeDefinitions across possibly-repeated Add calls and
// produces an immutable Registry on Build, re-expressing the source's
// global mutable registry as an explicit builder (Design Notes §9).
type Builder struct {
	defs    map[types.InstanceID]types.NodeDefinition
	order   []types.InstanceID
	aspects []aspect.BuildAspect
}

// NewBuilder constructs an empty Builder. Passing aspects runs their
// BeforeBuild hook just before the cycle walk, mirroring the teacher's
// OnChainBeforeInit/OnNodeBeforeInit aspect points.
func NewBuilder(aspects ...aspect.BuildAspect) *Builder {
	return &Builder{
		defs:    make(map[types.InstanceID]types.NodeDefinition),
		aspects: aspects,
	}
}

// Add merges a batch of definitions into the builder. Add is repeat-safe:
// a later definition with an ID already present replaces the earlier one
// (last one wins), whether or not the two are identical. No duplicate-ID
// error is raised by Add or by Build.
func (b *Builder) Add(defs ...types.NodeDefinition) *Builder {
	for _, d := range defs {
		if _, seen := b.defs[d.ID]; !seen {
			b.order = append(b.order, d.ID)
		}
		b.defs[d.ID] = d
	}
	return b
}

// Seed copies every definition out of an existing Registry into the
// builder, the first step of the atomic slot-insertion flow described in
// spec §4.2 ("a slot insertion is one register call").
func (b *Builder) Seed(r *Registry) *Builder {
	for _, id := range r.OrderedIDs() {
		d, _ := r.Get(id)
		b.Add(d)
	}
	return b
}

// Build performs the structural, closure and cycle checks from spec §4.1
// (duplicates were already collapsed by Add) and returns an immutable Registry with Kahn-level Order assigned, ties
// broken lexicographically by ID.
func (b *Builder) Build() (*Registry, error) {
	for _, a := range b.aspects {
		if err := a.BeforeBuild(b.defs); err != nil {
			return nil, err
		}
	}

	for id, d := range b.defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		_ = id
	}

	// Closure check: every declared dependency must resolve in the
	// merged catalog.
	for _, d := range b.defs {
		for _, dep := range d.Dependencies {
			if _, ok := b.defs[dep]; !ok {
				return nil, &types.UnknownDependencyError{From: d.ID, To: dep}
			}
		}
	}

	// Kahn's algorithm: level-by-level topological sort, detecting
	// cycles as the set of IDs with unresolved in-edges after the walk.
	inDegree := make(map[types.InstanceID]int, len(b.defs))
	dependents := make(map[types.InstanceID][]types.InstanceID, len(b.defs))
	for id, d := range b.defs {
		if _, ok := inDegree[id]; !ok {
			inDegree[id] = 0
		}
		for _, dep := range d.Dependencies {
			inDegree[id]++
			dependents[dep] = append(dependents[dep], id)
		}
	}

	order := make(map[types.InstanceID]types.Order, len(b.defs))
	remaining := make(map[types.InstanceID]int, len(inDegree))
	for id, deg := range inDegree {
		remaining[id] = deg
	}

	level := types.Order(0)
	processed := 0
	for {
		var frontier []types.InstanceID
		for id, deg := range remaining {
			if deg == 0 {
				frontier = append(frontier, id)
			}
		}
		if len(frontier) == 0 {
			break
		}
		sort.Slice(frontier, func(i, j int) bool { return frontier[i] < frontier[j] })
		for _, id := range frontier {
			order[id] = level
			delete(remaining, id)
			processed++
		}
		for _, id := range frontier {
			for _, dep := range dependents[id] {
				remaining[dep]--
			}
		}
		level++
	}

	if processed != len(b.defs) {
		cyclic := make([]types.InstanceID, 0, len(remaining))
		for id := range remaining {
			cyclic = append(cyclic, id)
		}
		sort.Slice(cyclic, func(i, j int) bool { return cyclic[i] < cyclic[j] })
		return nil, &types.CycleError{IDs: cyclic}
	}

	defsCopy := make(map[types.InstanceID]types.NodeDefinition, len(b.defs))
	for k, v := range b.defs {
		defsCopy[k] = v
	}

	allIDs := make([]types.InstanceID, 0, len(b.defs))
	for id := range b.defs {
		allIDs = append(allIDs, id)
	}
	ordered := sortedIDs(allIDs, order)

	r := &Registry{
		defs:       defsCopy,
		order:      order,
		ordered:    ordered,
		dependents: dependents,
	}
	return r, nil
}
