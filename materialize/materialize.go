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

// Package materialize converts repeatable node-definition templates into
// concrete per-owner, per-slot instances, and rebuilds the aggregators
// that sum over them (spec §4.2). It is the Go re-expression of
// "spouse-instance materialization" from the Design Notes: templates are
// expanded into concrete instances driven by session context, rather
// than relying on dependencies being listed but absent at read time.
package materialize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/taxgraph/engine/types"
)

// placeholderOwner and placeholderSlot are the template substitution
// tokens a repeatable NodeDefinition's ID and Dependencies may contain.
const (
	placeholderOwner = "{owner}"
	placeholderSlot  = "{slotIndex}"
)

// Slot identifies one concrete instance of a repeatable template.
type Slot struct {
	Owner types.Owner
	Index int
}

// MaterializeSlot expands one template definition into its concrete
// definition for the given (owner, slotIndex) pair, substituting {owner} and {slotIndex} into the ID and into any
// dependency that itself names the same template (spec §4.2).
//
// tmpl.ID and entries in tmpl.Dependencies that should scale with the
// slot must contain both placeholders, e.g.
// "f1099int.{owner}.box1.s{slotIndex}".
func MaterializeSlot(tmpl types.NodeDefinition, slot Slot) types.NodeDefinition {
	out := tmpl
	out.ID = substitute(tmpl.ID, slot)
	out.Owner = slot.Owner
	out.Repeatable = false

	if len(tmpl.Dependencies) > 0 {
		deps := make([]types.InstanceID, len(tmpl.Dependencies))
		for i, d := range tmpl.Dependencies {
			deps[i] = substitute(d, slot)
		}
		out.Dependencies = deps
	}
	return out
}

// MaterializeSlots expands every template in tmpls for one slot in a
// batch call, the common case when a form's per-document fields (box1, box2, ...)
// are registered together for one concrete slot.
func MaterializeSlots(tmpls []types.NodeDefinition, slot Slot) []types.NodeDefinition {
	out := make([]types.NodeDefinition, len(tmpls))
	for i, t := range tmpls {
		out[i] = MaterializeSlot(t, slot)
	}
	return out
}

func substitute(id types.InstanceID, slot Slot) types.InstanceID {
	s := string(id)
	s = strings.ReplaceAll(s, placeholderOwner, string(slot.Owner))
	s = strings.ReplaceAll(s, placeholderSlot, strconv.Itoa(slot.Index))
	return types.InstanceID(s)
}

// RebuildAggregator replaces an aggregator's dependency list with the
// current set of concrete slot instance IDs and regenerates its Compute
// as the sum of those instances' SafeNum-coerced values, preserving
// every other field (spec §4.2). An AGGREGATOR is, by definition, a
// pure-sum-over-siblings node (types.KindAggregator's doc comment), so
// Compute always tracks Dependencies rather than being authored once and
// going stale as slots are added or removed. Removing a slot removes
// only that dependency; surviving slots keep their IDs and their
// position is never renumbered, satisfying the invariant in spec §4.2.
func RebuildAggregator(agg types.NodeDefinition, slotInstanceIDs []types.InstanceID) types.NodeDefinition {
	out := agg
	deps := make([]types.InstanceID, len(slotInstanceIDs))
	copy(deps, slotInstanceIDs)
	sort.Slice(deps, func(i, j int) bool { return deps[i] < deps[j] })
	out.Dependencies = deps
	out.Compute = SumCompute(deps)
	return out
}

// SumCompute returns a ComputeFunc summing the SafeNum-coerced value of
// every instance in deps, the additive semantics every AGGREGATOR node
// shares (spec §4.5 "skipped-null propagation": a SKIPPED or missing
// dependency contributes zero, never an error).
func SumCompute(deps []types.InstanceID) types.ComputeFunc {
	ids := make([]types.InstanceID, len(deps))
	copy(ids, deps)
	return func(ctx types.EvalContext) (types.Value, error) {
		total := 0.0
		for _, id := range ids {
			total += types.SafeNum(ctx.Get(id))
		}
		return types.Currency(total), nil
	}
}

// SlotFieldID builds the concrete instance ID for one field of a
// materialized slot, the naming convention MaterializeSlot's substitution
// assumes: "{form}.{owner}.{field}.s{index}".
func SlotFieldID(form string, owner types.Owner, field string, index int) types.InstanceID {
	return types.InstanceID(fmt.Sprintf("%s.%s.%s.s%d", form, owner, field, index))
}
