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

package forms

import (
	"github.com/taxgraph/engine/materialize"
	"github.com/taxgraph/engine/types"
)

// F1099IntTemplates is the repeatable per-document template materialize
// expands into a concrete slot (spec §8 "Slot insertion reactivity"):
// one INPUT, box1, per 1099-INT received. materialize.MaterializeSlot
// substitutes {owner}/{slotIndex} into both the ID and, since box1 has
// no same-template dependency, nothing else needs it here.
func F1099IntTemplates() []types.NodeDefinition {
	return []types.NodeDefinition{
		{
			ID:         types.BuildInstanceID("f1099int", "{owner}", "box1", "s{slotIndex}"),
			Kind:       types.KindInput,
			Value:      types.ValueCurrency,
			Owner:      types.OwnerJoint,
			Repeatable: true,
		},
	}
}

// F1099IntAggregator builds the initial (zero-slot) interest-income
// aggregator; materialize.RebuildAggregator re-targets its Dependencies
// and Compute whenever a slot is added or removed (spec §8 "Slot
// insertion reactivity").
func F1099IntAggregator() types.NodeDefinition {
	return types.NodeDefinition{
		ID:      types.BuildInstanceID("f1040", "joint", "line2b"),
		Kind:    types.KindAggregator,
		Value:   types.ValueCurrency,
		Owner:   types.OwnerJoint,
		Compute: materialize.SumCompute(nil),
	}
}
