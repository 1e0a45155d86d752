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

// Schedule2Line17b aggregates every present owner's Form 8889 line 17b
// into schedule2.joint.line17b, an AGGREGATOR over the primary/spouse
// instances materialize.RebuildAggregator re-targets when a spouse is
// added or removed (spec §8 "Cross-form aggregation"). line17bIDs must
// list only owners actually registered: a spouse who was never
// materialized cannot appear here, since registry.Build rejects a
// dependency closure that references an unregistered instance -- the
// caller (forms.Definitions) omits it entirely rather than relying on
// SafeNum's null-coercion to paper over a dangling dependency.
func Schedule2Line17b(line17bIDs ...types.InstanceID) types.NodeDefinition {
	return types.NodeDefinition{
		ID:           types.BuildInstanceID("schedule2", "joint", "line17b"),
		Kind:         types.KindAggregator,
		Value:        types.ValueCurrency,
		Owner:        types.OwnerJoint,
		Dependencies: line17bIDs,
		Compute:      materialize.SumCompute(line17bIDs),
	}
}
