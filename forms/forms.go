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

import "github.com/taxgraph/engine/types"

// Form1040Line27 is the earned income credit line on Form 1040,
// reading Schedule EIC's worksheet (spec §8 "EITC eligibility gating":
// "downstream Form 1040 Line 27 reads null -> 0").
func Form1040Line27() types.NodeDefinition {
	return types.NodeDefinition{
		ID:           types.BuildInstanceID("f1040", "joint", "line27"),
		Kind:         types.KindComputed,
		Value:        types.ValueCurrency,
		Owner:        types.OwnerJoint,
		Dependencies: []types.InstanceID{eicWorksheetLine6},
		Compute: func(ctx types.EvalContext) (types.Value, error) {
			return types.Currency(types.SafeNum(ctx.Get(eicWorksheetLine6))), nil
		},
	}
}

// Definitions assembles the full sample overlay for one filing: Form
// 8889 for the primary filer (and the spouse, when hasSpouse), Schedule
// 2 line 17b aggregating over whichever owners are present, Schedule
// EIC, Form 1040 line 27, and a zero-slot 1099-INT aggregator ready for
// AddSlot. This is the starting registry cmd/taxgraphd and the engine
// package's tests build a Session from.
func Definitions(hasSpouse bool) []types.NodeDefinition {
	defs := F8889(types.OwnerPrimary)
	line17bIDs := []types.InstanceID{types.BuildInstanceID("f8889", "primary", "line17b")}

	if hasSpouse {
		defs = append(defs, F8889(types.OwnerSpouse)...)
		line17bIDs = append(line17bIDs, types.BuildInstanceID("f8889", "spouse", "line17b"))
	}

	defs = append(defs, Schedule2Line17b(line17bIDs...))
	defs = append(defs, ScheduleEIC()...)
	defs = append(defs, Form1040Line27())
	defs = append(defs, F1099IntAggregator())
	return defs
}
