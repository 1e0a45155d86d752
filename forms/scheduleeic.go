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

// Schedule EIC instance IDs, package-level so Form1040Line27 (in
// schedule2.go) can depend on the worksheet without a string literal.
var (
	eicNumChildren      = types.BuildInstanceID("scheduleeic", "joint", "numChildren")
	eicInvestmentIncome = types.BuildInstanceID("scheduleeic", "joint", "investmentIncome")
	eicEarnedIncome     = types.BuildInstanceID("scheduleeic", "joint", "earnedIncome")
	eicIsEligible       = types.BuildInstanceID("scheduleeic", "joint", "isEligible")
	eicWorksheetLine6   = types.BuildInstanceID("scheduleeic", "joint", "worksheetLine6")
)

// investmentIncomeLimit2024 is the 2024 EITC disqualifying investment
// income threshold.
const investmentIncomeLimit2024 = 11600

// ScheduleEIC registers the eligibility gate and credit worksheet (spec
// §8 "EITC eligibility gating"). married_filing_separately always fails
// eligibility under current law; every other filing status is eligible
// as long as investment income stays under the statutory limit --
// children only change the credit amount a full implementation would
// compute from the EIC table, which this sample overlay elides.
func ScheduleEIC() []types.NodeDefinition {
	return []types.NodeDefinition{
		{ID: eicNumChildren, Kind: types.KindInput, Value: types.ValueInteger, Owner: types.OwnerJoint},
		{ID: eicInvestmentIncome, Kind: types.KindInput, Value: types.ValueCurrency, Owner: types.OwnerJoint},
		{ID: eicEarnedIncome, Kind: types.KindInput, Value: types.ValueCurrency, Owner: types.OwnerJoint},
		{
			ID: eicIsEligible, Kind: types.KindComputed, Value: types.ValueBoolean, Owner: types.OwnerJoint,
			Dependencies: []types.InstanceID{eicInvestmentIncome},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				if ctx.FilingStatus() == types.FilingMarriedFilingSeparately {
					return types.Boolean(false), nil
				}
				if types.SafeNum(ctx.Get(eicInvestmentIncome)) >= investmentIncomeLimit2024 {
					return types.Boolean(false), nil
				}
				return types.Boolean(true), nil
			},
		},
		{
			ID: eicWorksheetLine6, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: types.OwnerJoint,
			Dependencies: []types.InstanceID{eicEarnedIncome, eicNumChildren, eicIsEligible},
			IsApplicable: func(ctx types.EvalContext) bool {
				return ctx.Get(eicIsEligible).Bool
			},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				// A full implementation looks up the EIC table by earned
				// income and number of qualifying children; this sample
				// flat-rates it at 34% for one placeholder child bracket
				// to keep the eligibility-gating scenario self-contained.
				return types.Currency(types.SafeNum(ctx.Get(eicEarnedIncome)) * 0.34), nil
			},
		},
	}
}
