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

// Package forms is a small sample overlay demonstrating how a domain
// team expresses IRS worksheets as data over the engine: Form 8889 (HSA
// deduction), Schedule 2 line 17b (cross-form aggregation), Schedule EIC
// (eligibility gating), and a repeatable 1099-INT slot. It is not a
// complete tax library (spec §1 scope note).
package forms

import (
	"github.com/taxgraph/engine/types"
)

// selfOnlyLimit2024 is the 2024 HSA self-only contribution limit in
// whole dollars (line 3 of the real Form 8889 worksheet, before
// catch-up). This sample overlay hardcodes the self-only case to keep
// the scenario self-contained; a full form would branch on coverage
// type and pro-rate by month.
const selfOnlyLimit2024 = 4300

// catchUpAge is the age at which the $1,000 catch-up contribution
// (line 4) becomes available.
const catchUpAge = 55

const catchUpAmount = 1000

// F8889 registers one owner's (primary or spouse) HSA worksheet:
//
//	f8889.{owner}.age            INPUT  integer
//	f8889.{owner}.disabled       INPUT  boolean
//	f8889.{owner}.personalContribution INPUT currency
//	f8889.{owner}.totalDistributions   INPUT currency
//	f8889.{owner}.qualifiedExpenses    INPUT currency
//	f8889.{owner}.line3  COMPUTED currency  -- base contribution limit
//	f8889.{owner}.line4  COMPUTED currency  -- catch-up
//	f8889.{owner}.line5  COMPUTED currency  -- line3 + line4
//	f8889.{owner}.line12 COMPUTED currency  -- allowed deduction
//	f8889.{owner}.line13 COMPUTED currency  -- HSA deduction (= line12)
//	f8889.{owner}.line17a COMPUTED currency -- taxable distributions
//	f8889.{owner}.line17b COMPUTED currency -- distributions subject to the 20% penalty
//
// grounded on the HSA scenarios in spec §8 ("HSA deduction caps",
// "Catch-up at 55", "HSA penalty waiver by disability").
func F8889(owner types.Owner) []types.NodeDefinition {
	id := func(field string) types.InstanceID {
		return types.BuildInstanceID("f8889", string(owner), field)
	}

	age := id("age")
	disabled := id("disabled")
	personalContribution := id("personalContribution")
	totalDistributions := id("totalDistributions")
	qualifiedExpenses := id("qualifiedExpenses")
	line3 := id("line3")
	line4 := id("line4")
	line5 := id("line5")
	line12 := id("line12")
	line13 := id("line13")
	line17a := id("line17a")
	line17b := id("line17b")

	return []types.NodeDefinition{
		{ID: age, Kind: types.KindInput, Value: types.ValueInteger, Owner: owner},
		{ID: disabled, Kind: types.KindInput, Value: types.ValueBoolean, Owner: owner},
		{ID: personalContribution, Kind: types.KindInput, Value: types.ValueCurrency, Owner: owner},
		{ID: totalDistributions, Kind: types.KindInput, Value: types.ValueCurrency, Owner: owner},
		{ID: qualifiedExpenses, Kind: types.KindInput, Value: types.ValueCurrency, Owner: owner},
		{
			ID: line3, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				return types.Currency(selfOnlyLimit2024), nil
			},
		},
		{
			ID: line4, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Dependencies: []types.InstanceID{age},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				if int64(types.SafeNum(ctx.Get(age))) >= catchUpAge {
					return types.Currency(catchUpAmount), nil
				}
				return types.Currency(0), nil
			},
		},
		{
			ID: line5, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Dependencies: []types.InstanceID{line3, line4},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				return types.Currency(types.SafeNum(ctx.Get(line3)) + types.SafeNum(ctx.Get(line4))), nil
			},
		},
		{
			ID: line12, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Dependencies: []types.InstanceID{personalContribution, line5},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				contribution := types.SafeNum(ctx.Get(personalContribution))
				limit := types.SafeNum(ctx.Get(line5))
				return types.Currency(min(contribution, limit)), nil
			},
		},
		{
			ID: line13, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Dependencies: []types.InstanceID{line12},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				return types.Currency(types.SafeNum(ctx.Get(line12))), nil
			},
		},
		{
			ID: line17a, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Dependencies: []types.InstanceID{totalDistributions},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				return types.Currency(types.SafeNum(ctx.Get(totalDistributions))), nil
			},
		},
		{
			// Distributions not used for qualified medical expenses are
			// subject to a 20% additional tax (spec §8 scenario 3)
			// unless the account holder is disabled or 65+ -- this
			// sample only models the disability waiver.
			ID: line17b, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: owner,
			Dependencies: []types.InstanceID{disabled, totalDistributions, qualifiedExpenses},
			Compute: func(ctx types.EvalContext) (types.Value, error) {
				if ctx.Get(disabled).Bool {
					return types.Currency(0), nil
				}
				unqualified := types.SafeNum(ctx.Get(totalDistributions)) - types.SafeNum(ctx.Get(qualifiedExpenses))
				return types.Currency(max(unqualified, 0)), nil
			},
		},
	}
}
