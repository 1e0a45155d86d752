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

package engine

import (
	"testing"

	"github.com/taxgraph/engine/forms"
	"github.com/taxgraph/engine/materialize"
	"github.com/taxgraph/engine/types"
)

func jointCtx(hasSpouse bool) types.SessionContext {
	return types.SessionContext{
		TaxYear:      "2024",
		FilingStatus: types.FilingMarriedFilingJointly,
		HasSpouse:    hasSpouse,
		SessionKey:   types.NewSessionKey(),
	}
}

func mustSession(t *testing.T, hasSpouse bool) *Session {
	t.Helper()
	sess, err := NewSession(jointCtx(hasSpouse), forms.Definitions(hasSpouse), NewConfig())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func dollars(t *testing.T, sess *Session, id types.InstanceID) float64 {
	t.Helper()
	entry, ok := sess.Snapshot().Get(id)
	if !ok {
		t.Fatalf("no entry for %s", id)
	}
	return entry.Value.Dollars()
}

// spec §8 scenario 1: HSA deduction caps at line5 (self-only limit, no
// catch-up) regardless of a larger personal contribution.
func TestScenarioHSADeductionCaps(t *testing.T) {
	sess := mustSession(t, false)
	submit := func(field string, v types.Value) {
		res := sess.Process(types.InputEvent{
			InstanceID: types.BuildInstanceID("f8889", "primary", field), Value: v, Source: types.SourcePreparer,
		})
		if res.Outcome != types.OutcomeAccepted {
			t.Fatalf("%s rejected: %s", field, res.RejectDetail)
		}
	}
	submit("age", types.Integer(40))
	submit("personalContribution", types.Currency(6000))
	submit("totalDistributions", types.Currency(0))
	submit("qualifiedExpenses", types.Currency(0))
	submit("disabled", types.Boolean(false))

	if got := dollars(t, sess, types.BuildInstanceID("f8889", "primary", "line12")); got != 4300 {
		t.Errorf("line12 = %v, want 4300 (contribution capped at the self-only limit)", got)
	}
}

// spec §8 scenario 2: catch-up at 55, including a re-send of a younger
// age recomputing the deduction back down.
func TestScenarioCatchUpAt55(t *testing.T) {
	sess := mustSession(t, false)
	submit := func(field string, v types.Value) types.EvalResult {
		return sess.Process(types.InputEvent{
			InstanceID: types.BuildInstanceID("f8889", "primary", field), Value: v, Source: types.SourcePreparer,
		})
	}
	submit("personalContribution", types.Currency(6000))
	submit("totalDistributions", types.Currency(0))
	submit("qualifiedExpenses", types.Currency(0))
	submit("disabled", types.Boolean(false))
	submit("age", types.Integer(55))

	if got := dollars(t, sess, types.BuildInstanceID("f8889", "primary", "line12")); got != 5300 {
		t.Fatalf("line12 at age 55 = %v, want 5300 (4300 + 1000 catch-up)", got)
	}

	submit("age", types.Integer(54))
	if got := dollars(t, sess, types.BuildInstanceID("f8889", "primary", "line12")); got != 4300 {
		t.Errorf("line12 after dropping below 55 = %v, want 4300", got)
	}
}

// spec §8 scenario 3: HSA penalty (line17b) is waived entirely when the
// account holder is disabled, regardless of unqualified distributions.
func TestScenarioHSAPenaltyWaivedByDisability(t *testing.T) {
	sess := mustSession(t, false)
	submit := func(field string, v types.Value) {
		sess.Process(types.InputEvent{
			InstanceID: types.BuildInstanceID("f8889", "primary", field), Value: v, Source: types.SourcePreparer,
		})
	}
	submit("age", types.Integer(40))
	submit("personalContribution", types.Currency(0))
	submit("totalDistributions", types.Currency(2000))
	submit("qualifiedExpenses", types.Currency(500))
	submit("disabled", types.Boolean(true))

	if got := dollars(t, sess, types.BuildInstanceID("f8889", "primary", "line17b")); got != 0 {
		t.Errorf("line17b with disabled=true = %v, want 0 (penalty waived)", got)
	}

	submit("disabled", types.Boolean(false))
	if got := dollars(t, sess, types.BuildInstanceID("f8889", "primary", "line17b")); got != 1500 {
		t.Errorf("line17b with disabled=false = %v, want 1500 (2000-500)", got)
	}
}

// spec §8 scenario 4: cross-form aggregation recomputes when a spouse
// instance is added or removed.
func TestScenarioCrossFormAggregationAcrossSpouseRemoval(t *testing.T) {
	sess := mustSession(t, true)
	submitFor := func(owner types.Owner, field string, v types.Value) {
		res := sess.Process(types.InputEvent{
			InstanceID: types.BuildInstanceID("f8889", string(owner), field), Value: v, Source: types.SourcePreparer,
		})
		if res.Outcome != types.OutcomeAccepted {
			t.Fatalf("%s.%s rejected: %s", owner, field, res.RejectDetail)
		}
	}
	for _, owner := range []types.Owner{types.OwnerPrimary, types.OwnerSpouse} {
		submitFor(owner, "age", types.Integer(40))
		submitFor(owner, "personalContribution", types.Currency(0))
		submitFor(owner, "qualifiedExpenses", types.Currency(0))
		submitFor(owner, "disabled", types.Boolean(false))
	}
	submitFor(types.OwnerPrimary, "totalDistributions", types.Currency(100))
	submitFor(types.OwnerSpouse, "totalDistributions", types.Currency(50))

	line17b := types.BuildInstanceID("schedule2", "joint", "line17b")
	if got := dollars(t, sess, line17b); got != 150 {
		t.Fatalf("joint line17b = %v, want 150 (100 primary + 50 spouse)", got)
	}

	// Removing the spouse from the filing (e.g. switching to single)
	// requires a fresh registry without the spouse's Form 8889 -- a full
	// host would rebuild Definitions(false) and Reinitialize; this
	// exercises the same cross-form aggregator contract via a second
	// session with only the primary's Form 8889 present.
	soloSess, err := NewSession(jointCtx(false), forms.Definitions(false), NewConfig())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	soloSess.Process(types.InputEvent{
		InstanceID: types.BuildInstanceID("f8889", "primary", "totalDistributions"),
		Value:      types.Currency(100), Source: types.SourcePreparer,
	})
	if got := dollars(t, soloSess, line17b); got != 100 {
		t.Errorf("solo-filer joint line17b = %v, want 100 (primary only)", got)
	}
}

// spec §8 scenario 5: slot insertion reactivity -- adding a 1099-INT
// slot and submitting its box1 value recomputes the joint aggregator.
func TestScenarioSlotInsertionReactivity(t *testing.T) {
	sess := mustSession(t, false)
	line2b := types.BuildInstanceID("f1040", "joint", "line2b")
	if got := dollars(t, sess, line2b); got != 0 {
		t.Fatalf("line2b before any slot = %v, want 0", got)
	}

	if err := sess.AddSlot(forms.F1099IntTemplates(), materialize.Slot{Owner: types.OwnerJoint, Index: 0},
		[]types.InstanceID{line2b}); err != nil {
		t.Fatalf("AddSlot: %v", err)
	}
	box1 := materialize.SlotFieldID("f1099int", types.OwnerJoint, "box1", 0)
	res := sess.Process(types.InputEvent{InstanceID: box1, Value: types.Currency(500), Source: types.SourcePreparer})
	if res.Outcome != types.OutcomeAccepted {
		t.Fatalf("box1 submission rejected: %s", res.RejectDetail)
	}
	if got := dollars(t, sess, line2b); got != 500 {
		t.Fatalf("line2b after one slot = %v, want 500", got)
	}

	if err := sess.AddSlot(forms.F1099IntTemplates(), materialize.Slot{Owner: types.OwnerJoint, Index: 1},
		[]types.InstanceID{line2b}); err != nil {
		t.Fatalf("AddSlot (second document): %v", err)
	}
	box1b := materialize.SlotFieldID("f1099int", types.OwnerJoint, "box1", 1)
	sess.Process(types.InputEvent{InstanceID: box1b, Value: types.Currency(250), Source: types.SourcePreparer})
	if got := dollars(t, sess, line2b); got != 750 {
		t.Fatalf("line2b after two slots = %v, want 750", got)
	}

	if err := sess.RemoveSlot("f1099int", types.OwnerJoint, 0, []types.InstanceID{line2b}); err != nil {
		t.Fatalf("RemoveSlot: %v", err)
	}
	if got := dollars(t, sess, line2b); got != 250 {
		t.Errorf("line2b after removing slot 0 = %v, want 250 (only slot 1 remains)", got)
	}
}

// spec §8 scenario 6: EITC eligibility gating cascades to Form 1040
// line 27 as null -> 0 when ineligible, and to a nonzero credit once
// eligible.
func TestScenarioEITCEligibilityGating(t *testing.T) {
	sess := mustSession(t, false)
	line27 := types.BuildInstanceID("f1040", "joint", "line27")

	sess.Process(types.InputEvent{
		InstanceID: types.BuildInstanceID("scheduleeic", "joint", "investmentIncome"),
		Value:      types.Currency(20000), Source: types.SourcePreparer,
	})
	sess.Process(types.InputEvent{
		InstanceID: types.BuildInstanceID("scheduleeic", "joint", "earnedIncome"),
		Value:      types.Currency(30000), Source: types.SourcePreparer,
	})
	if got := dollars(t, sess, line27); got != 0 {
		t.Fatalf("line27 while ineligible = %v, want 0 (null coerced via SafeNum)", got)
	}

	sess.Process(types.InputEvent{
		InstanceID: types.BuildInstanceID("scheduleeic", "joint", "investmentIncome"),
		Value:      types.Currency(1000), Source: types.SourcePreparer,
	})
	if got := dollars(t, sess, line27); got != 10200 {
		t.Errorf("line27 once eligible = %v, want 10200 (30000 * 0.34)", got)
	}
}

// spec §8 scenario 7: tax-year exclusion skips an out-of-year node and
// leaves it CLEAN again once the session is rebuilt for a year it
// applies to.
func TestScenarioTaxYearExclusion(t *testing.T) {
	id := types.BuildInstanceID("demo", "primary", "yearGated")
	def := types.NodeDefinition{
		ID: id, Kind: types.KindComputed, Value: types.ValueCurrency, Owner: types.OwnerPrimary,
		ApplicableTaxYears: map[string]bool{"2024": true},
		Compute:            func(ctx types.EvalContext) (types.Value, error) { return types.Currency(100), nil },
	}

	outOfYear, err := NewSession(
		types.SessionContext{TaxYear: "2023", FilingStatus: types.FilingSingle, SessionKey: types.NewSessionKey()},
		[]types.NodeDefinition{def}, NewConfig())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	entry, ok := outOfYear.Snapshot().Get(id)
	if !ok || entry.Status != types.StatusSkipped || !entry.Value.Null {
		t.Fatalf("out-of-year node = %+v, want SKIPPED/null", entry)
	}

	inYear, err := NewSession(
		types.SessionContext{TaxYear: "2024", FilingStatus: types.FilingSingle, SessionKey: types.NewSessionKey()},
		[]types.NodeDefinition{def}, NewConfig())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if got := dollars(t, inYear, id); got != 100 {
		t.Errorf("in-year node = %v, want 100 (CLEAN and evaluated)", got)
	}
}

func TestNewSessionRejectsInvalidContext(t *testing.T) {
	ctx := types.SessionContext{TaxYear: "", FilingStatus: types.FilingSingle}
	if _, err := NewSession(ctx, forms.Definitions(false), NewConfig()); err == nil {
		t.Error("expected NewSession to reject a SessionContext with an empty TaxYear")
	}
}

func TestDebugMapIncludesEveryInstance(t *testing.T) {
	sess := mustSession(t, false)
	m := sess.DebugMap()
	if len(m) != sess.Snapshot().Len() {
		t.Errorf("DebugMap has %d entries, want %d", len(m), sess.Snapshot().Len())
	}
}
