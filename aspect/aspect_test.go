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
	"errors"
	"testing"

	"github.com/taxgraph/engine/types"
)

type recordingAspect struct {
	before []types.InstanceID
	after  []types.InstanceID
}

func (r *recordingAspect) Before(def types.NodeDefinition) {
	r.before = append(r.before, def.ID)
}

func (r *recordingAspect) After(def types.NodeDefinition, status types.Status, value types.Value, err error) {
	r.after = append(r.after, def.ID)
}

func TestListAroundOrdersBeforeThenAfter(t *testing.T) {
	r := &recordingAspect{}
	l := List{r}
	def := types.NodeDefinition{ID: "a.primary.x"}

	status, value, err := l.Around(def, func() (types.Status, types.Value, error) {
		if len(r.before) != 1 {
			t.Fatal("Before must run before fn")
		}
		if len(r.after) != 0 {
			t.Fatal("After must not run before fn returns")
		}
		return types.StatusClean, types.Currency(5), nil
	})

	if status != types.StatusClean || value.Dollars() != 5 || err != nil {
		t.Fatalf("unexpected Around result: %v %v %v", status, value, err)
	}
	if len(r.after) != 1 || r.after[0] != def.ID {
		t.Fatalf("After was not recorded for %v, got %v", def.ID, r.after)
	}
}

func TestNilListAroundIsNoOp(t *testing.T) {
	var l List
	status, value, err := l.Around(types.NodeDefinition{ID: "a.primary.x"}, func() (types.Status, types.Value, error) {
		return types.StatusSkipped, types.Null, nil
	})
	if status != types.StatusSkipped || !value.Null || err != nil {
		t.Fatalf("nil List.Around should just pass through fn's result, got %v %v %v", status, value, err)
	}
}

func TestDebugRecordsTerminalStateOnly(t *testing.T) {
	d := &Debug{}
	def := types.NodeDefinition{ID: "a.primary.x"}

	d.Before(def) // no-op; exercised for interface completeness
	d.After(def, types.StatusInvalid, types.Null, errors.New("boom"))

	entries := d.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Status != types.StatusInvalid || entries[0].Err == nil {
		t.Errorf("entry = %+v, want INVALID with an error", entries[0])
	}

	d.Reset()
	if len(d.Entries()) != 0 {
		t.Error("Reset should clear recorded traces")
	}
}

func TestDebugEntriesReturnsACopy(t *testing.T) {
	d := &Debug{}
	d.After(types.NodeDefinition{ID: "a.primary.x"}, types.StatusClean, types.Currency(1), nil)

	entries := d.Entries()
	entries[0].Status = types.StatusInvalid

	if got := d.Entries()[0].Status; got != types.StatusClean {
		t.Errorf("mutating a returned slice must not affect internal state, got %v", got)
	}
}

func TestValidatorAcceptsIDsEncodingDeclaredOwner(t *testing.T) {
	v := &Validator{RequireOwnerPrefix: true}
	defs := map[types.InstanceID]types.NodeDefinition{
		"f8889.primary.age": {ID: "f8889.primary.age", Owner: types.OwnerPrimary},
		"f1040.joint.line2b": {ID: "f1040.joint.line2b", Owner: types.OwnerJoint},
	}
	if err := v.BeforeBuild(defs); err != nil {
		t.Errorf("BeforeBuild rejected well-formed IDs: %v", err)
	}
}

func TestValidatorRejectsMismatchedOwnerSegment(t *testing.T) {
	v := &Validator{RequireOwnerPrefix: true}
	defs := map[types.InstanceID]types.NodeDefinition{
		"f8889.spouse.age": {ID: "f8889.spouse.age", Owner: types.OwnerPrimary},
	}
	if err := v.BeforeBuild(defs); err == nil {
		t.Error("expected an error for an ID whose owner segment doesn't match the declared Owner")
	}
}

func TestValidatorSkipsRepeatableTemplates(t *testing.T) {
	v := &Validator{RequireOwnerPrefix: true}
	defs := map[types.InstanceID]types.NodeDefinition{
		"f1099int.{owner}.box1.s{slotIndex}": {
			ID: "f1099int.{owner}.box1.s{slotIndex}", Owner: types.OwnerJoint, Repeatable: true,
		},
	}
	if err := v.BeforeBuild(defs); err != nil {
		t.Errorf("BeforeBuild should skip unmaterialized templates, got: %v", err)
	}
}

func TestValidatorDisabledSkipsAllChecks(t *testing.T) {
	v := &Validator{RequireOwnerPrefix: false}
	defs := map[types.InstanceID]types.NodeDefinition{
		"nonsense": {ID: "nonsense", Owner: types.OwnerPrimary},
	}
	if err := v.BeforeBuild(defs); err != nil {
		t.Errorf("BeforeBuild with RequireOwnerPrefix=false should never fail, got: %v", err)
	}
}

func TestMetricsAfterDoesNotPanic(t *testing.T) {
	m := Metrics{}
	def := types.NodeDefinition{ID: "a.primary.x"}
	m.Before(def)
	m.After(def, types.StatusClean, types.Currency(1), nil)
	m.After(def, types.StatusInvalid, types.Null, errors.New("boom"))
}
