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

package session

import (
	"fmt"
	"sort"

	"github.com/taxgraph/engine/aspect"
	"github.com/taxgraph/engine/registry"
	"github.com/taxgraph/engine/types"
)

// Session is one (taxYear, filingStatus, hasSpouse, sessionKey) context
// plus its current immutable snapshot (spec §3 "Session"). A Session is
// not safe for concurrent Process calls -- spec §5 scopes evaluation to
// single-threaded cooperative execution per session -- but independent
// Sessions sharing one *registry.Registry may run on different
// goroutines freely.
type Session struct {
	Context  types.SessionContext
	Registry *registry.Registry
	Snapshot *types.Snapshot

	Aspects aspect.List
	Logger  types.Logger

	// clock returns the timestamp stamped onto entries whose value
	// observably changes. Overridable in tests; defaults to a
	// monotonically increasing logical counter rather than wall-clock
	// time so determinism (spec §8) doesn't depend on real time.
	clock func() int64
	tick  int64
}

func (s *Session) now() int64 {
	if s.clock != nil {
		return s.clock()
	}
	s.tick++
	return s.tick
}

func (s *Session) logger() types.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return types.NopLogger{}
}

// Process handles a single InputEvent: validation, dirtying, the
// topological evaluation walk, and the new snapshot (spec §4.3).
func (s *Session) Process(event types.InputEvent) types.EvalResult {
	def, ok := s.Registry.Get(event.InstanceID)
	if !ok {
		s.logger().Warn("unknown instance in input event", "instance_id", event.InstanceID)
		return types.EvalResult{
			CurrentState: s.Snapshot,
			Outcome:      types.OutcomeIgnoredUnknown,
		}
	}
	if def.Kind != types.KindInput {
		return types.EvalResult{
			CurrentState: s.Snapshot,
			Outcome:      types.OutcomeRejected,
			RejectReason: types.ReasonNotAnInput,
			RejectDetail: fmt.Sprintf("%q is not an INPUT node", event.InstanceID),
		}
	}

	working := s.Snapshot.Map()
	prior := working[event.InstanceID]

	if err := def.Validation.Check(event.Value); err != nil {
		// Validation failure: retain prior value, INVALID, dependents
		// are NOT dirtied (spec §4.3.1).
		working[event.InstanceID] = types.Entry{
			Status:        types.StatusInvalid,
			Value:         prior.Value,
			Source:        prior.Source,
			LastUpdatedTs: prior.LastUpdatedTs,
			ErrorReason:   err.Error(),
		}
		s.logger().Warn("input validation failed", "instance_id", event.InstanceID, "reason", err.Error())
		s.Snapshot = types.NewSnapshot(working)
		return types.EvalResult{
			CurrentState: s.Snapshot,
			Outcome:      types.OutcomeRejected,
			RejectReason: types.ReasonValidationFailed,
			RejectDetail: err.Error(),
		}
	}

	unchanged := prior.Status == types.StatusClean && prior.Value.Equal(event.Value) && prior.Source == event.Source
	ts := prior.LastUpdatedTs
	if !unchanged {
		ts = s.now()
	}
	working[event.InstanceID] = types.Entry{
		Status:        types.StatusClean,
		Value:         event.Value,
		Source:        event.Source,
		LastUpdatedTs: ts,
	}

	dirty := map[types.InstanceID]bool{}
	if !unchanged {
		s.collectDependents(event.InstanceID, dirty)
	}

	changed := s.walk(working, dirty)
	if !unchanged {
		changed = appendUnique(changed, event.InstanceID)
	}

	s.Snapshot = types.NewSnapshot(working)
	return types.EvalResult{
		CurrentState: s.Snapshot,
		ChangedIDs:   changed,
		Outcome:      types.OutcomeAccepted,
	}
}

// collectDependents marks the transitive closure of id's dependents dirty
// (spec §4.3.2).
func (s *Session) collectDependents(id types.InstanceID, dirty map[types.InstanceID]bool) {
	for _, dep := range s.Registry.Dependents(id) {
		if dirty[dep] {
			continue
		}
		dirty[dep] = true
		s.collectDependents(dep, dirty)
	}
}

// walk iterates the dirty set in ascending topological order, applying
// the five gates from spec §4.3.3 to each node, and returns the IDs whose
// (status, value) tuple changed.
func (s *Session) walk(working map[types.InstanceID]types.Entry, dirty map[types.InstanceID]bool) []types.InstanceID {
	if len(dirty) == 0 {
		return nil
	}
	ids := make([]types.InstanceID, 0, len(dirty))
	for id := range dirty {
		ids = append(ids, id)
	}
	order := make(map[types.InstanceID]types.Order, len(ids))
	for _, id := range ids {
		o, _ := s.Registry.Order(id)
		order[id] = o
	}
	sort.Slice(ids, func(i, j int) bool {
		if order[ids[i]] != order[ids[j]] {
			return order[ids[i]] < order[ids[j]]
		}
		return ids[i] < ids[j]
	})

	var changed []types.InstanceID
	ectx := &evalContext{sessionCtx: s.Context, working: working, reg: s.Registry}

	for _, id := range ids {
		def, ok := s.Registry.Get(id)
		if !ok {
			continue
		}
		prior := working[id]

		status, value, err := s.Aspects.Around(def, func() (types.Status, types.Value, error) {
			return s.evaluateOne(def, ectx)
		})

		ts := prior.LastUpdatedTs
		stable := prior.Status == status && prior.Value.Equal(value)
		if !stable {
			ts = s.now()
			changed = append(changed, id)
		}
		errReason := ""
		if err != nil {
			errReason = err.Error()
			s.logger().Error("compute failed", "instance_id", id, "reason", errReason)
		}
		working[id] = types.Entry{
			Status:        status,
			Value:         value,
			Source:        prior.Source,
			LastUpdatedTs: ts,
			ErrorReason:   errReason,
		}

		// Stability short-circuit (spec §4.3.3 step 5): a node whose
		// tuple didn't change doesn't re-propagate dirtiness from
		// itself, though it may still be visited via another root.
		if !stable {
			for _, dep := range s.Registry.Dependents(id) {
				if !dirty[dep] {
					dirty[dep] = true
					ids = insertSorted(ids, dep, order, s.Registry)
				}
			}
		}
	}
	return changed
}

// evaluateOne applies the year/unsupported/applicability/compute gates
// from spec §4.3.3 to a single node.
func (s *Session) evaluateOne(def types.NodeDefinition, ectx *evalContext) (types.Status, types.Value, error) {
	if len(def.ApplicableTaxYears) > 0 && !def.ApplicableTaxYears[s.Context.TaxYear] {
		return types.StatusSkipped, types.Null, nil
	}
	if def.Unsupported {
		return types.StatusUnsupported, def.Default, nil
	}
	if def.IsApplicable != nil && !def.IsApplicable(ectx) {
		return types.StatusSkipped, types.Null, nil
	}
	if def.Compute == nil {
		return types.StatusPendingInput, types.Null, nil
	}
	value, err := func() (v types.Value, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("compute panicked: %v", r)
			}
		}()
		return def.Compute(ectx)
	}()
	if err != nil {
		prior := ectx.working[def.ID]
		prevValue := types.Null
		if prior.Status == types.StatusClean || prior.Status == types.StatusInvalid {
			prevValue = prior.Value
		}
		return types.StatusInvalid, prevValue, err
	}
	return types.StatusClean, value, nil
}

func appendUnique(ids []types.InstanceID, id types.InstanceID) []types.InstanceID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// insertSorted inserts id into the still-pending portion of ids keeping
// ascending (order, id) -- a simple re-sort is sufficient here since dirty
// sets in this domain are small (a handful of dependents per event), and
// correctness (not micro-optimized re-heapify) is what spec §8 tests.
func insertSorted(ids []types.InstanceID, id types.InstanceID, order map[types.InstanceID]types.Order, reg *registry.Registry) []types.InstanceID {
	if _, ok := order[id]; !ok {
		o, _ := reg.Order(id)
		order[id] = o
	}
	ids = append(ids, id)
	sort.Slice(ids, func(i, j int) bool {
		if order[ids[i]] != order[ids[j]] {
			return order[ids[i]] < order[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}
