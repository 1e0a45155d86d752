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
	"errors"
	"time"

	"github.com/fatih/structs"

	"github.com/taxgraph/engine/materialize"
	"github.com/taxgraph/engine/registry"
	"github.com/taxgraph/engine/session"
	"github.com/taxgraph/engine/types"
)

// Session is the host-facing handle: a registry, the live session state,
// and the Config it was built with. It plays the role the teacher's
// ChainEngine plays for a rule chain -- construction, event dispatch,
// and lifecycle (reinitialize) -- but scoped to one tax filing (spec §3).
type Session struct {
	config Config
	reg    *registry.Registry
	sess   *session.Session
}

// NewSession builds a registry from defs, applies cfg.BuildAspects, and
// initializes a fresh Session (spec §4.6 "Initialize").
func NewSession(ctx types.SessionContext, defs []types.NodeDefinition, cfg Config) (*Session, error) {
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	b := registry.NewBuilder(cfg.BuildAspects...)
	b.Add(defs...)
	reg, err := b.Build()
	if err != nil {
		return nil, err
	}
	return &Session{
		config: cfg,
		reg:    reg,
		sess:   session.New(ctx, reg, cfg.EvalAspects, cfg.Logger),
	}, nil
}

// Process dispatches one InputEvent through the underlying session
// evaluator, timing the call and incrementing the outcome/dirty-set-size
// metrics (mirroring the teacher's http_requests_total / duration pair
// in engine/metrics.go, rescoped from HTTP requests to tax-graph events).
func (s *Session) Process(event types.InputEvent) types.EvalResult {
	start := time.Now()
	result := s.sess.Process(event)
	evaluationDuration.WithLabelValues().Observe(time.Since(start).Seconds())
	dirtySetSize.WithLabelValues().Observe(float64(len(result.ChangedIDs)))
	eventsTotal.WithLabelValues(string(result.Outcome)).Inc()
	return result
}

// Snapshot returns the current immutable state.
func (s *Session) Snapshot() *types.Snapshot { return s.sess.Snapshot }

// Registry returns the underlying (immutable) node-definition catalog.
func (s *Session) Registry() *registry.Registry { return s.reg }

// AddSlot materializes tmpls for the given slot, rebuilds any aggregator
// whose Dependencies should include the new slot's instances, and
// reinitializes the session against the expanded registry, preserving
// every existing INPUT value (spec §4.2 "Slot materialization", §4.6
// "Reinitialize").
func (s *Session) AddSlot(tmpls []types.NodeDefinition, slot materialize.Slot, aggregatorIDs []types.InstanceID) error {
	materialized := materialize.MaterializeSlots(tmpls, slot)
	newIDs := make([]types.InstanceID, 0, len(materialized))
	for _, def := range materialized {
		if def.Kind != types.KindInput {
			continue
		}
		newIDs = append(newIDs, def.ID)
	}

	defs := s.reg.Definitions()
	b := registry.NewBuilder(s.config.BuildAspects...)
	for _, def := range defs {
		b.Add(def)
	}
	b.Add(materialized...)

	for _, aggID := range aggregatorIDs {
		agg, ok := s.reg.Get(aggID)
		if !ok {
			return errors.New("taxgraph/engine: unknown aggregator " + string(aggID))
		}
		allSlotIDs := append(append([]types.InstanceID{}, agg.Dependencies...), newIDs...)
		b.Add(materialize.RebuildAggregator(agg, allSlotIDs))
	}

	reg, err := b.Build()
	if err != nil {
		return err
	}
	s.reg = reg
	s.sess = session.Reinitialize(s.sess.Context, reg, s.sess.Snapshot, s.config.EvalAspects, s.config.Logger)
	return nil
}

// RemoveSlot drops every instance belonging to (form, owner, index),
// rebuilds the aggregators named in aggregatorIDs without those
// instances, and reinitializes the session (SPEC_FULL.md §10
// "RemoveSlot", the inverse of AddSlot).
func (s *Session) RemoveSlot(form string, owner types.Owner, index int, aggregatorIDs []types.InstanceID) error {
	defs := s.reg.Definitions()
	all := make([]types.NodeDefinition, 0, len(defs))
	for _, def := range defs {
		all = append(all, def)
	}
	kept, removed := materialize.RemoveSlotInstances(all, form, owner, index)
	removedSet := make(map[types.InstanceID]bool, len(removed))
	for _, id := range removed {
		removedSet[id] = true
	}

	b := registry.NewBuilder(s.config.BuildAspects...)
	for _, def := range kept {
		if removedSet[def.ID] {
			continue
		}
		for _, aggID := range aggregatorIDs {
			if def.ID == aggID {
				filtered := make([]types.InstanceID, 0, len(def.Dependencies))
				for _, dep := range def.Dependencies {
					if !removedSet[dep] {
						filtered = append(filtered, dep)
					}
				}
				def = materialize.RebuildAggregator(def, filtered)
			}
		}
		b.Add(def)
	}

	reg, err := b.Build()
	if err != nil {
		return err
	}
	s.reg = reg
	s.sess = session.Reinitialize(s.sess.Context, reg, s.sess.Snapshot, s.config.EvalAspects, s.config.Logger)
	return nil
}

// DebugMap flattens the current snapshot into a nested map keyed by
// instance ID, using fatih/structs the way a debugging/DSL export surface
// typically renders internal state for a UI or log sink (SPEC_FULL.md
// §10 "DSL export"; the teacher's go.mod names fatih/structs but the
// retrieved source slice never calls it).
func (s *Session) DebugMap() map[string]any {
	snap := s.sess.Snapshot
	out := make(map[string]any, snap.Len())
	for _, id := range snap.IDs() {
		entry, _ := snap.Get(id)
		out[string(id)] = structs.Map(entry)
	}
	return out
}
