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
	"github.com/taxgraph/engine/aspect"
	"github.com/taxgraph/engine/registry"
	"github.com/taxgraph/engine/types"
)

// New builds a fresh Session over reg: every node with HasDefault starts
// CLEAN at its Default and every other node starts PENDING_INPUT; every
// COMPUTED/AGGREGATOR node is then evaluated once in topological order
// before New returns (spec §4.6, "Initialize"). aspects/logger are attached for the
// Session's lifetime and may be nil.
func New(ctx types.SessionContext, reg *registry.Registry, aspects aspect.List, logger types.Logger) *Session {
	s := &Session{
		Context:  ctx,
		Registry: reg,
		Aspects:  aspects,
		Logger:   logger,
	}
	entries := initialEntries(reg)
	s.walk(entries, nonInputDirtySet(reg))
	s.Snapshot = types.NewSnapshot(entries)
	return s
}

func initialEntries(reg *registry.Registry) map[types.InstanceID]types.Entry {
	entries := make(map[types.InstanceID]types.Entry, reg.Len())
	for _, id := range reg.OrderedIDs() {
		def, _ := reg.Get(id)
		if def.HasDefault {
			entries[id] = types.Entry{Status: types.StatusClean, Value: def.Default}
			continue
		}
		entries[id] = types.Entry{Status: types.StatusPendingInput, Value: types.Null}
	}
	return entries
}

// nonInputDirtySet marks every COMPUTED/AGGREGATOR node dirty so the first
// walk over a freshly built Session evaluates them in topological order
// (spec §4.6, "Initialize": "COMPUTED -> evaluated immediately in
// topological order, producing CLEAN/SKIPPED/UNSUPPORTED as above").
func nonInputDirtySet(reg *registry.Registry) map[types.InstanceID]bool {
	dirty := map[types.InstanceID]bool{}
	for _, id := range reg.OrderedIDs() {
		def, _ := reg.Get(id)
		if def.Kind != types.KindInput {
			dirty[id] = true
		}
	}
	return dirty
}

// Reinitialize rebuilds a Session against a (possibly changed) registry
// while preserving every CLEAN INPUT entry from prior whose InstanceID
// still resolves to an INPUT node in reg, then replays a full recompute
// so COMPUTED/AGGREGATOR values reflect the new registry shape (spec
// §4.6, "Reinitialize" -- used after a slot insertion/removal or a
// tax-year change within the same filing).
func Reinitialize(ctx types.SessionContext, reg *registry.Registry, prior *types.Snapshot, aspects aspect.List, logger types.Logger) *Session {
	entries := initialEntries(reg)
	if prior != nil {
		for _, id := range prior.IDs() {
			def, ok := reg.Get(id)
			if !ok || def.Kind != types.KindInput {
				continue
			}
			entry, _ := prior.Get(id)
			if entry.Status == types.StatusClean {
				entries[id] = entry
			}
		}
	}

	s := &Session{
		Context:  ctx,
		Registry: reg,
		Aspects:  aspects,
		Logger:   logger,
	}

	s.walk(entries, nonInputDirtySet(reg))
	s.Snapshot = types.NewSnapshot(entries)
	return s
}
