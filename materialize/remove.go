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

package materialize

import (
	"strconv"
	"strings"

	"github.com/taxgraph/engine/types"
)

// RemoveSlotInstances drops every concrete instance belonging to the
// removed slot from a definition set, returning the reduced slice and
// the IDs that were removed (for the caller to hand to RebuildAggregator
// and session.Reinitialize). Surviving slots are untouched and never
// renumbered (spec §4.2 invariant).
func RemoveSlotInstances(defs []types.NodeDefinition, form string, owner types.Owner, index int) (kept []types.NodeDefinition, removed []types.InstanceID) {
	tag := "s" + strconv.Itoa(index)
	for _, d := range defs {
		if belongsToSlot(string(d.ID), form, string(owner), tag) {
			removed = append(removed, d.ID)
			continue
		}
		kept = append(kept, d)
	}
	return kept, removed
}

// belongsToSlot reports whether a dotted instance ID
// "{form}.{owner}.{field}.{tag}" was produced by SlotFieldID for the
// given form, owner, and "sN" tag.
func belongsToSlot(id, form, owner, tag string) bool {
	parts := strings.Split(id, ".")
	if len(parts) < 3 {
		return false
	}
	return parts[0] == form && parts[1] == owner && parts[len(parts)-1] == tag
}
