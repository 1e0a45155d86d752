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

import "github.com/taxgraph/engine/types"

// Diff reports every instance whose (status, value) tuple differs between
// two snapshots -- supplemented beyond spec.md (SPEC_FULL.md §10) to give
// a consumer a way to recompute what changed across two ticks without
// keeping its own ChangedIDs bookkeeping, e.g. after Reinitialize, which
// has no single EvalResult to read ChangedIDs from.
func Diff(prev, next *types.Snapshot) []types.InstanceID {
	var changed []types.InstanceID
	seen := map[types.InstanceID]bool{}

	for _, id := range next.IDs() {
		seen[id] = true
		nEntry, _ := next.Get(id)
		pEntry, ok := prev.Get(id)
		if !ok || pEntry.Status != nEntry.Status || !pEntry.Value.Equal(nEntry.Value) {
			changed = append(changed, id)
		}
	}
	for _, id := range prev.IDs() {
		if !seen[id] {
			changed = append(changed, id)
		}
	}
	return changed
}
