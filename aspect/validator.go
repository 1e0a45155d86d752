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
	"fmt"

	"github.com/taxgraph/engine/types"
)

var _ BuildAspect = (*Validator)(nil)

// Validator is a registry build aspect that runs extra structural checks
// beyond the mandatory duplicate/closure/cycle checks registry.Build
// already performs -- namespace conventions specific to this domain
// overlay. Grounded on the teacher's ChainValidator
// (builtin/aspect/chain_validator_aspect.go), which runs before-init
// checks ahead of rule chain construction.
type Validator struct {
	// RequireOwnerPrefix, when true, rejects any non-template ID that does
	// not contain its declared Owner as a dotted segment (".primary.",
	// ".spouse.", ".joint.") -- catches a definition built from a raw
	// template string that was never passed through materialize.
	RequireOwnerPrefix bool
}

// BeforeBuild implements BuildAspect.
func (v *Validator) BeforeBuild(defs map[types.InstanceID]types.NodeDefinition) error {
	if !v.RequireOwnerPrefix {
		return nil
	}
	for id, d := range defs {
		if d.Repeatable {
			// Templates still carry the literal "{owner}" placeholder;
			// only concrete (materialized) instances are checked.
			continue
		}
		if !ownerSegmentPresent(string(id), d.Owner) {
			return fmt.Errorf("taxgraph: instance %q does not encode its declared owner %q", id, d.Owner)
		}
	}
	return nil
}

func ownerSegmentPresent(id string, owner types.Owner) bool {
	want := "." + string(owner) + "."
	if len(id) < len(want) {
		return false
	}
	for i := 0; i+len(want) <= len(id); i++ {
		if id[i:i+len(want)] == want {
			return true
		}
	}
	return false
}
