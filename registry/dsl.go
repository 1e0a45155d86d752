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

package registry

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/taxgraph/engine/types"
)

// dslNode is the read-only wire shape of a definition, mirroring the
// teacher's ChainCtx.DSL()/Parser.EncodeChain round trip
// (engine/chain.go, engine/parser.go) -- a serialization of the current
// graph for UI tooling, not a re-registration path.
type dslNode struct {
	ID           types.InstanceID   `json:"id"`
	Kind         types.Kind         `json:"kind"`
	Value        types.ValueType    `json:"valueType"`
	Owner        types.Owner        `json:"owner"`
	Order        types.Order        `json:"order"`
	Dependencies []types.InstanceID `json:"dependencies,omitempty"`
	Repeatable   bool               `json:"repeatable,omitempty"`
	Unsupported  bool               `json:"unsupported,omitempty"`
}

// DSL serializes the current definition graph to JSON, ordered
// topologically so a diff between two DSL dumps reads top-down the same
// way the evaluator walks it.
func (r *Registry) DSL() ([]byte, error) {
	nodes := make([]dslNode, 0, len(r.defs))
	for _, id := range r.ordered {
		d := r.defs[id]
		nodes = append(nodes, dslNode{
			ID:           d.ID,
			Kind:         d.Kind,
			Value:        d.Value,
			Owner:        d.Owner,
			Order:        r.order[id],
			Dependencies: d.Dependencies,
			Repeatable:   d.Repeatable,
			Unsupported:  d.Unsupported,
		})
	}
	return json.MarshalIndent(nodes, "", "  ")
}

// DecodeRawConfig decodes a loosely-typed configuration map (as arrives
// from a JSON DSL document or a scripting binding) into dst, the same
// Map2Struct step the teacher's component Init methods perform via
// maps.Map2Struct (e.g. components/transform/expr_assign_node.go).
func DecodeRawConfig(raw map[string]any, dst interface{}) error {
	return mapstructure.Decode(raw, dst)
}
