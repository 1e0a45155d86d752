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

package types

// NodeDefinition is the immutable node descriptor domain overlays
// register (spec §6.3). It is a template if Repeatable is true; the
// materialize package expands templates into concrete instances.
type NodeDefinition struct {
	ID    InstanceID
	Kind  Kind
	Value ValueType
	Owner Owner

	Repeatable bool

	// ApplicableTaxYears, when non-empty, gates the node to SKIPPED for
	// any session tax year not in the set (spec §4.3.3 step 1).
	ApplicableTaxYears map[string]bool

	// Dependencies is the full closure of instance IDs this definition's
	// Compute may read, enforced at registry.Build time.
	Dependencies []InstanceID

	Compute       ComputeFunc
	IsApplicable  ApplicabilityFunc

	// Unsupported marks a definition as deferred: the evaluator never
	// calls Compute and the node resolves to UNSUPPORTED with Default.
	Unsupported bool

	// INPUT-only fields.
	Validation   *Validation
	HasDefault   bool
	Default      Value
	Source       Source

	Classifications []string
}

// Order is the Kahn-level assigned by registry.Build, used by the
// evaluator to walk dirty nodes in ascending topological order.
type Order int

// Validate performs the per-definition structural checks registry.Build
// runs before the cycle walk (spec §6.3 "Required" column).
func (d *NodeDefinition) Validate() error {
	if d.ID == "" {
		return &InvalidDefinitionError{ID: d.ID, Reason: "id is required"}
	}
	if d.Kind == "" {
		return &InvalidDefinitionError{ID: d.ID, Reason: "kind is required"}
	}
	if d.Value == "" {
		return &InvalidDefinitionError{ID: d.ID, Reason: "valueType is required"}
	}
	if d.Owner == "" {
		return &InvalidDefinitionError{ID: d.ID, Reason: "owner is required"}
	}
	switch d.Kind {
	case KindComputed, KindAggregator:
		if d.Compute == nil && !d.Unsupported {
			return &InvalidDefinitionError{ID: d.ID, Reason: "compute is required for COMPUTED/AGGREGATOR"}
		}
	case KindInput:
		if !d.HasDefault {
			// A declared default is not strictly required (spec allows
			// PENDING_INPUT), but Validation/Source only make sense here.
		}
	default:
		return &InvalidDefinitionError{ID: d.ID, Reason: "unknown kind " + string(d.Kind)}
	}
	return nil
}
