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

// SessionContext is the immutable (taxYear, filingStatus, hasSpouse,
// sessionKey) tuple that parameterizes applicability and evaluation for
// the lifetime of a session (spec §3 "Session").
type SessionContext struct {
	TaxYear      string
	FilingStatus FilingStatus
	HasSpouse    bool
	SessionKey   string
}

// Validate rejects a context that cannot be used to initialize a session
// (spec §7 "Context errors").
func (c SessionContext) Validate() error {
	if c.TaxYear == "" {
		return &InvalidContextError{Reason: "taxYear is required"}
	}
	if c.FilingStatus == "" {
		return &InvalidContextError{Reason: "filingStatus is required"}
	}
	return nil
}

// EvalContext is passed to every compute and isApplicable call (spec
// §4.4). Implementations live in package session; this interface is what
// NodeDefinition.Compute/IsApplicable and the scripting adapters depend
// on, keeping types free of an import cycle on session.
type EvalContext interface {
	// Get reads the current-tick snapshot value of another instance.
	// Returns Null for SKIPPED/UNSUPPORTED/PENDING_INPUT/unmaterialized
	// instances.
	Get(id InstanceID) Value
	// Status reads the current-tick status of another instance.
	Status(id InstanceID) Status

	TaxYear() string
	FilingStatus() FilingStatus
	HasSpouse() bool
}

// ComputeFunc is a pure function of an EvalContext, the shape every
// COMPUTED definition's Compute field must satisfy (Design Notes §9:
// "the engine itself treats them as opaque fn(ctx) -> value").
type ComputeFunc func(ctx EvalContext) (Value, error)

// ApplicabilityFunc is a pure predicate; false collapses the node to
// SKIPPED regardless of Compute (spec §3 "Applicability").
type ApplicabilityFunc func(ctx EvalContext) bool
