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

import "fmt"

// Registration errors (spec §7) fail fast, synchronously from
// registry.Build, and never surface during evaluation.

// DuplicateIDError reports two definitions registering the same instance ID.
type DuplicateIDError struct {
	ID InstanceID
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("taxgraph: duplicate instance id %q", e.ID)
}

// UnknownDependencyError reports a dependency that never resolves within
// the merged catalog at registration close.
type UnknownDependencyError struct {
	From InstanceID
	To   InstanceID
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("taxgraph: %q depends on unknown instance %q", e.From, e.To)
}

// CycleError reports a dependency cycle detected during the Kahn walk.
// IDs are the instances that still had unresolved in-edges.
type CycleError struct {
	IDs []InstanceID
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("taxgraph: cycle detected involving %v", e.IDs)
}

// InvalidDefinitionError reports a definition that fails structural
// validation (missing required fields for its Kind).
type InvalidDefinitionError struct {
	ID     InstanceID
	Reason string
}

func (e *InvalidDefinitionError) Error() string {
	return fmt.Sprintf("taxgraph: invalid definition %q: %s", e.ID, e.Reason)
}

// InvalidContextError reports a session context that cannot be used to
// initialize a session (spec §7 "Context errors").
type InvalidContextError struct {
	Reason string
}

func (e *InvalidContextError) Error() string {
	return fmt.Sprintf("taxgraph: invalid session context: %s", e.Reason)
}

// EventOutcome classifies how a single InputEvent was handled. Event-level
// errors are returned here, never thrown (spec §7).
type EventOutcome string

const (
	OutcomeAccepted       EventOutcome = "ACCEPTED"
	OutcomeRejected       EventOutcome = "REJECTED"
	OutcomeIgnoredUnknown EventOutcome = "IGNORED_UNKNOWN"
)

// RejectReason enumerates why an event was rejected.
type RejectReason string

const (
	ReasonNotAnInput       RejectReason = "NOT_AN_INPUT"
	ReasonValidationFailed RejectReason = "VALIDATION_FAILED"
)
