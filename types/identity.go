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

// Package types defines the core identity, value, and contract types shared
// by the registry, materializer, session, and evaluator packages.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// InstanceID is a dotted node identifier of shape
// "{form}.{ownerScope}.{logicalId}[.{field}]". IDs are opaque strings to
// the engine; the dotted structure is a convention domain definitions
// must follow, not something the engine parses.
type InstanceID string

// Owner is the scope a node instance belongs to.
type Owner string

const (
	OwnerPrimary Owner = "primary"
	OwnerSpouse  Owner = "spouse"
	OwnerJoint   Owner = "joint"
)

// Kind distinguishes the three node kinds from spec §3.
type Kind string

const (
	KindInput    Kind = "INPUT"
	KindComputed Kind = "COMPUTED"
	// KindAggregator is structurally identical to KindComputed; it exists
	// only as a conceptual tag for pure-sum-over-siblings nodes.
	KindAggregator Kind = "AGGREGATOR"
)

// Source identifies who supplied an INPUT value.
type Source string

const (
	SourcePreparer Source = "preparer"
	SourceOCR      Source = "ocr"
	SourceImported Source = "imported"
	SourceDefault  Source = "default"
)

// Status is the six-state node status machine from spec §3.
type Status string

const (
	StatusClean        Status = "CLEAN"
	StatusDirty        Status = "DIRTY"
	StatusSkipped      Status = "SKIPPED"
	StatusUnsupported  Status = "UNSUPPORTED"
	StatusInvalid      Status = "INVALID"
	StatusPendingInput Status = "PENDING_INPUT"
)

// FilingStatus is the session's filing status, used by applicability
// predicates throughout the domain overlay.
type FilingStatus string

const (
	FilingSingle                  FilingStatus = "single"
	FilingMarriedFilingJointly    FilingStatus = "married_filing_jointly"
	FilingMarriedFilingSeparately FilingStatus = "married_filing_separately"
	FilingHeadOfHousehold         FilingStatus = "head_of_household"
	FilingQualifyingSurvivingSpouse FilingStatus = "qualifying_surviving_spouse"
)

// NewSessionKey mints an opaque session identifier. Grounded on the
// teacher's use of gofrs/uuid/v5 for message identifiers in types/msg.go.
func NewSessionKey() string {
	id, err := uuid.NewV4()
	if err != nil {
		// uuid.NewV4 only fails if the OS entropy source is broken; fall
		// back to a degenerate but still-unique value rather than panic.
		return fmt.Sprintf("session-%d", time.Now().UnixNano())
	}
	return id.String()
}

// BuildInstanceID joins the dotted-identifier segments used throughout the
// domain overlay. Placeholder segments such as {owner} and s{slotIndex}
// are kept verbatim; materialize.MaterializeSlot substitutes them.
func BuildInstanceID(parts ...string) InstanceID {
	return InstanceID(strings.Join(parts, "."))
}

func (id InstanceID) String() string { return string(id) }
