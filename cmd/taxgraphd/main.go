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

// Command taxgraphd wires the registry, session, and domain overlay
// into one runnable demo: it builds a joint-filing session, streams a
// handful of input events through it, inserts a 1099-INT slot, and
// prints the resulting snapshot -- the minimal end-to-end harness
// described in spec §8's concrete scenarios.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/taxgraph/engine/engine"
	"github.com/taxgraph/engine/forms"
	"github.com/taxgraph/engine/materialize"
	"github.com/taxgraph/engine/types"
)

func main() {
	taxYear := flag.String("tax-year", "2024", "tax year to initialize the session with")
	hasSpouse := flag.Bool("joint", false, "whether to register a spouse's Form 8889")
	flag.Parse()

	cfg := engine.NewConfig()

	sessCtx := types.SessionContext{
		TaxYear:      *taxYear,
		FilingStatus: types.FilingMarriedFilingJointly,
		HasSpouse:    *hasSpouse,
		SessionKey:   types.NewSessionKey(),
	}

	sess, err := engine.NewSession(sessCtx, forms.Definitions(*hasSpouse), cfg)
	if err != nil {
		log.Fatalf("taxgraphd: build session: %v", err)
	}

	events := []types.InputEvent{
		{InstanceID: types.BuildInstanceID("f8889", "primary", "age"), Value: types.Integer(40), Source: types.SourcePreparer},
		{InstanceID: types.BuildInstanceID("f8889", "primary", "personalContribution"), Value: types.Currency(5000), Source: types.SourcePreparer},
		{InstanceID: types.BuildInstanceID("f8889", "primary", "totalDistributions"), Value: types.Currency(0), Source: types.SourcePreparer},
		{InstanceID: types.BuildInstanceID("f8889", "primary", "qualifiedExpenses"), Value: types.Currency(0), Source: types.SourcePreparer},
		{InstanceID: types.BuildInstanceID("f8889", "primary", "disabled"), Value: types.Boolean(false), Source: types.SourcePreparer},
	}

	for _, event := range events {
		result := sess.Process(event)
		if result.Outcome != types.OutcomeAccepted {
			log.Printf("taxgraphd: %s rejected: %s", event.InstanceID, result.RejectDetail)
			continue
		}
		log.Printf("taxgraphd: %s -> changed %d node(s)", event.InstanceID, len(result.ChangedIDs))
	}

	if err := sess.AddSlot(forms.F1099IntTemplates(), materialize.Slot{Owner: types.OwnerJoint, Index: 0},
		[]types.InstanceID{types.BuildInstanceID("f1040", "joint", "line2b")}); err != nil {
		log.Fatalf("taxgraphd: add 1099-INT slot: %v", err)
	}
	sess.Process(types.InputEvent{
		InstanceID: materialize.SlotFieldID("f1099int", types.OwnerJoint, "box1", 0),
		Value:      types.Currency(500),
		Source:     types.SourcePreparer,
	})

	printSnapshot(sess)
}

func printSnapshot(sess *engine.Session) {
	snap := sess.Snapshot()
	for _, id := range snap.IDs() {
		entry, _ := snap.Get(id)
		fmt.Fprintf(os.Stdout, "%-45s %-14s %v\n", id, entry.Status, entry.Value)
	}
}
