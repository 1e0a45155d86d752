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

package mqtt

import (
	"encoding/json"
	"testing"

	"github.com/taxgraph/engine/types"
)

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestDecodeValueCurrency(t *testing.T) {
	v, err := decodeValue(wireValue{Type: "currency", Raw: raw(t, 42.5)})
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if v.Type != types.ValueCurrency || v.Dollars() != 42.5 {
		t.Errorf("got %+v, want currency 42.5", v)
	}
}

func TestDecodeValueInteger(t *testing.T) {
	v, err := decodeValue(wireValue{Type: "integer", Raw: raw(t, 55)})
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if v.Type != types.ValueInteger || v.Int != 55 {
		t.Errorf("got %+v, want integer 55", v)
	}
}

func TestDecodeValueBoolean(t *testing.T) {
	v, err := decodeValue(wireValue{Type: "boolean", Raw: raw(t, true)})
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if v.Type != types.ValueBoolean || !v.Bool {
		t.Errorf("got %+v, want boolean true", v)
	}
}

func TestDecodeValueDate(t *testing.T) {
	v, err := decodeValue(wireValue{Type: "date", Raw: raw(t, "2024-04-15")})
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if v.Type != types.ValueDate || v.Date.Year() != 2024 || v.Date.Month() != 4 || v.Date.Day() != 15 {
		t.Errorf("got %+v, want 2024-04-15", v)
	}
}

func TestDecodeValueMalformedDateErrors(t *testing.T) {
	if _, err := decodeValue(wireValue{Type: "date", Raw: raw(t, "not-a-date")}); err == nil {
		t.Error("expected an error for an unparseable date")
	}
}

func TestDecodeValueNullShortCircuits(t *testing.T) {
	v, err := decodeValue(wireValue{Type: "currency", Null: true})
	if err != nil {
		t.Fatalf("decodeValue: %v", err)
	}
	if !v.Null {
		t.Error("expected a null Value when wire.Null is set")
	}
}

func TestDecodeValueUnknownTypeErrors(t *testing.T) {
	if _, err := decodeValue(wireValue{Type: "nonsense", Raw: raw(t, 1)}); err == nil {
		t.Error("expected an error for an unknown value type")
	}
}

func TestDecodeValueWrongShapeErrors(t *testing.T) {
	if _, err := decodeValue(wireValue{Type: "integer", Raw: raw(t, "not-a-number")}); err == nil {
		t.Error("expected an error when the raw payload doesn't match the declared type")
	}
}

func TestDecodeEventBuildsInputEvent(t *testing.T) {
	wire := wireEvent{
		InstanceID: "f8889.primary.age",
		Value:      wireValue{Type: "integer", Raw: raw(t, 40)},
		Source:     "preparer",
		Timestamp:  "2024-04-15T00:00:00Z",
	}
	event, err := decodeEvent(wire)
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if event.InstanceID != "f8889.primary.age" || event.Value.Int != 40 || event.Source != types.SourcePreparer {
		t.Errorf("got %+v", event)
	}
}

func TestDecodeEventPropagatesValueError(t *testing.T) {
	wire := wireEvent{InstanceID: "x", Value: wireValue{Type: "integer", Raw: raw(t, "nope")}}
	if _, err := decodeEvent(wire); err == nil {
		t.Error("expected decodeEvent to propagate a value decode error")
	}
}
