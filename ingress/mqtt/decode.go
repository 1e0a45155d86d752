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
	"fmt"
	"time"

	"github.com/taxgraph/engine/types"
)

// decodeEvent turns a wireEvent into a types.InputEvent, resolving the
// declared ValueType into the corresponding Value constructor.
func decodeEvent(wire wireEvent) (types.InputEvent, error) {
	value, err := decodeValue(wire.Value)
	if err != nil {
		return types.InputEvent{}, err
	}
	return types.InputEvent{
		InstanceID: types.InstanceID(wire.InstanceID),
		Value:      value,
		Source:     types.Source(wire.Source),
		Timestamp:  wire.Timestamp,
	}, nil
}

func decodeValue(w wireValue) (types.Value, error) {
	if w.Null {
		return types.Null, nil
	}
	switch types.ValueType(w.Type) {
	case types.ValueCurrency:
		var dollars float64
		if err := json.Unmarshal(w.Raw, &dollars); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: currency payload: %w", err)
		}
		return types.Currency(dollars), nil
	case types.ValueInteger:
		var n int64
		if err := json.Unmarshal(w.Raw, &n); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: integer payload: %w", err)
		}
		return types.Integer(n), nil
	case types.ValueString:
		var s string
		if err := json.Unmarshal(w.Raw, &s); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: string payload: %w", err)
		}
		return types.String(s), nil
	case types.ValueEnum:
		var s string
		if err := json.Unmarshal(w.Raw, &s); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: enum payload: %w", err)
		}
		return types.Enum(s), nil
	case types.ValueBoolean:
		var b bool
		if err := json.Unmarshal(w.Raw, &b); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: boolean payload: %w", err)
		}
		return types.Boolean(b), nil
	case types.ValueDate:
		var s string
		if err := json.Unmarshal(w.Raw, &s); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: date payload: %w", err)
		}
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: date payload: %w", err)
		}
		return types.DateValue(t), nil
	case types.ValuePercentage:
		var f float64
		if err := json.Unmarshal(w.Raw, &f); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: percentage payload: %w", err)
		}
		return types.Percentage(f), nil
	case types.ValueNumber:
		var f float64
		if err := json.Unmarshal(w.Raw, &f); err != nil {
			return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: number payload: %w", err)
		}
		return types.Number(f), nil
	default:
		return types.Value{}, fmt.Errorf("taxgraph/ingress/mqtt: unknown value type %q", w.Type)
	}
}
