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

import (
	"fmt"
	"regexp"
)

// Validation is the INPUT-only validation contract from spec §6.3:
// allowed-values, min/max, allowNegative, and a custom predicate.
type Validation struct {
	AllowedValues []string
	Min, Max      *float64
	AllowNegative bool
	Pattern       *regexp.Regexp
	Custom        func(Value) error
}

// Check applies the declared validation to a candidate value, returning
// the reason string the INVALID status attaches on failure (spec §4.3.1).
func (v *Validation) Check(val Value) error {
	if v == nil {
		return nil
	}
	if len(v.AllowedValues) > 0 {
		var s string
		switch val.Type {
		case ValueEnum, ValueString:
			s = val.Str
		default:
			return fmt.Errorf("value type %s is not subject to an allowed-values check", val.Type)
		}
		found := false
		for _, allowed := range v.AllowedValues {
			if allowed == s {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%q is not one of the allowed values", s)
		}
	}
	if v.Min != nil || v.Max != nil {
		n := numericOf(val)
		if v.Min != nil && n < *v.Min {
			return fmt.Errorf("value %v is below minimum %v", n, *v.Min)
		}
		if v.Max != nil && n > *v.Max {
			return fmt.Errorf("value %v is above maximum %v", n, *v.Max)
		}
	}
	if !v.AllowNegative {
		if numericOf(val) < 0 && isNumericType(val.Type) {
			return fmt.Errorf("negative values are not allowed")
		}
	}
	if v.Pattern != nil && val.Type == ValueString {
		if !v.Pattern.MatchString(val.Str) {
			return fmt.Errorf("%q does not match the required pattern", val.Str)
		}
	}
	if v.Custom != nil {
		if err := v.Custom(val); err != nil {
			return err
		}
	}
	return nil
}

func isNumericType(t ValueType) bool {
	switch t {
	case ValueCurrency, ValueInteger, ValuePercentage, ValueNumber:
		return true
	default:
		return false
	}
}

func numericOf(v Value) float64 {
	switch v.Type {
	case ValueCurrency:
		return v.Dollars()
	case ValueInteger:
		return float64(v.Int)
	case ValuePercentage, ValueNumber:
		return v.Frac
	default:
		return 0
	}
}
