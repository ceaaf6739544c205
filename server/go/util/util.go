/*
	Copyright 2025 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package util defines the value type carried by chart data rows.
//
// A row field may hold a number, a string, or nothing at all.  V is a
// tagged union over those three cases:
//
// {type}Value functions (type={Null, String, Number}) safely construct Values
// of the specified type;
//
// Expect{type}Value functions, over String and Number, safely retrieve the
// payload of a Value, returning an error if there's a type mismatch.
//
// Builders that must never fail use the lenient accessors Float and Label
// instead, which map every irregular value to a safe default.
package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type valueType int

// Enumerated value types.
const (
	NullValueType valueType = iota
	StringValueType
	NumberValueType
)

func (vt valueType) String() string {
	switch vt {
	case StringValueType:
		return "str"
	case NumberValueType:
		return "num"
	default:
		return "null"
	}
}

// V represents a single field value within a chart data row.  The zero V is
// Null.
type V struct {
	V any
	T valueType
}

// NullValue returns a new Value holding nothing.
func NullValue() V {
	return V{T: NullValueType}
}

// StringValue returns a new Value wrapping the provided string.
func StringValue(str string) V {
	return V{
		V: str,
		T: StringValueType,
	}
}

// NumberValue returns a new Value wrapping the provided float64.
func NumberValue(f float64) V {
	return V{
		V: f,
		T: NumberValueType,
	}
}

// IsNull returns true if the receiver holds no value.
func (v V) IsNull() bool {
	return v.T == NullValueType
}

// ExpectStringValue expects the provided Value to be a string, returning
// that string or an error if it isn't.
func ExpectStringValue(val V) (string, error) {
	if val.T != StringValueType {
		return "", fmt.Errorf("expected value type 'str', got '%s'", val.T)
	}
	return val.V.(string), nil
}

// ExpectNumberValue expects the provided Value to be a number, returning
// that number or an error if it isn't.
func ExpectNumberValue(val V) (float64, error) {
	if val.T != NumberValueType {
		return 0, fmt.Errorf("expected value type 'num', got '%s'", val.T)
	}
	return val.V.(float64), nil
}

// Float returns the receiver's number, or 0 if the receiver is not a number.
func (v V) Float() float64 {
	f, err := ExpectNumberValue(v)
	if err != nil {
		return 0
	}
	return f
}

// Label returns the receiver formatted for display on a category axis.
// Numbers use the shortest representation that round-trips, and Null
// labels as the empty string.
func (v V) Label() string {
	switch v.T {
	case StringValueType:
		return v.V.(string)
	case NumberValueType:
		return FormatNumber(v.V.(float64))
	default:
		return ""
	}
}

// Equal returns true if the receiver and other have the same type and
// payload.  A string never equals a number, even if they print alike.
func (v V) Equal(other V) bool {
	if v.T != other.T {
		return false
	}
	switch v.T {
	case StringValueType:
		return v.V.(string) == other.V.(string)
	case NumberValueType:
		return v.V.(float64) == other.V.(float64)
	default:
		return true
	}
}

// FormatNumber formats f the way a chart label shows it: '12', '2.5', '-4'.
func FormatNumber(f float64) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// MarshalJSON encodes the receiver as a bare JSON scalar: null, a string, or
// a number.
func (v V) MarshalJSON() ([]byte, error) {
	switch v.T {
	case StringValueType:
		return json.Marshal(v.V.(string))
	case NumberValueType:
		f := v.V.(float64)
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return []byte("null"), nil
		}
		return json.Marshal(f)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a bare JSON scalar into the receiving V.  Kinds that
// a row cannot hold (booleans, arrays, objects) decode as Null rather than
// failing, so a single odd field never spoils a whole document.
func (v *V) UnmarshalJSON(data []byte) error {
	var got any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&got); err != nil {
		return err
	}
	switch tv := got.(type) {
	case string:
		*v = StringValue(tv)
	case json.Number:
		f, err := tv.Float64()
		if err != nil {
			return err
		}
		*v = NumberValue(f)
	default:
		*v = NullValue()
	}
	return nil
}
