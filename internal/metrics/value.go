package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a scalar the analysis service sends as either a number or a
// string, e.g. community health values (247, 8.4, "15.2%") or media ids.
type Value struct {
	str     string // literal text, also kept for numbers
	num     float64
	numeric bool
	null    bool
}

// NumberValue builds a numeric Value
func NumberValue(f float64) Value {
	return Value{str: strconv.FormatFloat(f, 'f', -1, 64), num: f, numeric: true}
}

// StringValue builds a textual Value
func StringValue(s string) Value { return Value{str: s} }

// UnmarshalJSON accepts numbers, strings and null
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = Value{null: true}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value{str: s}
		return nil
	default:
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return fmt.Errorf("value must be a number or string, got %s", data)
		}
		*v = Value{str: string(data), num: f, numeric: true}
		return nil
	}
}

// MarshalJSON writes the value back in its original kind
func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.null:
		return []byte("null"), nil
	case v.numeric:
		return []byte(v.str), nil
	default:
		return json.Marshal(v.str)
	}
}

// Float returns the numeric value; false for strings and null
func (v Value) Float() (float64, bool) { return v.num, v.numeric }

// String returns numbers exactly as they were written on the wire
func (v Value) String() string {
	return v.str
}
