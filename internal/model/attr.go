package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AttrKind identifies which variant an AttrValue holds.
type AttrKind uint8

// Attribute kinds.
const (
	AttrString AttrKind = iota
	AttrNumber
	AttrBool
)

// AttrValue is one value in an asset's free-form specification map. It holds
// exactly one of a string, a number or a bool.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	b    bool
}

// String returns a string attribute.
func String(s string) AttrValue { return AttrValue{kind: AttrString, str: s} }

// Number returns a numeric attribute.
func Number(n float64) AttrValue { return AttrValue{kind: AttrNumber, num: n} }

// Bool returns a boolean attribute.
func Bool(b bool) AttrValue { return AttrValue{kind: AttrBool, b: b} }

// Kind returns the variant held by v.
func (v AttrValue) Kind() AttrKind { return v.kind }

// Str returns the string variant and whether v holds one.
func (v AttrValue) Str() (string, bool) { return v.str, v.kind == AttrString }

// Num returns the numeric variant and whether v holds one.
func (v AttrValue) Num() (float64, bool) { return v.num, v.kind == AttrNumber }

// Boolean returns the bool variant and whether v holds one.
func (v AttrValue) Boolean() (bool, bool) { return v.b, v.kind == AttrBool }

// Text formats v for display.
func (v AttrValue) Text() string {
	switch v.kind {
	case AttrNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case AttrBool:
		return strconv.FormatBool(v.b)
	default:
		return v.str
	}
}

// MarshalJSON encodes v as a bare JSON scalar.
func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrNumber:
		return json.Marshal(v.num)
	case AttrBool:
		return json.Marshal(v.b)
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON accepts a JSON string, number or bool.
func (v *AttrValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty attribute value")
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding string attribute: %w", err)
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return fmt.Errorf("decoding bool attribute: %w", err)
		}
		*v = Bool(b)
	case 'n', '{', '[':
		return fmt.Errorf("unsupported attribute value %s", data)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decoding number attribute: %w", err)
		}
		*v = Number(n)
	}
	return nil
}
