package core

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind identifies the concrete representation held by a Value.
type Kind string

const (
	KindNull   Kind = "null"
	KindNumber Kind = "number"
	KindText   Kind = "text"
	KindBool   Kind = "bool"
	KindDate   Kind = "date"
)

// Value is a closed tagged scalar cell. Every pipeline stage switches on
// Kind instead of reflecting over interface{} values, so the set of
// representations a cell can take is fixed here and nowhere else.
//
// Dates are carried as their original string literal: the profiling and
// cleaning stages order them lexicographically, which is correct for the
// ISO-style patterns the inferencer accepts.
type Value struct {
	Kind Kind    `json:"kind"`
	Num  float64 `json:"num,omitempty"`
	Str  string  `json:"str,omitempty"`
	Bool bool    `json:"bool,omitempty"`
}

// Null returns the missing cell value.
func Null() Value {
	return Value{Kind: KindNull}
}

// Number creates a numeric cell.
func Number(f float64) Value {
	return Value{Kind: KindNumber, Num: f}
}

// Text creates a string cell. An empty string is a legal Text value; it is
// still reported as missing by IsMissing, matching the workbench's
// definition of a missing cell.
func Text(s string) Value {
	return Value{Kind: KindText, Str: s}
}

// Boolean creates a boolean cell.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// Date creates a date cell from its source literal.
func Date(s string) Value {
	return Value{Kind: KindDate, Str: s}
}

// IsMissing reports whether the cell counts as a missing value: null,
// absent, or empty string.
func (v Value) IsMissing() bool {
	switch v.Kind {
	case KindNull, "":
		return true
	case KindText, KindDate:
		return v.Str == ""
	default:
		return false
	}
}

// String renders the cell the way the UI and the grouping/filter stages
// see it. Numbers drop trailing zeros, null renders empty.
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindText, KindDate:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	default:
		return ""
	}
}

// Float attempts numeric coercion. Text cells parse on demand; booleans
// coerce to 0/1. The second return is false when the cell has no numeric
// reading, which comparison filters treat as an always-false comparison.
func (v Value) Float() (float64, bool) {
	switch v.Kind {
	case KindNumber:
		return v.Num, true
	case KindBool:
		if v.Bool {
			return 1, true
		}
		return 0, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Coerce converts an arbitrary decoded scalar into a Value. Parsers hand
// us strings, numbers, bools, or nil depending on the source format.
func Coerce(raw interface{}) Value {
	if raw == nil {
		return Null()
	}
	switch x := raw.(type) {
	case Value:
		return x
	case string:
		return Text(x)
	case bool:
		return Boolean(x)
	}
	if f, err := cast.ToFloat64E(raw); err == nil {
		return Number(f)
	}
	return Text(cast.ToString(raw))
}

// CoerceTo converts a user-supplied literal into the given kind when
// possible, falling back to a text cell. Used by the fill_custom strategy
// so fills land in the column's native representation.
func CoerceTo(kind Kind, literal string) Value {
	switch kind {
	case KindNumber:
		if f, err := cast.ToFloat64E(strings.TrimSpace(literal)); err == nil {
			return Number(f)
		}
	case KindBool:
		if b, err := cast.ToBoolE(strings.TrimSpace(literal)); err == nil {
			return Boolean(b)
		}
	case KindDate:
		return Date(literal)
	}
	return Text(literal)
}

// MarshalJSON renders the cell as a bare scalar so exported JSON looks
// like ordinary row data, not like the internal tagged representation.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNumber:
		return json.Marshal(v.Num)
	case KindText, KindDate:
		return json.Marshal(v.Str)
	case KindBool:
		return json.Marshal(v.Bool)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts bare scalars, mirroring MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = Coerce(raw)
	return nil
}
