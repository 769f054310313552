// Package payload models the flat data map consumed by the renderer and
// validator.
//
// Values form a closed tagged union: absent, number, string, list of
// scalars (chart series/categories, bullet lists), or rows (table data).
// Numeric NaN and ±Inf collapse to the absent value at construction, so
// downstream code never has to test for sentinel floats; a metric that
// failed upstream degrades exactly like a metric that was never supplied.
package payload

import (
	"fmt"
	"math"
	"strconv"
)

// Kind discriminates the payload value union.
type Kind int

// Value kinds.
const (
	KindAbsent Kind = iota
	KindNumber
	KindString
	KindList
	KindRows
)

// String implements fmt.Stringer for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindRows:
		return "rows"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Row is one table row: column data keys to values.
type Row map[string]Value

// Payload is the flat data map keyed by schema data keys.
type Payload map[string]Value

// Get returns the value for key, or the absent value when the key is not
// present. Looking up a missing key is never an error.
func (p Payload) Get(key string) Value {
	if v, ok := p[key]; ok {
		return v
	}
	return Value{}
}

// Has reports whether key is present in the payload, regardless of the
// value's kind. A key bound to an absent value still counts as present.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Value is a single payload entry. The zero value is absent.
type Value struct {
	kind Kind
	num  float64
	str  string
	list []Value
	rows []Row
}

// Absent returns the absent value.
func Absent() Value { return Value{} }

// Number returns a numeric value. NaN and ±Inf collapse to absent.
func Number(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// List returns a list value over the given scalar elements.
func List(elems []Value) Value {
	return Value{kind: KindList, list: elems}
}

// Numbers returns a list value over numeric elements.
func Numbers(values ...float64) Value {
	elems := make([]Value, len(values))
	for i, f := range values {
		elems[i] = Number(f)
	}
	return Value{kind: KindList, list: elems}
}

// Strings returns a list value over string elements.
func Strings(values ...string) Value {
	elems := make([]Value, len(values))
	for i, s := range values {
		elems[i] = String(s)
	}
	return Value{kind: KindList, list: elems}
}

// Rows returns a table-rows value.
func Rows(rows []Row) Value {
	return Value{kind: KindRows, rows: rows}
}

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is absent.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// Number returns the numeric value. ok is false unless the kind is
// KindNumber.
func (v Value) Number() (f float64, ok bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Str returns the string value. ok is false unless the kind is KindString.
func (v Value) Str() (s string, ok bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// List returns the list elements. ok is false unless the kind is KindList.
func (v Value) List() (elems []Value, ok bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// Rows returns the table rows. ok is false unless the kind is KindRows.
func (v Value) Rows() (rows []Row, ok bool) {
	if v.kind != KindRows {
		return nil, false
	}
	return v.rows, true
}

// Float returns the value coerced to a safe float for chart data:
// numbers pass through, everything else (absent, strings, containers)
// becomes 0.
func (v Value) Float() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	return 0
}

// Display returns the value's plain string form, used by text slots and
// the text format kind. Whole numbers drop the fractional part; lists
// and rows render as element counts for diagnostics only.
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1e15 {
			return strconv.FormatInt(int64(v.num), 10)
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindList:
		return fmt.Sprintf("[%d values]", len(v.list))
	case KindRows:
		return fmt.Sprintf("[%d rows]", len(v.rows))
	default:
		return ""
	}
}
