package jsonvalue

import (
	"iter"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is one key/value entry of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON-like value.
// The zero Value is null.
type Value struct {
	items   []Value
	members []Member
	str     string
	num     float64
	kind    Kind
	b       bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array holding items in order.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Object returns an object holding members in order.
// Duplicate keys are kept; Lookup resolves them to the last occurrence.
func Object(members ...Member) Value {
	return Value{kind: KindObject, members: members}
}

// M builds a Member.
func M(key string, v Value) Member {
	return Member{Key: key, Value: v}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for non-booleans.
func (v Value) Bool() bool { return v.kind == KindBool && v.b }

// Float returns the numeric payload; 0 for non-numbers.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// IsIntegral reports whether v is a finite number with no fractional part.
func (v Value) IsIntegral() bool {
	if v.kind != KindNumber || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
		return false
	}
	return v.num == math.Trunc(v.num)
}

// Text returns the string payload; "" for non-strings.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Len returns the element count of an array, the member count of an object,
// and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// KeyCount returns the number of distinct member names of an object, and 0
// otherwise.
func (v Value) KeyCount() int {
	if v.kind != KindObject || len(v.members) < 2 {
		return len(v.members)
	}
	seen := make(map[string]struct{}, len(v.members))
	for _, m := range v.members {
		seen[m.Key] = struct{}{}
	}
	return len(seen)
}

// Index returns the i-th array element, or null when out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}
	return v.items[i]
}

// Elements yields array elements in order. Non-arrays yield nothing.
func (v Value) Elements() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		if v.kind != KindArray {
			return
		}
		for i, item := range v.items {
			if !yield(i, item) {
				return
			}
		}
	}
}

// Members yields object members in document order. Non-objects yield nothing.
func (v Value) Members() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if v.kind != KindObject {
			return
		}
		for _, m := range v.members {
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}

// Lookup returns the value of the last member named key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Key == key {
			return v.members[i].Value, true
		}
	}
	return Value{}, false
}

// Has reports whether an object has a member named key.
func (v Value) Has(key string) bool {
	_, ok := v.Lookup(key)
	return ok
}

// String renders v as compact JSON.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.kind {
	case KindNull:
		b.WriteString("null")
	case KindBool:
		b.WriteString(strconv.FormatBool(v.b))
	case KindNumber:
		b.WriteString(formatNumber(v.num))
	case KindString:
		b.WriteString(strconv.Quote(v.str))
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}
			item.write(b)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(m.Key))
			b.WriteByte(':')
			m.Value.write(b)
		}
		b.WriteByte('}')
	}
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
