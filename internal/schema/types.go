package schema

import (
	"math/bits"
	"strings"

	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Type is one JSON Schema primitive type.
type Type uint8

const (
	TypeObject Type = 1 << iota
	TypeArray
	TypeString
	TypeNumber
	TypeInteger
	TypeBoolean
	TypeNull
)

var typeNames = [...]struct {
	t    Type
	name string
}{
	{TypeObject, "object"},
	{TypeArray, "array"},
	{TypeString, "string"},
	{TypeNumber, "number"},
	{TypeInteger, "integer"},
	{TypeBoolean, "boolean"},
	{TypeNull, "null"},
}

// String returns the keyword spelling of t.
func (t Type) String() string {
	for _, tn := range typeNames {
		if tn.t == t {
			return tn.name
		}
	}
	return "unknown"
}

// ParseType maps a "type" keyword entry to a Type.
func ParseType(name string) (Type, bool) {
	for _, tn := range typeNames {
		if tn.name == name {
			return tn.t, true
		}
	}
	return 0, false
}

// TypeSet is a set of Types.
type TypeSet uint8

const (
	// NoTypes is the empty set.
	NoTypes TypeSet = 0
	// AllTypes is the universe of JSON Schema types.
	AllTypes = TypeSet(TypeObject | TypeArray | TypeString | TypeNumber | TypeInteger | TypeBoolean | TypeNull)
	// NumericTypes is the family implied by number keywords.
	NumericTypes = TypeSet(TypeNumber | TypeInteger)
)

// SetOf builds a TypeSet from individual types.
func SetOf(types ...Type) TypeSet {
	var s TypeSet
	for _, t := range types {
		s |= TypeSet(t)
	}
	return s
}

// Has reports whether t is in s.
func (s TypeSet) Has(t Type) bool { return s&TypeSet(t) != 0 }

// Intersect returns s ∩ o.
func (s TypeSet) Intersect(o TypeSet) TypeSet { return s & o }

// Union returns s ∪ o.
func (s TypeSet) Union(o TypeSet) TypeSet { return s | o }

// IsEmpty reports whether s has no types.
func (s TypeSet) IsEmpty() bool { return s == 0 }

// Len returns the number of types in s.
func (s TypeSet) Len() int { return bits.OnesCount8(uint8(s)) }

// Types lists the members of s in canonical order.
func (s TypeSet) Types() []Type {
	out := make([]Type, 0, s.Len())
	for _, tn := range typeNames {
		if s.Has(tn.t) {
			out = append(out, tn.t)
		}
	}
	return out
}

// Names lists the keyword spellings of the members of s.
func (s TypeSet) Names() []string {
	types := s.Types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.String()
	}
	return out
}

// String renders s like a "type" keyword value.
func (s TypeSet) String() string {
	if s.Len() == 1 {
		return s.Types()[0].String()
	}
	return "[" + strings.Join(s.Names(), ", ") + "]"
}

// Accepts reports whether a value of the given runtime shape belongs to s.
// A number belongs to "integer" only when it has no fractional part.
func (s TypeSet) Accepts(v jsonvalue.Value) bool {
	switch v.Kind() {
	case jsonvalue.KindNull:
		return s.Has(TypeNull)
	case jsonvalue.KindBool:
		return s.Has(TypeBoolean)
	case jsonvalue.KindString:
		return s.Has(TypeString)
	case jsonvalue.KindArray:
		return s.Has(TypeArray)
	case jsonvalue.KindObject:
		return s.Has(TypeObject)
	case jsonvalue.KindNumber:
		return s.Has(TypeNumber) || (s.Has(TypeInteger) && v.IsIntegral())
	default:
		return false
	}
}

// RuntimeType returns the most specific Type of v.
func RuntimeType(v jsonvalue.Value) Type {
	switch v.Kind() {
	case jsonvalue.KindBool:
		return TypeBoolean
	case jsonvalue.KindString:
		return TypeString
	case jsonvalue.KindArray:
		return TypeArray
	case jsonvalue.KindObject:
		return TypeObject
	case jsonvalue.KindNumber:
		if v.IsIntegral() {
			return TypeInteger
		}
		return TypeNumber
	default:
		return TypeNull
	}
}
