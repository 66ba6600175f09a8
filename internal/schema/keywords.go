package schema

import "slices"

// KeyValue pairs a literal property name, or a compiled pattern over
// property names, with a sub-schema.
type KeyValue struct {
	Key     string
	Pattern *Pattern
	Schema  Node
}

// Dependency is one entry of "dependencies". When the Key property is
// present, either every name in Properties must be present too, or the
// whole object must satisfy Schema.
type Dependency struct {
	Key        string
	Properties []string
	Schema     Node
}

// ArrayKeywords is the array keyword group.
type ArrayKeywords struct {
	MinItems    *int
	MaxItems    *int
	UniqueItems bool
	// ItemsIsSingleSchema selects between one schema for every element
	// (Items has length 1) and positional schemas.
	ItemsIsSingleSchema bool
	Items               []Node
	// AdditionalItems governs elements past positional Items; nil allows them.
	AdditionalItems Node
}

// IsSet reports whether any non-default array keyword is present.
// Allow-all item schemas are the default and do not mark the group.
func (k *ArrayKeywords) IsSet() bool {
	if k.MinItems != nil || k.MaxItems != nil || k.UniqueItems {
		return true
	}
	if k.ItemsIsSingleSchema && len(k.Items) == 1 {
		return !IsAllowAll(k.Items[0])
	}
	return !IsAllowAll(k.AdditionalItems) ||
		slices.ContainsFunc(k.Items, func(n Node) bool { return !IsAllowAll(n) })
}

// NumberKeywords is the number keyword group.
type NumberKeywords struct {
	MultipleOf       *float64
	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum bool
	ExclusiveMaximum bool
	RequireIntegral  bool
}

// IsSet reports whether any non-default number keyword is present.
// RequireIntegral comes from "type" and does not mark the group.
func (k *NumberKeywords) IsSet() bool {
	return k.MultipleOf != nil || k.Minimum != nil || k.Maximum != nil
}

// ObjectKeywords is the object keyword group.
type ObjectKeywords struct {
	MinProperties     *int
	MaxProperties     *int
	Required          []string
	Properties        []KeyValue
	PatternProperties []KeyValue
	// AdditionalProperties governs unmatched keys; nil allows them.
	AdditionalProperties Node
	Dependencies         []Dependency
}

// IsSet reports whether any non-default object keyword is present.
func (k *ObjectKeywords) IsSet() bool {
	return k.MinProperties != nil || k.MaxProperties != nil || len(k.Required) > 0 ||
		len(k.Properties) > 0 || len(k.PatternProperties) > 0 ||
		!IsAllowAll(k.AdditionalProperties) || len(k.Dependencies) > 0
}

// StringKeywords is the string keyword group.
type StringKeywords struct {
	MinLength *int
	MaxLength *int
	Pattern   *Pattern
}

// IsSet reports whether any non-default string keyword is present.
func (k *StringKeywords) IsSet() bool {
	return k.MinLength != nil || k.MaxLength != nil || k.Pattern != nil
}

// Group names a keyword group.
type Group uint8

const (
	GroupArray Group = iota
	GroupNumber
	GroupObject
	GroupString
)

func (g Group) String() string {
	switch g {
	case GroupArray:
		return "array keywords"
	case GroupNumber:
		return "number keywords"
	case GroupObject:
		return "object keywords"
	case GroupString:
		return "string keywords"
	default:
		return "unknown keywords"
	}
}

// Implies returns the types a keyword group can describe.
func (g Group) Implies() TypeSet {
	switch g {
	case GroupArray:
		return SetOf(TypeArray)
	case GroupNumber:
		return NumericTypes
	case GroupObject:
		return SetOf(TypeObject)
	case GroupString:
		return SetOf(TypeString)
	default:
		return NoTypes
	}
}

// PopulatedGroups lists the keyword groups of n that carry a non-default keyword.
func (n *AmbiguousNode) PopulatedGroups() []Group {
	var out []Group
	if n.Array.IsSet() {
		out = append(out, GroupArray)
	}
	if n.Number.IsSet() {
		out = append(out, GroupNumber)
	}
	if n.Object.IsSet() {
		out = append(out, GroupObject)
	}
	if n.String.IsSet() {
		out = append(out, GroupString)
	}
	return out
}
