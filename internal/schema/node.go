package schema

import (
	"regexp"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Path is the sequence of keyword descents from the document root to a node.
type Path []string

// Child returns a new path extended by tokens.
func (p Path) Child(tokens ...string) Path {
	out := make(Path, 0, len(p)+len(tokens))
	out = append(out, p...)
	return append(out, tokens...)
}

// String renders p as a URI fragment pointer.
func (p Path) String() string {
	return jserrors.PointerFragment(p)
}

// Pattern is a compiled regular expression with its source text.
type Pattern struct {
	Re     *regexp.Regexp
	Source string
}

// NodeKind identifies a Node variant.
type NodeKind uint8

const (
	KindAmbiguous NodeKind = iota
	KindObject
	KindArray
	KindNumber
	KindString
	KindBoolean
	KindNull
	KindAny
	KindPolymorphic
	KindLiteral
	KindRef
)

var nodeKindNames = [...]string{
	KindAmbiguous:   "ambiguous",
	KindObject:      "object",
	KindArray:       "array",
	KindNumber:      "number",
	KindString:      "string",
	KindBoolean:     "boolean",
	KindNull:        "null",
	KindAny:         "any",
	KindPolymorphic: "polymorphic",
	KindLiteral:     "literal",
	KindRef:         "ref",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// Node is a schema fragment. The set of variants is closed.
type Node interface {
	Kind() NodeKind
	Base() *Common
	isNode()
}

// Common holds the keywords every schema fragment may carry regardless of type.
type Common struct {
	Path        Path
	Title       string
	Description string
	// Enum is nil when the keyword is absent.
	Enum  []jsonvalue.Value
	AllOf []Node
	AnyOf []Node
	OneOf []Node
	Not   Node
	// TypeExplicit is set when the fragment carried a "type" keyword.
	// Values outside the resolved types are then rejected instead of ignored.
	TypeExplicit bool
}

// Base returns c; it lets variants expose their embedded Common.
func (c *Common) Base() *Common { return c }

// HasCombinators reports whether any of enum/allOf/anyOf/oneOf/not is present.
func (c *Common) HasCombinators() bool {
	return c.Enum != nil || len(c.AllOf) > 0 || len(c.AnyOf) > 0 || len(c.OneOf) > 0 || c.Not != nil
}

// ObjectNode applies to objects.
type ObjectNode struct {
	Common
	ObjectKeywords
}

// ArrayNode applies to arrays.
type ArrayNode struct {
	Common
	ArrayKeywords
}

// NumberNode applies to numbers; RequireIntegral narrows it to integers.
type NumberNode struct {
	Common
	NumberKeywords
}

// StringNode applies to strings.
type StringNode struct {
	Common
	StringKeywords
}

// BooleanNode applies to booleans.
type BooleanNode struct {
	Common
}

// NullNode applies to null.
type NullNode struct {
	Common
}

// AnyNode places no type constraint on values.
type AnyNode struct {
	Common
}

// AmbiguousNode is a fragment whose applicable types are not yet known.
// It holds every keyword group at once; ValidTypes is the universe or the
// explicit "type" set.
type AmbiguousNode struct {
	Common
	ValidTypes TypeSet
	Array      ArrayKeywords
	Number     NumberKeywords
	Object     ObjectKeywords
	String     StringKeywords
}

// PolymorphicNode is a resolved fragment applying to several types.
// Each keyword group applies only to values of its own type.
type PolymorphicNode struct {
	Common
	Types  TypeSet
	Array  *ArrayKeywords
	Number *NumberKeywords
	Object *ObjectKeywords
	String *StringKeywords
}

// LiteralNode is a boolean schema: true allows everything, false nothing.
type LiteralNode struct {
	Common
	Allow bool
}

// RefNode delegates to the fragment at Ref, a URI fragment pointer.
type RefNode struct {
	Common
	Ref string
}

func (*ObjectNode) Kind() NodeKind      { return KindObject }
func (*ArrayNode) Kind() NodeKind       { return KindArray }
func (*NumberNode) Kind() NodeKind      { return KindNumber }
func (*StringNode) Kind() NodeKind      { return KindString }
func (*BooleanNode) Kind() NodeKind     { return KindBoolean }
func (*NullNode) Kind() NodeKind        { return KindNull }
func (*AnyNode) Kind() NodeKind         { return KindAny }
func (*AmbiguousNode) Kind() NodeKind   { return KindAmbiguous }
func (*PolymorphicNode) Kind() NodeKind { return KindPolymorphic }
func (*LiteralNode) Kind() NodeKind     { return KindLiteral }
func (*RefNode) Kind() NodeKind         { return KindRef }

func (*ObjectNode) isNode()      {}
func (*ArrayNode) isNode()       {}
func (*NumberNode) isNode()      {}
func (*StringNode) isNode()      {}
func (*BooleanNode) isNode()     {}
func (*NullNode) isNode()        {}
func (*AnyNode) isNode()         {}
func (*AmbiguousNode) isNode()   {}
func (*PolymorphicNode) isNode() {}
func (*LiteralNode) isNode()     {}
func (*RefNode) isNode()         {}

// IsAllowAll reports whether n is absent, the literal true schema, or an
// untyped fragment with no keywords such as {}.
func IsAllowAll(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *LiteralNode:
		return n.Allow && !n.HasCombinators()
	case *AmbiguousNode:
		return !n.TypeExplicit && !n.HasCombinators() && len(n.PopulatedGroups()) == 0
	default:
		return false
	}
}
