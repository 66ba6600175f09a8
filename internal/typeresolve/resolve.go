// Package typeresolve decides which JSON types an ambiguous schema node
// describes and collapses it into a concrete or polymorphic node.
package typeresolve

import (
	"fmt"
	"slices"
	"strings"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
)

// ResolveTypes returns the set of types n may legally describe.
//
// Without an explicit "type" the result is the union of the types implied by
// the populated keyword groups, or every type when no group is populated.
// With an explicit "type" every populated group must describe at least one
// of the declared types, and the declared set is the result.
func ResolveTypes(n *schema.AmbiguousNode) (schema.TypeSet, error) {
	groups := n.PopulatedGroups()
	if !n.TypeExplicit {
		if len(groups) == 0 {
			return schema.AllTypes, nil
		}
		implied := schema.NoTypes
		for _, g := range groups {
			implied = implied.Union(g.Implies())
		}
		return implied, nil
	}

	if n.ValidTypes.IsEmpty() {
		return schema.NoTypes, inconsistent(n.Path, "type admits no values")
	}
	var conflicting []string
	for _, g := range groups {
		if g.Implies().Intersect(n.ValidTypes).IsEmpty() {
			conflicting = append(conflicting, g.String())
		}
	}
	if len(conflicting) > 0 {
		return schema.NoTypes, inconsistent(n.Path, "%s cannot apply to type %s",
			strings.Join(conflicting, " and "), n.ValidTypes)
	}
	return n.ValidTypes, nil
}

// Resolve returns a new node equivalent to n with its type set decided.
// n is not modified.
func Resolve(n *schema.AmbiguousNode) (schema.Node, error) {
	types, err := ResolveTypes(n)
	if err != nil {
		return nil, err
	}
	common := n.Common

	switch {
	case types == schema.AllTypes && len(n.PopulatedGroups()) == 0:
		return &schema.AnyNode{Common: common}, nil
	case types.Intersect(schema.NumericTypes) == types:
		num := n.Number
		num.RequireIntegral = types == schema.SetOf(schema.TypeInteger)
		return &schema.NumberNode{Common: common, NumberKeywords: num}, nil
	case types.Len() == 1:
		return single(types.Types()[0], common, n), nil
	default:
		return polymorphic(types, common, n), nil
	}
}

func single(t schema.Type, common schema.Common, n *schema.AmbiguousNode) schema.Node {
	switch t {
	case schema.TypeObject:
		return &schema.ObjectNode{Common: common, ObjectKeywords: n.Object}
	case schema.TypeArray:
		return &schema.ArrayNode{Common: common, ArrayKeywords: n.Array}
	case schema.TypeString:
		return &schema.StringNode{Common: common, StringKeywords: n.String}
	case schema.TypeBoolean:
		return &schema.BooleanNode{Common: common}
	default:
		return &schema.NullNode{Common: common}
	}
}

func polymorphic(types schema.TypeSet, common schema.Common, n *schema.AmbiguousNode) *schema.PolymorphicNode {
	p := &schema.PolymorphicNode{Common: common, Types: types}
	if types.Has(schema.TypeArray) && n.Array.IsSet() {
		k := n.Array
		p.Array = &k
	}
	if !types.Intersect(schema.NumericTypes).IsEmpty() && n.Number.IsSet() {
		k := n.Number
		p.Number = &k
	}
	if types.Has(schema.TypeObject) && n.Object.IsSet() {
		k := n.Object
		p.Object = &k
	}
	if types.Has(schema.TypeString) && n.String.IsSet() {
		k := n.String
		p.String = &k
	}
	return p
}

func inconsistent(path schema.Path, format string, args ...any) error {
	return &jserrors.SchemaError{
		Kind:    jserrors.KindInconsistentTypeConstraints,
		Path:    slices.Clone(path),
		Message: fmt.Sprintf(format, args...),
	}
}
