package typeresolve

import (
	"errors"
	"strings"
	"testing"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
)

func intp(v int) *int { return &v }

func floatp(v float64) *float64 { return &v }

func ambiguous() *schema.AmbiguousNode {
	return &schema.AmbiguousNode{ValidTypes: schema.AllTypes}
}

func explicit(types ...schema.Type) *schema.AmbiguousNode {
	n := ambiguous()
	n.ValidTypes = schema.SetOf(types...)
	n.TypeExplicit = true
	return n
}

func TestResolveTypesSingleGroup(t *testing.T) {
	tests := []struct {
		name string
		set  func(*schema.AmbiguousNode)
		want schema.TypeSet
	}{
		{name: "array", set: func(n *schema.AmbiguousNode) { n.Array.MinItems = intp(1) }, want: schema.SetOf(schema.TypeArray)},
		{name: "number", set: func(n *schema.AmbiguousNode) { n.Number.Maximum = floatp(3) }, want: schema.NumericTypes},
		{name: "object", set: func(n *schema.AmbiguousNode) { n.Object.Required = []string{"a"} }, want: schema.SetOf(schema.TypeObject)},
		{name: "string", set: func(n *schema.AmbiguousNode) { n.String.MaxLength = intp(2) }, want: schema.SetOf(schema.TypeString)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := ambiguous()
			tt.set(n)
			got, err := ResolveTypes(n)
			if err != nil {
				t.Fatalf("ResolveTypes() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("ResolveTypes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveTypesNoGroups(t *testing.T) {
	got, err := ResolveTypes(ambiguous())
	if err != nil || got != schema.AllTypes {
		t.Fatalf("ResolveTypes() = %v, %v, want all types", got, err)
	}
}

func TestResolveTypesUnionWithoutType(t *testing.T) {
	n := ambiguous()
	n.Array.MinItems = intp(1)
	n.String.MinLength = intp(1)
	got, err := ResolveTypes(n)
	if err != nil {
		t.Fatalf("ResolveTypes() error = %v", err)
	}
	if want := schema.SetOf(schema.TypeArray, schema.TypeString); got != want {
		t.Fatalf("ResolveTypes() = %v, want %v", got, want)
	}
}

func TestResolveTypesInconsistent(t *testing.T) {
	tests := []struct {
		name    string
		node    func() *schema.AmbiguousNode
		mention []string
	}{
		{
			name: "array keywords with string type",
			node: func() *schema.AmbiguousNode {
				n := explicit(schema.TypeString)
				n.Array.MinItems = intp(1)
				return n
			},
			mention: []string{"array keywords", "string"},
		},
		{
			name: "number and object keywords with boolean type",
			node: func() *schema.AmbiguousNode {
				n := explicit(schema.TypeBoolean, schema.TypeNull)
				n.Number.Minimum = floatp(0)
				n.Object.MaxProperties = intp(1)
				return n
			},
			mention: []string{"number keywords", "object keywords"},
		},
		{
			name: "empty explicit type",
			node: func() *schema.AmbiguousNode {
				n := explicit()
				return n
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTypes(tt.node())
			if !errors.Is(err, jserrors.ErrInconsistentTypeConstraints) {
				t.Fatalf("ResolveTypes() error = %v, want inconsistent type constraints", err)
			}
			for _, m := range tt.mention {
				if !strings.Contains(err.Error(), m) {
					t.Fatalf("error %q does not mention %q", err, m)
				}
			}
		})
	}
}

func TestResolveTypesExplicitCompatible(t *testing.T) {
	n := explicit(schema.TypeInteger, schema.TypeString)
	n.Number.Minimum = floatp(1)
	n.String.Pattern = &schema.Pattern{Source: "x"}
	got, err := ResolveTypes(n)
	if err != nil {
		t.Fatalf("ResolveTypes() error = %v", err)
	}
	if got != n.ValidTypes {
		t.Fatalf("ResolveTypes() = %v, want %v", got, n.ValidTypes)
	}
}

func TestResolveTypesAllowAllSubschemasDoNotPopulate(t *testing.T) {
	empty := func() schema.Node { return ambiguous() }
	tests := []struct {
		name string
		set  func(*schema.AmbiguousNode)
	}{
		{name: "items {}", set: func(n *schema.AmbiguousNode) {
			n.Array.ItemsIsSingleSchema = true
			n.Array.Items = []schema.Node{empty()}
		}},
		{name: "positional {} with additionalItems {}", set: func(n *schema.AmbiguousNode) {
			n.Array.Items = []schema.Node{empty()}
			n.Array.AdditionalItems = empty()
		}},
		{name: "additionalProperties {}", set: func(n *schema.AmbiguousNode) {
			n.Object.AdditionalProperties = empty()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := explicit(schema.TypeString)
			tt.set(n)
			got, err := ResolveTypes(n)
			if err != nil {
				t.Fatalf("ResolveTypes() error = %v", err)
			}
			if got != schema.SetOf(schema.TypeString) {
				t.Fatalf("ResolveTypes() = %v, want string", got)
			}
		})
	}
}

func TestResolveCollapse(t *testing.T) {
	tests := []struct {
		name string
		node func() *schema.AmbiguousNode
		kind schema.NodeKind
	}{
		{name: "no keywords", node: ambiguous, kind: schema.KindAny},
		{name: "explicit all types", node: func() *schema.AmbiguousNode {
			n := ambiguous()
			n.TypeExplicit = true
			return n
		}, kind: schema.KindAny},
		{name: "number keywords", node: func() *schema.AmbiguousNode {
			n := ambiguous()
			n.Number.MultipleOf = floatp(2)
			return n
		}, kind: schema.KindNumber},
		{name: "integer type", node: func() *schema.AmbiguousNode { return explicit(schema.TypeInteger) }, kind: schema.KindNumber},
		{name: "boolean type", node: func() *schema.AmbiguousNode { return explicit(schema.TypeBoolean) }, kind: schema.KindBoolean},
		{name: "null type", node: func() *schema.AmbiguousNode { return explicit(schema.TypeNull) }, kind: schema.KindNull},
		{name: "object keywords", node: func() *schema.AmbiguousNode {
			n := ambiguous()
			n.Object.MinProperties = intp(1)
			return n
		}, kind: schema.KindObject},
		{name: "string type", node: func() *schema.AmbiguousNode { return explicit(schema.TypeString) }, kind: schema.KindString},
		{name: "array and string keywords", node: func() *schema.AmbiguousNode {
			n := ambiguous()
			n.Array.MinItems = intp(1)
			n.String.MinLength = intp(1)
			return n
		}, kind: schema.KindPolymorphic},
		{name: "string or null", node: func() *schema.AmbiguousNode { return explicit(schema.TypeString, schema.TypeNull) }, kind: schema.KindPolymorphic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.node())
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got.Kind() != tt.kind {
				t.Fatalf("Resolve() kind = %v, want %v", got.Kind(), tt.kind)
			}
		})
	}
}

func TestResolveIntegerRequiresIntegral(t *testing.T) {
	got, err := Resolve(explicit(schema.TypeInteger))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	num := got.(*schema.NumberNode)
	if !num.RequireIntegral || !num.TypeExplicit {
		t.Fatalf("NumberNode = %+v, want integral explicit", num)
	}

	got, err = Resolve(explicit(schema.TypeNumber, schema.TypeInteger))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.(*schema.NumberNode).RequireIntegral {
		t.Fatalf("number|integer marked integral")
	}
}

func TestResolvePolymorphicGroups(t *testing.T) {
	n := ambiguous()
	n.Array.MinItems = intp(1)
	n.String.MinLength = intp(1)
	got, err := Resolve(n)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	p := got.(*schema.PolymorphicNode)
	if p.Array == nil || p.String == nil || p.Number != nil || p.Object != nil {
		t.Fatalf("groups = array:%v number:%v object:%v string:%v", p.Array != nil, p.Number != nil, p.Object != nil, p.String != nil)
	}
	if p.TypeExplicit {
		t.Fatalf("TypeExplicit = true for implied types")
	}
}

func TestResolveDoesNotMutate(t *testing.T) {
	n := explicit(schema.TypeInteger)
	n.Number.Minimum = floatp(0)
	n.Title = "count"
	before := *n
	if _, err := Resolve(n); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if n.Number.RequireIntegral || n.Title != before.Title || n.ValidTypes != before.ValidTypes {
		t.Fatalf("Resolve() mutated its input: %+v", n)
	}
}
