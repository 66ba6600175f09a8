package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	v, err := jsonvalue.DecodeBytes([]byte(src))
	if err != nil {
		t.Fatalf("decode %s: %v", src, err)
	}
	doc, err := Parse(v)
	if err != nil {
		t.Fatalf("Parse(%s) error = %v", src, err)
	}
	return doc
}

func rootAmbiguous(t *testing.T, src string) *schema.AmbiguousNode {
	t.Helper()
	root := mustParse(t, src).Root
	n, ok := root.(*schema.AmbiguousNode)
	if !ok {
		t.Fatalf("root is %T, want *schema.AmbiguousNode", root)
	}
	return n
}

func TestParseKeywordGroups(t *testing.T) {
	n := rootAmbiguous(t, `{
		"title": "t",
		"minItems": 2, "maxItems": 4, "uniqueItems": true,
		"minimum": 0, "maximum": 10, "exclusiveMaximum": true, "multipleOf": 0.5,
		"required": ["a"], "minProperties": 1,
		"minLength": 1, "pattern": "^a"
	}`)
	if n.Title != "t" {
		t.Fatalf("Title = %q, want %q", n.Title, "t")
	}
	if n.TypeExplicit || n.ValidTypes != schema.AllTypes {
		t.Fatalf("types = %v explicit=%v, want all implicit", n.ValidTypes, n.TypeExplicit)
	}
	if *n.Array.MinItems != 2 || *n.Array.MaxItems != 4 || !n.Array.UniqueItems {
		t.Fatalf("array keywords = %+v", n.Array)
	}
	if *n.Number.Minimum != 0 || *n.Number.Maximum != 10 || !n.Number.ExclusiveMaximum || *n.Number.MultipleOf != 0.5 {
		t.Fatalf("number keywords = %+v", n.Number)
	}
	if diff := cmp.Diff([]string{"a"}, n.Object.Required); diff != "" {
		t.Fatalf("Required mismatch (-want +got):\n%s", diff)
	}
	if n.String.Pattern == nil || n.String.Pattern.Source != "^a" {
		t.Fatalf("Pattern = %+v", n.String.Pattern)
	}
	groups := n.PopulatedGroups()
	want := []schema.Group{schema.GroupArray, schema.GroupNumber, schema.GroupObject, schema.GroupString}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Fatalf("PopulatedGroups mismatch (-want +got):\n%s", diff)
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		src  string
		want schema.TypeSet
	}{
		{src: `{"type": "string"}`, want: schema.SetOf(schema.TypeString)},
		{src: `{"type": ["integer", "null"]}`, want: schema.SetOf(schema.TypeInteger, schema.TypeNull)},
	}
	for _, tt := range tests {
		n := rootAmbiguous(t, tt.src)
		if n.ValidTypes != tt.want || !n.TypeExplicit {
			t.Fatalf("%s: ValidTypes = %v explicit=%v, want %v", tt.src, n.ValidTypes, n.TypeExplicit, tt.want)
		}
	}
}

func TestParseItemsForms(t *testing.T) {
	single := rootAmbiguous(t, `{"items": {"type": "string"}, "additionalItems": false}`)
	if !single.Array.ItemsIsSingleSchema || len(single.Array.Items) != 1 {
		t.Fatalf("single items = %+v", single.Array)
	}
	if single.Array.AdditionalItems != nil {
		t.Fatalf("additionalItems kept next to single items schema")
	}

	tuple := rootAmbiguous(t, `{"items": [{"type": "string"}, true], "additionalItems": false}`)
	if tuple.Array.ItemsIsSingleSchema || len(tuple.Array.Items) != 2 {
		t.Fatalf("tuple items = %+v", tuple.Array)
	}
	lit, ok := tuple.Array.AdditionalItems.(*schema.LiteralNode)
	if !ok || lit.Allow {
		t.Fatalf("AdditionalItems = %#v, want forbid literal", tuple.Array.AdditionalItems)
	}
	if _, ok := tuple.Array.Items[1].(*schema.LiteralNode); !ok {
		t.Fatalf("items[1] = %T, want *schema.LiteralNode", tuple.Array.Items[1])
	}
}

func TestParseObjectKeywords(t *testing.T) {
	n := rootAmbiguous(t, `{
		"properties": {"b": {}, "a": {"type": "string"}},
		"patternProperties": {"^x-": {"type": "integer"}},
		"additionalProperties": false,
		"dependencies": {"a": ["b"], "c": {"required": ["d"]}}
	}`)
	keys := make([]string, 0, len(n.Object.Properties))
	for _, kv := range n.Object.Properties {
		keys = append(keys, kv.Key)
	}
	if diff := cmp.Diff([]string{"b", "a"}, keys); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
	pp := n.Object.PatternProperties
	if len(pp) != 1 || pp[0].Pattern == nil || !pp[0].Pattern.Re.MatchString("x-trace") {
		t.Fatalf("PatternProperties = %+v", pp)
	}
	deps := n.Object.Dependencies
	if len(deps) != 2 {
		t.Fatalf("Dependencies = %+v", deps)
	}
	if diff := cmp.Diff([]string{"b"}, deps[0].Properties); diff != "" || deps[0].Schema != nil {
		t.Fatalf("dependency a = %+v", deps[0])
	}
	if deps[1].Schema == nil || deps[1].Properties != nil {
		t.Fatalf("dependency c = %+v", deps[1])
	}
	if !n.Object.IsSet() {
		t.Fatalf("object keywords not marked as set")
	}
}

func TestParseDefaultsDoNotPopulateGroups(t *testing.T) {
	n := rootAmbiguous(t, `{"uniqueItems": false, "required": [], "additionalProperties": true, "additionalItems": false}`)
	if groups := n.PopulatedGroups(); len(groups) != 0 {
		t.Fatalf("PopulatedGroups() = %v, want none", groups)
	}
}

func TestParseIndexAndRefs(t *testing.T) {
	doc := mustParse(t, `{
		"definitions": {"node": {"properties": {"next": {"$ref": "#/definitions/node"}}}},
		"items": [{"$ref": "#/definitions/node"}],
		"allOf": [true]
	}`)
	for _, ptr := range []string{"", "/definitions/node", "/definitions/node/properties/next", "/items/0", "/allOf/0"} {
		if _, ok := doc.Lookup(ptr); !ok {
			t.Fatalf("Lookup(%q) not found", ptr)
		}
	}
	refs := doc.Refs()
	if len(refs) != 2 {
		t.Fatalf("Refs() = %d, want 2", len(refs))
	}
	if refs[0].Ref != "#/definitions/node" {
		t.Fatalf("Ref = %q", refs[0].Ref)
	}
	if doc.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", doc.Len())
	}
}

func TestParseRefKeepsDefinitions(t *testing.T) {
	doc := mustParse(t, `{"$ref": "#/definitions/a", "definitions": {"a": {"type": "string"}}}`)
	if _, ok := doc.Root.(*schema.RefNode); !ok {
		t.Fatalf("root = %T, want *schema.RefNode", doc.Root)
	}
	if _, ok := doc.Lookup("/definitions/a"); !ok {
		t.Fatalf("definition next to $ref not indexed")
	}
}

func TestParseEscapedPointers(t *testing.T) {
	doc := mustParse(t, `{"properties": {"a/b": {}, "m~n": {}}}`)
	for _, ptr := range []string{"/properties/a~1b", "/properties/m~0n"} {
		if _, ok := doc.Lookup(ptr); !ok {
			t.Fatalf("Lookup(%q) not found", ptr)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind jserrors.SchemaErrorKind
		path []string
	}{
		{name: "schema not object", src: `[1]`, kind: jserrors.KindMalformedKeywordValue},
		{name: "nested schema not object", src: `{"not": 3}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"not"}},
		{name: "negative size", src: `{"minItems": -1}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"minItems"}},
		{name: "fractional size", src: `{"maxLength": 1.5}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"maxLength"}},
		{name: "size range", src: `{"minItems": 3, "maxItems": 1}`, kind: jserrors.KindInvalidRange},
		{name: "property count range", src: `{"properties": {"a": {"minProperties": 2, "maxProperties": 1}}}`, kind: jserrors.KindInvalidRange, path: []string{"properties", "a"}},
		{name: "numeric range", src: `{"minimum": 5, "maximum": 1}`, kind: jserrors.KindInvalidRange},
		{name: "empty exclusive range", src: `{"minimum": 1, "maximum": 1, "exclusiveMinimum": true}`, kind: jserrors.KindInvalidRange},
		{name: "exclusive without bound", src: `{"exclusiveMaximum": true}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"exclusiveMaximum"}},
		{name: "exclusive not boolean", src: `{"minimum": 1, "exclusiveMinimum": 1}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"exclusiveMinimum"}},
		{name: "multipleOf zero", src: `{"multipleOf": 0}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"multipleOf"}},
		{name: "bad pattern", src: `{"pattern": "("}`, kind: jserrors.KindInvalidRegularExpression, path: []string{"pattern"}},
		{name: "bad pattern property", src: `{"patternProperties": {"[": {}}}`, kind: jserrors.KindInvalidRegularExpression, path: []string{"patternProperties", "["}},
		{name: "duplicate keyword", src: `{"minItems": 1, "minItems": 2}`, kind: jserrors.KindDuplicateKey},
		{name: "duplicate property", src: `{"properties": {"a": {}, "a": {}}}`, kind: jserrors.KindDuplicateKey, path: []string{"properties"}},
		{name: "duplicate required", src: `{"required": ["a", "a"]}`, kind: jserrors.KindDuplicateKey, path: []string{"required"}},
		{name: "duplicate enum", src: `{"enum": [1, 1.0]}`, kind: jserrors.KindDuplicateKey, path: []string{"enum", "1"}},
		{name: "empty enum", src: `{"enum": []}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"enum"}},
		{name: "duplicate type", src: `{"type": ["string", "string"]}`, kind: jserrors.KindDuplicateKey, path: []string{"type"}},
		{name: "unknown type", src: `{"type": "float"}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"type"}},
		{name: "empty allOf", src: `{"allOf": []}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"allOf"}},
		{name: "ref not string", src: `{"$ref": 1}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"$ref"}},
		{name: "dependency shape", src: `{"dependencies": {"a": 1}}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"dependencies", "a"}},
		{name: "required not strings", src: `{"required": [1]}`, kind: jserrors.KindMalformedKeywordValue, path: []string{"required"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := jsonvalue.DecodeBytes([]byte(tt.src))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			_, err = Parse(v)
			if err == nil {
				t.Fatalf("Parse() error = nil, want %s", tt.kind)
			}
			se, ok := jserrors.AsSchemaError(err)
			if !ok {
				t.Fatalf("Parse() error = %T, want *SchemaError", err)
			}
			if se.Kind != tt.kind {
				t.Fatalf("Kind = %q, want %q (%v)", se.Kind, tt.kind, err)
			}
			if diff := cmp.Diff(tt.path, se.Path); diff != "" {
				t.Fatalf("Path mismatch (-want +got):\n%s", diff)
			}
			if !errors.Is(err, &jserrors.SchemaError{Kind: tt.kind}) {
				t.Fatalf("errors.Is(err, kind sentinel) = false")
			}
		})
	}
}
