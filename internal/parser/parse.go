package parser

import (
	"fmt"
	"slices"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Document is a parsed schema document.
type Document struct {
	Root  schema.Node
	index map[string]schema.Node
	refs  []*schema.RefNode
}

// Lookup returns the schema located at the JSON pointer ptr ("" is the root).
// Only locations reached through schema keywords are indexed.
func (d *Document) Lookup(ptr string) (schema.Node, bool) {
	n, ok := d.index[ptr]
	return n, ok
}

// Refs returns the $ref nodes in document order.
func (d *Document) Refs() []*schema.RefNode {
	return d.refs
}

// Len returns the number of schema nodes in the document.
func (d *Document) Len() int {
	return len(d.index)
}

// Parse builds the AST for a schema document. Every schema object becomes an
// AmbiguousNode, a $ref a RefNode and a boolean a LiteralNode. The first
// malformed keyword aborts parsing with a *errors.SchemaError.
func Parse(doc jsonvalue.Value) (*Document, error) {
	p := &parser{index: make(map[string]schema.Node)}
	root, err := p.schema(doc, nil)
	if err != nil {
		return nil, err
	}
	return &Document{Root: root, index: p.index, refs: p.refs}, nil
}

type parser struct {
	index map[string]schema.Node
	refs  []*schema.RefNode
}

func (p *parser) schema(v jsonvalue.Value, path schema.Path) (schema.Node, error) {
	var (
		node schema.Node
		err  error
	)
	switch v.Kind() {
	case jsonvalue.KindBool:
		node = &schema.LiteralNode{Common: schema.Common{Path: path}, Allow: v.Bool()}
	case jsonvalue.KindObject:
		node, err = p.object(v, path)
	default:
		return nil, malformed(path, "schema must be an object or boolean, got %s", v.Kind())
	}
	if err != nil {
		return nil, err
	}
	p.index[jserrors.Pointer(path)] = node
	return node, nil
}

func (p *parser) object(v jsonvalue.Value, path schema.Path) (schema.Node, error) {
	if err := uniqueMembers(v, path, "keyword"); err != nil {
		return nil, err
	}
	r := reader{obj: v, path: path}

	// definitions are indexed even next to $ref so that "#/definitions/x" resolves.
	if defs, ok := r.lookup("definitions"); ok {
		if err := p.schemaMap(defs, path.Child("definitions")); err != nil {
			return nil, err
		}
	}
	if ref, ok := r.lookup("$ref"); ok {
		if ref.Kind() != jsonvalue.KindString {
			return nil, r.malformed("$ref", "$ref must be a string, got %s", ref.Kind())
		}
		n := &schema.RefNode{Common: schema.Common{Path: path}, Ref: ref.Text()}
		p.refs = append(p.refs, n)
		return n, nil
	}

	n := &schema.AmbiguousNode{
		Common:     schema.Common{Path: path},
		ValidTypes: schema.AllTypes,
	}
	if err := p.common(r, &n.Common); err != nil {
		return nil, err
	}
	if err := parseType(r, n); err != nil {
		return nil, err
	}
	if err := p.arrayKeywords(r, &n.Array); err != nil {
		return nil, err
	}
	if err := parseNumberKeywords(r, &n.Number); err != nil {
		return nil, err
	}
	if err := p.objectKeywords(r, &n.Object); err != nil {
		return nil, err
	}
	if err := parseStringKeywords(r, &n.String); err != nil {
		return nil, err
	}
	return n, nil
}

// schemaMap parses every member of an object whose values are schemas.
func (p *parser) schemaMap(v jsonvalue.Value, path schema.Path) error {
	if v.Kind() != jsonvalue.KindObject {
		return malformed(path, "%s must be an object, got %s", path[len(path)-1], v.Kind())
	}
	if err := uniqueMembers(v, path, "name"); err != nil {
		return err
	}
	for key, sub := range v.Members() {
		if _, err := p.schema(sub, path.Child(key)); err != nil {
			return err
		}
	}
	return nil
}

// schemaList parses a non-empty array of schemas.
func (p *parser) schemaList(r reader, keyword string) ([]schema.Node, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return nil, nil
	}
	if v.Kind() != jsonvalue.KindArray || v.Len() == 0 {
		return nil, r.malformed(keyword, "%s must be a non-empty array of schemas", keyword)
	}
	out := make([]schema.Node, 0, v.Len())
	for i, sub := range v.Elements() {
		n, err := p.schema(sub, r.path.Child(keyword, fmt.Sprint(i)))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// optionalSchema parses keyword as a schema when present.
func (p *parser) optionalSchema(r reader, keyword string) (schema.Node, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return nil, nil
	}
	return p.schema(v, r.path.Child(keyword))
}

func (p *parser) common(r reader, c *schema.Common) error {
	var err error
	if c.Title, err = r.text("title"); err != nil {
		return err
	}
	if c.Description, err = r.text("description"); err != nil {
		return err
	}
	if c.Enum, err = parseEnum(r); err != nil {
		return err
	}
	if c.AllOf, err = p.schemaList(r, "allOf"); err != nil {
		return err
	}
	if c.AnyOf, err = p.schemaList(r, "anyOf"); err != nil {
		return err
	}
	if c.OneOf, err = p.schemaList(r, "oneOf"); err != nil {
		return err
	}
	c.Not, err = p.optionalSchema(r, "not")
	return err
}

func parseEnum(r reader) ([]jsonvalue.Value, error) {
	v, ok := r.lookup("enum")
	if !ok {
		return nil, nil
	}
	if v.Kind() != jsonvalue.KindArray || v.Len() == 0 {
		return nil, r.malformed("enum", "enum must be a non-empty array")
	}
	out := make([]jsonvalue.Value, 0, v.Len())
	for i, item := range v.Elements() {
		for j, prev := range out {
			if jsonvalue.Equal(prev, item) {
				return nil, schemaErr(jserrors.KindDuplicateKey, r.path.Child("enum", fmt.Sprint(i)),
					"enum value %s repeats index %d", item, j)
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func parseType(r reader, n *schema.AmbiguousNode) error {
	v, ok := r.lookup("type")
	if !ok {
		return nil
	}
	var names []jsonvalue.Value
	switch v.Kind() {
	case jsonvalue.KindString:
		names = []jsonvalue.Value{v}
	case jsonvalue.KindArray:
		if v.Len() == 0 {
			return r.malformed("type", "type must not be an empty array")
		}
		for _, e := range v.Elements() {
			names = append(names, e)
		}
	default:
		return r.malformed("type", "type must be a string or an array of strings, got %s", v.Kind())
	}

	var set schema.TypeSet
	for i, name := range names {
		if name.Kind() != jsonvalue.KindString {
			return r.malformed("type", "type entry %d must be a string, got %s", i, name.Kind())
		}
		t, ok := schema.ParseType(name.Text())
		if !ok {
			return r.malformed("type", "unknown type %q", name.Text())
		}
		if set.Has(t) {
			return schemaErr(jserrors.KindDuplicateKey, r.path.Child("type"), "type %q listed twice", name.Text())
		}
		set = set.Union(schema.SetOf(t))
	}
	n.ValidTypes = set
	n.TypeExplicit = true
	return nil
}

func schemaErr(kind jserrors.SchemaErrorKind, path schema.Path, format string, args ...any) error {
	return &jserrors.SchemaError{
		Kind:    kind,
		Path:    slices.Clone(path),
		Message: fmt.Sprintf(format, args...),
	}
}

func malformed(path schema.Path, format string, args ...any) error {
	return schemaErr(jserrors.KindMalformedKeywordValue, path, format, args...)
}

// uniqueMembers rejects objects that repeat a member name.
func uniqueMembers(v jsonvalue.Value, path schema.Path, what string) error {
	seen := make(map[string]struct{}, v.Len())
	for key := range v.Members() {
		if _, dup := seen[key]; dup {
			return schemaErr(jserrors.KindDuplicateKey, path, "%s %q repeated", what, key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
