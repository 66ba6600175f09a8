package parser

import (
	"fmt"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

func (p *parser) arrayKeywords(r reader, k *schema.ArrayKeywords) error {
	var err error
	if k.MinItems, err = r.size("minItems"); err != nil {
		return err
	}
	if k.MaxItems, err = r.size("maxItems"); err != nil {
		return err
	}
	if err := checkSizeRange(r.path, "minItems", k.MinItems, "maxItems", k.MaxItems); err != nil {
		return err
	}
	if k.UniqueItems, err = r.flag("uniqueItems"); err != nil {
		return err
	}

	items, hasItems := r.lookup("items")
	additional, err := p.optionalSchema(r, "additionalItems")
	if err != nil {
		return err
	}
	if !hasItems {
		return nil
	}
	switch items.Kind() {
	case jsonvalue.KindArray:
		k.Items = make([]schema.Node, 0, items.Len())
		for i, item := range items.Elements() {
			n, err := p.schema(item, r.path.Child("items", fmt.Sprint(i)))
			if err != nil {
				return err
			}
			k.Items = append(k.Items, n)
		}
		// additionalItems only applies past positional items.
		k.AdditionalItems = additional
	case jsonvalue.KindObject, jsonvalue.KindBool:
		n, err := p.schema(items, r.path.Child("items"))
		if err != nil {
			return err
		}
		k.Items = []schema.Node{n}
		k.ItemsIsSingleSchema = true
	default:
		return r.malformed("items", "items must be a schema or an array of schemas, got %s", items.Kind())
	}
	return nil
}

func parseNumberKeywords(r reader, k *schema.NumberKeywords) error {
	var err error
	if k.MultipleOf, err = r.number("multipleOf"); err != nil {
		return err
	}
	if k.MultipleOf != nil && !(*k.MultipleOf > 0) {
		return r.malformed("multipleOf", "multipleOf must be greater than 0, got %s", formatFloat(*k.MultipleOf))
	}
	if k.Minimum, err = r.number("minimum"); err != nil {
		return err
	}
	if k.Maximum, err = r.number("maximum"); err != nil {
		return err
	}
	if k.ExclusiveMinimum, err = r.flag("exclusiveMinimum"); err != nil {
		return err
	}
	if k.ExclusiveMaximum, err = r.flag("exclusiveMaximum"); err != nil {
		return err
	}
	if r.obj.Has("exclusiveMinimum") && k.Minimum == nil {
		return r.malformed("exclusiveMinimum", "exclusiveMinimum requires minimum")
	}
	if r.obj.Has("exclusiveMaximum") && k.Maximum == nil {
		return r.malformed("exclusiveMaximum", "exclusiveMaximum requires maximum")
	}
	if k.Minimum == nil || k.Maximum == nil {
		return nil
	}
	lo, hi := *k.Minimum, *k.Maximum
	switch {
	case lo > hi:
		return schemaErr(jserrors.KindInvalidRange, r.path,
			"minimum %s exceeds maximum %s", formatFloat(lo), formatFloat(hi))
	case lo == hi && (k.ExclusiveMinimum || k.ExclusiveMaximum):
		return schemaErr(jserrors.KindInvalidRange, r.path,
			"exclusive bound at %s leaves no values", formatFloat(lo))
	}
	return nil
}

func (p *parser) objectKeywords(r reader, k *schema.ObjectKeywords) error {
	var err error
	if k.MinProperties, err = r.size("minProperties"); err != nil {
		return err
	}
	if k.MaxProperties, err = r.size("maxProperties"); err != nil {
		return err
	}
	if err := checkSizeRange(r.path, "minProperties", k.MinProperties, "maxProperties", k.MaxProperties); err != nil {
		return err
	}
	if v, ok := r.lookup("required"); ok {
		if k.Required, err = stringSet("required", v, r.path.Child("required")); err != nil {
			return err
		}
	}
	if k.Properties, err = p.keyedSchemas(r, "properties", false); err != nil {
		return err
	}
	if k.PatternProperties, err = p.keyedSchemas(r, "patternProperties", true); err != nil {
		return err
	}
	if k.AdditionalProperties, err = p.optionalSchema(r, "additionalProperties"); err != nil {
		return err
	}
	k.Dependencies, err = p.dependencies(r)
	return err
}

// keyedSchemas reads "properties" or "patternProperties" in document order.
func (p *parser) keyedSchemas(r reader, keyword string, patterns bool) ([]schema.KeyValue, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return nil, nil
	}
	path := r.path.Child(keyword)
	if v.Kind() != jsonvalue.KindObject {
		return nil, malformed(path, "%s must be an object, got %s", keyword, v.Kind())
	}
	if err := uniqueMembers(v, path, "name"); err != nil {
		return nil, err
	}
	out := make([]schema.KeyValue, 0, v.Len())
	for key, sub := range v.Members() {
		kv := schema.KeyValue{Key: key}
		if patterns {
			pat, err := compilePattern(key, path.Child(key))
			if err != nil {
				return nil, err
			}
			kv.Pattern = pat
		}
		n, err := p.schema(sub, path.Child(key))
		if err != nil {
			return nil, err
		}
		kv.Schema = n
		out = append(out, kv)
	}
	return out, nil
}

func (p *parser) dependencies(r reader) ([]schema.Dependency, error) {
	v, ok := r.lookup("dependencies")
	if !ok {
		return nil, nil
	}
	path := r.path.Child("dependencies")
	if v.Kind() != jsonvalue.KindObject {
		return nil, malformed(path, "dependencies must be an object, got %s", v.Kind())
	}
	if err := uniqueMembers(v, path, "name"); err != nil {
		return nil, err
	}
	out := make([]schema.Dependency, 0, v.Len())
	for key, dep := range v.Members() {
		d := schema.Dependency{Key: key}
		switch dep.Kind() {
		case jsonvalue.KindArray:
			names, err := stringSet("dependencies", dep, path.Child(key))
			if err != nil {
				return nil, err
			}
			d.Properties = names
		case jsonvalue.KindObject, jsonvalue.KindBool:
			n, err := p.schema(dep, path.Child(key))
			if err != nil {
				return nil, err
			}
			d.Schema = n
		default:
			return nil, malformed(path.Child(key), "dependency must be a schema or an array of property names, got %s", dep.Kind())
		}
		out = append(out, d)
	}
	return out, nil
}

func parseStringKeywords(r reader, k *schema.StringKeywords) error {
	var err error
	if k.MinLength, err = r.size("minLength"); err != nil {
		return err
	}
	if k.MaxLength, err = r.size("maxLength"); err != nil {
		return err
	}
	if err := checkSizeRange(r.path, "minLength", k.MinLength, "maxLength", k.MaxLength); err != nil {
		return err
	}
	v, ok := r.lookup("pattern")
	if !ok {
		return nil
	}
	if v.Kind() != jsonvalue.KindString {
		return r.malformed("pattern", "pattern must be a string, got %s", v.Kind())
	}
	k.Pattern, err = compilePattern(v.Text(), r.path.Child("pattern"))
	return err
}

func formatFloat(f float64) string {
	return jsonvalue.Number(f).String()
}
