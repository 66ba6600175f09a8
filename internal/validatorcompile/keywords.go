package validatorcompile

import (
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/internal/validator"
)

// allOrNil joins parts, returning nil when there is nothing to check.
func allOrNil(parts []validator.Validator) validator.Validator {
	if len(parts) == 0 {
		return nil
	}
	return validator.All(parts...)
}

func countOrNil(lo, hi *int, noun string) *validator.CountValidator {
	if lo == nil && hi == nil {
		return nil
	}
	return validator.NewCountValidator(lo, hi, noun)
}

// forbids reports whether n is the bare false schema.
func forbids(n schema.Node) bool {
	lit, ok := n.(*schema.LiteralNode)
	return ok && !lit.Allow && !lit.HasCombinators()
}

func (c *compiler) array(k *schema.ArrayKeywords) (validator.Validator, error) {
	var parts []validator.Validator
	count := countOrNil(k.MinItems, k.MaxItems, "items")
	var elements []validator.Validator
	if k.ItemsIsSingleSchema && !schema.IsAllowAll(k.Items[0]) {
		ev, err := c.compile(k.Items[0])
		if err != nil {
			return nil, err
		}
		elements = []validator.Validator{ev}
	}
	if count != nil || len(elements) > 0 {
		parts = append(parts, validator.NewCollectionValidator(count, elements))
	}
	if k.UniqueItems {
		parts = append(parts, validator.NewUniqueValidator())
	}
	if !k.ItemsIsSingleSchema && (len(k.Items) > 0 || !schema.IsAllowAll(k.AdditionalItems)) {
		items, err := c.compileAll(k.Items)
		if err != nil {
			return nil, err
		}
		var additional validator.Validator
		forbid := forbids(k.AdditionalItems)
		if !forbid && !schema.IsAllowAll(k.AdditionalItems) {
			if additional, err = c.compile(k.AdditionalItems); err != nil {
				return nil, err
			}
		}
		parts = append(parts, validator.NewPositionalValidator(items, additional, forbid))
	}
	return allOrNil(parts), nil
}

func (c *compiler) object(k *schema.ObjectKeywords) (validator.Validator, error) {
	if !k.IsSet() {
		return nil, nil
	}
	rules := validator.KeyedRules{
		Count:    countOrNil(k.MinProperties, k.MaxProperties, "properties"),
		Required: k.Required,
	}
	if len(k.Properties) > 0 {
		rules.Properties = make(map[string]validator.Validator, len(k.Properties))
		for _, kv := range k.Properties {
			v, err := c.compile(kv.Schema)
			if err != nil {
				return nil, err
			}
			rules.Properties[kv.Key] = v
		}
	}
	for _, kv := range k.PatternProperties {
		v, err := c.compile(kv.Schema)
		if err != nil {
			return nil, err
		}
		rules.Patterns = append(rules.Patterns, validator.PatternProperty{Pattern: kv.Pattern.Re, Validator: v})
	}
	switch {
	case forbids(k.AdditionalProperties):
		rules.ForbidAdditional = true
	case !schema.IsAllowAll(k.AdditionalProperties):
		v, err := c.compile(k.AdditionalProperties)
		if err != nil {
			return nil, err
		}
		rules.Additional = v
	}
	for _, dep := range k.Dependencies {
		d := validator.Dependency{Key: dep.Key, Properties: dep.Properties}
		if dep.Schema != nil {
			v, err := c.compile(dep.Schema)
			if err != nil {
				return nil, err
			}
			d.Validator = v
		}
		rules.Dependencies = append(rules.Dependencies, d)
	}
	return validator.NewKeyedCollectionValidator(rules), nil
}

func number(k *schema.NumberKeywords) validator.Validator {
	var parts []validator.Validator
	if k.Minimum != nil || k.Maximum != nil {
		parts = append(parts, validator.NewRangeValidator(k.Minimum, k.Maximum, k.ExclusiveMinimum, k.ExclusiveMaximum))
	}
	if k.MultipleOf != nil {
		parts = append(parts, validator.NewMultipleOfValidator(*k.MultipleOf))
	}
	if k.RequireIntegral {
		parts = append(parts, validator.IntegralValidator{})
	}
	return allOrNil(parts)
}

func str(k *schema.StringKeywords) validator.Validator {
	var parts []validator.Validator
	if k.MinLength != nil || k.MaxLength != nil {
		parts = append(parts, validator.NewLengthValidator(k.MinLength, k.MaxLength))
	}
	if k.Pattern != nil {
		parts = append(parts, validator.NewPatternValidator(k.Pattern.Re))
	}
	return allOrNil(parts)
}
