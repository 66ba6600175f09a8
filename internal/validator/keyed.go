package validator

import (
	"fmt"
	"regexp"
	"strings"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// PatternProperty binds a key pattern to a value validator.
type PatternProperty struct {
	Pattern   *regexp.Regexp
	Validator Validator
}

// Dependency is triggered by the presence of Key. It requires either every
// name in Properties to be present or the whole object to pass Validator.
type Dependency struct {
	Key        string
	Properties []string
	Validator  Validator
}

// KeyedRules configures a KeyedCollectionValidator.
type KeyedRules struct {
	Count      *CountValidator
	Required   []string
	Properties map[string]Validator
	Patterns   []PatternProperty
	// Additional validates keys matched by no name or pattern; nil accepts them.
	Additional Validator
	// ForbidAdditional rejects keys matched by no name or pattern.
	ForbidAdditional bool
	Dependencies     []Dependency
}

// KeyedCollectionValidator applies object keywords to every member of an object.
type KeyedCollectionValidator struct {
	rules KeyedRules
}

// NewKeyedCollectionValidator returns a validator for rules. rules must not be
// modified afterwards.
func NewKeyedCollectionValidator(rules KeyedRules) *KeyedCollectionValidator {
	return &KeyedCollectionValidator{rules: rules}
}

// Validate checks the distinct key count, required keys, each member in document order and
// then dependencies. Every finding is returned. Non-objects pass.
func (k *KeyedCollectionValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindObject {
		return true, nil
	}
	r := &k.rules
	ok, errs := r.Count.Check(v.KeyCount())

	for _, name := range r.Required {
		if v.Has(name) {
			continue
		}
		ok = false
		err := newError(jserrors.ErrRequiredPropertyMissing, "missing required property %q", name)
		err.Expected = []string{name}
		err.Validator = "required"
		errs = append(errs, err)
	}

	for key, member := range v.Members() {
		matched := false
		if pv, found := r.Properties[key]; found {
			matched = true
			if pass, nested := pv.Validate(member); !pass {
				ok = false
				errs = append(errs, elementError(KeySegment(key), pv, nested))
			}
		}
		for _, pp := range r.Patterns {
			if !pp.Pattern.MatchString(key) {
				continue
			}
			matched = true
			if pass, nested := pp.Validator.Validate(member); !pass {
				ok = false
				errs = append(errs, elementError(KeySegment(key), pp.Validator, nested))
			}
		}
		if matched {
			continue
		}
		switch {
		case r.ForbidAdditional:
			ok = false
			err := newError(jserrors.ErrUnexpectedAdditionalProperty, "property %q is not allowed", key)
			err.Path = Path{KeySegment(key)}
			err.Actual = key
			err.Validator = "additionalProperties"
			errs = append(errs, err)
		case r.Additional != nil:
			if pass, nested := r.Additional.Validate(member); !pass {
				ok = false
				errs = append(errs, elementError(KeySegment(key), r.Additional, nested))
			}
		}
	}

	for _, dep := range r.Dependencies {
		if !v.Has(dep.Key) {
			continue
		}
		if err, failed := checkDependency(dep, v); failed {
			ok = false
			errs = append(errs, err)
		}
	}
	return ok, errs
}

func checkDependency(dep Dependency, v jsonvalue.Value) (Error, bool) {
	if dep.Validator != nil {
		pass, nested := dep.Validator.Validate(v)
		if pass {
			return Error{}, false
		}
		err := newError(jserrors.ErrDependencyNotSatisfied,
			"property %q requires the object to match %s", dep.Key, dep.Validator)
		err.Validator = dep.Validator.String()
		err.Nested = nested
		return err, true
	}
	var missing []string
	for _, name := range dep.Properties {
		if !v.Has(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return Error{}, false
	}
	err := newError(jserrors.ErrDependencyNotSatisfied,
		"property %q requires %s", dep.Key, quoteAll(missing))
	err.Expected = missing
	err.Validator = "dependencies"
	return err, true
}

func (k *KeyedCollectionValidator) String() string {
	return fmt.Sprintf("properties(%d named, %d patterns)", len(k.rules.Properties), len(k.rules.Patterns))
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
