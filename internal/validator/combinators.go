package validator

import (
	"fmt"
	"strings"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Accept is the true schema.
var Accept Validator = literal{allow: true}

// Reject is the false schema.
var Reject Validator = literal{allow: false}

type literal struct {
	allow bool
}

func (l literal) Validate(v jsonvalue.Value) (bool, []Error) {
	if l.allow {
		return true, nil
	}
	err := newError(jserrors.ErrValueNotAllowed, "no value is allowed here")
	err.Actual = v.String()
	err.Validator = l.String()
	return false, []Error{err}
}

func (l literal) String() string {
	if l.allow {
		return "true"
	}
	return "false"
}

// AllValidator is the conjunction of its validators. Every validator runs and
// their errors are concatenated in order.
type AllValidator struct {
	validators []Validator
}

// All returns the conjunction of validators, collapsing trivial cases.
func All(validators ...Validator) Validator {
	switch len(validators) {
	case 0:
		return Accept
	case 1:
		return validators[0]
	default:
		return &AllValidator{validators: validators}
	}
}

func (a *AllValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	ok := true
	var errs []Error
	for _, sub := range a.validators {
		pass, subErrs := sub.Validate(v)
		if !pass {
			ok = false
			errs = append(errs, subErrs...)
		}
	}
	return ok, errs
}

func (a *AllValidator) String() string {
	return fmt.Sprintf("all(%d validators)", len(a.validators))
}

// AnyOfValidator passes when at least one branch passes.
type AnyOfValidator struct {
	branches []Validator
}

// NewAnyOfValidator returns an anyOf validator.
func NewAnyOfValidator(branches []Validator) *AnyOfValidator {
	return &AnyOfValidator{branches: branches}
}

func (a *AnyOfValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	var nested []Error
	for _, b := range a.branches {
		pass, errs := b.Validate(v)
		if pass {
			return true, nil
		}
		nested = append(nested, errs...)
	}
	err := newError(jserrors.ErrAnyOfFailed, "value matches none of %d anyOf schemas", len(a.branches))
	err.Actual = v.String()
	err.Validator = a.String()
	err.Nested = nested
	return false, []Error{err}
}

func (a *AnyOfValidator) String() string {
	return fmt.Sprintf("anyOf(%d schemas)", len(a.branches))
}

// OneOfValidator passes when exactly one branch passes.
type OneOfValidator struct {
	branches []Validator
}

// NewOneOfValidator returns a oneOf validator.
func NewOneOfValidator(branches []Validator) *OneOfValidator {
	return &OneOfValidator{branches: branches}
}

func (o *OneOfValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	var (
		matched []int
		nested  []Error
	)
	for i, b := range o.branches {
		pass, errs := b.Validate(v)
		if pass {
			matched = append(matched, i)
			continue
		}
		nested = append(nested, errs...)
	}
	if len(matched) == 1 {
		return true, nil
	}
	var err Error
	if len(matched) == 0 {
		err = newError(jserrors.ErrOneOfFailed, "value matches none of %d oneOf schemas", len(o.branches))
		err.Nested = nested
	} else {
		err = newError(jserrors.ErrOneOfFailed, "value matches oneOf schemas %s, want exactly one", joinInts(matched))
	}
	err.Actual = v.String()
	err.Validator = o.String()
	return false, []Error{err}
}

func (o *OneOfValidator) String() string {
	return fmt.Sprintf("oneOf(%d schemas)", len(o.branches))
}

// NotValidator passes when its inner validator fails.
type NotValidator struct {
	inner Validator
}

// NewNotValidator returns a not validator.
func NewNotValidator(inner Validator) *NotValidator {
	return &NotValidator{inner: inner}
}

func (n *NotValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if pass, _ := n.inner.Validate(v); !pass {
		return true, nil
	}
	err := newError(jserrors.ErrNotFailed, "value must not match %s", n.inner)
	err.Actual = v.String()
	err.Validator = n.String()
	return false, []Error{err}
}

func (n *NotValidator) String() string {
	return "not(" + n.inner.String() + ")"
}

// EnumValidator passes values structurally equal to one of its members.
type EnumValidator struct {
	values []jsonvalue.Value
}

// NewEnumValidator returns an enum validator.
func NewEnumValidator(values []jsonvalue.Value) *EnumValidator {
	return &EnumValidator{values: values}
}

func (e *EnumValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	for _, allowed := range e.values {
		if jsonvalue.Equal(allowed, v) {
			return true, nil
		}
	}
	expected := make([]string, len(e.values))
	for i, allowed := range e.values {
		expected[i] = allowed.String()
	}
	err := newError(jserrors.ErrEnumMismatch, "%s is not one of the enumerated values", v)
	err.Actual = v.String()
	err.Expected = expected
	err.Validator = "enum"
	return false, []Error{err}
}

func (e *EnumValidator) String() string {
	return fmt.Sprintf("enum(%d values)", len(e.values))
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
