package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies the kind of a validation failure.
type ErrorCode string

const (
	// ErrSchemaNotLoaded indicates validation was attempted without a compiled schema.
	ErrSchemaNotLoaded ErrorCode = "schema-not-loaded"
	// ErrJSONParse indicates the instance document could not be decoded.
	ErrJSONParse ErrorCode = "json-parse-error"

	// ErrCountOutOfRange indicates an array item count or object property count is out of bounds.
	ErrCountOutOfRange ErrorCode = "count-out-of-range"
	// ErrDuplicateElement indicates an array with uniqueItems holds two equal elements.
	ErrDuplicateElement ErrorCode = "duplicate-element"
	// ErrTypeMismatch indicates a value has a JSON type the schema does not allow.
	ErrTypeMismatch ErrorCode = "type-mismatch"
	// ErrRangeViolation indicates a number is outside minimum/maximum.
	ErrRangeViolation ErrorCode = "range-violation"
	// ErrNotMultipleOf indicates a number is not a multiple of multipleOf.
	ErrNotMultipleOf ErrorCode = "not-multiple-of"
	// ErrLengthOutOfRange indicates a string length is outside minLength/maxLength.
	ErrLengthOutOfRange ErrorCode = "length-out-of-range"
	// ErrPatternMismatch indicates a string does not match pattern.
	ErrPatternMismatch ErrorCode = "pattern-mismatch"
	// ErrRequiredPropertyMissing indicates a required property is absent.
	ErrRequiredPropertyMissing ErrorCode = "required-property-missing"
	// ErrUnexpectedAdditionalProperty indicates a property forbidden by additionalProperties.
	ErrUnexpectedAdditionalProperty ErrorCode = "unexpected-additional-property"
	// ErrUnexpectedAdditionalItem indicates an item forbidden by additionalItems.
	ErrUnexpectedAdditionalItem ErrorCode = "unexpected-additional-item"
	// ErrDependencyNotSatisfied indicates a property dependency is not met.
	ErrDependencyNotSatisfied ErrorCode = "dependency-not-satisfied"
	// ErrElementFailedValidator indicates an element or member failed a nested validator.
	ErrElementFailedValidator ErrorCode = "element-failed-validator"

	// ErrEnumMismatch indicates a value equals none of the enum values.
	ErrEnumMismatch ErrorCode = "enum-mismatch"
	// ErrAnyOfFailed indicates a value matched none of the anyOf schemas.
	ErrAnyOfFailed ErrorCode = "any-of-failed"
	// ErrOneOfFailed indicates a value matched zero or several of the oneOf schemas.
	ErrOneOfFailed ErrorCode = "one-of-failed"
	// ErrNotFailed indicates a value matched the schema under not.
	ErrNotFailed ErrorCode = "not-failed"
	// ErrValueNotAllowed indicates a value met the false schema.
	ErrValueNotAllowed ErrorCode = "value-not-allowed"
)

// Validation describes one instance violation with its code and the JSON
// pointer of the offending value.
//
//nolint:errname // public API name.
type Validation struct {
	Code     string
	Message  string
	Path     string
	Actual   string
	Expected []string
}

// ValidationList is an error that wraps one or more validation errors.
type ValidationList []Validation //nolint:errname // public API name, keep for compatibility.

// Error returns a compact summary of the validation errors.
func (v ValidationList) Error() string {
	switch len(v) {
	case 0:
		return "no validation errors"
	case 1:
		return v[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", v[0].Error(), len(v)-1)
	}
}

// Err returns v as an error, or nil when v is empty.
func (v ValidationList) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Codes returns the code of every entry in order.
func (v ValidationList) Codes() []string {
	out := make([]string, len(v))
	for i := range v {
		out[i] = v[i].Code
	}
	return out
}

// Error formats the validation for display, including code, message, and context.
func (v *Validation) Error() string {
	if v == nil {
		return "validation <nil>"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", v.Code, v.Message))
	if v.Path != "" {
		b.WriteString(fmt.Sprintf(" at %s", v.Path))
	}
	if len(v.Expected) > 0 {
		b.WriteString(fmt.Sprintf(" (expected: %s)", strings.Join(v.Expected, ", ")))
	}
	if v.Actual != "" {
		b.WriteString(fmt.Sprintf(" (actual: %s)", v.Actual))
	}
	return b.String()
}

// NewValidation builds a Validation with a code, message, and optional path.
func NewValidation(code ErrorCode, msg, path string) Validation {
	return Validation{Code: string(code), Message: msg, Path: path}
}

// NewValidationf formats a message and builds a Validation.
func NewValidationf(code ErrorCode, path, format string, args ...any) Validation {
	return NewValidation(code, fmt.Sprintf(format, args...), path)
}

// AsValidations extracts validation errors from an error returned by validation helpers.
func AsValidations(err error) ([]Validation, bool) {
	list, ok := asValidationList(err)
	if !ok {
		return nil, false
	}
	return []Validation(list), true
}

func asValidationList(err error) (ValidationList, bool) {
	if err == nil {
		return nil, false
	}
	var list ValidationList
	if errors.As(err, &list) {
		return list, true
	}

	var listPtr *ValidationList
	if errors.As(err, &listPtr) && listPtr != nil {
		return *listPtr, true
	}

	return nil, false
}
