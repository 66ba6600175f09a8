package validator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"unicode/utf8"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// A value is a multiple when value/divisor lies within multipleTolerance of
// an integer, widened to quotientTolerance*|quotient| for large quotients
// where float division loses the fraction.
const (
	multipleTolerance = 1e-9
	quotientTolerance = 1e-12
)

// RangeValidator checks a number against minimum and maximum.
type RangeValidator struct {
	min, max         *float64
	exclMin, exclMax bool
}

// NewRangeValidator returns a range validator; a nil bound is open.
func NewRangeValidator(minimum, maximum *float64, exclusiveMin, exclusiveMax bool) *RangeValidator {
	return &RangeValidator{min: minimum, max: maximum, exclMin: exclusiveMin, exclMax: exclusiveMax}
}

func (r *RangeValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindNumber {
		return true, nil
	}
	f := v.Float()
	var errs []Error
	if r.min != nil {
		if below := f < *r.min || (r.exclMin && f == *r.min); below {
			errs = append(errs, r.violation(v, ">", ">=", r.exclMin, *r.min))
		}
	}
	if r.max != nil {
		if above := f > *r.max || (r.exclMax && f == *r.max); above {
			errs = append(errs, r.violation(v, "<", "<=", r.exclMax, *r.max))
		}
	}
	return len(errs) == 0, errs
}

func (r *RangeValidator) violation(v jsonvalue.Value, strict, inclusive string, exclusive bool, bound float64) Error {
	op := inclusive
	if exclusive {
		op = strict
	}
	want := op + " " + formatNumber(bound)
	err := newError(jserrors.ErrRangeViolation, "%s is not %s", v, want)
	err.Actual = v.String()
	err.Expected = []string{want}
	err.Validator = r.String()
	return err
}

func (r *RangeValidator) String() string {
	lo, hi := "(-inf", "+inf)"
	if r.min != nil {
		lo = "[" + formatNumber(*r.min)
		if r.exclMin {
			lo = "(" + formatNumber(*r.min)
		}
	}
	if r.max != nil {
		hi = formatNumber(*r.max) + "]"
		if r.exclMax {
			hi = formatNumber(*r.max) + ")"
		}
	}
	return "range" + lo + ", " + hi
}

// MultipleOfValidator checks that a number is a multiple of a positive divisor.
type MultipleOfValidator struct {
	divisor float64
}

// NewMultipleOfValidator returns a validator for divisor, which must be > 0.
func NewMultipleOfValidator(divisor float64) *MultipleOfValidator {
	return &MultipleOfValidator{divisor: divisor}
}

func (m *MultipleOfValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindNumber {
		return true, nil
	}
	if m.isMultiple(v.Float()) {
		return true, nil
	}
	return false, []Error{m.violation(v)}
}

func (m *MultipleOfValidator) isMultiple(f float64) bool {
	q := f / m.divisor
	if math.IsInf(q, 0) {
		return math.Mod(f, m.divisor) == 0
	}
	return math.Abs(q-math.Round(q)) <= math.Max(multipleTolerance, quotientTolerance*math.Abs(q))
}

func (m *MultipleOfValidator) violation(v jsonvalue.Value) Error {
	err := newError(jserrors.ErrNotMultipleOf, "%s is not a multiple of %s", v, formatNumber(m.divisor))
	err.Actual = v.String()
	err.Expected = []string{"multiple of " + formatNumber(m.divisor)}
	err.Validator = m.String()
	return err
}

func (m *MultipleOfValidator) String() string {
	return "multipleOf(" + formatNumber(m.divisor) + ")"
}

// IntegralValidator rejects numbers with a fractional part.
type IntegralValidator struct{}

func (IntegralValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindNumber || v.IsIntegral() {
		return true, nil
	}
	err := newError(jserrors.ErrTypeMismatch, "expected integer, got %s", v)
	err.Actual = "number"
	err.Expected = []string{"integer"}
	err.Validator = "integer"
	return false, []Error{err}
}

func (IntegralValidator) String() string { return "integer" }

// LengthValidator checks a string's length in Unicode code points.
type LengthValidator struct {
	min, max *int
}

// NewLengthValidator returns a length validator; a nil bound is open.
func NewLengthValidator(minLength, maxLength *int) *LengthValidator {
	return &LengthValidator{min: minLength, max: maxLength}
}

func (l *LengthValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindString {
		return true, nil
	}
	n := utf8.RuneCountInString(v.Text())
	if (l.min == nil || n >= *l.min) && (l.max == nil || n <= *l.max) {
		return true, nil
	}
	bounds := boundsText(l.min, l.max)
	err := newError(jserrors.ErrLengthOutOfRange, "expected %s characters, got %d", bounds, n)
	err.Actual = strconv.Itoa(n)
	err.Expected = []string{bounds}
	err.Validator = l.String()
	return false, []Error{err}
}

func (l *LengthValidator) String() string {
	return fmt.Sprintf("length(%s)", boundsText(l.min, l.max))
}

// PatternValidator searches a string for an unanchored regular expression match.
type PatternValidator struct {
	re *regexp.Regexp
}

// NewPatternValidator returns a pattern validator.
func NewPatternValidator(re *regexp.Regexp) *PatternValidator {
	return &PatternValidator{re: re}
}

func (p *PatternValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindString || p.re.MatchString(v.Text()) {
		return true, nil
	}
	err := newError(jserrors.ErrPatternMismatch, "%s does not match pattern %q", v, p.re)
	err.Actual = v.Text()
	err.Expected = []string{p.re.String()}
	err.Validator = p.String()
	return false, []Error{err}
}

func (p *PatternValidator) String() string {
	return "pattern(" + p.re.String() + ")"
}

func formatNumber(f float64) string {
	return jsonvalue.Number(f).String()
}
