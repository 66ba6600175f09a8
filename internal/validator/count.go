package validator

import (
	"fmt"
	"strconv"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// CountValidator checks that a size lies within [Min, Max]. A nil bound is
// unbounded on that side.
type CountValidator struct {
	min  *int
	max  *int
	noun string
}

// NewCountValidator returns a validator for item or property counts. noun
// names what is counted in messages, such as "items".
func NewCountValidator(minCount, maxCount *int, noun string) *CountValidator {
	return &CountValidator{min: minCount, max: maxCount, noun: noun}
}

// Check validates a count computed by the caller.
func (c *CountValidator) Check(n int) (bool, []Error) {
	if c == nil {
		return true, nil
	}
	if (c.min == nil || n >= *c.min) && (c.max == nil || n <= *c.max) {
		return true, nil
	}
	bounds := boundsText(c.min, c.max)
	err := newError(jserrors.ErrCountOutOfRange, "expected %s %s, got %d", bounds, c.noun, n)
	err.Actual = strconv.Itoa(n)
	err.Expected = []string{bounds}
	err.Validator = c.String()
	return false, []Error{err}
}

// Validate checks the element count of an array or the distinct key count
// of an object. Other values pass.
func (c *CountValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	switch v.Kind() {
	case jsonvalue.KindArray:
		return c.Check(v.Len())
	case jsonvalue.KindObject:
		return c.Check(v.KeyCount())
	default:
		return true, nil
	}
}

func (c *CountValidator) String() string {
	if c == nil {
		return "count"
	}
	return fmt.Sprintf("count(%s %s)", boundsText(c.min, c.max), c.noun)
}

func boundsText(lo, hi *int) string {
	switch {
	case lo != nil && hi != nil && *lo == *hi:
		return "exactly " + strconv.Itoa(*lo)
	case lo != nil && hi != nil:
		return fmt.Sprintf("between %d and %d", *lo, *hi)
	case lo != nil:
		return "at least " + strconv.Itoa(*lo)
	case hi != nil:
		return "at most " + strconv.Itoa(*hi)
	default:
		return "any number of"
	}
}
