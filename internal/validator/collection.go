package validator

import (
	"fmt"
	"hash/maphash"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// CollectionValidator checks an array's item count and runs every element
// validator against every element.
type CollectionValidator struct {
	count    *CountValidator
	elements []Validator
}

// NewCollectionValidator returns a collection validator. A nil count accepts
// any size and no element validators accept every element.
func NewCollectionValidator(count *CountValidator, elements []Validator) *CollectionValidator {
	return &CollectionValidator{count: count, elements: elements}
}

// Validate makes one pass over the elements. Each failing (element,
// validator) pair yields one ElementFailedValidator record. Non-arrays pass.
func (c *CollectionValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindArray {
		return true, nil
	}
	ok, errs := c.count.Check(v.Len())
	if len(c.elements) == 0 {
		return ok, errs
	}
	for i, item := range v.Elements() {
		for _, ev := range c.elements {
			if pass, nested := ev.Validate(item); !pass {
				ok = false
				errs = append(errs, elementError(IndexSegment(i), ev, nested))
			}
		}
	}
	return ok, errs
}

func (c *CollectionValidator) String() string {
	return fmt.Sprintf("collection(%s, %d element validators)", c.count, len(c.elements))
}

// PositionalValidator validates element i against items[i] and elements past
// the positional list against the additional-items policy.
type PositionalValidator struct {
	items      []Validator
	additional Validator
	forbid     bool
}

// NewPositionalValidator returns a tuple validator. forbid rejects every
// element past items; otherwise additional, when non-nil, validates them.
func NewPositionalValidator(items []Validator, additional Validator, forbid bool) *PositionalValidator {
	return &PositionalValidator{items: items, additional: additional, forbid: forbid}
}

func (p *PositionalValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindArray {
		return true, nil
	}
	ok := true
	var errs []Error
	for i, item := range v.Elements() {
		var ev Validator
		switch {
		case i < len(p.items):
			ev = p.items[i]
		case p.forbid:
			ok = false
			err := newError(jserrors.ErrUnexpectedAdditionalItem,
				"element %d is not allowed past %d positional items", i, len(p.items))
			err.Path = Path{IndexSegment(i)}
			err.Actual = item.String()
			err.Validator = p.String()
			errs = append(errs, err)
			continue
		case p.additional != nil:
			ev = p.additional
		default:
			continue
		}
		if pass, nested := ev.Validate(item); !pass {
			ok = false
			errs = append(errs, elementError(IndexSegment(i), ev, nested))
		}
	}
	return ok, errs
}

func (p *PositionalValidator) String() string {
	return fmt.Sprintf("items(%d positional)", len(p.items))
}

// UniqueValidator rejects arrays holding two structurally equal elements.
type UniqueValidator struct {
	seed maphash.Seed
}

// NewUniqueValidator returns a uniqueness validator.
func NewUniqueValidator() *UniqueValidator {
	return &UniqueValidator{seed: maphash.MakeSeed()}
}

// Validate reports each element equal to an earlier one at the later index.
func (u *UniqueValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if v.Kind() != jsonvalue.KindArray || v.Len() < 2 {
		return true, nil
	}
	var errs []Error
	hashes := make(map[uint64][]int, v.Len())
	for i, item := range v.Elements() {
		var h maphash.Hash
		h.SetSeed(u.seed)
		jsonvalue.Hash(&h, item)
		sum := h.Sum64()

		first := -1
		for _, j := range hashes[sum] {
			if jsonvalue.Equal(item, v.Index(j)) {
				first = j
				break
			}
		}
		if first < 0 {
			hashes[sum] = append(hashes[sum], i)
			continue
		}
		err := newError(jserrors.ErrDuplicateElement, "elements %d and %d are equal", first, i)
		err.Path = Path{IndexSegment(i)}
		err.Actual = item.String()
		err.Validator = u.String()
		errs = append(errs, err)
	}
	return len(errs) == 0, errs
}

func (*UniqueValidator) String() string { return "uniqueItems" }
