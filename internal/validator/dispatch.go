package validator

import (
	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// TypeBranches holds the validator applied to each runtime JSON type.
// A nil branch accepts values of that type.
type TypeBranches struct {
	Array   Validator
	Number  Validator
	Object  Validator
	String  Validator
	Boolean Validator
	Null    Validator
}

// IsZero reports whether every branch is nil.
func (b TypeBranches) IsZero() bool {
	return b.Array == nil && b.Number == nil && b.Object == nil &&
		b.String == nil && b.Boolean == nil && b.Null == nil
}

// TypeDispatchValidator applies the branch matching a value's runtime type.
// Values outside Types fail with TypeMismatch when the types were declared
// explicitly and pass otherwise.
type TypeDispatchValidator struct {
	types    schema.TypeSet
	explicit bool
	branches TypeBranches
}

// NewTypeDispatchValidator returns a dispatcher over types.
func NewTypeDispatchValidator(types schema.TypeSet, explicit bool, branches TypeBranches) *TypeDispatchValidator {
	return &TypeDispatchValidator{types: types, explicit: explicit, branches: branches}
}

func (d *TypeDispatchValidator) Validate(v jsonvalue.Value) (bool, []Error) {
	if !d.types.Accepts(v) {
		if !d.explicit {
			return true, nil
		}
		actual := schema.RuntimeType(v).String()
		err := newError(jserrors.ErrTypeMismatch, "expected %s, got %s", d.types, actual)
		err.Actual = actual
		err.Expected = d.types.Names()
		err.Validator = d.String()
		return false, []Error{err}
	}
	var branch Validator
	switch v.Kind() {
	case jsonvalue.KindArray:
		branch = d.branches.Array
	case jsonvalue.KindNumber:
		branch = d.branches.Number
	case jsonvalue.KindObject:
		branch = d.branches.Object
	case jsonvalue.KindString:
		branch = d.branches.String
	case jsonvalue.KindBool:
		branch = d.branches.Boolean
	case jsonvalue.KindNull:
		branch = d.branches.Null
	}
	if branch == nil {
		return true, nil
	}
	return branch.Validate(v)
}

func (d *TypeDispatchValidator) String() string {
	return "type(" + d.types.String() + ")"
}

// Ref is a late-bound validator standing for a $ref target. It lets compiled
// trees be recursive. Bind must be called before the first Validate and
// never afterwards.
type Ref struct {
	name   string
	target Validator
}

// NewRef returns an unbound reference named after its target pointer.
func NewRef(name string) *Ref {
	return &Ref{name: name}
}

// Bind sets the referenced validator.
func (r *Ref) Bind(target Validator) {
	r.target = target
}

// Bound reports whether Bind has been called.
func (r *Ref) Bound() bool {
	return r.target != nil
}

func (r *Ref) Validate(v jsonvalue.Value) (bool, []Error) {
	if r.target == nil {
		panic("validator: unbound reference " + r.name)
	}
	return r.target.Validate(v)
}

func (r *Ref) String() string {
	return "ref(" + r.name + ")"
}
