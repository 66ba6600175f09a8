// Package validator holds the compiled, immutable validator tree and the
// error records it produces.
//
// Every Validator is safe for concurrent use once constructed. Validation is
// exhaustive: a call returns every violation it finds rather than stopping at
// the first one.
package validator

import (
	"fmt"
	"strconv"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Validator checks a value against one compiled schema fragment.
type Validator interface {
	// Validate reports whether v is valid and every violation found.
	Validate(v jsonvalue.Value) (bool, []Error)
	// String identifies the validator in error records.
	String() string
}

// Error is one violation. Path is relative to the value passed to Validate.
// ElementFailedValidator and DependencyNotSatisfied records carry the
// violations of the nested validator in Nested.
type Error struct {
	Code      jserrors.ErrorCode
	Path      Path
	Message   string
	Actual    string
	Expected  []string
	Validator string
	Nested    []Error
}

func (e Error) String() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s at %s", e.Code, e.Message, e.Path)
}

func newError(code jserrors.ErrorCode, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// elementError wraps the violations of one element or member.
func elementError(seg Segment, v Validator, nested []Error) Error {
	return Error{
		Code:      jserrors.ErrElementFailedValidator,
		Path:      Path{seg},
		Message:   fmt.Sprintf("%s failed %s", seg.describe(), v),
		Validator: v.String(),
		Nested:    nested,
	}
}

// Segment is one step into a value: an array index or an object key.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// IndexSegment returns the segment for array element i.
func IndexSegment(i int) Segment { return Segment{index: i, isIndex: true} }

// KeySegment returns the segment for object member key.
func KeySegment(key string) Segment { return Segment{key: key} }

// IsIndex reports whether s addresses an array element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Index returns the array index; 0 for key segments.
func (s Segment) Index() int { return s.index }

// Key returns the object key; "" for index segments.
func (s Segment) Key() string { return s.key }

// Token returns the unescaped pointer token of s.
func (s Segment) Token() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

func (s Segment) describe() string {
	if s.isIndex {
		return "element " + strconv.Itoa(s.index)
	}
	return "property " + strconv.Quote(s.key)
}

// Path locates a value inside the validated document.
type Path []Segment

// Join returns p followed by q without aliasing either.
func (p Path) Join(q Path) Path {
	if len(q) == 0 {
		return p
	}
	out := make(Path, 0, len(p)+len(q))
	out = append(out, p...)
	return append(out, q...)
}

// Tokens returns the unescaped pointer tokens of p.
func (p Path) Tokens() []string {
	out := make([]string, len(p))
	for i, s := range p {
		out[i] = s.Token()
	}
	return out
}

// String renders p as an RFC 6901 JSON pointer; the root is "".
func (p Path) String() string {
	return jserrors.Pointer(p.Tokens())
}

// Flatten expands ElementFailedValidator records into the violations they
// wrap, prefixing each with the element path. DependencyNotSatisfied keeps its
// own record followed by its flattened nested violations. Other records lose
// their nested detail. The result carries no Nested fields.
func Flatten(errs []Error) []Error {
	return flattenInto(nil, nil, errs)
}

func flattenInto(out []Error, prefix Path, errs []Error) []Error {
	for _, e := range errs {
		path := prefix.Join(e.Path)
		nested := e.Nested
		e.Path, e.Nested = path, nil
		switch e.Code {
		case jserrors.ErrElementFailedValidator:
			out = flattenInto(out, path, nested)
		case jserrors.ErrDependencyNotSatisfied:
			out = append(out, e)
			out = flattenInto(out, path, nested)
		default:
			out = append(out, e)
		}
	}
	return out
}
