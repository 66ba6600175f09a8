package errors

import (
	"errors"
	"strings"
)

// SchemaErrorKind classifies a malformed or contradictory schema.
type SchemaErrorKind string

const (
	// KindInconsistentTypeConstraints indicates keyword groups and type admit no JSON type.
	KindInconsistentTypeConstraints SchemaErrorKind = "inconsistent-type-constraints"
	// KindInvalidRegularExpression indicates pattern or a patternProperties key does not compile.
	KindInvalidRegularExpression SchemaErrorKind = "invalid-regular-expression"
	// KindInvalidRange indicates a lower bound above its upper bound, or an empty exclusive range.
	KindInvalidRange SchemaErrorKind = "invalid-range"
	// KindDuplicateKey indicates a repeated keyword, property name, or enum value.
	KindDuplicateKey SchemaErrorKind = "duplicate-key"
	// KindMalformedKeywordValue indicates a keyword value of the wrong shape.
	KindMalformedKeywordValue SchemaErrorKind = "malformed-keyword-value"
	// KindUnresolvedReference indicates a $ref that does not point into the document.
	KindUnresolvedReference SchemaErrorKind = "unresolved-reference"
	// KindReferenceCycle indicates $ref aliases that only point at each other.
	KindReferenceCycle SchemaErrorKind = "reference-cycle"
)

// Sentinels for errors.Is matching on kind alone.
var (
	ErrInconsistentTypeConstraints = &SchemaError{Kind: KindInconsistentTypeConstraints}
	ErrInvalidRegularExpression    = &SchemaError{Kind: KindInvalidRegularExpression}
	ErrInvalidRange                = &SchemaError{Kind: KindInvalidRange}
	ErrDuplicateKey                = &SchemaError{Kind: KindDuplicateKey}
	ErrMalformedKeywordValue       = &SchemaError{Kind: KindMalformedKeywordValue}
	ErrUnresolvedReference         = &SchemaError{Kind: KindUnresolvedReference}
	ErrReferenceCycle              = &SchemaError{Kind: KindReferenceCycle}
)

// SchemaError reports the first contradiction or malformed keyword found
// while compiling a schema. Path holds the keyword descents from the root
// schema to the offending node.
type SchemaError struct {
	Kind    SchemaErrorKind
	Path    []string
	Message string
}

// Error formats the kind, location, and message.
func (e *SchemaError) Error() string {
	if e == nil {
		return "schema error <nil>"
	}
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Kind))
	b.WriteString("] ")
	b.WriteString(e.Message)
	b.WriteString(" at ")
	b.WriteString(PointerFragment(e.Path))
	return b.String()
}

// Is matches sentinels by kind.
func (e *SchemaError) Is(target error) bool {
	t, ok := target.(*SchemaError)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Path == nil
}

// AsSchemaError extracts a *SchemaError from err.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) && se != nil {
		return se, true
	}
	return nil, false
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

// Pointer renders tokens as an RFC 6901 JSON pointer ("" for the root).
func Pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(tok))
	}
	return b.String()
}

// PointerFragment renders tokens as a URI fragment pointer such as "#/properties/a".
func PointerFragment(tokens []string) string {
	return "#" + Pointer(tokens)
}
