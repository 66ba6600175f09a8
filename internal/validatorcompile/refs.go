package validatorcompile

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/graphcycle"
	"github.com/jacoelho/jsonschema/internal/parser"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/internal/validator"
)

// refPointer extracts the JSON pointer of a local reference. Only fragment
// references into the same document are supported.
func refPointer(ref string) (string, error) {
	frag, ok := strings.CutPrefix(ref, "#")
	if !ok {
		return "", fmt.Errorf("only local references are supported")
	}
	ptr, err := url.PathUnescape(frag)
	if err != nil {
		return "", fmt.Errorf("invalid fragment escape: %w", err)
	}
	if ptr != "" && !strings.HasPrefix(ptr, "/") {
		return "", fmt.Errorf("fragment %q is not a JSON pointer", frag)
	}
	return ptr, nil
}

func resolveRef(doc *parser.Document, n *schema.RefNode) (schema.Node, error) {
	ptr, err := refPointer(n.Ref)
	if err != nil {
		return nil, unresolved(n, "$ref %q: %v", n.Ref, err)
	}
	target, ok := doc.Lookup(ptr)
	if !ok {
		return nil, unresolved(n, "$ref %q does not point at a schema", n.Ref)
	}
	return target, nil
}

func unresolved(n *schema.RefNode, format string, args ...any) error {
	return &jserrors.SchemaError{
		Kind:    jserrors.KindUnresolvedReference,
		Path:    n.Path.Child("$ref"),
		Message: fmt.Sprintf(format, args...),
	}
}

// checkReferences resolves every $ref and rejects schemas that apply to the
// same value through references without descending into it.
func checkReferences(doc *parser.Document) error {
	targets := make(map[*schema.RefNode]schema.Node, len(doc.Refs()))
	starts := make([]schema.Node, 0, len(doc.Refs()))
	for _, r := range doc.Refs() {
		target, err := resolveRef(doc, r)
		if err != nil {
			return err
		}
		targets[r] = target
		starts = append(starts, r)
	}

	err := graphcycle.Detect(starts, func(n schema.Node) []schema.Node {
		if r, ok := n.(*schema.RefNode); ok {
			return []schema.Node{targets[r]}
		}
		return inPlace(n)
	})
	var cycle *graphcycle.CycleError[schema.Node]
	if errors.As(err, &cycle) {
		names := make([]string, len(cycle.Path))
		for i, n := range cycle.Path {
			names[i] = n.Base().Path.String()
		}
		return &jserrors.SchemaError{
			Kind:    jserrors.KindReferenceCycle,
			Path:    cycle.Path[0].Base().Path,
			Message: "references never descend into the value: " + strings.Join(names, " -> "),
		}
	}
	return err
}

// inPlace lists the sub-schemas of n that validate the same value as n.
func inPlace(n schema.Node) []schema.Node {
	c := n.Base()
	out := make([]schema.Node, 0, len(c.AllOf)+len(c.AnyOf)+len(c.OneOf)+1)
	out = append(out, c.AllOf...)
	out = append(out, c.AnyOf...)
	out = append(out, c.OneOf...)
	if c.Not != nil {
		out = append(out, c.Not)
	}
	var deps []schema.Dependency
	switch n := n.(type) {
	case *schema.AmbiguousNode:
		deps = n.Object.Dependencies
	case *schema.ObjectNode:
		deps = n.Dependencies
	case *schema.PolymorphicNode:
		if n.Object != nil {
			deps = n.Object.Dependencies
		}
	}
	for _, d := range deps {
		if d.Schema != nil {
			out = append(out, d.Schema)
		}
	}
	return out
}

// ref returns the placeholder for n's target, queueing the target for
// compilation the first time it is seen.
func (c *compiler) ref(n *schema.RefNode) (validator.Validator, error) {
	ptr, err := refPointer(n.Ref)
	if err != nil {
		return nil, unresolved(n, "$ref %q: %v", n.Ref, err)
	}
	if r, ok := c.refs[ptr]; ok {
		return r, nil
	}
	r := validator.NewRef(ptr)
	c.refs[ptr] = r
	c.pending = append(c.pending, ptr)
	return r, nil
}

// bindRefs compiles queued reference targets until none are left.
func (c *compiler) bindRefs() error {
	for len(c.pending) > 0 {
		ptr := c.pending[0]
		c.pending = c.pending[1:]
		target, ok := c.doc.Lookup(ptr)
		if !ok {
			return fmt.Errorf("compile schema: reference target %q vanished", ptr)
		}
		v, err := c.compile(target)
		if err != nil {
			return err
		}
		c.refs[ptr].Bind(v)
	}
	return nil
}
