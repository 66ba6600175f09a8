// Package validatorcompile turns a parsed schema document into a validator tree.
package validatorcompile

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/jacoelho/jsonschema/internal/parser"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/internal/typeresolve"
	"github.com/jacoelho/jsonschema/internal/validator"
)

// DefaultMaxNodes bounds the number of schema nodes compiled when Options
// leaves MaxNodes at zero.
const DefaultMaxNodes = 100000

// Options configures compilation.
type Options struct {
	// Logger receives debug records; nil discards them.
	Logger *slog.Logger
	// MaxNodes bounds the schema nodes in a document; 0 uses DefaultMaxNodes.
	MaxNodes int
}

// Compile builds the validator for doc. Ambiguous nodes are resolved on the
// way; the first schema error aborts compilation. Every $ref placeholder is
// bound before Compile returns.
func Compile(doc *parser.Document, opts Options) (validator.Validator, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("compile schema: nil document")
	}
	if opts.MaxNodes < 0 {
		return nil, fmt.Errorf("compile schema: max nodes must be >= 0")
	}
	if limit := cmp.Or(opts.MaxNodes, DefaultMaxNodes); doc.Len() > limit {
		return nil, fmt.Errorf("compile schema: %d schema nodes exceed limit %d", doc.Len(), limit)
	}
	if err := checkReferences(doc); err != nil {
		return nil, err
	}

	c := &compiler{
		doc:      doc,
		refs:     make(map[string]*validator.Ref),
		compiled: make(map[schema.Node]validator.Validator),
	}
	root, err := c.compile(doc.Root)
	if err != nil {
		return nil, err
	}
	if err := c.bindRefs(); err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		opts.Logger.Debug("compiled schema",
			slog.Int("nodes", doc.Len()),
			slog.Int("refs", len(doc.Refs())),
			slog.Int("ref_targets", len(c.refs)),
		)
	}
	return root, nil
}

type compiler struct {
	doc      *parser.Document
	refs     map[string]*validator.Ref
	pending  []string
	compiled map[schema.Node]validator.Validator
}

func (c *compiler) compile(n schema.Node) (validator.Validator, error) {
	if v, ok := c.compiled[n]; ok {
		return v, nil
	}
	v, err := c.compileNode(n)
	if err != nil {
		return nil, err
	}
	c.compiled[n] = v
	return v, nil
}

func (c *compiler) compileNode(n schema.Node) (validator.Validator, error) {
	var typed validator.Validator
	var err error
	switch n := n.(type) {
	case *schema.RefNode:
		return c.ref(n)
	case *schema.AmbiguousNode:
		resolved, err := typeresolve.Resolve(n)
		if err != nil {
			return nil, err
		}
		return c.compileNode(resolved)
	case *schema.LiteralNode:
		typed = validator.Reject
		if n.Allow {
			typed = nil
		}
	case *schema.AnyNode:
	case *schema.ObjectNode:
		typed, err = c.typed(schema.SetOf(schema.TypeObject), n.TypeExplicit, func(b *validator.TypeBranches) error {
			v, err := c.object(&n.ObjectKeywords)
			b.Object = v
			return err
		})
	case *schema.ArrayNode:
		typed, err = c.typed(schema.SetOf(schema.TypeArray), n.TypeExplicit, func(b *validator.TypeBranches) error {
			v, err := c.array(&n.ArrayKeywords)
			b.Array = v
			return err
		})
	case *schema.NumberNode:
		typed, err = c.typed(schema.NumericTypes, n.TypeExplicit, func(b *validator.TypeBranches) error {
			b.Number = number(&n.NumberKeywords)
			return nil
		})
	case *schema.StringNode:
		typed, err = c.typed(schema.SetOf(schema.TypeString), n.TypeExplicit, func(b *validator.TypeBranches) error {
			b.String = str(&n.StringKeywords)
			return nil
		})
	case *schema.BooleanNode:
		typed, err = c.typed(schema.SetOf(schema.TypeBoolean), n.TypeExplicit, nil)
	case *schema.NullNode:
		typed, err = c.typed(schema.SetOf(schema.TypeNull), n.TypeExplicit, nil)
	case *schema.PolymorphicNode:
		typed, err = c.typed(n.Types, n.TypeExplicit, func(b *validator.TypeBranches) error {
			return c.polymorphic(n, b)
		})
	default:
		return nil, fmt.Errorf("compile schema: unexpected node %T", n)
	}
	if err != nil {
		return nil, err
	}

	parts, err := c.common(n.Base())
	if err != nil {
		return nil, err
	}
	if typed != nil {
		parts = append([]validator.Validator{typed}, parts...)
	}
	return validator.All(parts...), nil
}

// typed wraps the keyword branches filled by fill in a type dispatcher. It
// returns nil when the dispatcher could never fail.
func (c *compiler) typed(types schema.TypeSet, explicit bool, fill func(*validator.TypeBranches) error) (validator.Validator, error) {
	var b validator.TypeBranches
	if fill != nil {
		if err := fill(&b); err != nil {
			return nil, err
		}
	}
	if !explicit && b.IsZero() {
		return nil, nil
	}
	return validator.NewTypeDispatchValidator(types, explicit, b), nil
}

func (c *compiler) polymorphic(n *schema.PolymorphicNode, b *validator.TypeBranches) error {
	var err error
	if n.Array != nil {
		if b.Array, err = c.array(n.Array); err != nil {
			return err
		}
	}
	if n.Object != nil {
		if b.Object, err = c.object(n.Object); err != nil {
			return err
		}
	}
	if n.Number != nil {
		b.Number = number(n.Number)
	}
	if n.String != nil {
		b.String = str(n.String)
	}
	return nil
}

// common compiles enum and the combinators. allOf members join the result
// directly so their errors surface unwrapped.
func (c *compiler) common(cm *schema.Common) ([]validator.Validator, error) {
	var out []validator.Validator
	if cm.Enum != nil {
		out = append(out, validator.NewEnumValidator(cm.Enum))
	}
	allOf, err := c.compileAll(cm.AllOf)
	if err != nil {
		return nil, err
	}
	out = append(out, allOf...)
	if len(cm.AnyOf) > 0 {
		branches, err := c.compileAll(cm.AnyOf)
		if err != nil {
			return nil, err
		}
		out = append(out, validator.NewAnyOfValidator(branches))
	}
	if len(cm.OneOf) > 0 {
		branches, err := c.compileAll(cm.OneOf)
		if err != nil {
			return nil, err
		}
		out = append(out, validator.NewOneOfValidator(branches))
	}
	if cm.Not != nil {
		inner, err := c.compile(cm.Not)
		if err != nil {
			return nil, err
		}
		out = append(out, validator.NewNotValidator(inner))
	}
	return out, nil
}

func (c *compiler) compileAll(nodes []schema.Node) ([]validator.Validator, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	out := make([]validator.Validator, 0, len(nodes))
	for _, n := range nodes {
		v, err := c.compile(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
