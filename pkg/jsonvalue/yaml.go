package jsonvalue

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// DecodeYAML reads the first YAML document from r.
// Mapping order and duplicate keys are preserved; aliases are expanded.
func DecodeYAML(r io.Reader) (Value, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("decode yaml: empty document")
		}
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}
	v, err := FromYAMLNode(&doc)
	if err != nil {
		return Value{}, fmt.Errorf("decode yaml: %w", err)
	}
	return v, nil
}

// FromYAMLNode converts a yaml.v3 node tree into a Value.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	return fromYAML(n, 0)
}

func fromYAML(n *yaml.Node, depth int) (Value, error) {
	if n == nil {
		return Null(), nil
	}
	if depth >= maxNestingDepth {
		return Value{}, ErrTooDeep
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return fromYAML(n.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAML(n.Alias, depth+1)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := fromYAML(child, depth+1)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Array(items...), nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return Value{}, fmt.Errorf("line %d: mapping key must be a scalar", keyNode.Line)
			}
			item, err := fromYAML(valueNode, depth+1)
			if err != nil {
				return Value{}, err
			}
			members = append(members, Member{Key: keyNode.Value, Value: item})
		}
		return Object(members...), nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	default:
		return Value{}, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return Bool(b), nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return Value{}, fmt.Errorf("line %d: non-finite number %s", n.Line, n.Value)
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}
