package jsonschema

import (
	"cmp"
	"fmt"
	"log/slog"

	"github.com/jacoelho/jsonschema/internal/validatorcompile"
)

// Format selects how schema documents are decoded.
type Format uint8

const (
	// FormatAuto decodes .yaml and .yml files as YAML and everything else as JSON.
	FormatAuto Format = iota
	// FormatJSON always decodes JSON.
	FormatJSON
	// FormatYAML always decodes YAML.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat parses a format name as accepted by String.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("unknown format %q", name)
	}
}

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

// LoadOptions configures schema loading and compilation.
type LoadOptions struct {
	logger         *slog.Logger
	maxSchemaNodes intOption
	format         Format
}

type resolvedLoadOptions struct {
	logger         *slog.Logger
	maxSchemaNodes int
	format         Format
}

// NewLoadOptions returns a default, valid load options value.
func NewLoadOptions() LoadOptions {
	return LoadOptions{}
}

// Validate validates load options values.
func (o LoadOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithLogger sets the logger receiving debug records about loading (nil discards them).
func (o LoadOptions) WithLogger(logger *slog.Logger) LoadOptions {
	o.logger = logger
	return o
}

// WithMaxSchemaNodes limits the number of schema nodes in one document (0 uses default).
func (o LoadOptions) WithMaxSchemaNodes(value int) LoadOptions {
	o.maxSchemaNodes = intOption{value: value, set: true}
	return o
}

// WithFormat sets the schema document format (FormatAuto uses the file extension).
func (o LoadOptions) WithFormat(format Format) LoadOptions {
	o.format = format
	return o
}

func (o LoadOptions) withDefaults() (resolvedLoadOptions, error) {
	maxNodes := o.maxSchemaNodes.resolved()
	if maxNodes < 0 {
		return resolvedLoadOptions{}, fmt.Errorf("max schema nodes must be >= 0")
	}
	if o.format > FormatYAML {
		return resolvedLoadOptions{}, fmt.Errorf("unknown format %s", o.format)
	}
	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return resolvedLoadOptions{
		logger:         logger,
		maxSchemaNodes: cmp.Or(maxNodes, validatorcompile.DefaultMaxNodes),
		format:         o.format,
	}, nil
}
