// Package jsonschema compiles JSON Schema documents into immutable validators
// that report every violation in an instance.
package jsonschema

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/parser"
	"github.com/jacoelho/jsonschema/internal/validator"
	"github.com/jacoelho/jsonschema/internal/validatorcompile"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// Schema is a compiled schema. It is safe for concurrent use.
type Schema struct {
	root validator.Validator
}

// Compile compiles a decoded schema document with default options.
func Compile(doc jsonvalue.Value) (*Schema, error) {
	return CompileWithOptions(doc, NewLoadOptions())
}

// CompileWithOptions compiles a decoded schema document. The first schema
// error aborts compilation and is returned as *errors.SchemaError.
func CompileWithOptions(doc jsonvalue.Value, opts LoadOptions) (*Schema, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compile(doc, resolved)
}

func compile(doc jsonvalue.Value, opts resolvedLoadOptions) (*Schema, error) {
	parsed, err := parser.Parse(doc)
	if err != nil {
		return nil, err
	}
	root, err := validatorcompile.Compile(parsed, validatorcompile.Options{
		Logger:   opts.logger,
		MaxNodes: opts.maxSchemaNodes,
	})
	if err != nil {
		return nil, err
	}
	return &Schema{root: root}, nil
}

// ValidateValue validates a decoded instance. It reports every violation;
// the list is empty exactly when the instance is valid.
func (s *Schema) ValidateValue(v jsonvalue.Value) (bool, errors.ValidationList) {
	if s == nil || s.root == nil {
		return false, schemaNotLoaded()
	}
	ok, errs := s.root.Validate(v)
	if ok {
		return true, nil
	}
	return false, toValidations(errs)
}

// Validate validates a Go value shaped like the output of encoding/json, or a
// jsonvalue.Value. It returns nil or an errors.ValidationList.
func (s *Schema) Validate(instance any) error {
	if s == nil || s.root == nil {
		return schemaNotLoaded()
	}
	v, err := jsonvalue.FromAny(instance)
	if err != nil {
		return errors.ValidationList{errors.NewValidation(errors.ErrJSONParse, err.Error(), "")}
	}
	return s.result(v)
}

// ValidateReader decodes one JSON document from r and validates it.
func (s *Schema) ValidateReader(r io.Reader) error {
	if s == nil || s.root == nil {
		return schemaNotLoaded()
	}
	if r == nil {
		return errors.ValidationList{errors.NewValidation(errors.ErrJSONParse, "nil reader", "")}
	}
	v, err := jsonvalue.Decode(r)
	if err != nil {
		return errors.ValidationList{errors.NewValidation(errors.ErrJSONParse, err.Error(), "")}
	}
	return s.result(v)
}

// ValidateFile validates a JSON or YAML file, chosen by extension.
func (s *Schema) ValidateFile(path string) (err error) {
	if s == nil || s.root == nil {
		return schemaNotLoaded()
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open instance file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close instance file %s: %w", path, closeErr)
		}
	}()

	v, decodeErr := decodeDocument(f, formatFor(path, FormatAuto))
	if decodeErr != nil {
		return errors.ValidationList{errors.NewValidation(errors.ErrJSONParse, decodeErr.Error(), "")}
	}
	return s.result(v)
}

func (s *Schema) result(v jsonvalue.Value) error {
	ok, list := s.ValidateValue(v)
	if ok {
		return nil
	}
	return list
}

func toValidations(errs []validator.Error) errors.ValidationList {
	flat := validator.Flatten(errs)
	out := make(errors.ValidationList, 0, len(flat))
	for _, e := range flat {
		out = append(out, errors.Validation{
			Code:     string(e.Code),
			Message:  e.Message,
			Path:     e.Path.String(),
			Actual:   e.Actual,
			Expected: e.Expected,
		})
	}
	return out
}

func schemaNotLoaded() errors.ValidationList {
	return errors.ValidationList{errors.NewValidation(errors.ErrSchemaNotLoaded, "schema not loaded", "")}
}

func formatFor(path string, format Format) Format {
	if format != FormatAuto {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decodeDocument(r io.Reader, format Format) (jsonvalue.Value, error) {
	if format == FormatYAML {
		return jsonvalue.DecodeYAML(r)
	}
	return jsonvalue.Decode(r)
}
