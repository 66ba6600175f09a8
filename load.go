package jsonschema

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Load loads and compiles a schema from the given filesystem and location.
func Load(fsys fs.FS, location string) (*Schema, error) {
	return LoadWithOptions(fsys, location, NewLoadOptions())
}

// LoadWithOptions loads and compiles a schema with explicit configuration.
func LoadWithOptions(fsys fs.FS, location string, opts LoadOptions) (*Schema, error) {
	resolved, err := opts.withDefaults()
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	if fsys == nil {
		return nil, fmt.Errorf("load schema %s: nil fs", location)
	}
	f, err := fsys.Open(location)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	defer f.Close()

	format := formatFor(location, resolved.format)
	doc, err := decodeDocument(f, format)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	resolved.logger.Debug("loaded schema",
		slog.String("location", location),
		slog.String("format", format.String()),
	)
	schema, err := compile(doc, resolved)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", location, err)
	}
	return schema, nil
}

// LoadFile loads and compiles a schema from a file path.
func LoadFile(path string) (*Schema, error) {
	return LoadFileWithOptions(path, NewLoadOptions())
}

// LoadFileWithOptions loads and compiles a schema from a file path with explicit configuration.
func LoadFileWithOptions(path string, opts LoadOptions) (*Schema, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	return LoadWithOptions(os.DirFS(dir), base, opts)
}
