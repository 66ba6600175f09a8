package parser

import (
	"math"
	"regexp"

	jserrors "github.com/jacoelho/jsonschema/errors"
	"github.com/jacoelho/jsonschema/internal/schema"
	"github.com/jacoelho/jsonschema/pkg/jsonvalue"
)

// reader reads keyword values of one schema object.
type reader struct {
	obj  jsonvalue.Value
	path schema.Path
}

func (r reader) lookup(keyword string) (jsonvalue.Value, bool) {
	return r.obj.Lookup(keyword)
}

func (r reader) malformed(keyword, format string, args ...any) error {
	return malformed(r.path.Child(keyword), format, args...)
}

func (r reader) text(keyword string) (string, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return "", nil
	}
	if v.Kind() != jsonvalue.KindString {
		return "", r.malformed(keyword, "%s must be a string, got %s", keyword, v.Kind())
	}
	return v.Text(), nil
}

func (r reader) flag(keyword string) (bool, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return false, nil
	}
	if v.Kind() != jsonvalue.KindBool {
		return false, r.malformed(keyword, "%s must be a boolean, got %s", keyword, v.Kind())
	}
	return v.Bool(), nil
}

func (r reader) number(keyword string) (*float64, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return nil, nil
	}
	if v.Kind() != jsonvalue.KindNumber {
		return nil, r.malformed(keyword, "%s must be a number, got %s", keyword, v.Kind())
	}
	f := v.Float()
	return &f, nil
}

// size reads a non-negative integer bound such as minItems.
func (r reader) size(keyword string) (*int, error) {
	v, ok := r.lookup(keyword)
	if !ok {
		return nil, nil
	}
	if v.Kind() != jsonvalue.KindNumber || !v.IsIntegral() || v.Float() < 0 {
		return nil, r.malformed(keyword, "%s must be a non-negative integer, got %s", keyword, v)
	}
	if v.Float() > math.MaxInt32 {
		return nil, r.malformed(keyword, "%s %s is too large", keyword, v)
	}
	n := int(v.Float())
	return &n, nil
}

// stringSet reads an array of unique strings.
func stringSet(keyword string, v jsonvalue.Value, path schema.Path) ([]string, error) {
	if v.Kind() != jsonvalue.KindArray {
		return nil, malformed(path, "%s must be an array of strings, got %s", keyword, v.Kind())
	}
	out := make([]string, 0, v.Len())
	seen := make(map[string]struct{}, v.Len())
	for i, item := range v.Elements() {
		if item.Kind() != jsonvalue.KindString {
			return nil, malformed(path, "%s entry %d must be a string, got %s", keyword, i, item.Kind())
		}
		name := item.Text()
		if _, dup := seen[name]; dup {
			return nil, schemaErr(jserrors.KindDuplicateKey, path, "%s lists %q twice", keyword, name)
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func compilePattern(src string, path schema.Path) (*schema.Pattern, error) {
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, schemaErr(jserrors.KindInvalidRegularExpression, path, "compile pattern %q: %v", src, err)
	}
	return &schema.Pattern{Re: re, Source: src}, nil
}

func checkSizeRange(path schema.Path, minName string, lo *int, maxName string, hi *int) error {
	if lo != nil && hi != nil && *lo > *hi {
		return schemaErr(jserrors.KindInvalidRange, path, "%s %d exceeds %s %d", minName, *lo, maxName, *hi)
	}
	return nil
}
