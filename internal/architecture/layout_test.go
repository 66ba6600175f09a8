package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPackagesHaveDoc(t *testing.T) {
	root := repoRoot(t)
	required := []string{
		"",
		"pkg/jsonvalue",
		"internal/schema",
		"internal/parser",
		"internal/typeresolve",
		"internal/validator",
		"internal/validatorcompile",
		"internal/graphcycle",
	}

	fset := token.NewFileSet()
	for _, rel := range required {
		dir := filepath.Join(root, rel)
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("read %s: %v", dir, err)
		}
		documented := false
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
				continue
			}
			file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly|parser.ParseComments)
			if err != nil {
				t.Fatalf("parse %s: %v", name, err)
			}
			if file.Doc != nil {
				documented = true
				break
			}
		}
		if !documented {
			t.Errorf("missing package doc: %s", cmpOrRoot(rel))
		}
	}
}

func TestXMLPackagesRemoved(t *testing.T) {
	root := repoRoot(t)
	legacy := []string{
		"cmd/xmllint",
		"pkg/xmlstream",
		"pkg/xmltext",
		"pkg/xmlopts",
		"w3c",
		"xsd.go",
	}

	for _, rel := range legacy {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); err == nil {
			t.Errorf("xml-era path still exists: %s", rel)
		} else if !os.IsNotExist(err) {
			t.Fatalf("stat %s: %v", rel, err)
		}
	}
}

func cmpOrRoot(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
