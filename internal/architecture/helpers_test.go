package architecture_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/jacoelho/jsonschema"

func repoRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("repository root with go.mod not found from %s", dir)
		}
		dir = parent
	}
}

func modulePkg(rel string) string {
	if rel == "" {
		return modulePath
	}
	return modulePath + "/" + strings.TrimPrefix(rel, "/")
}

func hasPkgPrefix(pkg, prefix string) bool {
	return pkg == prefix || strings.HasPrefix(pkg, prefix+"/")
}

// skipDir reports directories the go tool ignores.
func skipDir(name string) bool {
	return name == "testdata" || name == "vendor" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

type repoGoFile struct {
	path string
	rel  string
	test bool
}

// walkGoFiles calls fn for every Go file of the module.
func walkGoFiles(t *testing.T, fn func(repoGoFile) error) {
	t.Helper()

	root := repoRoot(t)
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		return fn(repoGoFile{
			path: path,
			rel:  filepath.ToSlash(rel),
			test: strings.HasSuffix(path, "_test.go"),
		})
	})
	if err != nil {
		t.Fatalf("walk go files: %v", err)
	}
}

// collectPackageImports maps every non-test package of the module to the
// module packages it imports.
func collectPackageImports(t *testing.T) map[string]map[string]struct{} {
	t.Helper()

	graph := make(map[string]map[string]struct{})
	fset := token.NewFileSet()
	walkGoFiles(t, func(file repoGoFile) error {
		if file.test {
			return nil
		}
		node, err := parser.ParseFile(fset, file.path, nil, parser.ImportsOnly)
		if err != nil {
			return err
		}
		dir := filepath.ToSlash(filepath.Dir(file.rel))
		if dir == "." {
			dir = ""
		}
		pkg := modulePkg(dir)
		imports := graph[pkg]
		if imports == nil {
			imports = make(map[string]struct{})
			graph[pkg] = imports
		}
		for _, imp := range node.Imports {
			pathValue, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				return err
			}
			if hasPkgPrefix(pathValue, modulePath) {
				imports[pathValue] = struct{}{}
			}
		}
		return nil
	})
	if len(graph) == 0 {
		t.Fatal("no packages found")
	}
	return graph
}

func collectRootExports(t *testing.T) map[string]struct{} {
	t.Helper()

	root := repoRoot(t)
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read repo root: %v", err)
	}

	exports := make(map[string]struct{})
	fset := token.NewFileSet()

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}

		path := filepath.Join(root, name)
		node, err := parser.ParseFile(fset, path, nil, 0)
		if err != nil {
			t.Fatalf("parse %s: %v", path, err)
		}
		if node.Name.Name != "jsonschema" {
			continue
		}

		for _, decl := range node.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						if ast.IsExported(s.Name.Name) {
							exports["type "+s.Name.Name] = struct{}{}
						}
					case *ast.ValueSpec:
						for _, n := range s.Names {
							if !ast.IsExported(n.Name) {
								continue
							}
							switch d.Tok {
							case token.CONST:
								exports["const "+n.Name] = struct{}{}
							case token.VAR:
								exports["var "+n.Name] = struct{}{}
							}
						}
					}
				}
			case *ast.FuncDecl:
				if d.Recv == nil {
					if ast.IsExported(d.Name.Name) {
						exports["func "+d.Name.Name] = struct{}{}
					}
					continue
				}
				if !ast.IsExported(d.Name.Name) {
					continue
				}
				recvName := receiverTypeName(d.Recv.List[0].Type)
				if recvName == "" || !ast.IsExported(recvName) {
					continue
				}
				exports["method "+recvName+"."+d.Name.Name] = struct{}{}
			}
		}
	}

	return exports
}

func receiverTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		if ident, ok := t.X.(*ast.Ident); ok {
			return ident.Name
		}
	case *ast.Ident:
		return t.Name
	}
	return ""
}
