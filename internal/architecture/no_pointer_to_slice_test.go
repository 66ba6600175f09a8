package architecture_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"
)

func TestNoPointerToSliceTypes(t *testing.T) {
	fset := token.NewFileSet()
	walkGoFiles(t, func(file repoGoFile) error {
		if file.test {
			return nil
		}
		parsed, err := parser.ParseFile(fset, file.path, nil, 0)
		if err != nil {
			return err
		}
		found := false
		ast.Inspect(parsed, func(n ast.Node) bool {
			star, ok := n.(*ast.StarExpr)
			if !ok {
				return true
			}
			arrayType, ok := star.X.(*ast.ArrayType)
			if !ok || arrayType.Len != nil {
				return true
			}
			found = true
			return false
		})
		if found {
			t.Errorf("pointer-to-slice type is forbidden: %s", file.rel)
		}
		return nil
	})
}
