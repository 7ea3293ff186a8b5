package enumvalidator

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// EnumTypes are the named string types whose values must come from their
// declared constants.
var EnumTypes = map[string]bool{
	"MemberRole":         true,
	"MemberStatus":       true,
	"OrganizationStatus": true,
	"EventType":          true,
}

var Analyzer = &analysis.Analyzer{
	Name: "enumvalidator",
	Doc:  "checks that enum fields only use defined constants, not string literals",
	Run:  run,
}

func run(pass *analysis.Pass) (any, error) {
	for _, file := range pass.Files {
		ast.Inspect(file, func(n ast.Node) bool {
			switch node := n.(type) {
			case *ast.AssignStmt:
				checkAssign(pass, node)
			case *ast.KeyValueExpr:
				checkKeyValue(pass, node)
			}
			return true
		})
	}
	return nil, nil
}

func checkAssign(pass *analysis.Pass, assign *ast.AssignStmt) {
	for i, lhs := range assign.Lhs {
		if i >= len(assign.Rhs) {
			continue
		}
		sel, ok := lhs.(*ast.SelectorExpr)
		if !ok || !isEnum(pass.TypesInfo.TypeOf(sel)) {
			continue
		}
		if isStringLiteral(assign.Rhs[i]) {
			pass.Reportf(assign.Pos(),
				"enum field %s assigned string literal; use defined constant instead",
				sel.Sel.Name)
		}
	}
}

// checkKeyValue covers struct literals such as model.Membership{Role: "President"}.
func checkKeyValue(pass *analysis.Pass, kv *ast.KeyValueExpr) {
	key, ok := kv.Key.(*ast.Ident)
	if !ok || !isStringLiteral(kv.Value) {
		return
	}
	field, ok := pass.TypesInfo.ObjectOf(key).(*types.Var)
	if !ok || !field.IsField() || !isEnum(field.Type()) {
		return
	}
	pass.Reportf(kv.Pos(),
		"enum field %s assigned string literal; use defined constant instead",
		key.Name)
}

func isEnum(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && EnumTypes[named.Obj().Name()]
}

func isStringLiteral(expr ast.Expr) bool {
	lit, ok := expr.(*ast.BasicLit)
	return ok && lit.Kind == token.STRING
}
