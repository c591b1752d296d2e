package main

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// StateMutationAnalyzer сообщает о записи в поля workflow.FormState вне пакета
// workflow. Состояние формы меняется только функциями переходов.
var StateMutationAnalyzer = &analysis.Analyzer{
	Name:     "statemut",
	Doc:      "reports writes to workflow.FormState fields outside the workflow package",
	Run:      runStateMutationCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

const (
	stateTypeName   = "FormState"
	statePkgSegment = "workflow"
)

func runStateMutationCheck(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.AssignStmt)(nil),
		(*ast.IncDecStmt)(nil),
	}
	insp.Preorder(nodeFilter, func(n ast.Node) {
		var targets []ast.Expr
		switch stmt := n.(type) {
		case *ast.AssignStmt:
			if stmt.Tok == token.DEFINE {
				return
			}
			targets = stmt.Lhs
		case *ast.IncDecStmt:
			targets = []ast.Expr{stmt.X}
		}

		for _, target := range targets {
			sel, ok := ast.Unparen(target).(*ast.SelectorExpr)
			if !ok {
				continue
			}
			selection := pass.TypesInfo.Selections[sel]
			if selection == nil || selection.Kind() != types.FieldVal {
				continue
			}
			field, ok := selection.Obj().(*types.Var)
			if !ok || !isFormStateField(field) || ownsState(pass.Pkg, field.Pkg()) {
				continue
			}
			pass.Reportf(sel.Pos(), "FormState.%s is written outside package workflow, use its transition functions", sel.Sel.Name)
		}
	})

	return nil, nil
}

// isFormStateField сообщает, объявлено ли поле в workflow.FormState.
// Поля, доступные через встраивание, тоже учитываются.
func isFormStateField(field *types.Var) bool {
	pkg := field.Pkg()
	if pkg == nil || !isWorkflowPath(pkg.Path()) {
		return false
	}
	tn, ok := pkg.Scope().Lookup(stateTypeName).(*types.TypeName)
	if !ok {
		return false
	}
	st, ok := tn.Type().Underlying().(*types.Struct)
	if !ok {
		return false
	}
	for i := 0; i < st.NumFields(); i++ {
		if st.Field(i) == field {
			return true
		}
	}
	return false
}

func isWorkflowPath(path string) bool {
	return path == statePkgSegment || strings.HasSuffix(path, "/"+statePkgSegment)
}

// ownsState разрешает запись самому пакету workflow и его внешним тестам.
func ownsState(current, owner *types.Package) bool {
	return current.Path() == owner.Path() || current.Path() == owner.Path()+"_test"
}
