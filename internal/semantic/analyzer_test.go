package semantic

import (
	"strings"
	"testing"

	"github.com/rickenator/vyn/pkg/ast"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

func loc(line, col int) diagnostics.SourceLocation {
	return diagnostics.SourceLocation{File: "test.vyn", Line: line, Column: col}
}

func id(name string) *ast.Identifier { return ast.NewIdentifier(loc(1, 1), name) }

func block(stmts ...ast.Statement) *ast.BlockStmt {
	return ast.NewBlockStmt(loc(1, 1), stmts)
}

func moduleOf(decls ...ast.Declaration) *ast.Module {
	return ast.NewModule(loc(1, 1), "test.vyn", decls)
}

func fn(name string, params []ast.Param, body *ast.BlockStmt) *ast.FunctionDeclaration {
	return ast.NewFunctionDeclaration(loc(1, 1), name, params, nil, nil, body)
}

func containsMessage(items []diagnostics.Diagnostic, substr string) bool {
	for _, d := range items {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func TestAnalyzeUndeclaredIdentifier(t *testing.T) {
	f := fn("main", nil, block(
		ast.NewExpressionStmt(loc(2, 1), id("missing")),
	))
	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if !a.Diagnostics.HasErrors() {
		t.Fatalf("expected an error for undeclared identifier, got none")
	}
	if !containsMessage(a.Diagnostics.Items(), "undeclared") {
		t.Errorf("diagnostics = %v, want one mentioning 'undeclared'", a.Diagnostics.Items())
	}
}

func TestAnalyzeParamIsDeclared(t *testing.T) {
	params := []ast.Param{{Name: "x", Annotation: ast.NewNamedType(loc(1, 1), "Int")}}
	f := fn("identity", params, block(
		ast.NewReturnStmt(loc(2, 1), id("x")),
	))
	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if a.Diagnostics.HasErrors() {
		t.Errorf("unexpected errors referencing a declared parameter: %v", a.Diagnostics.Items())
	}
}

func TestAnalyzeRedeclaration(t *testing.T) {
	target := ast.NewIdentifierPattern(loc(2, 1), "x", false)
	letOne := ast.NewLetStmt(loc(2, 1), false, false, target, nil, ast.NewIntLiteral(loc(2, 1), "1", 1))
	letTwo := ast.NewLetStmt(loc(3, 1), false, false, target, nil, ast.NewIntLiteral(loc(3, 1), "2", 2))
	f := fn("main", nil, block(letOne, letTwo))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if !containsMessage(a.Diagnostics.Items(), "already declared") {
		t.Errorf("diagnostics = %v, want one mentioning redeclaration", a.Diagnostics.Items())
	}
}

func TestAnalyzeImmutableAssignment(t *testing.T) {
	target := ast.NewIdentifierPattern(loc(2, 1), "x", false)
	letStmt := ast.NewLetStmt(loc(2, 1), false, true, target, nil, ast.NewIntLiteral(loc(2, 1), "1", 1))
	assign := ast.NewExpressionStmt(loc(3, 1), ast.NewAssignmentExpr(loc(3, 1), "=", id("x"), ast.NewIntLiteral(loc(3, 1), "2", 2)))
	f := fn("main", nil, block(letStmt, assign))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if !containsMessage(a.Diagnostics.Items(), "const") && !containsMessage(a.Diagnostics.Items(), "immutable") {
		t.Errorf("diagnostics = %v, want one about assigning to a const binding", a.Diagnostics.Items())
	}
}

func TestAnalyzeMutableAssignmentIsFine(t *testing.T) {
	target := ast.NewIdentifierPattern(loc(2, 1), "x", true)
	letStmt := ast.NewLetStmt(loc(2, 1), true, false, target, nil, ast.NewIntLiteral(loc(2, 1), "1", 1))
	assign := ast.NewExpressionStmt(loc(3, 1), ast.NewAssignmentExpr(loc(3, 1), "=", id("x"), ast.NewIntLiteral(loc(3, 1), "2", 2)))
	f := fn("main", nil, block(letStmt, assign))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if a.Diagnostics.HasErrors() {
		t.Errorf("unexpected errors assigning to a mutable binding: %v", a.Diagnostics.Items())
	}
}

func TestAnalyzeInvalidBorrowTarget(t *testing.T) {
	borrow := ast.NewBorrowExpr(loc(2, 1), ast.MutableBorrow, ast.NewIntLiteral(loc(2, 1), "1", 1))
	f := fn("main", nil, block(ast.NewExpressionStmt(loc(2, 1), borrow)))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if !containsMessage(a.Diagnostics.Items(), "borrow") {
		t.Errorf("diagnostics = %v, want one about an invalid borrow target", a.Diagnostics.Items())
	}
}

func TestAnalyzeBreakOutsideLoop(t *testing.T) {
	f := fn("main", nil, block(ast.NewBreakStmt(loc(2, 1))))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if !containsMessage(a.Diagnostics.Items(), "loop") {
		t.Errorf("diagnostics = %v, want one about break outside a loop", a.Diagnostics.Items())
	}
}

func TestAnalyzeBreakInsideLoopIsFine(t *testing.T) {
	loopBody := block(ast.NewBreakStmt(loc(3, 1)))
	whileStmt := ast.NewWhileStmt(loc(2, 1), ast.NewBoolLiteral(loc(2, 1), true), loopBody)
	f := fn("main", nil, block(whileStmt))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if a.Diagnostics.HasErrors() {
		t.Errorf("unexpected errors for break inside a loop: %v", a.Diagnostics.Items())
	}
}

func TestAnalyzeContinueOutsideLoop(t *testing.T) {
	f := fn("main", nil, block(ast.NewContinueStmt(loc(2, 1))))

	a := NewAnalyzer("test.vyn")
	a.Analyze(moduleOf(f))

	if !containsMessage(a.Diagnostics.Items(), "loop") {
		t.Errorf("diagnostics = %v, want one about continue outside a loop", a.Diagnostics.Items())
	}
}
