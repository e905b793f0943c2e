package parser

import (
	"testing"

	"github.com/rickenator/vyn/pkg/ast"
)

func TestParseFunctionDeclaration(t *testing.T) {
	src := "fn add(a: int, b: int) -> int:\n    return a + b\n"
	module, err := Parse("add.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(module.Declarations) != 1 {
		t.Fatalf("expected 1 declaration, got %d", len(module.Declarations))
	}
	fn, ok := module.Declarations[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *ast.FunctionDeclaration, got %T", module.Declarations[0])
	}
	if fn.Name != "add" {
		t.Errorf("expected name %q, got %q", "add", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if fn.Body == nil || len(fn.Body.Statements) != 1 {
		t.Fatalf("expected a one-statement body")
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStmt); !ok {
		t.Errorf("expected ReturnStmt, got %T", fn.Body.Statements[0])
	}
}

func TestParseStructDeclaration(t *testing.T) {
	src := "struct Point:\n    x: int\n    y: int\n"
	module, err := Parse("point.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	st, ok := module.Declarations[0].(*ast.StructDeclaration)
	if !ok {
		t.Fatalf("expected *ast.StructDeclaration, got %T", module.Declarations[0])
	}
	if len(st.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(st.Fields))
	}
}

func TestParseOwnershipWrappedParam(t *testing.T) {
	src := "fn consume(x: my<Point>):\n    return\n"
	module, err := Parse("own.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := module.Declarations[0].(*ast.FunctionDeclaration)
	wrapped, ok := fn.Params[0].Annotation.(*ast.OwnershipWrappedType)
	if !ok {
		t.Fatalf("expected *ast.OwnershipWrappedType, got %T", fn.Params[0].Annotation)
	}
	if wrapped.Kind != ast.OwnershipMy {
		t.Errorf("expected OwnershipMy, got %v", wrapped.Kind)
	}
}

func TestParseIfElseChain(t *testing.T) {
	src := "fn classify(x: int) -> int:\n    if x < 0:\n        return -1\n    else if x == 0:\n        return 0\n    else:\n        return 1\n"
	module, err := Parse("classify.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := module.Declarations[0].(*ast.FunctionDeclaration)
	ifStmt, ok := fn.Body.Statements[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected *ast.IfStmt, got %T", fn.Body.Statements[0])
	}
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected else-if chain, got %T", ifStmt.Else)
	}
	if elseIf.Else == nil {
		t.Fatal("expected a final else branch")
	}
}

func TestParseForInLoop(t *testing.T) {
	src := "fn sum(xs: [int]) -> int:\n    let mut total = 0\n    for x in xs:\n        total = total + x\n    return total\n"
	module, err := Parse("sum.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := module.Declarations[0].(*ast.FunctionDeclaration)
	if len(fn.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(fn.Body.Statements))
	}
	forStmt, ok := fn.Body.Statements[1].(*ast.ForStmt)
	if !ok {
		t.Fatalf("expected *ast.ForStmt, got %T", fn.Body.Statements[1])
	}
	if _, ok := forStmt.Binding.(*ast.IdentifierPattern); !ok {
		t.Errorf("expected identifier pattern binding, got %T", forStmt.Binding)
	}
}

func TestParseBorrowExpression(t *testing.T) {
	src := "fn touch(p: their<Point>):\n    let v = view p\n    return\n"
	module, err := Parse("borrow.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	fn := module.Declarations[0].(*ast.FunctionDeclaration)
	let, ok := fn.Body.Statements[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", fn.Body.Statements[0])
	}
	borrow, ok := let.Init.(*ast.BorrowExpr)
	if !ok {
		t.Fatalf("expected *ast.BorrowExpr, got %T", let.Init)
	}
	if borrow.Kind != ast.ImmutableView {
		t.Errorf("expected ImmutableView, got %v", borrow.Kind)
	}
}

func TestParseImportAndSmuggle(t *testing.T) {
	src := "import \"std/io\"\nsmuggle \"std/unsafe\" as raw\n"
	module, err := Parse("imports.vyn", src, nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(module.Declarations) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(module.Declarations))
	}
	imp := module.Declarations[0].(*ast.ImportDeclaration)
	if imp.IsSmuggled {
		t.Error("expected plain import to not be smuggled")
	}
	smug := module.Declarations[1].(*ast.ImportDeclaration)
	if !smug.IsSmuggled || smug.Alias != "raw" {
		t.Errorf("expected smuggled import aliased as raw, got %+v", smug)
	}
}

func TestParseTolerantCollectsMultipleErrors(t *testing.T) {
	src := "fn broken(:\nfn also_broken(:\n"
	_, err := Parse("broken.vyn", src, &Options{Tolerant: true})
	if err == nil {
		t.Fatal("expected a ParserError")
	}
	perr, ok := err.(*ParserError)
	if !ok {
		t.Fatalf("expected *ParserError, got %T", err)
	}
	if len(perr.Errors) < 2 {
		t.Fatalf("expected at least two collected errors, got %d", len(perr.Errors))
	}
}
