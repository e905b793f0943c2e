package codegen

import (
	"testing"

	"github.com/llir/llvm/ir/types"

	"github.com/rickenator/vyn/pkg/ast"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

func loc(line, col int) diagnostics.SourceLocation {
	return diagnostics.SourceLocation{File: "test.vyn", Line: line, Column: col}
}

func intType() *ast.NamedType { return ast.NewNamedType(loc(1, 1), "Int") }

// TestGenerateSimpleFunctionTerminates builds `fn answer() -> Int: return 42`
// and checks that codegen produces exactly one well-formed function with
// every block terminated, with no diagnostics.
func TestGenerateSimpleFunctionTerminates(t *testing.T) {
	body := ast.NewBlockStmt(loc(1, 1), []ast.Statement{
		ast.NewReturnStmt(loc(2, 1), ast.NewIntLiteral(loc(2, 1), "42", 42)),
	})
	fn := ast.NewFunctionDeclaration(loc(1, 1), "answer", nil, intType(), nil, body)
	module := ast.NewModule(loc(1, 1), "test.vyn", []ast.Declaration{fn})

	g := New("test.vyn", "test_module")
	llvmModule := g.Generate(module)

	if g.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", g.Diagnostics.Items())
	}
	if len(llvmModule.Funcs) != 1 {
		t.Fatalf("got %d functions, want 1", len(llvmModule.Funcs))
	}
	f := llvmModule.Funcs[0]
	if len(f.Blocks) == 0 {
		t.Fatalf("function has no basic blocks")
	}
	for _, b := range f.Blocks {
		if b.Term == nil {
			t.Errorf("block %q has no terminator", b.LocalIdent.Name())
		}
	}
}

// TestGenerateFallsOffEndReportsAndTerminates checks that a non-void
// function without an explicit return still ends up with every block
// terminated (via the undef-return fallback) and records a diagnostic.
func TestGenerateFallsOffEndReportsAndTerminates(t *testing.T) {
	body := ast.NewBlockStmt(loc(1, 1), nil)
	fn := ast.NewFunctionDeclaration(loc(1, 1), "empty", nil, intType(), nil, body)
	module := ast.NewModule(loc(1, 1), "test.vyn", []ast.Declaration{fn})

	g := New("test.vyn", "test_module")
	llvmModule := g.Generate(module)

	if !g.Diagnostics.HasErrors() {
		t.Fatalf("expected a diagnostic for falling off the end of a non-void function")
	}
	f := llvmModule.Funcs[0]
	for _, b := range f.Blocks {
		if b.Term == nil {
			t.Errorf("block %q has no terminator despite the undef-return fallback", b.LocalIdent.Name())
		}
	}
}

// TestLowerTypeCacheIdempotence checks the testable property that lowering
// the same TypeNode object twice returns the identical IR type value.
func TestLowerTypeCacheIdempotence(t *testing.T) {
	g := New("test.vyn", "test_module")
	node := intType()

	first := g.lowerType(loc(1, 1), node)
	second := g.lowerType(loc(1, 1), node)

	if first != second {
		t.Errorf("lowerType(%v) returned different values across calls: %v != %v", node, first, second)
	}
}

func TestLowerTypeBuiltins(t *testing.T) {
	g := New("test.vyn", "test_module")
	cases := map[string]types.Type{
		"Int":    types.I64,
		"i32":    types.I32,
		"Bool":   types.I1,
		"Float":  types.Double,
		"f32":    types.Float,
		"String": types.NewPointer(types.I8),
		"Void":   types.Void,
	}
	for name, want := range cases {
		got := g.lowerType(loc(1, 1), ast.NewNamedType(loc(1, 1), name))
		if got.String() != want.String() {
			t.Errorf("lowerType(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestLowerOwnershipWrappedTypeIsPointer(t *testing.T) {
	g := New("test.vyn", "test_module")
	wrapped := ast.NewOwnershipWrappedType(loc(1, 1), ast.OwnershipMy, intType())
	got := g.lowerType(loc(1, 1), wrapped)

	if _, ok := got.(*types.PointerType); !ok {
		t.Errorf("lowerType(my<Int>) = %v (%T), want a pointer type", got, got)
	}
}

func TestLowerArrayTypeConstantSize(t *testing.T) {
	g := New("test.vyn", "test_module")
	arr := ast.NewArrayType(loc(1, 1), intType(), ast.NewIntLiteral(loc(1, 1), "4", 4))
	got := g.lowerType(loc(1, 1), arr)

	arrType, ok := got.(*types.ArrayType)
	if !ok {
		t.Fatalf("lowerType([Int; 4]) = %T, want *types.ArrayType", got)
	}
	if arrType.Len != 4 {
		t.Errorf("array length = %d, want 4", arrType.Len)
	}
}

func TestLowerArrayTypeUnsizedDecaysToPointer(t *testing.T) {
	g := New("test.vyn", "test_module")
	arr := ast.NewArrayType(loc(1, 1), intType(), nil)
	got := g.lowerType(loc(1, 1), arr)

	if _, ok := got.(*types.PointerType); !ok {
		t.Errorf("lowerType([Int]) = %T, want a pointer type", got)
	}
}

func TestDeclareStructRegistersNamedType(t *testing.T) {
	fields := []ast.Field{{Name: "x", Annotation: intType()}, {Name: "y", Annotation: intType()}}
	s := ast.NewStructDeclaration(loc(1, 1), "Point", fields)
	module := ast.NewModule(loc(1, 1), "test.vyn", []ast.Declaration{s})

	g := New("test.vyn", "test_module")
	g.Generate(module)

	ut, ok := g.userTypes["Point"]
	if !ok {
		t.Fatalf("struct Point was not registered")
	}
	if len(ut.Fields) != 2 || ut.Fields["x"] != 0 || ut.Fields["y"] != 1 {
		t.Errorf("field index map = %v, want x:0 y:1", ut.Fields)
	}
	if ut.IsClass {
		t.Errorf("struct Point registered as a class")
	}
}

func TestDeclareClassEmitsRTTIDescriptorStructDoesNot(t *testing.T) {
	fields := []ast.Field{{Name: "x", Annotation: intType()}}
	s := ast.NewStructDeclaration(loc(1, 1), "Point", fields)
	c := ast.NewClassDeclaration(loc(1, 1), "Shape", fields, nil)
	module := ast.NewModule(loc(1, 1), "test.vyn", []ast.Declaration{s, c})

	g := New("test.vyn", "test_module")
	g.Generate(module)

	point := g.userTypes["Point"]
	if point.RTTI != nil {
		t.Errorf("struct Point should not carry an RTTI descriptor, got %v", point.RTTI)
	}
	shape := g.userTypes["Shape"]
	if shape.RTTI == nil {
		t.Fatalf("class Shape should carry an RTTI descriptor")
	}
	if g.rttiType == nil {
		t.Errorf("vyn.TypeInfo struct type was never created")
	}
}

func TestGenerateWhileLoopTerminatesAllBlocks(t *testing.T) {
	loopBody := ast.NewBlockStmt(loc(2, 1), []ast.Statement{ast.NewBreakStmt(loc(2, 1))})
	whileStmt := ast.NewWhileStmt(loc(2, 1), ast.NewBoolLiteral(loc(2, 1), true), loopBody)
	body := ast.NewBlockStmt(loc(1, 1), []ast.Statement{
		whileStmt,
		ast.NewReturnStmt(loc(3, 1), nil),
	})
	fn := ast.NewFunctionDeclaration(loc(1, 1), "loopy", nil, nil, nil, body)
	module := ast.NewModule(loc(1, 1), "test.vyn", []ast.Declaration{fn})

	g := New("test.vyn", "test_module")
	llvmModule := g.Generate(module)

	f := llvmModule.Funcs[0]
	for _, b := range f.Blocks {
		if b.Term == nil {
			t.Errorf("block %q has no terminator", b.LocalIdent.Name())
		}
	}
}
