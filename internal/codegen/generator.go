package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/rickenator/vyn/pkg/ast"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

// userType records the IR representation of one struct or class declaration,
// grounded in the original generator's userTypeMap: a named IR struct type
// plus a field-index map and a flag distinguishing struct from class.
type userType struct {
	IR      *types.StructType
	Fields  map[string]int
	IsClass bool

	// RTTI is the per-class vyn.TypeInfo descriptor global; nil for structs,
	// which carry no runtime type information.
	RTTI *ir.Global
}

// Generator lowers one Module to one LLVM ir.Module. It owns the LLVM
// context implicitly through llir's value types; there is no separate
// llvm.Context handle to manage.
type Generator struct {
	Module      *ir.Module
	Diagnostics diagnostics.List

	file string

	typeCache map[ast.TypeNode]types.Type
	userTypes map[string]*userType
	funcs     map[string]*ir.Func
	globals   map[string]*ir.Global

	namedValues map[string]value.Value

	rttiType   *types.StructType
	nextTypeID int64

	stringLiteralCount int
}

// New creates a Generator that will lower a single compilation unit named
// file into an LLVM module named moduleName.
func New(file, moduleName string) *Generator {
	module := ir.NewModule()
	module.SourceFilename = moduleName
	return &Generator{
		Module:      module,
		file:        file,
		typeCache:   make(map[ast.TypeNode]types.Type),
		userTypes:   make(map[string]*userType),
		funcs:       make(map[string]*ir.Func),
		globals:     make(map[string]*ir.Global),
		namedValues: make(map[string]value.Value),
	}
}

func (g *Generator) errorf(loc diagnostics.SourceLocation, format string, args ...any) {
	g.Diagnostics.Add(loc, format, args...)
}

// Generate is the entry point: a forward-declaration pass registers every
// top-level type and function signature, then a second pass lowers bodies,
// matching the two-pass re-architecture the spec's design notes call for
// in place of the reference's declaration-order-sensitive single pass.
func (g *Generator) Generate(m *ast.Module) *ir.Module {
	for _, decl := range m.Declarations {
		g.declareTopLevel(decl)
	}
	for _, decl := range m.Declarations {
		g.defineTopLevel(decl)
	}
	g.verifyModule(m.Location())
	return g.Module
}

// verifyFunction is the Go-side stand-in for the reference's
// llvm::verifyFunction call: llir does not expose a verifier, so this
// performs the one structural property the spec calls out explicitly as
// testable - every basic block must end with a terminator - and records a
// diagnostic per violation instead of halting.
func (g *Generator) verifyFunction(loc diagnostics.SourceLocation, fn *ir.Func) {
	for _, block := range fn.Blocks {
		if block.Term == nil {
			g.errorf(loc, "function %q has a basic block %q with no terminator", fn.Name(), block.LocalIdent.Name())
		}
	}
}

// verifyModule runs verifyFunction over every defined function; it is
// invoked once after the whole module is built, mirroring the reference's
// post-build llvm::verifyModule call.
func (g *Generator) verifyModule(loc diagnostics.SourceLocation) {
	for _, fn := range g.funcs {
		if len(fn.Blocks) > 0 {
			g.verifyFunction(loc, fn)
		}
	}
}

