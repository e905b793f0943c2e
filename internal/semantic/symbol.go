// Package semantic provides the scope/symbol scaffolding and a best-effort
// walking analyzer for Vyn's AST, following the original implementation's
// SymbolTable/SemanticAnalyzer shape: a parent-pointer chain of scopes, one
// flat symbol map per scope, and diagnostics that accumulate instead of
// halting the walk.
package semantic

import "github.com/rickenator/vyn/pkg/ast"

// SymbolKind distinguishes what a name refers to.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolType
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolType:
		return "type"
	default:
		return "variable"
	}
}

// Symbol records one bound name.
type Symbol struct {
	Kind     SymbolKind
	Name     string
	IsConst  bool
	Type     ast.TypeNode
	Declared ast.Node
}

// Scope is one lexical level; Parent is nil only for the module scope.
type Scope struct {
	Parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a child scope of parent (nil for the root).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, symbols: make(map[string]*Symbol)}
}

// Define adds sym to s, reporting whether the name was already bound in
// this exact scope (shadowing an outer scope is always allowed).
func (s *Scope) Define(sym *Symbol) (redeclared bool) {
	if _, exists := s.symbols[sym.Name]; exists {
		return true
	}
	s.symbols[sym.Name] = sym
	return false
}

// Lookup searches s and its ancestors for name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only s, not its ancestors.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}
