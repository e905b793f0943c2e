// Package ast defines the Vyn abstract syntax tree: a tagged-variant node
// hierarchy (Expression/Statement/Declaration/TypeNode/Pattern families)
// with no parent pointers. Each concrete node carries only what it needs to
// describe itself; a Visitor has one method per concrete variant, so a new
// node kind is a compile error everywhere it isn't yet handled.
package ast

import "github.com/rickenator/vyn/pkg/diagnostics"

// Node is implemented by every AST node. It exposes only positional and
// informational data, never a parent link — structure is expressed by
// containment (a Node embedding other Nodes), not by back-references.
type Node interface {
	Location() diagnostics.SourceLocation
	// InferredType returns the type recorded on the node. The semantic
	// analyzer records none, so it is nil for every node it walks.
	InferredType() TypeNode
	setInferredType(TypeNode)
}

// base is embedded by every concrete node to provide the common Location/
// InferredType bookkeeping without a shared virtual-dispatch parent type.
type base struct {
	Loc      diagnostics.SourceLocation
	inferred TypeNode
}

func (b *base) Location() diagnostics.SourceLocation { return b.Loc }
func (b *base) InferredType() TypeNode                { return b.inferred }
func (b *base) setInferredType(t TypeNode)             { b.inferred = t }

// SetInferredType lets the semantic analyzer annotate any node with its
// resolved type without requiring every node kind to expose a setter.
func SetInferredType(n Node, t TypeNode) {
	n.setInferredType(t)
}

// Expression is the sealed family of value-producing nodes.
type Expression interface {
	Node
	exprNode()
}

// Statement is the sealed family of executable, non-value-producing nodes.
type Statement interface {
	Node
	stmtNode()
}

// Declaration is the sealed family of top-level and nested declarations.
type Declaration interface {
	Node
	declNode()
}

// TypeNode is the sealed family describing a type expression written in
// source (as opposed to a resolved semantic type).
type TypeNode interface {
	Node
	typeNode()
}

// Pattern is the sealed family of binding patterns (let/match targets).
type Pattern interface {
	Node
	patternNode()
}

// Module is the root of a parsed source file: an ordered list of top-level
// declarations plus the file path they came from.
type Module struct {
	base
	Path         string
	Declarations []Declaration
}

func NewModule(loc diagnostics.SourceLocation, path string, decls []Declaration) *Module {
	return &Module{base: base{Loc: loc}, Path: path, Declarations: decls}
}

func (m *Module) Accept(v Visitor) { v.VisitModule(m) }
