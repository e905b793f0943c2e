package ast

import "github.com/rickenator/vyn/pkg/diagnostics"

// OwnershipKind distinguishes Vyn's four ownership wrappers. All four lower
// to a plain pointer at the LLVM-IR level; the distinction only matters to
// the (out of scope) borrow checker.
type OwnershipKind int

const (
	OwnershipMy OwnershipKind = iota
	OwnershipOur
	OwnershipTheir
	OwnershipPtr
)

func (k OwnershipKind) String() string {
	switch k {
	case OwnershipMy:
		return "my"
	case OwnershipOur:
		return "our"
	case OwnershipTheir:
		return "their"
	case OwnershipPtr:
		return "ptr"
	default:
		return "?"
	}
}

// NamedType is a bare identifier type reference: int, f64, MyStruct.
type NamedType struct {
	base
	Name string
}

func NewNamedType(loc diagnostics.SourceLocation, name string) *NamedType {
	return &NamedType{base: base{Loc: loc}, Name: name}
}

func (*NamedType) typeNode()          {}
func (n *NamedType) Accept(v Visitor) { v.VisitNamedType(n) }

// OwnershipWrappedType is `my<T>`, `our<T>`, `their<T>`, or `ptr<T>`.
type OwnershipWrappedType struct {
	base
	Kind    OwnershipKind
	Wrapped TypeNode
}

func NewOwnershipWrappedType(loc diagnostics.SourceLocation, kind OwnershipKind, wrapped TypeNode) *OwnershipWrappedType {
	return &OwnershipWrappedType{base: base{Loc: loc}, Kind: kind, Wrapped: wrapped}
}

func (*OwnershipWrappedType) typeNode()          {}
func (n *OwnershipWrappedType) Accept(v Visitor) { v.VisitOwnershipWrappedType(n) }

// ArrayType is `[T; N]` when Size is non-nil (a constant-foldable length
// expression), or `[T]` (a pointer-decayed slice-like type) when nil.
type ArrayType struct {
	base
	Element TypeNode
	Size    Expression
}

func NewArrayType(loc diagnostics.SourceLocation, element TypeNode, size Expression) *ArrayType {
	return &ArrayType{base: base{Loc: loc}, Element: element, Size: size}
}

func (*ArrayType) typeNode()          {}
func (n *ArrayType) Accept(v Visitor) { v.VisitArrayType(n) }

// TupleType is `(T1, T2, ...)`.
type TupleType struct {
	base
	Elements []TypeNode
}

func NewTupleType(loc diagnostics.SourceLocation, elements []TypeNode) *TupleType {
	return &TupleType{base: base{Loc: loc}, Elements: elements}
}

func (*TupleType) typeNode()          {}
func (n *TupleType) Accept(v Visitor) { v.VisitTupleType(n) }

// FunctionSignatureType is `fn(T1, T2) -> R`.
type FunctionSignatureType struct {
	base
	Params  []TypeNode
	Return  TypeNode
}

func NewFunctionSignatureType(loc diagnostics.SourceLocation, params []TypeNode, ret TypeNode) *FunctionSignatureType {
	return &FunctionSignatureType{base: base{Loc: loc}, Params: params, Return: ret}
}

func (*FunctionSignatureType) typeNode()          {}
func (n *FunctionSignatureType) Accept(v Visitor) { v.VisitFunctionSignatureType(n) }

// OptionalType is `T?`.
type OptionalType struct {
	base
	Inner TypeNode
}

func NewOptionalType(loc diagnostics.SourceLocation, inner TypeNode) *OptionalType {
	return &OptionalType{base: base{Loc: loc}, Inner: inner}
}

func (*OptionalType) typeNode()          {}
func (n *OptionalType) Accept(v Visitor) { v.VisitOptionalType(n) }
