package ast

import "github.com/rickenator/vyn/pkg/diagnostics"

// IdentifierPattern binds a single name, optionally `mut`.
type IdentifierPattern struct {
	base
	Name    string
	Mutable bool
}

func NewIdentifierPattern(loc diagnostics.SourceLocation, name string, mutable bool) *IdentifierPattern {
	return &IdentifierPattern{base: base{Loc: loc}, Name: name, Mutable: mutable}
}

func (*IdentifierPattern) patternNode()    {}
func (n *IdentifierPattern) Accept(v Visitor) { v.VisitIdentifierPattern(n) }

// WildcardPattern is `_`.
type WildcardPattern struct{ base }

func NewWildcardPattern(loc diagnostics.SourceLocation) *WildcardPattern {
	return &WildcardPattern{base{Loc: loc}}
}

func (*WildcardPattern) patternNode()       {}
func (n *WildcardPattern) Accept(v Visitor) { v.VisitWildcardPattern(n) }

// TuplePattern destructures a tuple: `(a, b, c)`.
type TuplePattern struct {
	base
	Elements []Pattern
}

func NewTuplePattern(loc diagnostics.SourceLocation, elements []Pattern) *TuplePattern {
	return &TuplePattern{base: base{Loc: loc}, Elements: elements}
}

func (*TuplePattern) patternNode()       {}
func (n *TuplePattern) Accept(v Visitor) { v.VisitTuplePattern(n) }

// LiteralPattern matches a constant value in a match arm.
type LiteralPattern struct {
	base
	Value Expression
}

func NewLiteralPattern(loc diagnostics.SourceLocation, value Expression) *LiteralPattern {
	return &LiteralPattern{base: base{Loc: loc}, Value: value}
}

func (*LiteralPattern) patternNode()       {}
func (n *LiteralPattern) Accept(v Visitor) { v.VisitLiteralPattern(n) }
