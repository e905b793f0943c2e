package ast

import "github.com/rickenator/vyn/pkg/diagnostics"

// BorrowKind distinguishes a mutable borrow from an immutable view,
// matching the two forms of Vyn's `borrow`/`view` expressions.
type BorrowKind int

const (
	MutableBorrow BorrowKind = iota
	ImmutableView
)

func (k BorrowKind) String() string {
	if k == ImmutableView {
		return "view"
	}
	return "borrow"
}

// Identifier is a bare name reference.
type Identifier struct {
	base
	Name string
}

func NewIdentifier(loc diagnostics.SourceLocation, name string) *Identifier {
	return &Identifier{base: base{Loc: loc}, Name: name}
}

func (*Identifier) exprNode()          {}
func (n *Identifier) Accept(v Visitor) { v.VisitIdentifier(n) }

// IntLiteral is an integer literal; Text preserves the original lexeme
// (pre-underscore-stripped form is not retained, matching the lexer).
type IntLiteral struct {
	base
	Text  string
	Value int64
}

func NewIntLiteral(loc diagnostics.SourceLocation, text string, value int64) *IntLiteral {
	return &IntLiteral{base: base{Loc: loc}, Text: text, Value: value}
}

func (*IntLiteral) exprNode()          {}
func (n *IntLiteral) Accept(v Visitor) { v.VisitIntLiteral(n) }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	base
	Text  string
	Value float64
}

func NewFloatLiteral(loc diagnostics.SourceLocation, text string, value float64) *FloatLiteral {
	return &FloatLiteral{base: base{Loc: loc}, Text: text, Value: value}
}

func (*FloatLiteral) exprNode()          {}
func (n *FloatLiteral) Accept(v Visitor) { v.VisitFloatLiteral(n) }

// StringLiteral is a string literal with escapes already decoded.
type StringLiteral struct {
	base
	Value string
}

func NewStringLiteral(loc diagnostics.SourceLocation, value string) *StringLiteral {
	return &StringLiteral{base: base{Loc: loc}, Value: value}
}

func (*StringLiteral) exprNode()          {}
func (n *StringLiteral) Accept(v Visitor) { v.VisitStringLiteral(n) }

// CharLiteral is a single-character literal.
type CharLiteral struct {
	base
	Value byte
}

func NewCharLiteral(loc diagnostics.SourceLocation, value byte) *CharLiteral {
	return &CharLiteral{base: base{Loc: loc}, Value: value}
}

func (*CharLiteral) exprNode()          {}
func (n *CharLiteral) Accept(v Visitor) { v.VisitCharLiteral(n) }

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	base
	Value bool
}

func NewBoolLiteral(loc diagnostics.SourceLocation, value bool) *BoolLiteral {
	return &BoolLiteral{base: base{Loc: loc}, Value: value}
}

func (*BoolLiteral) exprNode()          {}
func (n *BoolLiteral) Accept(v Visitor) { v.VisitBoolLiteral(n) }

// NilLiteral is `nil`.
type NilLiteral struct {
	base
}

func NewNilLiteral(loc diagnostics.SourceLocation) *NilLiteral {
	return &NilLiteral{base: base{Loc: loc}}
}

func (*NilLiteral) exprNode()          {}
func (n *NilLiteral) Accept(v Visitor) { v.VisitNilLiteral(n) }

// BinaryExpr is any of the infix operators of the 16-level precedence climb.
type BinaryExpr struct {
	base
	Operator string
	Left     Expression
	Right    Expression
}

func NewBinaryExpr(loc diagnostics.SourceLocation, op string, left, right Expression) *BinaryExpr {
	return &BinaryExpr{base: base{Loc: loc}, Operator: op, Left: left, Right: right}
}

func (*BinaryExpr) exprNode()          {}
func (n *BinaryExpr) Accept(v Visitor) { v.VisitBinaryExpr(n) }

// UnaryExpr is a prefix operator: -x, !x, ~x, &x, *x.
type UnaryExpr struct {
	base
	Operator string
	Operand  Expression
}

func NewUnaryExpr(loc diagnostics.SourceLocation, op string, operand Expression) *UnaryExpr {
	return &UnaryExpr{base: base{Loc: loc}, Operator: op, Operand: operand}
}

func (*UnaryExpr) exprNode()          {}
func (n *UnaryExpr) Accept(v Visitor) { v.VisitUnaryExpr(n) }

// AssignmentExpr is `target = value`; Operator holds the textual operator.
// The parser produces only "="; compound forms such as "+=" are not parsed.
type AssignmentExpr struct {
	base
	Operator string
	Target   Expression
	Value    Expression
}

func NewAssignmentExpr(loc diagnostics.SourceLocation, op string, target, value Expression) *AssignmentExpr {
	return &AssignmentExpr{base: base{Loc: loc}, Operator: op, Target: target, Value: value}
}

func (*AssignmentExpr) exprNode()          {}
func (n *AssignmentExpr) Accept(v Visitor) { v.VisitAssignmentExpr(n) }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	base
	Callee Expression
	Args   []Expression
}

func NewCallExpr(loc diagnostics.SourceLocation, callee Expression, args []Expression) *CallExpr {
	return &CallExpr{base: base{Loc: loc}, Callee: callee, Args: args}
}

func (*CallExpr) exprNode()          {}
func (n *CallExpr) Accept(v Visitor) { v.VisitCallExpr(n) }

// MemberAccessExpr is `target.member`.
type MemberAccessExpr struct {
	base
	Target Expression
	Member string
}

func NewMemberAccessExpr(loc diagnostics.SourceLocation, target Expression, member string) *MemberAccessExpr {
	return &MemberAccessExpr{base: base{Loc: loc}, Target: target, Member: member}
}

func (*MemberAccessExpr) exprNode()          {}
func (n *MemberAccessExpr) Accept(v Visitor) { v.VisitMemberAccessExpr(n) }

// IndexExpr is `target[index]`.
type IndexExpr struct {
	base
	Target Expression
	Index  Expression
}

func NewIndexExpr(loc diagnostics.SourceLocation, target, index Expression) *IndexExpr {
	return &IndexExpr{base: base{Loc: loc}, Target: target, Index: index}
}

func (*IndexExpr) exprNode()          {}
func (n *IndexExpr) Accept(v Visitor) { v.VisitIndexExpr(n) }

// TupleExpr is `(e1, e2, ...)`.
type TupleExpr struct {
	base
	Elements []Expression
}

func NewTupleExpr(loc diagnostics.SourceLocation, elements []Expression) *TupleExpr {
	return &TupleExpr{base: base{Loc: loc}, Elements: elements}
}

func (*TupleExpr) exprNode()          {}
func (n *TupleExpr) Accept(v Visitor) { v.VisitTupleExpr(n) }

// ArrayLiteralExpr is `[e1, e2, ...]`.
type ArrayLiteralExpr struct {
	base
	Elements []Expression
}

func NewArrayLiteralExpr(loc diagnostics.SourceLocation, elements []Expression) *ArrayLiteralExpr {
	return &ArrayLiteralExpr{base: base{Loc: loc}, Elements: elements}
}

func (*ArrayLiteralExpr) exprNode()          {}
func (n *ArrayLiteralExpr) Accept(v Visitor) { v.VisitArrayLiteralExpr(n) }

// BorrowExpr is `borrow x` or `view x`.
type BorrowExpr struct {
	base
	Kind   BorrowKind
	Target Expression
}

func NewBorrowExpr(loc diagnostics.SourceLocation, kind BorrowKind, target Expression) *BorrowExpr {
	return &BorrowExpr{base: base{Loc: loc}, Kind: kind, Target: target}
}

func (*BorrowExpr) exprNode()          {}
func (n *BorrowExpr) Accept(v Visitor) { v.VisitBorrowExpr(n) }

// CastExpr is `expr as Type`.
type CastExpr struct {
	base
	Operand Expression
	Target  TypeNode
}

func NewCastExpr(loc diagnostics.SourceLocation, operand Expression, target TypeNode) *CastExpr {
	return &CastExpr{base: base{Loc: loc}, Operand: operand, Target: target}
}

func (*CastExpr) exprNode()          {}
func (n *CastExpr) Accept(v Visitor) { v.VisitCastExpr(n) }

// ConditionalExpr is `cond ? then : else`.
type ConditionalExpr struct {
	base
	Condition Expression
	Then      Expression
	Else      Expression
}

func NewConditionalExpr(loc diagnostics.SourceLocation, cond, then, els Expression) *ConditionalExpr {
	return &ConditionalExpr{base: base{Loc: loc}, Condition: cond, Then: then, Else: els}
}

func (*ConditionalExpr) exprNode()          {}
func (n *ConditionalExpr) Accept(v Visitor) { v.VisitConditionalExpr(n) }

// RangeExpr is `start..end`, used by for-in loops and array-type sizes.
type RangeExpr struct {
	base
	Start Expression
	End   Expression
}

func NewRangeExpr(loc diagnostics.SourceLocation, start, end Expression) *RangeExpr {
	return &RangeExpr{base: base{Loc: loc}, Start: start, End: end}
}

func (*RangeExpr) exprNode()          {}
func (n *RangeExpr) Accept(v Visitor) { v.VisitRangeExpr(n) }

// AwaitExpr is `await expr`.
type AwaitExpr struct {
	base
	Operand Expression
}

func NewAwaitExpr(loc diagnostics.SourceLocation, operand Expression) *AwaitExpr {
	return &AwaitExpr{base: base{Loc: loc}, Operand: operand}
}

func (*AwaitExpr) exprNode()          {}
func (n *AwaitExpr) Accept(v Visitor) { v.VisitAwaitExpr(n) }
