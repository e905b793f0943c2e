package ast

import "github.com/rickenator/vyn/pkg/diagnostics"

// BlockStmt is a brace-or-indent delimited sequence of statements.
type BlockStmt struct {
	base
	Statements []Statement
}

func NewBlockStmt(loc diagnostics.SourceLocation, statements []Statement) *BlockStmt {
	return &BlockStmt{base: base{Loc: loc}, Statements: statements}
}

func (*BlockStmt) stmtNode()          {}
func (n *BlockStmt) Accept(v Visitor) { v.VisitBlockStmt(n) }

// ExpressionStmt wraps an expression evaluated for its side effects.
type ExpressionStmt struct {
	base
	Expr Expression
}

func NewExpressionStmt(loc diagnostics.SourceLocation, expr Expression) *ExpressionStmt {
	return &ExpressionStmt{base: base{Loc: loc}, Expr: expr}
}

func (*ExpressionStmt) stmtNode()          {}
func (n *ExpressionStmt) Accept(v Visitor) { v.VisitExpressionStmt(n) }

// LetStmt is a local variable binding: `let`/`var`/`const` Pattern (: Type)?
// (= Init)?.
type LetStmt struct {
	base
	IsMutable    bool
	IsConst      bool
	Target       Pattern
	Annotation   TypeNode // nil if the type is to be inferred
	Init         Expression
}

func NewLetStmt(loc diagnostics.SourceLocation, isMutable, isConst bool, target Pattern, annotation TypeNode, init Expression) *LetStmt {
	return &LetStmt{base: base{Loc: loc}, IsMutable: isMutable, IsConst: isConst, Target: target, Annotation: annotation, Init: init}
}

func (*LetStmt) stmtNode()          {}
func (n *LetStmt) Accept(v Visitor) { v.VisitLetStmt(n) }

// IfStmt is `if cond: then (else: else)?`.
type IfStmt struct {
	base
	Condition Expression
	Then      *BlockStmt
	Else      Statement // nil, *BlockStmt, or a nested *IfStmt (else-if chain)
}

func NewIfStmt(loc diagnostics.SourceLocation, cond Expression, then *BlockStmt, els Statement) *IfStmt {
	return &IfStmt{base: base{Loc: loc}, Condition: cond, Then: then, Else: els}
}

func (*IfStmt) stmtNode()          {}
func (n *IfStmt) Accept(v Visitor) { v.VisitIfStmt(n) }

// WhileStmt is `while cond: body`.
type WhileStmt struct {
	base
	Condition Expression
	Body      *BlockStmt
}

func NewWhileStmt(loc diagnostics.SourceLocation, cond Expression, body *BlockStmt) *WhileStmt {
	return &WhileStmt{base: base{Loc: loc}, Condition: cond, Body: body}
}

func (*WhileStmt) stmtNode()          {}
func (n *WhileStmt) Accept(v Visitor) { v.VisitWhileStmt(n) }

// ForStmt is `for Pattern in Iterable: body`.
type ForStmt struct {
	base
	Binding  Pattern
	Iterable Expression
	Body     *BlockStmt
}

func NewForStmt(loc diagnostics.SourceLocation, binding Pattern, iterable Expression, body *BlockStmt) *ForStmt {
	return &ForStmt{base: base{Loc: loc}, Binding: binding, Iterable: iterable, Body: body}
}

func (*ForStmt) stmtNode()          {}
func (n *ForStmt) Accept(v Visitor) { v.VisitForStmt(n) }

// ReturnStmt is `return (expr)?`.
type ReturnStmt struct {
	base
	Value Expression // nil for a bare `return`
}

func NewReturnStmt(loc diagnostics.SourceLocation, value Expression) *ReturnStmt {
	return &ReturnStmt{base: base{Loc: loc}, Value: value}
}

func (*ReturnStmt) stmtNode()          {}
func (n *ReturnStmt) Accept(v Visitor) { v.VisitReturnStmt(n) }

// BreakStmt is `break`.
type BreakStmt struct{ base }

func NewBreakStmt(loc diagnostics.SourceLocation) *BreakStmt { return &BreakStmt{base{Loc: loc}} }

func (*BreakStmt) stmtNode()          {}
func (n *BreakStmt) Accept(v Visitor) { v.VisitBreakStmt(n) }

// ContinueStmt is `continue`.
type ContinueStmt struct{ base }

func NewContinueStmt(loc diagnostics.SourceLocation) *ContinueStmt {
	return &ContinueStmt{base{Loc: loc}}
}

func (*ContinueStmt) stmtNode()          {}
func (n *ContinueStmt) Accept(v Visitor) { v.VisitContinueStmt(n) }

// DeferStmt is `defer expr`.
type DeferStmt struct {
	base
	Call Expression
}

func NewDeferStmt(loc diagnostics.SourceLocation, call Expression) *DeferStmt {
	return &DeferStmt{base: base{Loc: loc}, Call: call}
}

func (*DeferStmt) stmtNode()          {}
func (n *DeferStmt) Accept(v Visitor) { v.VisitDeferStmt(n) }

// CatchClause is one `catch Pattern: body` arm of a TryStmt. It is not a
// Statement itself, only a component of TryStmt.
type CatchClause struct {
	base
	Binding Pattern // nil for a bare `catch:`
	Body    *BlockStmt
}

func NewCatchClause(loc diagnostics.SourceLocation, binding Pattern, body *BlockStmt) *CatchClause {
	return &CatchClause{base: base{Loc: loc}, Binding: binding, Body: body}
}

func (n *CatchClause) Accept(v Visitor) { v.VisitCatchClause(n) }

// TryStmt is `try: body (catch ...)* (finally: body)?`. Catch lowering is
// stubbed at the codegen layer per spec; the AST still records every clause.
type TryStmt struct {
	base
	Body    *BlockStmt
	Catches []*CatchClause
	Finally *BlockStmt // nil if absent
}

func NewTryStmt(loc diagnostics.SourceLocation, body *BlockStmt, catches []*CatchClause, finally *BlockStmt) *TryStmt {
	return &TryStmt{base: base{Loc: loc}, Body: body, Catches: catches, Finally: finally}
}

func (*TryStmt) stmtNode()          {}
func (n *TryStmt) Accept(v Visitor) { v.VisitTryStmt(n) }

// MatchArm is one `Pattern (if Guard)? => body` arm of a MatchStmt.
type MatchArm struct {
	base
	Pattern Pattern
	Guard   Expression // nil if absent
	Body    *BlockStmt
}

func NewMatchArm(loc diagnostics.SourceLocation, pattern Pattern, guard Expression, body *BlockStmt) *MatchArm {
	return &MatchArm{base: base{Loc: loc}, Pattern: pattern, Guard: guard, Body: body}
}

func (n *MatchArm) Accept(v Visitor) { v.VisitMatchArm(n) }

// MatchStmt is `match Subject: arms`.
type MatchStmt struct {
	base
	Subject Expression
	Arms    []*MatchArm
}

func NewMatchStmt(loc diagnostics.SourceLocation, subject Expression, arms []*MatchArm) *MatchStmt {
	return &MatchStmt{base: base{Loc: loc}, Subject: subject, Arms: arms}
}

func (*MatchStmt) stmtNode()          {}
func (n *MatchStmt) Accept(v Visitor) { v.VisitMatchStmt(n) }
