package semantic

import (
	"github.com/rickenator/vyn/pkg/ast"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

// Analyzer walks a Module, building scopes and symbols and recording
// diagnostics for undeclared identifiers, redeclarations, assignment to an
// immutable binding, invalid borrow targets, and break/continue outside a
// loop. It never halts: every problem it finds is
// appended to Diagnostics and the walk continues, matching class 3 of the
// error-handling design.
type Analyzer struct {
	Diagnostics diagnostics.List
	file        string
	current     *Scope
	loopDepth   int
}

// NewAnalyzer creates an Analyzer for a single file; the module scope is
// the root of the chain every function/block scope nests under.
func NewAnalyzer(file string) *Analyzer {
	return &Analyzer{file: file, current: NewScope(nil)}
}

// Analyze walks every declaration in m.
func (a *Analyzer) Analyze(m *ast.Module) {
	for _, decl := range m.Declarations {
		a.analyzeDeclaration(decl)
	}
}

func (a *Analyzer) enterScope() { a.current = NewScope(a.current) }
func (a *Analyzer) exitScope()  { a.current = a.current.Parent }

func (a *Analyzer) addError(loc diagnostics.SourceLocation, format string, args ...any) {
	a.Diagnostics.Add(loc, format, args...)
}

func (a *Analyzer) analyzeDeclaration(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		a.analyzeFunctionDeclaration(d)
	case *ast.StructDeclaration:
		a.current.Define(&Symbol{Kind: SymbolType, Name: d.Name, Declared: d})
	case *ast.ClassDeclaration:
		a.current.Define(&Symbol{Kind: SymbolType, Name: d.Name, Declared: d})
		for _, m := range d.Methods {
			a.analyzeFunctionDeclaration(m)
		}
	case *ast.EnumDeclaration:
		a.current.Define(&Symbol{Kind: SymbolType, Name: d.Name, Declared: d})
	case *ast.TraitDeclaration:
		a.current.Define(&Symbol{Kind: SymbolType, Name: d.Name, Declared: d})
	case *ast.ImplDeclaration:
		for _, m := range d.Methods {
			a.analyzeFunctionDeclaration(m)
		}
	case *ast.TypeAliasDeclaration:
		a.current.Define(&Symbol{Kind: SymbolType, Name: d.Name, Declared: d})
	case *ast.GlobalVarDeclaration:
		if d.Init != nil {
			a.analyzeExpression(d.Init)
		}
		if redeclared := a.current.Define(&Symbol{
			Kind: SymbolVariable, Name: d.Name, IsConst: d.IsConst || !d.IsMutable, Type: d.Annotation, Declared: d,
		}); redeclared {
			a.addError(d.Location(), "%q is already declared in this scope", d.Name)
		}
	case *ast.TemplateDeclaration:
		a.analyzeDeclaration(d.Inner)
	case *ast.ImportDeclaration:
		// nothing to check structurally; name resolution across modules is
		// out of scope for this analyzer.
	}
}

func (a *Analyzer) analyzeFunctionDeclaration(fn *ast.FunctionDeclaration) {
	a.current.Define(&Symbol{Kind: SymbolFunction, Name: fn.Name, Type: fn.ReturnType, Declared: fn})
	if fn.Body == nil {
		return
	}
	a.enterScope()
	for _, param := range fn.Params {
		a.current.Define(&Symbol{Kind: SymbolVariable, Name: param.Name, Type: param.Annotation, Declared: fn})
	}
	a.analyzeBlock(fn.Body)
	a.exitScope()
}

func (a *Analyzer) analyzeBlock(b *ast.BlockStmt) {
	a.enterScope()
	for _, stmt := range b.Statements {
		a.analyzeStatement(stmt)
	}
	a.exitScope()
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		a.analyzeBlock(s)
	case *ast.ExpressionStmt:
		a.analyzeExpression(s.Expr)
	case *ast.LetStmt:
		a.analyzeLetStmt(s)
	case *ast.IfStmt:
		a.analyzeExpression(s.Condition)
		a.analyzeBlock(s.Then)
		if s.Else != nil {
			a.analyzeStatement(s.Else)
		}
	case *ast.WhileStmt:
		a.analyzeExpression(s.Condition)
		a.loopDepth++
		a.analyzeBlock(s.Body)
		a.loopDepth--
	case *ast.ForStmt:
		a.analyzeExpression(s.Iterable)
		a.enterScope()
		a.bindPattern(s.Binding, nil)
		a.loopDepth++
		for _, st := range s.Body.Statements {
			a.analyzeStatement(st)
		}
		a.loopDepth--
		a.exitScope()
	case *ast.ReturnStmt:
		if s.Value != nil {
			a.analyzeExpression(s.Value)
		}
	case *ast.BreakStmt:
		if a.loopDepth == 0 {
			a.addError(s.Location(), "break used outside of a loop")
		}
	case *ast.ContinueStmt:
		if a.loopDepth == 0 {
			a.addError(s.Location(), "continue used outside of a loop")
		}
	case *ast.DeferStmt:
		a.analyzeExpression(s.Call)
	case *ast.TryStmt:
		a.analyzeBlock(s.Body)
		for _, c := range s.Catches {
			a.enterScope()
			if c.Binding != nil {
				a.bindPattern(c.Binding, nil)
			}
			for _, st := range c.Body.Statements {
				a.analyzeStatement(st)
			}
			a.exitScope()
		}
		if s.Finally != nil {
			a.analyzeBlock(s.Finally)
		}
	case *ast.MatchStmt:
		a.analyzeExpression(s.Subject)
		for _, arm := range s.Arms {
			a.enterScope()
			a.bindPattern(arm.Pattern, nil)
			if arm.Guard != nil {
				a.analyzeExpression(arm.Guard)
			}
			for _, st := range arm.Body.Statements {
				a.analyzeStatement(st)
			}
			a.exitScope()
		}
	}
}

func (a *Analyzer) analyzeLetStmt(s *ast.LetStmt) {
	if s.Init != nil {
		a.analyzeExpression(s.Init)
	}
	a.bindPattern(s.Target, s.Annotation)
}

// bindPattern defines every name introduced by pattern in the current
// scope, reporting a redeclaration if a name is already defined in that
// scope.
func (a *Analyzer) bindPattern(pattern ast.Pattern, annotation ast.TypeNode) {
	switch p := pattern.(type) {
	case *ast.IdentifierPattern:
		if redeclared := a.current.Define(&Symbol{
			Kind: SymbolVariable, Name: p.Name, IsConst: !p.Mutable, Type: annotation, Declared: p,
		}); redeclared {
			a.addError(p.Location(), "%q is already declared in this scope", p.Name)
		}
	case *ast.TuplePattern:
		for _, el := range p.Elements {
			a.bindPattern(el, nil)
		}
	case *ast.WildcardPattern, *ast.LiteralPattern:
		// no binding introduced
	}
}

func (a *Analyzer) analyzeExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if _, ok := a.current.Lookup(e.Name); !ok {
			a.addError(e.Location(), "undeclared identifier %q", e.Name)
		}
	case *ast.BinaryExpr:
		a.analyzeExpression(e.Left)
		a.analyzeExpression(e.Right)
	case *ast.UnaryExpr:
		a.analyzeExpression(e.Operand)
	case *ast.AssignmentExpr:
		a.checkLValue(e.Target)
		a.analyzeExpression(e.Target)
		a.analyzeExpression(e.Value)
	case *ast.CallExpr:
		a.analyzeExpression(e.Callee)
		for _, arg := range e.Args {
			a.analyzeExpression(arg)
		}
	case *ast.MemberAccessExpr:
		a.analyzeExpression(e.Target)
	case *ast.IndexExpr:
		a.analyzeExpression(e.Target)
		a.analyzeExpression(e.Index)
	case *ast.TupleExpr:
		for _, el := range e.Elements {
			a.analyzeExpression(el)
		}
	case *ast.ArrayLiteralExpr:
		for _, el := range e.Elements {
			a.analyzeExpression(el)
		}
	case *ast.BorrowExpr:
		if !a.isBorrowable(e.Target) {
			a.addError(e.Location(), "cannot %s a non-lvalue expression", e.Kind)
		}
		a.analyzeExpression(e.Target)
	case *ast.CastExpr:
		a.analyzeExpression(e.Operand)
	case *ast.ConditionalExpr:
		a.analyzeExpression(e.Condition)
		a.analyzeExpression(e.Then)
		a.analyzeExpression(e.Else)
	case *ast.RangeExpr:
		a.analyzeExpression(e.Start)
		a.analyzeExpression(e.End)
	case *ast.AwaitExpr:
		a.analyzeExpression(e.Operand)
	}
}

// isLValue reports whether expr denotes an assignable storage location.
func (a *Analyzer) isLValue(expr ast.Expression) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberAccessExpr, *ast.IndexExpr:
		return true
	default:
		return false
	}
}

// isBorrowable mirrors isLValue: only a storage location can be borrowed.
func (a *Analyzer) isBorrowable(expr ast.Expression) bool {
	return a.isLValue(expr)
}

func (a *Analyzer) checkLValue(target ast.Expression) {
	if !a.isLValue(target) {
		a.addError(target.Location(), "left-hand side of assignment is not assignable")
		return
	}
	if id, ok := target.(*ast.Identifier); ok {
		if sym, found := a.current.Lookup(id.Name); found && sym.Kind == SymbolVariable && sym.IsConst {
			a.addError(target.Location(), "cannot assign to immutable binding %q", id.Name)
		}
	}
}
