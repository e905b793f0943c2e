package ast

import "github.com/rickenator/vyn/pkg/diagnostics"

// Param is one entry in a function's parameter list.
type Param struct {
	Name       string
	Annotation TypeNode
}

// FunctionDeclaration is `fn name(params) -> Return (throws T)?: body`.
type FunctionDeclaration struct {
	base
	Name       string
	Params     []Param
	ReturnType TypeNode // nil means inferred void
	ThrowsType TypeNode // nil if the function declares no `throws` clause
	Body       *BlockStmt
	IsPublic   bool
	IsExtern   bool
	IsAsync    bool
}

func NewFunctionDeclaration(loc diagnostics.SourceLocation, name string, params []Param, ret, throws TypeNode, body *BlockStmt) *FunctionDeclaration {
	return &FunctionDeclaration{base: base{Loc: loc}, Name: name, Params: params, ReturnType: ret, ThrowsType: throws, Body: body}
}

func (*FunctionDeclaration) declNode()          {}
func (n *FunctionDeclaration) Accept(v Visitor) { v.VisitFunctionDeclaration(n) }

// Field is one member of a struct or class.
type Field struct {
	Name       string
	Annotation TypeNode
	IsPublic   bool
}

// StructDeclaration is `struct Name: fields`. Structs are plain aggregates
// with no methods, lowered to an LLVM named struct type.
type StructDeclaration struct {
	base
	Name   string
	Fields []Field
}

func NewStructDeclaration(loc diagnostics.SourceLocation, name string, fields []Field) *StructDeclaration {
	return &StructDeclaration{base: base{Loc: loc}, Name: name, Fields: fields}
}

func (*StructDeclaration) declNode()          {}
func (n *StructDeclaration) Accept(v Visitor) { v.VisitStructDeclaration(n) }

// ClassDeclaration is `class Name: fields + methods`, the difference from
// struct being that classes carry their methods inline rather than through
// a separate impl block (impl blocks still attach trait implementations).
type ClassDeclaration struct {
	base
	Name    string
	Fields  []Field
	Methods []*FunctionDeclaration
}

func NewClassDeclaration(loc diagnostics.SourceLocation, name string, fields []Field, methods []*FunctionDeclaration) *ClassDeclaration {
	return &ClassDeclaration{base: base{Loc: loc}, Name: name, Fields: fields, Methods: methods}
}

func (*ClassDeclaration) declNode()          {}
func (n *ClassDeclaration) Accept(v Visitor) { v.VisitClassDeclaration(n) }

// EnumVariant is one case of an EnumDeclaration, optionally carrying an
// explicit discriminant value.
type EnumVariant struct {
	Name  string
	Value Expression // nil if auto-numbered
}

// EnumDeclaration is `enum Name: variants`.
type EnumDeclaration struct {
	base
	Name     string
	Variants []EnumVariant
}

func NewEnumDeclaration(loc diagnostics.SourceLocation, name string, variants []EnumVariant) *EnumDeclaration {
	return &EnumDeclaration{base: base{Loc: loc}, Name: name, Variants: variants}
}

func (*EnumDeclaration) declNode()          {}
func (n *EnumDeclaration) Accept(v Visitor) { v.VisitEnumDeclaration(n) }

// TraitDeclaration is `trait Name: method signatures`.
type TraitDeclaration struct {
	base
	Name    string
	Methods []*FunctionDeclaration // Body is nil for each signature-only method
}

func NewTraitDeclaration(loc diagnostics.SourceLocation, name string, methods []*FunctionDeclaration) *TraitDeclaration {
	return &TraitDeclaration{base: base{Loc: loc}, Name: name, Methods: methods}
}

func (*TraitDeclaration) declNode()          {}
func (n *TraitDeclaration) Accept(v Visitor) { v.VisitTraitDeclaration(n) }

// ImplDeclaration is `impl Trait for Type: methods` (Trait is "" for an
// inherent impl with no trait).
type ImplDeclaration struct {
	base
	TraitName string
	TypeName  string
	Methods   []*FunctionDeclaration
}

func NewImplDeclaration(loc diagnostics.SourceLocation, traitName, typeName string, methods []*FunctionDeclaration) *ImplDeclaration {
	return &ImplDeclaration{base: base{Loc: loc}, TraitName: traitName, TypeName: typeName, Methods: methods}
}

func (*ImplDeclaration) declNode()          {}
func (n *ImplDeclaration) Accept(v Visitor) { v.VisitImplDeclaration(n) }

// TypeAliasDeclaration is `type Name = Aliased`.
type TypeAliasDeclaration struct {
	base
	Name    string
	Aliased TypeNode
}

func NewTypeAliasDeclaration(loc diagnostics.SourceLocation, name string, aliased TypeNode) *TypeAliasDeclaration {
	return &TypeAliasDeclaration{base: base{Loc: loc}, Name: name, Aliased: aliased}
}

func (*TypeAliasDeclaration) declNode()          {}
func (n *TypeAliasDeclaration) Accept(v Visitor) { v.VisitTypeAliasDeclaration(n) }

// GlobalVarDeclaration is a module-level `let`/`var`/`const`.
type GlobalVarDeclaration struct {
	base
	IsMutable  bool
	IsConst    bool
	Name       string
	Annotation TypeNode
	Init       Expression
}

func NewGlobalVarDeclaration(loc diagnostics.SourceLocation, isMutable, isConst bool, name string, annotation TypeNode, init Expression) *GlobalVarDeclaration {
	return &GlobalVarDeclaration{base: base{Loc: loc}, IsMutable: isMutable, IsConst: isConst, Name: name, Annotation: annotation, Init: init}
}

func (*GlobalVarDeclaration) declNode()          {}
func (n *GlobalVarDeclaration) Accept(v Visitor) { v.VisitGlobalVarDeclaration(n) }

// TemplateDeclaration wraps another declaration with a list of generic
// parameter names: `template<T, U> decl`.
type TemplateDeclaration struct {
	base
	Params []string
	Inner  Declaration
}

func NewTemplateDeclaration(loc diagnostics.SourceLocation, params []string, inner Declaration) *TemplateDeclaration {
	return &TemplateDeclaration{base: base{Loc: loc}, Params: params, Inner: inner}
}

func (*TemplateDeclaration) declNode()          {}
func (n *TemplateDeclaration) Accept(v Visitor) { v.VisitTemplateDeclaration(n) }

// ImportDeclaration is `import path (as alias)?` or `smuggle path (as alias)?`.
// IsSmuggled distinguishes the two forms for a future linker pass; parsing
// and the rest of the AST shape are otherwise identical (open question,
// resolved this way rather than as two separate node kinds).
type ImportDeclaration struct {
	base
	Path        string
	Alias       string
	IsSmuggled  bool
}

func NewImportDeclaration(loc diagnostics.SourceLocation, path, alias string, smuggled bool) *ImportDeclaration {
	return &ImportDeclaration{base: base{Loc: loc}, Path: path, Alias: alias, IsSmuggled: smuggled}
}

func (*ImportDeclaration) declNode()          {}
func (n *ImportDeclaration) Accept(v Visitor) { v.VisitImportDeclaration(n) }
