package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/rickenator/vyn/pkg/ast"
	"github.com/rickenator/vyn/pkg/diagnostics"
)

// declareTopLevel is the forward-declaration pass: every named type is
// registered (so member access and parameter types resolve regardless of
// declaration order) and every function gets its signature built, but no
// body is lowered yet. This eliminates the order sensitivity the design
// notes call out in the reference's single-pass generator.
func (g *Generator) declareTopLevel(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.StructDeclaration:
		g.declareUserType(d.Location(), d.Name, fieldList(d.Fields), false)
	case *ast.ClassDeclaration:
		g.declareUserType(d.Location(), d.Name, fieldList(d.Fields), true)
	case *ast.FunctionDeclaration:
		g.declareFunction(d)
	case *ast.ImplDeclaration:
		for _, m := range d.Methods {
			g.declareFunction(m)
		}
	case *ast.GlobalVarDeclaration:
		// Globals need their type but not their initializer value yet;
		// initializers may reference other not-yet-declared globals only
		// through constant folding, which this generator does not attempt,
		// so declaration happens in the same pass as definition.
	case *ast.TemplateDeclaration:
		g.declareTopLevel(d.Inner)
	}
}

type namedField struct {
	Name string
	Type ast.TypeNode
}

func fieldList(fields []ast.Field) []namedField {
	out := make([]namedField, len(fields))
	for i, f := range fields {
		out[i] = namedField{Name: f.Name, Type: f.Annotation}
	}
	return out
}

func (g *Generator) declareUserType(loc diagnostics.SourceLocation, name string, fields []namedField, isClass bool) {
	irFields := make([]types.Type, len(fields))
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		irFields[i] = g.lowerType(loc, f.Type)
		index[f.Name] = i
	}
	st := types.NewStruct(irFields...)
	g.Module.NewTypeDef(name, st)
	ut := &userType{IR: st, Fields: index, IsClass: isClass}

	if isClass {
		id := g.nextTypeID
		g.nextTypeID++
		descriptor := g.rttiDescriptor(id, name)
		rtti := g.Module.NewGlobalDef("vyn.rtti."+name, descriptor)
		rtti.Linkage = enum.LinkagePrivate
		rtti.Immutable = true
		ut.RTTI = rtti
	}

	g.userTypes[name] = ut
}

func (g *Generator) declareFunction(fn *ast.FunctionDeclaration) {
	if _, exists := g.funcs[fn.Name]; exists {
		return
	}
	paramTypes := make([]*ir.Param, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = ir.NewParam(p.Name, g.lowerType(fn.Location(), p.Annotation))
	}
	retType := g.lowerType(fn.Location(), fn.ReturnType)
	f := g.Module.NewFunc(fn.Name, retType, paramTypes...)
	if fn.IsExtern {
		f.Linkage = enum.LinkageExternal
	}
	g.funcs[fn.Name] = f
}

// defineTopLevel is the second pass: it lowers every function body now that
// every type and signature is registered.
func (g *Generator) defineTopLevel(decl ast.Declaration) {
	switch d := decl.(type) {
	case *ast.FunctionDeclaration:
		g.defineFunction(d)
	case *ast.ImplDeclaration:
		for _, m := range d.Methods {
			g.defineFunction(m)
		}
	case *ast.GlobalVarDeclaration:
		g.defineGlobalVar(d)
	case *ast.TemplateDeclaration:
		g.defineTopLevel(d.Inner)
	}
}

func (g *Generator) defineFunction(fn *ast.FunctionDeclaration) {
	f, ok := g.funcs[fn.Name]
	if !ok || fn.Body == nil {
		return
	}

	saved := g.namedValues
	g.namedValues = make(map[string]value.Value)
	defer func() { g.namedValues = saved }()

	entry := f.NewBlock("entry")
	ctx := CodegenContext{Function: f, Block: entry}

	for i, param := range f.Params {
		slot := entry.NewAlloca(param.Typ)
		entry.NewStore(param, slot)
		g.namedValues[fn.Params[i].Name] = slot
	}

	ctx = g.lowerBlock(ctx, fn.Body)

	if !terminated(ctx.Block) {
		if f.Sig.RetType.Equal(types.Void) {
			ctx.Block.NewRet(nil)
		} else {
			g.errorf(fn.Location(), "function %q falls off the end without returning a value", fn.Name)
			ctx.Block.NewRet(constant.NewUndef(f.Sig.RetType))
		}
	}

	g.verifyFunction(fn.Location(), f)
}

func (g *Generator) defineGlobalVar(d *ast.GlobalVarDeclaration) {
	var llType types.Type
	if d.Annotation != nil {
		llType = g.lowerType(d.Location(), d.Annotation)
	}

	var init constant.Constant
	if d.Init != nil {
		val, ok := g.foldConstant(d.Init)
		if !ok {
			g.errorf(d.Location(), "global variable %q initializer must be a constant", d.Name)
			return
		}
		init = val
		if llType == nil {
			llType = val.Type()
		}
	} else if llType != nil {
		init = constant.NewZeroInitializer(llType)
	} else {
		g.errorf(d.Location(), "global variable %q has neither an initializer nor a declared type", d.Name)
		return
	}

	global := g.Module.NewGlobalDef(d.Name, init)
	global.Linkage = enum.LinkagePrivate
	global.Immutable = d.IsConst || !d.IsMutable
	g.globals[d.Name] = global
}

// foldConstant evaluates the small constant-expression grammar accepted for
// global initializers: literals only, matching the reference's
// llvm::isa<Constant> check on the lowered initializer.
func (g *Generator) foldConstant(expr ast.Expression) (constant.Constant, bool) {
	switch e := expr.(type) {
	case *ast.IntLiteral:
		return constant.NewInt(types.I64, e.Value), true
	case *ast.FloatLiteral:
		return constant.NewFloat(types.Double, e.Value), true
	case *ast.BoolLiteral:
		if e.Value {
			return constant.NewInt(types.I1, 1), true
		}
		return constant.NewInt(types.I1, 0), true
	case *ast.NilLiteral:
		return constant.NewNull(types.NewPointer(types.I8)), true
	default:
		return nil, false
	}
}
