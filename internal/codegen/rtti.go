package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// rttiTypeName is the name of the lazily-created descriptor struct defined
// by spec §4.9: `{i32 type_id, i8* type_name}`.
const rttiTypeName = "vyn.TypeInfo"

// ensureRTTIType returns the named RTTI descriptor struct type, creating and
// registering it in the module on first use.
func (g *Generator) ensureRTTIType() *types.StructType {
	if g.rttiType != nil {
		return g.rttiType
	}
	st := types.NewStruct(types.I32, types.NewPointer(types.I8))
	g.Module.NewTypeDef(rttiTypeName, st)
	g.rttiType = st
	return st
}

// rttiDescriptor builds a global constant `vyn.TypeInfo` value for a type
// with the given numeric id and display name, for objects that carry RTTI.
func (g *Generator) rttiDescriptor(typeID int64, typeName string) *constant.Struct {
	st := g.ensureRTTIType()
	nameData := constant.NewCharArrayFromString(typeName + "\x00")
	nameGlobal := g.Module.NewGlobalDef("", nameData)
	nameGlobal.Linkage = enum.LinkagePrivate
	nameGlobal.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	namePtr := constant.NewGetElementPtr(nameData.Typ, nameGlobal, zero, zero)
	return constant.NewStruct(st, constant.NewInt(types.I32, typeID), namePtr)
}
