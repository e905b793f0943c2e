// Package codegen lowers a Vyn Module to LLVM IR using github.com/llir/llvm,
// following the visitor-over-AST shape of the original implementation's
// LLVMCodegen class but threading state through an explicit CodegenContext
// value instead of mutable fields (currentFunction, m_isLHSOfAssignment, the
// loop stack) as the reference keeps them.
package codegen

import (
	"github.com/llir/llvm/ir"
)

// loopFrame records the basic blocks break/continue target for one active
// loop. update is the header itself for a while loop and the dedicated
// update block for a for loop, mirroring the original LoopContext.
type loopFrame struct {
	update *ir.Block
	exit   *ir.Block
	parent *loopFrame
}

// CodegenContext is the value threaded through every lowering call. It
// replaces the reference generator's mutable currentFunction/currentBlock/
// isLHSOfAssignment/loopStack fields: each recursive call receives the
// context it should observe and returns the context reflecting any new
// insertion point.
type CodegenContext struct {
	Function *ir.Func
	Block    *ir.Block
	LValue   bool
	loop     *loopFrame
}

// WithBlock returns a copy of c pointing at a different insertion block.
func (c CodegenContext) WithBlock(b *ir.Block) CodegenContext {
	c.Block = b
	return c
}

// WithLValue returns a copy of c with the l-value flag set to lvalue.
func (c CodegenContext) WithLValue(lvalue bool) CodegenContext {
	c.LValue = lvalue
	return c
}

// PushLoop returns a copy of c with a new innermost loop frame.
func (c CodegenContext) PushLoop(update, exit *ir.Block) CodegenContext {
	c.loop = &loopFrame{update: update, exit: exit, parent: c.loop}
	return c
}

// LoopUpdate returns the innermost loop's continue target, if any.
func (c CodegenContext) LoopUpdate() (*ir.Block, bool) {
	if c.loop == nil {
		return nil, false
	}
	return c.loop.update, true
}

// LoopExit returns the innermost loop's break target, if any.
func (c CodegenContext) LoopExit() (*ir.Block, bool) {
	if c.loop == nil {
		return nil, false
	}
	return c.loop.exit, true
}

// terminated reports whether b already ends with a terminator, the
// same guard the reference checks via getTerminator() before emitting a
// fallthrough branch.
func terminated(b *ir.Block) bool {
	return b.Term != nil
}
