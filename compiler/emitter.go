package compiler

import (
	"github.com/jcorbin/miniscript/object"
	"github.com/jcorbin/miniscript/opcode"
)

// Operand widths are spec §4.4's: 1 byte for a local slot / argument count,
// 2 bytes big-endian for a constant/global/name-table index or a jump
// address. The extension opcodes (LOAD_LOCAL and friends) have no operand
// width mandated by spec — CALL's argument count and LOAD_LOCAL/STORE_LOCAL's
// slot both fit MaxLocals-255 comfortably in one byte; everything indexing
// into a Script-scale table (globals, the name pool, list/map build counts)
// gets the same 2-byte width the constant pool already uses. See DESIGN.md.

// emitByte appends a single byte to the current function's code, recording
// the previous token's line in the parallel line table (one entry per
// byte, per spec §8 invariant 5), and returns the byte's index.
func (c *Compiler) emitByte(b byte) int {
	idx := c.cur.fn.Code.Write(c.h, b)
	c.cur.fn.Lines.Write(c.h, c.p.lx.Previous.Line)
	return idx
}

// emitShort writes a 2-byte big-endian operand and returns the index of its
// first (high) byte, mirroring original_source's emitShort.
func (c *Compiler) emitShort(arg int) int {
	c.emitByte(byte((arg >> 8) & 0xff))
	return c.emitByte(byte(arg&0xff)) - 1
}

// growStack applies delta to the tracked operand-stack depth and widens the
// function's recorded peak (Fn.stack_size) if this is a new high, per spec
// §4.4 and §8 invariant 5.
func (c *Compiler) growStack(delta int) {
	c.cur.stackSize += delta
	if c.cur.stackSize > c.cur.fn.StackSize {
		c.cur.fn.StackSize = c.cur.stackSize
	}
}

// emitOp emits an opcode with no operand bytes.
func (c *Compiler) emitOp(code opcode.Code) int {
	idx := c.emitByte(byte(code))
	c.growStack(opcode.StackDelta(code, 0))
	return idx
}

// emitOpU8 emits an opcode followed by a 1-byte operand whose value the
// opcode's stack effect may depend on (CALL's argument count).
func (c *Compiler) emitOpU8(code opcode.Code, operand int) int {
	idx := c.emitByte(byte(code))
	c.emitByte(byte(operand))
	c.growStack(opcode.StackDelta(code, operand))
	return idx
}

// emitOpU16 emits an opcode followed by a 2-byte big-endian operand whose
// value the opcode's stack effect may depend on (BUILD_LIST/BUILD_MAP's
// element/pair count).
func (c *Compiler) emitOpU16(code opcode.Code, operand int) int {
	idx := c.emitByte(byte(code))
	c.emitShort(operand)
	c.growStack(opcode.StackDelta(code, operand))
	return idx
}

// emitJump emits a JUMP or JUMP_IF_NOT with a placeholder 2-byte operand
// and returns the operand's start index, for a later patchJump.
func (c *Compiler) emitJump(code opcode.Code) int {
	c.emitByte(byte(code))
	addr := c.emitShort(0xffff)
	c.growStack(opcode.StackDelta(code, 0))
	return addr
}

// patchJump stores the current code length, big-endian, into the 2-byte
// placeholder at addrIndex, per spec §4.4.
func (c *Compiler) patchJump(addrIndex int) {
	target := c.cur.fn.Code.Len()
	if target >= object.MaxJump {
		c.p.errorAtPrevious("too large a jump address (max %d)", object.MaxJump)
		return
	}
	c.cur.fn.Code.Set(addrIndex, byte((target>>8)&0xff))
	c.cur.fn.Code.Set(addrIndex+1, byte(target&0xff))
}

// emitConstant pools v into the script's literal table (deduped by Same,
// per spec §4.3's addConstant and §8 invariant 4) and emits CONSTANT with
// its index.
func (c *Compiler) emitConstant(v object.Value) {
	idx, err := c.script.AddConstant(c.h, v)
	if err != nil {
		c.p.errorAtPrevious(err.Error())
		return
	}
	c.emitOpU16(opcode.CONSTANT, idx)
}
