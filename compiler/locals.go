package compiler

import "github.com/jcorbin/miniscript/object"

// maxBreakPatch is the per-loop cap on outstanding break-jump patches, per
// spec §4.3 (MAX_BREAK_PATCH = 256 in original_source).
const maxBreakPatch = 256

// local is one entry of a funcState's flat locals array, per spec §4.3:
// {name, length (implicit in the Go string), depth, line}.
type local struct {
	name  string
	depth int
	line  int
}

// loopState tracks the innermost enclosing loop's start address and its
// outstanding break-jump patch list, linked to the loop it is nested in so
// compileBreak/compileContinue always act on the correct loop.
type loopState struct {
	start   int
	patches []int
	outer   *loopState
}

// funcState is one compilation context: the Function currently being
// emitted into, its locals, its scope depth (-1 top level/globals, 0
// parameters, >=1 nested blocks, per spec §4.3), its tracked operand-stack
// depth, and the loop (if any) statements inside it are nested in.
//
// def declarations never nest (spec's grammar only allows them at the top
// of a program), so funcStates are never pushed onto a stack — the
// compiler simply swaps c.cur out for a fresh one while compiling a def's
// body and swaps the outer one back in afterwards.
type funcState struct {
	fn         *object.Function
	locals     []local
	scopeDepth int
	stackSize  int
	loop       *loopState
}

func newFuncState(fn *object.Function) *funcState {
	return &funcState{fn: fn, scopeDepth: -1}
}

// enterBlock increments the current context's scope depth.
func (c *Compiler) enterBlock() {
	c.cur.scopeDepth++
}

// exitBlock pops every local declared at or below the current depth and
// decrements the tracked stack size by the same count, per spec §8
// invariant 6.
func (c *Compiler) exitBlock() {
	fs := c.cur
	for len(fs.locals) > 0 && fs.locals[len(fs.locals)-1].depth >= fs.scopeDepth {
		fs.locals = fs.locals[:len(fs.locals)-1]
		fs.stackSize--
	}
	fs.scopeDepth--
}

// addLocal appends a new local to the current context, reporting an
// overflow parse error past MaxLocals.
func (c *Compiler) addLocal(name string, line int) (int, bool) {
	fs := c.cur
	if len(fs.locals) >= object.MaxLocals {
		c.p.errorAtPrevious("too many locals (max %d)", object.MaxLocals)
		return 0, false
	}
	fs.locals = append(fs.locals, local{name: name, depth: fs.scopeDepth, line: line})
	return len(fs.locals) - 1, true
}

// resolveLocal searches the current context's locals back-to-front, so a
// shadowing inner declaration wins over an outer one of the same name.
func (c *Compiler) resolveLocal(name string) (int, bool) {
	fs := c.cur
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].name == name {
			return i, true
		}
	}
	return -1, false
}

// hasLocalInCurrentScope reports whether name is already declared at the
// exact current depth, for the duplicate-parameter check.
func (c *Compiler) hasLocalInCurrentScope(name string) bool {
	fs := c.cur
	for i := len(fs.locals) - 1; i >= 0; i-- {
		if fs.locals[i].depth != fs.scopeDepth {
			break
		}
		if fs.locals[i].name == name {
			return true
		}
	}
	return false
}
