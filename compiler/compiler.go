// Package compiler implements MiniScript's recursive-descent
// statement/declaration parser and Pratt-precedence expression parser,
// emitting directly into a Script's Functions as it goes (spec §4.3/§4.4).
// Grounded on gothird/internals.go's compile/compileHeader/lookup trio for
// the append-to-buffer-and-record-address emitter shape, and on
// original_source's compiler.c for grammar, precedence and MAX_* limits.
package compiler

import (
	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/internal/panicerr"
	"github.com/jcorbin/miniscript/lexer"
	"github.com/jcorbin/miniscript/object"
	"github.com/jcorbin/miniscript/opcode"
)

// Compiler holds everything a single compilation needs: the heap to
// allocate into, the Script being built, the token stream, and the
// compilation context (funcState) currently being emitted into.
//
// def declarations never nest, so there is exactly one funcState live at a
// time — compiling a def's body swaps c.cur out and back rather than
// pushing a stack. There is also no need to temp-root newly allocated
// Functions/Strings here: nothing on the compile path ever invokes the
// collector (package gc is only ever driven by the embedder between
// synchronous Compile calls, per spec §5's "no suspension points inside
// the compiler"), so an allocation can never observe an intermediate,
// not-yet-linked object as unreachable.
type Compiler struct {
	h      *heap.Heap
	script *object.Script
	p      *parser
	cur    *funcState

	seenNonImport bool
}

// Compile parses and emits source into script's Body function (and any
// further Functions its def declarations introduce), reporting every lex
// and parse diagnostic to onError. It returns true if compilation reached
// EOF with no errors at all, mirroring spec §7's has_errors flag: even a
// false result still leaves script holding whatever was successfully
// emitted, per spec §7's "compilation always reaches EOF".
//
// The compile loop runs under panicerr.Recover exactly as gothird.Run
// wraps vm.run: a code-generation invariant violation (an over-budget
// counter slipping past its check, a malformed jump patch) surfaces as an
// ordinary COMPILE diagnostic and a false return instead of a crashed
// process.
func Compile(h *heap.Heap, script *object.Script, source string, onError lexer.ErrorFunc) bool {
	h.AddRoot(script)

	lx := lexer.New(h, source, onError)
	p := &parser{lx: lx, onError: onError}
	c := &Compiler{h: h, script: script, p: p, cur: newFuncState(script.Body)}

	err := panicerr.Recover("compiler", func() error {
		for p.peek() != lexer.EOF {
			c.compileDeclaration()
		}
		c.emitImplicitReturn()
		return nil
	})
	if err != nil {
		onError(p.lx.Previous.Line, err.Error())
		return false
	}

	return !p.hasErrors && !lx.HasErrors
}

// emitImplicitReturn appends a 'return null' epilogue to the current
// context's Function. Every compiled Function ends with one: besides
// giving a body with no explicit return a well-defined result, it
// guarantees at least one real instruction follows the last statement, so
// a forward jump that lands "at the end" (the common case for the last
// if/while in a function) always targets a live instruction rather than
// one-past-the-end of the code buffer, per spec §8 invariant 7. See
// DESIGN.md.
func (c *Compiler) emitImplicitReturn() {
	c.emitOp(opcode.PUSH_NULL)
	c.emitOp(opcode.RETURN)
}

// compileDeclaration is the top-level grammar production: a program is a
// sequence of {import, native def, def, statement}, with import required
// to precede every other statement (spec §4.3; enforced here rather than
// left as the reference's own "TODO: implementer should enforce" note).
func (c *Compiler) compileDeclaration() {
	if c.p.match(lexer.Import) {
		if c.seenNonImport {
			c.p.errorAtPrevious("'import' must precede any other statement")
		}
		c.compileImport()
		return
	}
	c.seenNonImport = true

	switch {
	case c.p.match(lexer.Native):
		c.compileFunctionDecl(true)
	case c.p.match(lexer.Def):
		c.compileFunctionDecl(false)
	default:
		c.compileStatement()
	}
}

// compileImport parses 'import NAME' and its terminator. The named module
// is neither resolved nor loaded: package loader compiles only the single
// path it is given, and the compiler only validates grammar and placement.
func (c *Compiler) compileImport() {
	c.p.matchLine()
	c.p.consume(lexer.Name, "Expected a module name after 'import'.")
	c.p.consumeEndStatement()
}

// compileFunctionDecl parses 'def NAME ( params ) <body> end' or
// 'native NAME ( params )', per spec §4.3.
func (c *Compiler) compileFunctionDecl(isNative bool) {
	c.p.matchLine()
	c.p.consume(lexer.Name, "Expected a function name.")
	name := c.p.lx.Previous.Text

	fn := object.NewFunction(c.h, c.script, name, 0, isNative)
	if _, err := c.script.AddFunction(c.h, fn); err != nil {
		c.p.errorAtPrevious(err.Error())
	}

	outer := c.cur
	c.cur = newFuncState(fn)
	c.cur.scopeDepth++ // parameter scope

	c.p.consume(lexer.LParen, "Expected '(' after function name.")
	arity := 0
	for c.p.match(lexer.Name) {
		pname := c.p.lx.Previous.Text
		pline := c.p.lx.Previous.Line
		if c.hasLocalInCurrentScope(pname) {
			c.p.errorAtPrevious("multiple definition of a parameter")
		} else if _, ok := c.addLocal(pname, pline); ok {
			arity++
		}
		c.p.match(lexer.Comma)
	}
	c.p.consume(lexer.RParen, "Expected ')' after parameters.")
	c.p.consumeEndStatement()
	fn.Arity = arity

	if isNative {
		c.cur.scopeDepth--
		c.cur = outer
		return
	}

	c.compileBlockBody(false)
	c.emitImplicitReturn()
	c.p.consume(lexer.End, "Expected 'end' to close a function body.")
	c.p.consumeEndStatement()

	c.cur.scopeDepth--
	c.cur = outer
}

// compileBlockBody compiles statements until 'end'/EOF (or, for an if-arm
// body, until 'elif'/'else' too), entering and exiting one scope level
// around them. It does not itself consume the closing token — the caller
// does, since what follows (another arm, or a bare 'end') depends on
// grammar context the caller already knows.
func (c *Compiler) compileBlockBody(ifBody bool) {
	c.enterBlock()
	for {
		c.p.matchLine()
		k := c.p.peek()
		if k == lexer.End || k == lexer.EOF || (ifBody && (k == lexer.Elif || k == lexer.Else)) {
			break
		}
		c.compileStatement()
	}
	c.exitBlock()
}

func (c *Compiler) compileStatement() {
	switch {
	case c.p.match(lexer.Break):
		c.compileBreak()
	case c.p.match(lexer.Continue):
		c.compileContinue()
	case c.p.match(lexer.Return):
		c.compileReturn()
	case c.p.match(lexer.If):
		c.compileIf()
	case c.p.match(lexer.While):
		c.compileWhile()
	case c.p.match(lexer.For):
		c.compileFor()
	default:
		c.parseExpression()
		c.emitOp(opcode.POP)
		c.p.consumeEndStatement()
	}
}

func (c *Compiler) compileBreak() {
	if c.cur.loop == nil {
		c.p.errorAtPrevious("Cannot use 'break' outside a loop.")
		c.p.consumeEndStatement()
		return
	}
	if len(c.cur.loop.patches) >= maxBreakPatch {
		c.p.errorAtPrevious("too many break statements (max %d) in one loop", maxBreakPatch)
	} else {
		addr := c.emitJump(opcode.JUMP)
		c.cur.loop.patches = append(c.cur.loop.patches, addr)
	}
	c.p.consumeEndStatement()
}

func (c *Compiler) compileContinue() {
	if c.cur.loop == nil {
		c.p.errorAtPrevious("Cannot use 'continue' outside a loop.")
		c.p.consumeEndStatement()
		return
	}
	c.emitOpU16(opcode.JUMP, c.cur.loop.start)
	c.p.consumeEndStatement()
}

func (c *Compiler) compileReturn() {
	if c.cur.scopeDepth == -1 {
		c.p.errorAtPrevious("Invalid 'return' outside a function.")
		c.p.consumeEndStatement()
		return
	}
	switch c.p.peek() {
	case lexer.Semicolon, lexer.Line, lexer.EOF:
		c.emitOp(opcode.PUSH_NULL)
	default:
		c.parseExpression()
	}
	c.emitOp(opcode.RETURN)
	c.p.consumeEndStatement()
}

// compileIf implements the REDESIGN FLAG spec §4.3/§9 calls out explicitly:
// the reference never jumps a taken arm past the remaining ones, so every
// arm after the first would fall through and execute too. Here every taken
// arm ends with an unconditional forward JUMP, collected and patched to
// land just past the whole if/elif.../else chain once it is fully compiled.
func (c *Compiler) compileIf() {
	var exitPatches []int

	c.parseExpression()
	notPatch := c.emitJump(opcode.JUMP_IF_NOT)
	c.p.consumeStartBlock()
	c.compileBlockBody(true)
	exitPatches = append(exitPatches, c.emitJump(opcode.JUMP))
	c.patchJump(notPatch)

	for c.p.match(lexer.Elif) {
		c.parseExpression()
		notPatch = c.emitJump(opcode.JUMP_IF_NOT)
		c.p.consumeStartBlock()
		c.compileBlockBody(true)
		exitPatches = append(exitPatches, c.emitJump(opcode.JUMP))
		c.patchJump(notPatch)
	}

	if c.p.match(lexer.Else) {
		c.compileBlockBody(false)
	}

	for _, addr := range exitPatches {
		c.patchJump(addr)
	}

	c.p.consume(lexer.End, "Expected 'end' to close 'if'.")
	c.p.consumeEndStatement()
}

func (c *Compiler) compileWhile() {
	loop := &loopState{start: c.cur.fn.Code.Len(), outer: c.cur.loop}
	c.cur.loop = loop

	c.parseExpression()
	notPatch := c.emitJump(opcode.JUMP_IF_NOT)

	c.p.consumeStartBlock()
	c.compileBlockBody(false)

	c.emitOpU16(opcode.JUMP, loop.start)
	c.patchJump(notPatch)
	for _, addr := range loop.patches {
		c.patchJump(addr)
	}

	c.cur.loop = loop.outer

	c.p.consume(lexer.End, "Expected 'end' to close 'while'.")
	c.p.consumeEndStatement()
}

// compileFor reports the reserved-but-unspecified grammar as a parse
// error and resynchronises to the next line, per spec's Open Question:
// "for: declared as a keyword and reserved... leave unimplemented until
// the grammar is decided upstream."
func (c *Compiler) compileFor() {
	c.p.errorAtPrevious("'for' is not yet implemented")
	for k := c.p.peek(); k != lexer.Line && k != lexer.EOF && k != lexer.Semicolon; k = c.p.peek() {
		c.p.advance()
	}
	c.p.consumeEndStatement()
}
