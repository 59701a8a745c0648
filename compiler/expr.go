package compiler

import (
	"github.com/jcorbin/miniscript/lexer"
	"github.com/jcorbin/miniscript/object"
	"github.com/jcorbin/miniscript/opcode"
)

// parseExpression compiles one expression, leaving exactly one value on
// the operand stack, per spec §4.3/§4.4's emit discipline.
func (c *Compiler) parseExpression() {
	c.parsePrecedence(precLowest)
}

// parsePrecedence is the Pratt driver: advance to a token, run its prefix
// parselet (error if none), then keep consuming infix operators whose
// precedence is at least prec, per spec §4.3.
func (c *Compiler) parsePrecedence(prec precedence) {
	c.p.advance()
	kind := c.p.lx.Previous.Kind
	r, ok := rules[kind]
	if !ok || r.prefix == nil {
		c.p.errorAtPrevious("Expected an expression.")
		return
	}
	canAssign := prec <= precAssignment
	r.prefix(c, canAssign)

	for {
		kind = c.p.peek()
		r, ok = rules[kind]
		if !ok || r.infix == nil || r.prec < prec {
			break
		}
		c.p.advance()
		r.infix(c, canAssign)
	}
}

// assignOp discriminates '=' from the compound-assignment operators.
type assignOp int

const (
	assignSet assignOp = iota
	assignAdd
	assignSub
	assignMul
	assignDiv
)

func matchAssignOp(p *parser) (assignOp, bool) {
	switch {
	case p.match(lexer.Eq):
		return assignSet, true
	case p.match(lexer.PlusEq):
		return assignAdd, true
	case p.match(lexer.MinusEq):
		return assignSub, true
	case p.match(lexer.StarEq):
		return assignMul, true
	case p.match(lexer.DivEq):
		return assignDiv, true
	}
	return 0, false
}

func compoundOpcode(op assignOp) opcode.Code {
	switch op {
	case assignAdd:
		return opcode.ADD
	case assignSub:
		return opcode.SUBTRACT
	case assignMul:
		return opcode.MULTIPLY
	case assignDiv:
		return opcode.DIVIDE
	default:
		panic("compiler: compoundOpcode called with assignSet")
	}
}

// exprLiteral compiles null/true/false/number/string/type-name literals.
// null gets the dedicated PUSH_NULL opcode; everything else pools its
// Value (or, for a type name, an interned String naming it — the actual
// type-object representation is the out-of-scope interpreter's concern,
// see DESIGN.md) into the constant table.
func exprLiteral(c *Compiler, canAssign bool) {
	tok := c.p.lx.Previous
	switch tok.Kind {
	case lexer.Null:
		c.emitOp(opcode.PUSH_NULL)
	case lexer.True:
		c.emitConstant(object.Bool(true))
	case lexer.False:
		c.emitConstant(object.Bool(false))
	case lexer.Number, lexer.String:
		c.emitConstant(tok.Value)
	case lexer.BoolType, lexer.NumType, lexer.StringType, lexer.ArrayType,
		lexer.MapType, lexer.RangeType, lexer.FuncType, lexer.ObjType:
		c.emitConstant(object.FromObj(object.NewStringFromString(c.h, tok.Text)))
	}
}

// exprName resolves an identifier reference, or — if canAssign and the
// next token is an assignment operator — compiles an assignment to it.
func exprName(c *Compiler, canAssign bool) {
	name := c.p.lx.Previous.Text
	line := c.p.lx.Previous.Line

	if canAssign {
		if op, ok := matchAssignOp(c.p); ok {
			if op != assignSet {
				c.loadName(name, line)
			}
			c.parsePrecedence(precAssignment + 1)
			if op != assignSet {
				c.emitOp(compoundOpcode(op))
			}
			c.storeName(name, line)
			return
		}
	}
	c.loadName(name, line)
}

// loadName emits a LOAD_LOCAL or LOAD_GLOBAL for name, depending on the
// current context's scope depth, per spec §4.3.
func (c *Compiler) loadName(name string, line int) {
	if c.cur.scopeDepth >= 0 {
		if idx, ok := c.resolveLocal(name); ok {
			c.emitOpU8(opcode.LOAD_LOCAL, idx)
			return
		}
	}
	idx, err := c.script.Global(c.h, name)
	if err != nil {
		c.p.errorAtPrevious(err.Error())
		return
	}
	c.emitOpU16(opcode.LOAD_GLOBAL, idx)
}

// storeName emits a STORE_LOCAL or STORE_GLOBAL for name. Inside a
// function, assigning a name not already a local declares one (MiniScript's
// usual "assignment creates a local" rule); at top level (scope depth -1)
// every assignment is a global, per spec §4.3's scope_depth semantics.
func (c *Compiler) storeName(name string, line int) {
	if c.cur.scopeDepth >= 0 {
		if idx, ok := c.resolveLocal(name); ok {
			c.emitOpU8(opcode.STORE_LOCAL, idx)
			return
		}
		if idx, ok := c.addLocal(name, line); ok {
			c.emitOpU8(opcode.STORE_LOCAL, idx)
		}
		return
	}
	idx, err := c.script.Global(c.h, name)
	if err != nil {
		c.p.errorAtPrevious(err.Error())
		return
	}
	c.emitOpU16(opcode.STORE_GLOBAL, idx)
}

// exprGrouping compiles a parenthesised sub-expression.
func exprGrouping(c *Compiler, canAssign bool) {
	c.p.matchLine()
	c.parseExpression()
	c.p.matchLine()
	c.p.consume(lexer.RParen, "Expected ')' after expression.")
}

// exprUnary compiles a prefix '-', '~' or 'not', binding at precUnary+1 so
// it captures only its immediate operand.
func exprUnary(c *Compiler, canAssign bool) {
	kind := c.p.lx.Previous.Kind
	c.parsePrecedence(precUnary + 1)
	switch kind {
	case lexer.Minus:
		c.emitOp(opcode.NEGATIVE)
	case lexer.Tilde:
		c.emitOp(opcode.BIT_NOT)
	case lexer.Not:
		c.emitOp(opcode.NOT)
	}
}

// exprBinary compiles a left-associative binary operator, re-parsing its
// right-hand side at prec+1, per spec §4.3, after permitting a line wrap
// immediately following the operator.
func exprBinary(c *Compiler, canAssign bool) {
	kind := c.p.lx.Previous.Kind
	opRule := rules[kind]
	c.p.matchLine()
	c.parsePrecedence(opRule.prec + 1)
	switch kind {
	case lexer.Plus:
		c.emitOp(opcode.ADD)
	case lexer.Minus:
		c.emitOp(opcode.SUBTRACT)
	case lexer.Star:
		c.emitOp(opcode.MULTIPLY)
	case lexer.FSlash:
		c.emitOp(opcode.DIVIDE)
	case lexer.Percent:
		c.emitOp(opcode.MOD)
	case lexer.DotDot:
		c.emitOp(opcode.RANGE)
	case lexer.Amp:
		c.emitOp(opcode.BIT_AND)
	case lexer.Pipe:
		c.emitOp(opcode.BIT_OR)
	case lexer.Caret:
		c.emitOp(opcode.BIT_XOR)
	case lexer.SLeft:
		c.emitOp(opcode.BIT_LSHIFT)
	case lexer.SRight:
		c.emitOp(opcode.BIT_RSHIFT)
	case lexer.Gt:
		c.emitOp(opcode.GT)
	case lexer.Lt:
		c.emitOp(opcode.LT)
	case lexer.GtEq:
		c.emitOp(opcode.GTEQ)
	case lexer.LtEq:
		c.emitOp(opcode.LTEQ)
	case lexer.EqEq:
		c.emitOp(opcode.EQEQ)
	case lexer.NotEq:
		c.emitOp(opcode.NOTEQ)
	case lexer.Is:
		c.emitOp(opcode.IS)
	case lexer.In:
		c.emitOp(opcode.IN)
	case lexer.And:
		c.emitOp(opcode.AND)
	case lexer.Or:
		c.emitOp(opcode.OR)
	}
}

// exprArray compiles a '[' expr (',' expr)* ']' list literal.
func exprArray(c *Compiler, canAssign bool) {
	count := 0
	c.p.matchLine()
	if c.p.peek() != lexer.RBracket {
		for {
			c.p.matchLine()
			c.parseExpression()
			count++
			c.p.matchLine()
			if !c.p.match(lexer.Comma) {
				break
			}
		}
	}
	c.p.matchLine()
	c.p.consume(lexer.RBracket, "Expected ']' after list elements.")
	c.emitOpU16(opcode.BUILD_LIST, count)
}

// exprMap compiles a '{' expr ':' expr (',' expr ':' expr)* '}' map literal.
func exprMap(c *Compiler, canAssign bool) {
	pairs := 0
	c.p.matchLine()
	if c.p.peek() != lexer.RBrace {
		for {
			c.p.matchLine()
			c.parseExpression()
			c.p.matchLine()
			c.p.consume(lexer.Colon, "Expected ':' after map key.")
			c.p.matchLine()
			c.parseExpression()
			pairs++
			c.p.matchLine()
			if !c.p.match(lexer.Comma) {
				break
			}
		}
	}
	c.p.matchLine()
	c.p.consume(lexer.RBrace, "Expected '}' after map entries.")
	c.emitOpU16(opcode.BUILD_MAP, pairs)
}

// exprCall compiles a '(' arg (',' arg)* ')' call suffix. The callee is
// already on the stack from the preceding primary expression.
func exprCall(c *Compiler, canAssign bool) {
	argc := 0
	c.p.matchLine()
	if c.p.peek() != lexer.RParen {
		for {
			c.p.matchLine()
			c.parseExpression()
			argc++
			if argc > 255 {
				c.p.errorAtPrevious("too many call arguments (max 255)")
			}
			c.p.matchLine()
			if !c.p.match(lexer.Comma) {
				break
			}
		}
	}
	c.p.matchLine()
	c.p.consume(lexer.RParen, "Expected ')' after call arguments.")
	c.emitOpU8(opcode.CALL, argc)
}

// exprAttrib compiles a '.' NAME suffix, or an assignment to one (plain '='
// only — compound assignment on an attribute target is rejected, since
// doing it without a DUP opcode would require evaluating the object
// expression twice; see DESIGN.md).
func exprAttrib(c *Compiler, canAssign bool) {
	c.p.matchLine()
	c.p.consume(lexer.Name, "Expected an attribute name after '.'.")
	name := c.p.lx.Previous.Text
	idx, _ := c.script.Names.Add(c.h, name)

	if canAssign {
		if op, ok := matchAssignOp(c.p); ok {
			if op != assignSet {
				c.p.errorAtPrevious("compound assignment is not supported on an attribute target")
			}
			c.parsePrecedence(precAssignment + 1)
			c.emitOpU16(opcode.SET_ATTRIB, idx)
			return
		}
	}
	c.emitOpU16(opcode.GET_ATTRIB, idx)
}

// exprSubscript compiles a '[' expr ']' suffix, or an assignment to one
// (plain '=' only, for the same reason as exprAttrib).
func exprSubscript(c *Compiler, canAssign bool) {
	c.p.matchLine()
	c.parseExpression()
	c.p.matchLine()
	c.p.consume(lexer.RBracket, "Expected ']' after subscript.")

	if canAssign {
		if op, ok := matchAssignOp(c.p); ok {
			if op != assignSet {
				c.p.errorAtPrevious("compound assignment is not supported on a subscript target")
			}
			c.parsePrecedence(precAssignment + 1)
			c.emitOp(opcode.SET_SUBSCRIPT)
			return
		}
	}
	c.emitOp(opcode.GET_SUBSCRIPT)
}
