package compiler

import "github.com/jcorbin/miniscript/lexer"

// parselet parses either a prefix or infix expression form, starting from
// the just-consumed token in lx.Previous. canAssign is threaded through so
// only a context at or below ASSIGNMENT precedence may consume '=' and the
// compound-assignment operators, per spec §4.3.
type parselet func(c *Compiler, canAssign bool)

// rule is one entry of the Pratt lookup table: {prefix, infix, precedence}.
//
// Assignment ('=', '+=', '-=', '*=', '/=') has no generic infix entry here
// even though the precedence table lists it at precAssignment: converting
// an already-compiled GET into a SET is not expressible as a generic infix
// op over two already-evaluated stack values, so (following the standard
// Pratt idiom, e.g. clox's namedVariable) the target parselets — exprName,
// exprAttrib, exprSubscript — recognise and consume the assignment token
// themselves, inline, before the generic infix loop ever sees it. See
// DESIGN.md.
type rule struct {
	prefix parselet
	infix  parselet
	prec   precedence
}

var rules map[lexer.Kind]rule

func init() {
	rules = map[lexer.Kind]rule{
		lexer.Null:   {prefix: exprLiteral},
		lexer.True:   {prefix: exprLiteral},
		lexer.False:  {prefix: exprLiteral},
		lexer.Number: {prefix: exprLiteral},
		lexer.String: {prefix: exprLiteral},

		lexer.BoolType:   {prefix: exprLiteral},
		lexer.NumType:    {prefix: exprLiteral},
		lexer.StringType: {prefix: exprLiteral},
		lexer.ArrayType:  {prefix: exprLiteral},
		lexer.MapType:    {prefix: exprLiteral},
		lexer.RangeType:  {prefix: exprLiteral},
		lexer.FuncType:   {prefix: exprLiteral},
		lexer.ObjType:    {prefix: exprLiteral},

		lexer.Name: {prefix: exprName},
		// self resolves exactly like any other identifier; the calling
		// convention that binds it to a receiver is the (out-of-scope)
		// interpreter's concern, not the front end's. See DESIGN.md.
		lexer.Self: {prefix: exprName},

		lexer.LParen:   {prefix: exprGrouping, infix: exprCall, prec: precCall},
		lexer.LBracket: {prefix: exprArray, infix: exprSubscript, prec: precSubscript},
		lexer.LBrace:   {prefix: exprMap},
		lexer.Dot:      {infix: exprAttrib, prec: precAttrib},

		lexer.Minus: {prefix: exprUnary, infix: exprBinary, prec: precTerm},
		lexer.Tilde: {prefix: exprUnary},
		lexer.Not:   {prefix: exprUnary},

		lexer.Plus:    {infix: exprBinary, prec: precTerm},
		lexer.Star:    {infix: exprBinary, prec: precFactor},
		lexer.FSlash:  {infix: exprBinary, prec: precFactor},
		lexer.Percent: {infix: exprBinary, prec: precFactor},
		lexer.DotDot:  {infix: exprBinary, prec: precRange},

		lexer.Amp:    {infix: exprBinary, prec: precBitwiseAnd},
		lexer.Pipe:   {infix: exprBinary, prec: precBitwiseOr},
		lexer.Caret:  {infix: exprBinary, prec: precBitwiseXor},
		lexer.SLeft:  {infix: exprBinary, prec: precBitwiseShift},
		lexer.SRight: {infix: exprBinary, prec: precBitwiseShift},

		lexer.Gt:   {infix: exprBinary, prec: precComparison},
		lexer.Lt:   {infix: exprBinary, prec: precComparison},
		lexer.GtEq: {infix: exprBinary, prec: precComparison},
		lexer.LtEq: {infix: exprBinary, prec: precComparison},

		lexer.EqEq:  {infix: exprBinary, prec: precEquality},
		lexer.NotEq: {infix: exprBinary, prec: precEquality},

		lexer.Is: {infix: exprBinary, prec: precIs},
		lexer.In: {infix: exprBinary, prec: precIn},

		lexer.And: {infix: exprBinary, prec: precLogicalAnd},
		lexer.Or:  {infix: exprBinary, prec: precLogicalOr},
	}
}
