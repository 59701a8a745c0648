package compiler

import (
	"fmt"

	"github.com/jcorbin/miniscript/lexer"
)

// parser wraps a lexer.Lexer with the token-consumption helpers spec §4.3
// names: match, matchLine, consume, consumeEndStatement, consumeStartBlock.
// It is a thin adapter, not a second lexer — everything it does is read the
// three-token window and decide whether to shift it.
type parser struct {
	lx        *lexer.Lexer
	hasErrors bool
	onError   lexer.ErrorFunc
}

func (p *parser) advance() { p.lx.Advance() }

func (p *parser) peek() lexer.Kind { return p.lx.Current.Kind }

func (p *parser) peekNext() lexer.Kind { return p.lx.Next.Kind }

// match skips any LINE tokens, then consumes the current token if it is k.
// LINE is never matchable through match, per spec §4.3.
func (p *parser) match(k lexer.Kind) bool {
	p.matchLine()
	if p.peek() != k {
		return false
	}
	p.advance()
	return true
}

// matchLine consumes one or more LINE tokens, reporting whether it consumed
// any.
func (p *parser) matchLine() bool {
	matched := false
	for p.peek() == lexer.Line {
		p.advance()
		matched = true
	}
	return matched
}

// consume skips lines, advances, and requires the consumed token be k; on
// mismatch it reports msg and, if the token after the one it landed on
// happens to be k, eats that one too to resynchronise, per spec §4.3.
func (p *parser) consume(k lexer.Kind, msg string) {
	p.matchLine()
	p.advance()
	if p.lx.Previous.Kind != k {
		p.errorAtPrevious(msg)
		if p.peek() == k {
			p.advance()
		}
	}
}

// consumeEndStatement requires a ';' (same line) and/or one or more
// newlines, or EOF; absence is a parse error.
func (p *parser) consumeEndStatement() {
	sawSemi := false
	if p.peek() == lexer.Semicolon {
		p.advance()
		sawSemi = true
	}
	if p.matchLine() || p.peek() == lexer.EOF || sawSemi {
		return
	}
	p.errorAtPrevious("Expected a statement terminator.")
}

// consumeStartBlock requires an optional 'do' (same line) and/or newlines;
// absence of both is a parse error. The 'do' check is a raw peek-then-advance
// rather than p.match(lexer.Do): match() calls matchLine() first, which would
// let a 'do' preceded by blank lines count as "same line" — original_source's
// compiler.c's own consumeStartBlock special-cases this for the same reason
// (it cannot use its generic match(), which also unconditionally skips lines
// first).
func (p *parser) consumeStartBlock() {
	hadDo := false
	if p.peek() == lexer.Do {
		p.advance()
		hadDo = true
	}
	hadLine := p.matchLine()
	if !hadDo && !hadLine && p.peek() != lexer.EOF {
		p.errorAtPrevious("Expected 'do' or a newline to start a block.")
	}
}

// errorAtPrevious reports msg at previous's line, unless previous is itself
// an error token — spec §7's "subsequent parseError calls that see
// previous.type == TK_ERROR suppress duplicate messages".
func (p *parser) errorAtPrevious(format string, args ...interface{}) {
	if p.lx.Previous.Kind == lexer.Error {
		return
	}
	p.hasErrors = true
	if p.onError != nil {
		p.onError(p.lx.Previous.Line, fmt.Sprintf(format, args...))
	}
}
