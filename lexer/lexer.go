package lexer

import (
	"fmt"
	"strconv"

	"github.com/jcorbin/miniscript/object"
)

// ErrorFunc receives one diagnostic per invalid token, mirroring the
// embedder's COMPILE error-sink callback (spec §6); it is threaded down
// from package loader rather than owned here.
type ErrorFunc func(line int, msg string)

// Lexer holds the three-token window spec §4.2 requires (Previous, Current,
// Next) plus the scan position. Source must already be BOM-stripped
// (package loader's job, not this one's). No NUL terminator is appended or
// expected: this type stops at the end of the string, which serves as the
// EOF sentinel in Go, and a NUL byte outside a string literal is lexed as
// an invalid byte.
type Lexer struct {
	alloc object.Allocator
	src   string
	pos   int
	start int
	line  int

	Previous, Current, Next Token

	HasErrors bool
	onError   ErrorFunc
}

// New constructs a Lexer over source and primes its three-token window,
// mirroring original_source's compileSource: two lexToken calls before any
// parsing begins, since each call shifts the window by exactly one token.
func New(alloc object.Allocator, source string, onError ErrorFunc) *Lexer {
	lx := &Lexer{alloc: alloc, src: source, line: 1, onError: onError}
	lx.Advance()
	lx.Advance()
	return lx
}

// Advance shifts the token window (Previous←Current, Current←Next) and
// lexes a fresh Next, unless Current is already EOF.
func (lx *Lexer) Advance() {
	lx.Previous = lx.Current
	lx.Current = lx.Next
	if lx.Current.Kind == EOF {
		return
	}
	lx.Next = lx.scan()
}

func (lx *Lexer) peek() byte {
	if lx.pos >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos]
}

func (lx *Lexer) eat() byte {
	c := lx.peek()
	lx.pos++
	if c == '\n' {
		lx.line++
	}
	return c
}

func (lx *Lexer) match(c byte) bool {
	if lx.peek() != c {
		return false
	}
	lx.eat()
	return true
}

// tok builds a Token of kind spanning [start, pos). A LINE token's line is
// the line the newline terminated, not the line lexing left off on, per
// original_source's setNextToken: `next.line = current_line - (type==LINE)`.
func (lx *Lexer) tok(kind Kind) Token {
	line := lx.line
	if kind == Line {
		line--
	}
	return Token{Kind: kind, Text: lx.src[lx.start:lx.pos], Line: line}
}

func (lx *Lexer) two(c byte, one, two Kind) Token {
	if lx.match(c) {
		return lx.tok(two)
	}
	return lx.tok(one)
}

func (lx *Lexer) reportError(format string, args ...interface{}) {
	lx.HasErrors = true
	if lx.onError != nil {
		lx.onError(lx.line, fmt.Sprintf(format, args...))
	}
}

// scan lexes exactly one token, skipping whitespace and `#`-introduced
// comments first, per spec §4.2.
func (lx *Lexer) scan() Token {
	for {
		if lx.pos >= len(lx.src) {
			return Token{Kind: EOF, Line: lx.line}
		}
		lx.start = lx.pos
		c := lx.eat()

		switch c {
		case ',':
			return lx.tok(Comma)
		case ':':
			return lx.tok(Colon)
		case ';':
			return lx.tok(Semicolon)
		case '(':
			return lx.tok(LParen)
		case ')':
			return lx.tok(RParen)
		case '[':
			return lx.tok(LBracket)
		case ']':
			return lx.tok(RBracket)
		case '{':
			return lx.tok(LBrace)
		case '}':
			return lx.tok(RBrace)
		case '%':
			return lx.tok(Percent)
		case '~':
			return lx.tok(Tilde)
		case '&':
			return lx.tok(Amp)
		case '|':
			return lx.tok(Pipe)
		case '^':
			return lx.tok(Caret)
		case '\n':
			return lx.tok(Line)

		case '#':
			for lx.peek() != '\n' && lx.peek() != 0 {
				lx.eat()
			}
			continue

		case ' ', '\t', '\r':
			for c2 := lx.peek(); c2 == ' ' || c2 == '\t' || c2 == '\r'; c2 = lx.peek() {
				lx.eat()
			}
			continue

		case '.':
			return lx.two('.', Dot, DotDot)
		case '=':
			return lx.two('=', Eq, EqEq)
		case '!':
			return lx.two('=', Not, NotEq)
		case '+':
			return lx.two('=', Plus, PlusEq)
		case '-':
			return lx.two('=', Minus, MinusEq)
		case '*':
			return lx.two('=', Star, StarEq)
		case '/':
			return lx.two('=', FSlash, DivEq)

		case '>':
			if lx.match('>') {
				return lx.tok(SRight)
			}
			return lx.two('=', Gt, GtEq)
		case '<':
			if lx.match('<') {
				return lx.tok(SLeft)
			}
			return lx.two('=', Lt, LtEq)

		case '"':
			return lx.scanString()

		default:
			if isDigit(c) {
				return lx.scanNumber()
			}
			if isNameStart(c) {
				return lx.scanName()
			}
			return lx.errorToken(c)
		}
	}
}

func (lx *Lexer) errorToken(c byte) Token {
	if c >= 32 && c <= 126 {
		lx.reportError("Invalid character %c", c)
	} else {
		lx.reportError("Invalid byte 0x%x", c)
	}
	return lx.tok(Error)
}

func (lx *Lexer) scanNumber() Token {
	for isDigit(lx.peek()) {
		lx.eat()
	}
	if lx.match('.') {
		for isDigit(lx.peek()) {
			lx.eat()
		}
	}
	text := lx.src[lx.start:lx.pos]
	val, err := strconv.ParseFloat(text, 64)
	if err != nil {
		lx.reportError("Literal is too large (%s)", text)
		val = 0
	}
	t := lx.tok(Number)
	t.Value = object.Number(val)
	return t
}

func (lx *Lexer) scanName() Token {
	for c := lx.peek(); isNameStart(c) || isDigit(c); c = lx.peek() {
		lx.eat()
	}
	text := lx.src[lx.start:lx.pos]
	if kind, ok := lookupKeyword(text); ok {
		return lx.tok(kind)
	}
	return lx.tok(Name)
}

// scanString lexes a `"…"` literal with the five recognised escapes, per
// spec §4.2. An unterminated string is a lex error; original_source backs
// current_char up by one so the sentinel EOF byte is re-read by the
// caller's next scan, which falls out naturally here since pos is simply
// left where it stopped (one past the buffer, which peek() already treats
// as EOF).
func (lx *Lexer) scanString() Token {
	var buf []byte
	for {
		c := lx.eat()
		switch {
		case c == '"':
			t := lx.tok(String)
			str := object.NewString(lx.alloc, buf)
			t.Value = object.FromObj(str)
			return t
		case lx.pos > len(lx.src):
			lx.reportError("Non terminated string.")
			t := lx.tok(String)
			str := object.NewString(lx.alloc, buf)
			t.Value = object.FromObj(str)
			return t
		case c == '\\':
			switch lx.eat() {
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			default:
				lx.reportError("Error: invalid escape character")
			}
		default:
			buf = append(buf, c)
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
