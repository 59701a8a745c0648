package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/miniscript/heap"
	"github.com/jcorbin/miniscript/lexer"
	"github.com/jcorbin/miniscript/object"
)

func kinds(t *testing.T, lx *lexer.Lexer, n int) []lexer.Kind {
	t.Helper()
	got := make([]lexer.Kind, 0, n)
	got = append(got, lx.Current.Kind)
	for i := 1; i < n; i++ {
		lx.Advance()
		got = append(got, lx.Current.Kind)
	}
	return got
}

// TestTokenizesAssignmentExpression is spec §8's S1.
func TestTokenizesAssignmentExpression(t *testing.T) {
	h := heap.New()
	lx := lexer.New(h, "a = 1 + 2\n", nil)

	got := kinds(t, lx, 7)
	want := []lexer.Kind{
		lexer.Name, lexer.Eq, lexer.Number, lexer.Plus, lexer.Number,
		lexer.Line, lexer.EOF,
	}
	assert.Equal(t, want, got)
}

func TestNumberTokensCarryValues(t *testing.T) {
	h := heap.New()
	lx := lexer.New(h, "1 + 2\n", nil)

	n1, ok := lx.Current.Value.AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(1), n1)

	lx.Advance() // +
	lx.Advance() // 2
	n2, ok := lx.Current.Value.AsNumber()
	require.True(t, ok)
	assert.Equal(t, float64(2), n2)
}

// TestKeywordPrefixIsStillAName is spec §8's S2: "whilely" must not be
// mistaken for the "while" keyword just because it starts with it.
func TestKeywordPrefixIsStillAName(t *testing.T) {
	h := heap.New()
	lx := lexer.New(h, "whilely", nil)

	assert.Equal(t, lexer.Name, lx.Current.Kind)
	assert.Equal(t, "whilely", lx.Current.Text)
}

// TestStringEscapes is the positive half of spec §8's S3.
func TestStringEscapes(t *testing.T) {
	h := heap.New()
	lx := lexer.New(h, `"a\n"`, nil)

	require.Equal(t, lexer.String, lx.Current.Kind)
	obj, ok := lx.Current.Value.AsObj()
	require.True(t, ok)
	str, ok := obj.(*object.String)
	require.True(t, ok)
	assert.Equal(t, "a\n", str.String())
	assert.Equal(t, 2, str.Len())
}

// TestUnterminatedStringIsLexError is the negative half of spec §8's S3.
func TestUnterminatedStringIsLexError(t *testing.T) {
	h := heap.New()
	var gotLine int
	var gotMsg string
	lx := lexer.New(h, `"abc`, func(line int, msg string) {
		gotLine, gotMsg = line, msg
	})

	assert.True(t, lx.HasErrors)
	assert.Equal(t, "Non terminated string.", gotMsg)
	assert.Equal(t, 1, gotLine)
}

func TestInvalidEscapeIsLexError(t *testing.T) {
	h := heap.New()
	var gotMsg string
	lexer.New(h, `"a\qb"`, func(line int, msg string) {
		gotMsg = msg
	})
	assert.Equal(t, "Error: invalid escape character", gotMsg)
}

func TestCommentRunsToEndOfLine(t *testing.T) {
	h := heap.New()
	lx := lexer.New(h, "1 # trailing comment\n2\n", nil)

	n1, _ := lx.Current.Value.AsNumber()
	assert.Equal(t, float64(1), n1)
	lx.Advance() // LINE
	assert.Equal(t, lexer.Line, lx.Current.Kind)
	lx.Advance() // 2
	n2, _ := lx.Current.Value.AsNumber()
	assert.Equal(t, float64(2), n2)
}

func TestCompositePunctuation(t *testing.T) {
	h := heap.New()
	lx := lexer.New(h, ">= << .. != +=", nil)
	got := kinds(t, lx, 5)
	want := []lexer.Kind{lexer.GtEq, lexer.SLeft, lexer.DotDot, lexer.NotEq, lexer.PlusEq}
	assert.Equal(t, want, got)
}

func TestInvalidCharacterIsLexError(t *testing.T) {
	h := heap.New()
	var gotMsg string
	lx := lexer.New(h, "@", func(line int, msg string) {
		gotMsg = msg
	})
	assert.Equal(t, lexer.Error, lx.Current.Kind)
	assert.Equal(t, "Invalid character @", gotMsg)
}
