package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/minic/lang/scanner"
	"github.com/mna/minic/lang/token"
)

func tokens(t *testing.T, src string) []*token.Token {
	t.Helper()
	head := scanner.Lex("test.c", []byte(src+"\x00"))
	var toks []*token.Token
	for tok := head; tok != nil; tok = tok.Next {
		toks = append(toks, tok)
	}
	return toks
}

func TestScanEndsWithSingleEOF(t *testing.T) {
	toks := tokens(t, "int main() { return 0; }\n")
	require.NotEmpty(t, toks)
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
	for _, tk := range toks[:len(toks)-1] {
		assert.NotEqual(t, token.EOF, tk.Kind)
	}
}

func TestScanKeywordReclassification(t *testing.T) {
	toks := tokens(t, "int return static\x00")
	assert.Equal(t, token.KEYWORD, toks[0].Kind)
	assert.Equal(t, token.KEYWORD, toks[1].Kind)
	assert.Equal(t, token.KEYWORD, toks[2].Kind)
}

func TestScanIdentVsKeyword(t *testing.T) {
	toks := tokens(t, "returner\x00")
	assert.Equal(t, token.IDENT, toks[0].Kind)
	assert.Equal(t, "returner", toks[0].Text)
}

func TestScanNumber(t *testing.T) {
	toks := tokens(t, "12345\x00")
	require.Equal(t, token.NUMBER, toks[0].Kind)
	assert.EqualValues(t, 12345, toks[0].IntValue)
}

func TestScanTwoCharPunctuatorsPreferred(t *testing.T) {
	toks := tokens(t, "a==b!=c<=d>=e&&f||g\x00")
	var puncts []string
	for _, tk := range toks {
		if tk.Kind == token.PUNCT {
			puncts = append(puncts, tk.Text)
		}
	}
	assert.Equal(t, []string{"==", "!=", "<=", ">=", "&&", "||"}, puncts)
}

func TestScanStringEscapes(t *testing.T) {
	toks := tokens(t, `"a\nb\tc\x41\101"` + "\x00")
	require.Equal(t, token.STRING, toks[0].Kind)
	want := []byte("a\nb\tcAA\x00")
	assert.Equal(t, want, toks[0].StrValue)
}

func TestScanLineNumbers(t *testing.T) {
	toks := tokens(t, "int a;\nint b;\n")
	var lines []int
	for _, tk := range toks {
		if tk.Kind != token.EOF {
			lines = append(lines, tk.Line)
		}
	}
	assert.Equal(t, []int{1, 1, 1, 2, 2, 2}, lines)
}

func TestScanCommentsSkipped(t *testing.T) {
	toks := tokens(t, "int /* comment */ a; // trailing\n")
	assert.Equal(t, "int", toks[0].Text)
	assert.Equal(t, "a", toks[1].Text)
}

func TestScanUnterminatedBlockCommentPanics(t *testing.T) {
	assert.Panics(t, func() {
		tokens(t, "/* never closed")
	})
}

func TestScanCannotTokenizePanics(t *testing.T) {
	assert.Panics(t, func() {
		tokens(t, "@")
	})
}
