package shading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kinds strips the BOF/EOF brackets and returns the remaining token
// kinds.
func kinds(t *testing.T, source string) []TokenKind {
	t.Helper()
	tokens, err := Lex(source, "test.shd", true)
	require.NoError(t, err)

	require.Equal(t, TokenBeginningOfFile, tokens[0].Kind)
	require.Equal(t, TokenEndOfFile, tokens[len(tokens)-1].Kind)

	var out []TokenKind
	for _, tok := range tokens[1 : len(tokens)-1] {
		out = append(out, tok.Kind)
	}
	return out
}

func lexemes(t *testing.T, source string) []string {
	t.Helper()
	tokens, err := Lex(source, "test.shd", true)
	require.NoError(t, err)

	var out []string
	for _, tok := range tokens[1 : len(tokens)-1] {
		out = append(out, tok.Lexeme)
	}
	return out
}

func TestLexBasicTokens(t *testing.T) {
	tests := []struct {
		source string
		want   []TokenKind
	}{
		{"abc", []TokenKind{TokenIdentifier}},
		{"abc123", []TokenKind{TokenIdentifier}},
		{"_private", []TokenKind{TokenIdentifier}},
		{"struct", []TokenKind{TokenKeyword}},
		{"include", []TokenKind{TokenKeyword}},
		{"42", []TokenKind{TokenIntLiteral}},
		{"( ) { } [ ]", []TokenKind{
			TokenLeftParen, TokenRightParen,
			TokenLeftBrace, TokenRightBrace,
			TokenLeftBracket, TokenRightBracket,
		}},
		{"a + b", []TokenKind{TokenIdentifier, TokenPlus, TokenIdentifier}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kinds(t, tt.source), "source: %q", tt.source)
	}
}

func TestLexMultiCharSymbols(t *testing.T) {
	tests := []struct {
		source string
		want   []TokenKind
	}{
		{"<<", []TokenKind{TokenLeftShift}},
		{">>", []TokenKind{TokenRightShift}},
		{"<=", []TokenKind{TokenLessEqual}},
		{">=", []TokenKind{TokenGreaterEqual}},
		{"==", []TokenKind{TokenLogicalEqual}},
		{"!=", []TokenKind{TokenLogicalNotEqual}},
		{"&&", []TokenKind{TokenLogicalAnd}},
		{"||", []TokenKind{TokenLogicalOr}},
		{"+=", []TokenKind{TokenCompoundAdd}},
		{"-=", []TokenKind{TokenCompoundSubtract}},
		{"*=", []TokenKind{TokenCompoundMultiply}},
		{"/=", []TokenKind{TokenCompoundDivide}},
		{"..", []TokenKind{TokenDotDot}},
		{"->", []TokenKind{TokenRightArrow}},

		// Merging requires textual adjacency.
		{"< <", []TokenKind{TokenLess, TokenLess}},
		{"< =", []TokenKind{TokenLess, TokenEqual}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, kinds(t, tt.source), "source: %q", tt.source)
	}
}

func TestLexNumericLiterals(t *testing.T) {
	tests := []struct {
		source     string
		wantKinds  []TokenKind
		wantLexeme string
	}{
		{"1.5", []TokenKind{TokenFloatLiteral}, "1.5"},
		{"0.25", []TokenKind{TokenFloatLiteral}, "0.25"},
		{"34u", []TokenKind{TokenUIntLiteral}, "34u"},
		{"0xFF", []TokenKind{TokenHexNumber}, "0xFF"},
		{"1e5", []TokenKind{TokenScientificNumber}, "1e5"},
		{"2e-3", []TokenKind{TokenScientificNumber}, "2e-3"},
		{"1.5e+2", []TokenKind{TokenScientificNumber}, "1.5e+2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantKinds, kinds(t, tt.source), "source: %q", tt.source)
		assert.Equal(t, []string{tt.wantLexeme}, lexemes(t, tt.source), "source: %q", tt.source)
	}
}

func TestLexRangeIsNotAFloat(t *testing.T) {
	assert.Equal(t,
		[]TokenKind{TokenIntLiteral, TokenDotDot, TokenIntLiteral},
		kinds(t, "1..3"))
}

func TestLexComments(t *testing.T) {
	source := "a // the rest vanishes\nb"
	assert.Equal(t, []string{"a", "b"}, lexemes(t, source))
}

func TestLexEmptySource(t *testing.T) {
	_, err := Lex("", "test.shd", true)
	require.Error(t, err)

	diag, ok := err.(*Diagnostic)
	require.True(t, ok)
	assert.Equal(t, LexError, diag.Kind)
}

func TestLexMalformedHex(t *testing.T) {
	_, err := Lex("0x", "test.shd", true)
	require.Error(t, err)

	diag, ok := err.(*Diagnostic)
	require.True(t, ok)
	assert.Equal(t, LexError, diag.Kind)
}

func TestLexLocations(t *testing.T) {
	tokens, err := Lex("a\n  b", "test.shd", true)
	require.NoError(t, err)

	a := tokens[1]
	b := tokens[2]
	assert.Equal(t, 1, a.Location.Line)
	assert.Equal(t, 1, a.Location.Column)
	assert.Equal(t, 2, b.Location.Line)
	assert.Equal(t, 3, b.Location.Column)
	assert.Equal(t, "test.shd", b.Location.File)
}

func TestLexRawMode(t *testing.T) {
	// Without post-processing, multi-character symbols stay split.
	tokens, err := Lex("a <= 1.5", "test.shd", false)
	require.NoError(t, err)

	var got []TokenKind
	for _, tok := range tokens[1 : len(tokens)-1] {
		got = append(got, tok.Kind)
	}
	assert.Equal(t, []TokenKind{
		TokenIdentifier, TokenLess, TokenEqual,
		TokenIntLiteral, TokenDot, TokenIntLiteral,
	}, got)
}
