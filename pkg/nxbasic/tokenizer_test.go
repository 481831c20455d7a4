package nxbasic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(t *Tokenizer) []TokenType {
	types := make([]TokenType, len(t.Tokens))
	for i, tok := range t.Tokens {
		types[i] = tok.Type
	}
	return types
}

func TestTokenize(t *testing.T) {
	tok, err := Tokenize("A=$FF:print \"Hi\" 'comment\nLBL: GOTO LBL")
	require.Equal(t, ErrorNone, err.Code)
	defer tok.Free()

	assert.Equal(t, []TokenType{
		TokenIdentifier, TokenEq, TokenFloat, TokenColon, TokenPRINT, TokenString, TokenEol,
		TokenLabel, TokenGOTO, TokenIdentifier, TokenEol, TokenUndefined,
	}, tokenTypes(tok))

	assert.Equal(t, float32(255), tok.Tokens[2].Float)
	assert.Equal(t, "Hi", tok.Tokens[5].Str.String())
	assert.Equal(t, []string{"A", "LBL"}, tok.Symbols)
	assert.Equal(t, tok.Tokens[7].Symbol, tok.Tokens[9].Symbol)

	target, ok := tok.Label(tok.Tokens[7].Symbol)
	require.True(t, ok)
	assert.Equal(t, 8, target)
	for _, tt := range tok.Tokens {
		assert.Equal(t, -1, tt.Jump)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		source string
		want   float32
	}{
		{"1", 1},
		{"1.25", 1.25},
		{".5", 0.5},
		{"$1F", 31},
		{"$ff", 255},
		{"%101", 5},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tok, err := Tokenize(tt.source)
			require.Equal(t, ErrorNone, err.Code)
			require.Equal(t, TokenFloat, tok.Tokens[0].Type)
			assert.Equal(t, tt.want, tok.Tokens[0].Float)
		})
	}
}

func TestTokenizeIdentifiers(t *testing.T) {
	tok, err := Tokenize("PRINTX=1:TAPS=2:N$=\"\":CELL.C(1,2)")
	require.Equal(t, ErrorNone, err.Code)
	defer tok.Free()

	assert.Equal(t, TokenIdentifier, tok.Tokens[0].Type)
	assert.Equal(t, TokenIdentifier, tok.Tokens[4].Type)
	assert.Equal(t, TokenStringIdentifier, tok.Tokens[8].Type)
	assert.Equal(t, TokenCELLC, tok.Tokens[12].Type)
	assert.Equal(t, []string{"PRINTX", "TAPS", "N$"}, tok.Symbols)
}

func TestTokenizeStopsAtRomEntries(t *testing.T) {
	tok, err := Tokenize("PRINT 1\n#1:DATA\n00 01\n")
	require.Equal(t, ErrorNone, err.Code)
	assert.Equal(t, []TokenType{TokenPRINT, TokenFloat, TokenEol, TokenEol, TokenUndefined}, tokenTypes(tok))
}

func TestTokenizeComments(t *testing.T) {
	tok, err := Tokenize("REM anything: GOTO X\r\nEND")
	require.Equal(t, ErrorNone, err.Code)
	assert.Equal(t, []TokenType{TokenEol, TokenEND, TokenEol, TokenUndefined}, tokenTypes(tok))
	assert.Equal(t, 22, tok.Tokens[1].SourcePosition)
}

func TestTokenizeSubs(t *testing.T) {
	tok, err := Tokenize("CALL FOO\nSUB FOO\nEND SUB")
	require.Equal(t, ErrorNone, err.Code)

	require.Len(t, tok.Subs, 1)
	at, ok := tok.Sub(tok.Subs[0].Symbol)
	require.True(t, ok)
	assert.Equal(t, TokenSUB, tok.Tokens[at].Type)
	assert.Equal(t, 3, at)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		code     ErrorCode
		position int
	}{
		{"unterminated string", "A$=\"abc\nB=1", ErrorUnterminatedString, 7},
		{"non ascii string", "A$=\"\xc3\xa9\"", ErrorUnexpectedCharacter, 4},
		{"unexpected character", "A=@", ErrorUnexpectedCharacter, 2},
		{"empty hex number", "A=$", ErrorUnexpectedCharacter, 3},
		{"reserved keyword", "DEF X", ErrorReservedKeyword, 0},
		{"duplicate label", "X=1\nL:\nL:", ErrorLabelAlreadyDefined, 7},
		{"duplicate sub", "SUB A\nEND SUB\nSUB A", ErrorSubAlreadyDefined, 18},
		{"long name", strings.Repeat("X", SymbolNameSize) + "=1", ErrorSymbolNameTooLong, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, err := Tokenize(tt.source)
			assert.Nil(t, tok)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.position, err.SourcePosition)
		})
	}
}

func TestTokenizeFreeReleasesStrings(t *testing.T) {
	before := LiveStrings()
	tok, err := Tokenize("A$=\"ONE\"+\"TWO\"")
	require.Equal(t, ErrorNone, err.Code)
	assert.Equal(t, before+2, LiveStrings())

	tok.Free()
	assert.Equal(t, before, LiveStrings())
	assert.Empty(t, tok.Tokens)

	_, err = Tokenize("A$=\"ONE\"+\"TWO")
	assert.Equal(t, ErrorUnterminatedString, err.Code)
	assert.Equal(t, before, LiveStrings())
}
