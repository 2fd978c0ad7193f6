package lib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func requireTok(t *testing.T, actual Token, typ TokenType, lexeme string, line int, col int) {
	require.Equal(t, typ, actual.Type, "token type")
	require.Equal(t, lexeme, actual.Lexeme, "token lexeme")
	require.Equal(t, line, actual.Location.Line, "token line")
	require.Equal(t, col, actual.Location.Col, "token col")
}

func requireTypes(t *testing.T, tokens []Token, types ...TokenType) {
	actual := []TokenType{}
	for _, tok := range tokens {
		actual = append(actual, tok.Type)
	}
	require.Equal(t, types, actual)
}

func TestLexerLet(t *testing.T) {
	tokens, err := Tokenize("let x = 5;")
	require.NoError(t, err)
	require.Len(t, tokens, 6)
	requireTok(t, tokens[0], TokenTypeLet, "let", 1, 1)
	requireTok(t, tokens[1], TokenTypeIdentifier, "x", 1, 5)
	requireTok(t, tokens[2], TokenTypeAssign, "=", 1, 7)
	requireTok(t, tokens[3], TokenTypeNum, "5", 1, 9)
	requireTok(t, tokens[4], TokenTypeSemicolon, ";", 1, 10)
	requireTok(t, tokens[5], TokenTypeEOF, "", 1, 11)
	require.Equal(t, Int(5), tokens[3].Literal)
}

func TestLexerIndexes(t *testing.T) {
	tokens, err := Tokenize("echo 1 + 2;")
	require.NoError(t, err)
	for i, tok := range tokens {
		require.Equal(t, i+1, tok.Index)
	}
	require.Equal(t, TokenTypeEOF, tokens[len(tokens)-1].Type)
}

func TestLexerEmptySource(t *testing.T) {
	tokens, err := Tokenize("  \n\t ")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	require.Equal(t, TokenTypeEOF, tokens[0].Type)
	require.Equal(t, 1, tokens[0].Index)
}

func TestLexerMultiLine(t *testing.T) {
	tokens, err := Tokenize("let a = 1;\n  echo a;")
	require.NoError(t, err)
	requireTok(t, tokens[5], TokenTypeEcho, "echo", 2, 3)
	requireTok(t, tokens[6], TokenTypeIdentifier, "a", 2, 8)
}

func TestLexerKeywords(t *testing.T) {
	tokens, err := Tokenize("for in echo let if else while")
	require.NoError(t, err)
	requireTypes(t, tokens,
		TokenTypeFor, TokenTypeIn, TokenTypeEcho, TokenTypeLet, TokenTypeIf,
		TokenTypeElse, TokenTypeWhile, TokenTypeEOF)
}

func TestLexerKeywordPrefix(t *testing.T) {
	tokens, err := Tokenize("index iffy format")
	require.NoError(t, err)
	requireTypes(t, tokens,
		TokenTypeIn, TokenTypeIdentifier,
		TokenTypeIf, TokenTypeIdentifier,
		TokenTypeFor, TokenTypeIdentifier,
		TokenTypeEOF)
	require.Equal(t, "dex", tokens[1].Lexeme)
	require.Equal(t, "fy", tokens[3].Lexeme)
	require.Equal(t, "mat", tokens[5].Lexeme)
}

func TestLexerOperators(t *testing.T) {
	tokens, err := Tokenize(">= <= == != = < > + - * / % ;")
	require.NoError(t, err)
	requireTypes(t, tokens,
		TokenTypeGTE, TokenTypeLTE, TokenTypeEq, TokenTypeNEQ, TokenTypeAssign,
		TokenTypeLAngle, TokenTypeRAngle, TokenTypeAdd, TokenTypeSub,
		TokenTypeMul, TokenTypeDiv, TokenTypeMod, TokenTypeSemicolon,
		TokenTypeEOF)
}

func TestLexerGroupsAndSets(t *testing.T) {
	tokens, err := Tokenize("{ ( [1, 2] ) }")
	require.NoError(t, err)
	requireTypes(t, tokens,
		TokenTypeLGroup, TokenTypeLParen, TokenTypeLSet, TokenTypeNum,
		TokenTypeComma, TokenTypeNum, TokenTypeRSet, TokenTypeRParen,
		TokenTypeRGroup, TokenTypeEOF)
}

func TestLexerCalc(t *testing.T) {
	tokens, err := Tokenize("calc(1)")
	require.NoError(t, err)
	requireTypes(t, tokens, TokenTypeCalcLParen, TokenTypeNum, TokenTypeRParen, TokenTypeEOF)
	require.Equal(t, "calc(", tokens[0].Lexeme)
}

func TestLexerRange(t *testing.T) {
	tokens, err := Tokenize("range(0, 3) ranger")
	require.NoError(t, err)
	requireTypes(t, tokens,
		TokenTypeRange, TokenTypeLParen, TokenTypeNum, TokenTypeComma,
		TokenTypeNum, TokenTypeRParen, TokenTypeIdentifier, TokenTypeEOF)
	require.Equal(t, "ranger", tokens[6].Lexeme)
}

func TestLexerNumbers(t *testing.T) {
	tokens, err := Tokenize("42 .5 1.5")
	require.NoError(t, err)
	requireTypes(t, tokens,
		TokenTypeNum, TokenTypeFloat, TokenTypeNum, TokenTypeFloat, TokenTypeEOF)
	require.Equal(t, Int(42), tokens[0].Literal)
	require.Equal(t, Float(0.5), tokens[1].Literal)
	require.Equal(t, Int(1), tokens[2].Literal)
	require.Equal(t, Float(0.5), tokens[3].Literal)
}

func TestLexerMalformedFloat(t *testing.T) {
	_, err := Tokenize("let x = ..5;")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidNumber))

	lexErr, ok := err.(*LexError)
	require.True(t, ok)
	require.Equal(t, Location{Line: 1, Col: 9}, lexErr.Location)
}

func TestLexerIntegerOverflow(t *testing.T) {
	_, err := Tokenize("99999999999999999999")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidNumber))
}

func TestLexerString(t *testing.T) {
	tokens, err := Tokenize(`'foo  bar' "it's"`)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	requireTok(t, tokens[0], TokenTypeString, "foo  bar", 1, 1)
	requireTok(t, tokens[1], TokenTypeString, "it's", 1, 12)
	require.Equal(t, String("foo  bar"), tokens[0].Literal)
}

func TestLexerStringNoEscapes(t *testing.T) {
	tokens, err := Tokenize(`'a\nb'`)
	require.NoError(t, err)
	require.Equal(t, `a\nb`, tokens[0].Lexeme)
}

func TestLexerStringInvalid(t *testing.T) {
	_, err := Tokenize("'foo")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrUnterminatedString))
}

func TestLexerFString(t *testing.T) {
	tokens, err := Tokenize(`f"x {a} and {b}{a}"`)
	require.NoError(t, err)
	require.Len(t, tokens, 2)
	requireTok(t, tokens[0], TokenTypeFString, "x {a} and {b}{a}", 1, 1)
	require.Equal(t, []string{"a", "b", "a"}, tokens[0].Options.Identifiers)
}

func TestLexerFStringSingleQuote(t *testing.T) {
	tokens, err := Tokenize(`f'{name}'`)
	require.NoError(t, err)
	require.Equal(t, TokenTypeFString, tokens[0].Type)
	require.Equal(t, []string{"name"}, tokens[0].Options.Identifiers)
}

func TestLexerFStringEmptyBraces(t *testing.T) {
	tokens, err := Tokenize(`f"{}"`)
	require.NoError(t, err)
	require.Empty(t, tokens[0].Options.Identifiers)
}

func TestLexerFStringInvalid(t *testing.T) {
	_, err := Tokenize(`f"{a}`)
	require.Error(t, err)
	require.True(t, IsKind(err, ErrUnterminatedFString))
}

func TestLexerIdentifierStartingWithF(t *testing.T) {
	tokens, err := Tokenize("foo")
	require.NoError(t, err)
	requireTypes(t, tokens, TokenTypeIdentifier, TokenTypeEOF)
}

func TestLexerComment(t *testing.T) {
	tokens, err := Tokenize("# a note # 1")
	require.NoError(t, err)
	requireTypes(t, tokens, TokenTypeSkip, TokenTypeNum, TokenTypeEOF)
	require.Equal(t, " a note ", tokens[0].Lexeme)
}

func TestLexerCommentInvalid(t *testing.T) {
	_, err := Tokenize("let a = 1; # never closed")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrUnterminatedComment))
}

func TestLexerInvalidCharacter(t *testing.T) {
	_, err := Tokenize("let @ = 1;")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidCharacter))
	require.Contains(t, err.Error(), "@")
	require.Contains(t, err.Error(), "line 1:5")
}

func TestLexerBangAlone(t *testing.T) {
	_, err := Tokenize("!")
	require.Error(t, err)
	require.True(t, IsKind(err, ErrInvalidCharacter))
}

func TestTokenTypeString(t *testing.T) {
	require.Equal(t, "CALCLPAREN", TokenTypeCalcLParen.String())
	require.Equal(t, "RSET", TokenTypeRSet.String())
	require.Equal(t, "TokenType(99)", TokenType(99).String())
}
