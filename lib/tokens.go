package lib

import "fmt"

type TokenType int

const (
	TokenTypeEOF TokenType = iota
	TokenTypeSkip
	TokenTypeFor
	TokenTypeIn
	TokenTypeLGroup
	TokenTypeRGroup
	TokenTypeLAngle
	TokenTypeRAngle
	TokenTypeComma
	TokenTypeEcho
	TokenTypeLet
	TokenTypeIf
	TokenTypeElse
	TokenTypeWhile
	TokenTypeAssign
	TokenTypeEq
	TokenTypeGTE
	TokenTypeLTE
	TokenTypeNEQ
	TokenTypeCalcLParen
	TokenTypeGT
	TokenTypeLT
	TokenTypeLParen
	TokenTypeRParen
	TokenTypeNum
	TokenTypeFloat
	TokenTypeString
	TokenTypeFString
	TokenTypeIdentifier
	TokenTypeAdd
	TokenTypeSub
	TokenTypeMul
	TokenTypeDiv
	TokenTypeMod
	TokenTypeSemicolon
	TokenTypeRange
	TokenTypeLSet
	TokenTypeRSet
)

var tokenTypeNames = [...]string{
	TokenTypeEOF:        "EOF",
	TokenTypeSkip:       "SKIP",
	TokenTypeFor:        "FOR",
	TokenTypeIn:         "IN",
	TokenTypeLGroup:     "LGROUP",
	TokenTypeRGroup:     "RGROUP",
	TokenTypeLAngle:     "LANGLE",
	TokenTypeRAngle:     "RANGLE",
	TokenTypeComma:      "COMMA",
	TokenTypeEcho:       "ECHO",
	TokenTypeLet:        "LET",
	TokenTypeIf:         "IF",
	TokenTypeElse:       "ELSE",
	TokenTypeWhile:      "WHILE",
	TokenTypeAssign:     "ASSIGN",
	TokenTypeEq:         "EQ",
	TokenTypeGTE:        "GTE",
	TokenTypeLTE:        "LTE",
	TokenTypeNEQ:        "NEQ",
	TokenTypeCalcLParen: "CALCLPAREN",
	TokenTypeGT:         "GT",
	TokenTypeLT:         "LT",
	TokenTypeLParen:     "LPAREN",
	TokenTypeRParen:     "RPAREN",
	TokenTypeNum:        "NUM",
	TokenTypeFloat:      "FLOAT",
	TokenTypeString:     "STRING",
	TokenTypeFString:    "FSTRING",
	TokenTypeIdentifier: "IDENTIFIER",
	TokenTypeAdd:        "ADD",
	TokenTypeSub:        "SUB",
	TokenTypeMul:        "MUL",
	TokenTypeDiv:        "DIV",
	TokenTypeMod:        "MOD",
	TokenTypeSemicolon:  "SEMICOLON",
	TokenTypeRange:      "RANGE",
	TokenTypeLSet:       "LSET",
	TokenTypeRSet:       "RSET",
}

func (t TokenType) String() string {
	if t < 0 || int(t) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
	return tokenTypeNames[t]
}

type Location struct {
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

// TokenOptions carries the auxiliary data some token types need. Only
// FSTRING tokens populate it today.
type TokenOptions struct {
	Identifiers []string
}

// Token is a single lexical unit. Literal is set for NUM, FLOAT, STRING and
// FSTRING tokens; Lexeme always holds the source text the token came from
// (the raw contents for strings and comments).
type Token struct {
	Type     TokenType
	Lexeme   string
	Literal  Value
	Options  TokenOptions
	Index    int
	Location Location
}

func (t Token) String() string {
	if t.Lexeme == "" {
		return fmt.Sprintf("%s#%d", t.Type, t.Index)
	}
	return fmt.Sprintf("%s(%s)#%d", t.Type, t.Lexeme, t.Index)
}

var keywords = []struct {
	word    string
	tokType TokenType
}{
	{"for", TokenTypeFor},
	{"in", TokenTypeIn},
	{"echo", TokenTypeEcho},
	{"let", TokenTypeLet},
	{"if", TokenTypeIf},
	{"else", TokenTypeElse},
	{"while", TokenTypeWhile},
}

var punctuation = map[rune]TokenType{
	'{': TokenTypeLGroup,
	'}': TokenTypeRGroup,
	'<': TokenTypeLAngle,
	'>': TokenTypeRAngle,
	',': TokenTypeComma,
	'=': TokenTypeAssign,
	'(': TokenTypeLParen,
	')': TokenTypeRParen,
	'[': TokenTypeLSet,
	']': TokenTypeRSet,
	'+': TokenTypeAdd,
	'-': TokenTypeSub,
	'*': TokenTypeMul,
	'/': TokenTypeDiv,
	'%': TokenTypeMod,
	';': TokenTypeSemicolon,
}

var twoCharOperators = []struct {
	op      string
	tokType TokenType
}{
	{"==", TokenTypeEq},
	{">=", TokenTypeGTE},
	{"<=", TokenTypeLTE},
	{"!=", TokenTypeNEQ},
}
