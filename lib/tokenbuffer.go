package lib

// tokenBuffer holds a token sequence and a cursor into it. The lexer fills it
// through Write; the interpreter reads it through the tokenReader methods and
// moves the cursor backwards to run loop bodies again.
type tokenBuffer struct {
	tokens []Token
	pos    int
}

func newTokenBuffer(tokens []Token) *tokenBuffer {
	return &tokenBuffer{tokens: tokens}
}

// Write appends a token, stamping it with its 1-based index.
func (tb *tokenBuffer) Write(tok Token) {
	tok.Index = len(tb.tokens) + 1
	tb.tokens = append(tb.tokens, tok)
}

// Peek returns the token under the cursor without consuming it. Comments are
// stepped over. Past the end of the sequence it returns a synthetic EOF.
func (tb *tokenBuffer) Peek() Token {
	for tb.pos < len(tb.tokens) && tb.tokens[tb.pos].Type == TokenTypeSkip {
		tb.pos++
	}
	if tb.pos < len(tb.tokens) {
		return tb.tokens[tb.pos]
	}
	return Token{Type: TokenTypeEOF, Index: len(tb.tokens)}
}

func (tb *tokenBuffer) Next() Token {
	tok := tb.Peek()
	tb.pos++
	return tok
}

// Back steps the cursor back by one position.
func (tb *tokenBuffer) Back() {
	if tb.pos > 0 {
		tb.pos--
	}
}

func (tb *tokenBuffer) Pos() int {
	return tb.pos
}

func (tb *tokenBuffer) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}
	tb.pos = pos
}
