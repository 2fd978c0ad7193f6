package lib

import (
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/src-d/go-errors.v1"
)

// Tokenize turns source text into a token sequence terminated by exactly one
// EOF token. Tokens are numbered from 1 in the order they are produced.
func Tokenize(source string) ([]Token, error) {
	buffer := newTokenBuffer([]Token{})
	err := lex(source, buffer.Write)
	if err != nil {
		return nil, err
	}
	return buffer.tokens, nil
}

func lex(source string, emit func(Token)) error {
	l := newLexer(source, emit)
	return l.scan()
}

type lexer struct {
	src              []rune
	length           int
	currentCharIndex int
	currentLocation  Location
	tokenLocation    Location
	emitCallback     func(Token)
}

func newLexer(source string, emit func(Token)) *lexer {
	src := []rune(source)
	return &lexer{
		src:              src,
		length:           len(src),
		currentCharIndex: 0,
		currentLocation:  Location{Line: 1, Col: 1},
		tokenLocation:    Location{Line: 1, Col: 1},
		emitCallback:     emit,
	}
}

func (l *lexer) peek(offset int) (rune, bool) {
	i := l.currentCharIndex + offset
	if i >= l.length {
		return 0, false
	}
	return l.src[i], true
}

func (l *lexer) advance() (rune, bool) {
	ch, ok := l.peek(0)
	if !ok {
		return 0, false
	}
	l.currentCharIndex++
	if ch == '\n' {
		l.currentLocation.Line++
		l.currentLocation.Col = 1
	} else {
		l.currentLocation.Col++
	}
	return ch, true
}

func (l *lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		_, _ = l.advance()
	}
}

func (l *lexer) hasPrefix(prefix string) bool {
	i := l.currentCharIndex
	for _, ch := range prefix {
		if i >= l.length || l.src[i] != ch {
			return false
		}
		i++
	}
	return true
}

func (l *lexer) emit(tokType TokenType, lexeme string) {
	l.emitCallback(Token{Type: tokType, Lexeme: lexeme, Location: l.tokenLocation})
}

func (l *lexer) emitLiteral(tokType TokenType, lexeme string, literal Value, opts TokenOptions) {
	l.emitCallback(Token{
		Type:     tokType,
		Lexeme:   lexeme,
		Literal:  literal,
		Options:  opts,
		Location: l.tokenLocation,
	})
}

func (l *lexer) errorf(kind *errors.Kind, args ...interface{}) error {
	return &LexError{Location: l.tokenLocation, Err: kind.New(args...)}
}

func (l *lexer) scan() error {
	for {
		more, err := l.next()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	l.tokenLocation = l.currentLocation
	l.emit(TokenTypeEOF, "")
	return nil
}

// next scans a single token. The attempts are ordered: keywords are matched
// by prefix before identifiers and two character operators before their one
// character prefixes.
func (l *lexer) next() (bool, error) {
	l.eatWhitespace()
	l.tokenLocation = l.currentLocation

	ch, ok := l.peek(0)
	if !ok {
		return false, nil
	}

	if ch == '#' {
		return true, l.scanComment()
	}

	for _, kw := range keywords {
		if l.hasPrefix(kw.word) {
			l.advanceN(len(kw.word))
			l.emit(kw.tokType, kw.word)
			return true, nil
		}
	}

	if l.hasPrefix("range(") {
		l.advanceN(len("range"))
		l.emit(TokenTypeRange, "range")
		return true, nil
	}

	for _, op := range twoCharOperators {
		if l.hasPrefix(op.op) {
			l.advanceN(2)
			l.emit(op.tokType, op.op)
			return true, nil
		}
	}

	if l.hasPrefix("calc(") {
		l.advanceN(len("calc("))
		l.emit(TokenTypeCalcLParen, "calc(")
		return true, nil
	}

	if tokType, ok := punctuation[ch]; ok {
		_, _ = l.advance()
		l.emit(tokType, string(ch))
		return true, nil
	}

	switch {
	case isDigit(ch):
		return true, l.scanInteger()
	case ch == '.':
		return true, l.scanFloat()
	case ch == '"' || ch == '\'':
		return true, l.scanString()
	}

	if ch == 'f' {
		if quote, ok := l.peek(1); ok && (quote == '"' || quote == '\'') {
			return true, l.scanFString()
		}
	}

	if unicode.IsLetter(ch) {
		l.scanIdentifier()
		return true, nil
	}

	return false, l.errorf(ErrInvalidCharacter, string(ch))
}

func (l *lexer) eatWhitespace() {
	for {
		ch, ok := l.peek(0)
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		_, _ = l.advance()
	}
}

func (l *lexer) scanComment() error {
	_, _ = l.advance()
	var sb strings.Builder
	for {
		ch, ok := l.advance()
		if !ok {
			return l.errorf(ErrUnterminatedComment)
		}
		if ch == '#' {
			break
		}
		sb.WriteRune(ch)
	}
	l.emit(TokenTypeSkip, sb.String())
	return nil
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func (l *lexer) scanInteger() error {
	var sb strings.Builder
	for {
		ch, ok := l.peek(0)
		if !ok || !isDigit(ch) {
			break
		}
		_, _ = l.advance()
		sb.WriteRune(ch)
	}

	text := sb.String()
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return &LexError{Location: l.tokenLocation, Err: ErrInvalidNumber.Wrap(err, text)}
	}
	l.emitLiteral(TokenTypeNum, text, Int(n), TokenOptions{})
	return nil
}

// scanFloat reads a literal that starts with '.'. Any run of digits and dots
// is taken, so "..5" reaches the number parser and fails there.
func (l *lexer) scanFloat() error {
	var sb strings.Builder
	for {
		ch, ok := l.peek(0)
		if !ok || !(isDigit(ch) || ch == '.') {
			break
		}
		_, _ = l.advance()
		sb.WriteRune(ch)
	}

	text := sb.String()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return &LexError{Location: l.tokenLocation, Err: ErrInvalidNumber.Wrap(err, text)}
	}
	l.emitLiteral(TokenTypeFloat, text, Float(f), TokenOptions{})
	return nil
}

func (l *lexer) scanString() error {
	quote, _ := l.advance()
	var sb strings.Builder
	for {
		ch, ok := l.advance()
		if !ok {
			return l.errorf(ErrUnterminatedString)
		}
		if ch == quote {
			break
		}
		sb.WriteRune(ch)
	}

	text := sb.String()
	l.emitLiteral(TokenTypeString, text, String(text), TokenOptions{})
	return nil
}

// scanFString keeps the raw text, braces included, and records the name
// inside every {name} span in order of appearance.
func (l *lexer) scanFString() error {
	_, _ = l.advance()
	quote, _ := l.advance()

	var sb strings.Builder
	var name strings.Builder
	inBraces := false
	opts := TokenOptions{Identifiers: []string{}}

	for {
		ch, ok := l.advance()
		if !ok {
			return l.errorf(ErrUnterminatedFString)
		}
		if ch == quote {
			break
		}

		switch {
		case ch == '{':
			inBraces = true
			name.Reset()
		case ch == '}':
			if inBraces && name.Len() > 0 {
				opts.Identifiers = append(opts.Identifiers, name.String())
			}
			inBraces = false
		case inBraces:
			name.WriteRune(ch)
		}
		sb.WriteRune(ch)
	}

	text := sb.String()
	l.emitLiteral(TokenTypeFString, text, String(text), opts)
	return nil
}

func (l *lexer) scanIdentifier() {
	var sb strings.Builder
	for {
		ch, ok := l.peek(0)
		if !ok || !(unicode.IsLetter(ch) || unicode.IsDigit(ch)) {
			break
		}
		_, _ = l.advance()
		sb.WriteRune(ch)
	}
	l.emit(TokenTypeIdentifier, sb.String())
}
