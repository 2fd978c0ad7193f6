package lib

import (
	"strings"
	"unicode"
)

func (it *Interpreter) evaluateExpression() (Value, error) {
	if it.reader.Peek().Type == TokenTypeLSet {
		return it.evaluateList()
	}
	return it.parseComparison()
}

// Reads a list literal starting at "[". Commas between elements are optional.
func (it *Interpreter) evaluateList() (Value, error) {
	if _, err := it.expect(TokenTypeLSet); err != nil {
		return nil, err
	}

	list := List{}
	for {
		tok := it.reader.Peek()
		switch tok.Type {
		case TokenTypeRSet:
			it.reader.Next()
			return list, nil
		case TokenTypeEOF:
			return nil, it.errorAt(tok, ErrUnexpectedToken.New(TokenTypeRSet, tok.Type))
		case TokenTypeComma:
			it.reader.Next()
			continue
		}

		v, err := it.evaluateExpression()
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

// A single comparison at most: "a < b < c" is not a chain.
func (it *Interpreter) parseComparison() (Value, error) {
	left, err := it.parseTerm()
	if err != nil {
		return nil, err
	}

	op := it.reader.Peek()
	switch op.Type {
	case TokenTypeEq, TokenTypeNEQ, TokenTypeGT, TokenTypeLT, TokenTypeGTE,
		TokenTypeLTE, TokenTypeLAngle, TokenTypeRAngle:
	default:
		return left, nil
	}
	it.reader.Next()

	right, err := it.parseTerm()
	if err != nil {
		return nil, err
	}
	result, err := Compare(op.Type, left, right)
	if err != nil {
		return nil, it.errorAt(op, err)
	}
	return result, nil
}

func (it *Interpreter) parseTerm() (Value, error) {
	left, err := it.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		op := it.reader.Peek()
		if op.Type != TokenTypeAdd && op.Type != TokenTypeSub {
			return left, nil
		}
		it.reader.Next()

		right, err := it.parseFactor()
		if err != nil {
			return nil, err
		}
		left, err = BinaryOp(op.Type, left, right)
		if err != nil {
			return nil, it.errorAt(op, err)
		}
	}
}

func (it *Interpreter) parseFactor() (Value, error) {
	left, err := it.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op := it.reader.Peek()
		if op.Type != TokenTypeMul && op.Type != TokenTypeDiv && op.Type != TokenTypeMod {
			return left, nil
		}
		it.reader.Next()

		right, err := it.parsePrimary()
		if err != nil {
			return nil, err
		}
		left, err = BinaryOp(op.Type, left, right)
		if err != nil {
			return nil, it.errorAt(op, err)
		}
	}
}

func (it *Interpreter) parsePrimary() (Value, error) {
	tok := it.reader.Peek()

	switch tok.Type {
	case TokenTypeNum, TokenTypeFloat, TokenTypeString:
		it.reader.Next()
		return tok.Literal, nil

	case TokenTypeFString:
		it.reader.Next()
		return it.interpolate(tok)

	case TokenTypeIdentifier:
		it.reader.Next()
		return it.lookup(tok, tok.Lexeme)

	// calc( behaves exactly like (
	case TokenTypeLParen, TokenTypeCalcLParen:
		it.reader.Next()
		v, err := it.evaluateExpression()
		if err != nil {
			return nil, err
		}
		if _, err := it.expect(TokenTypeRParen); err != nil {
			return nil, err
		}
		return v, nil

	case TokenTypeAdd, TokenTypeSub:
		it.reader.Next()
		v, err := it.parsePrimary()
		if err != nil {
			return nil, err
		}
		if tok.Type == TokenTypeAdd {
			v, err = Plus(v)
		} else {
			v, err = Negate(v)
		}
		if err != nil {
			return nil, it.errorAt(tok, err)
		}
		return v, nil

	case TokenTypeLSet:
		return it.evaluateList()
	}

	return nil, it.errorAt(tok, ErrUnexpectedToken.New("expression", tok.Type))
}

// interpolate substitutes every {name} recorded by the lexer with the text of
// the variable's current value. All occurrences of a name are replaced at
// once.
func (it *Interpreter) interpolate(tok Token) (Value, error) {
	result := tok.Lexeme
	for _, name := range tok.Options.Identifiers {
		if !isIdentifier(name) {
			return nil, it.errorAt(tok, ErrMalformedInterpolation.New(name))
		}
		v, err := it.lookup(tok, name)
		if err != nil {
			return nil, err
		}
		result = strings.Replace(result, "{"+name+"}", Text(v), -1)
	}
	return String(result), nil
}

func isIdentifier(name string) bool {
	for i, ch := range name {
		if unicode.IsLetter(ch) {
			continue
		}
		if i > 0 && unicode.IsDigit(ch) {
			continue
		}
		return false
	}
	return name != ""
}
