package lib

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

func (it *Interpreter) executeStatement() error {
	tok := it.reader.Peek()
	if it.tracing() {
		it.log.WithFields(logrus.Fields{
			"token": tok.Index,
			"pos":   it.reader.Pos(),
		}).Debugf("statement %s", tok.Type)
	}

	switch tok.Type {
	case TokenTypeLet:
		return it.executeLet()
	case TokenTypeEcho:
		return it.executeEcho()
	case TokenTypeIf:
		return it.executeIf()
	case TokenTypeWhile:
		return it.executeWhile()
	case TokenTypeFor:
		return it.executeFor()
	}

	return it.errorAt(tok, ErrUnexpectedToken.New("statement", tok.Type))
}

// let NAME = expr ;
func (it *Interpreter) executeLet() error {
	it.reader.Next()
	name, err := it.expect(TokenTypeIdentifier)
	if err != nil {
		return err
	}
	if _, err := it.expect(TokenTypeAssign); err != nil {
		return err
	}
	v, err := it.evaluateExpression()
	if err != nil {
		return err
	}
	it.variables[name.Lexeme] = v
	_, err = it.expect(TokenTypeSemicolon)
	return err
}

// echo expr ;
func (it *Interpreter) executeEcho() error {
	it.reader.Next()
	v, err := it.evaluateExpression()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(it.out, Text(v)); err != nil {
		return err
	}
	_, err = it.expect(TokenTypeSemicolon)
	return err
}

// if expr { block } [else { block }]
func (it *Interpreter) executeIf() error {
	it.reader.Next()
	cond, err := it.evaluateExpression()
	if err != nil {
		return err
	}
	if _, err := it.expect(TokenTypeLGroup); err != nil {
		return err
	}

	if Truthy(cond) {
		if err := it.executeBlock(); err != nil {
			return err
		}
		if _, err := it.expect(TokenTypeRGroup); err != nil {
			return err
		}
		if it.reader.Peek().Type == TokenTypeElse {
			it.reader.Next()
			if _, err := it.expect(TokenTypeLGroup); err != nil {
				return err
			}
			return it.discardBlock()
		}
		return nil
	}

	if err := it.discardBlock(); err != nil {
		return err
	}
	if it.reader.Peek().Type == TokenTypeElse {
		it.reader.Next()
		if _, err := it.expect(TokenTypeLGroup); err != nil {
			return err
		}
		if err := it.executeBlock(); err != nil {
			return err
		}
		_, err := it.expect(TokenTypeRGroup)
		return err
	}
	return nil
}

// while expr { block }
//
// The condition is re-read from the tokens before every iteration. When it
// turns false the cursor sits on the body's "{" and the body is skipped.
func (it *Interpreter) executeWhile() error {
	it.reader.Next()
	start := it.reader.Pos()

	for iteration := 0; ; iteration++ {
		it.reader.Seek(start)
		cond, err := it.evaluateExpression()
		if err != nil {
			return err
		}
		if !Truthy(cond) {
			break
		}
		if it.tracing() {
			it.log.WithField("iteration", iteration).Debug("while")
		}

		if _, err := it.expect(TokenTypeLGroup); err != nil {
			return err
		}
		if err := it.executeBlock(); err != nil {
			return err
		}
		if _, err := it.expect(TokenTypeRGroup); err != nil {
			return err
		}
	}

	if it.reader.Peek().Type == TokenTypeLGroup {
		it.reader.Next()
		return it.discardBlock()
	}
	return nil
}

// for NAME in range(a, b) { block }
// for NAME in list { block }
// for NAME in [ ... ] { block }
func (it *Interpreter) executeFor() error {
	it.reader.Next()
	name, err := it.expect(TokenTypeIdentifier)
	if err != nil {
		return err
	}
	if _, err := it.expect(TokenTypeIn); err != nil {
		return err
	}

	source := it.reader.Peek()
	switch source.Type {
	case TokenTypeRange:
		it.reader.Next()
		start, end, err := it.rangeBounds()
		if err != nil {
			return err
		}
		if _, err := it.expect(TokenTypeLGroup); err != nil {
			return err
		}
		return it.loop(name.Lexeme, rangeCount(start, end), func(i int) Value {
			return Int(start + int64(i))
		})

	case TokenTypeIdentifier:
		it.reader.Next()
		v, err := it.lookup(source, source.Lexeme)
		if err != nil {
			return err
		}
		items, ok := v.(List)
		if !ok {
			return it.errorAt(source, ErrTypeMismatch.New(fmt.Sprintf(
				"expected list in '%s', got %s", source.Lexeme, v.TypeName())))
		}
		if _, err := it.expect(TokenTypeLGroup); err != nil {
			return err
		}
		return it.loopList(name.Lexeme, items)

	case TokenTypeLSet:
		v, err := it.evaluateList()
		if err != nil {
			return err
		}
		if _, err := it.expect(TokenTypeLGroup); err != nil {
			return err
		}
		return it.loopList(name.Lexeme, v.(List))
	}

	return it.errorAt(source, ErrUnexpectedToken.New("RANGE, IDENTIFIER or LSET", source.Type))
}

// Reads "(start, end)" after range. Both bounds are truncated to integers.
func (it *Interpreter) rangeBounds() (int64, int64, error) {
	if _, err := it.expect(TokenTypeLParen); err != nil {
		return 0, 0, err
	}
	start, err := it.evaluateBound()
	if err != nil {
		return 0, 0, err
	}
	if _, err := it.expect(TokenTypeComma); err != nil {
		return 0, 0, err
	}
	end, err := it.evaluateBound()
	if err != nil {
		return 0, 0, err
	}
	if _, err := it.expect(TokenTypeRParen); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

const maxInt = int(^uint(0) >> 1)

// rangeCount is the number of values in [start, end), saturated to maxInt.
func rangeCount(start, end int64) int {
	if end <= start {
		return 0
	}
	span := uint64(end) - uint64(start)
	if span > uint64(maxInt) {
		return maxInt
	}
	return int(span)
}

func (it *Interpreter) evaluateBound() (int64, error) {
	tok := it.reader.Peek()
	v, err := it.evaluateExpression()
	if err != nil {
		return 0, err
	}
	n, err := toBound(v)
	if err != nil {
		return 0, it.errorAt(tok, ErrTypeMismatch.Wrap(err,
			fmt.Sprintf("range bound must be a number, got %s", v.TypeName())))
	}
	return n, nil
}

// toBound truncates a bound to an integer. Strings are read as base 10 only,
// so "010" is 10.
func toBound(v Value) (int64, error) {
	if s, ok := v.(String); ok {
		return strconv.ParseInt(strings.TrimSpace(string(s)), 10, 64)
	}
	return cast.ToInt64E(native(v))
}

func (it *Interpreter) loopList(name string, items List) error {
	return it.loop(name, len(items), func(i int) Value {
		return items[i]
	})
}

// loop runs the block that starts at the cursor count times, binding name to
// item(i) before each pass. The cursor is rewound to the start of the block
// for every iteration. A loop that never runs skips its block.
func (it *Interpreter) loop(name string, count int, item func(i int) Value) error {
	if count <= 0 {
		return it.discardBlock()
	}

	blockStart := it.reader.Pos()
	for i := 0; i < count; i++ {
		it.variables[name] = item(i)
		if it.tracing() {
			it.log.WithFields(logrus.Fields{
				"var":   name,
				"value": Text(it.variables[name]),
			}).Debug("for")
		}
		it.reader.Seek(blockStart)
		if err := it.executeBlock(); err != nil {
			return err
		}
	}

	_, err := it.expect(TokenTypeRGroup)
	return err
}

// executeBlock runs statements up to, but not including, the closing "}".
func (it *Interpreter) executeBlock() error {
	for {
		switch it.reader.Peek().Type {
		case TokenTypeRGroup, TokenTypeEOF:
			return nil
		}
		if err := it.executeStatement(); err != nil {
			return err
		}
	}
}

// skipBlock moves past a block without running it. The cursor must be just
// after the opening "{"; it ends just after the matching "}".
func (it *Interpreter) skipBlock() error {
	depth := 1
	for depth > 0 {
		tok := it.reader.Next()
		switch tok.Type {
		case TokenTypeLGroup:
			depth++
		case TokenTypeRGroup:
			depth--
		case TokenTypeEOF:
			return it.errorAt(tok, ErrUnexpectedToken.New(TokenTypeRGroup, tok.Type))
		}
	}
	return nil
}

// discardBlock skips a block, steps back onto its closing "}" and consumes
// it again.
func (it *Interpreter) discardBlock() error {
	if err := it.skipBlock(); err != nil {
		return err
	}
	it.reader.Back()
	_, err := it.expect(TokenTypeRGroup)
	return err
}

// native unwraps a value into the plain Go type it is built on.
func native(v Value) interface{} {
	switch t := v.(type) {
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	case Bool:
		return bool(t)
	default:
		return v
	}
}
