package lib

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Interpreter executes a token sequence directly. There is no syntax tree:
// loops and conditionals move a cursor over the tokens, so a loop body is
// scanned again on every iteration.
type Interpreter struct {
	variables map[string]Value
	reader    tokenReader
	out       io.Writer
	log       *logrus.Entry
}

// NewInterpreter returns an interpreter that writes echo output to out. A nil
// writer means os.Stdout.
func NewInterpreter(out io.Writer) *Interpreter {
	if out == nil {
		out = os.Stdout
	}
	return &Interpreter{
		variables: map[string]Value{},
		out:       out,
		log:       logrus.NewEntry(logrus.StandardLogger()),
	}
}

// WithLogger replaces the logger used for execution traces.
func (it *Interpreter) WithLogger(log *logrus.Entry) *Interpreter {
	it.log = log
	return it
}

// Variables returns the current variable bindings.
func (it *Interpreter) Variables() map[string]Value {
	return it.variables
}

// Interpret runs every statement in tokens and returns the final variable
// bindings. It stops at the first error.
func (it *Interpreter) Interpret(tokens []Token) (map[string]Value, error) {
	it.reader = newTokenBuffer(tokens)

	for it.reader.Peek().Type != TokenTypeEOF {
		if err := it.executeStatement(); err != nil {
			return nil, err
		}
	}

	return it.variables, nil
}

// Run tokenizes and interprets source in one go.
func Run(source string, out io.Writer) (map[string]Value, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewInterpreter(out).Interpret(tokens)
}

func (it *Interpreter) tracing() bool {
	return it.log.Logger.Level >= logrus.DebugLevel
}

func (it *Interpreter) errorAt(tok Token, err error) error {
	return &RuntimeError{Index: tok.Index, Err: err}
}

func (it *Interpreter) expect(tokType TokenType) (Token, error) {
	tok := it.reader.Next()
	if tok.Type != tokType {
		return tok, it.errorAt(tok, ErrUnexpectedToken.New(tokType, tok.Type))
	}
	return tok, nil
}

func (it *Interpreter) lookup(tok Token, name string) (Value, error) {
	v, ok := it.variables[name]
	if !ok {
		return nil, it.errorAt(tok, ErrUndefinedVariable.New(name))
	}
	return v, nil
}
