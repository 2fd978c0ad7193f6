package lib

import (
	"fmt"

	"gopkg.in/src-d/go-errors.v1"
)

var (
	ErrUnterminatedString  = errors.NewKind("Unterminated string literal")
	ErrUnterminatedFString = errors.NewKind("Unterminated f-string literal")
	ErrUnterminatedComment = errors.NewKind("Unclosed comment")
	ErrInvalidCharacter    = errors.NewKind("Invalid character: %q")
	ErrInvalidNumber       = errors.NewKind("Invalid number literal %q")

	ErrUnexpectedToken        = errors.NewKind("Expected %s, got %s")
	ErrUndefinedVariable      = errors.NewKind("Undefined variable '%s'")
	ErrDivisionByZero         = errors.NewKind("Division by zero")
	ErrTypeMismatch           = errors.NewKind("Type mismatch: %s")
	ErrMalformedInterpolation = errors.NewKind("Malformed f-string reference '{%s}'")
	ErrRepeatOverflow         = errors.NewKind("Repeated %s is too long: %d items * %d")
)

// LexError is returned by Tokenize. Err holds one of the lexical error kinds.
type LexError struct {
	Location Location
	Err      error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("Lex Error at line %s: %s", e.Location, e.Err)
}

func (e *LexError) Unwrap() error {
	return e.Err
}

// RuntimeError is returned by the interpreter. Index is the 1-based index of
// the token being looked at when execution failed.
type RuntimeError struct {
	Index int
	Err   error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("Runtime Error at token %d: %s", e.Index, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a LexError or RuntimeError carrying an error
// of the given kind.
func IsKind(err error, kind *errors.Kind) bool {
	switch e := err.(type) {
	case *LexError:
		return kind.Is(e.Err)
	case *RuntimeError:
		return kind.Is(e.Err)
	default:
		return kind.Is(err)
	}
}
