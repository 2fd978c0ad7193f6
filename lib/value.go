package lib

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a runtime value. The set of implementations is closed: Int,
// Float, String, Bool and List.
type Value interface {
	isValue()
	TypeName() string
}

type Int int64
type Float float64
type String string
type Bool bool
type List []Value

func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Bool) isValue()   {}
func (List) isValue()   {}

func (Int) TypeName() string    { return "int" }
func (Float) TypeName() string  { return "float" }
func (String) TypeName() string { return "str" }
func (Bool) TypeName() string   { return "bool" }
func (List) TypeName() string   { return "list" }

// Text renders v the way echo prints it.
func Text(v Value) string {
	switch t := v.(type) {
	case Int:
		return strconv.FormatInt(int64(t), 10)
	case Float:
		return formatFloat(float64(t))
	case String:
		return string(t)
	case Bool:
		if t {
			return "True"
		}
		return "False"
	case List:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = repr(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// repr is Text except that strings are quoted, which is how list elements
// are shown.
func repr(v Value) string {
	if s, ok := v.(String); ok {
		if strings.ContainsRune(string(s), '\'') && !strings.ContainsRune(string(s), '"') {
			return `"` + string(s) + `"`
		}
		return "'" + strings.Replace(string(s), "'", `\'`, -1) + "'"
	}
	return Text(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// Truthy follows the usual rules: zero numbers, empty strings, empty lists
// and False are false.
func Truthy(v Value) bool {
	switch t := v.(type) {
	case Int:
		return t != 0
	case Float:
		return t != 0
	case String:
		return t != ""
	case Bool:
		return bool(t)
	case List:
		return len(t) > 0
	default:
		return false
	}
}

// numeric unpacks ints, floats and bools. isFloat reports whether the value
// has to be treated as a float.
func numeric(v Value) (i int64, f float64, isFloat bool, ok bool) {
	switch t := v.(type) {
	case Int:
		return int64(t), float64(t), false, true
	case Bool:
		if t {
			return 1, 1, false, true
		}
		return 0, 0, false, true
	case Float:
		return 0, float64(t), true, true
	default:
		return 0, 0, false, false
	}
}

func mismatch(op string, left, right Value) error {
	return ErrTypeMismatch.New(fmt.Sprintf(
		"unsupported operand types for %s: '%s' and '%s'",
		op, left.TypeName(), right.TypeName()))
}

// BinaryOp applies an arithmetic operator token to two values.
func BinaryOp(op TokenType, left, right Value) (Value, error) {
	switch op {
	case TokenTypeAdd:
		return add(left, right)
	case TokenTypeSub:
		return arith("-", left, right,
			func(a, b int64) int64 { return a - b },
			func(a, b float64) float64 { return a - b })
	case TokenTypeMul:
		return mul(left, right)
	case TokenTypeDiv:
		return div(left, right)
	case TokenTypeMod:
		return mod(left, right)
	default:
		return nil, fmt.Errorf("%s is not an arithmetic operator", op)
	}
}

func arith(
	name string,
	left, right Value,
	intOp func(a, b int64) int64,
	floatOp func(a, b float64) float64,
) (Value, error) {
	li, lf, lFloat, lok := numeric(left)
	ri, rf, rFloat, rok := numeric(right)
	if !lok || !rok {
		return nil, mismatch(name, left, right)
	}
	if lFloat || rFloat {
		return Float(floatOp(lf, rf)), nil
	}
	return Int(intOp(li, ri)), nil
}

func add(left, right Value) (Value, error) {
	switch l := left.(type) {
	case String:
		if r, ok := right.(String); ok {
			return l + r, nil
		}
		return nil, mismatch("+", left, right)
	case List:
		if r, ok := right.(List); ok {
			out := make(List, 0, len(l)+len(r))
			out = append(out, l...)
			return append(out, r...), nil
		}
		return nil, mismatch("+", left, right)
	}
	return arith("+", left, right,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

func mul(left, right Value) (Value, error) {
	if n, ok := repeatCount(right); ok {
		if v, ok, err := repeat(left, n); ok {
			return v, err
		}
	}
	if n, ok := repeatCount(left); ok {
		if v, ok, err := repeat(right, n); ok {
			return v, err
		}
	}
	return arith("*", left, right,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

// Longest string or list a repetition may build.
const maxRepeatLength = math.MaxInt32

func repeatCount(v Value) (int64, bool) {
	i, _, isFloat, ok := numeric(v)
	if !ok || isFloat {
		return 0, false
	}
	if i < 0 {
		i = 0
	}
	return i, true
}

// repeat concatenates n copies of a string or list. ok is false when seq is
// neither.
func repeat(seq Value, n int64) (v Value, ok bool, err error) {
	var length int
	switch s := seq.(type) {
	case String:
		length = len(s)
	case List:
		length = len(s)
	default:
		return nil, false, nil
	}
	if length == 0 || n == 0 {
		if _, isList := seq.(List); isList {
			return List{}, true, nil
		}
		return String(""), true, nil
	}
	if n > int64(maxRepeatLength/length) {
		return nil, true, ErrRepeatOverflow.New(seq.TypeName(), length, n)
	}

	switch s := seq.(type) {
	case String:
		return String(strings.Repeat(string(s), int(n))), true, nil
	default:
		return repeatList(s.(List), int(n)), true, nil
	}
}

func repeatList(l List, n int) List {
	out := make(List, 0, len(l)*n)
	for i := 0; i < n; i++ {
		out = append(out, l...)
	}
	return out
}

func div(left, right Value) (Value, error) {
	_, lf, _, lok := numeric(left)
	_, rf, _, rok := numeric(right)
	if !lok || !rok {
		return nil, mismatch("/", left, right)
	}
	if rf == 0 {
		return nil, ErrDivisionByZero.New()
	}
	return Float(lf / rf), nil
}

// mod is floored: the result takes the sign of the divisor.
func mod(left, right Value) (Value, error) {
	li, lf, lFloat, lok := numeric(left)
	ri, rf, rFloat, rok := numeric(right)
	if !lok || !rok {
		return nil, mismatch("%", left, right)
	}
	if rf == 0 {
		return nil, ErrDivisionByZero.New()
	}
	if lFloat || rFloat {
		m := math.Mod(lf, rf)
		if m != 0 && (m < 0) != (rf < 0) {
			m += rf
		}
		return Float(m), nil
	}
	m := li % ri
	if m != 0 && (m < 0) != (ri < 0) {
		m += ri
	}
	return Int(m), nil
}

// Negate implements unary minus.
func Negate(v Value) (Value, error) {
	i, f, isFloat, ok := numeric(v)
	if !ok {
		return nil, ErrTypeMismatch.New(fmt.Sprintf("bad operand type for unary -: '%s'", v.TypeName()))
	}
	if isFloat {
		return Float(-f), nil
	}
	return Int(-i), nil
}

// Plus implements unary plus. Bools become ints.
func Plus(v Value) (Value, error) {
	i, f, isFloat, ok := numeric(v)
	if !ok {
		return nil, ErrTypeMismatch.New(fmt.Sprintf("bad operand type for unary +: '%s'", v.TypeName()))
	}
	if isFloat {
		return Float(f), nil
	}
	return Int(i), nil
}

// Equal compares any two values. Numbers compare by value regardless of
// representation; lists compare element by element.
func Equal(left, right Value) bool {
	li, lf, lFloat, lok := numeric(left)
	ri, rf, rFloat, rok := numeric(right)
	if lok && rok {
		if lFloat || rFloat {
			return lf == rf
		}
		return li == ri
	}

	switch l := left.(type) {
	case String:
		r, ok := right.(String)
		return ok && l == r
	case List:
		r, ok := right.(List)
		if !ok || len(l) != len(r) {
			return false
		}
		for i := range l {
			if !Equal(l[i], r[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// compare orders two values, returning -1, 0, 1 or unordered.
func compare(op string, left, right Value) (int, error) {
	li, lf, lFloat, lok := numeric(left)
	ri, rf, rFloat, rok := numeric(right)
	if lok && rok {
		if lFloat || rFloat {
			return compareFloats(lf, rf), nil
		}
		switch {
		case li < ri:
			return -1, nil
		case li > ri:
			return 1, nil
		}
		return 0, nil
	}

	switch l := left.(type) {
	case String:
		if r, ok := right.(String); ok {
			return strings.Compare(string(l), string(r)), nil
		}
	case List:
		if r, ok := right.(List); ok {
			for i := 0; i < len(l) && i < len(r); i++ {
				if Equal(l[i], r[i]) {
					continue
				}
				return compare(op, l[i], r[i])
			}
			switch {
			case len(l) < len(r):
				return -1, nil
			case len(l) > len(r):
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, ErrTypeMismatch.New(fmt.Sprintf(
		"'%s' not supported between instances of '%s' and '%s'",
		op, left.TypeName(), right.TypeName()))
}

// unordered is what compare returns when either side is NaN. Every ordering
// test fails for it.
const unordered = 2

func compareFloats(a, b float64) int {
	switch {
	case math.IsNaN(a) || math.IsNaN(b):
		return unordered
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Compare applies a comparison operator token. LT/LANGLE and GT/RANGLE are
// the same operator.
func Compare(op TokenType, left, right Value) (Value, error) {
	switch op {
	case TokenTypeEq:
		return Bool(Equal(left, right)), nil
	case TokenTypeNEQ:
		return Bool(!Equal(left, right)), nil
	}

	var (
		name string
		test func(c int) bool
	)
	switch op {
	case TokenTypeLT, TokenTypeLAngle:
		name, test = "<", func(c int) bool { return c < 0 }
	case TokenTypeGT, TokenTypeRAngle:
		name, test = ">", func(c int) bool { return c > 0 }
	case TokenTypeLTE:
		name, test = "<=", func(c int) bool { return c <= 0 }
	case TokenTypeGTE:
		name, test = ">=", func(c int) bool { return c >= 0 }
	default:
		return nil, fmt.Errorf("%s is not a comparison operator", op)
	}

	c, err := compare(name, left, right)
	if err != nil {
		return nil, err
	}
	if c == unordered {
		return Bool(false), nil
	}
	return Bool(test(c)), nil
}
