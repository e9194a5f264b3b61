package token

import (
	"math"
	"math/cmplx"

	"github.com/tibasic/pb/internal/errors"
)

// postfixOp is a unary operator written after its operand (², ³, !,
// _T). The fill pass (spec.md §4.3 step 1) inserts a sentinel Literal
// to its right so the expression keeps the required operand/operator
// alternation; Apply uses only the left operand.
type postfixOp struct {
	name string
	pri  Priority
	fn   func(vm VM, left any) (any, error)
}

func (o *postfixOp) Priority() Priority  { return o.pri }
func (o *postfixOp) Token() string       { return o.name }
func (o *postfixOp) FillRight() Node     { return NewLiteral(int64(0)) }
func (o *postfixOp) Apply(vm VM, left, _ Node) (any, error) {
	lv, err := vm.Eval(left)
	if err != nil {
		return nil, err
	}
	return o.fn(vm, lv)
}

// sciNotationOp is the scientific-notation shorthand ᴇ: "AᴇB" means
// A * 10^B. A mantissa is usually present, but the calculator also
// accepts a bare "ᴇ99" meaning 1ᴇ99, so it implements LeftFiller rather
// than being a plain arithOp.
type sciNotationOp struct{}

func (sciNotationOp) Priority() Priority { return Exponent }
func (sciNotationOp) Token() string      { return "ᴇ" }
func (sciNotationOp) FillLeft() Node     { return NewLiteral(int64(1)) }
func (sciNotationOp) Apply(vm VM, left, right Node) (any, error) {
	lv, rv, err := binaryOperands(vm, left, right, "ᴇ")
	if err != nil {
		return nil, err
	}
	return Simplify(lv * cmplx.Pow(10, rv)), nil
}

func requireFloat(name string, v any) (float64, error) {
	f, ok := ToFloat(v)
	if !ok {
		return 0, &errors.ExecutionError{Msg: name + ": unsupported operand type " + FormatValue(v)}
	}
	return f, nil
}

func init() {
	Register("²", asFactory(&postfixOp{name: "²", pri: Exponent, fn: func(vm VM, left any) (any, error) {
		if m, ok := left.([][]float64); ok {
			return matMul(m, m)
		}
		f, err := requireFloat("²", left)
		if err != nil {
			return nil, err
		}
		return Simplify(f * f), nil
	}}))
	Register("³", asFactory(&postfixOp{name: "³", pri: Exponent, fn: func(vm VM, left any) (any, error) {
		f, err := requireFloat("³", left)
		if err != nil {
			return nil, err
		}
		return Simplify(f * f * f), nil
	}}))
	Register("!", asFactory(&postfixOp{name: "!", pri: Exponent, fn: func(vm VM, left any) (any, error) {
		f, err := requireFloat("!", left)
		if err != nil {
			return nil, err
		}
		if f < 0 || f != math.Trunc(f) {
			return nil, &errors.ExecutionError{Msg: "! requires a non-negative integer"}
		}
		result := 1.0
		for i := 2.0; i <= f; i++ {
			result *= i
		}
		return Simplify(result), nil
	}}))
	Register("_T", asFactory(&postfixOp{name: "_T", pri: Exponent, fn: func(vm VM, left any) (any, error) {
		m, ok := left.([][]float64)
		if !ok {
			return nil, &errors.ExecutionError{Msg: "_T requires a matrix operand"}
		}
		return transpose(m), nil
	}}))

	Register("ᴇ", asFactory(sciNotationOp{}))
}

func transpose(m [][]float64) [][]float64 {
	if len(m) == 0 {
		return nil
	}
	rows, cols := len(m), len(m[0])
	out := make([][]float64, cols)
	for c := 0; c < cols; c++ {
		out[c] = make([]float64, rows)
		for r := 0; r < rows; r++ {
			out[c][r] = m[r][c]
		}
	}
	return out
}

func matMul(a, b [][]float64) ([][]float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a[0]) != len(b) {
		return nil, &errors.ExecutionError{Msg: "matrix dimensions do not match for multiplication"}
	}
	rows, inner, cols := len(a), len(b), len(b[0])
	out := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			var sum float64
			for k := 0; k < inner; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}
