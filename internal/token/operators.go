package token

import (
	"math"
	"math/cmplx"

	"github.com/tibasic/pb/internal/errors"
)

func binaryOperands(vm VM, left, right Node, name string) (complex128, complex128, error) {
	lv, err := vm.Eval(left)
	if err != nil {
		return 0, 0, err
	}
	rv, err := vm.Eval(right)
	if err != nil {
		return 0, 0, err
	}
	lc, ok := ToComplex(lv)
	if !ok {
		return 0, 0, &errors.ExecutionError{Msg: name + ": unsupported operand type " + FormatValue(lv)}
	}
	rc, ok := ToComplex(rv)
	if !ok {
		return 0, 0, &errors.ExecutionError{Msg: name + ": unsupported operand type " + FormatValue(rv)}
	}
	return lc, rc, nil
}

// arithOp is embedded by every scalar binary arithmetic operator; it
// carries the priority and textual name, and dispatches Apply to a
// complex128 folding function supplied by the concrete operator.
type arithOp struct {
	name string
	pri  Priority
	op   func(l, r complex128) (complex128, error)
}

func (o *arithOp) Priority() Priority { return o.pri }
func (o *arithOp) Token() string      { return o.name }
func (o *arithOp) Apply(vm VM, left, right Node) (any, error) {
	l, r, err := binaryOperands(vm, left, right, o.name)
	if err != nil {
		return nil, err
	}
	result, err := o.op(l, r)
	if err != nil {
		return nil, err
	}
	return Simplify(result), nil
}

func newArith(name string, pri Priority, op func(l, r complex128) (complex128, error)) *arithOp {
	return &arithOp{name: name, pri: pri, op: op}
}

// boolOp implements the Bool/Logic operator families: the underlying
// comparison works on real float64 operands and the result is coerced
// to 1 or 0, matching spec.md §4.5.
type boolOp struct {
	name string
	pri  Priority
	cmp  func(l, r float64) bool
}

func (o *boolOp) Priority() Priority { return o.pri }
func (o *boolOp) Token() string      { return o.name }
func (o *boolOp) Apply(vm VM, left, right Node) (any, error) {
	lv, err := vm.Eval(left)
	if err != nil {
		return nil, err
	}
	rv, err := vm.Eval(right)
	if err != nil {
		return nil, err
	}
	lf, lok := ToFloat(lv)
	rf, rok := ToFloat(rv)
	if !lok || !rok {
		return nil, &errors.ExecutionError{Msg: o.name + ": unsupported operand type"}
	}
	if o.cmp(lf, rf) {
		return int64(1), nil
	}
	return int64(0), nil
}

// notOp implements not(, the fourth boolean/logic operator spec.md
// §4.5 names alongside and/or/xor. Unlike those three it's unary and
// written with parens like any other function rather than infix, so
// it embeds FuncBase instead of following boolOp's shape.
type notOp struct{ FuncBase }

func newNot() Node { return &notOp{FuncBase{Name: "not("}} }

func (o *notOp) Get(vm VM) (any, error) {
	args, err := o.Args(vm)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, &errors.ExecutionError{Msg: "not( expects exactly one argument"}
	}
	f, ok := ToFloat(args[0])
	if !ok {
		return nil, &errors.ExecutionError{Msg: "not( requires a numeric argument"}
	}
	if f == 0 {
		return int64(1), nil
	}
	return int64(0), nil
}

// asFactory wraps a stateless, already-constructed Node so it can be
// registered in the catalog, which stores constructors rather than
// singletons (token.Factory). Operators carry no per-occurrence state,
// so every occurrence safely shares the same instance.
func asFactory(n Node) Factory { return func() Node { return n } }

func init() {
	Register("+", asFactory(newArith("+", AddSub, func(l, r complex128) (complex128, error) { return l + r, nil })))
	Register("-", asFactory(newArith("-", AddSub, func(l, r complex128) (complex128, error) { return l - r, nil })))
	Register("*", asFactory(newArith("*", MultDiv, func(l, r complex128) (complex128, error) { return l * r, nil })))
	Register("/", asFactory(newArith("/", MultDiv, func(l, r complex128) (complex128, error) {
		if r == 0 {
			return 0, &errors.ExecutionError{Msg: "division by zero"}
		}
		return l / r, nil
	})))
	Register("^", asFactory(newArith("^", Exponent, func(l, r complex128) (complex128, error) { return cmplx.Pow(l, r), nil })))
	Register("mod", asFactory(newArith("mod", MultDiv, func(l, r complex128) (complex128, error) {
		if imag(l) != 0 || imag(r) != 0 {
			return 0, &errors.ExecutionError{Msg: "mod: unsupported operand type"}
		}
		a, b := real(l), real(r)
		if b == 0 {
			return 0, &errors.ExecutionError{Msg: "mod by zero"}
		}
		return complex(a-b*math.Floor(a/b), 0), nil
	})))

	Register("and", asFactory(&boolOp{name: "and", pri: Bool, cmp: func(l, r float64) bool { return l != 0 && r != 0 }}))
	Register("or", asFactory(&boolOp{name: "or", pri: Bool, cmp: func(l, r float64) bool { return l != 0 || r != 0 }}))
	Register("xor", asFactory(&boolOp{name: "xor", pri: Bool, cmp: func(l, r float64) bool { return (l != 0) != (r != 0) }}))
	RegisterFunction("not", newNot)

	Register("<", asFactory(&boolOp{name: "<", pri: Logic, cmp: func(l, r float64) bool { return l < r }}))
	Register(">", asFactory(&boolOp{name: ">", pri: Logic, cmp: func(l, r float64) bool { return l > r }}))
	Register("<=", asFactory(&boolOp{name: "<=", pri: Logic, cmp: func(l, r float64) bool { return l <= r }}))
	Register(">=", asFactory(&boolOp{name: ">=", pri: Logic, cmp: func(l, r float64) bool { return l >= r }}))
	Register("≤", asFactory(&boolOp{name: "≤", pri: Logic, cmp: func(l, r float64) bool { return l <= r }}))
	Register("≥", asFactory(&boolOp{name: "≥", pri: Logic, cmp: func(l, r float64) bool { return l >= r }}))
	Register("=", asFactory(&boolOp{name: "=", pri: Logic, cmp: func(l, r float64) bool { return l == r }}))
	Register("≠", asFactory(&boolOp{name: "≠", pri: Logic, cmp: func(l, r float64) bool { return l != r }}))

	Register("→", asFactory(&storeOp{name: "→"}))
	Register("->", asFactory(&storeOp{name: "->"}))
}

// storeOp implements the in-expression store operator: `left → right`
// evaluates left, assigns it into right (which must be Settable), and
// returns the stored value (spec.md §4.3).
type storeOp struct{ name string }

func (o *storeOp) Priority() Priority { return Set }
func (o *storeOp) Token() string      { return o.name }
func (o *storeOp) Apply(vm VM, left, right Node) (any, error) {
	lv, err := vm.Eval(left)
	if err != nil {
		return nil, err
	}
	target, ok := right.(Settable)
	if !ok {
		return nil, &errors.ExpressionError{Msg: "store target is not assignable: " + right.Token()}
	}
	if err := target.Set(vm, lv); err != nil {
		return nil, err
	}
	return lv, nil
}

// IsStore reports whether n is a store operator. The expression
// validator does not call it and does not reject chained stores: a
// chain such as 5→A→B folds left to right, storing into A and then B.
func IsStore(n Node) bool {
	_, ok := n.(*storeOp)
	return ok
}
