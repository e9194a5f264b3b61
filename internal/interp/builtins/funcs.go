// Package builtins registers the calculator's standard library into
// internal/token's catalog: arithmetic and trig functions, probability
// functions, control-flow statements, and I/O statements. It is the
// one package allowed to import internal/interp's VM concretely for
// anything the token.VM interface doesn't already expose (none of it
// currently does; everything here is written against token.VM, like
// the rest of the token package).
package builtins

import (
	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// func1 is a function token taking exactly one numeric argument and
// returning one numeric result, covering most of the math library
// (√, sin, cos, ln, ...).
type func1 struct {
	token.FuncBase
	fn func(complex128) (complex128, error)
}

func newFunc1(name string, fn func(complex128) (complex128, error)) token.Factory {
	return func() token.Node { return &func1{FuncBase: token.FuncBase{Name: name}, fn: fn} }
}

func (f *func1) Get(vm token.VM) (any, error) {
	args, err := f.Args(vm)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, &errors.ExecutionError{Msg: f.Name + "( expects exactly one argument"}
	}
	c, ok := token.ToComplex(args[0])
	if !ok {
		return nil, &errors.ExecutionError{Msg: f.Name + "( requires a numeric argument"}
	}
	r, err := f.fn(c)
	if err != nil {
		return nil, err
	}
	return token.Simplify(r), nil
}

// func2 is a function token taking exactly two numeric arguments
// (round, min, max, gcd, lcm, randNorm, ...).
type func2 struct {
	token.FuncBase
	fn func(a, b float64) (any, error)
}

func newFunc2(name string, fn func(a, b float64) (any, error)) token.Factory {
	return func() token.Node { return &func2{FuncBase: token.FuncBase{Name: name}, fn: fn} }
}

func (f *func2) Get(vm token.VM) (any, error) {
	args, err := f.Args(vm)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, &errors.ExecutionError{Msg: f.Name + "( expects exactly two arguments"}
	}
	a, ok1 := token.ToFloat(args[0])
	b, ok2 := token.ToFloat(args[1])
	if !ok1 || !ok2 {
		return nil, &errors.ExecutionError{Msg: f.Name + "( requires numeric arguments"}
	}
	return f.fn(a, b)
}

func init() {
	registerArith()
	registerTrig()
	registerProb()
	registerControl()
	registerIO()
}
