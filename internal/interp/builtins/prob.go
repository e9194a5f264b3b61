package builtins

import (
	"math/rand"

	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

// randVar is the bare "rand" token (no parentheses): reading it draws
// one uniform [0,1) value, matching the calculator's habit of
// overloading a variable-shaped token with a side effect on Get.
type randVar struct{}

func (randVar) Priority() token.Priority    { return token.None }
func (randVar) Token() string               { return "rand" }
func (randVar) Get(token.VM) (any, error)   { return rand.Float64(), nil }

func registerProb() {
	token.RegisterVariable("rand", func() token.Node { return randVar{} })

	token.RegisterFunction("rand", newVarArgsFunc("rand(", func(args []any) (any, error) {
		if len(args) == 0 {
			return rand.Float64(), nil
		}
		n, ok := token.ToFloat(args[0])
		if !ok || n < 0 {
			return nil, &errors.ExecutionError{Msg: "rand( expects a non-negative count"}
		}
		out := make([]float64, int(n))
		for i := range out {
			out[i] = rand.Float64()
		}
		return out, nil
	}))

	token.RegisterFunction("randInt", newVarArgsFunc("randInt(", func(args []any) (any, error) {
		if len(args) < 2 {
			return nil, &errors.ExecutionError{Msg: "randInt( expects at least two arguments"}
		}
		lo, ok1 := token.ToFloat(args[0])
		hi, ok2 := token.ToFloat(args[1])
		if !ok1 || !ok2 {
			return nil, &errors.ExecutionError{Msg: "randInt( requires numeric bounds"}
		}
		draw := func() float64 { return float64(int64(lo) + rand.Int63n(int64(hi)-int64(lo)+1)) }
		if len(args) == 2 {
			return draw(), nil
		}
		n, ok := token.ToFloat(args[2])
		if !ok || n < 0 {
			return nil, &errors.ExecutionError{Msg: "randInt( expects a non-negative count"}
		}
		out := make([]float64, int(n))
		for i := range out {
			out[i] = draw()
		}
		return out, nil
	}))

	token.RegisterFunction("randNorm", newFunc2("randNorm(", func(mean, stddev float64) (any, error) {
		return mean + stddev*rand.NormFloat64(), nil
	}))

	token.RegisterFunction("randBin", newVarArgsFunc("randBin(", func(args []any) (any, error) {
		return nil, &errors.ExecutionError{Msg: "randBin( is not implemented"}
	}))
	token.RegisterFunction("randM", newVarArgsFunc("randM(", func(args []any) (any, error) {
		return nil, &errors.ExecutionError{Msg: "randM( is not implemented"}
	}))

	token.RegisterFunction("nPr", newFunc2("nPr(", func(n, r float64) (any, error) {
		if n < 0 || r < 0 || r > n {
			return nil, &errors.ExecutionError{Msg: "nPr( requires 0 <= r <= n"}
		}
		return token.Simplify(permutations(n, r)), nil
	}))
	token.RegisterFunction("nCr", newFunc2("nCr(", func(n, r float64) (any, error) {
		if n < 0 || r < 0 || r > n {
			return nil, &errors.ExecutionError{Msg: "nCr( requires 0 <= r <= n"}
		}
		return token.Simplify(permutations(n, r) / factorial(r)), nil
	}))
}

func factorial(n float64) float64 {
	result := 1.0
	for i := 2.0; i <= n; i++ {
		result *= i
	}
	return result
}

func permutations(n, r float64) float64 {
	result := 1.0
	for i := 0.0; i < r; i++ {
		result *= n - i
	}
	return result
}

// varArgsFunc is a function token accepting any number of already
// evaluated arguments, for the rand/randInt family whose arity varies.
type varArgsFunc struct {
	token.FuncBase
	fn func([]any) (any, error)
}

func newVarArgsFunc(name string, fn func([]any) (any, error)) token.Factory {
	return func() token.Node { return &varArgsFunc{FuncBase: token.FuncBase{Name: name}, fn: fn} }
}

func (f *varArgsFunc) Get(vm token.VM) (any, error) {
	args, err := f.Args(vm)
	if err != nil {
		return nil, err
	}
	v, err := f.fn(args)
	if err != nil {
		return nil, err
	}
	return token.Simplify(v), nil
}
