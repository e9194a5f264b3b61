package builtins

import (
	"math"
	"math/cmplx"

	"github.com/tibasic/pb/internal/errors"
	"github.com/tibasic/pb/internal/token"
)

func registerArith() {
	token.RegisterFunction("√", newFunc1("√(", func(c complex128) (complex128, error) {
		return cmplx.Sqrt(c), nil
	}))
	token.RegisterFunction("∛", newFunc1("∛(", realOnly(func(f float64) float64 {
		return math.Cbrt(f)
	})))
	token.RegisterFunction("abs", newFunc1("abs(", func(c complex128) (complex128, error) {
		return complex(cmplx.Abs(c), 0), nil
	}))
	token.RegisterFunction("int", newFunc1("int(", realOnly(math.Trunc)))
	token.RegisterFunction("iPart", newFunc1("iPart(", realOnly(math.Trunc)))
	token.RegisterFunction("fPart", newFunc1("fPart(", realOnly(func(f float64) float64 {
		_, frac := math.Modf(f)
		return frac
	})))
	token.RegisterFunction("floor", newFunc1("floor(", realOnly(math.Floor)))
	token.RegisterFunction("ceiling", newFunc1("ceiling(", realOnly(math.Ceil)))
	token.RegisterFunction("ln", newFunc1("ln(", func(c complex128) (complex128, error) {
		return cmplx.Log(c), nil
	}))
	token.RegisterFunction("log", newFunc1("log(", func(c complex128) (complex128, error) {
		return cmplx.Log10(c), nil
	}))
	token.RegisterFunction("round", newFunc2("round(", func(f, n float64) (any, error) {
		mult := math.Pow(10, n)
		return token.Simplify(math.Round(f*mult) / mult), nil
	}))
	token.RegisterFunction("min", newFunc2("min(", func(a, b float64) (any, error) {
		return token.Simplify(math.Min(a, b)), nil
	}))
	token.RegisterFunction("max", newFunc2("max(", func(a, b float64) (any, error) {
		return token.Simplify(math.Max(a, b)), nil
	}))
	token.RegisterFunction("gcd", newFunc2("gcd(", func(a, b float64) (any, error) {
		return token.Simplify(float64(gcd(int64(a), int64(b)))), nil
	}))
	token.RegisterFunction("lcm", newFunc2("lcm(", func(a, b float64) (any, error) {
		ia, ib := int64(a), int64(b)
		g := gcd(ia, ib)
		if g == 0 {
			return int64(0), nil
		}
		return token.Simplify(float64(ia / g * ib)), nil
	}))
}

// realOnly wraps a real-valued math.* function as a func1 body,
// rejecting a genuinely complex argument rather than silently
// discarding its imaginary part.
func realOnly(fn func(float64) float64) func(complex128) (complex128, error) {
	return func(c complex128) (complex128, error) {
		if imag(c) != 0 {
			return 0, &errors.ExecutionError{Msg: "this function requires a real argument"}
		}
		return complex(fn(real(c)), 0), nil
	}
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
