package builtins

import (
	"math/cmplx"

	"github.com/tibasic/pb/internal/token"
)

// trigSet registers the plain, inverse (superscript -1, spelled "⁻¹"
// in the catalog key) and hyperbolic/inverse-hyperbolic ("h"/"h⁻¹"
// suffix) forms of one trig function from a single complex
// implementation of each, matching the four-way family every
// TI trig key produces (spec.md §4.6).
func trigSet(name string, plain, inv, hyp, invHyp func(complex128) complex128) {
	token.RegisterFunction(name, newFunc1(name+"(", func(c complex128) (complex128, error) { return plain(c), nil }))
	token.RegisterFunction(name+"⁻¹", newFunc1(name+"⁻¹(", func(c complex128) (complex128, error) { return inv(c), nil }))
	token.RegisterFunction(name+"h", newFunc1(name+"h(", func(c complex128) (complex128, error) { return hyp(c), nil }))
	token.RegisterFunction(name+"h⁻¹", newFunc1(name+"h⁻¹(", func(c complex128) (complex128, error) { return invHyp(c), nil }))
}

func registerTrig() {
	trigSet("sin", cmplx.Sin, cmplx.Asin, cmplx.Sinh, cmplx.Asinh)
	trigSet("cos", cmplx.Cos, cmplx.Acos, cmplx.Cosh, cmplx.Acosh)
	trigSet("tan", cmplx.Tan, cmplx.Atan, cmplx.Tanh, cmplx.Atanh)
}
