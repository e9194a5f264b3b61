package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// fixedPrinter renders Fix n output under the calculator's own display
// locale (period decimal, no grouping) rather than the host's.
var fixedPrinter = message.NewPrinter(language.AmericanEnglish)

// integralEpsilon is the tolerance spec.md §3 names for the
// integer/float unification: a float result within this distance of
// its truncation downcasts to an integer.
const integralEpsilon = 1e-14

// Simplify applies the VM's `get` projection described in spec.md §4.3:
// a complex value with a zero imaginary part collapses to its real
// part, and a float that is exactly integral (within integralEpsilon)
// downcasts to an int64.
func Simplify(v any) any {
	switch n := v.(type) {
	case complex128:
		if imag(n) == 0 {
			return Simplify(real(n))
		}
		return n
	case float64:
		r := math.Round(n)
		if math.Abs(n-r) < integralEpsilon {
			return int64(r)
		}
		return n
	default:
		return v
	}
}

// ToFloat converts a numeric Value to float64. Lists, matrices and
// strings are not numeric and return ok=false.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case complex128:
		if imag(n) == 0 {
			return real(n), true
		}
		return 0, false
	}
	return 0, false
}

// ToComplex converts any numeric Value to complex128, the common type
// used to implement arithmetic uniformly (real calculator arithmetic
// only rarely produces an imaginary part, e.g. sqrt of a negative).
func ToComplex(v any) (complex128, bool) {
	switch n := v.(type) {
	case int64:
		return complex(float64(n), 0), true
	case int:
		return complex(float64(n), 0), true
	case float64:
		return complex(n, 0), true
	case complex128:
		return n, true
	}
	return 0, false
}

// IsNumber reports whether v is one of the scalar numeric Value kinds.
func IsNumber(v any) bool {
	switch v.(type) {
	case int64, int, float64, complex128:
		return true
	}
	return false
}

// FormatValue renders a Value the way Disp/Output print it: integers
// bare, floats trimmed of trailing zeros, complex numbers as a+bi,
// lists/matrices bracketed and comma-separated, strings verbatim.
func FormatValue(v any) string {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case int:
		return strconv.Itoa(n)
	case float64:
		return strconv.FormatFloat(n, 'g', -1, 64)
	case complex128:
		if imag(n) == 0 {
			return FormatValue(Simplify(real(n)))
		}
		sign := "+"
		if imag(n) < 0 {
			sign = "-"
		}
		return fmt.Sprintf("%s%s%si", FormatValue(Simplify(real(n))), sign, FormatValue(Simplify(math.Abs(imag(n)))))
	case string:
		return n
	case []float64:
		parts := make([]string, len(n))
		for i, f := range n {
			parts[i] = FormatValue(Simplify(f))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case [][]float64:
		rows := make([]string, len(n))
		for i, row := range n {
			parts := make([]string, len(row))
			for j, f := range row {
				parts[j] = FormatValue(Simplify(f))
			}
			rows[i] = "[" + strings.Join(parts, ",") + "]"
		}
		return "[" + strings.Join(rows, ",") + "]"
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", n)
	}
}

// FormatFixed renders v the way Disp/Output do once a Fix n mode is
// active (spec.md §4.7): real numbers round to exactly n decimal
// places instead of FormatValue's trim-trailing-zeros default. fixed
// < 0 is the Float (floating) mode and defers straight to FormatValue.
func FormatFixed(v any, fixed int) string {
	if fixed < 0 {
		return FormatValue(v)
	}
	switch n := v.(type) {
	case int64:
		return fixedPrinter.Sprintf("%.*f", fixed, float64(n))
	case int:
		return fixedPrinter.Sprintf("%.*f", fixed, float64(n))
	case float64:
		return fixedPrinter.Sprintf("%.*f", fixed, n)
	case complex128:
		if imag(n) == 0 {
			return FormatFixed(Simplify(real(n)), fixed)
		}
		sign := "+"
		if imag(n) < 0 {
			sign = "-"
		}
		return fmt.Sprintf("%s%s%si", FormatFixed(Simplify(real(n)), fixed), sign, FormatFixed(Simplify(math.Abs(imag(n))), fixed))
	case []float64:
		parts := make([]string, len(n))
		for i, f := range n {
			parts[i] = FormatFixed(Simplify(f), fixed)
		}
		return "{" + strings.Join(parts, ",") + "}"
	case [][]float64:
		rows := make([]string, len(n))
		for i, row := range n {
			parts := make([]string, len(row))
			for j, f := range row {
				parts[j] = FormatFixed(Simplify(f), fixed)
			}
			rows[i] = "[" + strings.Join(parts, ",") + "]"
		}
		return "[" + strings.Join(rows, ",") + "]"
	default:
		return FormatValue(v)
	}
}

// Truthy mirrors the source's `bool(x)` coercion used by If/While/
// Repeat conditions: zero (or an all-zero list) is false, anything
// else is true.
func Truthy(v any) bool {
	switch n := v.(type) {
	case int64:
		return n != 0
	case int:
		return n != 0
	case float64:
		return n != 0
	case complex128:
		return n != 0
	case string:
		return n != ""
	case []float64:
		for _, f := range n {
			if f != 0 {
				return true
			}
		}
		return false
	}
	return v != nil
}
