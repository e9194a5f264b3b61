package token_test

import (
	"testing"

	"github.com/tibasic/pb/internal/interp"
	_ "github.com/tibasic/pb/internal/interp/builtins"
	"github.com/tibasic/pb/internal/token"
)

func testVM(t *testing.T) token.VM {
	t.Helper()
	prog, err := interp.Compile("0")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return interp.New(prog, "0", "<test>", nil)
}

func applyBinary(t *testing.T, key string, l, r any) (any, error) {
	t.Helper()
	n, ok := token.New(key)
	if !ok {
		t.Fatalf("operator %q not registered", key)
	}
	op, ok := n.(token.BinaryOp)
	if !ok {
		t.Fatalf("%q is not a BinaryOp", key)
	}
	return op.Apply(testVM(t), token.NewLiteral(l), token.NewLiteral(r))
}

func TestModFlooredDivision(t *testing.T) {
	cases := []struct {
		a, b float64
		want int64
	}{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
	}
	for _, c := range cases {
		got, err := applyBinary(t, "mod", int64(int(c.a)), int64(int(c.b)))
		if err != nil {
			t.Fatalf("mod(%v,%v): %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("mod(%v,%v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestModByZeroErrors(t *testing.T) {
	_, err := applyBinary(t, "mod", int64(5), int64(0))
	if err == nil {
		t.Fatal("expected an error for mod by zero")
	}
}

func TestModRejectsComplexOperands(t *testing.T) {
	_, err := applyBinary(t, "mod", complex(1, 2), int64(3))
	if err == nil {
		t.Fatal("expected an error for a complex operand to mod")
	}
}

// applyFunc1 calls a one-argument FuncBase-backed function token (a
// catalog entry registered via RegisterFunction, like ∛() by absorbing
// a single literal argument directly, the same shape FuncBase.RawArgs
// accepts without a wrapping Tuple.
func applyFunc1(t *testing.T, key string, arg any) (any, error) {
	t.Helper()
	n, ok := token.New(key)
	if !ok {
		t.Fatalf("function %q not registered", key)
	}
	type arger interface{ Absorb(token.Node) }
	n.(arger).Absorb(token.NewLiteral(arg))
	g, ok := n.(token.Gettable)
	if !ok {
		t.Fatalf("%q is not Gettable", key)
	}
	return g.Get(testVM(t))
}

// applyPostfix calls a postfix operator (², ³, !, _T), which is folded
// as a BinaryOp whose right operand is an unused fill sentinel.
func applyPostfix(t *testing.T, key string, left any) (any, error) {
	t.Helper()
	n, ok := token.New(key)
	if !ok {
		t.Fatalf("operator %q not registered", key)
	}
	op, ok := n.(token.BinaryOp)
	if !ok {
		t.Fatalf("%q is not a BinaryOp", key)
	}
	return op.Apply(testVM(t), token.NewLiteral(left), token.NewLiteral(int64(0)))
}

func TestCubeRootOfNegativeNumber(t *testing.T) {
	got, err := applyFunc1(t, "∛(", int64(-8))
	if err != nil {
		t.Fatalf("∛(-8): %v", err)
	}
	if got != int64(-2) {
		t.Fatalf("∛(-8) = %v, want -2 (downcast to int)", got)
	}
}

func TestCubeRootOfPerfectCube(t *testing.T) {
	got, err := applyFunc1(t, "∛(", int64(27))
	if err != nil {
		t.Fatalf("∛(27): %v", err)
	}
	if got != int64(3) {
		t.Fatalf("∛(27) = %v, want 3 (downcast to int)", got)
	}
}

func TestFactorialRejectsNegativeAndFractional(t *testing.T) {
	if _, err := applyPostfix(t, "!", int64(-1)); err == nil {
		t.Error("expected an error for (-1)!")
	}
	if _, err := applyPostfix(t, "!", 2.5); err == nil {
		t.Error("expected an error for 2.5!")
	}
}

func TestFactorialOfFive(t *testing.T) {
	got, err := applyPostfix(t, "!", int64(5))
	if err != nil {
		t.Fatalf("5!: %v", err)
	}
	if got != int64(120) {
		t.Fatalf("5! = %v, want 120", got)
	}
}

func TestTransposePostfix(t *testing.T) {
	got, err := applyPostfix(t, "_T", [][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil {
		t.Fatalf("_T: %v", err)
	}
	m, ok := got.([][]float64)
	if !ok {
		t.Fatalf("_T result is %T, want [][]float64", got)
	}
	want := [][]float64{{1, 4}, {2, 5}, {3, 6}}
	if len(m) != len(want) {
		t.Fatalf("_T rows = %d, want %d", len(m), len(want))
	}
	for i := range want {
		for j := range want[i] {
			if m[i][j] != want[i][j] {
				t.Errorf("_T[%d][%d] = %v, want %v", i, j, m[i][j], want[i][j])
			}
		}
	}
}

func TestTransposeRejectsNonMatrix(t *testing.T) {
	if _, err := applyPostfix(t, "_T", int64(5)); err == nil {
		t.Fatal("expected an error transposing a scalar")
	}
}

func TestNotNegatesTruthiness(t *testing.T) {
	got, err := applyFunc1(t, "not(", int64(0))
	if err != nil {
		t.Fatalf("not(0): %v", err)
	}
	if got != int64(1) {
		t.Fatalf("not(0) = %v, want 1", got)
	}

	got, err = applyFunc1(t, "not(", int64(5))
	if err != nil {
		t.Fatalf("not(5): %v", err)
	}
	if got != int64(0) {
		t.Fatalf("not(5) = %v, want 0", got)
	}
}

func TestNotRejectsNonNumericArgument(t *testing.T) {
	if _, err := applyFunc1(t, "not(", "x"); err == nil {
		t.Fatal("expected an error for not( on a non-numeric argument")
	}
}

func TestSquarePostfixOnMatrixMultiplies(t *testing.T) {
	got, err := applyPostfix(t, "²", [][]float64{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("² on matrix: %v", err)
	}
	m, ok := got.([][]float64)
	if !ok {
		t.Fatalf("² on matrix result is %T, want [][]float64", got)
	}
	want := [][]float64{{7, 10}, {15, 22}}
	for i := range want {
		for j := range want[i] {
			if m[i][j] != want[i][j] {
				t.Errorf("result[%d][%d] = %v, want %v", i, j, m[i][j], want[i][j])
			}
		}
	}
}
