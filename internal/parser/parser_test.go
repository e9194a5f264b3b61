package parser

import (
	"testing"

	"github.com/tibasic/pb/internal/ast"
	_ "github.com/tibasic/pb/internal/interp/builtins"
	"github.com/tibasic/pb/internal/lexer"
	"github.com/tibasic/pb/internal/token"
)

func buildLine(t *testing.T, line string) []token.Node {
	t.Helper()
	lines, _, err := lexer.Tokenize(line)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", line, err)
	}
	row, err := BuildLine(lines[0])
	if err != nil {
		t.Fatalf("BuildLine(%q): %v", line, err)
	}
	return row
}

func buildOne(t *testing.T, line string) token.Node {
	t.Helper()
	row := buildLine(t, line)
	if len(row) != 1 {
		t.Fatalf("BuildLine(%q) produced %d columns, want 1", line, len(row))
	}
	return row[0]
}

func TestImplicitMultiplication(t *testing.T) {
	n := buildOne(t, "2A")
	expr, ok := n.(*ast.Expression)
	if !ok {
		t.Fatalf("BuildColumn(\"2A\") = %T, want *ast.Expression", n)
	}
	if got, want := expr.Token(), "2 * A"; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestLeadingMinusRewrite(t *testing.T) {
	n := buildOne(t, "-3")
	expr, ok := n.(*ast.Expression)
	if !ok {
		t.Fatalf("BuildColumn(\"-3\") = %T, want *ast.Expression", n)
	}
	if got, want := expr.Token(), "-1 * 3"; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestSubtractionIsNotRewritten(t *testing.T) {
	n := buildOne(t, "2-3")
	expr, ok := n.(*ast.Expression)
	if !ok {
		t.Fatalf("BuildColumn(\"2-3\") = %T, want *ast.Expression", n)
	}
	if got, want := expr.Token(), "2 - 3"; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestLeadingMinusAfterOperator(t *testing.T) {
	n := buildOne(t, "2*-3")
	expr, ok := n.(*ast.Expression)
	if !ok {
		t.Fatalf("BuildColumn(\"2*-3\") = %T, want *ast.Expression", n)
	}
	if got, want := expr.Token(), "2 * -1 * 3"; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestBareArgumentAbsorb(t *testing.T) {
	type argHolder interface {
		Arg() token.Node
	}
	n := buildOne(t, `Disp "hi"`)
	h, ok := n.(argHolder)
	if !ok {
		t.Fatalf("Disp node %T has no Arg()", n)
	}
	if h.Arg() == nil {
		t.Fatalf("Disp absorbed no argument")
	}
	if got, want := h.Arg().Token(), "hi"; got != want {
		t.Errorf("absorbed argument = %q, want %q", got, want)
	}
}

func TestLabelTakerConcatenatesName(t *testing.T) {
	n := buildOne(t, "Lbl AB")
	if _, ok := n.(token.LabelTaker); !ok {
		t.Fatalf("Lbl node %T is not a LabelTaker", n)
	}
	if got, want := n.Token(), "Lbl AB"; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestGotoConcatenatesMultiTokenName(t *testing.T) {
	n := buildOne(t, "Goto A B")
	if got, want := n.Token(), "Goto AB"; got != want {
		t.Errorf("Token() = %q, want %q (label name concatenates every token after Goto)", got, want)
	}
}

func TestFunctionArgumentAbsorb(t *testing.T) {
	type rawArger interface {
		RawArgs() []token.Node
	}
	n := buildOne(t, "sin(30)")
	fn, ok := n.(rawArger)
	if !ok {
		t.Fatalf("sin(30) = %T, has no RawArgs()", n)
	}
	args := fn.RawArgs()
	if len(args) != 1 || args[0].Token() != "30" {
		t.Fatalf("sin( argument list = %v, want [30]", args)
	}
}

func TestListLiteralBuildsTuple(t *testing.T) {
	n := buildOne(t, "{1,2,3}")
	tup, ok := n.(*ast.Tuple)
	if !ok {
		t.Fatalf("{1,2,3} = %T, want *ast.Tuple", n)
	}
	if got, want := tup.Token(), "{1,2,3}"; got != want {
		t.Errorf("Token() = %q, want %q", got, want)
	}
}

func TestUnmatchedBracketIsParseError(t *testing.T) {
	lines, _, err := lexer.Tokenize("(1+2")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if _, err := BuildLine(lines[0]); err == nil {
		t.Fatal("expected a parse error for an unterminated bracket")
	}
}

func TestMultipleColumnsSplitOnColon(t *testing.T) {
	row := buildLine(t, `5→A:Disp A`)
	if len(row) != 2 {
		t.Fatalf("BuildLine with one colon produced %d columns, want 2", len(row))
	}
}
