package lexer

import (
	"testing"

	_ "github.com/tibasic/pb/internal/interp/builtins"
	"github.com/tibasic/pb/internal/token"
)

func tokensOf(t *testing.T, line string) []token.Node {
	t.Helper()
	toks, err := tokenizeLine(line)
	if err != nil {
		t.Fatalf("tokenizeLine(%q): %v", line, err)
	}
	return toks
}

func texts(toks []token.Node) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Token()
	}
	return out
}

func TestTokenizeLineNumbers(t *testing.T) {
	cases := []struct {
		line string
		want string
	}{
		{"5", "5"},
		{"3.", "3"},
		{".5", "0.5"},
		{"3.25", "3.25"},
	}
	for _, c := range cases {
		toks := tokensOf(t, c.line)
		if len(toks) != 1 {
			t.Fatalf("tokenizeLine(%q) = %d tokens, want 1", c.line, len(toks))
		}
		if got := toks[0].Token(); got != c.want {
			t.Errorf("tokenizeLine(%q) token = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestTokenizeLineString(t *testing.T) {
	toks := tokensOf(t, `"hi there`)
	if len(toks) != 1 || toks[0].Token() != "hi there" {
		t.Fatalf("unterminated string literal: got %#v", toks)
	}
}

func TestTokenizeLineLongestMatch(t *testing.T) {
	// ">=" must win over ">" even though both are registered.
	toks := tokensOf(t, "A>=B")
	got := texts(toks)
	want := []string{"A", ">=", "B"}
	if len(got) != len(want) {
		t.Fatalf("tokenizeLine(\"A>=B\") = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeLineFunctionOpensArgs(t *testing.T) {
	toks := tokensOf(t, "sin(30)")
	got := texts(toks)
	want := []string{"sin(", "30", ")"}
	if len(got) != len(want) {
		t.Fatalf("tokenizeLine(\"sin(30)\") = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTokenizeLineListName(t *testing.T) {
	toks := tokensOf(t, "∟FOO")
	if len(toks) != 1 {
		t.Fatalf("tokenizeLine(\"∟FOO\") = %d tokens, want 1", len(toks))
	}
	lv, ok := toks[0].(*token.ListVar)
	if !ok {
		t.Fatalf("tokenizeLine(\"∟FOO\") produced %T, want *token.ListVar", toks[0])
	}
	if lv.Name != "FOO" {
		t.Errorf("list name = %q, want %q", lv.Name, "FOO")
	}
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	if _, err := tokenizeLine("§"); err == nil {
		t.Fatal("expected a parse error for an unrecognized character")
	}
}

func TestTokenizeTotalAcrossLines(t *testing.T) {
	lines, raw, err := Tokenize("5→A\nDisp A")
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(lines) != 2 || len(raw) != 2 {
		t.Fatalf("Tokenize produced %d lines, want 2", len(lines))
	}
	if got := texts(lines[0]); len(got) != 3 {
		t.Errorf("line 0 tokens = %v, want 3 entries", got)
	}
}
