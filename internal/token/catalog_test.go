package token

import "testing"

func TestMatchLongestPrefersLongerToken(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{">=", ">="},
		{">", ">"},
		{"->", "->"},
	}
	for _, c := range cases {
		n, width, ok := MatchLongest(c.input)
		if !ok {
			t.Fatalf("MatchLongest(%q): no match", c.input)
		}
		if n.Token() != c.want {
			t.Errorf("MatchLongest(%q) = %q, want %q", c.input, n.Token(), c.want)
		}
		if width != len([]rune(c.want)) {
			t.Errorf("MatchLongest(%q) width = %d, want %d", c.input, width, len([]rune(c.want)))
		}
	}
}

func TestMatchLongestNoMatch(t *testing.T) {
	if _, _, ok := MatchLongest("§"); ok {
		t.Fatalf("expected no match for an unregistered symbol")
	}
}

func TestNewConstructsFreshInstances(t *testing.T) {
	a, ok := New("A")
	if !ok {
		t.Fatal("New(\"A\") not found")
	}
	b, ok := New("A")
	if !ok {
		t.Fatal("New(\"A\") not found on second call")
	}
	if a == b {
		t.Fatal("New must construct a fresh instance per call, not share a singleton")
	}
}
