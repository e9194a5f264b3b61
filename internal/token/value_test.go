package token

import "testing"

func TestSimplify(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want any
	}{
		{"real complex collapses to float", complex(2.5, 0), 2.5},
		{"complex with imaginary stays complex", complex(1, 2), complex(1, 2)},
		{"integral float downcasts to int64", 4.0, int64(4)},
		{"near-integral float downcasts", 4.0 + 5e-15, int64(4)},
		{"fractional float stays float", 4.5, 4.5},
		{"non-numeric passes through", "hi", "hi"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Simplify(c.in); got != c.want {
				t.Errorf("Simplify(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{int64(3), 3, true},
		{3.5, 3.5, true},
		{complex(2, 0), 2, true},
		{complex(2, 1), 0, false},
		{"x", 0, false},
		{[]float64{1, 2}, 0, false},
	}
	for _, c := range cases {
		got, ok := ToFloat(c.in)
		if ok != c.ok || (ok && got != c.want) {
			t.Errorf("ToFloat(%v) = (%v, %v), want (%v, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{int64(5), "5"},
		{3.25, "3.25"},
		{complex(2, 3), "2+3i"},
		{complex(2, -3), "2-3i"},
		{"hi", "hi"},
		{[]float64{1, 2, 3}, "{1,2,3}"},
		{[][]float64{{1, 2}, {3, 4}}, "[[1,2],[3,4]]"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := FormatValue(c.in); got != c.want {
			t.Errorf("FormatValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatFixedRoundsToExactDecimalPlaces(t *testing.T) {
	cases := []struct {
		in    any
		fixed int
		want  string
	}{
		{3.14159, 2, "3.14"},
		{int64(3), 2, "3.00"},
		{1.0 / 3.0, 4, "0.3333"},
		{[]float64{1, 2.5}, 1, "{1.0,2.5}"},
	}
	for _, c := range cases {
		if got := FormatFixed(c.in, c.fixed); got != c.want {
			t.Errorf("FormatFixed(%v, %d) = %q, want %q", c.in, c.fixed, got, c.want)
		}
	}
}

func TestFormatFixedNegativeDefersToFormatValue(t *testing.T) {
	if got, want := FormatFixed(3.5, -1), FormatValue(3.5); got != want {
		t.Errorf("FormatFixed(3.5, -1) = %q, want %q (same as FormatValue)", got, want)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{int64(0), false},
		{int64(1), true},
		{0.0, false},
		{"", false},
		{"x", true},
		{[]float64{0, 0}, false},
		{[]float64{0, 1}, true},
	}
	for _, c := range cases {
		if got := Truthy(c.in); got != c.want {
			t.Errorf("Truthy(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
