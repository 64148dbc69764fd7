package preprocess

import "testing"

func TestEvalExpr(t *testing.T) {
	defined := func(name string) bool { return name == "FOO" }

	cases := []struct {
		expr string
		want bool
	}{
		{"FOO", true},
		{"BAR", false},
		{"!BAR", true},
		{"FOO && BAR", false},
		{"FOO || BAR", true},
		{"!(FOO && BAR)", true},
		{"(FOO)", true},
	}
	for _, c := range cases {
		got, err := evalExpr(c.expr, defined)
		if err != nil {
			t.Fatalf("evalExpr(%q) error: %v", c.expr, err)
		}
		if got != c.want {
			t.Errorf("evalExpr(%q) = %v, want %v", c.expr, got, c.want)
		}
	}
}

func TestEvalExprMalformed(t *testing.T) {
	defined := func(string) bool { return false }
	if _, err := evalExpr("FOO &&", defined); err == nil {
		t.Error("expected error for trailing operator")
	}
	if _, err := evalExpr("(FOO", defined); err == nil {
		t.Error("expected error for unbalanced parens")
	}
	if _, err := evalExpr("1FOO", defined); err == nil {
		t.Error("expected error for invalid identifier start")
	}
}
