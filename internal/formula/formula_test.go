package formula

import (
	"errors"
	"math"
	"testing"
)

func TestEvalArithmetic(t *testing.T) {
	vars := VarMap{"sqft": 300, "coats": 2, "rooms": 2}

	cases := []struct {
		expr string
		want float64
	}{
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 - 4 - 3", 3},
		{"12 / 4 / 3", 1},
		{"-sqft / 100", -3},
		{"sqft * coats / 100 + rooms", 8},
		{"ceil(sqft * coats / 100 + rooms)", 8},
		{"ceil(0.1)", 1},
		{"floor(1.9)", 1},
		{"min(3, 7)", 3},
		{"max(3, 7, 5)", 7},
		{"min(rooms, 1) * 2.5", 2.5},
		{"2.5", 2.5},
	}

	for _, tc := range cases {
		got, err := Eval(tc.expr, vars)
		if err != nil {
			t.Fatalf("Eval(%q): unexpected error: %v", tc.expr, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("Eval(%q) = %v, want %v", tc.expr, got, tc.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	vars := VarMap{"x": 1}

	t.Run("empty", func(t *testing.T) {
		if _, err := Eval("   ", vars); !errors.Is(err, ErrEmptyExpression) {
			t.Fatalf("expected ErrEmptyExpression, got %v", err)
		}
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Eval("x + missing", vars)
		var evalErr *EvalError
		if !errors.As(err, &evalErr) {
			t.Fatalf("expected EvalError, got %v", err)
		}
	})

	t.Run("division by zero", func(t *testing.T) {
		_, err := Eval("x / 0", vars)
		var evalErr *EvalError
		if !errors.As(err, &evalErr) {
			t.Fatalf("expected EvalError, got %v", err)
		}
	})

	t.Run("unknown function", func(t *testing.T) {
		_, err := Eval("sqrt(4)", vars)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, err := Eval("1 + 2 )", vars)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})

	t.Run("unbalanced paren", func(t *testing.T) {
		_, err := Eval("(1 + 2", vars)
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
	})

	t.Run("ceil arity", func(t *testing.T) {
		_, err := Eval("ceil(1, 2)", vars)
		var evalErr *EvalError
		if !errors.As(err, &evalErr) {
			t.Fatalf("expected EvalError, got %v", err)
		}
	})

	t.Run("min arity", func(t *testing.T) {
		_, err := Eval("min(1)", vars)
		var evalErr *EvalError
		if !errors.As(err, &evalErr) {
			t.Fatalf("expected EvalError, got %v", err)
		}
	})
}

func TestParseReuse(t *testing.T) {
	expr, err := Parse("ceil(sqft / 100)")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}

	got, err := expr.Eval(VarMap{"sqft": 250})
	if err != nil || got != 3 {
		t.Fatalf("first eval: got %v, %v", got, err)
	}
	got, err = expr.Eval(VarMap{"sqft": 90})
	if err != nil || got != 1 {
		t.Fatalf("second eval: got %v, %v", got, err)
	}
}
