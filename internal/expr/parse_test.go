package expr

import (
	"testing"

	"github.com/hlop3z/gencol/internal/alerr"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a * 2", "(a * 2)"},
		{"sqrt(a + b)", "sqrt((a + b))"},
		{"a + b * c", "(a + (b * c))"},
		{"price * qty - discount", "((price * qty) - discount)"},
		{"t.a + 1", "(t.a + 1)"},
		{"a == 1 && b != 'x'", "((a = 1) AND (b <> 'x'))"},
		{"a === b || !c", "((a = b) OR NOT c)"},
		{"coalesce(a, 0)", "coalesce(a, 0)"},
		{"upper(name)", "upper(name)"},
		{"-1", "-1"},
		{"-a", "-a"},
		{"- -a", "-(-a)"},
		{"-(-a)", "-(-a)"},
		{"-(a * 2)", "-(a * 2)"},
		{"+a", "a"},
		{"1.5 * a", "(1.5 * a)"},
		{"a >= null", "(a >= NULL)"},
		{"flag == true", "(flag = TRUE)"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.src, err)
			}
			got, err := Literalize(e, plainQuoter{})
			if err != nil {
				t.Fatalf("Literalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) -> %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		code alerr.Code
	}{
		{"a *", alerr.ErrExprParse},
		{"a; b", alerr.ErrExprParse},
		{"", alerr.ErrExprParse},
		{"var x = 1", alerr.ErrExprParse},
		{"a.b.c", alerr.ErrExprUnsupported},
		{"Math.sqrt(a)", alerr.ErrExprUnsupported},
		{"x => x", alerr.ErrExprUnsupported},
		{"typeof a", alerr.ErrExprUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.src)
			}
			if !alerr.Is(err, tt.code) {
				t.Errorf("Parse(%q) code = %v, want %v (%v)", tt.src, alerr.GetErrorCode(err), tt.code, err)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("a +")
}
