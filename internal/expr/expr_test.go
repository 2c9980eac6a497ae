package expr

import (
	"strings"
	"testing"

	"github.com/hlop3z/gencol/internal/alerr"
)

// plainQuoter leaves identifiers untouched, like a connection with identifier
// quoting turned off.
type plainQuoter struct{}

func (plainQuoter) QuoteIdent(name string) string { return name }
func (plainQuoter) BoolLiteral(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}
func (plainQuoter) StringLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

type backtickQuoter struct{}

func (backtickQuoter) QuoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
func (backtickQuoter) BoolLiteral(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
func (backtickQuoter) StringLiteral(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func TestLiteralize(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{"column", Col("a"), "a"},
		{"qualified column", Col("t.a"), "t.a"},
		{"int", Lit(2), "2"},
		{"int64", Lit(int64(-7)), "-7"},
		{"float", Lit(2.5), "2.5"},
		{"string", Lit("it's"), "'it''s'"},
		{"bool", Lit(true), "TRUE"},
		{"null", Lit(nil), "NULL"},
		{"mul", Mul(Col("a"), 2), "(a * 2)"},
		{"sqrt of sum", Fn("sqrt", Add(Col("a"), Col("b"))), "sqrt((a + b))"},
		{"nested", Div(Sub(Col("a"), 1), Col("b")), "((a - 1) / b)"},
		{"concat", Concat(Col("first"), Col("last")), "(first || last)"},
		{"not", Not(Col("active")), "NOT active"},
		{"negate", Unary{Op: "-", Operand: Col("a")}, "-a"},
		{"double negation", Unary{Op: "-", Operand: Unary{Op: "-", Operand: Col("a")}}, "-(-a)"},
		{"negate negative literal", Unary{Op: "-", Operand: Lit(-1)}, "-(-1)"},
		{"negate sum", Unary{Op: "-", Operand: Add(Col("a"), 1)}, "-(a + 1)"},
		{"function no args", Fn("now"), "now()"},
		{"function many args", Fn("coalesce", Col("a"), Col("b"), 0), "coalesce(a, b, 0)"},
		{"raw", SQL("json_extract(doc, '$.id')"), "json_extract(doc, '$.id')"},
		{"pointer node", &Binary{Op: "+", Left: Col("a"), Right: Lit(1)}, "(a + 1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Literalize(tt.expr, plainQuoter{})
			if err != nil {
				t.Fatalf("Literalize() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Literalize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLiteralizeUsesQuoter(t *testing.T) {
	got, err := Literalize(Add(Col("t.a"), Lit(true)), backtickQuoter{})
	if err != nil {
		t.Fatalf("Literalize() error = %v", err)
	}
	if want := "(`t`.`a` + 1)"; got != want {
		t.Errorf("Literalize() = %q, want %q", got, want)
	}

	got, err = Literalize(Fn("concat", Col("a"), Lit(`a\`)), backtickQuoter{})
	if err != nil {
		t.Fatalf("Literalize() error = %v", err)
	}
	if want := "concat(`a`, 'a\\\\')"; got != want {
		t.Errorf("Literalize() = %q, want %q", got, want)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(Mul(Col("a"), 2)); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	var col *Column
	tests := []struct {
		name string
		expr Expr
		code alerr.Code
	}{
		{"nil column pointer", col, alerr.ErrExprUnsupported},
		{"nil operand", Add(Col("a"), (*Literal)(nil)), alerr.ErrExprUnsupported},
		{"empty raw", SQL(""), alerr.ErrExprUnsafe},
		{"unsafe raw", SQL("a; DROP TABLE nums"), alerr.ErrExprUnsafe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.expr)
			if !alerr.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestLiteralizeErrors(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		code alerr.Code
	}{
		{"nil", nil, alerr.ErrExprUnsupported},
		{"bad operator", Binary{Op: "**", Left: Col("a"), Right: Lit(2)}, alerr.ErrExprUnsupported},
		{"bad unary", Unary{Op: "~", Operand: Col("a")}, alerr.ErrExprUnsupported},
		{"bad literal", Lit([]int{1}), alerr.ErrExprUnsupported},
		{"empty column", Column{}, alerr.ErrExprUnsupported},
		{"bad function name", Fn("sqrt(a); drop"), alerr.ErrExprUnsafe},
		{"raw with separator", SQL("a; DROP TABLE nums"), alerr.ErrExprUnsafe},
		{"raw with comment", SQL("a -- b"), alerr.ErrExprUnsafe},
		{"empty raw", SQL("  "), alerr.ErrExprUnsafe},
		{"nil pointer", (*Column)(nil), alerr.ErrExprUnsupported},
		{"nil pointer operand", Unary{Op: "-", Operand: (*Binary)(nil)}, alerr.ErrExprUnsupported},
		{"nested failure", Fn("sqrt", Binary{Op: "^", Left: Col("a"), Right: Col("b")}), alerr.ErrExprUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Literalize(tt.expr, plainQuoter{})
			if err == nil {
				t.Fatal("expected error")
			}
			if !alerr.Is(err, tt.code) {
				t.Errorf("error code = %v, want %v (%v)", alerr.GetErrorCode(err), tt.code, err)
			}
		})
	}
}

func TestValidateSQL(t *testing.T) {
	safe := []string{
		"a * 2",
		"json_extract(doc, '$.id')",
		"sleep_hours / 24",
	}
	for _, s := range safe {
		if err := ValidateSQL(s); err != nil {
			t.Errorf("ValidateSQL(%q) unexpected error: %v", s, err)
		}
	}

	unsafe := []string{
		"1; DROP TABLE nums",
		"a /* hidden */",
		"(SELECT x INTO y)",
		"delete from nums",
	}
	for _, s := range unsafe {
		if err := ValidateSQL(s); err == nil {
			t.Errorf("ValidateSQL(%q) expected error", s)
		}
	}
}
