// Package expr holds the expression trees used for generated columns and
// renders them to SQL text.
//
// Rendering follows a small fixed grammar: binary operations are always
// parenthesized, function calls render as name(arg, ...), column references go
// through the dialect's identifier quoting and literals through its value
// quoting. The output for a*2 is therefore "(a * 2)" and for sqrt(a+b) it is
// "sqrt((a + b))".
package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hlop3z/gencol/internal/alerr"
)

// Expr is a node of an expression tree.
type Expr interface {
	exprNode()
}

// Column references a column, optionally qualified by its table.
type Column struct {
	Table string
	Name  string
}

// Literal is a constant value: int, int64, float64, string, bool or nil.
type Literal struct {
	Value any
}

// Func is a SQL function call.
type Func struct {
	Name string
	Args []Expr
}

// Binary is an infix operation. Op is the SQL operator (+, *, =, AND, ...).
type Binary struct {
	Op    string
	Left  Expr
	Right Expr
}

// Unary is a prefix operation (NOT, -).
type Unary struct {
	Op      string
	Operand Expr
}

// Raw is a SQL fragment passed through verbatim after a safety screen.
type Raw struct {
	SQL string
}

func (Column) exprNode()  {}
func (Literal) exprNode() {}
func (Func) exprNode()    {}
func (Binary) exprNode()  {}
func (Unary) exprNode()   {}
func (Raw) exprNode()     {}

// Quoter supplies the dialect-specific pieces of literalization.
type Quoter interface {
	QuoteIdent(name string) string
	BoolLiteral(v bool) string
	StringLiteral(s string) string
}

// binaryOps is the set of operators Binary may carry.
var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true, "%": true,
	"=": true, "<>": true, "<": true, ">": true, "<=": true, ">=": true,
	"AND": true, "OR": true, "||": true, "LIKE": true,
}

var unaryOps = map[string]bool{
	"NOT": true,
	"-":   true,
}

var funcNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// dangerousSQLPattern matches statement separators, comments and DDL/DML keywords.
var dangerousSQLPattern = regexp.MustCompile(
	`(?i)(;|--|/\*|\b(DROP|ALTER|CREATE|GRANT|REVOKE|TRUNCATE|INSERT|UPDATE|DELETE|EXEC|EXECUTE|UNION|INTO|COPY|pg_read_file|lo_import|pg_sleep|sleep|benchmark)\b)`,
)

// ValidateSQL rejects raw SQL containing statement separators, comments or
// DDL/DML keywords.
func ValidateSQL(sql string) error {
	if strings.TrimSpace(sql) == "" {
		return alerr.New(alerr.ErrExprUnsafe, "raw SQL expression is empty")
	}
	if dangerousSQLPattern.MatchString(sql) {
		return alerr.New(alerr.ErrExprUnsafe, "SQL expression contains a forbidden pattern").
			With("expression", sql).
			WithHelp("expressions must not contain ';', '--', '/*' or DDL/DML keywords")
	}
	return nil
}

// Validate reports whether e can be rendered, without choosing a dialect.
func Validate(e Expr) error {
	_, err := Literalize(e, neutralQuoter{})
	return err
}

type neutralQuoter struct{}

func (neutralQuoter) QuoteIdent(name string) string { return name }
func (neutralQuoter) BoolLiteral(v bool) string     { return strconv.FormatBool(v) }
func (neutralQuoter) StringLiteral(s string) string { return s }

// Literalize renders e as SQL text.
func Literalize(e Expr, q Quoter) (string, error) {
	var b strings.Builder
	if err := write(&b, e, q); err != nil {
		return "", err
	}
	return b.String(), nil
}

func write(b *strings.Builder, e Expr, q Quoter) error {
	switch n := e.(type) {
	case nil:
		return alerr.New(alerr.ErrExprUnsupported, "expression is empty")
	case Column:
		return writeColumn(b, n, q)
	case *Column:
		if n != nil {
			return writeColumn(b, *n, q)
		}
	case Literal:
		return writeLiteral(b, n.Value, q)
	case *Literal:
		if n != nil {
			return writeLiteral(b, n.Value, q)
		}
	case Func:
		return writeFunc(b, n, q)
	case *Func:
		if n != nil {
			return writeFunc(b, *n, q)
		}
	case Binary:
		return writeBinary(b, n, q)
	case *Binary:
		if n != nil {
			return writeBinary(b, *n, q)
		}
	case Unary:
		return writeUnary(b, n, q)
	case *Unary:
		if n != nil {
			return writeUnary(b, *n, q)
		}
	case Raw:
		return writeRaw(b, n)
	case *Raw:
		if n != nil {
			return writeRaw(b, *n)
		}
	default:
		return alerr.Newf(alerr.ErrExprUnsupported, "unsupported expression node %T", e)
	}
	return alerr.Newf(alerr.ErrExprUnsupported, "expression node %T is nil", e)
}

func writeColumn(b *strings.Builder, c Column, q Quoter) error {
	if c.Name == "" {
		return alerr.New(alerr.ErrExprUnsupported, "column reference without a name")
	}
	if c.Table != "" {
		b.WriteString(q.QuoteIdent(c.Table))
		b.WriteByte('.')
	}
	b.WriteString(q.QuoteIdent(c.Name))
	return nil
}

func writeLiteral(b *strings.Builder, v any, q Quoter) error {
	switch val := v.(type) {
	case nil:
		b.WriteString("NULL")
	case bool:
		b.WriteString(q.BoolLiteral(val))
	case int:
		b.WriteString(strconv.Itoa(val))
	case int32:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case int64:
		b.WriteString(strconv.FormatInt(val, 10))
	case float32:
		b.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 32))
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		b.WriteString(q.StringLiteral(val))
	default:
		return alerr.Newf(alerr.ErrExprUnsupported, "unsupported literal of type %T", v).
			With("value", fmt.Sprint(v))
	}
	return nil
}

func writeFunc(b *strings.Builder, f Func, q Quoter) error {
	if !funcNamePattern.MatchString(f.Name) {
		return alerr.Newf(alerr.ErrExprUnsafe, "invalid function name %q", f.Name)
	}
	b.WriteString(f.Name)
	b.WriteByte('(')
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := write(b, arg, q); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func writeBinary(b *strings.Builder, n Binary, q Quoter) error {
	if !binaryOps[n.Op] {
		return alerr.Newf(alerr.ErrExprUnsupported, "unsupported binary operator %q", n.Op)
	}
	b.WriteByte('(')
	if err := write(b, n.Left, q); err != nil {
		return err
	}
	b.WriteByte(' ')
	b.WriteString(n.Op)
	b.WriteByte(' ')
	if err := write(b, n.Right, q); err != nil {
		return err
	}
	b.WriteByte(')')
	return nil
}

func writeUnary(b *strings.Builder, n Unary, q Quoter) error {
	if !unaryOps[n.Op] {
		return alerr.Newf(alerr.ErrExprUnsupported, "unsupported unary operator %q", n.Op)
	}
	if n.Op == "NOT" {
		b.WriteString("NOT ")
		return write(b, n.Operand, q)
	}

	var operand strings.Builder
	if err := write(&operand, n.Operand, q); err != nil {
		return err
	}
	// "-" directly before a leading "-" would open a line comment.
	b.WriteString(n.Op)
	if strings.HasPrefix(operand.String(), "-") {
		b.WriteByte('(')
		b.WriteString(operand.String())
		b.WriteByte(')')
		return nil
	}
	b.WriteString(operand.String())
	return nil
}

func writeRaw(b *strings.Builder, r Raw) error {
	if err := ValidateSQL(r.SQL); err != nil {
		return err
	}
	b.WriteString(r.SQL)
	return nil
}

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// Col references a column. "t.a" is split into table and column.
func Col(name string) Column {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return Column{Table: name[:i], Name: name[i+1:]}
	}
	return Column{Name: name}
}

// Lit wraps a constant value.
func Lit(v any) Literal {
	return Literal{Value: v}
}

// SQL wraps a raw SQL fragment.
func SQL(sql string) Raw {
	return Raw{SQL: sql}
}

// Fn builds a function call. Arguments that are not already an Expr become literals.
func Fn(name string, args ...any) Func {
	return Func{Name: name, Args: toExprs(args)}
}

// Add builds (a + b).
func Add(a, b any) Binary { return Binary{Op: "+", Left: toExpr(a), Right: toExpr(b)} }

// Sub builds (a - b).
func Sub(a, b any) Binary { return Binary{Op: "-", Left: toExpr(a), Right: toExpr(b)} }

// Mul builds (a * b).
func Mul(a, b any) Binary { return Binary{Op: "*", Left: toExpr(a), Right: toExpr(b)} }

// Div builds (a / b).
func Div(a, b any) Binary { return Binary{Op: "/", Left: toExpr(a), Right: toExpr(b)} }

// Concat builds (a || b).
func Concat(a, b any) Binary { return Binary{Op: "||", Left: toExpr(a), Right: toExpr(b)} }

// Not builds NOT e.
func Not(e any) Unary { return Unary{Op: "NOT", Operand: toExpr(e)} }

func toExpr(v any) Expr {
	if e, ok := v.(Expr); ok {
		return e
	}
	return Literal{Value: v}
}

func toExprs(vs []any) []Expr {
	out := make([]Expr, len(vs))
	for i, v := range vs {
		out[i] = toExpr(v)
	}
	return out
}
