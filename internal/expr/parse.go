package expr

import (
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"

	"github.com/hlop3z/gencol/internal/alerr"
)

// Parse reads an infix expression such as "sqrt(a + b)" or "price * qty".
//
// The source is parsed with the JavaScript grammar, so operator precedence and
// literal syntax are JavaScript's. Only a single expression is accepted.
// Equality maps to =, inequality to <>, && and || to AND and OR, ! to NOT.
func Parse(src string) (Expr, error) {
	prog, err := parser.ParseFile(nil, "", src, 0)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrExprParse, err, "cannot parse expression").
			With("expression", src)
	}
	if len(prog.Body) != 1 {
		return nil, alerr.New(alerr.ErrExprParse, "expected exactly one expression").
			With("expression", src)
	}
	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		return nil, alerr.Newf(alerr.ErrExprParse, "expected an expression, got %T", prog.Body[0]).
			With("expression", src)
	}

	e, err := convert(stmt.Expression)
	if err != nil {
		if ae, ok := err.(*alerr.Error); ok {
			return nil, ae.With("expression", src)
		}
		return nil, err
	}
	return e, nil
}

// MustParse is Parse for expressions known at compile time. It panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

var jsBinaryOps = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%",
	"<": "<", ">": ">", "<=": "<=", ">=": ">=",
	"==": "=", "===": "=",
	"!=": "<>", "!==": "<>",
	"&&": "AND", "||": "OR",
}

func convert(node ast.Expression) (Expr, error) {
	switch n := node.(type) {
	case *ast.Identifier:
		return Column{Name: n.Name.String()}, nil

	case *ast.DotExpression:
		table, ok := n.Left.(*ast.Identifier)
		if !ok {
			return nil, alerr.New(alerr.ErrExprUnsupported, "only table.column member access is supported")
		}
		return Column{Table: table.Name.String(), Name: n.Identifier.Name.String()}, nil

	case *ast.NumberLiteral:
		return Literal{Value: n.Value}, nil

	case *ast.StringLiteral:
		return Literal{Value: n.Value.String()}, nil

	case *ast.BooleanLiteral:
		return Literal{Value: n.Value}, nil

	case *ast.NullLiteral:
		return Literal{Value: nil}, nil

	case *ast.BinaryExpression:
		op, ok := jsBinaryOps[n.Operator.String()]
		if !ok {
			return nil, alerr.Newf(alerr.ErrExprUnsupported, "unsupported operator %q", n.Operator.String())
		}
		left, err := convert(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := convert(n.Right)
		if err != nil {
			return nil, err
		}
		return Binary{Op: op, Left: left, Right: right}, nil

	case *ast.UnaryExpression:
		operand, err := convert(n.Operand)
		if err != nil {
			return nil, err
		}
		switch n.Operator.String() {
		case "!":
			return Unary{Op: "NOT", Operand: operand}, nil
		case "-":
			if lit, ok := operand.(Literal); ok {
				switch v := lit.Value.(type) {
				case int64:
					return Literal{Value: -v}, nil
				case float64:
					return Literal{Value: -v}, nil
				}
			}
			return Unary{Op: "-", Operand: operand}, nil
		case "+":
			return operand, nil
		}
		return nil, alerr.Newf(alerr.ErrExprUnsupported, "unsupported unary operator %q", n.Operator.String())

	case *ast.CallExpression:
		callee, ok := n.Callee.(*ast.Identifier)
		if !ok {
			return nil, alerr.New(alerr.ErrExprUnsupported, "only plain function calls are supported")
		}
		args := make([]Expr, 0, len(n.ArgumentList))
		for _, a := range n.ArgumentList {
			arg, err := convert(a)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return Func{Name: callee.Name.String(), Args: args}, nil

	default:
		return nil, alerr.Newf(alerr.ErrExprUnsupported, "unsupported expression %T", node)
	}
}
