// Package dsl provides the builder API for defining tables and alterations.
// The same builders back the Go API (pkg/gencol) and schema scripts
// (internal/runtime).
package dsl

import (
	"strings"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/expr"
)

// ColumnOption configures a column. Each option sets its own fields, so
// options may be given in any order.
type ColumnOption func(*ast.ColumnDef) error

// IndexOption configures the index requested by Index or created by
// AddIndex.
type IndexOption func(*ast.IndexOptions) error

// As makes the column generated from e. e is an expr.Expr or an expression
// string such as "a * 2".
func As(e any) ColumnOption {
	return func(c *ast.ColumnDef) error {
		x, err := toExpr(e)
		if err != nil {
			return err
		}
		c.Expression = x
		return nil
	}
}

// Stored persists the computed value instead of computing it on read.
func Stored() ColumnOption {
	return func(c *ast.ColumnDef) error {
		c.Stored = true
		return nil
	}
}

// Unique adds a unique constraint to the column.
func Unique() ColumnOption {
	return func(c *ast.ColumnDef) error {
		c.Unique = true
		return nil
	}
}

// Null sets explicit nullability: true writes NULL, false writes NOT NULL.
func Null(allow bool) ColumnOption {
	return func(c *ast.ColumnDef) error {
		c.Null = &allow
		return nil
	}
}

// NotNull is Null(false).
func NotNull() ColumnOption {
	return Null(false)
}

// AllowNull is the legacy spelling of Null. It only applies when Null is not given.
func AllowNull(allow bool) ColumnOption {
	return func(c *ast.ColumnDef) error {
		c.AllowNull = &allow
		return nil
	}
}

// PrimaryKey marks the column as the primary key.
func PrimaryKey() ColumnOption {
	return func(c *ast.ColumnDef) error {
		c.PrimaryKey = true
		return nil
	}
}

// Default sets the default value of an ordinary column.
// For SQL expressions, pass expr.SQL("now()").
func Default(value any) ColumnOption {
	return func(c *ast.ColumnDef) error {
		c.Default = value
		c.DefaultSet = true
		return nil
	}
}

// Index requests a secondary index over the column once it exists.
func Index(opts ...IndexOption) ColumnOption {
	return func(c *ast.ColumnDef) error {
		idx := &ast.IndexOptions{}
		for _, opt := range opts {
			if err := opt(idx); err != nil {
				return err
			}
		}
		c.Index = idx
		return nil
	}
}

// IndexName overrides the default <table>_<column>_index name.
func IndexName(name string) IndexOption {
	return func(o *ast.IndexOptions) error {
		o.Name = name
		return nil
	}
}

// IndexUnique creates a UNIQUE index.
func IndexUnique() IndexOption {
	return func(o *ast.IndexOptions) error {
		o.Unique = true
		return nil
	}
}

// IndexIfNotExists adds IF NOT EXISTS where the dialect supports it.
func IndexIfNotExists() IndexOption {
	return func(o *ast.IndexOptions) error {
		o.IfNotExists = true
		return nil
	}
}

// IndexWhere makes the index partial. e is an expr.Expr or an expression string.
func IndexWhere(e any) IndexOption {
	return func(o *ast.IndexOptions) error {
		x, err := toExpr(e)
		if err != nil {
			return err
		}
		o.Where = x
		return nil
	}
}

// toExpr accepts an expr.Expr or an expression string.
func toExpr(v any) (expr.Expr, error) {
	switch e := v.(type) {
	case nil:
		return nil, alerr.New(alerr.ErrMissingExpr, "generated column requires an expression")
	case expr.Expr:
		if r, ok := e.(expr.Raw); ok && strings.TrimSpace(r.SQL) == "" {
			return nil, alerr.New(alerr.ErrMissingExpr, "generated column requires an expression")
		}
		if err := expr.Validate(e); err != nil {
			return nil, err
		}
		return e, nil
	case string:
		return expr.Parse(e)
	default:
		return nil, alerr.Newf(alerr.ErrInvalidOption, "expression must be a string or expression, got %T", v)
	}
}

// newColumn builds a column from its options. The column is generated when
// an As option supplies an expression.
func newColumn(name string, typ ast.ColumnType, opts []ColumnOption) (*ast.ColumnDef, error) {
	col := &ast.ColumnDef{Name: name, Type: typ}
	for _, opt := range opts {
		if err := opt(col); err != nil {
			return nil, withColumn(err, name)
		}
	}
	if err := col.Validate(); err != nil {
		return nil, withColumn(err, name)
	}
	return col, nil
}

// newGeneratedColumn builds a generated column. Both the create-table and
// the alter-table entry points resolve their options here.
func newGeneratedColumn(name string, typ ast.ColumnType, expression any, opts []ColumnOption) (*ast.ColumnDef, error) {
	e, err := toExpr(expression)
	if err != nil {
		return nil, withColumn(err, name)
	}
	all := make([]ColumnOption, 0, len(opts)+1)
	all = append(all, As(e))
	all = append(all, opts...)

	col, err := newColumn(name, typ, all)
	if err != nil {
		return nil, err
	}
	if !col.IsGenerated() {
		return nil, alerr.New(alerr.ErrMissingExpr, "generated column requires an expression").WithColumn(name)
	}
	return col, nil
}

// parseType resolves a type literal, recording the column on failure.
func parseType(name, typ string) (ast.ColumnType, error) {
	t, err := ast.ParseType(typ)
	if err != nil {
		return t, withColumn(err, name)
	}
	return t, nil
}

func withColumn(err error, name string) error {
	if e, ok := err.(*alerr.Error); ok {
		if _, set := e.GetContext()["column"]; !set {
			return e.WithColumn(name)
		}
		return e
	}
	return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid column").WithColumn(name)
}

func withTable(err error, table string) error {
	if e, ok := err.(*alerr.Error); ok {
		return e.WithTable(table)
	}
	return alerr.Wrap(alerr.ErrSchemaInvalid, err, "invalid table definition").WithTable(table)
}
