// Package dialect provides database-specific SQL generation.
// This file contains the renderer shared by all dialect implementations.
package dialect

import (
	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/expr"
	"github.com/hlop3z/gencol/internal/sqlgen"
)

// TypeMapper maps generic column types to dialect SQL types.
// Each dialect implements these methods.
type TypeMapper interface {
	StringType(length int) string
	TextType() string
	IntegerType() string
	BigIntType() string
	FloatType() string
	DecimalType(precision, scale int) string
	BooleanType() string
	DateType() string
	DateTimeType() string
	TimeType() string
	BlobType() string
	JSONType() string
}

var genericTypeNames = []string{
	ast.TypeString, ast.TypeText, ast.TypeInteger, ast.TypeBigInt,
	ast.TypeFloat, ast.TypeDecimal, ast.TypeBoolean, ast.TypeDate,
	ast.TypeDateTime, ast.TypeTime, ast.TypeBlob, ast.TypeJSON,
}

// buildColumnTypeSQL generates the SQL type for a generic column type using the type mapper.
func buildColumnTypeSQL(t ast.ColumnType, mapper TypeMapper) (string, error) {
	switch t.Name {
	case ast.TypeString:
		return mapper.StringType(sizeArg(t.Size, 0, 255)), nil
	case ast.TypeText:
		return mapper.TextType(), nil
	case ast.TypeInteger:
		return mapper.IntegerType(), nil
	case ast.TypeBigInt:
		return mapper.BigIntType(), nil
	case ast.TypeFloat:
		return mapper.FloatType(), nil
	case ast.TypeDecimal:
		return mapper.DecimalType(sizeArg(t.Size, 0, 10), sizeArg(t.Size, 1, 2)), nil
	case ast.TypeBoolean:
		return mapper.BooleanType(), nil
	case ast.TypeDate:
		return mapper.DateType(), nil
	case ast.TypeDateTime:
		return mapper.DateTimeType(), nil
	case ast.TypeTime:
		return mapper.TimeType(), nil
	case ast.TypeBlob:
		return mapper.BlobType(), nil
	case ast.TypeJSON:
		return mapper.JSONType(), nil
	}

	err := alerr.Newf(alerr.ErrInvalidType, "unknown generic type %q", t.Name)
	if hint := alerr.SuggestSimilar(t.Name, genericTypeNames); hint != "" {
		err.WithHelp(hint)
	}
	return "", err
}

func sizeArg(size []int, i, def int) int {
	if i < len(size) {
		return size[i]
	}
	return def
}

// BooleanLiterals holds the true/false literals for a dialect.
type BooleanLiterals struct {
	True  string
	False string
}

// StandardBooleans uses TRUE/FALSE.
var StandardBooleans = BooleanLiterals{True: "TRUE", False: "FALSE"}

// SQLiteBooleans uses 1/0.
var SQLiteBooleans = BooleanLiterals{True: "1", False: "0"}

// base is the renderer shared by every dialect. Dialects differ in the data
// they configure here and override only the statements they render
// differently.
type base struct {
	name  string
	kind  sqlgen.Dialect
	quote bool
	types TypeMapper
	bools BooleanLiterals

	transactional    bool
	partialIndexes   bool
	indexIfNotExists bool
}

func (d *base) apply(opts []Option) {
	for _, opt := range opts {
		opt(d)
	}
}

func (d *base) Name() string {
	return d.name
}

// builder returns a clause buffer configured for this dialect.
func (d *base) builder() *sqlgen.Builder {
	b := sqlgen.New(d.kind)
	if !d.quote {
		b.Unquoted()
	}
	return b
}

// -----------------------------------------------------------------------------
// SQLFormatter
// -----------------------------------------------------------------------------

func (d *base) QuoteIdent(name string) string {
	if !d.quote {
		return name
	}
	return sqlgen.QuoteQualified(d.kind, name)
}

func (d *base) BoolLiteral(v bool) string {
	if v {
		return d.bools.True
	}
	return d.bools.False
}

func (d *base) StringLiteral(s string) string {
	return sqlgen.QuoteString(d.kind, s)
}

func (d *base) TypeLiteral(col *ast.ColumnDef) (string, error) {
	if err := col.Type.Validate(); err != nil {
		return "", alerr.Wrap(alerr.ErrInvalidType, err, "invalid column type").WithColumn(col.Name)
	}
	if !col.Type.Generic {
		return col.Type.String(), nil
	}
	typ, err := buildColumnTypeSQL(col.Type, d.types)
	if err != nil {
		if e, ok := err.(*alerr.Error); ok {
			return "", e.WithColumn(col.Name)
		}
		return "", err
	}
	return typ, nil
}

func (d *base) Literal(e expr.Expr) (string, error) {
	return expr.Literalize(e, d)
}

// defaultSQL renders a DEFAULT value. Expressions render as-is; Go values
// render as literals.
func (d *base) defaultSQL(v any) (string, error) {
	if e, ok := v.(expr.Expr); ok {
		return d.Literal(e)
	}
	return d.Literal(expr.Lit(v))
}

// -----------------------------------------------------------------------------
// Column definitions
// -----------------------------------------------------------------------------

// baseColumnSQL renders an ordinary (non-generated) column.
// Order: name type, PRIMARY KEY, NULL/NOT NULL, UNIQUE, DEFAULT.
func (d *base) baseColumnSQL(col *ast.ColumnDef) (string, error) {
	typ, err := d.TypeLiteral(col)
	if err != nil {
		return "", err
	}

	b := d.builder().Column(col.Name, typ)
	if col.PrimaryKey {
		b.PrimaryKey()
	}
	writeNullability(b, col)
	if col.Unique && !col.PrimaryKey {
		b.Unique()
	}
	if col.DefaultSet {
		def, err := d.defaultSQL(col.Default)
		if err != nil {
			return "", err
		}
		b.Default(def)
	}
	return b.String(), nil
}

// -----------------------------------------------------------------------------
// DDLGenerator
// -----------------------------------------------------------------------------

func (d *base) CreateTableSQL(op *ast.CreateTable) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}

	b := d.builder().CreateTable(op.Table(), op.IfNotExists).OpenParen()
	for i, col := range op.Columns {
		if i > 0 {
			b.Comma()
		}
		clause, err := d.ColumnDefinitionSQL(col)
		if err != nil {
			return "", err
		}
		b.Raw(clause)
	}
	b.CloseParen()
	return b.String(), nil
}

func (d *base) DropTableSQL(op *ast.DropTable) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	return d.builder().DropTable(op.Table(), op.IfExists).String(), nil
}

func (d *base) AddColumnSQL(op *ast.AddColumn) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	clause, err := d.ColumnDefinitionSQL(op.Column)
	if err != nil {
		return "", err
	}
	return d.builder().AlterTable(op.Table()).AddColumn().Raw(clause).String(), nil
}

func (d *base) DropColumnSQL(op *ast.DropColumn) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	return d.builder().AlterTable(op.Table()).DropColumn(op.Name).String(), nil
}

func (d *base) RenameColumnSQL(op *ast.RenameColumn) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	return d.builder().AlterTable(op.Table()).RenameColumn(op.OldName, op.NewName).String(), nil
}

func (d *base) CreateIndexSQL(op *ast.CreateIndex) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	if op.Where != nil && !d.partialIndexes {
		return "", alerr.Newf(alerr.EUnsupportedFeature, "%s does not support partial indexes", d.name).
			WithTable(op.Table()).
			With("index", op.IndexName())
	}

	b := d.builder().
		CreateIndex(op.IndexName(), op.Unique, op.IfNotExists && d.indexIfNotExists).
		On(op.Table(), op.Columns...)
	if op.Where != nil {
		where, err := d.Literal(op.Where)
		if err != nil {
			return "", err
		}
		b.Where(where)
	}
	return b.String(), nil
}

func (d *base) DropIndexSQL(op *ast.DropIndex) (string, error) {
	if err := op.Validate(); err != nil {
		return "", err
	}
	return d.builder().DropIndex(op.Name, op.IfExists).String(), nil
}

// -----------------------------------------------------------------------------
// FeatureDetector
// -----------------------------------------------------------------------------

func (d *base) SupportsTransactionalDDL() bool { return d.transactional }

func (d *base) SupportsPartialIndexes() bool { return d.partialIndexes }

func (d *base) SupportsIndexIfNotExists() bool { return d.indexIfNotExists }
