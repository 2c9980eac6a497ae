package dsl

import (
	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
)

// TableBuilder provides a fluent API for building a CREATE TABLE definition.
//
// Errors are recorded rather than returned by each call; the first one is
// reported by Build and later calls become no-ops.
type TableBuilder struct {
	def         *ast.TableDef
	ifNotExists bool
	err         error
}

// NewTableBuilder creates a new TableBuilder for the given (optionally
// schema-qualified) table name.
func NewTableBuilder(name string) *TableBuilder {
	return &TableBuilder{
		def: &ast.TableDef{
			Name:    name,
			Columns: make([]*ast.ColumnDef, 0),
			Indexes: make([]*ast.IndexDef, 0),
		},
	}
}

// Name returns the table name.
func (t *TableBuilder) Name() string {
	return t.def.Name
}

// Err returns the first error recorded by the builder.
func (t *TableBuilder) Err() error {
	return t.err
}

// IfNotExists renders CREATE TABLE IF NOT EXISTS.
func (t *TableBuilder) IfNotExists() *TableBuilder {
	t.ifNotExists = true
	return t
}

// Build returns the final table definition, or the first recorded error.
func (t *TableBuilder) Build() (*ast.TableDef, error) {
	if t.err != nil {
		return nil, t.err
	}
	if err := t.def.Validate(); err != nil {
		return nil, err
	}
	return t.def, nil
}

// Operation returns the CREATE TABLE operation for the built definition.
func (t *TableBuilder) Operation() (*ast.CreateTable, error) {
	def, err := t.Build()
	if err != nil {
		return nil, err
	}
	return &ast.CreateTable{
		TableOp:     ast.TableOp{Name: def.Name},
		Columns:     def.Columns,
		Indexes:     def.Indexes,
		IfNotExists: t.ifNotExists,
	}, nil
}

func (t *TableBuilder) fail(err error) {
	if t.err == nil {
		t.err = withTable(err, t.def.Name)
	}
}

// AddColumn adds a column definition to the table. A column carrying Index
// options also registers an index over itself.
func (t *TableBuilder) AddColumn(col *ast.ColumnDef) {
	if t.err != nil {
		return
	}
	if t.def.GetColumn(col.Name) != nil {
		t.fail(alerr.New(alerr.ErrColumnDuplicate, "column declared more than once").WithColumn(col.Name))
		return
	}
	t.def.Columns = append(t.def.Columns, col)
	if col.Index != nil {
		t.registerIndex(col.Name, *col.Index)
	}
}

// registerIndex queues a CREATE INDEX over column, emitted after CREATE TABLE.
func (t *TableBuilder) registerIndex(column string, opts ast.IndexOptions) {
	t.def.Indexes = append(t.def.Indexes, &ast.IndexDef{
		Columns:      []string{column},
		IndexOptions: opts,
	})
}

// -----------------------------------------------------------------------------
// Columns
// -----------------------------------------------------------------------------

// Column adds a column with a type literal such as "integer" or
// "varchar(255)". With an As option the column is generated.
func (t *TableBuilder) Column(name, typ string, opts ...ColumnOption) *TableBuilder {
	if t.err != nil {
		return t
	}
	ct, err := parseType(name, typ)
	if err != nil {
		t.fail(err)
		return t
	}
	return t.add(newColumn(name, ct, opts))
}

// GeneratedColumn adds a column computed from expression, an expr.Expr or an
// expression string.
//
//	t.GeneratedColumn("a2", "integer", "a * 2", dsl.Stored(), dsl.Index())
func (t *TableBuilder) GeneratedColumn(name, typ string, expression any, opts ...ColumnOption) *TableBuilder {
	if t.err != nil {
		return t
	}
	ct, err := parseType(name, typ)
	if err != nil {
		t.fail(err)
		return t
	}
	return t.add(newGeneratedColumn(name, ct, expression, opts))
}

func (t *TableBuilder) add(col *ast.ColumnDef, err error) *TableBuilder {
	if err != nil {
		t.fail(err)
		return t
	}
	t.AddColumn(col)
	return t
}

func (t *TableBuilder) typed(name string, typ ast.ColumnType, opts []ColumnOption) *TableBuilder {
	if t.err != nil {
		return t
	}
	return t.add(newColumn(name, typ, opts))
}

// String adds a string column (VARCHAR). Length defaults to 255.
func (t *TableBuilder) String(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeString), opts)
}

// StringN adds a string column with an explicit length.
func (t *TableBuilder) StringN(name string, length int, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeString, length), opts)
}

// Text adds an unbounded text column.
func (t *TableBuilder) Text(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeText), opts)
}

// Integer adds an integer column.
//
//	t.Integer("a2", dsl.As("a * 2"), dsl.Stored())
func (t *TableBuilder) Integer(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeInteger), opts)
}

// BigInt adds a 64-bit integer column.
func (t *TableBuilder) BigInt(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeBigInt), opts)
}

// Float adds a double-precision floating-point column.
func (t *TableBuilder) Float(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeFloat), opts)
}

// Decimal adds an exact numeric column.
func (t *TableBuilder) Decimal(name string, precision, scale int, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeDecimal, precision, scale), opts)
}

// Boolean adds a boolean column.
func (t *TableBuilder) Boolean(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeBoolean), opts)
}

// Date adds a date-only column.
func (t *TableBuilder) Date(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeDate), opts)
}

// DateTime adds a timestamp column.
func (t *TableBuilder) DateTime(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeDateTime), opts)
}

// Time adds a time-only column.
func (t *TableBuilder) Time(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeTime), opts)
}

// Blob adds a binary column.
func (t *TableBuilder) Blob(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeBlob), opts)
}

// JSON adds a JSON column.
func (t *TableBuilder) JSON(name string, opts ...ColumnOption) *TableBuilder {
	return t.typed(name, ast.GenericType(ast.TypeJSON), opts)
}

// -----------------------------------------------------------------------------
// Indexes
// -----------------------------------------------------------------------------

// Index adds an index over one or more columns of the table.
func (t *TableBuilder) Index(columns []string, opts ...IndexOption) *TableBuilder {
	if t.err != nil {
		return t
	}
	def := &ast.IndexDef{Columns: columns}
	for _, opt := range opts {
		if err := opt(&def.IndexOptions); err != nil {
			t.fail(err)
			return t
		}
	}
	t.def.Indexes = append(t.def.Indexes, def)
	return t
}
