package gencol

import (
	"context"

	"github.com/hlop3z/gencol/internal/dsl"
	"github.com/hlop3z/gencol/internal/expr"
)

// Builder types used by the table callbacks.
type (
	TableBuilder      = dsl.TableBuilder
	AlterTableBuilder = dsl.AlterTableBuilder
	MigrationBuilder  = dsl.MigrationBuilder
	ColumnOption      = dsl.ColumnOption
	IndexOption       = dsl.IndexOption
	Expr              = expr.Expr
)

// Column options.
var (
	As         = dsl.As
	Stored     = dsl.Stored
	Unique     = dsl.Unique
	Null       = dsl.Null
	NotNull    = dsl.NotNull
	AllowNull  = dsl.AllowNull
	PrimaryKey = dsl.PrimaryKey
	Default    = dsl.Default
	Index      = dsl.Index
)

// Index options.
var (
	IndexName        = dsl.IndexName
	IndexUnique      = dsl.IndexUnique
	IndexIfNotExists = dsl.IndexIfNotExists
	IndexWhere       = dsl.IndexWhere
)

// Options decodes a loosely typed options map, as found in config files or
// scripts, into column options. Unknown keys are errors.
func Options(m map[string]any) ([]ColumnOption, error) {
	return dsl.ParseOptions(m)
}

// Expression constructors.
var (
	Col   = expr.Col
	Lit   = expr.Lit
	SQL   = expr.SQL
	Fn    = expr.Fn
	Add   = expr.Add
	Sub   = expr.Sub
	Mul   = expr.Mul
	Div   = expr.Div
	Parse = expr.Parse
)

// CreateTable declares a table with fn and executes the CREATE TABLE
// statement followed by one CREATE INDEX per indexed column.
func (db *DB) CreateTable(ctx context.Context, name string, fn func(*TableBuilder)) error {
	return db.Migrate(ctx, func(m *MigrationBuilder) {
		m.CreateTable(name, fn)
	})
}

// AlterTable executes the alterations declared by fn, one statement each.
func (db *DB) AlterTable(ctx context.Context, name string, fn func(*AlterTableBuilder)) error {
	return db.Migrate(ctx, func(m *MigrationBuilder) {
		m.AlterTable(name, fn)
	})
}

// DropTable drops a table.
func (db *DB) DropTable(ctx context.Context, name string, ifExists bool) error {
	return db.Migrate(ctx, func(m *MigrationBuilder) {
		m.DropTable(name, ifExists)
	})
}

// Migrate executes every operation declared by fn as one batch. If any
// declaration fails, nothing is executed.
func (db *DB) Migrate(ctx context.Context, fn func(*MigrationBuilder)) error {
	m := dsl.NewMigrationBuilder()
	fn(m)
	ops, err := m.Operations()
	if err != nil {
		return err
	}
	return db.apply(ctx, ops)
}

// RenderMigration returns the SQL for the operations declared by fn without
// executing it.
func (db *DB) RenderMigration(fn func(*MigrationBuilder)) ([]string, error) {
	m := dsl.NewMigrationBuilder()
	fn(m)
	ops, err := m.Operations()
	if err != nil {
		return nil, err
	}
	return db.Render(ops)
}
