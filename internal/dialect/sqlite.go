package dialect

import (
	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/sqlgen"
)

// sqlite implements the Dialect interface for SQLite.
type sqlite struct {
	base
}

// SQLite returns the SQLite dialect implementation.
func SQLite(opts ...Option) Dialect {
	d := &sqlite{base: base{
		name:             "sqlite",
		kind:             sqlgen.SQLite,
		quote:            true,
		types:            sqliteTypes{},
		bools:            SQLiteBooleans,
		transactional:    true,
		partialIndexes:   true,
		indexIfNotExists: true,
	}}
	d.apply(opts)
	return d
}

// AddColumnSQL generates ALTER TABLE ADD COLUMN.
// SQLite cannot add a STORED generated column, nor a column carrying a
// PRIMARY KEY or UNIQUE constraint, to an existing table. Those must be
// declared in CREATE TABLE.
func (d *sqlite) AddColumnSQL(op *ast.AddColumn) (string, error) {
	if col := op.Column; col != nil {
		var reason string
		switch {
		case col.IsGenerated() && col.Stored:
			reason = "a STORED generated column"
		case col.PrimaryKey:
			reason = "a PRIMARY KEY column"
		case col.Unique:
			reason = "a UNIQUE column"
		}
		if reason != "" {
			return "", alerr.New(alerr.EUnsupportedFeature, "sqlite cannot add "+reason+" with ALTER TABLE").
				WithTable(op.Table()).
				WithColumn(col.Name).
				WithHelp("declare the column in create_table, or add a separate unique index")
		}
	}
	return d.base.AddColumnSQL(op)
}

// -----------------------------------------------------------------------------
// Type mappings
// SQLite has dynamic typing with type affinities: TEXT, INTEGER, REAL, BLOB
// -----------------------------------------------------------------------------

type sqliteTypes struct{}

func (sqliteTypes) StringType(length int) string {
	// SQLite ignores length constraints; use TEXT.
	return "TEXT"
}

func (sqliteTypes) TextType() string    { return "TEXT" }
func (sqliteTypes) IntegerType() string { return "INTEGER" }
func (sqliteTypes) BigIntType() string  { return "INTEGER" }
func (sqliteTypes) FloatType() string   { return "REAL" }

func (sqliteTypes) DecimalType(precision, scale int) string {
	// No native DECIMAL; NUMERIC affinity keeps integers and reals exact where possible.
	return "NUMERIC"
}

func (sqliteTypes) BooleanType() string {
	// No native BOOLEAN; use INTEGER (0 = false, 1 = true).
	return "INTEGER"
}

func (sqliteTypes) DateType() string     { return "DATE" }
func (sqliteTypes) DateTimeType() string { return "DATETIME" }
func (sqliteTypes) TimeType() string     { return "TIME" }
func (sqliteTypes) BlobType() string     { return "BLOB" }
func (sqliteTypes) JSONType() string     { return "TEXT" }
