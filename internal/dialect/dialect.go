// Package dialect provides database-specific SQL generation.
// Each dialect implements identifier quoting, type literalization, expression
// literalization and DDL statement generation, including the generated-column
// clause.
package dialect

import (
	"strings"

	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/expr"
)

// SQLFormatter turns names, types and expressions into SQL text.
type SQLFormatter interface {
	// QuoteIdent quotes an identifier (table/column name) for the dialect.
	// Schema-qualified names are quoted per part.
	// Generic (default): name
	// MySQL: `name`
	// PostgreSQL/SQLite: "name"
	QuoteIdent(name string) string

	// BoolLiteral returns the literal for a boolean value.
	// PostgreSQL/MySQL/generic: TRUE/FALSE
	// SQLite: 1/0
	BoolLiteral(v bool) string

	// StringLiteral returns s as a quoted string literal.
	// MySQL doubles backslashes as well as single quotes.
	StringLiteral(s string) string

	// TypeLiteral returns the SQL type of a column.
	TypeLiteral(col *ast.ColumnDef) (string, error)

	// Literal renders an expression as SQL.
	Literal(e expr.Expr) (string, error)
}

// DDLGenerator renders schema operations to SQL statements.
type DDLGenerator interface {
	// ColumnDefinitionSQL renders one column clause for CREATE TABLE or
	// ALTER TABLE ADD COLUMN. Generated columns get the
	// "AS (<expr>)" clause followed by their modifiers in
	// GeneratedModifierOrder; ordinary columns use the base renderer.
	ColumnDefinitionSQL(col *ast.ColumnDef) (string, error)

	// CreateTableSQL generates CREATE TABLE statement.
	// Indexes declared on the table are not included; see ast.CreateTable.IndexOps.
	CreateTableSQL(op *ast.CreateTable) (string, error)

	// DropTableSQL generates DROP TABLE statement.
	DropTableSQL(op *ast.DropTable) (string, error)

	// AddColumnSQL generates ALTER TABLE ADD COLUMN statement.
	AddColumnSQL(op *ast.AddColumn) (string, error)

	// DropColumnSQL generates ALTER TABLE DROP COLUMN statement.
	DropColumnSQL(op *ast.DropColumn) (string, error)

	// RenameColumnSQL generates column rename statement.
	// All dialects: ALTER TABLE t RENAME COLUMN old TO new
	RenameColumnSQL(op *ast.RenameColumn) (string, error)

	// CreateIndexSQL generates CREATE INDEX statement.
	CreateIndexSQL(op *ast.CreateIndex) (string, error)

	// DropIndexSQL generates DROP INDEX statement.
	// MySQL: DROP INDEX i ON t
	DropIndexSQL(op *ast.DropIndex) (string, error)
}

// FeatureDetector reports optional dialect capabilities.
type FeatureDetector interface {
	// SupportsTransactionalDDL returns true if DDL can be wrapped in transactions.
	// PostgreSQL/SQLite: true
	// MySQL/generic: false
	SupportsTransactionalDDL() bool

	// SupportsPartialIndexes returns true if CREATE INDEX accepts a WHERE clause.
	SupportsPartialIndexes() bool

	// SupportsIndexIfNotExists returns true if CREATE INDEX accepts IF NOT EXISTS.
	SupportsIndexIfNotExists() bool
}

// Dialect defines the interface for database-specific SQL generation.
// Implementations exist for a generic dialect, MySQL, PostgreSQL and SQLite.
type Dialect interface {
	// Name returns the dialect name (generic, mysql, postgres, sqlite).
	Name() string

	SQLFormatter
	DDLGenerator
	FeatureDetector
}

// Option configures a dialect.
type Option func(*base)

// WithQuoteIdentifiers turns identifier quoting on or off. The generic
// dialect leaves identifiers unquoted by default; all others quote them.
func WithQuoteIdentifiers(quote bool) Option {
	return func(b *base) {
		b.quote = quote
	}
}

// Get returns the dialect implementation for the given name.
// Valid names: "generic", "mock", "mysql", "mariadb", "postgres",
// "postgresql", "pgx", "sqlite", "sqlite3".
// Returns nil if the dialect is not supported.
func Get(name string, opts ...Option) Dialect {
	switch strings.ToLower(name) {
	case "generic", "mock", "":
		return Generic(opts...)
	case "mysql", "mariadb":
		return MySQL(opts...)
	case "postgres", "postgresql", "pgx":
		return Postgres(opts...)
	case "sqlite", "sqlite3":
		return SQLite(opts...)
	default:
		return nil
	}
}

// Names returns the list of supported dialect names.
func Names() []string {
	return []string{"generic", "mysql", "postgres", "sqlite"}
}
