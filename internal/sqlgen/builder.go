// Package sqlgen provides dialect-aware SQL building helpers to reduce string concatenation.
package sqlgen

import (
	"strings"
)

// Dialect represents a supported SQL database dialect.
type Dialect int

const (
	// Generic renders portable DDL with double-quoted identifiers.
	Generic Dialect = iota
	// MySQL represents MySQL/MariaDB dialect.
	MySQL
	// Postgres represents PostgreSQL dialect.
	Postgres
	// SQLite represents SQLite dialect.
	SQLite
)

// String returns the string representation of the dialect.
func (d Dialect) String() string {
	switch d {
	case Generic:
		return "generic"
	case MySQL:
		return "mysql"
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Builder provides fluent SQL construction with dialect awareness.
type Builder struct {
	dialect  Dialect
	unquoted bool
	buf      strings.Builder
}

// New creates a new Builder for the specified dialect.
func New(dialect Dialect) *Builder {
	return &Builder{
		dialect: dialect,
	}
}

// Unquoted makes the builder write identifiers as given.
func (b *Builder) Unquoted() *Builder {
	b.unquoted = true
	return b
}

// Dialect returns the dialect of this builder.
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

// ----------------------------------------------------------------------------
// DDL Helpers
// ----------------------------------------------------------------------------

// CreateTable appends "CREATE TABLE <name>" to the buffer.
func (b *Builder) CreateTable(name string, ifNotExists bool) *Builder {
	b.buf.WriteString("CREATE TABLE ")
	if ifNotExists {
		b.buf.WriteString("IF NOT EXISTS ")
	}
	b.Ident(name)
	return b
}

// DropTable appends "DROP TABLE <name>" to the buffer.
func (b *Builder) DropTable(name string, ifExists bool) *Builder {
	b.buf.WriteString("DROP TABLE ")
	if ifExists {
		b.buf.WriteString("IF EXISTS ")
	}
	b.Ident(name)
	return b
}

// AlterTable appends "ALTER TABLE <name>" to the buffer.
func (b *Builder) AlterTable(name string) *Builder {
	b.buf.WriteString("ALTER TABLE ")
	b.Ident(name)
	return b
}

// AddColumn appends " ADD COLUMN " to the buffer. The column clause follows.
func (b *Builder) AddColumn() *Builder {
	b.buf.WriteString(" ADD COLUMN ")
	return b
}

// Column appends "<name> <typ>" to the buffer (for use inside CREATE TABLE or ALTER TABLE ADD COLUMN).
func (b *Builder) Column(name, typ string) *Builder {
	b.Ident(name)
	b.buf.WriteString(" ")
	b.buf.WriteString(typ)
	return b
}

// DropColumn appends " DROP COLUMN <name>" to the buffer.
func (b *Builder) DropColumn(name string) *Builder {
	b.buf.WriteString(" DROP COLUMN ")
	b.Ident(name)
	return b
}

// RenameColumn appends " RENAME COLUMN <old> TO <new>" to the buffer.
// All supported dialects share this syntax.
func (b *Builder) RenameColumn(old, new string) *Builder {
	b.buf.WriteString(" RENAME COLUMN ")
	b.Ident(old)
	b.buf.WriteString(" TO ")
	b.Ident(new)
	return b
}

// CreateIndex appends "CREATE [UNIQUE] INDEX [IF NOT EXISTS] <name>" to the buffer.
func (b *Builder) CreateIndex(name string, unique, ifNotExists bool) *Builder {
	b.buf.WriteString("CREATE ")
	if unique {
		b.buf.WriteString("UNIQUE ")
	}
	b.buf.WriteString("INDEX ")
	if ifNotExists {
		b.buf.WriteString("IF NOT EXISTS ")
	}
	b.Ident(name)
	return b
}

// On appends " ON <table> (<cols>)" to the buffer.
func (b *Builder) On(table string, cols ...string) *Builder {
	b.buf.WriteString(" ON ")
	b.Ident(table)
	if len(cols) > 0 {
		b.buf.WriteString(" (")
		b.Idents(cols...)
		b.buf.WriteString(")")
	}
	return b
}

// Where appends " WHERE <expr>" to the buffer.
func (b *Builder) Where(expr string) *Builder {
	b.buf.WriteString(" WHERE ")
	b.buf.WriteString(expr)
	return b
}

// DropIndex appends "DROP INDEX [IF EXISTS] <name>" to the buffer.
func (b *Builder) DropIndex(name string, ifExists bool) *Builder {
	b.buf.WriteString("DROP INDEX ")
	if ifExists {
		b.buf.WriteString("IF EXISTS ")
	}
	b.Ident(name)
	return b
}

// ----------------------------------------------------------------------------
// Column Modifiers
// ----------------------------------------------------------------------------

// GeneratedAs appends the generated-column expression clause.
// PostgreSQL: GENERATED ALWAYS AS (<expr>)
// Others: AS (<expr>)
func (b *Builder) GeneratedAs(expr string) *Builder {
	if b.dialect == Postgres {
		b.buf.WriteString(" GENERATED ALWAYS")
	}
	b.buf.WriteString(" AS (")
	b.buf.WriteString(expr)
	b.buf.WriteString(")")
	return b
}

// Stored appends "STORED" to the buffer.
func (b *Builder) Stored() *Builder {
	b.buf.WriteString(" STORED")
	return b
}

// NotNull appends "NOT NULL" to the buffer.
func (b *Builder) NotNull() *Builder {
	b.buf.WriteString(" NOT NULL")
	return b
}

// Null appends "NULL" to the buffer.
func (b *Builder) Null() *Builder {
	b.buf.WriteString(" NULL")
	return b
}

// Default appends "DEFAULT <expr>" to the buffer.
// The expression is written as-is (not quoted).
func (b *Builder) Default(expr string) *Builder {
	b.buf.WriteString(" DEFAULT ")
	b.buf.WriteString(expr)
	return b
}

// PrimaryKey appends "PRIMARY KEY" to the buffer.
func (b *Builder) PrimaryKey() *Builder {
	b.buf.WriteString(" PRIMARY KEY")
	return b
}

// Unique appends "UNIQUE" to the buffer.
func (b *Builder) Unique() *Builder {
	b.buf.WriteString(" UNIQUE")
	return b
}

// ----------------------------------------------------------------------------
// Utilities
// ----------------------------------------------------------------------------

// Ident appends a (possibly schema-qualified) identifier, quoted unless the
// builder is unquoted.
func (b *Builder) Ident(name string) *Builder {
	if b.unquoted {
		b.buf.WriteString(name)
		return b
	}
	b.buf.WriteString(QuoteQualified(b.dialect, name))
	return b
}

// Idents appends a comma-separated identifier list.
func (b *Builder) Idents(names ...string) *Builder {
	for i, n := range names {
		if i > 0 {
			b.buf.WriteString(", ")
		}
		b.Ident(n)
	}
	return b
}

// Raw appends raw SQL to the buffer without any modification.
func (b *Builder) Raw(sql string) *Builder {
	b.buf.WriteString(sql)
	return b
}

// Comma appends ", " to the buffer.
func (b *Builder) Comma() *Builder {
	b.buf.WriteString(", ")
	return b
}

// OpenParen appends " (" to the buffer.
func (b *Builder) OpenParen() *Builder {
	b.buf.WriteString(" (")
	return b
}

// CloseParen appends ")" to the buffer.
func (b *Builder) CloseParen() *Builder {
	b.buf.WriteString(")")
	return b
}

// Space appends a space character to the buffer.
func (b *Builder) Space() *Builder {
	b.buf.WriteString(" ")
	return b
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.buf.Len()
}

// String returns the accumulated SQL string.
func (b *Builder) String() string {
	return b.buf.String()
}

// Reset clears the buffer so the builder can be reused.
func (b *Builder) Reset() *Builder {
	b.buf.Reset()
	return b
}

// ----------------------------------------------------------------------------
// Standalone Helpers
// ----------------------------------------------------------------------------

// QuoteIdent returns the identifier quoted according to the dialect.
// MySQL uses backticks: `name`
// PostgreSQL, SQLite and generic use double quotes: "name"
func QuoteIdent(dialect Dialect, s string) string {
	if dialect == MySQL {
		return "`" + strings.ReplaceAll(s, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// QuoteString returns s as a single-quoted string literal. MySQL also treats
// backslash as an escape character, so backslashes are doubled there.
func QuoteString(dialect Dialect, s string) string {
	if dialect == MySQL {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// QuoteQualified quotes each dot-separated part of a name.
// Example: QuoteQualified(Postgres, "app.nums") -> "app"."nums"
func QuoteQualified(dialect Dialect, s string) string {
	if !strings.Contains(s, ".") {
		return QuoteIdent(dialect, s)
	}
	parts := strings.Split(s, ".")
	for i, p := range parts {
		parts[i] = QuoteIdent(dialect, p)
	}
	return strings.Join(parts, ".")
}

// List returns a comma-separated list of items without quoting.
// Example: List("a", "b", "c") -> "a, b, c"
func List(items ...string) string {
	return strings.Join(items, ", ")
}
