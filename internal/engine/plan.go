// Package engine turns schema operations into ordered SQL statements and
// executes them against a database.
package engine

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/dialect"
)

// Statement is one rendered DDL statement and the operation it came from.
type Statement struct {
	// Op is the type of the operation that produced the statement.
	// A CREATE INDEX that follows CREATE TABLE reports OpCreateIndex.
	Op ast.OpType

	// Table is the table the statement changes.
	Table string

	// SQL is the statement text, without a trailing semicolon.
	SQL string
}

// Plan renders operations to statements for the given dialect.
// CreateTable yields its CREATE TABLE followed by one CREATE INDEX per
// declared index; every other operation yields exactly one statement.
// The first error aborts planning.
func Plan(d dialect.Dialect, ops []ast.Operation) ([]Statement, error) {
	if d == nil {
		return nil, alerr.New(alerr.EUnsupportedDialect, "no dialect configured")
	}

	stmts := make([]Statement, 0, len(ops))
	for _, op := range ops {
		if err := op.Validate(); err != nil {
			return nil, err
		}

		sql, err := OperationSQL(d, op)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, Statement{Op: op.Type(), Table: op.Table(), SQL: sql})

		if ct, ok := op.(*ast.CreateTable); ok {
			for _, idx := range ct.IndexOps() {
				sql, err := d.CreateIndexSQL(idx)
				if err != nil {
					return nil, err
				}
				stmts = append(stmts, Statement{Op: ast.OpCreateIndex, Table: ct.Name, SQL: sql})
			}
		}
	}
	return stmts, nil
}

// OperationSQL renders a single operation. For CreateTable only the
// CREATE TABLE statement is returned.
func OperationSQL(d dialect.Dialect, op ast.Operation) (string, error) {
	switch o := op.(type) {
	case *ast.CreateTable:
		return d.CreateTableSQL(o)
	case *ast.DropTable:
		return d.DropTableSQL(o)
	case *ast.AddColumn:
		return d.AddColumnSQL(o)
	case *ast.DropColumn:
		return d.DropColumnSQL(o)
	case *ast.RenameColumn:
		return d.RenameColumnSQL(o)
	case *ast.CreateIndex:
		return d.CreateIndexSQL(o)
	case *ast.DropIndex:
		return d.DropIndexSQL(o)
	default:
		return "", alerr.Newf(alerr.EInternalError, "unsupported operation %T", op)
	}
}

// SQLs returns the statement texts in order.
func SQLs(stmts []Statement) []string {
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = s.SQL
	}
	return out
}

// Checksum returns the SHA-256 of a single statement.
func Checksum(sql string) string {
	sum := sha256.Sum256([]byte(sql))
	return hex.EncodeToString(sum[:])
}

// ComputeSQLChecksum computes a SHA-256 hash of the statements joined by newlines.
func ComputeSQLChecksum(statements []string) string {
	if len(statements) == 0 {
		return ""
	}
	h := sha256.New()
	for _, s := range statements {
		h.Write([]byte(s))
		h.Write([]byte("\n"))
	}
	return hex.EncodeToString(h.Sum(nil))
}
