package engine

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/dialect"
)

// Executor runs a single statement. *sql.DB, *sql.Tx and *Recorder satisfy it.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Runner executes planned statements against a database.
type Runner struct {
	db      *sql.DB
	dialect dialect.Dialect
}

// NewRunner creates a new runner.
// Returns nil if db or dialect is nil.
func NewRunner(db *sql.DB, d dialect.Dialect) *Runner {
	if db == nil || d == nil {
		return nil
	}
	return &Runner{db: db, dialect: d}
}

// Dialect returns the dialect the runner was created with.
func (r *Runner) Dialect() dialect.Dialect {
	return r.dialect
}

// Apply executes statements in order. Dialects with transactional DDL run
// the whole batch in one transaction; others run statement by statement and
// stop at the first failure.
func (r *Runner) Apply(ctx context.Context, stmts []Statement) error {
	if len(stmts) == 0 {
		return nil
	}

	start := time.Now()
	var err error
	if r.dialect.SupportsTransactionalDDL() {
		err = r.runInTransaction(ctx, stmts)
	} else {
		err = Exec(ctx, r.db, stmts)
	}
	if err != nil {
		return err
	}

	slog.Info("applied statements",
		"dialect", r.dialect.Name(),
		"count", len(stmts),
		"duration", time.Since(start))
	return nil
}

// runInTransaction executes statements atomically: all succeed or none do.
func (r *Runner) runInTransaction(ctx context.Context, stmts []Statement) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return alerr.Wrap(alerr.ErrSQLTransaction, err, "failed to begin transaction")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			slog.Warn("failed to roll back transaction", "error", rbErr)
		}
	}()

	if err := Exec(ctx, tx, stmts); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return alerr.Wrap(alerr.ErrSQLTransaction, err, "failed to commit transaction")
	}
	committed = true

	return nil
}

// Exec runs statements one after another on ex, stopping at the first error.
func Exec(ctx context.Context, ex Executor, stmts []Statement) error {
	for _, s := range stmts {
		slog.Debug("executing statement", "op", s.Op.String(), "table", s.Table, "sql", s.SQL)
		if _, err := ex.ExecContext(ctx, s.SQL); err != nil {
			return alerr.WrapSQL(err, "execute statement", s.SQL).WithTable(s.Table)
		}
	}
	return nil
}
