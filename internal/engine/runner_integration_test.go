//go:build integration
// +build integration

package engine

import (
	"context"
	"database/sql"
	"testing"

	"github.com/hlop3z/gencol/internal/dialect"
	"github.com/hlop3z/gencol/internal/dsl"
	"github.com/hlop3z/gencol/internal/testutil"
)

func storedOps(t *testing.T, d dialect.Dialect) []Statement {
	t.Helper()

	m := dsl.NewMigrationBuilder()
	testutil.Must(t, m.CreateTable("gencol_nums", func(tb *dsl.TableBuilder) {
		tb.Column("a", "integer")
		tb.GeneratedColumn("a2", "integer", "a * 2", dsl.Stored(), dsl.Index())
	}))
	testutil.Must(t, m.AlterTable("gencol_nums", func(ab *dsl.AlterTableBuilder) {
		ab.AddGeneratedColumn("a3", "integer", "a * 3", dsl.Stored())
	}))
	ops, opsErr := m.Operations()
	stmts, err := Plan(d, testutil.MustValue(t, ops, opsErr))
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	return stmts
}

func assertComputed(t *testing.T, db *sql.DB) {
	t.Helper()
	testutil.ExecSQL(t, db, "INSERT INTO gencol_nums (a) VALUES (4)")
	if got := testutil.QueryInt(t, db, "SELECT a2 + a3 FROM gencol_nums"); got != 20 {
		t.Errorf("a2 + a3 = %d, want 20", got)
	}
}

func TestRunner_ApplyPostgres(t *testing.T) {
	db := testutil.SetupPostgres(t)
	d := dialect.Postgres()

	if err := NewRunner(db, d).Apply(context.Background(), storedOps(t, d)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assertComputed(t, db)
}

func TestRunner_ApplyMySQL(t *testing.T) {
	db := testutil.SetupMySQL(t)
	d := dialect.MySQL()

	testutil.ExecSQL(t, db, "DROP TABLE IF EXISTS gencol_nums")
	t.Cleanup(func() {
		_, _ = db.Exec("DROP TABLE IF EXISTS gencol_nums")
	})

	if err := NewRunner(db, d).Apply(context.Background(), storedOps(t, d)); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	assertComputed(t, db)
}
