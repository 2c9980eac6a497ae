package gencol

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/testutil"
)

const numsScript = `create_table("nums", function (t) {
  t.integer("a");
  t.generated_column("a2", "integer", "a * 2", {stored: true, index: true});
});
alter_table("nums", function (t) {
  t.add_generated_column("a3", "integer", "a * 3");
});
`

func writeScript(t *testing.T, code string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.js")
	testutil.WriteFile(t, path, code)
	return path
}

func TestRenderScript(t *testing.T) {
	db := Mock("generic")
	sqls, err := db.RenderScript(writeScript(t, numsScript))
	testutil.AssertNoError(t, err)

	want := []string{
		"CREATE TABLE nums (a integer, a2 integer AS ((a * 2)) STORED)",
		"CREATE INDEX nums_a2_index ON nums (a2)",
		"ALTER TABLE nums ADD COLUMN a3 integer AS ((a * 3))",
	}
	if len(sqls) != len(want) {
		t.Fatalf("got %d statements: %q", len(sqls), sqls)
	}
	for i := range want {
		testutil.AssertSQL(t, sqls[i], want[i])
	}
	assertSQLs(t, db)
}

func TestRunScript_Mock(t *testing.T) {
	db := Mock("generic")
	testutil.AssertNoError(t, db.RunScript(context.Background(), writeScript(t, numsScript)))
	if n := len(db.SQLs()); n != 3 {
		t.Errorf("recorded %d statements, want 3", n)
	}
}

func TestRunScript_Error(t *testing.T) {
	db := Mock("generic")
	path := writeScript(t, `create_table("nums", function (t) {
  t.generated_column("a2", "integer");
});`)

	err := db.RunScript(context.Background(), path)
	testutil.AssertError(t, err, alerr.ErrMissingExpr)
	if ctx := ErrorContext(err); ctx["file"] != path {
		t.Errorf("file = %v, want %s", ctx["file"], path)
	}
	assertSQLs(t, db)
}

func TestRunScript_SQLite(t *testing.T) {
	db, err := Open(WithDatabaseURL("sqlite://:memory:"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Dialect() != "sqlite" || db.IsMock() {
		t.Fatalf("Dialect() = %s, IsMock() = %v", db.Dialect(), db.IsMock())
	}

	ctx := context.Background()
	testutil.AssertNoError(t, db.RunScript(ctx, writeScript(t, numsScript)))

	conn := db.SQLDB()
	testutil.AssertColumnExists(t, conn, "nums", "a2")
	testutil.AssertColumnExists(t, conn, "nums", "a3")
	testutil.AssertIndexExists(t, conn, "nums", "nums_a2_index")

	testutil.ExecSQL(t, conn, "INSERT INTO nums (a) VALUES (5)")
	if got := testutil.QueryInt(t, conn, "SELECT a2 + a3 FROM nums"); got != 25 {
		t.Errorf("a2 + a3 = %d, want 25", got)
	}
	if n := len(db.SQLs()); n != 3 {
		t.Errorf("logged %d statements, want 3", n)
	}
}

func TestRunScript_SQLiteFailure(t *testing.T) {
	db, err := Open(WithDatabaseURL(":memory:"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	testutil.Must(t, db.CreateTable(ctx, "nums", func(t *TableBuilder) {
		t.Integer("a")
	}))

	err = db.CreateTable(ctx, "nums", func(t *TableBuilder) {
		t.Integer("a")
	})
	testutil.AssertError(t, err, alerr.ErrSQLExecution)
	if n := len(db.SQLs()); n != 1 {
		t.Errorf("logged %d statements, want only the successful one", n)
	}
}

func TestLockAndVerify(t *testing.T) {
	db := Mock("generic")
	script := writeScript(t, numsScript)
	lock := filepath.Join(t.TempDir(), "gencol.lock")

	testutil.AssertNoError(t, db.Lock(script, lock))
	testutil.AssertNoError(t, db.Verify(script, lock))

	// The same script renders different SQL in another dialect.
	err := Mock("postgres").Verify(script, lock)
	testutil.AssertError(t, err, alerr.ErrLockMismatch)

	result, err := Mock("postgres").VerifyDetailed(script, lock)
	testutil.AssertNoError(t, err)
	if result.Valid || len(result.Modified) == 0 {
		t.Errorf("VerifyDetailed() = %+v, want modified statements", result)
	}
}
