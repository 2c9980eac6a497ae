package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// SetupSQLite opens a private in-memory SQLite database.
// The connection is closed when the test completes.
func SetupSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite connection: %v", err)
	}
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping sqlite: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// AssertColumnExists checks that a column, including a generated one, exists
// in a SQLite table.
func AssertColumnExists(t *testing.T, db *sql.DB, table, column string) {
	t.Helper()

	// table_xinfo also lists hidden and generated columns.
	rows, err := db.Query("PRAGMA table_xinfo(" + table + ")")
	if err != nil {
		t.Fatalf("failed to get table info: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notNull, pk, hidden int
		var name, ctype string
		var defaultValue any
		if err := rows.Scan(&cid, &name, &ctype, &notNull, &defaultValue, &pk, &hidden); err != nil {
			t.Fatalf("failed to scan column info: %v", err)
		}
		if name == column {
			return
		}
	}

	t.Errorf("expected column %q to exist in table %q, but it does not", column, table)
}

// AssertIndexExists checks that an index exists on a SQLite table.
func AssertIndexExists(t *testing.T, db *sql.DB, table, index string) {
	t.Helper()

	var name string
	err := db.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type = 'index' AND tbl_name = ? AND name = ?
	`, table, index).Scan(&name)
	if err == sql.ErrNoRows {
		t.Errorf("expected index %q to exist on table %q, but it does not", index, table)
		return
	}
	if err != nil {
		t.Fatalf("failed to check if index exists: %v", err)
	}
}

// ExecSQL executes a statement and fails the test on error.
func ExecSQL(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()

	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL:\n%s\nerror: %v", query, err)
	}
}

// QueryInt runs a query returning a single integer.
func QueryInt(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()

	var v int64
	if err := db.QueryRow(query, args...).Scan(&v); err != nil {
		t.Fatalf("failed to query SQL:\n%s\nerror: %v", query, err)
	}
	return v
}
