package testutil

import (
	"path/filepath"
	"testing"
)

func TestNormalizeSQL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"single line", "create table t (a integer)", "CREATE TABLE T (A INTEGER)"},
		{"newlines", "CREATE TABLE t (\n  a integer\n)", "CREATE TABLE T ( A INTEGER )"},
		{"tabs and padding", "  ALTER\tTABLE t  ", "ALTER TABLE T"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSQL(tt.input); got != tt.want {
				t.Errorf("NormalizeSQL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetupSQLite(t *testing.T) {
	db := SetupSQLite(t)

	ExecSQL(t, db, "CREATE TABLE nums (a integer, a2 integer AS (a * 2))")
	ExecSQL(t, db, "CREATE INDEX nums_a2_index ON nums (a2)")
	ExecSQL(t, db, "INSERT INTO nums (a) VALUES (?)", 21)

	AssertColumnExists(t, db, "nums", "a2")
	AssertIndexExists(t, db, "nums", "nums_a2_index")

	if got := QueryInt(t, db, "SELECT a2 FROM nums"); got != 42 {
		t.Errorf("a2 = %d, want 42", got)
	}
}

func TestGolden(t *testing.T) {
	dir := t.TempDir()
	WriteFile(t, filepath.Join(dir, "testdata", "sample.golden"), "CREATE TABLE t (a integer)")

	t.Chdir(dir)
	Golden(t, "sample", "CREATE TABLE t (a integer)")
}
