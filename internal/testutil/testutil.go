// Package testutil provides test helpers for gencol.
// It includes database setup, SQL assertions, error assertions, and golden file testing.
//
// SQLite helpers run everywhere (modernc.org/sqlite is pure Go). PostgreSQL
// and MySQL helpers need running servers and the 'integration' build tag:
//
//	go test ./... -tags=integration
//
// Golden files live in the testdata/ directory of the calling package.
// Update them with:
//
//	go test ./... -update-golden
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/hlop3z/gencol/internal/alerr"
)

var updateGolden = flag.Bool("update-golden", false, "update golden files")

var whitespace = regexp.MustCompile(`\s+`)

// -----------------------------------------------------------------------------
// SQL Assertions
// -----------------------------------------------------------------------------

// NormalizeSQL collapses whitespace runs into one space, trims the result
// and upper-cases it.
func NormalizeSQL(sql string) string {
	sql = whitespace.ReplaceAllString(sql, " ")
	return strings.ToUpper(strings.TrimSpace(sql))
}

// AssertSQL compares two SQL strings after normalizing them.
func AssertSQL(t *testing.T, got, want string) {
	t.Helper()

	gotNorm := NormalizeSQL(got)
	wantNorm := NormalizeSQL(want)

	if gotNorm != wantNorm {
		t.Errorf("SQL mismatch:\ngot:  %s\nwant: %s\n\noriginal got:\n%s\n\noriginal want:\n%s",
			gotNorm, wantNorm, got, want)
	}
}

// AssertSQLContains checks that sql contains substr, both normalized.
func AssertSQLContains(t *testing.T, sql, substr string) {
	t.Helper()

	sqlNorm := NormalizeSQL(sql)
	substrNorm := NormalizeSQL(substr)

	if !strings.Contains(sqlNorm, substrNorm) {
		t.Errorf("SQL does not contain expected substring:\nsql:    %s\nsubstr: %s", sqlNorm, substrNorm)
	}
}

// -----------------------------------------------------------------------------
// Error Assertions
// -----------------------------------------------------------------------------

// AssertError checks that err carries the expected error code.
func AssertError(t *testing.T, err error, code alerr.Code) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error with code %s, got nil", code)
		return
	}

	if got := alerr.GetErrorCode(err); got != code {
		t.Errorf("expected error code %s, got %s\nerror: %v", code, got, err)
	}
}

// AssertNoError fails the test when err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

// AssertErrorContains checks that the error message contains substr.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()

	if err == nil {
		t.Errorf("expected error containing %q, got nil", substr)
		return
	}

	if !strings.Contains(err.Error(), substr) {
		t.Errorf("error message does not contain %q\ngot: %v", substr, err)
	}
}

// -----------------------------------------------------------------------------
// Golden File Testing
// -----------------------------------------------------------------------------

// Golden compares got against testdata/<name>.golden.
// With -update-golden the file is rewritten instead.
func Golden(t *testing.T, name string, got string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	path := filepath.Join(wd, "testdata", name+".golden")

	if *updateGolden {
		WriteFile(t, path, got)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file does not exist: %s\nrun with -update-golden to create it\n\ngot:\n%s",
				path, got)
		}
		t.Fatalf("failed to read golden file: %v", err)
	}

	if got != string(want) {
		t.Errorf("golden file mismatch: %s\n\ngot:\n%s\n\nwant:\n%s\n\nrun with -update-golden to update",
			path, got, string(want))
	}
}

// -----------------------------------------------------------------------------
// Files
// -----------------------------------------------------------------------------

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
}

// Must fails the test immediately if err is not nil.
func Must(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// MustValue returns value, failing the test if err is not nil.
func MustValue[T any](t *testing.T, value T, err error) T {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return value
}
