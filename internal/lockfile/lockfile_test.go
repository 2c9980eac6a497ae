package lockfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/engine"
	"github.com/hlop3z/gencol/internal/testutil"
)

func sampleStatements() []engine.Statement {
	return []engine.Statement{
		{Op: ast.OpCreateTable, Table: "nums", SQL: "CREATE TABLE nums (a integer, a2 integer AS ((a * 2)) STORED)"},
		{Op: ast.OpCreateIndex, Table: "nums", SQL: "CREATE INDEX nums_a2_index ON nums (a2)"},
	}
}

func TestWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gencol.lock")

	testutil.Must(t, Write(path, sampleStatements()))

	lf, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if lf == nil {
		t.Fatal("expected lock file, got nil")
	}
	if len(lf.Root) != 64 {
		t.Errorf("root = %q, want a sha256 hex digest", lf.Root)
	}
	if len(lf.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(lf.Entries))
	}
	if lf.Entries[0].Name != "001 CreateTable nums" {
		t.Errorf("first entry = %q", lf.Entries[0].Name)
	}
	if lf.Entries[1].Checksum != engine.Checksum("CREATE INDEX nums_a2_index ON nums (a2)") {
		t.Errorf("second checksum = %q", lf.Entries[1].Checksum)
	}
}

func TestRead_NotFound(t *testing.T) {
	lf, err := Read(filepath.Join(t.TempDir(), "nonexistent.lock"))
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if lf != nil {
		t.Fatalf("expected nil lock file, got %+v", lf)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "  \n"},
		{"malformed line", "abc\nnochecksum\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			testutil.AssertError(t, err, alerr.ErrLockRead)
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a, aErr := Compute(sampleStatements())
	a = testutil.MustValue(t, a, aErr)
	b, bErr := Compute(sampleStatements())
	b = testutil.MustValue(t, b, bErr)
	if a.String() != b.String() {
		t.Error("Compute is not deterministic")
	}

	empty, emptyErr := Compute(nil)
	empty = testutil.MustValue(t, empty, emptyErr)
	if empty.Root == "" || len(empty.Entries) != 0 {
		t.Errorf("empty lock = %+v", empty)
	}

	changed := sampleStatements()
	changed[0].SQL = strings.Replace(changed[0].SQL, " STORED", "", 1)
	c, cErr := Compute(changed)
	c = testutil.MustValue(t, c, cErr)
	if c.Root == a.Root {
		t.Error("changed statement kept the same root")
	}
}

func TestVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gencol.lock")
	testutil.Must(t, Write(path, sampleStatements()))

	if err := Verify(path, sampleStatements()); err != nil {
		t.Fatalf("Verify() on unchanged statements = %v", err)
	}

	tests := []struct {
		name   string
		mutate func([]engine.Statement) []engine.Statement
		field  func(*VerificationResult) []string
	}{
		{"modified", func(s []engine.Statement) []engine.Statement {
			s[0].SQL += " "
			return s
		}, func(r *VerificationResult) []string { return r.Modified }},
		{"added", func(s []engine.Statement) []engine.Statement {
			return append(s, engine.Statement{Op: ast.OpDropTable, Table: "old", SQL: "DROP TABLE old"})
		}, func(r *VerificationResult) []string { return r.Added }},
		{"removed", func(s []engine.Statement) []engine.Statement {
			return s[:1]
		}, func(r *VerificationResult) []string { return r.Removed }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := tt.mutate(sampleStatements())

			testutil.AssertError(t, Verify(path, stmts), alerr.ErrLockMismatch)

			res, resErr := VerifyDetailed(path, stmts)
			res = testutil.MustValue(t, res, resErr)
			if res.Valid || res.RootMatch {
				t.Errorf("result = %+v, want invalid", res)
			}
			if len(tt.field(res)) != 1 {
				t.Errorf("result = %+v", res)
			}
		})
	}
}

func TestVerify_MissingLockFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gencol.lock")

	err := Verify(path, sampleStatements())
	testutil.AssertError(t, err, alerr.ErrLockMismatch)

	res, resErr := VerifyDetailed(path, sampleStatements())
	res = testutil.MustValue(t, res, resErr)
	if res.LockFileExists || res.Valid {
		t.Errorf("result = %+v", res)
	}
}

func TestWrite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "gencol.lock")
	testutil.Must(t, Write(path, sampleStatements()))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("lock file not written: %v", err)
	}
}
