package gencol

import (
	"context"

	"github.com/hlop3z/gencol/internal/engine"
	"github.com/hlop3z/gencol/internal/lockfile"
	"github.com/hlop3z/gencol/internal/runtime"
)

// VerificationResult reports how rendered DDL differs from a lock file.
type VerificationResult = lockfile.VerificationResult

// DefaultLockFile is the lock file name used when none is configured.
const DefaultLockFile = lockfile.DefaultPath

// plan evaluates a schema script and plans its statements.
func (db *DB) plan(path string) ([]engine.Statement, error) {
	sb := runtime.NewSandbox()
	sb.SetTimeout(db.config.ScriptTimeout)
	ops, err := sb.RunFile(path)
	if err != nil {
		return nil, err
	}
	return engine.Plan(db.dialect, ops)
}

// RenderScript evaluates the schema script at path and returns its SQL
// without executing it.
func (db *DB) RenderScript(path string) ([]string, error) {
	stmts, err := db.plan(path)
	if err != nil {
		return nil, err
	}
	return engine.SQLs(stmts), nil
}

// RunScript evaluates the schema script at path and executes its SQL.
func (db *DB) RunScript(ctx context.Context, path string) error {
	stmts, err := db.plan(path)
	if err != nil {
		return err
	}
	db.config.Logger.Debug("running script", "path", path, "statements", len(stmts))
	return db.exec(ctx, stmts)
}

// Lock writes the lock file for the script at path. An empty lockPath means
// DefaultLockFile.
func (db *DB) Lock(path, lockPath string) error {
	stmts, err := db.plan(path)
	if err != nil {
		return err
	}
	return lockfile.Write(orDefault(lockPath, DefaultLockFile), stmts)
}

// Verify checks the script at path against its lock file and returns an
// error with code E8004 on mismatch.
func (db *DB) Verify(path, lockPath string) error {
	stmts, err := db.plan(path)
	if err != nil {
		return err
	}
	return lockfile.Verify(orDefault(lockPath, DefaultLockFile), stmts)
}

// VerifyDetailed is Verify returning the per-statement comparison.
func (db *DB) VerifyDetailed(path, lockPath string) (*VerificationResult, error) {
	stmts, err := db.plan(path)
	if err != nil {
		return nil, err
	}
	return lockfile.VerifyDetailed(orDefault(lockPath, DefaultLockFile), stmts)
}
