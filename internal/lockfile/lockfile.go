// Package lockfile records the rendered DDL of a schema in gencol.lock and
// verifies it later. Each statement gets a SHA-256 checksum and the file
// starts with the merkle root of those checksums, so a changed dialect,
// option or expression is caught before anything runs.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cbergoon/merkletree"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/engine"
)

// DefaultPath is the lock file name, placed next to gencol.yaml.
const DefaultPath = "gencol.lock"

// Entry is one statement in the lock file.
type Entry struct {
	Name     string // "<n> <op> <table>", e.g. "002 CreateIndex nums"
	Checksum string
}

// LockFile is the parsed contents of a lock file.
type LockFile struct {
	Root    string // Merkle root over the entry checksums
	Entries []Entry
}

// statementContent implements merkletree.Content for one statement checksum.
type statementContent struct {
	checksum string
}

func (s statementContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(s.checksum))
	return h[:], nil
}

func (s statementContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(statementContent)
	if !ok {
		return false, nil
	}
	return s.checksum == o.checksum, nil
}

// Compute builds the lock file for planned statements.
func Compute(stmts []engine.Statement) (*LockFile, error) {
	lf := &LockFile{Entries: make([]Entry, 0, len(stmts))}
	for i, s := range stmts {
		lf.Entries = append(lf.Entries, Entry{
			Name:     fmt.Sprintf("%03d %s %s", i+1, s.Op, s.Table),
			Checksum: engine.Checksum(s.SQL),
		})
	}

	root, err := merkleRoot(lf.Entries)
	if err != nil {
		return nil, err
	}
	lf.Root = root
	return lf, nil
}

func merkleRoot(entries []Entry) (string, error) {
	if len(entries) == 0 {
		return emptyHash(), nil
	}

	contents := make([]merkletree.Content, 0, len(entries))
	for _, e := range entries {
		contents = append(contents, statementContent{checksum: e.Checksum})
	}
	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return "", alerr.Wrap(alerr.EInternalError, err, "failed to build merkle tree")
	}
	return hex.EncodeToString(tree.MerkleRoot()), nil
}

func emptyHash() string {
	h := sha256.Sum256(nil)
	return hex.EncodeToString(h[:])
}

// String renders the lock file: the root on the first line, then one
// "<checksum> <name>" line per statement.
func (lf *LockFile) String() string {
	var sb strings.Builder
	sb.WriteString(lf.Root + "\n")
	for _, e := range lf.Entries {
		sb.WriteString(e.Checksum + " " + e.Name + "\n")
	}
	return sb.String()
}

// Read reads and parses a lock file.
// Returns nil if the file does not exist.
func Read(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, alerr.Wrap(alerr.ErrLockRead, err, "failed to read lock file").With("path", path)
	}
	return Parse(string(data))
}

// Parse parses lock file contents.
func Parse(data string) (*LockFile, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, alerr.New(alerr.ErrLockRead, "lock file is empty")
	}

	lines := strings.Split(data, "\n")
	lf := &LockFile{Root: strings.TrimSpace(lines[0])}

	for i, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 2)
		if len(parts) != 2 {
			return nil, alerr.Newf(alerr.ErrLockRead, "malformed lock file line %d", i+2).
				With("line", line)
		}
		lf.Entries = append(lf.Entries, Entry{
			Checksum: parts[0],
			Name:     strings.TrimSpace(parts[1]),
		})
	}
	return lf, nil
}

// Write computes the lock file for stmts and writes it to path.
func Write(path string, stmts []engine.Statement) error {
	lf, err := Compute(stmts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return alerr.Wrap(alerr.ErrLockWrite, err, "failed to create lock file directory")
	}
	if err := os.WriteFile(path, []byte(lf.String()), 0o644); err != nil {
		return alerr.Wrap(alerr.ErrLockWrite, err, "failed to write lock file").With("path", path)
	}
	return nil
}

// VerificationResult holds detailed results of lock file verification.
type VerificationResult struct {
	Valid          bool     // Overall validity
	LockFileExists bool     // Whether the lock file exists
	RootMatch      bool     // Whether the merkle root matches
	Added          []string // Statements rendered now but not locked
	Removed        []string // Statements locked but no longer rendered
	Modified       []string // Statements whose SQL changed
	Verified       []string // Statements that match
}

// VerifyDetailed compares the lock file at path against stmts.
func VerifyDetailed(path string, stmts []engine.Statement) (*VerificationResult, error) {
	result := &VerificationResult{Valid: true, LockFileExists: true, RootMatch: true}

	locked, err := Read(path)
	if err != nil {
		return nil, err
	}
	if locked == nil {
		result.LockFileExists = false
		result.Valid = false
		return result, nil
	}

	current, err := Compute(stmts)
	if err != nil {
		return nil, err
	}

	if current.Root != locked.Root {
		result.RootMatch = false
		result.Valid = false
	}

	lockMap := make(map[string]string, len(locked.Entries))
	for _, e := range locked.Entries {
		lockMap[e.Name] = e.Checksum
	}

	seen := make(map[string]bool, len(current.Entries))
	for _, e := range current.Entries {
		seen[e.Name] = true
		expected, ok := lockMap[e.Name]
		switch {
		case !ok:
			result.Added = append(result.Added, e.Name)
			result.Valid = false
		case expected != e.Checksum:
			result.Modified = append(result.Modified, e.Name)
			result.Valid = false
		default:
			result.Verified = append(result.Verified, e.Name)
		}
	}

	for _, e := range locked.Entries {
		if !seen[e.Name] {
			result.Removed = append(result.Removed, e.Name)
			result.Valid = false
		}
	}

	return result, nil
}

// Verify checks that the lock file at path matches stmts.
// Returns nil if everything matches, or an ErrLockMismatch error naming the
// first difference.
func Verify(path string, stmts []engine.Statement) error {
	res, err := VerifyDetailed(path, stmts)
	if err != nil {
		return err
	}

	switch {
	case res.Valid:
		return nil
	case !res.LockFileExists:
		return alerr.New(alerr.ErrLockMismatch, "lock file not found").
			With("path", path).
			WithHelp("run 'gencol lock' to create it")
	case len(res.Modified) > 0:
		return mismatch(path, "statement changed", res.Modified[0])
	case len(res.Added) > 0:
		return mismatch(path, "statement not in lock file", res.Added[0])
	case len(res.Removed) > 0:
		return mismatch(path, "statement in lock file but no longer rendered", res.Removed[0])
	default:
		return alerr.New(alerr.ErrLockMismatch, "lock file root mismatch").With("path", path)
	}
}

func mismatch(path, msg, name string) error {
	return alerr.New(alerr.ErrLockMismatch, msg).
		With("path", path).
		With("statement", name).
		WithHelp("run 'gencol lock' if the change is intended")
}
