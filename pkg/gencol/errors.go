package gencol

import (
	"errors"

	"github.com/hlop3z/gencol/internal/alerr"
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these errors.
var (
	// ErrMissingDatabaseURL is returned by Open when no database URL is provided.
	ErrMissingDatabaseURL = errors.New("gencol: database URL required")

	// ErrUnsupportedDialect is returned when the dialect name is not known.
	ErrUnsupportedDialect = errors.New("gencol: unsupported dialect")

	// ErrClosed is returned when a closed DB is used.
	ErrClosed = errors.New("gencol: database is closed")
)

// ErrorCode returns the stable code (e.g. "E1003") of the first structured
// error in err's chain, or "" if there is none.
func ErrorCode(err error) string {
	return string(alerr.GetErrorCode(err))
}

// ErrorContext returns the key/value context of the first structured error
// in err's chain: table, column, sql, file, line and so on.
func ErrorContext(err error) map[string]any {
	var e *alerr.Error
	if !errors.As(err, &e) {
		return nil
	}
	return e.GetContext()
}
