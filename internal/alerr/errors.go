// Package alerr provides the structured error type used across gencol.
// Every error carries a stable code, a message, sorted key/value context and an
// optional wrapped cause.
package alerr

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// Code is a stable, machine-readable error code.
type Code string

const (
	// Schema errors (E1xxx): table or column definitions that cannot be rendered.
	ErrSchemaInvalid   Code = "E1001" // Definition is malformed
	ErrColumnDuplicate Code = "E1002" // Column declared twice in one table builder
	ErrMissingExpr     Code = "E1003" // Generated column without an expression

	// Validation errors (E2xxx): bad user input.
	ErrInvalidIdentifier Code = "E2001" // Identifier does not match the allowed pattern
	ErrInvalidType       Code = "E2005" // Column type cannot be literalized
	ErrInvalidOption     Code = "E2009" // Unknown option key or value of the wrong type

	// Expression errors (E3xxx): literalization and parsing.
	ErrExprParse       Code = "E3001" // Expression source cannot be parsed
	ErrExprUnsupported Code = "E3002" // Expression node has no SQL rendering
	ErrExprUnsafe      Code = "E3003" // Raw SQL contains a forbidden pattern

	// SQL errors (E4xxx): execution against a database.
	ErrSQLExecution   Code = "E4001"
	ErrSQLConnection  Code = "E4002"
	ErrSQLTransaction Code = "E4003"

	// Script errors (E5xxx): schema script evaluation.
	ErrJSExecution Code = "E5001"
	ErrJSTimeout   Code = "E5002"

	// Dialect errors (E6xxx).
	EUnsupportedDialect Code = "E6003"
	EUnsupportedFeature Code = "E6004" // Dialect cannot express the requested DDL

	// Lock file errors (E8xxx).
	ErrLockRead     Code = "E8002"
	ErrLockWrite    Code = "E8003"
	ErrLockMismatch Code = "E8004"

	// Internal errors (E9xxx).
	EInternalError Code = "E9001"
)

// Error is the standard error type.
type Error struct {
	code    Code
	message string
	context map[string]any
	cause   error
	stack   string
}

// Error returns the formatted error string.
//
//	[E2009] unknown option "primary_ky"
//	  column: a2
//	  help: [did you mean 'primary_key'?]
func (e *Error) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.code, e.message)

	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(&b, "\n  %s: %v", k, e.context[k])
		}
	}

	if e.cause != nil {
		fmt.Fprintf(&b, "\n  cause: %v", e.cause)
	}

	return b.String()
}

// Unwrap returns the underlying cause for errors.Unwrap.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.code == targetErr.code
	}
	return false
}

// GetCode returns the error code.
func (e *Error) GetCode() Code {
	return e.code
}

// GetMessage returns the error message.
func (e *Error) GetMessage() string {
	return e.message
}

// GetContext returns the error context map.
func (e *Error) GetContext() map[string]any {
	return e.context
}

// GetCause returns the wrapped error, if any.
func (e *Error) GetCause() error {
	return e.cause
}

// GetStack returns the stack captured at construction.
func (e *Error) GetStack() string {
	return e.stack
}

// With adds a key-value pair to the error context.
func (e *Error) With(key string, value any) *Error {
	if e.context == nil {
		e.context = make(map[string]any)
	}
	e.context[key] = value
	return e
}

// WithTable adds table context to the error.
func (e *Error) WithTable(table string) *Error {
	return e.With("table", table)
}

// WithColumn adds column context to the error.
func (e *Error) WithColumn(name string) *Error {
	return e.With("column", name)
}

// WithSQL adds the offending SQL statement.
func (e *Error) WithSQL(sql string) *Error {
	return e.With("sql", sql)
}

// WithFile adds file location context.
func (e *Error) WithFile(path string, line int) *Error {
	e.With("file", path)
	if line > 0 {
		e.With("line", line)
	}
	return e
}

// WithHelp adds a help suggestion (displayed as "help: ...").
func (e *Error) WithHelp(help string) *Error {
	helps, _ := e.context["help"].([]string)
	helps = append(helps, help)
	return e.With("help", helps)
}

// Helps returns all help suggestions attached to this error.
func (e *Error) Helps() []string {
	helps, _ := e.context["help"].([]string)
	return helps
}

func captureStack(skip int) string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) *Error {
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Newf creates a new Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		code:    code,
		message: fmt.Sprintf(format, args...),
		context: make(map[string]any),
		stack:   captureStack(3),
	}
}

// Wrap creates a new Error that wraps err. A nil err behaves like New.
func Wrap(code Code, err error, msg string) *Error {
	if err == nil {
		return New(code, msg)
	}
	return &Error{
		code:    code,
		message: msg,
		context: make(map[string]any),
		cause:   err,
		stack:   captureStack(3),
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(code Code, err error, format string, args ...any) *Error {
	return Wrap(code, err, fmt.Sprintf(format, args...))
}

// GetErrorCode extracts the first code found in the error chain.
func GetErrorCode(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return GetErrorCode(err) == code
}

// WrapSQL creates an ErrSQLExecution error carrying the failing statement.
func WrapSQL(err error, op, sql string) *Error {
	e := Wrap(ErrSQLExecution, err, "failed to "+op)
	if sql != "" {
		e.WithSQL(sql)
	}
	return e
}
