// Package runtime evaluates schema scripts in a sandboxed Goja JS engine.
// A script calls create_table, alter_table and drop_table; the sandbox
// collects the resulting operations in declaration order.
package runtime

import (
	"errors"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/ast"
	"github.com/hlop3z/gencol/internal/dsl"
)

// FixedSeed is the seed for Math.random, so scripts render the same DDL
// on every run.
const FixedSeed = 12345

// DefaultTimeout bounds a single script evaluation.
const DefaultTimeout = 5 * time.Second

// Sandbox evaluates schema scripts. A Sandbox is not safe for concurrent use.
type Sandbox struct {
	vm      *goja.Runtime
	timeout time.Duration

	migration *dsl.MigrationBuilder

	// fault is the Go error behind the most recent JS exception raised by a
	// binding. It keeps the error code intact across the JS boundary.
	fault error

	currentFile string
	currentCode string
}

// NewSandbox creates a new hardened sandbox with the schema bindings installed.
func NewSandbox() *Sandbox {
	vm := goja.New()

	vm.SetMaxCallStackSize(500)

	seedRand := rand.New(rand.NewSource(FixedSeed))
	vm.SetRandSource(func() float64 { return seedRand.Float64() })

	disableDangerousGlobals(vm)

	s := &Sandbox{
		vm:        vm,
		timeout:   DefaultTimeout,
		migration: dsl.NewMigrationBuilder(),
	}
	s.bind()
	return s
}

// disableDangerousGlobals removes JS features that allow dynamic code
// execution or prototype pollution.
func disableDangerousGlobals(vm *goja.Runtime) {
	vm.Set("eval", goja.Undefined())
	vm.Set("Function", goja.Undefined())

	_, _ = vm.RunString(`
		(function() {
			try {
				Object.freeze(Object.prototype);
				Object.freeze(Array.prototype);
				Object.freeze(String.prototype);
				Object.freeze(Number.prototype);
				Object.freeze(Boolean.prototype);
			} catch(e) {}
		})();
	`)
}

// SetTimeout sets the execution timeout for scripts.
func (s *Sandbox) SetTimeout(d time.Duration) {
	s.timeout = d
}

// Run evaluates code and returns the operations it declared.
func (s *Sandbox) Run(code string) ([]ast.Operation, error) {
	s.currentCode = code
	s.migration = dsl.NewMigrationBuilder()
	s.fault = nil

	timer := time.AfterFunc(s.timeout, func() {
		s.vm.Interrupt("execution timeout")
	})
	_, err := s.vm.RunString(code)
	timer.Stop()
	s.vm.ClearInterrupt()
	if err != nil {
		return nil, s.wrapError(err)
	}

	// A binding error swallowed by a try/catch in the script still fails.
	ops, err := s.migration.Operations()
	if err != nil {
		return nil, s.annotate(err, 0)
	}
	return ops, nil
}

// RunFile reads and evaluates a schema script. ES module export keywords
// are stripped since Goja only supports ES5.1 scripts.
func (s *Sandbox) RunFile(path string) ([]ast.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, alerr.Wrap(alerr.ErrJSExecution, err, "failed to read script").WithFile(path, 0)
	}

	s.currentFile = path
	defer func() { s.currentFile = "" }()

	code := strings.Replace(string(data), "export default ", "", 1)
	code = strings.ReplaceAll(code, "export ", "")
	return s.Run(code)
}

// wrapError converts an evaluation error. Errors raised by the bindings keep
// their own code; timeouts become ErrJSTimeout and everything else
// ErrJSExecution.
func (s *Sandbox) wrapError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		e := alerr.New(alerr.ErrJSTimeout, "script execution timed out").
			With("timeout", s.timeout.String())
		if s.currentFile != "" {
			e.WithFile(s.currentFile, 0)
		}
		return e
	}

	info := ParseJSError(err)
	if s.fault != nil {
		return s.annotate(s.fault, info.Line)
	}

	e := alerr.Wrap(alerr.ErrJSExecution, err, "script execution failed")
	return s.annotate(e, info.Line)
}

// annotate adds the script location to err.
func (s *Sandbox) annotate(err error, line int) error {
	var e *alerr.Error
	if !errors.As(err, &e) {
		e = alerr.Wrap(alerr.ErrJSExecution, err, "script execution failed")
	}
	if s.currentFile != "" {
		e.WithFile(s.currentFile, line)
	} else if line > 0 {
		e.With("line", line)
	}
	if src := GetSourceLine(s.currentCode, line); src != "" {
		e.With("source", strings.TrimSpace(src))
	}
	return e
}

// throw raises err as a JS exception and remembers it for wrapError.
func (s *Sandbox) throw(err error) {
	s.fault = err
	panic(s.vm.NewGoError(err))
}
