// Package cli provides rustc-style terminal output for gencol: colored
// labels, SQL highlighting, diagnostics for *alerr.Error and small lists.
// Colors are only used on an interactive terminal.
package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// OutputMode determines how output is formatted.
type OutputMode int

const (
	// ModeTTY enables colored output for interactive terminals.
	ModeTTY OutputMode = iota
	// ModePlain outputs plain text without colors (for pipes/CI).
	ModePlain
)

// Config holds CLI output configuration.
type Config struct {
	Mode   OutputMode
	Out    io.Writer
	ErrOut io.Writer
}

// DefaultConfig detects the output mode from the environment:
//   - stdout is a TTY and NO_COLOR is unset -> ModeTTY
//   - otherwise, or with TERM=dumb -> ModePlain
func DefaultConfig() *Config {
	mode := ModePlain
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		mode = ModeTTY
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		mode = ModePlain
	}
	return &Config{Mode: mode, Out: os.Stdout, ErrOut: os.Stderr}
}

// IsTTY returns true if running in interactive terminal mode.
func (c *Config) IsTTY() bool {
	return c.Mode == ModeTTY
}

var defaultCfg *Config

// Default returns the global configuration, detecting it on first use.
func Default() *Config {
	if defaultCfg == nil {
		defaultCfg = DefaultConfig()
	}
	return defaultCfg
}

// SetDefault replaces the global configuration. Tests and --no-color use it.
func SetDefault(cfg *Config) {
	defaultCfg = cfg
}

// EnableColors returns true if colors should be used.
func EnableColors() bool {
	return Default().IsTTY()
}
