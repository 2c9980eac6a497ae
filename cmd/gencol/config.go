package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hlop3z/gencol/pkg/gencol"
)

const (
	defaultConfigFile = "gencol.yaml"
	defaultSchemaFile = "schema.js"
)

// Config represents the gencol.yaml configuration file.
type Config struct {
	DatabaseURL      string `yaml:"database_url"`
	Dialect          string `yaml:"dialect"`
	Driver           string `yaml:"driver"`
	QuoteIdentifiers *bool  `yaml:"quote_identifiers"`
	Schema           string `yaml:"schema"`
	LockFile         string `yaml:"lock_file"`
	Timeout          string `yaml:"timeout"`
	ScriptTimeout    string `yaml:"script_timeout"`
}

// loadConfig loads configuration from file, env vars, and CLI flags.
// Precedence: CLI flags > env vars > config file > defaults
func loadConfig(cmd *cobra.Command) (*Config, error) {
	cfg := &Config{
		Schema:   defaultSchemaFile,
		LockFile: gencol.DefaultLockFile,
	}

	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
		cfg.DatabaseURL = expandEnvVars(cfg.DatabaseURL)
	case errors.Is(err, fs.ErrNotExist) && !cmd.Flags().Changed("config"):
		// No config file is fine unless one was asked for.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if env := os.Getenv("DATABASE_URL"); env != "" {
		cfg.DatabaseURL = env
	}
	if env := os.Getenv("GENCOL_DIALECT"); env != "" {
		cfg.Dialect = env
	}

	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if dialectName != "" {
		cfg.Dialect = dialectName
	}
	if cmd.Flags().Changed("quote-identifiers") {
		q := quoteIdentifiers
		cfg.QuoteIdentifiers = &q
	}

	return cfg, nil
}

// expandEnvVars expands ${VAR} patterns in a string.
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

// schemaPath returns the script named on the command line, or the configured one.
func (c *Config) schemaPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return c.Schema
}

// renderDialect is the dialect used when no connection is made: the
// configured one, the one implied by database_url, or generic.
func (c *Config) renderDialect() string {
	if c.Dialect != "" {
		return c.Dialect
	}
	if c.DatabaseURL != "" {
		return gencol.DetectDialect(c.DatabaseURL)
	}
	return "generic"
}

func (c *Config) options() ([]gencol.Option, error) {
	var opts []gencol.Option
	if c.Driver != "" {
		opts = append(opts, gencol.WithDriver(c.Driver))
	}
	if c.QuoteIdentifiers != nil {
		opts = append(opts, gencol.WithQuoteIdentifiers(*c.QuoteIdentifiers))
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		opts = append(opts, gencol.WithTimeout(d))
	}
	if c.ScriptTimeout != "" {
		d, err := time.ParseDuration(c.ScriptTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid script_timeout %q: %w", c.ScriptTimeout, err)
		}
		opts = append(opts, gencol.WithScriptTimeout(d))
	}
	return opts, nil
}

// newMock creates a DB that renders without connecting.
func newMock(cfg *Config) (*gencol.DB, error) {
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	return gencol.NewMock(cfg.renderDialect(), opts...)
}

// newDB connects to the configured database.
func newDB(cfg *Config) (*gencol.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, errMissingDatabaseURL()
	}
	opts, err := cfg.options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, gencol.WithDatabaseURL(cfg.DatabaseURL))
	if cfg.Dialect != "" {
		opts = append(opts, gencol.WithDialect(cfg.Dialect))
	}
	return gencol.Open(opts...)
}
