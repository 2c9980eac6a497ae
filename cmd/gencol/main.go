// Package main provides the gencol CLI. gencol evaluates JavaScript schema
// scripts and renders generated-column DDL for a SQL dialect.
//
// Usage:
//
//	gencol render [schema.js] [--watch]   # Print the planned DDL
//	gencol apply [schema.js]              # Execute the DDL against database_url
//	gencol lock [schema.js]               # Write gencol.lock
//	gencol verify [schema.js]             # Compare rendered DDL with gencol.lock
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hlop3z/gencol/internal/cli"
	"github.com/hlop3z/gencol/internal/dialect"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

// Global flags
var (
	databaseURL      string
	configFile       string
	dialectName      string
	quoteIdentifiers bool
	verbose          int
	noColor          bool
)

// newRootCmd builds the command tree. Flag variables are reset on every call.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gencol",
		Short:         "Generated-column DDL renderer",
		Long:          `gencol renders CREATE TABLE and ALTER TABLE statements with generated columns from JavaScript schema scripts, for generic SQL, MySQL, PostgreSQL and SQLite.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if noColor {
				cli.SetDefault(&cli.Config{Mode: cli.ModePlain, Out: os.Stdout, ErrOut: os.Stderr})
			}
			setupLogging(cmd.ErrOrStderr(), verbose)
			return nil
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		renderCmd(),
		applyCmd(),
		lockCmd(),
		verifyCmd(),
	)
	return rootCmd
}

// addGlobalFlags registers the flags available to all commands.
func addGlobalFlags(pf *pflag.FlagSet) {
	pf.StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL")
	pf.StringVarP(&configFile, "config", "c", defaultConfigFile, "Path to config file")
	pf.StringVar(&dialectName, "dialect", "", "SQL dialect ("+strings.Join(dialect.Names(), ", ")+")")
	pf.BoolVar(&quoteIdentifiers, "quote-identifiers", false, "Quote table and column names")
	pf.CountVarP(&verbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	pf.BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprint(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
