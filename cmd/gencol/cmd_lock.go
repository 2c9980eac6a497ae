package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/hlop3z/gencol/internal/cli"
)

// lockCmd writes the lock file of a schema script.
func lockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [schema.js]",
		Short: "Write the lock file for a schema script",
		Long: `Render a schema script and record a checksum for every statement, plus
the merkle root over all of them, in the lock file (default: gencol.lock).

Commit the lock file. 'gencol verify' and 'gencol apply' refuse to continue
when the rendered DDL no longer matches it.`,
		Example: `  # Lock schema.js for PostgreSQL
  gencol lock --dialect postgres`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			db, err := newMock(cfg)
			if err != nil {
				return err
			}
			if err := db.Lock(cfg.schemaPath(args), cfg.LockFile); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.Success("Lock file written: ")+cli.FilePath(cfg.LockFile))
			return nil
		},
	}
	return cmd
}

// verifyIfLocked verifies path against the lock file when one exists.
func verifyIfLocked(cfg *Config, path string) error {
	if _, err := os.Stat(cfg.LockFile); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	db, err := newMock(cfg)
	if err != nil {
		return err
	}
	return db.Verify(path, cfg.LockFile)
}
