package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/gencol/internal/alerr"
	"github.com/hlop3z/gencol/internal/cli"
)

// verifyCmd compares a schema script with its lock file.
func verifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [schema.js]",
		Short: "Compare rendered DDL with the lock file",
		Long: `Render a schema script and compare every statement with the checksums
recorded in the lock file. Exits non-zero on any difference.`,
		Example: `  # Verify in CI
  gencol verify --no-color`,
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

			result, err := db.VerifyDetailed(cfg.schemaPath(args), cfg.LockFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !result.LockFileExists {
				return alerr.New(alerr.ErrLockMismatch, "lock file not found").
					WithFile(cfg.LockFile, 0).
					WithHelp("run 'gencol lock' to create it")
			}

			list := cli.NewList()
			for _, name := range result.Verified {
				list.AddSuccess(name)
			}
			for _, name := range result.Modified {
				list.AddError(name + " (modified)")
			}
			for _, name := range result.Added {
				list.AddWarning(name + " (not locked)")
			}
			for _, name := range result.Removed {
				list.AddWarning(name + " (removed)")
			}
			fmt.Fprint(out, list.String())

			if !result.Valid {
				return alerr.Newf(alerr.ErrLockMismatch, "rendered DDL does not match %s", cfg.LockFile).
					With("modified", len(result.Modified)).
					With("added", len(result.Added)).
					With("removed", len(result.Removed)).
					WithHelp("run 'gencol lock' if the change is intended")
			}

			fmt.Fprintln(out, cli.Success("Lock file verified"))
			return nil
		},
	}
	return cmd
}
