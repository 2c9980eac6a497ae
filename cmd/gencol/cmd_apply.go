package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hlop3z/gencol/internal/cli"
)

// applyCmd executes a schema script against the database.
func applyCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "apply [schema.js]",
		Short: "Execute the DDL of a schema script",
		Long: `Evaluate a schema script and execute its statements against database_url.

Dialects with transactional DDL (PostgreSQL, SQLite) run all statements in
one transaction. MySQL stops at the first failing statement.`,
		Example: `  # Apply schema.js to a local SQLite file
  gencol apply -d sqlite://app.db

  # Show what would run without connecting
  gencol apply --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := cfg.schemaPath(args)
			out := cmd.OutOrStdout()

			if dryRun {
				db, err := newMock(cfg)
				if err != nil {
					return err
				}
				return renderOnce(out, db, path)
			}

			if cfg.LockFile != "" {
				if err := verifyIfLocked(cfg, path); err != nil {
					return err
				}
			}

			db, err := newDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.RunScript(cmd.Context(), path); err != nil {
				return err
			}

			sqls := db.SQLs()
			list := cli.NewList()
			for _, s := range sqls {
				list.AddSuccess(cli.HighlightSQL(s))
			}
			fmt.Fprint(out, list.String())
			fmt.Fprintln(out, cli.Success(fmt.Sprintf("Applied %s to %s",
				cli.FormatCount(len(sqls), "statement", "statements"), db.Dialect())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the statements instead of executing them")
	return cmd
}
