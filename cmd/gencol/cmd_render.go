package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hlop3z/gencol/internal/cli"
	"github.com/hlop3z/gencol/pkg/gencol"
)

// renderCmd prints the DDL of a schema script.
func renderCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "render [schema.js]",
		Short: "Print the DDL of a schema script",
		Long: `Evaluate a schema script and print the statements it renders, one per line.

No database connection is made. The dialect comes from --dialect, the
dialect setting, or the scheme of database_url, and defaults to generic.`,
		Example: `  # Render schema.js with the generic dialect
  gencol render

  # Render for PostgreSQL and re-render on every save
  gencol render schema.js --dialect postgres --watch`,
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
			path := cfg.schemaPath(args)

			if !watch {
				return renderOnce(cmd.OutOrStdout(), db, path)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return renderWatch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), db, path)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render when the script changes")
	return cmd
}

func renderOnce(w io.Writer, db *gencol.DB, path string) error {
	sqls, err := db.RenderScript(path)
	if err != nil {
		return err
	}
	return cli.WriteStatements(w, sqls)
}

// renderWatch renders path now and after every change until ctx is done.
// Script errors are printed and do not stop watching.
func renderWatch(ctx context.Context, out, errOut io.Writer, db *gencol.DB, path string) error {
	render := func() {
		fmt.Fprintln(out, cli.Dim(fmt.Sprintf("-- %s (%s)", path, time.Now().Format(time.TimeOnly))))
		if err := renderOnce(out, db, path); err != nil {
			fmt.Fprint(errOut, cli.FormatError(err))
		}
	}
	render()
	return watchFile(ctx, path, render)
}

// watchFile calls fn each time the file at path is written or replaced.
// The parent directory is watched since editors often save by rename.
func watchFile(ctx context.Context, path string, fn func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	slog.Info("watching", "path", abs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				fn()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}
