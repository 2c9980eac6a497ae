package main

import (
	"io"
	"log/slog"

	"github.com/hlop3z/gencol/internal/alerr"
)

// errMissingDatabaseURL is returned by commands that need a connection.
func errMissingDatabaseURL() error {
	return alerr.New(alerr.ErrSQLConnection, "no database URL configured").
		WithHelp("pass --database-url, set DATABASE_URL, or add database_url to " + defaultConfigFile).
		WithHelp("use 'gencol render' to print the DDL without a database")
}

// setupLogging installs a text slog handler on w. Warnings are always shown;
// -v adds info and -vv debug.
func setupLogging(w io.Writer, verbosity int) {
	level := slog.LevelWarn
	switch {
	case verbosity >= 2:
		level = slog.LevelDebug
	case verbosity == 1:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
