// Package config turns the CLI's persistent flags into the small set of
// values the rest of the program needs: logging verbosity today, with
// room for more without every command learning cobra's flag API directly.
package config

import (
	"log/slog"
	"os"
)

// Config holds resolved CLI-wide settings.
type Config struct {
	Verbose bool
}

// Logger builds the *slog.Logger the rest of the interpreter is threaded
// with, writing to stderr so script output on stdout stays clean.
func (c *Config) Logger() *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
