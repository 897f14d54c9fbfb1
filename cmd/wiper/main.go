package main

import (
	"fmt"
	"os"
	"strings"

	"wiper/internal/errors"
)

var (
	version = "dev"
)

// Entry point for the application
func main() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(describe(err)))
		os.Exit(1)
	}
}

// describe renders err for the terminal, prefixed by what went wrong:
// configuration, the terminal environment, or the filesystem.
func describe(err error) string {
	switch {
	case errors.IsKeyConflict(err):
		var conflict *errors.KeyConflictError
		errors.As(err, &conflict)
		return "configuration error: conflicting key bindings\n  " + strings.Join(conflict.Lines(), "\n  ")
	case errors.IsInvalidPattern(err):
		return "configuration error: " + err.Error() + " (check --filter and --mode)"
	case errors.IsInvalidConfig(err):
		return "configuration error: " + err.Error() + " (check the config file)"
	case errors.IsConfiguration(err):
		return "configuration error: " + err.Error()
	case errors.IsTerminalTooSmall(err), errors.KindOf(err) == errors.TerminalFailure:
		return "terminal error: " + err.Error()
	case errors.IsFileNotFound(err), errors.IsFileAccessDenied(err):
		return "file error: " + err.Error()
	}
	return "error: " + err.Error()
}
