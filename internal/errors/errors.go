// Package errors provides standardized error handling for wiper.
// It defines the error kinds used across the application and helpers for
// consistent creation, wrapping and classification of errors.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard errors package errors that we re-export for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Common error constants for frequently occurring errors
var (
	ErrFileNotFound     = NewFileError("file not found", "", FileNotFound, nil)
	ErrFileAccess       = NewFileError("file access denied", "", FileAccessDenied, nil)
	ErrInvalidConfig    = NewConfigError("invalid configuration", "", InvalidConfig, nil)
	ErrTerminalTooSmall = NewTerminalError("terminal too small", TerminalTooSmall, nil)
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// File error kinds
	FileNotFound
	FileAccessDenied
	InvalidPath
	FileOperationFailed
	// Config error kinds
	InvalidConfig
	ConfigNotFound
	InvalidPattern
	KeyConflict
	// Environment error kinds
	TerminalTooSmall
	TerminalFailure
	// Operational error kinds
	DeleteFailed
)

// ApplicationError is the base error type for all application errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// FileError represents errors related to file operations
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind ErrorKind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// ConfigError represents errors related to configuration
type ConfigError struct {
	ApplicationError
	param string
}

// NewConfigError creates a new configuration error
func NewConfigError(msg string, param string, kind ErrorKind, err error) *ConfigError {
	return &ConfigError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		param: param,
	}
}

// Error returns the config error message
func (e *ConfigError) Error() string {
	if e.param != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.param, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.param)
	}
	return e.ApplicationError.Error()
}

// Param returns the configuration parameter associated with the error
func (e *ConfigError) Param() string {
	return e.param
}

// Conflict is a single chord claimed by more than one command.
type Conflict struct {
	Chord    string
	Commands []string
}

// String renders the conflict as one report line.
func (c Conflict) String() string {
	return fmt.Sprintf("conflict key %s with commands %s", c.Chord, strings.Join(c.Commands, ", "))
}

// KeyConflictError is returned when a keymap binds one chord to several commands.
type KeyConflictError struct {
	ApplicationError
	conflicts []Conflict
}

// NewKeyConflictError creates a key conflict error from the given conflicts.
func NewKeyConflictError(conflicts []Conflict) *KeyConflictError {
	return &KeyConflictError{
		ApplicationError: ApplicationError{
			msg:  "conflicting key bindings",
			kind: KeyConflict,
		},
		conflicts: conflicts,
	}
}

// Error returns every conflict on its own line after the summary.
func (e *KeyConflictError) Error() string {
	return e.msg + ":\n  " + strings.Join(e.Lines(), "\n  ")
}

// Conflicts returns the conflicting chords.
func (e *KeyConflictError) Conflicts() []Conflict {
	return e.conflicts
}

// Lines returns one report line per conflicting chord.
func (e *KeyConflictError) Lines() []string {
	lines := make([]string, 0, len(e.conflicts))
	for _, c := range e.conflicts {
		lines = append(lines, c.String())
	}
	return lines
}

// DeleteError aggregates the failures of a batch deletion.
type DeleteError struct {
	ApplicationError
	failures []*FileError
}

// NewDeleteError creates a delete error from per-path failures.
func NewDeleteError(failures []*FileError) *DeleteError {
	return &DeleteError{
		ApplicationError: ApplicationError{
			msg:  fmt.Sprintf("%d deletion(s) failed", len(failures)),
			kind: DeleteFailed,
		},
		failures: failures,
	}
}

// Error returns the summary followed by at most three failures.
func (e *DeleteError) Error() string {
	shown := e.failures
	if len(shown) > 3 {
		shown = shown[:3]
	}
	parts := make([]string, 0, len(shown))
	for _, f := range shown {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s", e.msg, strings.Join(parts, "; "))
}

// Failures returns the individual failures.
func (e *DeleteError) Failures() []*FileError {
	return e.failures
}

// NewTerminalError creates an environment error about the terminal.
func NewTerminalError(msg string, kind ErrorKind, err error) *ApplicationError {
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: kind,
	}
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the first known kind found in err's chain.
func KindOf(err error) ErrorKind {
	type kinded interface{ Kind() ErrorKind }
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() != Unknown {
			return k.Kind()
		}
		err = errors.Unwrap(err)
	}
	return Unknown
}

// IsFileNotFound checks if the error is a file not found error
func IsFileNotFound(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileNotFound
	}
	return false
}

// IsFileAccessDenied checks if the error is a file access denied error
func IsFileAccessDenied(err error) bool {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind() == FileAccessDenied
	}
	return false
}

// IsInvalidConfig checks if the error is an invalid configuration error
func IsInvalidConfig(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidConfig
	}
	return false
}

// IsInvalidPattern checks if the error comes from a filter that failed to compile
func IsInvalidPattern(err error) bool {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr.Kind() == InvalidPattern
	}
	return false
}

// IsKeyConflict checks if the error is a key binding conflict
func IsKeyConflict(err error) bool {
	var conflictErr *KeyConflictError
	return errors.As(err, &conflictErr)
}

// IsTerminalTooSmall checks if the error reports an undersized terminal
func IsTerminalTooSmall(err error) bool {
	return KindOf(err) == TerminalTooSmall
}

// IsConfiguration reports whether err is fatal configuration trouble.
func IsConfiguration(err error) bool {
	switch KindOf(err) {
	case InvalidConfig, ConfigNotFound, InvalidPattern, KeyConflict:
		return true
	}
	return false
}
