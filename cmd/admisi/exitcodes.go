package main

import (
	"fmt"

	"github.com/admisi-dashboard/admisi/internal/dataset"
)

// Exit codes for the admisi CLI.
const (
	ExitOK            = 0 // Report produced.
	ExitInvalidArgs   = 1 // Invalid arguments, flags, or configuration.
	ExitLoadFailure   = 2 // Workbook missing, unreadable, or lacking columns.
	ExitRenderFailure = 3 // Data loaded but no output was produced.
)

// exitCodeError carries a non-zero exit code through cobra's error handling.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// ExitCode returns the exit code for this error.
func (e *exitCodeError) ExitCode() int { return e.code }

// exitError creates an exitCodeError. If msg is empty, the error message is
// set to a generic description of the exit code.
func exitError(code int, format string, args ...any) *exitCodeError {
	msg := fmt.Sprintf(format, args...)
	if msg == "" {
		switch code {
		case ExitInvalidArgs:
			msg = "admisi: invalid arguments"
		case ExitLoadFailure:
			msg = "admisi: could not load the data file"
		case ExitRenderFailure:
			msg = "admisi: no output produced"
		default:
			msg = fmt.Sprintf("admisi: exit code %d", code)
		}
	}
	return &exitCodeError{code: code, msg: msg}
}

// exitCodeFor picks the exit code for a pipeline error by its type.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case dataset.IsConfigError(err):
		return ExitInvalidArgs
	case dataset.IsLoadError(err), dataset.IsSchemaError(err):
		return ExitLoadFailure
	default:
		return ExitRenderFailure
	}
}

// wrapErr converts a pipeline error into an exitCodeError with an
// "admisi: " prefix.
func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return exitError(exitCodeFor(err), "admisi: %v", err)
}
