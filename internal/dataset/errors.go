// Copyright 2026 The Admisi Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"errors"
	"fmt"
)

// LoadError reports that the workbook could not be read at all: the file is
// missing, unreadable, or contains no sheets.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports an expected column that is absent, either from a
// sheet header or from a computation request.
type SchemaError struct {
	// Column is the missing or unknown column name.
	Column string

	// Sheet is set when the error came from a specific worksheet.
	Sheet string

	// Message is an optional detail.
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "column not found"
	}
	if e.Sheet != "" {
		return fmt.Sprintf("schema: sheet %q: %s: %q", e.Sheet, msg, e.Column)
	}
	return fmt.Sprintf("schema: %s: %q", msg, e.Column)
}

// ConfigError reports a caller configuration mistake, such as an unknown
// filter dimension. It is raised at setup, before any row is evaluated.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Message
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// IsLoadError reports whether err wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

// IsConfigError reports whether err wraps a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
