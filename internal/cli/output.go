// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bdrung/psychrometrics/isoline"
	"github.com/bdrung/psychrometrics/psychro"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution
	ExitFailure = 1 // No solution (numeric domain, convergence failure)
	ExitUsage   = 2 // Invalid flags, arguments or input values
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error // optional
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Invalid input to the
// engine or the chart is a usage error, every other failure ExitFailure.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if psychro.IsInvalidInput(err) || errors.Is(err, isoline.ErrInvalidChart) || errors.Is(err, isoline.ErrOutOfRange) {
		return ExitUsage
	}
	return ExitFailure
}

// OutputFormatter writes command results in the configured format.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// Write encodes v as JSON or YAML, or calls text for the text format.
func (f *OutputFormatter) Write(v any, text func(w io.Writer) error) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(f.Writer)
	}
}

// row is one "name value unit" line of the text format.
type row struct {
	name, value, unit string
}

func writeRows(w io.Writer, rows []row) error {
	for _, r := range rows {
		line := fmt.Sprintf("%-18s %s", r.name, r.value)
		if r.unit != "" {
			line += " " + r.unit
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writePoints(w io.Writer, points []psychro.Point) error {
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%.4f %.6f\n", p.TempF, p.VaporPressure); err != nil {
			return err
		}
	}
	return nil
}
