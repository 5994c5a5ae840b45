// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"errors"
	"fmt"

	"github.com/bdrung/psychrometrics/rootfind"
)

// ErrorKind categorizes engine failures.
type ErrorKind int

const (
	// InvalidInput indicates a parameter outside its physically valid domain.
	InvalidInput ErrorKind = iota + 1

	// NumericDomain indicates an intermediate computation would be undefined,
	// e.g. vapor pressure at or above total pressure or a vanishing derivative.
	NumericDomain

	// ConvergenceFailure indicates a solver hit its iteration cap or was
	// given an interval that does not bracket a root.
	ConvergenceFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NumericDomain:
		return "numeric_domain"
	case ConvergenceFailure:
		return "convergence_failure"
	default:
		return "unknown"
	}
}

// Error is returned by every failing operation of this package.
type Error struct {
	// Op is the name of the failing operation.
	Op string

	Kind ErrorKind

	// Msg is a human-readable description.
	Msg string

	// Err is the underlying solver error, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("psychro: %s: %s: %s: %v", e.Op, e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("psychro: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of err, or 0 if err is not an *Error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

// IsInvalidInput returns true if err is an InvalidInput error.
func IsInvalidInput(err error) bool {
	return KindOf(err) == InvalidInput
}

// IsNumericDomain returns true if err is a NumericDomain error.
func IsNumericDomain(err error) bool {
	return KindOf(err) == NumericDomain
}

// IsConvergenceFailure returns true if err is a ConvergenceFailure error.
func IsConvergenceFailure(err error) bool {
	return KindOf(err) == ConvergenceFailure
}

func invalidInput(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: InvalidInput, Msg: fmt.Sprintf(format, args...)}
}

func numericDomain(op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: NumericDomain, Msg: fmt.Sprintf(format, args...)}
}

// solverError classifies an error returned by the rootfind package.
func solverError(op string, err error) *Error {
	e := &Error{Op: op, Msg: "solver failed", Err: err}
	switch {
	case errors.Is(err, rootfind.ErrInvalidArgument):
		e.Kind = InvalidInput
	case errors.Is(err, rootfind.ErrZeroDerivative), errors.Is(err, rootfind.ErrNonFinite):
		e.Kind = NumericDomain
	default:
		e.Kind = ConvergenceFailure
	}
	return e
}
