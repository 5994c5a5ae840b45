// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bdrung/psychrometrics/rootfind"
)

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "invalid_input", InvalidInput.String())
	assert.Equal(t, "numeric_domain", NumericDomain.String())
	assert.Equal(t, "convergence_failure", ConvergenceFailure.String())
	assert.Equal(t, "unknown", ErrorKind(0).String())
}

func TestErrorMessage(t *testing.T) {
	err := invalidInput("DewPoint", "relative humidity %g outside (0, 1]", 1.5)
	assert.EqualError(t, err, "psychro: DewPoint: invalid_input: relative humidity 1.5 outside (0, 1]")

	err = solverError("WetBulbTemperature", rootfind.ErrNoConvergence)
	assert.EqualError(t, err, "psychro: WetBulbTemperature: convergence_failure: solver failed: no convergence")
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("sensor 1: %w", numericDomain("HumidityRatioFromVaporPressure", "boom"))
	assert.Equal(t, NumericDomain, KindOf(err))
	assert.True(t, IsNumericDomain(err))
	assert.False(t, IsInvalidInput(err))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("other")))
	assert.Equal(t, ErrorKind(0), KindOf(nil))
}

func TestSolverErrorKinds(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{rootfind.ErrInvalidArgument, InvalidInput},
		{rootfind.ErrZeroDerivative, NumericDomain},
		{rootfind.ErrNonFinite, NumericDomain},
		{rootfind.ErrNoConvergence, ConvergenceFailure},
		{rootfind.ErrInvalidBracket, ConvergenceFailure},
	}

	for _, test := range tests {
		err := solverError("op", fmt.Errorf("%w: detail", test.err))
		assert.Equal(t, test.want, err.Kind, "%v", test.err)
		assert.ErrorIs(t, err, test.err)
	}
}
