// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

// SolverSpec configures one run of an iterative solver.
type SolverSpec struct {
	// Tolerance on the absolute residual of the solved equation.
	Tolerance float64

	// MaxIterations caps the number of solver steps.
	MaxIterations int

	// Low and High are the temperature interval in °F: the bracket for
	// bisection, the bounds for Newton-Raphson.
	Low, High float64
}

// SolverOption overrides a field of the default SolverSpec of an operation.
type SolverOption func(*SolverSpec)

// WithTolerance overrides the convergence tolerance.
func WithTolerance(tol float64) SolverOption {
	return func(s *SolverSpec) { s.Tolerance = tol }
}

// WithMaxIterations overrides the iteration cap.
func WithMaxIterations(n int) SolverOption {
	return func(s *SolverSpec) { s.MaxIterations = n }
}

// WithBracket overrides the temperature interval.
func WithBracket(low, high float64) SolverOption {
	return func(s *SolverSpec) { s.Low, s.High = low, high }
}

func (s SolverSpec) with(opts []SolverOption) SolverSpec {
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Defaults of the iterative operations.
var (
	dewPointSpec           = SolverSpec{Tolerance: 1e-8, MaxIterations: 100, Low: MinTemp, High: MaxTemp}
	dewPointBracketSpec    = SolverSpec{Tolerance: 1e-8, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	wetBulbSpec            = SolverSpec{Tolerance: 1e-8, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	volumeSpec             = SolverSpec{Tolerance: 1e-9, MaxIterations: 100, Low: MinTemp, High: MaxTemp}
	saturationEnthalpySpec = SolverSpec{Tolerance: 5e-9, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	saturationVolumeSpec   = SolverSpec{Tolerance: 1e-8, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	rhEnthalpySpec         = SolverSpec{Tolerance: 1e-8, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	wetBulbLineSpec        = SolverSpec{Tolerance: 1e-10, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	enthalpyVolumeSpec     = SolverSpec{Tolerance: 1e-10, MaxIterations: 500, Low: MinTemp, High: MaxTemp}
	enthalpyBoundarySpec   = SolverSpec{Tolerance: 5e-7, MaxIterations: 100}
)

// dewPointSeed is the Newton-Raphson start temperature in °F.
const dewPointSeed = 80.0
