// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package rootfind provides bounded scalar root finders.
//
// Every driver takes a mandatory iteration cap and always terminates: it
// either returns a Result whose residual is below the tolerance or one of the
// sentinel errors of this package.
package rootfind

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidArgument is returned for a non-positive tolerance or iteration cap.
	ErrInvalidArgument = errors.New("invalid solver argument")
	// ErrInvalidBracket is returned if the interval endpoints do not enclose a sign change.
	ErrInvalidBracket = errors.New("interval does not bracket a root")
	// ErrNoConvergence is returned if the iteration cap is hit before reaching the tolerance.
	ErrNoConvergence = errors.New("no convergence")
	// ErrZeroDerivative is returned if Newton-Raphson hits a vanishing derivative.
	ErrZeroDerivative = errors.New("derivative vanished")
	// ErrNonFinite is returned if the objective or its derivative is NaN or infinite.
	ErrNonFinite = errors.New("non-finite function value")
)

// MinDerivative is the smallest absolute derivative Newton-Raphson divides by.
const MinDerivative = 1e-12

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Result is a converged root.
type Result struct {
	X          float64 // root estimate
	F          float64 // residual at X
	Iterations int
}

func checkArgs(tol float64, maxIter int) error {
	if !(tol > 0) || math.IsInf(tol, 0) {
		return fmt.Errorf("%w: tolerance %g", ErrInvalidArgument, tol)
	}
	if maxIter < 1 {
		return fmt.Errorf("%w: iteration cap %d", ErrInvalidArgument, maxIter)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// bracket is an interval [lo, hi] with the sign of f at lo.
type bracket struct {
	lo, hi     float64
	loNegative bool
}

func (b bracket) mid() float64 {
	return b.lo + (b.hi-b.lo)/2
}

// narrow keeps the half of b that still contains the sign change.
func (b bracket) narrow(x, fx float64) bracket {
	if (fx < 0) == b.loNegative {
		return bracket{lo: x, hi: b.hi, loNegative: b.loNegative}
	}
	return bracket{lo: b.lo, hi: x, loNegative: b.loNegative}
}

// Bisect finds a root of f in [lo, hi]. The endpoints must have residuals of
// opposite sign unless one of them already satisfies the tolerance. It returns
// as soon as |f(mid)| < tol.
func Bisect(f Func, lo, hi, tol float64, maxIter int) (Result, error) {
	if err := checkArgs(tol, maxIter); err != nil {
		return Result{}, err
	}
	if !(lo < hi) {
		return Result{}, fmt.Errorf("%w: [%g, %g] is empty", ErrInvalidBracket, lo, hi)
	}

	flo, fhi := f(lo), f(hi)
	if !finite(flo) || !finite(fhi) {
		return Result{}, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrNonFinite, lo, flo, hi, fhi)
	}
	if math.Abs(flo) < tol {
		return Result{X: lo, F: flo}, nil
	}
	if math.Abs(fhi) < tol {
		return Result{X: hi, F: fhi}, nil
	}
	if (flo < 0) == (fhi < 0) {
		return Result{}, fmt.Errorf("%w: f(%g)=%g, f(%g)=%g", ErrInvalidBracket, lo, flo, hi, fhi)
	}

	b := bracket{lo: lo, hi: hi, loNegative: flo < 0}
	for i := 1; i <= maxIter; i++ {
		x := b.mid()
		fx := f(x)
		if !finite(fx) {
			return Result{}, fmt.Errorf("%w: f(%g)=%g", ErrNonFinite, x, fx)
		}
		if math.Abs(fx) < tol {
			return Result{X: x, F: fx, Iterations: i}, nil
		}
		b = b.narrow(x, fx)
	}
	return Result{}, fmt.Errorf("%w: bisection on [%g, %g] after %d iterations", ErrNoConvergence, lo, hi, maxIter)
}

// NewtonRaphson finds a root of f starting at x0 using the derivative df.
func NewtonRaphson(f, df Func, x0, tol float64, maxIter int) (Result, error) {
	return newton(f, df, x0, math.Inf(-1), math.Inf(1), tol, maxIter)
}

// BoundedNewtonRaphson is NewtonRaphson restricted to [lo, hi]. A step that
// would leave the interval is replaced by the midpoint between the current
// iterate and the violated bound.
func BoundedNewtonRaphson(f, df Func, x0, lo, hi, tol float64, maxIter int) (Result, error) {
	if !(lo < hi) {
		return Result{}, fmt.Errorf("%w: [%g, %g] is empty", ErrInvalidBracket, lo, hi)
	}
	return newton(f, df, math.Min(math.Max(x0, lo), hi), lo, hi, tol, maxIter)
}

func newton(f, df Func, x, lo, hi, tol float64, maxIter int) (Result, error) {
	if err := checkArgs(tol, maxIter); err != nil {
		return Result{}, err
	}

	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if !finite(fx) {
			return Result{}, fmt.Errorf("%w: f(%g)=%g", ErrNonFinite, x, fx)
		}
		if math.Abs(fx) < tol {
			return Result{X: x, F: fx, Iterations: i}, nil
		}
		d := df(x)
		if !finite(d) {
			return Result{}, fmt.Errorf("%w: f'(%g)=%g", ErrNonFinite, x, d)
		}
		if math.Abs(d) < MinDerivative {
			return Result{}, fmt.Errorf("%w: f'(%g)=%g", ErrZeroDerivative, x, d)
		}
		next := x - fx/d
		switch {
		case next < lo:
			next = (x + lo) / 2
		case next > hi:
			next = (x + hi) / 2
		}
		x = next
	}

	if fx := f(x); finite(fx) && math.Abs(fx) < tol {
		return Result{X: x, F: fx, Iterations: maxIter}, nil
	}
	return Result{}, fmt.Errorf("%w: Newton-Raphson after %d iterations (x=%g)", ErrNoConvergence, maxIter, x)
}
