// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"fmt"
	"math"
)

const (
	// StandardPressure is the sea-level standard atmospheric pressure in psia.
	StandardPressure = 14.696

	// CriticalPressure of water in psia. Total pressures at or above it are
	// outside the range of the saturation correlation.
	CriticalPressure = 3200.11

	minAltitude = -16500.0 // ft
	maxAltitude = 36000.0  // ft
)

// StandardAtmosphere returns the sea-level atmosphere.
func StandardAtmosphere() Atmosphere {
	return Atmosphere{pressure: StandardPressure}
}

// Atmosphere is the total pressure context of a calculation. The zero value
// is invalid and every method on it fails with InvalidInput.
type Atmosphere struct {
	pressure float64 // psia
}

// NewAtmosphere returns an atmosphere with the given total pressure in psia.
func NewAtmosphere(pressure float64) (Atmosphere, error) {
	if err := checkPressure("NewAtmosphere", pressure); err != nil {
		return Atmosphere{}, err
	}
	return Atmosphere{pressure: pressure}, nil
}

// AtmosphereAtAltitude returns the standard atmosphere at the given altitude
// in feet above sea level (ASHRAE Handbook Fundamentals, chapter 1, eq. 3).
func AtmosphereAtAltitude(feet float64) (Atmosphere, error) {
	if math.IsNaN(feet) || feet < minAltitude || feet > maxAltitude {
		return Atmosphere{}, invalidInput("AtmosphereAtAltitude",
			"altitude %g ft outside [%g, %g]", feet, minAltitude, maxAltitude)
	}
	return NewAtmosphere(StandardPressure * math.Pow(1-6.8754e-6*feet, 5.2559))
}

// Pressure returns the total pressure in psia.
func (a Atmosphere) Pressure() float64 {
	return a.pressure
}

func (a Atmosphere) String() string {
	return fmt.Sprintf("%.4f psia", a.pressure)
}

func (a Atmosphere) check(op string) error {
	return checkPressure(op, a.pressure)
}

func checkPressure(op string, p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) || p <= 0 {
		return invalidInput(op, "total pressure %g psia must be positive", p)
	}
	if p >= CriticalPressure {
		return invalidInput(op, "total pressure %g psia not below critical pressure %g psia", p, CriticalPressure)
	}
	return nil
}
