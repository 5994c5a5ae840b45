// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import "math"

const (
	// MinTemp and MaxTemp bound the temperature range in °F on which the
	// saturation correlation is used and over which the solvers search.
	MinTemp = 0.0
	MaxTemp = 200.0

	// rankineOffset converts °F to °R.
	rankineOffset = 459.67
)

// Coefficients of the saturation pressure correlation over liquid water,
// ln(psat) = c8/T + c9 + c10·T + c11·T² + c12·T³ + c13·ln(T) with T in °R and
// psat in psia (ASHRAE Handbook Fundamentals 2009, chapter 1, eq. 6).
const (
	c8  = -1.0440397e4
	c9  = -1.129465e1
	c10 = -2.7022355e-2
	c11 = 1.289036e-5
	c12 = -2.4780681e-9
	c13 = 6.5459673
)

// DryAirGasConstant is the gas constant of dry air in ft·lbf/(lb·°R).
const DryAirGasConstant = 53.350

// SaturationConstants are the coefficients of the saturation correlation.
type SaturationConstants struct {
	C8, C9, C10, C11, C12, C13 float64
	DryAirGasConstant          float64
}

// Constants returns a copy of the correlation coefficients.
func Constants() SaturationConstants {
	return SaturationConstants{
		C8: c8, C9: c9, C10: c10, C11: c11, C12: c12, C13: c13,
		DryAirGasConstant: DryAirGasConstant,
	}
}

// satPress is the unchecked correlation.
func satPress(tempF float64) float64 {
	t := tempF + rankineOffset
	return math.Exp(c8/t + c9 + c10*t + c11*t*t + c12*t*t*t + c13*math.Log(t))
}

// satPressSlope is d(ln psat)/dT.
func satPressSlope(tempF float64) float64 {
	t := tempF + rankineOffset
	return -c8/(t*t) + c10 + 2*c11*t + 3*c12*t*t + c13/t
}

// SaturationPressure returns the saturation vapor pressure in psia at the dry
// bulb temperature tempF in °F. The result is strictly increasing in tempF
// over [MinTemp, MaxTemp].
func SaturationPressure(tempF float64) (float64, error) {
	if math.IsNaN(tempF) || math.IsInf(tempF, 0) || tempF <= -rankineOffset {
		return 0, numericDomain("SaturationPressure", "temperature %g °F not above absolute zero", tempF)
	}
	return satPress(tempF), nil
}

// SaturationPressureDerivative returns d(rh·psat)/dT in psia/°F.
func SaturationPressureDerivative(relativeHumidity, tempF float64) (float64, error) {
	if err := checkRelativeHumidity("SaturationPressureDerivative", relativeHumidity); err != nil {
		return 0, err
	}
	p, err := SaturationPressure(tempF)
	if err != nil {
		return 0, err
	}
	return relativeHumidity * p * satPressSlope(tempF), nil
}

func checkRelativeHumidity(op string, rh float64) error {
	if math.IsNaN(rh) || rh < 0 || rh > 1 {
		return invalidInput(op, "relative humidity %g outside [0, 1]", rh)
	}
	return nil
}

func checkTemperature(op string, tempF float64) error {
	if math.IsNaN(tempF) || tempF < MinTemp || tempF > MaxTemp {
		return invalidInput(op, "temperature %g °F outside [%g, %g]", tempF, MinTemp, MaxTemp)
	}
	return nil
}
