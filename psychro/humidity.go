// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import "math"

const (
	// molarMassRatio is the ratio of the molar masses of water vapor and dry air.
	molarMassRatio = 0.621945

	// DryHumidityRatio is the humidity ratio below which air counts as dry
	// and its vapor pressure is exactly zero.
	DryHumidityRatio = 1e-6
)

// HumidityRatioFromVaporPressure returns the humidity ratio in lb/lb for the
// vapor pressure pv in psia.
func (a Atmosphere) HumidityRatioFromVaporPressure(pv float64) (float64, error) {
	const op = "HumidityRatioFromVaporPressure"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if math.IsNaN(pv) || pv < 0 {
		return 0, invalidInput(op, "vapor pressure %g psia is negative", pv)
	}
	if pv >= a.pressure {
		return 0, numericDomain(op, "vapor pressure %g psia not below total pressure %g psia", pv, a.pressure)
	}
	return a.humidityRatio(pv), nil
}

// VaporPressureFromHumidityRatio returns the vapor pressure in psia for the
// humidity ratio w in lb/lb.
func (a Atmosphere) VaporPressureFromHumidityRatio(w float64) (float64, error) {
	const op = "VaporPressureFromHumidityRatio"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkHumidityRatio(op, w); err != nil {
		return 0, err
	}
	return a.vaporPressure(w), nil
}

// VaporPressureFromTempRh returns the vapor pressure in psia at dry bulb
// temperature tempF (°F) and relative humidity rh (0 to 1).
func VaporPressureFromTempRh(tempF, rh float64) (float64, error) {
	const op = "VaporPressureFromTempRh"
	if err := checkRelativeHumidity(op, rh); err != nil {
		return 0, err
	}
	p, err := SaturationPressure(tempF)
	if err != nil {
		return 0, err
	}
	return rh * p, nil
}

// SaturationHumidityRatio returns the humidity ratio of saturated air at tempF.
func (a Atmosphere) SaturationHumidityRatio(tempF float64) (float64, error) {
	p, err := SaturationPressure(tempF)
	if err != nil {
		return 0, err
	}
	return a.HumidityRatioFromVaporPressure(p)
}

// RelativeHumidity returns the relative humidity (0 to 1) of air with vapor
// pressure pv at dry bulb temperature tempF. Supersaturated input fails with
// InvalidInput.
func RelativeHumidity(tempF, pv float64) (float64, error) {
	const op = "RelativeHumidity"
	if math.IsNaN(pv) || pv < 0 {
		return 0, invalidInput(op, "vapor pressure %g psia is negative", pv)
	}
	p, err := SaturationPressure(tempF)
	if err != nil {
		return 0, err
	}
	rh := pv / p
	if rh > 1+1e-12 {
		return 0, invalidInput(op, "vapor pressure %g psia exceeds saturation pressure %g psia at %g °F", pv, p, tempF)
	}
	return math.Min(rh, 1), nil
}

func (a Atmosphere) humidityRatio(pv float64) float64 {
	return molarMassRatio * pv / (a.pressure - pv)
}

func (a Atmosphere) vaporPressure(w float64) float64 {
	if w < DryHumidityRatio {
		return 0
	}
	return a.pressure / (1 + molarMassRatio/w)
}

func (a Atmosphere) saturationHumidityRatio(tempF float64) float64 {
	return a.humidityRatio(satPress(tempF))
}

func checkHumidityRatio(op string, w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return invalidInput(op, "humidity ratio %g must be a non-negative number", w)
	}
	return nil
}
