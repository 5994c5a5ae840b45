// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import "github.com/bdrung/psychrometrics/psychro"

const (
	pascalPerPsi = 6894.757293168 // 1 psi in Pa

	// gramsPerCubicMeter converts a density in lb/ft³ to g/m³.
	gramsPerCubicMeter = 16018.46337
)

func celsiusToFahrenheit(celsius float64) float64 {
	return celsius*9/5 + 32
}

func fahrenheitToCelsius(fahrenheit float64) float64 {
	return (fahrenheit - 32) * 5 / 9
}

func pascalToPsia(pascal float64) float64 {
	return pascal / pascalPerPsi
}

func psiaToPascal(psia float64) float64 {
	return psia * pascalPerPsi
}

// Relative2AbsoluteHumidity calculates the absolute humidity in g/m³ for a given
// relative humidity in percent and temperature in Celsius.
//
// The absolute humidity is the mass of water vapor per volume of moist air:
// absoluteHumidity = humidityRatio / specificVolume
// where both are taken per mass of dry air at the total pressure of atm.
func Relative2AbsoluteHumidity(
	atm psychro.Atmosphere,
	relativeHumidity float64,
	temperatureCelsius float64,
) (float64, error) {
	temperature := celsiusToFahrenheit(temperatureCelsius)
	pv, err := psychro.VaporPressureFromTempRh(temperature, relativeHumidity/100)
	if err != nil {
		return 0, err
	}
	w, err := atm.HumidityRatioFromVaporPressure(pv)
	if err != nil {
		return 0, err
	}
	v, err := atm.SpecificVolume(temperature, w)
	if err != nil {
		return 0, err
	}
	return gramsPerCubicMeter * w / v, nil
}
