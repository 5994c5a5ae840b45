// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import "math"

// Ideal-gas mixture coefficients, referenced to 0 °F dry air and 32 °F water.
const (
	cpAir        = 0.24     // Btu/(lb·°F), dry air
	cpVapor      = 0.445    // Btu/(lb·°F), water vapor
	hgZero       = 1061.0   // Btu/lb, enthalpy of saturated vapor at 0 °F
	volumeFactor = 0.370486 // DryAirGasConstant / 144 in psia·ft³/(lb·°R)
	vaporFactor  = 1.607858 // 1 / molarMassRatio
)

// Enthalpy returns the moist air enthalpy in Btu/lb dry air.
func Enthalpy(tempF, w float64) (float64, error) {
	if err := checkHumidityRatio("Enthalpy", w); err != nil {
		return 0, err
	}
	return enthalpy(tempF, w), nil
}

// SpecificVolume returns the moist air specific volume in ft³/lb dry air.
func (a Atmosphere) SpecificVolume(tempF, w float64) (float64, error) {
	const op = "SpecificVolume"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkHumidityRatio(op, w); err != nil {
		return 0, err
	}
	if tempF <= -rankineOffset {
		return 0, invalidInput(op, "temperature %g °F not above absolute zero", tempF)
	}
	return a.specificVolume(tempF, w), nil
}

// TemperatureFromEnthalpyHumidityRatio inverts Enthalpy for the dry bulb temperature.
func TemperatureFromEnthalpyHumidityRatio(h, w float64) (float64, error) {
	if err := checkHumidityRatio("TemperatureFromEnthalpyHumidityRatio", w); err != nil {
		return 0, err
	}
	return (h - w*hgZero) / (cpAir + w*cpVapor), nil
}

// TemperatureFromSpecificVolumeHumidityRatio inverts SpecificVolume for the
// dry bulb temperature.
func (a Atmosphere) TemperatureFromSpecificVolumeHumidityRatio(v, w float64) (float64, error) {
	const op = "TemperatureFromSpecificVolumeHumidityRatio"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkHumidityRatio(op, w); err != nil {
		return 0, err
	}
	if !(v > 0) {
		return 0, invalidInput(op, "specific volume %g ft³/lb must be positive", v)
	}
	return a.temperatureFromVolume(v, w), nil
}

// HumidityRatioFromEnthalpyTemp returns the humidity ratio on the constant
// enthalpy line h at dry bulb temperature tempF. A negative result means tempF
// lies beyond the point where the line reaches dry air and fails with
// NumericDomain.
func HumidityRatioFromEnthalpyTemp(h, tempF float64) (float64, error) {
	w := humidityRatioFromEnthalpy(h, tempF)
	if w < 0 {
		return 0, numericDomain("HumidityRatioFromEnthalpyTemp",
			"enthalpy %g Btu/lb is below dry air enthalpy at %g °F", h, tempF)
	}
	return w, nil
}

// HumidityRatioFromTempSpecificVolume returns the humidity ratio on the
// constant specific volume line v at dry bulb temperature tempF.
func (a Atmosphere) HumidityRatioFromTempSpecificVolume(tempF, v float64) (float64, error) {
	const op = "HumidityRatioFromTempSpecificVolume"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if !(v > 0) {
		return 0, invalidInput(op, "specific volume %g ft³/lb must be positive", v)
	}
	w := a.humidityRatioFromVolume(tempF, v)
	if w < 0 {
		return 0, numericDomain(op, "specific volume %g ft³/lb is below dry air volume at %g °F", v, tempF)
	}
	return w, nil
}

// HumidityRatioFromWetBulbDryBulb returns the humidity ratio of air with the
// given wet bulb and dry bulb temperatures (ASHRAE psychrometric balance).
func (a Atmosphere) HumidityRatioFromWetBulbDryBulb(wetBulbF, tempF float64) (float64, error) {
	const op = "HumidityRatioFromWetBulbDryBulb"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkTemperature(op, wetBulbF); err != nil {
		return 0, err
	}
	if wetBulbF > tempF {
		return 0, invalidInput(op, "wet bulb %g °F above dry bulb %g °F", wetBulbF, tempF)
	}
	w := a.wetBulbHumidityRatio(wetBulbF, tempF)
	if w < 0 {
		return 0, numericDomain(op, "wet bulb %g °F is below the dry air wet bulb at %g °F", wetBulbF, tempF)
	}
	return w, nil
}

func enthalpy(tempF, w float64) float64 {
	return cpAir*tempF + w*(hgZero+cpVapor*tempF)
}

func humidityRatioFromEnthalpy(h, tempF float64) float64 {
	return (h - cpAir*tempF) / (hgZero + cpVapor*tempF)
}

func (a Atmosphere) specificVolume(tempF, w float64) float64 {
	return volumeFactor * (tempF + rankineOffset) * (1 + vaporFactor*w) / a.pressure
}

func (a Atmosphere) temperatureFromVolume(v, w float64) float64 {
	return v*a.pressure/(volumeFactor*(1+vaporFactor*w)) - rankineOffset
}

func (a Atmosphere) humidityRatioFromVolume(tempF, v float64) float64 {
	return (a.pressure*v/(volumeFactor*(tempF+rankineOffset)) - 1) / vaporFactor
}

// wetBulbHumidityRatio is the left-hand side of the wet bulb balance
// ((1093 - 0.556·Tw)·ωs(Tw) - 0.24·(T - Tw)) / (1093 + 0.444·T - Tw).
func (a Atmosphere) wetBulbHumidityRatio(wetBulbF, tempF float64) float64 {
	ws := a.saturationHumidityRatio(wetBulbF)
	return ((1093-0.556*wetBulbF)*ws - cpAir*(tempF-wetBulbF)) / (1093 + 0.444*tempF - wetBulbF)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
