// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"fmt"
	"math"
	"strings"
)

// Property names a moist air state variable.
type Property int

// Properties accepted by Resolve and the isoline package.
const (
	PropDryBulb Property = iota + 1
	PropWetBulb
	PropDewPoint
	PropRelativeHumidity
	PropHumidityRatio
	PropVaporPressure
	PropEnthalpy
	PropSpecificVolume
)

var propertyNames = map[Property]string{
	PropDryBulb:          "dry-bulb",
	PropWetBulb:          "wet-bulb",
	PropDewPoint:         "dew-point",
	PropRelativeHumidity: "relative-humidity",
	PropHumidityRatio:    "humidity-ratio",
	PropVaporPressure:    "vapor-pressure",
	PropEnthalpy:         "enthalpy",
	PropSpecificVolume:   "specific-volume",
}

func (p Property) String() string {
	if name, ok := propertyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Property(%d)", int(p))
}

// ParseProperty returns the property with the given name, e.g. "wet-bulb".
func ParseProperty(name string) (Property, error) {
	for p, n := range propertyNames {
		if strings.EqualFold(n, name) {
			return p, nil
		}
	}
	return 0, invalidInput("ParseProperty", "unknown property %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (p Property) MarshalText() ([]byte, error) {
	if _, ok := propertyNames[p]; !ok {
		return nil, invalidInput("MarshalText", "unknown property %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Property) UnmarshalText(text []byte) error {
	parsed, err := ParseProperty(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// moisture reports whether p only describes the water content of the air.
// Two moisture properties are never independent.
func (p Property) moisture() bool {
	return p == PropDewPoint || p == PropHumidityRatio || p == PropVaporPressure
}

// State is the full moist air state derived from two independent properties.
type State struct {
	DryBulb          float64  `json:"dry_bulb_f" yaml:"dry_bulb_f"`
	WetBulb          float64  `json:"wet_bulb_f" yaml:"wet_bulb_f"`
	DewPoint         *float64 `json:"dew_point_f,omitempty" yaml:"dew_point_f,omitempty"`
	RelativeHumidity float64  `json:"relative_humidity" yaml:"relative_humidity"`
	HumidityRatio    float64  `json:"humidity_ratio" yaml:"humidity_ratio"`
	VaporPressure    float64  `json:"vapor_pressure_psia" yaml:"vapor_pressure_psia"`
	Enthalpy         float64  `json:"enthalpy_btu_per_lb" yaml:"enthalpy_btu_per_lb"`
	SpecificVolume   float64  `json:"specific_volume_ft3_per_lb" yaml:"specific_volume_ft3_per_lb"`
}

// StateFromTempRh returns the state at dry bulb temperature tempF and relative humidity rh.
func (a Atmosphere) StateFromTempRh(tempF, rh float64) (State, error) {
	return a.Resolve(PropDryBulb, tempF, PropRelativeHumidity, rh)
}

// StateFromTempHumidityRatio returns the state at dry bulb temperature tempF
// and humidity ratio w.
func (a Atmosphere) StateFromTempHumidityRatio(tempF, w float64) (State, error) {
	return a.Resolve(PropDryBulb, tempF, PropHumidityRatio, w)
}

// Resolve derives the full state from two independent properties. The order
// of the pairs does not matter.
func (a Atmosphere) Resolve(p1 Property, v1 float64, p2 Property, v2 float64) (State, error) {
	const op = "Resolve"
	if err := a.check(op); err != nil {
		return State{}, err
	}
	if _, ok := propertyNames[p1]; !ok {
		return State{}, invalidInput(op, "unknown property %v", p1)
	}
	if _, ok := propertyNames[p2]; !ok {
		return State{}, invalidInput(op, "unknown property %v", p2)
	}
	if p1 > p2 {
		p1, v1, p2, v2 = p2, v2, p1, v1
	}

	var (
		tempF, w float64
		err      error
	)
	switch {
	case p1 == p2:
		return State{}, invalidInput(op, "%v given twice", p1)
	case p1 == PropDryBulb:
		tempF = v1
		w, err = a.humidityRatioAtTemp(p2, v2, tempF)
	case p1.moisture() && p2.moisture():
		return State{}, invalidInput(op, "%v and %v are not independent", p1, p2)
	case p1.moisture():
		w, err = a.humidityRatioOf(p1, v1)
		if err == nil {
			tempF, err = a.temperatureAtHumidityRatio(p2, v2, w)
		}
	case p2.moisture():
		w, err = a.humidityRatioOf(p2, v2)
		if err == nil {
			tempF, err = a.temperatureAtHumidityRatio(p1, v1, w)
		}
	case p1 == PropWetBulb && p2 == PropRelativeHumidity:
		tempF, err = a.TemperatureFromWetBulbRh(v1, v2)
		if err == nil {
			w = math.Max(a.wetBulbHumidityRatio(v1, tempF), 0)
		}
	case p1 == PropWetBulb && p2 == PropSpecificVolume:
		tempF, err = a.TemperatureFromWetBulbSpecificVolume(v1, v2)
		if err == nil {
			w = math.Max(a.wetBulbHumidityRatio(v1, tempF), 0)
		}
	case p1 == PropWetBulb && p2 == PropEnthalpy:
		// Constant wet bulb lines run almost along constant enthalpy lines.
		return State{}, invalidInput(op, "%v and %v are not independent enough to resolve a state", p1, p2)
	case p1 == PropRelativeHumidity && p2 == PropEnthalpy:
		tempF, err = a.TemperatureFromRhEnthalpy(v1, v2)
		if err == nil {
			w, err = a.humidityRatioAtTemp(PropRelativeHumidity, v1, tempF)
		}
	case p1 == PropRelativeHumidity && p2 == PropSpecificVolume:
		var sol VolumeSolution
		sol, err = a.TemperatureFromSpecificVolumeRelativeHumidity(v2, v1)
		if err == nil {
			tempF = sol.TempF
			w, err = a.HumidityRatioFromVaporPressure(sol.VaporPressure)
		}
	case p1 == PropEnthalpy && p2 == PropSpecificVolume:
		tempF, err = a.TemperatureFromEnthalpySpecificVolume(v1, v2)
		if err == nil {
			w = math.Max(humidityRatioFromEnthalpy(v1, tempF), 0)
		}
	default:
		return State{}, invalidInput(op, "cannot resolve a state from %v and %v", p1, p2)
	}
	if err != nil {
		return State{}, err
	}
	return a.state(op, tempF, w)
}

// humidityRatioAtTemp returns the humidity ratio of air at dry bulb tempF
// with property p equal to v.
func (a Atmosphere) humidityRatioAtTemp(p Property, v, tempF float64) (float64, error) {
	switch p {
	case PropWetBulb:
		return a.HumidityRatioFromWetBulbDryBulb(v, tempF)
	case PropRelativeHumidity:
		pv, err := VaporPressureFromTempRh(tempF, v)
		if err != nil {
			return 0, err
		}
		return a.HumidityRatioFromVaporPressure(pv)
	case PropEnthalpy:
		return HumidityRatioFromEnthalpyTemp(v, tempF)
	case PropSpecificVolume:
		return a.HumidityRatioFromTempSpecificVolume(tempF, v)
	default:
		return a.humidityRatioOf(p, v)
	}
}

// humidityRatioOf converts a moisture property to a humidity ratio.
func (a Atmosphere) humidityRatioOf(p Property, v float64) (float64, error) {
	switch p {
	case PropHumidityRatio:
		if err := checkHumidityRatio("Resolve", v); err != nil {
			return 0, err
		}
		return v, nil
	case PropVaporPressure:
		return a.HumidityRatioFromVaporPressure(v)
	case PropDewPoint:
		if err := checkTemperature("Resolve", v); err != nil {
			return 0, err
		}
		return a.HumidityRatioFromVaporPressure(satPress(v))
	default:
		return 0, invalidInput("Resolve", "%v is not a moisture property", p)
	}
}

// temperatureAtHumidityRatio returns the dry bulb temperature of air with
// humidity ratio w and property p equal to v.
func (a Atmosphere) temperatureAtHumidityRatio(p Property, v, w float64) (float64, error) {
	switch p {
	case PropWetBulb:
		return a.TemperatureFromWetBulbHumidityRatio(v, w)
	case PropRelativeHumidity:
		return a.TemperatureFromRhAndVaporPressure(v, a.vaporPressure(w))
	case PropEnthalpy:
		return TemperatureFromEnthalpyHumidityRatio(v, w)
	case PropSpecificVolume:
		return a.TemperatureFromSpecificVolumeHumidityRatio(v, w)
	default:
		return 0, invalidInput("Resolve", "cannot resolve a state from %v and its humidity ratio", p)
	}
}

// state completes the state at dry bulb temperature tempF and humidity ratio w.
func (a Atmosphere) state(op string, tempF, w float64) (State, error) {
	if err := checkTemperature(op, tempF); err != nil {
		return State{}, err
	}
	if err := checkHumidityRatio(op, w); err != nil {
		return State{}, err
	}
	psat := satPress(tempF)
	if psat >= a.pressure {
		return State{}, numericDomain(op, "saturation pressure %g psia at %g °F not below total pressure", psat, tempF)
	}
	pv := a.vaporPressure(w)
	if pv > psat*(1+1e-9) {
		return State{}, invalidInput(op, "vapor pressure %g psia above saturation pressure %g psia at %g °F", pv, psat, tempF)
	}
	wetBulb, err := a.WetBulbTemperature(tempF, w)
	if err != nil {
		return State{}, err
	}

	s := State{
		DryBulb:          tempF,
		WetBulb:          wetBulb,
		RelativeHumidity: min(pv/psat, 1),
		HumidityRatio:    w,
		VaporPressure:    pv,
		Enthalpy:         enthalpy(tempF, w),
		SpecificVolume:   a.specificVolume(tempF, w),
	}
	// Air drier than saturation at MinTemp has no dew point in range.
	if pv >= satPress(MinTemp) {
		dewPoint, err := a.DewPoint(min(pv, psat))
		if err != nil {
			return State{}, err
		}
		s.DewPoint = &dewPoint
	}
	return s, nil
}
