// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package psychro

import (
	"errors"
	"math"

	"github.com/bdrung/psychrometrics/rootfind"
)

// unbounded stands in for the humidity ratio of saturated air once the
// saturation pressure reaches total pressure. It keeps the sign of the
// monotonic objectives below without overflowing.
const unbounded = math.MaxFloat64 / 4

// Point is a state on the psychrometric chart: dry bulb temperature in °F
// against vapor pressure in psia.
type Point struct {
	TempF         float64 `json:"temp_f" yaml:"temp_f"`
	VaporPressure float64 `json:"pv_psia" yaml:"pv_psia"`
}

// Segment is a straight chart line from Start to End.
type Segment struct {
	Start Point `json:"start" yaml:"start"`
	End   Point `json:"end" yaml:"end"`
}

// VaporPressureAt returns the vapor pressure of the segment line at tempF.
func (s Segment) VaporPressureAt(tempF float64) float64 {
	return s.Start.VaporPressure + s.slope()*(tempF-s.Start.TempF)
}

func (s Segment) slope() float64 {
	return (s.End.VaporPressure - s.Start.VaporPressure) / (s.End.TempF - s.Start.TempF)
}

// VolumeSolution is the state found by TemperatureFromSpecificVolumeRelativeHumidity.
type VolumeSolution struct {
	TempF         float64
	VaporPressure float64 // psia
}

// TemperatureFromRhAndVaporPressure returns the dry bulb temperature at which
// air with relative humidity rh has vapor pressure pv, i.e. solves
// rh·psat(T) = pv with Newton-Raphson seeded at 80 °F.
func (a Atmosphere) TemperatureFromRhAndVaporPressure(rh, pv float64, opts ...SolverOption) (float64, error) {
	const op = "TemperatureFromRhAndVaporPressure"
	spec := dewPointSpec.with(opts)
	goal, err := a.saturationGoal(op, rh, pv, spec)
	if err != nil {
		return 0, err
	}
	res, err := rootfind.BoundedNewtonRaphson(
		func(t float64) float64 { return satPress(t) - goal },
		func(t float64) float64 { return satPress(t) * satPressSlope(t) },
		dewPointSeed, spec.Low, spec.High, spec.Tolerance, spec.MaxIterations,
	)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// TemperatureFromRhAndVaporPressureBracketed is TemperatureFromRhAndVaporPressure
// solved by bisection over the solver interval.
func (a Atmosphere) TemperatureFromRhAndVaporPressureBracketed(rh, pv float64, opts ...SolverOption) (float64, error) {
	const op = "TemperatureFromRhAndVaporPressureBracketed"
	spec := dewPointBracketSpec.with(opts)
	goal, err := a.saturationGoal(op, rh, pv, spec)
	if err != nil {
		return 0, err
	}
	res, err := rootfind.Bisect(
		func(t float64) float64 { return satPress(t) - goal },
		spec.Low, spec.High, spec.Tolerance, spec.MaxIterations,
	)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// DewPoint returns the dew point temperature in °F of air with vapor pressure pv.
func (a Atmosphere) DewPoint(pv float64, opts ...SolverOption) (float64, error) {
	return a.TemperatureFromRhAndVaporPressure(1, pv, opts...)
}

// saturationGoal validates the input of the saturation solvers and returns the
// saturation pressure pv/rh to solve for.
func (a Atmosphere) saturationGoal(op string, rh, pv float64, spec SolverSpec) (float64, error) {
	if err := a.check(op); err != nil {
		return 0, err
	}
	if math.IsNaN(rh) || rh <= 0 || rh > 1 {
		return 0, invalidInput(op, "relative humidity %g outside (0, 1]", rh)
	}
	if math.IsNaN(pv) || pv < 0 {
		return 0, invalidInput(op, "vapor pressure %g psia is negative", pv)
	}
	if pv >= a.pressure {
		return 0, numericDomain(op, "vapor pressure %g psia not below total pressure %g psia", pv, a.pressure)
	}
	goal := pv / rh
	if high := satPress(spec.High); goal > high {
		return 0, numericDomain(op, "saturation pressure %g psia above %g psia at %g °F", goal, high, spec.High)
	}
	if low := satPress(spec.Low); goal < low {
		return 0, numericDomain(op, "saturation pressure %g psia below %g psia at %g °F", goal, low, spec.Low)
	}
	return goal, nil
}

// WetBulbTemperature returns the thermodynamic wet bulb temperature in °F of
// air at dry bulb temperature tempF with humidity ratio w. It bisects the
// ASHRAE wet bulb balance over [0 °F, tempF].
func (a Atmosphere) WetBulbTemperature(tempF, w float64, opts ...SolverOption) (float64, error) {
	const op = "WetBulbTemperature"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkTemperature(op, tempF); err != nil {
		return 0, err
	}
	if err := checkHumidityRatio(op, w); err != nil {
		return 0, err
	}
	if p := satPress(tempF); p >= a.pressure {
		return 0, numericDomain(op, "saturation pressure %g psia at %g °F not below total pressure", p, tempF)
	}
	ws := a.saturationHumidityRatio(tempF)
	if w > ws*(1+1e-9) {
		return 0, invalidInput(op, "humidity ratio %g above saturation %g at %g °F", w, ws, tempF)
	}
	// Saturated air is at its wet bulb temperature.
	if w >= ws*(1-1e-12) {
		return tempF, nil
	}

	spec := wetBulbSpec.with(opts)
	high := math.Min(spec.High, tempF)
	if !(spec.Low < high) {
		return 0, numericDomain(op, "wet bulb temperature of %g °F air below %g °F", tempF, spec.Low)
	}
	res, err := rootfind.Bisect(
		func(tw float64) float64 { return a.wetBulbHumidityRatio(tw, tempF) - w },
		spec.Low, high, spec.Tolerance, spec.MaxIterations,
	)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// TemperatureFromWetBulbHumidityRatio returns the dry bulb temperature of air
// with the given wet bulb temperature and humidity ratio. The wet bulb
// balance is solved for the dry bulb temperature in closed form.
func (a Atmosphere) TemperatureFromWetBulbHumidityRatio(wetBulbF, w float64) (float64, error) {
	const op = "TemperatureFromWetBulbHumidityRatio"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkTemperature(op, wetBulbF); err != nil {
		return 0, err
	}
	if err := checkHumidityRatio(op, w); err != nil {
		return 0, err
	}
	if p := satPress(wetBulbF); p >= a.pressure {
		return 0, numericDomain(op, "saturation pressure %g psia at %g °F not below total pressure", p, wetBulbF)
	}
	ws := a.saturationHumidityRatio(wetBulbF)
	if w > ws*(1+1e-9) {
		return 0, invalidInput(op, "humidity ratio %g above saturation %g at wet bulb %g °F", w, ws, wetBulbF)
	}
	return ((1093-0.556*wetBulbF)*ws + cpAir*wetBulbF - w*(1093-wetBulbF)) / (0.444*w + cpAir), nil
}

// TemperatureFromSpecificVolumeRelativeHumidity finds the state with specific
// volume v (ft³/lb) and relative humidity rh. Newton-Raphson runs on the
// specific volume residual with pv = rh·psat(T), starting from the dry air
// temperature of v.
func (a Atmosphere) TemperatureFromSpecificVolumeRelativeHumidity(v, rh float64, opts ...SolverOption) (VolumeSolution, error) {
	const op = "TemperatureFromSpecificVolumeRelativeHumidity"
	if err := a.check(op); err != nil {
		return VolumeSolution{}, err
	}
	if math.IsNaN(v) || !(v > 0) {
		return VolumeSolution{}, invalidInput(op, "specific volume %g ft³/lb must be positive", v)
	}
	if err := checkRelativeHumidity(op, rh); err != nil {
		return VolumeSolution{}, err
	}

	residual := func(t float64) float64 {
		pv := rh * satPress(t)
		if pv >= a.pressure {
			return math.NaN()
		}
		return a.specificVolume(t, a.humidityRatio(pv)) - v
	}
	derivative := func(t float64) float64 {
		pv := rh * satPress(t)
		dpv := pv * satPressSlope(t)
		w := a.humidityRatio(pv)
		dw := molarMassRatio * a.pressure * dpv / ((a.pressure - pv) * (a.pressure - pv))
		return volumeFactor / a.pressure * ((1 + vaporFactor*w) + (t+rankineOffset)*vaporFactor*dw)
	}

	spec := volumeSpec.with(opts)
	if r := residual(spec.Low); r > 0 {
		return VolumeSolution{}, numericDomain(op, "specific volume %g ft³/lb below the range at %g °F", v, spec.Low)
	}
	if r := residual(spec.High); finite(r) && r < 0 {
		return VolumeSolution{}, numericDomain(op, "specific volume %g ft³/lb above the range at %g °F", v, spec.High)
	}

	res, err := rootfind.BoundedNewtonRaphson(residual, derivative,
		a.temperatureFromVolume(v, 0), spec.Low, spec.High, spec.Tolerance, spec.MaxIterations)
	if err != nil {
		return VolumeSolution{}, solverError(op, err)
	}
	return VolumeSolution{TempF: res.X, VaporPressure: rh * satPress(res.X)}, nil
}

// SaturationTemperatureAtEnthalpy returns the temperature at which the
// constant enthalpy line h (Btu/lb) meets the saturation curve.
func (a Atmosphere) SaturationTemperatureAtEnthalpy(h float64, opts ...SolverOption) (float64, error) {
	const op = "SaturationTemperatureAtEnthalpy"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if !finite(h) {
		return 0, invalidInput(op, "enthalpy %g Btu/lb is not finite", h)
	}
	spec := saturationEnthalpySpec.with(opts)
	res, err := rootfind.Bisect(
		func(t float64) float64 {
			return a.boundedSaturationHumidityRatio(t) - humidityRatioFromEnthalpy(h, t)
		},
		spec.Low, spec.High, spec.Tolerance, spec.MaxIterations,
	)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// SaturationTemperatureAtSpecificVolume returns the temperature at which the
// constant specific volume line v (ft³/lb) meets the saturation curve.
func (a Atmosphere) SaturationTemperatureAtSpecificVolume(v float64, opts ...SolverOption) (float64, error) {
	const op = "SaturationTemperatureAtSpecificVolume"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if math.IsNaN(v) || !(v > 0) {
		return 0, invalidInput(op, "specific volume %g ft³/lb must be positive", v)
	}
	spec := saturationVolumeSpec.with(opts)
	res, err := rootfind.Bisect(
		func(t float64) float64 {
			return a.boundedSaturationHumidityRatio(t) - a.humidityRatioFromVolume(t, v)
		},
		spec.Low, spec.High, spec.Tolerance, spec.MaxIterations,
	)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// TemperatureAtConstantEnthalpyBoundary returns the temperature at which the
// constant enthalpy line h crosses the straight chart boundary seg. The
// search is restricted to the temperature extent of seg.
func (a Atmosphere) TemperatureAtConstantEnthalpyBoundary(h float64, seg Segment, opts ...SolverOption) (float64, error) {
	const op = "TemperatureAtConstantEnthalpyBoundary"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if !finite(h) {
		return 0, invalidInput(op, "enthalpy %g Btu/lb is not finite", h)
	}
	if !(seg.Start.TempF < seg.End.TempF) {
		return 0, invalidInput(op, "segment from %g °F to %g °F must run towards higher temperature",
			seg.Start.TempF, seg.End.TempF)
	}

	slope := seg.slope()
	residual := func(t float64) float64 {
		return seg.VaporPressureAt(t) - a.vaporPressure(humidityRatioFromEnthalpy(h, t))
	}
	derivative := func(t float64) float64 {
		w := humidityRatioFromEnthalpy(h, t)
		if w < DryHumidityRatio {
			return slope
		}
		denom := hgZero + cpVapor*t
		dw := (-cpAir*hgZero - cpVapor*h) / (denom * denom)
		dpv := a.pressure * molarMassRatio / ((w + molarMassRatio) * (w + molarMassRatio))
		return slope - dpv*dw
	}

	spec := enthalpyBoundarySpec
	spec.Low, spec.High = seg.Start.TempF, seg.End.TempF
	spec = spec.with(opts)
	rLow, rHigh := residual(spec.Low), residual(spec.High)
	if math.Abs(rLow) >= spec.Tolerance && math.Abs(rHigh) >= spec.Tolerance && (rLow < 0) == (rHigh < 0) {
		return 0, numericDomain(op, "enthalpy line %g Btu/lb does not cross the boundary between %g °F and %g °F",
			h, spec.Low, spec.High)
	}

	res, err := rootfind.BoundedNewtonRaphson(residual, derivative,
		spec.Low+(spec.High-spec.Low)/2, spec.Low, spec.High, spec.Tolerance, spec.MaxIterations)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// TemperatureFromRhEnthalpy returns the dry bulb temperature of air with
// relative humidity rh and enthalpy h by bisection on temperature.
func (a Atmosphere) TemperatureFromRhEnthalpy(rh, h float64, opts ...SolverOption) (float64, error) {
	const op = "TemperatureFromRhEnthalpy"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if err := checkRelativeHumidity(op, rh); err != nil {
		return 0, err
	}
	if !finite(h) {
		return 0, invalidInput(op, "enthalpy %g Btu/lb is not finite", h)
	}
	spec := rhEnthalpySpec.with(opts)
	res, err := rootfind.Bisect(
		func(t float64) float64 {
			pv := rh * satPress(t)
			if pv >= a.pressure {
				return unbounded
			}
			return enthalpy(t, a.humidityRatio(pv)) - h
		},
		spec.Low, spec.High, spec.Tolerance, spec.MaxIterations,
	)
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

// TemperatureFromWetBulbRh returns the dry bulb temperature of air with wet
// bulb temperature wetBulbF and relative humidity rh. It bisects on the
// constant wet bulb line between saturation and dry air.
func (a Atmosphere) TemperatureFromWetBulbRh(wetBulbF, rh float64, opts ...SolverOption) (float64, error) {
	const op = "TemperatureFromWetBulbRh"
	if err := a.checkWetBulb(op, wetBulbF); err != nil {
		return 0, err
	}
	if err := checkRelativeHumidity(op, rh); err != nil {
		return 0, err
	}
	if rh == 1 {
		return wetBulbF, nil
	}
	spec := wetBulbLineSpec.with(opts)
	lo, hi, err := a.wetBulbLineRange(op, wetBulbF, spec)
	if err != nil {
		return 0, err
	}
	return bisectTemperature(op, func(t float64) float64 {
		pv := rh * satPress(t)
		if pv >= a.pressure {
			return -unbounded
		}
		return a.wetBulbHumidityRatio(wetBulbF, t) - a.humidityRatio(pv)
	}, lo, hi, spec)
}

// TemperatureFromWetBulbSpecificVolume returns the dry bulb temperature of
// air with wet bulb temperature wetBulbF and specific volume v (ft³/lb).
func (a Atmosphere) TemperatureFromWetBulbSpecificVolume(wetBulbF, v float64, opts ...SolverOption) (float64, error) {
	const op = "TemperatureFromWetBulbSpecificVolume"
	if err := a.checkWetBulb(op, wetBulbF); err != nil {
		return 0, err
	}
	if math.IsNaN(v) || !(v > 0) {
		return 0, invalidInput(op, "specific volume %g ft³/lb must be positive", v)
	}
	spec := wetBulbLineSpec.with(opts)
	lo, hi, err := a.wetBulbLineRange(op, wetBulbF, spec)
	if err != nil {
		return 0, err
	}
	return bisectTemperature(op, func(t float64) float64 {
		return a.specificVolume(t, a.wetBulbHumidityRatio(wetBulbF, t)) - v
	}, lo, hi, spec)
}

// TemperatureFromEnthalpySpecificVolume returns the dry bulb temperature of
// air with enthalpy h (Btu/lb) and specific volume v (ft³/lb). It bisects on
// the constant enthalpy line between saturation and dry air.
func (a Atmosphere) TemperatureFromEnthalpySpecificVolume(h, v float64, opts ...SolverOption) (float64, error) {
	const op = "TemperatureFromEnthalpySpecificVolume"
	if err := a.check(op); err != nil {
		return 0, err
	}
	if !finite(h) {
		return 0, invalidInput(op, "enthalpy %g Btu/lb is not finite", h)
	}
	if math.IsNaN(v) || !(v > 0) {
		return 0, invalidInput(op, "specific volume %g ft³/lb must be positive", v)
	}
	saturated, err := a.SaturationTemperatureAtEnthalpy(h)
	if err != nil {
		return 0, err
	}
	spec := enthalpyVolumeSpec.with(opts)
	lo, hi := math.Max(spec.Low, saturated), math.Min(spec.High, h/cpAir)
	if !(lo < hi) {
		return 0, numericDomain(op, "enthalpy %g Btu/lb has no unsaturated state between %g °F and %g °F",
			h, spec.Low, spec.High)
	}
	return bisectTemperature(op, func(t float64) float64 {
		return a.specificVolume(t, humidityRatioFromEnthalpy(h, t)) - v
	}, lo, hi, spec)
}

func (a Atmosphere) checkWetBulb(op string, wetBulbF float64) error {
	if err := a.check(op); err != nil {
		return err
	}
	if err := checkTemperature(op, wetBulbF); err != nil {
		return err
	}
	if p := satPress(wetBulbF); p >= a.pressure {
		return numericDomain(op, "saturation pressure %g psia at %g °F not below total pressure", p, wetBulbF)
	}
	return nil
}

// wetBulbLineRange returns the dry bulb temperatures at which the constant wet
// bulb line wetBulbF meets saturation and dry air, clipped to the solver interval.
func (a Atmosphere) wetBulbLineRange(op string, wetBulbF float64, spec SolverSpec) (float64, float64, error) {
	ws := a.saturationHumidityRatio(wetBulbF)
	dry := ((1093-0.556*wetBulbF)*ws + cpAir*wetBulbF) / cpAir
	lo, hi := math.Max(spec.Low, wetBulbF), math.Min(spec.High, dry)
	if !(lo < hi) {
		return 0, 0, numericDomain(op, "wet bulb %g °F line has no unsaturated state between %g °F and %g °F",
			wetBulbF, spec.Low, spec.High)
	}
	return lo, hi, nil
}

// bisectTemperature bisects f over [lo, hi]. A residual of equal sign at both
// ends fails with NumericDomain.
func bisectTemperature(op string, f rootfind.Func, lo, hi float64, spec SolverSpec) (float64, error) {
	res, err := rootfind.Bisect(f, lo, hi, spec.Tolerance, spec.MaxIterations)
	if errors.Is(err, rootfind.ErrInvalidBracket) {
		e := numericDomain(op, "no solution between %g °F and %g °F", lo, hi)
		e.Err = err
		return 0, e
	}
	if err != nil {
		return 0, solverError(op, err)
	}
	return res.X, nil
}

func (a Atmosphere) boundedSaturationHumidityRatio(tempF float64) float64 {
	p := satPress(tempF)
	if p >= a.pressure {
		return unbounded
	}
	return a.humidityRatio(p)
}
