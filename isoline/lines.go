// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package isoline

import (
	"context"
	"fmt"
	"math"

	"github.com/bdrung/psychrometrics/psychro"
)

// Line is the visible part of a constant property line.
type Line struct {
	Property psychro.Property `json:"property" yaml:"property"`
	Value    float64          `json:"value" yaml:"value"`
	Points   []psychro.Point  `json:"points" yaml:"points"`
}

// Default spacing of the line values.
const (
	humidityRatioStep  = 0.002 // lb/lb
	specificVolumeStep = 0.1   // ft³/lb
	enthalpyStep       = 5.0   // Btu/lb
)

// Line returns the line of constant property p at value v, clipped to the
// chart. Relative humidity is given as a fraction.
func (c Chart) Line(p psychro.Property, v float64) (Line, error) {
	g, err := c.geometry()
	if err != nil {
		return Line{}, err
	}
	var points []psychro.Point
	switch p {
	case psychro.PropDryBulb:
		points, err = c.dryBulbLine(g, v)
	case psychro.PropRelativeHumidity:
		points, err = c.relativeHumidityLine(g, v)
	case psychro.PropHumidityRatio:
		points, err = c.humidityRatioLine(g, v)
	case psychro.PropVaporPressure:
		points, err = c.vaporPressureLine(g, v)
	case psychro.PropDewPoint:
		points, err = c.dewPointLine(g, v)
	case psychro.PropEnthalpy:
		points, err = c.enthalpyLine(g, v)
	case psychro.PropWetBulb:
		points, err = c.wetBulbLine(g, v)
	case psychro.PropSpecificVolume:
		points, err = c.specificVolumeLine(g, v)
	default:
		err = fmt.Errorf("%w: unknown property %v", ErrOutOfRange, p)
	}
	if err != nil {
		return Line{}, fmt.Errorf("%v line at %g: %w", p, v, err)
	}
	return Line{Property: p, Value: v, Points: points}, nil
}

// Lines computes the lines of property p at every value in parallel.
func (c Chart) Lines(ctx context.Context, p psychro.Property, values []float64) ([]Line, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return psychro.Map(ctx, values, func(v float64) (Line, error) {
		return c.Line(p, v)
	})
}

// DefaultValues returns the line values of property p drawn on a full chart.
func (c Chart) DefaultValues(p psychro.Property) ([]float64, error) {
	g, err := c.geometry()
	if err != nil {
		return nil, err
	}
	atm := c.Atmosphere
	switch p {
	case psychro.PropDryBulb:
		return steps(math.Ceil(c.MinTemp), math.Floor(c.MaxTemp), 1), nil
	case psychro.PropRelativeHumidity:
		return steps(0.1, 0.9, 0.1), nil
	case psychro.PropHumidityRatio:
		return steps(humidityRatioStep, g.maxW-humidityRatioStep/2, humidityRatioStep), nil
	case psychro.PropDewPoint:
		return steps(math.Ceil(c.MinTemp), math.Floor(g.cutoff), 1), nil
	case psychro.PropVaporPressure:
		return steps(0.05, g.maxPv, 0.05), nil
	case psychro.PropEnthalpy:
		lo, err := psychro.Enthalpy(c.MinTemp, 0)
		if err != nil {
			return nil, err
		}
		hi, err := psychro.Enthalpy(c.MaxTemp, g.maxW)
		if err != nil {
			return nil, err
		}
		return steps(enthalpyStep*math.Ceil(lo/enthalpyStep), hi, enthalpyStep), nil
	case psychro.PropWetBulb:
		lo, err := atm.WetBulbTemperature(c.MinTemp, 0)
		if err != nil {
			return nil, err
		}
		hi, err := atm.WetBulbTemperature(c.MaxTemp, g.maxW)
		if err != nil {
			return nil, err
		}
		return steps(math.Ceil(lo), math.Floor(hi), 1), nil
	case psychro.PropSpecificVolume:
		lo, err := atm.SpecificVolume(c.MinTemp, 0)
		if err != nil {
			return nil, err
		}
		hi, err := atm.SpecificVolume(c.MaxTemp, g.maxW)
		if err != nil {
			return nil, err
		}
		return steps(specificVolumeStep*math.Ceil(lo/specificVolumeStep), hi, specificVolumeStep), nil
	default:
		return nil, fmt.Errorf("%w: unknown property %v", ErrOutOfRange, p)
	}
}

// steps returns lo, lo+step, ... up to and including hi. The values are
// rounded to the precision of step.
func steps(lo, hi, step float64) []float64 {
	var values []float64
	scale := math.Pow(10, math.Ceil(-math.Log10(step))+1)
	for i := 0; ; i++ {
		v := math.Round((lo+float64(i)*step)*scale) / scale
		if v > hi+step*1e-9 {
			return values
		}
		values = append(values, v)
	}
}

// point clamps pv to the top edge of the chart.
func (g geometry) point(tempF, pv float64) psychro.Point {
	return psychro.Point{TempF: tempF, VaporPressure: math.Min(pv, g.maxPv)}
}

// trace evaluates pv(t) on the grid from lo to hi.
func (c Chart) trace(g geometry, lo, hi float64, pv func(t float64) (float64, error)) ([]psychro.Point, error) {
	temps := grid(lo, hi, c.Step)
	points := make([]psychro.Point, 0, len(temps))
	for _, t := range temps {
		p, err := pv(t)
		if err != nil {
			return nil, err
		}
		points = append(points, g.point(t, p))
	}
	return points, nil
}

// vaporPressure converts a humidity ratio on a line to vapor pressure. A
// humidity ratio below dry air counts as dry air.
func (c Chart) vaporPressure(w float64, err error) (float64, error) {
	if psychro.IsNumericDomain(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return c.Atmosphere.VaporPressureFromHumidityRatio(w)
}

func (c Chart) dryBulbLine(g geometry, tempF float64) ([]psychro.Point, error) {
	if !(tempF >= c.MinTemp && tempF <= c.MaxTemp) {
		return nil, ErrOutOfRange
	}
	p, err := psychro.SaturationPressure(tempF)
	if err != nil {
		return nil, err
	}
	return []psychro.Point{g.point(tempF, 0), g.point(tempF, p)}, nil
}

func (c Chart) relativeHumidityLine(g geometry, rh float64) ([]psychro.Point, error) {
	if !(rh > 0 && rh <= 1) {
		return nil, ErrOutOfRange
	}
	pv, err := psychro.VaporPressureFromTempRh(c.MaxTemp, rh)
	if err != nil {
		return nil, err
	}
	end := c.MaxTemp
	if pv >= g.maxPv {
		end, err = c.Atmosphere.TemperatureFromRhAndVaporPressure(rh, g.maxPv)
		if err != nil {
			return nil, err
		}
	}
	return c.trace(g, c.MinTemp, end, func(t float64) (float64, error) {
		return psychro.VaporPressureFromTempRh(t, rh)
	})
}

func (c Chart) humidityRatioLine(g geometry, w float64) ([]psychro.Point, error) {
	if !(w > 0 && w <= g.maxW) {
		return nil, ErrOutOfRange
	}
	pv, err := c.Atmosphere.VaporPressureFromHumidityRatio(w)
	if err != nil {
		return nil, err
	}
	return c.horizontalLine(g, pv)
}

func (c Chart) vaporPressureLine(g geometry, pv float64) ([]psychro.Point, error) {
	if !(pv > 0 && pv <= g.maxPv) {
		return nil, ErrOutOfRange
	}
	return c.horizontalLine(g, pv)
}

func (c Chart) dewPointLine(g geometry, tempF float64) ([]psychro.Point, error) {
	if !(tempF >= psychro.MinTemp && tempF <= g.cutoff) {
		return nil, ErrOutOfRange
	}
	pv, err := psychro.SaturationPressure(tempF)
	if err != nil {
		return nil, err
	}
	return c.horizontalLine(g, math.Min(pv, g.maxPv))
}

// horizontalLine runs at constant vapor pressure pv from the saturation
// curve, or the left edge, to the right edge.
func (c Chart) horizontalLine(g geometry, pv float64) ([]psychro.Point, error) {
	start := c.MinTemp
	psatMin, err := psychro.SaturationPressure(c.MinTemp)
	if err != nil {
		return nil, err
	}
	if pv >= psatMin {
		start, err = c.Atmosphere.DewPoint(pv)
		if err != nil {
			return nil, err
		}
	}
	return []psychro.Point{g.point(start, pv), g.point(c.MaxTemp, pv)}, nil
}

func (c Chart) enthalpyLine(g geometry, h float64) ([]psychro.Point, error) {
	atm := c.Atmosphere
	lo, err := psychro.Enthalpy(c.MinTemp, 0)
	if err != nil {
		return nil, err
	}
	hi, err := psychro.Enthalpy(c.MaxTemp, g.maxW)
	if err != nil {
		return nil, err
	}
	if !(h >= lo && h <= hi) {
		return nil, ErrOutOfRange
	}

	wBorder, err := atm.HumidityRatioFromVaporPressure(g.border.Start.VaporPressure)
	if err != nil {
		return nil, err
	}
	firstBorder, err := psychro.Enthalpy(g.border.Start.TempF, wBorder)
	if err != nil {
		return nil, err
	}
	secondBorder, err := psychro.Enthalpy(g.border.End.TempF, g.maxW)
	if err != nil {
		return nil, err
	}

	var start float64
	switch {
	case h < firstBorder:
		start = c.MinTemp
	case h < secondBorder:
		start, err = atm.TemperatureAtConstantEnthalpyBoundary(h, g.border)
	default:
		start, err = psychro.TemperatureFromEnthalpyHumidityRatio(h, g.maxW)
	}
	if err != nil {
		return nil, err
	}
	end := math.Min(h/0.24, c.MaxTemp)
	return c.trace(g, start, end, func(t float64) (float64, error) {
		return c.vaporPressure(psychro.HumidityRatioFromEnthalpyTemp(h, t))
	})
}

func (c Chart) wetBulbLine(g geometry, wb float64) ([]psychro.Point, error) {
	atm := c.Atmosphere
	lo, err := atm.WetBulbTemperature(c.MinTemp, 0)
	if err != nil {
		return nil, err
	}
	hi, err := atm.WetBulbTemperature(c.MaxTemp, g.maxW)
	if err != nil {
		return nil, err
	}
	if !(wb >= lo && wb <= hi) {
		return nil, ErrOutOfRange
	}
	bottomRight, err := atm.WetBulbTemperature(c.MaxTemp, 0)
	if err != nil {
		return nil, err
	}

	var start, end float64
	switch {
	case wb < c.MinTemp:
		start = c.MinTemp
		end, err = atm.TemperatureFromWetBulbHumidityRatio(wb, 0)
	case wb < bottomRight:
		start = wb
		end, err = atm.TemperatureFromWetBulbHumidityRatio(wb, 0)
	case wb < g.cutoff:
		start, end = wb, c.MaxTemp
	default:
		end = c.MaxTemp
		start, err = atm.TemperatureFromWetBulbHumidityRatio(wb, g.maxW)
	}
	if err != nil {
		return nil, err
	}
	return c.trace(g, start, math.Min(end, c.MaxTemp), func(t float64) (float64, error) {
		return c.vaporPressure(atm.HumidityRatioFromWetBulbDryBulb(wb, t))
	})
}

func (c Chart) specificVolumeLine(g geometry, v float64) ([]psychro.Point, error) {
	atm := c.Atmosphere
	lo, err := atm.SpecificVolume(c.MinTemp, 0)
	if err != nil {
		return nil, err
	}
	hi, err := atm.SpecificVolume(c.MaxTemp, g.maxW)
	if err != nil {
		return nil, err
	}
	if !(v >= lo && v <= hi) {
		return nil, ErrOutOfRange
	}
	wsMin, err := atm.SaturationHumidityRatio(c.MinTemp)
	if err != nil {
		return nil, err
	}
	vsMin, err := atm.SpecificVolume(c.MinTemp, wsMin)
	if err != nil {
		return nil, err
	}
	vCutoff, err := atm.SpecificVolume(g.cutoff, g.maxW)
	if err != nil {
		return nil, err
	}

	var start float64
	switch {
	case v < vsMin:
		start = c.MinTemp
	case v < vCutoff:
		start, err = atm.SaturationTemperatureAtSpecificVolume(v)
	default:
		start, err = atm.TemperatureFromSpecificVolumeHumidityRatio(v, g.maxW)
	}
	if err != nil {
		return nil, err
	}
	end, err := atm.TemperatureFromSpecificVolumeHumidityRatio(v, 0)
	if err != nil {
		return nil, err
	}
	return c.trace(g, start, math.Min(end, c.MaxTemp), func(t float64) (float64, error) {
		return c.vaporPressure(atm.HumidityRatioFromTempSpecificVolume(t, v))
	})
}
