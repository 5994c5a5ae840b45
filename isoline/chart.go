// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package isoline generates the point series of the constant property lines
// of a psychrometric chart: dry bulb temperature on the horizontal axis
// against vapor pressure on the vertical axis, clipped to the chart area.
package isoline

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/bdrung/psychrometrics/psychro"
)

var (
	// ErrInvalidChart is returned for inconsistent chart limits.
	ErrInvalidChart = errors.New("invalid chart")
	// ErrOutOfRange is returned for a line value that does not cross the chart.
	ErrOutOfRange = errors.New("line outside the chart")
)

// Chart defaults.
const (
	DefaultMinTemp          = 32.0  // °F
	DefaultMaxTemp          = 120.0 // °F
	DefaultMaxHumidityRatio = 0.03  // lb/lb
	DefaultStep             = 0.5   // °F

	// borderFraction is the size of the skewed enthalpy scale relative to
	// the chart extent.
	borderFraction = 0.05
)

// Chart is the visible area of a psychrometric chart.
type Chart struct {
	Atmosphere psychro.Atmosphere

	// MinTemp and MaxTemp are the dry bulb temperature limits in °F.
	MinTemp, MaxTemp float64

	// MaxHumidityRatio is the top edge of the chart in lb/lb.
	MaxHumidityRatio float64

	// Step is the temperature spacing in °F between the points of a line.
	Step float64
}

// NewChart returns a chart with the default limits.
func NewChart(atm psychro.Atmosphere) Chart {
	return Chart{
		Atmosphere:       atm,
		MinTemp:          DefaultMinTemp,
		MaxTemp:          DefaultMaxTemp,
		MaxHumidityRatio: DefaultMaxHumidityRatio,
		Step:             DefaultStep,
	}
}

// Validate checks the chart limits.
func (c Chart) Validate() error {
	if math.IsNaN(c.MinTemp) || math.IsNaN(c.MaxTemp) || c.MinTemp < psychro.MinTemp ||
		c.MaxTemp > psychro.MaxTemp || c.MinTemp >= c.MaxTemp {
		return fmt.Errorf("%w: temperature range [%g, %g] °F", ErrInvalidChart, c.MinTemp, c.MaxTemp)
	}
	if !(c.MaxHumidityRatio > 0) || math.IsInf(c.MaxHumidityRatio, 0) {
		return fmt.Errorf("%w: maximum humidity ratio %g", ErrInvalidChart, c.MaxHumidityRatio)
	}
	if !(c.Step > 0) || c.Step > c.MaxTemp-c.MinTemp {
		return fmt.Errorf("%w: step %g °F", ErrInvalidChart, c.Step)
	}
	// The wet bulb lines start at the wet bulb temperature of the bottom left corner.
	if _, err := c.Atmosphere.WetBulbTemperature(c.MinTemp, 0); err != nil {
		return fmt.Errorf("%w: no wet bulb temperature for dry air at %g °F: %w", ErrInvalidChart, c.MinTemp, err)
	}
	cutoff, err := c.cutoffTemp()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChart, err)
	}
	if cutoff <= c.MinTemp || cutoff > c.MaxTemp {
		return fmt.Errorf("%w: humidity ratio %g saturates at %g °F outside the temperature range",
			ErrInvalidChart, c.MaxHumidityRatio, cutoff)
	}
	return nil
}

// MaxVaporPressure returns the vapor pressure in psia of the top edge.
func (c Chart) MaxVaporPressure() (float64, error) {
	return c.Atmosphere.VaporPressureFromHumidityRatio(c.MaxHumidityRatio)
}

// CutoffTemp returns the temperature at which the saturation curve meets the
// top edge of the chart.
func (c Chart) CutoffTemp() (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return c.cutoffTemp()
}

func (c Chart) cutoffTemp() (float64, error) {
	maxPv, err := c.MaxVaporPressure()
	if err != nil {
		return 0, err
	}
	return c.Atmosphere.DewPoint(maxPv)
}

// Boundary returns the outline of the chart area, starting and ending at
// the bottom right corner and following the saturation curve from MinTemp
// up to the top edge.
func (c Chart) Boundary() ([]psychro.Point, error) {
	g, err := c.geometry()
	if err != nil {
		return nil, err
	}
	outline := []psychro.Point{
		{TempF: c.MaxTemp},
		{TempF: c.MinTemp},
	}
	for _, t := range grid(c.MinTemp, g.cutoff, c.Step) {
		p, err := psychro.SaturationPressure(t)
		if err != nil {
			return nil, err
		}
		outline = append(outline, psychro.Point{TempF: t, VaporPressure: math.Min(p, g.maxPv)})
	}
	return append(outline,
		psychro.Point{TempF: c.MaxTemp, VaporPressure: g.maxPv},
		psychro.Point{TempF: c.MaxTemp},
	), nil
}

// EnthalpyBorder returns the straight left edge of the skewed enthalpy scale
// between the saturation curve and the top left corner of the chart.
func (c Chart) EnthalpyBorder() (psychro.Segment, error) {
	g, err := c.geometry()
	if err != nil {
		return psychro.Segment{}, err
	}
	return g.border, nil
}

// EnthalpyScalePoint returns the point where the constant enthalpy line h
// meets the enthalpy scale.
func (c Chart) EnthalpyScalePoint(h float64) (psychro.Point, error) {
	g, err := c.geometry()
	if err != nil {
		return psychro.Point{}, err
	}
	t, err := c.Atmosphere.TemperatureAtConstantEnthalpyBoundary(h, g.border)
	if err != nil {
		return psychro.Point{}, fmt.Errorf("enthalpy scale at %g Btu/lb: %w", h, err)
	}
	return psychro.Point{TempF: t, VaporPressure: g.border.VaporPressureAt(t)}, nil
}

// geometry holds the derived limits of a valid chart.
type geometry struct {
	maxPv  float64 // psia
	maxW   float64 // lb/lb
	cutoff float64 // °F
	border psychro.Segment
}

func (c Chart) geometry() (geometry, error) {
	if err := c.Validate(); err != nil {
		return geometry{}, err
	}
	maxPv, err := c.MaxVaporPressure()
	if err != nil {
		return geometry{}, err
	}
	cutoff, err := c.cutoffTemp()
	if err != nil {
		return geometry{}, err
	}
	psatMin, err := psychro.SaturationPressure(c.MinTemp)
	if err != nil {
		return geometry{}, err
	}
	return geometry{
		maxPv:  maxPv,
		maxW:   c.MaxHumidityRatio,
		cutoff: cutoff,
		border: psychro.Segment{
			Start: psychro.Point{TempF: c.MinTemp, VaporPressure: psatMin + borderFraction*maxPv},
			End:   psychro.Point{TempF: cutoff - borderFraction*(c.MaxTemp-c.MinTemp), VaporPressure: maxPv},
		},
	}, nil
}

// grid returns lo, every multiple of step strictly between lo and hi, and hi.
func grid(lo, hi, step float64) []float64 {
	if hi <= lo {
		return []float64{lo}
	}
	first := step * (math.Floor(lo/step) + 1)
	last := step * (math.Ceil(hi/step) - 1)
	points := []float64{lo}
	switch n := int(math.Round((last-first)/step)) + 1; {
	case n == 1:
		points = append(points, first)
	case n > 1:
		points = append(points, floats.Span(make([]float64, n), first, last)...)
	}
	return append(points, hi)
}
