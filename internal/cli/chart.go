// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bdrung/psychrometrics/psychro"
)

// ChartGeometry describes the area of a psychrometric chart.
type ChartGeometry struct {
	Pressure         float64         `json:"pressure_psia" yaml:"pressure_psia"`
	MaxVaporPressure float64         `json:"max_pv_psia" yaml:"max_pv_psia"`
	CutoffTemp       float64         `json:"cutoff_temp_f" yaml:"cutoff_temp_f"`
	EnthalpyBorder   psychro.Segment `json:"enthalpy_border" yaml:"enthalpy_border"`
	Boundary         []psychro.Point `json:"boundary" yaml:"boundary"`
}

// NewChartCommand creates the chart command.
func NewChartCommand(rootOpts *RootOptions) *cobra.Command {
	chartOpts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Describe the chart area",
		Long: `Print the top edge vapor pressure, the temperature at which the saturation
curve meets the top edge, the enthalpy scale segment and the outline of the
chart area.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChart(rootOpts, chartOpts, cmd)
		},
	}
	addChartFlags(cmd, chartOpts)

	return cmd
}

func runChart(opts *RootOptions, chartOpts *ChartOptions, cmd *cobra.Command) error {
	c, err := chartOpts.chart(opts.atmosphere)
	if err != nil {
		return err
	}
	geo := ChartGeometry{Pressure: opts.atmosphere.Pressure()}
	if geo.MaxVaporPressure, err = c.MaxVaporPressure(); err != nil {
		return err
	}
	if geo.CutoffTemp, err = c.CutoffTemp(); err != nil {
		return err
	}
	if geo.EnthalpyBorder, err = c.EnthalpyBorder(); err != nil {
		return err
	}
	if geo.Boundary, err = c.Boundary(); err != nil {
		return err
	}

	return opts.formatter(cmd).Write(geo, func(w io.Writer) error {
		return writeChart(w, geo)
	})
}

func writeChart(w io.Writer, geo ChartGeometry) error {
	border := geo.EnthalpyBorder
	err := writeRows(w, []row{
		{"pressure", fmt.Sprintf("%.4f", geo.Pressure), "psia"},
		{"max-vapor-pressure", fmt.Sprintf("%.6f", geo.MaxVaporPressure), "psia"},
		{"cutoff", fmt.Sprintf("%.4f", geo.CutoffTemp), "°F"},
		{"enthalpy-border", fmt.Sprintf("%.4f %.6f %.4f %.6f",
			border.Start.TempF, border.Start.VaporPressure, border.End.TempF, border.End.VaporPressure), ""},
	})
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "# boundary"); err != nil {
		return err
	}
	return writePoints(w, geo.Boundary)
}
