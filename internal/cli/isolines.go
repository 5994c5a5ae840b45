// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bdrung/psychrometrics/isoline"
	"github.com/bdrung/psychrometrics/psychro"
)

// ChartOptions holds the chart limit flags.
type ChartOptions struct {
	MinTemp          float64
	MaxTemp          float64
	MaxHumidityRatio float64
	Step             float64
}

func addChartFlags(cmd *cobra.Command, opts *ChartOptions) {
	cmd.Flags().Float64Var(&opts.MinTemp, "min-temp", isoline.DefaultMinTemp, "lowest dry bulb temperature of the chart in °F")
	cmd.Flags().Float64Var(&opts.MaxTemp, "max-temp", isoline.DefaultMaxTemp, "highest dry bulb temperature of the chart in °F")
	cmd.Flags().Float64Var(&opts.MaxHumidityRatio, "max-humidity-ratio", isoline.DefaultMaxHumidityRatio, "top edge of the chart in lb/lb")
	cmd.Flags().Float64Var(&opts.Step, "step", isoline.DefaultStep, "temperature spacing of the line points in °F")
}

func (o *ChartOptions) chart(atm psychro.Atmosphere) (isoline.Chart, error) {
	c := isoline.Chart{
		Atmosphere:       atm,
		MinTemp:          o.MinTemp,
		MaxTemp:          o.MaxTemp,
		MaxHumidityRatio: o.MaxHumidityRatio,
		Step:             o.Step,
	}
	if err := c.Validate(); err != nil {
		return isoline.Chart{}, err
	}
	return c, nil
}

// NewIsolinesCommand creates the isolines command.
func NewIsolinesCommand(rootOpts *RootOptions) *cobra.Command {
	chartOpts := &ChartOptions{}

	cmd := &cobra.Command{
		Use:   "isolines <property> [value...]",
		Short: "Compute constant property lines of the psychrometric chart",
		Long: `Compute the points of constant property lines clipped to the chart area.

Each point is a dry bulb temperature in °F and a vapor pressure in psia.
Without values, the lines drawn on a full chart are computed.`,
		Example:   "  psychrocalc isolines relative-humidity 0.2 0.5\n  psychrocalc isolines enthalpy",
		Args:      usageArgs(cobra.MinimumNArgs(1)),
		ValidArgs: propertyNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIsolines(rootOpts, chartOpts, cmd, args)
		},
	}
	addChartFlags(cmd, chartOpts)

	return cmd
}

func propertyNames() []string {
	names := make([]string, len(properties))
	for i, p := range properties {
		names[i] = p.String()
	}
	return names
}

func runIsolines(opts *RootOptions, chartOpts *ChartOptions, cmd *cobra.Command, args []string) error {
	p, err := psychro.ParseProperty(args[0])
	if err != nil {
		return err
	}
	c, err := chartOpts.chart(opts.atmosphere)
	if err != nil {
		return err
	}

	var values []float64
	if len(args) > 1 {
		values = make([]float64, 0, len(args)-1)
		for _, arg := range args[1:] {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return WrapExitError(ExitUsage, fmt.Sprintf("invalid %v value %q", p, arg), err)
			}
			values = append(values, v)
		}
	} else {
		values, err = c.DefaultValues(p)
		if err != nil {
			return err
		}
	}

	lines, err := c.Lines(cmd.Context(), p, values)
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Write(lines, func(w io.Writer) error {
		return writeLines(w, lines)
	})
}

func writeLines(w io.Writer, lines []isoline.Line) error {
	for i, l := range lines {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "# %v %g\n", l.Property, l.Value); err != nil {
			return err
		}
		if err := writePoints(w, l.Points); err != nil {
			return err
		}
	}
	return nil
}
