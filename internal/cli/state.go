// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/bdrung/psychrometrics/psychro"
)

// properties lists the state properties in output order.
var properties = []psychro.Property{
	psychro.PropDryBulb,
	psychro.PropWetBulb,
	psychro.PropDewPoint,
	psychro.PropRelativeHumidity,
	psychro.PropHumidityRatio,
	psychro.PropVaporPressure,
	psychro.PropEnthalpy,
	psychro.PropSpecificVolume,
}

var propertyUnits = map[psychro.Property]string{
	psychro.PropDryBulb:          "°F",
	psychro.PropWetBulb:          "°F",
	psychro.PropDewPoint:         "°F",
	psychro.PropRelativeHumidity: "",
	psychro.PropHumidityRatio:    "lb/lb",
	psychro.PropVaporPressure:    "psia",
	psychro.PropEnthalpy:         "Btu/lb",
	psychro.PropSpecificVolume:   "ft³/lb",
}

func propertyUsage(p psychro.Property) string {
	if p == psychro.PropRelativeHumidity {
		return "relative humidity as a fraction"
	}
	return fmt.Sprintf("%v in %s", p, propertyUnits[p])
}

// NewStateCommand creates the state command.
func NewStateCommand(rootOpts *RootOptions) *cobra.Command {
	values := make(map[psychro.Property]*float64, len(properties))

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Resolve a moist air state from two properties",
		Long: `Resolve the full moist air state from exactly two independent properties.

Two properties that only describe the moisture content (dew point, humidity
ratio, vapor pressure) are not independent. Wet bulb and enthalpy are rejected
as well since their chart lines run almost in parallel.`,
		Example: "  psychrocalc state --dry-bulb 75 --relative-humidity 0.5\n" +
			"  psychrocalc state --altitude 5000 --dry-bulb 75 --wet-bulb 60",
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runState(rootOpts, cmd, values)
		},
	}

	for _, p := range properties {
		values[p] = cmd.Flags().Float64(p.String(), 0, propertyUsage(p))
	}

	return cmd
}

func runState(opts *RootOptions, cmd *cobra.Command, values map[psychro.Property]*float64) error {
	var given []psychro.Property
	for _, p := range properties {
		if cmd.Flags().Changed(p.String()) {
			given = append(given, p)
		}
	}
	if len(given) != 2 {
		return NewExitError(ExitUsage, fmt.Sprintf("exactly two properties are required, got %d", len(given)))
	}

	state, err := opts.atmosphere.Resolve(given[0], *values[given[0]], given[1], *values[given[1]])
	if err != nil {
		return err
	}
	return opts.formatter(cmd).Write(state, func(w io.Writer) error {
		return writeState(w, opts.atmosphere, state)
	})
}

func writeState(w io.Writer, atm psychro.Atmosphere, s psychro.State) error {
	dewPoint := "-"
	if s.DewPoint != nil {
		dewPoint = fmt.Sprintf("%.4f", *s.DewPoint)
	}
	return writeRows(w, []row{
		{"pressure", fmt.Sprintf("%.4f", atm.Pressure()), "psia"},
		{"dry-bulb", fmt.Sprintf("%.4f", s.DryBulb), "°F"},
		{"wet-bulb", fmt.Sprintf("%.4f", s.WetBulb), "°F"},
		{"dew-point", dewPoint, "°F"},
		{"relative-humidity", fmt.Sprintf("%.4f", s.RelativeHumidity), ""},
		{"humidity-ratio", fmt.Sprintf("%.6f", s.HumidityRatio), "lb/lb"},
		{"vapor-pressure", fmt.Sprintf("%.6f", s.VaporPressure), "psia"},
		{"enthalpy", fmt.Sprintf("%.4f", s.Enthalpy), "Btu/lb"},
		{"specific-volume", fmt.Sprintf("%.4f", s.SpecificVolume), "ft³/lb"},
	})
}
