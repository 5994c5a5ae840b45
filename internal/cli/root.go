// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

// Package cli implements the psychrocalc command line interface.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bdrung/psychrometrics/psychro"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Format   string  // "text" | "json" | "yaml"
	Pressure float64 // psia
	Altitude float64 // feet

	atmosphere psychro.Atmosphere
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for psychrocalc.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "psychrocalc",
		Short: "Psychrometric calculator",
		Long: `Compute moist air states and psychrometric chart lines.

Temperatures are given in °F, pressures in psia and relative humidity as a
fraction. The total pressure defaults to the standard atmosphere at sea level.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			atm, err := opts.resolveAtmosphere(cmd.Flags())
			if err != nil {
				return WrapExitError(ExitUsage, "invalid atmosphere", err)
			}
			opts.atmosphere = atm
			return nil
		},
	}

	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return WrapExitError(ExitUsage, "invalid flags", err)
	})

	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().Float64Var(&opts.Pressure, "pressure", psychro.StandardPressure, "total pressure in psia")
	cmd.PersistentFlags().Float64Var(&opts.Altitude, "altitude", 0, "altitude in feet, sets the pressure of the standard atmosphere")

	cmd.AddCommand(NewStateCommand(opts))
	cmd.AddCommand(NewIsolinesCommand(opts))
	cmd.AddCommand(NewChartCommand(opts))

	return cmd
}

func (o *RootOptions) resolveAtmosphere(flags *pflag.FlagSet) (psychro.Atmosphere, error) {
	pressureSet, altitudeSet := flags.Changed("pressure"), flags.Changed("altitude")
	switch {
	case pressureSet && altitudeSet:
		return psychro.Atmosphere{}, errors.New("--pressure and --altitude are mutually exclusive")
	case altitudeSet:
		return psychro.AtmosphereAtAltitude(o.Altitude)
	default:
		return psychro.NewAtmosphere(o.Pressure)
	}
}

// usageArgs turns an argument validation error into a usage error.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitUsage, "invalid arguments", err)
		}
		return nil
	}
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}
