// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"github.com/bdrung/psychrometrics/psychro"
)

// Config is the exporter configuration. It is read from an optional TOML
// file and overridden by explicitly set command line flags.
type Config struct {
	ListenAddress string   `toml:"listen_address"`
	TelemetryPath string   `toml:"telemetry_path"`
	PressurePsia  float64  `toml:"pressure_psia"`
	AltitudeFeet  float64  `toml:"altitude_feet"`
	LogLevel      string   `toml:"log_level"`
	LogFile       string   `toml:"log_file"`
	Sensors       []string `toml:"sensors"`
}

func NewConfig() *Config {
	return &Config{
		ListenAddress: ":9775",
		TelemetryPath: "/metrics",
		LogLevel:      "info",
	}
}

// Load reads the TOML configuration file at path. Keys missing from the
// file keep their current value.
func (c *Config) Load(path string) error {
	meta, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config file '%s': %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key '%s' in config file '%s'", undecoded[0], path)
	}
	return nil
}

func registerFlags(flags *pflag.FlagSet) {
	defaults := NewConfig()
	flags.String("web.listen-address", defaults.ListenAddress,
		"Address on which to expose metrics and web interface.")
	flags.String("web.telemetry-path", defaults.TelemetryPath, "Path under which to expose metrics.")
	flags.String("config.file", "", "Path to a TOML configuration file.")
	flags.Float64("pressure.psia", 0, "Atmospheric pressure at the site in psia. Takes precedence over altitude.")
	flags.Float64("altitude.feet", 0, "Altitude of the site in feet above sea level.")
	flags.String("log.level", defaults.LogLevel, "Log level (debug, info, warn, error).")
	flags.String("log.file", "", "Additionally write the log to this file, rotated at 10 MB.")
}

// ApplyFlags overrides the configuration with the flags set on the command
// line. Positional arguments replace the configured sensors.
func (c *Config) ApplyFlags(flags *pflag.FlagSet) error {
	stringFlags := map[string]*string{
		"web.listen-address": &c.ListenAddress,
		"web.telemetry-path": &c.TelemetryPath,
		"log.level":          &c.LogLevel,
		"log.file":           &c.LogFile,
	}
	for name, field := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetString(name)
		if err != nil {
			return err
		}
		*field = value
	}

	floatFlags := map[string]*float64{
		"pressure.psia": &c.PressurePsia,
		"altitude.feet": &c.AltitudeFeet,
	}
	for name, field := range floatFlags {
		if !flags.Changed(name) {
			continue
		}
		value, err := flags.GetFloat64(name)
		if err != nil {
			return err
		}
		*field = value
	}

	if flags.NArg() > 0 {
		c.Sensors = flags.Args()
	}
	return nil
}

// Atmosphere returns the site atmosphere used for sensors without a
// pressure reading.
func (c *Config) Atmosphere() (psychro.Atmosphere, error) {
	if c.PressurePsia != 0 {
		return psychro.NewAtmosphere(c.PressurePsia)
	}
	return psychro.AtmosphereAtAltitude(c.AltitudeFeet)
}

// loadConfig builds the configuration from the parsed command line flags.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	cfg := NewConfig()
	path, err := flags.GetString("config.file")
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyFlags(flags); err != nil {
		return nil, err
	}
	return cfg, nil
}
