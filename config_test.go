// Copyright (C) 2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exporter.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func parseFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return flags
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
listen_address = ":9100"
altitude_feet = 5000.0
log_level = "debug"
sensors = ["SHT35,bus=1", "BME280"]
`)
	cfg, err := loadConfig(parseFlags(t, "--config.file", path))
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	want := &Config{
		ListenAddress: ":9100",
		TelemetryPath: "/metrics",
		AltitudeFeet:  5000,
		LogLevel:      "debug",
		Sensors:       []string{"SHT35,bus=1", "BME280"},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, want)
	}

	atm, err := cfg.Atmosphere()
	if err != nil {
		t.Fatalf("Atmosphere() unexpected error: %v", err)
	}
	if math.Abs(atm.Pressure()-12.2278) > 1e-4 {
		t.Errorf("Atmosphere() = %s, want 12.2278 psia", atm)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	path := writeConfig(t, `
listen_address = ":9100"
pressure_psia = 14.2
sensors = ["SHT35"]
`)
	cfg, err := loadConfig(parseFlags(t,
		"--config.file", path, "--pressure.psia=13.5", "--log.level=warn", "BMP280,address=0x77"))
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	if cfg.ListenAddress != ":9100" {
		t.Errorf("ListenAddress = %s, want :9100", cfg.ListenAddress)
	}
	if cfg.PressurePsia != 13.5 {
		t.Errorf("PressurePsia = %v, want 13.5", cfg.PressurePsia)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
	if !reflect.DeepEqual(cfg.Sensors, []string{"BMP280,address=0x77"}) {
		t.Errorf("Sensors = %v, want [BMP280,address=0x77]", cfg.Sensors)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := loadConfig(parseFlags(t))
	if err != nil {
		t.Fatalf("loadConfig() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, NewConfig()) {
		t.Errorf("loadConfig() = %+v, want %+v", cfg, NewConfig())
	}
	atm, err := cfg.Atmosphere()
	if err != nil {
		t.Fatalf("Atmosphere() unexpected error: %v", err)
	}
	if atm.Pressure() != 14.696 {
		t.Errorf("Atmosphere() = %s, want 14.696 psia", atm)
	}
}

func TestLoadConfigFailure(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantedErr string
	}{
		{"unknown key", "pressure = 14.7\n", "unknown key 'pressure'"},
		{"wrong type", "altitude_feet = \"high\"\n", "failed to read config file"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := loadConfig(parseFlags(t, "--config.file", writeConfig(t, test.content)))
			if err == nil || !strings.Contains(err.Error(), test.wantedErr) {
				t.Errorf("loadConfig() error = %v, want %s", err, test.wantedErr)
			}
		})
	}
}

func TestInvalidAtmosphere(t *testing.T) {
	for _, cfg := range []Config{{PressurePsia: -1}, {AltitudeFeet: 50000}} {
		if _, err := cfg.Atmosphere(); err == nil {
			t.Errorf("Atmosphere() for %+v succeeded, want error", cfg)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	if err := setupLogging("verbose", ""); err == nil {
		t.Errorf("setupLogging() with invalid level succeeded")
	}
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
	})
	if err := setupLogging("info", filepath.Join(t.TempDir(), "exporter.log")); err != nil {
		t.Errorf("setupLogging() unexpected error: %v", err)
	}
}
