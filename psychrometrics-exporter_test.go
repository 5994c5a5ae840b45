// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bdrung/psychrometrics/psychro"
)

func floatptr(v float64) *float64 {
	return &v
}

type fakeSensor struct {
	readings Readings
	err      error
}

func (s fakeSensor) Poll() (Readings, error) {
	return s.readings, s.err
}

func (s fakeSensor) Labels() prometheus.Labels {
	return prometheus.Labels{"model": "fake"}
}

// gather collects the gauge values of the collector by metric name.
func gather(t *testing.T, collector prometheus.Collector) map[string]float64 {
	t.Helper()
	registry := prometheus.NewPedanticRegistry()
	registry.MustRegister(collector)
	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("Gather() failed: %v", err)
	}
	values := make(map[string]float64)
	for _, family := range families {
		values[family.GetName()] = family.GetMetric()[0].GetGauge().GetValue()
	}
	return values
}

func TestRound64(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		precision int
		want      float64
	}{
		{"round up", 3.14159, 2, 3.14},
		{"round down", 2.71828, 2, 2.72},
		{"zero precision", 2.71828, 0, 3},
		{"negative number", -1.2345, 2, -1.23},
		{"no rounding needed", 5.0, 2, 5.0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := round64(test.value, test.precision)
			if got != test.want {
				t.Errorf("round64(%v, %d) = %v, want %v", test.value, test.precision, got, test.want)
			}
		})
	}
}

func TestCollect(t *testing.T) {
	sensor := fakeSensor{readings: Readings{temperature: floatptr(24), humidity: floatptr(50)}}
	collector := NewSensorCollector(sensor, psychro.StandardAtmosphere(), newPsychrometricErrors(), 0, 0)

	if count := testutil.CollectAndCount(collector); count != 13 {
		t.Errorf("Collect() returned %d metrics, want 13", count)
	}

	tests := []struct {
		name      string
		want      float64
		tolerance float64
	}{
		{"sensor_up", 1, 0},
		{"sensor_temperature_celsius", 24, 0},
		{"sensor_humidity_percent", 50, 0},
		{"sensor_dew_point_celsius", 12.95, 0.01},
		{"sensor_wet_bulb_celsius", 17.07, 0.01},
		{"sensor_humidity_ratio", 0.009298, 0.000002},
		{"sensor_vapor_pressure_pascal", 1492.6, 0.2},
		{"sensor_humidity_grams_per_cubic_meter", 10.9, 0.1},
	}
	values := gather(t, collector)
	for _, test := range tests {
		got, ok := values[test.name]
		if !ok || math.Abs(got-test.want) > test.tolerance {
			t.Errorf("%s = %v (found: %t), want %v", test.name, got, ok, test.want)
		}
	}
}

func TestCollectClampsHumidity(t *testing.T) {
	sensor := fakeSensor{readings: Readings{temperature: floatptr(20), humidity: floatptr(98)}}
	collector := NewSensorCollector(sensor, psychro.StandardAtmosphere(), newPsychrometricErrors(), -0.5, 5)

	values := gather(t, collector)
	if values["sensor_humidity_percent"] != 100 {
		t.Errorf("sensor_humidity_percent = %v, want 100", values["sensor_humidity_percent"])
	}
	if values["sensor_raw_humidity_percent"] != 98 {
		t.Errorf("sensor_raw_humidity_percent = %v, want 98", values["sensor_raw_humidity_percent"])
	}
	if values["sensor_temperature_celsius"] != 19.5 {
		t.Errorf("sensor_temperature_celsius = %v, want 19.5", values["sensor_temperature_celsius"])
	}
	if math.Abs(values["sensor_dew_point_celsius"]-19.5) > 0.01 {
		t.Errorf("sensor_dew_point_celsius = %v, want 19.5", values["sensor_dew_point_celsius"])
	}
}

func TestCollectUsesSensorPressure(t *testing.T) {
	readings := Readings{temperature: floatptr(24), humidity: floatptr(50), pressure: floatptr(84000)}
	collector := NewSensorCollector(fakeSensor{readings: readings}, psychro.StandardAtmosphere(), newPsychrometricErrors(), 0, 0)

	values := gather(t, collector)
	if values["sensor_pressure_pascal"] != 84000 {
		t.Errorf("sensor_pressure_pascal = %v, want 84000", values["sensor_pressure_pascal"])
	}
	if got := values["sensor_humidity_ratio"]; math.Abs(got-0.011251) > 0.000002 {
		t.Errorf("sensor_humidity_ratio = %v, want 0.011251", got)
	}
}

func TestCollectCountsErrors(t *testing.T) {
	errorCounter := newPsychrometricErrors()
	sensor := fakeSensor{readings: Readings{temperature: floatptr(-30), humidity: floatptr(60)}}
	collector := NewSensorCollector(sensor, psychro.StandardAtmosphere(), errorCounter, 0, 0)

	values := gather(t, collector)
	if _, ok := values["sensor_dew_point_celsius"]; ok {
		t.Errorf("sensor_dew_point_celsius exported for temperature outside the supported range")
	}
	if got := testutil.ToFloat64(errorCounter.WithLabelValues("invalid_input")); got != 1 {
		t.Errorf("invalid_input errors = %v, want 1", got)
	}
}

func TestCollectPollFailure(t *testing.T) {
	sensor := fakeSensor{err: errors.New("i2c: remote I/O error")}
	collector := NewSensorCollector(sensor, psychro.StandardAtmosphere(), newPsychrometricErrors(), 0, 0)

	if count := testutil.CollectAndCount(collector); count != 1 {
		t.Errorf("Collect() returned %d metrics, want 1", count)
	}
	if got := gather(t, collector)["sensor_up"]; got != 0 {
		t.Errorf("sensor_up = %v, want 0", got)
	}
}
