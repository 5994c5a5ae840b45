// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"math"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/bdrung/psychrometrics/psychro"
)

type sensorCollector struct {
	Sensor          Sensor
	Atmosphere      psychro.Atmosphere
	Errors          *prometheus.CounterVec
	Up              *prometheus.Desc
	TemperatureC    *prometheus.Desc
	HumidityRH      *prometheus.Desc
	HumidityGram    *prometheus.Desc
	PressurePa      *prometheus.Desc
	DewPointC       *prometheus.Desc
	WetBulbC        *prometheus.Desc
	HumidityRatio   *prometheus.Desc
	VaporPressurePa *prometheus.Desc
	Enthalpy        *prometheus.Desc
	SpecificVolume  *prometheus.Desc
	RawTemperatureC *prometheus.Desc
	RawHumidityRH   *prometheus.Desc
	RawHumidityGram *prometheus.Desc
	TempOffset      float64
	HumidityOffset  float64
}

func newPsychrometricErrors() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sensor_psychrometric_errors_total",
			Help: "Number of failed psychrometric calculations by error kind.",
		},
		[]string{"kind"},
	)
}

func NewSensorCollector(
	s Sensor,
	atm psychro.Atmosphere,
	errorCounter *prometheus.CounterVec,
	tempOffset float64,
	humidityOffset float64,
) *sensorCollector {
	labels := s.Labels()
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(name, help, nil, labels)
	}
	return &sensorCollector{
		Sensor:          s,
		Atmosphere:      atm,
		Errors:          errorCounter,
		TemperatureC:    desc("sensor_temperature_celsius", "Temperature in Celsius"),
		HumidityRH:      desc("sensor_humidity_percent", "Relative humidity in percent"),
		HumidityGram:    desc("sensor_humidity_grams_per_cubic_meter", "Absolute humidity in gram / cubic meter"),
		PressurePa:      desc("sensor_pressure_pascal", "Atmospheric pressure in Pascal"),
		DewPointC:       desc("sensor_dew_point_celsius", "Dew point temperature in Celsius"),
		WetBulbC:        desc("sensor_wet_bulb_celsius", "Thermodynamic wet bulb temperature in Celsius"),
		HumidityRatio:   desc("sensor_humidity_ratio", "Mass of water vapor per mass of dry air"),
		VaporPressurePa: desc("sensor_vapor_pressure_pascal", "Partial pressure of water vapor in Pascal"),
		Enthalpy:        desc("sensor_enthalpy_btu_per_pound", "Moist air enthalpy in Btu / pound of dry air"),
		SpecificVolume:  desc("sensor_specific_volume_cubic_feet_per_pound", "Moist air specific volume in cubic feet / pound of dry air"),
		Up:              desc("sensor_up", "Value is 1 if reading sensor date was successful, 0 otherwise."),
		RawTemperatureC: desc("sensor_raw_temperature_celsius", "Uncorrected temperature in Celsius"),
		RawHumidityRH:   desc("sensor_raw_humidity_percent", "Uncorrected relative humidity in percent"),
		RawHumidityGram: desc("sensor_raw_humidity_grams_per_cubic_meter", "Uncorrected absolute humidity in gram / cubic meter"),
		TempOffset:      tempOffset,
		HumidityOffset:  humidityOffset,
	}
}

// countError records a failed psychrometric calculation.
func (collector *sensorCollector) countError(what string, err error) {
	logrus.Warnf("%s: %v", what, err)
	collector.Errors.WithLabelValues(psychro.KindOf(err).String()).Inc()
}

// atmosphere returns the atmosphere measured by the sensor, falling back to
// the site atmosphere.
func (collector *sensorCollector) atmosphere(readings Readings) psychro.Atmosphere {
	if readings.pressure == nil {
		return collector.Atmosphere
	}
	atm, err := psychro.NewAtmosphere(pascalToPsia(*readings.pressure))
	if err != nil {
		collector.countError("pressure reading", err)
		return collector.Atmosphere
	}
	return atm
}

func (collector *sensorCollector) Collect(ch chan<- prometheus.Metric) {
	gauge := func(desc *prometheus.Desc, value float64) {
		ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, value)
	}

	readings, err := collector.Sensor.Poll()
	if err != nil {
		logrus.Print(err)
		gauge(collector.Up, 0.0)
	} else {
		gauge(collector.Up, 1)
	}
	if readings.temperature != nil {
		gauge(collector.TemperatureC, *readings.temperature+collector.TempOffset)
		gauge(collector.RawTemperatureC, *readings.temperature)
	}
	if readings.pressure != nil {
		gauge(collector.PressurePa, *readings.pressure)
	}
	if readings.humidity == nil {
		return
	}
	humidity := min(max(*readings.humidity+collector.HumidityOffset, 0), 100)
	gauge(collector.HumidityRH, humidity)
	gauge(collector.RawHumidityRH, *readings.humidity)
	if readings.temperature == nil {
		return
	}

	atm := collector.atmosphere(readings)
	temperature := *readings.temperature + collector.TempOffset
	absoluteHumidity, err := Relative2AbsoluteHumidity(atm, humidity, temperature)
	if err != nil {
		collector.countError("absolute humidity", err)
	} else {
		gauge(collector.HumidityGram, round64(absoluteHumidity, 2))
	}
	rawHumidity := min(max(*readings.humidity, 0), 100)
	rawAbsoluteHumidity, err := Relative2AbsoluteHumidity(atm, rawHumidity, *readings.temperature)
	if err != nil {
		collector.countError("raw absolute humidity", err)
	} else {
		gauge(collector.RawHumidityGram, round64(rawAbsoluteHumidity, 2))
	}

	state, err := atm.StateFromTempRh(celsiusToFahrenheit(temperature), humidity/100)
	if err != nil {
		collector.countError("psychrometric state", err)
		return
	}
	if state.DewPoint != nil {
		gauge(collector.DewPointC, round64(fahrenheitToCelsius(*state.DewPoint), 2))
	}
	gauge(collector.WetBulbC, round64(fahrenheitToCelsius(state.WetBulb), 2))
	gauge(collector.HumidityRatio, round64(state.HumidityRatio, 6))
	gauge(collector.VaporPressurePa, round64(psiaToPascal(state.VaporPressure), 1))
	gauge(collector.Enthalpy, round64(state.Enthalpy, 3))
	gauge(collector.SpecificVolume, round64(state.SpecificVolume, 4))
}

func (collector *sensorCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.TemperatureC
	ch <- collector.HumidityRH
	ch <- collector.HumidityGram
	ch <- collector.PressurePa
	ch <- collector.DewPointC
	ch <- collector.WetBulbC
	ch <- collector.HumidityRatio
	ch <- collector.VaporPressurePa
	ch <- collector.Enthalpy
	ch <- collector.SpecificVolume
	ch <- collector.Up
	ch <- collector.RawTemperatureC
	ch <- collector.RawHumidityRH
	ch <- collector.RawHumidityGram
}

func round64(value float64, precision int) float64 {
	return math.Round(value*math.Pow10(precision)) / math.Pow10(precision)
}

func rounded(value float64, precision int) *float64 {
	r := round64(value, precision)
	return &r
}

func main() {
	registerFlags(pflag.CommandLine)
	pflag.Parse()
	cfg, err := loadConfig(pflag.CommandLine)
	if err != nil {
		logrus.Fatal(err)
	}
	if err := setupLogging(cfg.LogLevel, cfg.LogFile); err != nil {
		logrus.Fatal(err)
	}
	sensors, err := parseSensors(cfg.Sensors)
	if err != nil {
		logrus.Fatal(err)
	}
	atm, err := cfg.Atmosphere()
	if err != nil {
		logrus.Fatal(err)
	}
	logrus.Infof("Site atmosphere: %s (%.0f Pa)", atm, psiaToPascal(atm.Pressure()))

	errorCounter := newPsychrometricErrors()
	prometheus.MustRegister(errorCounter)
	for _, flags := range sensors {
		sensor, err := flags.NewSensor()
		if err != nil {
			logrus.Fatal(err)
		}
		collector := NewSensorCollector(sensor, atm, errorCounter, flags.TempOffset, flags.HumidityOffset)
		prometheus.MustRegister(collector)
	}
	prometheus.MustRegister(versioncollector.NewCollector("sensor_exporter"))

	logrus.Infof(
		"Serving Prometheus sensor exporter on %s%s - for example http://localhost%s%s",
		cfg.ListenAddress,
		cfg.TelemetryPath,
		cfg.ListenAddress,
		cfg.TelemetryPath,
	)
	http.Handle(cfg.TelemetryPath, promhttp.Handler())
	logrus.Fatal(http.ListenAndServe(cfg.ListenAddress, nil))
}
