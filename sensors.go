// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	bsbmp "github.com/d2r2/go-bsbmp"
	i2c "github.com/d2r2/go-i2c"
	sht3x "github.com/d2r2/go-sht3x"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type Readings struct {
	temperature *float64 // Celsius
	humidity    *float64 // percent
	pressure    *float64 // Pa
}

type Sensor interface {
	Poll() (Readings, error)
	Labels() prometheus.Labels
}

type BMPSensor struct {
	Address uint8
	Bus     int
	Model   string
	bmp     *bsbmp.BMP
	mutex   sync.Mutex
}

func NewBMPSensor(address uint8, bus int, model string, sensorType bsbmp.SensorType) (*BMPSensor, error) {
	logrus.Infof("New BMP sensor: %s,address=0x%x,bus=%d", model, address, bus)
	conn, err := i2c.NewI2C(address, bus)
	if err != nil {
		return nil, err
	}
	bmp, err := bsbmp.NewBMP(sensorType, conn)
	if err != nil {
		return nil, err
	}
	return &BMPSensor{Address: address, Bus: bus, Model: model, bmp: bmp}, nil
}

func (s *BMPSensor) Labels() prometheus.Labels {
	return prometheus.Labels{
		"address": fmt.Sprintf("0x%x", s.Address),
		"bus":     strconv.Itoa(s.Bus),
		"model":   s.Model,
	}
}

// Poll reads temperature, pressure and, on the BME280, relative humidity.
func (s *BMPSensor) Poll() (Readings, error) {
	var readings Readings

	s.mutex.Lock()
	defer s.mutex.Unlock()

	temp, err := s.bmp.ReadTemperatureC(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return readings, err
	}
	readings.temperature = rounded(float64(temp), 2)

	supported, rh, err := s.bmp.ReadHumidityRH(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return readings, err
	}
	if supported {
		readings.humidity = rounded(float64(rh), 2)
	}

	pressure, err := s.bmp.ReadPressurePa(bsbmp.ACCURACY_STANDARD)
	if err != nil {
		return readings, err
	}
	readings.pressure = rounded(float64(pressure), 0)

	lg.Debugf("%s: %.2f °C, %.2f %%, %.0f Pa", s.Model, temp, rh, pressure)
	return readings, nil
}

type SHT3xSensor struct {
	Address           uint8
	Bus               int
	Model             string
	I2C               *i2c.I2C
	SHT3X             sht3x.SHT3X
	mutex             sync.Mutex
	repeatability     sht3x.MeasureRepeatability
	repeatabilityName string
}

func NewSHT3xSensor(
	address uint8,
	bus int,
	model string,
	repeatability sht3x.MeasureRepeatability,
	repeatabilityName string,
) (*SHT3xSensor, error) {
	logrus.Infof("New SHT3x sensor: %s,address=0x%x,bus=%d,repeatability=%s",
		model, address, bus, repeatabilityName)
	conn, err := i2c.NewI2C(address, bus)
	if err != nil {
		return nil, err
	}
	return &SHT3xSensor{
		Address:           address,
		Bus:               bus,
		Model:             model,
		I2C:               conn,
		SHT3X:             *sht3x.NewSHT3X(),
		repeatability:     repeatability,
		repeatabilityName: repeatabilityName,
	}, nil
}

func (s *SHT3xSensor) Labels() prometheus.Labels {
	return prometheus.Labels{
		"address":       fmt.Sprintf("0x%x", s.Address),
		"bus":           strconv.Itoa(s.Bus),
		"model":         s.Model,
		"repeatability": s.repeatabilityName,
	}
}

func (s *SHT3xSensor) Poll() (Readings, error) {
	s.mutex.Lock()
	temp, rh, err := s.SHT3X.ReadTemperatureAndRelativeHumidity(s.I2C, s.repeatability)
	s.mutex.Unlock()
	if err != nil {
		return Readings{}, err
	}
	lg.Debugf("%s: %.2f °C, %.2f %%", s.Model, temp, rh)
	return Readings{
		temperature: rounded(float64(temp), 2),
		humidity:    rounded(float64(rh), 2),
	}, nil
}

// sensorModel describes how to open a supported sensor model.
type sensorModel struct {
	defaultAddress uint8
	open           func(s SensorFlags, address uint8, bus int) (Sensor, error)
}

func bmpModel(sensorType bsbmp.SensorType) sensorModel {
	return sensorModel{
		defaultAddress: 0x76,
		open: func(s SensorFlags, address uint8, bus int) (Sensor, error) {
			sensor, err := NewBMPSensor(address, bus, s.Model, sensorType)
			if err != nil {
				return nil, err
			}
			return sensor, nil
		},
	}
}

var sht3xModel = sensorModel{defaultAddress: 0x45, open: openSHT3x}

var sensorModels = map[string]sensorModel{
	"BME280": bmpModel(bsbmp.BME280),
	"BMP180": bmpModel(bsbmp.BMP180),
	"BMP280": bmpModel(bsbmp.BMP280),
	"BMP388": bmpModel(bsbmp.BMP388),
	"SHT30":  sht3xModel,
	"SHT31":  sht3xModel,
	"SHT35":  sht3xModel,
}

var repeatabilities = map[string]sht3x.MeasureRepeatability{
	"low":    sht3x.RepeatabilityLow,
	"medium": sht3x.RepeatabilityMedium,
	"high":   sht3x.RepeatabilityHigh,
}

func openSHT3x(s SensorFlags, address uint8, bus int) (Sensor, error) {
	name := s.Repeatability
	if name == "" {
		name = "high"
	}
	repeatability, ok := repeatabilities[name]
	if !ok {
		return nil, fmt.Errorf("Unknown repeatability: %s", name)
	}
	sensor, err := NewSHT3xSensor(address, bus, s.Model, repeatability, name)
	if err != nil {
		return nil, err
	}
	return sensor, nil
}

// SensorFlags is a parsed sensor option string like
// "SHT35,address=0x45,bus=1,repeatability=high,temp_offset=-0.5".
type SensorFlags struct {
	Model          string
	Address        *uint8
	Bus            *int
	Repeatability  string
	TempOffset     float64
	HumidityOffset float64
}

func parseSensorFlags(sensor string) (SensorFlags, error) {
	model, options, _ := strings.Cut(sensor, ",")
	flags := SensorFlags{Model: model}
	if options == "" {
		return flags, nil
	}
	for _, option := range strings.Split(options, ",") {
		key, value, _ := strings.Cut(option, "=")
		if err := flags.set(key, value); err != nil {
			return flags, err
		}
	}
	return flags, nil
}

func (s *SensorFlags) set(key, value string) error {
	switch key {
	case "address":
		address, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("Specified address '%s' is not an unsigned integer: %s", value, err)
		}
		s.Address = new(uint8)
		*s.Address = uint8(address)
	case "bus":
		bus, err := strconv.ParseInt(value, 0, 32)
		if err != nil {
			return fmt.Errorf("Specified bus '%s' is not an integer: %s", value, err)
		}
		s.Bus = new(int)
		*s.Bus = int(bus)
	case "repeatability":
		s.Repeatability = value
	case "temp_offset":
		offset, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Failed to parse temperature offset '%s': %s", value, err)
		}
		s.TempOffset = offset
	case "humidity_offset":
		offset, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Failed to parse humidity offset '%s': %s", value, err)
		}
		s.HumidityOffset = offset
	default:
		return fmt.Errorf("Unknown sensor option '%s'.", key)
	}
	return nil
}

// NewSensor opens the sensor, using the default address of the model and
// bus 0 unless specified.
func (s SensorFlags) NewSensor() (Sensor, error) {
	model, ok := sensorModels[s.Model]
	if !ok {
		return nil, fmt.Errorf("Invalid/Unsupported sensor model '%s'!", s.Model)
	}
	address := model.defaultAddress
	if s.Address != nil {
		address = *s.Address
	}
	bus := 0
	if s.Bus != nil {
		bus = *s.Bus
	}
	return model.open(s, address, bus)
}

func (s SensorFlags) String() string {
	var b strings.Builder
	b.WriteString(s.Model)
	if s.Address != nil {
		fmt.Fprintf(&b, ",address=0x%x", *s.Address)
	}
	if s.Bus != nil {
		fmt.Fprintf(&b, ",bus=%d", *s.Bus)
	}
	if s.Repeatability != "" {
		fmt.Fprintf(&b, ",repeatability=%s", s.Repeatability)
	}
	if s.TempOffset != 0.0 {
		fmt.Fprintf(&b, ",temp_offset=%g", s.TempOffset)
	}
	if s.HumidityOffset != 0.0 {
		fmt.Fprintf(&b, ",humidity_offset=%g", s.HumidityOffset)
	}
	return b.String()
}

func parseSensors(args []string) ([]SensorFlags, error) {
	sensors := make([]SensorFlags, len(args))
	for i, arg := range args {
		sensor, err := parseSensorFlags(arg)
		if err != nil {
			return nil, fmt.Errorf("sensor %d '%s': %w", i+1, arg, err)
		}
		sensors[i] = sensor
	}
	return sensors, nil
}
