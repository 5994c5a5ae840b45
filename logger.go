// Copyright (C) 2021-2026, Benjamin Drung <bdrung@posteo.de>
// SPDX-License-Identifier: ISC

package main

import (
	"io"
	"os"

	logger "github.com/d2r2/go-logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var lg = logger.NewPackageLogger("sensor", logger.InfoLevel)

// driverPackages are the d2r2 package loggers of the I2C sensor drivers.
var driverPackages = []string{"bsbmp", "i2c", "sht3x", "sensor"}

func driverLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.DebugLevel
	case level >= logrus.InfoLevel:
		return logger.InfoLevel
	case level >= logrus.WarnLevel:
		return logger.WarnLevel
	default:
		return logger.ErrorLevel
	}
}

// setupLogging sets the log level of logrus and the sensor drivers and
// additionally writes the log to a rotated file if logFile is set.
func setupLogging(level string, logFile string) error {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsedLevel)
	for _, name := range driverPackages {
		logger.ChangePackageLogLevel(name, driverLogLevel(parsedLevel))
	}

	if logFile == "" {
		return nil
	}
	fileLogger := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     3,
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, fileLogger))
	return nil
}
