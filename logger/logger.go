// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.


package logger

import (
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli/v2"
)

const defaultLogFormat = "%{color}%{time:15:04:05.000} %{module} %{level:.4s}%{color:reset}: %{message}"

// LogLevelFlag defines the verbosity of the log output.
var LogLevelFlag = cli.StringFlag{
	Name:    "log",
	Aliases: []string{"l"},
	Usage:   "Level of the logging of the app action (\"critical\", \"error\", \"warning\", \"notice\", \"info\", \"debug\"; default: INFO)",
	Value:   "info",
}

// Logger is a wrapper interface for logging library
type Logger interface {
	// Fatal is equivalent to l.Critical(fmt.Sprint()) followed by a call to os.Exit(1).
	Fatal(args ...interface{})

	// Fatalf is equivalent to l.Critical followed by a call to os.Exit(1).
	Fatalf(format string, args ...interface{})

	// Panic is equivalent to l.Critical(fmt.Sprint()) followed by a call to panic().
	Panic(args ...interface{})

	// Panicf is equivalent to l.Critical followed by a call to panic().
	Panicf(format string, args ...interface{})

	// Critical logs a message using CRITICAL as log level.
	Critical(args ...interface{})

	// Criticalf logs a message using CRITICAL as log level.
	Criticalf(format string, args ...interface{})

	// Error logs a message using ERROR as log level.
	Error(args ...interface{})

	// Errorf logs a message using ERROR as log level.
	Errorf(format string, args ...interface{})

	// Warning logs a message using WARNING as log level.
	Warning(args ...interface{})

	// Warningf logs a message using WARNING as log level.
	Warningf(format string, args ...interface{})

	// Notice logs a message using NOTICE as log level.
	Notice(args ...interface{})

	// Noticef logs a message using NOTICE as log level.
	Noticef(format string, args ...interface{})

	// Info logs a message using INFO as log level.
	Info(args ...interface{})

	// Infof logs a message using INFO as log level.
	Infof(format string, args ...interface{})

	// Debug logs a message using DEBUG as log level.
	Debug(args ...interface{})

	// Debugf logs a message using DEBUG as log level.
	Debugf(format string, args ...interface{})

	// IsEnabledFor returns true if the logger is enabled for the given level.
	IsEnabledFor(level logging.Level) bool
}

// NewLogger provides a new instance of the Logger based on context flags.
// An unknown level falls back to INFO.
func NewLogger(level string, module string) Logger {
	backend := logging.NewLogBackend(os.Stdout, "", 0)

	format := logging.MustStringFormatter(defaultLogFormat)
	formatter := logging.NewBackendFormatter(backend, format)

	leveledBackend := logging.AddModuleLevel(formatter)
	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.INFO
	}
	leveledBackend.SetLevel(logLevel, module)
	// IsEnabledFor consults the default backend
	logging.SetLevel(logLevel, module)

	log := logging.MustGetLogger(module)
	log.SetBackend(leveledBackend)
	if err != nil {
		log.Warningf("unknown log level %q; using INFO", level)
	}
	return log
}

// ParseTime splits an elapsed time into hours, minutes and seconds.
func ParseTime(elapsed time.Duration) (uint32, uint32, uint32) {
	var (
		hours   = uint32(elapsed.Hours())
		minutes = uint32(elapsed.Minutes()) % 60
		seconds = uint32(elapsed.Seconds()) % 60
	)
	return hours, minutes, seconds
}
