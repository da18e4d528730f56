// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

// Package logadapter lets a waypost.Router log through a third-party logging
// package instead of the built-in default, by satisfying waypost.Logger.
package logadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/go-waypost/waypost"
)

// Logrus adapts a *logrus.Logger to waypost.Logger, mirroring the teacher's
// own pattern of plugging logrus in behind the framework's Logger interface
// (example/logrus) rather than hardcoding it as the default.
type Logrus struct {
	log   *logrus.Logger
	level waypost.LogLevel
}

// NewLogrus wraps log, an already-configured *logrus.Logger, for use with
// waypost.WithLogger.
func NewLogrus(log *logrus.Logger) *Logrus {
	return &Logrus{log: log, level: waypost.LogDebug}
}

func (l *Logrus) entry(level waypost.LogLevel) *logrus.Entry {
	return l.log.WithField("level", level.String())
}

func logrusLevel(level waypost.LogLevel) logrus.Level {
	switch {
	case level <= waypost.LogCrit:
		return logrus.FatalLevel
	case level == waypost.LogErr:
		return logrus.ErrorLevel
	case level == waypost.LogWarn:
		return logrus.WarnLevel
	case level == waypost.LogNotice || level == waypost.LogInfo:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Print logs v at level, analogous to log.Print.
func (l *Logrus) Print(level waypost.LogLevel, v ...interface{}) {
	if level > l.level {
		return
	}
	l.entry(level).Log(logrusLevel(level), v...)
}

// Printf logs a formatted message at level, analogous to log.Printf.
func (l *Logrus) Printf(level waypost.LogLevel, format string, v ...interface{}) {
	if level > l.level {
		return
	}
	l.entry(level).Logf(logrusLevel(level), format, v...)
}

// Println logs v at level, analogous to log.Println.
func (l *Logrus) Println(level waypost.LogLevel, v ...interface{}) {
	if level > l.level {
		return
	}
	l.entry(level).Log(logrusLevel(level), v...)
}

// SetLevel sets the minimum level a log event must reach to be emitted.
func (l *Logrus) SetLevel(level waypost.LogLevel) {
	l.level = level
}
