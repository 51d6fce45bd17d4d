// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flow

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logger is the package-wide structured logger, styled after the teacher
// package's defaultLogger in pipe.go: a plain logrus.Logger writing text
// to stderr at warn level unless the embedding application reassigns it.
var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
}

// SetLogger replaces the package logger. Passing nil is a no-op so that
// callers can freely forward a possibly-unset *logrus.Logger.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}
