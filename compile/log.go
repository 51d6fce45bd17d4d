// Copyright © 2020 Jonathan Whitaker <github@whitaker.io>.
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package compile

import (
	"os"

	"github.com/sirupsen/logrus"
)

// logger is the compile package's own structured logger, following the
// same defaultLogger-style package-level logrus.Logger as flow's log.go
// and the teacher's pipe.go. Instruction execution tracing (§7: "actor
// exceptions are propagated by the instruction wrappers after logging
// context") and the soft missing-state-at-load case both go through it.
var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: new(logrus.TextFormatter),
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.WarnLevel,
}

// SetLogger replaces the package logger. Passing nil is a no-op.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		logger = l
	}
}
