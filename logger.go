package fsm

import "github.com/sirupsen/logrus"

// Logger is the diagnostic sink for dispatch misuse. The engine emits a
// single class of warning through it: a command issued from inside a
// lifecycle handler. It is deliberately not a structured logging surface.
type Logger interface {
	Warnf(format string, args ...any)
}

func defaultLogger() Logger { return logrus.StandardLogger() }
