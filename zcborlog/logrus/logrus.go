// Package logrus adapts a *logrus.Entry to zcbor.Logger for decode/encode
// tracing.
package logrus

import (
	"github.com/sirupsen/logrus"

	"zcbor.dev/go"
)

// Logger adapts E to [zcbor.Logger], emitting trace output at debug level.
type Logger struct{ E *logrus.Entry }

// Trace implements [zcbor.Logger].
func (l Logger) Trace(msg string, f zcbor.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
