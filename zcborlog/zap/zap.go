// Package zap adapts a *zap.Logger to zcbor.Logger for decode/encode
// tracing.
package zap

import (
	"go.uber.org/zap"

	"zcbor.dev/go"
)

// Logger adapts L to [zcbor.Logger]. Trace output is emitted at debug level,
// since a step-by-step cursor trace is far too noisy for anything else.
type Logger struct{ L *zap.Logger }

// Trace implements [zcbor.Logger].
func (z Logger) Trace(msg string, f zcbor.Fields) { z.L.Debug(msg, zf(f)...) }

func zf(f zcbor.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
