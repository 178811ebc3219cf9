package zcbor

import "strconv"

// Fields is a minimal structured field map for trace logs, matching the
// shape expected by the zcborlog/zap and zcborlog/logrus adapters.
type Fields map[string]any

// Logger is a tiny leveled logger used for optional decode/encode tracing: a
// per-step dump of the cursor position, byte under the cursor, and
// remaining element count. Provide an adapter around whatever logging stack
// the embedding application already uses via WithLogger. The default,
// [NopLogger], discards every trace; passing nil to WithLogger selects it
// too.
type Logger interface {
	Trace(msg string, f Fields)
}

// NopLogger is a [Logger] that discards everything. It is the zero-cost
// default used by [State] and [EncodeState] when no logger is configured.
type NopLogger struct{}

// Trace implements [Logger].
func (NopLogger) Trace(string, Fields) {}

// trace emits a single step trace: bytes remaining, the byte under the
// cursor, and the current element count.
func (s *State) trace(where string) {
	if s.logger == nil {
		return
	}
	var b byte
	if s.offset < len(s.payload) {
		b = s.payload[s.offset]
	}
	s.logger.Trace(where, Fields{
		"bytes_left": len(s.payload) - s.offset,
		"byte":       "0x" + strconv.FormatUint(uint64(b), 16),
		"elem_count": s.elemCount,
	})
}

func (s *EncodeState) trace(where string) {
	if s.logger == nil {
		return
	}
	s.logger.Trace(where, Fields{
		"bytes_written": s.offset,
		"elem_count":    s.elemCount,
	})
}
