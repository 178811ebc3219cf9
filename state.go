package zcbor

// LargeElemCount is the sentinel element count assigned to indefinite-length
// containers, standing in for "unknown, but large enough that no real
// schema will legitimately exhaust it." It deliberately leaves headroom
// below the uint32 range so that incrementing it (e.g. for the "tagged item
// still counts" bookkeeping) never wraps.
const LargeElemCount uint32 = 0xFFFFFF00

// Option configures a [State] or [EncodeState] at construction time. Options
// are resolved once, in [NewState] or [NewEncodeState]; nothing in this
// package mutates them afterward. Functional options replace compile-time
// policy constants so a single binary can serve schemas with different
// canonical/error-handling requirements.
type Option func(*options)

type options struct {
	canonical   bool
	stopOnError bool
	logger      Logger
}

// WithCanonical selects canonical (deterministic, shortest-form-head)
// encoding. It has no effect on decoding, which always accepts both
// canonical and non-canonical (indefinite-length) input. The default is
// canonical encoding.
func WithCanonical(canonical bool) Option {
	return func(o *options) { o.canonical = canonical }
}

// WithStopOnError latches the first error encountered on a [State] or
// [EncodeState]: once set, every subsequent decode/encode call short-circuits
// and returns that same error without touching the payload. This avoids the
// cost of continuing to attempt decodes after the structure is already known
// to be invalid. Code that wants to probe several alternatives (as
// [MultiDecode] and the union combinators do) must use an error scope; see
// [State.ErrorScope].
func WithStopOnError(stop bool) Option {
	return func(o *options) { o.stopOnError = stop }
}

// WithLogger installs a trace [Logger]. The default is [NopLogger], which
// disables tracing.
func WithLogger(l Logger) Option {
	return func(o *options) { o.logger = l }
}

func resolve(opts []Option) options {
	o := options{canonical: true, logger: NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = NopLogger{}
	}
	return o
}

// snapshot is a saved copy of the mutable parts of a [State], used both for
// the single-slot automatic rollback every decode function performs on
// failure and for the caller-visible backup stack ([State.NewBackup],
// [State.ProcessBackup]).
type snapshot struct {
	offset                int
	end                   int
	elemCount             uint32
	indefiniteLengthArray bool

	// headStart/headReserved are only meaningful for encode-side container
	// backups: the offset at which a placeholder container head was written
	// and the total bytes (first byte + trailing length bytes) reserved for
	// it, so the container-end patch-up in container.go can shrink it to the
	// minimal canonical width.
	headStart    int
	headReserved int
}

// State is the decode-side cursor: a borrowed, bounds-checked view over a
// byte slice plus the element-count and backup bookkeeping the decode
// functions in this package share. The zero value is not usable; construct
// with [NewState].
//
// A State is owned by exactly one decode call tree for the duration of that
// call; it is not safe for concurrent use, and strings
// borrowed from it (see [String]) are invalidated once the backing slice is
// reused or discarded.
type State struct {
	payload   []byte
	offset    int // first unconsumed byte
	end       int // exclusive end of the current logical scope; <= len(payload)
	elemCount uint32

	indefiniteLengthArray bool

	// bak is the single-slot backup used for automatic per-call rollback. It
	// is saved at the start of every decode attempt and restored on failure.
	bak snapshot

	// backups is the explicit, caller-managed backup stack. It is provided
	// by the caller so that schema-generated code can size it to the
	// schema's maximum nesting + speculation depth up front, with no
	// allocation during decoding.
	backups    []snapshot
	backupTop  int

	stopOnError bool
	err         *Error // last recorded error; first-write-wins and latched under stopOnError

	logger Logger
}

// NewState constructs a decode [State] over payload. maxBackups is the
// caller-chosen capacity of the backup stack: the schema's maximum nesting
// depth plus its maximum concurrent speculation depth (e.g. the deepest
// union-of-unions). Exceeding it at decode time surfaces as
// [ErrNoBackupMem], discovered lazily rather than at construction time.
func NewState(payload []byte, maxBackups int, opts ...Option) *State {
	o := resolve(opts)
	return &State{
		payload:   payload,
		offset:    0,
		end:       len(payload),
		elemCount: 1, // a single top-level data item is expected
		backups:   make([]snapshot, maxBackups),

		stopOnError: o.stopOnError,
		logger:      o.logger,
	}
}

// Remaining reports the number of unconsumed bytes in the current logical
// scope.
func (s *State) Remaining() int { return s.end - s.offset }

// AtEnd reports whether the cursor has consumed every byte of the outermost
// payload. Schema entry points call this after a successful top-level decode
// to detect [ErrPayloadNotConsumed].
func (s *State) AtEnd() bool { return s.offset >= len(s.payload) }

// Offset returns the current byte offset into the original payload slice.
func (s *State) Offset() int { return s.offset }

// StickyError returns the recorded error: under [WithStopOnError], the first
// failure, which stays latched; otherwise, the most recent failure. It
// returns nil if no failure has been recorded (failures inside an
// [State.ErrorScope] are not kept once the scope ends).
func (s *State) StickyError() error {
	if s.err != nil {
		return s.err
	}
	return nil
}

// save captures the pre-call snapshot used for automatic rollback.
func (s *State) save() {
	s.bak = snapshot{offset: s.offset, end: s.end, elemCount: s.elemCount, indefiniteLengthArray: s.indefiniteLengthArray}
}

// restore undoes everything since the last save.
func (s *State) restore() {
	s.offset = s.bak.offset
	s.end = s.bak.end
	s.elemCount = s.bak.elemCount
	s.indefiniteLengthArray = s.bak.indefiniteLengthArray
}

// fail records err as the sticky error (first-write-wins while latched) and
// restores the cursor to the last save point. It always returns a non-nil
// *Error so call sites can write `return s.fail(...)`.
func (s *State) fail(kind Kind) *Error {
	e := newErr(s, kind)
	if s.stopOnError {
		if s.err == nil {
			s.err = e // first-write-wins once latched
		}
	} else {
		s.err = e // last-write-wins when not latched
	}
	s.restore()
	s.trace("fail:" + kind.String())
	return e
}

// Fail reports kind as a decode failure at the cursor's current position,
// exactly as a failure detected inside this package would: it latches the
// sticky error under [WithStopOnError] and rolls the cursor back to the last
// save point. Hand-written or generated schema code that detects its own
// validation failures (a value outside a schema-declared range, an enum
// value not among its choices) calls this instead of constructing an
// [Error] directly, so the failure participates in the same sticky-error
// and rollback machinery as every decode function in this package.
func (s *State) Fail(kind Kind) *Error {
	return s.fail(kind)
}

// checkSticky short-circuits decode attempts once an error is latched under
// [WithStopOnError].
func (s *State) checkSticky() error {
	if s.stopOnError && s.err != nil {
		return s.err
	}
	return nil
}

// ErrorScope clears any latched sticky error for the duration of fn and
// unconditionally restores the prior error afterward, regardless of whether
// fn succeeded: a failed fn's error is reported to the caller but never
// becomes part of the lasting sticky state. Union decoding uses this to
// probe alternatives without letting an expected, non-fatal alternative
// failure latch and short-circuit every decode call that follows.
func (s *State) ErrorScope(fn func() error) error {
	saved := s.err
	s.err = nil
	err := fn()
	s.err = saved
	return err
}

// EncodeState is the encode-side counterpart of [State]. It tracks a
// write cursor into a caller-provided output buffer plus the same
// element-count and backup bookkeeping used for decoding, since canonical
// encoding of containers requires the same kind of speculative
// backtracking (emit placeholder header, encode body, patch header) that
// decoding needs for unions.
type EncodeState struct {
	buf       []byte
	offset    int // first unwritten byte
	elemCount uint32

	bak snapshot

	backups   []snapshot
	backupTop int

	canonical   bool
	stopOnError bool
	err         *Error

	logger Logger
}

// NewEncodeState constructs an [EncodeState] writing into buf. See [NewState]
// for the meaning of maxBackups.
func NewEncodeState(buf []byte, maxBackups int, opts ...Option) *EncodeState {
	o := resolve(opts)
	return &EncodeState{
		buf:         buf,
		elemCount:   1,
		backups:     make([]snapshot, maxBackups),
		canonical:   o.canonical,
		stopOnError: o.stopOnError,
		logger:      o.logger,
	}
}

// Written returns the number of bytes written so far.
func (e *EncodeState) Written() int { return e.offset }

// Bytes returns the portion of the output buffer written so far.
func (e *EncodeState) Bytes() []byte { return e.buf[:e.offset] }

func (e *EncodeState) save() {
	e.bak = snapshot{offset: e.offset, elemCount: e.elemCount}
}

func (e *EncodeState) restore() {
	e.offset = e.bak.offset
	e.elemCount = e.bak.elemCount
}

func (e *EncodeState) fail(kind Kind) *Error {
	err := &Error{Kind: kind, Offset: e.offset}
	if e.stopOnError {
		if e.err == nil {
			e.err = err
		}
	} else {
		e.err = err
	}
	e.restore()
	e.trace("fail:" + kind.String())
	return err
}

// Fail is the encode-side counterpart of [State.Fail].
func (e *EncodeState) Fail(kind Kind) *Error {
	return e.fail(kind)
}

func (e *EncodeState) checkSticky() error {
	if e.stopOnError && e.err != nil {
		return e.err
	}
	return nil
}
