package zcbor

import "strconv"

// Kind identifies the class of a decode or encode failure. Kind values are
// stable and may be compared directly, but prefer [errors.Is] against the
// package-level sentinel errors below.
type Kind uint8

const (
	_ Kind = iota

	// KindNoBackupMem indicates the backup stack is exhausted: the schema
	// depth exceeds the capacity the caller configured via [NewState].
	KindNoBackupMem
	// KindNoBackupActive indicates ProcessBackup was called with an empty
	// backup stack. This is a programming error in hand-written or generated
	// schema code, not a property of the input.
	KindNoBackupActive
	// KindLowElemCount indicates MultiDecode received fewer elements than its
	// configured minimum.
	KindLowElemCount
	// KindHighElemCount indicates a container ended with elements still
	// required, or a restored elem_count exceeded the caller-supplied
	// maximum.
	KindHighElemCount
	// KindIntSize indicates an integer value did not fit the requested result
	// width.
	KindIntSize
	// KindFloatSize indicates a float of the wrong precision was encountered
	// where the schema required an exact width.
	KindFloatSize
	// KindAdditionalInval indicates a reserved "additional information" value
	// (28, 29, or 30) was encountered in a head byte.
	KindAdditionalInval
	// KindNoPayload indicates an attempt to read past the end of the payload.
	KindNoPayload
	// KindPayloadNotConsumed indicates decoding succeeded but bytes remained
	// in the input after the top-level value.
	KindPayloadNotConsumed
	// KindWrongType indicates a CBOR major type mismatch against what the
	// decoder expected.
	KindWrongType
	// KindWrongValue indicates an Expect-style decode found a value that did
	// not equal the required constant.
	KindWrongValue
	// KindWrongRange indicates a decoded value fell outside a schema-declared
	// [min, max] range.
	KindWrongRange
	// KindIterations indicates a repetition count fell outside a schema's
	// [min, max] bound.
	KindIterations
	// KindAssertion indicates an internal invariant check failed. Only raised
	// in debug builds (build tag zcbor_debug); see trace_debug.go.
	KindAssertion
	// KindElemNotFound indicates a required unordered-map key was not present
	// anywhere in the map.
	KindElemNotFound
	// KindElemsNotProcessed indicates an unordered map had entries that no
	// schema key pattern matched.
	KindElemsNotProcessed
	// KindMapMisaligned indicates a map's items do not pair up into keys and
	// values: an odd number of items at the end of an indefinite-length map
	// (decode) or of any map (encode). Duplicate keys are not reported with
	// this kind.
	KindMapMisaligned
	// KindNotAtEnd indicates a bstr-wrapped CBOR payload did not consume
	// exactly its enclosing byte string.
	KindNotAtEnd
)

func (k Kind) String() string {
	switch k {
	case KindNoBackupMem:
		return "no backup memory"
	case KindNoBackupActive:
		return "no backup active"
	case KindLowElemCount:
		return "too few elements"
	case KindHighElemCount:
		return "too many elements"
	case KindIntSize:
		return "integer too large for result"
	case KindFloatSize:
		return "wrong float size"
	case KindAdditionalInval:
		return "invalid additional info"
	case KindNoPayload:
		return "no payload"
	case KindPayloadNotConsumed:
		return "payload not fully consumed"
	case KindWrongType:
		return "wrong major type"
	case KindWrongValue:
		return "wrong value"
	case KindWrongRange:
		return "value out of range"
	case KindIterations:
		return "repetition count out of range"
	case KindAssertion:
		return "assertion failed"
	case KindElemNotFound:
		return "required map element not found"
	case KindElemsNotProcessed:
		return "unmatched map elements remain"
	case KindMapMisaligned:
		return "map keys and values misaligned"
	case KindNotAtEnd:
		return "bstr-wrapped cbor not fully consumed"
	default:
		return "zcbor error (" + strconv.Itoa(int(k)) + ")"
	}
}

// Error is returned by every decode and encode function in this package.
// Error carries the [Kind] of the failure plus, where
// relevant, the byte offset into the payload at which it was detected.
type Error struct {
	Kind   Kind
	Offset int   // byte offset within the payload, or -1 if not applicable
	Err    error // wrapped underlying error, if any
}

func (e *Error) Error() string {
	s := "zcbor: " + e.Kind.String()
	if e.Offset >= 0 {
		s += " at offset " + strconv.Itoa(e.Offset)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel error for e.Kind, so that
// errors.Is(err, zcbor.ErrWrongType) works regardless of the offset/wrapped
// error carried by a concrete *Error value.
func (e *Error) Is(target error) bool {
	se, ok := target.(*sentinel)
	return ok && se.kind == e.Kind
}

// sentinel is the concrete type behind the package-level Err* values. It lets
// callers write errors.Is(err, zcbor.ErrNoPayload) without caring about the
// offset or wrapped error carried by the *Error that decode functions
// actually return.
type sentinel struct{ kind Kind }

func (s *sentinel) Error() string { return "zcbor: " + s.kind.String() }

// Sentinel errors for use with errors.Is. Every *Error produced by this
// package matches exactly one of these via the Is method above.
var (
	ErrNoBackupMem        error = &sentinel{KindNoBackupMem}
	ErrNoBackupActive     error = &sentinel{KindNoBackupActive}
	ErrLowElemCount       error = &sentinel{KindLowElemCount}
	ErrHighElemCount      error = &sentinel{KindHighElemCount}
	ErrIntSize            error = &sentinel{KindIntSize}
	ErrFloatSize          error = &sentinel{KindFloatSize}
	ErrAdditionalInval    error = &sentinel{KindAdditionalInval}
	ErrNoPayload          error = &sentinel{KindNoPayload}
	ErrPayloadNotConsumed error = &sentinel{KindPayloadNotConsumed}
	ErrWrongType          error = &sentinel{KindWrongType}
	ErrWrongValue         error = &sentinel{KindWrongValue}
	ErrWrongRange         error = &sentinel{KindWrongRange}
	ErrIterations         error = &sentinel{KindIterations}
	ErrAssertion          error = &sentinel{KindAssertion}
	ErrElemNotFound       error = &sentinel{KindElemNotFound}
	ErrElemsNotProcessed  error = &sentinel{KindElemsNotProcessed}
	ErrMapMisaligned      error = &sentinel{KindMapMisaligned}
	ErrNotAtEnd           error = &sentinel{KindNotAtEnd}
)

// newErr builds an *Error rooted at the current cursor offset of s.
func newErr(s *State, kind Kind) *Error {
	return &Error{Kind: kind, Offset: s.offset, Err: nil}
}
