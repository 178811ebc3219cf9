package zcbor

import (
	"math"

	"github.com/x448/float16"
)

// String is a borrowed slice referencing bytes inside the payload a [State]
// was constructed over. No copy is made; its lifetime is tied to that of the
// payload slice.
type String struct {
	Value []byte
}

// String returns a copy of the borrowed bytes as a Go string. Use this only
// when you need an owned value; the zero-copy contract is the point of
// [String].
func (s String) String() string { return string(s.Value) }

// beginElem checks the sticky error and the current element budget before a
// scalar decode attempt, and saves the rollback point.
func (s *State) beginElem() error {
	if err := s.checkSticky(); err != nil {
		return err
	}
	s.save()
	if s.elemCount == 0 {
		return s.fail(KindLowElemCount)
	}
	return nil
}

func (s *State) endElem() {
	s.elemCount--
	s.trace("decode")
}

// extractUint decodes an unsigned integer head of at most maxBits, major
// type PositiveInt.
func (s *State) extractUint(maxBits int) (uint64, error) {
	if err := s.beginElem(); err != nil {
		return 0, err
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != MajorPositiveInt {
		return 0, s.fail(KindWrongType)
	}
	if maxBits < 64 && h.value >= uint64(1)<<uint(maxBits) {
		return 0, s.fail(KindIntSize)
	}
	s.endElem()
	return h.value, nil
}

// Uint8Decode decodes an unsigned integer that fits in 8 bits.
func (s *State) Uint8Decode() (uint8, error) {
	v, err := s.extractUint(8)
	return uint8(v), err
}

// Uint16Decode decodes an unsigned integer that fits in 16 bits.
func (s *State) Uint16Decode() (uint16, error) {
	v, err := s.extractUint(16)
	return uint16(v), err
}

// Uint32Decode decodes an unsigned integer that fits in 32 bits.
func (s *State) Uint32Decode() (uint32, error) {
	v, err := s.extractUint(32)
	return uint32(v), err
}

// Uint64Decode decodes an unsigned integer of any width, major type
// PositiveInt only.
func (s *State) Uint64Decode() (uint64, error) {
	return s.extractUint(64)
}

// extractInt implements int{N}_decode: accepts PositiveInt or NegativeInt,
// mapping a negative-int raw value r to the CBOR-defined -1-r.
func (s *State) extractInt(maxBits int) (int64, error) {
	if err := s.beginElem(); err != nil {
		return 0, err
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	switch h.major {
	case MajorPositiveInt:
		limit := uint64(1)<<uint(maxBits-1) - 1
		if h.value > limit {
			return 0, s.fail(KindIntSize)
		}
		s.endElem()
		return int64(h.value), nil
	case MajorNegativeInt:
		limit := uint64(1) << uint(maxBits-1)
		if h.value >= limit {
			return 0, s.fail(KindIntSize)
		}
		s.endElem()
		return -1 - int64(h.value), nil
	default:
		return 0, s.fail(KindWrongType)
	}
}

// Int8Decode decodes a signed integer that fits in 8 bits.
func (s *State) Int8Decode() (int8, error) {
	v, err := s.extractInt(8)
	return int8(v), err
}

// Int16Decode decodes a signed integer that fits in 16 bits.
func (s *State) Int16Decode() (int16, error) {
	v, err := s.extractInt(16)
	return int16(v), err
}

// Int32Decode decodes a signed integer that fits in 32 bits.
func (s *State) Int32Decode() (int32, error) {
	v, err := s.extractInt(32)
	return int32(v), err
}

// Int64Decode decodes a signed integer that fits in 64 bits.
func (s *State) Int64Decode() (int64, error) {
	return s.extractInt(64)
}

// extractString implements tstr_decode/bstr_decode: verifies the major type,
// reads the announced length (definite-length only; indefinite-length
// strings are handled by [State.NextFragment]), checks it fits the
// remaining payload without the length*1 arithmetic overflowing, and
// returns a borrowed [String].
func (s *State) extractString(major MajorType) (String, error) {
	if err := s.beginElem(); err != nil {
		return String{}, err
	}
	h, err := s.readHead()
	if err != nil {
		return String{}, err
	}
	if h.major != major {
		return String{}, s.fail(KindWrongType)
	}
	if h.isIndefinite() {
		return String{}, s.fail(KindWrongType)
	}
	if h.value > uint64(s.end-s.offset) {
		return String{}, s.fail(KindNoPayload)
	}
	n := int(h.value)
	b, err := s.readN(n)
	if err != nil {
		return String{}, err
	}
	s.endElem()
	return String{Value: b}, nil
}

// TstrDecode decodes a definite-length text string as a borrowed [String].
func (s *State) TstrDecode() (String, error) { return s.extractString(MajorTextString) }

// BstrDecode decodes a definite-length byte string as a borrowed [String].
func (s *State) BstrDecode() (String, error) { return s.extractString(MajorByteString) }

// TagDecode consumes a tag head and returns its value. It does not decrement
// elemCount: the tagged item that follows still occupies the element slot
// the tag itself was found in.
func (s *State) TagDecode() (Tag, error) {
	if err := s.checkSticky(); err != nil {
		return 0, err
	}
	s.save()
	if s.elemCount == 0 {
		return 0, s.fail(KindLowElemCount)
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != MajorTag {
		return 0, s.fail(KindWrongType)
	}
	s.trace("decode:tag")
	return Tag(h.value), nil
}

// extractPrimitive implements simple_decode-family decoders: major type
// Primitive with a specific expected additional-info value.
func (s *State) extractPrimitive(additional uint8) error {
	if err := s.beginElem(); err != nil {
		return err
	}
	h, err := s.readHead()
	if err != nil {
		return err
	}
	if h.major != MajorPrimitive || h.additional != additional {
		return s.fail(KindWrongType)
	}
	s.endElem()
	return nil
}

// BoolDecode decodes a CBOR boolean (additional 20 or 21).
func (s *State) BoolDecode() (bool, error) {
	if err := s.beginElem(); err != nil {
		return false, err
	}
	h, err := s.readHead()
	if err != nil {
		return false, err
	}
	if h.major != MajorPrimitive || (h.additional != PrimitiveFalse && h.additional != PrimitiveTrue) {
		return false, s.fail(KindWrongType)
	}
	s.endElem()
	return h.additional == PrimitiveTrue, nil
}

// NilExpect decodes a CBOR null (additional 22).
func (s *State) NilExpect() error { return s.extractPrimitive(PrimitiveNull) }

// UndefinedExpect decodes a CBOR undefined (additional 23).
func (s *State) UndefinedExpect() error { return s.extractPrimitive(PrimitiveUndefined) }

// SimpleDecode decodes any CBOR simple value, major type Primitive with
// additional < 24 (or the one-byte form for values 32..255), and returns its
// numeric value. It rejects floats and the break code.
func (s *State) SimpleDecode() (uint8, error) {
	if err := s.beginElem(); err != nil {
		return 0, err
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != MajorPrimitive || h.additional == PrimitiveFloat16 || h.additional == PrimitiveFloat32 ||
		h.additional == PrimitiveFloat64 || h.additional == PrimitiveBreak {
		return 0, s.fail(KindWrongType)
	}
	s.endElem()
	return uint8(h.value), nil
}

// Float16Decode decodes an IEEE-754 half-precision float (additional 25) and
// widens it to float32, following the exact bit rules of RFC 8949 section
// 3.4.2 (denormals, infinities, NaN, and negative zero are all preserved
// exactly by the conversion).
func (s *State) Float16Decode() (float32, error) {
	if err := s.beginElem(); err != nil {
		return 0, err
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != MajorPrimitive || h.additional != PrimitiveFloat16 {
		return 0, s.fail(KindWrongType)
	}
	s.endElem()
	return float16.Frombits(uint16(h.value)).Float32(), nil
}

// Float32Decode decodes an IEEE-754 single-precision float (additional 26).
func (s *State) Float32Decode() (float32, error) {
	if err := s.beginElem(); err != nil {
		return 0, err
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != MajorPrimitive || h.additional != PrimitiveFloat32 {
		return 0, s.fail(KindWrongType)
	}
	s.endElem()
	return math.Float32frombits(uint32(h.value)), nil
}

// Float64Decode decodes an IEEE-754 double-precision float (additional 27).
func (s *State) Float64Decode() (float64, error) {
	if err := s.beginElem(); err != nil {
		return 0, err
	}
	h, err := s.readHead()
	if err != nil {
		return 0, err
	}
	if h.major != MajorPrimitive || h.additional != PrimitiveFloat64 {
		return 0, s.fail(KindWrongType)
	}
	s.endElem()
	return math.Float64frombits(h.value), nil
}

// ExpectUint64 decodes an unsigned integer and requires it to equal want,
// failing with [ErrWrongValue] (and rolling the cursor back) otherwise. Used
// by schema code for constant fields.
func (s *State) ExpectUint64(want uint64) error {
	got, err := s.Uint64Decode()
	if err != nil {
		return err
	}
	if got != want {
		return s.fail(KindWrongValue)
	}
	return nil
}

// ExpectInt64 is the signed counterpart of [State.ExpectUint64].
func (s *State) ExpectInt64(want int64) error {
	got, err := s.Int64Decode()
	if err != nil {
		return err
	}
	if got != want {
		return s.fail(KindWrongValue)
	}
	return nil
}

// ExpectTstr decodes a text string and requires it to equal want.
func (s *State) ExpectTstr(want string) error {
	got, err := s.TstrDecode()
	if err != nil {
		return err
	}
	if string(got.Value) != want {
		return s.fail(KindWrongValue)
	}
	return nil
}

// ExpectTag decodes a tag and requires it to equal want.
func (s *State) ExpectTag(want Tag) error {
	got, err := s.TagDecode()
	if err != nil {
		return err
	}
	if got != want {
		return s.fail(KindWrongValue)
	}
	return nil
}
