package zcbor

import (
	"math"

	"github.com/x448/float16"
)

func (e *EncodeState) beginElem() error {
	if err := e.checkSticky(); err != nil {
		return err
	}
	e.save()
	if e.elemCount == 0 {
		return e.fail(KindLowElemCount)
	}
	return nil
}

func (e *EncodeState) endElem() {
	e.elemCount--
	e.trace("encode")
}

// Uint64Encode encodes an unsigned integer using the minimal head width.
func (e *EncodeState) Uint64Encode(v uint64) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	if err := e.writeHead(MajorPositiveInt, v); err != nil {
		return err
	}
	e.endElem()
	return nil
}

// Uint32Encode encodes a 32-bit unsigned integer.
func (e *EncodeState) Uint32Encode(v uint32) error { return e.Uint64Encode(uint64(v)) }

// Uint16Encode encodes a 16-bit unsigned integer.
func (e *EncodeState) Uint16Encode(v uint16) error { return e.Uint64Encode(uint64(v)) }

// Uint8Encode encodes an 8-bit unsigned integer.
func (e *EncodeState) Uint8Encode(v uint8) error { return e.Uint64Encode(uint64(v)) }

// Int64Encode encodes a signed integer, choosing PositiveInt or NegativeInt
// major type per the value's sign, using the minimal head width.
func (e *EncodeState) Int64Encode(v int64) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	var err error
	if v >= 0 {
		err = e.writeHead(MajorPositiveInt, uint64(v))
	} else {
		err = e.writeHead(MajorNegativeInt, uint64(-1-v))
	}
	if err != nil {
		return err
	}
	e.endElem()
	return nil
}

// Int32Encode encodes a 32-bit signed integer.
func (e *EncodeState) Int32Encode(v int32) error { return e.Int64Encode(int64(v)) }

// Int16Encode encodes a 16-bit signed integer.
func (e *EncodeState) Int16Encode(v int16) error { return e.Int64Encode(int64(v)) }

// Int8Encode encodes an 8-bit signed integer.
func (e *EncodeState) Int8Encode(v int8) error { return e.Int64Encode(int64(v)) }

// encodeString writes a string of the given major type, in either canonical
// (definite length, minimal head) or non-canonical (indefinite, single-fragment)
// form.
func (e *EncodeState) encodeString(major MajorType, value []byte) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	if !e.canonical {
		if err := e.writeIndefiniteHead(major); err != nil {
			return err
		}
	}
	// The definite-length head: the whole string in canonical mode, or the
	// one chunk inside the indefinite-length string otherwise.
	if err := e.writeHead(major, uint64(len(value))); err != nil {
		return err
	}
	if err := e.writeBytes(value); err != nil {
		return err
	}
	if !e.canonical {
		if err := e.writeBreak(); err != nil {
			return err
		}
	}
	e.endElem()
	return nil
}

// TstrEncode encodes a text string.
func (e *EncodeState) TstrEncode(v String) error { return e.encodeString(MajorTextString, v.Value) }

// BstrEncode encodes a byte string.
func (e *EncodeState) BstrEncode(v String) error { return e.encodeString(MajorByteString, v.Value) }

// TagEncode writes a tag head. Like [State.TagDecode], it does not decrement
// elemCount: the caller must still encode the tagged item itself against
// the same element slot.
func (e *EncodeState) TagEncode(t Tag) error {
	if err := e.checkSticky(); err != nil {
		return err
	}
	e.save()
	if e.elemCount == 0 {
		return e.fail(KindLowElemCount)
	}
	if err := e.writeHead(MajorTag, uint64(t)); err != nil {
		return err
	}
	e.trace("encode:tag")
	return nil
}

func (e *EncodeState) encodePrimitive(additional uint8) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	if err := e.writeByte(byte(MajorPrimitive)<<5 | additional); err != nil {
		return err
	}
	e.endElem()
	return nil
}

// BoolEncode encodes a CBOR boolean.
func (e *EncodeState) BoolEncode(v bool) error {
	if v {
		return e.encodePrimitive(PrimitiveTrue)
	}
	return e.encodePrimitive(PrimitiveFalse)
}

// NilEncode encodes a CBOR null.
func (e *EncodeState) NilEncode() error { return e.encodePrimitive(PrimitiveNull) }

// UndefinedEncode encodes a CBOR undefined.
func (e *EncodeState) UndefinedEncode() error { return e.encodePrimitive(PrimitiveUndefined) }

// SimpleEncode encodes a CBOR simple value with the given numeric content.
func (e *EncodeState) SimpleEncode(v uint8) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	if err := e.writeHead(MajorPrimitive, uint64(v)); err != nil {
		return err
	}
	e.endElem()
	return nil
}

// Float16Encode encodes v as IEEE-754 half-precision, per RFC 8949 section
// 3.4.2, rounding values that are not exactly representable in that width;
// it is the exact inverse of [State.Float16Decode] when v is representable.
// [EncodeState.FloatAutoEncode] chooses a wider encoding when it is not.
func (e *EncodeState) Float16Encode(v float32) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	bits := float16.Fromfloat32(v).Bits()
	if err := e.writeByte(byte(MajorPrimitive)<<5 | PrimitiveFloat16); err != nil {
		return err
	}
	if err := e.writeBytes([]byte{byte(bits >> 8), byte(bits)}); err != nil {
		return err
	}
	e.endElem()
	return nil
}

// Float32Encode encodes v as IEEE-754 single-precision.
func (e *EncodeState) Float32Encode(v float32) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	bits := math.Float32bits(v)
	if err := e.writeByte(byte(MajorPrimitive)<<5 | PrimitiveFloat32); err != nil {
		return err
	}
	buf := []byte{byte(bits >> 24), byte(bits >> 16), byte(bits >> 8), byte(bits)}
	if err := e.writeBytes(buf); err != nil {
		return err
	}
	e.endElem()
	return nil
}

// Float64Encode encodes v as IEEE-754 double-precision.
func (e *EncodeState) Float64Encode(v float64) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	bits := math.Float64bits(v)
	if err := e.writeByte(byte(MajorPrimitive)<<5 | PrimitiveFloat64); err != nil {
		return err
	}
	buf := make([]byte, 8)
	for i := 0; i < 8; i++ {
		buf[i] = byte(bits >> uint(56-8*i))
	}
	if err := e.writeBytes(buf); err != nil {
		return err
	}
	e.endElem()
	return nil
}

// FloatAutoEncode picks the shortest of float16/float32/float64 that
// represents v exactly, in canonical mode; in non-canonical mode it always
// uses float64. This is the "encoder picks float32 or float64" policy spec
// section 4.1 describes for values that do not fit float16.
func (e *EncodeState) FloatAutoEncode(v float64) error {
	if !e.canonical {
		return e.Float64Encode(v)
	}
	if h := float16.Fromfloat32(float32(v)); float64(h.Float32()) == v {
		return e.Float16Encode(float32(v))
	}
	if f32 := float32(v); float64(f32) == v {
		return e.Float32Encode(f32)
	}
	return e.Float64Encode(v)
}
