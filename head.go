package zcbor

// MajorType identifies the category of a CBOR data item: the top 3 bits of
// its head byte.
type MajorType uint8

const (
	MajorPositiveInt MajorType = 0
	MajorNegativeInt MajorType = 1
	MajorByteString  MajorType = 2
	MajorTextString  MajorType = 3
	MajorList        MajorType = 4
	MajorMap         MajorType = 5
	MajorTag         MajorType = 6
	MajorPrimitive   MajorType = 7
)

// Additional-info values with specific meaning, per RFC 8949 section 3.1.
const (
	AdditionalValueInHeader = 23 // values up to and including this are encoded directly in the head byte
	Additional1Byte         = 24
	Additional2Bytes        = 25
	Additional4Bytes        = 26
	Additional8Bytes        = 27
	AdditionalIndefinite    = 31
)

// Primitive additional-info values, major type 7.
const (
	PrimitiveFalse     = 20
	PrimitiveTrue      = 21
	PrimitiveNull      = 22
	PrimitiveUndefined = 23
	PrimitiveFloat16   = 25
	PrimitiveFloat32   = 26
	PrimitiveFloat64   = 27
	PrimitiveBreak     = 31
)

// Tag is a CBOR semantic tag value (major type 6), a 32-bit number widened
// to uint64 for convenient arithmetic.
type Tag uint64

// Tags registered by RFC 8949 itself (www.iana.org/assignments/cbor-tags),
// named here for convenience; any 32-bit value decodes, schemas decide which
// are meaningful in a given position.
const (
	TagDateTimeString  Tag = 0  // text string, standard date/time string
	TagEpochDateTime   Tag = 1  // integer or float, epoch-based date/time
	TagBignumPositive  Tag = 2  // byte string, unsigned bignum
	TagBignumNegative  Tag = 3  // byte string, negative bignum
	TagDecimalArray    Tag = 4  // array, decimal fraction
	TagBigfloatArray   Tag = 5  // array, bigfloat
	TagExpectBase64URL Tag = 21 // any, expected conversion to base64url
	TagExpectBase64    Tag = 22 // any, expected conversion to base64
	TagExpectBase16    Tag = 23 // any, expected conversion to base16
	TagEncodedCBOR     Tag = 24 // byte string, embedded CBOR data item
	TagURI             Tag = 32 // text string, URI
	TagBase64URL       Tag = 33 // text string, base64url
	TagBase64          Tag = 34 // text string, base64
	TagMIMEMessage     Tag = 36 // text string, MIME message
	TagSelfDescribed   Tag = 55799
)

// head is the decoded representation of a CBOR head byte plus its embedded
// or following value bytes: major type, additional info, and the value
// (length, integer magnitude, or tag number) it carries.
type head struct {
	major      MajorType
	additional uint8
	value      uint64
}

// readByte reads a single byte at the cursor, failing with [ErrNoPayload] if
// none remain. It neither checks nor decrements elemCount; callers account
// for whole data items, not bytes.
func (s *State) readByte() (byte, error) {
	if s.offset >= s.end {
		return 0, s.fail(KindNoPayload)
	}
	b := s.payload[s.offset]
	s.offset++
	return b, nil
}

// readN reads n raw bytes, failing with [ErrNoPayload] if fewer remain.
func (s *State) readN(n int) ([]byte, error) {
	if n < 0 || s.offset+n > s.end || s.offset+n < s.offset {
		// the third disjunct also rejects overflow of offset+n
		return nil, s.fail(KindNoPayload)
	}
	b := s.payload[s.offset : s.offset+n]
	s.offset += n
	return b, nil
}

// readHead decodes the head byte (and any following length/value bytes) at
// the cursor without touching elemCount; the caller decides how many
// elements the head accounts for (one for a scalar, one for a container
// header whose body consumes its own budget, etc).
func (s *State) readHead() (head, error) {
	b, err := s.readByte()
	if err != nil {
		return head{}, err
	}
	h := head{major: MajorType(b >> 5), additional: b & 0x1f}

	switch {
	case h.additional <= AdditionalValueInHeader:
		h.value = uint64(h.additional)
	case h.additional == Additional1Byte:
		buf, err := s.readN(1)
		if err != nil {
			return head{}, err
		}
		h.value = uint64(buf[0])
	case h.additional == Additional2Bytes:
		buf, err := s.readN(2)
		if err != nil {
			return head{}, err
		}
		h.value = uint64(buf[0])<<8 | uint64(buf[1])
	case h.additional == Additional4Bytes:
		buf, err := s.readN(4)
		if err != nil {
			return head{}, err
		}
		h.value = uint64(buf[0])<<24 | uint64(buf[1])<<16 | uint64(buf[2])<<8 | uint64(buf[3])
	case h.additional == Additional8Bytes:
		buf, err := s.readN(8)
		if err != nil {
			return head{}, err
		}
		h.value = 0
		for _, b := range buf {
			h.value = h.value<<8 | uint64(b)
		}
	case h.additional == AdditionalIndefinite:
		// Valid only for bstr, tstr, list, map, and the primitive "break"
		// stop code; callers that cannot accept it reject it themselves.
		h.value = 0
	default: // 28, 29, 30 are reserved
		return head{}, s.fail(KindAdditionalInval)
	}
	return h, nil
}

// isIndefinite reports whether h denotes the indefinite-length encoding.
func (h head) isIndefinite() bool { return h.additional == AdditionalIndefinite }

// --- encode side ---

func (e *EncodeState) writeByte(b byte) error {
	if e.offset >= len(e.buf) {
		return e.fail(KindNoPayload)
	}
	e.buf[e.offset] = b
	e.offset++
	return nil
}

func (e *EncodeState) writeBytes(p []byte) error {
	if e.offset+len(p) > len(e.buf) {
		return e.fail(KindNoPayload)
	}
	copy(e.buf[e.offset:], p)
	e.offset += len(p)
	return nil
}

// headWidth returns the number of bytes minimally needed to carry value in a
// head's trailing bytes (0 for values <= 23).
func headWidth(value uint64) int {
	switch {
	case value <= AdditionalValueInHeader:
		return 0
	case value <= 0xFF:
		return 1
	case value <= 0xFFFF:
		return 2
	case value <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

func widthAdditional(width int) uint8 {
	switch width {
	case 0:
		return 0 // caller fills in the literal value instead
	case 1:
		return Additional1Byte
	case 2:
		return Additional2Bytes
	case 4:
		return Additional4Bytes
	default:
		return Additional8Bytes
	}
}

// headBytes returns the minimal (canonical) head encoding for (major, value)
// as a standalone byte slice, for callers (such as the canonical container
// patch-up in container.go) that need the bytes before committing them to
// the cursor.
func headBytes(major MajorType, value uint64) []byte {
	width := headWidth(value)
	if width == 0 {
		return []byte{byte(major)<<5 | byte(value)}
	}
	buf := make([]byte, 1+width)
	buf[0] = byte(major)<<5 | widthAdditional(width)
	for i := width; i >= 1; i-- {
		buf[i] = byte(value)
		value >>= 8
	}
	return buf
}

// writeHead writes the minimal (canonical) head encoding for (major, value).
func (e *EncodeState) writeHead(major MajorType, value uint64) error {
	return e.writeBytes(headBytes(major, value))
}

// writeIndefiniteHead writes a head byte announcing the indefinite-length
// encoding for major (only valid for bstr, tstr, list, and map).
func (e *EncodeState) writeIndefiniteHead(major MajorType) error {
	return e.writeByte(byte(major)<<5 | AdditionalIndefinite)
}

// writeBreak writes the CBOR "break" stop code that terminates an
// indefinite-length container.
func (e *EncodeState) writeBreak() error {
	return e.writeByte(byte(MajorPrimitive)<<5 | PrimitiveBreak)
}
