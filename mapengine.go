package zcbor

// MapField describes one key pattern an unordered map schema accepts: a key
// matcher, the value decoder to run once the key matches, and how many times
// the pattern may legally repeat (Min/Max, both inclusive; Max of 0 is
// treated as 1, the common non-repeated case, while Min still decides
// whether the field is required).
type MapField struct {
	Name        string
	Min, Max    int
	DecodeKey   func(*State) error
	DecodeValue func(*State) error
}

// DecodeUnorderedMap decodes a CBOR map whose key/value pairs may appear in
// any order: for each entry, it tries every field pattern that hasn't yet
// reached its Max occurrences,
// commits the first one whose key and value both decode successfully, and
// rolls back completely before trying the next if one doesn't. This is the
// "scan remaining fields against each entry" search the reference
// implementation's generated unordered-map decoders perform, expressed
// directly instead of as generated code.
//
// It fails with [ErrElemsNotProcessed] if an entry matches no field, and
// with [ErrElemNotFound] once the map ends if any field's Min was not met.
func DecodeUnorderedMap(s *State, fields []MapField) error {
	if err := s.MapStartDecode(); err != nil {
		return err
	}
	counts := make([]int, len(fields))
	for !mapBodyAtEnd(s) {
		matched := -1
		for i, f := range fields {
			max := f.Max
			if max == 0 {
				max = 1
			}
			if counts[i] >= max {
				continue
			}
			mark := snapshot{offset: s.offset, end: s.end, elemCount: s.elemCount, indefiniteLengthArray: s.indefiniteLengthArray}
			err := s.ErrorScope(func() error {
				if err := f.DecodeKey(s); err != nil {
					return err
				}
				return f.DecodeValue(s)
			})
			if err == nil {
				matched = i
				break
			}
			s.offset, s.end, s.elemCount, s.indefiniteLengthArray = mark.offset, mark.end, mark.elemCount, mark.indefiniteLengthArray
		}
		if matched < 0 {
			err := s.fail(KindElemsNotProcessed)
			s.ListMapEndForceDecode()
			return err
		}
		counts[matched]++
	}
	for i, f := range fields {
		if counts[i] < f.Min {
			err := s.fail(KindElemNotFound)
			s.ListMapEndForceDecode()
			return err
		}
	}
	return s.MapEndDecode()
}

// mapBodyAtEnd reports whether the map body's last pair has been consumed:
// for definite-length maps, elemCount has counted down to zero (it was
// doubled at MapStartDecode time); for indefinite-length maps, the next byte
// is the break code.
func mapBodyAtEnd(s *State) bool {
	if !s.indefiniteLengthArray {
		return s.elemCount == 0
	}
	if s.offset >= s.end {
		return true
	}
	return s.payload[s.offset] == byte(MajorPrimitive)<<5|PrimitiveBreak
}

// EncodeMapField pairs one key/value encode step for [EncodeUnorderedMap]
// with the repetition count it was called with (for schema code that needs
// to encode the same Min..Max-bounded field it decoded).
type EncodeMapField struct {
	EncodeKeyValue func(*EncodeState) error
	Count          int
}

// EncodeUnorderedMap encodes a map from a fixed sequence of fields, each
// contributing Count key/value pairs. Unlike decoding, the encode side
// doesn't need to search: the caller already knows which fields are present
// and how many times each repeats.
func EncodeUnorderedMap(e *EncodeState, fields []EncodeMapField) error {
	if err := e.MapStartEncode(); err != nil {
		return err
	}
	for _, f := range fields {
		for i := 0; i < f.Count; i++ {
			if err := f.EncodeKeyValue(e); err != nil {
				return err
			}
		}
	}
	return e.MapEndEncode()
}
