package zcbor

import (
	"reflect"
	"testing"
)

// Exercises a map schema combining a required key, an optional key, and a
// 1..3 group repetition in a single unordered map, entries shuffled instead
// of appearing in field-declaration order.
func TestDecodeUnorderedMapRequiredOptionalAndGroup(t *testing.T) {
	// {"item": 1, "id": 100, "item": 2, "item": 3}
	in := []byte{
		0xA4,
		0x64, 'i', 't', 'e', 'm', 0x01,
		0x62, 'i', 'd', 0x18, 0x64,
		0x64, 'i', 't', 'e', 'm', 0x02,
		0x64, 'i', 't', 'e', 'm', 0x03,
	}
	s := NewState(in, 4)

	var id uint64
	var idSeen bool
	var tag String
	var tagSeen bool
	var items []uint64

	fields := []MapField{
		{Name: "id", Min: 1, Max: 1,
			DecodeKey: func(s *State) error { return s.ExpectTstr("id") },
			DecodeValue: func(s *State) error {
				v, err := s.Uint64Decode()
				if err != nil {
					return err
				}
				id, idSeen = v, true
				return nil
			},
		},
		{Name: "tag", Min: 0, Max: 1,
			DecodeKey: func(s *State) error { return s.ExpectTstr("tag") },
			DecodeValue: func(s *State) error {
				v, err := s.TstrDecode()
				if err != nil {
					return err
				}
				tag, tagSeen = v, true
				return nil
			},
		},
		{Name: "item", Min: 1, Max: 3,
			DecodeKey: func(s *State) error { return s.ExpectTstr("item") },
			DecodeValue: func(s *State) error {
				v, err := s.Uint64Decode()
				if err != nil {
					return err
				}
				items = append(items, v)
				return nil
			},
		},
	}

	if err := DecodeUnorderedMap(s, fields); err != nil {
		t.Fatalf("DecodeUnorderedMap: %v", err)
	}
	if !idSeen || id != 100 {
		t.Errorf("id = %v (seen=%v), want 100", id, idSeen)
	}
	if tagSeen {
		t.Errorf("tag unexpectedly present: %v", tag)
	}
	if !reflect.DeepEqual(items, []uint64{1, 2, 3}) {
		t.Errorf("items = %v, want [1 2 3]", items)
	}
	if !s.AtEnd() {
		t.Errorf("payload not fully consumed, %d bytes remaining", s.Remaining())
	}
}

func TestDecodeUnorderedMapMissingRequiredKey(t *testing.T) {
	// {"item": 1} with no "id" — required key missing.
	in := []byte{0xA1, 0x64, 'i', 't', 'e', 'm', 0x01}
	s := NewState(in, 4)
	fields := []MapField{
		{Name: "id", Min: 1, Max: 1,
			DecodeKey:   func(s *State) error { return s.ExpectTstr("id") },
			DecodeValue: func(s *State) error { _, err := s.Uint64Decode(); return err },
		},
		{Name: "item", Min: 1, Max: 3,
			DecodeKey:   func(s *State) error { return s.ExpectTstr("item") },
			DecodeValue: func(s *State) error { _, err := s.Uint64Decode(); return err },
		},
	}
	err := DecodeUnorderedMap(s, fields)
	if !isKind(err, KindElemNotFound) {
		t.Fatalf("error = %v, want ErrElemNotFound", err)
	}
}

func TestDecodeUnorderedMapUnmatchedEntry(t *testing.T) {
	// {"nope": 1} matches no declared field.
	in := []byte{0xA1, 0x64, 'n', 'o', 'p', 'e', 0x01}
	s := NewState(in, 4)
	fields := []MapField{
		{Name: "id", Min: 0, Max: 1,
			DecodeKey:   func(s *State) error { return s.ExpectTstr("id") },
			DecodeValue: func(s *State) error { _, err := s.Uint64Decode(); return err },
		},
	}
	err := DecodeUnorderedMap(s, fields)
	if !isKind(err, KindElemsNotProcessed) {
		t.Fatalf("error = %v, want ErrElemsNotProcessed", err)
	}
}

func isKind(err error, k Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}
