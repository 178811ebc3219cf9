package zcbor

import (
	"bytes"
	"testing"
)

func TestListRoundTripDefinite(t *testing.T) {
	// [1, 2, 3]
	want := []byte{0x83, 0x01, 0x02, 0x03}
	s := NewState(want, 4)
	if err := s.ListStartDecode(); err != nil {
		t.Fatalf("ListStartDecode: %v", err)
	}
	var got []uint64
	for i := 0; i < 3; i++ {
		v, err := s.Uint64Decode()
		if err != nil {
			t.Fatalf("Uint64Decode[%d]: %v", i, err)
		}
		got = append(got, v)
	}
	if err := s.ListEndDecode(); err != nil {
		t.Fatalf("ListEndDecode: %v", err)
	}
	for i, v := range []uint64{1, 2, 3} {
		if got[i] != v {
			t.Errorf("got[%d] = %d, want %d", i, got[i], v)
		}
	}

	// Canonical encoding first writes a containerHeadReserved-byte placeholder
	// head, so the buffer needs that much room beyond the final 1-byte head.
	buf := make([]byte, len(want)+containerHeadReserved)
	e := NewEncodeState(buf, 4, WithCanonical(true))
	if err := e.ListStartEncode(); err != nil {
		t.Fatalf("ListStartEncode: %v", err)
	}
	for _, v := range got {
		if err := e.Uint64Encode(v); err != nil {
			t.Fatalf("Uint64Encode: %v", err)
		}
	}
	if err := e.ListEndEncode(); err != nil {
		t.Fatalf("ListEndEncode: %v", err)
	}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("re-encode = %x, want %x", e.Bytes(), want)
	}
}

func TestIndefiniteListOfLists(t *testing.T) {
	// 9F 9F 01 FF 9F 02 03 FF FF  ->  [[1], [2,3]]
	in := []byte{0x9F, 0x9F, 0x01, 0xFF, 0x9F, 0x02, 0x03, 0xFF, 0xFF}
	s := NewState(in, 8)
	if err := s.ListStartDecode(); err != nil {
		t.Fatalf("outer ListStartDecode: %v", err)
	}
	var lists [][]uint64
	for i := 0; i < 2; i++ {
		if err := s.ListStartDecode(); err != nil {
			t.Fatalf("inner ListStartDecode[%d]: %v", i, err)
		}
		var inner []uint64
		for {
			v, err := s.Uint64Decode()
			if err != nil {
				break
			}
			inner = append(inner, v)
		}
		if err := s.ListEndDecode(); err != nil {
			t.Fatalf("inner ListEndDecode[%d]: %v", i, err)
		}
		lists = append(lists, inner)
	}
	if err := s.ListEndDecode(); err != nil {
		t.Fatalf("outer ListEndDecode: %v", err)
	}
	if len(lists) != 2 || len(lists[0]) != 1 || lists[0][0] != 1 ||
		len(lists[1]) != 2 || lists[1][0] != 2 || lists[1][1] != 3 {
		t.Fatalf("unexpected result: %v", lists)
	}

	want := []byte{0x82, 0x81, 0x01, 0x82, 0x02, 0x03}
	// Room for the outer and one inner placeholder head at a time; see
	// containerHeadReserved.
	buf := make([]byte, len(want)+2*containerHeadReserved)
	e := NewEncodeState(buf, 8, WithCanonical(true))
	if err := e.ListStartEncode(); err != nil {
		t.Fatalf("outer ListStartEncode: %v", err)
	}
	for _, inner := range lists {
		if err := e.ListStartEncode(); err != nil {
			t.Fatalf("inner ListStartEncode: %v", err)
		}
		for _, v := range inner {
			if err := e.Uint64Encode(v); err != nil {
				t.Fatalf("Uint64Encode: %v", err)
			}
		}
		if err := e.ListEndEncode(); err != nil {
			t.Fatalf("inner ListEndEncode: %v", err)
		}
	}
	if err := e.ListEndEncode(); err != nil {
		t.Fatalf("outer ListEndEncode: %v", err)
	}
	if !bytes.Equal(e.Bytes(), want) {
		t.Fatalf("canonical re-encode = %x, want %x", e.Bytes(), want)
	}
}

func TestMapOptionalFieldAbsent(t *testing.T) {
	// A1 64 62797465 18 2A  ->  {"byte": 42}, no "opt" key present.
	in := []byte{0xA1, 0x64, 'b', 'y', 't', 'e', 0x18, 0x2A}
	s := NewState(in, 4)
	present := false
	fields := []MapField{
		{Name: "byte", Min: 1, Max: 1,
			DecodeKey:   func(s *State) error { return s.ExpectTstr("byte") },
			DecodeValue: func(s *State) error { _, err := s.Uint64Decode(); return err },
		},
		{Name: "opt", Min: 0, Max: 1,
			DecodeKey: func(s *State) error { return s.ExpectTstr("opt") },
			DecodeValue: func(s *State) error {
				present = true
				_, err := s.Uint64Decode()
				return err
			},
		},
	}
	if err := DecodeUnorderedMap(s, fields); err != nil {
		t.Fatalf("DecodeUnorderedMap: %v", err)
	}
	if present {
		t.Fatalf("optional field unexpectedly present")
	}
}
