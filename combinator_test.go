package zcbor

import (
	"errors"
	"testing"
)

func TestMultiDecodeWithinBounds(t *testing.T) {
	// [1, 2] encoded as a list body: two uints back to back, no container
	// wrapper needed since MultiDecode itself doesn't touch elemCount scope.
	s := NewState([]byte{0x01, 0x02}, 4)
	s.elemCount = 2
	vals, err := MultiDecode(s, 1, 3, func(s *State) (uint64, error) { return s.Uint64Decode() })
	if err != nil {
		t.Fatalf("MultiDecode: %v", err)
	}
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 2 {
		t.Fatalf("unexpected result: %v", vals)
	}
}

func TestMultiDecodeBelowMinimum(t *testing.T) {
	s := NewState([]byte{0x01}, 4)
	s.elemCount = 1
	_, err := MultiDecode(s, 2, 3, func(s *State) (uint64, error) { return s.Uint64Decode() })
	if !errors.Is(err, ErrLowElemCount) {
		t.Fatalf("error = %v, want ErrLowElemCount", err)
	}
}

func TestMultiDecodeBelowMinimumLatchesUnderStopOnError(t *testing.T) {
	s := NewState([]byte{0x01}, 4, WithStopOnError(true))
	s.elemCount = 1
	_, err := MultiDecode(s, 2, 3, func(s *State) (uint64, error) { return s.Uint64Decode() })
	if !errors.Is(err, ErrLowElemCount) {
		t.Fatalf("error = %v, want ErrLowElemCount", err)
	}
	// The failure must latch: an otherwise-valid call on the same State
	// short-circuits with the same error instead of running.
	if _, err := s.TstrDecode(); !errors.Is(err, ErrLowElemCount) {
		t.Fatalf("second call error = %v, want latched ErrLowElemCount", err)
	}
}

func TestPresentDecodeAbsent(t *testing.T) {
	s := NewState([]byte{0x61, 'x'}, 4) // a tstr, not a uint
	v, present, err := PresentDecode(s, func(s *State) (uint64, error) { return s.Uint64Decode() })
	if err != nil {
		t.Fatalf("PresentDecode: %v", err)
	}
	if present || v != 0 {
		t.Fatalf("present = %v, v = %v, want absent/zero", present, v)
	}
	// The cursor must not have moved: the next decode sees the same tstr.
	got, err := s.TstrDecode()
	if err != nil || got.String() != "x" {
		t.Fatalf("TstrDecode after PresentDecode: got=%v err=%v", got, err)
	}
}

func TestUnionDecodeAlternatives(t *testing.T) {
	// Schema A = 1, B = 3..23, C = tstr.
	decodeUnion := func(s *State) (string, error) {
		v, _, err := UnionDecode(s,
			func(s *State) (string, error) {
				if err := s.ExpectUint64(1); err != nil {
					return "", err
				}
				return "A", nil
			},
			func(s *State) (string, error) {
				n, err := s.Uint64Decode()
				if err != nil {
					return "", err
				}
				if n < 3 || n > 23 {
					return "", &Error{Kind: KindWrongRange}
				}
				return "B", nil
			},
			func(s *State) (string, error) {
				_, err := s.TstrDecode()
				return "C", err
			},
		)
		return v, err
	}

	cases := []struct {
		name string
		in   []byte
		want string
	}{
		{"A", []byte{0x01}, "A"},
		{"B", []byte{0x05}, "B"},
		{"C", []byte{0x65, 'h', 'e', 'l', 'l', 'o'}, "C"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(tc.in, 4)
			got, err := decodeUnion(s)
			if err != nil {
				t.Fatalf("decodeUnion: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
			// A successful union must not leave a latched error behind even
			// though earlier alternatives failed while probing.
			if err := s.StickyError(); err != nil {
				t.Errorf("StickyError() = %v, want nil", err)
			}
		})
	}

	t.Run("Null", func(t *testing.T) {
		s := NewState([]byte{0xF6}, 4) // null
		if _, err := decodeUnion(s); err == nil {
			t.Fatalf("expected every alternative to fail on null input")
		}
	})
}
