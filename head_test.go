package zcbor

import "testing"

func TestHeadWidthPromotion(t *testing.T) {
	cases := []struct {
		value uint64
		width int
	}{
		{0, 0}, {23, 0},
		{24, 1}, {255, 1},
		{256, 2}, {65535, 2},
		{65536, 4}, {0xFFFFFFFF, 4},
		{0x100000000, 8},
	}
	for _, tc := range cases {
		if got := headWidth(tc.value); got != tc.width {
			t.Errorf("headWidth(%d) = %d, want %d", tc.value, got, tc.width)
		}
	}
}

// A schema bounding a uint to 32 bits: values carried in 2- and 4-byte heads
// decode, and 2^32 (which needs an 8-byte head) is rejected as too large.
func TestNumericRangeBounds(t *testing.T) {
	cases := []struct {
		name    string
		in      []byte
		want    uint64
		wantErr bool
	}{
		{"TwoByteHead", []byte{0x19, 0x01, 0x00}, 256, false},
		{"FourByteHead", []byte{0x1A, 0x01, 0x02, 0x03, 0x04}, 0x01020304, false},
		{"EightByteHeadTooWide", []byte{0x1B, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00}, 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewState(tc.in, 4)
			got, err := s.extractUint(32)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got value %d", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("extractUint(32): %v", err)
			}
			if got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}
