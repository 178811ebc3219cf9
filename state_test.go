package zcbor

import (
	"errors"
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState([]byte{0x01}, 4)
	if s.elemCount != 1 {
		t.Errorf("elemCount = %d, want 1", s.elemCount)
	}
	if s.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", s.Remaining())
	}
	if s.AtEnd() {
		t.Errorf("AtEnd() = true, want false")
	}
}

func TestStopOnErrorLatches(t *testing.T) {
	s := NewState([]byte{0x61, 0x61}, 4, WithStopOnError(true)) // tstr(1) "a", but wrong type requested
	if _, err := s.Uint64Decode(); err == nil {
		t.Fatalf("expected error decoding tstr as uint")
	}
	// A second, otherwise-valid call should short-circuit with the same error.
	_, err := s.TstrDecode()
	if !errors.Is(err, ErrWrongType) {
		t.Fatalf("second call error = %v, want ErrWrongType (latched)", err)
	}
}

func TestErrorScopeSuspendsLatchedError(t *testing.T) {
	s := NewState([]byte{0x01}, 4, WithStopOnError(true))
	if _, err := s.TstrDecode(); err == nil {
		t.Fatalf("expected error")
	}
	err := s.ErrorScope(func() error {
		_, err := s.Uint64Decode()
		return err
	})
	if err != nil {
		t.Fatalf("ErrorScope: decode inside scope failed: %v", err)
	}
	// The outer latch from before the scope is restored once it exits.
	if _, err := s.Int64Decode(); !errors.Is(err, ErrWrongType) {
		t.Fatalf("after scope exit, error = %v, want restored ErrWrongType", err)
	}
}

func TestErrNoPayloadTruncated(t *testing.T) {
	full := []byte{0x18, 0x2A} // uint8(42) in 2-byte head form
	for k := 0; k < len(full); k++ {
		s := NewState(full[:k], 4)
		if _, err := s.Uint64Decode(); !errors.Is(err, ErrNoPayload) {
			t.Errorf("prefix length %d: error = %v, want ErrNoPayload", k, err)
		}
	}
}
