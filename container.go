package zcbor

// containerHead decodes and validates a list/map header, accounting for the
// one element slot the container itself (as opposed to its body) occupies
// in its parent's budget.
func (s *State) containerHead(major MajorType) (head, error) {
	if err := s.beginElem(); err != nil {
		return head{}, err
	}
	h, err := s.readHead()
	if err != nil {
		return head{}, err
	}
	if h.major != major {
		return head{}, s.fail(KindWrongType)
	}
	s.endElem()
	return h, nil
}

// ListStartDecode reads a list header (definite or indefinite length),
// decrements the parent's element budget by one for the list value itself,
// and pushes a backup so [State.ListEndDecode] can restore the parent scope.
func (s *State) ListStartDecode() error {
	h, err := s.containerHead(MajorList)
	if err != nil {
		return err
	}
	return s.startBody(h)
}

// MapStartDecode reads a map header. The element count is doubled
// internally: each key and each value occupies one slot.
func (s *State) MapStartDecode() error {
	h, err := s.containerHead(MajorMap)
	if err != nil {
		return err
	}
	if !h.isIndefinite() && h.value > uint64(LargeElemCount)/2 {
		return s.fail(KindHighElemCount)
	}
	if !h.isIndefinite() {
		h.value *= 2
	}
	return s.startBody(h)
}

func (s *State) startBody(h head) error {
	indefinite := h.isIndefinite()
	count := uint32(h.value)
	if indefinite {
		count = LargeElemCount
	}
	if err := s.NewBackup(count); err != nil {
		return err
	}
	s.indefiniteLengthArray = indefinite
	return nil
}

// containerEnd implements the shared list_map_end_decode logic. checkParity
// additionally verifies (for indefinite-length maps) that an even number of
// items were consumed, since the doubled pair-count invariant can't be
// checked against an announced length the way definite-length maps can.
func (s *State) containerEnd(checkParity bool) error {
	if err := s.checkSticky(); err != nil {
		return err
	}
	if s.indefiniteLengthArray {
		if checkParity && (LargeElemCount-s.elemCount)%2 != 0 {
			return s.fail(KindMapMisaligned)
		}
		b, err := s.readByte()
		if err != nil {
			return err
		}
		if b != byte(MajorPrimitive)<<5|PrimitiveBreak {
			return s.fail(KindNotAtEnd)
		}
		return s.ProcessBackup(FlagRestore|FlagConsume|FlagTransferPayload, LargeElemCount)
	}
	if s.elemCount != 0 {
		return s.fail(KindHighElemCount)
	}
	return s.ProcessBackup(FlagRestore|FlagConsume|FlagTransferPayload, 0)
}

// ListEndDecode closes a list opened with [State.ListStartDecode].
func (s *State) ListEndDecode() error { return s.containerEnd(false) }

// MapEndDecode closes a map opened with [State.MapStartDecode], additionally
// checking parity for indefinite-length maps.
func (s *State) MapEndDecode() error { return s.containerEnd(true) }

// ListMapEndForceDecode unconditionally pops the backup pushed by the
// matching start call, ignoring any outstanding element-count or
// end-of-contents validation. Schema code calls this on the failure path of
// a list/map body so that an error deeper in the body doesn't leave an
// orphaned backup on the stack.
func (s *State) ListMapEndForceDecode() error {
	return s.ProcessBackup(FlagRestore|FlagConsume|FlagTransferPayload, LargeElemCount)
}

// BstrCborStartDecode reads a definite-length byte-string header and
// restricts the cursor's logical end to its announced length, so that the
// caller can decode embedded CBOR from within it with ordinary bounds
// checking. Pair with [State.BstrCborEndDecode].
func (s *State) BstrCborStartDecode() error {
	if err := s.beginElem(); err != nil {
		return err
	}
	h, err := s.readHead()
	if err != nil {
		return err
	}
	if h.major != MajorByteString || h.isIndefinite() {
		return s.fail(KindWrongType)
	}
	if h.value > uint64(s.end-s.offset) {
		return s.fail(KindNoPayload)
	}
	s.endElem()
	newEnd := s.offset + int(h.value)
	if err := s.NewBackup(LargeElemCount); err != nil {
		return err
	}
	s.end = newEnd
	s.indefiniteLengthArray = false
	return nil
}

// BstrCborEndDecode verifies the embedded CBOR exactly consumed the
// enclosing byte string and restores the outer scope.
func (s *State) BstrCborEndDecode() error {
	if err := s.checkSticky(); err != nil {
		return err
	}
	if s.offset != s.end {
		return s.fail(KindNotAtEnd)
	}
	return s.ProcessBackup(FlagRestore|FlagConsume|FlagTransferPayload, LargeElemCount)
}

// --- encode side ---

// containerHeadReserved is the number of bytes reserved for a canonical
// container's placeholder head: one head byte plus a 4-byte length field,
// wide enough for any realistic schema's element count. Containers needing
// more than 2^32-1 direct children are outside this implementation's scope.
const containerHeadReserved = 1 + 4

func (e *EncodeState) startContainerEncode(major MajorType) error {
	if err := e.beginElem(); err != nil {
		return err
	}
	headStart := e.offset
	if e.canonical {
		// Reserve the widest plausible head now; patched down to the minimal
		// width in endContainerEncode once the true count is known.
		if err := e.writeByte(byte(major)<<5 | Additional4Bytes); err != nil {
			return err
		}
		if err := e.writeBytes(make([]byte, 4)); err != nil {
			return err
		}
		e.endElem() // the container occupies one slot in its parent
		if err := e.newBackup(LargeElemCount, headStart, containerHeadReserved); err != nil {
			return err
		}
	} else {
		if err := e.writeIndefiniteHead(major); err != nil {
			return err
		}
		e.endElem() // the container occupies one slot in its parent
		if err := e.newBackup(LargeElemCount, headStart, 0); err != nil {
			return err
		}
	}
	return nil
}

// ListStartEncode begins a list in either canonical or non-canonical mode,
// per the [Option]s the [EncodeState] was constructed with.
func (e *EncodeState) ListStartEncode() error { return e.startContainerEncode(MajorList) }

// MapStartEncode begins a map.
func (e *EncodeState) MapStartEncode() error { return e.startContainerEncode(MajorMap) }

// endContainerEncode implements both list and map end encoding: it computes how
// many child elements were actually written (LargeElemCount - elemCount),
// patches the canonical placeholder head down to the minimal width (or
// writes the break byte in non-canonical mode), and restores the parent
// scope. pairs divides the written-item count by two before it is used as
// the header's length field (used for maps, where the header counts pairs,
// not individual key/value items).
func (e *EncodeState) endContainerEncode(major MajorType, pairs bool) error {
	if err := e.checkSticky(); err != nil {
		return err
	}
	top, err := e.peekBackup()
	if err != nil {
		return err
	}
	written := LargeElemCount - e.elemCount
	if pairs {
		if written%2 != 0 {
			return e.fail(KindMapMisaligned)
		}
		written /= 2
	}

	var newOffset int
	if top.headReserved > 0 {
		bodyStart := top.headStart + top.headReserved
		head := headBytes(major, uint64(written))
		assert(len(head) <= top.headReserved, "canonical head patch grew past its reserved width")
		copy(e.buf[top.headStart:], head)
		newBodyStart := top.headStart + len(head)
		n := copy(e.buf[newBodyStart:], e.buf[bodyStart:e.offset])
		newOffset = newBodyStart + n
	} else {
		if err := e.writeBreak(); err != nil {
			return err
		}
		newOffset = e.offset
	}
	e.offset = newOffset
	return e.ProcessBackup(FlagRestore|FlagConsume|FlagTransferPayload, LargeElemCount)
}

// ListEndEncode closes a list opened with [EncodeState.ListStartEncode].
func (e *EncodeState) ListEndEncode() error { return e.endContainerEncode(MajorList, false) }

// MapEndEncode closes a map opened with [EncodeState.MapStartEncode].
func (e *EncodeState) MapEndEncode() error { return e.endContainerEncode(MajorMap, true) }

// BstrCborStartEncode reserves space for a byte-string header that will wrap
// embedded CBOR, to be patched with the true length by
// [EncodeState.BstrCborEndEncode]. Embedded CBOR is always written with a
// definite-length bstr header regardless of the [EncodeState]'s canonical
// setting, since the wrapping byte string's length is trivially knowable
// once its content is written.
func (e *EncodeState) BstrCborStartEncode() error {
	if err := e.beginElem(); err != nil {
		return err
	}
	headStart := e.offset
	if err := e.writeByte(byte(MajorByteString)<<5 | Additional4Bytes); err != nil {
		return err
	}
	if err := e.writeBytes(make([]byte, 4)); err != nil {
		return err
	}
	e.endElem() // the byte string occupies one slot in its parent
	return e.newBackup(LargeElemCount, headStart, containerHeadReserved)
}

// BstrCborEndEncode patches the byte-string header with the length of the
// embedded CBOR written since the matching start call.
func (e *EncodeState) BstrCborEndEncode() error {
	if err := e.checkSticky(); err != nil {
		return err
	}
	top, err := e.peekBackup()
	if err != nil {
		return err
	}
	bodyStart := top.headStart + top.headReserved
	length := e.offset - bodyStart
	head := headBytes(MajorByteString, uint64(length))
	copy(e.buf[top.headStart:], head)
	newBodyStart := top.headStart + len(head)
	n := copy(e.buf[newBodyStart:], e.buf[bodyStart:e.offset])
	e.offset = newBodyStart + n
	return e.ProcessBackup(FlagRestore|FlagConsume|FlagTransferPayload, LargeElemCount)
}
