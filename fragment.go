package zcbor

// StringFragment is one chunk of an indefinite-length byte or text string:
// RFC 8949 allows such a string to be transmitted as a sequence of
// definite-length chunks of the same major type, terminated by a break.
// Offset is the position of Value within the logical concatenation of every
// fragment seen so far; Done reports whether this was the final fragment.
type StringFragment struct {
	Value  []byte
	Offset int
	Done   bool
}

// fragmentCursor tracks an indefinite-length string being walked fragment by
// fragment, since no single head announces its total length up front.
// Obtain one from [State.BstrFragmentStart] or [State.TstrFragmentStart] and
// feed it to repeated [State.NextFragment] calls until Done.
type fragmentCursor struct {
	major   MajorType
	offset  int
	open    bool   // true while more indefinite-length chunks may follow
	pending []byte // the lone chunk of a definite-length "fragment sequence"
	started bool
}

// BstrFragmentStart begins decoding a byte string one chunk at a time,
// without requiring the whole string to be concatenated into one buffer
// first. It accepts both indefinite- and definite-length strings, the
// latter as a single fragment, so callers can use the same NextFragment loop
// either way.
func (s *State) BstrFragmentStart() (*fragmentCursor, error) {
	return s.fragmentStart(MajorByteString)
}

// TstrFragmentStart is the text-string counterpart of [State.BstrFragmentStart].
func (s *State) TstrFragmentStart() (*fragmentCursor, error) {
	return s.fragmentStart(MajorTextString)
}

func (s *State) fragmentStart(major MajorType) (*fragmentCursor, error) {
	if err := s.beginElem(); err != nil {
		return nil, err
	}
	h, err := s.readHead()
	if err != nil {
		return nil, err
	}
	if h.major != major {
		return nil, s.fail(KindWrongType)
	}
	if !h.isIndefinite() {
		if h.value > uint64(s.end-s.offset) {
			return nil, s.fail(KindNoPayload)
		}
		b, err := s.readN(int(h.value))
		if err != nil {
			return nil, err
		}
		s.endElem()
		return &fragmentCursor{major: major, pending: b}, nil
	}
	s.endElem()
	return &fragmentCursor{major: major, open: true}, nil
}

// NextFragment returns the next chunk from c. Once it returns a
// [StringFragment] with Done set, c is exhausted and must not be reused.
func (s *State) NextFragment(c *fragmentCursor) (StringFragment, error) {
	if err := s.checkSticky(); err != nil {
		return StringFragment{}, err
	}
	if !c.open && !c.started {
		c.started = true
		frag := StringFragment{Value: c.pending, Offset: 0, Done: true}
		c.offset = len(c.pending)
		c.pending = nil
		return frag, nil
	}
	if !c.open {
		return StringFragment{}, s.fail(KindNotAtEnd)
	}

	s.save()
	h, err := s.readHead()
	if err != nil {
		return StringFragment{}, err
	}
	if h.major == MajorPrimitive && h.additional == PrimitiveBreak {
		c.open = false
		return StringFragment{Offset: c.offset, Done: true}, nil
	}
	if h.major != c.major || h.isIndefinite() {
		return StringFragment{}, s.fail(KindWrongType)
	}
	if h.value > uint64(s.end-s.offset) {
		return StringFragment{}, s.fail(KindNoPayload)
	}
	b, err := s.readN(int(h.value))
	if err != nil {
		return StringFragment{}, err
	}
	frag := StringFragment{Value: b, Offset: c.offset}
	c.offset += len(b)
	return frag, nil
}

// UpdateState swaps in a fresh payload slice, for callers decoding a stream
// too large to hold in memory at once: once the current slice is fully
// consumed, more bytes can be supplied without losing the element-count or
// backup-stack state already accumulated. It fails with [ErrNotAtEnd] if the
// current payload has not been fully consumed, since mid-item replacement
// would silently corrupt whatever value is in flight.
func (s *State) UpdateState(payload []byte) error {
	if s.offset != len(s.payload) {
		return s.fail(KindNotAtEnd)
	}
	s.payload = payload
	s.offset = 0
	s.end = len(payload)
	return nil
}
