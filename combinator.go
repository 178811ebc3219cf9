package zcbor

// MultiDecode decodes between min and max repetitions of a single element
// type, using decodeOne for each attempt. It tries decodeOne up to max
// times; each failure is assumed to have already rolled the cursor back to
// its pre-attempt position (every decode function in this package and
// produced by schema code does this automatically),
// so MultiDecode itself does not need to snapshot anything. If fewer than
// min attempts succeed, it fails with [ErrLowElemCount]; otherwise it
// returns every value successfully decoded before the first failure (or all
// max, if every attempt succeeded).
//
// This rollback-on-failure property is what makes [PresentDecode] and union
// decoding work: a failed alternative leaves the cursor exactly where the
// next alternative (or the surrounding caller) expects it.
func MultiDecode[T any](s *State, min, max int, decodeOne func(*State) (T, error)) ([]T, error) {
	if err := s.checkSticky(); err != nil {
		return nil, err
	}
	if max < 0 || min < 0 || min > max {
		return nil, s.fail(KindIterations)
	}
	prealloc := max
	if prealloc > 16 {
		prealloc = 16
	}
	out := make([]T, 0, prealloc)
	for i := 0; i < max; i++ {
		// Each attempt runs in an error scope so that a failed attempt does
		// not latch under [WithStopOnError].
		var v T
		err := s.ErrorScope(func() error {
			var err error
			v, err = decodeOne(s)
			return err
		})
		if err != nil {
			if i < min {
				return nil, s.fail(KindLowElemCount)
			}
			return out, nil
		}
		out = append(out, v)
	}
	return out, nil
}

// PresentDecode is [MultiDecode] specialized to min=0, max=1: it reports
// whether an optional element was present, and its value if so.
func PresentDecode[T any](s *State, decodeOne func(*State) (T, error)) (value T, present bool, err error) {
	vals, err := MultiDecode(s, 0, 1, decodeOne)
	if err != nil {
		var zero T
		return zero, false, err
	}
	if len(vals) == 0 {
		var zero T
		return zero, false, nil
	}
	return vals[0], true, nil
}

// MultiEncode encodes exactly len(items) repetitions, after checking that
// count falls within [min, max] (failing with [ErrIterations] otherwise).
// Unlike decoding, encoding never backtracks: any encodeOne failure is
// fatal and is returned immediately.
func MultiEncode[T any](e *EncodeState, min, max int, items []T, encodeOne func(*EncodeState, T) error) error {
	if err := e.checkSticky(); err != nil {
		return err
	}
	if len(items) < min || len(items) > max {
		return e.fail(KindIterations)
	}
	for _, it := range items {
		if err := encodeOne(e, it); err != nil {
			return err
		}
	}
	return nil
}

// UnionDecode attempts each alternative in order, restoring the cursor to
// the union's starting point between attempts via [State.UnionElem], and
// returns the value and index of the first alternative that succeeds. If
// every alternative fails, the last alternative's error is returned.
//
// Each alternative's attempt runs inside an [State.ErrorScope] so that an
// earlier alternative's failure (which, under [WithStopOnError], would
// otherwise have latched and short-circuited every later call) does not
// prevent later alternatives from being tried.
func UnionDecode[T any](s *State, alternatives ...func(*State) (T, error)) (value T, index int, err error) {
	if err := s.checkSticky(); err != nil {
		return value, -1, err
	}
	if err := s.UnionStart(); err != nil {
		return value, -1, err
	}
	var lastErr error
	for i, alt := range alternatives {
		scopeErr := s.ErrorScope(func() error {
			if err := s.UnionElem(); err != nil {
				return err
			}
			v, err := alt(s)
			if err != nil {
				return err
			}
			value = v
			index = i
			return nil
		})
		if scopeErr == nil {
			if err := s.UnionEnd(); err != nil {
				return value, -1, err
			}
			return value, index, nil
		}
		lastErr = scopeErr
	}
	if err := s.ProcessBackup(FlagRestore|FlagConsume, s.elemCount); err != nil {
		return value, -1, err
	}
	var zero T
	return zero, -1, lastErr
}

// UnionEncode encodes the alternative selected by index, out of len(choices)
// possible encoders. Encoding a union does not need to backtrack: the
// caller already knows which alternative it holds.
func UnionEncode[T any](e *EncodeState, index int, value T, choices []func(*EncodeState, T) error) error {
	if err := e.checkSticky(); err != nil {
		return err
	}
	if index < 0 || index >= len(choices) {
		return e.fail(KindWrongValue)
	}
	return choices[index](e, value)
}
