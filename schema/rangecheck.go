package schema

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// RangeCheck verifies that v falls within [min, max] inclusive, returning a
// descriptive error naming field if it doesn't. Generated and hand-written
// schema code alike call this after decoding a value whose CDDL-equivalent
// declares a numeric range narrower than the wire type's full domain (spec
// section 4's range constraint).
func RangeCheck[T constraints.Integer | constraints.Float](field string, v, min, max T) error {
	if v < min || v > max {
		return fmt.Errorf("schema: field %q value %v out of range [%v, %v]", field, v, min, max)
	}
	return nil
}

// LengthCheck is RangeCheck's counterpart for repeated or string fields,
// checking a count against [min, max] inclusive.
func LengthCheck(field string, n, min, max int) error {
	return RangeCheck(field, n, min, max)
}
