package schema

import "fmt"

// FieldError wraps an error encountered while encoding or decoding a
// specific struct field, so a failure deep inside a nested schema can be
// traced back to the field path that produced it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func wrapField(field string, err error) error {
	if err == nil {
		return nil
	}
	return &FieldError{Field: field, Err: err}
}
