package schema

import (
	"iter"
	"reflect"
	"strconv"
	"strings"
)

// FieldParameters is the parsed representation of a struct field's "zcbor"
// tag string.
type FieldParameters struct {
	Ignore   bool // true iff this field should be skipped entirely
	Optional bool // true iff absence decodes to the field's zero value
	Min, Max int  // repetition bounds for slice fields; Max == 0 means no upper bound (Decode reads at most 1<<16 elements)
	Tag      uint64
	HasTag   bool
	Choices  []string // for "choice=a|b|c" enum-like string fields
	Key      string   // explicit map key; defaults to the field's lowercased name
}

// ParseFieldParameters parses a tag string, ignoring unknown parts (see the
// package doc for the vocabulary this package understands).
func ParseFieldParameters(str string) (ret FieldParameters) {
	for part := range strings.SplitSeq(str, ",") {
		switch {
		case part == "-":
			ret.Ignore = true
		case part == "optional":
			ret.Optional = true
		case strings.HasPrefix(part, "min="):
			ret.Min, _ = strconv.Atoi(part[len("min="):])
		case strings.HasPrefix(part, "max="):
			ret.Max, _ = strconv.Atoi(part[len("max="):])
		case strings.HasPrefix(part, "tag="):
			if v, err := strconv.ParseUint(part[len("tag="):], 10, 32); err == nil {
				ret.Tag = v
				ret.HasTag = true
			}
		case strings.HasPrefix(part, "choice="):
			ret.Choices = strings.Split(part[len("choice="):], "|")
		case strings.HasPrefix(part, "key="):
			ret.Key = part[len("key="):]
		}
	}
	return ret
}

// StructFields iterates the encodable fields of the struct v, skipping
// unexported fields and fields tagged "-", and defaulting each field's map
// key to its lowercased name.
func StructFields(v reflect.Value) iter.Seq2[reflect.Value, FieldParameters] {
	return func(yield func(reflect.Value, FieldParameters) bool) {
		t := v.Type()
		for i := range t.NumField() {
			field := t.Field(i)
			params := ParseFieldParameters(field.Tag.Get("zcbor"))
			if params.Ignore || !field.IsExported() {
				continue
			}
			if params.Key == "" {
				params.Key = strings.ToLower(field.Name)
			}
			if !yield(v.Field(i), params) {
				return
			}
		}
	}
}
