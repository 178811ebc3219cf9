package schema

import (
	"fmt"
	"reflect"
	"slices"

	"zcbor.dev/go"
)

// Encode writes v to e using reflection, driven by "zcbor" struct tags. v
// must be a struct, a pointer to one, or one of the primitive kinds this
// package understands (bool, the sized int/uint/float kinds, string, slice,
// pointer).
func Encode(e *zcbor.EncodeState, v any) error {
	return encodeValue(e, reflect.ValueOf(v), FieldParameters{})
}

func encodeValue(e *zcbor.EncodeState, v reflect.Value, p FieldParameters) error {
	if p.HasTag {
		if err := e.TagEncode(zcbor.Tag(p.Tag)); err != nil {
			return err
		}
	}
	switch v.Kind() {
	case reflect.Bool:
		return e.BoolEncode(v.Bool())
	case reflect.String:
		if len(p.Choices) > 0 && !slices.Contains(p.Choices, v.String()) {
			return e.Fail(zcbor.KindWrongValue)
		}
		return e.TstrEncode(zcbor.String{Value: []byte(v.String())})
	case reflect.Int8:
		return e.Int8Encode(int8(v.Int()))
	case reflect.Int16:
		return e.Int16Encode(int16(v.Int()))
	case reflect.Int32:
		return e.Int32Encode(int32(v.Int()))
	case reflect.Int, reflect.Int64:
		return e.Int64Encode(v.Int())
	case reflect.Uint8:
		return e.Uint8Encode(uint8(v.Uint()))
	case reflect.Uint16:
		return e.Uint16Encode(uint16(v.Uint()))
	case reflect.Uint32:
		return e.Uint32Encode(uint32(v.Uint()))
	case reflect.Uint, reflect.Uint64:
		return e.Uint64Encode(v.Uint())
	case reflect.Float32:
		return e.Float32Encode(float32(v.Float()))
	case reflect.Float64:
		return e.Float64Encode(v.Float())
	case reflect.Ptr:
		if v.IsNil() {
			return e.NilEncode()
		}
		return encodeValue(e, v.Elem(), p)
	case reflect.Slice, reflect.Array:
		return encodeSlice(e, v, p)
	case reflect.Struct:
		return encodeStruct(e, v)
	default:
		return fmt.Errorf("schema: unsupported kind %s", v.Kind())
	}
}

func encodeSlice(e *zcbor.EncodeState, v reflect.Value, p FieldParameters) error {
	n := v.Len()
	max := p.Max
	if max == 0 {
		max = n
	}
	if n < p.Min || n > max {
		return e.Fail(zcbor.KindIterations)
	}
	if err := e.ListStartEncode(); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := encodeValue(e, v.Index(i), FieldParameters{}); err != nil {
			return err
		}
	}
	return e.ListEndEncode()
}

func encodeStruct(e *zcbor.EncodeState, v reflect.Value) error {
	fields := slices.Collect(collectFields(v))
	if err := e.MapStartEncode(); err != nil {
		return err
	}
	for _, fv := range fields {
		field, params := fv.value, fv.params
		if params.Optional && field.Kind() == reflect.Ptr && field.IsNil() {
			continue
		}
		if err := e.TstrEncode(zcbor.String{Value: []byte(params.Key)}); err != nil {
			return wrapField(params.Key, err)
		}
		if err := encodeValue(e, field, params); err != nil {
			return wrapField(params.Key, err)
		}
	}
	return e.MapEndEncode()
}

type fieldValue struct {
	value  reflect.Value
	params FieldParameters
}

func collectFields(v reflect.Value) func(yield func(fieldValue) bool) {
	return func(yield func(fieldValue) bool) {
		for fv, params := range StructFields(v) {
			if !yield(fieldValue{fv, params}) {
				return
			}
		}
	}
}
